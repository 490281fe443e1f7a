// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package sasync

import (
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSignalRegistryDispatchesPendingSignal drives the self-raise / relay /
// CallHandlers path end to end: AddHandler installs the signal.Notify relay,
// raising the signal sets the pending flag and wakes the self-pipe, and
// CallHandlers is the only thing that actually invokes the listener — never
// the relay goroutine itself, per spec §4.7's async-signal-safe split.
func TestSignalRegistryDispatchesPendingSignal(t *testing.T) {
	reg, err := NewSignalRegistry()
	require.NoError(t, err)

	var mu sync.Mutex
	var got int
	canceler, err := reg.AddHandler(int(syscall.SIGUSR1), func(sig int) {
		mu.Lock()
		got = sig
		mu.Unlock()
	})
	require.NoError(t, err)
	defer canceler()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))

	require.Eventually(t, func() bool {
		reg.CallHandlers()
		mu.Lock()
		defer mu.Unlock()
		return got == int(syscall.SIGUSR1)
	}, time.Second, time.Millisecond)
}

func TestSignalRegistryCancelerRemovesLastListener(t *testing.T) {
	reg, err := NewSignalRegistry()
	require.NoError(t, err)

	canceler, err := reg.AddHandler(int(syscall.SIGUSR2), func(int) {})
	require.NoError(t, err)
	require.Contains(t, reg.entries, int(syscall.SIGUSR2))

	canceler()
	require.NotContains(t, reg.entries, int(syscall.SIGUSR2))
}

func TestSignalRegistryAddHandlerRejectsOutOfRangeSignal(t *testing.T) {
	reg, err := NewSignalRegistry()
	require.NoError(t, err)

	_, err = reg.AddHandler(0, func(int) {})
	require.Error(t, err)

	_, err = reg.AddHandler(maxSignalNumber+1, func(int) {})
	require.Error(t, err)

	require.Empty(t, reg.entries)
}

func TestSignalRegistryMaskForPselectIsNil(t *testing.T) {
	reg, err := NewSignalRegistry()
	require.NoError(t, err)
	require.Nil(t, reg.MaskForPselect())
}

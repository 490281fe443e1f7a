// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayFiresOnceBothSlotsSet(t *testing.T) {
	d := newDelay[int]()
	calls := 0
	var got Result[int]
	d.setCallback(func(r Result[int]) {
		calls++
		got = r
	})
	assert.Equal(t, 0, calls, "callback must not fire before a result is set")

	d.setResult(Value(9))
	require.Equal(t, 1, calls)
	assert.Equal(t, 9, got.Value())
}

func TestDelayFiresImmediatelyWhenResultAlreadySet(t *testing.T) {
	d := newDelay[int]()
	d.setResult(Value(5))

	calls := 0
	d.setCallback(func(r Result[int]) {
		calls++
		assert.Equal(t, 5, r.Value())
	})
	assert.Equal(t, 1, calls)
}

func TestDelaySetResultTwicePanics(t *testing.T) {
	d := newDelay[int]()
	d.setResult(Value(1))
	assert.Panics(t, func() { d.setResult(Value(2)) })
}

func TestDelaySetCallbackTwicePanics(t *testing.T) {
	d := newDelay[int]()
	d.setCallback(func(Result[int]) {})
	assert.Panics(t, func() { d.setCallback(func(Result[int]) {}) })
}

func TestDelaySetNilCallbackPanics(t *testing.T) {
	d := newDelay[int]()
	assert.Panics(t, func() { d.setCallback(nil) })
}

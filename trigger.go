// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

import (
	"math"
	"time"
)

// TriggerKind identifies which of the six variants a [Trigger] carries.
// The sum is closed: every Awaiter switch over Kind must cover all six.
type TriggerKind uint8

const (
	TriggerTimeout TriggerKind = iota
	TriggerReadableFD
	TriggerWritableFD
	TriggerErrorFD
	TriggerSignal
	TriggerUserProvided
)

// NoTimeout is the sentinel duration meaning "no deadline" — the Go
// analogue of the original's time_point::max(). A trigger set containing
// only a Timeout(NoTimeout) never fires by timeout.
const NoTimeout = time.Duration(math.MaxInt64)

// Trigger is one entry of a trigger set passed to [Awaiter.Expect], and
// also the value an Awaiter's returned future resolves with: the same
// type serves as both request and answer, since answering just means
// naming which requested entry fired (with its FD/signal number echoed
// back, or the Timeout's originally-requested interval).
//
// Only the fields relevant to Kind are meaningful; the rest are zero.
type Trigger struct {
	Kind TriggerKind

	Timeout time.Duration
	FD      int
	Signal  int

	// UserResult is populated, on fire, with whatever Result the inner
	// future of a TriggerUserProvided entry produced.
	UserResult Result[any]

	userFuture Future[any]
}

// Timeout builds a Timeout trigger. Negative durations clamp to zero, per
// the awaiter's deadline arithmetic.
func Timeout(d time.Duration) Trigger {
	if d < 0 {
		d = 0
	}
	return Trigger{Kind: TriggerTimeout, Timeout: d}
}

// Readable builds a ReadableFD trigger watching fd for readability.
func Readable(fd int) Trigger { return Trigger{Kind: TriggerReadableFD, FD: fd} }

// Writable builds a WritableFD trigger watching fd for writability.
func Writable(fd int) Trigger { return Trigger{Kind: TriggerWritableFD, FD: fd} }

// ErrorOn builds an ErrorFD trigger watching fd for an exceptional condition.
func ErrorOn(fd int) Trigger { return Trigger{Kind: TriggerErrorFD, FD: fd} }

// SignalNumber builds a Signal trigger watching the given signal number.
func SignalNumber(sig int) Trigger { return Trigger{Kind: TriggerSignal, Signal: sig} }

// UserProvided builds a trigger that fires when f produces a Result. The
// awaiter installs the continuation once, when the trigger set is
// submitted to [Awaiter.Expect].
func UserProvided(f Future[any]) Trigger {
	return Trigger{Kind: TriggerUserProvided, userFuture: f}
}

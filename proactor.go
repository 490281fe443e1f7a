// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

import (
	"fmt"
	"time"
)

// Awaiter is the proactor of spec §4.8: the single suspension point of an
// otherwise synchronous, single-threaded cooperative core. Every other
// operation in this package runs to completion without yielding; only
// [Awaiter.AwaitEvents]'s kernel wait call blocks.
type Awaiter struct {
	sig    *SignalRegistry
	now    func() time.Time
	kernel kernelWaiter

	events []*pendingEvent

	// Scratch fd-sets reused across iterations of AwaitEvents, the same
	// allocate-once-reuse-many shape as the teacher's frame pools.
	rset, wset, eset fdSet
}

// NewAwaiter creates an Awaiter backed by sig's handler-configuration
// façade and the platform's kernel wait primitive.
func NewAwaiter(sig *SignalRegistry) *Awaiter {
	return &Awaiter{
		sig:    sig,
		now:    time.Now,
		kernel: newKernelWaiter(),
	}
}

// Expect submits a trigger set and returns a future that resolves with
// whichever trigger in the set is first observed to hold — spec §4.8.
// An empty trigger set returns a future that never resolves.
func (a *Awaiter) Expect(triggers ...Trigger) Future[Trigger] {
	p, f := NewPromiseFuture[Trigger]()

	ev := acquirePendingEvent()
	ev.triggers = append(ev.triggers[:0], triggers...)
	ev.promise = p

	effective := NoTimeout
	for _, t := range ev.triggers {
		if t.Kind == TriggerTimeout && t.Timeout < effective {
			effective = t.Timeout
		}
	}
	if effective != NoTimeout {
		ev.hasDeadline = true
		ev.deadline = a.now().Add(effective)
	}

	for i := range ev.triggers {
		t := &ev.triggers[i]
		switch t.Kind {
		case TriggerSignal:
			if a.sig == nil {
				continue
			}
			sig := t.Signal
			c, err := a.sig.AddHandler(sig, func(firedSig int) {
				a.fireEvent(ev, Trigger{Kind: TriggerSignal, Signal: firedSig})
			})
			if err != nil {
				a.failEvent(ev, err)
				releasePendingEvent(ev)
				return f
			}
			ev.cancelers = append(ev.cancelers, c)
		case TriggerUserProvided:
			inner := t.userFuture
			inner.Then(func(r Result[any]) {
				a.fireEvent(ev, Trigger{Kind: TriggerUserProvided, UserResult: r})
			})
		}
	}

	a.events = append(a.events, ev)
	return f
}

func (a *Awaiter) fireEvent(ev *pendingEvent, winning Trigger) {
	if ev.fired {
		return
	}
	ev.fired = true
	CancelAll(ev.cancelers)
	p := ev.promise
	p.SetResult(winning)
}

// failEvent resolves ev's future with err, tagged with ev's correlation id
// so a panic trace or log line can name which pending expect call failed
// without reusing an FD number (reassigned across events) or a pointer
// (not stable to print across runs).
func (a *Awaiter) failEvent(ev *pendingEvent, err error) {
	if ev.fired {
		return
	}
	ev.fired = true
	CancelAll(ev.cancelers)
	p := ev.promise
	p.Fail(fmt.Errorf("sasync: pending event %s: %w", ev.id, err))
}

// AwaitEvents runs the cooperative event loop until no pending events
// remain — spec §4.8's numbered steps 1-9.
func (a *Awaiter) AwaitEvents() {
	for len(a.events) > 0 {
		now := a.now()

		firedTimeout := a.fireDueTimeouts(now)

		nfd, hasTimeout, timeout, failedAgg := a.buildAggregate(now)

		if firedTimeout || failedAgg {
			a.removeFired()
			continue
		}

		werr := a.kernel.pselect(nfd, &a.rset, &a.wset, &a.eset, timeout, hasTimeout)

		if a.sig != nil {
			a.sig.CallHandlers()
		}

		if werr != nil {
			a.removeFired()
			continue
		}

		a.dispatchFDEvents()
		a.removeFired()
	}
}

// fireDueTimeouts fires every event whose deadline has passed, reporting
// the event's own originally-requested Timeout trigger.
func (a *Awaiter) fireDueTimeouts(now time.Time) bool {
	fired := false
	for _, ev := range a.events {
		if ev.fired || !ev.hasDeadline {
			continue
		}
		if now.Before(ev.deadline) {
			continue
		}
		var winning Trigger
		for _, t := range ev.triggers {
			if t.Kind == TriggerTimeout {
				winning = t
				break
			}
		}
		a.fireEvent(ev, winning)
		fired = true
	}
	return fired
}

// buildAggregate fills the scratch fd-sets from every still-pending
// event's FD triggers and computes the next deadline. An FD past fdSet's
// capacity fails that event immediately with [ErrTooManyOpenFiles].
func (a *Awaiter) buildAggregate(now time.Time) (nfd int, hasTimeout bool, timeout time.Duration, failedAgg bool) {
	a.rset.zero()
	a.wset.zero()
	a.eset.zero()
	timeout = NoTimeout

	if a.sig != nil {
		fd := a.sig.SelfPipeFD()
		// Unlike a caller's FD trigger (§7's "out-of-range FD" resolves
		// gracefully onto that one expect's future), the self-pipe backs
		// every pending signal listener at once: if its own FD can't be
		// represented, nfd must not claim a bit the read-set never
		// watches — that would silently reintroduce the race pselect's
		// atomic signal-mask change exists to close.
		if !a.rset.set(fd) {
			panic(fmt.Sprintf("sasync: self-pipe fd %d exceeds kernel wait primitive capacity (%d)", fd, maxFD))
		}
		if fd+1 > nfd {
			nfd = fd + 1
		}
	}

	for _, ev := range a.events {
		if ev.fired {
			continue
		}
		if ev.hasDeadline {
			remaining := ev.deadline.Sub(now)
			if remaining < 0 {
				remaining = 0
			}
			if !hasTimeout || remaining < timeout {
				hasTimeout = true
				timeout = remaining
			}
		}
		for _, t := range ev.triggers {
			var set *fdSet
			switch t.Kind {
			case TriggerReadableFD:
				set = &a.rset
			case TriggerWritableFD:
				set = &a.wset
			case TriggerErrorFD:
				set = &a.eset
			default:
				continue
			}
			if !set.set(t.FD) {
				a.failEvent(ev, ErrTooManyOpenFiles)
				failedAgg = true
				break
			}
			if t.FD+1 > nfd {
				nfd = t.FD + 1
			}
		}
	}
	return nfd, hasTimeout, timeout, failedAgg
}

// dispatchFDEvents fires every still-pending event that has at least one
// satisfied FD trigger, breaking ties by registration order within each
// event's own trigger list — spec §4.8 step 8.
func (a *Awaiter) dispatchFDEvents() {
	for _, ev := range a.events {
		if ev.fired {
			continue
		}
		for _, t := range ev.triggers {
			var set *fdSet
			switch t.Kind {
			case TriggerReadableFD:
				set = &a.rset
			case TriggerWritableFD:
				set = &a.wset
			case TriggerErrorFD:
				set = &a.eset
			default:
				continue
			}
			if set.isSet(t.FD) {
				a.fireEvent(ev, t)
				break
			}
		}
	}
}

func (a *Awaiter) removeFired() {
	out := a.events[:0]
	for _, ev := range a.events {
		if ev.fired {
			releasePendingEvent(ev)
			continue
		}
		out = append(out, ev)
	}
	a.events = out
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// pendingEvent is the awaiter's bookkeeping record for one in-flight
// expect call: spec §3's soonest deadline, the FD conditions being
// watched (read straight off triggers each iteration), the downstream
// promise, and the cancelers to run once the event fires.
//
// Pooled the same way the teacher pools EffectFrame/BindFrame/ThenFrame
// in pool.go: one expect/await cycle acquires a record, fills it, and
// returns it to the pool once fired and removed, instead of letting the
// garbage collector churn through one allocation per event.
type pendingEvent struct {
	id          uuid.UUID
	triggers    []Trigger
	hasDeadline bool
	deadline    time.Time
	promise     Promise[Trigger]
	cancelers   []Canceler
	fired       bool

	pooled bool
}

var pendingEventPool = sync.Pool{New: func() any { return new(pendingEvent) }}

// acquirePendingEvent draws a record from the pool and stamps it with a
// fresh correlation id. FD numbers get reused across expect calls and a
// pointer is not a stable thing to print across runs, so the id is what
// the error of a failed expect future names to say which pending event
// it came from (see failEvent's error wrapping in proactor.go).
func acquirePendingEvent() *pendingEvent {
	ev := pendingEventPool.Get().(*pendingEvent)
	ev.pooled = true
	ev.id = uuid.New()
	return ev
}

// releasePendingEvent zeroes and returns ev to the pool; no-op if ev was
// not obtained from acquirePendingEvent (e.g. in white-box tests that
// build one by hand).
func releasePendingEvent(ev *pendingEvent) {
	if !ev.pooled {
		return
	}
	ev.id = uuid.UUID{}
	ev.triggers = nil
	ev.hasDeadline = false
	ev.deadline = time.Time{}
	ev.promise = Promise[Trigger]{}
	ev.cancelers = nil
	ev.fired = false
	ev.pooled = false
	pendingEventPool.Put(ev)
}

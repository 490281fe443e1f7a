// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

import "weak"

// inputState tags the delay's input slot: empty, a settled Result, or a
// non-owning back-link to an upstream delay installed by [forward].
type inputState uint8

const (
	inputEmpty inputState = iota
	inputResult
	inputForwardSource
)

// outputState tags the delay's output slot: empty, a registered callback,
// or an owning link to a downstream delay installed by [forward].
type outputState uint8

const (
	outputEmpty outputState = iota
	outputCallback
	outputForwardTarget
)

// delay is the rendezvous between one [Promise] and one [Future] (or
// [SharedFuture] implementation). It holds at most one Result and at most
// one callback; the callback fires exactly once, synchronously, the moment
// both are present.
//
// Neither slot holding a settled answer is ever rewritten: a Result, once
// stored in input, is final, and a callback, once stored in output, is
// final. The one sanctioned rewrite is input's forward-source placeholder
// giving way to the real Result once a delegated setResult finally lands
// — that placeholder never held an answer in the first place, so this is
// the slot's first real write, not a second one. [forward] installs into
// empty slots, except that once it has normalized from to that delay's
// upstream, it redirects the upstream's existing forward-target link to
// the new downstream — the collapse step that keeps a chain one hop deep.
// There is no mutex: the whole core is single-threaded and cooperative
// (spec §5), so the state machine below relies on nothing but ordinary
// field reads/writes.
type delay[T any] struct {
	inputKind inputState
	result    Result[T]
	source    weak.Pointer[delay[T]]

	outputKind outputState
	callback   func(Result[T])
	target     *delay[T]
}

func newDelay[T any]() *delay[T] {
	return &delay[T]{}
}

// setResult implements spec §4.2's set-result rule. Calling it when the
// input slot is already non-empty is a contract violation.
func (d *delay[T]) setResult(r Result[T]) {
	if d.inputKind == inputResult {
		panic("sasync: delay: result already set")
	}
	if d.outputKind == outputForwardTarget {
		d.target.setResult(r)
		return
	}
	d.inputKind = inputResult
	d.result = r
	d.fireIfReady()
}

// setCallback implements spec §4.2's set-callback rule. Calling it when the
// output slot is already non-empty is a contract violation.
//
// When the input slot holds a forward-source, the eventual result still
// lands here: setResult's forward-target delegation always terminates by
// writing directly into whichever delay's output is not itself a
// forward-target, which — once this call installs a real callback in that
// slot — is this one. So "redirected upstream" (spec §4.2) does not mean
// re-homing f onto the upstream delay's own output (that slot is already
// the forward-target link forward installed there, and is never free to
// hold a second, competing variant); it means f only ever fires via that
// upstream's result arriving, which is exactly what installing f here and
// waiting achieves. The one real upstream-facing action this slot still
// needs is the dead-upstream short-circuit: if the weak back-link is
// already gone, f can never fire, so it is dropped instead of retained.
func (d *delay[T]) setCallback(f func(Result[T])) {
	if d.outputKind == outputCallback || d.outputKind == outputForwardTarget {
		panic("sasync: delay: callback already set")
	}
	if f == nil {
		panic("sasync: delay: nil callback")
	}
	if d.inputKind == inputForwardSource && d.source.Value() == nil {
		// Upstream gone: f is dropped on the floor (spec §9, documented
		// loudly: a promise dropped upstream of a weak forward-source
		// means the downstream callback silently never fires).
		return
	}
	d.outputKind = outputCallback
	d.callback = f
	d.fireIfReady()
}

// fireIfReady runs the callback synchronously, exactly once, the instant
// both slots hold their terminal value. The set-once contract on each slot
// (enforced by the panics above) is what makes a second invocation of this
// function from the other setter impossible to observe as a double fire:
// by the time both slots are non-empty, only the setter that completed the
// pair calls fireIfReady with both present.
func (d *delay[T]) fireIfReady() {
	if d.inputKind != inputResult || d.outputKind != outputCallback {
		return
	}
	d.callback(d.result)
}

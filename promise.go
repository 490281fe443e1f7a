// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

// Promise is the write-only end of a [delay]. It is valid if it still
// holds a reference to the delay, or detached if it was default-constructed
// or has already been consumed by one of the terminal operations below.
//
// Go has no move semantics, so "consumed" is enforced the same way the
// teacher enforces one-shot resumption (affine.go's Affine.Resume): the
// terminal operation panics if called on an already-detached Promise, and
// clears the delay reference before returning so a second call observes
// the detached state.
type Promise[T any] struct {
	d *delay[T]
}

// Valid reports whether this Promise still holds an associated delay.
func (p *Promise[T]) Valid() bool { return p.d != nil }

func (p *Promise[T]) mustDelay() *delay[T] {
	if p.d == nil {
		panic("sasync: promise: use of a detached promise")
	}
	d := p.d
	p.d = nil
	return d
}

// SetResult settles the associated future with a successful value.
// Panics if this Promise is already detached.
func (p *Promise[T]) SetResult(v T) {
	p.mustDelay().setResult(Value(v))
}

// SetResultFrom calls f and settles the associated future with its return
// value, or with the recovered panic if f panics — spec §4.3:
// "set_result_from(f) — invokes the zero-arity function f; if it returns,
// stores its return; if it throws, stores the captured exception."
func (p *Promise[T]) SetResultFrom(f func() T) {
	p.mustDelay().setResult(Try(f))
}

// Fail settles the associated future with the given error.
// Panics if this Promise is already detached.
func (p *Promise[T]) Fail(err error) {
	p.mustDelay().setResult(Error[T](err))
}

// FailWithCurrent settles the associated future with the panic value
// currently propagating through the call stack. It must be called from
// within a deferred recover, mirroring the original's
// fail_with_current_exception, which is documented as callable only from a
// catch clause.
func (p *Promise[T]) FailWithCurrent(recovered any) {
	if recovered == nil {
		panic("sasync: promise: FailWithCurrent called with no active panic")
	}
	p.mustDelay().setResult(Error[T](asError(recovered)))
}

// settle is the internal entry point used by Future.Forward and the
// future combinators (ThenInto, Recover, Unwrap, and their SharedFuture
// counterparts), which already hold a Result and don't need the
// panic-capturing convenience constructors above.
func (p *Promise[T]) settle(r Result[T]) {
	p.mustDelay().setResult(r)
}

// NewPromiseFuture creates a linked Promise/Future pair backed by a fresh
// delay — spec §6.3's make_promise_future_pair.
func NewPromiseFuture[T any]() (Promise[T], Future[T]) {
	d := newDelay[T]()
	return Promise[T]{d: d}, Future[T]{d: d}
}

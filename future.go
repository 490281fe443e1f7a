// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

// Future is the read-once end of a [delay]. Like [Promise], Go gives us no
// move semantics, so a consumed Future is one whose delay reference has
// been cleared; any further terminal operation on it panics.
//
// Combinators that change the result type (Map, ThenInto, ThenFuture) or
// accept only a nested future (Unwrap, UnwrapShared) cannot be methods —
// Go does not allow a method to add or narrow type parameters beyond its
// receiver's. The teacher's own monad combinators (monad.go's
// Bind/Map/Then) are package-level generic functions for exactly this
// reason; Future's combinators, Recover included, follow the same shape.
type Future[T any] struct {
	d *delay[T]
}

// Valid reports whether this Future still holds an associated delay.
func (f *Future[T]) Valid() bool { return f.d != nil }

func (f *Future[T]) mustDelay() *delay[T] {
	if f.d == nil {
		panic("sasync: future: use of a consumed future")
	}
	d := f.d
	f.d = nil
	return d
}

// Then installs cb as the delay's callback. This is spec §4.4's
// void-return form: cb runs once the result is available and nothing is
// produced downstream.
func (f *Future[T]) Then(cb func(Result[T])) {
	f.mustDelay().setCallback(cb)
}

// Forward installs a trivial callback that copies this future's result
// into p — spec §4.4's forward. Per the original's future_test_helper.hh,
// Future::forward is literally then-with-a-transfer-callback, not the
// delay-level [forward] collapse of spec §4.2 (see SPEC_FULL.md §4). Forward
// does not call that lower-level operation, so a chain of Forward calls
// keeps every intermediate delay alive until the result passes through.
func (f *Future[T]) Forward(p Promise[T]) {
	pp := p
	f.Then(func(r Result[T]) { pp.settle(r) })
}

// Wrap delivers a Future[T] downstream whose inner future resolves to this
// future's success value. An error on this future propagates to the
// *outer* future; the inner future is simply never settled in that case —
// spec §4.4: "Error in the upstream propagates to the outer future, not
// the inner one." Go values do not fail to copy, so the "copying T itself
// throws" branch from the original spec has no analogue here (see
// DESIGN.md).
func (f *Future[T]) Wrap() Future[Future[T]] {
	d := f.mustDelay()
	outerP, outerF := NewPromiseFuture[Future[T]]()
	d.setCallback(func(r Result[T]) {
		if !r.Ok() {
			outerP.Fail(r.Err())
			return
		}
		innerP, innerF := NewPromiseFuture[T]()
		innerP.SetResult(r.Value())
		outerP.SetResult(innerF)
	})
	return outerF
}

// WrapShared is Wrap's SharedFuture-returning counterpart.
func (f *Future[T]) WrapShared() Future[SharedFuture[T]] {
	d := f.mustDelay()
	outerP, outerF := NewPromiseFuture[SharedFuture[T]]()
	d.setCallback(func(r Result[T]) {
		if !r.Ok() {
			outerP.Fail(r.Err())
			return
		}
		innerP, innerF := NewPromiseFuture[T]()
		innerP.SetResult(r.Value())
		outerP.SetResult(innerF.Share())
	})
	return outerF
}

// ThenInto runs fn when f settles and sets its return value on p. If fn
// panics, the recovered value is captured and propagated to p instead —
// spec §4.4's explicit-promise then form.
func ThenInto[T, R any](f Future[T], fn func(Result[T]) R, p Promise[R]) {
	pp := p
	f.Then(func(r Result[T]) {
		pp.settle(Try(func() R { return fn(r) }))
	})
}

// ThenFuture runs fn when f settles and delivers its return value through
// the returned Future[R] — spec §4.4's future-returning then form.
func ThenFuture[T, R any](f Future[T], fn func(Result[T]) R) Future[R] {
	p, result := NewPromiseFuture[R]()
	ThenInto(f, fn, p)
	return result
}

// Map runs fn on f's success value only. If f settled with an error, the
// downstream receives that same error without calling fn.
func Map[T, R any](f Future[T], fn func(T) R) Future[R] {
	return ThenFuture(f, func(r Result[T]) R {
		return fn(r.Value())
	})
}

// Recover calls fn when f settled with an error, and lets fn's (possibly
// panicking) return value become the downstream value. If f settled
// successfully, fn is not called and the value passes through unchanged.
func Recover[T any](f Future[T], fn func(error) T) Future[T] {
	p, result := NewPromiseFuture[T]()
	f.Then(func(r Result[T]) {
		if r.Ok() {
			p.settle(r)
			return
		}
		p.settle(Try(func() T { return fn(r.Err()) }))
	})
	return result
}

// Unwrap flattens a Future[Future[T]] into a Future[T] that resolves to
// whichever level surfaces first; an error at either level propagates.
func Unwrap[T any](outer Future[Future[T]]) Future[T] {
	p, result := NewPromiseFuture[T]()
	outer.Then(func(r Result[Future[T]]) {
		if !r.Ok() {
			p.Fail(r.Err())
			return
		}
		inner := r.Value()
		pp := p
		inner.Then(func(ir Result[T]) { pp.settle(ir) })
	})
	return result
}

// UnwrapShared flattens a Future[SharedFuture[T]] into a Future[T].
func UnwrapShared[T any](outer Future[SharedFuture[T]]) Future[T] {
	p, result := NewPromiseFuture[T]()
	outer.Then(func(r Result[SharedFuture[T]]) {
		if !r.Ok() {
			p.Fail(r.Err())
			return
		}
		shared := r.Value()
		pp := p
		shared.Then(func(ir Result[T]) { pp.settle(ir) })
	})
	return result
}

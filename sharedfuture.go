// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

// sharedState is the indirection every copy of a SharedFuture points at.
// It exists purely so copying a SharedFuture (a value type, per spec
// §4.5's "Copyable") shares one mutable record rather than forking it: the
// underlying delay is consumed into d at Share time, and the multiplexer
// (impl) is allocated lazily, the first time any copy calls Then — the
// same lazy-allocate-on-first-use shape as the teacher's sync.Pool-backed
// marker/frame pools (pool.go, marker_pool.go), here applied to a
// callback-list instead of a single reusable object.
type sharedState[T any] struct {
	d    *delay[T]
	impl *sharedImpl[T]
}

// sharedImpl is the callback multiplexer: before the result arrives it
// holds a growing list of const-reference listeners; once settled, it
// holds the result and answers every new listener synchronously and
// immediately.
type sharedImpl[T any] struct {
	settled   bool
	result    Result[T]
	listeners []func(Result[T])
}

// SharedFuture is the copyable, read-many counterpart to [Future].
// Two SharedFutures compare equal, via [SharedFuture.Equal], iff they
// share the same underlying state — i.e. one was copied from the other,
// directly or transitively, rather than produced by two separate calls to
// [Future.Share].
type SharedFuture[T any] struct {
	state *sharedState[T]
}

// Valid reports whether this SharedFuture is associated with a delay.
func (s SharedFuture[T]) Valid() bool { return s.state != nil }

// Equal reports whether s and other were derived from the same
// [Future.Share] call.
func (s SharedFuture[T]) Equal(other SharedFuture[T]) bool {
	return s.state == other.state
}

func (s SharedFuture[T]) mustState() *sharedState[T] {
	if s.state == nil {
		panic("sasync: sharedfuture: use of an invalid shared future")
	}
	return s.state
}

// Then registers cb to receive this shared future's result. If the result
// has already arrived, cb runs synchronously and immediately with the
// stored value; otherwise it is appended to the multiplexer's listener
// list and runs once, when the result arrives, alongside every other
// listener registered before or after it.
func (s SharedFuture[T]) Then(cb func(Result[T])) {
	st := s.mustState()
	if st.impl == nil {
		impl := &sharedImpl[T]{}
		st.impl = impl
		d := st.d
		st.d = nil
		d.setCallback(func(r Result[T]) {
			impl.result = r
			impl.settled = true
			listeners := impl.listeners
			impl.listeners = nil
			for _, l := range listeners {
				l(r)
			}
		})
	}
	impl := st.impl
	if impl.settled {
		cb(impl.result)
		return
	}
	impl.listeners = append(impl.listeners, cb)
}

// Forward relays this shared future's result into p.
func (s SharedFuture[T]) Forward(p Promise[T]) {
	pp := p
	s.Then(func(r Result[T]) { pp.settle(r) })
}

// Wrap mirrors [Future.Wrap] for a shared future.
func (s SharedFuture[T]) Wrap() Future[Future[T]] {
	outerP, outerF := NewPromiseFuture[Future[T]]()
	s.Then(func(r Result[T]) {
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

// WrapShared mirrors [Future.WrapShared] for a shared future.
func (s SharedFuture[T]) WrapShared() Future[SharedFuture[T]] {
	outerP, outerF := NewPromiseFuture[SharedFuture[T]]()
	s.Then(func(r Result[T]) {
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

// Share consumes f and returns a copyable, read-many SharedFuture over the
// same delay.
func (f *Future[T]) Share() SharedFuture[T] {
	d := f.mustDelay()
	return SharedFuture[T]{state: &sharedState[T]{d: d}}
}

// MapShared mirrors [Map] for a SharedFuture source.
func MapShared[T, R any](s SharedFuture[T], fn func(T) R) Future[R] {
	p, result := NewPromiseFuture[R]()
	s.Then(func(r Result[T]) {
		if !r.Ok() {
			p.Fail(r.Err())
			return
		}
		p.settle(Try(func() R { return fn(r.Value()) }))
	})
	return result
}

// RecoverShared mirrors [Recover] for a SharedFuture source.
func RecoverShared[T any](s SharedFuture[T], fn func(error) T) Future[T] {
	p, result := NewPromiseFuture[T]()
	s.Then(func(r Result[T]) {
		if r.Ok() {
			p.settle(r)
			return
		}
		p.settle(Try(func() T { return fn(r.Err()) }))
	})
	return result
}

// ThenSharedInto mirrors [ThenInto] for a SharedFuture source.
func ThenSharedInto[T, R any](s SharedFuture[T], fn func(Result[T]) R, p Promise[R]) {
	pp := p
	s.Then(func(r Result[T]) {
		pp.settle(Try(func() R { return fn(r) }))
	})
}

// ThenSharedFuture mirrors [ThenFuture] for a SharedFuture source.
func ThenSharedFuture[T, R any](s SharedFuture[T], fn func(Result[T]) R) Future[R] {
	p, result := NewPromiseFuture[R]()
	ThenSharedInto(s, fn, p)
	return result
}

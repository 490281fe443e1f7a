// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

// Result is the payload every [delay], [Promise], [Future], and
// [SharedFuture] carries: either a successfully produced T, or an error.
// Exactly one variant is present for the lifetime of a Result.
type Result[T any] struct {
	value T
	err   error
	isErr bool
}

// Ok reports whether this Result holds a value rather than an error.
func (r Result[T]) Ok() bool { return !r.isErr }

// Value returns the held value. If this Result holds an error instead, it
// panics with that error — the Go analogue of the original's
// rethrow-on-dereference behavior (Result.hh: "Returns a reference to the
// result value or throws the exception.").
func (r Result[T]) Value() T {
	if r.isErr {
		panic(r.err)
	}
	return r.value
}

// Err returns the held error, or nil if this Result holds a value.
func (r Result[T]) Err() error {
	if r.isErr {
		return r.err
	}
	return nil
}

// Value constructs a successful Result.
func Value[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Error constructs a failed Result from an error handle.
func Error[T any](err error) Result[T] {
	if err == nil {
		panic("sasync: Error called with nil error")
	}
	return Result[T]{err: err, isErr: true}
}

// Try runs f and wraps its outcome in a Result. If f panics, the panic is
// recovered and captured as the error variant — the Go analogue of C++
// constructing a value whose constructor may throw (spec: "the result of
// constructing with a function that may raise is always a valid Result").
// A panic carrying an error value is stored as-is; any other panic value is
// wrapped with [asError].
func Try[T any](f func() T) (result Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			result = Result[T]{err: asError(p), isErr: true}
		}
	}()
	return Value(f())
}

// TryFrom runs f, which itself may fail conventionally (returning an
// error) or panic, and folds both failure modes into the error variant.
func TryFrom[T any](f func() (T, error)) (result Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			result = Result[T]{err: asError(p), isErr: true}
		}
	}()
	v, err := f()
	if err != nil {
		return Error[T](err)
	}
	return Value(v)
}

func asError(p any) error {
	if err, ok := p.(error); ok {
		return err
	}
	return &panicError{p}
}

// panicError wraps a non-error panic value so it can flow through Result
// as an ordinary error.
type panicError struct{ v any }

func (e *panicError) Error() string {
	if s, ok := e.v.(string); ok {
		return s
	}
	return "sasync: recovered panic"
}

func (e *panicError) Unwrap() error {
	if err, ok := e.v.(error); ok {
		return err
	}
	return nil
}

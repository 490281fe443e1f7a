// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sasync provides the single-threaded cooperative concurrency
// core a shell implementation builds its job control and I/O multiplexing
// on: a dataflow primitive for carrying one value from producer to
// consumer, and a proactor that turns timeouts, file descriptors, and
// signals into futures.
//
// # Dataflow
//
// [Result] is a success-or-error envelope. [Promise] and [Future] are the
// write-once and read-once ends of a [delay] — a single-slot rendezvous
// that fires its callback the instant both a result and a callback are
// present, and never before. [Future]'s combinators that change the result
// type ([Map], [ThenInto], [ThenFuture]) or accept only a nested future
// ([Unwrap], [UnwrapShared]) are package-level functions rather than
// methods, since Go does not let a method introduce or narrow type
// parameters beyond the receiver's; [Recover] is a package-level function
// as well.
//
// [Future.Forward] relays a result by installing a callback on the
// upstream delay, so a chain of Forward calls keeps every intermediate
// delay alive until the result passes through. The delay-level [forward]
// is the chain-collapsing operation: repeatedly linking through it never
// grows an indirection chain past one hop.
//
// [SharedFuture] is the copyable, read-many counterpart produced by
// [Future.Share]. Its callback multiplexer is allocated lazily on first
// use and broadcasts to every registered and future listener once the
// result lands.
//
// # Proactor
//
// [Trigger] enumerates what an [Awaiter] can wait on: a timeout, a
// readable/writable/erroring file descriptor, a signal, or a caller's own
// future. [Awaiter.Expect] returns a [Future] that resolves with whichever
// trigger in the set is observed first; [Awaiter.AwaitEvents] runs the
// cooperative loop, calling the platform's pselect-class primitive and
// dispatching every pending event whose trigger was observed.
//
// [SignalRegistry] is the process-wide façade coordinating signal
// listeners with the awaiter; installing a listener returns a [Canceler]
// that reverses the registration.
//
// Go gives this package no move semantics. Promise and Future emulate the
// original's move-only consumption by nilling their internal delay
// pointer on the terminal operation and panicking if called again — the
// same one-shot-or-panic discipline the teacher library used for
// resuming a captured continuation.
package sasync

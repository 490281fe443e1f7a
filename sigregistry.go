// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
)

// maxSignalNumber bounds the signals AddHandler will install a disposition
// for: Linux's highest real-time signal (SIGRTMAX is usually 64), which
// comfortably covers every standard and real-time signal on the BSD/Darwin
// targets this also builds for (1..31, no real-time range at all).
const maxSignalNumber = 64

// SignalRegistry is the process-wide handler-configuration façade of
// spec §4.7: one list of listeners per signal number, plus the plumbing
// that wakes a blocked [Awaiter].
//
// The original assumes a raw sigaction trampoline racing the kernel wait
// call, unmasked atomically for the duration of the wait. Go's runtime
// already owns every signal disposition and forwards delivery through
// os/signal instead of letting user code install its own handler, so
// that race is closed a different way here: signal.Notify's relay
// already runs on the thread the blocking syscall is parked on, which
// interrupts it with EINTR exactly when a watched signal lands. The
// self-pipe below is the documented fallback spec §5 allows for when a
// platform's primitive "lacks atomicity" — it exists so a signal that
// arrives between iterations still has something to make the next
// pselect notice promptly, not to replace the EINTR path.
type SignalRegistry struct {
	mu      sync.Mutex
	entries map[int]*signalEntry
	pending sync.Map // int signal number -> *atomic.Bool

	pipeR *os.File
	pipeW *os.File
}

type signalEntry struct {
	ch        chan os.Signal
	stop      chan struct{}
	nextID    uint64
	listeners map[uint64]func(int)
}

// NewSignalRegistry creates an empty registry and its self-pipe.
func NewSignalRegistry() (*SignalRegistry, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	if err := unix.SetNonblock(int(r.Fd()), true); err != nil {
		_ = r.Close()
		_ = w.Close()
		return nil, err
	}
	if err := unix.SetNonblock(int(w.Fd()), true); err != nil {
		_ = r.Close()
		_ = w.Close()
		return nil, err
	}
	return &SignalRegistry{
		entries: make(map[int]*signalEntry),
		pipeR:   r,
		pipeW:   w,
	}, nil
}

// SelfPipeFD returns the read end the Awaiter adds to its read-set so a
// signal landing between iterations still wakes a blocked pselect.
func (r *SignalRegistry) SelfPipeFD() int { return int(r.pipeR.Fd()) }

// MaskForPselect returns the signal mask to pass to the kernel wait
// primitive. Always nil: see the type's doc comment for why the
// atomic-unmask step has no equivalent once os/signal owns delivery.
func (r *SignalRegistry) MaskForPselect() *unix.Sigset_t { return nil }

// AddHandler installs closure as a listener for sig, installing the
// signal.Notify relay on first registration for that number. The
// returned Canceler removes just this listener and, if it was the last
// one for sig, stops the relay and restores the default disposition.
//
// sig is validated against [maxSignalNumber] before anything is installed:
// signal.Notify itself never fails, so without this check an invalid
// signal number would never surface the resource error spec §4.7's
// Result<Canceler, error_code> promises — the original's sigaction would
// reject it outright.
func (r *SignalRegistry) AddHandler(sig int, closure func(int)) (Canceler, error) {
	if sig < 1 || sig > maxSignalNumber {
		return nil, fmt.Errorf("sasync: signal number %d out of range", sig)
	}

	r.mu.Lock()
	entry, ok := r.entries[sig]
	if !ok {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.Signal(sig))
		stop := make(chan struct{})
		entry = &signalEntry{ch: ch, stop: stop, listeners: make(map[uint64]func(int))}
		r.entries[sig] = entry
		r.pending.Store(sig, new(atomic.Bool))
		go r.relay(sig, ch, stop)
	}
	id := entry.nextID
	entry.nextID++
	entry.listeners[id] = closure
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		e, ok := r.entries[sig]
		if !ok {
			return
		}
		delete(e.listeners, id)
		if len(e.listeners) == 0 {
			signal.Stop(e.ch)
			close(e.stop)
			delete(r.entries, sig)
			r.pending.Delete(sig)
		}
	}, nil
}

// relay forwards signal.Notify deliveries into the pending-flags map and
// wakes the self-pipe. This is the Go translation of the async-signal-safe
// trampoline spec §4.7 requires: it touches only the pending flag (an
// atomic.Bool) and the pipe, and does no listener invocation itself.
func (r *SignalRegistry) relay(sig int, ch chan os.Signal, stop chan struct{}) {
	for {
		select {
		case <-ch:
			if v, ok := r.pending.Load(sig); ok {
				v.(*atomic.Bool).Store(true)
			}
			r.wake()
		case <-stop:
			return
		}
	}
}

func (r *SignalRegistry) wake() {
	// Nonblocking: a full pipe just means a wake is already pending.
	_, _ = r.pipeW.Write([]byte{0})
}

func (r *SignalRegistry) drainSelfPipe() {
	var buf [64]byte
	for {
		n, err := r.pipeR.Read(buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

// CallHandlers dispatches every signal whose pending flag is set,
// clearing each flag as it goes — spec §4.7's call_handlers, run
// synchronously from the awaiter's cooperative loop, never from the
// relay goroutine itself.
func (r *SignalRegistry) CallHandlers() {
	r.drainSelfPipe()
	r.pending.Range(func(key, value any) bool {
		sig := key.(int)
		flag := value.(*atomic.Bool)
		if !flag.CompareAndSwap(true, false) {
			return true
		}
		r.mu.Lock()
		var fns []func(int)
		if entry, ok := r.entries[sig]; ok {
			fns = make([]func(int), 0, len(entry.listeners))
			for _, fn := range entry.listeners {
				fns = append(fns, fn)
			}
		}
		r.mu.Unlock()
		for _, fn := range fns {
			fn(sig)
		}
		return true
	})
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

import "time"

// fdSetWords sizes fdSet to cover FDs 0..511, comfortably past the
// default RLIMIT_NOFILE on every platform this targets.
const fdSetWords = 8

// maxFD is the largest file descriptor fdSet can represent. A trigger
// naming a larger FD is the spec §7 "out-of-range FD" case.
const maxFD = fdSetWords*64 - 1

// fdSet is a fixed-capacity file-descriptor bitset, the shape the kernel
// wait primitive's read/write/error sets take. Built in-package rather
// than pulled from the standard library, which exposes no FD-set type at
// all — x/sys/unix's own unix.FdSet is architecture-specific and is only
// reached for at the kernelwait_unix.go boundary, right before the
// syscall.
type fdSet struct {
	bits [fdSetWords]uint64
}

// set records fd in the set. Reports false, leaving the set unchanged, if
// fd is out of fdSet's range.
func (s *fdSet) set(fd int) bool {
	if fd < 0 || fd > maxFD {
		return false
	}
	s.bits[fd/64] |= 1 << uint(fd%64)
	return true
}

func (s *fdSet) isSet(fd int) bool {
	if fd < 0 || fd > maxFD {
		return false
	}
	return s.bits[fd/64]&(1<<uint(fd%64)) != 0
}

func (s *fdSet) zero() { *s = fdSet{} }

func (s *fdSet) isEmpty() bool {
	for _, w := range s.bits {
		if w != 0 {
			return false
		}
	}
	return true
}

// kernelWaiter is the abstraction the awaiter consumes for spec §6.1's
// pselect-class primitive. Split out as an interface so tests can supply
// a fake one without touching a real kernel wait call.
type kernelWaiter interface {
	// pselect blocks until a watched condition in r/w/e holds, timeout
	// elapses (if hasTimeout), or a signal arrives. On success it narrows
	// r/w/e in place to exactly the FDs whose condition held. nfd is one
	// greater than the largest FD referenced across r/w/e.
	pselect(nfd int, r, w, e *fdSet, timeout time.Duration, hasTimeout bool) error
}

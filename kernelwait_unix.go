// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package sasync

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// unixKernelWaiter implements the kernel wait primitive with a genuine
// pselect(2) call via golang.org/x/sys/unix, the package the standard
// library deliberately omits this syscall from.
type unixKernelWaiter struct{}

func newKernelWaiter() kernelWaiter { return unixKernelWaiter{} }

func (unixKernelWaiter) pselect(nfd int, r, w, e *fdSet, timeout time.Duration, hasTimeout bool) error {
	ur, uw, ue := toUnixFdSet(r), toUnixFdSet(w), toUnixFdSet(e)

	var ts *unix.Timespec
	if hasTimeout {
		if timeout < 0 {
			timeout = 0
		}
		spec := unix.NsecToTimespec(timeout.Nanoseconds())
		ts = &spec
	}

	// sigmask is always nil: SignalRegistry.MaskForPselect documents why
	// the atomic-unmask-during-wait step the original relies on has no
	// equivalent once signal delivery goes through os/signal.
	err := unix.Pselect(nfd, ur, uw, ue, ts, nil)
	if err != nil {
		return err
	}

	fromUnixFdSet(ur, r)
	fromUnixFdSet(uw, w)
	fromUnixFdSet(ue, e)
	return nil
}

// unixFdSetBytes views u.Bits as its raw bytes, sidestepping the fact that
// the element type of unix.FdSet.Bits is architecture-dependent: []int64
// on linux/amd64+arm64, but [32]int32 on darwin (every arch) and on
// 32-bit linux (386, arm). Operating byte-by-byte (global byte index
// fd/8, bit fd%8 within it) gives the same bit position as the kernel's
// own word-at-a-time scheme on every little-endian target this builds
// for — the only family of "unix" GOARCHes Go actually supports today —
// without hardcoding a word width that only holds on some of them.
func unixFdSetBytes(u *unix.FdSet) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&u.Bits[0])), len(u.Bits)*int(unsafe.Sizeof(u.Bits[0])))
}

// setUnixFdSetBit sets fd's bit in u, reporting false without modifying u
// if fd falls outside what u.Bits can represent on this platform.
func setUnixFdSetBit(u *unix.FdSet, fd int) bool {
	b := unixFdSetBytes(u)
	byteIdx, bitIdx := fd/8, uint(fd%8)
	if byteIdx < 0 || byteIdx >= len(b) {
		return false
	}
	b[byteIdx] |= 1 << bitIdx
	return true
}

// isUnixFdSetBitSet reports whether fd's bit is set in u.
func isUnixFdSetBitSet(u *unix.FdSet, fd int) bool {
	b := unixFdSetBytes(u)
	byteIdx, bitIdx := fd/8, uint(fd%8)
	if byteIdx < 0 || byteIdx >= len(b) {
		return false
	}
	return b[byteIdx]&(1<<bitIdx) != 0
}

// toUnixFdSet copies s's bits into a freshly allocated unix.FdSet, or
// returns nil for a nil/empty set so pselect treats it as unwatched.
func toUnixFdSet(s *fdSet) *unix.FdSet {
	if s == nil {
		return nil
	}
	var u unix.FdSet
	empty := true
	for fd := 0; fd <= maxFD; fd++ {
		if !s.isSet(fd) {
			continue
		}
		if setUnixFdSetBit(&u, fd) {
			empty = false
		}
	}
	if empty {
		return nil
	}
	return &u
}

// fromUnixFdSet narrows dst to exactly the FDs both present in dst before
// the call and set in u after it — the kernel's own narrowing, translated
// back into our portable fdSet shape.
func fromUnixFdSet(u *unix.FdSet, dst *fdSet) {
	if u == nil || dst == nil {
		return
	}
	var out fdSet
	for fd := 0; fd <= maxFD; fd++ {
		if !dst.isSet(fd) {
			continue
		}
		if isUnixFdSetBitSet(u, fd) {
			out.set(fd)
		}
	}
	*dst = out
}

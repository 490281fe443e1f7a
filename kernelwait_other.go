// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !unix

package sasync

import (
	"errors"
	"time"
)

// portableKernelWaiter is the non-unix fallback: it cannot multiplex file
// descriptors (no pselect-class primitive to call), but a pure-timeout
// wait — by far the common case for a shell's job-control loop — still
// works with a plain sleep.
type portableKernelWaiter struct{}

func newKernelWaiter() kernelWaiter { return portableKernelWaiter{} }

func (portableKernelWaiter) pselect(nfd int, r, w, e *fdSet, timeout time.Duration, hasTimeout bool) error {
	if (r != nil && !r.isEmpty()) || (w != nil && !w.isEmpty()) || (e != nil && !e.isEmpty()) {
		return errors.New("sasync: kernel wait primitive not available for file descriptors on this platform")
	}
	if !hasTimeout {
		return errors.New("sasync: kernel wait primitive cannot block indefinitely on this platform")
	}
	if timeout < 0 {
		timeout = 0
	}
	time.Sleep(timeout)
	return nil
}

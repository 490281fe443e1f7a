// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

import "errors"

// ErrTooManyOpenFiles is the domain error kind an [Awaiter.Expect] future
// fails with when a trigger names a file descriptor past the kernel wait
// primitive's capacity (spec §7's "out-of-range FD").
var ErrTooManyOpenFiles = errors.New("sasync: too many open files")

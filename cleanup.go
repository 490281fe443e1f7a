// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

// Canceler reverses a registration: removing a signal listener, dropping
// a pending event's hold on its side effects. Adapted from the teacher's
// resource.go Bracket/OnError shape — a release step guaranteed to run
// regardless of how the guarded operation concluded — narrowed here to a
// single zero-argument callback, since the core's resources (signal
// listeners, FD watches) need no acquired value threaded through release.
type Canceler func()

// CancelAll invokes every non-nil canceler, in order. A pending event
// fires exactly once and runs its full canceler list at that point — the
// per-event equivalent of resource.go's guaranteed release.
func CancelAll(cancelers []Canceler) {
	for _, c := range cancelers {
		if c != nil {
			c()
		}
	}
}

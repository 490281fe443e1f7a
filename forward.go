// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

import "weak"

// forward implements spec §4.2's chain-collapse optimization. It connects
// from (upstream) to to (downstream) so a result set on from is relayed to
// to without allocating an intermediate callback closure, and — the point
// of the exercise — without keeping every intermediate delay in a long
// chain alive. This is the same shape as the teacher's evalFrames chain
// flattening (trampoline.go): normalize both ends to their current
// terminus before doing anything else, so repeated forwarding never grows
// an indirection chain deeper than one hop.
//
// Preconditions (violating either is a contract error in the caller, not
// checked here beyond what falls out naturally): from.output is empty,
// to.input is empty.
func forward[T any](from, to *delay[T]) {
	// Normalize from: if it is itself a forward-source, resolve to its
	// upstream. A collected upstream makes this whole call a no-op.
	if from.inputKind == inputForwardSource {
		up := from.source.Value()
		if up == nil {
			return
		}
		from = up
	}

	// Normalize to: if it is itself a forward-target, resolve to its
	// downstream.
	if to.outputKind == outputForwardTarget {
		to = to.target
	}

	if from.inputKind == inputResult {
		to.setResult(from.result)
		return
	}

	if to.outputKind == outputCallback {
		from.setCallback(to.callback)
		return
	}

	to.inputKind = inputForwardSource
	to.source = weak.Make(from)
	from.outputKind = outputForwardTarget
	from.target = to
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sasync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSharedFutureBroadcastsToListenersBeforeAndAfterSettle is spec §8's
// universal invariant: "For any SharedFuture constructed before its result
// is set, all callbacks attached before and after the result fire with the
// same const-reference value."
func TestSharedFutureBroadcastsToListenersBeforeAndAfterSettle(t *testing.T) {
	p, f := NewPromiseFuture[int]()
	sf := f.Share()

	var before, before2 int
	sf.Then(func(r Result[int]) { before = r.Value() })
	sf.Then(func(r Result[int]) { before2 = r.Value() })

	p.SetResult(8)

	var after int
	sf.Then(func(r Result[int]) { after = r.Value() })

	assert.Equal(t, 8, before)
	assert.Equal(t, 8, before2)
	assert.Equal(t, 8, after)
}

func TestSharedFutureListenerAfterSettleRunsImmediately(t *testing.T) {
	p, f := NewPromiseFuture[int]()
	p.SetResult(19)
	sf := f.Share()

	called := false
	sf.Then(func(r Result[int]) {
		called = true
		assert.Equal(t, 19, r.Value())
	})
	assert.True(t, called)
}

func TestSharedFutureEqualityIsSharedStateIdentity(t *testing.T) {
	_, f := NewPromiseFuture[int]()
	sf := f.Share()
	copyA := sf
	copyB := sf

	// Equal compares the shared state record, not the lazily-allocated
	// callback multiplexer, so it already holds before any copy has
	// attached a listener, and still holds afterwards.
	assert.True(t, copyA.Equal(copyB))
	copyA.Then(func(Result[int]) {})
	assert.True(t, copyA.Equal(copyB))
}

func TestSharedFutureDistinctSharesAreNotEqual(t *testing.T) {
	_, f1 := NewPromiseFuture[int]()
	_, f2 := NewPromiseFuture[int]()
	s1 := f1.Share()
	s2 := f2.Share()
	s1.Then(func(Result[int]) {})
	s2.Then(func(Result[int]) {})
	assert.False(t, s1.Equal(s2))
}

func TestSharedFutureForward(t *testing.T) {
	p, f := NewPromiseFuture[int]()
	sf := f.Share()
	rp, rf := NewPromiseFuture[int]()
	sf.Forward(rp)

	var got int
	rf.Then(func(r Result[int]) { got = r.Value() })
	p.SetResult(44)
	assert.Equal(t, 44, got)
}

func TestMapSharedShortCircuitsOnError(t *testing.T) {
	sentinel := errors.New("boom")
	p, f := NewPromiseFuture[int]()
	sf := f.Share()
	mapped := MapShared(sf, func(int) int { return 1 })

	var got Result[int]
	mapped.Then(func(r Result[int]) { got = r })
	p.Fail(sentinel)

	require.False(t, got.Ok())
	assert.Same(t, sentinel, got.Err())
}

func TestRecoverSharedCalledOnlyOnError(t *testing.T) {
	p, f := NewPromiseFuture[int]()
	sf := f.Share()
	recovered := RecoverShared(sf, func(error) int { return 12 })

	var got int
	recovered.Then(func(r Result[int]) { got = r.Value() })
	p.Fail(errors.New("boom"))
	assert.Equal(t, 12, got)
}

func TestThenSharedFutureDeliversReturnValue(t *testing.T) {
	p, f := NewPromiseFuture[int]()
	sf := f.Share()
	result := ThenSharedFuture(sf, func(r Result[int]) int { return r.Value() + 1 })

	var got int
	result.Then(func(r Result[int]) { got = r.Value() })
	p.SetResult(9)
	assert.Equal(t, 10, got)
}

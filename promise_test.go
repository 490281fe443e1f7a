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

func TestPromiseSetResultDetaches(t *testing.T) {
	p, f := NewPromiseFuture[int]()
	require.True(t, p.Valid())

	p.SetResult(10)
	assert.False(t, p.Valid())

	var got int
	f.Then(func(r Result[int]) { got = r.Value() })
	assert.Equal(t, 10, got)
}

func TestPromiseSetResultTwicePanics(t *testing.T) {
	p, _ := NewPromiseFuture[int]()
	p.SetResult(1)
	assert.Panics(t, func() { p.SetResult(2) })
}

func TestPromiseSetResultFromCapturesPanic(t *testing.T) {
	p, f := NewPromiseFuture[int]()
	p.SetResultFrom(func() int { panic("bad") })

	var got Result[int]
	f.Then(func(r Result[int]) { got = r })
	assert.False(t, got.Ok())
	assert.ErrorContains(t, got.Err(), "bad")
}

func TestPromiseFail(t *testing.T) {
	sentinel := errors.New("broke")
	p, f := NewPromiseFuture[int]()
	p.Fail(sentinel)

	var got Result[int]
	f.Then(func(r Result[int]) { got = r })
	assert.Same(t, sentinel, got.Err())
}

func TestPromiseFailWithCurrentRequiresActivePanic(t *testing.T) {
	p, _ := NewPromiseFuture[int]()
	assert.Panics(t, func() { p.FailWithCurrent(nil) })
}

func TestPromiseFailWithCurrent(t *testing.T) {
	p, f := NewPromiseFuture[int]()
	func() {
		defer func() {
			p.FailWithCurrent(recover())
		}()
		panic(errors.New("from deep"))
	}()

	var got Result[int]
	f.Then(func(r Result[int]) { got = r })
	assert.ErrorContains(t, got.Err(), "from deep")
}

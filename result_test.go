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

func TestResultValue(t *testing.T) {
	r := Value(42)
	assert.True(t, r.Ok())
	assert.Equal(t, 42, r.Value())
	assert.Nil(t, r.Err())
}

func TestResultError(t *testing.T) {
	sentinel := errors.New("boom")
	r := Error[int](sentinel)
	assert.False(t, r.Ok())
	assert.Equal(t, sentinel, r.Err())
}

func TestResultValuePanicsOnError(t *testing.T) {
	r := Error[int](errors.New("boom"))
	assert.Panics(t, func() { r.Value() })
}

func TestTryCapturesReturn(t *testing.T) {
	r := Try(func() int { return 7 })
	require.True(t, r.Ok())
	assert.Equal(t, 7, r.Value())
}

func TestTryCapturesPanic(t *testing.T) {
	r := Try(func() int { panic("kaboom") })
	require.False(t, r.Ok())
	assert.ErrorContains(t, r.Err(), "kaboom")
}

func TestTryCapturesPanicWithError(t *testing.T) {
	sentinel := errors.New("boom")
	r := Try(func() int { panic(sentinel) })
	require.False(t, r.Ok())
	assert.ErrorIs(t, r.Err(), sentinel)
}

func TestTryFromPropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	r := TryFrom(func() (int, error) { return 0, sentinel })
	require.False(t, r.Ok())
	assert.Same(t, sentinel, r.Err())
}

func TestTryFromCapturesPanic(t *testing.T) {
	r := TryFrom(func() (int, error) { panic("kaboom") })
	require.False(t, r.Ok())
	assert.ErrorContains(t, r.Err(), "kaboom")
}

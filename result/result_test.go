package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOKResult(t *testing.T) {
	r := OK(42)

	assert.True(t, r.IsOK())
	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, KindOK, r.Err().Kind)
}

func TestFailResult(t *testing.T) {
	r := Fail[int](KindDecodeError, "bad input")

	assert.False(t, r.IsOK())
	_, ok := r.Value()
	assert.False(t, ok)
	assert.Equal(t, KindDecodeError, r.Err().Kind)
	assert.Equal(t, "decode error: bad input", r.Err().Error())
}

func TestFailWithPartial(t *testing.T) {
	r := FailWithPartial(KindChecksumMismatch, "FCS mismatch", "partial")

	assert.False(t, r.IsOK())
	assert.Equal(t, KindChecksumMismatch, r.Err().Kind)
	assert.Equal(t, "partial", r.Err().Partial)
}

func TestCombineConcatenates(t *testing.T) {
	combined := Combine([]Result[[]int]{
		OK([]int{1, 2}),
		OK[[]int](nil),
		OK([]int{3}),
	})

	v, ok := combined.Value()
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, v)
}

func TestCombinePropagatesErrorWithPartial(t *testing.T) {
	combined := Combine([]Result[[]int]{
		OK([]int{1}),
		Fail[[]int](KindResourceExhausted, "full"),
		OK([]int{2}),
	})

	assert.False(t, combined.IsOK())
	assert.Equal(t, KindResourceExhausted, combined.Err().Kind)
	// Everything decoded before the error stays attached.
	assert.Equal(t, []int{1}, combined.Err().Partial)
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "ok", KindOK.String())
	assert.Equal(t, "unavailable", KindUnavailable.String())
	assert.Equal(t, "checksum mismatch", KindChecksumMismatch.String())
	assert.Equal(t, "resource exhausted", KindResourceExhausted.String())
	assert.Equal(t, "decode error", KindDecodeError.String())
}

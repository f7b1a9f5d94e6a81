package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRingPushAndAt(t *testing.T) {
	r := NewRing[int](3)

	assert.True(t, r.Empty())
	assert.Equal(t, 3, r.Capacity())

	r.Push(1)
	r.Push(2)
	assert.Equal(t, 2, r.Size())
	assert.Equal(t, 1, r.Front())
	assert.Equal(t, 2, r.Back())

	r.Push(3)
	assert.True(t, r.Full())

	evicted, didEvict := r.Push(4)
	assert.True(t, didEvict)
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 2, r.Front())
	assert.Equal(t, 4, r.Back())
	assert.Equal(t, 3, r.At(1))
}

func TestRingBehavesLikeBoundedQueue(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 16).Draw(t, "capacity")
		values := rapid.SliceOf(rapid.Int()).Draw(t, "values")

		ring := NewRing[int](capacity)
		var model []int
		for _, v := range values {
			ring.Push(v)
			model = append(model, v)
			if len(model) > capacity {
				model = model[1:]
			}
		}

		assert.Equal(t, len(model), ring.Size())
		for i, want := range model {
			assert.Equal(t, want, ring.At(i))
		}
	})
}

func TestRingReset(t *testing.T) {
	r := NewRing[int](2)
	r.Push(1)
	r.Push(2)
	r.Reset()

	assert.True(t, r.Empty())
	r.Push(7)
	assert.Equal(t, 7, r.Front())
}

func TestRingEachVisitsOldestFirst(t *testing.T) {
	r := NewRing[int](3)
	for _, v := range []int{1, 2, 3, 4} {
		r.Push(v)
	}

	var got []int
	r.Each(func(_ int, v int) { got = append(got, v) })
	assert.Equal(t, []int{2, 3, 4}, got)
}

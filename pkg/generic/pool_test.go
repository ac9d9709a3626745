package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHotPoolFIFO(t *testing.T) {
	p := NewHotPool(func(i int) int { return i }, 3)
	require.Equal(t, 3, p.Len())
	require.Equal(t, 3, p.Cap())

	v, ok := p.Get()
	require.True(t, ok)
	assert.Equal(t, 0, v)

	require.NoError(t, p.Put(v))
	v, _ = p.Get()
	assert.Equal(t, 1, v)
	v, _ = p.Get()
	assert.Equal(t, 2, v)
	v, _ = p.Get()
	assert.Equal(t, 0, v)

	_, ok = p.Get()
	assert.False(t, ok)
	assert.Equal(t, 3, p.InUse())
}

func TestPoolPutFull(t *testing.T) {
	p := NewHotPool(func(i int) string { return "x" }, 1)
	assert.ErrorIs(t, p.Put("y"), ErrPoolFull)
}

func TestPoolEach(t *testing.T) {
	p := NewHotPool(func(i int) int { return i * 10 }, 4)
	_, _ = p.Get()
	var seen []int
	p.Each(func(v int) { seen = append(seen, v) })
	assert.Equal(t, []int{10, 20, 30}, seen)
}

func TestZeroCapacityPool(t *testing.T) {
	p := NewPool[int](0)
	_, ok := p.Get()
	assert.False(t, ok)
	assert.ErrorIs(t, p.Put(1), ErrPoolFull)
}

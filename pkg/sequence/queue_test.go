package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueOrderAndGrowth(t *testing.T) {
	q := NewQueue[int](2)
	for i := 0; i < 10; i++ {
		q.Enqueue(i)
	}
	require.Equal(t, 10, q.Len())

	head, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 0, head)

	for i := 0; i < 10; i++ {
		v, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok = q.Dequeue()
	assert.False(t, ok)
	assert.True(t, q.IsEmpty())
}

func TestQueueWrapAround(t *testing.T) {
	q := NewQueue[string](3)
	q.Enqueue("a")
	q.Enqueue("b")
	_, _ = q.Dequeue()
	q.Enqueue("c")
	q.Enqueue("d")
	q.Enqueue("e")

	var seen []string
	q.Each(func(s string) { seen = append(seen, s) })
	assert.Equal(t, []string{"b", "c", "d", "e"}, seen)
}

func TestQueueDrain(t *testing.T) {
	q := NewQueue[int](4)
	q.Enqueue(1)
	q.Enqueue(2)

	var seen []int
	n := q.Drain(func(v int) {
		seen = append(seen, v)
		if v == 1 {
			q.Enqueue(3)
		}
	})
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.True(t, q.IsEmpty())
}

func TestQueueClear(t *testing.T) {
	q := NewQueue[int](1)
	q.Enqueue(1)
	q.Enqueue(2)
	q.Clear()
	assert.Equal(t, 0, q.Len())
	_, ok := q.Peek()
	assert.False(t, ok)
}

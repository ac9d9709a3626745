package sequence

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	assert.Nil(t, Map[int, string](nil, func(int) string { return "" }))
	assert.Equal(t, []int{2, 4, 6}, Map([]int{1, 2, 3}, func(v int) int { return v * 2 }))
}

func TestFilterStopsEarly(t *testing.T) {
	evens := Filter(slices.Values([]int{1, 2, 3, 4, 5, 6}), func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4, 6}, slices.Collect(evens))

	var first []int
	for v := range evens {
		first = append(first, v)
		break
	}
	assert.Equal(t, []int{2}, first)
}

func TestCountBy(t *testing.T) {
	names := slices.Values([]string{"slime", "bat", "slime", "boar"})
	assert.Equal(t, map[string]int{"slime": 2, "bat": 1, "boar": 1}, CountBy(names, func(s string) string { return s }))

	byInitial := CountBy(names, func(s string) byte { return s[0] })
	assert.Equal(t, map[byte]int{'s': 2, 'b': 2}, byInitial)
}

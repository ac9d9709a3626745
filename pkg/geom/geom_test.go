package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Basics(t *testing.T) {
	a := V(3, 4)
	assert.Equal(t, 5.0, a.Length())
	assert.InDelta(t, 1.0, a.Normalized().Length(), 1e-9)
	assert.Equal(t, Zero, Zero.Normalized())
	assert.Equal(t, V(4, 6), a.Add(V(1, 2)))
	assert.Equal(t, V(2, 2), a.Sub(V(1, 2)))
	assert.Equal(t, V(6, 8), a.Mul(2))
	assert.Equal(t, V(-4, 3), a.Perpendicular())
}

func TestVec2Rotated(t *testing.T) {
	r := V(1, 0).Rotated(math.Pi / 2)
	assert.InDelta(t, 0, r.X, 1e-9)
	assert.InDelta(t, 1, r.Y, 1e-9)
}

func TestVec2DirectionTo(t *testing.T) {
	d := V(0, 0).DirectionTo(V(10, 0))
	assert.Equal(t, V(1, 0), d)
	assert.Equal(t, Zero, V(2, 2).DirectionTo(V(2, 2)))
}

func TestRectHasPointHalfOpen(t *testing.T) {
	r := NewRect(0, 0, 512, 512)
	assert.True(t, r.HasPoint(V(0, 0)))
	assert.True(t, r.HasPoint(V(100, 100)))
	assert.False(t, r.HasPoint(V(512, 100)))
	assert.False(t, r.HasPoint(V(100, 512)))
	assert.False(t, r.HasPoint(V(-0.1, 5)))
}

func TestRectTranslate(t *testing.T) {
	r := NewRect(0, 0, 512, 512).Translate(V(512, 0))
	assert.Equal(t, V(512, 0), r.Position)
	assert.Equal(t, V(1024, 512), r.End())
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(V(100, 100), V(200, 100))
	assert.Equal(t, V(0, 50), r.Position)
	assert.Equal(t, V(200, 150), r.End())
}

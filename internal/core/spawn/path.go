package spawn

import (
	"math"

	"github.com/zeusync/arena/pkg/geom"
)

// Path is a closed polyline sampled by arc-length ratio.
type Path struct {
	points []geom.Vec2
	// cumulative[i] is the length from points[0] to points[i]; the last
	// element closes the loop back to points[0].
	cumulative []float64
}

func NewPath(points []geom.Vec2) Path {
	p := Path{points: points, cumulative: make([]float64, len(points)+1)}
	for i := range points {
		next := points[(i+1)%len(points)]
		p.cumulative[i+1] = p.cumulative[i] + points[i].DistanceTo(next)
	}
	return p
}

func (p Path) Length() float64 {
	if len(p.cumulative) == 0 {
		return 0
	}
	return p.cumulative[len(p.cumulative)-1]
}

func (p Path) Points() []geom.Vec2 { return p.points }

// At returns the point at ratio in [0, 1] of the loop length, relative to the
// path's own origin.
func (p Path) At(ratio float64) geom.Vec2 {
	switch len(p.points) {
	case 0:
		return geom.Zero
	case 1:
		return p.points[0]
	}
	ratio = math.Min(math.Max(ratio, 0), 1)
	target := ratio * p.Length()
	for i := 0; i < len(p.points); i++ {
		start, end := p.cumulative[i], p.cumulative[i+1]
		if target > end && i < len(p.points)-1 {
			continue
		}
		segment := end - start
		if segment == 0 {
			return p.points[i]
		}
		next := p.points[(i+1)%len(p.points)]
		return p.points[i].Lerp(next, (target-start)/segment)
	}
	return p.points[0]
}

// Circle returns a regular polygon of n points approximating a circle.
func Circle(radius float64, n int) Path {
	return NewPath(ring(radius, n, 0))
}

func Hexagon(radius float64) Path {
	return NewPath(ring(radius, 6, 0))
}

func Diamond(size float64) Path {
	return NewPath([]geom.Vec2{
		{X: 0, Y: -size},
		{X: size, Y: 0},
		{X: 0, Y: size},
		{X: -size, Y: 0},
	})
}

// Star alternates five outer points with five inner points at half the
// radius.
func Star(radius float64) Path {
	points := make([]geom.Vec2, 0, 10)
	step := 2 * math.Pi / 5
	for i := range 5 {
		outer := step * float64(i)
		points = append(points,
			geom.FromAngle(outer).Mul(radius),
			geom.FromAngle(outer+math.Pi/5).Mul(radius/2),
		)
	}
	return NewPath(points)
}

func ring(radius float64, n int, phase float64) []geom.Vec2 {
	points := make([]geom.Vec2, n)
	step := 2 * math.Pi / float64(n)
	for i := range points {
		points[i] = geom.FromAngle(phase + step*float64(i)).Mul(radius)
	}
	return points
}

// SpawnPath is a path anchored at Subject - Offset.
type SpawnPath struct {
	Name   string
	Path   Path
	Offset geom.Vec2
}

// Point returns the world position at ratio along the path anchored around
// subject.
func (s SpawnPath) Point(subject geom.Vec2, ratio float64) geom.Vec2 {
	return subject.Sub(s.Offset).Add(s.Path.At(ratio))
}

const circlePoints = 20

// StandardPaths returns the five spawn paths used by every level.
func StandardPaths() []SpawnPath {
	return []SpawnPath{
		{Name: "small_circle", Path: Circle(300, circlePoints), Offset: geom.V(150, 150)},
		{Name: "large_circle", Path: Circle(500, circlePoints), Offset: geom.V(250, 250)},
		{Name: "hexagon", Path: Hexagon(400), Offset: geom.V(200, 200)},
		{Name: "diamond", Path: Diamond(350), Offset: geom.V(175, 175)},
		{Name: "star", Path: Star(400), Offset: geom.V(200, 200)},
	}
}

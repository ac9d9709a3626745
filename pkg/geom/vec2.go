package geom

import "math"

// Vec2 is a 2D vector with float coordinates used for positions and velocities.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Zero is the origin vector.
var Zero = Vec2{}

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul scales the vector.
func (v Vec2) Mul(scalar float64) Vec2 {
	return Vec2{X: v.X * scalar, Y: v.Y * scalar}
}

func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalized returns the unit vector, or Zero for a zero-length vector.
func (v Vec2) Normalized() Vec2 {
	length := v.Length()
	if length == 0 {
		return Zero
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Rotated rotates the vector counter-clockwise by angle radians.
func (v Vec2) Rotated(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Perpendicular returns the vector rotated by a quarter turn.
func (v Vec2) Perpendicular() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

func (v Vec2) DistanceTo(other Vec2) float64 {
	return other.Sub(v).Length()
}

// DirectionTo returns the unit vector pointing from v to other.
func (v Vec2) DirectionTo(other Vec2) Vec2 {
	return other.Sub(v).Normalized()
}

// Lerp interpolates linearly between v and other.
func (v Vec2) Lerp(other Vec2, t float64) Vec2 {
	return Vec2{X: v.X + (other.X-v.X)*t, Y: v.Y + (other.Y-v.Y)*t}
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// FromAngle returns the unit vector for an angle in radians.
func FromAngle(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: cos, Y: sin}
}

package world

import "github.com/zeusync/arena/pkg/geom"

// Direction is the side of the world rect a point has left through.
type Direction uint8

const (
	None Direction = iota
	NorthWest
	North
	NorthEast
	West
	East
	SouthWest
	South
	SouthEast
	// Indeterminate marks a point outside the rect that matched no side.
	Indeterminate
)

var directionNames = [...]string{
	None:          "none",
	NorthWest:     "north_west",
	North:         "north",
	NorthEast:     "north_east",
	West:          "west",
	East:          "east",
	SouthWest:     "south_west",
	South:         "south",
	SouthEast:     "south_east",
	Indeterminate: "indeterminate",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// Offset returns the chunk shift for a direction on a world of the given
// size. None and Indeterminate do not move.
func (d Direction) Offset(width, height float64) geom.Vec2 {
	switch d {
	case NorthWest:
		return geom.V(-width, -height)
	case North:
		return geom.V(0, -height)
	case NorthEast:
		return geom.V(width, -height)
	case West:
		return geom.V(-width, 0)
	case East:
		return geom.V(width, 0)
	case SouthWest:
		return geom.V(-width, height)
	case South:
		return geom.V(0, height)
	case SouthEast:
		return geom.V(width, height)
	default:
		return geom.Zero
	}
}

// Classify reports where p lies relative to rect. Diagonals win over single
// sides. East and South compare against the exclusive end edge so that every
// point rejected by rect.HasPoint gets a side.
func Classify(rect geom.Rect, p geom.Vec2) Direction {
	if rect.HasPoint(p) {
		return None
	}
	end := rect.End()
	west := p.X < rect.Position.X
	east := p.X >= end.X
	north := p.Y < rect.Position.Y
	south := p.Y >= end.Y

	switch {
	case north && west:
		return NorthWest
	case north && east:
		return NorthEast
	case south && west:
		return SouthWest
	case south && east:
		return SouthEast
	case west:
		return West
	case east:
		return East
	case north:
		return North
	case south:
		return South
	default:
		return Indeterminate
	}
}

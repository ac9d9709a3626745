package geom

// Rect is an axis-aligned rectangle described by its top-left corner and size.
type Rect struct {
	Position Vec2 `json:"position" yaml:"position"`
	Size     Vec2 `json:"size" yaml:"size"`
}

func NewRect(x, y, width, height float64) Rect {
	return Rect{Position: Vec2{X: x, Y: y}, Size: Vec2{X: width, Y: height}}
}

// CenteredRect returns a rect of the given size centred on center.
func CenteredRect(center, size Vec2) Rect {
	return Rect{Position: center.Sub(size.Mul(0.5)), Size: size}
}

// End returns the bottom-right corner.
func (r Rect) End() Vec2 {
	return r.Position.Add(r.Size)
}

// HasPoint reports whether p lies inside the rect. The rect is half-open:
// the left and top edges are inside, the right and bottom edges are not.
func (r Rect) HasPoint(p Vec2) bool {
	end := r.End()
	return p.X >= r.Position.X && p.Y >= r.Position.Y && p.X < end.X && p.Y < end.Y
}

// Translate returns the rect moved by offset.
func (r Rect) Translate(offset Vec2) Rect {
	return Rect{Position: r.Position.Add(offset), Size: r.Size}
}

func (r Rect) Width() float64  { return r.Size.X }
func (r Rect) Height() float64 { return r.Size.Y }

package world

import (
	"maps"

	"github.com/zeusync/arena/pkg/geom"
)

// Cell addresses one tile in a layer's grid.
type Cell struct {
	X, Y int
}

// TileID is an index into the level's tile set. Zero is a valid tile.
type TileID uint16

// CellRect is a rectangle in grid coordinates.
type CellRect struct {
	Position Cell
	Size     Cell
}

func (r CellRect) IsEmpty() bool {
	return r.Size.X <= 0 || r.Size.Y <= 0
}

// TileLayer is a named sparse tile grid placed in the world at Position.
type TileLayer struct {
	Name     string
	TileSize int
	Position geom.Vec2
	ZIndex   int
	Visible  bool
	tiles    map[Cell]TileID
}

func NewTileLayer(name string, tileSize int) *TileLayer {
	return &TileLayer{
		Name:     name,
		TileSize: tileSize,
		Visible:  true,
		tiles:    make(map[Cell]TileID),
	}
}

func (l *TileLayer) Set(c Cell, id TileID) {
	l.tiles[c] = id
}

func (l *TileLayer) Get(c Cell) (TileID, bool) {
	id, ok := l.tiles[c]
	return id, ok
}

func (l *TileLayer) Len() int {
	return len(l.tiles)
}

// Each visits every placed tile in no particular order.
func (l *TileLayer) Each(fn func(Cell, TileID)) {
	for c, id := range l.tiles {
		fn(c, id)
	}
}

// UsedRect returns the bounding box of the placed tiles.
func (l *TileLayer) UsedRect() CellRect {
	if len(l.tiles) == 0 {
		return CellRect{}
	}
	first := true
	var lo, hi Cell
	for c := range l.tiles {
		if first {
			lo, hi = c, c
			first = false
			continue
		}
		lo.X, lo.Y = min(lo.X, c.X), min(lo.Y, c.Y)
		hi.X, hi.Y = max(hi.X, c.X), max(hi.Y, c.Y)
	}
	return CellRect{Position: lo, Size: Cell{X: hi.X - lo.X + 1, Y: hi.Y - lo.Y + 1}}
}

// Duplicate returns a deep copy of the layer under a new name.
func (l *TileLayer) Duplicate(name string) *TileLayer {
	return &TileLayer{
		Name:     name,
		TileSize: l.TileSize,
		Position: l.Position,
		ZIndex:   l.ZIndex,
		Visible:  l.Visible,
		tiles:    maps.Clone(l.tiles),
	}
}

// Translate moves the layer by offset.
func (l *TileLayer) Translate(offset geom.Vec2) {
	l.Position = l.Position.Add(offset)
}

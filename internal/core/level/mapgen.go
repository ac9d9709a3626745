package level

import (
	"github.com/aquilax/go-perlin"
	"github.com/rotisserie/eris"

	"github.com/zeusync/arena/internal/core/world"
)

// MapSpec describes how the base layers of a level are generated.
type MapSpec struct {
	// Width and Height are in tiles.
	Width    int   `yaml:"width"`
	Height   int   `yaml:"height"`
	TileSize int   `yaml:"tile_size"`
	Seed     int64 `yaml:"seed"`
	// Scale divides tile coordinates before sampling noise; larger values
	// give wider terrain patches.
	Scale   float64 `yaml:"scale"`
	Alpha   float64 `yaml:"alpha"`
	Beta    float64 `yaml:"beta"`
	Octaves int32   `yaml:"octaves"`
	// Terrain lists background tile ids from low to high noise.
	Terrain []world.TileID `yaml:"terrain"`
	// Props are foreground tile ids scattered where the prop noise exceeds
	// 1-PropDensity.
	Props       []world.TileID `yaml:"props"`
	PropDensity float64        `yaml:"prop_density"`
}

func (s *MapSpec) applyDefaults() {
	if s.Scale == 0 {
		s.Scale = 8
	}
	if s.Alpha == 0 {
		s.Alpha = 2
	}
	if s.Beta == 0 {
		s.Beta = 2
	}
	if s.Octaves == 0 {
		s.Octaves = 3
	}
}

func (s MapSpec) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return eris.Wrapf(ErrInvalidMap, "size %dx%d must be positive", s.Width, s.Height)
	case s.TileSize <= 0:
		return eris.Wrapf(ErrInvalidMap, "tile_size %d must be positive", s.TileSize)
	case len(s.Terrain) == 0:
		return eris.Wrap(ErrInvalidMap, "terrain needs at least one tile id")
	case s.PropDensity < 0 || s.PropDensity > 1:
		return eris.Wrapf(ErrInvalidMap, "prop_density %v must be within [0, 1]", s.PropDensity)
	case s.PropDensity > 0 && len(s.Props) == 0:
		return eris.Wrap(ErrInvalidMap, "prop_density set without props")
	}
	return nil
}

// Map holds the generated base layers of a level.
type Map struct {
	foreground *world.TileLayer
	background *world.TileLayer
}

func (m *Map) Foreground() *world.TileLayer { return m.foreground }
func (m *Map) Background() *world.TileLayer { return m.background }

// Generate builds the base layers from spec. The same spec always yields the
// same tiles.
func Generate(spec MapSpec) (*Map, error) {
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	terrain := perlin.NewPerlin(spec.Alpha, spec.Beta, spec.Octaves, spec.Seed)
	props := perlin.NewPerlin(spec.Alpha, spec.Beta, spec.Octaves, spec.Seed+1)

	bg := world.NewTileLayer("Background", spec.TileSize)
	fg := world.NewTileLayer("Foreground", spec.TileSize)
	bg.ZIndex, fg.ZIndex = -999, -998

	for x := 0; x < spec.Width; x++ {
		for y := 0; y < spec.Height; y++ {
			cell := world.Cell{X: x, Y: y}
			nx, ny := float64(x)/spec.Scale, float64(y)/spec.Scale

			v := normalize(terrain.Noise2D(nx, ny))
			band := min(int(v*float64(len(spec.Terrain))), len(spec.Terrain)-1)
			bg.Set(cell, spec.Terrain[band])

			if spec.PropDensity == 0 {
				continue
			}
			p := normalize(props.Noise2D(nx, ny))
			if p > 1-spec.PropDensity {
				fg.Set(cell, spec.Props[(x*31+y*17)%len(spec.Props)])
			}
		}
	}
	return &Map{foreground: fg, background: bg}, nil
}

// normalize maps perlin output from roughly [-1, 1] into [0, 1].
func normalize(v float64) float64 {
	v = (v + 1) / 2
	return min(max(v, 0), 1)
}

package spawn

import (
	"github.com/rotisserie/eris"

	"github.com/zeusync/arena/pkg/geom"
)

type Config struct {
	// FloorMargin keeps the rising roll floor this far below the table total
	// so the lightest entries never become unreachable.
	FloorMargin float64 `yaml:"floor_margin"`
	// ViewportWidth and ViewportHeight size the on-screen rect centred on the
	// subject. Mobs outside it are throttled.
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
	// FrameSkip is how many ticks an off-screen mob skips between updates.
	FrameSkip int `yaml:"frame_skip"`
	// Seed fixes the random source; zero seeds from the runtime.
	Seed uint64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		FloorMargin:    5,
		ViewportWidth:  1152,
		ViewportHeight: 648,
		FrameSkip:      5,
	}
}

var ErrInvalidConfig = eris.New("invalid spawn configuration")

func (c Config) Validate() error {
	if c.FloorMargin < 0 {
		return eris.Wrapf(ErrInvalidConfig, "floor_margin %v must not be negative", c.FloorMargin)
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "viewport %vx%v must be positive", c.ViewportWidth, c.ViewportHeight)
	}
	if c.FrameSkip < 0 {
		return eris.Wrapf(ErrInvalidConfig, "frame_skip %d must not be negative", c.FrameSkip)
	}
	return nil
}

func (c Config) viewport() geom.Vec2 {
	return geom.V(c.ViewportWidth, c.ViewportHeight)
}

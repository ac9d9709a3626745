// Package world keeps an endless map around the player by streaming a 3x3
// grid of copies of the level's base tile layers. When the player leaves the
// authoritative rect, every layer shifts one world size in that direction.
package world

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/pkg/geom"
)

var (
	ErrMissingLayer = eris.New("base tile layer is missing")
	ErrEmptyLayer   = eris.New("base tile layer has no tiles")
)

// MapSource supplies the base layers of the loaded level.
type MapSource interface {
	Foreground() *TileLayer
	Background() *TileLayer
}

// Subject is the entity whose position drives streaming.
type Subject interface {
	Position() geom.Vec2
}

// Observer is notified after every shift.
type Observer interface {
	OnShift(d Direction)
}

// Chunk is one neighbour copy of the base layers.
type Chunk struct {
	Offset     Cell
	Background *TileLayer
	Foreground *TileLayer
}

const (
	backgroundZ = -999
	foregroundZ = -998
)

type Streamer struct {
	bus       bus.EventBus
	logger    log.Log
	subject   Subject
	source    MapSource
	binder    *bus.Binder
	observers []Observer

	foreground *TileLayer
	background *TileLayer
	chunks     []Chunk
	rect       geom.Rect
	width      float64
	height     float64

	loaded      bool
	initialized bool
	shifts      uint64
}

func NewStreamer(b bus.EventBus, logger log.Log, subject Subject, source MapSource) *Streamer {
	return &Streamer{
		bus:     b,
		logger:  logger.Named("streamer"),
		subject: subject,
		source:  source,
	}
}

func (s *Streamer) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Streamer) Attach() error {
	s.binder = bus.NewBinder(s.bus).On(events.Init, s.OnInit)
	return s.binder.Err()
}

func (s *Streamer) Name() string { return "streamer" }

func (s *Streamer) Detach() {
	if s.binder != nil {
		_ = s.binder.Release()
		s.binder = nil
	}
}

func (s *Streamer) IsInitialized() bool { return s.initialized }

func (s *Streamer) OnInit() {
	if s.initialized {
		s.logger.Warn("streamer already initialized, ignoring Init")
		return
	}
	if s.source == nil {
		s.logger.Error("no map source, world will not stream")
		return
	}
	if err := s.LoadTiles(s.source.Foreground(), s.source.Background()); err != nil {
		s.logger.Error("failed to load tiles", log.Error(err))
		return
	}
	s.initialized = true
}

// LoadTiles measures the background layer and builds the eight neighbour
// chunks around it.
func (s *Streamer) LoadTiles(foreground, background *TileLayer) error {
	if foreground == nil || background == nil {
		return eris.Wrap(ErrMissingLayer, "foreground and background layers are required")
	}
	used := background.UsedRect()
	if used.IsEmpty() || background.TileSize <= 0 {
		return eris.Wrapf(ErrEmptyLayer, "layer %s", background.Name)
	}

	s.foreground, s.background = foreground, background
	s.width = float64(used.Size.X * background.TileSize)
	s.height = float64(used.Size.Y * background.TileSize)
	s.rect = geom.NewRect(0, 0, s.width, s.height)
	s.chunks = s.chunks[:0]

	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			if x == 0 && y == 0 {
				continue
			}
			name := fmt.Sprintf("%d,%d", x, y)
			offset := geom.V(float64(x)*s.width, float64(y)*s.height)
			bg := background.Duplicate("Background_" + name)
			fg := foreground.Duplicate("Foreground_" + name)
			bg.Translate(offset)
			fg.Translate(offset)
			bg.ZIndex, fg.ZIndex = backgroundZ, foregroundZ
			s.chunks = append(s.chunks, Chunk{Offset: Cell{X: x, Y: y}, Background: bg, Foreground: fg})
		}
	}
	s.loaded = true

	s.logger.Info("loaded tiles",
		log.Float64("width", s.width),
		log.Float64("height", s.height),
		log.Int("chunks", len(s.chunks)),
	)
	return nil
}

// Tick shifts the world when the subject has left the authoritative rect and
// returns the direction of the shift. None means nothing moved.
func (s *Streamer) Tick(subject geom.Vec2) Direction {
	if !s.loaded {
		return None
	}
	d := Classify(s.rect, subject)
	switch d {
	case None:
		return None
	case Indeterminate:
		s.logger.Error("subject is outside the world rect but matched no side",
			log.Float64("x", subject.X),
			log.Float64("y", subject.Y),
		)
		return Indeterminate
	}
	s.shift(d)
	return d
}

// Update ticks with the current subject position.
func (s *Streamer) Update() Direction {
	if s.subject == nil {
		return None
	}
	return s.Tick(s.subject.Position())
}

func (s *Streamer) shift(d Direction) {
	offset := d.Offset(s.width, s.height)
	s.rect = s.rect.Translate(offset)
	s.background.Translate(offset)
	s.foreground.Translate(offset)
	for _, c := range s.chunks {
		c.Background.Translate(offset)
		c.Foreground.Translate(offset)
	}
	s.shifts++
	for _, o := range s.observers {
		o.OnShift(d)
	}
	s.logger.Debug("shifted world",
		log.Stringer("direction", d),
		log.Float64("x", s.rect.Position.X),
		log.Float64("y", s.rect.Position.Y),
	)
}

func (s *Streamer) WorldRect() geom.Rect { return s.rect }

// Size returns the world width and height in pixels.
func (s *Streamer) Size() (float64, float64) { return s.width, s.height }

// Shifts returns how many times the world has moved.
func (s *Streamer) Shifts() uint64 { return s.shifts }

func (s *Streamer) Chunks() []Chunk {
	out := make([]Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// Layers returns the base layers followed by every chunk layer.
func (s *Streamer) Layers() []*TileLayer {
	if !s.loaded {
		return nil
	}
	out := []*TileLayer{s.background, s.foreground}
	for _, c := range s.chunks {
		out = append(out, c.Background, c.Foreground)
	}
	return out
}

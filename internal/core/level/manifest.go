// Package level loads the level manifest: mob, chest and hero templates plus
// the levels that combine them into a playable session.
package level

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/arena/internal/core/models"
	"github.com/zeusync/arena/pkg/geom"
)

//go:embed default.yaml
var defaultManifest []byte

// Manifest is the whole content catalogue of the game.
type Manifest struct {
	Mobs   []models.MobTemplate   `yaml:"mobs"`
	Chests []models.ChestTemplate `yaml:"chests"`
	Heroes []models.HeroTemplate  `yaml:"heroes"`
	Levels []Level                `yaml:"levels"`
}

// Level names the templates and map of one playable level.
type Level struct {
	Name     string        `yaml:"name"`
	Type     Type          `yaml:"type"`
	Tier     Tier          `yaml:"tier"`
	MaxLevel uint32        `yaml:"max_level"`
	MaxTime  time.Duration `yaml:"max_time"`
	// Mobs is the spawn table by template name. A name may repeat.
	Mobs  []string  `yaml:"mobs"`
	Chest string    `yaml:"chest"`
	Hero  string    `yaml:"hero"`
	Spawn geom.Vec2 `yaml:"spawn"`
	Map   MapSpec   `yaml:"map"`
}

// Parse decodes a manifest. Unknown fields are rejected.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, eris.Wrap(err, "decode level manifest")
	}
	return &m, nil
}

func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open level manifest %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Default returns the manifest compiled into the binary.
func Default() (*Manifest, error) {
	return Parse(bytes.NewReader(defaultManifest))
}

// Validate checks names are unique and every reference resolves.
func (m *Manifest) Validate() error {
	mobs := make(map[string]bool, len(m.Mobs))
	for _, t := range m.Mobs {
		if t.Name == "" {
			return eris.Wrap(ErrInvalidManifest, "mob without a name")
		}
		if mobs[t.Name] {
			return eris.Wrapf(ErrInvalidManifest, "duplicate mob %s", t.Name)
		}
		mobs[t.Name] = true
	}
	chests := make(map[string]bool, len(m.Chests))
	for _, t := range m.Chests {
		if chests[t.Name] {
			return eris.Wrapf(ErrInvalidManifest, "duplicate chest %s", t.Name)
		}
		chests[t.Name] = true
	}
	heroes := make(map[string]bool, len(m.Heroes))
	for _, t := range m.Heroes {
		if heroes[t.Name] {
			return eris.Wrapf(ErrInvalidManifest, "duplicate hero %s", t.Name)
		}
		heroes[t.Name] = true
	}

	levels := make(map[string]bool, len(m.Levels))
	for _, l := range m.Levels {
		if levels[l.Name] {
			return eris.Wrapf(ErrInvalidManifest, "duplicate level %s", l.Name)
		}
		levels[l.Name] = true
		if len(l.Mobs) == 0 {
			return eris.Wrapf(ErrInvalidManifest, "level %s has an empty mob table", l.Name)
		}
		for _, name := range l.Mobs {
			if !mobs[name] {
				return eris.Wrapf(ErrInvalidManifest, "level %s references unknown mob %s", l.Name, name)
			}
		}
		if !chests[l.Chest] {
			return eris.Wrapf(ErrInvalidManifest, "level %s references unknown chest %q", l.Name, l.Chest)
		}
		if !heroes[l.Hero] {
			return eris.Wrapf(ErrInvalidManifest, "level %s references unknown hero %q", l.Name, l.Hero)
		}
		spec := l.Map
		spec.applyDefaults()
		if err := spec.Validate(); err != nil {
			return eris.Wrapf(err, "level %s", l.Name)
		}
	}
	return nil
}

// LevelNames lists the levels in manifest order.
func (m *Manifest) LevelNames() []string {
	names := make([]string, 0, len(m.Levels))
	for _, l := range m.Levels {
		names = append(names, l.Name)
	}
	return names
}

// Resolve binds a level to its templates and generates its map.
func (m *Manifest) Resolve(name string) (*Resolved, error) {
	var lvl *Level
	for i := range m.Levels {
		if m.Levels[i].Name == name {
			lvl = &m.Levels[i]
			break
		}
	}
	if lvl == nil {
		return nil, eris.Wrapf(ErrUnknownLevel, "level %s", name)
	}

	r := &Resolved{Level: lvl, mobs: make(map[string]*models.MobTemplate)}
	for i := range m.Mobs {
		r.mobs[m.Mobs[i].Name] = &m.Mobs[i]
	}
	for _, mobName := range lvl.Mobs {
		t, ok := r.mobs[mobName]
		if !ok {
			return nil, eris.Wrapf(ErrInvalidManifest, "level %s references unknown mob %s", name, mobName)
		}
		r.Table = append(r.Table, t)
	}
	for i := range m.Chests {
		if m.Chests[i].Name == lvl.Chest {
			r.chest = &m.Chests[i]
		}
	}
	for i := range m.Heroes {
		if m.Heroes[i].Name == lvl.Hero {
			r.hero = &m.Heroes[i]
		}
	}

	mp, err := Generate(lvl.Map)
	if err != nil {
		return nil, eris.Wrapf(err, "level %s", name)
	}
	r.Map = mp
	return r, nil
}

// Resolved is a level bound to its templates. It serves as the template
// registry of the session.
type Resolved struct {
	Level *Level
	// Table holds the level's mob templates in manifest order.
	Table []*models.MobTemplate
	Map   *Map
	mobs  map[string]*models.MobTemplate
	chest *models.ChestTemplate
	hero  *models.HeroTemplate
}

var _ models.Registry = (*Resolved)(nil)

func (r *Resolved) Mob(name string) (*models.MobTemplate, bool) {
	t, ok := r.mobs[name]
	return t, ok
}

func (r *Resolved) Chest() (*models.ChestTemplate, bool) {
	return r.chest, r.chest != nil
}

func (r *Resolved) Hero() (*models.HeroTemplate, bool) {
	return r.hero, r.hero != nil
}

func (r *Resolved) Has(role models.Role) bool {
	switch role {
	case models.RoleMob:
		return len(r.Table) > 0
	case models.RoleChest:
		return r.chest != nil
	case models.RoleHero:
		return r.hero != nil
	default:
		return false
	}
}

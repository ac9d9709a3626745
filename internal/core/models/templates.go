package models

import (
	"github.com/cespare/xxhash/v2"
)

// TemplateKey identifies a template inside pools and lookup tables.
type TemplateKey uint64

// KeyOf hashes a template name into its key.
func KeyOf(name string) TemplateKey {
	return TemplateKey(xxhash.Sum64String(name))
}

// Stats is the combat block shared by mobs and heroes.
type Stats struct {
	MaxHealth uint32  `yaml:"max_health"`
	Damage    uint32  `yaml:"damage"`
	Speed     float64 `yaml:"speed"`
}

// MobTemplate is the read-only prototype every pooled mob is bound to.
type MobTemplate struct {
	Name            string   `yaml:"name"`
	Rarity          Rarity   `yaml:"rarity"`
	Level           MobLevel `yaml:"level"`
	Movement        Movement `yaml:"movement"`
	Tribe           Tribe    `yaml:"tribe"`
	Ability         Ability  `yaml:"ability"`
	AbilityStrength uint32   `yaml:"ability_strength"`
	Stats           Stats    `yaml:"stats"`
}

func (t *MobTemplate) Key() TemplateKey {
	return KeyOf(t.Name)
}

type ChestTemplate struct {
	Name   string `yaml:"name"`
	Rarity Rarity `yaml:"rarity"`
	Health uint32 `yaml:"health"`
}

type HeroTemplate struct {
	Name  string `yaml:"name"`
	Stats Stats  `yaml:"stats"`
}

// Registry hands out prototypes by role. Systems never build gameplay
// entities from scratch; they instantiate what the registry returns.
type Registry interface {
	Mob(name string) (*MobTemplate, bool)
	Chest() (*ChestTemplate, bool)
	Hero() (*HeroTemplate, bool)
	Has(role Role) bool
}

package events

import (
	"github.com/zeusync/arena/internal/core/models"
	"github.com/zeusync/arena/pkg/geom"
)

// Payload is the data attached to a payload kind. The set is closed: only the
// types in this file implement it.
type Payload interface {
	Kind() Kind
	payload()
}

// PlayerGainedXPEvent reports XP settled for the player during one slow pulse.
type PlayerGainedXPEvent struct {
	Amount uint32
}

// XPEvent is emitted for every recycled mob, keyed by the mob's rarity.
type XPEvent struct {
	Rarity models.Rarity
}

type MobDiedEvent struct {
	MobID    string
	Template string
	Rarity   models.Rarity
	Position geom.Vec2
}

type ChestSpawnedEvent struct {
	ChestID  string
	Template string
	Position geom.Vec2
}

func (PlayerGainedXPEvent) Kind() Kind { return PlayerGainedXP }
func (XPEvent) Kind() Kind             { return XPGained }
func (MobDiedEvent) Kind() Kind        { return MobDied }
func (ChestSpawnedEvent) Kind() Kind   { return ChestSpawned }

func (PlayerGainedXPEvent) payload() {}
func (XPEvent) payload()             {}
func (MobDiedEvent) payload()        {}
func (ChestSpawnedEvent) payload()   {}

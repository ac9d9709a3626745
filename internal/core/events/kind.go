// Package events is the closed catalog of simulation events. Every event is
// identified by its Kind; signal kinds carry nothing, payload kinds are
// published with one of the Payload types below.
package events

import "fmt"

type Kind uint8

const (
	KindUnknown Kind = iota

	// Lifecycle
	Init

	// Heart timeouts
	PulseTimeout
	SlowPulseTimeout
	MobSpawnTimeout
	ChestSpawnTimeout
	GameTimeout
	StartingTimeout

	// Player
	PlayerSpawn
	PlayerDefeat
	PlayerVictory
	PlayerGainedXP

	// Spawn and loot
	XPGained
	MobDied
	ChestSpawned

	kindCount
)

var kindNames = [...]string{
	KindUnknown:       "Unknown",
	Init:              "Init",
	PulseTimeout:      "PulseTimeout",
	SlowPulseTimeout:  "SlowPulseTimeout",
	MobSpawnTimeout:   "MobSpawnTimeout",
	ChestSpawnTimeout: "ChestSpawnTimeout",
	GameTimeout:       "GameTimeout",
	StartingTimeout:   "StartingTimeout",
	PlayerSpawn:       "PlayerSpawn",
	PlayerDefeat:      "PlayerDefeat",
	PlayerVictory:     "PlayerVictory",
	PlayerGainedXP:    "PlayerGainedXP",
	XPGained:          "XPEvent",
	MobDied:           "MobDied",
	ChestSpawned:      "ChestSpawned",
}

// payloadKinds marks the kinds published with data.
var payloadKinds = [kindCount]bool{
	PlayerGainedXP: true,
	XPGained:       true,
	MobDied:        true,
	ChestSpawned:   true,
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is a known, routable kind.
func (k Kind) Valid() bool {
	return k > KindUnknown && k < kindCount
}

// HasPayload reports whether k is a data kind.
func (k Kind) HasPayload() bool {
	return k.Valid() && payloadKinds[k]
}

// Kinds lists every routable kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Init; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

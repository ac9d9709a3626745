package models

import "fmt"

// Rarity is the rarity tier of a template. The numeric values are part of the
// spawn weight and XP formulas and must not be renumbered.
type Rarity uint8

const (
	RarityBasic       Rarity = 0
	RarityCommon      Rarity = 2
	RarityUncommon    Rarity = 4
	RarityRare        Rarity = 6
	RarityEpic        Rarity = 8
	RarityLegendary   Rarity = 10
	RarityMythic      Rarity = 12
	RarityAscendant   Rarity = 14
	RarityCosmic      Rarity = 16
	RarityEldritch    Rarity = 18
	RarityMultiversal Rarity = 20
	RarityOmniversal  Rarity = 22
)

var rarityNames = map[Rarity]string{
	RarityBasic:       "basic",
	RarityCommon:      "common",
	RarityUncommon:    "uncommon",
	RarityRare:        "rare",
	RarityEpic:        "epic",
	RarityLegendary:   "legendary",
	RarityMythic:      "mythic",
	RarityAscendant:   "ascendant",
	RarityCosmic:      "cosmic",
	RarityEldritch:    "eldritch",
	RarityMultiversal: "multiversal",
	RarityOmniversal:  "omniversal",
}

func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rarity(%d)", uint8(r))
}

// XP returns the experience awarded for a drop of this rarity.
func (r Rarity) XP() uint32 {
	return uint32(r) + 2
}

// MobLevel is the power tier of a mob template.
type MobLevel uint8

const (
	MobLevelBasic    MobLevel = 0
	MobLevelAdvanced MobLevel = 2
	MobLevelElite    MobLevel = 4
	MobLevelBoss     MobLevel = 6
)

func (l MobLevel) String() string {
	switch l {
	case MobLevelBasic:
		return "basic"
	case MobLevelAdvanced:
		return "advanced"
	case MobLevelElite:
		return "elite"
	case MobLevelBoss:
		return "boss"
	default:
		return fmt.Sprintf("level(%d)", uint8(l))
	}
}

// Movement selects the per-tick steering rule of a mob.
type Movement uint8

const (
	MovementDash         Movement = 0
	MovementCurved       Movement = 4
	MovementAttracted    Movement = 8
	MovementRandom       Movement = 12
	MovementStationary   Movement = 16
	MovementZigZag       Movement = 20
	MovementCircleStrafe Movement = 24
)

var movementNames = map[Movement]string{
	MovementDash:         "dash",
	MovementCurved:       "curved",
	MovementAttracted:    "attracted",
	MovementRandom:       "random",
	MovementStationary:   "stationary",
	MovementZigZag:       "zigzag",
	MovementCircleStrafe: "circle_strafe",
}

func (m Movement) String() string {
	if name, ok := movementNames[m]; ok {
		return name
	}
	return fmt.Sprintf("movement(%d)", uint8(m))
}

// Movements lists every known movement kind.
func Movements() []Movement {
	return []Movement{
		MovementDash, MovementCurved, MovementAttracted, MovementRandom,
		MovementStationary, MovementZigZag, MovementCircleStrafe,
	}
}

type Tribe uint8

const (
	TribeNone      Tribe = 0
	TribeBeast     Tribe = 8
	TribeUndead    Tribe = 16
	TribeElemental Tribe = 24
	TribeHumanoid  Tribe = 32
	TribeGoblinoid Tribe = 40
	TribeInsectoid Tribe = 48
)

type Ability uint8

const (
	AbilityNone     Ability = 0
	AbilityPoison   Ability = 4
	AbilityHealer   Ability = 8
	AbilityExplodes Ability = 12
	AbilityAura     Ability = 16
)

// Role is the kind of prototype served by a Registry.
type Role uint8

const (
	RoleMob Role = iota
	RoleChest
	RoleHero
	RoleItem
	RoleProjectile
	RoleXP
)

func (r Role) String() string {
	switch r {
	case RoleMob:
		return "mob"
	case RoleChest:
		return "chest"
	case RoleHero:
		return "hero"
	case RoleItem:
		return "item"
	case RoleProjectile:
		return "projectile"
	case RoleXP:
		return "xp"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

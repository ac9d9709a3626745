package level

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Type is the biome of a level.
type Type uint8

const (
	TypeUnset   Type = 0
	TypeForest  Type = 4
	TypeVillage Type = 8
	TypeCity    Type = 12
	TypeSwamp   Type = 16
	TypePlains  Type = 20
)

var typeNames = map[Type]string{
	TypeUnset:   "unset",
	TypeForest:  "forest",
	TypeVillage: "village",
	TypeCity:    "city",
	TypeSwamp:   "swamp",
	TypePlains:  "plains",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeNamed(node, typeNames)
	if err != nil {
		return eris.Wrapf(err, "level type %q", node.Value)
	}
	*t = v
	return nil
}

// Tier is the difficulty tier of a level.
type Tier uint8

const (
	TierBasic     Tier = 0
	TierAdvanced  Tier = 2
	TierExpert    Tier = 4
	TierMaster    Tier = 6
	TierAscendant Tier = 8
)

var tierNames = map[Tier]string{
	TierBasic:     "basic",
	TierAdvanced:  "advanced",
	TierExpert:    "expert",
	TierMaster:    "master",
	TierAscendant: "ascendant",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "tier(" + strconv.Itoa(int(t)) + ")"
}

func (t *Tier) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeNamed(node, tierNames)
	if err != nil {
		return eris.Wrapf(err, "level tier %q", node.Value)
	}
	*t = v
	return nil
}

func decodeNamed[T ~uint8](node *yaml.Node, names map[T]string) (T, error) {
	raw := strings.ToLower(strings.TrimSpace(node.Value))
	for v, name := range names {
		if name == raw {
			return v, nil
		}
	}
	if n, err := strconv.ParseUint(raw, 10, 8); err == nil {
		if _, ok := names[T(n)]; ok {
			return T(n), nil
		}
	}
	return 0, ErrInvalidManifest
}

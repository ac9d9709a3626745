package models

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ErrUnknownEnum is returned when a manifest names an enum value that does not exist.
var ErrUnknownEnum = eris.New("unknown enum value")

// Enum fields accept either their name ("rare") or their numeric value (6).

func (r *Rarity) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeEnum(node, func(s string) (uint8, bool) {
		for k, name := range rarityNames {
			if name == s {
				return uint8(k), true
			}
		}
		return 0, false
	})
	if err != nil {
		return eris.Wrapf(err, "rarity %q", node.Value)
	}
	*r = Rarity(v)
	return nil
}

func (m *Movement) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeEnum(node, func(s string) (uint8, bool) {
		for k, name := range movementNames {
			if name == s {
				return uint8(k), true
			}
		}
		return 0, false
	})
	if err != nil {
		return eris.Wrapf(err, "movement %q", node.Value)
	}
	*m = Movement(v)
	return nil
}

func (l *MobLevel) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeEnum(node, func(s string) (uint8, bool) {
		for _, lvl := range []MobLevel{MobLevelBasic, MobLevelAdvanced, MobLevelElite, MobLevelBoss} {
			if lvl.String() == s {
				return uint8(lvl), true
			}
		}
		return 0, false
	})
	if err != nil {
		return eris.Wrapf(err, "mob level %q", node.Value)
	}
	*l = MobLevel(v)
	return nil
}

func decodeEnum(node *yaml.Node, byName func(string) (uint8, bool)) (uint8, error) {
	if node.Kind != yaml.ScalarNode {
		return 0, ErrUnknownEnum
	}
	raw := strings.ToLower(strings.TrimSpace(node.Value))
	if n, err := strconv.ParseUint(raw, 10, 8); err == nil {
		return uint8(n), nil
	}
	if v, ok := byName(raw); ok {
		return v, nil
	}
	return 0, ErrUnknownEnum
}

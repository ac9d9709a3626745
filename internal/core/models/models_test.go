package models

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRarityXP(t *testing.T) {
	assert.Equal(t, uint32(2), RarityBasic.XP())
	assert.Equal(t, uint32(8), RarityRare.XP())
	assert.Equal(t, uint32(24), RarityOmniversal.XP())
}

func TestKeyOfIsStable(t *testing.T) {
	a := &MobTemplate{Name: "slime"}
	assert.Equal(t, KeyOf("slime"), a.Key())
	assert.NotEqual(t, KeyOf("slime"), KeyOf("bat"))
}

func TestTemplateYAMLAcceptsNamesAndNumbers(t *testing.T) {
	src := `
name: ghoul
rarity: rare
level: 4
movement: zigzag
stats:
  max_health: 30
  speed: 80
`
	var tpl MobTemplate
	require.NoError(t, yaml.Unmarshal([]byte(src), &tpl))
	assert.Equal(t, RarityRare, tpl.Rarity)
	assert.Equal(t, MobLevelElite, tpl.Level)
	assert.Equal(t, MovementZigZag, tpl.Movement)
	assert.Equal(t, uint32(30), tpl.Stats.MaxHealth)
	assert.Equal(t, 80.0, tpl.Stats.Speed)
}

func TestTemplateYAMLRejectsUnknownEnum(t *testing.T) {
	var tpl MobTemplate
	err := yaml.Unmarshal([]byte("rarity: shiny\n"), &tpl)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnknownEnum))
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "circle_strafe", MovementCircleStrafe.String())
	assert.Equal(t, "movement(99)", Movement(99).String())
	assert.Equal(t, "boss", MobLevelBoss.String())
	assert.Equal(t, "legendary", RarityLegendary.String())
	assert.Equal(t, "chest", RoleChest.String())
	assert.Len(t, Movements(), 7)
}

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindClassification(t *testing.T) {
	for _, k := range Kinds() {
		assert.True(t, k.Valid(), k.String())
	}
	assert.False(t, KindUnknown.Valid())
	assert.False(t, Kind(200).Valid())

	assert.False(t, Init.HasPayload())
	assert.False(t, PulseTimeout.HasPayload())
	assert.True(t, PlayerGainedXP.HasPayload())
	assert.True(t, XPGained.HasPayload())
	assert.False(t, Kind(200).HasPayload())
}

func TestPayloadKindsMatchCatalog(t *testing.T) {
	payloads := []Payload{
		PlayerGainedXPEvent{Amount: 3},
		XPEvent{},
		MobDiedEvent{},
		ChestSpawnedEvent{},
	}
	for _, p := range payloads {
		assert.True(t, p.Kind().HasPayload(), p.Kind().String())
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "XPEvent", XPGained.String())
	assert.Equal(t, "GameTimeout", GameTimeout.String())
	assert.Equal(t, "Kind(200)", Kind(200).String())
	assert.Len(t, Kinds(), 14)
}

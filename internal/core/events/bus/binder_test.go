package bus

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/observability/log"
)

func TestBinderReleasesEverything(t *testing.T) {
	b := New(log.NewNop())
	g := NewBinder(b).
		On(events.Init, func() {}).
		On(events.PulseTimeout, func() {}).
		OnData(events.XPGained, func(events.Payload) {})
	require.NoError(t, g.Err())
	assert.Equal(t, 3, g.Len())

	require.NoError(t, g.Release())
	assert.Equal(t, uint64(0), b.Metrics().Subscribers)
	assert.Equal(t, 0, g.Len())
}

func TestBinderStopsAtFirstError(t *testing.T) {
	b := New(log.NewNop())
	g := NewBinder(b).
		On(events.Init, func() {}).
		On(events.XPGained, func() {}).
		On(events.PulseTimeout, func() {})

	err := g.Err()
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrKindMismatch))
	assert.Equal(t, 0, b.Handlers(events.Init))
	assert.Equal(t, 0, b.Handlers(events.PulseTimeout))
}

func TestBinderReleaseAfterUnsubscribeAll(t *testing.T) {
	b := New(log.NewNop())
	g := NewBinder(b).On(events.Init, func() {})
	require.NoError(t, g.Err())
	b.UnsubscribeAll()
	assert.NoError(t, g.Release())
}

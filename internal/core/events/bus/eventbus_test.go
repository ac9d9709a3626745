package bus

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/models"
	"github.com/zeusync/arena/internal/core/observability/log"
)

type testObserver struct {
	published int
	unrouted  []events.Kind
}

func (o *testObserver) OnPublish(_ events.Kind, handlers int) { o.published += handlers }
func (o *testObserver) OnUnrouted(kind events.Kind)          { o.unrouted = append(o.unrouted, kind) }

func newObservedBus() (EventBus, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(log.FromZap(zap.New(core), log.LevelDebug)), logs
}

func TestSubscribePublishRunsOnce(t *testing.T) {
	b := New(log.NewNop())
	for _, kind := range events.Kinds() {
		if kind.HasPayload() {
			continue
		}
		calls := 0
		sub, err := b.Subscribe(kind, func() { calls++ })
		require.NoError(t, err, kind.String())

		b.Publish(kind)
		assert.Equal(t, 1, calls, kind.String())

		require.NoError(t, b.Unsubscribe(sub))
		b.Publish(kind)
		assert.Equal(t, 1, calls, kind.String())
	}
}

func TestDuplicateSubscriptionRunsTwice(t *testing.T) {
	b := New(log.NewNop())
	calls := 0
	handler := func() { calls++ }
	first, err := b.Subscribe(events.PulseTimeout, handler)
	require.NoError(t, err)
	second, err := b.Subscribe(events.PulseTimeout, handler)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())

	b.Publish(events.PulseTimeout)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, b.Handlers(events.PulseTimeout))
}

func TestDispatchFollowsSubscriptionOrder(t *testing.T) {
	b := New(log.NewNop())
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		_, err := b.Subscribe(events.GameTimeout, func() { order = append(order, i) })
		require.NoError(t, err)
	}
	b.Publish(events.GameTimeout)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestPublishWithoutHandlersIsDiagnosed(t *testing.T) {
	b, logs := newObservedBus()
	obs := &testObserver{}
	b.AddObserver(obs)

	assert.NotPanics(t, func() { b.Publish(events.MobSpawnTimeout) })
	assert.NotPanics(t, func() { b.PublishData(events.XPEvent{Rarity: models.RarityRare}) })

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 2)
	assert.Equal(t, []events.Kind{events.MobSpawnTimeout, events.XPGained}, obs.unrouted)
	assert.Equal(t, uint64(2), b.Metrics().Unrouted)
}

func TestLastUnsubscribeDropsKind(t *testing.T) {
	b, logs := newObservedBus()
	calls := 0
	sub, err := b.Subscribe(events.Init, func() { calls++ })
	require.NoError(t, err)
	require.NoError(t, sub.Cancel())
	assert.False(t, sub.IsActive())
	assert.Equal(t, 0, b.Handlers(events.Init))

	b.Publish(events.Init)
	assert.Equal(t, 0, calls)
	assert.Equal(t, uint64(1), b.Metrics().Unrouted)
	assert.NotZero(t, logs.FilterMessageSnippet("did you forget to subscribe").Len())
}

func TestUnsubscribeUnknownIsNonFatal(t *testing.T) {
	b, logs := newObservedBus()
	sub, err := b.Subscribe(events.Init, func() {})
	require.NoError(t, err)
	require.NoError(t, b.Unsubscribe(sub))

	err = b.Unsubscribe(sub)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotSubscribed))
	assert.NotZero(t, logs.FilterMessageSnippet("already unsubscribed").Len())

	other := New(log.NewNop())
	foreign, err := other.Subscribe(events.Init, func() {})
	require.NoError(t, err)
	assert.True(t, eris.Is(b.Unsubscribe(foreign), ErrNotSubscribed))
}

func TestDataHandlersReceivePayload(t *testing.T) {
	b := New(log.NewNop())
	var got []uint32
	_, err := b.SubscribeData(events.PlayerGainedXP, func(p events.Payload) {
		got = append(got, p.(events.PlayerGainedXPEvent).Amount)
	})
	require.NoError(t, err)

	b.PublishData(events.PlayerGainedXPEvent{Amount: 7})
	b.PublishData(events.PlayerGainedXPEvent{Amount: 3})
	assert.Equal(t, []uint32{7, 3}, got)
}

func TestKindFlavourIsChecked(t *testing.T) {
	b := New(log.NewNop())

	_, err := b.Subscribe(events.XPGained, func() {})
	assert.True(t, eris.Is(err, ErrKindMismatch))

	_, err = b.SubscribeData(events.Init, func(events.Payload) {})
	assert.True(t, eris.Is(err, ErrKindMismatch))

	_, err = b.Subscribe(events.KindUnknown, func() {})
	assert.True(t, eris.Is(err, ErrUnknownKind))

	_, err = b.Subscribe(events.Init, nil)
	assert.True(t, eris.Is(err, ErrNilHandler))
}

func TestHandlerPublishingRecursesSynchronously(t *testing.T) {
	b := New(log.NewNop())
	var trace []string
	_, _ = b.Subscribe(events.GameTimeout, func() {
		trace = append(trace, "game:start")
		b.Publish(events.StartingTimeout)
		trace = append(trace, "game:end")
	})
	_, _ = b.Subscribe(events.StartingTimeout, func() { trace = append(trace, "starting") })

	b.Publish(events.GameTimeout)
	assert.Equal(t, []string{"game:start", "starting", "game:end"}, trace)
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	b := New(log.NewNop())
	calls := map[string]int{}
	var second Subscription
	_, _ = b.Subscribe(events.PulseTimeout, func() {
		calls["first"]++
		_ = b.Unsubscribe(second)
	})
	second, _ = b.Subscribe(events.PulseTimeout, func() { calls["second"]++ })

	b.Publish(events.PulseTimeout)
	b.Publish(events.PulseTimeout)
	assert.Equal(t, 2, calls["first"])
	assert.Equal(t, 0, calls["second"])
}

func TestUnsubscribeAll(t *testing.T) {
	b := New(log.NewNop())
	s1, _ := b.Subscribe(events.Init, func() {})
	s2, _ := b.SubscribeData(events.XPGained, func(events.Payload) {})

	b.UnsubscribeAll()
	assert.False(t, s1.IsActive())
	assert.False(t, s2.IsActive())
	assert.Equal(t, uint64(0), b.Metrics().Subscribers)
	assert.Equal(t, 0, b.Handlers(events.Init))
	assert.Equal(t, 0, b.Handlers(events.XPGained))
}

func TestObserverCounts(t *testing.T) {
	b := New(log.NewNop())
	obs := &testObserver{}
	b.AddObserver(obs)
	_, _ = b.Subscribe(events.Init, func() {})
	_, _ = b.Subscribe(events.Init, func() {})

	b.Publish(events.Init)
	assert.Equal(t, 2, obs.published)

	b.RemoveObserver(obs)
	b.Publish(events.Init)
	assert.Equal(t, 2, obs.published)

	m := b.Metrics()
	assert.Equal(t, uint64(2), m.Published)
	assert.Equal(t, uint64(4), m.Delivered)
	assert.Equal(t, uint64(2), m.Subscribers)
}

func TestPayloadKindPublishedAsSignal(t *testing.T) {
	b := New(log.NewNop())
	calls := 0
	_, _ = b.SubscribeData(events.XPGained, func(events.Payload) { calls++ })
	b.Publish(events.XPGained)
	assert.Equal(t, 0, calls)
	assert.Equal(t, uint64(1), b.Metrics().Unrouted)
}

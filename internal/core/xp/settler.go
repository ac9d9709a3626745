// Package xp settles the experience dropped by recycled mobs into player XP.
package xp

import (
	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/models"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/pkg/sequence"
)

// Settler queues XPEvents as they arrive and pays them out once per slow
// pulse as a single PlayerGainedXP.
type Settler struct {
	bus         bus.EventBus
	logger      log.Log
	binder      *bus.Binder
	queue       *sequence.Queue[models.Rarity]
	total       uint64
	initialized bool
}

func NewSettler(b bus.EventBus, logger log.Log) *Settler {
	return &Settler{
		bus:    b,
		logger: logger.Named("xp"),
		queue:  sequence.NewQueue[models.Rarity](32),
	}
}

func (s *Settler) Attach() error {
	s.binder = bus.NewBinder(s.bus).
		On(events.Init, s.OnInit).
		On(events.SlowPulseTimeout, func() { s.Settle() }).
		OnData(events.XPGained, s.OnXP)
	return s.binder.Err()
}

func (s *Settler) Name() string { return "xp" }

func (s *Settler) Detach() {
	if s.binder != nil {
		_ = s.binder.Release()
		s.binder = nil
	}
}

func (s *Settler) IsInitialized() bool { return s.initialized }

func (s *Settler) OnInit() {
	if s.initialized {
		s.logger.Warn("xp settler already initialized, ignoring Init")
		return
	}
	s.initialized = true
}

func (s *Settler) OnXP(p events.Payload) {
	e, ok := p.(events.XPEvent)
	if !ok {
		return
	}
	s.queue.Enqueue(e.Rarity)
}

// Settle drains the queue and publishes the summed XP. Nothing is published
// when the queue was empty.
func (s *Settler) Settle() uint32 {
	if !s.initialized {
		return 0
	}
	var amount uint32
	s.queue.Drain(func(r models.Rarity) {
		amount += r.XP()
	})
	if amount == 0 {
		return 0
	}
	s.total += uint64(amount)
	s.bus.PublishData(events.PlayerGainedXPEvent{Amount: amount})
	s.logger.Debug("settled xp", log.Uint32("amount", amount), log.Uint64("total", s.total))
	return amount
}

// Pending returns the number of unsettled drops.
func (s *Settler) Pending() int { return s.queue.Len() }

// Total returns all XP settled this session.
func (s *Settler) Total() uint64 { return s.total }

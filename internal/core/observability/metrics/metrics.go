// Package metrics exports simulation counters to Prometheus. A Collector
// plugs into the bus, the spawner and the streamer as their observer and
// owns a private registry served by the debug server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zeusync/arena/internal/core/events"
	"github.com/zeusync/arena/internal/core/spawn"
	"github.com/zeusync/arena/internal/core/world"
)

const namespace = "arena"

type Collector struct {
	registry *prometheus.Registry

	published *prometheus.CounterVec
	unrouted  *prometheus.CounterVec
	spawned   *prometheus.CounterVec
	missed    *prometheus.CounterVec
	recycled  *prometheus.CounterVec
	died      *prometheus.CounterVec
	chests    *prometheus.CounterVec
	shifts    *prometheus.CounterVec
	mobs      *prometheus.GaugeVec
	xp        prometheus.Counter
	tick      prometheus.Histogram
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bus",
			Name:      "deliveries_total",
			Help:      "Handler invocations by event kind.",
		}, []string{"kind"}),
		unrouted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bus",
			Name:      "unrouted_total",
			Help:      "Events published without any handler.",
		}, []string{"kind"}),
		spawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "spawn",
			Name:      "spawned_total",
			Help:      "Mobs placed in the world by template.",
		}, []string{"template"}),
		missed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "spawn",
			Name:      "missed_total",
			Help:      "Spawn rolls skipped because the template pool was exhausted.",
		}, []string{"template"}),
		recycled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "spawn",
			Name:      "recycled_total",
			Help:      "Dead mobs returned to their pool by template.",
		}, []string{"template"}),
		died: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "spawn",
			Name:      "died_total",
			Help:      "Mob deaths by template.",
		}, []string{"template"}),
		chests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chest",
			Name:      "spawned_total",
			Help:      "Chests placed in the world by template.",
		}, []string{"template"}),
		shifts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "world",
			Name:      "shifts_total",
			Help:      "World streaming shifts by direction.",
		}, []string{"direction"}),
		mobs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "spawn",
			Name:      "mobs",
			Help:      "Mob instances by lifecycle state.",
		}, []string{"state"}),
		xp: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "xp",
			Name:      "settled_total",
			Help:      "Experience settled for the player.",
		}),
		tick: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one simulation tick.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
	}
	c.registry.MustRegister(
		c.published, c.unrouted,
		c.spawned, c.missed, c.recycled, c.died, c.mobs,
		c.chests, c.shifts, c.xp, c.tick,
		collectors.NewGoCollector(),
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the private registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) OnPublish(kind events.Kind, handlers int) {
	c.published.WithLabelValues(kind.String()).Add(float64(handlers))
}

func (c *Collector) OnUnrouted(kind events.Kind) {
	c.unrouted.WithLabelValues(kind.String()).Inc()
}

func (c *Collector) OnSpawn(template string) {
	c.spawned.WithLabelValues(template).Inc()
}

func (c *Collector) OnSpawnMiss(template string) {
	c.missed.WithLabelValues(template).Inc()
}

func (c *Collector) OnRecycle(template string) {
	c.recycled.WithLabelValues(template).Inc()
}

func (c *Collector) OnMobDied(template string) {
	c.died.WithLabelValues(template).Inc()
}

func (c *Collector) OnChestSpawned(template string) {
	c.chests.WithLabelValues(template).Inc()
}

func (c *Collector) OnShift(d world.Direction) {
	c.shifts.WithLabelValues(d.String()).Inc()
}

// ObservePool publishes the current lifecycle breakdown of the mob pool.
func (c *Collector) ObservePool(st spawn.Stats) {
	c.mobs.WithLabelValues("pooled").Set(float64(st.Pooled))
	c.mobs.WithLabelValues("spawning").Set(float64(st.Spawning))
	c.mobs.WithLabelValues("active").Set(float64(st.Active))
	c.mobs.WithLabelValues("pending_death").Set(float64(st.PendingDeath))
}

func (c *Collector) AddXP(amount uint32) {
	c.xp.Add(float64(amount))
}

func (c *Collector) ObserveTick(d time.Duration) {
	c.tick.Observe(d.Seconds())
}

package spawn

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/arena/internal/core/models"
	"github.com/zeusync/arena/pkg/geom"
)

func TestPoolSize(t *testing.T) {
	assert.Equal(t, 400, PoolSize(0.5))
	assert.Equal(t, 400, PoolSize(1))
	assert.Equal(t, 146, PoolSize(2.745))
	assert.Equal(t, 7, PoolSize(16100.0/255))
	assert.Equal(t, 2, PoolSize(1000))
}

func TestNewPoolAllocatesPooledDefaults(t *testing.T) {
	slime := mobTemplate("slime", models.RarityBasic, models.MobLevelBasic, models.MovementRandom)
	boss := mobTemplate("boss", models.RarityOmniversal, models.MobLevelBoss, models.MovementDash)
	table, err := BuildTable([]*models.MobTemplate{slime, boss}, testRand())
	require.NoError(t, err)

	pool := NewPool(table)
	assert.Equal(t, 400, pool.Size(slime))
	assert.Equal(t, 7, pool.Size(boss))
	assert.Equal(t, 407, pool.Capacity())

	pool.Each(func(m *Mob) {
		assert.Equal(t, MobPooled, m.State)
		assert.False(t, m.Visible)
		assert.Equal(t, geom.Zero, m.Position)
		assert.Equal(t, geom.Zero, m.Velocity)
		assert.Equal(t, m.Template.Stats.MaxHealth, m.Health)
	})
}

func TestPoolExhaustion(t *testing.T) {
	boss := mobTemplate("boss", models.RarityOmniversal, models.MobLevelBoss, models.MovementDash)
	table, err := BuildTable([]*models.MobTemplate{boss}, testRand())
	require.NoError(t, err)
	pool := NewPool(table)

	for range 7 {
		m, ok := pool.Acquire(boss)
		require.True(t, ok)
		assert.Equal(t, MobSpawning, m.State)
	}
	_, ok := pool.Acquire(boss)
	assert.False(t, ok)
	assert.Zero(t, pool.Free(boss))

	_, ok = pool.Acquire(mobTemplate("stranger", 0, 0, 0))
	assert.False(t, ok)
}

func TestPoolReleaseEnforcesTransitions(t *testing.T) {
	boss := mobTemplate("boss", models.RarityOmniversal, models.MobLevelBoss, models.MovementDash)
	table, err := BuildTable([]*models.MobTemplate{boss}, testRand())
	require.NoError(t, err)
	pool := NewPool(table)

	m, ok := pool.Acquire(boss)
	require.True(t, ok)
	m.State = MobActive
	m.Position = geom.V(10, 20)
	m.Velocity = geom.V(1, 1)
	m.Health = 0

	err = pool.Release(m)
	assert.True(t, eris.Is(err, ErrIllegalTransition))

	m.State = MobPendingDeath
	require.NoError(t, pool.Release(m))
	assert.Equal(t, MobPooled, m.State)
	assert.Equal(t, geom.Zero, m.Position)
	assert.Equal(t, geom.Zero, m.Velocity)
	assert.Equal(t, boss.Stats.MaxHealth, m.Health)
	assert.Equal(t, 7, pool.Free(boss))

	foreign := newMob(boss)
	foreign.State = MobPendingDeath
	assert.True(t, eris.Is(pool.Release(foreign), ErrUnknownMob))
}

func TestPoolReusesOldestFirst(t *testing.T) {
	boss := mobTemplate("boss", models.RarityOmniversal, models.MobLevelBoss, models.MovementDash)
	table, err := BuildTable([]*models.MobTemplate{boss}, testRand())
	require.NoError(t, err)
	pool := NewPool(table)

	first, _ := pool.Acquire(boss)
	second, _ := pool.Acquire(boss)
	assert.NotEqual(t, first.ID, second.ID)

	looked, ok := pool.Lookup(first.ID)
	require.True(t, ok)
	assert.Same(t, first, looked)
}

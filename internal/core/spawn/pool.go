package spawn

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/zeusync/arena/internal/core/models"
	"github.com/zeusync/arena/pkg/generic"
)

const (
	minPoolSize = 2
	maxPoolSize = 400
)

// PoolSize returns how many instances are pre-allocated for a template of the
// given weight. Common (light) mobs get larger pools.
func PoolSize(weight float64) int {
	if weight <= 0 {
		return maxPoolSize
	}
	size := int(math.Ceil(maxPoolSize / weight))
	return min(max(size, minPoolSize), maxPoolSize)
}

// Pool owns every mob instance of a level. Free instances wait in one FIFO
// free list per template.
type Pool struct {
	free  map[models.TemplateKey]*generic.Pool[*Mob]
	byID  map[string]*Mob
	all   []*Mob
	order []models.TemplateKey
}

// NewPool pre-allocates the instances of every table entry. Templates listed
// more than once share one free list sized by the sum of their entries.
func NewPool(table *Table) *Pool {
	sizes := make(map[models.TemplateKey]int)
	templates := make(map[models.TemplateKey]*models.MobTemplate)
	p := &Pool{
		free: make(map[models.TemplateKey]*generic.Pool[*Mob]),
		byID: make(map[string]*Mob),
	}
	for _, e := range table.entries {
		key := e.Template.Key()
		if _, seen := sizes[key]; !seen {
			p.order = append(p.order, key)
			templates[key] = e.Template
		}
		sizes[key] += PoolSize(e.Weight)
	}
	for _, key := range p.order {
		tmpl := templates[key]
		p.free[key] = generic.NewHotPool(func(int) *Mob {
			m := newMob(tmpl)
			p.byID[m.ID] = m
			p.all = append(p.all, m)
			return m
		}, sizes[key])
	}
	return p
}

// Acquire takes the oldest free instance of a template and marks it
// Spawning. It reports false when the template's pool is exhausted.
func (p *Pool) Acquire(t *models.MobTemplate) (*Mob, bool) {
	free, ok := p.free[t.Key()]
	if !ok {
		return nil, false
	}
	m, ok := free.Get()
	if !ok {
		return nil, false
	}
	m.State = MobSpawning
	return m, true
}

// Release resets a dying mob to its pooled defaults and returns it to its
// free list. Only PendingDeath mobs may be released.
func (p *Pool) Release(m *Mob) error {
	if owned, ok := p.byID[m.ID]; !ok || owned != m {
		return eris.Wrapf(ErrUnknownMob, "mob %s", m.ID)
	}
	if m.State != MobPendingDeath {
		return eris.Wrapf(ErrIllegalTransition, "mob %s: %s -> %s", m.ID, m.State, MobPooled)
	}
	m.reset()
	return p.free[m.Template.Key()].Put(m)
}

func (p *Pool) Lookup(id string) (*Mob, bool) {
	m, ok := p.byID[id]
	return m, ok
}

// Free returns the number of pooled instances of a template.
func (p *Pool) Free(t *models.MobTemplate) int {
	free, ok := p.free[t.Key()]
	if !ok {
		return 0
	}
	return free.Len()
}

// Size returns the number of instances allocated for a template.
func (p *Pool) Size(t *models.MobTemplate) int {
	free, ok := p.free[t.Key()]
	if !ok {
		return 0
	}
	return free.Cap()
}

func (p *Pool) Capacity() int { return len(p.all) }

// Each visits every instance regardless of state, in allocation order.
func (p *Pool) Each(fn func(*Mob)) {
	for _, m := range p.all {
		fn(m)
	}
}

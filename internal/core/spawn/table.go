package spawn

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/rotisserie/eris"

	"github.com/zeusync/arena/internal/core/models"
)

// Weight returns the spawn weight of a template. Rarer and higher-level mobs
// weigh more, which places them at the top of the descending table.
func Weight(t *models.MobTemplate) float64 {
	base := (float64(t.Rarity) + 1) * 10
	level := 10 * (float64(t.Level) + 1)
	return base * level / 255
}

type WeightEntry struct {
	Template *models.MobTemplate
	Weight   float64
}

// Table is the immutable weighted spawn table of a level, sorted by weight
// descending.
type Table struct {
	entries []WeightEntry
	total   float64
}

// BuildTable weighs every template. Two entries never share a weight: a
// colliding weight is nudged by a uniform amount in [0.01, 0.99) until unique.
func BuildTable(templates []*models.MobTemplate, rng *rand.Rand) (*Table, error) {
	if len(templates) == 0 {
		return nil, eris.Wrap(ErrEmptyMobTable, "cannot build spawn table")
	}
	t := &Table{entries: make([]WeightEntry, 0, len(templates))}
	for i, tmpl := range templates {
		if tmpl == nil {
			return nil, eris.Wrapf(ErrMissingTemplate, "mob table entry %d", i)
		}
		w := Weight(tmpl)
		for t.collides(w) {
			w += 0.01 + rng.Float64()*0.98
		}
		t.entries = append(t.entries, WeightEntry{Template: tmpl, Weight: w})
		t.total += w
	}
	slices.SortStableFunc(t.entries, func(a, b WeightEntry) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		default:
			return 0
		}
	})
	return t, nil
}

func (t *Table) collides(w float64) bool {
	for _, e := range t.entries {
		if e.Weight == w {
			return true
		}
	}
	return false
}

func (t *Table) Entries() []WeightEntry {
	return slices.Clone(t.entries)
}

func (t *Table) Len() int { return len(t.entries) }

func (t *Table) Total() float64 { return t.total }

// Floor is the lower bound of a spawn roll after elapsedMinutes of play. It
// rises by one per minute and never passes total-margin.
func (t *Table) Floor(elapsedMinutes, margin float64) float64 {
	upper := math.Max(0, t.total-margin)
	return math.Min(math.Max(math.Floor(elapsedMinutes), 0), upper)
}

// Pick walks the table accumulating weight and returns the first template
// whose cumulative weight reaches roll. Rolls past the total resolve to the
// last entry.
func (t *Table) Pick(roll float64) *models.MobTemplate {
	if len(t.entries) == 0 {
		return nil
	}
	cumulative := 0.0
	for _, e := range t.entries {
		cumulative += e.Weight
		if roll <= cumulative {
			return e.Template
		}
	}
	return t.entries[len(t.entries)-1].Template
}

// Sample rolls uniformly in [floor, total] and picks the matching template.
func (t *Table) Sample(rng *rand.Rand, floor float64) *models.MobTemplate {
	roll := floor + rng.Float64()*(t.total-floor)
	return t.Pick(roll)
}

package catalog

import (
	"math"

	"siralim-planner/internal/model"
)

// Metadata summarises the stat spread across every monster that has stats.
type Metadata struct {
	Monsters  int         `json:"monsters" yaml:"monsters"`
	Spells    int         `json:"spells" yaml:"spells"`
	Relics    int         `json:"relics" yaml:"relics"`
	WithStats int         `json:"with_stats" yaml:"with_stats"`
	Min       model.Stats `json:"min_stats" yaml:"min_stats"`
	Max       model.Stats `json:"max_stats" yaml:"max_stats"`
	Average   model.Stats `json:"average_stats" yaml:"average_stats"`
}

func (c *Catalog) Metadata() Metadata {
	md := Metadata{Monsters: len(c.Monsters), Spells: len(c.Spells), Relics: len(c.Relics)}
	var total [5]int
	for _, m := range c.Monsters {
		if m.Stats == nil {
			continue
		}
		v := statValues(*m.Stats)
		if md.WithStats == 0 {
			md.Min, md.Max = *m.Stats, *m.Stats
		}
		md.WithStats++
		lo, hi := statValues(md.Min), statValues(md.Max)
		for i := range v {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
			total[i] += v[i]
		}
		md.Min, md.Max = statsFrom(lo), statsFrom(hi)
	}
	if md.WithStats > 0 {
		var avg [5]int
		for i, t := range total {
			avg[i] = int(math.RoundToEven(float64(t) / float64(md.WithStats)))
		}
		md.Average = statsFrom(avg)
	}
	return md
}

func statValues(s model.Stats) [5]int {
	return [5]int{s.Health, s.Attack, s.Intelligence, s.Defense, s.Speed}
}

func statsFrom(v [5]int) model.Stats {
	return model.Stats{Health: v[0], Attack: v[1], Intelligence: v[2], Defense: v[3], Speed: v[4]}
}

package selection

import (
	"encoding/json"

	"siralim-planner/internal/model"

	"github.com/tidwall/gjson"
)

// Kind picks the sort indicator style for a column.
type Kind int

const (
	KindAlpha Kind = iota
	KindNumeric
)

// Column is a header in the results table. Field is the sort path.
type Column struct {
	Field string
	Title string
	Kind  Kind
	Width int
}

// Indicator returns the header glyph for the column under the given sort state.
func (c Column) Indicator(s SortState) string {
	if s.Field != c.Field {
		return ""
	}
	switch s.Order {
	case OrderDesc:
		if c.Kind == KindNumeric {
			return "9→1"
		}
		return "Z→A"
	case OrderAsc:
		if c.Kind == KindNumeric {
			return "1→9"
		}
		return "A→Z"
	}
	return ""
}

var SpellColumns = []Column{
	{Field: "class", Title: "Class", Kind: KindAlpha, Width: 9},
	{Field: "charges", Title: "Charges", Kind: KindNumeric, Width: 8},
	{Field: "name", Title: "Name", Kind: KindAlpha, Width: 22},
	{Field: "description", Title: "Description", Kind: KindAlpha, Width: 0},
}

var MonsterColumns = []Column{
	{Field: "class", Title: "Class", Kind: KindAlpha, Width: 9},
	{Field: "family", Title: "Family", Kind: KindAlpha, Width: 12},
	{Field: "creature", Title: "Creature", Kind: KindAlpha, Width: 20},
	{Field: "trait_name", Title: "Trait", Kind: KindAlpha, Width: 20},
	{Field: "stats.health", Title: "HP", Kind: KindNumeric, Width: 4},
	{Field: "stats.attack", Title: "Atk", Kind: KindNumeric, Width: 4},
	{Field: "stats.intelligence", Title: "Int", Kind: KindNumeric, Width: 4},
	{Field: "stats.defense", Title: "Def", Kind: KindNumeric, Width: 4},
	{Field: "stats.speed", Title: "Spd", Kind: KindNumeric, Width: 4},
	{Field: "trait_description", Title: "Description", Kind: KindAlpha, Width: 0},
}

// ColumnByField finds a column by sort path.
func ColumnByField(cols []Column, field string) (Column, bool) {
	for _, c := range cols {
		if c.Field == field {
			return c, true
		}
	}
	return Column{}, false
}

// Cells reads each column's field out of item's JSON form, the same paths sorting uses.
// Missing fields render as "".
func Cells(item any, cols []Column) []string {
	doc, err := json.Marshal(item)
	if err != nil {
		doc = nil
	}
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = gjson.GetBytes(doc, c.Field).String()
	}
	return out
}

var SpellSchema = Schema[*model.Spell]{
	UID:        func(s *model.Spell) string { return s.UID },
	SearchText: func(s *model.Spell) string { return s.SearchText },
	Category:   func(s *model.Spell) string { return s.Class },
}

var MonsterSchema = Schema[*model.Monster]{
	UID:        func(m *model.Monster) string { return m.UID },
	SearchText: func(m *model.Monster) string { return m.SearchText },
	Category:   func(m *model.Monster) string { return m.Class },
}

// NewSpellEngine builds an engine over the spell catalog with class tabs.
func NewSpellEngine(spells []*model.Spell, opts ...Option) *Engine[*model.Spell] {
	return NewEngine(spells, SpellSchema, opts...)
}

// NewMonsterEngine builds an engine over the monster catalog with class tabs.
func NewMonsterEngine(monsters []*model.Monster, opts ...Option) *Engine[*model.Monster] {
	return NewEngine(monsters, MonsterSchema, opts...)
}

// Package modal tracks which picker is open, for which party member or slot, and routes the
// choice made in it back into the party.
package modal

import (
	"fmt"
	"reflect"
	"strings"

	"siralim-planner/internal/model"
	"siralim-planner/internal/selection"
)

type Kind int

const (
	KindNone Kind = iota
	KindRelic
	KindSpell
	KindNote
	KindTrait
)

func (k Kind) String() string {
	switch k {
	case KindRelic:
		return "relic"
	case KindSpell:
		return "spell"
	case KindNote:
		return "note"
	case KindTrait:
		return "trait"
	default:
		return "none"
	}
}

// NotOpenError is returned when a choice is routed to a modal that is not the open one.
type NotOpenError struct {
	Want Kind
	Open Kind
}

func (e NotOpenError) Error() string {
	return fmt.Sprintf("%s modal is not open (open: %s)", e.Want, e.Open)
}

// Planner is the part of *party.Planner the coordinator writes to.
type Planner interface {
	Slot(a model.SlotAddress) model.TraitSlot
	Relic(i int) *model.Relic
	Spells(i int) []*model.Spell
	Note(i int) string
	SetTrait(member int, slot model.TraitSlotIndex, m *model.Monster)
	UpdateRelic(i int, r *model.Relic)
	UpdateSpell(member, slot int, s *model.Spell)
	UpdateNote(member int, note string)
}

// Catalog is the data the pickers choose from.
type Catalog struct {
	Monsters []*model.Monster
	Spells   []*model.Spell
	Relics   []*model.Relic
}

// Coordinator owns at most one open modal. Opening a modal closes the previous one.
type Coordinator struct {
	planner Planner
	catalog Catalog
	opts    []selection.Option

	kind    Kind
	member  int
	slot    int
	preview *model.Relic
	spells  *selection.Engine[*model.Spell]
	traits  *selection.Engine[*model.Monster]
}

// New returns a coordinator. opts configure every selection engine it creates.
func New(p Planner, c Catalog, opts ...selection.Option) *Coordinator {
	return &Coordinator{planner: p, catalog: c, opts: opts}
}

func (c *Coordinator) Kind() Kind { return c.kind }

// Member is the party member the open modal edits.
func (c *Coordinator) Member() int { return c.member }

// Slot is the spell or trait slot the open modal edits.
func (c *Coordinator) Slot() int { return c.slot }

func (c *Coordinator) open(k Kind, member, slot int) {
	c.Close()
	c.kind, c.member, c.slot = k, member, slot
}

// Close dismisses the open modal, discarding any unapplied search and pending debounce.
func (c *Coordinator) Close() {
	if c.spells != nil {
		c.spells.Cancel()
	}
	if c.traits != nil {
		c.traits.Cancel()
	}
	c.kind, c.member, c.slot = KindNone, 0, 0
	c.preview, c.spells, c.traits = nil, nil, nil
}

func (c *Coordinator) require(k Kind) error {
	if c.kind != k {
		return NotOpenError{Want: k, Open: c.kind}
	}
	return nil
}

// OpenRelic opens the relic picker. The preview starts at the member's relic, else the first catalog relic.
func (c *Coordinator) OpenRelic(member int) {
	current := c.planner.Relic(member)
	c.open(KindRelic, member, 0)
	c.preview = current
	if c.preview == nil && len(c.catalog.Relics) > 0 {
		c.preview = c.catalog.Relics[0]
	}
}

// PreviewRelic is the relic shown in the open relic modal.
func (c *Coordinator) PreviewRelic() *model.Relic { return c.preview }

// Preview shows the catalog relic with the given abbreviation. Unknown abbreviations leave the preview as is.
func (c *Coordinator) Preview(abbreviation string) bool {
	if c.kind != KindRelic {
		return false
	}
	for _, r := range c.catalog.Relics {
		if strings.EqualFold(r.Abbreviation, abbreviation) {
			c.preview = r
			return true
		}
	}
	return false
}

// PreviewSaved reports whether the previewed relic is the one already assigned.
func (c *Coordinator) PreviewSaved() bool {
	if c.kind != KindRelic {
		return false
	}
	return reflect.DeepEqual(c.preview, c.planner.Relic(c.member))
}

// SaveRelic assigns the previewed relic. The modal stays open.
func (c *Coordinator) SaveRelic() error {
	if err := c.require(KindRelic); err != nil {
		return err
	}
	c.planner.UpdateRelic(c.member, c.preview)
	return nil
}

// OpenSpell opens the spell picker for one spell slot with a fresh selection engine.
func (c *Coordinator) OpenSpell(member, slot int) {
	c.open(KindSpell, member, slot)
	c.spells = selection.NewSpellEngine(c.catalog.Spells, c.opts...)
}

// SpellEngine is the open spell modal's engine, or nil.
func (c *Coordinator) SpellEngine() *selection.Engine[*model.Spell] { return c.spells }

// CurrentSpell is the spell in the slot being edited, or nil.
func (c *Coordinator) CurrentSpell() *model.Spell {
	if c.kind != KindSpell {
		return nil
	}
	list := c.planner.Spells(c.member)
	if c.slot < len(list) {
		return list[c.slot]
	}
	return nil
}

// CanClearSpell reports whether the edited slot holds a spell.
func (c *Coordinator) CanClearSpell() bool { return c.CurrentSpell() != nil }

// ChooseSpell assigns s to the edited slot and closes the modal.
func (c *Coordinator) ChooseSpell(s *model.Spell) error {
	if err := c.require(KindSpell); err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("choose spell: nil spell")
	}
	c.planner.UpdateSpell(c.member, c.slot, s)
	c.Close()
	return nil
}

// ClearSpell clears the edited slot and closes the modal.
func (c *Coordinator) ClearSpell() error {
	if err := c.require(KindSpell); err != nil {
		return err
	}
	c.planner.UpdateSpell(c.member, c.slot, nil)
	c.Close()
	return nil
}

func (c *Coordinator) OpenNote(member int) {
	c.open(KindNote, member, 0)
}

// CurrentNote is the saved note of the member being edited.
func (c *Coordinator) CurrentNote() string {
	if c.kind != KindNote {
		return ""
	}
	return c.planner.Note(c.member)
}

// SetNote saves text as the member's note. The modal stays open.
func (c *Coordinator) SetNote(text string) error {
	if err := c.require(KindNote); err != nil {
		return err
	}
	c.planner.UpdateNote(c.member, text)
	return nil
}

// OpenTrait opens the monster picker for one trait slot with a fresh selection engine.
func (c *Coordinator) OpenTrait(member int, slot model.TraitSlotIndex) {
	c.open(KindTrait, member, int(slot))
	c.traits = selection.NewMonsterEngine(c.catalog.Monsters, c.opts...)
}

func (c *Coordinator) TraitEngine() *selection.Engine[*model.Monster] { return c.traits }

// CurrentTraitUID is the uid of the monster in the edited slot, or "".
func (c *Coordinator) CurrentTraitUID() string {
	if c.kind != KindTrait {
		return ""
	}
	s := c.planner.Slot(model.SlotAddress{PartyMemberID: c.member, TraitSlotID: c.slot})
	if s.Monster == nil {
		return ""
	}
	return s.Monster.UID
}

// ChooseTrait places m in the edited slot and closes the modal.
func (c *Coordinator) ChooseTrait(m *model.Monster) error {
	if err := c.require(KindTrait); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("choose trait: nil monster")
	}
	c.planner.SetTrait(c.member, model.TraitSlotIndex(c.slot), m)
	c.Close()
	return nil
}

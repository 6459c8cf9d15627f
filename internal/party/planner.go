// Package party owns the editable party document and every mutation on it.
package party

import (
	"fmt"
	"log/slog"
	"reflect"

	"siralim-planner/internal/highlight"
	"siralim-planner/internal/model"
)

// Sink receives whole-substructure replacements after each commit.
type Sink interface {
	UpdatePartyMembers(members [model.PartySize]model.PartyMember)
	UpdateRelics(relics [model.PartySize]*model.Relic)
	UpdateSpells(spells [model.PartySize][]*model.Spell)
	UpdateNotes(notes [model.PartySize]string)
}

// Validator returns an advisory message for a slot's content, or "" when it is valid.
type Validator func(m *model.Monster, slot model.TraitSlotIndex) string

// NoValidation reports every slot as valid.
func NoValidation(*model.Monster, model.TraitSlotIndex) string { return "" }

type Option func(*Planner)

func WithSink(s Sink) Option { return func(p *Planner) { p.sink = s } }

func WithValidator(v Validator) Option { return func(p *Planner) { p.validate = v } }

// WithTracker marks changed trait slots in t after every member commit.
func WithTracker(t *highlight.Tracker) Option { return func(p *Planner) { p.flash = t } }

func WithLogger(l *slog.Logger) Option { return func(p *Planner) { p.log = l } }

// Planner is the single owner of a party. It is not safe for concurrent use; drive it from one event loop.
//
// Indices are trusted: an out-of-range member, trait slot or spell slot panics.
type Planner struct {
	party    model.Party
	sink     Sink
	validate Validator
	flash    *highlight.Tracker
	log      *slog.Logger
}

func New(p model.Party, opts ...Option) *Planner {
	pl := &Planner{party: p, validate: NoValidation, log: slog.Default()}
	for _, opt := range opts {
		opt(pl)
	}
	if pl.validate == nil {
		pl.validate = NoValidation
	}
	for i := range pl.party.Spells {
		if pl.party.Spells[i] == nil {
			pl.party.Spells[i] = []*model.Spell{}
		}
	}
	return pl
}

// Party returns the current document. Spell slices are shared but never modified in place.
func (p *Planner) Party() model.Party { return p.party }

func (p *Planner) Member(i int) model.PartyMember {
	checkMember(i)
	return p.party.Members[i]
}

func (p *Planner) Slot(a model.SlotAddress) model.TraitSlot {
	checkAddr(a)
	return p.party.Members[a.PartyMemberID][a.TraitSlotID]
}

func (p *Planner) Relic(i int) *model.Relic {
	checkMember(i)
	return p.party.Relics[i]
}

// Spells returns a copy of member i's spell list.
func (p *Planner) Spells(i int) []*model.Spell {
	checkMember(i)
	return append([]*model.Spell(nil), p.party.Spells[i]...)
}

func (p *Planner) Note(i int) string {
	checkMember(i)
	return p.party.Notes[i]
}

// SetTrait places m in the slot and clears its integrity error.
func (p *Planner) SetTrait(member int, slot model.TraitSlotIndex, m *model.Monster) {
	a := model.SlotAddress{PartyMemberID: member, TraitSlotID: int(slot)}
	checkAddr(a)
	next := p.party.Members
	next[member][slot] = model.TraitSlot{Monster: m}
	p.commitMembers(next)
}

// ClearTrait empties the slot and drops its integrity error.
func (p *Planner) ClearTrait(member int, slot model.TraitSlotIndex) {
	a := model.SlotAddress{PartyMemberID: member, TraitSlotID: int(slot)}
	checkAddr(a)
	next := p.party.Members
	next[member][slot] = model.TraitSlot{}
	p.commitMembers(next)
}

// Swap exchanges the whole trait slots at a and b, error included, in one commit.
// Swapping a slot with itself commits an identical state.
func (p *Planner) Swap(a, b model.SlotAddress) {
	checkAddr(a)
	checkAddr(b)
	next := p.party.Members
	from := next[a.PartyMemberID][a.TraitSlotID]
	to := next[b.PartyMemberID][b.TraitSlotID]
	next[a.PartyMemberID][a.TraitSlotID] = to
	next[b.PartyMemberID][b.TraitSlotID] = from
	p.log.Debug("swap trait slots", "from", a, "to", b)
	p.commitMembers(next)
}

func (p *Planner) commitMembers(next [model.PartySize]model.PartyMember) {
	prev := p.party.Members
	p.party.Members = next
	if p.flash != nil {
		for _, a := range model.AllSlotAddresses() {
			before := prev[a.PartyMemberID][a.TraitSlotID].Monster
			after := next[a.PartyMemberID][a.TraitSlotID].Monster
			if !reflect.DeepEqual(before, after) {
				p.flash.Mark(a)
			}
		}
	}
	if p.sink != nil {
		p.sink.UpdatePartyMembers(next)
	}
}

// UpdateRelic replaces relic i; nil removes it.
func (p *Planner) UpdateRelic(i int, r *model.Relic) {
	checkMember(i)
	next := p.party.Relics
	next[i] = r
	p.party.Relics = next
	if p.sink != nil {
		p.sink.UpdateRelics(next)
	}
}

// UpdateSpell assigns or clears one spell slot of member.
//
// A nil spell clears the slot and then drops trailing cleared slots; clearing past the end does nothing.
// A spell at or past the end is appended, so the list grows by exactly one.
func (p *Planner) UpdateSpell(member, slot int, s *model.Spell) {
	checkMember(member)
	if slot < 0 {
		panic(fmt.Sprintf("party: spell slot %d out of range", slot))
	}
	cur := p.party.Spells[member]
	if s == nil && slot >= len(cur) {
		return
	}
	list := append(make([]*model.Spell, 0, len(cur)+1), cur...)
	switch {
	case s == nil:
		list[slot] = nil
		for len(list) > 0 && list[len(list)-1] == nil {
			list = list[:len(list)-1]
		}
	case slot >= len(list):
		list = append(list, s)
	default:
		list[slot] = s
	}
	next := p.party.Spells
	next[member] = list
	p.party.Spells = next
	if p.sink != nil {
		p.sink.UpdateSpells(next)
	}
}

// UpdateNote replaces member's note. No length limit applies.
func (p *Planner) UpdateNote(member int, note string) {
	checkMember(member)
	next := p.party.Notes
	next[member] = note
	p.party.Notes = next
	if p.sink != nil {
		p.sink.UpdateNotes(next)
	}
}

// DisplayClass is the class shown for member: fused trait, then primary, else "empty".
func (p *Planner) DisplayClass(member int) string {
	checkMember(member)
	return model.DisplayClass(p.party.Members[member])
}

// TraitErrors asks the validator about a non-empty slot. The artifact slot is always validated as such.
func (p *Planner) TraitErrors(a model.SlotAddress) string {
	checkAddr(a)
	slot := p.party.Members[a.PartyMemberID][a.TraitSlotID]
	if model.IsEmptySlot(slot) {
		return ""
	}
	return p.validate(slot.Monster, model.TraitSlotIndex(a.TraitSlotID))
}

func checkMember(i int) {
	if i < 0 || i >= model.PartySize {
		panic(fmt.Sprintf("party: member index %d out of range", i))
	}
}

func checkAddr(a model.SlotAddress) {
	if !a.Valid() {
		panic(fmt.Sprintf("party: slot address %d:%d out of range", a.PartyMemberID, a.TraitSlotID))
	}
}

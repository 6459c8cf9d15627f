package model

// IsEmptySlot reports whether the slot has no monster content.
// A monster record with no populated fields counts as empty, matching catalog rows that failed to resolve.
func IsEmptySlot(slot TraitSlot) bool {
	m := slot.Monster
	if m == nil {
		return true
	}
	return m.UID == "" && m.Class == "" && m.Family == "" && m.Creature == "" &&
		m.TraitName == "" && m.TraitDescription == "" && m.MaterialName == "" &&
		m.SpriteFilename == "" && len(m.Sources) == 0 && m.Stats == nil && m.SearchText == ""
}

// DisplayClass derives the class shown for a party member: fused trait first, then primary, else "empty".
func DisplayClass(pm PartyMember) string {
	if m := pm[SlotFused].Monster; m != nil && m.Class != "" {
		return m.Class
	}
	if m := pm[SlotPrimary].Monster; m != nil && m.Class != "" {
		return m.Class
	}
	return ClassEmpty
}

// ProfileStats averages the primary and fused creature stats (floored).
// With only primary stats those are returned as-is; without primary stats ok is false.
func ProfileStats(pm PartyMember) (Stats, bool) {
	var s1, s2 *Stats
	if m := pm[SlotPrimary].Monster; m != nil {
		s1 = m.Stats
	}
	if m := pm[SlotFused].Monster; m != nil {
		s2 = m.Stats
	}
	switch {
	case s1 == nil:
		return Stats{}, false
	case s2 == nil:
		return *s1, true
	}
	return Stats{
		Health:       floorHalf(s1.Health + s2.Health),
		Attack:       floorHalf(s1.Attack + s2.Attack),
		Intelligence: floorHalf(s1.Intelligence + s2.Intelligence),
		Defense:      floorHalf(s1.Defense + s2.Defense),
		Speed:        floorHalf(s1.Speed + s2.Speed),
	}, true
}

func floorHalf(n int) int {
	if n < 0 && n%2 != 0 {
		return n/2 - 1
	}
	return n / 2
}

// NewParty returns six empty members with no relics, spells or notes.
func NewParty() Party {
	var p Party
	for i := range p.Spells {
		p.Spells[i] = []*Spell{}
	}
	return p
}

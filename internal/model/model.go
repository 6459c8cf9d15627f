package model

import "strings"

const (
	// PartySize is the number of party members in a build.
	PartySize = 6
	// TraitSlots is the number of trait slots per party member.
	TraitSlots = 3
)

// TraitSlotIndex identifies one of a party member's trait slots.
type TraitSlotIndex int

const (
	SlotPrimary TraitSlotIndex = iota
	SlotFused
	SlotArtifact
)

func (i TraitSlotIndex) String() string {
	switch i {
	case SlotPrimary:
		return "primary"
	case SlotFused:
		return "fused"
	case SlotArtifact:
		return "artifact"
	default:
		return "slot?"
	}
}

// Creature classes. Anything else (backer traits, nether boss traits, ...) is a non-creature trait.
const (
	ClassChaos   = "Chaos"
	ClassDeath   = "Death"
	ClassLife    = "Life"
	ClassNature  = "Nature"
	ClassSorcery = "Sorcery"

	// ClassEmpty is the displayed class of a party member without creatures.
	ClassEmpty = "empty"
)

// CreatureClasses lists the five elemental classes in tab order.
var CreatureClasses = []string{ClassChaos, ClassDeath, ClassLife, ClassNature, ClassSorcery}

// IsCreatureClass reports whether class is one of the five elemental classes (case-insensitive).
func IsCreatureClass(class string) bool {
	c := strings.ToLower(strings.TrimSpace(class))
	for _, cc := range CreatureClasses {
		if strings.ToLower(cc) == c {
			return true
		}
	}
	return false
}

type Stats struct {
	Health       int `json:"health"`
	Attack       int `json:"attack"`
	Intelligence int `json:"intelligence"`
	Defense      int `json:"defense"`
	Speed        int `json:"speed"`
}

// Monster is a catalog trait record. Most are creatures; some carry a non-elemental class.
type Monster struct {
	UID              string   `json:"uid"`
	Class            string   `json:"class"`
	Family           string   `json:"family"`
	Creature         string   `json:"creature"`
	TraitName        string   `json:"trait_name"`
	TraitDescription string   `json:"trait_description"`
	MaterialName     string   `json:"material_name,omitempty"`
	SpriteFilename   string   `json:"sprite_filename,omitempty"`
	Sources          []string `json:"sources,omitempty"`
	Stats            *Stats   `json:"stats,omitempty"`
	SearchText       string   `json:"search_text"`
}

// IsCreature reports whether m is an actual creature rather than another kind of trait.
func (m *Monster) IsCreature() bool {
	return m != nil && IsCreatureClass(m.Class)
}

type Perk struct {
	Rank        string `json:"rank"`
	Description string `json:"description"`
}

type Relic struct {
	UID          string `json:"uid"`
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
	StatBonus    string `json:"stat_bonus"`
	Perks        []Perk `json:"perks"`
}

type Spell struct {
	UID         string `json:"uid"`
	Class       string `json:"class"`
	Charges     int    `json:"charges"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SearchText  string `json:"search_text"`
}

// TraitSlot holds a monster (nil when empty) and an integrity error from loading.
// Error is unrelated to trait-combination validity.
type TraitSlot struct {
	Monster *Monster `json:"monster,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// PartyMember is the ordered triple primary / fused / artifact.
type PartyMember [TraitSlots]TraitSlot

// Party is the whole editable document. A nil entry in Spells is a cleared ("false") spell slot.
type Party struct {
	Members [PartySize]PartyMember `json:"members"`
	Relics  [PartySize]*Relic      `json:"relics"`
	Spells  [PartySize][]*Spell    `json:"spells"`
	Notes   [PartySize]string      `json:"notes"`
}

// SlotAddress identifies one trait slot within the party.
type SlotAddress struct {
	PartyMemberID int `json:"partyMemberId"`
	TraitSlotID   int `json:"traitSlotId"`
}

// Valid reports whether the address points inside a party.
func (a SlotAddress) Valid() bool {
	return a.PartyMemberID >= 0 && a.PartyMemberID < PartySize && a.TraitSlotID >= 0 && a.TraitSlotID < TraitSlots
}

// AllSlotAddresses returns every trait slot address in member-major order.
func AllSlotAddresses() []SlotAddress {
	out := make([]SlotAddress, 0, PartySize*TraitSlots)
	for m := 0; m < PartySize; m++ {
		for s := 0; s < TraitSlots; s++ {
			out = append(out, SlotAddress{PartyMemberID: m, TraitSlotID: s})
		}
	}
	return out
}

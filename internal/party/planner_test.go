package party

import (
	"reflect"
	"testing"

	"siralim-planner/internal/highlight"
	"siralim-planner/internal/model"
)

type recordingSink struct {
	members [][model.PartySize]model.PartyMember
	relics  [][model.PartySize]*model.Relic
	spells  [][model.PartySize][]*model.Spell
	notes   [][model.PartySize]string
}

func (s *recordingSink) UpdatePartyMembers(m [model.PartySize]model.PartyMember) {
	s.members = append(s.members, m)
}
func (s *recordingSink) UpdateRelics(r [model.PartySize]*model.Relic) { s.relics = append(s.relics, r) }
func (s *recordingSink) UpdateSpells(sp [model.PartySize][]*model.Spell) {
	s.spells = append(s.spells, sp)
}
func (s *recordingSink) UpdateNotes(n [model.PartySize]string) { s.notes = append(s.notes, n) }

var (
	imp   = &model.Monster{UID: "m1", Class: "Chaos", Creature: "Imp", TraitName: "Mischief"}
	nymph = &model.Monster{UID: "m2", Class: "Life", Creature: "Nymph", TraitName: "Bloom"}
	ghoul = &model.Monster{UID: "m3", Class: "Death", Creature: "Ghoul", TraitName: "Rot"}
)

func seededParty() model.Party {
	p := model.NewParty()
	p.Members[0][0] = model.TraitSlot{Monster: imp}
	p.Members[0][1] = model.TraitSlot{Monster: nymph}
	p.Members[3][2] = model.TraitSlot{Monster: ghoul}
	p.Members[4][0] = model.TraitSlot{Error: "monster no longer exists"}
	return p
}

func addr(m, s int) model.SlotAddress { return model.SlotAddress{PartyMemberID: m, TraitSlotID: s} }

func TestSwap_SymmetryAndIdentity(t *testing.T) {
	t.Parallel()

	pairs := [][2]model.SlotAddress{
		{addr(0, 0), addr(0, 1)},
		{addr(0, 0), addr(3, 2)},
		{addr(4, 0), addr(0, 1)},
		{addr(5, 2), addr(1, 1)},
		{addr(2, 2), addr(2, 2)},
		{addr(0, 0), addr(0, 0)},
	}
	for _, pair := range pairs {
		pl := New(seededParty())
		orig := pl.Party()

		pl.Swap(pair[0], pair[0])
		if !reflect.DeepEqual(pl.Party(), orig) {
			t.Fatalf("identity swap at %v changed state", pair[0])
		}

		pl.Swap(pair[0], pair[1])
		pl.Swap(pair[0], pair[1])
		if !reflect.DeepEqual(pl.Party(), orig) {
			t.Fatalf("double swap %v <-> %v did not restore state", pair[0], pair[1])
		}
	}
}

func TestSwap_MovesErrorWithSlot(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	pl := New(seededParty(), WithSink(sink))
	pl.Swap(addr(4, 0), addr(0, 0))

	if got := pl.Slot(addr(0, 0)); got.Monster != nil || got.Error != "monster no longer exists" {
		t.Fatalf("expected error slot at 0:0; got %+v", got)
	}
	if got := pl.Slot(addr(4, 0)); got.Monster != imp || got.Error != "" {
		t.Fatalf("expected imp at 4:0; got %+v", got)
	}
	if len(sink.members) != 1 {
		t.Fatalf("expected one commit; got %d", len(sink.members))
	}
}

func TestSetTrait_ClearsErrorAndFlashesOnChange(t *testing.T) {
	t.Parallel()

	tr := highlight.New(nil)
	sink := &recordingSink{}
	pl := New(seededParty(), WithSink(sink), WithTracker(tr))

	pl.SetTrait(4, model.SlotPrimary, ghoul)
	if got := pl.Slot(addr(4, 0)); got.Monster != ghoul || got.Error != "" {
		t.Fatalf("SetTrait: got %+v", got)
	}
	if !tr.Active(addr(4, 0)) {
		t.Fatalf("expected changed slot to flash")
	}
	if tr.Active(addr(0, 0)) {
		t.Fatalf("expected untouched slot not to flash")
	}

	same := *imp
	pl.SetTrait(0, model.SlotPrimary, &same)
	if tr.Active(addr(0, 0)) {
		t.Fatalf("expected deep-equal monster not to flash")
	}
	if len(sink.members) != 2 {
		t.Fatalf("expected a commit per mutation; got %d", len(sink.members))
	}
}

func TestSwap_FlashesBothEnds(t *testing.T) {
	t.Parallel()

	tr := highlight.New(nil)
	pl := New(seededParty(), WithTracker(tr))
	pl.Swap(addr(0, 0), addr(0, 1))
	if !tr.Active(addr(0, 0)) || !tr.Active(addr(0, 1)) {
		t.Fatalf("expected both swapped slots to flash")
	}
	pl.Swap(addr(2, 0), addr(2, 0))
	if tr.Active(addr(2, 0)) {
		t.Fatalf("expected identity swap not to flash")
	}
}

func TestClearTrait(t *testing.T) {
	t.Parallel()

	pl := New(seededParty())
	pl.ClearTrait(0, model.SlotFused)
	if !model.IsEmptySlot(pl.Slot(addr(0, 1))) {
		t.Fatalf("expected cleared slot")
	}
	if got := pl.DisplayClass(0); got != model.ClassChaos {
		t.Fatalf("expected display class to fall back to primary; got %q", got)
	}
	pl.ClearTrait(4, model.SlotPrimary)
	if got := pl.Slot(addr(4, 0)); got.Error != "" {
		t.Fatalf("expected ClearTrait to drop the error; got %+v", got)
	}
}

func TestUpdateSpell(t *testing.T) {
	t.Parallel()

	a := &model.Spell{UID: "a"}
	b := &model.Spell{UID: "b"}
	c := &model.Spell{UID: "c"}
	d := &model.Spell{UID: "d"}

	type step struct {
		slot  int
		spell *model.Spell
	}
	tests := []struct {
		name  string
		steps []step
		want  []*model.Spell
	}{
		{name: "append at length", steps: []step{{0, a}, {1, b}}, want: []*model.Spell{a, b}},
		{name: "append beyond length grows by one", steps: []step{{0, a}, {5, b}}, want: []*model.Spell{a, b}},
		{name: "overwrite in range", steps: []step{{0, a}, {1, b}, {0, c}}, want: []*model.Spell{c, b}},
		{name: "clear last pops", steps: []step{{0, a}, {1, b}, {1, nil}}, want: []*model.Spell{a}},
		{name: "clear middle leaves gap", steps: []step{{0, a}, {1, b}, {2, c}, {1, nil}}, want: []*model.Spell{a, nil, c}},
		{
			name:  "clear middle then higher truncates to front run",
			steps: []step{{0, a}, {1, b}, {2, c}, {3, d}, {1, nil}, {3, nil}, {2, nil}},
			want:  []*model.Spell{a},
		},
		{name: "clear beyond length is a no-op", steps: []step{{0, a}, {4, nil}}, want: []*model.Spell{a}},
		{name: "clear everything", steps: []step{{0, a}, {0, nil}}, want: []*model.Spell{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pl := New(model.NewParty())
			for _, s := range tt.steps {
				pl.UpdateSpell(2, s.slot, s.spell)
			}
			got := pl.Spells(2)
			if len(got) != len(tt.want) {
				t.Fatalf("len: got %d want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("slot %d: got %v want %v", i, got[i], tt.want[i])
				}
			}
			if n := len(got); n > 0 && got[n-1] == nil {
				t.Fatalf("trailing cleared slot left behind: %v", got)
			}
		})
	}
}

func TestUpdateSpell_AppendOnlyGrowth(t *testing.T) {
	t.Parallel()

	pl := New(model.NewParty())
	for i := 0; i < 5; i++ {
		before := len(pl.Spells(0))
		pl.UpdateSpell(0, before, &model.Spell{UID: "x"})
		if got := len(pl.Spells(0)); got != before+1 {
			t.Fatalf("assign at length %d: got len %d", before, got)
		}
	}
	for i := 0; i < 5; i++ {
		pl.UpdateSpell(0, i, &model.Spell{UID: "y"})
		if got := len(pl.Spells(0)); got != 5 {
			t.Fatalf("assign in range changed length to %d", got)
		}
	}
}

func TestUpdateSpell_ReplacesWholeList(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	pl := New(model.NewParty(), WithSink(sink))
	pl.UpdateSpell(1, 0, &model.Spell{UID: "a"})
	first := sink.spells[0][1]
	pl.UpdateSpell(1, 0, &model.Spell{UID: "b"})
	if first[0].UID != "a" {
		t.Fatalf("expected earlier snapshot untouched by later mutation; got %q", first[0].UID)
	}
	pl.UpdateSpell(1, 3, nil)
	if len(sink.spells) != 2 {
		t.Fatalf("expected no commit for a no-op clear; got %d commits", len(sink.spells))
	}
}

func TestUpdateRelicAndNote(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	pl := New(model.NewParty(), WithSink(sink))
	r := &model.Relic{UID: "r1", Name: "Amulet of Time"}
	pl.UpdateRelic(3, r)
	pl.UpdateNote(5, "lead with the tank")

	if pl.Relic(3) != r || pl.Relic(2) != nil {
		t.Fatalf("expected only relic 3 set")
	}
	if pl.Note(5) != "lead with the tank" {
		t.Fatalf("note: got %q", pl.Note(5))
	}
	if len(sink.relics) != 1 || sink.relics[0][3] != r || len(sink.notes) != 1 {
		t.Fatalf("expected one relic and one note commit")
	}
	if got := pl.Profile(3).Relic; got != "Amulet of Time" {
		t.Fatalf("profile relic: got %q", got)
	}
	if got := pl.Profile(0).Relic; got != NoRelicLabel {
		t.Fatalf("profile relic: got %q", got)
	}
}

func TestTraitErrors(t *testing.T) {
	t.Parallel()

	var seen []model.TraitSlotIndex
	v := func(m *model.Monster, slot model.TraitSlotIndex) string {
		seen = append(seen, slot)
		if m.Class == model.ClassDeath {
			return "Ghoul cannot be fused"
		}
		return ""
	}
	pl := New(seededParty(), WithValidator(v))

	if got := pl.TraitErrors(addr(3, 2)); got != "Ghoul cannot be fused" {
		t.Fatalf("got %q", got)
	}
	if got := pl.TraitErrors(addr(0, 0)); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := pl.TraitErrors(addr(1, 1)); got != "" {
		t.Fatalf("empty slot should not be validated; got %q", got)
	}
	if !reflect.DeepEqual(seen, []model.TraitSlotIndex{model.SlotArtifact, model.SlotPrimary}) {
		t.Fatalf("validator calls: got %v", seen)
	}
}

func TestOutOfRangePanics(t *testing.T) {
	t.Parallel()

	cases := map[string]func(pl *Planner){
		"member":     func(pl *Planner) { pl.UpdateNote(6, "x") },
		"trait slot": func(pl *Planner) { pl.ClearTrait(0, 3) },
		"swap":       func(pl *Planner) { pl.Swap(addr(0, 0), addr(-1, 0)) },
		"spell slot": func(pl *Planner) { pl.UpdateSpell(0, -1, &model.Spell{}) },
	}
	for name, fn := range cases {
		name, fn := name, fn
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			fn(New(model.NewParty()))
		})
	}
}

func TestProfile_AveragesStats(t *testing.T) {
	t.Parallel()

	p := model.NewParty()
	p.Members[1][0] = model.TraitSlot{Monster: &model.Monster{Class: "Nature", SpriteFilename: "dryad.png", Stats: &model.Stats{Health: 9, Speed: 4}}}
	p.Members[1][1] = model.TraitSlot{Monster: &model.Monster{Class: "Sorcery", Stats: &model.Stats{Health: 10, Speed: 5}}}
	got := New(p).Profile(1)
	want := Profile{Class: "Sorcery", Sprite: "dryad.png", Stats: model.Stats{Health: 9, Speed: 4}, HasStats: true, Relic: NoRelicLabel}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

package modal

import (
	"errors"
	"testing"
	"time"

	"siralim-planner/internal/model"
	"siralim-planner/internal/party"
	"siralim-planner/internal/schedule"
	"siralim-planner/internal/selection"
)

func testCatalog() Catalog {
	return Catalog{
		Monsters: []*model.Monster{
			{UID: "m1", Class: "Chaos", Creature: "Imp", SearchText: "chaos imp"},
			{UID: "m2", Class: "Life", Creature: "Nymph", SearchText: "life nymph"},
		},
		Spells: []*model.Spell{
			{UID: "s1", Class: "Chaos", Name: "Fireball", SearchText: "chaos fireball"},
			{UID: "s2", Class: "Life", Name: "Heal", SearchText: "life heal"},
		},
		Relics: []*model.Relic{
			{UID: "r1", Abbreviation: "AoT", Name: "Amulet of Time"},
			{UID: "r2", Abbreviation: "BoS", Name: "Blade of Storms"},
		},
	}
}

func TestRelicModal_PreviewAndSave(t *testing.T) {
	t.Parallel()

	cat := testCatalog()
	pl := party.New(model.NewParty())
	c := New(pl, cat)

	c.OpenRelic(2)
	if c.Kind() != KindRelic || c.Member() != 2 {
		t.Fatalf("expected relic modal for member 2; got %s/%d", c.Kind(), c.Member())
	}
	if c.PreviewRelic() != cat.Relics[0] {
		t.Fatalf("expected preview to default to the first catalog relic")
	}
	if c.PreviewSaved() {
		t.Fatalf("preview should not count as saved before saving")
	}
	if !c.Preview("bos") {
		t.Fatalf("expected preview by abbreviation")
	}
	if c.Preview("nope") || c.PreviewRelic() != cat.Relics[1] {
		t.Fatalf("unknown abbreviation should leave the preview unchanged")
	}
	if pl.Relic(2) != nil {
		t.Fatalf("preview must not change the saved relic")
	}
	if err := c.SaveRelic(); err != nil {
		t.Fatalf("SaveRelic: %v", err)
	}
	if pl.Relic(2) != cat.Relics[1] || !c.PreviewSaved() || c.Kind() != KindRelic {
		t.Fatalf("expected relic saved with the modal still open")
	}

	c.Close()
	c.OpenRelic(2)
	if c.PreviewRelic() != cat.Relics[1] {
		t.Fatalf("expected preview to start at the saved relic")
	}
}

func TestSpellModal_ChooseAndClear(t *testing.T) {
	t.Parallel()

	cat := testCatalog()
	pl := party.New(model.NewParty())
	c := New(pl, cat)

	c.OpenSpell(1, 0)
	if c.CanClearSpell() {
		t.Fatalf("empty slot should not offer clear")
	}
	if err := c.ChooseSpell(cat.Spells[1]); err != nil {
		t.Fatalf("ChooseSpell: %v", err)
	}
	if c.Kind() != KindNone {
		t.Fatalf("expected modal closed after choosing")
	}
	if got := pl.Spells(1); len(got) != 1 || got[0] != cat.Spells[1] {
		t.Fatalf("spells: got %v", got)
	}

	c.OpenSpell(1, 0)
	if !c.CanClearSpell() || c.CurrentSpell() != cat.Spells[1] {
		t.Fatalf("expected the assigned spell to be current")
	}
	if !c.SpellEngine().IsSelected(cat.Spells[1], c.CurrentSpell().UID) {
		t.Fatalf("expected the assigned spell to be flagged selected")
	}
	if err := c.ClearSpell(); err != nil {
		t.Fatalf("ClearSpell: %v", err)
	}
	if got := pl.Spells(1); len(got) != 0 {
		t.Fatalf("expected spell list compacted to empty; got %v", got)
	}
}

func TestSpellModal_CloseDiscardsPendingSearch(t *testing.T) {
	t.Parallel()

	clk := schedule.NewFake()
	applied := 0
	c := New(party.New(model.NewParty()), testCatalog(),
		selection.WithScheduler(clk), selection.OnApply(func(string) { applied++ }))

	c.OpenSpell(0, 0)
	eng := c.SpellEngine()
	eng.Type("heal")
	c.Close()
	clk.Advance(time.Second)

	if applied != 0 || eng.Pending() || eng.Term() != "" {
		t.Fatalf("expected unapplied term discarded; applied=%d pending=%v term=%q", applied, eng.Pending(), eng.Term())
	}
	if c.SpellEngine() != nil {
		t.Fatalf("expected engine released on close")
	}
}

func TestSpellModal_ReopenGetsFreshEngine(t *testing.T) {
	t.Parallel()

	c := New(party.New(model.NewParty()), testCatalog())
	c.OpenSpell(0, 0)
	first := c.SpellEngine()
	first.Apply(first.Type("heal"))
	c.OpenSpell(0, 1)
	if c.SpellEngine() == first || c.SpellEngine().AppliedTerm() != "" {
		t.Fatalf("expected a fresh engine per open")
	}
}

func TestNoteModal(t *testing.T) {
	t.Parallel()

	pl := party.New(model.NewParty())
	c := New(pl, testCatalog())
	c.OpenNote(4)
	if err := c.SetNote("carries the team"); err != nil {
		t.Fatalf("SetNote: %v", err)
	}
	if pl.Note(4) != "carries the team" || c.CurrentNote() != "carries the team" || c.Kind() != KindNote {
		t.Fatalf("expected note saved with the modal still open")
	}
}

func TestTraitModal(t *testing.T) {
	t.Parallel()

	cat := testCatalog()
	pl := party.New(model.NewParty())
	c := New(pl, cat)

	c.OpenTrait(3, model.SlotFused)
	if c.CurrentTraitUID() != "" {
		t.Fatalf("expected empty slot")
	}
	if err := c.ChooseTrait(cat.Monsters[0]); err != nil {
		t.Fatalf("ChooseTrait: %v", err)
	}
	if got := pl.Slot(model.SlotAddress{PartyMemberID: 3, TraitSlotID: 1}).Monster; got != cat.Monsters[0] {
		t.Fatalf("expected imp in 3:1; got %+v", got)
	}
	if c.Kind() != KindNone {
		t.Fatalf("expected modal closed")
	}
	c.OpenTrait(3, model.SlotFused)
	if c.CurrentTraitUID() != "m1" {
		t.Fatalf("current uid: got %q", c.CurrentTraitUID())
	}
}

func TestRoutingToClosedModalFails(t *testing.T) {
	t.Parallel()

	c := New(party.New(model.NewParty()), testCatalog())
	c.OpenNote(0)

	var nerr NotOpenError
	if err := c.ChooseSpell(&model.Spell{}); !errors.As(err, &nerr) || nerr.Want != KindSpell || nerr.Open != KindNote {
		t.Fatalf("expected NotOpenError; got %v", err)
	}
	if err := c.SaveRelic(); err == nil {
		t.Fatalf("expected error saving a relic with the note modal open")
	}
	c.OpenRelic(0)
	if c.Kind() != KindRelic {
		t.Fatalf("opening a modal should replace the previous one")
	}
}

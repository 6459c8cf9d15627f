package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"siralim-planner/internal/model"
	"siralim-planner/internal/party"
)

func sampleParty() *party.Planner {
	p := model.NewParty()
	p.Members[0][model.SlotPrimary] = model.TraitSlot{Monster: &model.Monster{
		UID: "imp", Class: model.ClassChaos, Creature: "Imp", TraitName: "Mischief Maker",
		Stats: &model.Stats{Health: 60, Attack: 40, Intelligence: 50, Defense: 30, Speed: 70},
	}}
	p.Members[0][model.SlotFused] = model.TraitSlot{Error: "monster no longer exists"}
	p.Relics[0] = &model.Relic{UID: "ta", Name: "Amulet of Time", StatBonus: "Speed"}
	p.Spells[0] = []*model.Spell{{Name: "Fireball", Class: model.ClassChaos, Charges: 3}, nil, {Name: "Heal", Class: model.ClassLife, Charges: 5}}
	p.Notes[0] = "lead"
	return party.New(p)
}

func TestRenderPartyMarkdown(t *testing.T) {
	t.Parallel()

	md, err := RenderPartyMarkdown("speedrun", sampleParty())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"# speedrun\n",
		"## Member 1 (Chaos)",
		"- Primary: **Mischief Maker** (Imp, Chaos)",
		"- Fused: _monster no longer exists_",
		"- Artifact: _empty_",
		"- Relic: Amulet of Time",
		"1. **Fireball** (Chaos, 3 charges)",
		"2. _(empty)_",
		"### Note\n\nlead",
		"## Member 6",
		"- Relic: " + party.NoRelicLabel,
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in:\n%s", want, md)
		}
	}
	if strings.Count(md, "### Spells") != 1 {
		t.Fatalf("expected spells only for the member that has them")
	}

	if _, err := RenderPartyMarkdown("  ", sampleParty()); err == nil {
		t.Fatalf("expected empty name rejected")
	}
}

func TestWriteParty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	res, err := WriteParty("a/b", sampleParty(), dir, WriteOptions{})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	want := filepath.Join(dir, "parties", "a-b.md")
	if len(res.Written) != 1 || res.Written[0] != want {
		t.Fatalf("written: %v", res.Written)
	}
	if b, err := os.ReadFile(want); err != nil || !strings.HasPrefix(string(b), "# a/b\n") {
		t.Fatalf("read back: %v %q", err, b)
	}

	if _, err := WriteParty("a/b", sampleParty(), dir, WriteOptions{}); err == nil {
		t.Fatalf("expected existing file to be kept without --overwrite")
	}
	if _, err := WriteParty("a/b", sampleParty(), dir, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if _, err := WriteParty("a", sampleParty(), " ", WriteOptions{}); err == nil {
		t.Fatalf("expected missing target dir rejected")
	}
}

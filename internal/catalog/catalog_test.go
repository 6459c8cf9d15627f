package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSample_Loads(t *testing.T) {
	t.Parallel()

	c, err := Sample()
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(c.Monsters) != 12 || len(c.Spells) != 10 || len(c.Relics) != 4 {
		t.Fatalf("counts: monsters=%d spells=%d relics=%d", len(c.Monsters), len(c.Spells), len(c.Relics))
	}

	backer, err := c.Monster(MonsterUID("", "", "Patron's Favor"))
	if err != nil {
		t.Fatalf("expected derived uid for backer trait: %v", err)
	}
	if backer.IsCreature() || backer.Stats != nil {
		t.Fatalf("backer trait should not be a creature: %+v", backer)
	}
	if backer.SearchText != strings.ToLower(backer.SearchText) || !strings.Contains(backer.SearchText, "patron's favor") {
		t.Fatalf("search text: %q", backer.SearchText)
	}
}

func TestSample_SpellsNormalized(t *testing.T) {
	t.Parallel()

	c, err := Sample()
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	var names []string
	for _, s := range c.Spells {
		names = append(names, s.Name)
	}
	want := []string{"Arcane Bolt", "Curse", "Drain Life", "Fireball", "Heal", "Hellfire", "Mana Shield", "Resurrect", "Stone Skin", "Thorns"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("spell order: got %v", names)
	}
	fire, err := c.Spell(SpellUID("Fireball", "Chaos"))
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if fire.SearchText != "chaos fireball 3 deal damage to an enemy and burn it for 2 turns." {
		t.Fatalf("search text: %q", fire.SearchText)
	}
	for _, s := range c.Spells {
		if s.Name == "Hellfire" && s.Charges != 2 {
			t.Fatalf("expected string charges parsed; got %d", s.Charges)
		}
	}
}

func TestSample_RelicsDerived(t *testing.T) {
	t.Parallel()

	c, err := Sample()
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	var got [][3]string
	for _, r := range c.Relics {
		got = append(got, [3]string{r.UID, r.Abbreviation, r.StatBonus})
	}
	want := [][3]string{
		{"ta", "AmuletofTime", "Speed"},
		{"os", "BladeofStorms", "Attack"},
		{"du", "ShieldStone", "Defense"},
		{"fs", "TomeofSecrets", "Intelligence"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("relics: got %v want %v", got, want)
	}
	if r, err := c.Relic("bladeofstorms"); err != nil || r.UID != "os" {
		t.Fatalf("lookup by abbreviation: %v %v", r, err)
	}
}

func TestUIDs(t *testing.T) {
	t.Parallel()

	if got := MonsterUID("Imp", "Imp", "Mischief Maker"); got != "e100d0" {
		t.Fatalf("MonsterUID: got %q", got)
	}
	if got := MonsterUID("", "", "Patron's Favor"); got != "d71ea9" {
		t.Fatalf("MonsterUID: got %q", got)
	}
	if got := SpellUID("Fireball", "Chaos"); got != "7d0000" {
		t.Fatalf("SpellUID: got %q", got)
	}
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	c, err := Sample()
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	md := c.Metadata()
	if md.WithStats != 10 || md.Monsters != 12 {
		t.Fatalf("counts: %+v", md)
	}
	if md.Min.Health != 48 || md.Max.Health != 80 || md.Average.Health != 65 {
		t.Fatalf("health: min=%d max=%d avg=%d", md.Min.Health, md.Max.Health, md.Average.Health)
	}
	if md.Min.Attack != 30 || md.Max.Attack != 78 || md.Average.Attack != 51 {
		t.Fatalf("attack: min=%d max=%d avg=%d", md.Min.Attack, md.Max.Attack, md.Average.Attack)
	}
}

func TestLookupNotFound(t *testing.T) {
	t.Parallel()

	c, err := Sample()
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	_, err = c.Monster("nope")
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "monster" || nf.ID != "nope" {
		t.Fatalf("expected NotFoundError; got %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	okMonsters := []byte(`[{"class":"Chaos","creature":"Imp","trait_name":"A"}]`)
	okSpells := []byte(`[{"class":"Life","name":"Heal","charges":1}]`)
	okRelics := []byte(`[{"name":"Amulet of Time","stat_bonus":"Speed"}]`)

	tests := []struct {
		name     string
		monsters []byte
		spells   []byte
		relics   []byte
		wantFile string
	}{
		{
			name:     "missing trait name",
			monsters: []byte(`[{"class":"Chaos","creature":"Imp"}]`),
			spells:   okSpells, relics: okRelics, wantFile: MonstersFile,
		},
		{
			name:     "bad charges",
			monsters: okMonsters,
			spells:   []byte(`[{"class":"Life","name":"Heal","charges":"lots"}]`),
			relics:   okRelics, wantFile: SpellsFile,
		},
		{
			name:     "unknown stat bonus",
			monsters: okMonsters, spells: okSpells,
			relics:   []byte(`[{"name":"Amulet of Time","stat_bonus":"Luck"}]`),
			wantFile: RelicsFile,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.monsters, tt.spells, tt.relics)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.File != tt.wantFile {
				t.Fatalf("expected validation error in %s; got %v", tt.wantFile, err)
			}
		})
	}

	dup := []byte(`[
		{"uid":"x","class":"Chaos","creature":"Imp","trait_name":"A"},
		{"uid":"x","class":"Life","creature":"Nymph","trait_name":"B"},
	]`)
	if _, err := Parse(dup, okSpells, okRelics); err == nil || !strings.Contains(err.Error(), "duplicate uid") {
		t.Fatalf("expected duplicate uid error; got %v", err)
	}
}

func TestParse_Relics(t *testing.T) {
	t.Parallel()

	okMonsters := []byte(`[{"class":"Chaos","creature":"Imp","trait_name":"A"}]`)
	okSpells := []byte(`[{"class":"Life","name":"Heal","charges":1}]`)

	repeated := []byte(`[
		{"name":"Amulet of Time","stat_bonus":"Speed"},
		{"name":" Amulet of Time ","stat_bonus":"Attack"},
		{"name":"Blade of Storms","stat_bonus":"Attack"},
	]`)
	c, err := Parse(okMonsters, okSpells, repeated)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(c.Relics) != 2 || c.Relics[0].StatBonus != "Speed" {
		t.Fatalf("expected the first relic of each name kept; got %+v", c.Relics)
	}

	clash := []byte(`[
		{"uid":"x","name":"Amulet of Time","stat_bonus":"Speed"},
		{"uid":"x","name":"Blade of Storms","stat_bonus":"Attack"},
	]`)
	if _, err := Parse(okMonsters, okSpells, clash); err == nil || !strings.Contains(err.Error(), "duplicate uid") {
		t.Fatalf("expected duplicate uid error; got %v", err)
	}
}

func TestLoad_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("monsters.json", `[{"class":"Chaos","family":"Imp","creature":"Imp","trait_name":"Mischief Maker"}]`)
	write("spells.json", `[{"class":"Life","name":"Heal","charges":5}]`)
	write("relics.jsonc", "// comment\n[{\"name\":\"Amulet of Time\",\"stat_bonus\":\"Speed\",}]")

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Monsters[0].UID != "e100d0" || len(c.Relics) != 1 {
		t.Fatalf("unexpected catalog: %+v", c)
	}

	if _, err := Load(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
	empty := t.TempDir()
	if _, err := Load(empty); err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error; got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := Validate(SpellsFile, []byte(`[{"class":"Life","name":"Heal","charges":"3"}, ]`)); err != nil {
		t.Fatalf("expected valid spells; got %v", err)
	}
	if err := Validate("weapons", []byte(`[]`)); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

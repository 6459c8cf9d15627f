package publish

import (
	"bytes"
	"fmt"
	"strings"

	"siralim-planner/internal/model"
	"siralim-planner/internal/party"
)

// RenderPartyMarkdown renders a party as a markdown document: one section per member with its
// traits, relic, spells and note.
func RenderPartyMarkdown(name string, p *party.Planner) (string, error) {
	if p == nil {
		return "", fmt.Errorf("missing party")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("missing party name")
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + name)
	writeLn("")

	for i := 0; i < model.PartySize; i++ {
		prof := p.Profile(i)
		head := fmt.Sprintf("## Member %d", i+1)
		if prof.Class != model.ClassEmpty {
			head += " (" + prof.Class + ")"
		}
		writeLn(head)
		writeLn("")

		member := p.Member(i)
		for slot, ts := range member {
			idx := model.TraitSlotIndex(slot)
			writeLn("- " + titleCase(idx.String()) + ": " + traitLine(ts))
		}
		writeLn("- Relic: " + prof.Relic)
		if prof.HasStats {
			s := prof.Stats
			writeLn(fmt.Sprintf("- Stats: HP %d, ATK %d, INT %d, DEF %d, SPD %d", s.Health, s.Attack, s.Intelligence, s.Defense, s.Speed))
		}

		if spells := p.Spells(i); len(spells) > 0 {
			writeLn("")
			writeLn("### Spells")
			writeLn("")
			for n, s := range spells {
				if s == nil {
					writeLn(fmt.Sprintf("%d. _(empty)_", n+1))
					continue
				}
				writeLn(fmt.Sprintf("%d. **%s** (%s, %d charges)", n+1, s.Name, s.Class, s.Charges))
			}
		}

		if note := strings.TrimSpace(p.Note(i)); note != "" {
			writeLn("")
			writeLn("### Note")
			writeLn("")
			writeLn(note)
		}
		writeLn("")
	}
	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

func traitLine(ts model.TraitSlot) string {
	switch {
	case ts.Error != "":
		return "_" + ts.Error + "_"
	case ts.Monster == nil:
		return "_empty_"
	}
	m := ts.Monster
	if m.Creature == "" {
		return fmt.Sprintf("**%s** (%s)", m.TraitName, m.Class)
	}
	return fmt.Sprintf("**%s** (%s, %s)", m.TraitName, m.Creature, m.Class)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

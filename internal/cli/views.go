package cli

import (
	"fmt"
	"strings"

	"siralim-planner/internal/model"
	"siralim-planner/internal/party"
	"siralim-planner/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type envelope struct {
	Data any `json:"data"`
}

type slotView struct {
	Slot     string `json:"slot"`
	UID      string `json:"uid,omitempty"`
	Class    string `json:"class,omitempty"`
	Creature string `json:"creature,omitempty"`
	Trait    string `json:"trait,omitempty"`
	Error    string `json:"error,omitempty"`
}

type memberView struct {
	Member int          `json:"member"`
	Class  string       `json:"class"`
	Stats  *model.Stats `json:"stats,omitempty"`
	Traits []slotView   `json:"traits"`
	Relic  string       `json:"relic"`
	Spells []string     `json:"spells"`
	Note   string       `json:"note"`
}

type partyView struct {
	Name     string       `json:"name"`
	Members  []memberView `json:"members"`
	Warnings []string     `json:"warnings,omitempty"`
}

func newPartyView(name string, p *party.Planner) partyView {
	out := partyView{Name: name, Members: make([]memberView, 0, model.PartySize)}
	for i := 0; i < model.PartySize; i++ {
		prof := p.Profile(i)
		mv := memberView{
			Member: i + 1,
			Class:  prof.Class,
			Relic:  prof.Relic,
			Spells: []string{},
			Note:   p.Note(i),
		}
		if prof.HasStats {
			st := prof.Stats
			mv.Stats = &st
		}
		for s := model.SlotPrimary; s <= model.SlotArtifact; s++ {
			addr := model.SlotAddress{PartyMemberID: i, TraitSlotID: int(s)}
			slot := p.Slot(addr)
			sv := slotView{Slot: s.String(), Error: p.TraitErrors(addr)}
			if m := slot.Monster; m != nil {
				sv.UID, sv.Class, sv.Creature, sv.Trait = m.UID, m.Class, m.Creature, m.TraitName
			}
			mv.Traits = append(mv.Traits, sv)
		}
		for _, sp := range p.Spells(i) {
			if sp == nil {
				mv.Spells = append(mv.Spells, "")
				continue
			}
			mv.Spells = append(mv.Spells, sp.Name)
		}
		out.Members = append(out.Members, mv)
	}
	return out
}

var (
	headStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func (v partyView) Text() string {
	var b strings.Builder
	b.WriteString(headStyle.Render("Party: " + v.Name))
	b.WriteString("\n")
	for _, m := range v.Members {
		fmt.Fprintf(&b, "\n%d. %s  [%s]\n", m.Member, headStyle.Render(m.Class), m.Relic)
		if m.Stats != nil {
			fmt.Fprintf(&b, "   HP %d  Atk %d  Int %d  Def %d  Spd %d\n",
				m.Stats.Health, m.Stats.Attack, m.Stats.Intelligence, m.Stats.Defense, m.Stats.Speed)
		}
		for _, t := range m.Traits {
			label := dimStyle.Render("(empty)")
			if t.UID != "" {
				label = fmt.Sprintf("%s / %s  %s", t.Creature, t.Trait, dimStyle.Render(t.UID))
			}
			if t.Error != "" {
				label += "  ! " + t.Error
			}
			fmt.Fprintf(&b, "   %-9s %s\n", t.Slot, label)
		}
		if len(m.Spells) > 0 {
			names := make([]string, len(m.Spells))
			for i, s := range m.Spells {
				if s == "" {
					s = "-"
				}
				names[i] = s
			}
			fmt.Fprintf(&b, "   spells    %s\n", strings.Join(names, ", "))
		}
		if m.Note != "" {
			fmt.Fprintf(&b, "   note      %s\n", ansi.Truncate(strings.ReplaceAll(m.Note, "\n", " "), 60, "…"))
		}
	}
	for _, w := range v.Warnings {
		fmt.Fprintf(&b, "\nwarning: %s", w)
	}
	return b.String()
}

type summaryList []store.Summary

func (l summaryList) Text() string {
	if len(l) == 0 {
		return "No saved parties."
	}
	var b strings.Builder
	for _, s := range l {
		fmt.Fprintf(&b, "%-24s %d members  updated %s\n", s.Name, s.Members, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return b.String()
}

// tableText lays rows out under titled columns. A zero width takes the remaining line.
func tableText(titles []string, widths []int, rows [][]string) string {
	const lineWidth = 120
	widths = append([]int(nil), widths...)
	rest := lineWidth
	for i, w := range widths {
		if w > 0 {
			widths[i] = max(w, ansi.StringWidth(titles[i]))
		}
		rest -= widths[i] + 1
	}
	if rest < 20 {
		rest = 20
	}
	cell := func(i int, s string) string {
		w := widths[i]
		if w == 0 {
			w = rest
		}
		return lipgloss.NewStyle().Width(w).MaxWidth(w).Render(ansi.Truncate(s, w, "…"))
	}
	var b strings.Builder
	head := make([]string, len(titles))
	for i, t := range titles {
		head[i] = headStyle.Render(cell(i, t))
	}
	b.WriteString(strings.Join(head, " "))
	b.WriteString("\n")
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = cell(i, strings.ReplaceAll(c, "\n", " "))
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}
	return b.String()
}

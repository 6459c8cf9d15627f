package tui

import (
	"fmt"
	"strings"

	"siralim-planner/internal/modal"
	"siralim-planner/internal/model"
	"siralim-planner/internal/party"

	"github.com/charmbracelet/lipgloss"
)

const (
	cellW    = 20
	profileW = 26
)

func (m appModel) View() string {
	switch {
	case m.showHelp:
		w := modalWidth(m.width)
		return placeModal(m.width, m.height, renderModalBox(w, "Help", m.help.View()))
	case m.coord.Kind() == modal.KindTrait, m.coord.Kind() == modal.KindSpell:
		return placeModal(m.width, m.height, m.pickerView())
	case m.coord.Kind() == modal.KindRelic:
		return placeModal(m.width, m.height, m.relicView())
	case m.coord.Kind() == modal.KindNote:
		return placeModal(m.width, m.height, m.noteView())
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.gridView())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return normalizePane(b.String(), m.width, m.height)
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Party: " + m.name)
	state := styleMuted().Render("saved")
	switch {
	case m.saver.Err() != nil:
		state = styleError().Render("autosave failed: " + m.saver.Err().Error())
	case m.saver.Saves() == 0:
		state = styleMuted().Render("autosave on")
	}
	return title + "  " + state
}

func (m appModel) footerView() string {
	var lines []string
	if m.status != "" {
		lines = append(lines, m.status)
	}
	lines = append(lines, styleMuted().Render(helpLine(
		gridKeys.Edit, gridKeys.Pick, gridKeys.Clear, gridKeys.PrevSpell, gridKeys.NextSpell, gridKeys.Help, gridKeys.Quit,
	)))
	return strings.Join(lines, "\n")
}

func (m appModel) gridView() string {
	head := []string{fitWidth("", 4)}
	for c := column(0); c < numColumns; c++ {
		w := cellW
		if c == colNote {
			w = profileW
		}
		head = append(head, lipgloss.NewStyle().Bold(true).Foreground(colorChromeFg).Render(fitWidth(c.title(), w)))
	}
	rows := []string{strings.Join(head, " ")}
	for i := 0; i < model.PartySize; i++ {
		rows = append(rows, m.memberRow(i))
	}
	return strings.Join(rows, "\n")
}

func (m appModel) memberRow(i int) string {
	prof := m.planner.Profile(i)
	label := styleClass(prof.Class).Render(fitWidth(fmt.Sprintf("%d", i+1), 4))
	cells := []string{label}
	for c := column(0); c < numColumns; c++ {
		cells = append(cells, m.cell(i, c, prof))
	}
	line := strings.Join(cells, " ")

	detail := prof.Class
	if prof.HasStats {
		s := prof.Stats
		detail += fmt.Sprintf("  HP %d ATK %d INT %d DEF %d SPD %d", s.Health, s.Attack, s.Intelligence, s.Defense, s.Speed)
	}
	if detail != "" {
		line += "\n" + fitWidth("", 5) + styleMuted().Render(detail)
	}
	return line
}

func (m appModel) cell(member int, c column, prof party.Profile) string {
	var (
		text string
		st   = lipgloss.NewStyle()
	)
	w := cellW
	switch {
	case c.isTrait():
		addr := model.SlotAddress{PartyMemberID: member, TraitSlotID: int(c)}
		text, st = traitCell(m.planner.Slot(addr), c, m.planner.TraitErrors(addr))
		if src, ok := m.picker.Source(); ok && src == addr {
			st = st.Background(colorPickedBg)
		}
		if m.flash.Active(addr) {
			st = st.Background(colorFlashBg)
		}
	case c == colRelic:
		text = prof.Relic
		if m.planner.Relic(member) == nil {
			st = st.Inherit(styleMuted())
		}
	case c == colSpells:
		text = m.spellCell(member)
	default:
		w = profileW
		text = strings.ReplaceAll(m.planner.Note(member), "\n", " ")
		if text == "" {
			text = "-"
			st = st.Inherit(styleMuted())
		}
	}

	out := fitWidth(text, w)
	if member == m.member && c == m.col {
		st = st.Reverse(true)
	}
	return st.Render(out)
}

// traitCell picks the text and style of a trait slot. Empty slots show a placeholder after any
// integrity error; the artifact column keeps the artifact style whatever the monster's class.
func traitCell(slot model.TraitSlot, c column, traitErr string) (string, lipgloss.Style) {
	st := lipgloss.NewStyle()
	empty := model.IsEmptySlot(slot)
	text := c.placeholder()
	if !empty {
		text = slot.Monster.TraitName
		if text == "" {
			text = slot.Monster.Creature
		}
	}
	switch {
	case slot.Error != "":
		if empty {
			return "! " + slot.Error + " " + text, st.Inherit(styleError())
		}
		return "! " + slot.Error, st.Inherit(styleError())
	case traitErr != "":
		return "! " + text, st.Inherit(styleError())
	case empty:
		return text, st.Inherit(styleMuted())
	case c == colArtifact:
		return text, st.Inherit(styleArtifact())
	}
	return text, st.Foreground(styleClass(slot.Monster.Class).GetForeground())
}

// spellCell shows the spell slot selected with [ and ] plus how many spells the member has.
func (m appModel) spellCell(member int) string {
	spells := m.planner.Spells(member)
	idx := m.spellIdx[member]
	name := "(new)"
	if idx < len(spells) {
		name = "(empty)"
		if s := spells[idx]; s != nil {
			name = s.Name
		}
	}
	return fmt.Sprintf("%d/%d %s", idx+1, len(spells), name)
}

func (m appModel) relicView() string {
	w := modalWidth(m.width)
	bodyW := modalBodyWidth(w)
	title := fmt.Sprintf("Member %d relic", m.coord.Member()+1)

	listW := bodyW / 2
	left := lipgloss.NewStyle().Width(listW).Render(m.relics.View())
	right := lipgloss.NewStyle().Width(bodyW - listW).Render(m.relicDoc.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	state := "enter: save to member"
	if m.coord.PreviewSaved() {
		state = "Saved"
	}
	body += "\n\n" + styleMuted().Render(state+"   "+helpLine(pickerKeys.Close))
	return renderModalBox(w, title, body)
}

func (m appModel) noteView() string {
	w := modalWidth(m.width)
	title := fmt.Sprintf("Member %d note", m.coord.Member()+1)
	state := ""
	if m.note.Value() == m.coord.CurrentNote() {
		state = "Saved   "
	}
	body := m.note.View() + "\n\n" + styleMuted().Render(state+helpLine(noteKeys.Save, noteKeys.Close))
	return renderModalBox(w, title, body)
}

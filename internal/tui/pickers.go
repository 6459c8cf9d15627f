package tui

import (
	"fmt"
	"strings"

	"siralim-planner/internal/modal"
	"siralim-planner/internal/model"
	"siralim-planner/internal/selection"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (m appModel) pickerView() string {
	w := modalWidth(m.width)
	bodyW := modalBodyWidth(w)
	switch m.coord.Kind() {
	case modal.KindTrait:
		title := fmt.Sprintf("Member %d %s trait", m.coord.Member()+1, model.TraitSlotIndex(m.coord.Slot()))
		body := renderPicker(m, m.coord.TraitEngine(), selection.MonsterColumns, m.coord.CurrentTraitUID(), bodyW)
		return renderModalBox(w, title, body)
	default:
		title := fmt.Sprintf("Member %d spell %d", m.coord.Member()+1, m.coord.Slot()+1)
		uid := ""
		if s := m.coord.CurrentSpell(); s != nil {
			uid = s.UID
		}
		body := renderPicker(m, m.coord.SpellEngine(), selection.SpellColumns, uid, bodyW)
		return renderModalBox(w, title, body)
	}
}

// renderPicker draws the search line, class tabs, sortable header and the visible window of rows.
func renderPicker[T any](m appModel, e *selection.Engine[T], cols []selection.Column, currentUID string, bodyW int) string {
	var b strings.Builder
	b.WriteString(renderInputLine(bodyW, m.search.View()))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Padding(0, 1).Foreground(colorChromeFg)
	activeTab := tabStyle.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
	tabs := make([]string, 0, len(e.Tabs()))
	for i, name := range e.Tabs() {
		if i == e.Tab() {
			tabs = append(tabs, activeTab.Render(name))
			continue
		}
		tabs = append(tabs, tabStyle.Render(name))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	widths := columnWidths(cols, bodyW-2)
	state := e.Sort()
	head := make([]string, len(cols))
	for i, c := range cols {
		st := lipgloss.NewStyle().Bold(true).Width(widths[i]).MaxWidth(widths[i])
		if i == m.header {
			st = st.Underline(true).Foreground(colorAccent)
		}
		head[i] = st.Render(c.Title + c.Indicator(state))
	}
	b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top, head...))
	b.WriteString("\n")

	view := e.View()
	rows := m.visibleRows()
	off := e.Offset()
	if len(view) == 0 {
		b.WriteString(styleMuted().Render("  No results."))
		b.WriteString("\n")
	}
	for i := off; i < len(view) && i < off+rows; i++ {
		it := view[i]
		cells := selection.Cells(it, cols)
		parts := make([]string, len(cells))
		for j, cell := range cells {
			parts[j] = lipgloss.NewStyle().Width(widths[j]).MaxWidth(widths[j]).Render(fitWidth(cell, widths[j]-1))
		}
		marker := "  "
		if e.IsSelected(it, currentUID) {
			marker = "✓ "
		}
		line := marker + lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		if i == m.cursor {
			line = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Render(fitWidth(line, bodyW))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render(e.ResultsCount()))
	b.WriteString("\n")
	keys := []key.Binding{pickerKeys.Choose, pickerKeys.NextTab, pickerKeys.NextHeader, pickerKeys.Sort, pickerKeys.Close}
	if m.coord.Kind() == modal.KindSpell && m.coord.CanClearSpell() {
		keys = append(keys, pickerKeys.Clear)
	}
	b.WriteString(styleMuted().Render(helpLine(keys...)))
	return b.String()
}

// columnWidths gives fixed-width columns their width and shares the rest between flexible ones.
func columnWidths(cols []selection.Column, total int) []int {
	out := make([]int, len(cols))
	fixed, flex := 0, 0
	for i, c := range cols {
		w := c.Width
		if w > 0 && lipgloss.Width(c.Title)+2 > w {
			w = lipgloss.Width(c.Title) + 2
		}
		out[i] = w
		if w == 0 {
			flex++
		}
		fixed += w
	}
	if flex == 0 {
		return out
	}
	share := max(8, (total-fixed)/flex)
	for i := range out {
		if out[i] == 0 {
			out[i] = share
		}
	}
	return out
}

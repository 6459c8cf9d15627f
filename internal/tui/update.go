package tui

import (
	"fmt"
	"time"

	"siralim-planner/internal/highlight"
	"siralim-planner/internal/modal"
	"siralim-planner/internal/model"
	"siralim-planner/internal/selection"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case flashDoneMsg:
		m.flash.Expire(msg.addr, msg.seq)
		return m, nil

	case searchMsg:
		if msg.gen != m.modalGen {
			return m, nil
		}
		if m.applySearch(msg.seq) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			return m.updateHelp(msg)
		}
		switch m.coord.Kind() {
		case modal.KindTrait, modal.KindSpell:
			return m.updatePicker(msg)
		case modal.KindRelic:
			return m.updateRelic(msg)
		case modal.KindNote:
			return m.updateNote(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m *appModel) resize() {
	w := modalBodyWidth(modalWidth(m.width))
	m.search.Width = w - 4
	m.note.SetWidth(w)
	m.note.SetHeight(max(3, m.height-14))
	m.relics.SetSize(w/2-1, max(4, m.height-12))
	m.relicDoc.Width = w - w/2 - 1
	m.relicDoc.Height = max(4, m.height-12)
	m.help.Width = w
	m.help.Height = max(5, m.height-8)
}

func (m appModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, gridKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, gridKeys.Help):
		m.showHelp = true
		m.help.SetContent(renderMarkdown(helpMarkdown(), m.help.Width))
		m.help.GotoTop()
		return m, nil

	case key.Matches(msg, gridKeys.Cancel):
		if _, ok := m.picker.Source(); ok {
			m.picker.Cancel()
			m.status = "Pick cancelled"
		}
		return m, nil

	case key.Matches(msg, gridKeys.Up):
		m.member = (m.member + model.PartySize - 1) % model.PartySize
	case key.Matches(msg, gridKeys.Down):
		m.member = (m.member + 1) % model.PartySize
	case key.Matches(msg, gridKeys.Left):
		m.col = (m.col + numColumns - 1) % numColumns
	case key.Matches(msg, gridKeys.Right):
		m.col = (m.col + 1) % numColumns

	case key.Matches(msg, gridKeys.PrevSpell):
		if m.spellIdx[m.member] > 0 {
			m.spellIdx[m.member]--
		}
	case key.Matches(msg, gridKeys.NextSpell):
		if m.spellIdx[m.member] < len(m.planner.Spells(m.member)) {
			m.spellIdx[m.member]++
		}

	case key.Matches(msg, gridKeys.Pick):
		if !m.col.isTrait() {
			return m, nil
		}
		swapped, err := m.picker.Pick(m.addr())
		switch {
		case err != nil:
			m.status = "Pick failed: " + err.Error()
		case swapped:
			m.status = "Swapped"
		default:
			if src, ok := m.picker.Source(); ok {
				m.status = fmt.Sprintf("Picked member %d %s; move and press space to swap", src.PartyMemberID+1, model.TraitSlotIndex(src.TraitSlotID))
			}
		}
		return m, m.flashCmd()

	case key.Matches(msg, gridKeys.Clear):
		switch {
		case m.col.isTrait():
			m.planner.ClearTrait(m.member, model.TraitSlotIndex(m.col))
			return m, m.flashCmd()
		case m.col == colSpells:
			m.planner.UpdateSpell(m.member, m.spellIdx[m.member], nil)
			m.clampSpellIdx()
		}
		return m, nil

	case key.Matches(msg, gridKeys.Edit):
		return m.openModal()
	}
	return m, nil
}

func (m *appModel) clampSpellIdx() {
	if n := len(m.planner.Spells(m.member)); m.spellIdx[m.member] > n {
		m.spellIdx[m.member] = n
	}
}

func (m appModel) openModal() (tea.Model, tea.Cmd) {
	m.modalGen++
	m.cursor, m.header = 0, 0
	m.search.SetValue("")
	switch {
	case m.col.isTrait():
		m.coord.OpenTrait(m.member, model.TraitSlotIndex(m.col))
		cmd := m.search.Focus()
		return m, cmd
	case m.col == colSpells:
		m.coord.OpenSpell(m.member, m.spellIdx[m.member])
		cmd := m.search.Focus()
		return m, cmd
	case m.col == colRelic:
		m.coord.OpenRelic(m.member)
		m.selectPreviewedRelic()
		return m, nil
	default:
		m.coord.OpenNote(m.member)
		m.note.SetValue(m.coord.CurrentNote())
		cmd := m.note.Focus()
		return m, cmd
	}
}

func (m appModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, gridKeys.Cancel) || key.Matches(msg, gridKeys.Help) || key.Matches(msg, gridKeys.Quit) {
		m.showHelp = false
		return m, nil
	}
	var cmd tea.Cmd
	m.help, cmd = m.help.Update(msg)
	return m, cmd
}

// flashCmd schedules expiry for every slot the last commit flagged.
func (m appModel) flashCmd() tea.Cmd {
	marks := m.flash.Drain()
	if len(marks) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(marks))
	for _, mk := range marks {
		mk := mk
		cmds = append(cmds, tea.Tick(highlight.Window, func(time.Time) tea.Msg {
			return flashDoneMsg{addr: mk.Addr, seq: mk.Seq}
		}))
	}
	return tea.Batch(cmds...)
}

// Picker modals (trait and spell).

func (m appModel) visibleRows() int {
	return max(3, m.height-14)
}

func (m appModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.coord.Kind() {
	case modal.KindTrait:
		return updateEngine(m, msg, m.coord.TraitEngine(), selection.MonsterColumns, m.coord.ChooseTrait)
	default:
		return updateEngine(m, msg, m.coord.SpellEngine(), selection.SpellColumns, m.coord.ChooseSpell)
	}
}

func updateEngine[T any](m appModel, msg tea.KeyMsg, e *selection.Engine[T], cols []selection.Column, choose func(T) error) (tea.Model, tea.Cmd) {
	rows := m.visibleRows()
	move := func(delta int) {
		n := len(e.View())
		if n == 0 {
			m.cursor = 0
			return
		}
		m.cursor = min(max(m.cursor+delta, 0), n-1)
		off := e.Offset()
		switch {
		case m.cursor < off:
			e.SetOffset(m.cursor)
		case m.cursor >= off+rows:
			e.SetOffset(m.cursor - rows + 1)
		}
	}

	switch {
	case key.Matches(msg, pickerKeys.Close):
		m.coord.Close()
		m.search.Blur()
		return m, nil
	case key.Matches(msg, pickerKeys.Up):
		move(-1)
		return m, nil
	case key.Matches(msg, pickerKeys.Down):
		move(1)
		return m, nil
	case key.Matches(msg, pickerKeys.PageUp):
		move(-rows)
		return m, nil
	case key.Matches(msg, pickerKeys.PageDown):
		move(rows)
		return m, nil
	case key.Matches(msg, pickerKeys.NextTab):
		e.SetTab((e.Tab() + 1) % len(e.Tabs()))
		m.cursor = 0
		return m, nil
	case key.Matches(msg, pickerKeys.PrevTab):
		e.SetTab((e.Tab() + len(e.Tabs()) - 1) % len(e.Tabs()))
		m.cursor = 0
		return m, nil
	case key.Matches(msg, pickerKeys.PrevHeader):
		m.header = (m.header + len(cols) - 1) % len(cols)
		return m, nil
	case key.Matches(msg, pickerKeys.NextHeader):
		m.header = (m.header + 1) % len(cols)
		return m, nil
	case key.Matches(msg, pickerKeys.Sort):
		e.ToggleSort(cols[m.header].Field)
		m.cursor = 0
		return m, nil
	case key.Matches(msg, pickerKeys.Clear):
		if m.coord.Kind() == modal.KindSpell && m.coord.CanClearSpell() {
			if err := m.coord.ClearSpell(); err != nil {
				m.status = err.Error()
			}
			m.clampSpellIdx()
			m.search.Blur()
		}
		return m, nil
	case key.Matches(msg, pickerKeys.Choose):
		// A term still in its quiet period is applied first so enter picks from what was typed.
		if e.Flush() {
			m.cursor = 0
		}
		view := e.View()
		if m.cursor >= len(view) {
			return m, nil
		}
		if err := choose(view[m.cursor]); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.clampSpellIdx()
		m.search.Blur()
		return m, m.flashCmd()
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		seq := e.Type(after)
		gen := m.modalGen
		cmd = tea.Batch(cmd, tea.Tick(e.Delay(), func(time.Time) tea.Msg {
			return searchMsg{gen: gen, seq: seq}
		}))
	}
	return m, cmd
}

func (m appModel) applySearch(seq int) bool {
	switch m.coord.Kind() {
	case modal.KindTrait:
		return m.coord.TraitEngine().Apply(seq)
	case modal.KindSpell:
		return m.coord.SpellEngine().Apply(seq)
	}
	return false
}

// Relic modal.

func (m *appModel) selectPreviewedRelic() {
	prev := m.coord.PreviewRelic()
	for i, it := range m.relics.Items() {
		if ri, ok := it.(relicItem); ok && ri.r == prev {
			m.relics.Select(i)
			break
		}
	}
	m.relicDoc.SetContent(renderMarkdown(relicMarkdown(prev), max(20, m.relicDoc.Width)))
	m.relicDoc.GotoTop()
}

func (m appModel) updateRelic(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, pickerKeys.Close):
		m.coord.Close()
		return m, nil
	case key.Matches(msg, pickerKeys.Choose):
		if err := m.coord.SaveRelic(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		if r := m.coord.PreviewRelic(); r != nil {
			m.status = fmt.Sprintf("Member %d relic: %s", m.coord.Member()+1, r.Name)
		}
		return m, nil
	case key.Matches(msg, pickerKeys.PageUp), key.Matches(msg, pickerKeys.PageDown):
		var cmd tea.Cmd
		m.relicDoc, cmd = m.relicDoc.Update(msg)
		return m, cmd
	}

	before := m.relics.Index()
	var cmd tea.Cmd
	m.relics, cmd = m.relics.Update(msg)
	if m.relics.Index() != before {
		if it, ok := m.relics.SelectedItem().(relicItem); ok {
			m.coord.Preview(it.r.Abbreviation)
			m.selectPreviewedRelic()
		}
	}
	return m, cmd
}

// Note modal.

func (m appModel) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, noteKeys.Close):
		m.coord.Close()
		m.note.Blur()
		return m, nil
	case key.Matches(msg, noteKeys.Save):
		if err := m.coord.SetNote(m.note.Value()); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Member %d note saved", m.coord.Member()+1)
		return m, nil
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

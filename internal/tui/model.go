package tui

import (
	"log/slog"
	"time"

	"siralim-planner/internal/catalog"
	"siralim-planner/internal/dragswap"
	"siralim-planner/internal/highlight"
	"siralim-planner/internal/modal"
	"siralim-planner/internal/model"
	"siralim-planner/internal/party"
	"siralim-planner/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// column is a focusable cell of a party member's row.
type column int

const (
	colPrimary column = iota
	colFused
	colArtifact
	colRelic
	colSpells
	colNote
	numColumns
)

func (c column) isTrait() bool { return c <= colArtifact }

func (c column) placeholder() string {
	switch c {
	case colPrimary:
		return "+ primary trait"
	case colFused:
		return "+ fused trait"
	default:
		return "+ artifact trait"
	}
}

func (c column) title() string {
	switch c {
	case colPrimary:
		return "Primary"
	case colFused:
		return "Fused"
	case colArtifact:
		return "Artifact"
	case colRelic:
		return "Relic"
	case colSpells:
		return "Spells"
	default:
		return "Note"
	}
}

type flashDoneMsg struct {
	addr model.SlotAddress
	seq  int
}

// searchMsg applies a debounced search term. gen ties it to the modal that typed it.
type searchMsg struct {
	gen int
	seq int
}

type appModel struct {
	name     string
	planner  *party.Planner
	coord    *modal.Coordinator
	flash    *highlight.Tracker
	proto    *dragswap.Protocol
	picker   *dragswap.Picker
	saver    *store.Autosaver
	catalog  *catalog.Catalog
	log      *slog.Logger
	warnings []string

	width  int
	height int

	member   int
	col      column
	spellIdx [model.PartySize]int
	status   string
	showHelp bool

	// modalGen increments on every modal open so late debounce ticks from a closed modal are dropped.
	modalGen int
	search   textinput.Model
	cursor   int
	header   int
	relics   list.Model
	relicDoc viewport.Model
	note     textarea.Model
	help     viewport.Model
}

func newAppModel(opts Options) appModel {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	flash := highlight.New(nil)
	debounce := opts.Autosave
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	saver := store.NewAutosaver(store.AutosaverOpts{
		Store:    opts.Store,
		Name:     opts.Party.Name,
		Initial:  opts.Party.Party,
		Debounce: debounce,
		Logger:   log,
	})
	p := party.New(opts.Party.Party,
		party.WithSink(saver),
		party.WithTracker(flash),
		party.WithLogger(log),
	)
	proto := dragswap.New(p, log)

	search := textinput.New()
	search.Placeholder = "Search"
	search.Prompt = "/ "
	search.CharLimit = 80

	note := textarea.New()
	note.Placeholder = "Notes for this party member"
	note.ShowLineNumbers = false
	note.CharLimit = 0

	relics := list.New(relicItems(opts.Catalog.Relics), list.NewDefaultDelegate(), 30, 10)
	relics.SetShowTitle(false)
	relics.SetShowHelp(false)
	relics.SetShowStatusBar(false)
	relics.SetFilteringEnabled(false)

	m := appModel{
		name:     opts.Party.Name,
		planner:  p,
		flash:    flash,
		proto:    proto,
		picker:   dragswap.NewPicker(proto),
		saver:    saver,
		catalog:  opts.Catalog,
		log:      log,
		warnings: opts.Party.Warnings,
		search:   search,
		relics:   relics,
		relicDoc: viewport.New(40, 10),
		note:     note,
		help:     viewport.New(60, 20),
		width:    100,
		height:   32,
	}
	m.coord = modal.New(p, modal.Catalog{
		Monsters: opts.Catalog.Monsters,
		Spells:   opts.Catalog.Spells,
		Relics:   opts.Catalog.Relics,
	})
	if len(m.warnings) > 0 {
		m.status = m.warnings[0]
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

type relicItem struct{ r *model.Relic }

func (i relicItem) Title() string       { return i.r.Name }
func (i relicItem) Description() string { return i.r.StatBonus }
func (i relicItem) FilterValue() string { return i.r.Name }

func relicItems(rs []*model.Relic) []list.Item {
	out := make([]list.Item, 0, len(rs))
	for _, r := range rs {
		out = append(out, relicItem{r: r})
	}
	return out
}

// addr is the trait slot under the cursor. Only meaningful on trait columns.
func (m appModel) addr() model.SlotAddress {
	return model.SlotAddress{PartyMemberID: m.member, TraitSlotID: int(m.col)}
}

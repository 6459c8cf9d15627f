package tui

import "github.com/charmbracelet/bubbles/key"

type gridKeyMap struct {
	Up, Down, Left, Right key.Binding
	Edit                  key.Binding
	Pick                  key.Binding
	Clear                 key.Binding
	PrevSpell, NextSpell  key.Binding
	Cancel                key.Binding
	Help                  key.Binding
	Quit                  key.Binding
}

type pickerKeyMap struct {
	Up, Down         key.Binding
	PageUp, PageDown key.Binding
	NextTab, PrevTab key.Binding
	PrevHeader       key.Binding
	NextHeader       key.Binding
	Sort             key.Binding
	Choose           key.Binding
	Clear            key.Binding
	Close            key.Binding
}

type noteKeyMap struct {
	Save  key.Binding
	Close key.Binding
}

var gridKeys = gridKeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Edit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	Pick:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pick/drop")),
	Clear:     key.NewBinding(key.WithKeys("x", "delete", "backspace"), key.WithHelp("x", "clear")),
	PrevSpell: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev spell")),
	NextSpell: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next spell")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var pickerKeys = pickerKeyMap{
	Up:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevTab:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	PrevHeader: key.NewBinding(key.WithKeys("ctrl+left"), key.WithHelp("ctrl+←", "prev column")),
	NextHeader: key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("ctrl+→", "next column")),
	Sort:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "sort")),
	Choose:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	Clear:      key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear")),
	Close:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "close")),
}

var noteKeys = noteKeyMap{
	Save:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Close: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "close")),
}

// helpLine renders "key: desc" pairs for the footer.
func helpLine(bs ...key.Binding) string {
	out := ""
	for _, b := range bs {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if out != "" {
			out += "   "
		}
		out += h.Key + ": " + h.Desc
	}
	return out
}

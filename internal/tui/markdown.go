package tui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"siralim-planner/internal/docs"
	"siralim-planner/internal/model"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style and wrap width. WithAutoStyle can block on terminal queries,
	// so a fixed standard style is picked from the theme instead.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := fmt.Sprintf("%s:%d", style, width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PLANNER_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// relicMarkdown describes a relic and its perks for the relic modal.
func relicMarkdown(r *model.Relic) string {
	if r == nil {
		return "_No relics in the catalog._"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", r.Name)
	if r.StatBonus != "" {
		fmt.Fprintf(&b, "**Stat bonus:** %s\n\n", r.StatBonus)
	}
	if len(r.Perks) == 0 {
		b.WriteString("_No perks listed._\n")
	}
	for _, p := range r.Perks {
		fmt.Fprintf(&b, "- **Rank %s:** %s\n", p.Rank, p.Description)
	}
	return b.String()
}

// helpMarkdown is the key reference shown by the help modal.
func helpMarkdown() string {
	topic, ok := docs.Lookup("keys")
	if !ok {
		return "_No help available._"
	}
	return topic.Body
}

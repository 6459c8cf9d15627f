package cli

import (
	"fmt"
	"strings"

	"siralim-planner/internal/selection"

	"github.com/spf13/cobra"
)

type searchFlags struct {
	term  string
	sort  string
	tab   string
	limit int
}

func (f *searchFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.term, "term", "", "Case-insensitive search term")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort as field[:asc|desc] (a bare field sorts descending)")
	cmd.Flags().StringVar(&f.tab, "tab", "", "Class tab: All|Chaos|Death|Life|Nature|Sorcery")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Show at most this many results (0 = all)")
}

func newSpellsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spells",
		Short: "Spell catalog commands",
	}
	var f searchFlags
	search := &cobra.Command{
		Use:   "search",
		Short: "Filter, sort and page the spell catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.catalog()
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := runSearch(selection.NewSpellEngine(c.Spells), selection.SpellColumns, f)
			if err != nil {
				return writeErr(cmd, err)
			}
			out.Kind = "spells"
			return writeOut(cmd, app, envelope{Data: out})
		},
	}
	f.bind(search)
	cmd.AddCommand(search)
	return cmd
}

func newMonstersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monsters",
		Short: "Monster trait catalog commands",
	}
	var f searchFlags
	search := &cobra.Command{
		Use:   "search",
		Short: "Filter, sort and page the monster trait catalog",
		Example: strings.TrimSpace(`
  siralim-planner monsters search --term imp
  siralim-planner monsters search --sort stats.health:desc --tab Life --limit 10
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.catalog()
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := runSearch(selection.NewMonsterEngine(c.Monsters), selection.MonsterColumns, f)
			if err != nil {
				return writeErr(cmd, err)
			}
			out.Kind = "monsters"
			return writeOut(cmd, app, envelope{Data: out})
		},
	}
	f.bind(search)
	cmd.AddCommand(search)
	return cmd
}

type searchView struct {
	Kind    string `json:"kind"`
	Term    string `json:"term"`
	Sort    string `json:"sort,omitempty"`
	Tab     string `json:"tab"`
	Count   string `json:"count"`
	Shown   int    `json:"shown"`
	Results any    `json:"results"`

	columns []selection.Column
	state   selection.SortState
	rows    [][]string
}

// runSearch drives an engine the way the picker modals do: apply the term, then sort, then pick the tab.
func runSearch[T any](e *selection.Engine[T], cols []selection.Column, f searchFlags) (searchView, error) {
	state, err := parseSort("sort", f.sort, cols)
	if err != nil {
		return searchView{}, err
	}
	tab, err := parseTab("tab", f.tab, e.Tabs())
	if err != nil {
		return searchView{}, err
	}
	if f.limit < 0 {
		return searchView{}, flagError{flag: "limit", value: fmt.Sprint(f.limit), want: "0 or more"}
	}

	e.Type(f.term)
	e.Flush()
	e.SetSort(state)
	e.SetTab(tab)

	view := e.View()
	if f.limit > 0 && len(view) > f.limit {
		view = view[:f.limit]
	}
	out := searchView{
		Term:    e.AppliedTerm(),
		Tab:     e.Tabs()[e.Tab()],
		Count:   e.ResultsCount(),
		Shown:   len(view),
		Results: view,
		columns: cols,
		state:   e.Sort(),
	}
	if s := e.Sort(); s.Active() {
		out.Sort = s.Field + ":" + s.Order.String()
	}
	for _, it := range view {
		out.rows = append(out.rows, selection.Cells(it, cols))
	}
	return out, nil
}

func (v searchView) Text() string {
	titles := make([]string, len(v.columns))
	widths := make([]int, len(v.columns))
	for i, c := range v.columns {
		titles[i] = c.Title
		if ind := c.Indicator(v.state); ind != "" {
			titles[i] += " " + ind
		}
		widths[i] = c.Width
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%s]\n", headStyle.Render(strings.ToUpper(v.Kind[:1])+v.Kind[1:]), v.Tab)
	b.WriteString(tableText(titles, widths, v.rows))
	b.WriteString(dimStyle.Render(v.Count))
	return b.String()
}

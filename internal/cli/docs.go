package cli

import (
	"fmt"
	"strings"

	"siralim-planner/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

type topicEntry struct {
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title" yaml:"title"`
}

type topicList struct {
	Topics []topicEntry `json:"topics" yaml:"topics"`
}

func (l topicList) Text() string {
	lines := make([]string, 0, len(l.Topics))
	for _, t := range l.Topics {
		lines = append(lines, fmt.Sprintf("%-10s %s", t.Name, t.Title))
	}
	return strings.Join(lines, "\n")
}

type topicView struct {
	Topic    string `json:"topic" yaml:"topic"`
	Markdown string `json:"markdown" yaml:"markdown"`
}

// Text renders the topic for a plain terminal.
func (v topicView) Text() string {
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("notty"), glamour.WithWordWrap(100))
	if err != nil {
		return v.Markdown
	}
	out, err := r.Render(v.Markdown)
	if err != nil {
		return v.Markdown
	}
	return strings.TrimRight(out, "\n")
}

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation (keys, catalog, config)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				var list topicList
				for _, t := range docs.List() {
					list.Topics = append(list.Topics, topicEntry{Name: t.Name, Title: t.Title})
				}
				return writeOut(cmd, app, envelope{Data: list})
			}

			topic, ok := docs.Lookup(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `siralim-planner docs` to list topics)", args[0]))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), topic.Body)
				return err
			}
			return writeOut(cmd, app, envelope{Data: topicView{Topic: topic.Name, Markdown: topic.Body}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no envelope)")

	return cmd
}

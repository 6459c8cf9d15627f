package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"siralim-planner/internal/model"
	"siralim-planner/internal/party"
	"siralim-planner/internal/publish"
	"siralim-planner/internal/store"

	"github.com/spf13/cobra"
)

func newPartyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "party",
		Short: "Party commands (show, edit, list saved parties)",
	}
	cmd.AddCommand(newPartyShowCmd(app))
	cmd.AddCommand(newPartyListCmd(app))
	cmd.AddCommand(newPartyDeleteCmd(app))
	cmd.AddCommand(newPartySetTraitCmd(app))
	cmd.AddCommand(newPartyClearTraitCmd(app))
	cmd.AddCommand(newPartySwapCmd(app))
	cmd.AddCommand(newPartyRelicCmd(app))
	cmd.AddCommand(newPartySpellCmd(app))
	cmd.AddCommand(newPartyNoteCmd(app))
	cmd.AddCommand(newPartyExportCmd(app))
	return cmd
}

func newPartyShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current party",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.loadParty(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			p := party.New(loaded.Party)
			out := newPartyView(loaded.Name, p)
			out.Warnings = loaded.Warnings
			return writeOut(cmd, app, envelope{Data: out})
		},
	}
}

func newPartyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved parties",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.store().List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{Data: summaries(list)})
		},
	}
}

func newPartyDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if err := app.store().Delete(cmd.Context(), name); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{Data: map[string]any{"deleted": name}})
		},
	}
}

func newPartySetTraitCmd(app *App) *cobra.Command {
	var (
		member int
		slot   string
		uid    string
	)
	cmd := &cobra.Command{
		Use:   "set-trait",
		Short: "Put a monster trait into a slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMember("member", member)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := parseSlot("slot", slot)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(uid) == "" {
				return writeErr(cmd, errors.New("missing --uid"))
			}
			c, err := app.catalog()
			if err != nil {
				return writeErr(cmd, err)
			}
			mon, err := c.Monster(strings.TrimSpace(uid))
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.writeEdit(cmd, func(p *party.Planner) error {
				p.SetTrait(m, s, mon)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&member, "member", 0, "Party member (1-6)")
	cmd.Flags().StringVar(&slot, "slot", "primary", "Trait slot (primary|fused|artifact)")
	cmd.Flags().StringVar(&uid, "uid", "", "Monster uid from the catalog")
	return cmd
}

func newPartyClearTraitCmd(app *App) *cobra.Command {
	var (
		member int
		slot   string
	)
	cmd := &cobra.Command{
		Use:   "clear-trait",
		Short: "Empty a trait slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMember("member", member)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := parseSlot("slot", slot)
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.writeEdit(cmd, func(p *party.Planner) error {
				p.ClearTrait(m, s)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&member, "member", 0, "Party member (1-6)")
	cmd.Flags().StringVar(&slot, "slot", "primary", "Trait slot (primary|fused|artifact)")
	return cmd
}

func newPartySwapCmd(app *App) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Exchange the contents of two trait slots",
		Example: strings.TrimSpace(`
  siralim-planner party swap --from 1:primary --to 3:artifact
  siralim-planner party swap --from 2:1 --to 2:2
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseAddress("from", from)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := parseAddress("to", to)
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.writeEdit(cmd, func(p *party.Planner) error {
				p.Swap(a, b)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source slot as member:slot")
	cmd.Flags().StringVar(&to, "to", "", "Destination slot as member:slot")
	return cmd
}

func newPartyRelicCmd(app *App) *cobra.Command {
	var (
		member int
		uid    string
		clear  bool
	)
	cmd := &cobra.Command{
		Use:   "relic",
		Short: "Set or clear a member's relic",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMember("member", member)
			if err != nil {
				return writeErr(cmd, err)
			}
			var r *model.Relic
			if !clear {
				if strings.TrimSpace(uid) == "" {
					return writeErr(cmd, errors.New("missing --uid (or pass --clear)"))
				}
				c, err := app.catalog()
				if err != nil {
					return writeErr(cmd, err)
				}
				if r, err = c.Relic(strings.TrimSpace(uid)); err != nil {
					return writeErr(cmd, err)
				}
			}
			return app.writeEdit(cmd, func(p *party.Planner) error {
				p.UpdateRelic(m, r)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&member, "member", 0, "Party member (1-6)")
	cmd.Flags().StringVar(&uid, "uid", "", "Relic uid or abbreviation")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the relic")
	return cmd
}

func newPartySpellCmd(app *App) *cobra.Command {
	var (
		member int
		slot   int
		uid    string
		clear  bool
	)
	cmd := &cobra.Command{
		Use:   "spell",
		Short: "Set or clear a spell gem slot",
		Long: strings.TrimSpace(`
Set or clear one spell slot of a party member's spell gem.

--slot is 1-based. Setting a slot past the end appends one spell to the list.
Clearing the last slot shortens the list. Clearing a slot in the middle leaves a gap.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMember("member", member)
			if err != nil {
				return writeErr(cmd, err)
			}
			if slot < 1 {
				return writeErr(cmd, flagError{flag: "slot", value: fmt.Sprint(slot), want: "1 or more"})
			}
			var s *model.Spell
			if !clear {
				if strings.TrimSpace(uid) == "" {
					return writeErr(cmd, errors.New("missing --uid (or pass --clear)"))
				}
				c, err := app.catalog()
				if err != nil {
					return writeErr(cmd, err)
				}
				if s, err = c.Spell(strings.TrimSpace(uid)); err != nil {
					return writeErr(cmd, err)
				}
			}
			return app.writeEdit(cmd, func(p *party.Planner) error {
				p.UpdateSpell(m, slot-1, s)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&member, "member", 0, "Party member (1-6)")
	cmd.Flags().IntVar(&slot, "slot", 1, "Spell slot (1-based)")
	cmd.Flags().StringVar(&uid, "uid", "", "Spell uid from the catalog")
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the spell slot")
	return cmd
}

func newPartyNoteCmd(app *App) *cobra.Command {
	var (
		member int
		text   string
	)
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Replace a member's free-text note",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMember("member", member)
			if err != nil {
				return writeErr(cmd, err)
			}
			return app.writeEdit(cmd, func(p *party.Planner) error {
				p.UpdateNote(m, text)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&member, "member", 0, "Party member (1-6)")
	cmd.Flags().StringVar(&text, "text", "", "Note text (empty clears it)")
	return cmd
}

func newPartyExportCmd(app *App) *cobra.Command {
	var (
		to        string
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current party as a markdown document",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.loadParty(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteParty(loaded.Name, party.New(loaded.Party), to, publish.WriteOptions{Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{Data: res})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Target directory (writes parties/<name>.md)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing export")
	return cmd
}

// writeEdit applies edit to the configured party, saves it and prints the result.
func (app *App) writeEdit(cmd *cobra.Command, edit func(p *party.Planner) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := app.editParty(ctx, edit)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, envelope{Data: newPartyView(app.cfg.Party, p)})
}

func summaries(list []store.Summary) summaryList {
	if list == nil {
		list = []store.Summary{}
	}
	return summaryList(list)
}

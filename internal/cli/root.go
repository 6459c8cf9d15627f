package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"siralim-planner/internal/catalog"
	"siralim-planner/internal/config"
	"siralim-planner/internal/format"
	plog "siralim-planner/internal/log"
	"siralim-planner/internal/model"
	"siralim-planner/internal/party"
	"siralim-planner/internal/store"
	"siralim-planner/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	ConfigDir  string
	DataDir    string
	CatalogDir string
	Party      string
	Format     string
	PrettyJSON bool

	cfg config.Config
	cat *catalog.Catalog
	log *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "siralim-planner",
		Short:        "Siralim Ultimate party planner (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Plan the configured party interactively
  siralim-planner

  # Open a specific party
  siralim-planner --party speedrun

  # Scriptable edits
  siralim-planner party set-trait --member 1 --slot primary --uid e100d0
  siralim-planner party swap --from 1:primary --to 2:fused

  # Browse the catalog
  siralim-planner spells search --term fire --sort charges:desc --tab Chaos
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				if err := runTUI(cmd.Context(), app); err != nil {
					return writeErr(cmd, err)
				}
				return nil
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.configure(cmd); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr(config.EnvConfigDir, ""), "Config directory (default ~/.siralim-planner)")
	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", "", "Directory holding planner.sqlite (overrides config)")
	cmd.PersistentFlags().StringVar(&app.CatalogDir, "catalog", "", "Catalog directory with monsters/spells/relics JSON (default: built-in sample)")
	cmd.PersistentFlags().StringVar(&app.Party, "party", "", "Party name (overrides config; default 'default')")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|yaml|text)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newPartyCmd(app))
	cmd.AddCommand(newSpellsCmd(app))
	cmd.AddCommand(newMonstersCmd(app))
	cmd.AddCommand(newCatalogCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// configure resolves config file, environment and flags, in increasing precedence.
func (app *App) configure(cmd *cobra.Command) error {
	var (
		cfg config.Config
		err error
	)
	if dir := strings.TrimSpace(app.ConfigDir); dir != "" {
		cfg, err = config.LoadFile(filepath.Join(dir, config.FileName))
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(app.DataDir); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(app.CatalogDir); v != "" {
		cfg.CatalogDir = v
	}
	if v := strings.TrimSpace(app.Party); v != "" {
		cfg.Party = v
	}
	if v := strings.TrimSpace(app.Format); v != "" {
		cfg.Format = strings.ToLower(v)
	}
	if !format.Valid(cfg.Format) {
		return fmt.Errorf("unknown format: %s", cfg.Format)
	}
	app.cfg = cfg
	app.Format = cfg.Format

	opts := plog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
		// The TUI owns the terminal.
		Quiet: cmd == cmd.Root(),
	}
	app.log = plog.Init(opts)
	return nil
}

func (app *App) catalog() (*catalog.Catalog, error) {
	if app.cat != nil {
		return app.cat, nil
	}
	c, err := catalog.Load(app.cfg.CatalogDir)
	if err != nil {
		return nil, err
	}
	app.cat = c
	return c, nil
}

func (app *App) store() store.Store {
	return store.Store{Dir: app.cfg.DataDir}
}

// loadParty resolves the configured party. A party that was never saved starts empty.
func (app *App) loadParty(ctx context.Context) (*store.Loaded, error) {
	c, err := app.catalog()
	if err != nil {
		return nil, err
	}
	loaded, err := app.store().Load(ctx, app.cfg.Party, c)
	var nf store.NotFoundError
	if errors.As(err, &nf) {
		return &store.Loaded{Summary: store.Summary{Name: app.cfg.Party}, Party: model.NewParty()}, nil
	}
	if err != nil {
		return nil, err
	}
	for _, w := range loaded.Warnings {
		app.log.Warn("party load", "party", loaded.Name, "warning", w)
	}
	return loaded, nil
}

// editParty loads the party, applies edit through a planner and writes the result.
func (app *App) editParty(ctx context.Context, edit func(p *party.Planner) error) (*party.Planner, error) {
	loaded, err := app.loadParty(ctx)
	if err != nil {
		return nil, err
	}
	saver := store.NewAutosaver(store.AutosaverOpts{
		Store:    app.store(),
		Name:     app.cfg.Party,
		Initial:  loaded.Party,
		Debounce: app.cfg.Autosave,
		Logger:   plog.WithComponent("autosave"),
	})
	p := party.New(loaded.Party, party.WithSink(saver), party.WithLogger(plog.WithComponent("planner")))
	if err := edit(p); err != nil {
		return nil, err
	}
	if err := saver.Flush(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func runTUI(ctx context.Context, app *App) error {
	c, err := app.catalog()
	if err != nil {
		return err
	}
	loaded, err := app.loadParty(ctx)
	if err != nil {
		return err
	}
	return tui.Run(ctx, tui.Options{
		Catalog:  c,
		Store:    app.store(),
		Party:    loaded,
		Autosave: app.cfg.Autosave,
		Logger:   plog.WithComponent("tui"),
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	// Text output drops the JSON envelope.
	if env, ok := v.(envelope); ok && app.Format == "text" {
		v = env.Data
	}
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

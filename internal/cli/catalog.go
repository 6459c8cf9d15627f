package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"siralim-planner/internal/catalog"

	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog commands (validate files, summarize stats)",
	}
	cmd.AddCommand(newCatalogValidateCmd(app))
	cmd.AddCommand(newCatalogMetadataCmd(app))
	return cmd
}

type validateResult struct {
	File     string   `json:"file"`
	OK       bool     `json:"ok"`
	Problems []string `json:"problems,omitempty"`
}

func newCatalogValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Check catalog files against their schemas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.cfg.CatalogDir
			if len(args) == 1 {
				dir = args[0]
			}
			if strings.TrimSpace(dir) == "" {
				return writeErr(cmd, errors.New("no catalog directory; pass one or set --catalog"))
			}
			results, failed := validateDir(dir)
			if failed == 0 {
				// Schemas pass; also check cross-record rules such as uid uniqueness.
				if _, err := catalog.Load(dir); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := writeOut(cmd, app, envelope{Data: results}); err != nil {
				return err
			}
			if failed > 0 {
				return writeErr(cmd, fmt.Errorf("%d catalog file(s) failed validation", failed))
			}
			return nil
		},
	}
}

func validateDir(dir string) ([]validateResult, int) {
	var (
		out    []validateResult
		failed int
	)
	for _, name := range []string{catalog.MonstersFile, catalog.SpellsFile, catalog.RelicsFile} {
		res := validateResult{File: name}
		doc, path, err := readFirst(dir, name+".jsonc", name+".json")
		if err == nil {
			res.File = filepath.Base(path)
			err = catalog.Validate(name, doc)
		}
		var verr *catalog.ValidationError
		switch {
		case err == nil:
			res.OK = true
		case errors.As(err, &verr):
			res.Problems = verr.Problems
		default:
			res.Problems = []string{err.Error()}
		}
		if !res.OK {
			failed++
		}
		out = append(out, res)
	}
	return out, failed
}

func readFirst(dir string, names ...string) ([]byte, string, error) {
	var lastErr error
	for _, n := range names {
		p := filepath.Join(dir, n)
		b, err := os.ReadFile(p)
		if err == nil {
			return b, p, nil
		}
		lastErr = err
	}
	return nil, "", lastErr
}

func newCatalogMetadataCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata",
		Short: "Summarize catalog counts and monster stat ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.catalog()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{Data: c.Metadata()})
		},
	}
}

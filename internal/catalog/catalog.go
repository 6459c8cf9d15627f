// Package catalog loads the monster, spell and relic lists the planner chooses from.
//
// Each file is JSON, optionally with comments and trailing commas. Files are validated against an
// embedded JSON Schema and normalized once at load; the rest of the program trusts the records.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
	"github.com/xeipuuv/gojsonschema"

	"siralim-planner/internal/model"
)

//go:embed schema/*.json
var schemaFS embed.FS

//go:embed sample/*.jsonc
var sampleFS embed.FS

// File names looked up in a catalog directory. A .jsonc variant is preferred when both exist.
const (
	MonstersFile = "monsters"
	SpellsFile   = "spells"
	RelicsFile   = "relics"
)

type Catalog struct {
	Monsters []*model.Monster
	Spells   []*model.Spell
	Relics   []*model.Relic

	monsters map[string]*model.Monster
	spells   map[string]*model.Spell
	relics   map[string]*model.Relic
}

// NotFoundError reports a uid missing from the catalog.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string { return fmt.Sprintf("%s not found: %s", e.Kind, e.ID) }

// ValidationError lists schema violations for one catalog file.
type ValidationError struct {
	File     string
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", e.File, e.Problems[0])
	}
	return fmt.Sprintf("%s: %d schema violations (first: %s)", e.File, len(e.Problems), e.Problems[0])
}

// Load reads the catalog from dir. An empty dir loads the bundled sample catalog.
func Load(dir string) (*Catalog, error) {
	if strings.TrimSpace(dir) == "" {
		return Sample()
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog dir: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("catalog dir: %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// Sample returns the bundled sample catalog.
func Sample() (*Catalog, error) {
	sub, err := fs.Sub(sampleFS, "sample")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads monsters, spells and relics from the root of fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var raw [3][]byte
	for i, name := range []string{MonstersFile, SpellsFile, RelicsFile} {
		b, err := readCatalogFile(fsys, name)
		if err != nil {
			return nil, err
		}
		raw[i] = b
	}
	return Parse(raw[0], raw[1], raw[2])
}

func readCatalogFile(fsys fs.FS, name string) ([]byte, error) {
	for _, ext := range []string{".jsonc", ".json"} {
		b, err := fs.ReadFile(fsys, name+ext)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s%s: %w", name, ext, err)
		}
	}
	return nil, fmt.Errorf("read %s: %w", name+".json", fs.ErrNotExist)
}

// Parse validates and normalizes the three catalog documents.
func Parse(monsters, spells, relics []byte) (*Catalog, error) {
	monsters, spells, relics = jsonc.ToJSON(monsters), jsonc.ToJSON(spells), jsonc.ToJSON(relics)
	for _, f := range []struct {
		name string
		doc  []byte
	}{{MonstersFile, monsters}, {SpellsFile, spells}, {RelicsFile, relics}} {
		if err := validate(f.name, f.doc); err != nil {
			return nil, err
		}
	}

	c := &Catalog{}
	var err error
	if c.Monsters, err = normalizeMonsters(monsters); err != nil {
		return nil, err
	}
	if c.Spells, err = normalizeSpells(spells); err != nil {
		return nil, err
	}
	if c.Relics, err = normalizeRelics(relics); err != nil {
		return nil, err
	}
	c.index()
	return c, nil
}

// Validate checks a single catalog document (monsters, spells or relics) against its schema.
func Validate(kind string, doc []byte) error {
	return validate(kind, jsonc.ToJSON(doc))
}

func validate(kind string, doc []byte) error {
	schema, err := schemaFS.ReadFile("schema/" + kind + ".schema.json")
	if err != nil {
		return fmt.Errorf("unknown catalog kind %q", kind)
	}
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	if result.Valid() {
		return nil
	}
	verr := &ValidationError{File: kind}
	for _, e := range result.Errors() {
		verr.Problems = append(verr.Problems, e.String())
	}
	return verr
}

func (c *Catalog) index() {
	c.monsters = make(map[string]*model.Monster, len(c.Monsters))
	for _, m := range c.Monsters {
		c.monsters[m.UID] = m
	}
	c.spells = make(map[string]*model.Spell, len(c.Spells))
	for _, s := range c.Spells {
		c.spells[s.UID] = s
	}
	c.relics = make(map[string]*model.Relic, len(c.Relics))
	for _, r := range c.Relics {
		c.relics[r.UID] = r
	}
}

func (c *Catalog) Monster(uid string) (*model.Monster, error) {
	if m, ok := c.monsters[uid]; ok {
		return m, nil
	}
	return nil, NotFoundError{Kind: "monster", ID: uid}
}

func (c *Catalog) Spell(uid string) (*model.Spell, error) {
	if s, ok := c.spells[uid]; ok {
		return s, nil
	}
	return nil, NotFoundError{Kind: "spell", ID: uid}
}

// Relic finds a relic by uid, falling back to its abbreviation.
func (c *Catalog) Relic(id string) (*model.Relic, error) {
	if r, ok := c.relics[id]; ok {
		return r, nil
	}
	for _, r := range c.Relics {
		if strings.EqualFold(r.Abbreviation, id) {
			return r, nil
		}
	}
	return nil, NotFoundError{Kind: "relic", ID: id}
}

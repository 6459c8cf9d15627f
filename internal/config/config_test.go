package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFile_DefaultsWhenMissing(t *testing.T) {
	unsetenv(t, "PLANNER_DATA_DIR")
	unsetenv(t, "PLANNER_CATALOG_DIR")
	unsetenv(t, "PLANNER_PARTY")
	unsetenv(t, "PLANNER_FORMAT")
	unsetenv(t, "PLANNER_LOG_LEVEL")

	dir := t.TempDir()
	cfg, err := LoadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Party != "default" || cfg.Format != "json" || cfg.Autosave != 2*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DataDir != dir {
		t.Fatalf("expected data dir to default to the config dir; got %q", cfg.DataDir)
	}
}

func TestLoadFile_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `config_version: 1
data_dir: /srv/planner
party: " speedrun "
format: YAML
autosave: 5s
logging:
  level: DEBUG
  file: /tmp/planner.log
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	unsetenv(t, "PLANNER_DATA_DIR")
	t.Setenv("PLANNER_CATALOG_DIR", "/data/catalog")
	unsetenv(t, "PLANNER_PARTY")
	unsetenv(t, "PLANNER_FORMAT")
	t.Setenv("PLANNER_LOG_LEVEL", "warn")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DataDir != "/srv/planner" || cfg.Party != "speedrun" || cfg.Format != "yaml" || cfg.Autosave != 5*time.Second {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.CatalogDir != "/data/catalog" || cfg.Logging.Level != "warn" || cfg.Logging.File != "/tmp/planner.log" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadFile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("party: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestSaveThenLoad(t *testing.T) {
	unsetenv(t, "PLANNER_PARTY")
	unsetenv(t, "PLANNER_DATA_DIR")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Defaults()
	cfg.Party = "boss-rush"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Party != "boss-rush" {
		t.Fatalf("round trip: %+v", got)
	}
}

func TestDir_Env(t *testing.T) {
	t.Setenv(EnvConfigDir, "/etc/planner")
	dir, err := Dir()
	if err != nil || dir != "/etc/planner" {
		t.Fatalf("Dir: %q %v", dir, err)
	}
	p, _ := Path()
	if p != filepath.Join("/etc/planner", "config.yaml") {
		t.Fatalf("Path: %q", p)
	}
}

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unsetenv %s: %v", key, err)
	}
}

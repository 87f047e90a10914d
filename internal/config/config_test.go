package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/sufx/internal/suffix"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("backend: hook\npacks:\n  - duration\n  - case\n"), "sufx.yaml")
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	if cfg.Backend != suffix.BackendHook {
		t.Errorf("backend = %q, want hook", cfg.Backend)
	}
	if len(cfg.Packs) != 2 || cfg.Packs[0] != "duration" {
		t.Errorf("packs = %v", cfg.Packs)
	}
}

func TestParseConfigDefaultsBackend(t *testing.T) {
	cfg, err := ParseConfig([]byte("packs: [duration]\n"), "sufx.yaml")
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	if cfg.Backend != suffix.BackendTablePatch {
		t.Errorf("backend = %q, want table-patch", cfg.Backend)
	}
}

func TestParseConfigRejectsUnknownBackend(t *testing.T) {
	_, err := ParseConfig([]byte("backend: magic\n"), "sufx.yaml")
	if !errors.Is(err, suffix.ErrBackendUnavailable) {
		t.Errorf("got %v, want ErrBackendUnavailable", err)
	}
}

func TestParseConfigRejectsBadYAML(t *testing.T) {
	if _, err := ParseConfig([]byte("backend: [unclosed"), "sufx.yaml"); err == nil {
		t.Errorf("expected a parse error")
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, ConfigFileName)
	if err := os.WriteFile(path, []byte("backend: table-patch\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("find: %s", err)
	}
	if found != path {
		t.Errorf("found %q, want %q", found, path)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %s", err)
	}
	if cfg.Backend != suffix.BackendTablePatch {
		t.Errorf("backend = %q, want table-patch", cfg.Backend)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("backend: hook\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvBackend, suffix.BackendSlotRewrite)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %s", err)
	}
	if cfg.Backend != suffix.BackendSlotRewrite {
		t.Errorf("backend = %q, want slot-rewrite", cfg.Backend)
	}
}

func TestEnvWithUnknownBackendFails(t *testing.T) {
	t.Setenv(EnvBackend, "magic")
	if _, err := Load(t.TempDir()); !errors.Is(err, suffix.ErrBackendUnavailable) {
		t.Errorf("got %v, want ErrBackendUnavailable", err)
	}
}

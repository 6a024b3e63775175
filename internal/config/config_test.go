package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.TickInterval != time.Second {
		t.Errorf("TickInterval: expected 1s got %s", cfg.TickInterval)
	}
	if cfg.StartTelescope != "eye" {
		t.Errorf("StartTelescope: expected eye got %s", cfg.StartTelescope)
	}
	if cfg.Sky.Seed != 29292929 || cfg.Sky.Stars != 800 {
		t.Errorf("unexpected sky defaults: %+v", cfg.Sky)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed on defaults: %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadFile("")
	if err != nil {
		t.Fatalf("loadFile() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded config %+v differs from Default() %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deepfield.yaml")
	data := "tick_interval: 250ms\nseed: 42\nupgrade_every: 5\nsky:\n  stars: 100\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %s, expected 250ms", cfg.TickInterval)
	}
	if cfg.Seed != 42 || cfg.UpgradeEvery != 5 || cfg.Sky.Stars != 100 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	// Unset fields keep their defaults
	if cfg.StartTelescope != "eye" || cfg.Sky.CanvasWidth != 800 {
		t.Errorf("partial file should keep defaults, got %+v", cfg)
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join("configs", "deepfield.yaml"), []byte("start_telescope: keck\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.StartTelescope != "keck" {
		t.Errorf("StartTelescope = %s, expected keck", cfg.StartTelescope)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("tick_interval: [1"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DEEPFIELD_SEED", "7")
	t.Setenv("DEEPFIELD_TICK_INTERVAL", "2s")
	t.Setenv("DEEPFIELD_START_TELESCOPE", "refractor_2in")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}
	if cfg.Seed != 7 || cfg.TickInterval != 2*time.Second || cfg.StartTelescope != "refractor_2in" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.DBPath != Default().DBPath {
		t.Errorf("unset env var changed DBPath to %q", cfg.DBPath)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("DEEPFIELD_SEED", "not-a-number")

	cfg := Default()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("expected error for invalid env value")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.TickInterval = 0 }},
		{"no start telescope", func(c *Config) { c.StartTelescope = "" }},
		{"empty canvas", func(c *Config) { c.Sky.CanvasWidth = 0 }},
		{"ground taller than canvas", func(c *Config) { c.Sky.GroundHeight = 1000 }},
		{"negative stars", func(c *Config) { c.Sky.Stars = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

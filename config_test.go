package curved

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	data := "width: 1024\nfps: 24\nxRange: 3.5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d := DefaultConfig()
	if cfg.Width != 1024 || cfg.FPS != 24 || cfg.XRange != 3.5 {
		t.Errorf("loaded values = %+v", cfg)
	}
	if cfg.Height != d.Height || cfg.YRange != d.YRange {
		t.Errorf("absent keys should keep defaults, got height %d yRange %v", cfg.Height, cfg.YRange)
	}
	if cfg.Style != d.Style {
		t.Error("absent style should keep the default style")
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 640, 360
	cfg.ReadOnly = true
	cfg.Style.Background = Color{R: 0.1, G: 0.2, B: 0.3, A: 1}

	if err := WriteConfig(cfg, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("width: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected a parse error")
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	d := DefaultConfig()
	if got := (Config{}).withDefaults(); got != d {
		t.Errorf("zero config = %+v, want defaults", got)
	}

	got := Config{Width: 10, MinTickSpacing: 300, MaxTickSpacing: 100}.withDefaults()
	if got.Width != 10 {
		t.Errorf("width = %d, want 10", got.Width)
	}
	if got.MaxTickSpacing <= got.MinTickSpacing {
		t.Errorf("max spacing %v should exceed min %v", got.MaxTickSpacing, got.MinTickSpacing)
	}
}

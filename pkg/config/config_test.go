package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Card != def.Card {
		t.Errorf("card = %+v, want defaults %+v", cfg.Card, def.Card)
	}
	if cfg.Render != def.Render {
		t.Errorf("render = %+v, want defaults %+v", cfg.Render, def.Render)
	}
	if cfg.Kernel != "prism" {
		t.Errorf("kernel = %q, want prism", cfg.Kernel)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardstock.toml")
	data := `
kernel = "sdf"

[card]
width = 0.9
height = 0.5
name = "Ticket"

[render]
size = 256
output = "ticket.webp"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Kernel != "sdf" {
		t.Errorf("kernel = %q, want sdf", cfg.Kernel)
	}
	if cfg.Card.Width != 0.9 || cfg.Card.Height != 0.5 {
		t.Errorf("card = %+v", cfg.Card)
	}
	if cfg.Card.Name != "Ticket" {
		t.Errorf("card name = %q, want Ticket", cfg.Card.Name)
	}
	// Unset fields keep their defaults.
	if cfg.Card.Radius != 0.06 || cfg.Card.CornerSteps != 24 {
		t.Errorf("card defaults lost: %+v", cfg.Card)
	}
	if cfg.Render.Size != 256 || cfg.Render.Output != "ticket.webp" {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Render.Supersample != 2 {
		t.Errorf("supersample = %d, want default 2", cfg.Render.Supersample)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("card = [not toml"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

// Command cardstock generates a rounded-rectangle card solid, stages it in
// an in-memory scene with its material, camera and key light, and writes a
// WebP preview. Scenes come from a Lisp script, a TOML config, or built-in
// defaults.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/cardstock/pkg/config"
	"github.com/chazu/cardstock/pkg/kernel"
	"github.com/chazu/cardstock/pkg/kernel/prism"
	"github.com/chazu/cardstock/pkg/kernel/sdfx"
)

func main() {
	scriptPath := flag.String("script", "", "card script to evaluate (default: stage one card from config)")
	configPath := flag.String("config", "", "config file (default: cardstock.toml if present)")
	output := flag.String("o", "", "preview output path (overrides config)")
	size := flag.Int("size", 0, "preview size in pixels (overrides config)")
	backend := flag.String("kernel", "", "geometry kernel: prism or sdf (overrides config)")
	flag.Parse()

	if err := run(*scriptPath, *configPath, *output, *size, *backend); err != nil {
		log.Fatalf("cardstock: %v", err)
	}
}

func run(scriptPath, configPath, output string, size int, backend string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if output != "" {
		cfg.Render.Output = output
	}
	if size > 0 {
		cfg.Render.Size = size
	}
	if backend != "" {
		cfg.Kernel = backend
	}

	var k kernel.Kernel
	switch cfg.Kernel {
	case "", "prism":
		k = prism.New()
	case "sdf", "sdfx":
		k = sdfx.New()
	default:
		return fmt.Errorf("unknown kernel %q (want prism or sdf)", cfg.Kernel)
	}

	var source string
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		source = string(data)
	}

	return NewApp(k).Run(source, cfg)
}

package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/chazu/cardstock/pkg/card"
	"github.com/chazu/cardstock/pkg/config"
	"github.com/chazu/cardstock/pkg/engine"
	"github.com/chazu/cardstock/pkg/kernel"
	"github.com/chazu/cardstock/pkg/render"
	"github.com/chazu/cardstock/pkg/scene"
)

// App wires the script engine, a geometry kernel and the preview renderer
// together for one run.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
}

// NewApp creates an App around the given kernel backend.
func NewApp(k kernel.Kernel) *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: k,
	}
}

// Stage evaluates the script source (or, when source is empty, the config's
// card spec) into a fresh in-memory scene.
func (a *App) Stage(source string, cfg config.Config) (*scene.Scene, error) {
	script, err := a.describe(source, cfg)
	if err != nil {
		return nil, err
	}

	s := scene.NewScene()
	if err := card.StageAll(s, a.kernel, script.Cards, script.Setup); err != nil {
		return nil, err
	}
	return s, nil
}

// describe turns the run inputs into a Script description.
func (a *App) describe(source string, cfg config.Config) (*engine.Script, error) {
	if source == "" {
		script := engine.NewScript()
		script.Cards = append(script.Cards, cfg.Card)
		return script, nil
	}

	script, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	if len(evalErrs) > 0 {
		msgs := make([]string, 0, len(evalErrs))
		for _, e := range evalErrs {
			msgs = append(msgs, e.Error())
		}
		return nil, fmt.Errorf("script errors:\n  %s", strings.Join(msgs, "\n  "))
	}
	if len(script.Cards) == 0 {
		return nil, fmt.Errorf("script staged no cards")
	}
	return script, nil
}

// Run stages, renders and writes the preview, logging mesh statistics.
func (a *App) Run(source string, cfg config.Config) error {
	s, err := a.Stage(source, cfg)
	if err != nil {
		return err
	}

	for _, obj := range s.Objects {
		log.Printf("staged %q: %d vertices, %d triangles",
			obj.Name, obj.Mesh.VertexCount(), obj.Mesh.TriangleCount())
	}

	opts := render.DefaultOptions()
	if cfg.Render.Size > 0 {
		opts.Size = cfg.Render.Size
	}
	if cfg.Render.Supersample > 0 {
		opts.Supersample = cfg.Render.Supersample
	}

	img, err := render.Render(s, opts)
	if err != nil {
		return err
	}
	if err := render.WriteWebP(cfg.Render.Output, img); err != nil {
		return err
	}
	log.Printf("wrote %s (%dpx)", cfg.Render.Output, opts.Size)
	return nil
}

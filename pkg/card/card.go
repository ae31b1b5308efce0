// Package card builds the rounded-rectangle card solid and stages it, with
// its material, camera and key light, onto a scene host.
package card

import (
	"fmt"
	"log"

	"github.com/chazu/cardstock/pkg/kernel"
	"github.com/chazu/cardstock/pkg/outline"
	"github.com/chazu/cardstock/pkg/scene"
)

// Spec holds the card geometry parameters. Values are in scene units
// (meters, matching the hosts this tool targets).
//
// Radius is expected to stay at or below min(Width, Height)/2; beyond that
// the corner arcs overlap and the outline degenerates. The builder does not
// guard against it.
type Spec struct {
	Width       float64 `json:"width" toml:"width"`
	Height      float64 `json:"height" toml:"height"`
	Radius      float64 `json:"radius" toml:"radius"`
	Thickness   float64 `json:"thickness" toml:"thickness"`
	CornerSteps int     `json:"corner_steps" toml:"corner_steps"`
	Name        string  `json:"name" toml:"name"`

	// Position places the finished card in world space; the solid itself
	// is always built centered on the origin.
	Position scene.Vec3 `json:"position" toml:"position"`
}

// DefaultSpec returns the credit-card-like default proportions:
// 1.0 x 0.6, corner radius 0.06, thickness 0.01, 24 arc steps.
func DefaultSpec() Spec {
	return Spec{
		Width:       1.0,
		Height:      0.6,
		Radius:      0.06,
		Thickness:   0.01,
		CornerSteps: 24,
		Name:        "BlackCard",
	}
}

// Outline returns the card's rounded-rectangle outline.
func (s Spec) Outline() outline.Outline {
	return outline.RoundedRect(s.Width, s.Height, s.Radius, s.CornerSteps)
}

// Build produces the card mesh through the given kernel.
func Build(k kernel.Kernel, spec Spec) (*kernel.Mesh, error) {
	o := spec.Outline()
	solid, err := k.Extrude(o, spec.Thickness)
	if err != nil {
		return nil, fmt.Errorf("card: extrude: %w", err)
	}
	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("card: mesh: %w", err)
	}
	if spec.Position != (scene.Vec3{}) {
		translate(mesh, spec.Position)
	}
	mesh.Name = spec.Name
	return mesh, nil
}

// translate offsets every mesh vertex by v. Normals are unaffected.
func translate(m *kernel.Mesh, v scene.Vec3) {
	for i := 0; i < m.VertexCount(); i++ {
		m.Vertices[i*3+0] += float32(v.X)
		m.Vertices[i*3+1] += float32(v.Y)
		m.Vertices[i*3+2] += float32(v.Z)
	}
}

// Setup holds the non-geometric staging parameters: material values and
// camera/light placement.
type Setup struct {
	MaterialName string
	BaseColor    [4]float64 // RGBA
	Roughness    float64
	Specular     float64
	Camera       scene.Camera
	Light        scene.Light
}

// DefaultSetup returns the stock scene: a pure black, mostly matte
// material, a camera pulled back and tilted down at the card, and one area
// key light above and to the side.
func DefaultSetup() Setup {
	return Setup{
		MaterialName: "BlackMaterial",
		BaseColor:    [4]float64{0, 0, 0, 1},
		Roughness:    0.6,
		Specular:     0.03,
		Camera: scene.Camera{
			Position:    scene.Vec3{X: 0, Y: -1.6, Z: 0.5},
			RotationDeg: scene.Vec3{X: 70, Y: 0, Z: 0},
			FOVDeg:      scene.DefaultFOV,
		},
		Light: scene.Light{
			Name:     "KeyLight",
			Kind:     scene.LightArea,
			Position: scene.Vec3{X: 1.2, Y: -0.8, Z: 1.2},
			Energy:   500,
			Size:     0.25,
		},
	}
}

// Stage builds one card and hands the full scene to the host: material
// first, then the solid bound to it, then camera and light.
func Stage(host scene.Host, k kernel.Kernel, spec Spec, setup Setup) error {
	return StageAll(host, k, []Spec{spec}, setup)
}

// StageAll stages any number of cards sharing one material, then the camera
// and key light.
//
// Material parameters go through the socket alias tables; a host version
// that lacks a socket entirely skips that one assignment rather than
// failing the stage.
func StageAll(host scene.Host, k kernel.Kernel, specs []Spec, setup Setup) error {
	mat, err := host.CreateMaterial(setup.MaterialName)
	if err != nil {
		return fmt.Errorf("card: create material: %w", err)
	}
	if got := scene.SetParamAliased(mat, scene.BaseColorAliases, setup.BaseColor[:]); got == "" {
		log.Printf("card: material %q: no base color socket, skipping", setup.MaterialName)
	}
	if got := scene.SetParamAliased(mat, scene.RoughnessAliases, []float64{setup.Roughness}); got == "" {
		log.Printf("card: material %q: no roughness socket, skipping", setup.MaterialName)
	}
	if got := scene.SetParamAliased(mat, scene.SpecularAliases, []float64{setup.Specular}); got == "" {
		log.Printf("card: material %q: no specular socket, skipping", setup.MaterialName)
	}

	for _, spec := range specs {
		mesh, err := Build(k, spec)
		if err != nil {
			return err
		}
		if err := host.RegisterSolid(spec.Name, mesh, setup.MaterialName); err != nil {
			return fmt.Errorf("card: register solid: %w", err)
		}
	}
	if err := host.PlaceCamera(setup.Camera); err != nil {
		return fmt.Errorf("card: place camera: %w", err)
	}
	if err := host.PlaceLight(setup.Light); err != nil {
		return fmt.Errorf("card: place light: %w", err)
	}
	return nil
}

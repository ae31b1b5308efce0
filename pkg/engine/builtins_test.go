package engine

import (
	"testing"

	"github.com/chazu/cardstock/pkg/scene"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(card :name "BlackCard")`,
			expect: `(card "__kw_name" "BlackCard")`,
		},
		{
			name:   "multiple keywords",
			input:  `(card :width 1.0 :height 0.6)`,
			expect: `(card "__kw_width" 1.0 "__kw_height" 0.6)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab keyword normalized",
			input:  `:corner-steps 24`,
			expect: `"__kw_corner_steps" 24`,
		},
		{
			name:   "kebab identifier",
			input:  `(my-card)`,
			expect: `(my_card)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Builtin tests
// ---------------------------------------------------------------------------

func evalScript(t *testing.T, source string) *Script {
	t.Helper()
	s, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if s == nil {
		t.Fatal("expected non-nil script")
	}
	return s
}

func TestCardDefaults(t *testing.T) {
	s := evalScript(t, `(card)`)
	if len(s.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(s.Cards))
	}
	c := s.Cards[0]
	if c.Width != 1.0 || c.Height != 0.6 || c.Radius != 0.06 || c.Thickness != 0.01 {
		t.Errorf("card = %+v, want default dimensions", c)
	}
	if c.CornerSteps != 24 {
		t.Errorf("corner steps = %d, want 24", c.CornerSteps)
	}
	if c.Name != "BlackCard" {
		t.Errorf("name = %q, want BlackCard", c.Name)
	}
}

func TestCardKeywords(t *testing.T) {
	s := evalScript(t, `
(card :width 0.9 :height 0.5 :radius 0.05 :thickness 0.02
      :corner-steps 12 :name "Ticket" :at (vec3 0.1 0.2 0.3))
`)
	if len(s.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(s.Cards))
	}
	c := s.Cards[0]
	if c.Width != 0.9 || c.Height != 0.5 || c.Radius != 0.05 || c.Thickness != 0.02 {
		t.Errorf("card dimensions = %+v", c)
	}
	if c.CornerSteps != 12 {
		t.Errorf("corner steps = %d, want 12", c.CornerSteps)
	}
	if c.Name != "Ticket" {
		t.Errorf("name = %q, want Ticket", c.Name)
	}
	if c.Position != (scene.Vec3{X: 0.1, Y: 0.2, Z: 0.3}) {
		t.Errorf("position = %+v", c.Position)
	}
}

func TestCardAutoRename(t *testing.T) {
	s := evalScript(t, "(card)\n(card)\n(card)")
	if len(s.Cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(s.Cards))
	}
	names := []string{s.Cards[0].Name, s.Cards[1].Name, s.Cards[2].Name}
	want := []string{"BlackCard", "BlackCard.001", "BlackCard.002"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("card %d name = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestCardBadArgument(t *testing.T) {
	_, evalErrs, err := NewEngine().Evaluate(`(card :width "wide")`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for non-numeric width")
	}
}

func TestVec3ArgCount(t *testing.T) {
	_, evalErrs, err := NewEngine().Evaluate(`(vec3 1 2)`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for 2-argument vec3")
	}
}

func TestMaterialOverrides(t *testing.T) {
	s := evalScript(t, `
(material :name "Brass"
          :base-color (vec3 0.8 0.6 0.2)
          :alpha 0.9
          :roughness 0.3
          :specular 0.5)
`)
	m := s.Setup
	if m.MaterialName != "Brass" {
		t.Errorf("material name = %q, want Brass", m.MaterialName)
	}
	if m.BaseColor != [4]float64{0.8, 0.6, 0.2, 0.9} {
		t.Errorf("base color = %v", m.BaseColor)
	}
	if m.Roughness != 0.3 || m.Specular != 0.5 {
		t.Errorf("roughness = %v, specular = %v", m.Roughness, m.Specular)
	}
}

func TestMaterialDefaultsSurvivePartialOverride(t *testing.T) {
	s := evalScript(t, `(material :roughness 0.9)`)
	m := s.Setup
	if m.MaterialName != "BlackMaterial" {
		t.Errorf("material name = %q, want default", m.MaterialName)
	}
	if m.Roughness != 0.9 {
		t.Errorf("roughness = %v, want 0.9", m.Roughness)
	}
	if m.Specular != 0.03 {
		t.Errorf("specular = %v, want default 0.03", m.Specular)
	}
	if m.BaseColor != [4]float64{0, 0, 0, 1} {
		t.Errorf("base color = %v, want default black", m.BaseColor)
	}
}

func TestCameraTiltShorthand(t *testing.T) {
	s := evalScript(t, `(camera :at (vec3 0 -2 1) :tilt 65 :fov 45)`)
	cam := s.Setup.Camera
	if cam.Position != (scene.Vec3{X: 0, Y: -2, Z: 1}) {
		t.Errorf("position = %+v", cam.Position)
	}
	if cam.RotationDeg != (scene.Vec3{X: 65}) {
		t.Errorf("rotation = %+v, want tilt about X only", cam.RotationDeg)
	}
	if cam.FOVDeg != 45 {
		t.Errorf("fov = %v, want 45", cam.FOVDeg)
	}
}

func TestCameraRotateVector(t *testing.T) {
	s := evalScript(t, `(camera :rotate (vec3 70 0 15))`)
	if s.Setup.Camera.RotationDeg != (scene.Vec3{X: 70, Y: 0, Z: 15}) {
		t.Errorf("rotation = %+v", s.Setup.Camera.RotationDeg)
	}
}

func TestLightOverrides(t *testing.T) {
	s := evalScript(t, `(light :name "Fill" :at (vec3 -1 0 2) :energy 120 :size 0.5)`)
	l := s.Setup.Light
	if l.Name != "Fill" {
		t.Errorf("name = %q, want Fill", l.Name)
	}
	if l.Position != (scene.Vec3{X: -1, Y: 0, Z: 2}) {
		t.Errorf("position = %+v", l.Position)
	}
	if l.Energy != 120 || l.Size != 0.5 {
		t.Errorf("energy = %v, size = %v", l.Energy, l.Size)
	}
	if l.Kind != scene.LightArea {
		t.Errorf("kind = %v, want area (default)", l.Kind)
	}
}

func TestFullSceneScript(t *testing.T) {
	s := evalScript(t, `
;; the classic black card scene
(card :width 1.0 :height 0.6 :radius 0.06 :thickness 0.01 :corner-steps 24
      :name "BlackCard")

(material :name "BlackMaterial"
          :base-color (vec3 0 0 0)
          :roughness 0.6
          :specular 0.03)

(camera :at (vec3 0 -1.6 0.5) :tilt 70)

(light :name "KeyLight" :at (vec3 1.2 -0.8 1.2) :energy 500 :size 0.25)
`)
	if len(s.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(s.Cards))
	}
	if s.Cards[0].Name != "BlackCard" {
		t.Errorf("card name = %q", s.Cards[0].Name)
	}
	if s.Setup.MaterialName != "BlackMaterial" {
		t.Errorf("material = %q", s.Setup.MaterialName)
	}
	if s.Setup.Camera.RotationDeg != (scene.Vec3{X: 70}) {
		t.Errorf("camera rotation = %+v", s.Setup.Camera.RotationDeg)
	}
	if s.Setup.Light.Energy != 500 {
		t.Errorf("light energy = %v", s.Setup.Light.Energy)
	}
}

func TestScriptVariables(t *testing.T) {
	// The DSL is full zygomys; defs and arithmetic work.
	s := evalScript(t, `
(def w 0.8)
(card :width w :height (* w 0.6))
`)
	if len(s.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(s.Cards))
	}
	if s.Cards[0].Width != 0.8 {
		t.Errorf("width = %v, want 0.8", s.Cards[0].Width)
	}
	if diff := s.Cards[0].Height - 0.48; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("height = %v, want 0.48", s.Cards[0].Height)
	}
}

package scene

import (
	"testing"

	"github.com/chazu/cardstock/pkg/kernel"
)

func testMesh() *kernel.Mesh {
	return &kernel.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
	}
}

func TestCreateMaterial(t *testing.T) {
	s := NewScene()
	m, err := s.CreateMaterial("Ink")
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	if m.Name() != "Ink" {
		t.Errorf("Name() = %q, want %q", m.Name(), "Ink")
	}
	if _, err := s.CreateMaterial("Ink"); err == nil {
		t.Error("expected error for duplicate material")
	}
}

func TestRegisterSolid(t *testing.T) {
	s := NewScene()
	if _, err := s.CreateMaterial("Ink"); err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	if err := s.RegisterSolid("Card", testMesh(), "Ink"); err != nil {
		t.Fatalf("RegisterSolid: %v", err)
	}
	obj := s.Lookup("Card")
	if obj == nil {
		t.Fatal("Lookup returned nil for registered object")
	}
	if obj.Material != "Ink" {
		t.Errorf("object material = %q, want %q", obj.Material, "Ink")
	}
	if obj.Mesh.Name != "Card" {
		t.Errorf("mesh name = %q, want %q", obj.Mesh.Name, "Card")
	}
	if s.Lookup("Nope") != nil {
		t.Error("Lookup returned object for unknown name")
	}
}

func TestRegisterSolidRejectsEmptyMesh(t *testing.T) {
	s := NewScene()
	if err := s.RegisterSolid("Card", &kernel.Mesh{}, ""); err == nil {
		t.Error("expected error for empty mesh")
	}
	if err := s.RegisterSolid("Card", nil, ""); err == nil {
		t.Error("expected error for nil mesh")
	}
}

func TestRegisterSolidRejectsUnknownMaterial(t *testing.T) {
	s := NewScene()
	if err := s.RegisterSolid("Card", testMesh(), "Missing"); err == nil {
		t.Error("expected error for unknown material")
	}
}

func TestSetParamAliasedModern(t *testing.T) {
	s := NewScene()
	m, err := s.CreateMaterial("Ink")
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	// The modern socket set has no plain "Specular"; the walk lands on
	// "Specular IOR Level".
	socket := SetParamAliased(m, SpecularAliases, []float64{0.03})
	if socket != "Specular IOR Level" {
		t.Errorf("SetParamAliased chose %q, want %q", socket, "Specular IOR Level")
	}
	v, ok := s.MaterialValue("Ink", SpecularAliases)
	if !ok {
		t.Fatal("MaterialValue: specular not set")
	}
	if len(v) != 1 || v[0] != 0.03 {
		t.Errorf("specular = %v, want [0.03]", v)
	}
}

func TestSetParamAliasedLegacy(t *testing.T) {
	s := NewSceneWithSockets(LegacySockets)
	m, err := s.CreateMaterial("Ink")
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	socket := SetParamAliased(m, SpecularAliases, []float64{0.5})
	if socket != "Specular" {
		t.Errorf("SetParamAliased chose %q, want %q", socket, "Specular")
	}
}

func TestSetParamAliasedNoMatch(t *testing.T) {
	s := NewSceneWithSockets([]string{"Base Color"})
	m, err := s.CreateMaterial("Ink")
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	if socket := SetParamAliased(m, SpecularAliases, []float64{0.5}); socket != "" {
		t.Errorf("SetParamAliased chose %q, want skip", socket)
	}
	if _, ok := s.MaterialValue("Ink", SpecularAliases); ok {
		t.Error("MaterialValue returned a value that was never assigned")
	}
}

func TestSetParamUnknownSocket(t *testing.T) {
	s := NewScene()
	m, err := s.CreateMaterial("Ink")
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	if err := m.SetParam("No Such Socket", []float64{1}); err == nil {
		t.Error("expected error for unknown socket")
	}
}

func TestSetParamCopiesValue(t *testing.T) {
	s := NewScene()
	m, err := s.CreateMaterial("Ink")
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	v := []float64{0.1, 0.2, 0.3, 1}
	if err := m.SetParam("Base Color", v); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	v[0] = 99
	got, ok := s.MaterialValue("Ink", BaseColorAliases)
	if !ok {
		t.Fatal("MaterialValue: base color not set")
	}
	if got[0] != 0.1 {
		t.Errorf("stored value aliases the caller's slice: %v", got)
	}
}

func TestPlaceCameraDefaultFOV(t *testing.T) {
	s := NewScene()
	if err := s.PlaceCamera(Camera{Position: Vec3{0, -1.6, 0.5}}); err != nil {
		t.Fatalf("PlaceCamera: %v", err)
	}
	if s.Camera == nil {
		t.Fatal("camera not set")
	}
	if s.Camera.FOVDeg != DefaultFOV {
		t.Errorf("FOVDeg = %v, want default %v", s.Camera.FOVDeg, DefaultFOV)
	}

	// Explicit FOV survives.
	if err := s.PlaceCamera(Camera{FOVDeg: 50}); err != nil {
		t.Fatalf("PlaceCamera: %v", err)
	}
	if s.Camera.FOVDeg != 50 {
		t.Errorf("FOVDeg = %v, want 50", s.Camera.FOVDeg)
	}
}

func TestPlaceLight(t *testing.T) {
	s := NewScene()
	l := Light{Name: "KeyLight", Kind: LightArea, Position: Vec3{1.2, -0.8, 1.2}, Energy: 500, Size: 0.25}
	if err := s.PlaceLight(l); err != nil {
		t.Fatalf("PlaceLight: %v", err)
	}
	if len(s.Lights) != 1 {
		t.Fatalf("got %d lights, want 1", len(s.Lights))
	}
	if s.Lights[0] != l {
		t.Errorf("stored light %+v, want %+v", s.Lights[0], l)
	}
}

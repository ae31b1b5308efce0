package scene

import (
	"fmt"

	"github.com/chazu/cardstock/pkg/kernel"
)

// Compile-time interface checks.
var _ Host = (*Scene)(nil)
var _ Material = (*memMaterial)(nil)

// ModernSockets is the material socket set of current host versions, where
// the specular socket is named "Specular IOR Level".
var ModernSockets = []string{"Base Color", "Roughness", "Specular IOR Level", "Metallic", "Alpha"}

// LegacySockets is the socket set of older host versions, with the plain
// "Specular" name.
var LegacySockets = []string{"Base Color", "Roughness", "Specular", "Metallic", "Alpha"}

// Object is a registered solid.
type Object struct {
	Name     string
	Mesh     *kernel.Mesh
	Material string
}

// Scene is the in-memory Host implementation. It stores everything handed
// across the boundary and is consumed by tests and the preview renderer.
type Scene struct {
	Objects   []Object
	Materials map[string]*memMaterial
	Camera    *Camera
	Lights    []Light

	sockets []string
}

// NewScene returns an empty scene whose materials expose the modern socket
// set.
func NewScene() *Scene {
	return NewSceneWithSockets(ModernSockets)
}

// NewSceneWithSockets returns an empty scene whose materials expose the
// given parameter sockets. Tests use this to emulate host versions with
// different material naming.
func NewSceneWithSockets(sockets []string) *Scene {
	return &Scene{
		Materials: make(map[string]*memMaterial),
		sockets:   sockets,
	}
}

// RegisterSolid stores a mesh under the given object name.
func (s *Scene) RegisterSolid(name string, mesh *kernel.Mesh, material string) error {
	if mesh == nil || mesh.IsEmpty() {
		return fmt.Errorf("scene: refusing to register empty mesh %q", name)
	}
	if material != "" {
		if _, ok := s.Materials[material]; !ok {
			return fmt.Errorf("scene: object %q references unknown material %q", name, material)
		}
	}
	mesh.Name = name
	s.Objects = append(s.Objects, Object{Name: name, Mesh: mesh, Material: material})
	return nil
}

// CreateMaterial creates a material exposing this scene's socket set.
func (s *Scene) CreateMaterial(name string) (Material, error) {
	if _, exists := s.Materials[name]; exists {
		return nil, fmt.Errorf("scene: material %q already exists", name)
	}
	m := &memMaterial{
		name:    name,
		sockets: s.sockets,
		values:  make(map[string][]float64),
	}
	s.Materials[name] = m
	return m, nil
}

// PlaceCamera sets the scene camera, replacing any previous one.
func (s *Scene) PlaceCamera(c Camera) error {
	if c.FOVDeg == 0 {
		c.FOVDeg = DefaultFOV
	}
	s.Camera = &c
	return nil
}

// PlaceLight adds a light.
func (s *Scene) PlaceLight(l Light) error {
	s.Lights = append(s.Lights, l)
	return nil
}

// Lookup returns the object with the given name, or nil.
func (s *Scene) Lookup(name string) *Object {
	for i := range s.Objects {
		if s.Objects[i].Name == name {
			return &s.Objects[i]
		}
	}
	return nil
}

// MaterialValue returns the value assigned to the first matching socket
// alias on the named material. ok is false when the material does not exist
// or none of the aliases was ever assigned.
func (s *Scene) MaterialValue(material string, aliases []string) (value []float64, ok bool) {
	m := s.Materials[material]
	if m == nil {
		return nil, false
	}
	for _, socket := range aliases {
		if v, set := m.values[socket]; set {
			return v, true
		}
	}
	return nil, false
}

// memMaterial is the Scene-backed Material implementation.
type memMaterial struct {
	name    string
	sockets []string
	values  map[string][]float64
}

func (m *memMaterial) Name() string { return m.name }

func (m *memMaterial) Has(socket string) bool {
	for _, s := range m.sockets {
		if s == socket {
			return true
		}
	}
	return false
}

func (m *memMaterial) SetParam(socket string, value []float64) error {
	if !m.Has(socket) {
		return fmt.Errorf("scene: material %q has no socket %q", m.name, socket)
	}
	v := make([]float64, len(value))
	copy(v, value)
	m.values[socket] = v
	return nil
}

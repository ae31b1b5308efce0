package scene

import "github.com/chazu/cardstock/pkg/kernel"

// Host is the narrow interface to the environment that owns the scene graph.
// Ownership of a mesh passes to the host on RegisterSolid; the geometry core
// holds no references afterward.
type Host interface {
	// RegisterSolid hands a finished mesh to the host under the given
	// object name, bound to a previously created material by name.
	RegisterSolid(name string, mesh *kernel.Mesh, material string) error

	// CreateMaterial creates a named material and returns a handle for
	// parameter assignment.
	CreateMaterial(name string) (Material, error)

	// PlaceCamera sets the scene camera.
	PlaceCamera(c Camera) error

	// PlaceLight adds a light to the scene.
	PlaceLight(l Light) error
}

// Material is a handle to a host material. Which parameter sockets exist is
// host-version-dependent; callers probe with Has or go through
// SetParamAliased rather than assuming one naming scheme.
type Material interface {
	Name() string
	Has(socket string) bool
	SetParam(socket string, value []float64) error
}

// Parameter socket aliases, ordered newest-name-last so older hosts match
// first. The specular socket was renamed across host versions; the alias
// walk absorbs that without hard-coding one scheme.
var (
	BaseColorAliases = []string{"Base Color"}
	RoughnessAliases = []string{"Roughness"}
	SpecularAliases  = []string{"Specular", "Specular IOR Level", "Specular IOR"}
)

// SetParamAliased tries each socket name in order and assigns the first one
// the material supports. It returns the socket that was set, or "" when the
// material supports none of the aliases. A missing socket is not an error:
// the assignment is skipped rather than failing the whole operation.
func SetParamAliased(m Material, aliases []string, value []float64) string {
	for _, socket := range aliases {
		if !m.Has(socket) {
			continue
		}
		if err := m.SetParam(socket, value); err != nil {
			// A host that exposes the socket but rejects the value is
			// treated the same as not exposing it.
			continue
		}
		return socket
	}
	return ""
}

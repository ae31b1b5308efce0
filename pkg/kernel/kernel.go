// Package kernel defines the abstract geometry kernel interface.
// Implementations (prism, sdfx) turn 2D outlines into extruded solids and
// triangle meshes behind this interface. The kernel abstraction allows
// swapping backends without changing the rest of the system.
package kernel

import "github.com/chazu/cardstock/pkg/outline"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Extrude sweeps a closed CCW outline in the XY plane along Z,
	// producing a closed solid spanning z = -thickness/2 .. +thickness/2.
	Extrude(o outline.Outline, thickness float64) (Solid, error)

	// ToMesh converts a solid to a triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}

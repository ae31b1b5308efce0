// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Solids are signed distance
// fields and meshing goes through marching cubes, so vertex counts are
// resolution-dependent; use the prism backend when exact counts matter.
package sdfx

import (
	"fmt"

	"github.com/chazu/cardstock/pkg/kernel"
	"github.com/chazu/cardstock/pkg/outline"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// Extrude sweeps the outline along Z. The outline becomes an sdf.Polygon2D
// profile and Extrude3D produces a solid centered on the XY plane, matching
// the prism backend's z = -thickness/2 .. +thickness/2 span.
func (k *SdfxKernel) Extrude(o outline.Outline, thickness float64) (kernel.Solid, error) {
	if len(o) < 3 {
		return nil, fmt.Errorf("sdfx: outline has %d points, need at least 3", len(o))
	}
	pts := make([]v2.Vec, 0, len(o))
	for _, p := range o {
		pts = append(pts, v2.Vec{X: p.X, Y: p.Y})
	}
	profile, err := sdf.Polygon2D(pts)
	if err != nil {
		return nil, fmt.Errorf("sdfx: Polygon2D: %w", err)
	}
	return wrap(sdf.Extrude3D(profile, thickness)), nil
}

// RoundedBox builds the card shape without an explicit outline, using the
// library's rounded 2D box. The rounding is exact in SDF space rather than a
// cornerSteps arc approximation.
func (k *SdfxKernel) RoundedBox(width, height, radius, thickness float64) (kernel.Solid, error) {
	profile := sdf.Box2D(v2.Vec{X: width, Y: height}, radius)
	return wrap(sdf.Extrude3D(profile, thickness)), nil
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(defaultMeshCells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

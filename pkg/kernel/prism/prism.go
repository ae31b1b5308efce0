// Package prism implements the kernel.Kernel interface with a direct
// boundary-representation extrusion: the outline becomes a planar top cap,
// which is duplicated, offset along -Z, and stitched with one quad wall per
// outline edge. Unlike the sdfx backend it produces exact vertex and face
// counts: extruding an N point outline yields 2N vertices and N+2 polygon
// faces (two caps plus N walls), all wound with outward normals.
package prism

import (
	"fmt"
	"math"

	"github.com/chazu/cardstock/pkg/kernel"
	"github.com/chazu/cardstock/pkg/outline"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*Kernel)(nil)
var _ kernel.Solid = (*Solid)(nil)

// Solid is a closed polygon-face solid produced by extrusion. Faces are
// stored as vertex index loops wound counter-clockwise when seen from
// outside the solid.
type Solid struct {
	verts [][3]float64
	faces [][]int
}

// Kernel implements kernel.Kernel by direct extrusion.
type Kernel struct{}

// New returns a new prism Kernel.
func New() *Kernel {
	return &Kernel{}
}

// Extrude builds the closed solid swept from the outline. The solid spans
// z = -thickness/2 .. +thickness/2 with the caps parallel to the XY plane.
func (k *Kernel) Extrude(o outline.Outline, thickness float64) (kernel.Solid, error) {
	if len(o) < 3 {
		return nil, fmt.Errorf("prism: outline has %d points, need at least 3", len(o))
	}
	if thickness <= 0 {
		return nil, fmt.Errorf("prism: thickness must be positive, got %g", thickness)
	}

	// The stitching below assumes CCW winding; flip defensively so a CW
	// caller still gets outward normals.
	if o.Area() < 0 {
		flipped := make(outline.Outline, len(o))
		for i, p := range o {
			flipped[len(o)-1-i] = p
		}
		o = flipped
	}

	n := len(o)
	half := thickness / 2

	verts := make([][3]float64, 0, 2*n)
	for _, p := range o {
		verts = append(verts, [3]float64{p.X, p.Y, half})
	}
	for _, p := range o {
		verts = append(verts, [3]float64{p.X, p.Y, -half})
	}

	faces := make([][]int, 0, n+2)

	// Top cap keeps the outline winding: CCW seen from +Z, normal +Z.
	top := make([]int, n)
	for i := range top {
		top[i] = i
	}
	faces = append(faces, top)

	// Bottom cap reversed so its normal points -Z.
	bottom := make([]int, n)
	for i := range bottom {
		bottom[i] = 2*n - 1 - i
	}
	faces = append(faces, bottom)

	// One wall per outline edge, wrapping. For a CCW outline the winding
	// top_i -> bottom_i -> bottom_j -> top_j faces outward.
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		faces = append(faces, []int{i, n + i, n + j, j})
	}

	return &Solid{verts: verts, faces: faces}, nil
}

// BoundingBox returns the axis-aligned bounding box.
func (s *Solid) BoundingBox() (min, max [3]float64) {
	min = s.verts[0]
	max = s.verts[0]
	for _, v := range s.verts[1:] {
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	return min, max
}

// VertexCount returns the number of vertices.
func (s *Solid) VertexCount() int { return len(s.verts) }

// FaceCount returns the number of polygon faces.
func (s *Solid) FaceCount() int { return len(s.faces) }

// Vertices returns the vertex positions. The returned slice is shared; do
// not mutate.
func (s *Solid) Vertices() [][3]float64 { return s.verts }

// Faces returns the polygon faces as vertex index loops. The returned slice
// is shared; do not mutate.
func (s *Solid) Faces() [][]int { return s.faces }

// FaceNormal returns the unit normal of face i, computed by Newell's method
// so collinear leading vertices do not degrade it.
func (s *Solid) FaceNormal(i int) [3]float64 {
	f := s.faces[i]
	var nx, ny, nz float64
	for k := 0; k < len(f); k++ {
		a := s.verts[f[k]]
		b := s.verts[f[(k+1)%len(f)]]
		nx += (a[1] - b[1]) * (a[2] + b[2])
		ny += (a[2] - b[2]) * (a[0] + b[0])
		nz += (a[0] - b[0]) * (a[1] + b[1])
	}
	l := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if l < 1e-12 {
		return [3]float64{}
	}
	return [3]float64{nx / l, ny / l, nz / l}
}

// Centroid returns the average vertex position. For an extruded prism with
// uniform caps this coincides with the volume centroid's XY and z = 0.
func (s *Solid) Centroid() [3]float64 {
	var c [3]float64
	for _, v := range s.verts {
		for k := 0; k < 3; k++ {
			c[k] += v[k]
		}
	}
	n := float64(len(s.verts))
	return [3]float64{c[0] / n, c[1] / n, c[2] / n}
}

// IsManifold reports whether every edge is shared by exactly two faces with
// opposite orientation.
func (s *Solid) IsManifold() bool {
	type edge struct{ a, b int }
	counts := make(map[edge]int)
	for _, f := range s.faces {
		for k := 0; k < len(f); k++ {
			a := f[k]
			b := f[(k+1)%len(f)]
			if a == b {
				return false
			}
			// Count directed edges; a closed orientable surface uses each
			// undirected edge once in each direction.
			counts[edge{a, b}]++
		}
	}
	for e, c := range counts {
		if c != 1 {
			return false
		}
		if counts[edge{e.b, e.a}] != 1 {
			return false
		}
	}
	return true
}

// ToMesh converts a solid to a triangle mesh with smooth per-vertex normals
// recomputed from the final geometry.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ps, ok := s.(*Solid)
	if !ok {
		return nil, fmt.Errorf("prism: ToMesh requires a prism solid, got %T", s)
	}

	var indices []uint32
	for _, f := range ps.faces {
		tris, err := triangulateFace(ps, f)
		if err != nil {
			return nil, err
		}
		indices = append(indices, tris...)
	}

	vertices := make([]float32, 0, len(ps.verts)*3)
	for _, v := range ps.verts {
		vertices = append(vertices, float32(v[0]), float32(v[1]), float32(v[2]))
	}

	mesh := &kernel.Mesh{
		Vertices: vertices,
		Normals:  smoothNormals(vertices, indices),
		Indices:  indices,
	}
	return mesh, nil
}

// triangulateFace splits one polygon face into triangles. Quads and convex
// polygons use a fan; anything non-convex falls back to ear clipping. The
// extruded card caps are always convex, so the fallback only matters for
// degenerate or hand-built outlines.
func triangulateFace(s *Solid, f []int) ([]uint32, error) {
	if len(f) < 3 {
		return nil, fmt.Errorf("prism: face has %d vertices", len(f))
	}
	if len(f) <= 4 || faceIsConvex(s, f) {
		tris := make([]uint32, 0, (len(f)-2)*3)
		for i := 1; i < len(f)-1; i++ {
			tris = append(tris, uint32(f[0]), uint32(f[i]), uint32(f[i+1]))
		}
		return tris, nil
	}
	return earClip(s, f)
}

// faceIsConvex checks convexity of a planar face against its Newell normal.
func faceIsConvex(s *Solid, f []int) bool {
	// Use the face normal as the reference plane orientation.
	var n [3]float64
	for k := 0; k < len(f); k++ {
		a := s.verts[f[k]]
		b := s.verts[f[(k+1)%len(f)]]
		n[0] += (a[1] - b[1]) * (a[2] + b[2])
		n[1] += (a[2] - b[2]) * (a[0] + b[0])
		n[2] += (a[0] - b[0]) * (a[1] + b[1])
	}
	for i := 0; i < len(f); i++ {
		a := s.verts[f[i]]
		b := s.verts[f[(i+1)%len(f)]]
		c := s.verts[f[(i+2)%len(f)]]
		ab := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		bc := [3]float64{c[0] - b[0], c[1] - b[1], c[2] - b[2]}
		cross := [3]float64{
			ab[1]*bc[2] - ab[2]*bc[1],
			ab[2]*bc[0] - ab[0]*bc[2],
			ab[0]*bc[1] - ab[1]*bc[0],
		}
		if cross[0]*n[0]+cross[1]*n[1]+cross[2]*n[2] < -1e-12 {
			return false
		}
	}
	return true
}

// earClip triangulates a non-convex planar face. Faces are planar in Z here
// (only caps can be non-convex), so clipping runs in the XY plane.
func earClip(s *Solid, f []int) ([]uint32, error) {
	remaining := make([]int, len(f))
	copy(remaining, f)

	// Bottom cap loops are CW in XY; orient to CCW for the clipper and emit
	// triangles in the original winding.
	flip := loopAreaXY(s, remaining) < 0
	if flip {
		for i, j := 0, len(remaining)-1; i < j; i, j = i+1, j-1 {
			remaining[i], remaining[j] = remaining[j], remaining[i]
		}
	}

	var tris []uint32
	emit := func(a, b, c int) {
		if flip {
			a, c = c, a
		}
		tris = append(tris, uint32(a), uint32(b), uint32(c))
	}

	for len(remaining) > 3 {
		clipped := false
		for i := 0; i < len(remaining); i++ {
			prev := remaining[(i+len(remaining)-1)%len(remaining)]
			cur := remaining[i]
			next := remaining[(i+1)%len(remaining)]
			if !isEar(s, remaining, prev, cur, next) {
				continue
			}
			emit(prev, cur, next)
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, fmt.Errorf("prism: ear clipping failed, face may self-intersect")
		}
	}
	emit(remaining[0], remaining[1], remaining[2])
	return tris, nil
}

func loopAreaXY(s *Solid, loop []int) float64 {
	var sum float64
	for i := 0; i < len(loop); i++ {
		a := s.verts[loop[i]]
		b := s.verts[loop[(i+1)%len(loop)]]
		sum += a[0]*b[1] - b[0]*a[1]
	}
	return sum / 2
}

func isEar(s *Solid, loop []int, prev, cur, next int) bool {
	a := s.verts[prev]
	b := s.verts[cur]
	c := s.verts[next]
	// Reflex corners are not ears.
	if (b[0]-a[0])*(c[1]-b[1])-(b[1]-a[1])*(c[0]-b[0]) <= 0 {
		return false
	}
	// No other loop vertex may sit inside the candidate triangle.
	for _, idx := range loop {
		if idx == prev || idx == cur || idx == next {
			continue
		}
		if pointInTriangleXY(s.verts[idx], a, b, c) {
			return false
		}
	}
	return true
}

func pointInTriangleXY(p, a, b, c [3]float64) bool {
	d1 := (p[0]-b[0])*(a[1]-b[1]) - (a[0]-b[0])*(p[1]-b[1])
	d2 := (p[0]-c[0])*(b[1]-c[1]) - (b[0]-c[0])*(p[1]-c[1])
	d3 := (p[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(p[1]-a[1])
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// smoothNormals generates per-vertex normals by accumulating the
// area-weighted face normals of all triangles incident on each vertex and
// normalizing, giving smooth shading across the caps and walls.
func smoothNormals(vertices []float32, indices []uint32) []float32 {
	numVerts := len(vertices) / 3
	normals := make([]float32, numVerts*3)

	numTris := len(indices) / 3
	for t := 0; t < numTris; t++ {
		i0 := indices[t*3+0]
		i1 := indices[t*3+1]
		i2 := indices[t*3+2]

		ax, ay, az := float64(vertices[i0*3]), float64(vertices[i0*3+1]), float64(vertices[i0*3+2])
		bx, by, bz := float64(vertices[i1*3]), float64(vertices[i1*3+1]), float64(vertices[i1*3+2])
		cx, cy, cz := float64(vertices[i2*3]), float64(vertices[i2*3+1]), float64(vertices[i2*3+2])

		e1x, e1y, e1z := bx-ax, by-ay, bz-az
		e2x, e2y, e2z := cx-ax, cy-ay, cz-az

		// Unnormalized cross product: magnitude doubles as area weighting.
		nx := float32(e1y*e2z - e1z*e2y)
		ny := float32(e1z*e2x - e1x*e2z)
		nz := float32(e1x*e2y - e1y*e2x)

		for _, idx := range []uint32{i0, i1, i2} {
			normals[idx*3+0] += nx
			normals[idx*3+1] += ny
			normals[idx*3+2] += nz
		}
	}

	for i := 0; i < numVerts; i++ {
		nx := float64(normals[i*3+0])
		ny := float64(normals[i*3+1])
		nz := float64(normals[i*3+2])
		length := math.Sqrt(nx*nx + ny*ny + nz*nz)
		if length > 1e-12 {
			normals[i*3+0] = float32(nx / length)
			normals[i*3+1] = float32(ny / length)
			normals[i*3+2] = float32(nz / length)
		}
	}

	return normals
}

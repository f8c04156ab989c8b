// Package models loads meshes and materials and flattens them into
// drawable 2D triangles.
package models

import (
	"cmp"
	"slices"

	"github.com/tepi-engine/tepi/pkg/linear"
	"github.com/tepi-engine/tepi/pkg/render"
)

// Mesh represents an indexed triangle mesh with materials.
type Mesh struct {
	Name      string
	Vertices  []linear.Pos3D
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin linear.Pos3D
	BoundsMax linear.Pos3D
}

// Face represents a triangle face with vertex indices and material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() linear.Pos3D {
	return m.BoundsMin.Lerp(m.BoundsMax, 0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() linear.Vec3D {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:      m.Name,
		Vertices:  slices.Clone(m.Vertices),
		Faces:     slices.Clone(m.Faces),
		Materials: slices.Clone(m.Materials),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
}

// FlatTriangle is a mesh face projected onto the XY plane.
type FlatTriangle struct {
	Triangle render.Triangle
	Material Material
}

// Flatten projects every face onto the XY plane, scaled so the larger of
// the mesh's X and Y extents equals size and centered on center. Faces are
// wound for the rasterizer, degenerate faces are dropped, and the result
// is ordered back to front along Z.
func (m *Mesh) Flatten(center linear.Pos2D, size float64) []FlatTriangle {
	if len(m.Faces) == 0 {
		return nil
	}

	ext := m.Size()
	scale := 1.0
	if span := max(ext.DX, ext.DY); span > 0 {
		scale = size / span
	}
	mid := m.Center()
	project := func(p linear.Pos3D) linear.Pos2D {
		return linear.P2(
			center.X+(p.X-mid.X)*scale,
			center.Y+(p.Y-mid.Y)*scale,
		)
	}

	type faceDepth struct {
		tri FlatTriangle
		z   float64
	}
	out := make([]faceDepth, 0, len(m.Faces))
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]
		tri := render.NewTriangle(project(a), project(b), project(c)).Wound()
		if tri.Area() == 0 {
			continue
		}
		mat := DefaultMaterial()
		if pm := m.GetMaterial(f.Material); pm != nil {
			mat = *pm
		}
		out = append(out, faceDepth{
			tri: FlatTriangle{Triangle: tri, Material: mat},
			z:   (a.Z + b.Z + c.Z) / 3,
		})
	}

	slices.SortStableFunc(out, func(x, y faceDepth) int {
		return cmp.Compare(x.z, y.z)
	})
	result := make([]FlatTriangle, len(out))
	for i, fd := range out {
		result[i] = fd.tri
	}
	return result
}

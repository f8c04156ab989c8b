package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/tepi-engine/tepi/pkg/linear"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// IgnoreMaterials leaves every face on the default material.
	IgnoreMaterials bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{}
}

// LoadGLTF loads a .gltf or .glb file with default options.
func LoadGLTF(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.FromDocument(doc, filepath.Base(path), filepath.Dir(path))
}

// FromDocument converts an already decoded document. Relative texture URIs
// are resolved against dir.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name, dir string) (*Mesh, error) {
	mesh := NewMesh(name)

	if !l.IgnoreMaterials {
		for _, m := range doc.Materials {
			mesh.Materials = append(mesh.Materials, convertMaterial(doc, m, dir))
		}
	}

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Lines and points have no area to fill.
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		material := -1
		if prim.Material != nil && !l.IgnoreMaterials && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
		}

		baseVertex := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{
				V:        [3]int{indices[i], indices[i+1], indices[i+2]},
				Material: material,
			}
			for j, v := range f.V {
				if v < 0 || v >= len(positions) {
					return fmt.Errorf("index %d out of range for %d vertices", v, len(positions))
				}
				f.V[j] = baseVertex + v
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}

	return nil
}

func convertMaterial(doc *gltf.Document, m *gltf.Material, dir string) Material {
	base := [4]float64{1, 1, 1, 1}
	metallic, roughness := 1.0, 1.0
	var texture string
	if pbr := m.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			base = *pbr.BaseColorFactor
		}
		if pbr.MetallicFactor != nil {
			metallic = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			roughness = *pbr.RoughnessFactor
		}
		if pbr.BaseColorTexture != nil {
			texture = textureURI(doc, pbr.BaseColorTexture.Index, dir)
		}
	}

	mat := fromPBR(m.Name, base, metallic, roughness, m.EmissiveFactor)
	mat.TexturePath = texture
	if m.NormalTexture != nil && m.NormalTexture.Index != nil {
		mat.NormalMapPath = textureURI(doc, *m.NormalTexture.Index, dir)
	}
	return mat
}

// textureURI resolves a texture index to an external image path. Images
// embedded in buffers have no path.
func textureURI(doc *gltf.Document, texIdx int, dir string) string {
	if texIdx < 0 || texIdx >= len(doc.Textures) {
		return ""
	}
	src := doc.Textures[texIdx].Source
	if src == nil || *src < 0 || *src >= len(doc.Images) {
		return ""
	}
	img := doc.Images[*src]
	if img.URI == "" || strings.HasPrefix(img.URI, "data:") {
		return ""
	}
	if filepath.IsAbs(img.URI) {
		return img.URI
	}
	return filepath.Join(dir, filepath.FromSlash(img.URI))
}

// readPositions reads a float VEC3 accessor.
func readPositions(doc *gltf.Document, accessorIdx int) ([]linear.Pos3D, error) {
	accessor, data, start, stride, err := accessorBytes(doc, accessorIdx, 12)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	result := make([]linear.Pos3D, accessor.Count)
	for i := range result {
		off := start + i*stride
		result[i] = linear.Pos3D{
			X: float64(readFloat32(data[off:])),
			Y: float64(readFloat32(data[off+4:])),
			Z: float64(readFloat32(data[off+8:])),
		}
	}
	return result, nil
}

// readIndices reads index data from a scalar accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	var size int
	if accessorIdx >= 0 && accessorIdx < len(doc.Accessors) {
		switch doc.Accessors[accessorIdx].ComponentType {
		case gltf.ComponentUbyte:
			size = 1
		case gltf.ComponentUshort:
			size = 2
		case gltf.ComponentUint:
			size = 4
		}
	}
	if size == 0 {
		return nil, fmt.Errorf("accessor %d: unsupported index type", accessorIdx)
	}

	accessor, data, start, stride, err := accessorBytes(doc, accessorIdx, size)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	result := make([]int, accessor.Count)
	for i := range result {
		off := start + i*stride
		switch size {
		case 1:
			result[i] = int(data[off])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return result, nil
}

// accessorBytes locates an accessor's backing bytes and checks that count
// elements of elemSize fit.
func accessorBytes(doc *gltf.Document, accessorIdx, elemSize int) (*gltf.Accessor, []byte, int, int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, nil, 0, 0, fmt.Errorf("accessor %d does not exist", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.BufferView == nil {
		return nil, nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, nil, 0, 0, fmt.Errorf("buffer view %d does not exist", *accessor.BufferView)
	}
	view := doc.BufferViews[*accessor.BufferView]
	if view.Buffer >= len(doc.Buffers) {
		return nil, nil, 0, 0, fmt.Errorf("buffer %d does not exist", view.Buffer)
	}
	data := doc.Buffers[view.Buffer].Data
	if data == nil {
		return nil, nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	start := view.ByteOffset + accessor.ByteOffset
	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if accessor.Count > 0 {
		end := start + (accessor.Count-1)*stride + elemSize
		if end > len(data) {
			return nil, nil, 0, 0, fmt.Errorf("accessor reads past buffer end (%d > %d)", end, len(data))
		}
	}
	return accessor, data, start, stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

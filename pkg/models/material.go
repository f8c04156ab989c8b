package models

import "github.com/tepi-engine/tepi/pkg/render"

// Material describes how a surface should look. The rasterizer only
// consumes Color; the remaining properties travel with the node so that
// importers and tools can round-trip them.
type Material struct {
	Name          string
	Color         render.Color
	TexturePath   string  // Optional base color texture
	NormalMapPath string  // Optional normal map
	Reflectivity  float64 // 0 = matte, 1 = mirror
	Transparency  float64 // 0 = opaque, 1 = invisible
	Specularity   float64 // 0 = rough, 1 = glossy
	Emission      float64 // 0 = unlit, 1 = fully emissive
}

// DefaultMaterial returns an opaque white material.
func DefaultMaterial() Material {
	return Material{Name: "default", Color: render.ColorWhite}
}

// Opaque reports whether the material hides what is behind it.
func (m Material) Opaque() bool {
	return m.Transparency <= 0
}

// fromPBR maps glTF metallic-roughness factors onto a Material.
func fromPBR(name string, base [4]float64, metallic, roughness float64, emissive [3]float64) Material {
	return Material{
		Name:         name,
		Color:        render.FromRGB(unit8(base[0]), unit8(base[1]), unit8(base[2])),
		Reflectivity: clamp01(metallic),
		Transparency: 1 - clamp01(base[3]),
		Specularity:  1 - clamp01(roughness),
		Emission:     clamp01(max(emissive[0], emissive[1], emissive[2])),
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func unit8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

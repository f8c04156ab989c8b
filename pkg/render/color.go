package render

import "image/color"

// Color is a packed pixel value. The framebuffer stores 0x00RRGGBB as
// produced by FromRGB.
type Color uint32

// Colors for convenience
var (
	ColorBlack    = FromRGB(0, 0, 0)
	ColorWhite    = FromRGB(255, 255, 255)
	ColorRed      = FromRGB(255, 0, 0)
	ColorGreen    = FromRGB(0, 255, 0)
	ColorBlue     = FromRGB(0, 0, 255)
	ColorYellow   = FromRGB(255, 255, 0)
	ColorCyan     = FromRGB(0, 255, 255)
	ColorMagenta  = FromRGB(255, 0, 255)
	ColorGray     = FromRGB(128, 128, 128)
	ColorCharcoal = FromRGB(20, 20, 20)
)

// FromRGB packs 8-bit channels as r<<16 | g<<8 | b.
func FromRGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// FromRGBA packs 8-bit channels as r<<24 | g<<16 | b<<8 | a.
// Note the layout differs from FromRGB; the framebuffer expects FromRGB.
func FromRGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// RGB unpacks a FromRGB value.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// UnpackRGBA unpacks a FromRGBA value.
func (c Color) UnpackRGBA() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// NRGBA converts a framebuffer pixel to an opaque image/color value.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.RGB()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

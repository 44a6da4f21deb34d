// Package render is a small software rasterizer: textures, a framebuffer,
// a perspective camera and a triangle rasterizer with depth testing.
package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	ColorBlack = RGB(0, 0, 0)
	ColorWhite = RGB(255, 255, 255)
	ColorRed   = RGB(255, 0, 0)
	ColorGreen = RGB(0, 255, 0)
	ColorBlue  = RGB(0, 0, 255)
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// RGBA creates a color with alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// FromColor converts any image/color value (alpha premultiplied) to a Color.
func FromColor(c color.Color) Color {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{nc.R, nc.G, nc.B, nc.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{c.R, c.G, c.B, c.A}.RGBA()
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses "#rgb", "#rrggbb" or "r,g,b" into an opaque color.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	var r, g, b uint8
	switch {
	case strings.HasPrefix(s, "#") && len(s) == 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
	case strings.HasPrefix(s, "#") && len(s) == 4:
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	case strings.Count(s, ",") == 2:
		if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
	default:
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb, #rgb or r,g,b", s)
	}
	return RGB(r, g, b), nil
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// MultiplyColor scales the RGB channels by f, clamping to 255. Alpha is kept.
func MultiplyColor(c Color, f float64) Color {
	return Color{
		clamp8(float64(c.R) * f),
		clamp8(float64(c.G) * f),
		clamp8(float64(c.B) * f),
		c.A,
	}
}

// ModulateColor multiplies two colors channel by channel (texture × tint).
func ModulateColor(a, b Color) Color {
	return Color{
		uint8(uint16(a.R) * uint16(b.R) / 255),
		uint8(uint16(a.G) * uint16(b.G) / 255),
		uint8(uint16(a.B) * uint16(b.B) / 255),
		uint8(uint16(a.A) * uint16(b.A) / 255),
	}
}

func lerpColor(a, b Color, t float64) Color {
	return Color{
		uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}

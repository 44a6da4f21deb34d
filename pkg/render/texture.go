package render

import (
	"image"
	"math"
)

// WrapMode controls how UVs outside [0, 1] are resolved.
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// FilterMode controls texel interpolation.
type FilterMode int

const (
	FilterBilinear FilterMode = iota
	FilterNearest
)

// Texture is an RGBA image sampled with UV coordinates whose origin is the
// bottom-left corner (V=1 is the first image row).
type Texture struct {
	Width, Height int
	Pixels        []Color
	WrapU, WrapV  WrapMode
	FilterMode    FilterMode
}

// NewTexture creates a transparent black texture.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// NewSolidTexture creates a 1x1 texture of a single color.
func NewSolidTexture(c Color) *Texture {
	tex := NewTexture(1, 1)
	tex.Pixels[0] = c
	return tex
}

// NewCheckerTexture creates a checkerboard with square cells of cellSize texels.
func NewCheckerTexture(width, height, cellSize int, a, b Color) *Texture {
	tex := NewTexture(width, height)
	cellSize = max(1, cellSize)
	for y := range height {
		for x := range width {
			if (x/cellSize+y/cellSize)%2 == 0 {
				tex.Pixels[y*width+x] = a
			} else {
				tex.Pixels[y*width+x] = b
			}
		}
	}
	return tex
}

// TextureFromImage copies an image into a texture.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())
	for y := range tex.Height {
		for x := range tex.Width {
			tex.Pixels[y*tex.Width+x] = FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return tex
}

// SetPixel sets the texel at (x, y); out of range writes are ignored.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns the texel at (x, y), or transparent black out of range.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

func wrapCoord(c float64, mode WrapMode) float64 {
	if mode == WrapClamp {
		return math.Max(0, math.Min(1, c))
	}
	return c - math.Floor(c)
}

func wrapIndex(i, n int, mode WrapMode) int {
	if mode == WrapClamp {
		return max(0, min(n-1, i))
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Sample returns the texture color at (u, v).
func (t *Texture) Sample(u, v float64) Color {
	if t.Width == 0 || t.Height == 0 {
		return ColorWhite
	}
	u = wrapCoord(u, t.WrapU)
	v = wrapCoord(v, t.WrapV)

	// Flip V: image row 0 is the top of the texture
	fx := u * float64(t.Width)
	fy := (1 - v) * float64(t.Height)

	if t.FilterMode == FilterNearest {
		x := wrapIndex(int(fx), t.Width, WrapClamp)
		y := wrapIndex(int(fy), t.Height, WrapClamp)
		return t.Pixels[y*t.Width+x]
	}

	// Bilinear around texel centers
	fx -= 0.5
	fy -= 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)
	x1 := wrapIndex(x0+1, t.Width, t.WrapU)
	y1 := wrapIndex(y0+1, t.Height, t.WrapV)
	x0 = wrapIndex(x0, t.Width, t.WrapU)
	y0 = wrapIndex(y0, t.Height, t.WrapV)

	top := lerpColor(t.Pixels[y0*t.Width+x0], t.Pixels[y0*t.Width+x1], tx)
	bottom := lerpColor(t.Pixels[y1*t.Width+x0], t.Pixels[y1*t.Width+x1], tx)
	return lerpColor(top, bottom, ty)
}

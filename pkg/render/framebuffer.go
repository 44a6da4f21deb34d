package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Framebuffer is the color target the rasterizer draws into.
type Framebuffer struct {
	Width, Height int
	Pixels        []Color
	BG            color.RGBA
}

// NewFramebuffer creates a framebuffer cleared to transparent black.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(1, width), max(1, height)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Resize reallocates the buffer; contents are discarded.
func (fb *Framebuffer) Resize(width, height int) {
	width, height = max(1, width), max(1, height)
	if width == fb.Width && height == fb.Height {
		return
	}
	fb.Width, fb.Height = width, height
	fb.Pixels = make([]Color, width*height)
}

// Clear fills the buffer with the background color.
func (fb *Framebuffer) Clear() {
	bg := Color{fb.BG.R, fb.BG.G, fb.BG.B, 255}
	for i := range fb.Pixels {
		fb.Pixels[i] = bg
	}
}

// ClearTexture fills the buffer with tex stretched over it, scaled by
// level (0..1) so a backdrop stays dim behind the scene.
func (fb *Framebuffer) ClearTexture(tex *Texture, level float64) {
	if tex == nil {
		fb.Clear()
		return
	}
	for y := range fb.Height {
		v := 1 - (float64(y)+0.5)/float64(fb.Height)
		for x := range fb.Width {
			u := (float64(x) + 0.5) / float64(fb.Width)
			c := MultiplyColor(tex.Sample(u, v), level)
			c.A = 255
			fb.Pixels[y*fb.Width+x] = c
		}
	}
}

// SetPixel writes a pixel; out of range writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel reads a pixel, returning transparent black out of range.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// ToImage converts the framebuffer to an opaque RGBA image.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, c := range fb.Pixels {
		o := i * 4
		img.Pix[o] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = 255
	}
	return img
}

// SavePNG writes the framebuffer to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

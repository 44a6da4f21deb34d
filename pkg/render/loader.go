package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // texture formats
	_ "image/png"
	"os"
	"path/filepath"

	"fortio.org/log"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadTexture reads and decodes an image file into a texture.
func LoadTexture(path string) (*Texture, error) {
	return loadTexture(path, 0)
}

func loadTexture(path string, maxSize int) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}
	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("%s: not an image", path)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b := img.Bounds()
	if maxSize > 0 && (b.Dx() > maxSize || b.Dy() > maxSize) {
		scale := float64(maxSize) / float64(max(b.Dx(), b.Dy()))
		w := max(1, int(float64(b.Dx())*scale))
		h := max(1, int(float64(b.Dy())*scale))
		log.LogVf("Downscaling %s texture %s from %dx%d to %dx%d", format, path, b.Dx(), b.Dy(), w, h)
		img = transform.Resize(img, w, h, transform.Linear)
	}
	return TextureFromImage(img), nil
}

// TextureLoader resolves texture identifiers to textures, once each.
//
// Load never fails: a texture that cannot be read or decoded is logged and
// replaced by a flat fallback color.
type TextureLoader struct {
	Dir     string // base directory for relative identifiers
	MaxSize int    // downscale textures larger than this (0 = never)

	cache map[string]*Texture
}

// NewTextureLoader creates a loader rooted at dir ("~" is expanded).
func NewTextureLoader(dir string, maxSize int) *TextureLoader {
	if expanded, err := homedir.Expand(dir); err == nil {
		dir = expanded
	} else {
		log.Warnf("Cannot expand texture dir %q: %v", dir, err)
	}
	return &TextureLoader{
		Dir:     dir,
		MaxSize: maxSize,
		cache:   make(map[string]*Texture),
	}
}

// Resolve returns the file path an identifier refers to.
func (l *TextureLoader) Resolve(id string) string {
	if expanded, err := homedir.Expand(id); err == nil {
		id = expanded
	}
	if filepath.IsAbs(id) || l.Dir == "" {
		return id
	}
	return filepath.Join(l.Dir, id)
}

// Load returns the texture for id, or a solid fallback texture when id is
// empty or unusable.
func (l *TextureLoader) Load(id string, fallback Color) *Texture {
	key := id + "|" + fallback.Hex()
	if tex, ok := l.cache[key]; ok {
		return tex
	}
	tex := l.load(id, fallback)
	l.cache[key] = tex
	return tex
}

func (l *TextureLoader) load(id string, fallback Color) *Texture {
	if fallback == (Color{}) {
		fallback = RGB(200, 200, 200)
	}
	if id == "" {
		return NewSolidTexture(fallback)
	}
	path := l.Resolve(id)
	tex, err := loadTexture(path, l.MaxSize)
	if err != nil {
		log.Warnf("Texture %q unavailable, using %s: %v", id, fallback.Hex(), err)
		return NewSolidTexture(fallback)
	}
	tex.WrapU, tex.WrapV = WrapClamp, WrapClamp
	log.LogVf("Loaded texture %s (%dx%d)", path, tex.Width, tex.Height)
	return tex
}

// Len returns the number of cached textures.
func (l *TextureLoader) Len() int {
	return len(l.cache)
}

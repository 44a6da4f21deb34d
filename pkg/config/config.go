// Package config loads solar system descriptions from TOML.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// ErrNoBodies is returned by Validate when a system has no bodies.
var ErrNoBodies = errors.New("config: system has no bodies")

//go:embed systems/solar.toml
var defaultSystem []byte

// System describes everything needed to build and view a solar system.
type System struct {
	Name       string `toml:"name"`
	Textures   string `toml:"textures"`   // texture directory, relative to the file
	Background string `toml:"background"` // optional backdrop texture
	Camera     Camera `toml:"camera"`
	Lights     Lights `toml:"lights"`
	Bodies     []Body `toml:"body"`
}

// Camera is the initial viewpoint.
type Camera struct {
	Position [3]float64 `toml:"position"`
	Target   [3]float64 `toml:"target"`
	FOV      float64    `toml:"fov"` // vertical, degrees
	Near     float64    `toml:"near"`
	Far      float64    `toml:"far"`
}

// Lights is the scene's light setup.
type Lights struct {
	Ambient          string       `toml:"ambient"`
	AmbientIntensity float64      `toml:"ambient_intensity"`
	Points           []PointLight `toml:"point"`
}

// PointLight is an omnidirectional light.
type PointLight struct {
	Position  [3]float64 `toml:"position"`
	Color     string     `toml:"color"`
	Intensity float64    `toml:"intensity"`
	Distance  float64    `toml:"distance"`
	Decay     float64    `toml:"decay"`
}

// Body is one star or planet.
type Body struct {
	Kind    string  `toml:"kind"` // "star" or "planet"
	Name    string  `toml:"name"`
	Size    float64 `toml:"size"`
	Texture string  `toml:"texture"`
	Offset  float64 `toml:"offset"`
	Spin    float64 `toml:"spin"`
	Orbit   float64 `toml:"orbit"`
	Color   string  `toml:"color,omitempty"`
	Ring    *Ring   `toml:"ring,omitempty"`
}

// Ring is a planetary ring. Outer may be omitted.
type Ring struct {
	Texture string  `toml:"texture"`
	Inner   float64 `toml:"inner"`
	Outer   float64 `toml:"outer,omitempty"`
}

// Default returns the built-in sun and nine planets.
func Default() *System {
	sys, err := Parse(defaultSystem)
	if err != nil {
		panic(fmt.Sprintf("embedded system: %v", err))
	}
	return sys
}

// Parse decodes a TOML system description. Unknown keys are rejected.
func Parse(data []byte) (*System, error) {
	var sys System
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sys); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("parse system at %d:%d: %w", row, col, err)
		}
		return nil, fmt.Errorf("parse system: %w", err)
	}
	sys.applyDefaults()
	return &sys, nil
}

// Load reads and validates a system file. Relative texture directories are
// resolved against the file's directory.
func Load(path string) (*System, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read system: %w", err)
	}
	sys, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := sys.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sys.Textures != "" && !filepath.IsAbs(sys.Textures) && !strings.HasPrefix(sys.Textures, "~") {
		sys.Textures = filepath.Join(filepath.Dir(path), sys.Textures)
	}
	return sys, nil
}

// Encode writes sys as TOML.
func (s *System) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(s)
}

func (s *System) applyDefaults() {
	c := &s.Camera
	if c.Position == [3]float64{} {
		c.Position = [3]float64{-90, 140, 140}
	}
	if c.FOV <= 0 {
		c.FOV = 45
	}
	if c.Near <= 0 {
		c.Near = 0.1
	}
	if c.Far <= c.Near {
		c.Far = 1000
	}
	if s.Lights.Ambient == "" {
		s.Lights.Ambient = "#333333"
	}
	if s.Lights.AmbientIntensity == 0 {
		s.Lights.AmbientIntensity = 1
	}
}

// Validate checks that the system can be built.
func (s *System) Validate() error {
	if len(s.Bodies) == 0 {
		return ErrNoBodies
	}
	var errs []error
	if _, err := render.ParseColor(s.Lights.Ambient); err != nil {
		errs = append(errs, fmt.Errorf("lights.ambient: %w", err))
	}
	for i, p := range s.Lights.Points {
		if p.Color == "" {
			continue
		}
		if _, err := render.ParseColor(p.Color); err != nil {
			errs = append(errs, fmt.Errorf("lights.point[%d]: %w", i, err))
		}
	}
	for i, b := range s.Bodies {
		switch strings.ToLower(strings.TrimSpace(b.Kind)) {
		case "", "star", "sun", "planet":
		default:
			errs = append(errs, fmt.Errorf("body[%d] %q: unknown kind %q", i, b.Name, b.Kind))
		}
		if b.Color != "" {
			if _, err := render.ParseColor(b.Color); err != nil {
				errs = append(errs, fmt.Errorf("body[%d] %q: %w", i, b.Name, err))
			}
		}
		if math.IsNaN(b.Size) || math.IsNaN(b.Offset) || math.IsNaN(b.Spin) || math.IsNaN(b.Orbit) {
			errs = append(errs, fmt.Errorf("body[%d] %q: NaN parameter", i, b.Name))
		}
	}
	return errors.Join(errs...)
}

// Apply configures cam from the camera section.
func (c Camera) Apply(cam *render.Camera) {
	cam.SetFOV(c.FOV * math.Pi / 180)
	cam.SetClipPlanes(c.Near, c.Far)
	cam.SetPosition(vec3(c.Position))
	cam.LookAt(vec3(c.Target))
}

// Lighting converts the lights section. Invalid colors fall back to white.
func (l Lights) Lighting() render.Lighting {
	ambient, err := render.ParseColor(l.Ambient)
	if err != nil {
		ambient = render.ColorWhite
	}
	out := render.Lighting{Ambient: ambient, AmbientLevel: l.AmbientIntensity}
	for _, p := range l.Points {
		c, err := render.ParseColor(p.Color)
		if err != nil {
			c = render.ColorWhite
		}
		out.Points = append(out.Points, render.PointLight{
			Position:  vec3(p.Position),
			Color:     c,
			Intensity: p.Intensity,
			Distance:  p.Distance,
			Decay:     p.Decay,
		})
	}
	return out
}

// ColorValue returns the body's fallback color, or the zero Color if unset or invalid.
func (b Body) ColorValue() render.Color {
	if b.Color == "" {
		return render.Color{}
	}
	c, err := render.ParseColor(b.Color)
	if err != nil {
		return render.Color{}
	}
	return c
}

func vec3(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}

package main

import (
	"fortio.org/log"
	"github.com/taigrr/orrery/pkg/config"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
	"github.com/taigrr/orrery/pkg/solar"
)

// backdropLevel dims the background texture behind the bodies.
const backdropLevel = 0.6

// RenderMode controls how bodies are drawn.
type RenderMode int

const (
	RenderModeTextured  RenderMode = iota // Textured with Gouraud shading
	RenderModeWireframe                   // Wireframe only
)

// ViewState holds all view-related settings (UI state, not library code).
type ViewState struct {
	TextureEnabled bool       // Whether to show textures
	RenderMode     RenderMode // Current render mode
	ShowHUD        bool       // Whether to show the HUD overlay
	Paused         bool       // Whether animation is stopped
}

// NewViewState creates default view state.
func NewViewState() *ViewState {
	return &ViewState{
		TextureEnabled: true,
		RenderMode:     RenderModeTextured,
		ShowHUD:        true,
	}
}

// world is everything needed to draw one system: the registry, its camera
// and lights, and the render target.
type world struct {
	sys        *config.System
	tex        *render.TextureLoader
	reg        *solar.Registry
	cam        *render.Camera
	lights     render.Lighting
	background *render.Texture
	fb         *render.Framebuffer
	rast       *render.Rasterizer
}

// newWorld builds the registry described by sys and a width×height render target.
func newWorld(sys *config.System, tex *render.TextureLoader, width, height int) *world {
	w := &world{
		sys:    sys,
		tex:    tex,
		reg:    solar.Build(sys, textureSource(tex)),
		cam:    render.NewCamera(),
		lights: sys.Lights.Lighting(),
		fb:     render.NewFramebuffer(width, height),
	}
	sys.Camera.Apply(w.cam)
	w.cam.SetAspectRatio(float64(w.fb.Width) / float64(w.fb.Height))
	if sys.Background != "" && tex != nil {
		w.background = tex.Load(sys.Background, render.RGB(0, 0, 0))
	}
	w.rast = render.NewRasterizer(w.cam, w.fb)
	log.Infof("Built %q: %d bodies, %d triangles", sys.Name, w.reg.Len(), w.reg.Triangles())
	return w
}

// textureSource keeps a nil loader a nil interface, so bodies use flat colors.
func textureSource(tex *render.TextureLoader) solar.TextureSource {
	if tex == nil {
		return nil
	}
	return tex
}

// resize follows the output size and keeps the camera aspect in step.
func (w *world) resize(width, height int) {
	w.fb.Resize(width, height)
	w.cam.SetAspectRatio(float64(w.fb.Width) / float64(w.fb.Height))
}

// reload swaps in a new system, carrying body angles and the container
// position over from the current registry.
func (w *world) reload(sys *config.System, tex *render.TextureLoader) {
	snap := w.reg.Snapshot()
	w.sys = sys
	w.tex = tex
	w.reg = solar.Build(sys, textureSource(tex))
	restored := w.reg.RestoreAngles(snap)
	w.reg.UpdatePosition(snap.Position)
	w.lights = sys.Lights.Lighting()
	w.background = nil
	if sys.Background != "" && tex != nil {
		w.background = tex.Load(sys.Background, render.RGB(0, 0, 0))
	}
	log.Infof("Reloaded %q: %d bodies, %d kept their angles", sys.Name, w.reg.Len(), restored)
}

// draw renders the current state into the framebuffer.
func (w *world) draw(state *ViewState) int {
	if state.TextureEnabled && state.RenderMode != RenderModeWireframe && w.background != nil {
		w.fb.ClearTexture(w.background, backdropLevel)
	} else {
		w.fb.Clear()
	}
	w.rast.ClearDepth()
	return scene.Draw(w.rast, w.reg.Root(), scene.DrawOptions{
		Lights:     w.lights,
		Wireframe:  state.RenderMode == RenderModeWireframe,
		Untextured: !state.TextureEnabled,
	})
}

package main

import (
	"context"
	"fmt"
	"time"

	"fortio.org/log"
	"fortio.org/terminal/ansipixels"
	"fortio.org/terminal/ansipixels/tcolor"
	"github.com/taigrr/orrery/pkg/config"
	"github.com/taigrr/orrery/pkg/controls"
	"github.com/taigrr/orrery/pkg/metrics"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/solar"
)

// zoomStep is the distance factor for one wheel notch or key press.
const zoomStep = 1.1

// HUD renders an overlay with system info and mode status.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	state     *ViewState
}

// NewHUD creates a new HUD.
func NewHUD(state *ViewState) *HUD {
	return &HUD{fpsTime: time.Now(), state: state}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Draw renders the HUD overlay to the terminal using ansipixels.
func (h *HUD) Draw(ap *ansipixels.AnsiPixels, w *world, ticks int, selected *solar.Body) {
	if selected != nil {
		ap.WriteRight(ap.H-1, "%s%s%s", tcolor.BrightYellow.Foreground(), describe(selected), tcolor.Reset)
	}
	if !h.state.ShowHUD {
		return
	}

	// Top: FPS, system name and tick, body count
	ap.WriteAt(0, 0, tcolor.Green.Foreground()+"%.0f FPS "+tcolor.Reset, h.fps)
	ap.WriteCentered(0, "%s - tick %d", w.sys.Name, ticks)
	ap.WriteRight(0, tcolor.Cyan.Foreground()+"%d bodies %d polys"+tcolor.Reset, w.reg.Len(), w.reg.Triangles())

	// Bottom: mode indicators
	checkTex := "[ ]"
	if h.state.TextureEnabled && h.state.RenderMode != RenderModeWireframe {
		checkTex = "[✓]"
	}
	checkWire := "[ ]"
	if h.state.RenderMode == RenderModeWireframe {
		checkWire = "[✓]"
	}
	checkPause := "[ ]"
	if h.state.Paused {
		checkPause = "[✓]"
	}
	ap.WriteAt(0, ap.H-1, "%s Texture  %s X-Ray (wireframe)  %s Paused", checkTex, checkWire, checkPause)
}

// describe is the one-line summary of a selected body.
func describe(b *solar.Body) string {
	s := fmt.Sprintf("%s (%s) r=%.1f d=%.0f", b.Name, b.Kind, b.Size, b.Offset)
	if b.Ring != nil {
		s += " ringed"
	}
	return s
}

func run(ctx context.Context, opts *options) int {
	sys, err := loadSystem(opts)
	if err != nil {
		return log.FErrf("load system: %v", err)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var collector *metrics.Collector
	if opts.metricsAddr != "" {
		collector = metrics.NewCollector()
		go func() {
			if err := collector.Serve(ctx, opts.metricsAddr); err != nil {
				log.Errf("%v", err)
			}
		}()
	}

	reloads := make(chan *config.System, 1)
	if opts.watch {
		if opts.configPath == "" {
			log.Warnf("--watch needs --config, ignoring")
		} else {
			go func() {
				if err := config.Watch(ctx, opts.configPath, reloads); err != nil {
					log.Errf("watch: %v", err)
				}
			}()
		}
	}

	// Initialize ansipixels for terminal rendering
	ap := ansipixels.NewAnsiPixels(float64(opts.targetFPS))
	if err = ap.Open(); err != nil {
		return log.FErrf("open ansipixels: %v", err)
	}
	defer func() {
		ap.ShowCursor()
		ap.MouseTrackingOff()
		ap.Out.Flush()
		ap.Restore()
	}()
	ap.SyncBackgroundColor()
	ap.MouseTrackingOn()
	ap.HideCursor()

	// Using 2x height for half-block characters
	w := newWorld(sys, newTextureLoader(sys, opts), ap.W, ap.H*2)
	w.fb.BG.R, w.fb.BG.G, w.fb.BG.B, w.fb.BG.A = ap.Background.R, ap.Background.G, ap.Background.B, 255
	if opts.bgColor != "" {
		if err = setBackground(w.fb, opts.bgColor); err != nil {
			return log.FErrf("%v", err)
		}
	}
	if collector != nil {
		collector.SetBodies(w.reg.Len())
	}

	viewState := NewViewState()
	hud := NewHUD(viewState)
	orbit := controls.NewOrbit(w.cam.Position, w.cam.Target, opts.targetFPS)

	var selected *solar.Body
	ticks := 0
	step := false
	pressX, pressY, dragged := 0, 0, false
	lastMouseX, lastMouseY := 0, 0

	ap.OnMouse = func() {
		switch {
		case ap.MouseWheelUp():
			orbit.Zoom(1 / zoomStep)
		case ap.MouseWheelDown():
			orbit.Zoom(zoomStep)
		case ap.LeftClick():
			pressX, pressY, dragged = ap.Mx, ap.My, false
		case ap.LeftDrag():
			orbit.Drag(float64(ap.Mx-lastMouseX), float64(ap.My-lastMouseY))
			dragged = dragged || ap.Mx != pressX || ap.My != pressY
		case ap.MouseRelease():
			if !dragged {
				nx, ny := render.ScreenToNDC(ap.Mx, ap.My, ap.W, ap.H)
				body, ok := solar.Pick(w.reg, w.cam, nx, ny)
				if collector != nil {
					collector.RecordPick(ok)
				}
				selected = body
				if ok {
					p := body.WorldPosition()
					log.LogVf("Picked %s at (%.1f, %.1f, %.1f)", body, p.X, p.Y, p.Z)
				}
			}
		}
		lastMouseX, lastMouseY = ap.Mx, ap.My
	}
	// Update framebuffer and camera aspect ratio on terminal resize
	ap.OnResize = func() error {
		w.resize(ap.W, ap.H*2)
		return nil
	}

	err = ap.FPSTicks(func() bool {
		start := time.Now()
		// Process keyboard input from ap.Data
		for _, b := range ap.Data {
			switch b {
			case ' ':
				viewState.Paused = !viewState.Paused
			case '.':
				step = viewState.Paused
			case 'r', 'R':
				orbit.Reset()
			case 't', 'T':
				viewState.TextureEnabled = !viewState.TextureEnabled
			case 'x', 'X':
				if viewState.RenderMode == RenderModeWireframe {
					viewState.RenderMode = RenderModeTextured
				} else {
					viewState.RenderMode = RenderModeWireframe
				}
			case '?':
				viewState.ShowHUD = !viewState.ShowHUD
			case '+', '=':
				orbit.Zoom(1 / zoomStep)
			case '-', '_':
				orbit.Zoom(zoomStep)
			case 'q', 'Q', 27: // Escape
				return false
			case 3, 4: // Ctrl-C, Ctrl-D
				return false
			}
		}

		select {
		case next := <-reloads:
			if opts.texturesDir != "" {
				next.Textures = opts.texturesDir
			}
			w.reload(next, newTextureLoader(next, opts))
			selected = nil
			if collector != nil {
				collector.SetBodies(w.reg.Len())
			}
		default:
		}

		if !viewState.Paused || step {
			w.reg.AnimateAll()
			ticks++
			step = false
			if collector != nil {
				collector.RecordTick()
			}
		}

		orbit.Update()
		orbit.Apply(w.cam)
		w.draw(viewState)

		ap.ClearScreen()
		if err = ap.ShowScaledImage(w.fb.ToImage()); err != nil {
			log.Errf("show image: %v", err)
			return false
		}
		hud.UpdateFPS()
		hud.Draw(ap, w, ticks, selected)
		if collector != nil {
			collector.RecordFrame(time.Since(start))
		}
		return true // continue running
	})
	if err != nil {
		return log.FErrf("main loop: %v", err)
	}
	return 0
}

// orrery - Terminal Solar System Viewer
// Watch the sun and planets spin and orbit in your terminal.
//
// Controls:
//
//	Mouse drag  - Orbit the camera
//	Scroll      - Zoom in/out
//	Click       - Select a body
//	Space       - Pause/resume animation
//	.           - Single step while paused
//	R           - Reset camera
//	T           - Toggle textures on/off
//	X           - Toggle wireframe mode (x-ray)
//	?           - Toggle HUD overlay (FPS, system, body count, modes)
//	+/-         - Adjust zoom
//	Esc/Q       - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"fortio.org/log"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/orrery/pkg/config"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
	"github.com/taigrr/orrery/pkg/solar"
)

var version = "dev"

// options are the flags shared by every command.
type options struct {
	configPath  string
	texturesDir string
	maxTexture  int
	logLevel    string

	// viewer
	targetFPS   int
	bgColor     string
	watch       bool
	metricsAddr string

	// headless
	pngOut string
	glbOut string
	ticks  int
	width  int
	height int
	dump   bool
}

func main() {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "orrery",
		Short: "Terminal Solar System Viewer",
		Long: `orrery - Terminal Solar System Viewer

Watch the sun and planets spin and orbit in your terminal.

Controls:
  Mouse drag  - Orbit the camera
  Scroll      - Zoom in/out
  Click       - Select a body
  Space       - Pause/resume
  .           - Step while paused
  R           - Reset camera
  T           - Toggle textures
  X           - Toggle wireframe
  ?           - Toggle HUD overlay
  Esc/Q       - Quit`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := log.SetLogLevelStr(opts.logLevel); err != nil {
				return fmt.Errorf("log level %q: %w", opts.logLevel, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if code := run(cmd.Context(), opts); code != 0 {
				return fmt.Errorf("viewer exited with code %d", code)
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "System file (TOML); default is the built-in solar system")
	pf.StringVar(&opts.texturesDir, "textures", "", "Texture directory (overrides the system file)")
	pf.IntVar(&opts.maxTexture, "max-texture", 512, "Downscale textures larger than this many pixels (0 = never)")
	pf.StringVar(&opts.logLevel, "loglevel", "info", "Log level (debug, verbose, info, warning, error)")

	cmd.Flags().IntVar(&opts.targetFPS, "fps", 30, "Target FPS")
	cmd.Flags().StringVar(&opts.bgColor, "bg", "", "Background color (#rrggbb or R,G,B)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reload the system file when it changes")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Display the configured bodies",
		Long:  "Display every body of the system with its kind, size, orbit offset, rates and ring.",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runInfo(opts)
		},
	}
	infoCmd.Flags().BoolVar(&opts.dump, "toml", false, "Print the system as TOML instead")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runRender(opts)
		},
	}
	renderCmd.Flags().StringVarP(&opts.pngOut, "out", "o", "orrery.png", "Output PNG path")
	renderCmd.Flags().IntVar(&opts.width, "width", 640, "Image width in pixels")
	renderCmd.Flags().IntVar(&opts.height, "height", 360, "Image height in pixels")
	renderCmd.Flags().IntVar(&opts.ticks, "ticks", 0, "Animation ticks to apply before rendering")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the scene graph as binary glTF",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runExport(opts)
		},
	}
	exportCmd.Flags().StringVarP(&opts.glbOut, "out", "o", "orrery.glb", "Output GLB path")
	exportCmd.Flags().IntVar(&opts.ticks, "ticks", 0, "Animation ticks to apply before exporting")

	cmd.AddCommand(infoCmd, renderCmd, exportCmd)

	if err := fang.Execute(context.Background(), cmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// loadSystem returns the configured system or the built-in one.
func loadSystem(opts *options) (*config.System, error) {
	var sys *config.System
	if opts.configPath == "" {
		sys = config.Default()
	} else {
		var err error
		if sys, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}
	if opts.texturesDir != "" {
		sys.Textures = opts.texturesDir
	}
	return sys, nil
}

func newTextureLoader(sys *config.System, opts *options) *render.TextureLoader {
	return render.NewTextureLoader(sys.Textures, opts.maxTexture)
}

func runInfo(opts *options) error {
	sys, err := loadSystem(opts)
	if err != nil {
		return err
	}
	if opts.dump {
		return sys.Encode(os.Stdout)
	}

	reg := solar.Build(sys, nil)
	fmt.Printf("System:     %s\n", sys.Name)
	fmt.Printf("Textures:   %s\n", sys.Textures)
	fmt.Printf("Bodies:     %d\n", reg.Len())
	fmt.Printf("Triangles:  %d\n", reg.Triangles())
	fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSIZE\tOFFSET\tSPIN\tORBIT\tTEXTURE\tRING")
	for _, b := range reg.Bodies() {
		ring := "-"
		if b.Ring != nil {
			ring = fmt.Sprintf("%s %.1f..%.1f", b.Ring.Texture, b.Ring.Inner, b.Ring.Outer)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%g\t%g\t%s\t%s\n",
			b.Name, b.Kind, b.Size, b.Offset, b.SpinRate, b.OrbitRate, b.Texture, ring)
	}
	return tw.Flush()
}

func runRender(opts *options) error {
	sys, err := loadSystem(opts)
	if err != nil {
		return err
	}
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("invalid size %dx%d", opts.width, opts.height)
	}
	w := newWorld(sys, newTextureLoader(sys, opts), opts.width, opts.height)
	if opts.bgColor != "" {
		if err := setBackground(w.fb, opts.bgColor); err != nil {
			return err
		}
	}
	for range opts.ticks {
		w.reg.AnimateAll()
	}
	w.draw(NewViewState())
	if err := w.fb.SavePNG(opts.pngOut); err != nil {
		return err
	}
	log.Infof("Wrote %s (%dx%d, %d ticks)", opts.pngOut, opts.width, opts.height, opts.ticks)
	return nil
}

func runExport(opts *options) error {
	sys, err := loadSystem(opts)
	if err != nil {
		return err
	}
	reg := solar.Build(sys, nil)
	for range opts.ticks {
		reg.AnimateAll()
	}
	if err := scene.WriteGLB(reg.Root(), opts.glbOut); err != nil {
		return err
	}
	log.Infof("Wrote %s (%d nodes, %d ticks)", filepath.Base(opts.glbOut), reg.Root().Count(), opts.ticks)
	return nil
}

// setBackground parses a color flag into the framebuffer background.
func setBackground(fb *render.Framebuffer, s string) error {
	c, err := render.ParseColor(s)
	if err != nil {
		return fmt.Errorf("--bg: %w", err)
	}
	fb.BG.R, fb.BG.G, fb.BG.B, fb.BG.A = c.R, c.G, c.B, 255
	return nil
}

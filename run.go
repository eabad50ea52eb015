package rowan

import "github.com/hajimehoshi/ebiten/v2"

// Demo is a scene the Run loop can drive. Tick advances simulation state
// (sample input, step the body, derive the camera); Render draws the scene
// and composites it into the screen. The loop guarantees Tick happens
// before Render within a frame and never concurrently with it.
type Demo interface {
	Tick(dt float64)
	Render(screen *ebiten.Image)
}

// RunConfig configures the window Run creates.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Run opens a window and drives the demo's tick/render loop until the
// window closes. dt is the fixed logical tick duration derived from the
// engine's ticks-per-second setting.
func Run(d Demo, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{demo: d, cfg: cfg})
}

type game struct {
	demo Demo
	cfg  RunConfig
}

func (g *game) Update() error {
	g.demo.Tick(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.demo.Render(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

package sim

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dvg/geom"
	"dvg/internal/buildinfo"
)

// WindowSize is the emulated monitor's edge length in pixels. The device's
// 4096x4096 grid is scaled down onto it.
const WindowSize = 768

// Run opens the monitor window and blocks until it closes or the session
// sends EXIT. Call it from the main goroutine; the drawing session runs in
// another.
func Run(d *Display) error {
	ebiten.SetWindowTitle("DVG monitor (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(WindowSize, WindowSize)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(&game{d: d})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	d *Display
}

func (g *game) Update() error {
	if g.d.Exited() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	for _, s := range g.d.Frame() {
		c := color.RGBA{R: s.R, G: s.G, B: s.B, A: 0xFF}
		x0, y0 := toScreen(s.From)
		x1, y1 := toScreen(s.To)
		if s.From == s.To {
			// Zero-length stroke: the beam dwells on a dot.
			vector.DrawFilledCircle(screen, x0, y0, 1, c, true)
			continue
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, c, true)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowSize, WindowSize
}

// toScreen maps device coordinates to window pixels. Device Y grows
// upward, screen Y downward.
func toScreen(p geom.Point) (float32, float32) {
	const scale = float32(WindowSize) / float32(geom.ResMax+1)
	return float32(p.X) * scale, float32(WindowSize) - float32(p.Y)*scale
}

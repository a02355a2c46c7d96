// Command dvg-demo drives a test pattern to a USB-DVG adapter, or to the
// built-in desktop monitor emulator with -sim.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"os/signal"
	"time"

	"tinygo.org/x/tinyfont/proggy"

	"dvg/frame"
	"dvg/geom"
	"dvg/hal"
	"dvg/sim"
	"dvg/vectortext"
)

var demoWin = geom.Window{XMin: 0, YMin: 0, XMax: 1000, YMax: 1000}

func main() {
	var (
		device string
		useSim bool
		fps    int
		frames int
	)
	flag.StringVar(&device, "device", "", "Serial device of the adapter (e.g. /dev/ttyACM0 or COM3).")
	flag.BoolVar(&useSim, "sim", false, "Render to the desktop monitor emulator instead of hardware.")
	flag.IntVar(&fps, "fps", 60, "Frames per second.")
	flag.IntVar(&frames, "frames", 0, "Stop after N frames (0 = run until interrupted).")
	flag.Parse()
	if fps <= 0 {
		fps = 60
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if useSim {
		d := sim.NewDisplay()
		go func() {
			if err := run(ctx, d, "sim", fps, frames); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}()
		if err := sim.Run(d); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if device == "" {
		fmt.Fprintln(os.Stderr, "dvg-demo: need -device or -sim")
		os.Exit(1)
	}
	if err := run(ctx, hal.NewPortTransport(), device, fps, frames); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, t hal.Transport, device string, fps, frames int) error {
	s := frame.NewSession(t)
	if err := s.Open(device); err != nil {
		return err
	}
	defer s.Close()

	s.SetClipWindow(demoWin)
	txt := vectortext.NewWriter(s, demoWin)

	tick := time.NewTicker(time.Second / time.Duration(fps))
	defer tick.Stop()

	for n := 0; frames == 0 || n < frames; n++ {
		drawFrame(s, txt, n)
		if err := s.SendFrame(); err != nil {
			return fmt.Errorf("frame %d: %w", n, err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
	return nil
}

func drawFrame(s *frame.Session, txt *vectortext.Writer, step int) {
	// Window border.
	s.SetColorRGB15(0, 31, 0)
	s.Vector(geom.Pt(0, 0), geom.Pt(1000, 0))
	s.Vector(geom.Pt(1000, 0), geom.Pt(1000, 1000))
	s.Vector(geom.Pt(1000, 1000), geom.Pt(0, 1000))
	s.Vector(geom.Pt(0, 1000), geom.Pt(0, 0))

	// Rotating spokes; some ends run past the window to exercise clipping.
	center := geom.Pt(500, 500)
	for k := 0; k < 8; k++ {
		a := float64(step)*0.02 + float64(k)*math.Pi/4
		end := geom.Pt(
			center.X+int32(600*math.Cos(a)),
			center.Y+int32(600*math.Sin(a)),
		)
		s.SetColorRGB15(31, uint8(k*4), uint8(31-k*4))
		s.Vector(center, end)
	}

	txt.WriteLine(&proggy.TinySZ8pt7b, 20, 30, "USB-DVG", color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

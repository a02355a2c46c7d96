// Package vectortext renders text on the vector display. It implements
// tinygo's drivers.Displayer over a frame.Session: each lit glyph pixel
// becomes a zero-length stroke, which the beam draws as a dot. tinyfont
// faces do the glyph work.
package vectortext

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"dvg/frame"
	"dvg/geom"
)

var _ drivers.Displayer = (*Writer)(nil)

// Writer draws tinyfont text through a session.
//
// Pixel coordinates follow the usual raster convention (y grows downward
// from the top of the clip window) so font metrics read naturally; the
// writer flips them into the device's upward Y axis.
type Writer struct {
	session *frame.Session
	win     geom.Window

	last    color.RGBA
	haveCol bool
}

// NewWriter returns a writer drawing inside win. The window should match
// the session's clip window, otherwise dots get clipped away.
func NewWriter(s *frame.Session, win geom.Window) *Writer {
	return &Writer{session: s, win: win}
}

// Size reports the drawable extent in pixels.
func (w *Writer) Size() (x, y int16) {
	return clampInt16(w.win.XMax - w.win.XMin), clampInt16(w.win.YMax - w.win.YMin)
}

// SetPixel queues a dot stroke for one glyph pixel.
func (w *Writer) SetPixel(x, y int16, c color.RGBA) {
	if !w.haveCol || c != w.last {
		w.session.SetColorRGB24(c.R, c.G, c.B)
		w.last = c
		w.haveCol = true
	}
	p := geom.Pt(w.win.XMin+int32(x), w.win.YMax-int32(y))
	w.session.Vector(p, p)
}

// Display is a no-op: the frame goes out when the session sends it.
func (w *Writer) Display() error { return nil }

// WriteLine draws str with its baseline at (x, y).
func (w *Writer) WriteLine(font tinyfont.Fonter, x, y int16, str string, c color.RGBA) {
	tinyfont.WriteLine(w, font, x, y, str, c)
}

// LineWidth reports the advance width of str in pixels.
func (w *Writer) LineWidth(font tinyfont.Fonter, str string) uint32 {
	_, outbox := tinyfont.LineWidth(font, str)
	return outbox
}

func clampInt16(v int32) int16 {
	if v > 0x7fff {
		return 0x7fff
	}
	if v < 0 {
		return 0
	}
	return int16(v)
}

// Package sim emulates the vector monitor on the desktop. A Display is a
// hal.Transport: a frame.Session opens it like a serial device, and the
// command stream it receives is decoded into strokes that an ebiten window
// draws. It exists so the driver can be exercised without the adapter on
// the bench.
package sim

import (
	"io"
	"sync"

	"dvg/geom"
	"dvg/hal"
	"dvg/proto"
)

// Stroke is one visible beam movement in device coordinates.
type Stroke struct {
	From, To geom.Point
	R, G, B  uint8
}

// Display decodes the DVG command stream and keeps the last committed
// frame for presentation.
type Display struct {
	mu sync.Mutex

	carry   []byte // partial command word between writes
	pending []Stroke
	front   []Stroke

	beam    geom.Point
	beamSet bool
	r, g, b uint8

	pathLen uint32 // last frame header payload
	quality uint32
	frames  uint64
	exited  bool
	closed  bool
}

// NewDisplay returns an idle display.
func NewDisplay() *Display {
	return &Display{}
}

// Open implements hal.Transport. The device path is ignored; there is one
// emulated monitor per Display.
func (d *Display) Open(device string) (hal.Serial, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = false
	return (*conn)(d), nil
}

// conn is the Serial face of a Display.
type conn Display

func (c *conn) Write(p []byte) (int, error) {
	d := (*Display)(c)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, io.ErrClosedPipe
	}

	b := p
	if len(d.carry) > 0 {
		b = append(d.carry, p...)
	}
	for len(b) >= proto.WordBytes {
		d.decode(proto.Read(b))
		b = b[proto.WordBytes:]
	}
	d.carry = append(d.carry[:0], b...)
	return len(p), nil
}

func (c *conn) Read(p []byte) (int, error) { return 0, io.EOF }

func (c *conn) Close() error {
	d := (*Display)(c)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *Display) decode(w proto.Word) {
	switch w.Opcode() {
	case proto.OpFrame:
		d.pending = d.pending[:0]
		d.pathLen = w.Payload()
	case proto.OpRGB:
		d.r, d.g, d.b = w.Color()
	case proto.OpXY:
		x, y, blank := w.Coords()
		to := geom.Pt(x, y)
		if !blank && d.beamSet {
			d.pending = append(d.pending, Stroke{
				From: d.beam, To: to,
				R: d.r, G: d.g, B: d.b,
			})
		}
		d.beam = to
		d.beamSet = true
	case proto.OpQuality:
		d.quality = w.Payload()
	case proto.OpComplete:
		d.front = append(d.front[:0], d.pending...)
		d.frames++
	case proto.OpExit:
		d.exited = true
	}
}

// Frame returns a copy of the last committed frame's strokes.
func (d *Display) Frame() []Stroke {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Stroke, len(d.front))
	copy(out, d.front)
	return out
}

// Frames reports how many complete frames have been committed.
func (d *Display) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// PathLength reports the path-length header of the frame being received.
func (d *Display) PathLength() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pathLen
}

// Quality reports the last render-quality hint received.
func (d *Display) Quality() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quality
}

// Exited reports whether the session sent its termination notice.
func (d *Display) Exited() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.exited
}

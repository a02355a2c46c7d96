// Package frame builds USB-DVG command frames and drives one adapter
// session over a hal.Transport.
package frame

import (
	"dvg/geom"
	"dvg/proto"
)

// BufferBytes is the nominal command buffer capacity for one frame.
const BufferBytes = 0x20000

// Draw sites stop appending once fewer than headroomBytes remain below the
// nominal capacity; overflowing words are dropped, never written.
const headroomBytes = 8

// Encoder packs draw commands for one frame into a reusable buffer.
//
// The first word of the buffer is reserved for the frame header, which is
// filled in by Finalize. An Encoder is not safe for concurrent use.
type Encoder struct {
	// buf carries two spare words past the nominal capacity so the
	// QUALITY/COMPLETE trailer always fits, even for a flooded frame.
	buf [BufferBytes + 2*proto.WordBytes]byte
	off int

	last     geom.Point // device space
	haveLast bool
	lastR    uint8
	lastG    uint8
	lastB    uint8

	pathLen uint32
	dropped int
}

// NewEncoder returns an encoder ready for the first frame.
func NewEncoder() *Encoder {
	e := &Encoder{}
	e.Reset()
	return e
}

// Reset rearms the encoder for a new frame: cursor past the header slot,
// path length zero, no last point, last color black.
func (e *Encoder) Reset() {
	e.off = proto.WordBytes
	e.pathLen = 0
	e.haveLast = false
	e.last = geom.Point{}
	e.lastR, e.lastG, e.lastB = 0, 0, 0
}

// Len reports the bytes currently buffered, header slot included.
func (e *Encoder) Len() int { return e.off }

// Dropped reports how many command words have been discarded because the
// buffer was full, over the encoder's lifetime.
func (e *Encoder) Dropped() int { return e.dropped }

func (e *Encoder) appendWord(w proto.Word) {
	if e.off > BufferBytes-headroomBytes {
		e.dropped++
		return
	}
	proto.Put(e.buf[e.off:], w)
	e.off += proto.WordBytes
}

// putWord writes without the headroom check; only Finalize's trailer uses
// it, and the spare words in buf guarantee the room.
func (e *Encoder) putWord(w proto.Word) {
	proto.Put(e.buf[e.off:], w)
	e.off += proto.WordBytes
}

func (e *Encoder) setColor(r, g, b uint8) {
	// The color is remembered even when the word is dropped; blanking of
	// later strokes follows the caller's intent, not the buffer state.
	e.lastR, e.lastG, e.lastB = r, g, b
	e.appendWord(proto.RGB(r, g, b))
}

// SetColorRGB15 sets the draw color from 5-bit channels (0-31), upscaled
// to 8 bits.
func (e *Encoder) SetColorRGB15(r, g, b uint8) {
	e.setColor(upscale(r, 3), upscale(g, 3), upscale(b, 3))
}

// SetColorRGB16 sets the draw color from a 5-6-5 split (green 0-63).
func (e *Encoder) SetColorRGB16(r, g, b uint8) {
	e.setColor(upscale(r, 3), upscale(g, 2), upscale(b, 3))
}

// SetColorRGB24 sets the draw color from full 8-bit channels.
func (e *Encoder) SetColorRGB24(r, g, b uint8) {
	e.setColor(r, g, b)
}

func upscale(v uint8, shift uint) uint8 {
	u := uint16(v) << shift
	if u > 255 {
		u = 255
	}
	return uint8(u)
}

// Vector clips the world-space segment p1-p2 against win, maps the
// surviving part to device space and appends the movement commands.
//
// A fully clipped segment appends nothing. A blanked reposition is emitted
// whenever the stroke does not start at the last emitted device point; the
// stroke itself is blanked only while the color is black.
func (e *Encoder) Vector(p1, p2 geom.Point, win geom.Window) {
	c1, c2, ok := geom.Clip(p1, p2, win)
	if !ok {
		return
	}

	start := win.Map(c1)
	end := win.Map(c2)

	if e.haveLast {
		e.pathLen += geom.Length(e.last, start)
	}
	e.pathLen += geom.Length(start, end)

	if !e.haveLast || start != e.last {
		e.appendWord(proto.XY(start.X, start.Y, true))
	}
	blank := e.lastR == 0 && e.lastG == 0 && e.lastB == 0
	e.appendWord(proto.XY(end.X, end.Y, blank))

	e.last = end
	e.haveLast = true
}

// Finalize terminates the frame and returns the wire bytes: a QUALITY and
// a COMPLETE word are appended, and the header slot is filled with a FRAME
// word carrying the accumulated path length. The encoder is reset for the
// next frame; the returned slice aliases the internal buffer and is only
// valid until the next append.
func (e *Encoder) Finalize() []byte {
	e.putWord(proto.Quality(proto.RenderQuality))
	e.putWord(proto.Complete())
	proto.Put(e.buf[:proto.WordBytes], proto.Frame(e.pathLen))

	out := e.buf[:e.off]
	e.Reset()
	return out
}

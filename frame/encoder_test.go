package frame

import (
	"testing"

	"dvg/geom"
	"dvg/proto"
)

var testWin = geom.Window{XMin: 0, YMin: 0, XMax: 1000, YMax: 1000}

func words(t *testing.T, buf []byte) []proto.Word {
	t.Helper()
	if len(buf)%proto.WordBytes != 0 {
		t.Fatalf("frame length %d not word aligned", len(buf))
	}
	out := make([]proto.Word, 0, len(buf)/proto.WordBytes)
	for i := 0; i < len(buf); i += proto.WordBytes {
		out = append(out, proto.Read(buf[i:]))
	}
	return out
}

func TestEmptyFrame(t *testing.T) {
	e := NewEncoder()
	ws := words(t, e.Finalize())
	if len(ws) != 3 {
		t.Fatalf("empty frame has %d words, want 3", len(ws))
	}
	if ws[0].Opcode() != proto.OpFrame || ws[0].Payload() != 0 {
		t.Fatalf("header = %v payload %d", ws[0].Opcode(), ws[0].Payload())
	}
	if ws[1] != proto.Quality(proto.RenderQuality) {
		t.Fatalf("second word = %#x, want quality", uint32(ws[1]))
	}
	if ws[2] != proto.Complete() {
		t.Fatalf("trailer = %#x, want complete", uint32(ws[2]))
	}
}

func TestClippedStrokeScenario(t *testing.T) {
	// White stroke from the window center off the right edge: the end is
	// truncated to the boundary and mapped to the device maximum.
	e := NewEncoder()
	e.SetColorRGB15(31, 31, 31)
	e.Vector(geom.Pt(500, 500), geom.Pt(1500, 500), testWin)
	ws := words(t, e.Finalize())

	if len(ws) != 6 {
		t.Fatalf("frame has %d words, want 6", len(ws))
	}
	if r, g, b := ws[1].Color(); ws[1].Opcode() != proto.OpRGB || r != 248 || g != 248 || b != 248 {
		t.Fatalf("color word = %v (%d,%d,%d), want rgb(248,248,248)", ws[1].Opcode(), r, g, b)
	}

	x, y, blank := ws[2].Coords()
	if ws[2].Opcode() != proto.OpXY || x != 2047 || y != 2047 || !blank {
		t.Fatalf("move word = (%d,%d,blank=%v), want (2047,2047,true)", x, y, blank)
	}
	x, y, blank = ws[3].Coords()
	if ws[3].Opcode() != proto.OpXY || x != 4095 || y != 2047 || blank {
		t.Fatalf("draw word = (%d,%d,blank=%v), want (4095,2047,false)", x, y, blank)
	}

	// Header carries the accumulated path length: just the stroke, since
	// there was no previous point to reposition from.
	want := geom.Length(geom.Pt(2047, 2047), geom.Pt(4095, 2047))
	if ws[0].Payload() != want {
		t.Fatalf("header path length = %d, want %d", ws[0].Payload(), want)
	}
}

func TestBlackStrokeBlanksBeam(t *testing.T) {
	e := NewEncoder()
	e.SetColorRGB15(0, 0, 0)
	e.Vector(geom.Pt(100, 100), geom.Pt(200, 200), testWin)
	ws := words(t, e.Finalize())

	if _, _, blank := ws[3].Coords(); !blank {
		t.Fatalf("stroke with black color must have blank bit set")
	}
}

func TestRejectedStrokeAppendsNothing(t *testing.T) {
	e := NewEncoder()
	before := e.Len()
	e.Vector(geom.Pt(2000, 500), geom.Pt(3000, 500), testWin)
	if e.Len() != before {
		t.Fatalf("cursor moved from %d to %d for a fully clipped stroke", before, e.Len())
	}
	ws := words(t, e.Finalize())
	if len(ws) != 3 {
		t.Fatalf("rejected stroke leaked %d words into the frame", len(ws)-3)
	}
}

func TestRepositionSuppressedOnContinuation(t *testing.T) {
	e := NewEncoder()
	e.SetColorRGB15(31, 0, 0)
	e.Vector(geom.Pt(0, 0), geom.Pt(500, 0), testWin)
	e.Vector(geom.Pt(500, 0), geom.Pt(500, 500), testWin)
	ws := words(t, e.Finalize())

	// rgb + (move, draw) + draw: the second stroke continues from the
	// first one's end point, so no reposition is emitted.
	var xy int
	for _, w := range ws {
		if w.Opcode() == proto.OpXY {
			xy++
		}
	}
	if xy != 3 {
		t.Fatalf("continuation emitted %d XY words, want 3", xy)
	}
}

func TestRepositionLengthAccumulates(t *testing.T) {
	e := NewEncoder()
	e.SetColorRGB15(31, 31, 31)
	e.Vector(geom.Pt(0, 0), geom.Pt(100, 0), testWin)
	e.Vector(geom.Pt(0, 500), geom.Pt(100, 500), testWin)
	ws := words(t, e.Finalize())

	s1 := testWin.Map(geom.Pt(0, 0))
	e1 := testWin.Map(geom.Pt(100, 0))
	s2 := testWin.Map(geom.Pt(0, 500))
	e2 := testWin.Map(geom.Pt(100, 500))
	want := geom.Length(s1, e1) + geom.Length(e1, s2) + geom.Length(s2, e2)
	if ws[0].Payload() != want {
		t.Fatalf("header path length = %d, want %d", ws[0].Payload(), want)
	}
}

func TestColorUpscaling(t *testing.T) {
	e := NewEncoder()
	e.SetColorRGB15(31, 1, 0)
	e.SetColorRGB16(31, 63, 1)
	e.SetColorRGB24(1, 2, 3)
	ws := words(t, e.Finalize())

	if r, g, b := ws[1].Color(); r != 248 || g != 8 || b != 0 {
		t.Fatalf("rgb15 upscaled to (%d,%d,%d)", r, g, b)
	}
	if r, g, b := ws[2].Color(); r != 248 || g != 252 || b != 8 {
		t.Fatalf("rgb16 upscaled to (%d,%d,%d)", r, g, b)
	}
	if r, g, b := ws[3].Color(); r != 1 || g != 2 || b != 3 {
		t.Fatalf("rgb24 altered to (%d,%d,%d)", r, g, b)
	}
}

func TestResetAtFrameBoundary(t *testing.T) {
	e := NewEncoder()
	e.SetColorRGB15(31, 31, 31)
	e.Vector(geom.Pt(0, 0), geom.Pt(500, 500), testWin)
	e.Finalize()

	// Color and last point reset with the frame: the same stroke now
	// repositions first and draws blanked (color is black again).
	e.Vector(geom.Pt(500, 500), geom.Pt(600, 600), testWin)
	ws := words(t, e.Finalize())
	if len(ws) != 5 {
		t.Fatalf("second frame has %d words, want 5", len(ws))
	}
	if _, _, blank := ws[1].Coords(); !blank {
		t.Fatalf("first word after reset is not a blanked reposition")
	}
	if _, _, blank := ws[2].Coords(); !blank {
		t.Fatalf("stroke after reset must be blanked until a color is set")
	}
}

func TestFloodNeverOverrunsBuffer(t *testing.T) {
	e := NewEncoder()
	e.SetColorRGB15(31, 31, 31)
	draws := BufferBytes/8 + 1000
	for i := 0; i < draws; i++ {
		// Alternate so every stroke needs a reposition: two words each.
		e.Vector(geom.Pt(0, 0), geom.Pt(10, 10), testWin)
	}
	if e.Dropped() == 0 {
		t.Fatalf("flood did not overflow the buffer")
	}
	if e.Len() > BufferBytes-proto.WordBytes {
		t.Fatalf("cursor %d ran past the draw-site high-water mark", e.Len())
	}

	out := e.Finalize()
	if len(out) > BufferBytes+proto.WordBytes {
		t.Fatalf("flooded frame is %d bytes", len(out))
	}
	ws := words(t, out)
	if ws[len(ws)-2] != proto.Quality(proto.RenderQuality) || ws[len(ws)-1] != proto.Complete() {
		t.Fatalf("flooded frame lost its trailer")
	}
}

func TestFullBufferDropsEveryWordKind(t *testing.T) {
	e := NewEncoder()
	e.SetColorRGB15(31, 31, 31)
	for e.Len() <= BufferBytes-headroomBytes {
		e.Vector(geom.Pt(0, 0), geom.Pt(10, 10), testWin)
	}
	mark := e.Len()

	before := e.Dropped()
	e.SetColorRGB15(0, 0, 0)
	if e.Dropped() != before+1 {
		t.Fatalf("full buffer did not drop the color word")
	}
	e.Vector(geom.Pt(0, 0), geom.Pt(10, 10), testWin)
	if e.Dropped() != before+3 {
		t.Fatalf("full buffer dropped %d words for a stroke, want 2", e.Dropped()-before-1)
	}
	if e.Len() != mark {
		t.Fatalf("cursor moved on a full buffer")
	}
}

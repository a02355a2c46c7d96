// Package geom provides the integer geometry used by the DVG draw pipeline:
// clip-window region codes, Cohen-Sutherland segment clipping, and the
// mapping from world coordinates into the adapter's 12-bit device space.
package geom

// Point is a coordinate pair. Whether it is in world or device space depends
// on where it sits in the pipeline; device-space values are in [0, ResMax].
type Point struct {
	X, Y int32
}

func Pt(x, y int32) Point { return Point{X: x, Y: y} }

// Window is a clip rectangle in world coordinates.
//
// Callers must keep XMin < XMax and YMin < YMax; clipping and mapping are
// undefined for degenerate windows.
type Window struct {
	XMin, YMin, XMax, YMax int32
}

// Region codes: one bit per violated window boundary.
const (
	codeLeft uint32 = 1 << iota
	codeRight
	codeBottom
	codeTop
)

func (w Window) code(p Point) uint32 {
	var c uint32
	if p.X < w.XMin {
		c |= codeLeft
	} else if p.X > w.XMax {
		c |= codeRight
	}
	if p.Y < w.YMin {
		c |= codeBottom
	} else if p.Y > w.YMax {
		c |= codeTop
	}
	return c
}

// Clip clips the segment p1-p2 against w using Cohen-Sutherland region
// codes. It returns the (possibly truncated) endpoints and whether any part
// of the segment lies within the window.
//
// Intersections use integer division in world units, truncating like the
// rest of the pipeline.
func Clip(p1, p2 Point, w Window) (Point, Point, bool) {
	c1 := w.code(p1)
	c2 := w.code(p2)

	for {
		if c1 == 0 && c2 == 0 {
			return p1, p2, true
		}
		if c1&c2 != 0 {
			// Both endpoints outside on the same side.
			return p1, p2, false
		}

		out := c1
		if out == 0 {
			out = c2
		}

		dx := p2.X - p1.X
		dy := p2.Y - p1.Y

		var p Point
		switch {
		case out&codeTop != 0 && dy != 0:
			p.X = p1.X + dx*(w.YMax-p1.Y)/dy
			p.Y = w.YMax
		case out&codeBottom != 0 && dy != 0:
			p.X = p1.X + dx*(w.YMin-p1.Y)/dy
			p.Y = w.YMin
		case out&codeRight != 0 && dx != 0:
			p.Y = p1.Y + dy*(w.XMax-p1.X)/dx
			p.X = w.XMax
		case out&codeLeft != 0 && dx != 0:
			p.Y = p1.Y + dy*(w.XMin-p1.X)/dx
			p.X = w.XMin
		default:
			// Axis-aligned segment violating its own axis; both codes
			// share that bit, so this is unreachable unless the window
			// is degenerate. Treat as no intersection.
			return p1, p2, false
		}

		if out == c1 {
			p1 = p
			c1 = w.code(p1)
		} else {
			p2 = p
			c2 = w.code(p2)
		}
	}
}

package geom

import "math"

// Device coordinate range: the adapter addresses a 4096x4096 grid.
const (
	ResMin int32 = 0
	ResMax int32 = 4095
)

// MapX rescales a world X coordinate inside w to device space.
//
// The result is clamped to [ResMin, ResMax]; points that survived clipping
// against the same window land in range on their own, the clamp only
// absorbs caller mistakes (mapping against a different window).
func (w Window) MapX(x int32) int32 {
	return clampRes(int64(x-w.XMin) * int64(ResMax) / int64(w.XMax-w.XMin))
}

// MapY rescales a world Y coordinate inside w to device space.
func (w Window) MapY(y int32) int32 {
	return clampRes(int64(y-w.YMin) * int64(ResMax) / int64(w.YMax-w.YMin))
}

// Map rescales a clipped world point to device space.
func (w Window) Map(p Point) Point {
	return Point{X: w.MapX(p.X), Y: w.MapY(p.Y)}
}

func clampRes(v int64) int32 {
	if v < int64(ResMin) {
		return ResMin
	}
	if v > int64(ResMax) {
		return ResMax
	}
	return int32(v)
}

// Length is the Euclidean distance between two device points, truncated to
// an integer. The firmware's pacing model depends on the truncated value;
// do not round.
func Length(a, b Point) uint32 {
	dx := int64(b.X - a.X)
	dy := int64(b.Y - a.Y)
	return uint32(math.Sqrt(float64(dx*dx + dy*dy)))
}

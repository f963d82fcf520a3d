package rendernode

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at target submission time.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the color shadows are drawn with before alpha is applied.
var ColorBlack = Color{0, 0, 0, 1}

// withAlpha returns c with its alpha scaled by a.
func (c Color) withAlpha(a float64) Color {
	c.A *= a
	return c
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the right edge of the rectangle.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge of the rectangle.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap with a non-zero area.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Intersect returns the overlap of r and other. The result is empty (zero
// width or height) when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.Right(), other.Right())
	y1 := math.Min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Union returns the smallest rectangle containing both r and other. Empty
// rectangles are ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.Right(), other.Right())
	y1 := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// SaveFlags select which parts of the canvas state a save captures.
// Values can be combined with bitwise OR.
type SaveFlags uint8

const (
	SaveMatrix        SaveFlags = 1 << iota // restore the transform on restore
	SaveClip                                // restore the clip on restore
	SaveHasAlphaLayer                       // the save opens an alpha-blended layer
	SaveClipToLayer                         // the layer bounds also clip its content
)

// SaveMatrixClip is the save used to bracket every render node.
const SaveMatrixClip = SaveMatrix | SaveClip

// ClipOp selects how a new clip combines with the current one.
type ClipOp uint8

const (
	ClipIntersect ClipOp = iota // intersect with the current clip
	ClipReplace                 // replace the current clip
)

func (op ClipOp) String() string {
	if op == ClipReplace {
		return "replace"
	}
	return "intersect"
}

// Outline is the shape a node clips to and casts its shadow from. Only the
// bounding rectangle takes part in clipping; Radius is carried for targets
// that can round corners.
type Outline struct {
	Bounds Rect
	Radius float64
	Alpha  float64
}

// IsEmpty reports whether the outline encloses no area.
func (o *Outline) IsEmpty() bool {
	return o == nil || o.Bounds.IsEmpty()
}

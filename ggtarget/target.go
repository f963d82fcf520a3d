// Package ggtarget draws resolved render node fills onto a software
// [gg.Context].
//
// Every fill is mapped to device space, clipped against its clip rectangle
// and filled as a polygon with an identity context transform. Alpha layers
// map to gg's PushLayer and PopLayer.
package ggtarget

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/phanxgames/rendernode"
)

// Target is a rendernode.Target drawing onto a gg context.
type Target struct {
	dc    *gg.Context
	depth int
	fills int
	err   error

	poly, scratch []point
}

var _ rendernode.Target = (*Target)(nil)

// New creates a target drawing onto dc. The context's transform is reset to
// identity on every fill.
func New(dc *gg.Context) *Target {
	return &Target{
		dc:      dc,
		poly:    make([]point, 0, 8),
		scratch: make([]point, 0, 8),
	}
}

// NewImage creates a target over a new width x height context.
func NewImage(width, height int) *Target {
	return New(gg.NewContext(width, height))
}

// Context returns the underlying context.
func (t *Target) Context() *gg.Context { return t.dc }

// Fills returns the number of polygons filled.
func (t *Target) Fills() int { return t.fills }

// Depth returns the number of open layers.
func (t *Target) Depth() int { return t.depth }

// Err returns the first error reported by a fill, if any.
func (t *Target) Err() error { return t.err }

// FillRect implements rendernode.Target.
func (t *Target) FillRect(r rendernode.Rect, m mgl64.Mat4, clip rendernode.Rect, c rendernode.Color) {
	if c.A <= 0 || r.IsEmpty() || clip.IsEmpty() {
		return
	}
	t.poly = append(t.poly[:0],
		mapPoint(m, r.X, r.Y),
		mapPoint(m, r.Right(), r.Y),
		mapPoint(m, r.Right(), r.Bottom()),
		mapPoint(m, r.X, r.Bottom()),
	)
	t.poly, t.scratch = clipPolygon(t.poly, t.scratch, clip)
	if len(t.poly) < 3 {
		return
	}

	t.dc.Identity()
	t.dc.SetRGBA(c.R, c.G, c.B, c.A)
	t.dc.MoveTo(t.poly[0].x, t.poly[0].y)
	for _, p := range t.poly[1:] {
		t.dc.LineTo(p.x, p.y)
	}
	t.dc.ClosePath()
	if err := t.dc.Fill(); err != nil {
		if t.err == nil {
			t.err = err
		}
		rendernode.Logger().Warn("gg fill failed", "error", err)
		return
	}
	t.fills++
}

// PushLayer implements rendernode.Target. gg layers cover the whole
// context; fills into the layer are already clipped to its bounds.
func (t *Target) PushLayer(_ rendernode.Rect, alpha float64) {
	t.dc.PushLayer(gg.BlendNormal, alpha)
	t.depth++
}

// PopLayer implements rendernode.Target.
func (t *Target) PopLayer() {
	if t.depth == 0 {
		return
	}
	t.dc.PopLayer()
	t.depth--
}

func mapPoint(m mgl64.Mat4, x, y float64) point {
	return point{m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]}
}

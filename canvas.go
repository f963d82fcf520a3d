package rendernode

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Renderer is the transform, clip and visibility bookkeeping the dispatch
// engine drives directly, outside of any Handler.
type Renderer interface {
	// Save pushes the current state and returns the save count before the
	// push, suitable for RestoreToCount.
	Save(flags SaveFlags) int
	RestoreToCount(count int)
	SaveCount() int
	ConcatMatrix(m mgl64.Mat4)
	Translate(x, y, z float64)
	ScaleAlpha(a float64)
	SetOverrideLayerAlpha(a float64)
	// QuickRejectConservative reports whether r, in the current coordinate
	// space, is certainly outside the clip.
	QuickRejectConservative(r Rect) bool
}

// Canvas is a Renderer that ops can draw into.
type Canvas interface {
	Renderer
	State() State
	ClipRect(r Rect, op ClipOp) bool
	ClipOutline(o *Outline, op ClipOp) bool
	SaveLayerAlpha(bounds Rect, alpha float64, flags SaveFlags) int
	DrawRect(r Rect, c Color)
	DrawShadow(s Shadow)
	StartMark(name string)
	EndMark()
}

// Target receives fully resolved fills. Implementations live in the
// ebitentarget and ggtarget packages.
type Target interface {
	// FillRect fills r transformed by m, restricted to the device-space clip.
	FillRect(r Rect, m mgl64.Mat4, clip Rect, c Color)
	// PushLayer redirects fills into a new layer composited with alpha on
	// PopLayer. bounds is in device space.
	PushLayer(bounds Rect, alpha float64)
	PopLayer()
}

// State is a snapshot of the drawing state: the device matrix, the
// device-space clip bounds and the accumulated alpha.
type State struct {
	Matrix mgl64.Mat4
	Clip   Rect
	Alpha  float64
}

// layerBounds returns r mapped to device space and clipped.
func (s State) layerBounds(r Rect) Rect {
	return mapRect(s.Matrix, r).Intersect(s.Clip)
}

type savedState struct {
	State
	flags    SaveFlags
	layer    bool
	override float64
}

// Painter is the reference Canvas. It tracks the save stack and forwards
// fills to a Target. A Painter with a nil Target only tracks state, which is
// what the defer pass uses.
//
// The override layer alpha belongs to the save stack: it multiplies every
// draw until the save that was open when it was set is restored.
type Painter struct {
	target   Target
	bounds   Rect
	cur      State
	stack    []savedState
	override float64
	marks    []string
}

// NewPainter creates a painter over a width x height device.
func NewPainter(target Target, width, height int) *Painter {
	bounds := Rect{Width: float64(width), Height: float64(height)}
	return &Painter{
		target:   target,
		bounds:   bounds,
		cur:      State{Matrix: mgl64.Ident4(), Clip: bounds, Alpha: 1},
		stack:    make([]savedState, 0, 16),
		override: 1,
	}
}

// Reset clears the save stack and state for a new frame.
func (p *Painter) Reset() {
	for len(p.stack) > 0 {
		p.pop()
	}
	p.cur = State{Matrix: mgl64.Ident4(), Clip: p.bounds, Alpha: 1}
	p.override = 1
	p.marks = p.marks[:0]
}

// State returns the current drawing state. Alpha includes the override
// layer alpha.
func (p *Painter) State() State {
	st := p.cur
	st.Alpha *= p.override
	return st
}

// Save pushes the current state and returns the save count before the push.
func (p *Painter) Save(flags SaveFlags) int {
	count := p.SaveCount()
	p.stack = append(p.stack, savedState{State: p.cur, flags: flags, override: p.override})
	return count
}

func (p *Painter) pop() {
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	if top.flags&SaveMatrix != 0 {
		p.cur.Matrix = top.Matrix
	}
	if top.flags&SaveClip != 0 {
		p.cur.Clip = top.Clip
	}
	p.cur.Alpha = top.Alpha
	p.override = top.override
	if top.layer && p.target != nil {
		p.target.PopLayer()
	}
}

// RestoreToCount pops saves until SaveCount is count, closing any layers
// popped on the way. Counts below 1 restore everything.
func (p *Painter) RestoreToCount(count int) {
	if count < 1 {
		count = 1
	}
	for p.SaveCount() > count {
		p.pop()
	}
}

// SaveCount returns the depth of the save stack, 1 when nothing is saved.
func (p *Painter) SaveCount() int { return len(p.stack) + 1 }

// ConcatMatrix post-multiplies the current matrix by m.
func (p *Painter) ConcatMatrix(m mgl64.Mat4) {
	p.cur.Matrix = p.cur.Matrix.Mul4(m)
}

// Translate post-multiplies the current matrix by a translation.
func (p *Painter) Translate(x, y, z float64) {
	p.cur.Matrix = p.cur.Matrix.Mul4(mgl64.Translate3D(x, y, z))
}

// ScaleAlpha multiplies the current alpha by a.
func (p *Painter) ScaleAlpha(a float64) {
	p.cur.Alpha *= a
}

// SetOverrideLayerAlpha sets the alpha a caching node's content is drawn
// with. It replaces, rather than multiplies, the previous override.
func (p *Painter) SetOverrideLayerAlpha(a float64) {
	p.override = a
}

// OverrideLayerAlpha returns the alpha applied to a caching node's layer.
func (p *Painter) OverrideLayerAlpha() float64 { return p.override }

// QuickRejectConservative reports whether r, in the current coordinate
// space, misses the clip entirely. An empty clip rejects everything.
func (p *Painter) QuickRejectConservative(r Rect) bool {
	if p.cur.Clip.IsEmpty() {
		return true
	}
	return !mapRect(p.cur.Matrix, r).Intersects(p.cur.Clip)
}

// ClipRect combines the device bounds of r with the clip and reports
// whether the result is non-empty. ClipReplace ignores the current clip but
// stays within the device bounds.
func (p *Painter) ClipRect(r Rect, op ClipOp) bool {
	device := mapRect(p.cur.Matrix, r)
	if op == ClipReplace {
		p.cur.Clip = device.Intersect(p.bounds)
	} else {
		p.cur.Clip = p.cur.Clip.Intersect(device)
	}
	return !p.cur.Clip.IsEmpty()
}

// ClipOutline clips to the outline's bounds. An empty outline leaves the
// clip unchanged.
func (p *Painter) ClipOutline(o *Outline, op ClipOp) bool {
	if o.IsEmpty() {
		return !p.cur.Clip.IsEmpty()
	}
	return p.ClipRect(o.Bounds, op)
}

// SaveLayerAlpha saves the matrix and clip and opens a layer over the
// device bounds of bounds, composited with alpha when its save is
// restored. With SaveClipToLayer the layer bounds also become the clip.
func (p *Painter) SaveLayerAlpha(bounds Rect, alpha float64, flags SaveFlags) int {
	device := p.cur.layerBounds(bounds)
	count := p.Save(flags | SaveMatrixClip)
	p.stack[len(p.stack)-1].layer = true
	if flags&SaveClipToLayer != 0 {
		p.cur.Clip = device
	}
	if p.target != nil {
		p.target.PushLayer(device, alpha)
	}
	return count
}

// DrawRect fills r with c under the current state. Fills outside the clip
// never reach the target.
func (p *Painter) DrawRect(r Rect, c Color) {
	if p.target == nil {
		return
	}
	if _, ok := drawBounds(p.cur, p.cur.Matrix, r); !ok {
		return
	}
	p.target.FillRect(r, p.cur.Matrix, p.cur.Clip, c.withAlpha(p.cur.Alpha*p.override))
}

// DrawShadow resolves s against the current state and fills it.
func (p *Painter) DrawShadow(s Shadow) {
	if p.target == nil {
		return
	}
	st := p.State()
	r, m, c, ok := resolveShadow(st, s)
	if !ok {
		return
	}
	if _, ok := drawBounds(st, m, r); !ok {
		return
	}
	p.target.FillRect(r, m, st.Clip, c)
}

// StartMark opens a named section, for profilers and debuggers.
func (p *Painter) StartMark(name string) {
	p.marks = append(p.marks, name)
}

// EndMark closes the innermost section opened by StartMark.
func (p *Painter) EndMark() {
	if len(p.marks) > 0 {
		p.marks = p.marks[:len(p.marks)-1]
	}
}

const (
	// shadowAmbientAlpha is the opacity of a shadow cast by a fully opaque
	// caster.
	shadowAmbientAlpha = 0.24
	// shadowOffsetPerZ is the downward device offset per unit of caster height.
	shadowOffsetPerZ = 0.5
)

// resolveShadow turns a shadow description into a fill: the caster's outline
// (or bounds) in the plane transform, offset downward by its 3D height.
func resolveShadow(st State, s Shadow) (Rect, mgl64.Mat4, Color, bool) {
	r := Rect{Width: s.Width, Height: s.Height}
	if !s.Outline.IsEmpty() {
		r = s.Outline.Bounds
	}
	if r.IsEmpty() || s.CasterAlpha <= 0 {
		return Rect{}, mgl64.Mat4{}, Color{}, false
	}
	center := s.TransformZ.Mul4x1(mgl64.Vec4{r.X + r.Width/2, r.Y + r.Height/2, 0, 1})
	z := math.Max(center.Z(), 0)
	m := mgl64.Translate3D(0, z*shadowOffsetPerZ, 0).Mul4(st.Matrix).Mul4(s.TransformXY)
	alpha := shadowAmbientAlpha * s.CasterAlpha * st.Alpha
	if s.Outline != nil && s.Outline.Alpha > 0 {
		alpha *= s.Outline.Alpha
	}
	return r, m, ColorBlack.withAlpha(alpha), true
}

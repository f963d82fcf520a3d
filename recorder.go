package rendernode

import "github.com/go-gl/mathgl/mgl64"

// Recorder builds an OpList. It mirrors the state-changing calls of a canvas,
// recording ops instead of drawing, and keeps its own matrix so that each
// DrawRenderNode call can snapshot the transform its child is drawn with.
//
// Example:
//
//	rec := rendernode.NewRecorder()
//	rec.DrawRect(rendernode.Rect{Width: 100, Height: 40}, rendernode.Color{R: 1, A: 1})
//	rec.Translate(10, 10)
//	rec.DrawRenderNode(child)
//	node.SetData(rec.Finish())
//
// The Recorder is not safe for concurrent use and must not be used after
// Finish.
type Recorder struct {
	ops      []Op
	children []*DrawRenderNodeOp
	receive  int

	matrix mgl64.Mat4
	stack  []mgl64.Mat4
}

// NewRecorder creates a recorder with an identity matrix and save count 1.
func NewRecorder() *Recorder {
	return &Recorder{
		ops:     make([]Op, 0, 16),
		receive: -1,
		matrix:  mgl64.Ident4(),
		stack:   make([]mgl64.Mat4, 0, 4),
	}
}

// SaveCount returns the current recorded save count.
func (r *Recorder) SaveCount() int {
	return len(r.stack) + 1
}

// Save records a save and returns the count to restore to.
func (r *Recorder) Save(flags SaveFlags) int {
	count := r.SaveCount()
	r.stack = append(r.stack, r.matrix)
	r.ops = append(r.ops, &SaveOp{Flags: flags})
	return count
}

// Restore records a restore of the most recent save. No-op without a save.
func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.RestoreToCount(r.SaveCount() - 1)
}

// RestoreToCount records a restore to count. The recorded count is relative
// to the list; it is offset by the save count at playback.
func (r *Recorder) RestoreToCount(count int) {
	if count < 1 {
		count = 1
	}
	if count >= r.SaveCount() {
		return
	}
	r.matrix = r.stack[count-1]
	r.stack = r.stack[:count-1]
	r.ops = append(r.ops, &RestoreToCountOp{Count: count})
}

// Translate records a translation.
func (r *Recorder) Translate(x, y float64) {
	r.matrix = r.matrix.Mul4(mgl64.Translate3D(x, y, 0))
	r.ops = append(r.ops, &TranslateOp{X: x, Y: y})
}

// ConcatMatrix records a matrix concatenation.
func (r *Recorder) ConcatMatrix(m mgl64.Mat4) {
	r.matrix = r.matrix.Mul4(m)
	r.ops = append(r.ops, &ConcatMatrixOp{Matrix: m})
}

// ClipRect records an intersecting rectangular clip.
func (r *Recorder) ClipRect(rect Rect) {
	r.ops = append(r.ops, &ClipRectOp{Rect: rect, Op: ClipIntersect})
}

// DrawRect records a filled rectangle.
func (r *Recorder) DrawRect(rect Rect, c Color) {
	r.ops = append(r.ops, &DrawRectOp{Rect: rect, Color: c})
}

// DrawRenderNode records a child node drawn with the current matrix. If the
// child is a projection receiver, projected content is spliced right after
// this op.
func (r *Recorder) DrawRenderNode(child *Node) *DrawRenderNodeOp {
	op := &DrawRenderNodeOp{
		Node:                             child,
		TransformFromParent:              r.matrix,
		TransformFromCompositingAncestor: mgl64.Ident4(),
	}
	if child.props.ProjectionReceiver {
		r.receive = len(r.ops)
	}
	r.ops = append(r.ops, op)
	r.children = append(r.children, op)
	return op
}

// Finish returns the recorded list.
func (r *Recorder) Finish() *OpList {
	l := &OpList{
		ops:                    r.ops,
		children:               r.children,
		projectionReceiveIndex: r.receive,
	}
	r.ops = nil
	r.children = nil
	return l
}

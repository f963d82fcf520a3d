package rendernode

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Op is a single recorded or synthesized drawing operation. Every op can be
// executed immediately (Replay) or recorded for later batching (Defer).
//
// saveCount is the offset added to any save count the op carries: recorded
// restores are relative to their op list, synthesized ones use zero.
type Op interface {
	Defer(ds *DeferState, saveCount, level int, clipToBounds bool)
	Replay(rs *ReplayState, saveCount, level int, clipToBounds bool)
	Name() string
	String() string
}

// SaveOp saves the canvas state.
type SaveOp struct {
	Flags SaveFlags
}

func (op *SaveOp) Defer(ds *DeferState, _, _ int, _ bool) {
	ds.Renderer.Save(op.Flags)
}

func (op *SaveOp) Replay(rs *ReplayState, _, _ int, _ bool) {
	rs.Renderer.Save(op.Flags)
}

func (op *SaveOp) Name() string   { return "Save" }
func (op *SaveOp) String() string { return fmt.Sprintf("Save flags=%d", op.Flags) }

// RestoreToCountOp restores the canvas to Count, offset by the saveCount
// passed at dispatch.
type RestoreToCountOp struct {
	Count int
}

func (op *RestoreToCountOp) Defer(ds *DeferState, saveCount, _ int, _ bool) {
	ds.List.restoreToCount(saveCount + op.Count)
	ds.Renderer.RestoreToCount(saveCount + op.Count)
}

func (op *RestoreToCountOp) Replay(rs *ReplayState, saveCount, _ int, _ bool) {
	rs.Renderer.RestoreToCount(saveCount + op.Count)
}

func (op *RestoreToCountOp) Name() string   { return "RestoreToCount" }
func (op *RestoreToCountOp) String() string { return fmt.Sprintf("RestoreToCount %d", op.Count) }

// TranslateOp translates the current matrix.
type TranslateOp struct {
	X, Y float64
}

func (op *TranslateOp) Defer(ds *DeferState, _, _ int, _ bool) {
	ds.Renderer.Translate(op.X, op.Y, 0)
}

func (op *TranslateOp) Replay(rs *ReplayState, _, _ int, _ bool) {
	rs.Renderer.Translate(op.X, op.Y, 0)
}

func (op *TranslateOp) Name() string   { return "Translate" }
func (op *TranslateOp) String() string { return fmt.Sprintf("Translate %.2f, %.2f", op.X, op.Y) }

// ConcatMatrixOp concatenates Matrix onto the current matrix.
type ConcatMatrixOp struct {
	Matrix mgl64.Mat4
}

func (op *ConcatMatrixOp) Defer(ds *DeferState, _, _ int, _ bool) {
	ds.Renderer.ConcatMatrix(op.Matrix)
}

func (op *ConcatMatrixOp) Replay(rs *ReplayState, _, _ int, _ bool) {
	rs.Renderer.ConcatMatrix(op.Matrix)
}

func (op *ConcatMatrixOp) Name() string   { return "ConcatMatrix" }
func (op *ConcatMatrixOp) String() string { return fmt.Sprintf("ConcatMatrix %v", op.Matrix) }

// ClipRectOp clips to Rect in the current coordinate space.
type ClipRectOp struct {
	Rect Rect
	Op   ClipOp
}

func (op *ClipRectOp) Defer(ds *DeferState, _, _ int, _ bool) {
	ds.Renderer.ClipRect(op.Rect, op.Op)
}

func (op *ClipRectOp) Replay(rs *ReplayState, _, _ int, _ bool) {
	rs.Renderer.ClipRect(op.Rect, op.Op)
}

func (op *ClipRectOp) Name() string { return "ClipRect" }
func (op *ClipRectOp) String() string {
	return fmt.Sprintf("ClipRect %.2f, %.2f, %.2f, %.2f (%s)", op.Rect.X, op.Rect.Y, op.Rect.Right(), op.Rect.Bottom(), op.Op)
}

// ClipOutlineOp clips to a node outline. The outline is referenced, not
// copied; it belongs to the node's properties.
type ClipOutlineOp struct {
	Outline *Outline
	Op      ClipOp
}

func (op *ClipOutlineOp) Defer(ds *DeferState, _, _ int, _ bool) {
	ds.Renderer.ClipOutline(op.Outline, op.Op)
}

func (op *ClipOutlineOp) Replay(rs *ReplayState, _, _ int, _ bool) {
	rs.Renderer.ClipOutline(op.Outline, op.Op)
}

func (op *ClipOutlineOp) Name() string   { return "ClipOutline" }
func (op *ClipOutlineOp) String() string { return fmt.Sprintf("ClipOutline %v", op.Outline.Bounds) }

// SaveLayerOp saves the canvas state and opens an alpha-blended layer.
type SaveLayerOp struct {
	Bounds Rect
	Alpha  float64
	Flags  SaveFlags
}

func (op *SaveLayerOp) Defer(ds *DeferState, _, _ int, _ bool) {
	bounds := ds.Renderer.State().layerBounds(op.Bounds)
	count := ds.Renderer.SaveLayerAlpha(op.Bounds, op.Alpha, op.Flags)
	ds.List.addLayer(count, bounds, op.Alpha)
}

func (op *SaveLayerOp) Replay(rs *ReplayState, _, _ int, _ bool) {
	rs.Renderer.SaveLayerAlpha(op.Bounds, op.Alpha, op.Flags)
}

func (op *SaveLayerOp) Name() string { return "SaveLayerAlpha" }
func (op *SaveLayerOp) String() string {
	return fmt.Sprintf("SaveLayerAlpha %.2f, %.2f, %.2f, %.2f, %d, 0x%x",
		op.Bounds.X, op.Bounds.Y, op.Bounds.Right(), op.Bounds.Bottom(), int(op.Alpha*255), op.Flags)
}

// DrawRectOp fills Rect with Color.
type DrawRectOp struct {
	Rect  Rect
	Color Color
}

func (op *DrawRectOp) Defer(ds *DeferState, _, _ int, _ bool) {
	ds.List.addRect(ds.Renderer.State(), op.Rect, op.Color)
}

func (op *DrawRectOp) Replay(rs *ReplayState, _, _ int, _ bool) {
	rs.Renderer.DrawRect(op.Rect, op.Color)
}

func (op *DrawRectOp) Name() string { return "DrawRect" }
func (op *DrawRectOp) String() string {
	return fmt.Sprintf("DrawRect %.2f, %.2f, %.2f, %.2f", op.Rect.X, op.Rect.Y, op.Rect.Right(), op.Rect.Bottom())
}

// Shadow describes the shadow cast by a Z-translated node.
type Shadow struct {
	// TransformXY places the caster in the plane of its parent.
	TransformXY mgl64.Mat4
	// TransformZ is the true 3D transform; it yields the caster's height.
	TransformZ    mgl64.Mat4
	CasterAlpha   float64
	Outline       *Outline
	Width, Height float64
}

// DrawShadowOp draws the shadow of a caster. It is only ever synthesized by
// the dispatch engine.
type DrawShadowOp struct {
	Shadow Shadow
}

func (op *DrawShadowOp) Defer(ds *DeferState, _, _ int, _ bool) {
	ds.List.addShadow(ds.Renderer.State(), op.Shadow)
}

func (op *DrawShadowOp) Replay(rs *ReplayState, _, _ int, _ bool) {
	rs.Renderer.DrawShadow(op.Shadow)
}

func (op *DrawShadowOp) Name() string { return "DrawShadow" }
func (op *DrawShadowOp) String() string {
	return fmt.Sprintf("DrawShadow %.2fx%.2f alpha=%.2f", op.Shadow.Width, op.Shadow.Height, op.Shadow.CasterAlpha)
}

// DrawRenderNodeOp is the child entry of an op list: it draws Node in the
// op list's order unless SkipInOrderDraw is set, in which case the node is
// drawn by the 3D or projection pass instead.
type DrawRenderNodeOp struct {
	// Node is a non-owning reference; the op list never frees it.
	Node *Node
	// TransformFromParent is the recording-time matrix, immutable once
	// recorded.
	TransformFromParent mgl64.Mat4

	// Rewritten each frame by ordering and dispatch.
	SkipInOrderDraw                  bool
	TransformFromCompositingAncestor mgl64.Mat4
}

func (op *DrawRenderNodeOp) Defer(ds *DeferState, _, level int, _ bool) {
	if op.Node != nil && !op.SkipInOrderDraw {
		op.Node.Defer(ds, level+1)
	}
}

func (op *DrawRenderNodeOp) Replay(rs *ReplayState, _, level int, _ bool) {
	if op.Node != nil && !op.SkipInOrderDraw {
		op.Node.Replay(rs, level+1)
	}
}

func (op *DrawRenderNodeOp) Name() string { return "DrawRenderNode" }
func (op *DrawRenderNodeOp) String() string {
	if op.Node == nil {
		return "DrawRenderNode <nil>"
	}
	return fmt.Sprintf("DrawRenderNode %q", op.Node.Name)
}

package rendernode

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// tag encodes a small integer in a fill color so tests can identify fills.
func tag(id int) Color {
	return Color{R: float64(id) / 100, A: 1}
}

func tagOf(c Color) int {
	return int(math.Round(c.R * 100))
}

type fillRecord struct {
	rect   Rect
	matrix mgl64.Mat4
	clip   Rect
	color  Color
}

// recordingTarget is a Target that records every call.
type recordingTarget struct {
	events []string
	fills  []fillRecord
	depth  int
}

func (t *recordingTarget) FillRect(r Rect, m mgl64.Mat4, clip Rect, c Color) {
	t.fills = append(t.fills, fillRecord{rect: r, matrix: m, clip: clip, color: c})
	t.events = append(t.events, fmt.Sprintf("fill %d a=%.3f", tagOf(c), c.A))
}

func (t *recordingTarget) PushLayer(bounds Rect, alpha float64) {
	t.depth++
	t.events = append(t.events, fmt.Sprintf("push %v %.2f", bounds, alpha))
}

func (t *recordingTarget) PopLayer() {
	t.depth--
	t.events = append(t.events, "pop")
}

func (t *recordingTarget) tags() []int {
	out := make([]int, 0, len(t.fills))
	for _, f := range t.fills {
		out = append(out, tagOf(f.color))
	}
	return out
}

// traceHandler records every op it is handed. State ops are replayed on a
// Painter so save counts stay consistent; child draws are recorded but not
// recursed into.
type traceHandler struct {
	rs      *ReplayState
	events  []string
	casters []*Node
}

func newTraceHandler(width, height int) *traceHandler {
	return &traceHandler{
		rs: &ReplayState{Renderer: NewPainter(nil, width, height), Arena: NewArena(0)},
	}
}

func (h *traceHandler) painter() *Painter {
	return h.rs.Renderer.(*Painter)
}

func (h *traceHandler) Apply(op Op, saveCount int, clipToBounds bool) {
	h.events = append(h.events, h.describe(op))
	if _, ok := op.(*DrawRenderNodeOp); ok {
		return
	}
	op.Replay(h.rs, saveCount, 0, clipToBounds)
}

func (h *traceHandler) Allocator() *Arena { return h.rs.Arena }

func (h *traceHandler) describe(op Op) string {
	switch o := op.(type) {
	case *DrawRenderNodeOp:
		if o.SkipInOrderDraw {
			return "skip:" + o.Node.Name
		}
		return "D:" + o.Node.Name
	case *DrawShadowOp:
		for _, c := range h.casters {
			if o.Shadow.Outline == &c.props.Outline {
				return "S:" + c.Name
			}
		}
		return "S:?"
	case *ClipRectOp:
		return "ClipRect:" + o.Op.String()
	case *DrawRectOp:
		return fmt.Sprintf("DrawRect:%d", tagOf(o.Color))
	default:
		return op.Name()
	}
}

// only returns the events starting with one of the prefixes.
func only(events []string, prefixes ...string) []string {
	var out []string
	for _, e := range events {
		for _, p := range prefixes {
			if len(e) >= len(p) && e[:len(p)] == p {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// newLeaf creates a node of the given size drawing one tagged rect.
func newLeaf(name string, w, h float64, id int) *Node {
	n := NewNode(name)
	n.Properties().SetBounds(0, 0, w, h)
	rec := NewRecorder()
	rec.DrawRect(Rect{Width: w, Height: h}, tag(id))
	n.SetData(rec.Finish())
	return n
}

// newGroup creates a node of the given size drawing its children in order.
func newGroup(name string, w, h float64, children ...*Node) *Node {
	n := NewNode(name)
	n.Properties().SetBounds(0, 0, w, h)
	rec := NewRecorder()
	for _, c := range children {
		rec.DrawRenderNode(c)
	}
	n.SetData(rec.Finish())
	return n
}

func matApproxEqual(a, b mgl64.Mat4) bool {
	return a.ApproxEqualThreshold(b, 1e-9)
}

package rendernode

import (
	"strings"
	"testing"
)

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("n")
	p := n.Properties()
	if p.Alpha != 1 || p.ScaleX != 1 || p.ScaleY != 1 {
		t.Errorf("alpha %v, scale (%v, %v); want 1, (1, 1)", p.Alpha, p.ScaleX, p.ScaleY)
	}
	if !p.ClipToBounds || !p.HasOverlappingRendering {
		t.Error("ClipToBounds and HasOverlappingRendering should default to true")
	}
	if n.IsRenderable() {
		t.Error("node without an op list should not be renderable")
	}
}

func TestNodeIDsUnique(t *testing.T) {
	seen := make(map[uint32]bool)
	for i := 0; i < 100; i++ {
		id := NewNode("n").ID
		if seen[id] {
			t.Fatalf("duplicate ID %d", id)
		}
		seen[id] = true
	}
}

func TestSetDataReleasesOldList(t *testing.T) {
	child := NewNode("child")
	rec := NewRecorder()
	rec.DrawRenderNode(child)
	old := rec.Finish()

	n := NewNode("n")
	n.SetData(old)
	if !n.IsRenderable() {
		t.Fatal("expected renderable")
	}

	rec = NewRecorder()
	rec.DrawRect(Rect{Width: 1, Height: 1}, tag(1))
	n.SetData(rec.Finish())

	if !old.IsEmpty() || len(old.Children()) != 0 {
		t.Error("replaced list still holds ops")
	}
	if old.IsProjectionReceiver() {
		t.Error("released list should not receive projections")
	}
	if n.Data().Len() != 1 {
		t.Errorf("new list len = %d, want 1", n.Data().Len())
	}
}

func TestDestroy(t *testing.T) {
	n := newLeaf("n", 10, 10, 1)
	n.projected = append(n.projected, &DrawRenderNodeOp{})
	n.Destroy()

	if !n.IsDestroyed() {
		t.Error("IsDestroyed = false")
	}
	if n.Data() != nil || n.ProjectedNodes() != nil {
		t.Error("destroyed node still holds its op list or projected nodes")
	}
}

func TestDestroyTwicePanics(t *testing.T) {
	n := NewNode("twice")
	n.Destroy()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on double destroy")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "twice") {
			t.Errorf("panic = %v, want node name", r)
		}
	}()
	n.Destroy()
}

func TestSetDataSameListKeepsOps(t *testing.T) {
	n := newLeaf("n", 10, 10, 1)
	n.SetData(n.Data())

	if n.Data().Len() != 1 || !n.IsRenderable() {
		t.Errorf("ops = %d, renderable = %t; want 1, true", n.Data().Len(), n.IsRenderable())
	}
}

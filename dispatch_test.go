package rendernode

import (
	"slices"
	"strings"
	"testing"
)

func TestIterateProjectionReceivePlacement(t *testing.T) {
	pt := newProjectionTree()
	pt.parent.ComputeOrdering()

	h := newTraceHandler(300, 300)
	pt.parent.iterate(h.painter(), h, 0)

	// Op index 2 draws bg; the projected ripple goes between it and op 3.
	want := []string{
		"Save",
		"ClipRect:intersect",
		"DrawRect:1",
		"DrawRect:2",
		"D:bg",
		"ClipRect:replace",
		"D:ripple",
		"RestoreToCount",
		"DrawRect:4",
		"Save",
		"Translate",
		"D:content",
		"RestoreToCount",
		"RestoreToCount",
	}
	if !slices.Equal(h.events, want) {
		t.Errorf("events:\n got %v\nwant %v", h.events, want)
	}
	if sc := h.painter().SaveCount(); sc != 1 {
		t.Errorf("save count = %d, want 1", sc)
	}
}

func TestReplayProjectedContentFills(t *testing.T) {
	pt := newProjectionTree()
	target := &recordingTarget{}
	s := NewSceneWithConfig(pt.root, Config{})
	s.Draw(target, 300, 300)

	if got, want := target.tags(), []int{1, 2, 3, 9, 4}; !slices.Equal(got, want) {
		t.Errorf("fill order = %v, want %v", got, want)
	}
	// ripple at parent left 100 + 16, 27.
	ripple := target.fills[3]
	x, y := mapPoint(ripple.matrix, 0, 0)
	if x != 116 || y != 27 {
		t.Errorf("ripple origin = (%v, %v), want (116, 27)", x, y)
	}
}

func TestProjectedContentEscapesParentClip(t *testing.T) {
	pt := newProjectionTree()
	// Shrink content so the ripple lies outside its clip; projection
	// replaces the clip with the receiver's bounds.
	pt.content.Properties().SetBounds(5, 5, 6, 6)
	target := &recordingTarget{}
	NewSceneWithConfig(pt.root, Config{}).Draw(target, 300, 300)

	if got := target.tags(); !slices.Contains(got, 9) {
		t.Errorf("fills = %v, want ripple (9) drawn", got)
	}
}

func TestIterateInvisibleEmitsNothing(t *testing.T) {
	tests := []struct {
		name string
		node func() *Node
	}{
		{"alpha zero", func() *Node {
			n := newLeaf("n", 10, 10, 1)
			n.Properties().SetAlpha(0)
			return n
		}},
		{"negative alpha", func() *Node {
			n := newLeaf("n", 10, 10, 1)
			n.Properties().SetAlpha(-1)
			return n
		}},
		{"no op list", func() *Node { return NewNode("n") }},
		{"empty op list", func() *Node {
			n := NewNode("n")
			n.SetData(NewRecorder().Finish())
			return n
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTraceHandler(100, 100)
			tt.node().iterate(h.painter(), h, 0)
			if len(h.events) != 0 {
				t.Errorf("events = %v, want none", h.events)
			}
			if n := h.Allocator().Allocated(); n != 0 {
				t.Errorf("allocated %d ops, want 0", n)
			}
		})
	}
}

func TestIterateDestroyedNodePanics(t *testing.T) {
	n := newLeaf("gone", 10, 10, 1)
	n.Destroy()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "gone") {
			t.Errorf("panic = %v, want node name in message", r)
		}
	}()
	h := newTraceHandler(100, 100)
	n.iterate(h.painter(), h, 0)
}

func TestIterateZOrder(t *testing.T) {
	above := newLeaf("above", 10, 10, 3)
	above.Properties().SetTranslationZ(1)
	flat := newLeaf("flat", 10, 10, 2)
	below := newLeaf("below", 10, 10, 1)
	below.Properties().SetTranslationZ(-1)

	parent := NewNode("parent")
	parent.Properties().SetBounds(0, 0, 100, 100)
	rec := NewRecorder()
	rec.DrawRenderNode(above)
	rec.DrawRenderNode(flat)
	rec.DrawRenderNode(below)
	rec.DrawRect(Rect{Width: 5, Height: 5}, tag(7))
	parent.SetData(rec.Finish())

	h := newTraceHandler(100, 100)
	parent.iterate(h.painter(), h, 0)

	got := only(h.events, "D:", "skip:", "DrawRect")
	want := []string{"D:below", "skip:above", "D:flat", "skip:below", "DrawRect:7", "D:above"}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestSetViewPropertiesAlpha(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(p *Properties)
		wantEvents   []string
		wantAlpha    float64
		wantOverride float64
	}{
		{
			name:         "opaque",
			setup:        func(p *Properties) {},
			wantEvents:   []string{"ClipRect:intersect"},
			wantAlpha:    1,
			wantOverride: 1,
		},
		{
			name:         "overlapping uses layer with clip folded in",
			setup:        func(p *Properties) { p.SetAlpha(0.5) },
			wantEvents:   []string{"SaveLayerAlpha"},
			wantAlpha:    1,
			wantOverride: 1,
		},
		{
			name: "overlapping without clip",
			setup: func(p *Properties) {
				p.SetAlpha(0.5)
				p.ClipToBounds = false
			},
			wantEvents:   []string{"SaveLayerAlpha"},
			wantAlpha:    1,
			wantOverride: 1,
		},
		{
			name: "no overlapping scales alpha",
			setup: func(p *Properties) {
				p.SetAlpha(0.5)
				p.HasOverlappingRendering = false
			},
			wantEvents:   []string{"ClipRect:intersect"},
			wantAlpha:    0.5,
			wantOverride: 1,
		},
		{
			name: "caching overrides layer alpha and skips clip",
			setup: func(p *Properties) {
				p.SetAlpha(0.25)
				p.Caching = true
			},
			wantEvents:   nil,
			wantAlpha:    0.25,
			wantOverride: 0.25,
		},
		{
			name: "clip to outline",
			setup: func(p *Properties) {
				p.ClipToOutline = true
				p.Outline = Outline{Bounds: Rect{X: 2, Y: 2, Width: 4, Height: 4}}
			},
			wantEvents:   []string{"ClipRect:intersect", "ClipOutline"},
			wantAlpha:    1,
			wantOverride: 1,
		},
		{
			name: "empty outline is not clipped to",
			setup: func(p *Properties) {
				p.ClipToOutline = true
			},
			wantEvents:   []string{"ClipRect:intersect"},
			wantAlpha:    1,
			wantOverride: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newLeaf("n", 10, 10, 1)
			tt.setup(n.Properties())
			h := newTraceHandler(100, 100)

			n.setViewProperties(h.painter(), h)

			if !slices.Equal(h.events, tt.wantEvents) {
				t.Errorf("events = %v, want %v", h.events, tt.wantEvents)
			}
			if a := h.painter().State().Alpha; a != tt.wantAlpha {
				t.Errorf("alpha = %v, want %v", a, tt.wantAlpha)
			}
			if a := h.painter().OverrideLayerAlpha(); a != tt.wantOverride {
				t.Errorf("override alpha = %v, want %v", a, tt.wantOverride)
			}
		})
	}
}

func TestSetViewPropertiesLayerFlags(t *testing.T) {
	n := newLeaf("n", 10, 10, 1)
	n.Properties().SetAlpha(0.5)
	h := newTraceHandler(100, 100)
	var layer *SaveLayerOp
	spy := &spyHandler{traceHandler: h, onApply: func(op Op) {
		if l, ok := op.(*SaveLayerOp); ok {
			layer = l
		}
	}}

	n.setViewProperties(h.painter(), spy)

	if layer == nil {
		t.Fatal("no SaveLayerOp emitted")
	}
	if layer.Flags != SaveHasAlphaLayer|SaveClipToLayer {
		t.Errorf("flags = %b, want HasAlphaLayer|ClipToLayer", layer.Flags)
	}
	if layer.Bounds != (Rect{Width: 10, Height: 10}) {
		t.Errorf("bounds = %v", layer.Bounds)
	}
}

type spyHandler struct {
	*traceHandler
	onApply func(op Op)
}

func (s *spyHandler) Apply(op Op, saveCount int, clipToBounds bool) {
	s.onApply(op)
	s.traceHandler.Apply(op, saveCount, clipToBounds)
}

func TestIterateResetsOverrideAlpha(t *testing.T) {
	n := newLeaf("n", 10, 10, 1)
	n.Properties().SetAlpha(0.25)
	n.Properties().Caching = true
	h := newTraceHandler(100, 100)

	n.iterate(h.painter(), h, 0)

	if a := h.painter().OverrideLayerAlpha(); a != 1 {
		t.Errorf("override alpha after iterate = %v, want 1", a)
	}
}

func TestIterateQuickReject(t *testing.T) {
	child := newLeaf("child", 10, 10, 1)
	n := newGroup("offscreen", 10, 10, child)
	n.Properties().SetBounds(500, 500, 510, 510)
	h := newTraceHandler(100, 100)

	n.iterate(h.painter(), h, 0)

	want := []string{"Save", "ClipRect:intersect", "RestoreToCount"}
	if !slices.Equal(h.events, want) {
		t.Errorf("events = %v, want %v", h.events, want)
	}

	// Without clip-to-bounds the content is walked.
	n.Properties().ClipToBounds = false
	h = newTraceHandler(100, 100)
	n.iterate(h.painter(), h, 0)
	if !slices.Contains(h.events, "D:child") {
		t.Errorf("events = %v, want child drawn", h.events)
	}
}

func TestIterateRecordedRestoreUsesOffset(t *testing.T) {
	n := NewNode("n")
	n.Properties().SetBounds(0, 0, 50, 50)
	rec := NewRecorder()
	save := rec.Save(SaveMatrix)
	rec.Translate(5, 5)
	rec.DrawRect(Rect{Width: 5, Height: 5}, tag(1))
	rec.RestoreToCount(save)
	rec.DrawRect(Rect{Width: 5, Height: 5}, tag(2))
	n.SetData(rec.Finish())

	target := &recordingTarget{}
	p := NewPainter(target, 100, 100)
	p.Save(SaveMatrixClip) // an outer save the recording knows nothing about
	p.Translate(10, 0, 0)
	rs := &ReplayState{Renderer: p, Arena: NewArena(0)}
	n.Replay(rs, 0)

	if len(target.fills) != 2 {
		t.Fatalf("fills = %d, want 2", len(target.fills))
	}
	x0, _ := mapPoint(target.fills[0].matrix, 0, 0)
	x1, _ := mapPoint(target.fills[1].matrix, 0, 0)
	if x0 != 15 || x1 != 10 {
		t.Errorf("fill origins x = %v, %v, want 15, 10", x0, x1)
	}
	if sc := p.SaveCount(); sc != 2 {
		t.Errorf("save count = %d, want 2 (outer save kept)", sc)
	}
}

package rendernode

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func entryAt(kind entryKind, id int, x, y float64) deferredEntry {
	r := Rect{X: x, Y: y, Width: 10, Height: 10}
	return deferredEntry{
		kind:   kind,
		rect:   r,
		matrix: mgl64.Ident4(),
		clip:   Rect{Width: 1000, Height: 1000},
		color:  tag(id),
		bounds: r,
	}
}

func flushTags(l *DeferredList) []string {
	target := &recordingTarget{}
	l.Flush(target)
	return target.events
}

func TestDeferredListMergesDisjointBatches(t *testing.T) {
	l := NewDeferredList()
	l.entries = append(l.entries,
		entryAt(entryRect, 1, 0, 0),
		entryAt(entryShadow, 2, 100, 100),
		entryAt(entryRect, 3, 200, 200),
	)

	got := flushTags(l)
	want := []string{"fill 1 a=1.000", "fill 3 a=1.000", "fill 2 a=1.000"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if n := l.LastBatchCount(); n != 2 {
		t.Errorf("batches = %d, want 2", n)
	}
	if l.Len() != 0 {
		t.Errorf("list not emptied: %d entries", l.Len())
	}
}

func TestDeferredListKeepsOverlapOrder(t *testing.T) {
	l := NewDeferredList()
	l.entries = append(l.entries,
		entryAt(entryRect, 1, 0, 0),
		entryAt(entryShadow, 2, 5, 5),
		entryAt(entryRect, 3, 0, 0),
	)

	got := flushTags(l)
	want := []string{"fill 1 a=1.000", "fill 2 a=1.000", "fill 3 a=1.000"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if n := l.LastBatchCount(); n != 3 {
		t.Errorf("batches = %d, want 3", n)
	}
}

func TestDeferredListMergesPastDisjointIntoOlderBatch(t *testing.T) {
	// The third rect overlaps nothing after the first batch, so it joins it
	// even though a shadow batch sits in between.
	l := NewDeferredList()
	l.entries = append(l.entries,
		entryAt(entryRect, 1, 0, 0),
		entryAt(entryShadow, 2, 50, 50),
		entryAt(entryShadow, 3, 60, 60),
		entryAt(entryRect, 4, 5, 5),
	)

	flushTags(l)
	if n := l.LastBatchCount(); n != 2 {
		t.Errorf("batches = %d, want 2", n)
	}
}

func TestDeferredListLayersAreBarriers(t *testing.T) {
	l := NewDeferredList()
	l.entries = append(l.entries, entryAt(entryRect, 1, 0, 0))
	l.addLayer(2, Rect{X: 100, Y: 100, Width: 50, Height: 50}, 0.5)
	l.entries = append(l.entries, entryAt(entryRect, 2, 100, 100))
	l.restoreToCount(2)
	l.entries = append(l.entries, entryAt(entryRect, 3, 300, 300))

	got := flushTags(l)
	want := []string{
		"fill 1 a=1.000",
		"push {100 100 50 50} 0.50",
		"fill 2 a=1.000",
		"pop",
		"fill 3 a=1.000",
	}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if n := l.LastBatchCount(); n != 5 {
		t.Errorf("batches = %d, want 5", n)
	}
}

func TestDeferredListWithoutReorder(t *testing.T) {
	l := NewDeferredList()
	l.Reorder = false
	l.entries = append(l.entries,
		entryAt(entryRect, 1, 0, 0),
		entryAt(entryShadow, 2, 100, 100),
		entryAt(entryRect, 3, 200, 200),
	)

	got := flushTags(l)
	want := []string{"fill 1 a=1.000", "fill 2 a=1.000", "fill 3 a=1.000"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if n := l.LastBatchCount(); n != 3 {
		t.Errorf("batches = %d, want 3", n)
	}
}

func TestDeferredListFlushClosesOpenLayers(t *testing.T) {
	l := NewDeferredList()
	l.addLayer(1, Rect{Width: 10, Height: 10}, 1)
	l.addLayer(2, Rect{Width: 10, Height: 10}, 1)
	target := &recordingTarget{}
	l.Flush(target)

	if target.depth != 0 {
		t.Errorf("depth after flush = %d, want 0", target.depth)
	}
}

func TestDeferredListRestoreClosesOnlyInnerLayers(t *testing.T) {
	l := NewDeferredList()
	l.addLayer(2, Rect{Width: 10, Height: 10}, 1)
	l.addLayer(4, Rect{Width: 10, Height: 10}, 1)

	l.restoreToCount(3)
	if len(l.layers) != 1 {
		t.Fatalf("open layers = %d, want 1", len(l.layers))
	}
	l.restoreToCount(2)
	if len(l.layers) != 0 {
		t.Fatalf("open layers = %d, want 0", len(l.layers))
	}
}

func TestDeferredListDropsClippedDraws(t *testing.T) {
	l := NewDeferredList()
	st := State{Matrix: mgl64.Ident4(), Clip: Rect{Width: 10, Height: 10}, Alpha: 1}
	l.addRect(st, Rect{X: 20, Y: 20, Width: 5, Height: 5}, tag(1))
	l.addRect(st, Rect{Width: 5, Height: 5}, tag(2))
	st.Clip = Rect{}
	l.addRect(st, Rect{Width: 5, Height: 5}, tag(3))

	if l.Len() != 1 {
		t.Errorf("entries = %d, want 1", l.Len())
	}
}

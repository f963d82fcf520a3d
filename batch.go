package rendernode

import "github.com/go-gl/mathgl/mgl64"

type entryKind uint8

const (
	entryRect entryKind = iota
	entryShadow
	entryPushLayer
	entryPopLayer
)

// deferredEntry is one resolved draw or layer barrier. Draws carry the state
// they were deferred under, so they can be replayed in any batch order.
type deferredEntry struct {
	kind   entryKind
	rect   Rect
	matrix mgl64.Mat4
	clip   Rect
	color  Color
	bounds Rect // device space; for layers, the layer bounds
	alpha  float64
}

// batchKey groups entries that a target can submit together.
type batchKey struct {
	kind entryKind
}

type batch struct {
	key     batchKey
	bounds  Rect
	barrier bool
	entries []int
}

// DeferredList is the consumer of the defer pass. Draws are recorded with
// their resolved state, then Flush reorders them into batches of the same
// kind and submits them to a Target. A draw only moves ahead of batches it
// does not overlap, so the painter's order is preserved wherever it is
// visible. Layers are barriers nothing moves across.
type DeferredList struct {
	// Reorder enables batch merging. When false, Flush submits entries in
	// the order they were deferred.
	Reorder bool

	entries []deferredEntry
	layers  []int // save counts of open layers
	batches []batch
	nb      int

	lastBatches int
}

// NewDeferredList creates an empty list with reordering enabled.
func NewDeferredList() *DeferredList {
	return &DeferredList{
		Reorder: true,
		entries: make([]deferredEntry, 0, defaultCommandCap),
	}
}

// drawBounds returns the device-space bounds of r under st, clipped. ok is
// false when nothing of r can be visible.
func drawBounds(st State, m mgl64.Mat4, r Rect) (Rect, bool) {
	if st.Clip.IsEmpty() || r.IsEmpty() {
		return Rect{}, false
	}
	b := mapRect(m, r).Intersect(st.Clip)
	return b, !b.IsEmpty()
}

func (l *DeferredList) addRect(st State, r Rect, c Color) {
	bounds, ok := drawBounds(st, st.Matrix, r)
	if !ok {
		return
	}
	l.entries = append(l.entries, deferredEntry{
		kind:   entryRect,
		rect:   r,
		matrix: st.Matrix,
		clip:   st.Clip,
		color:  c.withAlpha(st.Alpha),
		bounds: bounds,
	})
}

func (l *DeferredList) addShadow(st State, s Shadow) {
	r, m, c, ok := resolveShadow(st, s)
	if !ok {
		return
	}
	bounds, ok := drawBounds(st, m, r)
	if !ok {
		return
	}
	l.entries = append(l.entries, deferredEntry{
		kind:   entryShadow,
		rect:   r,
		matrix: m,
		clip:   st.Clip,
		color:  c,
		bounds: bounds,
	})
}

func (l *DeferredList) addLayer(saveCount int, bounds Rect, alpha float64) {
	l.layers = append(l.layers, saveCount)
	l.entries = append(l.entries, deferredEntry{kind: entryPushLayer, bounds: bounds, alpha: alpha})
}

// restoreToCount closes every layer opened at or above count.
func (l *DeferredList) restoreToCount(count int) {
	for len(l.layers) > 0 && l.layers[len(l.layers)-1] >= count {
		l.layers = l.layers[:len(l.layers)-1]
		l.entries = append(l.entries, deferredEntry{kind: entryPopLayer})
	}
}

// Len returns the number of deferred entries.
func (l *DeferredList) Len() int { return len(l.entries) }

// LastBatchCount returns how many batches the previous Flush submitted.
func (l *DeferredList) LastBatchCount() int { return l.lastBatches }

func (l *DeferredList) newBatch(key batchKey, barrier bool) *batch {
	if l.nb == len(l.batches) {
		l.batches = append(l.batches, batch{})
	}
	b := &l.batches[l.nb]
	l.nb++
	b.key = key
	b.bounds = Rect{}
	b.barrier = barrier
	b.entries = b.entries[:0]
	return b
}

// buildBatches assigns every entry to a batch.
func (l *DeferredList) buildBatches() {
	l.nb = 0
	frozen := 0
	for i := range l.entries {
		e := &l.entries[i]
		if e.kind == entryPushLayer || e.kind == entryPopLayer {
			b := l.newBatch(batchKey{kind: e.kind}, true)
			b.entries = append(b.entries, i)
			frozen = l.nb
			continue
		}
		key := batchKey{kind: e.kind}
		var target *batch
		if l.Reorder {
			for j := l.nb - 1; j >= frozen; j-- {
				b := &l.batches[j]
				if b.key == key {
					target = b
					break
				}
				if b.bounds.Intersects(e.bounds) {
					break
				}
			}
		}
		if target == nil {
			target = l.newBatch(key, false)
		}
		target.entries = append(target.entries, i)
		target.bounds = target.bounds.Union(e.bounds)
	}
}

// Flush submits all deferred entries to t in batch order and empties the
// list. Layers still open are closed.
func (l *DeferredList) Flush(t Target) {
	l.buildBatches()
	for bi := 0; bi < l.nb; bi++ {
		for _, i := range l.batches[bi].entries {
			e := &l.entries[i]
			switch e.kind {
			case entryPushLayer:
				t.PushLayer(e.bounds, e.alpha)
			case entryPopLayer:
				t.PopLayer()
			default:
				t.FillRect(e.rect, e.matrix, e.clip, e.color)
			}
		}
	}
	for range l.layers {
		t.PopLayer()
	}
	l.lastBatches = l.nb
	l.Reset()
}

// Reset discards all entries without submitting them.
func (l *DeferredList) Reset() {
	l.entries = l.entries[:0]
	l.layers = l.layers[:0]
	l.nb = 0
}

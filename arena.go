package rendernode

import "github.com/go-gl/mathgl/mgl64"

const defaultArenaChunk = 64

// slab hands out pointers into fixed-size chunks. Chunks are never grown in
// place, so a pointer stays valid until reset. After warmup, alloc is
// zero-alloc.
type slab[T any] struct {
	chunks [][]T
	chunk  int
	used   int
}

func (s *slab[T]) alloc() *T {
	if s.chunk <= 0 {
		s.chunk = defaultArenaChunk
	}
	ci, i := s.used/s.chunk, s.used%s.chunk
	if ci == len(s.chunks) {
		s.chunks = append(s.chunks, make([]T, s.chunk))
	}
	s.used++
	p := &s.chunks[ci][i]
	var zero T
	*p = zero
	return p
}

func (s *slab[T]) reset() {
	s.used = 0
}

// Arena is the pass-scoped allocator for ops the dispatch engine synthesizes
// (saves, restores, clips, layers, shadows). Ops it returns stay valid until
// Reset, which releases them all at once at the end of a replay frame or a
// deferred flush.
//
// The zero value is ready to use.
type Arena struct {
	saves    slab[SaveOp]
	restores slab[RestoreToCountOp]
	clips    slab[ClipRectOp]
	outlines slab[ClipOutlineOp]
	layers   slab[SaveLayerOp]
	shadows  slab[DrawShadowOp]
}

// NewArena creates an arena whose slabs grow in chunks of chunkSize ops.
// A non-positive chunkSize selects the default.
func NewArena(chunkSize int) *Arena {
	a := &Arena{}
	if chunkSize > 0 {
		a.saves.chunk = chunkSize
		a.restores.chunk = chunkSize
		a.clips.chunk = chunkSize
		a.outlines.chunk = chunkSize
		a.layers.chunk = chunkSize
		a.shadows.chunk = chunkSize
	}
	return a
}

// NewSave allocates a SaveOp.
func (a *Arena) NewSave(flags SaveFlags) *SaveOp {
	op := a.saves.alloc()
	op.Flags = flags
	return op
}

// NewRestoreToCount allocates a RestoreToCountOp.
func (a *Arena) NewRestoreToCount(count int) *RestoreToCountOp {
	op := a.restores.alloc()
	op.Count = count
	return op
}

// NewClipRect allocates a ClipRectOp.
func (a *Arena) NewClipRect(r Rect, clipOp ClipOp) *ClipRectOp {
	op := a.clips.alloc()
	op.Rect = r
	op.Op = clipOp
	return op
}

// NewClipOutline allocates a ClipOutlineOp.
func (a *Arena) NewClipOutline(o *Outline, clipOp ClipOp) *ClipOutlineOp {
	op := a.outlines.alloc()
	op.Outline = o
	op.Op = clipOp
	return op
}

// NewSaveLayer allocates a SaveLayerOp.
func (a *Arena) NewSaveLayer(bounds Rect, alpha float64, flags SaveFlags) *SaveLayerOp {
	op := a.layers.alloc()
	op.Bounds = bounds
	op.Alpha = alpha
	op.Flags = flags
	return op
}

// NewShadow allocates a DrawShadowOp.
func (a *Arena) NewShadow(xy, z mgl64.Mat4, alpha float64, outline *Outline, width, height float64) *DrawShadowOp {
	op := a.shadows.alloc()
	op.Shadow = Shadow{
		TransformXY: xy,
		TransformZ:  z,
		CasterAlpha: alpha,
		Outline:     outline,
		Width:       width,
		Height:      height,
	}
	return op
}

// Allocated returns the number of ops handed out since the last Reset.
func (a *Arena) Allocated() int {
	return a.saves.used + a.restores.used + a.clips.used +
		a.outlines.used + a.layers.used + a.shadows.used
}

// Reset releases every op allocated since the previous Reset. Pointers
// obtained before Reset must not be used afterwards.
func (a *Arena) Reset() {
	a.saves.reset()
	a.restores.reset()
	a.clips.reset()
	a.outlines.reset()
	a.layers.reset()
	a.shadows.reset()
}

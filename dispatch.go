package rendernode

import (
	"context"
	"log/slog"
)

// propertySaveCount is the save count offset passed with synthesized ops.
// They are not part of a recorded list, so there is no record-time base
// save count to compensate for.
const propertySaveCount = 0

// Handler executes the ops a traversal emits. Exactly two implementations
// exist: one draws immediately (replay), one records for batching (defer).
// The traversal never distinguishes between them.
type Handler interface {
	// Apply performs or records op. saveCount offsets any save count the op
	// carries.
	Apply(op Op, saveCount int, clipToBounds bool)
	// Allocator returns the pass-scoped arena for synthesized ops.
	Allocator() *Arena
}

// iterate walks n for one frame: property setup, negative Z children, the
// recorded ops with projected content spliced in at the receive index,
// positive Z children, teardown.
func (n *Node) iterate(r Renderer, h Handler, level int) {
	if n.destroyed {
		fatalf("render node %q (ID %d) drawn after destruction", n.Name, n.ID)
	}
	if n.data.IsEmpty() || n.props.Alpha <= 0 {
		if l := logger(); l.Enabled(context.Background(), slog.LevelDebug) {
			l.Debug("skipping empty or invisible node", "node", n.Name, "level", level)
		}
		return
	}

	alloc := h.Allocator()
	clip := n.props.ClipToBounds
	restoreTo := r.SaveCount()
	h.Apply(alloc.NewSave(SaveMatrixClip), propertySaveCount, clip)

	n.setViewProperties(r, h)

	quickRejected := clip && r.QuickRejectConservative(n.props.Bounds())
	if !quickRejected {
		var zbuf [8]zBucket
		zs := n.buildZSortedChildList(zbuf[:0])

		n.iterate3dChildren(zs, negativeZChildren, r, h)

		saveCountOffset := r.SaveCount() - 1
		receiveIndex := n.data.projectionReceiveIndex
		for i, op := range n.data.ops {
			h.Apply(op, saveCountOffset, clip)
			if i == receiveIndex && len(n.projected) > 0 {
				n.iterateProjectedChildren(r, h)
			}
		}

		n.iterate3dChildren(zs, positiveZChildren, r, h)
	}

	// Reset inside the node's save so the restore hands the parent back its
	// own override.
	r.SetOverrideLayerAlpha(1)
	h.Apply(alloc.NewRestoreToCount(restoreTo), propertySaveCount, clip)
}

// setViewProperties emits the ops that place n in its parent: bounds offset,
// static or animation matrix, the property transform, alpha, then clipping.
func (n *Node) setViewProperties(r Renderer, h Handler) {
	p := &n.props
	p.updateMatrix()
	if p.Left != 0 || p.Top != 0 {
		r.Translate(p.Left, p.Top, 0)
	}
	if p.StaticMatrix != nil {
		r.ConcatMatrix(*p.StaticMatrix)
	} else if p.AnimationMatrix != nil {
		r.ConcatMatrix(*p.AnimationMatrix)
	}
	if p.flags != 0 {
		if p.flags == flagTranslation {
			r.Translate(p.TranslationX, p.TranslationY, 0)
		} else {
			r.ConcatMatrix(p.transform)
		}
	}

	alloc := h.Allocator()
	clipToBoundsNeeded := p.ClipToBounds && !p.Caching
	if p.Alpha < 1 {
		switch {
		case p.Caching:
			r.SetOverrideLayerAlpha(p.Alpha)
		case !p.HasOverlappingRendering:
			r.ScaleAlpha(p.Alpha)
		default:
			flags := SaveHasAlphaLayer
			if clipToBoundsNeeded {
				// The layer bounds do the clipping.
				flags |= SaveClipToLayer
				clipToBoundsNeeded = false
			}
			h.Apply(alloc.NewSaveLayer(p.Bounds(), p.Alpha, flags), propertySaveCount, p.ClipToBounds)
		}
	}
	if clipToBoundsNeeded {
		h.Apply(alloc.NewClipRect(p.Bounds(), ClipIntersect), propertySaveCount, p.ClipToBounds)
	}
	if p.ClipToOutline && !p.Outline.IsEmpty() {
		h.Apply(alloc.NewClipOutline(&p.Outline, ClipIntersect), propertySaveCount, p.ClipToBounds)
	}
}

// iterateProjectedChildren draws the entries projected onto n, each with
// the transform recorded by the ordering pass. The clip is replaced by n's
// bounds: projected content is not bound by its logical parent's clip.
func (n *Node) iterateProjectedChildren(r Renderer, h Handler) {
	alloc := h.Allocator()
	clip := n.props.ClipToBounds
	rootRestoreTo := r.Save(SaveMatrixClip)
	h.Apply(alloc.NewClipRect(n.props.Bounds(), ClipReplace), propertySaveCount, clip)

	for _, childOp := range n.projected {
		restoreTo := r.Save(SaveMatrix)
		r.ConcatMatrix(childOp.TransformFromCompositingAncestor)
		childOp.SkipInOrderDraw = false
		h.Apply(childOp, r.SaveCount()-1, clip)
		childOp.SkipInOrderDraw = true
		r.RestoreToCount(restoreTo)
	}
	h.Apply(alloc.NewRestoreToCount(rootRestoreTo), propertySaveCount, clip)
}

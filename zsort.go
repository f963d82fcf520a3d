package rendernode

// shadowDelta is the Z gap under which consecutive casters have their
// shadows drawn together, ahead of any of the casters themselves.
const shadowDelta = 0.1

// childrenSelectMode picks which side of Z = 0 a 3D pass draws.
type childrenSelectMode uint8

const (
	negativeZChildren childrenSelectMode = iota
	positiveZChildren
)

// zBucket pairs a Z-translated child entry with its Z value.
type zBucket struct {
	z     float64
	entry *DrawRenderNodeOp
}

// buildZSortedChildList appends n's Z-translated children to buf, flags
// them to skip in-order drawing, and sorts buf by Z. Children with equal Z
// keep their recorded order.
func (n *Node) buildZSortedChildList(buf []zBucket) []zBucket {
	for _, child := range n.data.Children() {
		childProps := &child.Node.props
		if z := childProps.TranslationZ; z != 0 {
			buf = append(buf, zBucket{z: z, entry: child})
			child.SkipInOrderDraw = true
		} else if !childProps.ProjectBackwards {
			child.SkipInOrderDraw = false
		}
	}
	sortZBuckets(buf)
	return buf
}

// sortZBuckets is a stable insertion sort. Child lists are short and usually
// already ordered, which is the case insertion sort handles in linear time.
func sortZBuckets(zs []zBucket) {
	for i := 1; i < len(zs); i++ {
		key := zs[i]
		j := i - 1
		for j >= 0 && zs[j].z > key.z {
			zs[j+1] = zs[j]
			j--
		}
		zs[j+1] = key
	}
}

// findNonNegativeIndex returns the index of the first bucket with Z >= 0, or
// len(zs).
func findNonNegativeIndex(zs []zBucket) int {
	for i := range zs {
		if zs[i].z >= 0 {
			return i
		}
	}
	return len(zs)
}

// iterate3dChildren draws the Z-translated children on one side of the
// plane, clipped to n's bounds. In positive mode each caster's shadow is
// drawn before the caster; shadows of casters within shadowDelta of the
// previously visited caster are drawn before any of those casters.
func (n *Node) iterate3dChildren(zs []zBucket, mode childrenSelectMode, r Renderer, h Handler) {
	size := len(zs)
	if size == 0 ||
		(mode == negativeZChildren && zs[0].z >= 0) ||
		(mode == positiveZChildren && zs[size-1].z < 0) {
		return
	}

	alloc := h.Allocator()
	clip := n.props.ClipToBounds
	rootRestoreTo := r.Save(SaveMatrixClip)
	h.Apply(alloc.NewClipRect(n.props.Bounds(), ClipIntersect), propertySaveCount, clip)

	nonNegative := findNonNegativeIndex(zs)
	var drawIndex, shadowIndex, endIndex int
	if mode == negativeZChildren {
		drawIndex = 0
		endIndex = nonNegative
		shadowIndex = endIndex // no shadows
	} else {
		drawIndex = nonNegative
		endIndex = size
		shadowIndex = drawIndex
	}

	lastCasterZ := 0.0
	for shadowIndex < endIndex || drawIndex < endIndex {
		if shadowIndex < endIndex {
			casterOp := zs[shadowIndex].entry
			casterZ := zs[shadowIndex].z
			if shadowIndex == drawIndex || casterZ-lastCasterZ < shadowDelta {
				caster := casterOp.Node
				if caster.props.CastsShadow && caster.props.Alpha > 0 {
					xy := caster.applyPropertyTransforms(casterOp.TransformFromParent, false)
					z := caster.applyPropertyTransforms(casterOp.TransformFromParent, true)
					shadow := alloc.NewShadow(xy, z, caster.props.Alpha, &caster.props.Outline,
						caster.props.Width(), caster.props.Height())
					h.Apply(shadow, propertySaveCount, clip)
				}
				// Updated even when the caster casts no shadow.
				lastCasterZ = casterZ
				shadowIndex++
				continue
			}
		}

		// Only the matrix needs isolating around a child draw.
		restoreTo := r.Save(SaveMatrix)
		childOp := zs[drawIndex].entry
		r.ConcatMatrix(childOp.TransformFromParent)
		childOp.SkipInOrderDraw = false
		h.Apply(childOp, r.SaveCount()-1, clip)
		childOp.SkipInOrderDraw = true
		r.RestoreToCount(restoreTo)
		drawIndex++
	}
	h.Apply(alloc.NewRestoreToCount(rootRestoreTo), propertySaveCount, clip)
}

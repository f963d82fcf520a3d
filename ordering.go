package rendernode

import "github.com/go-gl/mathgl/mgl64"

// ComputeOrdering classifies every descendant of n as drawn in order or
// projected, and records for each projected descendant the transform from
// the ancestor it is composited onto. It must run once per frame before
// dispatch; running it again without mutating the tree gives the same result.
func (n *Node) ComputeOrdering() {
	clear(n.projected)
	n.projected = n.projected[:0]
	for _, child := range n.data.Children() {
		child.Node.computeOrderingImpl(child, &n.projected, mgl64.Ident4())
	}
}

// computeOrderingImpl handles one child entry. collector is the projected
// list of the nearest receiving ancestor and fromSurface the transform from
// that ancestor to the entry's parent.
func (n *Node) computeOrderingImpl(entry *DrawRenderNodeOp, collector *[]*DrawRenderNodeOp, fromSurface mgl64.Mat4) {
	clear(n.projected)
	n.projected = n.projected[:0]
	if n.data.IsEmpty() {
		return
	}

	local := fromSurface.Mul4(entry.TransformFromParent)

	if n.props.ProjectBackwards {
		entry.SkipInOrderDraw = true
		entry.TransformFromCompositingAncestor = local
		*collector = append(*collector, entry)
	} else {
		entry.SkipInOrderDraw = false
	}

	children := n.data.Children()
	if len(children) == 0 {
		return
	}
	receiver := n.data.IsProjectionReceiver()
	applied := false
	for _, child := range children {
		if receiver && !child.Node.props.ProjectBackwards {
			// A direct child projecting backwards is passed the outer
			// collector: it must not project onto the parent it already
			// draws in.
			child.Node.computeOrderingImpl(child, &n.projected, mgl64.Ident4())
			continue
		}
		if !applied {
			local = n.applyPropertyTransforms(local, false)
			applied = true
		}
		child.Node.computeOrderingImpl(child, collector, local)
	}
}

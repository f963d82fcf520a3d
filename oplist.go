package rendernode

// OpList is a recorded op list: the ordered ops of one render node, the
// child entries among them, and the index after which projected content is
// spliced. An OpList is immutable once built by a Recorder, except for the
// per-frame fields of its child entries.
type OpList struct {
	ops      []Op
	children []*DrawRenderNodeOp

	// projectionReceiveIndex is the index of the op after which projected
	// descendants are drawn, or -1.
	projectionReceiveIndex int
}

// IsEmpty reports whether the list is nil or holds no ops.
func (l *OpList) IsEmpty() bool {
	return l == nil || len(l.ops) == 0
}

// Len returns the number of ops; zero for a nil list.
func (l *OpList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.ops)
}

// Ops returns the recorded ops. The returned slice MUST NOT be mutated.
func (l *OpList) Ops() []Op {
	if l == nil {
		return nil
	}
	return l.ops
}

// Children returns the child entries in recorded order. The returned slice
// MUST NOT be mutated.
func (l *OpList) Children() []*DrawRenderNodeOp {
	if l == nil {
		return nil
	}
	return l.children
}

// ProjectionReceiveIndex returns the op index after which projected content
// is drawn, or -1 when this list does not receive projections.
func (l *OpList) ProjectionReceiveIndex() int {
	if l == nil {
		return -1
	}
	return l.projectionReceiveIndex
}

// IsProjectionReceiver reports whether the list has a receive index.
func (l *OpList) IsProjectionReceiver() bool {
	return l.ProjectionReceiveIndex() >= 0
}

// release drops the list's references so a replaced or destroyed list does
// not keep child nodes reachable.
func (l *OpList) release() {
	clear(l.ops)
	clear(l.children)
	l.ops = nil
	l.children = nil
	l.projectionReceiveIndex = -1
}

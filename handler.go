package rendernode

// DeferState is the context of a defer pass. Ops update Renderer for state
// bookkeeping and record their draws into List for batching.
type DeferState struct {
	Renderer Canvas
	List     *DeferredList
	Arena    *Arena
	Log      *OpLog
}

// ReplayState is the context of a replay pass. Ops draw through Renderer
// immediately.
type ReplayState struct {
	Renderer Canvas
	Arena    *Arena
	Log      *OpLog
}

type deferHandler struct {
	state *DeferState
	level int
}

func (h deferHandler) Apply(op Op, saveCount int, clipToBounds bool) {
	h.state.Log.Write(h.level, op.Name())
	op.Defer(h.state, saveCount, h.level, clipToBounds)
}

func (h deferHandler) Allocator() *Arena { return h.state.Arena }

type replayHandler struct {
	state *ReplayState
	level int
}

func (h replayHandler) Apply(op Op, saveCount int, clipToBounds bool) {
	h.state.Log.Write(h.level, op.Name())
	op.Replay(h.state, saveCount, h.level, clipToBounds)
}

func (h replayHandler) Allocator() *Arena { return h.state.Arena }

// Defer walks n and records its draws into ds.List.
func (n *Node) Defer(ds *DeferState, level int) {
	n.iterate(ds.Renderer, deferHandler{state: ds, level: level}, level)
}

// Replay walks n and draws it through rs.Renderer. The walk is bracketed by
// a canvas mark named after the node.
func (n *Node) Replay(rs *ReplayState, level int) {
	rs.Renderer.StartMark(n.Name)
	n.iterate(rs.Renderer, replayHandler{state: rs, level: level}, level)
	rs.Renderer.EndMark()
}

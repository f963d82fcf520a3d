package rendernode

import (
	"time"
)

const defaultCommandCap = 1024

// Scene is the per-frame context of a render node tree. It owns everything a
// frame needs besides the tree itself: the arena for synthesized ops, the
// deferred list, the op log and the deferred-destruction queue.
type Scene struct {
	root *Node
	cfg  Config

	arena *Arena
	list  *DeferredList
	log   *OpLog

	// Painters are cached across frames and rebuilt when the target or the
	// size changes.
	deferPainter  *Painter
	replayPainter *Painter
	replayTarget  Target
	width, height int

	// garbage holds nodes whose destruction waits for the end of the frame.
	garbage []*Node

	lastStats debugStats
}

// NewScene creates a scene drawing root with DefaultConfig.
func NewScene(root *Node) *Scene {
	return NewSceneWithConfig(root, DefaultConfig())
}

// NewSceneWithConfig creates a scene drawing root with cfg.
func NewSceneWithConfig(root *Node, cfg Config) *Scene {
	list := NewDeferredList()
	list.Reorder = cfg.Reorder
	return &Scene{
		root:  root,
		cfg:   cfg,
		arena: NewArena(cfg.ArenaChunkSize),
		list:  list,
		log:   NewOpLog(cfg.OpLogSize),
	}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetRoot replaces the root node. The previous root is not destroyed.
func (s *Scene) SetRoot(root *Node) {
	s.root = root
}

// Config returns the scene configuration.
func (s *Scene) Config() Config {
	return s.cfg
}

// SetDebugMode enables or disables per-frame stats logging.
func (s *Scene) SetDebugMode(enabled bool) {
	s.cfg.Debug = enabled
}

// OpLog returns the log of recently dispatched ops.
func (s *Scene) OpLog() *OpLog {
	return s.log
}

// Arena returns the scene's pass-scoped arena.
func (s *Scene) Arena() *Arena {
	return s.arena
}

// Draw renders the tree into t using the mode selected by the config.
func (s *Scene) Draw(t Target, width, height int) {
	if s.cfg.Deferred {
		s.DrawDeferred(t, width, height)
		return
	}
	if s.replayPainter == nil || s.replayTarget != t || s.width != width || s.height != height {
		s.replayPainter = NewPainter(t, width, height)
		s.replayTarget = t
		s.width, s.height = width, height
	}
	s.replayPainter.Reset()
	s.DrawReplay(s.replayPainter)
}

// DrawReplay runs the ordering pass and replays the tree through c.
func (s *Scene) DrawReplay(c Canvas) {
	var stats debugStats
	var t0 time.Time
	if s.cfg.Debug {
		t0 = time.Now()
		debugCheckTreeDepth(s.root)
	}

	s.root.ComputeOrdering()

	if s.cfg.Debug {
		stats.orderTime = time.Since(t0)
		t0 = time.Now()
	}

	start := s.log.Len()
	rs := &ReplayState{Renderer: c, Arena: s.arena, Log: s.log}
	s.root.Replay(rs, 0)

	if s.cfg.Debug {
		stats.dispatchTime = time.Since(t0)
		stats.opCount = s.log.Len() - start
		stats.synthesized = s.arena.Allocated()
	}
	s.endFrame(&stats)
}

// DrawDeferred runs the ordering pass, defers the tree into the scene's
// deferred list and flushes it to t.
func (s *Scene) DrawDeferred(t Target, width, height int) {
	var stats debugStats
	var t0 time.Time
	if s.cfg.Debug {
		t0 = time.Now()
		debugCheckTreeDepth(s.root)
	}

	s.root.ComputeOrdering()

	if s.cfg.Debug {
		stats.orderTime = time.Since(t0)
		t0 = time.Now()
	}

	if s.deferPainter == nil || s.width != width || s.height != height {
		s.deferPainter = NewPainter(nil, width, height)
		s.width, s.height = width, height
		s.replayPainter = nil
	}
	s.deferPainter.Reset()
	start := s.log.Len()
	ds := &DeferState{Renderer: s.deferPainter, List: s.list, Arena: s.arena, Log: s.log}
	s.root.Defer(ds, 0)

	if s.cfg.Debug {
		stats.dispatchTime = time.Since(t0)
		stats.opCount = s.log.Len() - start
		stats.synthesized = s.arena.Allocated()
		stats.entryCount = s.list.Len()
		t0 = time.Now()
	}

	s.list.Flush(t)

	if s.cfg.Debug {
		stats.flushTime = time.Since(t0)
		stats.batchCount = s.list.LastBatchCount()
	}
	s.endFrame(&stats)
}

func (s *Scene) endFrame(stats *debugStats) {
	s.arena.Reset()
	stats.released = s.ReleaseGarbage()
	s.lastStats = *stats
	s.debugLog(*stats)
}

// DestroyDeferred queues n for destruction at the end of the current or
// next frame, once no pass can reference it. Queuing a node twice destroys
// it once.
func (s *Scene) DestroyDeferred(n *Node) {
	for _, g := range s.garbage {
		if g == n {
			return
		}
	}
	s.garbage = append(s.garbage, n)
}

// ReleaseGarbage destroys every queued node and returns how many were
// destroyed. It runs at the end of every Draw call.
func (s *Scene) ReleaseGarbage() int {
	count := len(s.garbage)
	for i, n := range s.garbage {
		n.Destroy()
		s.garbage[i] = nil
	}
	s.garbage = s.garbage[:0]
	return count
}

// PendingGarbage returns the number of nodes waiting for destruction.
func (s *Scene) PendingGarbage() int {
	return len(s.garbage)
}

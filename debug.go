package rendernode

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing and op metrics.
// Only populated when the scene is in debug mode.
type debugStats struct {
	orderTime    time.Duration
	dispatchTime time.Duration
	flushTime    time.Duration
	opCount      int
	synthesized  int
	entryCount   int
	batchCount   int
	released     int
}

// debugLog logs the frame's stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.cfg.Debug {
		return
	}
	total := stats.orderTime + stats.dispatchTime + stats.flushTime
	logger().Debug("frame",
		"order", stats.orderTime,
		"dispatch", stats.dispatchTime,
		"flush", stats.flushTime,
		"total", total,
		"ops", stats.opCount,
		"synthesized", stats.synthesized,
		"entries", stats.entryCount,
		"batches", stats.batchCount,
		"released", stats.released,
	)
}

// fatalf logs and panics. Used for lifecycle violations that leave the tree
// in a state no traversal may continue from.
func fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger().Error(msg)
	panic("rendernode: " + msg)
}

// debugMaxTreeDepth is the depth beyond which checkTreeDepth warns.
const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if the tree under n is deeper than
// debugMaxTreeDepth. Children are reached through their op lists.
func debugCheckTreeDepth(n *Node) {
	if d := treeDepth(n, 0); d > debugMaxTreeDepth {
		logger().Warn("tree depth exceeds threshold", "node", n.Name, "depth", d, "threshold", debugMaxTreeDepth)
	}
}

func treeDepth(n *Node, depth int) int {
	depth++
	// Cut off cycles and pathological trees.
	if depth > 4*debugMaxTreeDepth {
		return depth
	}
	deepest := depth
	for _, child := range n.data.Children() {
		if child.Node == nil {
			continue
		}
		if d := treeDepth(child.Node, depth); d > deepest {
			deepest = d
		}
	}
	return deepest
}

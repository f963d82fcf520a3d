package rendernode

import (
	"context"
	"log/slog"
)

// nodeIDCounter is a plain counter (no atomic, traversal is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a render node: a recorded op list plus the visual properties it is
// drawn with. Children are not held directly; they are referenced by the
// DrawRenderNodeOp entries of the op list, so the owning structure stays a
// tree even though projection draws descendants under other ancestors.
type Node struct {
	ID   uint32
	Name string

	props Properties
	data  *OpList

	// projected holds the descendants projected onto this node. Rebuilt from
	// scratch by every ordering pass.
	projected []*DrawRenderNodeOp

	destroyed bool
}

// NewNode creates a render node with default properties and no op list.
func NewNode(name string) *Node {
	return &Node{
		ID:    nextNodeID(),
		Name:  name,
		props: defaultProperties(),
	}
}

// Properties returns the node's mutable property set.
func (n *Node) Properties() *Properties {
	return &n.props
}

// Data returns the node's op list, or nil.
func (n *Node) Data() *OpList {
	return n.data
}

// SetData replaces the node's op list. The previous list is released; the
// nodes it referenced are not touched. Setting the current list again is a
// no-op.
func (n *Node) SetData(data *OpList) {
	if n.data == data {
		return
	}
	if n.data != nil {
		n.data.release()
	}
	n.data = data
	if l := logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("op list replaced", "node", n.Name, "ops", data.Len())
	}
}

// IsRenderable reports whether the node has anything to draw.
func (n *Node) IsRenderable() bool {
	return !n.data.IsEmpty()
}

// ProjectedNodes returns the child entries projected onto this node by the
// last ordering pass. The returned slice MUST NOT be mutated.
func (n *Node) ProjectedNodes() []*DrawRenderNodeOp {
	return n.projected
}

// Destroy releases the node's op list and marks it destroyed. Destroying a
// node twice, or drawing a destroyed node, is a fatal error.
func (n *Node) Destroy() {
	if n.destroyed {
		fatalf("double destroy of render node %q (ID %d)", n.Name, n.ID)
	}
	n.destroyed = true
	if n.data != nil {
		n.data.release()
		n.data = nil
	}
	clear(n.projected)
	n.projected = nil
}

// IsDestroyed reports whether Destroy has been called.
func (n *Node) IsDestroyed() bool {
	return n.destroyed
}

// Package rendernode draws trees of recorded render nodes.
//
// A [Node] holds a recorded [OpList] and a set of visual [Properties]
// (bounds, transform, alpha, clipping, elevation). Op lists are built with a
// [Recorder]; child nodes are referenced from their parent's op list through
// [DrawRenderNodeOp] entries, each carrying the matrix the child was recorded
// with.
//
// # Drawing
//
// A [Scene] draws a tree once per frame in two steps. The ordering pass
// ([Node.ComputeOrdering]) finds every node that projects backwards onto a
// receiving ancestor and computes its transform relative to that ancestor.
// The dispatch pass then walks the tree, applying each node's properties
// around its ops, drawing children with negative elevation first and
// positive elevation last (with shadows), and splicing projected content
// right after the receiving child.
//
// The dispatch pass runs in one of two modes sharing the same walk:
//
//   - Replay draws every op immediately through a [Canvas].
//   - Defer records resolved draws into a [DeferredList], which merges
//     non-overlapping draws of the same kind into batches and flushes them
//     to a [Target].
//
//	root := rendernode.NewNode("root")
//	root.Properties().SetBounds(0, 0, 640, 480)
//	rec := rendernode.NewRecorder()
//	rec.DrawRect(rendernode.Rect{Width: 640, Height: 480}, bg)
//	rec.DrawRenderNode(card)
//	root.SetData(rec.Finish())
//
//	scene := rendernode.NewScene(root)
//	scene.Draw(target, 640, 480)
//
// Targets for [Ebitengine] and gg live in the ebitentarget and ggtarget
// subpackages.
//
// # Lifetimes
//
// Ops synthesized during a pass (saves, clips, layers, shadows) come from the
// scene's [Arena] and are released at the end of the frame. Nodes removed
// from a tree mid-frame should be handed to [Scene.DestroyDeferred] rather
// than destroyed directly; drawing a destroyed node is a fatal error.
//
// # Configuration and logging
//
// [Config] selects the draw mode and sizes; it can be loaded from TOML with
// [LoadConfig] or [LoadConfigFile]. Nothing is logged unless a logger is
// installed with [SetLogger].
//
// [Ebitengine]: https://ebitengine.org
package rendernode

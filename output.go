package rendernode

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a textual description of the tree under n to w: each node's
// save, property ops and recorded ops, recursing into children in recorded
// order. It follows the same property logic as dispatch but does not run
// the ordering pass or touch any state.
func (n *Node) Dump(w io.Writer) error {
	d := dumper{w: w}
	d.node(n, 1)
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) printf(level int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s"+format+"\n", append([]any{strings.Repeat("  ", level)}, args...)...)
}

func (d *dumper) node(n *Node, level int) {
	d.printf(level-1, "Start display list (%s, ID %d, render=%t)", n.Name, n.ID, n.IsRenderable())
	d.printf(level, "Save %d", SaveMatrixClip)
	d.viewProperties(n, level)
	for _, op := range n.data.Ops() {
		d.printf(level, "%s", op)
		if child, ok := op.(*DrawRenderNodeOp); ok && child.Node != nil {
			d.node(child.Node, level+1)
		}
	}
	d.printf(level-1, "Done (%s)", n.Name)
}

func (d *dumper) viewProperties(n *Node, level int) {
	p := &n.props
	p.updateMatrix()
	if p.Left != 0 || p.Top != 0 {
		d.printf(level, "Translate (left, top) %.2f, %.2f", p.Left, p.Top)
	}
	if p.StaticMatrix != nil {
		d.printf(level, "ConcatMatrix (static) %v", *p.StaticMatrix)
	}
	if p.AnimationMatrix != nil {
		d.printf(level, "ConcatMatrix (animation) %v", *p.AnimationMatrix)
	}
	if p.flags != 0 {
		if p.flags == flagTranslation {
			d.printf(level, "Translate %.2f, %.2f, %.2f", p.TranslationX, p.TranslationY, p.TranslationZ)
		} else {
			d.printf(level, "ConcatMatrix %v", p.transform)
		}
	}

	clipToBoundsNeeded := p.ClipToBounds && !p.Caching
	if p.Alpha < 1 {
		switch {
		case p.Caching:
			d.printf(level, "SetOverrideLayerAlpha %.2f", p.Alpha)
		case !p.HasOverlappingRendering:
			d.printf(level, "ScaleAlpha %.2f", p.Alpha)
		default:
			flags := SaveHasAlphaLayer
			if clipToBoundsNeeded {
				flags |= SaveClipToLayer
				clipToBoundsNeeded = false
			}
			d.printf(level, "%s", &SaveLayerOp{Bounds: p.Bounds(), Alpha: p.Alpha, Flags: flags})
		}
	}
	if clipToBoundsNeeded {
		d.printf(level, "%s", &ClipRectOp{Rect: p.Bounds(), Op: ClipIntersect})
	}
	if p.ClipToOutline && !p.Outline.IsEmpty() {
		d.printf(level, "%s", &ClipOutlineOp{Outline: &p.Outline, Op: ClipIntersect})
	}
}

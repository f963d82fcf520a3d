package rendernode

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 3 float64 properties of a render node at once.
// Create one with the constructors (TweenTranslation, TweenElevation,
// TweenScale, TweenRotation, TweenAlpha) and call Update(dt) each frame
// before drawing. Values are written to the node's properties, which are
// marked dirty. The group stops as soon as its node is destroyed.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	fields [3]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values. If the
// target node has been destroyed, Done is set and nothing is written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target.IsDestroyed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.target.props.MarkDirty()
}

func newTweenGroup(node *Node, duration float32, fn ease.TweenFunc, fields []*float64, to []float64) *TweenGroup {
	g := &TweenGroup{count: len(fields), target: node}
	for i, f := range fields {
		g.tweens[i] = gween.New(float32(*f), float32(to[i]), duration, fn)
		g.fields[i] = f
	}
	return g
}

// TweenTranslation animates TranslationX and TranslationY.
func TweenTranslation(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := &node.props
	return newTweenGroup(node, duration, fn,
		[]*float64{&p.TranslationX, &p.TranslationY}, []float64{toX, toY})
}

// TweenElevation animates TranslationZ. Crossing zero moves the node
// between the negative and positive 3D passes of its parent.
func TweenElevation(node *Node, toZ float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		[]*float64{&node.props.TranslationZ}, []float64{toZ})
}

// TweenScale animates ScaleX and ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := &node.props
	return newTweenGroup(node, duration, fn,
		[]*float64{&p.ScaleX, &p.ScaleY}, []float64{toSX, toSY})
}

// TweenRotation animates Rotation, in radians.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		[]*float64{&node.props.Rotation}, []float64{to})
}

// TweenAlpha animates Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		[]*float64{&node.props.Alpha}, []float64{to})
}

package rendernode

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// buildTransform composes the property matrix. Composition order:
//
//	Translate(-pivot) -> Scale -> RotateZ -> RotateY -> RotateX -> Translate(pivot + translation)
//
// The Z translation is only included when true3d is set; the flat variant is
// what the canvas concatenates, the 3D variant positions shadows.
func (p *Properties) buildTransform(true3d bool) mgl64.Mat4 {
	px, py := p.pivot()
	tz := 0.0
	if true3d {
		tz = p.TranslationZ
	}
	m := mgl64.Translate3D(px+p.TranslationX, py+p.TranslationY, tz)
	if p.RotationX != 0 {
		m = m.Mul4(mgl64.HomogRotate3DX(p.RotationX))
	}
	if p.RotationY != 0 {
		m = m.Mul4(mgl64.HomogRotate3DY(p.RotationY))
	}
	if p.Rotation != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(p.Rotation))
	}
	m = m.Mul4(mgl64.Scale3D(p.ScaleX, p.ScaleY, 1))
	return m.Mul4(mgl64.Translate3D(-px, -py, 0))
}

// applyPropertyTransforms returns m with the node's property transforms
// applied on the right. true3d selects the full 4x4 variant that keeps the Z
// translation, used for shadow placement.
func (n *Node) applyPropertyTransforms(m mgl64.Mat4, true3d bool) mgl64.Mat4 {
	p := &n.props
	if p.Left != 0 || p.Top != 0 {
		m = m.Mul4(mgl64.Translate3D(p.Left, p.Top, 0))
	}
	if p.StaticMatrix != nil {
		m = m.Mul4(*p.StaticMatrix)
	} else if p.AnimationMatrix != nil {
		m = m.Mul4(*p.AnimationMatrix)
	}
	p.updateMatrix()
	if p.flags == 0 {
		return m
	}
	if p.flags == flagTranslation {
		tz := 0.0
		if true3d {
			tz = p.TranslationZ
		}
		return m.Mul4(mgl64.Translate3D(p.TranslationX, p.TranslationY, tz))
	}
	if !true3d {
		return m.Mul4(p.transform)
	}
	return m.Mul4(p.buildTransform(true))
}

// mapPoint applies the 2D part of m to (x, y).
func mapPoint(m mgl64.Mat4, x, y float64) (float64, float64) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}

// mapRect returns the axis-aligned bounds of r after transformation by m.
func mapRect(m mgl64.Mat4, r Rect) Rect {
	x0, y0 := mapPoint(m, r.X, r.Y)
	x1, y1 := mapPoint(m, r.Right(), r.Y)
	x2, y2 := mapPoint(m, r.Right(), r.Bottom())
	x3, y3 := mapPoint(m, r.X, r.Bottom())
	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

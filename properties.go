package rendernode

import "github.com/go-gl/mathgl/mgl64"

// matrixFlags records which components of the property transform are set.
type matrixFlags uint8

const (
	flagTranslation matrixFlags = 1 << iota
	flagRotation
	flagRotation3D
	flagScale
)

// Properties is the visual property set of a render node. Fields may be set
// directly; call MarkDirty afterwards when changing any transform component
// so the cached property matrix is rebuilt. The setters do this for you.
type Properties struct {
	// Bounds in the parent's coordinate space.
	Left, Top, Right, Bottom float64

	// Transform components. Rotations are in radians.
	TranslationX, TranslationY, TranslationZ float64
	Rotation, RotationX, RotationY           float64
	ScaleX, ScaleY                           float64

	// PivotX and PivotY are used only when PivotExplicitlySet is true;
	// otherwise the pivot is the center of the bounds.
	PivotX, PivotY     float64
	PivotExplicitlySet bool

	// StaticMatrix, when set, takes precedence over AnimationMatrix.
	StaticMatrix    *mgl64.Mat4
	AnimationMatrix *mgl64.Mat4

	Alpha                   float64
	HasOverlappingRendering bool
	// Caching marks a node that is drawn through its own layer; alpha is then
	// applied as an override layer alpha and bounds clipping is skipped.
	Caching bool

	ClipToBounds  bool
	ClipToOutline bool
	Outline       Outline
	CastsShadow   bool

	// ProjectBackwards draws the node onto the nearest projection-receiving
	// ancestor instead of in its parent's op order.
	ProjectBackwards bool
	// ProjectionReceiver marks the node whose drawing in a parent's op list
	// establishes where projected content is spliced.
	ProjectionReceiver bool

	flags       matrixFlags
	transform   mgl64.Mat4
	matrixDirty bool
}

func defaultProperties() Properties {
	return Properties{
		ScaleX:                  1,
		ScaleY:                  1,
		Alpha:                   1,
		HasOverlappingRendering: true,
		ClipToBounds:            true,
		transform:               mgl64.Ident4(),
		matrixDirty:             true,
	}
}

// Width returns Right - Left.
func (p *Properties) Width() float64 { return p.Right - p.Left }

// Height returns Bottom - Top.
func (p *Properties) Height() float64 { return p.Bottom - p.Top }

// Bounds returns the node's local bounds, anchored at the origin.
func (p *Properties) Bounds() Rect {
	return Rect{Width: p.Width(), Height: p.Height()}
}

// MarkDirty forces the property matrix to be rebuilt on next use.
func (p *Properties) MarkDirty() {
	p.matrixDirty = true
}

// SetBounds sets the node's left, top, right and bottom edges.
func (p *Properties) SetBounds(left, top, right, bottom float64) {
	p.Left, p.Top, p.Right, p.Bottom = left, top, right, bottom
	p.matrixDirty = true
}

// SetTranslation sets the X and Y translation.
func (p *Properties) SetTranslation(x, y float64) {
	p.TranslationX, p.TranslationY = x, y
	p.matrixDirty = true
}

// SetTranslationZ sets the Z translation used for 3D ordering and shadows.
func (p *Properties) SetTranslationZ(z float64) {
	p.TranslationZ = z
	p.matrixDirty = true
}

// SetRotation sets the rotation about the Z axis, in radians.
func (p *Properties) SetRotation(r float64) {
	p.Rotation = r
	p.matrixDirty = true
}

// SetRotation3D sets the rotations about the X and Y axes, in radians.
func (p *Properties) SetRotation3D(rx, ry float64) {
	p.RotationX, p.RotationY = rx, ry
	p.matrixDirty = true
}

// SetScale sets ScaleX and ScaleY.
func (p *Properties) SetScale(sx, sy float64) {
	p.ScaleX, p.ScaleY = sx, sy
	p.matrixDirty = true
}

// SetPivot sets an explicit pivot point.
func (p *Properties) SetPivot(px, py float64) {
	p.PivotX, p.PivotY = px, py
	p.PivotExplicitlySet = true
	p.matrixDirty = true
}

// SetAlpha sets the node alpha.
func (p *Properties) SetAlpha(a float64) {
	p.Alpha = a
}

// pivot returns the effective pivot point.
func (p *Properties) pivot() (float64, float64) {
	if p.PivotExplicitlySet {
		return p.PivotX, p.PivotY
	}
	return p.Width() / 2, p.Height() / 2
}

// updateMatrix recomputes the matrix flags and the 2D property matrix when
// dirty.
func (p *Properties) updateMatrix() {
	if !p.matrixDirty {
		return
	}
	p.matrixDirty = false
	p.flags = 0
	if p.TranslationX != 0 || p.TranslationY != 0 || p.TranslationZ != 0 {
		p.flags |= flagTranslation
	}
	if p.Rotation != 0 {
		p.flags |= flagRotation
	}
	if p.RotationX != 0 || p.RotationY != 0 {
		p.flags |= flagRotation3D
	}
	if p.ScaleX != 1 || p.ScaleY != 1 {
		p.flags |= flagScale
	}
	if p.flags == 0 || p.flags == flagTranslation {
		p.transform = mgl64.Ident4()
		return
	}
	p.transform = p.buildTransform(false)
}

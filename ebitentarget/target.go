// Package ebitentarget draws resolved render node fills onto an
// [ebiten.Image].
//
// Fills are drawn by stretching a white pixel with a GeoM built from the
// fill's matrix. Clips become SubImages of the destination. Alpha layers are
// offscreen images taken from a power-of-two pool and composited onto their
// parent when popped.
//
//	t := ebitentarget.New(screen)
//	scene.Draw(t, w, h)
package ebitentarget

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/rendernode"
)

var whitePixel *ebiten.Image

func whitePixelImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixel
}

// layer is an offscreen image positioned at (x, y) in device space. A layer
// with a nil image has empty bounds; fills into it are dropped.
type layer struct {
	img   *ebiten.Image
	x, y  int
	alpha float64
}

// Target is a rendernode.Target drawing onto an ebiten image.
type Target struct {
	screen *ebiten.Image
	layers []layer
	pool   layerPool

	fills int
}

var _ rendernode.Target = (*Target)(nil)

// New creates a target drawing onto screen.
func New(screen *ebiten.Image) *Target {
	return &Target{screen: screen}
}

// SetScreen retargets t, typically once per frame in ebiten's Draw. Layers
// still open are discarded.
func (t *Target) SetScreen(screen *ebiten.Image) {
	for len(t.layers) > 0 {
		t.pool.release(t.pop().img)
	}
	t.screen = screen
	t.fills = 0
}

// Fills returns the number of fills drawn since the last SetScreen.
func (t *Target) Fills() int { return t.fills }

// Depth returns the number of open layers.
func (t *Target) Depth() int { return len(t.layers) }

// current returns the image fills go to and its device-space origin.
func (t *Target) current() (*ebiten.Image, int, int) {
	if n := len(t.layers); n > 0 {
		l := t.layers[n-1]
		return l.img, l.x, l.y
	}
	return t.screen, 0, 0
}

// FillRect implements rendernode.Target.
func (t *Target) FillRect(r rendernode.Rect, m mgl64.Mat4, clip rendernode.Rect, c rendernode.Color) {
	dst, ox, oy := t.current()
	if dst == nil || c.A <= 0 {
		return
	}
	cr := deviceRect(clip).Sub(image.Pt(ox, oy)).Intersect(dst.Bounds())
	if cr.Empty() {
		return
	}
	sub := dst.SubImage(cr).(*ebiten.Image)

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.GeoM.Concat(GeoM(m))
	op.GeoM.Translate(float64(-ox), float64(-oy))
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	sub.DrawImage(whitePixelImage(), &op)
	t.fills++
}

// PushLayer implements rendernode.Target.
func (t *Target) PushLayer(bounds rendernode.Rect, alpha float64) {
	b := deviceRect(bounds)
	if b.Empty() {
		t.layers = append(t.layers, layer{alpha: alpha})
		return
	}
	t.layers = append(t.layers, layer{
		img:   t.pool.acquire(b.Dx(), b.Dy()),
		x:     b.Min.X,
		y:     b.Min.Y,
		alpha: alpha,
	})
}

// PopLayer implements rendernode.Target. Popping with no open layer is a
// no-op.
func (t *Target) PopLayer() {
	if len(t.layers) == 0 {
		return
	}
	l := t.pop()
	if l.img == nil {
		return
	}
	dst, ox, oy := t.current()
	if dst != nil && l.alpha > 0 {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(float64(l.x-ox), float64(l.y-oy))
		op.ColorScale.ScaleAlpha(float32(l.alpha))
		dst.DrawImage(l.img, &op)
	}
	t.pool.release(l.img)
}

func (t *Target) pop() layer {
	l := t.layers[len(t.layers)-1]
	t.layers = t.layers[:len(t.layers)-1]
	return l
}

// GeoM converts the 2D part of a 4x4 column-major matrix to an ebiten GeoM.
func GeoM(m mgl64.Mat4) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[4])
	g.SetElement(0, 2, m[12])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[5])
	g.SetElement(1, 2, m[13])
	return g
}

// deviceRect rounds r outward to whole pixels.
func deviceRect(r rendernode.Rect) image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

package ebitentarget

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/rendernode"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ClearColor fills the screen before the scene is drawn. A zero alpha
	// leaves the screen as ebiten cleared it.
	ClearColor rendernode.Color
	// ShowFPS prints the current FPS and TPS over the scene.
	ShowFPS bool
	// Update, if set, runs once per tick with the tick duration in seconds,
	// before drawing. Returning an error stops the game.
	Update func(dt float64) error
}

// Game is an ebiten.Game drawing a render node scene.
type Game struct {
	scene  *rendernode.Scene
	target *Target
	cfg    RunConfig
}

var _ ebiten.Game = (*Game)(nil)

// NewGame creates a game drawing scene with cfg.
func NewGame(scene *rendernode.Scene, cfg RunConfig) *Game {
	return &Game{scene: scene, target: New(nil), cfg: cfg}
}

func (g *Game) Update() error {
	if g.cfg.Update == nil {
		return nil
	}
	return g.cfg.Update(1 / float64(ebiten.TPS()))
}

func (g *Game) Draw(screen *ebiten.Image) {
	if c := g.cfg.ClearColor; c.A > 0 {
		screen.Fill(color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)})
	}
	g.target.SetScreen(screen)
	b := screen.Bounds()
	g.scene.Draw(g.target, b.Dx(), b.Dy())
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nfills: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.target.Fills()))
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and draws scene every frame until the window is closed
// or Update returns an error.
func Run(scene *rendernode.Scene, cfg RunConfig) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	return ebiten.RunGame(NewGame(scene, cfg))
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

package core

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// tickRate is the fixed simulation step Game.Update advances World by,
// independent of ebiten's actual frame rate.
const tickRate = 1.0 / 60.0

// Game adapts a World to ebiten's Game interface: a thin wrapper whose
// Update/Draw/Layout methods delegate to the World and its draw list.
type Game struct {
	world *World
}

// NewGame builds a Game over a freshly constructed World using default
// configuration (no allocator pooling, AI chasing the origin).
func NewGame() (*Game, error) {
	w, err := NewWorld(nil)
	if err != nil {
		return nil, err
	}
	return &Game{world: w}, nil
}

// Update advances the world by one fixed tick.
func (g *Game) Update() error {
	return g.world.Tick(tickRate)
}

// Draw renders the world's current draw list as labeled debug text, one
// line per visible sprite — this engine has no texture atlas or asset
// pipeline of its own, so there is no image to hand ebiten yet.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 20, G: 20, B: 30, A: 255})
	for i, d := range g.world.DrawList() {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("%s @ (%.1f, %.1f) layer=%d", d.Sprite.TextureID, d.Position.X, d.Position.Y, d.Sprite.Layer),
			8, 8+16*i)
	}
}

// Layout reports a fixed 1280x720 window.
func (g *Game) Layout(_, _ int) (int, int) {
	return 1280, 720
}

// Run opens the window and blocks until it closes.
func (g *Game) Run() error {
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("ecs-core")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(g)
}

// Package gui runs blockdrop in a window.
package gui

import (
	"fmt"
	"image/color"
	"time"

	"blockdrop/tetris"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

const (
	// TPS is the number of updates per second, every update advances the session by one frame.
	TPS = 60

	// cellSize is the size of each cell in pixels
	cellSize = 32
	// panelWidth is the width of the side panel, in cells
	panelWidth = 7
	// repeatDelay is the number of ticks a move key has to be held before it repeats
	repeatDelay = 10
	// repeatRate is the number of ticks between repeated moves
	repeatRate = 3

	fontSize = 20

	ScreenWidth  = (tetris.Width + panelWidth) * cellSize
	ScreenHeight = tetris.Height * cellSize
)

var (
	background = color.RGBA{0x10, 0x10, 0x18, 0xff}
	boardColor = color.RGBA{0x20, 0x20, 0x2c, 0xff}
	ghostColor = color.RGBA{0x60, 0x60, 0x70, 0xff}
)

var colorMap = map[tetris.Shape]color.RGBA{
	tetris.I: {0x00, 0xe5, 0xee, 0xff},
	tetris.J: {0x1e, 0x5e, 0xff, 0xff},
	tetris.L: {0xff, 0xa5, 0x00, 0xff},
	tetris.O: {0xff, 0xe0, 0x00, 0xff},
	tetris.S: {0x2e, 0xcc, 0x40, 0xff},
	tetris.Z: {0xff, 0x41, 0x36, 0xff},
	tetris.T: {0xb1, 0x0d, 0xc9, 0xff},
}

type binding struct {
	key    ebiten.Key
	action tetris.Action
	repeat bool
}

var bindings = []binding{
	{ebiten.KeyArrowLeft, tetris.MoveLeft, true},
	{ebiten.KeyA, tetris.MoveLeft, true},
	{ebiten.KeyArrowRight, tetris.MoveRight, true},
	{ebiten.KeyD, tetris.MoveRight, true},
	{ebiten.KeyArrowDown, tetris.MoveDown, true},
	{ebiten.KeyS, tetris.MoveDown, true},
	{ebiten.KeyArrowUp, tetris.RotateRight, false},
	{ebiten.KeyW, tetris.RotateRight, false},
	{ebiten.KeyE, tetris.RotateRight, false},
	{ebiten.KeySpace, tetris.DropDown, false},
	{ebiten.KeyP, tetris.Pause, false},
	{ebiten.KeyR, tetris.Reset, false},
}

// Game is an ebiten.Game driving a Tetris session at a fixed time step.
type Game struct {
	tetris    *tetris.Tetris
	face      font.Face
	showDebug bool
}

func New(opts ...tetris.Option) (*Game, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}
	return &Game{tetris: tetris.New(opts...), face: face}, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.showDebug = !g.showDebug
	}
	for _, b := range bindings {
		if pressed(b) {
			g.tetris.Act(b.action)
		}
	}
	g.step()
	return nil
}

// step advances the session by one frame.
func (g *Game) step() bool {
	return g.tetris.Advance(time.Second / TPS)
}

func pressed(b binding) bool {
	if inpututil.IsKeyJustPressed(b.key) {
		return true
	}
	if !b.repeat {
		return false
	}
	d := inpututil.KeyPressDuration(b.key)
	return d > repeatDelay && (d-repeatDelay)%repeatRate == 0
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	vector.DrawFilledRect(screen, 0, 0, tetris.Width*cellSize, tetris.Height*cellSize, boardColor, false)

	for y := range tetris.Height {
		for x := range tetris.Width {
			if s := g.tetris.Stack.Cell(x, y); s != "" {
				drawCell(screen, x, y, colorMap[s])
			}
		}
	}
	if tt := g.tetris.Tetromino; tt != nil {
		ghost := *tt
		ghost.Y = g.tetris.GhostY()
		for _, c := range ghost.Cells() {
			drawCell(screen, c.DX, c.DY, ghostColor)
		}
		for _, c := range tt.Cells() {
			drawCell(screen, c.DX, c.DY, colorMap[tt.Shape])
		}
	}
	g.drawPanel(screen)

	if g.showDebug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %0.1f\nFPS: %0.1f\nclock: %v", ebiten.ActualTPS(), ebiten.ActualFPS(), g.tetris.Clock.Elapsed()), 4, 4)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	left := tetris.Width*cellSize + cellSize/2
	text.Draw(screen, "Next", g.face, left, 2*cellSize, color.White)
	for _, c := range tetris.Cells(g.tetris.Next, 0) {
		// the spawn geometry spans [-1, 2] horizontally and [-1, 1] vertically.
		drawCell(screen, tetris.Width+2+c.DX, 4+c.DY, colorMap[g.tetris.Next])
	}

	for i, l := range g.lines() {
		text.Draw(screen, l, g.face, left, 8*cellSize+i*cellSize, color.White)
	}
}

// lines returns the score and status lines of the side panel.
func (g *Game) lines() []string {
	l := []string{
		fmt.Sprintf("Score %d", g.tetris.Score.Points),
		fmt.Sprintf("Level %d", g.tetris.Score.Level),
		fmt.Sprintf("Lines %d", g.tetris.Score.Lines),
		"",
	}
	switch {
	case g.tetris.GameOver:
		l = append(l, "GAME OVER", "r to restart")
	case g.tetris.Paused:
		l = append(l, "PAUSED")
	}
	return l
}

// drawCell paints the cell at stack position x, y. Cells above the top are hidden.
func drawCell(screen *ebiten.Image, x, y int, c color.Color) {
	if y < 0 {
		return
	}
	const gap = 1
	vector.DrawFilledRect(screen, float32(x*cellSize+gap), float32(y*cellSize+gap), cellSize-2*gap, cellSize-2*gap, c, false)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

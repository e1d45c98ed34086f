// Package tetris contains the logic of the game: the stack, the tetrominoes
// and the session that moves them down the stack.
//
// Tetris is a step engine. It doesn't own a loop, whatever drives it calls
// Advance once per frame with the time elapsed since the previous frame.
// Game wraps it with a real time loop for concurrent callers.
package tetris

import (
	"math/rand/v2"
	"time"
)

// Action is a command sent by a player.
type Action string

const (
	MoveLeft    Action = "left"    // Moves the Tetromino one step to the left.
	MoveRight   Action = "right"   // Moves the Tetromino one step to the right.
	MoveDown    Action = "down"    // Moves the Tetromino one step down, scores 1 point.
	DropDown    Action = "drop"    // Drops the Tetromino down the stack, scores 2 points per row.
	RotateRight Action = "rotate"  // Rotates the Tetromino clockwise.
	Pause       Action = "pause"   // Pauses or resumes the game.
	Reset       Action = "restart" // Starts a new game.
)

// spawn location of every new tetromino.
const (
	spawnX = Width/2 - 1
	spawnY = -1
)

// GameOverHandler is notified once when a session ends.
type GameOverHandler interface {
	OnGameOver(score int)
}

// GameOverHandlerFunc adapts a function into a GameOverHandler.
type GameOverHandlerFunc func(score int)

func (f GameOverHandlerFunc) OnGameOver(score int) { f(score) }

// Option configures a Tetris session.
type Option func(*Tetris)

// WithSeed makes the sequence of tetrominoes deterministic.
func WithSeed(seed uint64) Option {
	return func(t *Tetris) { t.rand = rand.New(rand.NewPCG(seed, seed)) }
}

// WithGameOverHandler registers h to be notified with the final score.
func WithGameOverHandler(h GameOverHandler) Option {
	return func(t *Tetris) { t.onGameOver = h }
}

// Tetris holds the state of a single session.
type Tetris struct {
	Stack     Stack
	Tetromino *Tetromino // nil between landing and the next spawn.
	Next      Shape
	Score     Score
	Clock     Clock
	Paused    bool
	GameOver  bool

	rand       *rand.Rand
	onGameOver GameOverHandler
}

// New starts a session with an empty stack and the first tetromino in place.
func New(opts ...Option) *Tetris {
	t := &Tetris{}
	for _, o := range opts {
		o(t)
	}
	if t.rand == nil {
		t.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	t.Restart()
	return t
}

// Restart throws away the current session and starts a new one.
func (t *Tetris) Restart() {
	t.Stack = Stack{}
	t.Tetromino = nil
	t.Score = newScore()
	t.Clock.reset()
	t.Paused = false
	t.GameOver = false
	t.Next = t.randomShape()
	t.spawn()
}

// TogglePause pauses or resumes the session. It returns false once the game is over.
func (t *Tetris) TogglePause() bool {
	if t.GameOver {
		return false
	}
	t.Paused = !t.Paused
	if !t.Paused {
		t.Clock.rebase()
	}
	return true
}

// Interval returns the current time between automatic descents.
func (t *Tetris) Interval() time.Duration {
	return DropInterval(t.Score.Level)
}

// Advance moves the session forward by delta. Once enough time has accumulated
// it spawns the next tetromino or moves the current one down. It reports whether
// a step happened.
func (t *Tetris) Advance(delta time.Duration) bool {
	if t.Paused || t.GameOver {
		return false
	}
	if !t.Clock.tick(delta, t.Interval()) {
		return false
	}
	if t.Tetromino == nil {
		t.spawn()
		return true
	}
	t.fall()
	return true
}

// Act dispatches an Action to its command and reports whether it changed anything.
func (t *Tetris) Act(a Action) bool {
	switch a {
	case MoveLeft:
		return t.MoveLeft()
	case MoveRight:
		return t.MoveRight()
	case MoveDown:
		return t.SoftDrop()
	case DropDown:
		return t.HardDrop()
	case RotateRight:
		return t.Rotate()
	case Pause:
		return t.TogglePause()
	case Reset:
		t.Restart()
		return true
	}
	return false
}

// MoveLeft moves the tetromino one column to the left when there is room.
func (t *Tetris) MoveLeft() bool { return t.shift(-1) }

// MoveRight moves the tetromino one column to the right when there is room.
func (t *Tetris) MoveRight() bool { return t.shift(1) }

func (t *Tetris) shift(dx int) bool {
	if !t.active() || !t.placeable(t.Tetromino.X+dx, t.Tetromino.Y, t.Tetromino.Orientation) {
		return false
	}
	t.Tetromino.X += dx
	return true
}

// SoftDrop moves the tetromino one row down scoring a point. When it can't go
// any lower it lands in the stack instead and false is returned.
func (t *Tetris) SoftDrop() bool {
	if !t.active() {
		return false
	}
	if t.down() {
		t.Score.softDrop()
		return true
	}
	t.land()
	return false
}

// HardDrop drops the tetromino as low as it goes, scoring 2 points per row, and
// lands it in the stack.
func (t *Tetris) HardDrop() bool {
	if !t.active() {
		return false
	}
	var rows int
	for t.down() {
		rows++
	}
	t.Score.hardDrop(rows)
	t.land()
	return true
}

// Rotate rotates the tetromino clockwise. When the rotated tetromino doesn't
// fit in place it is tried one column to the left and then one column to the
// right before giving up.
func (t *Tetris) Rotate() bool {
	if !t.active() {
		return false
	}
	o := wrap(t.Tetromino.Orientation + 1)
	for _, dx := range []int{0, -1, 1} {
		if t.placeable(t.Tetromino.X+dx, t.Tetromino.Y, o) {
			t.Tetromino.X += dx
			t.Tetromino.Orientation = o
			return true
		}
	}
	return false
}

// GhostY returns the row where the tetromino would land if dropped now.
func (t *Tetris) GhostY() int {
	if t.Tetromino == nil {
		return 0
	}
	y := t.Tetromino.Y
	for t.placeable(t.Tetromino.X, y+1, t.Tetromino.Orientation) {
		y++
	}
	return y
}

// Copy returns a snapshot of the session that is safe to read concurrently.
func (t *Tetris) Copy() *Tetris {
	return &Tetris{
		Stack:     t.Stack,
		Tetromino: t.Tetromino.copy(),
		Next:      t.Next,
		Score:     t.Score,
		Clock:     t.Clock,
		Paused:    t.Paused,
		GameOver:  t.GameOver,
	}
}

// fall is the automatic descent: like SoftDrop without the point.
func (t *Tetris) fall() {
	if !t.down() {
		t.land()
	}
}

func (t *Tetris) down() bool {
	if !t.placeable(t.Tetromino.X, t.Tetromino.Y+1, t.Tetromino.Orientation) {
		return false
	}
	t.Tetromino.Y++
	return true
}

// land commits the tetromino to the stack. The next one is spawned by Advance.
func (t *Tetris) land() {
	n := t.Stack.Commit(t.Tetromino.Shape, t.Tetromino.X, t.Tetromino.Y, t.Tetromino.Orientation)
	t.Score.clear(n)
	t.Tetromino = nil
}

// spawn brings the next tetromino in at the top center of the stack. The game
// is over when it doesn't fit.
func (t *Tetris) spawn() {
	t.Tetromino = &Tetromino{Shape: t.Next, X: spawnX, Y: spawnY}
	t.Next = t.randomShape()
	if t.placeable(spawnX, spawnY, 0) {
		return
	}
	t.Tetromino = nil
	t.GameOver = true
	if t.onGameOver != nil {
		t.onGameOver.OnGameOver(t.Score.Points)
	}
}

func (t *Tetris) placeable(x, y, orientation int) bool {
	return t.Stack.IsPlaceable(t.Tetromino.Shape, x, y, orientation)
}

func (t *Tetris) active() bool {
	return t.Tetromino != nil && !t.Paused && !t.GameOver
}

func (t *Tetris) randomShape() Shape {
	return Shapes[t.rand.IntN(len(Shapes))]
}

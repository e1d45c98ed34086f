package tetris

import (
	"sync"
	"time"
)

// FrameRate is the time between two frames of a Game.
const FrameRate = 16 * time.Millisecond

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Game runs a Tetris session in real time. Every tick of its ticker is a frame
// and actions are applied between frames, so it is safe to use from multiple
// goroutines.
type Game struct {
	updateCh chan *Tetris
	actionCh chan Action
	doneCh   chan bool
	tetris   *Tetris
	ticker   Ticker
	opts     []Option
	mu       sync.RWMutex
}

func NewGame(opts ...Option) *Game {
	return NewConfigurableGame(newWrappedTicker(FrameRate), opts...)
}

func NewConfigurableGame(ticker Ticker, opts ...Option) *Game {
	return &Game{
		updateCh: make(chan *Tetris),
		actionCh: make(chan Action),
		doneCh:   make(chan bool, 1),
		ticker:   ticker,
		opts:     opts,
	}
}

// Start begins a new session and publishes its first state.
func (g *Game) Start() {
	g.mu.Lock()
	g.tetris = New(g.opts...)
	g.mu.Unlock()
	g.ticker.Reset(FrameRate)
	go g.listen()
	g.updateCh <- g.Read()
}

// Stop stops the session loop.
func (g *Game) Stop() {
	g.ticker.Stop()
	g.doneCh <- true
}

// Action applies a to the session before the next frame.
func (g *Game) Action(a Action) {
	g.actionCh <- a
}

// GetUpdate returns the channel that receives a snapshot every time the session changes.
func (g *Game) GetUpdate() <-chan *Tetris {
	return g.updateCh
}

// Read returns a copy of the current Tetris status that's safe to read concurrently.
func (g *Game) Read() *Tetris {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.tetris == nil {
		return nil
	}
	return g.tetris.Copy()
}

func (g *Game) listen() {
	last := time.Now()
	for {
		var changed bool
		select {
		case now := <-g.ticker.C():
			// paused time is never credited, the baseline moves on every frame.
			delta := now.Sub(last)
			last = now
			g.mu.Lock()
			changed = g.tetris.Advance(delta)
			g.mu.Unlock()
		case a := <-g.actionCh:
			g.mu.Lock()
			changed = g.tetris.Act(a)
			g.mu.Unlock()
		case <-g.doneCh:
			return
		}
		if changed {
			g.updateCh <- g.Read()
		}
	}
}

// Package client runs blockdrop in a terminal.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"blockdrop/highscore"
	"blockdrop/tetris"

	"github.com/eiannone/keyboard"
)

type clientState int

const (
	lobby clientState = iota
	playing
)

// number of entries shown in the lobby.
const topScores = 5

type state struct {
	current clientState
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

type tetrisGame interface {
	Start()
	GetUpdate() <-chan *tetris.Tetris
	Action(tetris.Action)
	Stop()
}

type renderer interface {
	lobby(*lobbyData)
	local(*tetris.Tetris)
}

type Client struct {
	tetris      tetrisGame
	render      renderer
	leaderboard highscore.Leaderboard
	logger      *slog.Logger
	kbCh        <-chan keyboard.KeyEvent
	state       *state
	started     bool
}

type Options struct {
	NoGhost     bool
	Name        string
	Leaderboard highscore.Leaderboard // Where final scores are submitted to.
}

// New opens the keyboard and prepares a game whose final score is submitted
// to the leaderboard under the player's name.
func New(l *slog.Logger, o *Options) (*Client, error) {
	r, err := newRender(l, o.NoGhost, o.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	var opts []tetris.Option
	if o.Leaderboard != nil {
		opts = append(opts, tetris.WithGameOverHandler(highscore.NewRecorder(o.Name, o.Leaderboard, l)))
	}
	return &Client{
		tetris:      tetris.NewGame(opts...),
		render:      r,
		leaderboard: o.Leaderboard,
		logger:      l,
		kbCh:        kb,
		state:       &state{current: lobby},
	}, nil
}

// Start shows the lobby and blocks until the player quits.
func (c *Client) Start() {
	c.render.lobby(&lobbyData{Scores: c.topScores()})
	c.listenKB()
	if c.started {
		c.tetris.Stop()
	}
}

func (c *Client) listenKB() {
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC || event.Rune == 'q' {
			return
		}
		switch c.state.get() {
		case lobby:
			if event.Rune != 'p' {
				continue
			}
			c.state.set(playing)
			if !c.started {
				c.started = true
				go c.listenTetris()
				continue
			}
			c.tetris.Action(tetris.Reset)
		case playing:
			if a, ok := action(event); ok {
				c.tetris.Action(a)
			}
		}
	}
}

// action maps a key to the tetris action it triggers while playing.
func action(event keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft, true
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight, true
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.MoveDown, true
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'w' || event.Rune == 'e':
		return tetris.RotateRight, true
	case event.Key == keyboard.KeySpace:
		return tetris.DropDown, true
	case event.Rune == 'p':
		return tetris.Pause, true
	case event.Rune == 'r':
		return tetris.Reset, true
	}
	return "", false
}

func (c *Client) listenTetris() {
	go c.tetris.Start()
	for u := range c.tetris.GetUpdate() {
		c.render.local(u)
		if u.GameOver {
			c.state.set(lobby)
			c.render.lobby(&lobbyData{
				Message: fmt.Sprintf("Game Over: %d", u.Score.Points),
				Scores:  c.topScores(),
			})
		}
	}
}

func (c *Client) topScores() []highscore.Entry {
	if c.leaderboard == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	scores, err := c.leaderboard.Top(ctx, topScores)
	if err != nil {
		c.logger.Error("unable to load high scores", slog.String("error", err.Error()))
		return nil
	}
	return scores
}

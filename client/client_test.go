package client

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"blockdrop/highscore"
	"blockdrop/tetris"

	"github.com/eiannone/keyboard"
)

type mockTetris struct {
	updateCh   chan *tetris.Tetris
	startCount int
	stop       bool
	action     tetris.Action
	mu         sync.Mutex
}

func (m *mockTetris) GetUpdate() <-chan *tetris.Tetris { return m.updateCh }
func (m *mockTetris) sendGameOver()                    { m.updateCh <- &tetris.Tetris{GameOver: true} }
func (m *mockTetris) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *mockTetris) Start() {
	m.mu.Lock()
	m.startCount++
	m.mu.Unlock()
	m.updateCh <- &tetris.Tetris{}
}
func (m *mockTetris) Action(a tetris.Action) {
	m.mu.Lock()
	m.action = a
	m.mu.Unlock()
	m.updateCh <- &tetris.Tetris{}
}
func (m *mockTetris) get() (int, bool, tetris.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startCount, m.stop, m.action
}

type mockRender struct {
	lobbyCount  int
	localCount  int
	lastMessage string
	mu          sync.Mutex
}

func (m *mockRender) lobby(l *lobbyData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lobbyCount++
	m.lastMessage = l.Message
}
func (m *mockRender) local(*tetris.Tetris) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.localCount++
}
func (m *mockRender) get() (int, int, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbyCount, m.localCount, m.lastMessage
}

type mockLeaderboard struct {
	topCount int
	mu       sync.Mutex
}

func (m *mockLeaderboard) Submit(context.Context, string, int) (int, int, error) { return 1, 0, nil }
func (m *mockLeaderboard) Top(context.Context, int) ([]highscore.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topCount++
	return []highscore.Entry{{Name: "alice", Score: 100}}, nil
}

func TestClient(t *testing.T) {
	render := &mockRender{}
	tts := &mockTetris{updateCh: make(chan *tetris.Tetris)}
	lb := &mockLeaderboard{}
	kCh := make(chan keyboard.KeyEvent)
	cl := &Client{
		tetris:      tts,
		render:      render,
		leaderboard: lb,
		logger:      slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})),
		kbCh:        kCh,
		state:       &state{current: lobby},
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { cl.Start(); wg.Done() }()
	time.Sleep(10 * time.Millisecond)
	wantLocalCount := 0

	// keys other than 'p' and 'q' are ignored in the lobby.
	kCh <- keyboard.KeyEvent{Key: keyboard.KeySpace}
	time.Sleep(10 * time.Millisecond)
	if _, _, a := tts.get(); a != "" {
		t.Errorf("wanted no action in the lobby, got %q", a)
	}

	// 'p' would call tetris.Start(), set the state to playing and render.local() once.
	kCh <- keyboard.KeyEvent{Rune: 'p'}
	time.Sleep(10 * time.Millisecond)
	wantLocalCount++
	if start, _, _ := tts.get(); start != 1 {
		t.Errorf("wanted tetris.Start() to be called once, got %d", start)
	}
	if cl.state.get() != playing {
		t.Errorf("wanted state to be playing after 'p' key press")
	}
	if _, local, _ := render.get(); local != wantLocalCount {
		t.Errorf("wanted render.local() to be called once, got %d", local)
	}

	// while in game, keys should direct to tetris actions.
	actions := []struct {
		key    keyboard.KeyEvent
		action tetris.Action
	}{
		{key: keyboard.KeyEvent{Rune: 's'}, action: tetris.MoveDown},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, action: tetris.MoveLeft},
		{key: keyboard.KeyEvent{Rune: 'e'}, action: tetris.RotateRight},
		{key: keyboard.KeyEvent{Key: keyboard.KeySpace}, action: tetris.DropDown},
		{key: keyboard.KeyEvent{Rune: 'p'}, action: tetris.Pause},
	}
	for _, a := range actions {
		wantLocalCount++
		t.Run(fmt.Sprintf("key %v", a.key), func(t *testing.T) {
			kCh <- a.key
			time.Sleep(10 * time.Millisecond)
			if _, local, _ := render.get(); local != wantLocalCount {
				t.Errorf("wanted render.local() to be %d times, got %d", wantLocalCount, local)
			}
			if _, _, got := tts.get(); got != a.action {
				t.Errorf("wanted action %v, got %v", a.action, got)
			}
		})
	}

	// tetris.GameOver should render.local(), render.lobby() and set the state back to lobby.
	wantLocalCount++
	tts.sendGameOver()
	time.Sleep(10 * time.Millisecond)
	lobbyCount, local, msg := render.get()
	if local != wantLocalCount {
		t.Errorf("wanted render.local() to be %d times, got %d", wantLocalCount, local)
	}
	if lobbyCount != 2 {
		t.Errorf("wanted render.lobby() to be called 2 times, got %d", lobbyCount)
	}
	if msg != "Game Over: 0" {
		t.Errorf("wanted game over message, got %q", msg)
	}
	if cl.state.get() != lobby {
		t.Errorf("wanted state to be lobby")
	}

	// 'p' in the lobby restarts the running game instead of starting a new one.
	kCh <- keyboard.KeyEvent{Rune: 'p'}
	time.Sleep(10 * time.Millisecond)
	if start, _, a := tts.get(); start != 1 || a != tetris.Reset {
		t.Errorf("wanted a single start and a reset action, got %d starts and %q", start, a)
	}

	// 'q' should quit the game and stop tetris.
	kCh <- keyboard.KeyEvent{Rune: 'q'}
	wgDone := make(chan struct{})
	go func() { wg.Wait(); close(wgDone) }()
	select {
	case <-time.After(time.Second):
		t.Errorf("timeout waiting for quit")
	case <-wgDone:
	}
	if _, stop, _ := tts.get(); !stop {
		t.Errorf("wanted tetris.Stop() to be called")
	}
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if lb.topCount != 2 {
		t.Errorf("wanted the leaderboard to be read twice, got %d", lb.topCount)
	}
}

func TestAction(t *testing.T) {
	tests := []struct {
		key    keyboard.KeyEvent
		action tetris.Action
		ok     bool
	}{
		{keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, tetris.MoveLeft, true},
		{keyboard.KeyEvent{Rune: 'a'}, tetris.MoveLeft, true},
		{keyboard.KeyEvent{Key: keyboard.KeyArrowRight}, tetris.MoveRight, true},
		{keyboard.KeyEvent{Rune: 'd'}, tetris.MoveRight, true},
		{keyboard.KeyEvent{Key: keyboard.KeyArrowDown}, tetris.MoveDown, true},
		{keyboard.KeyEvent{Rune: 's'}, tetris.MoveDown, true},
		{keyboard.KeyEvent{Key: keyboard.KeyArrowUp}, tetris.RotateRight, true},
		{keyboard.KeyEvent{Rune: 'w'}, tetris.RotateRight, true},
		{keyboard.KeyEvent{Rune: 'e'}, tetris.RotateRight, true},
		{keyboard.KeyEvent{Key: keyboard.KeySpace}, tetris.DropDown, true},
		{keyboard.KeyEvent{Rune: 'p'}, tetris.Pause, true},
		{keyboard.KeyEvent{Rune: 'r'}, tetris.Reset, true},
		{keyboard.KeyEvent{Rune: 'x'}, "", false},
		{keyboard.KeyEvent{Key: keyboard.KeyEnter}, "", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("key %v", tt.key), func(t *testing.T) {
			a, ok := action(tt.key)
			if a != tt.action || ok != tt.ok {
				t.Errorf("want %q %t, got %q %t", tt.action, tt.ok, a, ok)
			}
		})
	}
}

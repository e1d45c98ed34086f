package tetris

import (
	"testing"
	"time"
)

func TestScoreClear(t *testing.T) {
	tests := []struct {
		lines      int
		wantPoints int
	}{
		{lines: 0, wantPoints: 0},
		{lines: 1, wantPoints: 100},
		{lines: 2, wantPoints: 300},
		{lines: 3, wantPoints: 500},
		{lines: 4, wantPoints: 800},
		{lines: 5, wantPoints: 1000},
	}
	for _, tt := range tests {
		s := newScore()
		s.clear(tt.lines)
		if s.Points != tt.wantPoints {
			t.Errorf("%d lines: wanted %d points, got %d", tt.lines, tt.wantPoints, s.Points)
		}
		if s.Lines != tt.lines {
			t.Errorf("%d lines: wanted %d lines, got %d", tt.lines, tt.lines, s.Lines)
		}
	}
}

func TestLevel(t *testing.T) {
	s := newScore()
	if s.Level != 1 {
		t.Fatalf("wanted level 1, got %d", s.Level)
	}
	for range 9 {
		s.clear(1)
	}
	if s.Level != 1 {
		t.Errorf("wanted level 1 after 9 lines, got %d", s.Level)
	}
	s.clear(1)
	if s.Level != 2 {
		t.Errorf("wanted level 2 after 10 lines, got %d", s.Level)
	}
	s.clear(4)
	s.clear(4)
	s.clear(3)
	if s.Lines != 21 || s.Level != 3 {
		t.Errorf("wanted level 3 after 21 lines, got level %d after %d lines", s.Level, s.Lines)
	}
	s.clear(4)
	if s.Lines != 25 || s.Level != 3 {
		t.Errorf("wanted level 3 after 25 lines, got level %d after %d lines", s.Level, s.Lines)
	}
}

func TestDropInterval(t *testing.T) {
	tests := []struct {
		level int
		want  time.Duration
	}{
		{level: 0, want: 500 * time.Millisecond},
		{level: 1, want: 500 * time.Millisecond},
		{level: 2, want: 460 * time.Millisecond},
		{level: 5, want: 340 * time.Millisecond},
		{level: 11, want: 100 * time.Millisecond},
		{level: 12, want: 80 * time.Millisecond},
		{level: 20, want: 80 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := DropInterval(tt.level); got != tt.want {
			t.Errorf("level %d: wanted %v, got %v", tt.level, tt.want, got)
		}
	}
}

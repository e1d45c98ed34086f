package tetris

import (
	"time"

	"github.com/kamstrup/intmap"
)

const (
	baseInterval = 500 * time.Millisecond
	levelStep    = 40 * time.Millisecond
	minInterval  = 80 * time.Millisecond

	linesPerLevel = 10
	softDropPoint = 1
	hardDropPoint = 2
)

// lineScore maps the lines cleared by a single commit to the points it awards.
var lineScore = func() *intmap.Map[int, int] {
	m := intmap.New[int, int](4)
	m.Put(1, 100)
	m.Put(2, 300)
	m.Put(3, 500)
	m.Put(4, 800)
	return m
}()

// Score tracks the points, lines and level of a session.
type Score struct {
	Points int
	Lines  int
	Level  int
}

func newScore() Score {
	return Score{Level: 1}
}

// clear accounts for n lines cleared in a single commit.
func (s *Score) clear(n int) {
	if n <= 0 {
		return
	}
	p, ok := lineScore.Get(n)
	if !ok {
		p = n * 200
	}
	s.Points += p
	s.Lines += n
	if l := s.Lines/linesPerLevel + 1; l > s.Level {
		s.Level = l
	}
}

func (s *Score) softDrop()       { s.Points += softDropPoint }
func (s *Score) hardDrop(n int) { s.Points += n * hardDropPoint }

// DropInterval returns the time between automatic descents at the given level.
//
// Interval = max(80ms, 500ms - (Level-1)*40ms)
func DropInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	return max(minInterval, baseInterval-time.Duration(level-1)*levelStep)
}

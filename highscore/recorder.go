package highscore

import (
	"context"
	"log/slog"
	"time"
)

// Submitter stores a final score. Board and the leaderboard client implement it.
type Submitter interface {
	Submit(ctx context.Context, name string, score int) (rank, best int, err error)
}

// Leaderboard is a Submitter that also lists the best entries.
type Leaderboard interface {
	Submitter
	Top(ctx context.Context, n int) ([]Entry, error)
}

// Local adapts a Board into a Leaderboard.
type Local struct{ *Board }

func (l Local) Submit(_ context.Context, name string, score int) (int, int, error) {
	_, rank, err := l.Board.Submit(name, score)
	if err != nil {
		return 0, 0, err
	}
	return rank, l.Best(), nil
}

func (l Local) Top(_ context.Context, n int) ([]Entry, error) {
	return l.Board.Top(n), nil
}

// Recorder submits the final score of every game. It is meant to be
// registered with tetris.WithGameOverHandler.
type Recorder struct {
	name      string
	submitter Submitter
	logger    *slog.Logger
	timeout   time.Duration
}

func NewRecorder(name string, s Submitter, logger *slog.Logger) *Recorder {
	return &Recorder{name: name, submitter: s, logger: logger, timeout: 5 * time.Second}
}

// OnGameOver submits score. Failures are logged, the game goes on regardless.
func (r *Recorder) OnGameOver(score int) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	rank, best, err := r.submitter.Submit(ctx, r.name, score)
	if err != nil {
		r.logger.Error("unable to save score", slog.String("error", err.Error()))
		return
	}
	if rank == 1 {
		r.logger.Info("new high score", slog.String("name", r.name), slog.Int("score", score))
		return
	}
	r.logger.Info("game over", slog.String("name", r.name), slog.Int("score", score), slog.Int("rank", rank), slog.Int("best", best))
}

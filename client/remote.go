package client

import (
	"fmt"

	"blockdrop/config"
	"blockdrop/highscore"
	"blockdrop/server"
)

// OpenLeaderboard returns the leaderboard the configuration points to: the
// blockdrop server when remote is set, the local high score file otherwise.
// The returned function releases it.
func OpenLeaderboard(cfg config.Config) (highscore.Leaderboard, func() error, error) {
	if cfg.Remote {
		c, err := server.Dial(cfg.Addr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to leaderboard: %w", err)
		}
		return c, c.Close, nil
	}
	board, err := highscore.Open(cfg.Scores, cfg.ScoresLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open high scores: %w", err)
	}
	return highscore.Local{Board: board}, func() error { return nil }, nil
}

package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"

	"blockdrop/client"
	"blockdrop/config"

	"github.com/eiannone/keyboard"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[24;0H\n\r\033[?25h"

	defaultLogFile = "blockdrop.log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}
	flag.StringVar(&cfg.Name, "name", cfg.Name, "player name for the high score table")
	flag.BoolVar(&cfg.Remote, "remote", cfg.Remote, "submit scores to the leaderboard server")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "leaderboard server address")
	flag.StringVar(&cfg.Scores, "scores", cfg.Scores, "local high score file")
	noGhost := flag.Bool("noghost", false, "hide the ghost piece")
	flag.Parse()

	// the terminal belongs to the game, logs go to a file.
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	logger, closeLog, err := cfg.Logger()
	if err != nil {
		log.Fatalf("unable to create logger: %v", err)
	}
	defer closeLog() //nolint: errcheck

	lb, closeLB, err := client.OpenLeaderboard(cfg)
	if err != nil {
		log.Fatalf("unable to open leaderboard: %v", err)
	}
	defer closeLB() //nolint: errcheck

	c, err := client.New(logger, &client.Options{
		NoGhost:     *noGhost,
		Name:        cfg.Name,
		Leaderboard: lb,
	})
	if err != nil {
		log.Fatalf("unable to start client: %v", err)
	}
	defer keyboard.Close() //nolint: errcheck

	logger.Info("starting", slog.String("name", cfg.Name), slog.Bool("remote", cfg.Remote))
	fmt.Print(hideCursor)
	c.Start()
	fmt.Print(showCursor)
}

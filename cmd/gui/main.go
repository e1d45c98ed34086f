package main

import (
	"flag"
	"log"

	"blockdrop/client"
	"blockdrop/config"
	"blockdrop/gui"
	"blockdrop/highscore"
	"blockdrop/tetris"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	log.SetFlags(0)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}
	flag.StringVar(&cfg.Name, "name", cfg.Name, "player name for the high score table")
	flag.BoolVar(&cfg.Remote, "remote", cfg.Remote, "submit scores to the leaderboard server")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "leaderboard server address")
	flag.StringVar(&cfg.Scores, "scores", cfg.Scores, "local high score file")
	flag.Parse()

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

	g, err := gui.New(tetris.WithGameOverHandler(highscore.NewRecorder(cfg.Name, lb, logger)))
	if err != nil {
		log.Fatalf("failed to create game: %v", err)
	}

	ebiten.SetWindowTitle("Blockdrop")
	ebiten.SetWindowSize(gui.ScreenWidth, gui.ScreenHeight)
	ebiten.SetTPS(gui.TPS)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("failed to run game: %v", err)
	}
}

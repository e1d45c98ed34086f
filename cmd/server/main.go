package main

import (
	"flag"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"blockdrop/config"
	"blockdrop/highscore"
	"blockdrop/server"

	"google.golang.org/grpc"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "address to listen on")
	flag.StringVar(&cfg.Scores, "scores", cfg.Scores, "high score file")
	flag.IntVar(&cfg.ScoresLimit, "limit", cfg.ScoresLimit, "number of entries kept")
	flag.Parse()

	logger, closeLog, err := cfg.Logger()
	if err != nil {
		log.Fatalf("unable to create logger: %v", err)
	}
	defer closeLog() //nolint: errcheck

	board, err := highscore.Open(cfg.Scores, cfg.ScoresLimit)
	if err != nil {
		log.Fatalf("unable to open high scores: %v", err)
	}

	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	s := grpc.NewServer()
	server.RegisterLeaderboardServer(s, server.New(board, logger))

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		s.GracefulStop()
	}()

	logger.Info("starting server", slog.String("addr", lis.Addr().String()))
	if err := s.Serve(lis); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}

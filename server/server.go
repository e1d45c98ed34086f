// Package server serves a shared high score table over gRPC.
package server

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"blockdrop/highscore"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type leaderboardServer struct {
	board  *highscore.Board
	logger *slog.Logger
}

// New returns a LeaderboardServer backed by board.
func New(board *highscore.Board, logger *slog.Logger) LeaderboardServer {
	return &leaderboardServer{board: board, logger: logger}
}

func (s *leaderboardServer) Submit(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	name := strings.TrimSpace(fields["name"].GetStringValue())
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}
	score := fields["score"].GetNumberValue()
	if score < 0 || score != math.Trunc(score) || score > math.MaxInt32 {
		return nil, status.Errorf(codes.InvalidArgument, "invalid score %v", score)
	}

	e, rank, err := s.board.Submit(name, int(score))
	if err != nil {
		s.logger.Error("unable to submit score", slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "unable to save score")
	}
	s.logger.Info("score submitted", slog.String("name", name), slog.Int("score", e.Score), slog.Int("rank", rank))

	return structpb.NewStruct(map[string]any{
		"id":   e.ID.String(),
		"rank": rank,
		"best": s.board.Best(),
	})
}

func (s *leaderboardServer) Top(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	limit := in.GetFields()["limit"].GetNumberValue()
	if limit < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "invalid limit %v", limit)
	}

	entries := s.board.Top(int(limit))
	list := make([]any, 0, len(entries))
	for _, e := range entries {
		list = append(list, map[string]any{
			"id":    e.ID.String(),
			"name":  e.Name,
			"score": e.Score,
			"at":    e.At.Format(time.RFC3339),
		})
	}
	return structpb.NewStruct(map[string]any{"entries": list})
}

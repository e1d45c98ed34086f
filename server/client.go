package server

import (
	"context"
	"fmt"
	"time"

	"blockdrop/highscore"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a remote Leaderboard service.
type Client struct {
	cc   grpc.ClientConnInterface
	conn *grpc.ClientConn
}

var _ highscore.Leaderboard = (*Client)(nil)

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Dial creates a Client for the server at addr. The connection is established
// lazily on the first call.
func Dial(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("unable to create gRPC client: %w", err)
	}
	return &Client{cc: conn, conn: conn}, nil
}

// Close closes the connection opened by Dial.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Submit sends score to the leaderboard and returns its rank and the best score.
func (c *Client) Submit(ctx context.Context, name string, score int) (int, int, error) {
	in, err := structpb.NewStruct(map[string]any{"name": name, "score": score})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build Submit request: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, submitMethod, in, out); err != nil {
		return 0, 0, fmt.Errorf("failed to submit score: %w", err)
	}
	f := out.GetFields()
	return int(f["rank"].GetNumberValue()), int(f["best"].GetNumberValue()), nil
}

// Top returns the best n entries of the leaderboard.
func (c *Client) Top(ctx context.Context, n int) ([]highscore.Entry, error) {
	in, err := structpb.NewStruct(map[string]any{"limit": n})
	if err != nil {
		return nil, fmt.Errorf("failed to build Top request: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, topMethod, in, out); err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	values := out.GetFields()["entries"].GetListValue().GetValues()
	entries := make([]highscore.Entry, 0, len(values))
	for _, v := range values {
		f := v.GetStructValue().GetFields()
		id, err := uuid.Parse(f["id"].GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("invalid entry id: %w", err)
		}
		at, err := time.Parse(time.RFC3339, f["at"].GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("invalid entry time: %w", err)
		}
		entries = append(entries, highscore.Entry{
			ID:    id,
			Name:  f["name"].GetStringValue(),
			Score: int(f["score"].GetNumberValue()),
			At:    at,
		})
	}
	return entries, nil
}

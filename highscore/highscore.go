// Package highscore keeps a table of the best scores in a JSON file.
package highscore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is a single row of the table.
type Entry struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Score int       `json:"score"`
	At    time.Time `json:"at"`
}

// Board is a high score table persisted to a file. It is safe for concurrent use.
type Board struct {
	path    string
	limit   int
	entries []Entry
	now     func() time.Time
	mu      sync.RWMutex
}

// Open loads the table stored at path. A missing file is an empty table.
func Open(path string, limit int) (*Board, error) {
	if limit < 1 {
		return nil, fmt.Errorf("invalid high score limit %d", limit)
	}
	b := &Board{path: path, limit: limit, now: time.Now}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read high scores: %w", err)
	}
	if err := json.Unmarshal(data, &b.entries); err != nil {
		return nil, fmt.Errorf("failed to decode high scores: %w", err)
	}
	sortEntries(b.entries)
	if len(b.entries) > limit {
		b.entries = b.entries[:limit]
	}
	return b, nil
}

// Submit records a score and persists the table. It returns the new entry and
// its 1-based rank, 0 when the score didn't make it to the table.
func (b *Board) Submit(name string, score int) (Entry, int, error) {
	e := Entry{ID: uuid.New(), Name: name, Score: score, At: b.now().UTC()}

	b.mu.Lock()
	defer b.mu.Unlock()

	entries := append(slices.Clone(b.entries), e)
	sortEntries(entries)
	if len(entries) > b.limit {
		entries = entries[:b.limit]
	}
	rank := slices.IndexFunc(entries, func(x Entry) bool { return x.ID == e.ID }) + 1
	if rank == 0 {
		return e, 0, nil
	}
	if err := b.save(entries); err != nil {
		return Entry{}, 0, err
	}
	b.entries = entries
	return e, rank, nil
}

// Best returns the highest score in the table, 0 when it's empty.
func (b *Board) Best() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.entries) == 0 {
		return 0
	}
	return b.entries[0].Score
}

// Top returns up to n entries from the top of the table. n <= 0 returns all.
func (b *Board) Top(n int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n <= 0 || n > len(b.entries) {
		n = len(b.entries)
	}
	return slices.Clone(b.entries[:n])
}

// save writes entries next to the table and renames it over, so a crash never
// leaves a truncated file behind.
func (b *Board) save(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode high scores: %w", err)
	}
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create high score directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("failed to create high score file: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write high scores: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write high scores: %w", err)
	}
	if err := os.Rename(f.Name(), b.path); err != nil {
		return fmt.Errorf("failed to save high scores: %w", err)
	}
	return nil
}

// sortEntries orders by score, earlier entries first on ties.
func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return a.At.Compare(b.At)
	})
}

// Package config loads the settings shared by the blockdrop binaries.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	Name        string // Player name used for the leaderboard
	Addr        string // Address of the leaderboard gRPC server
	Remote      bool   // Submit scores to the leaderboard server instead of the local file
	Scores      string // Path of the local high score file
	ScoresLimit int    // Number of entries kept in the high score table

	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	LogFile   string // Empty logs to stderr
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Name:        "player",
		Addr:        "localhost:9000",
		Scores:      "scores.json",
		ScoresLimit: 10,
		LogLevel:    slog.LevelInfo,
		LogFormat:   "text",
	}
}

// Load reads the .env file in the working directory, when there is one, and
// then the BLOCKDROP_* environment variables on top of the defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the BLOCKDROP_* environment variables on top of the defaults.
func FromEnv() (Config, error) {
	c := Default()
	c.Name = getEnv("BLOCKDROP_NAME", c.Name)
	c.Addr = getEnv("BLOCKDROP_ADDR", c.Addr)
	c.Scores = getEnv("BLOCKDROP_SCORES", c.Scores)
	c.LogFormat = strings.ToLower(getEnv("BLOCKDROP_LOG_FORMAT", c.LogFormat))
	c.LogFile = getEnv("BLOCKDROP_LOG_FILE", c.LogFile)

	var err error
	if c.Remote, err = getEnvAsBool("BLOCKDROP_REMOTE", c.Remote); err != nil {
		return Config{}, err
	}
	if c.ScoresLimit, err = getEnvAsInt("BLOCKDROP_SCORES_LIMIT", c.ScoresLimit); err != nil {
		return Config{}, err
	}
	if c.ScoresLimit < 1 {
		return Config{}, fmt.Errorf("BLOCKDROP_SCORES_LIMIT must be positive, got %d", c.ScoresLimit)
	}
	if v := getEnv("BLOCKDROP_LOG_LEVEL", ""); v != "" {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid BLOCKDROP_LOG_LEVEL: %w", err)
		}
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return Config{}, fmt.Errorf("BLOCKDROP_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return i, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("environment variable %s must be a boolean: %w", key, err)
	}
	return b, nil
}

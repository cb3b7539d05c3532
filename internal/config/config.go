// Package config loads the server and console settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/benbeisheim/chess-engine/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig indicates a configuration value out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Addr            string `yaml:"addr"`
	AllowOrigins    string `yaml:"allow_origins"`
	ReadBufferSize  int    `yaml:"read_buffer_size"`
	WriteBufferSize int    `yaml:"write_buffer_size"`
}

type GameConfig struct {
	ClockSeconds        int           `yaml:"clock_seconds"`
	MatchmakingInterval time.Duration `yaml:"matchmaking_interval"`
	CheckmateMode       string        `yaml:"checkmate_mode"`
}

type StorageConfig struct {
	// Dir is the badger directory; empty keeps the archive in memory.
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":3000",
			AllowOrigins:    "http://localhost:5173",
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Game: GameConfig{
			ClockSeconds:        600,
			MatchmakingInterval: time.Second,
			CheckmateMode:       "heuristic",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping fields the document leaves out, and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	}
	if c.Server.ReadBufferSize <= 0 || c.Server.WriteBufferSize <= 0 {
		return fmt.Errorf("%w: websocket buffer sizes must be positive", ErrInvalidConfig)
	}
	if c.Game.ClockSeconds <= 0 {
		return fmt.Errorf("%w: game.clock_seconds must be positive, got %d", ErrInvalidConfig, c.Game.ClockSeconds)
	}
	if c.Game.MatchmakingInterval <= 0 {
		return fmt.Errorf("%w: game.matchmaking_interval must be positive", ErrInvalidConfig)
	}
	if _, err := ParseCheckmateMode(c.Game.CheckmateMode); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// GameSettings converts the game section into the model's per-game settings.
func (c *Config) GameSettings() model.GameConfig {
	mode, _ := ParseCheckmateMode(c.Game.CheckmateMode)
	return model.GameConfig{
		ClockTime:     time.Duration(c.Game.ClockSeconds) * time.Second,
		CheckmateMode: mode,
	}
}

func ParseCheckmateMode(s string) (model.CheckmateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "heuristic":
		return model.CheckmateHeuristic, nil
	case "strict":
		return model.CheckmateStrict, nil
	}
	return 0, fmt.Errorf("%w: unknown checkmate mode %q", ErrInvalidConfig, s)
}

func ParseLogLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "", "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
}

// ApplyLogLevel sets fiber's default logger to the configured level.
func (c *Config) ApplyLogLevel() {
	level, err := ParseLogLevel(c.Log.Level)
	if err != nil {
		level = log.LevelInfo
	}
	log.SetLevel(level)
}

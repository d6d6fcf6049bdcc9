package logs

import (
	"fmt"
	"log/slog"

	"tsmini/pkg/configs"
)

// Level is the minimum level the terminal handler prints.
type Level slog.Level

func (Module) Level() Level {
	return Level(slog.LevelInfo)
}

// ParseLevel accepts the names slog understands ("debug", "info", "warn",
// "error"), case-insensitively. The empty string means info.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return Level(slog.LevelInfo), nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return Level(l), nil
}

// ConfiguredLevel reads the level from the log section of the configuration.
// Fork it over a scope that provides configs.Log to replace the default.
func ConfiguredLevel(cfg configs.Log) Level {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		// the schema only admits names ParseLevel accepts
		panic(err)
	}
	return level
}

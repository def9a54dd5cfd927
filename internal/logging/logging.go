// Package logging builds the zap logger used by sic.
//
// Logs never go to stdout, which may carry image bytes: they are written to
// stderr (or the writer given to New) or to a size-rotated log file.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/creasty/defaults"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"log-level" default:"warn"`

	// Format is the log format (console or json).
	Format string `mapstructure:"log-format" default:"console"`

	// File, when set, receives the logs instead of the writer passed to New.
	// The file is rotated once it reaches MaxSize megabytes.
	File string `mapstructure:"log-file"`

	MaxSize    int `mapstructure:"log-max-size" default:"10"`
	MaxBackups int `mapstructure:"log-max-backups" default:"3"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	var cfg Config
	_ = defaults.Set(&cfg)
	return cfg
}

// TransportLevel converts the configured level to a zapcore.Level.
func (c Config) TransportLevel() (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(c.Level)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", c.Level)
	}
	return lvl, nil
}

// New creates a logger writing to w, or to cfg.File when it is set. Unset
// fields take their default values.
func New(cfg Config, w io.Writer) (*zap.Logger, error) {
	if err := defaults.Set(&cfg); err != nil {
		return nil, err
	}

	level, err := cfg.TransportLevel()
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	if cfg.File != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
		}
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core), nil
}

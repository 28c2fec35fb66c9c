package fcs

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/fcs/internal/options"
	"github.com/arloliu/fcs/internal/source"
)

// Config holds the settings applied by Option values.
type Config struct {
	logger              *slog.Logger
	mmap                bool
	literalDelimiters   bool
	maxDecompressedSize int64
	metadataOnly        bool
	compensate          bool
}

// Option represents a functional option for configuring Open, OpenReader and Decode.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		logger:              slog.Default(),
		maxDecompressedSize: source.DefaultMaxDecompressedSize,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) sourceConfig() source.Config {
	return source.Config{Mmap: c.mmap, MaxDecompressedSize: c.maxDecompressedSize}
}

// WithLogger sets the logger receiving warnings and debug traces.
// The default is slog.Default(). A nil logger is rejected.
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(c *Config) error {
		if logger == nil {
			return errors.New("fcs: nil logger")
		}
		c.logger = logger

		return nil
	})
}

// WithMmap maps uncompressed files into memory instead of reading them with pread.
func WithMmap() Option {
	return options.NoError(func(c *Config) {
		c.mmap = true
	})
}

// WithLiteralDelimiters splits the TEXT segment on every delimiter byte, so a doubled
// delimiter yields an empty token instead of an escaped delimiter character.
func WithLiteralDelimiters() Option {
	return options.NoError(func(c *Config) {
		c.literalDelimiters = true
	})
}

// WithMaxDecompressedSize bounds the size a compressed file may expand to.
func WithMaxDecompressedSize(n int64) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("fcs: max decompressed size must be positive, got %d", n)
		}
		c.maxDecompressedSize = n

		return nil
	})
}

// WithMetadataOnly makes Decode stop after the TEXT segment. DATA is never read.
func WithMetadataOnly() Option {
	return options.NoError(func(c *Config) {
		c.metadataOnly = true
	})
}

// WithCompensation requests spillover compensation, which is not implemented:
// Decode fails with errs.ErrNotImplemented before opening the file.
func WithCompensation() Option {
	return options.NoError(func(c *Config) {
		c.compensate = true
	})
}

package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type readerConfig struct {
	mmap    bool
	maxSize int64
	order   []string
}

func withMmap() Option[*readerConfig] {
	return NoError(func(c *readerConfig) {
		c.mmap = true
		c.order = append(c.order, "mmap")
	})
}

func withMaxSize(n int64) Option[*readerConfig] {
	return New(func(c *readerConfig) error {
		if n <= 0 {
			return errors.New("max size must be positive")
		}
		c.maxSize = n
		c.order = append(c.order, "max")

		return nil
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &readerConfig{}
		err := Apply(cfg, withMaxSize(10), withMmap())

		require.NoError(t, err)
		require.True(t, cfg.mmap)
		require.Equal(t, int64(10), cfg.maxSize)
		require.Equal(t, []string{"max", "mmap"}, cfg.order)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &readerConfig{}
		err := Apply(cfg, withMaxSize(-1), withMmap())

		require.Error(t, err)
		require.False(t, cfg.mmap, "options after the failing one must not run")
		require.Empty(t, cfg.order)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &readerConfig{}
		require.NoError(t, Apply(cfg, nil, withMmap()))
		require.True(t, cfg.mmap)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &readerConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, &readerConfig{}, cfg)
	})
}

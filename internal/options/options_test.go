package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errFillTooLarge = errors.New("fill too large")

type pageConfig struct {
	fill    int
	flush   bool
	applied []string
}

func withFill(n int) Option[*pageConfig] {
	return New(func(c *pageConfig) error {
		if n > 65025 {
			return errFillTooLarge
		}
		c.fill = n
		c.applied = append(c.applied, "fill")

		return nil
	})
}

func withFlush(flush bool) Option[*pageConfig] {
	return NoError(func(c *pageConfig) {
		c.flush = flush
		c.applied = append(c.applied, "flush")
	})
}

func TestApply(t *testing.T) {
	t.Run("No options", func(t *testing.T) {
		cfg := &pageConfig{fill: 4096}

		require.NoError(t, Apply(cfg))
		require.Equal(t, 4096, cfg.fill)
		require.Empty(t, cfg.applied)
	})

	t.Run("Options applied in order", func(t *testing.T) {
		cfg := &pageConfig{}

		err := Apply(cfg, withFlush(true), withFill(100), withFill(200))

		require.NoError(t, err)
		require.Equal(t, 200, cfg.fill)
		require.True(t, cfg.flush)
		require.Equal(t, []string{"flush", "fill", "fill"}, cfg.applied)
	})

	t.Run("Stops at first error", func(t *testing.T) {
		cfg := &pageConfig{}

		err := Apply(cfg, withFill(100), withFill(70000), withFlush(true))

		require.ErrorIs(t, err, errFillTooLarge)
		require.Equal(t, 100, cfg.fill)
		require.False(t, cfg.flush)
		require.Equal(t, []string{"fill"}, cfg.applied)
	})

	t.Run("Nil option skipped", func(t *testing.T) {
		cfg := &pageConfig{}

		require.NoError(t, Apply(cfg, nil, withFlush(true)))
		require.True(t, cfg.flush)
	})
}

func TestNoError(t *testing.T) {
	cfg := &pageConfig{}
	opt := NoError(func(c *pageConfig) { c.fill = 1 })

	require.NoError(t, opt.apply(cfg))
	require.Equal(t, 1, cfg.fill)
}

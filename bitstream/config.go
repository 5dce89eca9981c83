package bitstream

import (
	"fmt"

	"github.com/arloliu/ogg/errs"
	"github.com/arloliu/ogg/internal/options"
	"github.com/arloliu/ogg/internal/pool"
	"github.com/arloliu/ogg/section"
)

type syncConfig struct {
	bufferSize int
}

func defaultSyncConfig() *syncConfig {
	return &syncConfig{bufferSize: pool.SyncBufferDefaultSize}
}

// SyncOption configures a SyncState.
type SyncOption = options.Option[*syncConfig]

// WithBufferSize sets the initial capacity of the sync buffer. The buffer
// still grows as needed.
func WithBufferSize(n int) SyncOption {
	return options.New(func(c *syncConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: buffer size %d", errs.ErrInvalidOption, n)
		}
		c.bufferSize = n

		return nil
	})
}

type streamConfig struct {
	fill int
}

func defaultStreamConfig() *streamConfig {
	return &streamConfig{fill: section.DefaultFill}
}

// StreamOption configures a Stream.
type StreamOption = options.Option[*streamConfig]

// WithPageFill sets the body size at which PageOut emits a page.
//
// n must be in [1, section.MaxBodySize]. Default: section.DefaultFill.
func WithPageFill(n int) StreamOption {
	return options.New(func(c *streamConfig) error {
		if err := validateFill(n); err != nil {
			return err
		}
		c.fill = n

		return nil
	})
}

func validateFill(n int) error {
	if n <= 0 || n > section.MaxBodySize {
		return fmt.Errorf("%w: page fill %d outside [1, %d]", errs.ErrInvalidOption, n, section.MaxBodySize)
	}

	return nil
}

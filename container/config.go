package container

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/ogg/errs"
	"github.com/arloliu/ogg/format"
	"github.com/arloliu/ogg/internal/options"
	"github.com/arloliu/ogg/internal/pool"
	"github.com/arloliu/ogg/section"
)

// discardLogger is used when no logger is configured.
var discardLogger = slog.New(slog.DiscardHandler)

type demuxerConfig struct {
	logger      *slog.Logger
	readSize    int
	compression format.CompressionType
	strictSync  bool
}

func defaultDemuxerConfig() *demuxerConfig {
	return &demuxerConfig{
		logger:      discardLogger,
		readSize:    pool.SyncBufferDefaultSize,
		compression: format.CompressionNone,
	}
}

// DemuxerOption configures a Demuxer.
type DemuxerOption = options.Option[*demuxerConfig]

// WithLogger sets the logger for resync, stream and loss events.
// A nil logger discards all records.
func WithLogger(logger *slog.Logger) DemuxerOption {
	return options.NoError(func(c *demuxerConfig) {
		if logger == nil {
			logger = discardLogger
		}
		c.logger = logger
	})
}

// WithReadSize sets how many bytes the demuxer requests from the reader at
// a time. Default: 8KiB.
func WithReadSize(n int) DemuxerOption {
	return options.New(func(c *demuxerConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: read size %d", errs.ErrInvalidOption, n)
		}
		c.readSize = n

		return nil
	})
}

// WithPacketCompression sets the payload compression the writer used.
// Default: format.CompressionNone.
func WithPacketCompression(comp format.CompressionType) DemuxerOption {
	return options.New(func(c *demuxerConfig) error {
		if !comp.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, comp)
		}
		c.compression = comp

		return nil
	})
}

// WithStrictSync makes ReadPacket report lost capture as *errs.SkipError and
// packet loss as errs.ErrOutOfSync instead of only logging them. Reading can
// continue after either error.
func WithStrictSync(strict bool) DemuxerOption {
	return options.NoError(func(c *demuxerConfig) {
		c.strictSync = strict
	})
}

type muxerConfig struct {
	logger          *slog.Logger
	maxPageSize     int
	fill            int
	compression     format.CompressionType
	flushEachPacket bool
}

func defaultMuxerConfig() *muxerConfig {
	return &muxerConfig{
		logger:      discardLogger,
		maxPageSize: section.MaxPageSize,
		fill:        section.DefaultFill,
		compression: format.CompressionNone,
	}
}

// MuxerOption configures a Muxer.
type MuxerOption = options.Option[*muxerConfig]

// WithMuxerLogger sets the logger for stream lifecycle events.
// A nil logger discards all records.
func WithMuxerLogger(logger *slog.Logger) MuxerOption {
	return options.NoError(func(c *muxerConfig) {
		if logger == nil {
			logger = discardLogger
		}
		c.logger = logger
	})
}

// WithMaxPageSize caps the serialized size of every page written.
//
// limit must be in [section.MinPageLimit, section.MaxPageSize].
func WithMaxPageSize(limit int) MuxerOption {
	return options.New(func(c *muxerConfig) error {
		if limit < section.MinPageLimit || limit > section.MaxPageSize {
			return fmt.Errorf("%w: %d bytes outside [%d, %d]",
				errs.ErrInvalidPageSize, limit, section.MinPageLimit, section.MaxPageSize)
		}
		c.maxPageSize = limit

		return nil
	})
}

// WithMuxerPageFill sets the body size at which a page is written.
//
// n must be in [1, section.MaxBodySize]. Default: section.DefaultFill.
func WithMuxerPageFill(n int) MuxerOption {
	return options.New(func(c *muxerConfig) error {
		if n <= 0 || n > section.MaxBodySize {
			return fmt.Errorf("%w: page fill %d outside [1, %d]", errs.ErrInvalidOption, n, section.MaxBodySize)
		}
		c.fill = n

		return nil
	})
}

// WithMuxerCompression compresses every packet payload before paging.
// Default: format.CompressionNone.
func WithMuxerCompression(comp format.CompressionType) MuxerOption {
	return options.New(func(c *muxerConfig) error {
		if !comp.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, comp)
		}
		c.compression = comp

		return nil
	})
}

// WithFlushEachPacket writes out every packet as soon as it is queued,
// trading page overhead for latency.
func WithFlushEachPacket(enabled bool) MuxerOption {
	return options.NoError(func(c *muxerConfig) {
		c.flushEachPacket = enabled
	})
}

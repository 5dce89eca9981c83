package container

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/arloliu/ogg/bitstream"
	"github.com/arloliu/ogg/compress"
	"github.com/arloliu/ogg/errs"
	"github.com/arloliu/ogg/internal/collision"
	"github.com/arloliu/ogg/internal/hash"
	"github.com/arloliu/ogg/internal/options"
	"github.com/arloliu/ogg/internal/pool"
)

// MuxerStats summarizes what a Muxer has written so far.
type MuxerStats struct {
	// Pages is the number of pages written.
	Pages int64
	// Packets is the number of packets accepted.
	Packets int64
	// Bytes is the number of bytes written to the physical stream.
	Bytes int64
	// Streams is the number of logical streams added.
	Streams int
}

// Muxer interleaves the pages of several logical streams into one physical
// stream.
//
// Pages are written as soon as they are due, so pages of different logical
// streams appear in the order their packets were submitted. A Muxer is not
// safe for concurrent use.
type Muxer struct {
	w       io.Writer
	cfg     *muxerConfig
	codec   compress.Compressor
	tracker *collision.Tracker
	streams map[int32]*bitstream.Stream

	stats     MuxerStats
	compStats compress.CompressionStats
	closed    bool
}

// NewMuxer creates a Muxer writing to w.
//
// Returns errs.ErrInvalidOption, errs.ErrInvalidPageSize or
// errs.ErrInvalidCompression for bad options.
func NewMuxer(w io.Writer, opts ...MuxerOption) (*Muxer, error) {
	cfg := defaultMuxerConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	return &Muxer{
		w:         w,
		cfg:       cfg,
		codec:     codec,
		tracker:   collision.NewTracker(),
		streams:   make(map[int32]*bitstream.Stream),
		compStats: compress.CompressionStats{Algorithm: cfg.compression},
	}, nil
}

// AddStream adds a logical stream whose serial number is derived from name.
//
// The same name always yields the same serial, so independent writers agree
// on serials without coordination.
//
// Returns errs.ErrSerialCollision if the name was already added or hashes to
// the serial of another stream, errs.ErrInvalidOption for an empty name.
func (m *Muxer) AddStream(name string) (int32, error) {
	if m.closed {
		return 0, errs.ErrClosed
	}

	serial := hash.Serial(name)
	if err := m.tracker.TrackStream(name, serial); err != nil {
		return 0, err
	}

	if err := m.addStream(serial); err != nil {
		return 0, err
	}
	m.cfg.logger.Info("logical stream added", "name", name, "serial", serial)

	return serial, nil
}

// AddStreamSerial adds a logical stream with an explicit serial number.
//
// Returns errs.ErrSerialCollision if the serial is already in use.
func (m *Muxer) AddStreamSerial(serial int32) error {
	if m.closed {
		return errs.ErrClosed
	}

	if err := m.tracker.TrackSerial(serial); err != nil {
		return err
	}

	if err := m.addStream(serial); err != nil {
		return err
	}
	m.cfg.logger.Info("logical stream added", "serial", serial)

	return nil
}

func (m *Muxer) addStream(serial int32) error {
	st, err := bitstream.NewStream(serial, bitstream.WithPageFill(m.cfg.fill))
	if err != nil {
		return err
	}
	m.streams[serial] = st
	m.stats.Streams++

	return nil
}

// WritePacket queues a packet on the logical stream with the given serial
// and writes every page that becomes due.
//
// The payload is compressed with the configured codec first. Set EndsStream
// on the last packet of a stream; its final page is written immediately.
//
// Returns errs.ErrUnknownStream for a serial that was not added,
// errs.ErrStreamEnded after the last packet of that stream and errs.ErrClosed
// after Close.
func (m *Muxer) WritePacket(serial int32, pkt bitstream.Packet) error {
	if m.closed {
		return errs.ErrClosed
	}

	st, ok := m.streams[serial]
	if !ok {
		return fmt.Errorf("%w: serial %d", errs.ErrUnknownStream, serial)
	}

	data, err := m.codec.Compress(pkt.Data)
	if err != nil {
		return fmt.Errorf("compress packet for stream %d: %w", serial, err)
	}
	m.compStats.Add(len(pkt.Data), len(data))
	pkt.Data = data

	if err := st.PacketIn(pkt); err != nil {
		return fmt.Errorf("stream %d: %w", serial, err)
	}
	m.stats.Packets++

	if m.cfg.flushEachPacket {
		return m.flushStream(st)
	}

	return m.writeDuePages(st)
}

// Flush writes all queued data of one logical stream, even if pages are not
// full yet.
func (m *Muxer) Flush(serial int32) error {
	if m.closed {
		return errs.ErrClosed
	}

	st, ok := m.streams[serial]
	if !ok {
		return fmt.Errorf("%w: serial %d", errs.ErrUnknownStream, serial)
	}

	return m.flushStream(st)
}

// Close flushes every logical stream. It does not close the underlying
// writer.
//
// Close does not mark streams as ended: a stream whose last packet lacked
// EndsStream is left without an end-of-stream page. Calling Close twice is a
// no-op.
func (m *Muxer) Close() error {
	if m.closed {
		return nil
	}

	var errList []error
	for _, serial := range m.tracker.Serials() {
		st := m.streams[serial]
		if err := m.flushStream(st); err != nil {
			errList = append(errList, err)
			continue
		}
		if !st.Ended() {
			m.cfg.logger.Warn("logical stream closed without end of stream", "serial", serial)
		}
	}
	m.closed = true

	return errors.Join(errList...)
}

// Serials returns the serial numbers of all logical streams in the order
// they were added.
func (m *Muxer) Serials() []int32 {
	return slices.Clone(m.tracker.Serials())
}

// Stats returns counters for the data written so far.
func (m *Muxer) Stats() MuxerStats {
	return m.stats
}

// CompressionStats returns payload sizes before and after compression.
func (m *Muxer) CompressionStats() compress.CompressionStats {
	return m.compStats
}

func (m *Muxer) writeDuePages(st *bitstream.Stream) error {
	for {
		page, err := st.PageOutWithMaxSize(m.cfg.maxPageSize)
		if errors.Is(err, errs.ErrNeedMoreData) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("stream %d: %w", st.Serial(), err)
		}
		if err := m.writePage(&page); err != nil {
			return err
		}
	}
}

func (m *Muxer) flushStream(st *bitstream.Stream) error {
	for {
		page, err := st.FlushWithMaxSize(m.cfg.maxPageSize)
		if errors.Is(err, errs.ErrNeedMoreData) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("stream %d: %w", st.Serial(), err)
		}
		if err := m.writePage(&page); err != nil {
			return err
		}
	}
}

func (m *Muxer) writePage(page *bitstream.Page) error {
	bb := pool.GetPageBuffer()
	defer pool.PutPageBuffer(bb)

	bb.Grow(page.Size())
	bb.B = page.AppendTo(bb.B)

	n, err := bb.WriteTo(m.w)
	m.stats.Bytes += n
	if err != nil {
		return fmt.Errorf("write page %d of stream %d: %w", page.SequenceNumber, page.StreamSerial, err)
	}
	m.stats.Pages++

	if page.EndsStream() {
		m.cfg.logger.Debug("logical stream ended", "serial", page.StreamSerial, "pages", page.SequenceNumber+1)
	}

	return nil
}

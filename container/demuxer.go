package container

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/arloliu/ogg/bitstream"
	"github.com/arloliu/ogg/compress"
	"github.com/arloliu/ogg/errs"
	"github.com/arloliu/ogg/internal/options"
)

// Packet is a packet tagged with the logical stream it belongs to.
type Packet struct {
	bitstream.Packet
	// Serial identifies the logical stream.
	Serial int32
}

// DemuxerStats summarizes what a Demuxer has read so far.
type DemuxerStats struct {
	// Pages is the number of pages accepted by a logical stream.
	Pages int64
	// Packets is the number of packets returned.
	Packets int64
	// Streams is the number of logical streams seen.
	Streams int
	// Resyncs counts the times capture was lost and regained.
	Resyncs int64
	// SkippedBytes is the number of bytes discarded while resyncing.
	SkippedBytes int64
	// LossMarkers counts packet holes caused by missing pages.
	LossMarkers int64
	// LostPages is the number of missing pages over all logical streams.
	LostPages int64
	// DroppedPages counts pages received after their stream had ended.
	DroppedPages int64
}

// Demuxer reads packets of all logical streams from a physical stream.
//
// Packets are returned in page order. Within one logical stream, packet
// order is preserved. A Demuxer is not safe for concurrent use.
type Demuxer struct {
	r       io.Reader
	cfg     *demuxerConfig
	sync    *bitstream.SyncState
	codec   compress.Decompressor
	readBuf []byte

	streams map[int32]*bitstream.Stream
	order   []int32
	ready   []readyItem

	stats DemuxerStats
	eof   bool
	ioErr error
}

// readyItem is a decoded packet or, in strict mode, a loss report in its
// place.
type readyItem struct {
	pkt Packet
	err error
}

// NewDemuxer creates a Demuxer reading from r.
//
// Returns errs.ErrInvalidOption or errs.ErrInvalidCompression for bad options.
func NewDemuxer(r io.Reader, opts ...DemuxerOption) (*Demuxer, error) {
	cfg := defaultDemuxerConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	sync, err := bitstream.NewSyncState(bitstream.WithBufferSize(cfg.readSize))
	if err != nil {
		return nil, err
	}

	return &Demuxer{
		r:       r,
		cfg:     cfg,
		sync:    sync,
		codec:   codec,
		readBuf: make([]byte, cfg.readSize),
		streams: make(map[int32]*bitstream.Stream),
	}, nil
}

// ReadPacket returns the next packet of any logical stream.
//
// Returns io.EOF once the reader is exhausted and every buffered packet was
// returned. A truncated trailing page is discarded. With WithStrictSync,
// *errs.SkipError reports lost capture and errs.ErrOutOfSync reports a packet
// hole; the call can be repeated to continue.
func (d *Demuxer) ReadPacket() (Packet, error) {
	for {
		if len(d.ready) > 0 {
			return d.popReady()
		}
		if d.ioErr != nil {
			return Packet{}, d.ioErr
		}

		page, err := d.sync.PageOut()
		switch {
		case err == nil:
			if err := d.handlePage(&page); err != nil {
				return Packet{}, err
			}

		case errors.Is(err, errs.ErrOutOfSync):
			d.stats.Resyncs++
			var skipErr *errs.SkipError
			skipped := 0
			if errors.As(err, &skipErr) {
				skipped = skipErr.Skipped
			}
			d.cfg.logger.Debug("lost capture, resyncing", "skipped", skipped)
			if d.cfg.strictSync {
				return Packet{}, err
			}

		case errors.Is(err, errs.ErrNeedMoreData):
			if d.eof {
				if n := d.sync.Buffered(); n > 0 {
					d.cfg.logger.Debug("discarding truncated data at end of input", "bytes", n)
				}

				return Packet{}, io.EOF
			}
			if err := d.fill(); err != nil {
				d.ioErr = err

				return Packet{}, err
			}

		default:
			return Packet{}, err
		}
	}
}

// Stream returns the logical stream with the given serial, if seen.
func (d *Demuxer) Stream(serial int32) (*bitstream.Stream, bool) {
	st, ok := d.streams[serial]

	return st, ok
}

// Serials returns the serial numbers of all logical streams seen, in order
// of first appearance.
func (d *Demuxer) Serials() []int32 {
	return slices.Clone(d.order)
}

// Stats returns counters for the data read so far.
func (d *Demuxer) Stats() DemuxerStats {
	stats := d.stats
	stats.SkippedBytes = d.sync.Skipped()
	for _, st := range d.streams {
		stats.LostPages += st.LostPages()
	}

	return stats
}

func (d *Demuxer) fill() error {
	n, err := d.r.Read(d.readBuf)
	if n > 0 {
		_, _ = d.sync.Write(d.readBuf[:n])
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		d.eof = true
		return nil
	default:
		return fmt.Errorf("read physical stream: %w", err)
	}
}

func (d *Demuxer) handlePage(page *bitstream.Page) error {
	serial := page.StreamSerial
	st, ok := d.streams[serial]
	if !ok {
		var err error
		st, err = bitstream.NewStream(serial)
		if err != nil {
			return err
		}
		d.streams[serial] = st
		d.order = append(d.order, serial)
		d.stats.Streams++
		d.cfg.logger.Info("new logical stream",
			"serial", serial, "bos", page.BeginsStream(), "sequence", page.SequenceNumber)
	}

	if err := st.PageIn(page); err != nil {
		if errors.Is(err, errs.ErrStreamEnded) {
			d.stats.DroppedPages++
			d.cfg.logger.Warn("page after end of stream dropped",
				"serial", serial, "sequence", page.SequenceNumber)

			return nil
		}

		return fmt.Errorf("stream %d: %w", serial, err)
	}
	d.stats.Pages++

	for {
		pkt, err := st.PacketOut()
		if err == nil {
			d.ready = append(d.ready, readyItem{pkt: Packet{Packet: pkt, Serial: serial}})
			continue
		}
		if !errors.Is(err, errs.ErrOutOfSync) {
			break
		}

		d.stats.LossMarkers++
		d.cfg.logger.Warn("packet loss", "serial", serial, "lost_pages", st.LostPages())
		if d.cfg.strictSync {
			d.ready = append(d.ready, readyItem{
				pkt: Packet{Serial: serial},
				err: fmt.Errorf("stream %d: %w", serial, err),
			})
		}
	}

	if st.Ended() {
		d.cfg.logger.Debug("logical stream ended", "serial", serial)
	}

	return nil
}

func (d *Demuxer) popReady() (Packet, error) {
	item := d.ready[0]
	d.ready[0] = readyItem{}
	d.ready = d.ready[1:]
	if len(d.ready) == 0 {
		d.ready = nil
	}

	if item.err != nil {
		return item.pkt, item.err
	}

	data, err := d.codec.Decompress(item.pkt.Data)
	if err != nil {
		return item.pkt, fmt.Errorf("decompress packet %d of stream %d: %w",
			item.pkt.SequenceIndex, item.pkt.Serial, err)
	}
	item.pkt.Data = data
	d.stats.Packets++

	return item.pkt, nil
}

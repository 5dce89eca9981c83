// Package ogg implements the Ogg bitstream container format.
//
// An Ogg physical stream is a sequence of pages. Each page belongs to one
// logical stream, identified by a 32-bit serial number, and carries the
// segments of one or more packets. Packets larger than a page continue on the
// next page of the same logical stream.
//
// # Core Features
//
//   - Byte-level page synchronization with recovery from corrupt or missing data
//   - Packet reassembly across pages with loss detection by page sequence number
//   - Packet paging with configurable fill targets and page size caps
//   - CRC-32 page checksums as defined by the Ogg format
//   - Multiplexing of many logical streams over io.Reader and io.Writer
//   - Optional packet payload compression (None, Zstd, S2, LZ4)
//
// # Basic Usage
//
// Writing packets of two logical streams:
//
//	import "github.com/arloliu/ogg"
//
//	mux, _ := ogg.NewMuxer(w)
//	audio, _ := mux.AddStream("audio")
//	video, _ := mux.AddStream("video")
//	_ = mux.WritePacket(audio, bitstream.Packet{Data: frame, GranulePosition: 960})
//	_ = mux.WritePacket(video, bitstream.Packet{Data: keyframe, EndsStream: true})
//	_ = mux.Close()
//
// Reading them back:
//
//	demux, _ := ogg.NewDemuxer(r)
//	for {
//	    pkt, err := demux.ReadPacket()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    fmt.Printf("stream=%d len=%d\n", pkt.Serial, pkt.Len())
//	}
//
// # Package Structure
//
// This package provides top-level wrappers for the common cases. The
// bitstream package holds the page, sync and stream primitives for callers
// that drive the byte flow themselves; the container package holds the
// reader and writer side multiplexers; section describes the page layout.
package ogg

import (
	"io"

	"github.com/arloliu/ogg/bitstream"
	"github.com/arloliu/ogg/container"
	"github.com/arloliu/ogg/internal/hash"
)

// NewSyncState creates a page synchronizer for raw bytes.
//
// Feed it with Write and take verified pages with PageOut. Use it directly
// when the bytes do not come from an io.Reader, for example when pages arrive
// in network datagrams.
//
// Available options:
//   - bitstream.WithBufferSize(n)
//
// Example:
//
//	sync, _ := ogg.NewSyncState()
//	_, _ = sync.Write(chunk)
//	page, err := sync.PageOut()
func NewSyncState(opts ...bitstream.SyncOption) (*bitstream.SyncState, error) {
	return bitstream.NewSyncState(opts...)
}

// NewStream creates the packet assembler and pager of one logical stream.
//
// The same Stream can decode (PageIn, PacketOut) or encode (PacketIn,
// PageOut). Use one Stream per direction.
//
// Parameters:
//   - serial: The logical stream serial number
//   - opts: Optional configuration (see bitstream.StreamOption)
//
// Available options:
//   - bitstream.WithPageFill(n)
func NewStream(serial int32, opts ...bitstream.StreamOption) (*bitstream.Stream, error) {
	return bitstream.NewStream(serial, opts...)
}

// NewDemuxer creates a reader of all logical streams in r.
//
// Available options:
//   - container.WithLogger(logger)
//   - container.WithReadSize(n)
//   - container.WithPacketCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - container.WithStrictSync(true|false)
func NewDemuxer(r io.Reader, opts ...container.DemuxerOption) (*container.Demuxer, error) {
	return container.NewDemuxer(r, opts...)
}

// NewMuxer creates a writer interleaving logical streams into w.
//
// Available options:
//   - container.WithMuxerLogger(logger)
//   - container.WithMaxPageSize(limit)
//   - container.WithMuxerPageFill(n)
//   - container.WithMuxerCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - container.WithFlushEachPacket(true|false)
//
// Example:
//
//	mux, err := ogg.NewMuxer(file,
//	    container.WithMaxPageSize(4096),
//	    container.WithMuxerCompression(format.CompressionZstd),
//	)
func NewMuxer(w io.Writer, opts ...container.MuxerOption) (*container.Muxer, error) {
	return container.NewMuxer(w, opts...)
}

// SerialFromName derives a logical stream serial number from a name.
//
// It is the serial Muxer.AddStream assigns, so readers can find a stream by
// name without a side channel. The lower 32 bits of the xxHash64 of name
// are used.
func SerialFromName(name string) int32 {
	return hash.Serial(name)
}

package section

import (
	"github.com/arloliu/ogg/endian"
	"github.com/arloliu/ogg/errs"
)

// PageHeader is the header section of an Ogg page: the fixed 27 bytes plus
// the segment table.
type PageHeader struct {
	// Version is the stream structure version, byte offset 4. Always 0.
	Version uint8
	// Type is the header type bitset, byte offset 5.
	Type HeaderType
	// GranulePosition is the codec-defined position at the end of the last
	// packet completed on this page, byte offset 6-13. GranuleUnknown when
	// no packet ends on the page.
	GranulePosition int64
	// StreamSerial identifies the logical stream, byte offset 14-17.
	StreamSerial int32
	// SequenceNumber is the page counter of the logical stream, byte offset 18-21.
	SequenceNumber uint32
	// Checksum is the page CRC as stored on the wire, byte offset 22-25.
	Checksum uint32
	// SegmentTable holds the lacing values, byte offset 27 onwards.
	// The segment count at byte offset 26 is its length.
	SegmentTable []byte
}

// ValidateHeader checks the fixed part of a serialized page header.
//
// Returns:
//   - errs.ErrTooShort: data holds fewer than HeaderSize bytes
//   - errs.ErrNoCaptureSignature: data does not start with "OggS"
//   - *errs.BadVersionError: the version byte is not 0
func ValidateHeader(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrTooShort
	}

	if string(data[CapturePatternOffset:CapturePatternOffset+4]) != CapturePattern {
		return errs.ErrNoCaptureSignature
	}

	if v := data[VersionOffset]; v != StreamVersion {
		return &errs.BadVersionError{Version: v}
	}

	return nil
}

// HeaderLen returns the full header length declared by data, the fixed part
// plus the segment table. data must hold at least HeaderSize bytes.
func HeaderLen(data []byte) int {
	return HeaderSize + int(data[SegmentCountOffset])
}

// ParsePageHeader parses a page header from the start of data.
//
// The segment table is copied, so the returned header does not alias data.
//
// Returns:
//   - PageHeader: the parsed header
//   - error: ValidateHeader errors, or errs.ErrTooShort if the segment table
//     is truncated
func ParsePageHeader(data []byte) (PageHeader, error) {
	if err := ValidateHeader(data); err != nil {
		return PageHeader{}, err
	}

	headerLen := HeaderLen(data)
	if len(data) < headerLen {
		return PageHeader{}, errs.ErrTooShort
	}

	engine := endian.GetLittleEndianEngine()
	h := PageHeader{
		Version:         data[VersionOffset],
		Type:            HeaderType(data[HeaderTypeOffset]),
		GranulePosition: endian.Int64(engine, data[GranulePositionOffset:StreamSerialOffset]),
		StreamSerial:    endian.Int32(engine, data[StreamSerialOffset:SequenceNumberOffset]),
		SequenceNumber:  engine.Uint32(data[SequenceNumberOffset:ChecksumOffset]),
		Checksum:        engine.Uint32(data[ChecksumOffset:SegmentCountOffset]),
		SegmentTable:    make([]byte, headerLen-HeaderSize),
	}
	copy(h.SegmentTable, data[SegmentTableOffset:headerLen])

	return h, nil
}

// Size returns the serialized header length.
func (h *PageHeader) Size() int {
	return HeaderSize + len(h.SegmentTable)
}

// BodySize returns the body length declared by the segment table.
func (h *PageHeader) BodySize() int {
	return BodySize(h.SegmentTable)
}

// AppendTo appends the serialized header to dst, checksum field included as
// stored in h.Checksum.
//
// The segment table must hold at most MaxSegments entries; ValidateSegmentTable
// reports a table that cannot be serialized.
func (h *PageHeader) AppendTo(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()
	table := h.SegmentTable

	dst = append(dst, CapturePattern...)
	dst = append(dst, h.Version, byte(h.Type))
	dst = endian.AppendInt64(engine, dst, h.GranulePosition)
	dst = endian.AppendInt32(engine, dst, h.StreamSerial)
	dst = engine.AppendUint32(dst, h.SequenceNumber)
	dst = engine.AppendUint32(dst, h.Checksum)
	dst = append(dst, byte(len(table)))

	return append(dst, table...)
}

// Bytes serializes the header into a new slice.
func (h *PageHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, h.Size()))
}

// IsContinued reports whether the page continues a packet.
func (h *PageHeader) IsContinued() bool {
	return h.Type.IsContinued()
}

// BeginsStream reports whether the page is the first of its stream.
func (h *PageHeader) BeginsStream() bool {
	return h.Type.BeginsStream()
}

// EndsStream reports whether the page is the last of its stream.
func (h *PageHeader) EndsStream() bool {
	return h.Type.EndsStream()
}

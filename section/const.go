package section

// CapturePattern is the 4-byte marker that starts every page.
const CapturePattern = "OggS"

// StreamVersion is the only stream structure version defined by the format.
const StreamVersion = 0

// GranuleUnknown is the granule position of a page on which no packet ends.
const GranuleUnknown int64 = -1

// byte offsets of the fixed page header fields
const (
	CapturePatternOffset  = 0  // 4 bytes, "OggS"
	VersionOffset         = 4  // 1 byte
	HeaderTypeOffset      = 5  // 1 byte, HeaderType bitset
	GranulePositionOffset = 6  // 8 bytes, int64 LE
	StreamSerialOffset    = 14 // 4 bytes, int32 LE
	SequenceNumberOffset  = 18 // 4 bytes, uint32 LE
	ChecksumOffset        = 22 // 4 bytes, uint32 LE
	SegmentCountOffset    = 26 // 1 byte
	SegmentTableOffset    = 27 // SegmentCount bytes
)

// page size limits
const (
	// HeaderSize is the fixed header size, the size of a page with zero segments.
	HeaderSize   = 27
	ChecksumSize = 4

	MaxSegments    = 255                          // maximum entries in a segment table
	MaxLacingValue = 255                          // lacing value that continues a packet
	MaxBodySize    = MaxSegments * MaxLacingValue // 65025 bytes
	MaxHeaderSize  = HeaderSize + MaxSegments     // 282 bytes
	MaxPageSize    = MaxHeaderSize + MaxBodySize  // 65307 bytes

	// MinPageLimit is the smallest page size cap that always makes progress:
	// a header with one full segment.
	MinPageLimit = HeaderSize + 1 + MaxLacingValue

	// DefaultFill is the body size at which a stream emits a page.
	DefaultFill = 4096
)

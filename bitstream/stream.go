package bitstream

import (
	"github.com/arloliu/ogg/internal/options"
)

// StreamState is the lifecycle state of a Stream.
type StreamState uint8

const (
	// StateNoPagesYet is the initial state; packets cannot be extracted.
	StateNoPagesYet StreamState = iota
	// StateActive means at least one page was submitted or packet queued.
	StateActive
	// StateEnded is terminal: the last page of the stream was consumed and
	// all its packets drained, or written.
	StateEnded
)

func (s StreamState) String() string {
	switch s {
	case StateNoPagesYet:
		return "NoPagesYet"
	case StateActive:
		return "Active"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

type segmentFlag uint8

const (
	segPacketStart segmentFlag = 1 << iota // first segment of a packet (encode)
	segBeginsStream                        // first segment of a BOS page (decode)
	segEndsStream                          // last segment of an EOS page (decode)
	segHole                                // data loss marker, carries no bytes
)

// segment is one lacing entry with its bookkeeping.
type segment struct {
	size    uint8
	flags   segmentFlag
	granule int64
}

// segmentQueue is a FIFO of segments and the body bytes they describe.
// Consumed entries stay in place until compact is called.
type segmentQueue struct {
	segs     []segment
	body     []byte
	head     int // first unconsumed segment
	bodyHead int // first unconsumed body byte
}

func (q *segmentQueue) pending() int {
	return len(q.segs) - q.head
}

func (q *segmentQueue) consume(segs, bodyBytes int) {
	q.head += segs
	q.bodyHead += bodyBytes
}

func (q *segmentQueue) compact() {
	if q.head == 0 && q.bodyHead == 0 {
		return
	}

	q.segs = q.segs[:copy(q.segs, q.segs[q.head:])]
	q.body = q.body[:copy(q.body, q.body[q.bodyHead:])]
	q.head = 0
	q.bodyHead = 0
}

func (q *segmentQueue) reset() {
	q.segs = q.segs[:0]
	q.body = q.body[:0]
	q.head = 0
	q.bodyHead = 0
}

// Stream assembles packets of one logical stream from pages, and cuts queued
// packets into pages.
//
// Decode and encode directions keep separate state. A Stream is normally
// used in one direction only.
//
// Note: Stream is NOT thread-safe.
type Stream struct {
	serial int32
	cfg    *streamConfig

	// decode
	in          segmentQueue
	seenPage    bool
	expectedSeq uint32
	eosSeen     bool
	dropping    bool // discarding the tail of a packet lost at its start
	packetNo    uint32
	lostPages   int64

	// encode
	out         segmentQueue
	pageNo      uint32
	bosWritten  bool
	eosQueued   bool
	eosWritten  bool
	outPacketNo uint32
}

// NewStream creates a Stream for the logical stream with the given serial.
func NewStream(serial int32, opts ...StreamOption) (*Stream, error) {
	cfg := defaultStreamConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Stream{serial: serial, cfg: cfg}, nil
}

// Serial returns the stream serial number.
func (s *Stream) Serial() int32 {
	return s.serial
}

// State returns the current lifecycle state.
func (s *Stream) State() StreamState {
	if s.eosWritten || (s.eosSeen && !s.hasOutput()) {
		return StateEnded
	}

	if s.seenPage || s.outPacketNo > 0 {
		return StateActive
	}

	return StateNoPagesYet
}

// Ended reports whether the stream reached StateEnded.
func (s *Stream) Ended() bool {
	return s.State() == StateEnded
}

// Reset discards all buffered page and packet state in both directions and
// returns to StateNoPagesYet. The serial number is kept.
func (s *Stream) Reset() {
	s.in.reset()
	s.seenPage = false
	s.expectedSeq = 0
	s.eosSeen = false
	s.dropping = false
	s.packetNo = 0
	s.lostPages = 0

	s.out.reset()
	s.pageNo = 0
	s.bosWritten = false
	s.eosQueued = false
	s.eosWritten = false
	s.outPacketNo = 0
}

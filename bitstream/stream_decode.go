package bitstream

import (
	"github.com/arloliu/ogg/errs"
	"github.com/arloliu/ogg/section"
)

// PageIn submits a page of this logical stream for packet assembly.
//
// Sequence number gaps do not fail PageIn. They are counted by LostPages and
// only turn into a data loss marker, reported once by PacketOut as
// errs.ErrOutOfSync, when they break a packet spanning pages: a pending
// partial packet is dropped, or the leading continuation segments of a
// continued page are discarded.
//
// Returns:
//   - *errs.WrongSerialError: the page belongs to another logical stream
//   - *errs.BadVersionError: the page version is not 0
//   - errs.ErrTooManySegments: the segment table has more than 255 entries
//   - errs.ErrBodySizeMismatch: the body does not match the segment table
//   - errs.ErrStreamEnded: the last page of the stream was already submitted
func (s *Stream) PageIn(p *Page) error {
	if p.StreamSerial != s.serial {
		return &errs.WrongSerialError{Expected: s.serial, Actual: p.StreamSerial}
	}

	if p.Version != section.StreamVersion {
		return &errs.BadVersionError{Version: p.Version}
	}

	if err := section.ValidateSegmentTable(p.SegmentTable); err != nil {
		return err
	}

	if len(p.Body) != p.BodySize() {
		return errs.ErrBodySizeMismatch
	}

	if s.eosSeen {
		return errs.ErrStreamEnded
	}

	s.in.compact()

	gap := s.seenPage && p.SequenceNumber != s.expectedSeq
	if gap {
		if missing := p.SequenceNumber - s.expectedSeq; missing < 1<<31 {
			s.lostPages += int64(missing)
		}
	}

	table := p.SegmentTable
	body := p.Body
	beginsStream := p.BeginsStream()
	hole := false

	if s.partialPending() && (gap || !p.IsContinued()) {
		s.unrollPartial()
		s.in.segs = append(s.in.segs, segment{flags: segHole, granule: section.GranuleUnknown})
		hole = true
	}

	if p.IsContinued() && !s.partialPending() {
		// The packet this page continues is gone; drop its tail. While a
		// dropped packet spans several pages only its first page marks
		// the loss.
		skippedSegs, skippedBytes := continuationLen(table)
		if s.seenPage && !hole && (gap || !s.dropping) {
			s.in.segs = append(s.in.segs, segment{flags: segHole, granule: section.GranuleUnknown})
		}
		s.dropping = skippedSegs == len(table) && skippedSegs > 0 && table[skippedSegs-1] == section.MaxLacingValue

		table = table[skippedSegs:]
		body = body[skippedBytes:]
		beginsStream = false
	} else {
		s.dropping = false
	}

	base := len(s.in.segs)
	lastComplete := -1
	for i, v := range table {
		seg := segment{size: v, granule: section.GranuleUnknown}
		if i == 0 && beginsStream {
			seg.flags |= segBeginsStream
		}
		if v < section.MaxLacingValue {
			lastComplete = base + i
		}
		s.in.segs = append(s.in.segs, seg)
	}

	if lastComplete >= 0 {
		s.in.segs[lastComplete].granule = p.GranulePosition
	}
	if p.EndsStream() {
		s.markLastPacketEnd()
		s.eosSeen = true
	}
	s.in.body = append(s.in.body, body...)

	s.seenPage = true
	s.expectedSeq = p.SequenceNumber + 1

	return nil
}

// PacketOut returns the next complete packet.
//
// Returns:
//   - Packet: the assembled packet, owned by the caller
//   - error: errs.ErrNoPages before the first PageIn, errs.ErrOutOfSync once
//     per data loss marker, errs.ErrNeedMoreData when no complete packet is
//     buffered, errs.ErrStreamEnded after the last packet of the stream
func (s *Stream) PacketOut() (Packet, error) {
	pkt, segs, err := s.nextPacket()
	switch {
	case err == nil:
		s.in.consume(segs, len(pkt.Data))
		s.packetNo++

		return pkt, nil
	case segs > 0:
		// loss marker
		s.in.consume(segs, 0)
		s.packetNo++

		return Packet{}, err
	default:
		return Packet{}, err
	}
}

// PacketPeek returns the next complete packet without consuming it.
//
// Errors are those of PacketOut. A data loss marker is reported but not
// consumed; call PacketOut to move past it.
func (s *Stream) PacketPeek() (Packet, error) {
	pkt, _, err := s.nextPacket()
	if err != nil {
		return Packet{}, err
	}

	return pkt, nil
}

// LostPages returns the number of page sequence numbers skipped so far.
func (s *Stream) LostPages() int64 {
	return s.lostPages
}

// nextPacket assembles the packet at the head of the decode queue.
//
// On success segs is the number of segments it spans. For a loss marker it
// returns errs.ErrOutOfSync with segs set to 1.
func (s *Stream) nextPacket() (Packet, int, error) {
	if !s.seenPage {
		return Packet{}, 0, errs.ErrNoPages
	}

	q := &s.in
	if q.pending() == 0 {
		if s.eosSeen {
			return Packet{}, 0, errs.ErrStreamEnded
		}

		return Packet{}, 0, errs.ErrNeedMoreData
	}

	first := q.segs[q.head]
	if first.flags&segHole != 0 {
		return Packet{}, 1, errs.ErrOutOfSync
	}

	size := 0
	for i := q.head; i < len(q.segs); i++ {
		seg := q.segs[i]
		if seg.flags&segHole != 0 {
			return Packet{}, 0, &errs.InternalError{Op: "PacketOut", Detail: "loss marker inside a packet"}
		}

		size += int(seg.size)
		if seg.size == section.MaxLacingValue {
			continue
		}

		if q.bodyHead+size > len(q.body) {
			return Packet{}, 0, &errs.InternalError{Op: "PacketOut", Detail: "segment table exceeds buffered body"}
		}

		pkt := Packet{
			Data:            make([]byte, size),
			BeginsStream:    first.flags&segBeginsStream != 0,
			EndsStream:      seg.flags&segEndsStream != 0,
			GranulePosition: seg.granule,
			SequenceIndex:   s.packetNo,
		}
		copy(pkt.Data, q.body[q.bodyHead:])

		return pkt, i - q.head + 1, nil
	}

	// Only a partial packet is buffered. After the last page it can never
	// complete.
	if s.eosSeen {
		return Packet{}, 0, errs.ErrStreamEnded
	}

	return Packet{}, 0, errs.ErrNeedMoreData
}

// markLastPacketEnd flags the last complete packet still buffered as the end
// of the stream. Trailing segments of a packet the final page leaves
// unfinished are passed over, as that packet is never returned. Nothing is
// flagged when the last packet was already taken or a loss marker follows it.
func (s *Stream) markLastPacketEnd() {
	q := &s.in
	for i := len(q.segs) - 1; i >= q.head; i-- {
		seg := &q.segs[i]
		if seg.flags&segHole != 0 {
			return
		}
		if seg.size < section.MaxLacingValue {
			seg.flags |= segEndsStream
			return
		}
	}
}

// hasOutput reports whether PacketOut would return a packet or loss marker.
func (s *Stream) hasOutput() bool {
	q := &s.in
	for i := q.head; i < len(q.segs); i++ {
		seg := q.segs[i]
		if seg.flags&segHole != 0 || seg.size < section.MaxLacingValue {
			return true
		}
	}

	return false
}

// partialPending reports whether the decode queue ends inside a packet.
func (s *Stream) partialPending() bool {
	q := &s.in
	if q.pending() == 0 {
		return false
	}

	last := q.segs[len(q.segs)-1]

	return last.flags&segHole == 0 && last.size == section.MaxLacingValue
}

// unrollPartial drops the trailing segments of an incomplete packet.
func (s *Stream) unrollPartial() {
	q := &s.in
	end := len(q.segs)
	dropped := 0
	for end > q.head && q.segs[end-1].flags&segHole == 0 && q.segs[end-1].size == section.MaxLacingValue {
		end--
		dropped += section.MaxLacingValue
	}

	q.segs = q.segs[:end]
	q.body = q.body[:len(q.body)-dropped]
}

// continuationLen returns the number of leading segments, and their byte
// count, that finish a packet begun on an earlier page.
func continuationLen(table []byte) (segs int, size int) {
	for _, v := range table {
		segs++
		size += int(v)
		if v < section.MaxLacingValue {
			break
		}
	}

	return segs, size
}

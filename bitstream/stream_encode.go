package bitstream

import (
	"fmt"

	"github.com/arloliu/ogg/errs"
	"github.com/arloliu/ogg/section"
)

// PacketIn queues a packet for paging.
//
// The packet data is copied. BeginsStream and SequenceIndex of p are ignored:
// the first queued packet begins the stream and packets are numbered in
// queue order. EndsStream marks the last packet; the page carrying its last
// segment gets the end-of-stream flag.
//
// Returns errs.ErrStreamEnded if a packet with EndsStream was already queued.
func (s *Stream) PacketIn(p Packet) error {
	if s.eosQueued {
		return errs.ErrStreamEnded
	}

	s.out.compact()

	lacing := section.LacingValues(len(p.Data))
	for i, v := range lacing {
		seg := segment{size: v, granule: p.GranulePosition}
		if i == 0 {
			seg.flags |= segPacketStart
		}
		s.out.segs = append(s.out.segs, seg)
	}
	s.out.body = append(s.out.body, p.Data...)

	if p.EndsStream {
		s.eosQueued = true
	}
	s.outPacketNo++

	return nil
}

// PageOut returns the next page once enough data is queued.
//
// A page is due when the queued body reaches the fill target (see
// WithPageFill), 255 segments are queued, the first page of the stream is
// pending, or the last packet of the stream was queued. The first page
// carries only the first packet.
//
// Returns errs.ErrNeedMoreData when no page is due.
func (s *Stream) PageOut() (Page, error) {
	return s.pageOut(false, s.cfg.fill, section.MaxPageSize)
}

// PageOutWithFill is PageOut with a one-off fill target.
//
// Returns errs.ErrInvalidOption if fill is outside [1, section.MaxBodySize].
func (s *Stream) PageOutWithFill(fill int) (Page, error) {
	if err := validateFill(fill); err != nil {
		return Page{}, err
	}

	return s.pageOut(false, fill, section.MaxPageSize)
}

// PageOutWithMaxSize is PageOut with the serialized page size capped at
// limit bytes. Packets that do not fit continue on the next page, and
// reaching the cap makes a page due.
//
// Returns errs.ErrInvalidPageSize if limit is below section.MinPageLimit.
func (s *Stream) PageOutWithMaxSize(limit int) (Page, error) {
	if err := validateLimit(limit); err != nil {
		return Page{}, err
	}

	return s.pageOut(false, s.cfg.fill, limit)
}

// Flush returns a page holding whatever is queued, up to one page worth.
// Call it repeatedly until errs.ErrNeedMoreData to drain the queue.
func (s *Stream) Flush() (Page, error) {
	return s.pageOut(true, 0, section.MaxPageSize)
}

// FlushWithMaxSize is Flush with the serialized page size capped at limit.
//
// Returns errs.ErrInvalidPageSize if limit is below section.MinPageLimit.
func (s *Stream) FlushWithMaxSize(limit int) (Page, error) {
	if err := validateLimit(limit); err != nil {
		return Page{}, err
	}

	return s.pageOut(true, 0, limit)
}

// QueuedBytes returns the number of packet bytes queued but not yet paged.
func (s *Stream) QueuedBytes() int {
	return len(s.out.body) - s.out.bodyHead
}

// PagesWritten returns the number of pages produced so far.
func (s *Stream) PagesWritten() uint32 {
	return s.pageNo
}

func validateLimit(limit int) error {
	if limit < section.MinPageLimit {
		return fmt.Errorf("%w: %d bytes, need at least %d", errs.ErrInvalidPageSize, limit, section.MinPageLimit)
	}

	return nil
}

// pageOut builds one page from the encode queue.
//
// force emits a page from whatever is queued; fill (0 to disable) and limit
// bound the page and also force it when reached.
func (s *Stream) pageOut(force bool, fill int, limit int) (Page, error) {
	q := &s.out
	pending := q.pending()
	if pending == 0 {
		return Page{}, errs.ErrNeedMoreData
	}

	maxSegs := min(pending, section.MaxSegments)
	firstPage := !s.bosWritten
	if firstPage || s.eosQueued {
		force = true
	}

	vals := 0
	bodySize := 0
	granule := section.GranuleUnknown
	for vals < maxSegs {
		seg := q.segs[q.head+vals]
		if section.HeaderSize+vals+1+bodySize+int(seg.size) > limit {
			force = true
			break
		}

		vals++
		bodySize += int(seg.size)
		if seg.size < section.MaxLacingValue {
			granule = seg.granule
			if firstPage {
				break
			}
		}

		if fill > 0 && bodySize >= fill {
			force = true
			break
		}
	}
	if vals == section.MaxSegments {
		force = true
	}

	if !force {
		return Page{}, errs.ErrNeedMoreData
	}
	if vals == 0 {
		return Page{}, &errs.InternalError{Op: "PageOut", Detail: "no segment fits the page"}
	}

	var typ section.HeaderType
	if q.segs[q.head].flags&segPacketStart == 0 {
		typ = typ.With(section.Continued)
	}
	if firstPage {
		typ = typ.With(section.BeginsStream)
	}
	if s.eosQueued && vals == pending {
		typ = typ.With(section.EndsStream)
	}

	page := Page{
		PageHeader: section.PageHeader{
			Version:         section.StreamVersion,
			Type:            typ,
			GranulePosition: granule,
			StreamSerial:    s.serial,
			SequenceNumber:  s.pageNo,
			SegmentTable:    make([]byte, vals),
		},
		Body: make([]byte, bodySize),
	}
	for i := range vals {
		page.SegmentTable[i] = q.segs[q.head+i].size
	}
	copy(page.Body, q.body[q.bodyHead:q.bodyHead+bodySize])
	page.UpdateChecksum()

	q.consume(vals, bodySize)
	s.pageNo++
	s.bosWritten = true
	if typ.EndsStream() {
		s.eosWritten = true
	}

	return page, nil
}

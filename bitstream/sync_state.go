package bitstream

import (
	"bytes"

	"github.com/arloliu/ogg/endian"
	"github.com/arloliu/ogg/errs"
	"github.com/arloliu/ogg/internal/options"
	"github.com/arloliu/ogg/internal/pool"
	"github.com/arloliu/ogg/section"
)

// SyncState extracts pages from a physical byte stream.
//
// Bytes are buffered until a complete page is available. Data that does not
// form a valid page (missing capture pattern, bad version or checksum
// mismatch) is skipped up to the next plausible capture pattern.
//
// A fresh SyncState is not synced: leading garbage is reported as a loss of
// sync like any later corruption.
//
// Note: SyncState is NOT thread-safe.
type SyncState struct {
	buf    *pool.ByteBuffer
	cursor int // start of unread data in buf

	synced       bool
	skipReported bool // first skip of the current loss run already returned
	skipped      int64
}

// NewSyncState creates a SyncState.
func NewSyncState(opts ...SyncOption) (*SyncState, error) {
	cfg := defaultSyncConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &SyncState{buf: pool.NewByteBuffer(cfg.bufferSize)}, nil
}

// Write appends p to the sync buffer. It implements io.Writer and never
// fails. Already consumed bytes are dropped first.
func (s *SyncState) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if s.cursor > 0 {
		s.buf.Discard(s.cursor)
		s.cursor = 0
	}
	s.buf.MustWrite(p)

	return len(p), nil
}

// PageOut returns the next page in the buffer.
//
// Returns:
//   - Page: the extracted page, owned by the caller
//   - error: errs.ErrNeedMoreData when no complete page is buffered, or
//     *errs.SkipError (matches errs.ErrOutOfSync) for the first bytes skipped
//     after losing sync. Further skips before the next page are not reported
//     again; call PageOut until ErrNeedMoreData.
func (s *SyncState) PageOut() (Page, error) {
	skipped := 0
	for {
		n, total, err := s.locate()
		if n > 0 {
			skipped += n
			continue
		}

		if skipped > 0 && !s.skipReported {
			// Report the skip now; a page found at the cursor is returned by
			// the next call.
			s.skipReported = true
			return Page{}, &errs.SkipError{Skipped: skipped}
		}

		if err != nil {
			return Page{}, err
		}

		return s.take(total), nil
	}
}

// PageSeek performs a single synchronization step.
//
// Exactly one of the following holds on return:
//   - a page was found: Page is valid, skipped is 0, err is nil
//   - bytes were discarded: skipped > 0, err is nil
//   - no complete page is buffered: err is errs.ErrNeedMoreData
//
// Unlike PageOut, every skip is returned.
func (s *SyncState) PageSeek() (Page, int, error) {
	n, total, err := s.locate()
	if n > 0 {
		return Page{}, n, nil
	}
	if err != nil {
		return Page{}, 0, err
	}

	return s.take(total), 0, nil
}

// Submit writes p and drains every page it completes.
//
// Returns:
//   - []Page: the extracted pages in stream order
//   - int: the number of bytes skipped while extracting them
func (s *SyncState) Submit(p []byte) ([]Page, int) {
	_, _ = s.Write(p)

	var pages []Page
	skipped := 0
	for {
		page, n, err := s.PageSeek()
		if err != nil {
			break
		}
		if n > 0 {
			skipped += n
			continue
		}
		pages = append(pages, page)
	}

	if skipped > 0 {
		s.skipReported = !s.synced
	}

	return pages, skipped
}

// IsSynced reports whether the last page search found a valid page at the
// first position it tried. It is false on a fresh SyncState and after any
// skip until the next page is returned.
func (s *SyncState) IsSynced() bool {
	return s.synced
}

// Buffered returns the number of unread bytes in the buffer.
func (s *SyncState) Buffered() int {
	return s.buf.Len() - s.cursor
}

// Skipped returns the total number of bytes discarded since creation or the
// last Reset.
func (s *SyncState) Skipped() int64 {
	return s.skipped
}

// Reset discards all buffered bytes and returns to the initial, not synced
// state.
func (s *SyncState) Reset() {
	s.buf.Reset()
	s.cursor = 0
	s.synced = false
	s.skipReported = false
	s.skipped = 0
}

// locate examines the data at the cursor.
//
// It returns n > 0 after discarding n bytes that cannot start a page, total
// > 0 when a verified page of total bytes starts at the cursor, or
// errs.ErrNeedMoreData.
func (s *SyncState) locate() (n int, total int, err error) {
	data := s.buf.B[s.cursor:]
	if len(data) < section.HeaderSize {
		return 0, 0, errs.ErrNeedMoreData
	}

	if section.ValidateHeader(data) != nil {
		return s.skip(data), 0, nil
	}

	headerLen := section.HeaderLen(data)
	if len(data) < headerLen {
		return 0, 0, errs.ErrNeedMoreData
	}

	total = headerLen + section.BodySize(data[section.SegmentTableOffset:headerLen])
	if len(data) < total {
		return 0, 0, errs.ErrNeedMoreData
	}

	engine := endian.GetLittleEndianEngine()
	stored := engine.Uint32(data[section.ChecksumOffset : section.ChecksumOffset+section.ChecksumSize])
	if section.Checksum(data[:headerLen], data[headerLen:total]) != stored {
		return s.skip(data), 0, nil
	}

	return 0, total, nil
}

// skip discards the byte at the cursor and everything up to the next 'O'.
func (s *SyncState) skip(data []byte) int {
	n := len(data)
	if next := bytes.IndexByte(data[1:], section.CapturePattern[0]); next >= 0 {
		n = next + 1
	}

	s.cursor += n
	s.synced = false
	s.skipped += int64(n)

	return n
}

// take copies the verified page of total bytes at the cursor out of the
// buffer and advances past it.
func (s *SyncState) take(total int) Page {
	data := s.buf.B[s.cursor : s.cursor+total]

	// locate already validated the header, so parsing cannot fail.
	header, _ := section.ParsePageHeader(data)
	page := Page{
		PageHeader: header,
		Body:       make([]byte, total-header.Size()),
	}
	copy(page.Body, data[header.Size():])

	s.cursor += total
	s.synced = true
	s.skipReported = false

	return page
}

package bitstream

import (
	"github.com/arloliu/ogg/errs"
	"github.com/arloliu/ogg/section"
)

// Page is one complete Ogg page: header, segment table and body.
//
// Body must hold exactly the number of bytes declared by the segment table.
// A Page always owns its Body and SegmentTable.
type Page struct {
	section.PageHeader

	// Body holds the segment data, the concatenation of all segments.
	Body []byte
}

// ParsePage parses and verifies one complete page at the start of data.
//
// Returns:
//   - Page: the parsed page, copied out of data
//   - int: the number of bytes the page occupies in data
//   - error: header validation errors, errs.ErrTooShort if the body is
//     truncated, or errs.ErrChecksumMismatch
func ParsePage(data []byte) (Page, int, error) {
	header, err := section.ParsePageHeader(data)
	if err != nil {
		return Page{}, 0, err
	}

	headerLen := header.Size()
	total := headerLen + header.BodySize()
	if len(data) < total {
		return Page{}, 0, errs.ErrTooShort
	}

	if section.Checksum(data[:headerLen], data[headerLen:total]) != header.Checksum {
		return Page{}, 0, errs.ErrChecksumMismatch
	}

	page := Page{
		PageHeader: header,
		Body:       make([]byte, total-headerLen),
	}
	copy(page.Body, data[headerLen:total])

	return page, total, nil
}

// HeaderSize returns the serialized header length, 27 plus the segment count.
func (p *Page) HeaderSize() int {
	return p.PageHeader.Size()
}

// Size returns the serialized page length.
func (p *Page) Size() int {
	return p.PageHeader.Size() + len(p.Body)
}

// AppendTo appends the serialized page to dst, using the stored checksum.
func (p *Page) AppendTo(dst []byte) []byte {
	dst = p.PageHeader.AppendTo(dst)
	return append(dst, p.Body...)
}

// Bytes serializes the page into a new slice.
func (p *Page) Bytes() []byte {
	return p.AppendTo(make([]byte, 0, p.Size()))
}

// ComputeChecksum returns the checksum of the page as it would be written,
// independent of the stored Checksum field.
func (p *Page) ComputeChecksum() uint32 {
	var scratch [section.MaxHeaderSize]byte
	header := p.PageHeader.AppendTo(scratch[:0])

	return section.Checksum(header, p.Body)
}

// UpdateChecksum recomputes and stores the checksum. Call it after changing
// any header field or the body.
func (p *Page) UpdateChecksum() {
	p.Checksum = p.ComputeChecksum()
}

// Verify checks the segment table, the body length and the stored checksum.
//
// Returns:
//   - errs.ErrTooManySegments: the segment table has more than 255 entries
//   - errs.ErrBodySizeMismatch: Body does not match the segment table
//   - errs.ErrChecksumMismatch: the stored checksum is wrong
func (p *Page) Verify() error {
	if err := section.ValidateSegmentTable(p.SegmentTable); err != nil {
		return err
	}

	if len(p.Body) != p.BodySize() {
		return errs.ErrBodySizeMismatch
	}

	if p.ComputeChecksum() != p.Checksum {
		return errs.ErrChecksumMismatch
	}

	return nil
}

// CompletedPackets returns the number of packets that end on this page.
func (p *Page) CompletedPackets() int {
	return section.CompletedPackets(p.SegmentTable)
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() Page {
	clone := *p
	clone.SegmentTable = append([]byte(nil), p.SegmentTable...)
	clone.Body = append([]byte(nil), p.Body...)

	return clone
}

package section

import "strings"

// HeaderType is the header type bitset stored in byte 5 of a page header.
//
// Bit 0: the page continues a packet begun on a previous page.
// Bit 1: the page is the first page of its logical stream.
// Bit 2: the page is the last page of its logical stream.
// Bits 3-7 are unused and must be zero for well-formed pages.
type HeaderType uint8

const (
	Continued    HeaderType = 0x01 // page continues a packet from the previous page
	BeginsStream HeaderType = 0x02 // first page of a logical stream
	EndsStream   HeaderType = 0x04 // last page of a logical stream

	reservedMask HeaderType = 0xF8
)

// IsContinued returns whether the first packet data on the page continues a
// packet from the previous page.
func (t HeaderType) IsContinued() bool {
	return t&Continued != 0
}

// BeginsStream returns whether the page is the first page of its stream.
func (t HeaderType) BeginsStream() bool {
	return t&BeginsStream != 0
}

// EndsStream returns whether the page is the last page of its stream.
func (t HeaderType) EndsStream() bool {
	return t&EndsStream != 0
}

// With returns t with flag set.
func (t HeaderType) With(flag HeaderType) HeaderType {
	return t | flag
}

// IsWellFormed reports whether a conforming encoder could have produced t.
//
// A first page cannot continue a packet, and reserved bits must be zero.
// Parsers accept pages for which this returns false.
func (t HeaderType) IsWellFormed() bool {
	if t&reservedMask != 0 {
		return false
	}

	return !(t.IsContinued() && t.BeginsStream())
}

func (t HeaderType) String() string {
	if t == 0 {
		return "none"
	}

	var parts []string
	if t.IsContinued() {
		parts = append(parts, "continued")
	}
	if t.BeginsStream() {
		parts = append(parts, "bos")
	}
	if t.EndsStream() {
		parts = append(parts, "eos")
	}
	if t&reservedMask != 0 {
		parts = append(parts, "reserved")
	}

	return strings.Join(parts, "|")
}

package section

import (
	"fmt"

	"github.com/arloliu/ogg/errs"
)

// LacingValues returns the segment table entries for one packet of n bytes.
//
// Every full 255-byte segment is laced as 255 and the remainder ends the
// packet. A packet whose length is a multiple of 255 (including an empty
// packet) ends with an explicit zero entry.
func LacingValues(n int) []byte {
	if n < 0 {
		n = 0
	}

	full := n / MaxLacingValue
	table := make([]byte, full+1)
	for i := range full {
		table[i] = MaxLacingValue
	}
	table[full] = byte(n % MaxLacingValue)

	return table
}

// ValidateSegmentTable checks that table fits the one-byte segment count of
// the page header.
//
// Returns errs.ErrTooManySegments if table has more than MaxSegments entries.
func ValidateSegmentTable(table []byte) error {
	if len(table) > MaxSegments {
		return fmt.Errorf("%w: %d entries", errs.ErrTooManySegments, len(table))
	}

	return nil
}

// BodySize returns the body length declared by a segment table.
func BodySize(table []byte) int {
	size := 0
	for _, v := range table {
		size += int(v)
	}

	return size
}

// CompletedPackets returns the number of packets that end in table.
func CompletedPackets(table []byte) int {
	count := 0
	for _, v := range table {
		if v < MaxLacingValue {
			count++
		}
	}

	return count
}

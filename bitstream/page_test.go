package bitstream

import (
	"bytes"
	"testing"

	"github.com/arloliu/ogg/errs"
	"github.com/arloliu/ogg/section"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	page := makePage(77, 3, section.BeginsStream, 1234, payload(1, 10), payload(2, 300))
	data := page.Bytes()

	t.Run("Valid page", func(t *testing.T) {
		parsed, n, err := ParsePage(data)

		require.NoError(t, err)
		require.Equal(t, len(data), n)
		require.Equal(t, page, parsed)
		require.Equal(t, 27+3, parsed.HeaderSize())
		require.Equal(t, len(data), parsed.Size())
	})

	t.Run("Trailing bytes", func(t *testing.T) {
		parsed, n, err := ParsePage(append(append([]byte(nil), data...), "OggS"...))

		require.NoError(t, err)
		require.Equal(t, len(data), n)
		require.Equal(t, page.Body, parsed.Body)
	})

	t.Run("Truncated body", func(t *testing.T) {
		_, _, err := ParsePage(data[:len(data)-1])
		require.ErrorIs(t, err, errs.ErrTooShort)
	})

	t.Run("Corrupted body", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[len(bad)-1] ^= 0xFF

		_, _, err := ParsePage(bad)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("Does not alias input", func(t *testing.T) {
		buf := append([]byte(nil), data...)
		parsed, _, err := ParsePage(buf)
		require.NoError(t, err)

		for i := range buf {
			buf[i] = 0
		}
		require.Equal(t, page.Body, parsed.Body)
		require.Equal(t, page.SegmentTable, parsed.SegmentTable)
	})
}

func TestPage_Verify(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		page := makePage(1, 0, 0, 0, payload(0, 20))
		require.NoError(t, page.Verify())
	})

	t.Run("Stale checksum", func(t *testing.T) {
		page := makePage(1, 0, 0, 0, payload(0, 20))
		page.GranulePosition = 99

		require.ErrorIs(t, page.Verify(), errs.ErrChecksumMismatch)

		page.UpdateChecksum()
		require.NoError(t, page.Verify())
	})

	t.Run("Body size mismatch", func(t *testing.T) {
		page := makePage(1, 0, 0, 0, payload(0, 20))
		page.Body = page.Body[:19]

		require.ErrorIs(t, page.Verify(), errs.ErrBodySizeMismatch)
	})

	t.Run("Too many segments", func(t *testing.T) {
		table := bytes.Repeat([]byte{1}, section.MaxSegments+1)
		page := makeRawPage(1, 0, 0, 0, table, payload(0, len(table)))

		require.ErrorIs(t, page.Verify(), errs.ErrTooManySegments)
	})
}

func TestPage_ChecksumMatchesWire(t *testing.T) {
	page := makePage(5, 9, section.EndsStream, -1, payload(3, 100))
	data := page.Bytes()

	require.Equal(t, section.Checksum(data[:page.HeaderSize()], data[page.HeaderSize():]), page.Checksum)
}

func TestPage_CompletedPackets(t *testing.T) {
	tests := []struct {
		name  string
		table []byte
		want  int
	}{
		{"Empty", nil, 0},
		{"One packet", []byte{10}, 1},
		{"Exact 255 packet", []byte{255, 0}, 1},
		{"Continues", []byte{10, 255}, 1},
		{"Only continuation", []byte{255, 255}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := makeRawPage(1, 0, 0, -1, tt.table, make([]byte, section.BodySize(tt.table)))
			require.Equal(t, tt.want, page.CompletedPackets())
		})
	}
}

func TestPage_Clone(t *testing.T) {
	page := makePage(1, 0, section.BeginsStream, 0, payload(0, 20))

	clone := page.Clone()
	clone.Body[0] ^= 0xFF
	clone.SegmentTable[0] = 1

	require.NoError(t, page.Verify())
	require.Equal(t, byte(20), page.SegmentTable[0])
	require.NotEqual(t, page.Body[0], clone.Body[0])
}

func TestPacket_Clone(t *testing.T) {
	pkt := Packet{Data: []byte("abc"), BeginsStream: true, GranulePosition: 5, SequenceIndex: 2}

	clone := pkt.Clone()
	clone.Data[0] = 'x'

	require.Equal(t, []byte("abc"), pkt.Data)
	require.Equal(t, 3, clone.Len())
	require.True(t, clone.BeginsStream)
	require.Equal(t, int64(5), clone.GranulePosition)
	require.Equal(t, uint32(2), clone.SequenceIndex)
}

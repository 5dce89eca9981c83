package bitstream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/arloliu/ogg/errs"
	"github.com/arloliu/ogg/section"
	"github.com/stretchr/testify/require"
)

// makePage builds a checksummed page holding the given complete packets.
func makePage(serial int32, seq uint32, typ section.HeaderType, granule int64, packets ...[]byte) Page {
	var table, body []byte
	for _, p := range packets {
		table = append(table, section.LacingValues(len(p))...)
		body = append(body, p...)
	}

	return makeRawPage(serial, seq, typ, granule, table, body)
}

// makeRawPage builds a checksummed page from an explicit segment table.
func makeRawPage(serial int32, seq uint32, typ section.HeaderType, granule int64, table, body []byte) Page {
	// parsed pages never carry nil slices
	if table == nil {
		table = []byte{}
	}
	if body == nil {
		body = []byte{}
	}

	page := Page{
		PageHeader: section.PageHeader{
			Type:            typ,
			GranulePosition: granule,
			StreamSerial:    serial,
			SequenceNumber:  seq,
			SegmentTable:    table,
		},
		Body: body,
	}
	page.UpdateChecksum()

	return page
}

// payload returns n deterministic bytes tagged with seed.
func payload(seed byte, n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = seed + byte(i*7)
	}

	return data
}

// encodeFlushed queues each packet and flushes it onto its own page(s).
func encodeFlushed(t *testing.T, st *Stream, packets []Packet) []Page {
	t.Helper()

	var pages []Page
	for _, p := range packets {
		require.NoError(t, st.PacketIn(p))
		pages = append(pages, drain(t, st.Flush)...)
	}

	return pages
}

// drain calls next until errs.ErrNeedMoreData.
func drain(t *testing.T, next func() (Page, error)) []Page {
	t.Helper()

	var pages []Page
	for {
		page, err := next()
		if errors.Is(err, errs.ErrNeedMoreData) {
			return pages
		}
		require.NoError(t, err)
		require.NoError(t, page.Verify())
		pages = append(pages, page)
	}
}

// decodeAll feeds pages into st and collects packets until the stream asks
// for more data or ends. Loss markers are returned as nil entries.
func decodeAll(t *testing.T, st *Stream, pages []Page) []*Packet {
	t.Helper()

	var packets []*Packet
	for i := range pages {
		require.NoError(t, st.PageIn(&pages[i]))
		for {
			pkt, err := st.PacketOut()
			if errors.Is(err, errs.ErrNeedMoreData) || errors.Is(err, errs.ErrStreamEnded) {
				break
			}
			if errors.Is(err, errs.ErrOutOfSync) {
				packets = append(packets, nil)
				continue
			}
			require.NoError(t, err)
			packets = append(packets, &pkt)
		}
	}

	return packets
}

func serialize(pages []Page) []byte {
	var buf bytes.Buffer
	for i := range pages {
		buf.Write(pages[i].Bytes())
	}

	return buf.Bytes()
}

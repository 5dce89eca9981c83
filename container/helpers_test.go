package container

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/arloliu/ogg/bitstream"
	"github.com/stretchr/testify/require"
)

// payload returns n deterministic bytes tagged with seed.
func payload(seed byte, n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = seed + byte(i*7)
	}

	return data
}

// textPayload returns n bytes of repetitive text that compresses well.
func textPayload(n int) []byte {
	const line = "sensor=cpu0 host=node-17 value=0.93\n"

	return bytes.Repeat([]byte(line), n/len(line)+1)[:n]
}

// muxPackets writes all packets to one stream named name and returns the
// physical stream.
func muxPackets(t *testing.T, packets []bitstream.Packet, opts ...MuxerOption) []byte {
	t.Helper()

	var buf bytes.Buffer
	mux, err := NewMuxer(&buf, opts...)
	require.NoError(t, err)

	serial, err := mux.AddStream("test")
	require.NoError(t, err)

	for _, pkt := range packets {
		require.NoError(t, mux.WritePacket(serial, pkt))
	}
	require.NoError(t, mux.Close())

	return buf.Bytes()
}

// numberedPackets returns n packets of the given size; the last one ends
// the stream.
func numberedPackets(n, size int) []bitstream.Packet {
	packets := make([]bitstream.Packet, n)
	for i := range packets {
		packets[i] = bitstream.Packet{
			Data:            payload(byte(i), size),
			GranulePosition: int64(i+1) * 100,
			EndsStream:      i == n-1,
		}
	}

	return packets
}

// readAll drains the demuxer until io.EOF.
func readAll(t *testing.T, d *Demuxer) []Packet {
	t.Helper()

	var packets []Packet
	for {
		pkt, err := d.ReadPacket()
		if errors.Is(err, io.EOF) {
			return packets
		}
		require.NoError(t, err)
		packets = append(packets, pkt)
	}
}

// splitPages parses a physical stream into its pages and their raw bytes.
func splitPages(t *testing.T, data []byte) ([]bitstream.Page, [][]byte) {
	t.Helper()

	var pages []bitstream.Page
	var raw [][]byte
	for len(data) > 0 {
		page, n, err := bitstream.ParsePage(data)
		require.NoError(t, err)
		pages = append(pages, page)
		raw = append(raw, data[:n])
		data = data[n:]
	}

	return pages, raw
}

// joinPages concatenates raw pages, leaving out the indices in skip.
func joinPages(raw [][]byte, skip ...int) []byte {
	var out []byte
	for i, page := range raw {
		dropped := false
		for _, s := range skip {
			if s == i {
				dropped = true
			}
		}
		if !dropped {
			out = append(out, page...)
		}
	}

	return out
}

// failingWriter fails every write.
type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}

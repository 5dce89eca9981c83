// Package container multiplexes logical Ogg streams over a byte stream.
//
// Demuxer reads pages from an io.Reader, resynchronizes across corrupt or
// missing data, and hands out packets tagged with the serial number of the
// logical stream they belong to. Muxer is the write side: it owns one
// bitstream.Stream per logical stream and writes finished pages to an
// io.Writer.
//
// Both sides can run packet payloads through a compress codec. Payload
// compression is not part of the Ogg format; the reader must be configured
// with the same compression type the writer used.
//
// Basic usage:
//
//	mux, _ := container.NewMuxer(w)
//	serial, _ := mux.AddStream("telemetry")
//	_ = mux.WritePacket(serial, bitstream.Packet{Data: payload, EndsStream: true})
//	_ = mux.Close()
//
//	demux, _ := container.NewDemuxer(r)
//	for {
//		pkt, err := demux.ReadPacket()
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		...
//	}
package container

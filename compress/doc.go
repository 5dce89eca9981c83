// Package compress provides optional payload codecs for Ogg packets.
//
// The Ogg container carries packets as opaque bytes. When both ends of a
// physical stream agree on it out of band, the container layer can compress
// each packet payload before paging and decompress it after reassembly. The
// codec never appears on the wire.
//
// Supported algorithms (format.CompressionType):
//   - None: payload passed through unchanged
//   - Zstd: best ratio, github.com/klauspost/compress/zstd, or
//     github.com/valyala/gozstd when built with cgo and the gozstd tag
//   - S2: fast, github.com/klauspost/compress/s2
//   - LZ4: fastest decompression, github.com/pierrec/lz4/v4 block format
//
// Every codec handles one packet at a time:
//
//	codec, _ := compress.GetCodec(format.CompressionS2)
//	compressed, _ := codec.Compress(pkt.Data)
//	original, _ := codec.Decompress(compressed)
//
// An empty payload compresses to an empty or tiny payload and always
// decompresses back to empty.
//
// All codecs are safe for concurrent use; encoder and decoder state is pooled
// internally.
package compress

// Package section defines the binary layout of an Ogg page: header fields,
// header type flags, segment table lacing, and the page checksum.
//
// Everything in this package is a pure function or an immutable value; it
// holds no stream state. The bitstream package builds pages, synchronization
// and packet assembly on top of it.
//
// # Page Layout
//
//	Bytes  | Field            | Type   | Description
//	-------|------------------|--------|----------------------------------------
//	0-3    | Capture pattern  | [4]u8  | "OggS"
//	4      | Version          | uint8  | Stream structure version, always 0
//	5      | Header type      | uint8  | Continued / first page / last page
//	6-13   | Granule position | int64  | Codec-defined position, -1 if unknown
//	14-17  | Stream serial    | int32  | Logical stream identifier
//	18-21  | Sequence number  | uint32 | Page counter within the logical stream
//	22-25  | Checksum         | uint32 | CRC-32 over the page, this field zeroed
//	26     | Segment count    | uint8  | Number of lacing values (0-255)
//	27+    | Segment table    | []u8   | Lacing values
//
// All multi-byte fields are little-endian. The body follows the segment table
// and its length is the sum of the lacing values.
//
// # Header Type
//
//	Bit 0 (0x01): page continues a packet from the previous page
//	Bit 1 (0x02): first page of a logical stream
//	Bit 2 (0x04): last page of a logical stream
//
// A single-page stream sets bits 1 and 2 together. Bit 0 together with bit 1
// is malformed; HeaderType.IsWellFormed reports it, parsers tolerate it.
//
// # Lacing
//
// Packets are cut into 255-byte segments. A lacing value of 255 means the
// packet continues into the next segment, which may be on the next page of the
// same stream; a value below 255 ends the packet. A 600-byte packet laces as
// [255, 255, 90]; a 510-byte packet as [255, 255, 0].
//
// # Checksum
//
// CRC-32 with polynomial 0x04C11DB7, no input or output reflection, initial
// value 0 and no final xor, computed over header and body with the checksum
// field zeroed. It is not the IEEE CRC-32 of hash/crc32 and only detects
// accidental corruption.
package section

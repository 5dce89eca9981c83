// Package endian provides the byte order engine used for Ogg page headers.
//
// The Ogg wire format stores every multi-byte header field little-endian.
// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so header
// code can both patch fields in place and append them to a growing buffer:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, sequence)
//	engine.PutUint32(buf[22:26], checksum)
//
// Granule positions and stream serials are signed on the wire; the Int64 and
// Int32 helpers reinterpret them without going through unsafe.
//
// All functions in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian satisfies it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the engine used by the Ogg wire format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Int64 reads a two's complement int64 from b.
func Int64(engine EndianEngine, b []byte) int64 {
	return int64(engine.Uint64(b)) //nolint:gosec // bit reinterpretation
}

// AppendInt64 appends v as a two's complement int64.
func AppendInt64(engine EndianEngine, b []byte, v int64) []byte {
	return engine.AppendUint64(b, uint64(v)) //nolint:gosec // bit reinterpretation
}

// Int32 reads a two's complement int32 from b.
func Int32(engine EndianEngine, b []byte) int32 {
	return int32(engine.Uint32(b)) //nolint:gosec // bit reinterpretation
}

// AppendInt32 appends v as a two's complement int32.
func AppendInt32(engine EndianEngine, b []byte, v int32) []byte {
	return engine.AppendUint32(b, uint32(v)) //nolint:gosec // bit reinterpretation
}

package hash

import "github.com/cespare/xxhash/v2"

// Serial derives a logical stream serial number from a stream name.
//
// The serial is the low 32 bits of the xxHash64 of name, reinterpreted as
// signed. Distinct names can collide; callers that need unique serials must
// track them.
func Serial(name string) int32 {
	return int32(uint32(xxhash.Sum64String(name))) //nolint:gosec // bit reinterpretation
}

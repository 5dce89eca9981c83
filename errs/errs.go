// Package errs defines the error values returned by the ogg packages.
//
// Errors fall into five groups:
//
//   - Transient: ErrNeedMoreData. Not a failure, submit more bytes or pages.
//   - Corruption/loss: ErrOutOfSync, ErrChecksumMismatch. Recoverable by
//     resynchronizing or by dropping the affected logical stream.
//   - Protocol misuse: ErrWrongSerial, ErrNoPages, ErrStreamEnded,
//     ErrInvalidPageSize, ErrSerialCollision, ErrUnknownStream, ErrClosed. Caller bugs,
//     never worth retrying.
//   - Structural: ErrTooShort, ErrNoCaptureSignature, ErrBadVersion,
//     ErrBodySizeMismatch, ErrTooManySegments. Always rejected.
//   - Internal: ErrInternalInvariant. Returned instead of panicking.
//
// Typed errors (SkipError, WrongSerialError, BadVersionError, InternalError)
// carry details and match their sentinel with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

// Transient conditions.
var (
	// ErrNeedMoreData indicates that the buffered input does not yet hold a
	// complete page or packet.
	ErrNeedMoreData = errors.New("ogg: need more data")
)

// Corruption and loss.
var (
	ErrOutOfSync        = errors.New("ogg: stream out of sync, data was lost")
	ErrChecksumMismatch = errors.New("ogg: page checksum mismatch")
)

// Structural header and page errors.
var (
	ErrTooShort           = errors.New("ogg: page header too short")
	ErrNoCaptureSignature = errors.New("ogg: missing OggS capture pattern")
	ErrBadVersion         = errors.New("ogg: unsupported stream structure version")
	ErrBodySizeMismatch   = errors.New("ogg: page body does not match segment table")
	ErrTooManySegments    = errors.New("ogg: segment table exceeds 255 entries")
)

// Protocol misuse.
var (
	ErrWrongSerial     = errors.New("ogg: page serial does not match stream")
	ErrNoPages         = errors.New("ogg: no pages submitted to stream")
	ErrStreamEnded     = errors.New("ogg: logical stream has ended")
	ErrInvalidPageSize = errors.New("ogg: page size limit too small")
	ErrSerialCollision = errors.New("ogg: stream serial already in use")
	ErrUnknownStream   = errors.New("ogg: unknown logical stream")
	ErrClosed          = errors.New("ogg: muxer closed")
)

// Configuration.
var (
	ErrInvalidCompression = errors.New("ogg: invalid compression type")
	ErrInvalidOption      = errors.New("ogg: invalid option value")
)

// ErrInternalInvariant indicates a state the implementation considers
// impossible. It is returned, never raised as a panic.
var ErrInternalInvariant = errors.New("ogg: internal invariant violation")

// SkipError reports bytes discarded while searching for the next valid page.
type SkipError struct {
	// Skipped is the number of bytes discarded.
	Skipped int
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("ogg: lost sync, skipped %d bytes", e.Skipped)
}

// Is matches ErrOutOfSync.
func (e *SkipError) Is(target error) bool {
	return target == ErrOutOfSync
}

// WrongSerialError is returned when a page is submitted to a stream with a
// different serial number.
type WrongSerialError struct {
	Expected int32
	Actual   int32
}

func (e *WrongSerialError) Error() string {
	return fmt.Sprintf("ogg: page serial %d does not match stream serial %d", e.Actual, e.Expected)
}

// Is matches ErrWrongSerial.
func (e *WrongSerialError) Is(target error) bool {
	return target == ErrWrongSerial
}

// BadVersionError carries the rejected stream structure version.
type BadVersionError struct {
	Version uint8
}

func (e *BadVersionError) Error() string {
	return fmt.Sprintf("ogg: stream structure version is %d (should be 0)", e.Version)
}

// Is matches ErrBadVersion.
func (e *BadVersionError) Is(target error) bool {
	return target == ErrBadVersion
}

// InternalError names the operation in which an invariant failed.
type InternalError struct {
	Op     string
	Detail string
}

func (e *InternalError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("ogg: internal invariant violation in %s", e.Op)
	}

	return fmt.Sprintf("ogg: internal invariant violation in %s: %s", e.Op, e.Detail)
}

// Is matches ErrInternalInvariant.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternalInvariant
}

// IsTransient reports whether err only means that more input is needed.
func IsTransient(err error) bool {
	return errors.Is(err, ErrNeedMoreData)
}

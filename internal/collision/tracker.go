package collision

import (
	"fmt"

	"github.com/arloliu/ogg/errs"
)

// Tracker records the serial numbers in use within one physical stream and
// the stream names they were derived from.
//
// Ogg serials only need to be unique within a physical stream, but the wire
// carries no names, so two names hashing to the same serial cannot be told
// apart after muxing. The tracker rejects such collisions instead of
// resolving them.
type Tracker struct {
	names  map[int32]string // serial → name, "" for serials added without a name
	serial []int32          // registration order
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:  make(map[int32]string),
		serial: make([]int32, 0),
	}
}

// TrackSerial registers a serial chosen by the caller.
//
// Returns errs.ErrSerialCollision if the serial is already in use.
func (t *Tracker) TrackSerial(serial int32) error {
	if existing, exists := t.names[serial]; exists {
		return fmt.Errorf("%w: serial %d (stream %q)", errs.ErrSerialCollision, serial, existing)
	}

	t.names[serial] = ""
	t.serial = append(t.serial, serial)

	return nil
}

// TrackStream registers a named stream with the serial derived from its name.
//
// Returns:
//   - errs.ErrInvalidOption: name is empty
//   - errs.ErrSerialCollision: the serial is already in use, either by the
//     same name added twice or by a different name hashing to it
func (t *Tracker) TrackStream(name string, serial int32) error {
	if name == "" {
		return fmt.Errorf("%w: empty stream name", errs.ErrInvalidOption)
	}

	if existing, exists := t.names[serial]; exists {
		if existing == name {
			return fmt.Errorf("%w: stream %q already added", errs.ErrSerialCollision, name)
		}

		return fmt.Errorf("%w: %q and %q map to serial %d", errs.ErrSerialCollision, existing, name, serial)
	}

	t.names[serial] = name
	t.serial = append(t.serial, serial)

	return nil
}

// Contains reports whether serial is registered.
func (t *Tracker) Contains(serial int32) bool {
	_, ok := t.names[serial]
	return ok
}

// Name returns the stream name registered for serial. The name is empty for
// serials added with TrackSerial.
func (t *Tracker) Name(serial int32) (string, bool) {
	name, ok := t.names[serial]
	return name, ok
}

// Serials returns the registered serials in registration order.
func (t *Tracker) Serials() []int32 {
	return t.serial
}

// Count returns the number of registered serials.
func (t *Tracker) Count() int {
	return len(t.serial)
}

// Reset clears all registrations, keeping allocated capacity.
func (t *Tracker) Reset() {
	clear(t.names)
	t.serial = t.serial[:0]
}

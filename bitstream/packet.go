package bitstream

// Packet is one codec payload unit of a logical stream.
//
// Packets returned by Stream.PacketOut own their Data. On encode, Stream
// copies Data when the packet is queued, so the caller may reuse it.
type Packet struct {
	// Data is the packet payload. It may be empty.
	Data []byte
	// BeginsStream marks the first packet of a logical stream.
	BeginsStream bool
	// EndsStream marks the last packet of a logical stream. On decode it is
	// set on the last complete packet buffered when the end-of-stream page
	// arrives. If that page carries no packet data and the previous packet
	// was already returned, no packet has the flag; Stream.Ended still
	// reports the end.
	EndsStream bool
	// GranulePosition is the codec-defined position at the end of this
	// packet, or -1 when the page it came from does not determine it.
	GranulePosition int64
	// SequenceIndex counts packets within the logical stream, starting at 0.
	SequenceIndex uint32
}

// Len returns the payload length.
func (p *Packet) Len() int {
	return len(p.Data)
}

// Clone returns a deep copy of the packet.
func (p *Packet) Clone() Packet {
	clone := *p
	clone.Data = append([]byte(nil), p.Data...)

	return clone
}

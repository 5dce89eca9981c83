// Package bitstream turns raw bytes into Ogg pages and pages into packets, and
// back.
//
// Two stateful types do the work:
//
//   - SyncState locates pages in an unbounded, possibly corrupted byte
//     stream. Bytes are written in arbitrary chunks; PageOut returns one
//     validated page at a time, skipping garbage and reporting the first
//     skip of every loss of synchronization.
//   - Stream handles one logical stream. PageIn and PacketOut reassemble
//     packets from pages; PacketIn and PageOut cut packets into pages.
//
// # Decoding
//
//	sync, _ := bitstream.NewSyncState()
//	streams := map[int32]*bitstream.Stream{}
//
//	sync.Write(chunk)
//	for {
//		page, err := sync.PageOut()
//		if errors.Is(err, errs.ErrNeedMoreData) {
//			break // read the next chunk
//		}
//		if errors.Is(err, errs.ErrOutOfSync) {
//			continue // bytes were skipped
//		}
//		st := streams[page.StreamSerial] // create on first sight
//		st.PageIn(&page)
//		for {
//			pkt, err := st.PacketOut()
//			...
//		}
//	}
//
// # Encoding
//
//	st, _ := bitstream.NewStream(serial)
//	st.PacketIn(bitstream.Packet{Data: header, GranulePosition: 0})
//	for {
//		page, err := st.PageOut()
//		if errors.Is(err, errs.ErrNeedMoreData) {
//			break
//		}
//		w.Write(page.Bytes())
//	}
//
// Use Flush to force out a short page, for example after codec headers.
//
// # Ownership
//
// Pages and packets returned by this package are copies owned by the caller.
// Neither SyncState nor Stream is safe for concurrent use.
package bitstream

package section

// Ogg uses CRC-32 with polynomial 0x04C11DB7, no reflection, initial value 0
// and no final xor. hash/crc32 only implements reflected variants.
const crcPolynomial = uint32(0x04C11DB7)

var crcTable = makeCRCTable()

func makeCRCTable() [256]uint32 {
	var table [256]uint32
	for i := range table {
		crc := uint32(i) << 24
		for range 8 {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}

	return table
}

// UpdateChecksum folds data into a running checksum.
func UpdateChecksum(crc uint32, data []byte) uint32 {
	for _, b := range data {
		crc = (crc << 8) ^ crcTable[byte(crc>>24)^b]
	}

	return crc
}

var zeroChecksum [ChecksumSize]byte

// Checksum computes the page checksum over header and body.
//
// The checksum field of header is treated as zero; header itself is not
// modified. A header shorter than HeaderSize is folded in as-is.
func Checksum(header, body []byte) uint32 {
	var crc uint32
	if len(header) >= ChecksumOffset+ChecksumSize {
		crc = UpdateChecksum(crc, header[:ChecksumOffset])
		crc = UpdateChecksum(crc, zeroChecksum[:])
		crc = UpdateChecksum(crc, header[ChecksumOffset+ChecksumSize:])
	} else {
		crc = UpdateChecksum(crc, header)
	}

	return UpdateChecksum(crc, body)
}

package wire

import "io"

// maxVarintBytes is the LEB128 group limit for the size prefix: five
// groups of 7 bits cover values up to 2^35-1, comfortably above
// MaxBodyBytes, and a sixth group is always a protocol violation.
const maxVarintBytes = 5

// MaxBodyBytes bounds a single frame's body. The MCS protocol never
// sends anything close to this; it exists to keep a hostile or
// corrupted size prefix from driving an unbounded allocation.
const MaxBodyBytes = 4 << 20 // 4 MiB

// readUvarint reads an unsigned LEB128 varint one byte at a time,
// rejecting encodings longer than maxVarintBytes groups.
func readUvarint(r io.Reader) (uint64, error) {
	var buf [1]byte
	var value uint64
	for i := 0; i < maxVarintBytes; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return 0, ErrUnexpectedEOF
			}
			return 0, err
		}
		b := buf[0]
		value |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return value, nil
		}
	}
	return 0, ErrVarintTooLong
}

// appendUvarint appends the LEB128 encoding of v to dst.
func appendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

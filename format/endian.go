// endian.go - Big-endian byte reading and writing utilities
package format

import (
	"encoding/binary"
	"fmt"
)

func Be16(b []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(b) {
		return 0, fmt.Errorf("Be16 at %d: %w", off, ErrShortRead)
	}
	return binary.BigEndian.Uint16(b[off : off+2]), nil
}

func Be32(b []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(b) {
		return 0, fmt.Errorf("Be32 at %d: %w", off, ErrShortRead)
	}
	return binary.BigEndian.Uint32(b[off : off+4]), nil
}

func Be64(b []byte, off int) (uint64, error) {
	if off < 0 || off+8 > len(b) {
		return 0, fmt.Errorf("Be64 at %d: %w", off, ErrShortRead)
	}
	return binary.BigEndian.Uint64(b[off : off+8]), nil
}

// BeN reads an n-byte (1..8) big-endian unsigned integer, zero-extended to 64 bits.
// Used for the 3-byte MEDIUMINT, 6-byte transaction id and 7-byte roll pointer.
func BeN(b []byte, off, n int) (uint64, error) {
	if n < 1 || n > 8 {
		return 0, fmt.Errorf("BeN: width %d out of range", n)
	}
	if off < 0 || off+n > len(b) {
		return 0, fmt.Errorf("Be%d at %d: %w", n*8, off, ErrShortRead)
	}
	var v uint64
	for _, c := range b[off : off+n] {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

func PutBe16(b []byte, off int, v uint16) { binary.BigEndian.PutUint16(b[off:off+2], v) }
func PutBe32(b []byte, off int, v uint32) { binary.BigEndian.PutUint32(b[off:off+4], v) }
func PutBe64(b []byte, off int, v uint64) { binary.BigEndian.PutUint64(b[off:off+8], v) }

// AppendBeN appends the low n bytes of v in big-endian order.
func AppendBeN(dst []byte, v uint64, n int) []byte {
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(uint(i)*8)))
	}
	return dst
}

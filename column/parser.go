// parser.go - Column parser interface and base implementation
package column

import (
	"github.com/wilhasse/go-ibdparse/format"
	"github.com/wilhasse/go-ibdparse/schema"
)

// Parser reads and writes one column kind.
type Parser interface {
	// Parse reads and parses column value from input
	Parse(input []byte, offset int, col *schema.Column, varLen int) (value any, bytesRead int, err error)

	// Skip skips column value in input without parsing
	Skip(input []byte, offset int, col *schema.Column, varLen int) (bytesRead int, err error)

	// Encode returns the stored bytes of value
	Encode(col *schema.Column, value any) ([]byte, error)
}

// BaseParser provides common functionality for column parsers
type BaseParser struct{}

// readBytes reads specified number of bytes from input
func (p *BaseParser) readBytes(input []byte, offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(input) {
		return nil, format.ErrShortRead
	}
	return input[offset : offset+length], nil
}

// readUint8 reads an unsigned 8-bit integer
func (p *BaseParser) readUint8(input []byte, offset int) (uint8, error) {
	if offset < 0 || offset+1 > len(input) {
		return 0, format.ErrShortRead
	}
	return input[offset], nil
}

// readUintN reads an n-byte big-endian unsigned integer
func (p *BaseParser) readUintN(input []byte, offset, n int) (uint64, error) {
	return format.BeN(input, offset, n)
}

// readIntN reads an n-byte signed integer stored with its sign bit flipped,
// which keeps the stored bytes in memcmp order.
func (p *BaseParser) readIntN(input []byte, offset, n int) (int64, error) {
	val, err := p.readUintN(input, offset, n)
	if err != nil {
		return 0, err
	}
	val ^= 1 << (uint(n)*8 - 1)
	// Sign extend from n bytes
	shift := 64 - uint(n)*8
	return int64(val<<shift) >> shift, nil
}

func encodeUintN(v uint64, n int) []byte {
	return format.AppendBeN(make([]byte, 0, n), v, n)
}

func encodeIntN(v int64, n int) []byte {
	u := uint64(v) ^ (1 << (uint(n)*8 - 1))
	return encodeUintN(u, n)
}

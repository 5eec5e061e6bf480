// float_parser.go - Parser for FLOAT and DOUBLE columns
package column

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/wilhasse/go-ibdparse/schema"
)

// FloatParser handles FLOAT (float32) and DOUBLE (float64) columns, which
// are stored little endian unlike every other numeric kind.
type FloatParser struct {
	BaseParser
}

// Parse parses a floating point value
func (p *FloatParser) Parse(input []byte, offset int, col *schema.Column, varLen int) (any, int, error) {
	size := col.StorageSize()
	raw, err := p.readBytes(input, offset, size)
	if err != nil {
		return nil, 0, err
	}
	switch col.Kind {
	case schema.KindFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(raw)), size, nil
	case schema.KindDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(raw)), size, nil
	default:
		return nil, 0, schema.ErrUnsupportedType
	}
}

// Skip skips floating point value without parsing
func (p *FloatParser) Skip(input []byte, offset int, col *schema.Column, varLen int) (int, error) {
	return col.StorageSize(), nil
}

// Encode writes a float32 or float64 value
func (p *FloatParser) Encode(col *schema.Column, value any) ([]byte, error) {
	switch col.Kind {
	case schema.KindFloat:
		f, ok := value.(float32)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
		}
		return binary.LittleEndian.AppendUint32(nil, math.Float32bits(f)), nil
	case schema.KindDouble:
		f, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
		}
		return binary.LittleEndian.AppendUint64(nil, math.Float64bits(f)), nil
	default:
		return nil, schema.ErrUnsupportedType
	}
}

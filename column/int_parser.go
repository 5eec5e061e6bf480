// int_parser.go - Parser for integer, year and enum column types
package column

import (
	"fmt"

	"github.com/wilhasse/go-ibdparse/schema"
)

// IntParser handles all integer type columns
type IntParser struct {
	BaseParser
}

// Parse parses integer value based on column kind
func (p *IntParser) Parse(input []byte, offset int, col *schema.Column, varLen int) (any, int, error) {
	switch col.Kind {
	case schema.KindInt:
		val, err := p.readIntN(input, offset, col.Width)
		return val, col.Width, err

	case schema.KindUint:
		val, err := p.readUintN(input, offset, col.Width)
		return val, col.Width, err

	case schema.KindYear:
		// YEAR is stored as unsigned byte, 0 = year 0000, otherwise add 1900
		val, err := p.readUint8(input, offset)
		if err != nil {
			return nil, 0, err
		}
		if val == 0 {
			return uint16(0), 1, nil
		}
		return uint16(val) + 1900, 1, nil

	case schema.KindEnum:
		n := col.StorageSize()
		idx, err := p.readUintN(input, offset, n)
		if err != nil {
			return nil, 0, err
		}
		if idx == 0 {
			return "", n, nil // the empty error value
		}
		if int(idx) > len(col.Elements) {
			return nil, 0, fmt.Errorf("enum index %d out of %d elements", idx, len(col.Elements))
		}
		return col.Elements[idx-1], n, nil

	default:
		return nil, 0, schema.ErrUnsupportedType
	}
}

// Skip skips integer value without parsing
func (p *IntParser) Skip(input []byte, offset int, col *schema.Column, varLen int) (int, error) {
	if n := col.StorageSize(); n > 0 {
		return n, nil
	}
	return 0, schema.ErrUnsupportedType
}

// Encode writes an integer value back in stored form
func (p *IntParser) Encode(col *schema.Column, value any) ([]byte, error) {
	switch col.Kind {
	case schema.KindInt:
		v, ok := asInt64(value)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
		}
		if bits := uint(col.Width) * 8; bits < 64 {
			if lim := int64(1) << (bits - 1); v < -lim || v >= lim {
				return nil, fmt.Errorf("value %d overflows %d-byte integer", v, col.Width)
			}
		}
		return encodeIntN(v, col.Width), nil

	case schema.KindUint:
		v, ok := asUint64(value)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
		}
		if bits := uint(col.Width) * 8; bits < 64 && v >= uint64(1)<<bits {
			return nil, fmt.Errorf("value %d overflows %d-byte integer", v, col.Width)
		}
		return encodeUintN(v, col.Width), nil

	case schema.KindYear:
		v, ok := asInt64(value)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
		}
		if v == 0 {
			return []byte{0}, nil
		}
		if v < 1901 || v > 2155 {
			return nil, fmt.Errorf("year %d out of range", v)
		}
		return []byte{byte(v - 1900)}, nil

	case schema.KindEnum:
		label, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
		}
		idx := 0
		if label != "" {
			for i, e := range col.Elements {
				if e == label {
					idx = i + 1
					break
				}
			}
			if idx == 0 {
				return nil, fmt.Errorf("%q is not an element of %s", label, col.Name)
			}
		}
		return encodeUintN(uint64(idx), col.StorageSize()), nil

	default:
		return nil, schema.ErrUnsupportedType
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint16:
		return int64(n), true
	}
	return 0, false
}

func asUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint32:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case int:
		if n >= 0 {
			return uint64(n), true
		}
	}
	return 0, false
}

// string_parser.go - Parser for string and binary column types
package column

import (
	"fmt"
	"unicode/utf8"

	"github.com/wilhasse/go-ibdparse/format"
	"github.com/wilhasse/go-ibdparse/schema"
)

// StringParser handles VARCHAR, CHAR, BINARY and VARBINARY columns
type StringParser struct {
	BaseParser
}

// Parse parses string value based on column kind. Text is returned as
// stored, including CHAR padding, so that it re-encodes byte for byte.
func (p *StringParser) Parse(input []byte, offset int, col *schema.Column, varLen int) (any, int, error) {
	length := col.Width
	if col.IsVariableLength() {
		length = varLen
	}
	data, err := p.readBytes(input, offset, length)
	if err != nil {
		return nil, 0, err
	}

	switch col.Kind {
	case schema.KindChar, schema.KindVarchar:
		if !utf8.Valid(data) {
			return nil, 0, format.ErrInvalidText
		}
		return string(data), length, nil

	case schema.KindBinary, schema.KindVarbinary:
		out := make([]byte, length)
		copy(out, data)
		return out, length, nil

	default:
		return nil, 0, schema.ErrUnsupportedType
	}
}

// Skip skips string value without parsing
func (p *StringParser) Skip(input []byte, offset int, col *schema.Column, varLen int) (int, error) {
	if col.IsVariableLength() {
		return varLen, nil
	}
	return col.Width, nil
}

// Encode returns the stored bytes of a string or binary value
func (p *StringParser) Encode(col *schema.Column, value any) ([]byte, error) {
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
	}
	if col.IsVariableLength() {
		if col.MaxBytes > 0 && len(data) > col.MaxBytes {
			return nil, fmt.Errorf("%d bytes exceed %s max of %d", len(data), col.Name, col.MaxBytes)
		}
		return data, nil
	}
	if len(data) > col.Width {
		return nil, fmt.Errorf("%d bytes exceed %s width of %d", len(data), col.Name, col.Width)
	}
	out := make([]byte, col.Width)
	copy(out, data)
	if col.Kind == schema.KindChar {
		for i := len(data); i < col.Width; i++ {
			out[i] = ' '
		}
	}
	return out, nil
}

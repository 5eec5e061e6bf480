// factory.go - Factory for getting appropriate column parser
package column

import (
	"github.com/wilhasse/go-ibdparse/schema"
)

var (
	intParser      = &IntParser{}
	stringParser   = &StringParser{}
	dateTimeParser = &DateTimeParser{}
	decimalParser  = &DecimalParser{}
	floatParser    = &FloatParser{}
)

// GetParser returns the appropriate parser for the column kind
func GetParser(col *schema.Column) Parser {
	switch col.Kind {
	case schema.KindInt, schema.KindUint, schema.KindYear, schema.KindEnum:
		return intParser

	case schema.KindChar, schema.KindVarchar, schema.KindBinary, schema.KindVarbinary:
		return stringParser

	case schema.KindPackedDateTime, schema.KindDateTime, schema.KindDate,
		schema.KindTimestamp, schema.KindTime:
		return dateTimeParser

	case schema.KindDecimal:
		return decimalParser

	case schema.KindFloat, schema.KindDouble:
		return floatParser

	default:
		return nil
	}
}

// ParseColumn parses a column value using the appropriate parser
func ParseColumn(input []byte, offset int, col *schema.Column, varLen int) (any, int, error) {
	parser := GetParser(col)
	if parser == nil {
		return nil, 0, schema.ErrUnsupportedType
	}
	return parser.Parse(input, offset, col, varLen)
}

// SkipColumn skips a column value without parsing
func SkipColumn(input []byte, offset int, col *schema.Column, varLen int) (int, error) {
	parser := GetParser(col)
	if parser == nil {
		return 0, schema.ErrUnsupportedType
	}
	return parser.Skip(input, offset, col, varLen)
}

// EncodeColumn returns the stored bytes of value, without pad bytes
func EncodeColumn(col *schema.Column, value any) ([]byte, error) {
	parser := GetParser(col)
	if parser == nil {
		return nil, schema.ErrUnsupportedType
	}
	return parser.Encode(col, value)
}

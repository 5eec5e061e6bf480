// column.go - Column descriptors for a row schema
package schema

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrUnsupportedType = errors.New("unsupported column type")
)

// Kind is the physical encoding of a column inside a compact record.
type Kind uint8

const (
	KindInt            Kind = iota + 1 // signed integer, sign bit flipped, Width 1..8
	KindUint                           // unsigned integer, Width 1..8
	KindChar                           // fixed-width text
	KindBinary                         // fixed-width bytes
	KindVarchar                        // variable-length text
	KindVarbinary                      // variable-length bytes
	KindPackedDateTime                 // 4-byte packed date-time
	KindDateTime                       // DATETIME2: 5 bytes + fractional part
	KindDate                           // 3 bytes
	KindTimestamp                      // 4 bytes + fractional part
	KindTime                           // TIME2: 3 bytes + fractional part
	KindYear                           // 1 byte, offset from 1900
	KindDecimal                        // binary DECIMAL(Precision, Scale)
	KindFloat                          // 4 bytes, little endian
	KindDouble                         // 8 bytes, little endian
	KindEnum                           // 1 or 2 byte index into Elements
)

var kindNames = map[Kind]string{
	KindInt:            "int",
	KindUint:           "uint",
	KindChar:           "char",
	KindBinary:         "binary",
	KindVarchar:        "varchar",
	KindVarbinary:      "varbinary",
	KindPackedDateTime: "packed_datetime",
	KindDateTime:       "datetime",
	KindDate:           "date",
	KindTimestamp:      "timestamp",
	KindTime:           "time",
	KindYear:           "year",
	KindDecimal:        "decimal",
	KindFloat:          "float",
	KindDouble:         "double",
	KindEnum:           "enum",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Column describes one column of a clustered index record.
type Column struct {
	Name      string
	Kind      Kind
	Width     int      // Int/Uint/Char/Binary byte width
	MaxBytes  int      // Varchar/Varbinary maximum byte length, 0 if unknown
	Precision int      // fractional digits for temporal kinds, total digits for Decimal
	Scale     int      // Decimal
	Nullable  bool     // Whether column can be NULL
	Pad       int      // bytes between this column's value and the next one
	Elements  []string // Enum labels, in declaration order
}

// IsVariableLength returns true if the column has an entry in the record's
// variable-length field list.
func (c *Column) IsVariableLength() bool {
	return c.Kind == KindVarchar || c.Kind == KindVarbinary
}

// ShortLength reports whether the column's length is always stored in a
// single byte. Columns with an unknown maximum use the byte value itself to
// decide.
func (c *Column) ShortLength() bool {
	return c.MaxBytes > 0 && c.MaxBytes <= 255
}

// StorageSize returns the storage size in bytes for fixed-length columns,
// 0 for variable-length ones.
func (c *Column) StorageSize() int {
	switch c.Kind {
	case KindInt, KindUint, KindChar, KindBinary:
		return c.Width
	case KindPackedDateTime:
		return 4
	case KindTimestamp:
		return 4 + fracBytes(c.Precision)
	case KindDateTime:
		return 5 + fracBytes(c.Precision)
	case KindTime:
		return 3 + fracBytes(c.Precision)
	case KindDate:
		return 3
	case KindYear:
		return 1
	case KindFloat:
		return 4
	case KindDouble:
		return 8
	case KindDecimal:
		return calculateDecimalSize(c.Precision, c.Scale)
	case KindEnum:
		if len(c.Elements) > 255 {
			return 2
		}
		return 1
	}
	return 0 // Variable length or unknown
}

// Validate checks that the descriptor can be decoded.
func (c *Column) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("column has no name")
	}
	if _, ok := kindNames[c.Kind]; !ok {
		return fmt.Errorf("column %s: %w", c.Name, ErrUnsupportedType)
	}
	switch c.Kind {
	case KindInt, KindUint:
		if c.Width < 1 || c.Width > 8 {
			return fmt.Errorf("column %s: integer width %d out of range", c.Name, c.Width)
		}
	case KindChar, KindBinary:
		if c.Width < 1 {
			return fmt.Errorf("column %s: fixed width %d out of range", c.Name, c.Width)
		}
	case KindDateTime, KindTimestamp, KindTime:
		if c.Precision < 0 || c.Precision > 6 {
			return fmt.Errorf("column %s: fractional precision %d out of range", c.Name, c.Precision)
		}
	case KindDecimal:
		if c.Precision < 1 || c.Precision > 65 || c.Scale < 0 || c.Scale > c.Precision {
			return fmt.Errorf("column %s: decimal(%d,%d) out of range", c.Name, c.Precision, c.Scale)
		}
	case KindEnum:
		if len(c.Elements) == 0 {
			return fmt.Errorf("column %s: enum without elements", c.Name)
		}
	}
	if c.Pad < 0 {
		return fmt.Errorf("column %s: negative pad", c.Name)
	}
	return nil
}

func fracBytes(precision int) int {
	return (precision + 1) / 2
}

// calculateDecimalSize calculates storage size for DECIMAL type.
// MySQL stores decimal as binary with 4 bytes per 9 digits; leftover
// digits take (digits+1)/2 bytes.
func calculateDecimalSize(precision, scale int) int {
	integerDigits := precision - scale
	integerBytes := (integerDigits / 9) * 4
	if integerDigits%9 > 0 {
		integerBytes += (integerDigits%9 + 1) / 2
	}

	fractionBytes := (scale / 9) * 4
	if scale%9 > 0 {
		fractionBytes += (scale%9 + 1) / 2
	}

	return integerBytes + fractionBytes
}

// row_schema.go - Row schema: ordered column descriptors of a clustered index
package schema

import (
	"fmt"
	"strings"
)

// NullOrder is the bit order of the NULL bitmap inside each byte.
type NullOrder uint8

const (
	// MSBFirst assigns the first nullable column to bit 7 of the first byte.
	MSBFirst NullOrder = iota
	// LSBFirst assigns the first nullable column to bit 0, as the engine writes it.
	LSBFirst
)

func (o NullOrder) String() string {
	if o == LSBFirst {
		return "lsb-first"
	}
	return "msb-first"
}

// RowSchema is the ordered column list of a clustered index record, in
// physical order. The first KeyColumns columns form the clustered key; the
// implicit transaction id and roll pointer sit between them and the rest.
type RowSchema struct {
	Name       string
	Columns    []Column
	KeyColumns int
	NullOrder  NullOrder
}

// NewRowSchema creates an empty schema.
func NewRowSchema(name string, keyColumns int) *RowSchema {
	return &RowSchema{Name: name, KeyColumns: keyColumns}
}

// AddColumn appends a column to the schema.
func (s *RowSchema) AddColumn(col Column) error {
	if _, exists := s.Lookup(col.Name); exists {
		return fmt.Errorf("column %s already exists", col.Name)
	}
	if err := col.Validate(); err != nil {
		return err
	}
	s.Columns = append(s.Columns, col)
	return nil
}

// Validate checks every column and the key prefix.
func (s *RowSchema) Validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("schema %s has no columns", s.Name)
	}
	if s.KeyColumns < 0 || s.KeyColumns > len(s.Columns) {
		return fmt.Errorf("schema %s: %d key columns out of %d", s.Name, s.KeyColumns, len(s.Columns))
	}
	seen := make(map[string]bool, len(s.Columns))
	for i := range s.Columns {
		if err := s.Columns[i].Validate(); err != nil {
			return err
		}
		if seen[s.Columns[i].Name] {
			return fmt.Errorf("column %s already exists", s.Columns[i].Name)
		}
		seen[s.Columns[i].Name] = true
	}
	return nil
}

// Lookup returns the index of the named column.
func (s *RowSchema) Lookup(name string) (int, bool) {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// NullableCount returns the number of nullable columns.
func (s *RowSchema) NullableCount() int {
	n := 0
	for i := range s.Columns {
		if s.Columns[i].Nullable {
			n++
		}
	}
	return n
}

// NullBitmapSize returns the size of NULL bitmap in bytes
func (s *RowSchema) NullBitmapSize() int {
	return (s.NullableCount() + 7) / 8
}

// VariableColumns returns the indexes of variable-length columns in schema order.
func (s *RowSchema) VariableColumns() []int {
	var out []int
	for i := range s.Columns {
		if s.Columns[i].IsVariableLength() {
			out = append(out, i)
		}
	}
	return out
}

// KeySchema returns the schema of a node pointer record: the key columns only.
func (s *RowSchema) KeySchema() *RowSchema {
	key := &RowSchema{
		Name:       s.Name + ".key",
		Columns:    append([]Column(nil), s.Columns[:s.KeyColumns]...),
		KeyColumns: s.KeyColumns,
		NullOrder:  s.NullOrder,
	}
	for i := range key.Columns {
		key.Columns[i].Pad = 0
	}
	return key
}

// String returns a string representation of the schema
func (s *RowSchema) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Table: %s\n", s.Name))
	sb.WriteString("Columns:\n")
	for i, col := range s.Columns {
		nullable := " NOT NULL"
		if col.Nullable {
			nullable = " NULL"
		}
		key := ""
		if i < s.KeyColumns {
			key = " KEY"
		}
		size := "var"
		if n := col.StorageSize(); n > 0 {
			size = fmt.Sprintf("%d", n)
		}
		sb.WriteString(fmt.Sprintf("  %d. %s %s(%s)%s%s\n", i, col.Name, col.Kind, size, nullable, key))
	}
	return sb.String()
}

// Users is the reference schema of the sample users table:
//
//	id INT NOT NULL PRIMARY KEY, name VARCHAR, age TINYINT, email VARCHAR,
//	created_at DATETIME
//
// created_at is read through the low four bytes of its stored value; the
// byte in front of them is carried as email's pad.
func Users() *RowSchema {
	return &RowSchema{
		Name:       "users",
		KeyColumns: 1,
		NullOrder:  MSBFirst,
		Columns: []Column{
			{Name: "id", Kind: KindInt, Width: 4},
			{Name: "name", Kind: KindVarchar, Nullable: true},
			{Name: "age", Kind: KindInt, Width: 1, Nullable: true},
			{Name: "email", Kind: KindVarchar, Nullable: true, Pad: 1},
			{Name: "created_at", Kind: KindPackedDateTime, Nullable: true},
		},
	}
}

// parser.go - Parse CREATE TABLE SQL statements into a row schema
package schema

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// HiddenRowID is the name given to the engine-generated key of tables
// declared without a primary key.
const HiddenRowID = "DB_ROW_ID"

// FromSQL parses a CREATE TABLE statement and returns the physical row
// schema of its clustered index: primary key columns first, in key order,
// then the remaining columns in declaration order.
func FromSQL(sql string) (*RowSchema, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("parse SQL failed: %w", err)
	}

	ddl, ok := stmt.(*sqlparser.DDL)
	if !ok || ddl.Action != sqlparser.CreateStr {
		return nil, fmt.Errorf("statement is not CREATE TABLE")
	}
	if ddl.TableSpec == nil {
		return nil, fmt.Errorf("no table spec in CREATE TABLE")
	}

	var (
		columns     []Column
		primaryKeys []string
	)
	for _, col := range ddl.TableSpec.Columns {
		column, err := parseColumn(col)
		if err != nil {
			return nil, fmt.Errorf("parse column %s failed: %w", col.Name.String(), err)
		}
		columns = append(columns, column)

		// sqlparser keeps the column-level key option unexported; its
		// formatted form still carries it.
		if strings.Contains(strings.ToLower(sqlparser.String(col)), "primary key") {
			primaryKeys = append(primaryKeys, column.Name)
		}
	}

	for _, idx := range ddl.TableSpec.Indexes {
		if idx.Info.Primary {
			primaryKeys = nil // table-level key overrides column-level keys
			for _, col := range idx.Columns {
				primaryKeys = append(primaryKeys, col.Column.String())
			}
		}
	}

	name := ddl.NewName.Name.String()
	if name == "" {
		name = ddl.Table.Name.String()
	}
	s := NewRowSchema(name, 0)
	s.NullOrder = LSBFirst

	if len(primaryKeys) == 0 {
		if err := s.AddColumn(Column{Name: HiddenRowID, Kind: KindUint, Width: 6}); err != nil {
			return nil, err
		}
		s.KeyColumns = 1
	}
	for _, key := range primaryKeys {
		i := indexOf(columns, key)
		if i < 0 {
			return nil, fmt.Errorf("primary key column %s not found", key)
		}
		key := columns[i]
		key.Nullable = false // key columns are implicitly NOT NULL
		if err := s.AddColumn(key); err != nil {
			return nil, err
		}
		s.KeyColumns++
	}
	for _, col := range columns {
		if contains(primaryKeys, col.Name) {
			continue
		}
		if err := s.AddColumn(col); err != nil {
			return nil, err
		}
	}

	return s, s.Validate()
}

// FromSQLFile reads and parses CREATE TABLE from a SQL file
func FromSQLFile(filename string) (*RowSchema, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read SQL file failed: %w", err)
	}

	return FromSQL(strings.TrimSpace(string(content)))
}

// parseColumn converts sqlparser.ColumnDefinition to a column descriptor
func parseColumn(col *sqlparser.ColumnDefinition) (Column, error) {
	column := Column{
		Name:     col.Name.String(),
		Nullable: !bool(col.Type.NotNull),
	}

	length := sqlInt(col.Type.Length)
	scale := sqlInt(col.Type.Scale)
	unsigned := bool(col.Type.Unsigned)
	charset := strings.ToLower(col.Type.Charset)
	if charset == "" {
		charset = "utf8mb4" // Default for MySQL 8.0+
	}

	switch strings.ToLower(col.Type.Type) {
	case "tinyint", "bool", "boolean":
		column.Kind, column.Width = intKind(unsigned), 1
	case "smallint":
		column.Kind, column.Width = intKind(unsigned), 2
	case "mediumint":
		column.Kind, column.Width = intKind(unsigned), 3
	case "int", "integer":
		column.Kind, column.Width = intKind(unsigned), 4
	case "bigint":
		column.Kind, column.Width = intKind(unsigned), 8
	case "bit":
		if length == 0 {
			length = 1
		}
		column.Kind, column.Width = KindUint, (length+7)/8

	case "char":
		if length == 0 {
			length = 1
		}
		if mb := charsetMaxBytes(charset); mb > 1 {
			// multi-byte CHAR is stored with a length like VARCHAR
			column.Kind, column.MaxBytes = KindVarchar, length*mb
		} else {
			column.Kind, column.Width = KindChar, length
		}
	case "varchar":
		column.Kind, column.MaxBytes = KindVarchar, length*charsetMaxBytes(charset)
	case "tinytext":
		column.Kind, column.MaxBytes = KindVarchar, 255
	case "text", "mediumtext", "longtext", "json":
		column.Kind, column.MaxBytes = KindVarchar, 65535
	case "binary":
		if length == 0 {
			length = 1
		}
		column.Kind, column.Width = KindBinary, length
	case "varbinary":
		column.Kind, column.MaxBytes = KindVarbinary, length
	case "tinyblob":
		column.Kind, column.MaxBytes = KindVarbinary, 255
	case "blob", "mediumblob", "longblob":
		column.Kind, column.MaxBytes = KindVarbinary, 65535

	case "date":
		column.Kind = KindDate
	case "datetime":
		column.Kind, column.Precision = KindDateTime, length
	case "timestamp":
		column.Kind, column.Precision = KindTimestamp, length
	case "time":
		column.Kind, column.Precision = KindTime, length
	case "year":
		column.Kind = KindYear

	case "decimal", "numeric", "dec":
		if length == 0 {
			length = 10
		}
		column.Kind, column.Precision, column.Scale = KindDecimal, length, scale
	case "float":
		column.Kind = KindFloat
	case "double", "real":
		column.Kind = KindDouble

	case "enum":
		column.Kind = KindEnum
		for _, val := range col.Type.EnumValues {
			// Remove quotes from enum values
			column.Elements = append(column.Elements, strings.Trim(val, "'\""))
		}

	default:
		return Column{}, fmt.Errorf("%s: %w", col.Type.Type, ErrUnsupportedType)
	}

	return column, column.Validate()
}

func intKind(unsigned bool) Kind {
	if unsigned {
		return KindUint
	}
	return KindInt
}

// charsetMaxBytes returns the widest character of a charset in bytes.
func charsetMaxBytes(charset string) int {
	switch charset {
	case "latin1", "ascii", "binary":
		return 1
	case "utf8", "utf8mb3":
		return 3
	default:
		return 4
	}
}

func sqlInt(v *sqlparser.SQLVal) int {
	if v == nil {
		return 0
	}
	n, err := strconv.Atoi(string(v.Val))
	if err != nil {
		return 0
	}
	return n
}

func indexOf(columns []Column, name string) int {
	for i := range columns {
		if strings.EqualFold(columns[i].Name, name) {
			return i
		}
	}
	return -1
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

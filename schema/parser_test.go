package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const usersDDL = `CREATE TABLE users (
  id INT NOT NULL AUTO_INCREMENT,
  name VARCHAR(50),
  age TINYINT,
  email VARCHAR(100),
  created_at DATETIME,
  PRIMARY KEY (id)
) ENGINE=InnoDB`

func TestFromSQLUsers(t *testing.T) {
	s, err := FromSQL(usersDDL)
	if err != nil {
		t.Fatalf("FromSQL: %v", err)
	}
	if s.Name != "users" {
		t.Fatalf("name = %q", s.Name)
	}
	if s.KeyColumns != 1 || s.NullOrder != LSBFirst {
		t.Fatalf("key columns %d, null order %v", s.KeyColumns, s.NullOrder)
	}
	want := []struct {
		name     string
		kind     Kind
		nullable bool
	}{
		{"id", KindInt, false},
		{"name", KindVarchar, true},
		{"age", KindInt, true},
		{"email", KindVarchar, true},
		{"created_at", KindDateTime, true},
	}
	if len(s.Columns) != len(want) {
		t.Fatalf("got %d columns, want %d", len(s.Columns), len(want))
	}
	for i, w := range want {
		c := s.Columns[i]
		if c.Name != w.name || c.Kind != w.kind || c.Nullable != w.nullable {
			t.Errorf("column %d = %+v, want %+v", i, c, w)
		}
	}
	if s.Columns[1].MaxBytes != 200 {
		t.Errorf("name max bytes = %d, want 200", s.Columns[1].MaxBytes)
	}
	if s.Columns[2].Width != 1 {
		t.Errorf("age width = %d", s.Columns[2].Width)
	}
}

func TestFromSQLReordersPrimaryKey(t *testing.T) {
	s, err := FromSQL(`CREATE TABLE t (
  label VARCHAR(10) CHARACTER SET latin1,
  code CHAR(4) CHARACTER SET latin1,
  price DECIMAL(10,2),
  size ENUM('small','medium','large'),
  k BIGINT UNSIGNED,
  PRIMARY KEY (k)
)`)
	if err != nil {
		t.Fatalf("FromSQL: %v", err)
	}
	names := []string{"k", "label", "code", "price", "size"}
	for i, n := range names {
		if s.Columns[i].Name != n {
			t.Fatalf("column %d = %s, want %s", i, s.Columns[i].Name, n)
		}
	}
	if s.Columns[0].Kind != KindUint || s.Columns[0].Width != 8 || s.Columns[0].Nullable {
		t.Errorf("key column = %+v", s.Columns[0])
	}
	if s.Columns[1].MaxBytes != 10 || !s.Columns[1].ShortLength() {
		t.Errorf("label = %+v", s.Columns[1])
	}
	if s.Columns[2].Kind != KindChar || s.Columns[2].Width != 4 {
		t.Errorf("code = %+v", s.Columns[2])
	}
	if s.Columns[3].Kind != KindDecimal || s.Columns[3].Precision != 10 || s.Columns[3].Scale != 2 {
		t.Errorf("price = %+v", s.Columns[3])
	}
	if got := s.Columns[4].Elements; len(got) != 3 || got[1] != "medium" {
		t.Errorf("enum elements = %q", got)
	}
}

func TestFromSQLWithoutPrimaryKey(t *testing.T) {
	s, err := FromSQL("CREATE TABLE logs (msg TEXT, at TIMESTAMP)")
	if err != nil {
		t.Fatalf("FromSQL: %v", err)
	}
	if s.KeyColumns != 1 || s.Columns[0].Name != HiddenRowID || s.Columns[0].Width != 6 {
		t.Fatalf("hidden key missing: %s", s)
	}
	if s.Columns[1].MaxBytes != 65535 {
		t.Errorf("text max bytes = %d", s.Columns[1].MaxBytes)
	}
}

func TestFromSQLErrors(t *testing.T) {
	if _, err := FromSQL("SELECT 1"); err == nil {
		t.Fatal("non-DDL accepted")
	}
	if _, err := FromSQL("CREATE TABLE s (tags SET('a','b'))"); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("SET column: got %v, want ErrUnsupportedType", err)
	}
}

func TestFromSQLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.sql")
	if err := os.WriteFile(path, []byte(usersDDL+"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := FromSQLFile(path)
	if err != nil {
		t.Fatalf("FromSQLFile: %v", err)
	}
	if len(s.Columns) != 5 {
		t.Fatalf("got %d columns", len(s.Columns))
	}
	if _, err := FromSQLFile(filepath.Join(t.TempDir(), "missing.sql")); err == nil {
		t.Fatal("missing file accepted")
	}
}

package schema

import "testing"

func TestUsersSchema(t *testing.T) {
	s := Users()
	if err := s.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if s.KeyColumns != 1 || s.Columns[0].Name != "id" {
		t.Fatalf("unexpected key: %d %s", s.KeyColumns, s.Columns[0].Name)
	}
	if got := s.NullableCount(); got != 4 {
		t.Fatalf("nullable count = %d, want 4", got)
	}
	if got := s.NullBitmapSize(); got != 1 {
		t.Fatalf("bitmap size = %d, want 1", got)
	}
	vars := s.VariableColumns()
	if len(vars) != 2 || s.Columns[vars[0]].Name != "name" || s.Columns[vars[1]].Name != "email" {
		t.Fatalf("variable columns = %v", vars)
	}
	if s.Columns[3].Pad != 1 {
		t.Fatalf("email pad = %d, want 1", s.Columns[3].Pad)
	}
}

func TestAddColumnRejectsDuplicates(t *testing.T) {
	s := NewRowSchema("t", 1)
	if err := s.AddColumn(Column{Name: "id", Kind: KindInt, Width: 4}); err != nil {
		t.Fatalf("add id: %v", err)
	}
	if err := s.AddColumn(Column{Name: "id", Kind: KindInt, Width: 8}); err == nil {
		t.Fatal("duplicate column accepted")
	}
	if err := s.AddColumn(Column{Name: "bad", Kind: KindInt, Width: 9}); err == nil {
		t.Fatal("integer width 9 accepted")
	}
}

func TestValidateRejectsBadSchemas(t *testing.T) {
	cases := map[string]*RowSchema{
		"empty":        {Name: "empty"},
		"key overflow": {Name: "k", KeyColumns: 2, Columns: []Column{{Name: "a", Kind: KindInt, Width: 4}}},
		"no kind":      {Name: "n", Columns: []Column{{Name: "a"}}},
		"decimal":      {Name: "d", Columns: []Column{{Name: "a", Kind: KindDecimal, Precision: 4, Scale: 5}}},
		"enum":         {Name: "e", Columns: []Column{{Name: "a", Kind: KindEnum}}},
		"fsp":          {Name: "f", Columns: []Column{{Name: "a", Kind: KindDateTime, Precision: 7}}},
	}
	for name, s := range cases {
		if err := s.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestStorageSize(t *testing.T) {
	cases := []struct {
		col  Column
		want int
	}{
		{Column{Kind: KindInt, Width: 3}, 3},
		{Column{Kind: KindPackedDateTime}, 4},
		{Column{Kind: KindDateTime}, 5},
		{Column{Kind: KindDateTime, Precision: 3}, 7},
		{Column{Kind: KindTimestamp, Precision: 6}, 7},
		{Column{Kind: KindTime, Precision: 1}, 4},
		{Column{Kind: KindDate}, 3},
		{Column{Kind: KindDecimal, Precision: 10, Scale: 2}, 5},
		{Column{Kind: KindDecimal, Precision: 18, Scale: 9}, 8},
		{Column{Kind: KindEnum, Elements: []string{"a"}}, 1},
		{Column{Kind: KindVarchar}, 0},
	}
	for _, c := range cases {
		if got := c.col.StorageSize(); got != c.want {
			t.Errorf("%v: storage size %d, want %d", c.col.Kind, got, c.want)
		}
	}
}

func TestKeySchema(t *testing.T) {
	key := Users().KeySchema()
	if len(key.Columns) != 1 || key.Columns[0].Name != "id" || key.KeyColumns != 1 {
		t.Fatalf("key schema = %+v", key)
	}
}

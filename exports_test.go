package ibdparse

import (
	"bytes"
	"testing"

	"github.com/wilhasse/go-ibdparse/page"
	"github.com/wilhasse/go-ibdparse/record"
)

func TestWalkRecordsThroughReader(t *testing.T) {
	s := UsersSchema()
	b := page.NewBuilder(0, s)
	rec := &record.Record{
		TrxID: 1, RollPtr: 2,
		Fields: []record.Field{
			{Name: "id", Value: int64(42)},
			{Name: "name", Value: "carol"},
			{Name: "age", Value: int64(31)},
			{Name: "email", Null: true},
			{Name: "created_at", Null: true},
		},
	}
	if err := b.Add(rec); err != nil {
		t.Fatal(err)
	}
	p, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	ip, err := NewPageReader(bytes.NewReader(p)).ReadPage(0)
	if err != nil {
		t.Fatal(err)
	}
	if ip.PageType() != PageTypeIndex {
		t.Fatalf("page type %v, want INDEX", ip.PageType())
	}
	idx, err := ParseIndexPage(ip)
	if err != nil {
		t.Fatal(err)
	}
	records, err := WalkRecords(idx, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if v, _ := records[0].Value("name"); v != "carol" {
		t.Errorf("name = %v, want carol", v)
	}
	if v, ok := records[0].Value("email"); !ok || v != nil {
		t.Errorf("email = %v, %v; want NULL", v, ok)
	}
}

package page

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wilhasse/go-ibdparse/column"
	"github.com/wilhasse/go-ibdparse/format"
	"github.com/wilhasse/go-ibdparse/record"
	"github.com/wilhasse/go-ibdparse/schema"
)

func userRecord(id int64, name string, age int64, email string) *record.Record {
	return &record.Record{
		TrxID:   0x0507,
		RollPtr: 0x82000001230110,
		Fields: []record.Field{
			{Name: "id", Value: id},
			{Name: "name", Value: name},
			{Name: "age", Value: age},
			{Name: "email", Value: email, Pad: []byte{0x99}},
			{Name: "created_at", Value: column.DateTime{Year: 2024, Month: 3, Day: 15, Hour: 10, Minute: 30, Second: 45}},
		},
	}
}

func buildUsersPage(t *testing.T, recs ...*record.Record) []byte {
	t.Helper()
	b := NewBuilder(4, schema.Users())
	b.SpaceID = 1
	for _, r := range recs {
		if err := b.Add(r); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p
}

func TestIndexPageRecords(t *testing.T) {
	p := buildUsersPage(t,
		userRecord(1, "Alice", 30, "alice@example.com"),
		userRecord(2, "Bob", -4, "bob@example.com"),
	)
	ip, err := NewInnerPage(4, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(ip.Warnings) != 0 || ip.Checksum != ChecksumValid {
		t.Fatalf("warnings %v, checksum %s", ip.Warnings, ip.Checksum)
	}
	idx, err := ParseIndexPage(ip)
	if err != nil {
		t.Fatal(err)
	}
	if !idx.IsLeaf() || !idx.IsRoot() || idx.Hdr.NumUserRecs != 2 || idx.Hdr.Direction != format.DirRight {
		t.Fatalf("index header %+v", idx.Hdr)
	}
	if idx.Infimum.Type != format.RecInfimum || idx.Supremum.Type != format.RecSupremum {
		t.Fatalf("sentinels %v %v", idx.Infimum.Type, idx.Supremum.Type)
	}

	recs, err := idx.Records(schema.Users())
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	for _, r := range recs {
		if r.Err != nil {
			t.Fatalf("record %d: %v", r.Offset, r.Err)
		}
	}
	if v, _ := recs[0].Value("name"); v != "Alice" {
		t.Fatalf("name = %v", v)
	}
	if v, _ := recs[1].Value("age"); v != int64(-4) {
		t.Fatalf("age = %v", v)
	}
	if v, _ := recs[1].Value("created_at"); v.(column.DateTime).String() != "2024-03-15 10:30:45" {
		t.Fatalf("created_at = %v", v)
	}
	if recs[0].TrxID != 0x0507 || recs[0].RollPtr != 0x82000001230110 {
		t.Fatalf("system columns %x %x", recs[0].TrxID, recs[0].RollPtr)
	}
}

func TestIndexPageEmpty(t *testing.T) {
	ip, err := NewInnerPage(4, buildUsersPage(t))
	if err != nil {
		t.Fatal(err)
	}
	idx, err := ParseIndexPage(ip)
	if err != nil {
		t.Fatal(err)
	}
	recs, err := idx.Records(schema.Users())
	if err != nil || len(recs) != 0 {
		t.Fatalf("empty page: %d records, %v", len(recs), err)
	}
}

func TestIndexPageRedundantFormat(t *testing.T) {
	p := buildUsersPage(t,
		userRecord(1, "Alice", 30, "alice@example.com"),
		userRecord(2, "Bob", 41, "bob@example.com"),
	)
	p[format.FilHeaderSize+4] &^= 0x80 // n_heap_format bit 15
	b := NewBuilder(4, nil)
	b.SpaceID = 1
	p, err := b.Seal(p)
	if err != nil {
		t.Fatal(err)
	}
	ip, err := NewInnerPage(4, p)
	if err != nil {
		t.Fatal(err)
	}

	idx, err := ParseIndexPage(ip)
	if err != nil {
		t.Fatalf("redundant page rejected: %v", err)
	}
	if idx.Hdr.Format != format.FormatRedundant || idx.Hdr.NumHeapRecs != 4 || idx.Hdr.NumUserRecs != 2 {
		t.Fatalf("index header %+v", idx.Hdr)
	}
	if len(idx.DirSlots) != 2 || idx.Infimum.Type != format.RecInfimum {
		t.Fatalf("directory %v, infimum %+v", idx.DirSlots, idx.Infimum)
	}
	if len(idx.Warnings) != 1 || !errors.Is(idx.Warnings[0], format.ErrRedundantFormat) {
		t.Fatalf("warnings %v", idx.Warnings)
	}
	hdrs, err := idx.Headers()
	if err != nil || len(hdrs) != 2 {
		t.Fatalf("headers: %d, %v", len(hdrs), err)
	}
	if _, err := idx.Records(schema.Users()); !errors.Is(err, format.ErrRedundantFormat) {
		t.Fatalf("Records on redundant page: %v", err)
	}
}

func TestParseIndexPageRejectsOtherTypes(t *testing.T) {
	b := NewBuilder(0, schema.Users())
	b.Type = format.PageTypeFspHdr
	p, err := b.Seal(make([]byte, format.PageSize))
	if err != nil {
		t.Fatal(err)
	}
	ip, err := NewInnerPage(0, p)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseIndexPage(ip); !errors.Is(err, format.ErrNotIndexPage) {
		t.Fatalf("ParseIndexPage on FSP_HDR: %v", err)
	}
}

func TestInnerPageWarnings(t *testing.T) {
	b := NewBuilder(7, schema.Users())
	b.Type = format.PageType(0x1234)
	p, err := b.Seal(make([]byte, format.PageSize))
	if err != nil {
		t.Fatal(err)
	}
	format.PutBe32(p, format.PageSize-4, 0xAAAA) // trailer LSN
	p[200] ^= 0x01
	ip, err := NewInnerPage(7, p)
	if err != nil {
		t.Fatal(err)
	}
	if ip.PageType() != format.PageTypeAllocated || !ip.Type.Unknown {
		t.Fatalf("type %v", ip.Type)
	}
	var unknown *format.UnknownPageTypeWarning
	var lsn *LSNMismatchWarning
	var sum *ChecksumWarning
	for _, w := range ip.Warnings {
		switch {
		case errors.As(w, &unknown), errors.As(w, &lsn), errors.As(w, &sum):
		}
	}
	if unknown == nil || lsn == nil || sum == nil {
		t.Fatalf("warnings %v", ip.Warnings)
	}
}

func TestNewInnerPageTruncated(t *testing.T) {
	_, err := NewInnerPage(3, make([]byte, 100))
	var te *format.TruncatedPageError
	if !errors.As(err, &te) || te.Got != 100 {
		t.Fatalf("NewInnerPage short buffer: %v", err)
	}
}

func TestChecksum(t *testing.T) {
	if s := VerifyChecksum(make([]byte, format.PageSize)); s != ChecksumEmptyPage {
		t.Fatalf("zero page: %s", s)
	}
	b := NewBuilder(1, schema.Users())
	b.NoChecksum = true
	p, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if s := VerifyChecksum(p); s != ChecksumDisabled {
		t.Fatalf("no checksum page: %s", s)
	}
	b.NoChecksum = false
	p, _ = b.Build()
	if s := VerifyChecksum(p); s != ChecksumValid {
		t.Fatalf("sealed page: %s", s)
	}
	p[500] ^= 0xFF
	if s := VerifyChecksum(p); s != ChecksumMismatch {
		t.Fatalf("corrupted page: %s", s)
	}
}

func TestFileStore(t *testing.T) {
	p0 := buildUsersPage(t)
	p1 := buildUsersPage(t, userRecord(9, "Zed", 50, "z@example.com"))
	path := filepath.Join(t.TempDir(), "users.ibd")
	data := append(append([]byte(nil), p0...), p1...)
	data = append(data, make([]byte, 1000)...) // partial third page
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	fs, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fs.Close()
	if fs.NumPages() != 2 || fs.Size() != int64(len(data)) {
		t.Fatalf("NumPages %d, Size %d", fs.NumPages(), fs.Size())
	}
	ip, err := fs.ReadPage(1)
	if err != nil {
		t.Fatal(err)
	}
	if ip.PageNo != 1 || !ip.IsIndex() {
		t.Fatalf("page 1: %+v", ip.FIL)
	}

	_, err = fs.ReadPage(2)
	var te *format.TruncatedPageError
	if !errors.As(err, &te) || te.Got != 1000 || te.PageNo != 2 {
		t.Fatalf("partial page: %v", err)
	}
	if _, err := fs.ReadPage(10); !errors.As(err, &te) || te.Got != 0 {
		t.Fatalf("past end: %v", err)
	}
}

func TestOpenFileMissing(t *testing.T) {
	if _, err := OpenFile(filepath.Join(t.TempDir(), "nope.ibd")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("OpenFile: %v", err)
	}
}

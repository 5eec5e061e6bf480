package record

import (
	"bytes"
	"errors"
	"testing"

	"github.com/wilhasse/go-ibdparse/format"
)

func TestParseRecordHeaderBits(t *testing.T) {
	p := make([]byte, 300)
	copy(p[195:], []byte{0xA3, 0x00, 0x10, 0xFF, 0xE0})
	h, err := ParseRecordHeader(p, 200)
	if err != nil {
		t.Fatal(err)
	}
	if !h.DeleteMark || h.MinRec || h.NumOwned != 3 || h.HeapNumber != 2 || h.RawType != 0 {
		t.Fatalf("decoded %+v", h)
	}
	if h.Type != format.RecConventional {
		t.Fatalf("type %s", h.Type)
	}
	// negative delta wraps modulo 65536
	if h.Next != 168 {
		t.Fatalf("next = %d, want 168", h.Next)
	}

	out := make([]byte, 300)
	if err := h.Encode(out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out[195:200], p[195:200]) {
		t.Fatalf("Encode = % x", out[195:200])
	}
}

func TestParseRecordHeaderMinRecAndHeap(t *testing.T) {
	p := make([]byte, 300)
	copy(p[95:], []byte{0x51, 0xFF, 0xFA, 0x00, 0x0D})
	h, err := ParseRecordHeader(p, 100)
	if err != nil {
		t.Fatal(err)
	}
	if h.DeleteMark || !h.MinRec || h.NumOwned != 1 || h.HeapNumber != 0x1FFF || h.RawType != 2 || h.Next != 113 {
		t.Fatalf("decoded %+v", h)
	}
	out := make([]byte, 300)
	if err := h.Encode(out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out[95:100], p[95:100]) {
		t.Fatalf("Encode = % x, want % x", out[95:100], p[95:100])
	}
}

func TestRecordTypeIsPositional(t *testing.T) {
	p := make([]byte, 200)
	// type bits claim conventional at the sentinel offsets and supremum elsewhere
	p[format.InfimumOffset-3] = 0x03
	p[150-3] = 0x03
	cases := map[int]format.RecordType{
		format.InfimumOffset:  format.RecInfimum,
		format.SupremumOffset: format.RecSupremum,
		150:                   format.RecConventional,
	}
	for off, want := range cases {
		h, err := ParseRecordHeader(p, off)
		if err != nil {
			t.Fatal(err)
		}
		if h.Type != want {
			t.Fatalf("offset %d: %s, want %s", off, h.Type, want)
		}
	}
}

func TestParseRecordHeaderBounds(t *testing.T) {
	p := make([]byte, 100)
	if _, err := ParseRecordHeader(p, 3); !errors.Is(err, format.ErrShortRead) {
		t.Fatalf("before page start: %v", err)
	}
	if _, err := ParseRecordHeader(p, 101); !errors.Is(err, format.ErrShortRead) {
		t.Fatalf("past page end: %v", err)
	}
}

func TestIndexHeaderRoundTrip(t *testing.T) {
	p := make([]byte, format.PageSize)
	in := IndexHeader{
		NumDirSlots: 5, HeapTop: 900, NumHeapRecs: 14, Format: format.FormatCompact,
		GarbageSpace: 12, LastInsertPos: 850, Direction: format.DirNoDirection, DirectionRaw: 5,
		NumUserRecs: 12, MaxTrxID: 0x1234, PageLevel: 1, IndexID: 77,
	}
	if err := in.Encode(p, format.FilHeaderSize); err != nil {
		t.Fatal(err)
	}
	out, err := ParseIndexHeader(p, format.FilHeaderSize)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("round trip\n got %+v\nwant %+v", out, in)
	}
	if out.IsLeaf() {
		t.Fatal("level 1 page reported as leaf")
	}

	// raw 5 is neither right nor left
	format.PutBe16(p, format.FilHeaderSize+12, 2)
	out, _ = ParseIndexHeader(p, format.FilHeaderSize)
	if out.Direction != format.DirLeft {
		t.Fatalf("direction %s", out.Direction)
	}
}

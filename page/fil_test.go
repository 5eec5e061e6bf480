package page

import (
	"bytes"
	"testing"

	"github.com/wilhasse/go-ibdparse/format"
)

func TestParseFilHeaderFixedBytes(t *testing.T) {
	hdr := []byte{
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x04,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x05,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x12, 0x34, 0x56,
		0x45, 0xBF,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x01,
	}
	h, err := ParseFilHeader(hdr)
	if err != nil {
		t.Fatalf("ParseFilHeader: %v", err)
	}
	if h.PageNumber != 4 || h.Next != 5 || h.SpaceID != 1 || h.LastModLSN != 0x123456 {
		t.Fatalf("decoded %+v", h)
	}
	rt, warn := format.ResolvePageType(uint16(h.PageType))
	if warn != nil || !rt.Is(format.PageTypeIndex) || rt.ByteSwapped {
		t.Fatalf("page type %v, warning %v", rt, warn)
	}
	if next, ok := h.NextPage(); !ok || next != 5 {
		t.Fatalf("NextPage = %d, %v", next, ok)
	}

	out := make([]byte, format.FilHeaderSize)
	if err := h.Encode(out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, hdr) {
		t.Fatalf("Encode = % x", out)
	}
}

func TestFilHeaderNullSiblings(t *testing.T) {
	h := FilHeader{Prev: format.FilNull, Next: format.FilNull}
	if _, ok := h.PrevPage(); ok {
		t.Fatal("PrevPage reported FIL_NULL as a page")
	}
	if _, ok := h.NextPage(); ok {
		t.Fatal("NextPage reported FIL_NULL as a page")
	}
}

func TestParseFilHeaderShort(t *testing.T) {
	if _, err := ParseFilHeader(make([]byte, 10)); err == nil {
		t.Fatal("short header accepted")
	}
	if _, err := ParseFilTrailer(make([]byte, 100)); err == nil {
		t.Fatal("short trailer accepted")
	}
}

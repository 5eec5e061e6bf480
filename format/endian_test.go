package format

import (
	"bytes"
	"errors"
	"testing"
)

func TestBeReaders(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}
	if v, _ := Be16(b, 1); v != 0x0203 {
		t.Fatalf("Be16 = %#x", v)
	}
	if v, _ := Be32(b, 0); v != 0x01020304 {
		t.Fatalf("Be32 = %#x", v)
	}
	if v, _ := Be64(b, 1); v != 0x0203040506070809 {
		t.Fatalf("Be64 = %#x", v)
	}
	if v, _ := BeN(b, 0, 6); v != 0x010203040506 {
		t.Fatalf("BeN(6) = %#x", v)
	}
	if v, _ := BeN(b, 2, 7); v != 0x03040506070809 {
		t.Fatalf("BeN(7) = %#x", v)
	}
}

func TestBeReadersOutOfBounds(t *testing.T) {
	b := make([]byte, 4)
	if _, err := Be32(b, 1); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Be32 past end: %v", err)
	}
	if _, err := Be16(b, -1); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Be16 negative: %v", err)
	}
	if _, err := BeN(b, 0, 9); err == nil {
		t.Fatal("BeN accepted width 9")
	}
}

func TestAppendBeN(t *testing.T) {
	got := AppendBeN(nil, 0x0102030405060708, 6)
	want := []byte{0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	if !bytes.Equal(got, want) {
		t.Fatalf("AppendBeN = %x, want %x", got, want)
	}
}

package page

import (
	"errors"
	"testing"

	"github.com/wilhasse/go-ibdparse/format"
)

func TestDecodeDirectoryOrder(t *testing.T) {
	p := make([]byte, format.PageSize)
	want := []uint16{99, 300, 812, 112}
	if err := EncodeDirectory(p, want); err != nil {
		t.Fatal(err)
	}
	// slot 0 sits right before the trailer
	if v, _ := format.Be16(p, format.PageSize-10); v != 99 {
		t.Fatalf("slot 0 stored as %d", v)
	}
	dir, err := DecodeDirectory(p, len(want))
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if dir[i] != want[i] {
			t.Fatalf("dir = %v, want %v", dir, want)
		}
	}
}

func TestDecodeDirectoryCountAndBounds(t *testing.T) {
	p := make([]byte, format.PageSize)
	for n := 2; n < 200; n += 13 {
		slots := make([]uint16, n)
		for i := range slots {
			slots[i] = uint16((i * 977) % format.PageSize)
		}
		if err := EncodeDirectory(p, slots); err != nil {
			t.Fatal(err)
		}
		dir, err := DecodeDirectory(p, n)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(dir) != n {
			t.Fatalf("n=%d: got %d slots", n, len(dir))
		}
		for _, v := range dir {
			if int(v) >= format.PageSize {
				t.Fatalf("slot %d out of page", v)
			}
		}
	}
}

func TestDecodeDirectoryErrors(t *testing.T) {
	p := make([]byte, format.PageSize)
	if _, err := DecodeDirectory(p, 1); !errors.Is(err, format.ErrDirectoryTooSmall) {
		t.Fatalf("1 slot: %v", err)
	}
	if _, err := DecodeDirectory(p, 9000); !errors.Is(err, format.ErrBadSlot) {
		t.Fatalf("overlapping directory: %v", err)
	}
	if err := EncodeDirectory(p, []uint16{99, 0xFFFF}); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeDirectory(p, 2); !errors.Is(err, format.ErrBadSlot) {
		t.Fatalf("slot past page end: %v", err)
	}
}

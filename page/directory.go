// directory.go - Page directory decoding
package page

import (
	"fmt"

	"github.com/wilhasse/go-ibdparse/format"
)

// DecodeDirectory returns the nSlots directory offsets of a page in decode
// order: slot i is stored at PageSize-8-(i+1)*2, so index 0 is the
// Infimum slot and the last one the Supremum slot.
func DecodeDirectory(p []byte, nSlots int) ([]uint16, error) {
	if nSlots < 2 {
		return nil, fmt.Errorf("%d slots: %w", nSlots, format.ErrDirectoryTooSmall)
	}
	if len(p) < format.PageSize {
		return nil, fmt.Errorf("directory: %w", format.ErrShortRead)
	}
	start := format.DirectoryEnd - nSlots*format.PageDirSlotSize
	if start < format.PageDataOff {
		return nil, fmt.Errorf("directory of %d slots overlaps the page header: %w", nSlots, format.ErrBadSlot)
	}

	dir := make([]uint16, nSlots)
	for i := range dir {
		v, _ := format.Be16(p, format.DirectoryEnd-(i+1)*format.PageDirSlotSize)
		if int(v) >= format.PageSize {
			return nil, fmt.Errorf("slot %d = %d: %w", i, v, format.ErrBadSlot)
		}
		dir[i] = v
	}
	return dir, nil
}

// EncodeDirectory writes dir back in stored order.
func EncodeDirectory(p []byte, dir []uint16) error {
	if len(p) < format.PageSize {
		return fmt.Errorf("directory: %w", format.ErrShortRead)
	}
	if format.DirectoryEnd-len(dir)*format.PageDirSlotSize < format.PageDataOff {
		return fmt.Errorf("directory of %d slots overlaps the page header: %w", len(dir), format.ErrBadSlot)
	}
	for i, v := range dir {
		format.PutBe16(p, format.DirectoryEnd-(i+1)*format.PageDirSlotSize, v)
	}
	return nil
}

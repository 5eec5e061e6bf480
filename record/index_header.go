// index_header.go - Index-specific header parsing within a page
package record

import (
	"fmt"

	"github.com/wilhasse/go-ibdparse/format"
)

// IndexHeader is the 36-byte index header at offset 38
// (compact/redundant flag in high bit of num-of-heap).
type IndexHeader struct {
	NumDirSlots           uint16
	HeapTop               uint16
	NumHeapRecs           uint16 // low 15 bits
	Format                format.PageFormat
	FirstGarbageOff       uint16
	GarbageSpace          uint16
	LastInsertPos         uint16
	Direction             format.PageDirection
	DirectionRaw          uint16
	NumInsertsInDirection uint16
	NumUserRecs           uint16
	MaxTrxID              uint64
	PageLevel             uint16
	IndexID               uint64
}

func ParseIndexHeader(p []byte, off int) (IndexHeader, error) {
	if off < 0 || off+format.IndexHeaderSize > len(p) {
		return IndexHeader{}, fmt.Errorf("short index header: %w", format.ErrShortRead)
	}
	nSlots, _ := format.Be16(p, off+0)
	heapTop, _ := format.Be16(p, off+2)
	flag, _ := format.Be16(p, off+4)
	firstGarbage, _ := format.Be16(p, off+6)
	garbage, _ := format.Be16(p, off+8)
	lastIns, _ := format.Be16(p, off+10)
	dir, _ := format.Be16(p, off+12)
	nDir, _ := format.Be16(p, off+14)
	nRecs, _ := format.Be16(p, off+16)
	maxTrx, _ := format.Be64(p, off+18)
	level, _ := format.Be16(p, off+26)
	indexID, _ := format.Be64(p, off+28)

	pf := format.FormatRedundant
	if (flag & 0x8000) != 0 {
		pf = format.FormatCompact
	}

	return IndexHeader{
		NumDirSlots:           nSlots,
		HeapTop:               heapTop,
		NumHeapRecs:           flag & 0x7fff,
		Format:                pf,
		FirstGarbageOff:       firstGarbage,
		GarbageSpace:          garbage,
		LastInsertPos:         lastIns,
		Direction:             format.DirectionFromRaw(dir),
		DirectionRaw:          dir,
		NumInsertsInDirection: nDir,
		NumUserRecs:           nRecs,
		MaxTrxID:              maxTrx,
		PageLevel:             level,
		IndexID:               indexID,
	}, nil
}

// Encode writes the header at off. The raw direction value is written back
// unchanged; when it is zero the decoded Direction is used instead.
func (h IndexHeader) Encode(p []byte, off int) error {
	if off < 0 || off+format.IndexHeaderSize > len(p) {
		return fmt.Errorf("short index header: %w", format.ErrShortRead)
	}
	flag := h.NumHeapRecs & 0x7fff
	if h.Format == format.FormatCompact {
		flag |= 0x8000
	}
	dir := h.DirectionRaw
	if dir == 0 {
		dir = uint16(h.Direction)
	}
	format.PutBe16(p, off+0, h.NumDirSlots)
	format.PutBe16(p, off+2, h.HeapTop)
	format.PutBe16(p, off+4, flag)
	format.PutBe16(p, off+6, h.FirstGarbageOff)
	format.PutBe16(p, off+8, h.GarbageSpace)
	format.PutBe16(p, off+10, h.LastInsertPos)
	format.PutBe16(p, off+12, dir)
	format.PutBe16(p, off+14, h.NumInsertsInDirection)
	format.PutBe16(p, off+16, h.NumUserRecs)
	format.PutBe64(p, off+18, h.MaxTrxID)
	format.PutBe16(p, off+26, h.PageLevel)
	format.PutBe64(p, off+28, h.IndexID)
	return nil
}

// IsLeaf reports whether the page holds leaf records.
func (h IndexHeader) IsLeaf() bool { return h.PageLevel == 0 }

// header.go - Compact record format header parsing (5 bytes)
package record

import (
	"fmt"

	"github.com/wilhasse/go-ibdparse/format"
)

// RecordHeader is the 5-byte compact header stored in front of a record.
//
//	byte 0   delete mark (bit 7), min-rec flag (bit 6), n_owned (bits 0-3)
//	byte 1-2 heap number (13 bits), record type bits (3 bits)
//	byte 3-4 signed delta to the next record, stored unsigned
type RecordHeader struct {
	Offset     int // record origin; the header sits in the 5 bytes before it
	DeleteMark bool
	MinRec     bool
	NumOwned   uint8
	HeapNumber uint16
	RawType    uint8             // type bits as stored
	Type       format.RecordType // resolved from Offset
	Delta      uint16            // raw next delta
	Next       uint16            // (Offset + Delta) mod 65536
	flags      uint8             // bits 4-5 of byte 0, kept for Encode
}

// ParseRecordHeader decodes the header of the record whose origin is recOff.
// The record type is taken from the position: the sentinel offsets are
// Infimum and Supremum, everything else is conventional.
func ParseRecordHeader(p []byte, recOff int) (RecordHeader, error) {
	off := recOff - format.RecordHeaderSize
	if off < 0 || recOff > len(p) {
		return RecordHeader{}, fmt.Errorf("record header at %d: %w", recOff, format.ErrShortRead)
	}
	b1 := p[off]
	b2 := p[off+1]
	b3 := p[off+2]
	delta, _ := format.Be16(p, off+3)

	h := RecordHeader{
		Offset:     recOff,
		DeleteMark: b1>>7&1 == 1,
		MinRec:     b1>>6&1 == 1,
		NumOwned:   b1 & 0x0F,
		HeapNumber: uint16(b2)<<5 | uint16(b3>>3),
		RawType:    b3 & 0x07,
		Type:       positionalType(recOff),
		Delta:      delta,
		Next:       uint16(recOff) + delta,
		flags:      b1 >> 4 & 0x03,
	}
	return h, nil
}

func positionalType(recOff int) format.RecordType {
	switch recOff {
	case format.InfimumOffset:
		return format.RecInfimum
	case format.SupremumOffset:
		return format.RecSupremum
	default:
		return format.RecConventional
	}
}

// IsSystem reports whether the record is one of the two sentinels.
func (h RecordHeader) IsSystem() bool {
	return h.Type == format.RecInfimum || h.Type == format.RecSupremum
}

// Encode writes the header into the 5 bytes in front of h.Offset.
func (h RecordHeader) Encode(p []byte) error {
	off := h.Offset - format.RecordHeaderSize
	if off < 0 || h.Offset > len(p) {
		return fmt.Errorf("record header at %d: %w", h.Offset, format.ErrShortRead)
	}
	if h.HeapNumber > 0x1FFF {
		return fmt.Errorf("heap number %d exceeds 13 bits", h.HeapNumber)
	}
	b1 := h.NumOwned&0x0F | h.flags<<4
	if h.DeleteMark {
		b1 |= 0x80
	}
	if h.MinRec {
		b1 |= 0x40
	}
	p[off] = b1
	p[off+1] = byte(h.HeapNumber >> 5)
	p[off+2] = byte(h.HeapNumber<<3) | h.RawType&0x07
	format.PutBe16(p, off+3, h.Delta)
	return nil
}

// NewRecordHeader builds a header for a record at recOff pointing to next.
// Used by page builders and tests.
func NewRecordHeader(recOff int, heapNo uint16, rawType uint8, next int) RecordHeader {
	delta := uint16(next - recOff)
	return RecordHeader{
		Offset:     recOff,
		HeapNumber: heapNo,
		RawType:    rawType,
		Type:       positionalType(recOff),
		Delta:      delta,
		Next:       uint16(recOff) + delta,
	}
}

// builder.go - Assembles synthetic INDEX pages from records
package page

import (
	"fmt"

	"github.com/wilhasse/go-ibdparse/format"
	"github.com/wilhasse/go-ibdparse/record"
	"github.com/wilhasse/go-ibdparse/schema"
)

// Builder lays out a compact INDEX page holding records in insertion order.
// Pages it produces decode with ParseIndexPage; they are used as fixtures.
type Builder struct {
	PageNo     uint32
	SpaceID    uint32
	Prev, Next uint32
	LSN        uint64
	Type       format.PageType
	Level      uint16
	IndexID    uint64
	MaxTrxID   uint64
	NoChecksum bool

	schema  *schema.RowSchema
	records []builtRecord
}

type builtRecord struct {
	extra, body []byte
	deleted     bool
}

// NewBuilder returns a builder for a root leaf page of s.
func NewBuilder(pageNo uint32, s *schema.RowSchema) *Builder {
	return &Builder{
		PageNo: pageNo,
		Prev:   format.FilNull,
		Next:   format.FilNull,
		LSN:    0x1000,
		Type:   format.PageTypeIndex,
		schema: s,
	}
}

// Add encodes rec with the builder's schema and appends it.
func (b *Builder) Add(rec *record.Record) error {
	extra, body, err := record.EncodeRecord(b.schema, rec)
	if err != nil {
		return err
	}
	b.records = append(b.records, builtRecord{extra: extra, body: body, deleted: rec.Header.DeleteMark})
	return nil
}

// AddRaw appends a record from its stored bytes.
func (b *Builder) AddRaw(extra, body []byte) {
	b.records = append(b.records, builtRecord{extra: extra, body: body})
}

// Origins returns where each added record will start.
func (b *Builder) Origins() []int {
	out := make([]int, len(b.records))
	cur := format.UserDataOff
	for i, r := range b.records {
		out[i] = cur + len(r.extra) + format.RecordHeaderSize
		cur = out[i] + len(r.body)
	}
	return out
}

// Build returns the 16 KiB page.
func (b *Builder) Build() ([]byte, error) {
	p := make([]byte, format.PageSize)
	origins := b.Origins()
	heapTop := format.UserDataOff
	if n := len(origins); n > 0 {
		heapTop = origins[n-1] + len(b.records[n-1].body)
	}
	if heapTop > format.DirectoryEnd-2*format.PageDirSlotSize {
		return nil, fmt.Errorf("%d records do not fit a page", len(b.records))
	}

	rawType := uint8(format.RecConventional)
	if b.Level > 0 {
		rawType = uint8(format.RecNodePointer)
	}
	first := format.SupremumOffset
	if len(origins) > 0 {
		first = origins[0]
	}

	inf := record.NewRecordHeader(format.InfimumOffset, 0, uint8(format.RecInfimum), first)
	inf.NumOwned = 1
	sup := record.NewRecordHeader(format.SupremumOffset, 1, uint8(format.RecSupremum), format.SupremumOffset)
	sup.NumOwned = uint8(len(b.records) + 1)
	if err := inf.Encode(p); err != nil {
		return nil, err
	}
	if err := sup.Encode(p); err != nil {
		return nil, err
	}
	copy(p[format.InfimumOffset:], format.LitInfimum)
	copy(p[format.SupremumOffset:], format.LitSupremum)

	for i, r := range b.records {
		next := format.SupremumOffset
		if i+1 < len(origins) {
			next = origins[i+1]
		}
		h := record.NewRecordHeader(origins[i], uint16(i+2), rawType, next)
		h.DeleteMark = r.deleted
		start := origins[i] - format.RecordHeaderSize - len(r.extra)
		copy(p[start:], r.extra)
		if err := h.Encode(p); err != nil {
			return nil, err
		}
		copy(p[origins[i]:], r.body)
	}

	ih := record.IndexHeader{
		NumDirSlots: 2,
		HeapTop:     uint16(heapTop),
		NumHeapRecs: uint16(len(b.records) + 2),
		Format:      format.FormatCompact,
		Direction:   format.DirRight,
		NumUserRecs: uint16(len(b.records)),
		MaxTrxID:    b.MaxTrxID,
		PageLevel:   b.Level,
		IndexID:     b.IndexID,
	}
	if len(origins) > 0 {
		ih.LastInsertPos = uint16(origins[len(origins)-1])
	}
	if err := ih.Encode(p, format.FilHeaderSize); err != nil {
		return nil, err
	}
	if err := EncodeDirectory(p, []uint16{format.InfimumOffset, format.SupremumOffset}); err != nil {
		return nil, err
	}

	return b.seal(p)
}

// seal writes the FIL header, trailer and checksum.
func (b *Builder) seal(p []byte) ([]byte, error) {
	h := FilHeader{
		PageNumber: b.PageNo, Prev: b.Prev, Next: b.Next,
		LastModLSN: b.LSN, PageType: b.Type, SpaceID: b.SpaceID,
	}
	if err := h.Encode(p); err != nil {
		return nil, err
	}
	sum := ChecksumNone
	if !b.NoChecksum {
		sum = Crc32Checksum(p)
	}
	format.PutBe32(p, 0, sum)
	t := FilTrailer{Checksum: sum, Low32LSN: uint32(b.LSN)}
	if err := t.Encode(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Seal fills in the FIL header, trailer and checksum of an otherwise
// prepared page, for pages of other types.
func (b *Builder) Seal(p []byte) ([]byte, error) {
	if len(p) != format.PageSize {
		return nil, &format.TruncatedPageError{PageNo: b.PageNo, Got: len(p), Want: format.PageSize}
	}
	return b.seal(p)
}

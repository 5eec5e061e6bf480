// index_page.go - INDEX page parsing with records and directory
package page

import (
	"bytes"
	"fmt"

	"github.com/wilhasse/go-ibdparse/format"
	"github.com/wilhasse/go-ibdparse/record"
	"github.com/wilhasse/go-ibdparse/schema"
)

type IndexPage struct {
	Inner    *InnerPage
	Hdr      record.IndexHeader
	Fseg     FsegHeader
	Infimum  record.RecordHeader
	Supremum record.RecordHeader
	DirSlots []uint16 // decode order: DirSlots[0] is Infimum
	Warnings []error
}

// ParseIndexPage decodes the index structures of ip. Pages that did not
// resolve to INDEX are rejected before any index header byte is read.
func ParseIndexPage(ip *InnerPage) (*IndexPage, error) {
	if !ip.IsIndex() {
		return nil, fmt.Errorf("page %d is %s: %w", ip.PageNo, ip.Type, format.ErrNotIndexPage)
	}
	hdr, err := record.ParseIndexHeader(ip.Data, format.FilHeaderSize)
	if err != nil {
		return nil, err
	}
	fseg, err := ParseFsegHeader(ip.Data, format.FilHeaderSize+format.IndexHeaderSize)
	if err != nil {
		return nil, err
	}
	dir, err := DecodeDirectory(ip.Data, int(hdr.NumDirSlots))
	if err != nil {
		return nil, err
	}
	inf, sup, err := record.Sentinels(ip.Data, dir)
	if err != nil {
		return nil, err
	}

	p := &IndexPage{
		Inner: ip, Hdr: hdr, Fseg: fseg,
		Infimum: inf, Supremum: sup, DirSlots: dir,
	}
	if hdr.Format != format.FormatCompact {
		p.Warnings = append(p.Warnings, fmt.Errorf("page %d: rows not decoded: %w", ip.PageNo, format.ErrRedundantFormat))
	}
	if !bytes.Equal(ip.Data[format.InfimumOffset:format.InfimumOffset+format.SystemRecordBytes], format.LitInfimum) {
		p.Warnings = append(p.Warnings, fmt.Errorf("INFIMUM literal mismatch at %d", format.InfimumOffset))
	}
	if !bytes.Equal(ip.Data[format.SupremumOffset:format.SupremumOffset+format.SystemRecordBytes], format.LitSupremum) {
		p.Warnings = append(p.Warnings, fmt.Errorf("SUPREMUM literal mismatch at %d", format.SupremumOffset))
	}
	return p, nil
}

func (p *IndexPage) IsLeaf() bool { return p.Hdr.IsLeaf() }

// IsRoot reports whether the page has no siblings on its level.
func (p *IndexPage) IsRoot() bool {
	_, hasPrev := p.Inner.FIL.PrevPage()
	_, hasNext := p.Inner.FIL.NextPage()
	return !hasPrev && !hasNext
}

// UsedBytes counts heap, trailer and directory bytes minus garbage.
func (p *IndexPage) UsedBytes() int {
	return int(p.Hdr.HeapTop) + format.FilTrailerSize + int(p.Hdr.NumDirSlots)*format.PageDirSlotSize - int(p.Hdr.GarbageSpace)
}

// Limit is the chain walk bound for this page.
func (p *IndexPage) Limit() int { return record.DefaultLimit(p.Hdr.NumUserRecs) }

// Headers walks the record chain without decoding bodies.
func (p *IndexPage) Headers() ([]record.RecordHeader, error) {
	return record.Headers(p.Inner.Data, p.DirSlots, p.Limit())
}

// Records walks the record chain and decodes every record with s. Leaf
// pages yield rows, higher levels node pointers.
func (p *IndexPage) Records(s *schema.RowSchema) ([]record.Record, error) {
	return p.RecordsWith(record.NewRowDecoder(s))
}

// RecordsWith is Records with a prepared decoder. Redundant pages are
// refused with format.ErrRedundantFormat; Headers still walks them.
func (p *IndexPage) RecordsWith(d *record.RowDecoder) ([]record.Record, error) {
	if p.Hdr.Format != format.FormatCompact {
		return nil, fmt.Errorf("page %d: %w", p.Inner.PageNo, format.ErrRedundantFormat)
	}
	return d.Walk(p.Inner.Data, p.DirSlots, p.Limit(), !p.IsLeaf())
}

// row_decoder.go - Schema driven decoding of compact records
package record

// Compact format layout, growing away from the record origin:
//
//	[var lengths][NULL bitmap][5B header] origin [key][trx id][roll ptr][other columns]
import (
	"fmt"

	"github.com/wilhasse/go-ibdparse/column"
	"github.com/wilhasse/go-ibdparse/format"
	"github.com/wilhasse/go-ibdparse/schema"
)

const (
	TrxIDSize     = 6
	RollPtrSize   = 7
	ChildPageSize = 4
)

// RowDecoder decodes record bodies of one clustered index.
type RowDecoder struct {
	schema *schema.RowSchema
	key    *schema.RowSchema
}

// NewRowDecoder creates a decoder for s.
func NewRowDecoder(s *schema.RowSchema) *RowDecoder {
	return &RowDecoder{schema: s, key: s.KeySchema()}
}

// Schema returns the leaf record schema.
func (d *RowDecoder) Schema() *schema.RowSchema { return d.schema }

// Decode decodes the leaf record described by hdr. Decode errors are
// reported on Record.Err.
func (d *RowDecoder) Decode(p []byte, hdr RecordHeader) Record {
	return decodeRecord(p, hdr, d.schema, false)
}

// DecodeNodePointer decodes a node pointer record: key columns followed by
// the child page number.
func (d *RowDecoder) DecodeNodePointer(p []byte, hdr RecordHeader) Record {
	return decodeRecord(p, hdr, d.key, true)
}

// Walk decodes every user record of the chain. Record level failures stay
// on the records; the returned error is the chain walk's.
func (d *RowDecoder) Walk(p []byte, dir []uint16, limit int, nodePointer bool) ([]Record, error) {
	var out []Record
	_, err := WalkChain(p, dir, limit, func(h RecordHeader) error {
		if nodePointer {
			out = append(out, d.DecodeNodePointer(p, h))
		} else {
			out = append(out, d.Decode(p, h))
		}
		return nil
	})
	return out, err
}

func decodeRecord(p []byte, hdr RecordHeader, s *schema.RowSchema, nodePointer bool) Record {
	rec := Record{Offset: hdr.Offset, Header: hdr, NodePointer: nodePointer}
	fail := func(col string, err error) Record {
		rec.Err = &format.RecordDecodeError{Offset: hdr.Offset, Column: col, Err: err}
		return rec
	}
	cols := s.Columns

	// NULL bitmap, read backwards from the byte before the header
	pos := hdr.Offset - format.RecordHeaderSize - 1
	nb := s.NullBitmapSize()
	if pos-nb+1 < 0 || pos >= len(p) {
		return fail("", fmt.Errorf("NULL bitmap: %w", format.ErrShortRead))
	}
	rec.NullBitmap = make([]byte, nb)
	for i := 0; i < nb; i++ {
		rec.NullBitmap[i] = p[pos-i]
	}
	pos -= nb

	nulls := make([]bool, len(cols))
	nullIdx := 0
	for i := range cols {
		if cols[i].Nullable {
			nulls[i] = nullBit(rec.NullBitmap, nullIdx, s.NullOrder)
			nullIdx++
		}
	}

	// Variable length list, one entry per non-NULL variable column
	lengths := make([]int, len(cols))
	for _, i := range s.VariableColumns() {
		if nulls[i] {
			continue
		}
		col := &cols[i]
		if pos < 0 {
			return fail(col.Name, fmt.Errorf("length byte: %w", format.ErrShortRead))
		}
		b := int(p[pos])
		pos--
		length := b
		if b >= 0x80 && !col.ShortLength() {
			if pos < 0 {
				return fail(col.Name, fmt.Errorf("length byte: %w", format.ErrShortRead))
			}
			if b&0x40 != 0 {
				return fail(col.Name, format.ErrExternField)
			}
			length = (b&0x3F)<<8 | int(p[pos])
			pos--
		}
		lengths[i] = length
		rec.VarLengths = append(rec.VarLengths, uint16(length))
	}

	// Column data
	off := hdr.Offset
	rec.Fields = make([]Field, 0, len(cols))
	for i := range cols {
		if i == s.KeyColumns && !nodePointer {
			if err := rec.readSystemColumns(p, &off); err != nil {
				return fail("", err)
			}
		}
		col := &cols[i]
		f := Field{Name: col.Name, Null: nulls[i]}
		if !f.Null {
			v, n, err := column.ParseColumn(p, off, col, lengths[i])
			if err != nil {
				rec.Fields = append(rec.Fields, f)
				return fail(col.Name, err)
			}
			f.Value = v
			off += n
			if col.Pad > 0 {
				if off+col.Pad > len(p) {
					return fail(col.Name, fmt.Errorf("pad: %w", format.ErrShortRead))
				}
				f.Pad = append([]byte(nil), p[off:off+col.Pad]...)
				off += col.Pad
			}
		}
		rec.Fields = append(rec.Fields, f)
	}
	if s.KeyColumns == len(cols) && !nodePointer {
		if err := rec.readSystemColumns(p, &off); err != nil {
			return fail("", err)
		}
	}

	if nodePointer {
		child, err := format.Be32(p, off)
		if err != nil {
			return fail("", fmt.Errorf("child page: %w", err))
		}
		rec.ChildPage = child
	}
	return rec
}

func (r *Record) readSystemColumns(p []byte, off *int) error {
	trx, err := format.BeN(p, *off, TrxIDSize)
	if err != nil {
		return fmt.Errorf("trx id: %w", err)
	}
	roll, err := format.BeN(p, *off+TrxIDSize, RollPtrSize)
	if err != nil {
		return fmt.Errorf("roll pointer: %w", err)
	}
	r.TrxID, r.RollPtr = trx, roll
	*off += TrxIDSize + RollPtrSize
	return nil
}

// nullBit reports whether nullable column i is NULL.
func nullBit(bitmap []byte, i int, order schema.NullOrder) bool {
	b := bitmap[i/8]
	if order == schema.LSBFirst {
		return b&(1<<(i%8)) != 0
	}
	return b&(0x80>>(i%8)) != 0
}

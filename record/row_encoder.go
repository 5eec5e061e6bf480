// row_encoder.go - Rebuilds the stored bytes of a decoded record
package record

import (
	"fmt"

	"github.com/wilhasse/go-ibdparse/column"
	"github.com/wilhasse/go-ibdparse/format"
	"github.com/wilhasse/go-ibdparse/schema"
)

// maxTwoByteLength is the largest length a 2-byte entry can hold in line.
const maxTwoByteLength = 0x3FFF

// EncodeRecord returns the bytes in front of the record header (variable
// length list then NULL bitmap, in ascending address order) and the record
// body starting at the origin. For a record decoded without error the
// output equals the stored bytes.
func EncodeRecord(s *schema.RowSchema, rec *Record) (extra, body []byte, err error) {
	if rec.NodePointer {
		s = s.KeySchema()
	}
	cols := s.Columns
	if len(rec.Fields) != len(cols) {
		return nil, nil, fmt.Errorf("record has %d fields, schema %s has %d", len(rec.Fields), s.Name, len(cols))
	}

	bitmap := make([]byte, s.NullBitmapSize())
	nullIdx := 0
	var lengthEntries [][]byte // ascending address order per entry, schema order
	for i := range cols {
		col := &cols[i]
		f := &rec.Fields[i]
		if f.Name != col.Name {
			return nil, nil, fmt.Errorf("field %d is %s, schema has %s", i, f.Name, col.Name)
		}
		if col.Nullable {
			if f.Null {
				setNullBit(bitmap, nullIdx, s.NullOrder)
			}
			nullIdx++
		} else if f.Null {
			return nil, nil, fmt.Errorf("column %s is NOT NULL", col.Name)
		}

		if i == s.KeyColumns && !rec.NodePointer {
			body = appendSystemColumns(body, rec)
		}
		if f.Null {
			continue
		}
		data, err := column.EncodeColumn(col, f.Value)
		if err != nil {
			return nil, nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		body = append(body, data...)
		if col.Pad > 0 {
			pad := make([]byte, col.Pad)
			copy(pad, f.Pad)
			body = append(body, pad...)
		}
		if col.IsVariableLength() {
			entry, err := lengthEntry(col, len(data))
			if err != nil {
				return nil, nil, err
			}
			lengthEntries = append(lengthEntries, entry)
		}
	}
	if s.KeyColumns == len(cols) && !rec.NodePointer {
		body = appendSystemColumns(body, rec)
	}
	if rec.NodePointer {
		body = format.AppendBeN(body, uint64(rec.ChildPage), ChildPageSize)
	}

	// The first entry sits closest to the header, so lay them out backwards.
	for i := len(lengthEntries) - 1; i >= 0; i-- {
		extra = append(extra, lengthEntries[i]...)
	}
	for i := len(bitmap) - 1; i >= 0; i-- {
		extra = append(extra, bitmap[i])
	}
	return extra, body, nil
}

func appendSystemColumns(body []byte, rec *Record) []byte {
	body = format.AppendBeN(body, rec.TrxID, TrxIDSize)
	return format.AppendBeN(body, rec.RollPtr, RollPtrSize)
}

// lengthEntry encodes one variable length entry in ascending address order.
func lengthEntry(col *schema.Column, n int) ([]byte, error) {
	if col.ShortLength() {
		if n > 0xFF {
			return nil, fmt.Errorf("column %s: length %d needs two bytes", col.Name, n)
		}
		return []byte{byte(n)}, nil
	}
	if n < 0x80 {
		return []byte{byte(n)}, nil
	}
	if n > maxTwoByteLength {
		return nil, fmt.Errorf("column %s: length %d: %w", col.Name, n, format.ErrExternField)
	}
	return []byte{byte(n), 0x80 | byte(n>>8)}, nil
}

func setNullBit(bitmap []byte, i int, order schema.NullOrder) {
	if order == schema.LSBFirst {
		bitmap[i/8] |= 1 << (i % 8)
		return
	}
	bitmap[i/8] |= 0x80 >> (i % 8)
}

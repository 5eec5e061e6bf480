// report.go - Decoded page reports
package inspect

import (
	"encoding/hex"
	"errors"

	"github.com/wilhasse/go-ibdparse/format"
	"github.com/wilhasse/go-ibdparse/page"
	"github.com/wilhasse/go-ibdparse/record"
)

// Options controls how much of a page is decoded.
type Options struct {
	Records    bool // decode the record chain
	MaxRecords int  // keep at most this many records, 0 for all
}

// PageReport is everything decoded from one page.
type PageReport struct {
	PageNo     uint32                  `json:"page_no"`
	Header     page.FilHeader          `json:"header"`
	Type       format.ResolvedPageType `json:"-"`
	TypeName   string                  `json:"page_type"`
	Trailer    page.FilTrailer         `json:"trailer"`
	Checksum   string                  `json:"checksum"`
	Index      *IndexReport            `json:"index,omitempty"`
	Warnings   []string                `json:"warnings,omitempty"`
	IndexError string                  `json:"index_error,omitempty"`
	Error      string                  `json:"error,omitempty"`

	// Err is set when the page could not be read at all.
	Err error `json:"-"`
}

// IndexReport holds the index structures of an INDEX page.
type IndexReport struct {
	Header       record.IndexHeader `json:"index_header"`
	Direction    string             `json:"direction"`
	Format       string             `json:"format"`
	Fseg         page.FsegHeader    `json:"fseg"`
	Directory    []uint16           `json:"directory"`
	Infimum      RecordView         `json:"infimum"`
	Supremum     RecordView         `json:"supremum"`
	IsLeaf       bool               `json:"is_leaf"`
	IsRoot       bool               `json:"is_root"`
	UsedBytes    int                `json:"used_bytes"`
	Records      []RecordView       `json:"records,omitempty"`
	RecordCount  int                `json:"record_count"`
	RecordErrors int                `json:"record_errors"`
	ChainError   string             `json:"chain_error,omitempty"`
	Raw          []record.Record    `json:"-"`
}

// RecordView is the rendering friendly form of a record.
type RecordView struct {
	Offset     int         `json:"offset"`
	Type       string      `json:"type"`
	HeapNo     uint16      `json:"heap_no"`
	NumOwned   uint8       `json:"n_owned"`
	Deleted    bool        `json:"deleted"`
	MinRec     bool        `json:"min_rec"`
	Next       uint16      `json:"next"`
	NullBitmap string      `json:"null_bitmap,omitempty"`
	VarLengths []uint16    `json:"var_lengths,omitempty"`
	TrxID      uint64      `json:"trx_id,omitempty"`
	RollPtr    uint64      `json:"roll_ptr,omitempty"`
	ChildPage  *uint32     `json:"child_page,omitempty"`
	Fields     []FieldView `json:"fields,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// FieldView is one column value; Value is nil for NULL.
type FieldView struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

func headerView(h record.RecordHeader) RecordView {
	return RecordView{
		Offset:   h.Offset,
		Type:     h.Type.String(),
		HeapNo:   h.HeapNumber,
		NumOwned: h.NumOwned,
		Deleted:  h.DeleteMark,
		MinRec:   h.MinRec,
		Next:     h.Next,
	}
}

// NewRecordView converts a decoded record.
func NewRecordView(r *record.Record) RecordView {
	v := headerView(r.Header)
	if r.NodePointer {
		v.Type = format.RecNodePointer.String()
		child := r.ChildPage
		v.ChildPage = &child
	}
	if len(r.NullBitmap) > 0 {
		v.NullBitmap = hex.EncodeToString(r.NullBitmap)
	}
	v.VarLengths = r.VarLengths
	v.TrxID, v.RollPtr = r.TrxID, r.RollPtr
	for _, f := range r.Fields {
		v.Fields = append(v.Fields, FieldView{Name: f.Name, Value: f.Value})
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
	}
	return v
}

// Failed reports whether the page could not be read.
func (r *PageReport) Failed() bool { return r.Err != nil }

// IsTruncated reports whether the read came back short.
func (r *PageReport) IsTruncated() bool {
	var te *format.TruncatedPageError
	return errors.As(r.Err, &te)
}

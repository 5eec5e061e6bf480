// record.go - Decoded record structure
package record

// Field is one decoded column value.
type Field struct {
	Name  string
	Value any
	Null  bool
	Pad   []byte // bytes stored after the value, kept for re-encoding
}

// Record is a user record decoded from the chain. When Err is set the
// header and everything decoded before the failing column stay valid.
type Record struct {
	Offset      int
	Header      RecordHeader
	NodePointer bool
	NullBitmap  []byte   // NullBitmap[0] is the byte right before the header
	VarLengths  []uint16 // one per non-NULL variable column, schema order
	TrxID       uint64
	RollPtr     uint64
	ChildPage   uint32 // node pointer records only
	Fields      []Field
	Err         error
}

// Value returns the named column's value. NULL columns report (nil, true).
func (r *Record) Value(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Values returns the decoded fields keyed by column name.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.Fields))
	for _, f := range r.Fields {
		out[f.Name] = f.Value
	}
	return out
}

// analyze.go - Single page analysis
package inspect

import (
	"github.com/wilhasse/go-ibdparse/page"
	"github.com/wilhasse/go-ibdparse/record"
)

// Analyze decodes everything the page holds. It depends only on the page
// bytes; dec may be nil when records are not wanted.
func Analyze(ip *page.InnerPage, dec *record.RowDecoder, opts Options) *PageReport {
	rep := &PageReport{
		PageNo:   ip.PageNo,
		Header:   ip.FIL,
		Type:     ip.Type,
		TypeName: ip.Type.String(),
		Trailer:  ip.Trailer,
		Checksum: ip.Checksum.String(),
	}
	for _, w := range ip.Warnings {
		rep.Warnings = append(rep.Warnings, w.Error())
	}
	if !ip.IsIndex() {
		return rep
	}

	idx, err := page.ParseIndexPage(ip)
	if err != nil {
		rep.IndexError = err.Error()
		return rep
	}
	for _, w := range idx.Warnings {
		rep.Warnings = append(rep.Warnings, w.Error())
	}
	ir := &IndexReport{
		Header:      idx.Hdr,
		Direction:   idx.Hdr.Direction.String(),
		Format:      idx.Hdr.Format.String(),
		Fseg:        idx.Fseg,
		Directory:   idx.DirSlots,
		Infimum:     headerView(idx.Infimum),
		Supremum:    headerView(idx.Supremum),
		IsLeaf:      idx.IsLeaf(),
		IsRoot:      idx.IsRoot(),
		UsedBytes:   idx.UsedBytes(),
		RecordCount: int(idx.Hdr.NumUserRecs),
	}
	rep.Index = ir

	if !opts.Records || dec == nil {
		return rep
	}
	recs, err := idx.RecordsWith(dec)
	if err != nil {
		ir.ChainError = err.Error()
	}
	ir.RecordCount = len(recs)
	for i := range recs {
		if recs[i].Err != nil {
			ir.RecordErrors++
		}
	}
	if opts.MaxRecords > 0 && len(recs) > opts.MaxRecords {
		recs = recs[:opts.MaxRecords]
	}
	ir.Raw = recs
	ir.Records = make([]RecordView, len(recs))
	for i := range recs {
		ir.Records[i] = NewRecordView(&recs[i])
	}
	return rep
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/wilhasse/go-ibdparse/format"
	"github.com/wilhasse/go-ibdparse/inspect"
)

type outputOptions struct {
	records bool
	verbose bool
}

func outputText(w io.Writer, rep *inspect.PageReport, opts outputOptions) {
	fmt.Fprintf(w, "=== Page %d ===\n", rep.PageNo)
	if rep.Err != nil {
		fmt.Fprintf(w, "Error: %v\n", rep.Err)
		return
	}
	h := rep.Header
	fmt.Fprintf(w, "\nFIL Header:\n")
	fmt.Fprintf(w, "  Checksum:    0x%08x (%s)\n", h.Checksum, rep.Checksum)
	fmt.Fprintf(w, "  Page Number: %d\n", h.PageNumber)
	fmt.Fprintf(w, "  Page Type:   %s (0x%04x)\n", rep.TypeName, uint16(h.PageType))
	fmt.Fprintf(w, "  Space ID:    %d\n", h.SpaceID)
	fmt.Fprintf(w, "  LSN:         %d\n", h.LastModLSN)
	fmt.Fprintf(w, "  Prev Page:   %s\n", pageRef(h.PrevPage()))
	fmt.Fprintf(w, "  Next Page:   %s\n", pageRef(h.NextPage()))
	if opts.verbose {
		fmt.Fprintf(w, "  Flush LSN:   %d\n", h.FlushLSN)
	}

	fmt.Fprintf(w, "\nFIL Trailer:\n")
	fmt.Fprintf(w, "  Checksum:    0x%08x\n", rep.Trailer.Checksum)
	fmt.Fprintf(w, "  Low32 LSN:   0x%08x\n", rep.Trailer.Low32LSN)

	for _, warn := range rep.Warnings {
		fmt.Fprintf(w, "\nWarning: %s\n", warn)
	}
	if rep.IndexError != "" {
		fmt.Fprintf(w, "\nError parsing as index page: %s\n", rep.IndexError)
		return
	}
	ir := rep.Index
	if ir == nil {
		return
	}

	fmt.Fprintf(w, "\nIndex Header:\n")
	fmt.Fprintf(w, "  Format:      %s\n", strings.ToUpper(ir.Format))
	fmt.Fprintf(w, "  Records:     %d user records\n", ir.Header.NumUserRecs)
	fmt.Fprintf(w, "  Heap Recs:   %d\n", ir.Header.NumHeapRecs)
	fmt.Fprintf(w, "  Dir Slots:   %d\n", ir.Header.NumDirSlots)
	fmt.Fprintf(w, "  Heap Top:    %d\n", ir.Header.HeapTop)
	fmt.Fprintf(w, "  Garbage:     %d bytes\n", ir.Header.GarbageSpace)
	fmt.Fprintf(w, "  Page Level:  %d %s\n", ir.Header.PageLevel, leafOrInternal(ir))
	fmt.Fprintf(w, "  Index ID:    %d\n", ir.Header.IndexID)
	if opts.verbose {
		fmt.Fprintf(w, "  Max Trx ID:  %d\n", ir.Header.MaxTrxID)
		fmt.Fprintf(w, "  Direction:   %s (%d)\n", strings.ToUpper(ir.Direction), ir.Header.DirectionRaw)
		fmt.Fprintf(w, "  N Direction: %d\n", ir.Header.NumInsertsInDirection)
		fmt.Fprintf(w, "  Directory:   %v\n", ir.Directory)
		fmt.Fprintf(w, "  Infimum:     next=%d owned=%d\n", ir.Infimum.Next, ir.Infimum.NumOwned)
		fmt.Fprintf(w, "  Supremum:    next=%d owned=%d\n", ir.Supremum.Next, ir.Supremum.NumOwned)
		if !ir.Fseg.IsZero() {
			fmt.Fprintf(w, "  Leaf Fseg:   space=%d page=%d off=%d\n",
				ir.Fseg.LeafInodeSpace, ir.Fseg.LeafInodePage, ir.Fseg.LeafInodeOff)
			fmt.Fprintf(w, "  Node Fseg:   space=%d page=%d off=%d\n",
				ir.Fseg.NonLeafInodeSpace, ir.Fseg.NonLeafInodePage, ir.Fseg.NonLeafInodeOff)
		}
	}

	fmt.Fprintf(w, "\nPage Usage:  %d / %d bytes (%.1f%%)\n",
		ir.UsedBytes, format.PageSize, float64(ir.UsedBytes)*100/float64(format.PageSize))

	if !opts.records {
		return
	}
	fmt.Fprintf(w, "\nRecords:\n")
	if ir.ChainError != "" {
		fmt.Fprintf(w, "  Error walking records: %s\n", ir.ChainError)
	}
	if len(ir.Records) == 0 {
		fmt.Fprintf(w, "  (none)\n")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  #\tOffset\tHeap#\tType\tDeleted")
	if opts.verbose {
		fmt.Fprintf(tw, "\tOwned\tNext\tTrx ID\tRoll Ptr")
	}
	for _, f := range ir.Records[0].Fields {
		fmt.Fprintf(tw, "\t%s", f.Name)
	}
	if ir.Records[0].ChildPage != nil {
		fmt.Fprintf(tw, "\tchild")
	}
	fmt.Fprintln(tw)

	for i, rec := range ir.Records {
		fmt.Fprintf(tw, "  %d\t%d\t%d\t%s\t%v", i, rec.Offset, rec.HeapNo, rec.Type, rec.Deleted)
		if opts.verbose {
			fmt.Fprintf(tw, "\t%d\t%d\t%d\t0x%014x", rec.NumOwned, rec.Next, rec.TrxID, rec.RollPtr)
		}
		for _, f := range rec.Fields {
			fmt.Fprintf(tw, "\t%s", formatValue(f.Value))
		}
		if rec.ChildPage != nil {
			fmt.Fprintf(tw, "\t%d", *rec.ChildPage)
		}
		if rec.Error != "" {
			fmt.Fprintf(tw, "\tERROR: %s", rec.Error)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()

	if len(ir.Records) < ir.RecordCount {
		fmt.Fprintf(w, "  ... (showing first %d of %d records)\n", len(ir.Records), ir.RecordCount)
	}
	if ir.RecordErrors > 0 {
		fmt.Fprintf(w, "  %d records failed to decode\n", ir.RecordErrors)
	}
}

func outputSummary(w io.Writer, rep *inspect.PageReport) {
	if rep.Err != nil {
		fmt.Fprintf(w, "Page %d: error=%v\n", rep.PageNo, rep.Err)
		return
	}
	fmt.Fprintf(w, "Page %d: Type=%s, Space=%d, LSN=%d, Checksum=%s",
		rep.PageNo, rep.TypeName, rep.Header.SpaceID, rep.Header.LastModLSN, rep.Checksum)
	if ir := rep.Index; ir != nil {
		fmt.Fprintf(w, ", Records=%d, Level=%d, IndexID=%d",
			ir.Header.NumUserRecs, ir.Header.PageLevel, ir.Header.IndexID)
	}
	if n := len(rep.Warnings); n > 0 {
		fmt.Fprintf(w, ", Warnings=%d", n)
	}
	fmt.Fprintln(w)
}

func outputJSON(w io.Writer, reps []*inspect.PageReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if len(reps) == 1 {
		return encoder.Encode(reps[0])
	}
	return encoder.Encode(reps)
}

func pageRef(n uint32, ok bool) string {
	if !ok {
		return "NULL"
	}
	return fmt.Sprintf("%d", n)
}

func leafOrInternal(ir *inspect.IndexReport) string {
	if ir.IsLeaf {
		if ir.IsRoot {
			return "(root leaf)"
		}
		return "(leaf)"
	}
	if ir.IsRoot {
		return "(root internal)"
	}
	return "(internal)"
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return fmt.Sprintf("0x%x", val)
	case string:
		return fmt.Sprintf("%q", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// iterator.go - Record chain traversal between the sentinel records
package record

import (
	"fmt"

	"github.com/wilhasse/go-ibdparse/format"
)

// ChainSlack is added to a page's n_recs to bound a chain walk.
const ChainSlack = 16

// DefaultLimit returns the walk limit for a page holding nRecs user records.
func DefaultLimit(nRecs uint16) int {
	return int(nRecs) + ChainSlack
}

// Sentinels decodes the Infimum and Supremum headers at the first and last
// directory slot.
func Sentinels(p []byte, dir []uint16) (infimum, supremum RecordHeader, err error) {
	if len(dir) < 2 {
		return infimum, supremum, format.ErrDirectoryTooSmall
	}
	infimum, err = ParseRecordHeader(p, int(dir[0]))
	if err != nil {
		return infimum, supremum, fmt.Errorf("infimum: %w", err)
	}
	supremum, err = ParseRecordHeader(p, int(dir[len(dir)-1]))
	if err != nil {
		return infimum, supremum, fmt.Errorf("supremum: %w", err)
	}
	return infimum, supremum, nil
}

// WalkChain follows the next pointers from Infimum and calls visit with the
// header of every user record, in chain order. The walk ends when the
// cursor equals Supremum's own next value. More than limit records yield a
// *format.NonTerminatingChainError; a header outside the page stops the walk
// with an error. Records visited before a failure stay visited. A non-nil
// error from visit stops the walk and is returned as is.
func WalkChain(p []byte, dir []uint16, limit int, visit func(RecordHeader) error) (int, error) {
	infimum, supremum, err := Sentinels(p, dir)
	if err != nil {
		return 0, err
	}

	visited := 0
	cursor := infimum.Next
	for cursor != supremum.Next {
		if visited >= limit {
			return visited, &format.NonTerminatingChainError{Limit: limit, Visited: visited, Cursor: cursor}
		}
		hdr, err := ParseRecordHeader(p, int(cursor))
		if err != nil {
			return visited, fmt.Errorf("chain after %d records: %w", visited, err)
		}
		if err := visit(hdr); err != nil {
			return visited, err
		}
		visited++
		cursor = hdr.Next
	}
	return visited, nil
}

// Headers collects the user record headers of the chain.
func Headers(p []byte, dir []uint16, limit int) ([]RecordHeader, error) {
	var out []RecordHeader
	_, err := WalkChain(p, dir, limit, func(h RecordHeader) error {
		out = append(out, h)
		return nil
	})
	return out, err
}

// errors.go - Error kinds shared by the page, record and column packages
package format

import (
	"errors"
	"fmt"
)

var (
	ErrShortRead         = errors.New("short read")
	ErrNotIndexPage      = errors.New("not an INDEX page")
	ErrDirectoryTooSmall = errors.New("page directory needs at least infimum and supremum slots")
	ErrBadSlot           = errors.New("directory slot out of page bounds")
	ErrExternField       = errors.New("column stored off page")
	ErrInvalidText       = errors.New("invalid utf-8 text")
	ErrRedundantFormat   = errors.New("redundant row format")
)

// TruncatedPageError reports a read that returned fewer bytes than a page.
type TruncatedPageError struct {
	PageNo uint32
	Got    int
	Want   int
}

func (e *TruncatedPageError) Error() string {
	return fmt.Sprintf("page %d truncated: got %d of %d bytes", e.PageNo, e.Got, e.Want)
}

// UnknownPageTypeWarning is returned alongside a usable result when a page
// type code is not registered, neither as stored nor byte-swapped.
type UnknownPageTypeWarning struct {
	Raw     uint16
	Swapped uint16
}

func (w *UnknownPageTypeWarning) Error() string {
	return fmt.Sprintf("unknown page type 0x%04x (byte-swapped 0x%04x)", w.Raw, w.Swapped)
}

// RecordDecodeError is attached to a single record whose body could not be
// decoded. The record header stays valid.
type RecordDecodeError struct {
	Offset int
	Column string
	Err    error
}

func (e *RecordDecodeError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("record at %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("record at %d, column %s: %v", e.Offset, e.Column, e.Err)
}

func (e *RecordDecodeError) Unwrap() error { return e.Err }

// NonTerminatingChainError reports a record chain that did not reach the
// supremum within the walk limit.
type NonTerminatingChainError struct {
	Limit   int
	Visited int
	Cursor  uint16
}

func (e *NonTerminatingChainError) Error() string {
	return fmt.Sprintf("record chain did not terminate after %d records (limit %d, cursor %d)",
		e.Visited, e.Limit, e.Cursor)
}

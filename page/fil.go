// fil.go - FIL header and trailer parsing for InnoDB pages
package page

import (
	"fmt"

	"github.com/wilhasse/go-ibdparse/format"
)

// FilHeader is the 38-byte header at the start of every page.
type FilHeader struct {
	Checksum   uint32
	PageNumber uint32
	Prev       uint32 // format.FilNull when there is none
	Next       uint32
	LastModLSN uint64
	PageType   format.PageType // raw code, see format.ResolvePageType
	FlushLSN   uint64
	SpaceID    uint32
}

func ParseFilHeader(p []byte) (FilHeader, error) {
	if len(p) < format.FilHeaderSize {
		return FilHeader{}, fmt.Errorf("short FIL header: %d bytes: %w", len(p), format.ErrShortRead)
	}
	chk, _ := format.Be32(p, 0)
	pg, _ := format.Be32(p, 4)
	prev, _ := format.Be32(p, 8)
	next, _ := format.Be32(p, 12)
	lsn, _ := format.Be64(p, 16)
	pt, _ := format.Be16(p, 24)
	flush, _ := format.Be64(p, 26)
	space, _ := format.Be32(p, 34)
	return FilHeader{
		Checksum: chk, PageNumber: pg, Prev: prev, Next: next,
		LastModLSN: lsn, PageType: format.PageType(pt), FlushLSN: flush, SpaceID: space,
	}, nil
}

// Encode writes the header into the first 38 bytes of p.
func (h FilHeader) Encode(p []byte) error {
	if len(p) < format.FilHeaderSize {
		return fmt.Errorf("short FIL header: %d bytes: %w", len(p), format.ErrShortRead)
	}
	format.PutBe32(p, 0, h.Checksum)
	format.PutBe32(p, 4, h.PageNumber)
	format.PutBe32(p, 8, h.Prev)
	format.PutBe32(p, 12, h.Next)
	format.PutBe64(p, 16, h.LastModLSN)
	format.PutBe16(p, 24, uint16(h.PageType))
	format.PutBe64(p, 26, h.FlushLSN)
	format.PutBe32(p, 34, h.SpaceID)
	return nil
}

// PrevPage returns the previous page in the level, if any.
func (h FilHeader) PrevPage() (uint32, bool) { return h.Prev, h.Prev != format.FilNull }

// NextPage returns the next page in the level, if any.
func (h FilHeader) NextPage() (uint32, bool) { return h.Next, h.Next != format.FilNull }

// FilTrailer is the last 8 bytes of a page.
type FilTrailer struct {
	Checksum uint32 // old-style checksum
	Low32LSN uint32
}

func ParseFilTrailer(p []byte) (FilTrailer, error) {
	if len(p) < format.PageSize {
		return FilTrailer{}, fmt.Errorf("short page: %d bytes: %w", len(p), format.ErrShortRead)
	}
	off := format.PageSize - format.FilTrailerSize
	chk, _ := format.Be32(p, off+0)
	lsn, _ := format.Be32(p, off+4)
	return FilTrailer{Checksum: chk, Low32LSN: lsn}, nil
}

// Encode writes the trailer into the last 8 bytes of a page.
func (t FilTrailer) Encode(p []byte) error {
	if len(p) < format.PageSize {
		return fmt.Errorf("short page: %d bytes: %w", len(p), format.ErrShortRead)
	}
	off := format.PageSize - format.FilTrailerSize
	format.PutBe32(p, off, t.Checksum)
	format.PutBe32(p, off+4, t.Low32LSN)
	return nil
}

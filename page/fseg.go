// fseg.go - File segment header parsing
package page

import (
	"fmt"

	"github.com/wilhasse/go-ibdparse/format"
)

// FsegHeader is the 20-byte file segment header following the index header.
// Only the root page of an index fills it in; others are zero.
type FsegHeader struct {
	LeafInodeSpace    uint32
	LeafInodePage     uint32
	LeafInodeOff      uint16
	NonLeafInodeSpace uint32
	NonLeafInodePage  uint32
	NonLeafInodeOff   uint16
}

func ParseFsegHeader(p []byte, off int) (FsegHeader, error) {
	if off < 0 || off+format.FsegHeaderSize > len(p) {
		return FsegHeader{}, fmt.Errorf("short fseg header: %w", format.ErrShortRead)
	}
	lsp, _ := format.Be32(p, off+0)
	lpg, _ := format.Be32(p, off+4)
	lof, _ := format.Be16(p, off+8)
	nsp, _ := format.Be32(p, off+10)
	npg, _ := format.Be32(p, off+14)
	nof, _ := format.Be16(p, off+18)
	return FsegHeader{
		LeafInodeSpace: lsp, LeafInodePage: lpg, LeafInodeOff: lof,
		NonLeafInodeSpace: nsp, NonLeafInodePage: npg, NonLeafInodeOff: nof,
	}, nil
}

// IsZero reports whether the header is unused.
func (h FsegHeader) IsZero() bool { return h == FsegHeader{} }

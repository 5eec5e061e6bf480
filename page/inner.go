// inner.go - Base page: FIL header + body + FIL trailer (exactly 16 KiB)
package page

import (
	"fmt"

	"github.com/wilhasse/go-ibdparse/format"
)

// LSNMismatchWarning reports a trailer whose low LSN bits disagree with the
// header, typical of a torn write.
type LSNMismatchWarning struct {
	Header  uint32
	Trailer uint32
}

func (w *LSNMismatchWarning) Error() string {
	return fmt.Sprintf("low32 LSN mismatch: hdr=%#x trl=%#x", w.Header, w.Trailer)
}

// ChecksumWarning reports a page whose stored checksum does not verify.
type ChecksumWarning struct {
	Stored   uint32
	Computed uint32
}

func (w *ChecksumWarning) Error() string {
	return fmt.Sprintf("checksum mismatch: stored=%#x crc32c=%#x", w.Stored, w.Computed)
}

// InnerPage is one decoded page. Warnings lists non-fatal conditions found
// while decoding; the page stays usable.
type InnerPage struct {
	PageNo   uint32
	FIL      FilHeader
	Trailer  FilTrailer
	Type     format.ResolvedPageType
	Checksum ChecksumStatus
	Warnings []error
	Data     []byte // full 16KiB page bytes
}

// NewInnerPage decodes the page header and trailer of buf.
func NewInnerPage(pageNo uint32, buf []byte) (*InnerPage, error) {
	if len(buf) != format.PageSize {
		return nil, &format.TruncatedPageError{PageNo: pageNo, Got: len(buf), Want: format.PageSize}
	}
	h, err := ParseFilHeader(buf)
	if err != nil {
		return nil, err
	}
	t, err := ParseFilTrailer(buf)
	if err != nil {
		return nil, err
	}
	ip := &InnerPage{PageNo: pageNo, FIL: h, Trailer: t, Data: buf}

	rt, warn := format.ResolvePageType(uint16(h.PageType))
	ip.Type = rt
	if warn != nil {
		ip.Warnings = append(ip.Warnings, warn)
	}
	if uint32(h.LastModLSN) != t.Low32LSN {
		ip.Warnings = append(ip.Warnings, &LSNMismatchWarning{Header: uint32(h.LastModLSN), Trailer: t.Low32LSN})
	}
	ip.Checksum = VerifyChecksum(buf)
	if ip.Checksum == ChecksumMismatch {
		ip.Warnings = append(ip.Warnings, &ChecksumWarning{Stored: h.Checksum, Computed: Crc32Checksum(buf)})
	}
	return ip, nil
}

// PageType returns the resolved page type, ALLOCATED for unknown codes.
func (ip *InnerPage) PageType() format.PageType { return ip.Type.Effective() }

// IsIndex reports whether the page resolved to an INDEX page.
func (ip *InnerPage) IsIndex() bool { return ip.Type.Is(format.PageTypeIndex) }

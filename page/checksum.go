// checksum.go - Page checksum verification
package page

import (
	"hash/crc32"

	"github.com/wilhasse/go-ibdparse/format"
)

// ChecksumNone is written by servers running with checksums disabled.
const ChecksumNone uint32 = 0xDEADBEEF

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// ChecksumStatus is the outcome of VerifyChecksum.
type ChecksumStatus uint8

const (
	ChecksumValid ChecksumStatus = iota
	ChecksumDisabled
	ChecksumEmptyPage
	ChecksumMismatch
)

func (s ChecksumStatus) String() string {
	switch s {
	case ChecksumValid:
		return "crc32c"
	case ChecksumDisabled:
		return "none"
	case ChecksumEmptyPage:
		return "empty"
	default:
		return "mismatch"
	}
}

// Crc32Checksum computes the CRC-32C page checksum: the checksum of the
// header after the checksum field up to the flush LSN, xored with the
// checksum of the body up to the trailer.
func Crc32Checksum(p []byte) uint32 {
	head := crc32.Checksum(p[4:26], castagnoli)
	body := crc32.Checksum(p[format.FilHeaderSize:format.PageSize-format.FilTrailerSize], castagnoli)
	return head ^ body
}

// VerifyChecksum checks the stored checksum of a full page.
func VerifyChecksum(p []byte) ChecksumStatus {
	stored, _ := format.Be32(p, 0)
	switch {
	case stored == ChecksumNone:
		return ChecksumDisabled
	case stored == Crc32Checksum(p):
		return ChecksumValid
	case isZero(p):
		return ChecksumEmptyPage
	default:
		return ChecksumMismatch
	}
}

func isZero(p []byte) bool {
	for _, b := range p {
		if b != 0 {
			return false
		}
	}
	return true
}

// types.go - Page geometry, page types and enums shared by every package
package format

// Sizes and constants
const (
	PageSize          = 16 * 1024 // 16384
	FilHeaderSize     = 38
	FilTrailerSize    = 8
	RecordHeaderSize  = 5 // compact header (3B bits + 2B next)
	SystemRecordBytes = 8 // "infimum\x00" or "supremum" literal
	PageDirSlotSize   = 2

	// Index (page) header = 36 bytes
	// FSEG header (immediately after) = 20 bytes
	IndexHeaderSize = 36
	FsegHeaderSize  = 20
	PageHeaderSize  = IndexHeaderSize + FsegHeaderSize
	PageDataOff     = FilHeaderSize + PageHeaderSize

	// Sentinel records sit at fixed offsets because both the page header and
	// the infimum record have fixed sizes. Only valid for 16 KiB compact pages.
	InfimumOffset  = PageDataOff + RecordHeaderSize                       // 99
	SupremumOffset = InfimumOffset + SystemRecordBytes + RecordHeaderSize // 112
	UserDataOff    = SupremumOffset + SystemRecordBytes                   // 120
	DirectoryEnd   = PageSize - FilTrailerSize

	FilNull = uint32(0xFFFFFFFF)
)

type PageFormat uint8

const (
	FormatRedundant PageFormat = 0
	FormatCompact   PageFormat = 1
)

func (f PageFormat) String() string {
	if f == FormatCompact {
		return "compact"
	}
	return "redundant"
}

// PageDirection is the insert direction recorded in the index header.
// Only right (1) and left (2) are distinguished; every other raw value
// reads as no direction.
type PageDirection uint8

const (
	DirNoDirection PageDirection = iota
	DirRight
	DirLeft
)

// DirectionFromRaw maps the raw 16-bit PAGE_DIRECTION value.
func DirectionFromRaw(raw uint16) PageDirection {
	switch raw {
	case 1:
		return DirRight
	case 2:
		return DirLeft
	default:
		return DirNoDirection
	}
}

func (d PageDirection) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	default:
		return "no_direction"
	}
}

type RecordType uint8

const (
	RecConventional RecordType = 0
	RecNodePointer  RecordType = 1
	RecInfimum      RecordType = 2
	RecSupremum     RecordType = 3
)

func (t RecordType) String() string {
	switch t {
	case RecConventional:
		return "conventional"
	case RecNodePointer:
		return "node_pointer"
	case RecInfimum:
		return "infimum"
	case RecSupremum:
		return "supremum"
	default:
		return "unknown"
	}
}

var (
	LitInfimum  = []byte("infimum\x00")
	LitSupremum = []byte("supremum")
)

// pagetype.go - Page type codes and the byte-swap tolerant resolver
package format

import "fmt"

// PageType is the raw FIL_PAGE_TYPE code.
type PageType uint16

const (
	PageTypeAllocated    PageType = 0
	PageTypeUndoLog      PageType = 2
	PageTypeInode        PageType = 3
	PageTypeIbufFreeList PageType = 4
	PageTypeIbufBitmap   PageType = 5
	PageTypeSys          PageType = 6
	PageTypeTrxSys       PageType = 7
	PageTypeFspHdr       PageType = 8
	PageTypeXdes         PageType = 9
	PageTypeBlob         PageType = 10
	PageTypeSDI          PageType = 17853 // 0x45BD
	PageTypeRTree        PageType = 17854 // 0x45BE
	PageTypeIndex        PageType = 17855 // 0x45BF
)

var pageTypeNames = map[PageType]string{
	PageTypeAllocated:    "ALLOCATED",
	PageTypeUndoLog:      "UNDO_LOG",
	PageTypeInode:        "INODE",
	PageTypeIbufFreeList: "IBUF_FREE_LIST",
	PageTypeIbufBitmap:   "IBUF_BITMAP",
	PageTypeSys:          "SYS",
	PageTypeTrxSys:       "TRX_SYS",
	PageTypeFspHdr:       "FSP_HDR",
	PageTypeXdes:         "XDES",
	PageTypeBlob:         "BLOB",
	PageTypeSDI:          "SDI",
	PageTypeRTree:        "RTREE",
	PageTypeIndex:        "INDEX",
}

// Known reports whether t is one of the registered page types.
func (t PageType) Known() bool {
	_, ok := pageTypeNames[t]
	return ok
}

func (t PageType) String() string {
	if name, ok := pageTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%04x)", uint16(t))
}

// ResolvedPageType is the outcome of ResolvePageType. When Unknown is set,
// Type holds the raw code unchanged.
type ResolvedPageType struct {
	Raw         uint16
	Type        PageType
	ByteSwapped bool
	Unknown     bool
}

// Effective returns the resolved tag, falling back to ALLOCATED for codes
// that matched neither as stored nor byte-swapped.
func (r ResolvedPageType) Effective() PageType {
	if r.Unknown {
		return PageTypeAllocated
	}
	return r.Type
}

// Is reports whether the page resolved to the given known type.
func (r ResolvedPageType) Is(t PageType) bool {
	return !r.Unknown && r.Type == t
}

func (r ResolvedPageType) String() string {
	if r.Unknown {
		return PageType(r.Raw).String()
	}
	if r.ByteSwapped {
		return fmt.Sprintf("%s (byte-swapped 0x%04x)", r.Type, r.Raw)
	}
	return r.Type.String()
}

// SwapBytes16 exchanges the two bytes of a 16-bit code.
func SwapBytes16(v uint16) uint16 {
	return ((v & 0xFF) << 8) | ((v & 0xFF00) >> 8)
}

// ResolvePageType maps a raw type code to a known page type. The code is
// tried as stored, then byte-swapped. If neither matches, the result is
// marked Unknown and a non-nil *UnknownPageTypeWarning is returned; the
// warning is informational and callers keep processing the page.
func ResolvePageType(code uint16) (ResolvedPageType, error) {
	if t := PageType(code); t.Known() {
		return ResolvedPageType{Raw: code, Type: t}, nil
	}
	swapped := SwapBytes16(code)
	if t := PageType(swapped); t.Known() {
		return ResolvedPageType{Raw: code, Type: t, ByteSwapped: true}, nil
	}
	return ResolvedPageType{Raw: code, Type: PageType(code), Unknown: true},
		&UnknownPageTypeWarning{Raw: code, Swapped: swapped}
}

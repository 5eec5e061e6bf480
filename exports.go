// exports.go - Re-exports for main package API
package ibdparse

import (
	"github.com/wilhasse/go-ibdparse/format"
	"github.com/wilhasse/go-ibdparse/page"
	"github.com/wilhasse/go-ibdparse/record"
	"github.com/wilhasse/go-ibdparse/schema"
)

// Re-export types from format package
type (
	PageType      = format.PageType
	PageFormat    = format.PageFormat
	PageDirection = format.PageDirection
	RecordType    = format.RecordType
)

// Re-export constants from format package
const (
	PageSize          = format.PageSize
	PageTypeIndex     = format.PageTypeIndex
	PageTypeUndoLog   = format.PageTypeUndoLog
	PageTypeAllocated = format.PageTypeAllocated
	PageTypeFspHdr    = format.PageTypeFspHdr
	FormatCompact     = format.FormatCompact
	FormatRedundant   = format.FormatRedundant
	RecConventional   = format.RecConventional
	RecNodePointer    = format.RecNodePointer
	RecInfimum        = format.RecInfimum
	RecSupremum       = format.RecSupremum
	DirLeft           = format.DirLeft
	DirRight          = format.DirRight
	DirNoDirection    = format.DirNoDirection
)

// Re-export types from page package
type (
	InnerPage  = page.InnerPage
	IndexPage  = page.IndexPage
	FilHeader  = page.FilHeader
	FilTrailer = page.FilTrailer
	FsegHeader = page.FsegHeader
	PageReader = page.PageReader
	FileStore  = page.FileStore
)

// Re-export functions from page package
var (
	NewPageReader   = page.NewPageReader
	OpenFile        = page.OpenFile
	NewInnerPage    = page.NewInnerPage
	ParseIndexPage  = page.ParseIndexPage
	ParseFilHeader  = page.ParseFilHeader
	ParseFilTrailer = page.ParseFilTrailer
	ParseFsegHeader = page.ParseFsegHeader
	VerifyChecksum  = page.VerifyChecksum
)

// Re-export types from record and schema packages
type (
	RecordHeader = record.RecordHeader
	IndexHeader  = record.IndexHeader
	Record       = record.Record
	RowDecoder   = record.RowDecoder
	RowSchema    = schema.RowSchema
	Column       = schema.Column
)

// Re-export functions from record and schema packages
var (
	ParseRecordHeader = record.ParseRecordHeader
	ParseIndexHeader  = record.ParseIndexHeader
	NewRowDecoder     = record.NewRowDecoder
	SchemaFromSQL     = schema.FromSQL
	UsersSchema       = schema.Users
)

// WalkRecords decodes the user records of p with s. Node pointer pages
// decode to key columns plus child page numbers.
func WalkRecords(p *IndexPage, s *RowSchema) ([]Record, error) {
	return p.Records(s)
}

// Package ibdparse decodes InnoDB 16 KiB data file pages.
//
// The library is organized into packages:
//
// Core Types and Constants:
//   - format: page geometry, page type registry, big-endian helpers, error kinds
//
// Page Structure Components:
//   - page: FIL header and trailer, checksums, INDEX pages, page directory,
//     page readers over files
//
// Record Handling:
//   - record: compact record headers, the index header, record chain walk,
//     schema driven row decoding and encoding
//   - schema: row schemas, built in or derived from CREATE TABLE statements
//   - column: per-type column value parsers
//
// Inspection:
//   - inspect: cached, parallel page reports for tools
//
// Basic usage:
//
//	store, _ := ibdparse.OpenFile("users.ibd")
//	defer store.Close()
//
//	ip, _ := store.ReadPage(3)
//	if ip.IsIndex() {
//	    idx, _ := ibdparse.ParseIndexPage(ip)
//	    records, _ := idx.Records(ibdparse.UsersSchema())
//	}
package ibdparse

// reader.go - Page reader for reading from InnoDB data files
package page

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wilhasse/go-ibdparse/format"
)

// PageReader reads whole pages with one positioned read each. It holds no
// state besides the reader, so it is safe for concurrent use when r is.
type PageReader struct {
	r io.ReaderAt
}

func NewPageReader(r io.ReaderAt) *PageReader { return &PageReader{r: r} }

// ReadRaw returns the bytes of page pageNo.
func (pr *PageReader) ReadRaw(pageNo uint32) ([]byte, error) {
	buf := make([]byte, format.PageSize)
	off := int64(pageNo) * int64(format.PageSize)
	n, err := pr.r.ReadAt(buf, off)
	if n == format.PageSize {
		return buf, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return nil, &format.TruncatedPageError{PageNo: pageNo, Got: n, Want: format.PageSize}
	}
	return nil, fmt.Errorf("read page %d: %w", pageNo, err)
}

// ReadPage reads and decodes page pageNo.
func (pr *PageReader) ReadPage(pageNo uint32) (*InnerPage, error) {
	buf, err := pr.ReadRaw(pageNo)
	if err != nil {
		return nil, err
	}
	return NewInnerPage(pageNo, buf)
}

// FileStore is a PageReader over a tablespace file.
type FileStore struct {
	*PageReader
	f    *os.File
	size int64
}

// OpenFile opens a tablespace file for reading.
func OpenFile(path string) (*FileStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &FileStore{PageReader: NewPageReader(f), f: f, size: st.Size()}, nil
}

// Size returns the file size in bytes.
func (fs *FileStore) Size() int64 { return fs.size }

// NumPages returns the number of whole pages in the file.
func (fs *FileStore) NumPages() uint32 { return uint32(fs.size / format.PageSize) }

func (fs *FileStore) Close() error { return fs.f.Close() }

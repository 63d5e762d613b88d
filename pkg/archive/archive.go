// Package archive packs generated drafts into a single zip file.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
)

var (
	ErrEmptyName    = errors.New("archive entry name is empty")
	ErrDuplicate    = errors.New("duplicate archive entry")
	ErrOpenSource   = errors.New("failed to open archive source file")
	ErrWriteArchive = errors.New("failed to write archive")
	ErrReadArchive  = errors.New("failed to read archive")
	ErrNotFound     = errors.New("archive entry not found")
)

// Entry is a file on disk stored in the archive under Name.
// An empty Name uses the base name of Path.
type Entry struct {
	Name string
	Path string
}

func (e Entry) name() string {
	if e.Name != "" {
		return e.Name
	}
	return filepath.Base(e.Path)
}

// Write deflates every entry into a zip stream written to w.
func Write(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		name := e.name()
		if name == "" || name == "." {
			_ = zw.Close()
			return ErrEmptyName
		}
		if _, ok := seen[name]; ok {
			_ = zw.Close()
			return fmt.Errorf("%w: %s", ErrDuplicate, name)
		}
		seen[name] = struct{}{}

		if err := addFile(zw, name, e.Path); err != nil {
			_ = zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return errors.Join(ErrWriteArchive, err)
	}
	return nil
}

func addFile(zw *zip.Writer, name, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOpenSource, err)
	}
	defer func() { _ = src.Close() }()

	modified := time.Now()
	if info, err := src.Stat(); err == nil {
		modified = info.ModTime()
	}

	dst, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return errors.Join(ErrWriteArchive, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return errors.Join(ErrWriteArchive, err)
	}
	return nil
}

// Bytes is Write into memory.
func Bytes(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Reader gives access to the entries of an archive.
type Reader struct {
	zr *zip.Reader
}

// NewReader opens an archive of the given size.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Join(ErrReadArchive, err)
	}
	return &Reader{zr: zr}, nil
}

// Names lists entry names in archive order.
func (r *Reader) Names() []string {
	names := make([]string, 0, len(r.zr.File))
	for _, f := range r.zr.File {
		names = append(names, f.Name)
	}
	return names
}

// Open returns the decompressed content of the named entry.
func (r *Reader) Open(name string) (io.ReadCloser, error) {
	for _, f := range r.zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Join(ErrReadArchive, err)
		}
		return rc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

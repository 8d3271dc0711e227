// Package filemap opens a file through a read-only memory mapping and hands
// tools its whole contents as a byte slice for wave.Mount. The contents are
// copied from the mapping into a heap buffer.
package filemap

import (
	"fmt"
	"os"

	"codeberg.org/go-mmap/mmap"
)

// File is a read-only memory-mapped file. Bytes returns the full contents as
// an ordinary heap byte slice copied from the mapping when Open ran; it is
// not a view of the mapping.
type File struct {
	file *mmap.File
	data []byte
}

// Open maps filename into memory and reads its full contents from that
// mapping into a plain heap byte slice. The returned File must be closed to
// release the mapping.
func Open(filename string) (*File, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("filemap: failed to stat %s: %w", filename, err)
	}

	f, err := mmap.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("filemap: failed to open %s: %w", filename, err)
	}

	buffer := make([]byte, info.Size())
	if _, err := f.ReadAt(buffer, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("filemap: failed to read %s: %w", filename, err)
	}

	return &File{file: f, data: buffer}, nil
}

// Bytes returns the file's contents as read by Open. The slice is a heap
// copy, so it stays valid after Close.
func (f *File) Bytes() []byte {
	return f.data
}

// Close unmaps the underlying file.
func (f *File) Close() error {
	return f.file.Close()
}

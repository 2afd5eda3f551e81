package streamio

import (
	"os"

	"github.com/machinefabric/byteconv-go"
)

// File is the file Kind: a named file on disk, opened lazily by the
// converters that produce a readable-channel or writable-channel from it
// (spec §4.F "file→readable-channel, file→writable-channel").
type File struct {
	Path string
}

// NewFile names path without opening it.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Open opens the file for reading.
func (f *File) Open() (*os.File, error) {
	return os.Open(f.Path)
}

// Create opens the file for writing, honoring the append? option (spec
// §3; default true).
func (f *File) Create(opts byteconv.Options) (*os.File, error) {
	if opts.Append() {
		return os.OpenFile(f.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}
	return os.OpenFile(f.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
}

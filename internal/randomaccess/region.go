// Package randomaccess is timegrep's random-access driver: it memory-maps
// a seekable file, runs two bounded binary searches to frame the matching
// byte range, and streams that range to an io.Writer in fixed-size chunks,
// releasing mapped pages behind the write cursor as it goes.
package randomaccess

import (
	"errors"
	"os"
	"syscall"
)

// ErrEmptyFile is returned when the file being mapped has zero length.
var ErrEmptyFile = errors.New("file is empty")

// Region is a read-only memory-mapped view of a file.
type Region struct {
	file *os.File
	data []byte
}

// Open maps path into memory for read-only access.
func Open(path string) (*Region, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.Size() == 0 {
		file.Close()
		return nil, ErrEmptyFile
	}

	data, err := syscall.Mmap(int(file.Fd()), 0, int(info.Size()), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &Region{file: file, data: data}, nil
}

// Bytes returns the mapped region. Callers must not retain slices of it
// past Close.
func (r *Region) Bytes() []byte {
	return r.data
}

// Close unmaps the region and closes the underlying file.
func (r *Region) Close() error {
	var err error
	if r.data != nil {
		if unmapErr := syscall.Munmap(r.data); unmapErr != nil {
			err = unmapErr
		}
		r.data = nil
	}
	if r.file != nil {
		if closeErr := r.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.file = nil
	}
	return err
}

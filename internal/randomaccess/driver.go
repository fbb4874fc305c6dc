package randomaccess

import (
	"errors"
	"io"
	"os"

	"timegrep/internal/search"
	"timegrep/internal/status"
	"timegrep/internal/tsextract"
)

// errSearch is reported when a binary search step fails with an
// unrecoverable error (e.g. an extraction error propagated from the
// matcher).
var errSearch = errors.New("search failed")

// DefaultChunkSize is the emit chunk size, chosen to be a multiple of the
// typical 4 KiB page size so release-behind always lands on page
// boundaries.
const DefaultChunkSize = 512 * 1024

// Run frames the byte range covering [start, stop) in region and writes it
// to w in chunks of chunkSize, releasing mapped pages behind the write
// cursor as it goes. chunkSize must be a positive multiple of the system
// page size; callers passing 0 get DefaultChunkSize.
//
// Returns status.Found if any bytes were emitted, status.NotFound if the
// search for start failed to locate anything in range.
func Run(w io.Writer, region *Region, extractor *tsextract.Extractor, start, stop int64, chunkSize int) (status.Status, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	data := region.Bytes()

	p0, st := search.Bounded(data, extractor, start, 0)
	if st == status.Error {
		return status.Error, errSearch
	}
	if st != status.Found {
		return status.NotFound, nil
	}

	p1, st := search.Bounded(data, extractor, stop, p0)
	if st == status.Error {
		return status.Error, errSearch
	}
	if st != status.Found {
		p1 = len(data)
	}

	if p1 <= p0 {
		return status.NotFound, nil
	}

	if err := emit(w, data, p0, p1, chunkSize); err != nil {
		return status.Error, err
	}

	if p1 == len(data) && (len(data) == 0 || data[len(data)-1] != '\n') {
		if err := writeAll(w, []byte{'\n'}); err != nil {
			return status.Error, err
		}
	}

	return status.Found, nil
}

func emit(w io.Writer, data []byte, p0, p1, chunkSize int) error {
	pageSize := os.Getpagesize()
	releasedBoundary := alignDown(p0, pageSize)

	cursor := p0
	for cursor < p1 {
		end := cursor + chunkSize
		if end > p1 {
			end = p1
		}
		if err := writeAll(w, data[cursor:end]); err != nil {
			return err
		}
		cursor = end

		newBoundary := alignDown(cursor, pageSize)
		if newBoundary > releasedBoundary {
			releasePages(data, releasedBoundary, newBoundary)
			releasedBoundary = newBoundary
		}
	}
	return nil
}

func alignDown(offset, pageSize int) int {
	return offset - offset%pageSize
}

func writeAll(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}

// Package streaming is timegrep's streaming driver: a single forward pass
// over a non-seekable byte stream, with a growable framing buffer that
// compacts once the consumed prefix outgrows the live suffix.
package streaming

import (
	"bytes"
	"errors"
	"io"

	"timegrep/internal/status"
	"timegrep/internal/tsextract"
)

// errExtract is reported when the extractor fails with an unrecoverable
// error rather than a simple non-match.
var errExtract = errors.New("timestamp extraction failed")

// DefaultChunkSize is the frame's initial size and the smallest free tail
// kept before each read when no newline is yet buffered; a smaller free
// tail makes the frame grow by twice this amount.
const DefaultChunkSize = 64 * 1024

// Run reads lines from r, writing to w every line from the first one whose
// timestamp is >= start up to (but not including) the first one whose
// timestamp is >= stop.
//
// Returns status.Found if any byte was written, status.NotFound otherwise.
func Run(w io.Writer, r io.Reader, extractor *tsextract.Extractor, start, stop int64, chunkSize int) (status.Status, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	data := make([]byte, chunkSize)
	lbound, ubound := 0, 0
	emitting := false
	emitted := false

	for {
		lineEnd, grew, err := nextLine(r, &data, lbound, &ubound, chunkSize)
		if err != nil {
			return status.Error, err
		}
		_ = grew
		if lineEnd < 0 {
			// Stream ended with no more bytes and no terminated line left.
			break
		}

		line := data[lbound:lineEnd]
		ts, est := extractor.Extract(line)

		switch est {
		case status.Found:
			if ts >= stop {
				return emittedStatus(emitted), nil
			}
			if !emitting && ts >= start {
				emitting = true
			}
		case status.Error:
			return status.Error, errExtract
		}

		if emitting {
			if err := writeAll(w, data[lbound:lineEnd+1]); err != nil {
				return status.Error, err
			}
			emitted = true
		}
		lbound = lineEnd + 1

		if ubound-lbound < lbound {
			copy(data, data[lbound:ubound])
			ubound -= lbound
			lbound = 0
		}
	}

	return emittedStatus(emitted), nil
}

func emittedStatus(emitted bool) status.Status {
	if emitted {
		return status.Found
	}
	return status.NotFound
}

// nextLine ensures data[lbound:ubound] contains a full line ending in '\n',
// growing and refilling the buffer from r as needed. It returns the offset
// of that '\n', or -1 if the stream ended before one was found.
func nextLine(r io.Reader, data *[]byte, lbound int, ubound *int, chunkSize int) (int, bool, error) {
	grew := false
	for {
		if idx := bytes.IndexByte((*data)[lbound:*ubound], '\n'); idx >= 0 {
			return lbound + idx, grew, nil
		}

		if len(*data)-*ubound < chunkSize {
			grown := make([]byte, len(*data)+2*chunkSize)
			copy(grown, (*data)[:*ubound])
			*data = grown
			grew = true
		}

		n, err := r.Read((*data)[*ubound:])
		if n > 0 {
			*ubound += n
		}
		if err == io.EOF {
			if n == 0 {
				return -1, grew, nil
			}
			continue
		}
		if err != nil {
			return 0, grew, err
		}
		if n == 0 {
			return -1, grew, nil
		}
	}
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

// Package lineloc finds the line containing a byte position inside a
// buffer, mirroring timegrep's get_string but returning a sum-typed result
// instead of writing through output parameters.
package lineloc

import (
	"bytes"

	"timegrep/internal/status"
)

// Result is the outcome of Locate.
type Result struct {
	Start  int
	Length int
}

// Locate returns the line containing data[position].
//
// status.NotFound means position itself lands on '\n'. status.Null means
// data has no '\n' anywhere, so the notion of "the containing line" is
// undetermined. status.Found carries the line's start offset and length,
// excluding the terminating '\n' if any.
func Locate(data []byte, position int) (Result, status.Status) {
	if position < 0 || position >= len(data) {
		return Result{}, status.NotFound
	}
	if data[position] == '\n' {
		return Result{}, status.NotFound
	}

	start := 0
	if idx := bytes.LastIndexByte(data[:position], '\n'); idx >= 0 {
		start = idx + 1
	}

	end := len(data)
	if idx := bytes.IndexByte(data[position:], '\n'); idx >= 0 {
		end = position + idx
	}

	if start == 0 && end == len(data) && bytes.IndexByte(data, '\n') < 0 {
		return Result{}, status.Null
	}

	return Result{Start: start, Length: end - start}, status.Found
}

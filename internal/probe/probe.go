// Package probe implements timegrep's forward search: starting from a byte
// position, walk forward line by line until one yields a timestamp or the
// upper bound is reached, skipping unparseable lines along the way.
package probe

import (
	"timegrep/internal/lineloc"
	"timegrep/internal/status"
	"timegrep/internal/tsextract"
)

// Result is the line and timestamp a successful probe lands on.
type Result struct {
	Start     int
	Length    int
	Timestamp int64
}

// Forward scans data starting at position, stopping at ubound, for the
// first line whose timestamp the extractor can read.
//
// status.Null propagates from the line locator when data has no newline
// at all. status.NotFound means no parseable timestamp was found before
// ubound. status.Error propagates an unrecoverable extraction error.
func Forward(data []byte, position, ubound int, extractor *tsextract.Extractor) (Result, status.Status) {
	for {
		if position >= ubound {
			return Result{}, status.NotFound
		}

		loc, st := lineloc.Locate(data, position)
		switch st {
		case status.Null:
			return Result{}, status.Null
		case status.NotFound:
			position++
			continue
		case status.Found:
			line := data[loc.Start : loc.Start+loc.Length]
			ts, est := extractor.Extract(line)
			switch est {
			case status.Found:
				return Result{Start: loc.Start, Length: loc.Length, Timestamp: ts}, status.Found
			case status.NotFound:
				position = loc.Start + loc.Length + 1
				continue
			default:
				return Result{}, status.Error
			}
		default:
			return Result{}, status.Error
		}
	}
}

// Package search implements timegrep's bounded binary search: the smallest
// byte offset of a line whose timestamp is >= target, using the forward
// probe to evaluate each candidate midpoint.
package search

import (
	"timegrep/internal/probe"
	"timegrep/internal/status"
	"timegrep/internal/tsextract"
)

// Bounded searches data[lbound:] for the lowest offset of a line whose
// timestamp is >= target.
func Bounded(data []byte, extractor *tsextract.Extractor, target int64, lbound int) (int, status.Status) {
	size := len(data)
	ubound := size
	middle := lbound + (ubound-lbound)/2

	candidate := 0
	found := false

	for lbound != middle {
		r, st := probe.Forward(data, middle, ubound, extractor)

		switch st {
		case status.Found:
			if r.Timestamp < target {
				lbound = r.Start + r.Length
				if lbound != ubound {
					lbound++
				}
				middle = ubound
			} else {
				candidate = r.Start
				found = true
				ubound = r.Start
				middle = ubound
			}
		case status.NotFound:
			ubound = middle
		case status.Null:
			// data is a single line with no '\n': judge that line directly.
			ts, est := extractor.Extract(data)
			if est == status.Error {
				return 0, status.Error
			}
			if est == status.Found && ts >= target && lbound == 0 {
				candidate = 0
				found = true
			}
			middle = lbound
			continue
		case status.Error:
			return 0, status.Error
		default:
			return 0, status.Error
		}

		middle = lbound + (middle-lbound)/2
	}

	if found {
		return candidate, status.Found
	}
	return 0, status.NotFound
}

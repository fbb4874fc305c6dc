// Package argtime parses the --start/--stop command-line values: first
// against the active format, then against a fixed-order heuristic chain
// of common datetime layouts.
package argtime

import (
	"fmt"
	"time"

	"timegrep/internal/namedformat"
	"timegrep/internal/strptime"
)

// zeroYear, zeroMonth and zeroDay match tg_strptime's zeroed struct tm: a
// date-time argument that doesn't mention a given field gets that field's
// zero value, not the current date.
const (
	zeroYear  = 1900
	zeroMonth = time.January
	zeroDay   = 0
)

// Parse interprets value as a datetime using activeFormat first, falling
// back to namedformat.HeuristicFormats in order. localOffsetSeconds is used
// for whichever format (active or heuristic) didn't capture an explicit
// timezone.
func Parse(value, activeFormat string, localOffsetSeconds int) (int64, error) {
	candidates := make([]string, 0, 1+len(namedformat.HeuristicFormats))
	candidates = append(candidates, activeFormat)
	candidates = append(candidates, namedformat.HeuristicFormats...)

	for _, format := range candidates {
		r, err := strptime.Parse(value, format)
		if err != nil {
			continue
		}
		return toEpoch(r, localOffsetSeconds), nil
	}

	return 0, fmt.Errorf("could not parse %q as a datetime", value)
}

func toEpoch(r strptime.Result, localOffsetSeconds int) int64 {
	if r.HaveTimestamp {
		return r.Timestamp
	}

	year, month, day := zeroYear, zeroMonth, zeroDay
	hour, minute, second := 0, 0, 0
	offset := localOffsetSeconds

	if r.HaveYear {
		year = r.Year
	}
	if r.HaveMonth {
		month = time.Month(r.Month)
	}
	if r.HaveDay {
		day = r.Day
	}
	if r.HaveHour {
		hour = r.Hour
	}
	if r.HaveMinute {
		minute = r.Minute
	}
	if r.HaveSecond {
		second = r.Second
	}
	if r.HaveTimezone {
		offset = r.TZOffsetSeconds
	}

	return time.Date(year, month, day, hour, minute, second, 0, time.UTC).Unix() - int64(offset)
}

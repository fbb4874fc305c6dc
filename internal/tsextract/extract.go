// Package tsextract extracts the timestamp embedded in a log line using a
// compiled format. It mirrors tg_strptime_re's dispatch: a fast path reads
// the matched digits directly out of the regex groups, and a slow path
// hands the full match text to strptime for formats that need a general
// parse (weekday names, 12-hour clocks, or repeated fields).
package tsextract

import (
	"strconv"
	"time"

	"timegrep/internal/status"
	"timegrep/internal/strptime"
	"timegrep/internal/tsformat"
	"timegrep/internal/tzoffset"
)

// Extractor pulls a Unix timestamp out of lines matching a compiled format.
type Extractor struct {
	Matcher *tsformat.Matcher

	// LocalOffsetSeconds is used to resolve the timezone of a line whose
	// format carries no explicit offset, mirroring timegrep's TG_TIMEZONE.
	LocalOffsetSeconds int
}

// New builds an Extractor for matcher. localOffsetSeconds is the offset
// east of UTC to assume for lines whose format has no %z/%Z.
func New(matcher *tsformat.Matcher, localOffsetSeconds int) *Extractor {
	return &Extractor{Matcher: matcher, LocalOffsetSeconds: localOffsetSeconds}
}

// Extract searches line for a timestamp. A format field not present in the
// match (e.g. the missing year in a bare syslog timestamp) takes a zero
// calendar value rather than the current date, matching the zeroed struct
// tm that tg_strptime and tg_strptime_re both start from.
func (e *Extractor) Extract(line []byte) (int64, status.Status) {
	match := e.Matcher.Regex.FindSubmatch(line)
	if match == nil {
		return 0, status.NotFound
	}

	if e.Matcher.Descriptor.FastPath {
		return e.extractFast(match)
	}
	return e.extractSlow(match)
}

func (e *Extractor) groupText(match [][]byte, field tsformat.Field) (string, bool) {
	names := e.Matcher.Descriptor.GroupNames(field)
	if len(names) == 0 {
		return "", false
	}
	idx := e.Matcher.Regex.SubexpIndex(names[0])
	if idx < 0 || idx >= len(match) || match[idx] == nil {
		return "", false
	}
	return string(match[idx]), true
}

func (e *Extractor) extractFast(match [][]byte) (int64, status.Status) {
	if text, ok := e.groupText(match, tsformat.Timestamp); ok {
		ts, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return 0, status.Error
		}
		return ts, status.Found
	}

	year, month, day := zeroYear, zeroMonth, zeroDay
	hour, minute, second := 0, 0, 0
	offset := e.LocalOffsetSeconds

	if text, ok := e.groupText(match, tsformat.Year); ok {
		v, err := strconv.Atoi(text)
		if err != nil {
			return 0, status.Error
		}
		year = v
	}
	if text, ok := e.groupText(match, tsformat.Month); ok {
		v, err := strconv.Atoi(text)
		if err != nil {
			return 0, status.Error
		}
		month = time.Month(v)
	} else if text, ok := e.groupText(match, tsformat.MonthText); ok {
		month = time.Month(strptime.MonthNumber(text))
	}
	if text, ok := e.groupText(match, tsformat.Day); ok {
		v, err := strconv.Atoi(text)
		if err != nil {
			return 0, status.Error
		}
		day = v
	}
	if text, ok := e.groupText(match, tsformat.Hour); ok {
		v, err := strconv.Atoi(text)
		if err != nil {
			return 0, status.Error
		}
		hour = v
	}
	if text, ok := e.groupText(match, tsformat.Minute); ok {
		v, err := strconv.Atoi(text)
		if err != nil {
			return 0, status.Error
		}
		minute = v
	}
	if text, ok := e.groupText(match, tsformat.Second); ok {
		v, err := strconv.Atoi(text)
		if err != nil {
			return 0, status.Error
		}
		second = v
	}
	if text, ok := e.groupText(match, tsformat.Timezone); ok {
		tz, err := tzoffset.Decode(text)
		if err != nil {
			return 0, status.NotFound
		}
		offset = tz
	}

	return toEpoch(year, month, day, hour, minute, second, offset), status.Found
}

func (e *Extractor) extractSlow(match [][]byte) (int64, status.Status) {
	r, err := strptime.Parse(string(match[0]), e.Matcher.Format)
	if err != nil {
		return 0, status.Error
	}

	if r.HaveTimestamp {
		return r.Timestamp, status.Found
	}

	year, month, day := zeroYear, zeroMonth, zeroDay
	hour, minute, second := 0, 0, 0
	offset := e.LocalOffsetSeconds

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

	return toEpoch(year, month, day, hour, minute, second, offset), status.Found
}

// zeroYear, zeroMonth and zeroDay are the calendar values a zeroed struct
// tm carries for a field strptime never touches: tm_year == 0 is the
// calendar year 1900, tm_mon == 0 is January, and tm_mday == 0 normalizes
// (via timegm, and identically via time.Date) to the last day of the
// preceding month.
const (
	zeroYear  = 1900
	zeroMonth = time.January
	zeroDay   = 0
)

// toEpoch computes the Unix timestamp for a wall-clock time expressed with
// the given offset east of UTC, matching timegm(3) followed by subtracting
// the timezone's gmtoff.
func toEpoch(year int, month time.Month, day, hour, minute, second int, offsetSeconds int) int64 {
	return time.Date(year, month, day, hour, minute, second, 0, time.UTC).Unix() - int64(offsetSeconds)
}

// Package strptime is a minimal, English-only reimplementation of the C
// library's strptime, used for timegrep's slow path and for parsing the
// --start/--stop command-line values. It walks a format string against an
// input string one specifier at a time, the same way tg_strptime does, and
// never consults the host's locale. The timezone database is consulted only
// to resolve an IANA zone name captured by %Z.
package strptime

import (
	"errors"
	"strings"

	"timegrep/internal/specparse"
	"timegrep/internal/tzoffset"
)

// ErrNoMatch is returned when value does not conform to format at some
// position; the caller gets no detail beyond that, matching tg_strptime's
// boolean return.
var ErrNoMatch = errors.New("value does not match format")

// Result holds the fields recovered from a successful Parse. Fields that a
// format string does not mention keep their zero value and a false Have
// flag; callers substitute zeroed calendar defaults (year 1900, January,
// day 0, midnight) for them before computing a Unix timestamp.
type Result struct {
	HaveYear, HaveMonth, HaveDay             bool
	HaveHour, HaveMinute, HaveSecond         bool
	Year, Month, Day                         int
	Hour, Minute, Second                     int
	HaveTimezone                             bool
	TZOffsetSeconds                          int
	HaveTimestamp                            bool
	Timestamp                                int64
	PM                                       bool
	HavePM                                   bool
	Hour12                                   bool // true if %I rather than %H supplied Hour
}

var months = []struct {
	name string
	num  int
}{
	{"January", 1}, {"February", 2}, {"March", 3}, {"April", 4},
	{"May", 5}, {"June", 6}, {"July", 7}, {"August", 8},
	{"September", 9}, {"October", 10}, {"November", 11}, {"December", 12},
	{"Jan", 1}, {"Feb", 2}, {"Mar", 3}, {"Apr", 4},
	{"May", 5}, {"Jun", 6}, {"Jul", 7}, {"Aug", 8},
	{"Sep", 9}, {"Oct", 10}, {"Nov", 11}, {"Dec", 12},
}

var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun",
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// consumeDigits reads up to max decimal digits starting at i, returning the
// parsed integer and the new cursor. Reading stops early at the first
// non-digit, matching strptime's numeric fields.
func consumeDigits(value string, i, max int) (n, newI int, ok bool) {
	start := i
	for i < len(value) && i-start < max && isDigit(value[i]) {
		i++
	}
	if i == start {
		return 0, start, false
	}
	n = 0
	for _, c := range value[start:i] {
		n = n*10 + int(c-'0')
	}
	return n, i, true
}

// consumeNamed tries each candidate in turn (longest match wins among
// those that fit), case-sensitively, matching timegrep's English-only
// month/weekday handling.
func consumeNamed(value string, i int, candidates []string) (match string, newI int, ok bool) {
	best := ""
	for _, c := range candidates {
		if strings.HasPrefix(value[i:], c) && len(c) > len(best) {
			best = c
		}
	}
	if best == "" {
		return "", i, false
	}
	return best, i + len(best), true
}

// consumeTZToken greedily consumes a timezone token starting at i: either a
// numeric ±HHMM/±HH:MM offset, a run of the %Z charset, or a bare letter.
func consumeTZToken(value string, i int) (tok string, newI int, ok bool) {
	if i >= len(value) {
		return "", i, false
	}
	if value[i] == '+' || value[i] == '-' {
		j := i + 1
		digits := 0
		for j < len(value) && (isDigit(value[j]) || value[j] == ':') {
			if isDigit(value[j]) {
				digits++
			}
			j++
		}
		if digits >= 3 {
			return value[i:j], j, true
		}
		return "", i, false
	}
	j := i
	for j < len(value) && isTZChar(value[j]) {
		j++
	}
	if j == i {
		return "", i, false
	}
	return value[i:j], j, true
}

func isTZChar(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || isDigit(b) ||
		b == '_' || b == '+' || b == '-' || b == '/'
}

// Parse matches value against format, an unexpanded strptime-style format
// string, and returns the fields it recovered.
func Parse(value, format string) (Result, error) {
	expanded, err := specparse.Expand(format)
	if err != nil {
		return Result{}, err
	}

	var r Result
	vi := 0
	fi := 0
	for fi < len(expanded) {
		c := expanded[fi]
		if c != '%' {
			if vi >= len(value) || value[vi] != c {
				return Result{}, ErrNoMatch
			}
			vi++
			fi++
			continue
		}

		if fi+1 >= len(expanded) {
			return Result{}, ErrNoMatch
		}
		spec := expanded[fi+1]
		fi += 2

		switch spec {
		case '%':
			if vi >= len(value) || value[vi] != '%' {
				return Result{}, ErrNoMatch
			}
			vi++
		case 'n', 't':
			if vi >= len(value) || !isSpace(value[vi]) {
				return Result{}, ErrNoMatch
			}
			vi++
		case 'Y':
			n, nv, ok := consumeDigits(value, vi, 4)
			if !ok {
				return Result{}, ErrNoMatch
			}
			r.Year, r.HaveYear, vi = n, true, nv
		case 'y', 'g':
			n, nv, ok := consumeDigits(value, vi, 2)
			if !ok {
				return Result{}, ErrNoMatch
			}
			if n < 69 {
				r.Year = 2000 + n
			} else {
				r.Year = 1900 + n
			}
			r.HaveYear, vi = true, nv
		case 'G':
			n, nv, ok := consumeDigits(value, vi, 4)
			if !ok {
				return Result{}, ErrNoMatch
			}
			r.Year, r.HaveYear, vi = n, true, nv
		case 'C':
			_, nv, ok := consumeDigits(value, vi, 2)
			if !ok {
				return Result{}, ErrNoMatch
			}
			vi = nv
		case 'm':
			n, nv, ok := consumeDigits(value, vi, 2)
			if !ok {
				return Result{}, ErrNoMatch
			}
			r.Month, r.HaveMonth, vi = n, true, nv
		case 'b', 'B', 'h':
			name, nv, ok := consumeNamed(value, vi, monthNames())
			if !ok {
				return Result{}, ErrNoMatch
			}
			r.Month = monthNumber(name)
			r.HaveMonth, vi = true, nv
		case 'd', 'e':
			n, nv, ok := consumeDigits(value, vi, 2)
			if !ok {
				return Result{}, ErrNoMatch
			}
			r.Day, r.HaveDay, vi = n, true, nv
		case 'j':
			_, nv, ok := consumeDigits(value, vi, 3)
			if !ok {
				return Result{}, ErrNoMatch
			}
			vi = nv
		case 'H':
			n, nv, ok := consumeDigits(value, vi, 2)
			if !ok {
				return Result{}, ErrNoMatch
			}
			r.Hour, r.HaveHour, vi = n, true, nv
		case 'I':
			n, nv, ok := consumeDigits(value, vi, 2)
			if !ok {
				return Result{}, ErrNoMatch
			}
			r.Hour, r.HaveHour, r.Hour12, vi = n, true, true, nv
		case 'p':
			name, nv, ok := consumeNamed(value, vi, []string{"AM", "PM"})
			if !ok {
				return Result{}, ErrNoMatch
			}
			r.HavePM, r.PM, vi = true, name == "PM", nv
		case 'M':
			n, nv, ok := consumeDigits(value, vi, 2)
			if !ok {
				return Result{}, ErrNoMatch
			}
			r.Minute, r.HaveMinute, vi = n, true, nv
		case 'S':
			n, nv, ok := consumeDigits(value, vi, 2)
			if !ok {
				return Result{}, ErrNoMatch
			}
			r.Second, r.HaveSecond, vi = n, true, nv
		case 'a', 'A':
			_, nv, ok := consumeNamed(value, vi, weekdays)
			if !ok {
				return Result{}, ErrNoMatch
			}
			vi = nv
		case 'u', 'w':
			_, nv, ok := consumeDigits(value, vi, 1)
			if !ok {
				return Result{}, ErrNoMatch
			}
			vi = nv
		case 'U', 'W', 'V':
			_, nv, ok := consumeDigits(value, vi, 2)
			if !ok {
				return Result{}, ErrNoMatch
			}
			vi = nv
		case 'z':
			tok, nv, ok := consumeTZToken(value, vi)
			if !ok {
				return Result{}, ErrNoMatch
			}
			offset, err := tzoffset.Decode(tok)
			if err != nil {
				return Result{}, ErrNoMatch
			}
			r.TZOffsetSeconds, r.HaveTimezone, vi = offset, true, nv
		case 'Z':
			j := vi
			for j < len(value) && isTZChar(value[j]) {
				j++
			}
			if j-vi < 3 {
				return Result{}, ErrNoMatch
			}
			r.TZOffsetSeconds = tzoffset.DecodeBestEffort(value[vi:j])
			r.HaveTimezone, vi = true, j
		case 's':
			n, nv, ok := consumeDigits(value, vi, 20)
			if !ok {
				return Result{}, ErrNoMatch
			}
			r.Timestamp, r.HaveTimestamp, vi = int64(n), true, nv
		default:
			return Result{}, ErrNoMatch
		}
	}

	if vi != len(value) {
		return Result{}, ErrNoMatch
	}

	if r.Hour12 && r.HavePM {
		r.Hour = to24Hour(r.Hour, r.PM)
	}

	return r, nil
}

func to24Hour(hour12 int, pm bool) int {
	h := hour12 % 12
	if pm {
		h += 12
	}
	return h
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
}

func monthNames() []string {
	names := make([]string, len(months))
	for i, m := range months {
		names[i] = m.name
	}
	return names
}

func monthNumber(name string) int {
	for _, m := range months {
		if m.name == name {
			return m.num
		}
	}
	return 0
}

// MonthNumber resolves a month name matched by tsformat's %b/%B/%h
// alternation (1-12) without running a full Parse. It is exported for the
// fast extraction path, which matches the same alternation directly.
func MonthNumber(name string) int {
	return monthNumber(name)
}

// Package tsformat compiles an strptime-style datetime format string into a
// regular expression with named capture groups, plus a descriptor that says
// whether the fast numeric-extraction path applies.
//
// The conversion mirrors timegrep's strptime_regex: composite specifiers
// (%c, %D, %F, %x, %R, %r, %T, %X) are flattened by specparse.Expand first,
// then each remaining specifier is translated to a regex fragment in a
// single linear pass.
package tsformat

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"timegrep/internal/specparse"
)

// ErrMalformedFormat is returned for an unterminated '%', an unsupported
// %O/%E modifier, or an unrecognized conversion specifier.
var ErrMalformedFormat = errors.New("malformed datetime format")

// escapeChars are the regex metacharacters that must be backslash-escaped
// when they appear as literal bytes in the format string.
const escapeChars = `^$|()[]{}.*+?\`

// Descriptor records, for a compiled format, which of the nine recognized
// fields appeared and under what capture group names, whether the format
// carries explicit timezone information, and whether the fast path applies.
type Descriptor struct {
	FastPath    bool
	HasTimezone bool
	groups      map[Field][]string
}

// GroupNames returns the capture group names assigned to field, in order of
// appearance. Usually at most one; more than one only occurs in formats
// whose fast path is disabled (duplicate fields force the slow path, but the
// regex must still compile, so repeated occurrences get distinct names).
func (d Descriptor) GroupNames(f Field) []string {
	return d.groups[f]
}

// Matcher is a compiled format ready to search lines for a timestamp.
type Matcher struct {
	Regex      *regexp.Regexp
	Descriptor Descriptor
	Format     string // original (unexpanded) format string
}

// fieldSpec describes how a single fast-path specifier is translated.
type fieldSpec struct {
	field     Field
	fragment  string
	isTimezone bool
}

var fastSpecs = map[byte]fieldSpec{
	'Y': {field: Year, fragment: `(?P<%s>\d{4})`},
	'm': {field: Month, fragment: `(?P<%s>1[0-2]|0?[1-9])`},
	'b': {field: MonthText, fragment: `(?P<%s>Jan|January|Feb|February|Mar|March|Apr|April|May|Jun|June|Jul|July|Aug|August|Sep|September|Oct|October|Nov|November|Dec|December)`},
	'B': {field: MonthText, fragment: `(?P<%s>Jan|January|Feb|February|Mar|March|Apr|April|May|Jun|June|Jul|July|Aug|August|Sep|September|Oct|October|Nov|November|Dec|December)`},
	'h': {field: MonthText, fragment: `(?P<%s>Jan|January|Feb|February|Mar|March|Apr|April|May|Jun|June|Jul|July|Aug|August|Sep|September|Oct|October|Nov|November|Dec|December)`},
	'd': {field: Day, fragment: `(?P<%s>[1-2][0-9]|3[0-1]|0?[1-9])`},
	'e': {field: Day, fragment: `(?P<%s>[1-2][0-9]|3[0-1]|0?[1-9])`},
	'H': {field: Hour, fragment: `(?P<%s>1[0-9]|2[0-3]|0?[0-9])`},
	'M': {field: Minute, fragment: `(?P<%s>[1-5][0-9]|0?[0-9])`},
	'S': {field: Second, fragment: `(?P<%s>[1-5][0-9]|60|0?[0-9])`},
	'z': {field: Timezone, fragment: `(?P<%s>((\+|-)\d{2}:?\d{2})|UT|UTC|GMT|EST|EDT|CST|CDT|MST|MDT|PST|PDT|[A-Z])`, isTimezone: true},
	's': {field: Timestamp, fragment: `(?P<%s>\d{1,20})`},
}

// slowFragments holds the regex fragments for specifiers that always force
// the slow path. %Z additionally counts as a timezone field.
var slowFragments = map[byte]string{
	'a': `(Mon|Monday|Tue|Tuesday|Wed|Wednesday|Thu|Thursday|Fri|Friday|Sat|Saturday|Sun|Sunday)`,
	'A': `(Mon|Monday|Tue|Tuesday|Wed|Wednesday|Thu|Thursday|Fri|Friday|Sat|Saturday|Sun|Sunday)`,
	'p': `(AM|PM)`,
	'C': `\d{1,2}`,
	'I': `(1[0-2]|0?[1-9])`,
	'j': `([1-2][0-9][0-9]|3[0-5][0-9]|36[0-6]|0?[1-9][0-9]|0{0,2}[1-9])`,
	'U': `([1-4][0-9]|5[0-3]|0?[0-9])`,
	'W': `([1-4][0-9]|5[0-3]|0?[0-9])`,
	'w': `[0-6]`,
	'y': `\d{1,2}`,
	'g': `\d{1,2}`,
	'G': `\d{4}`,
	'u': `[1-7]`,
	'V': `([1-4][0-9]|5[0-3]|0?[1-9])`,
	'Z': `[A-Za-z0-9_\+\-/]{3,33}`,
}

// state accumulates the result of walking an expanded format string.
type state struct {
	sb         strings.Builder
	counts     map[Field]int
	groups     map[Field][]string
	forcedSlow bool
	hasTZ      bool
}

func newState() *state {
	return &state{
		counts: make(map[Field]int),
		groups: make(map[Field][]string),
	}
}

func (s *state) emitField(fs fieldSpec) {
	s.counts[fs.field]++
	name := fs.field.name()
	if n := s.counts[fs.field]; n > 1 {
		name = fmt.Sprintf("%s%d", name, n)
	}
	s.groups[fs.field] = append(s.groups[fs.field], name)
	s.sb.WriteString(fmt.Sprintf(fs.fragment, name))
	if fs.isTimezone {
		s.hasTZ = true
	}
}

func (s *state) emitLiteral(c byte) {
	if strings.IndexByte(escapeChars, c) >= 0 {
		s.sb.WriteByte('\\')
	}
	s.sb.WriteByte(c)
}

// Compile translates format into a regex with named groups and decides
// whether the fast numeric-extraction path applies.
func Compile(format string) (*Matcher, error) {
	expanded, err := specparse.Expand(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFormat, err)
	}

	st := newState()

	i := 0
	for i < len(expanded) {
		c := expanded[i]
		if c != '%' {
			st.emitLiteral(c)
			i++
			continue
		}

		if i+1 >= len(expanded) {
			return nil, fmt.Errorf("%w: unexpected '%%' at end of format string", ErrMalformedFormat)
		}
		spec := expanded[i+1]
		i += 2

		switch {
		case spec == '%':
			st.sb.WriteByte('%')
		case spec == 'n' || spec == 't':
			st.sb.WriteString(`\s`)
		case spec == 'O' || spec == 'E':
			return nil, fmt.Errorf("%w: 'O' and 'E' modifiers are not supported", ErrMalformedFormat)
		default:
			if fs, ok := fastSpecs[spec]; ok {
				st.emitField(fs)
				continue
			}
			if frag, ok := slowFragments[spec]; ok {
				st.sb.WriteString(frag)
				st.forcedSlow = true
				if spec == 'Z' {
					st.hasTZ = true
				}
				continue
			}
			return nil, fmt.Errorf("%w: unexpected format char '%%%c'", ErrMalformedFormat, spec)
		}
	}

	fastPath := computeFastPath(st)

	re, err := regexp.Compile(st.sb.String())
	if err != nil {
		return nil, fmt.Errorf("could not compile %q: %w", st.sb.String(), err)
	}

	return &Matcher{
		Regex: re,
		Descriptor: Descriptor{
			FastPath:    fastPath,
			HasTimezone: st.hasTZ,
			groups:      st.groups,
		},
		Format: format,
	}, nil
}

// computeFastPath implements the invariant from strptime_regex: the fast
// path applies unless a slow-only specifier was seen, a field occurred more
// than once, both %m and %b/%B/%h occurred, or %s occurred alongside any
// other date/time field (timezone excluded, matching the source).
func computeFastPath(st *state) bool {
	if st.forcedSlow {
		return false
	}

	for _, n := range st.counts {
		if n > 1 {
			return false
		}
	}

	if st.counts[Month] > 0 && st.counts[MonthText] > 0 {
		return false
	}

	if st.counts[Timestamp] > 0 {
		other := st.counts[Year] + st.counts[Month] + st.counts[MonthText] +
			st.counts[Day] + st.counts[Hour] + st.counts[Minute] + st.counts[Second]
		if other > 0 {
			return false
		}
	}

	return true
}

// Package tzoffset decodes a captured timezone token (the text matched by
// the %z/%Z regex fragment) into a signed offset in seconds east of UTC.
//
// The recognized forms mirror timegrep's atogmtoff: a numeric offset of
// length 5 (±HHMM) or 6 (±HH:MM), a single RFC 822 military letter A-Z
// (excluding J), UT/UTC/GMT, or one of the closed set of three-letter
// North American abbreviations.
package tzoffset

import (
	"errors"
	"strings"
	"time"
)

// ErrUnrecognized is returned for any token outside the recognized forms.
var ErrUnrecognized = errors.New("unrecognized timezone token")

// militaryOffsetHours maps RFC 822 military timezone letters to their
// hour offset east of UTC. 'J' (locally observed time) has no fixed
// meaning and is intentionally absent.
var militaryOffsetHours = map[byte]int{
	'A': -1, 'B': -2, 'C': -3, 'D': -4, 'E': -5, 'F': -6, 'G': -7,
	'H': -8, 'I': -9, 'K': -10, 'L': -11, 'M': -12,
	'N': 1, 'O': 2, 'P': 3, 'Q': 4, 'R': 5, 'S': 6, 'T': 7,
	'U': 8, 'V': 9, 'W': 10, 'X': 11, 'Y': 12, 'Z': 0,
}

// abbrevOffsetHours maps the closed set of recognized North American zone
// abbreviations (and UT/UTC/GMT) to their hour offset east of UTC.
var abbrevOffsetHours = map[string]int{
	"UT": 0, "UTC": 0, "GMT": 0,
	"EST": -5, "EDT": -4,
	"CST": -6, "CDT": -5,
	"MST": -7, "MDT": -6,
	"PST": -8, "PDT": -7,
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Decode parses token into an offset in seconds east of UTC.
func Decode(token string) (int, error) {
	switch len(token) {
	case 5:
		// ±HHMM
		if (token[0] == '+' || token[0] == '-') &&
			isDigit(token[1]) && isDigit(token[2]) && isDigit(token[3]) && isDigit(token[4]) {
			hours := int(token[1]-'0')*10 + int(token[2]-'0')
			mins := int(token[3]-'0')*10 + int(token[4]-'0')
			offset := hours*3600 + mins*60
			if token[0] == '-' {
				offset = -offset
			}
			return offset, nil
		}
	case 6:
		// ±HH:MM
		if (token[0] == '+' || token[0] == '-') &&
			isDigit(token[1]) && isDigit(token[2]) && token[3] == ':' &&
			isDigit(token[4]) && isDigit(token[5]) {
			hours := int(token[1]-'0')*10 + int(token[2]-'0')
			mins := int(token[4]-'0')*10 + int(token[5]-'0')
			offset := hours*3600 + mins*60
			if token[0] == '-' {
				offset = -offset
			}
			return offset, nil
		}
	case 1:
		if h, ok := militaryOffsetHours[token[0]]; ok {
			return h * 3600, nil
		}
	default:
		if len(token) >= 2 {
			if h, ok := abbrevOffsetHours[strings.ToUpper(token)]; ok {
				return h * 3600, nil
			}
		}
	}

	return 0, ErrUnrecognized
}

// DecodeBestEffort is used for the %Z timezone-name specifier, which can
// capture an IANA zone name (e.g. "Etc/GMT+2") in addition to anything
// Decode recognizes. It does not replicate a full tzdata lookup; it falls
// back to 0 (UTC) for names it cannot resolve.
func DecodeBestEffort(token string) int {
	if offset, err := Decode(token); err == nil {
		return offset
	}
	if strings.Contains(token, "/") {
		if loc, err := time.LoadLocation(token); err == nil {
			_, offset := time.Now().In(loc).Zone()
			return offset
		}
	}
	return 0
}

// Package filepattern expands the positional file-path arguments passed to
// timegrep, treating each as a doublestar glob pattern.
package filepattern

import (
	"github.com/bmatcuk/doublestar/v4"
)

// Expand resolves each pattern in args to the files it matches, in argument
// order, without deduplication across different patterns naming the same
// path twice on the command line. A pattern with no glob metacharacters
// that matches nothing is passed through unchanged, so the caller's open
// attempt reports the real error instead of the argument silently vanishing.
func Expand(args []string) ([]string, error) {
	var result []string

	for _, pattern := range args {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			result = append(result, pattern)
			continue
		}
		result = append(result, matches...)
	}

	return result, nil
}

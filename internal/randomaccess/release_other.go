//go:build !unix

package randomaccess

// releasePages is a no-op on platforms without madvise.
func releasePages(data []byte, start, end int) {}

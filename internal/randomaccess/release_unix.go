//go:build unix

package randomaccess

import "golang.org/x/sys/unix"

// releasePages advises the kernel that the given page-aligned sub-range of
// the mapped region is no longer needed, letting it reclaim the backing
// pages without affecting correctness.
func releasePages(data []byte, start, end int) {
	if start >= end {
		return
	}
	_ = unix.Madvise(data[start:end], unix.MADV_DONTNEED)
}

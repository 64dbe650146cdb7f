//go:build linux
// +build linux

// File: internal/mem/mem_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux mapping facility. Anonymous private mmap is page-aligned by
// construction, which satisfies any power-of-two alignment up to the page
// size; larger alignments over-map and offset inside the mapping.

package mem

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// osAlloc maps `size` bytes aligned to `align`. ok==false means the caller
// should fall back to the Go heap.
func osAlloc(size, align uintptr) (block []byte, off uintptr, ok bool) {
	page := uintptr(unix.Getpagesize())
	total := size
	if align > page {
		total = size + align - 1
		if total < size {
			return nil, 0, false
		}
	}
	length := alignUp(total, page)
	if length < total || length > uintptr(int(^uint(0)>>1)) {
		return nil, 0, false
	}
	b, err := unix.Mmap(-1, 0, int(length),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, 0, false
	}
	if align > page {
		base := uintptr(unsafe.Pointer(&b[0]))
		off = alignUp(base, align) - base
	}
	return b, off, true
}

// osFree unmaps a block produced by osAlloc.
func osFree(block []byte) {
	_ = unix.Munmap(block)
}

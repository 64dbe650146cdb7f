//go:build windows
// +build windows

// File: internal/mem/mem_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows mapping facility via VirtualAlloc/VirtualFree. Reservations are
// aligned to the allocation granularity (64 KiB), which covers common
// alignments; larger requests over-reserve and offset.

package mem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const allocationGranularity = 64 << 10

// osAlloc reserves and commits `size` bytes aligned to `align`.
func osAlloc(size, align uintptr) (block []byte, off uintptr, ok bool) {
	total := size
	if align > allocationGranularity {
		total = size + align - 1
		if total < size {
			return nil, 0, false
		}
	}
	addr, err := windows.VirtualAlloc(0, total,
		windows.MEM_RESERVE|windows.MEM_COMMIT,
		windows.PAGE_READWRITE)
	if err != nil || addr == 0 {
		return nil, 0, false
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(addr)), total)
	if align > allocationGranularity {
		off = alignUp(addr, align) - addr
	}
	return b, off, true
}

// osFree releases a reservation produced by osAlloc.
func osFree(block []byte) {
	if len(block) == 0 {
		return
	}
	addr := uintptr(unsafe.Pointer(&block[0]))
	_ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}

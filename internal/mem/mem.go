// File: internal/mem/mem.go
// Package mem provides raw aligned storage regions for single-object cells.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Region is a block of bytes whose base-plus-offset address is a multiple
// of the requested alignment. Regions come either from the OS mapping
// facility (platform files) or from the Go heap with an alignment offset.
// OS-backed regions must be released explicitly; heap-backed regions are
// reclaimed by the GC once the owning cell drops them.

package mem

import (
	"unsafe"

	"github.com/momentics/memsentry/api"
)

// Region is an aligned storage block. The zero Region is released/empty.
type Region struct {
	block  []byte
	off    uintptr
	size   uintptr
	mapped bool
}

// Alloc obtains a region of `size` bytes aligned to `align`, preferring the
// OS mapping facility and falling back to the Go heap when the platform
// cannot serve the request.
func Alloc(size, align uintptr) (Region, error) {
	if err := check(size, align); err != nil {
		return Region{}, err
	}
	if block, off, ok := osAlloc(size, align); ok {
		return Region{block: block, off: off, size: size, mapped: true}, nil
	}
	return AllocHeap(size, align)
}

// AllocHeap obtains a region from the Go heap by over-allocating and
// offsetting to the alignment boundary. Never uses the OS facility.
func AllocHeap(size, align uintptr) (Region, error) {
	if err := check(size, align); err != nil {
		return Region{}, err
	}
	total := size + align - 1
	if total < size {
		return Region{}, api.ErrCapacityOverflow
	}
	block := make([]byte, total)
	base := uintptr(unsafe.Pointer(&block[0]))
	off := alignUp(base, align) - base
	return Region{block: block, off: off, size: size}, nil
}

// Base returns the aligned start of the region, or nil if released.
func (r *Region) Base() unsafe.Pointer {
	if r.block == nil {
		return nil
	}
	return unsafe.Pointer(&r.block[r.off])
}

// Size reports the usable byte count of the region.
func (r *Region) Size() uintptr { return r.size }

// Mapped reports whether the region is OS-backed.
func (r *Region) Mapped() bool { return r.mapped }

// Release returns an OS-backed region to the system and drops the block
// reference either way. Safe to call on a released region.
func (r *Region) Release() {
	if r.block == nil {
		return
	}
	if r.mapped {
		osFree(r.block)
	}
	r.block = nil
	r.off = 0
	r.size = 0
	r.mapped = false
}

func check(size, align uintptr) error {
	if size == 0 {
		return api.ErrInvalidArgument
	}
	if align == 0 || align&(align-1) != 0 {
		return api.ErrInvalidAlignment
	}
	return nil
}

// alignUp rounds v up to the nearest multiple of align (a power of two).
func alignUp(v, align uintptr) uintptr {
	return (v + align - 1) &^ (align - 1)
}

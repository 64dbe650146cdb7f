//go:build !linux && !windows
// +build !linux,!windows

// File: internal/mem/mem_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback for platforms without a dedicated mapping facility: every
// allocation goes through the Go heap path in mem.go.

package mem

func osAlloc(size, align uintptr) (block []byte, off uintptr, ok bool) {
	return nil, 0, false
}

func osFree(block []byte) {}

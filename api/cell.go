// Package api
// Author: momentics <momentics@gmail.com>
//
// Aligned single-object storage contract.
//
// A cell owns storage for exactly one value at a guaranteed byte alignment.
// The value is constructed exactly once and destroyed exactly once; a cell is
// referred to across ownership boundaries only by its pointer, never by value.

package api

// Cell describes an aligned single-object storage unit.
type Cell[T any] interface {
	// Ptr returns the live payload location. Nil after Free.
	Ptr() *T

	// Addr returns the payload address; a multiple of the cell alignment.
	Addr() uintptr

	// Align returns the alignment the storage was reserved at.
	Align() uintptr

	// Free destroys the payload and releases dynamic backing storage.
	// Must run exactly once; a second call panics.
	Free()
}

// PageSize is a conservative lower bound used when sizing alignment sweeps;
// platforms report the real value through their allocation facility.
const PageSize = 4096

// Package ringpool
// Author: momentics <momentics@gmail.com>
//
// Allocation-free object recycling for aligned single-object cells.
// A RingPool hands ownership of heavy, alignment-sensitive payloads between
// one producer and one consumer without locks and without an allocation per
// exchange. See ring.go for the hand-off protocol and ownership modes.
package ringpool

// Package api
// Author: momentics <momentics@gmail.com>
//
// Lock-free ring buffer contract for cross-thread producer/consumer hand-off.

package api

// Ring is a bounded, non-blocking FIFO contract.
type Ring[T any] interface {
	// Enqueue adds an item, returns false if full.
	Enqueue(item T) bool
	// Dequeue removes the oldest item, returns false if empty.
	Dequeue() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns usable buffer capacity.
	Cap() int
}

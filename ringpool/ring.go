// File: ringpool/ring.go
// Package ringpool implements a bounded lock-free hand-off ring for cells.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RingPool circulates *cell.Cell[T] pointers between exactly one producer
// and exactly one consumer through a power-of-two slot array indexed by
// monotonically advancing atomic counters. One slot stays permanently
// reserved so full and empty states remain distinguishable: usable capacity
// is QueueSize()-1.
//
// Push and Pop never block and never CAS. Each side keeps a local cache of
// the opposite index and re-reads the shared counter only when the cached
// value suggests the ring is full or empty, so the steady state costs one
// atomic load and one atomic store per operation.
//
// The single-producer/single-consumer contract is part of the API. Safety
// under multiple concurrent writers or readers is NOT provided.

package ringpool

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/momentics/memsentry/api"
	"github.com/momentics/memsentry/cell"
	"github.com/momentics/memsentry/control"
)

const cacheLine = 64

// RingPool is a fixed-capacity SPSC ring of cell pointers.
//
// In pool-owned mode the ring eagerly constructs QueueSize()-1 cells at
// creation and remains their sole owner for its whole lifetime: Pop checks a
// cell out to the consumer, Push returns it, and Close destroys every owned
// cell exactly once whether resident or checked out. In caller-owned mode
// the ring owns nothing; it only custodies caller-constructed pointers
// between Push and Pop.
type RingPool[T any] struct {
	// Consumer side: head plus consumer-local cache of tail.
	head       atomic.Uint64
	cachedTail uint64
	_          [cacheLine - 16]byte

	// Producer side: tail plus producer-local cache of head.
	tail       atomic.Uint64
	cachedHead uint64
	_          [cacheLine - 16]byte

	// Immutable after construction.
	slots []*cell.Cell[T]
	mask  uint64

	// Constructed set, distinct from the currently enqueued set. Pool-owned
	// cells stay here even while checked out, so teardown reaches them.
	owned []*cell.Cell[T]

	stats       stats
	err         error
	callerOwned bool
	valid       bool
	closed      bool
}

// Compile-time compliance with the ring contract.
var _ api.Ring[*cell.Cell[int]] = (*RingPool[int])(nil)
var _ api.StatsSource = (*RingPool[int])(nil)

// New builds a ring pool whose usable capacity is at least `capacity`.
//
// callerOwned false (pool-owned): QueueSize()-1 cells are constructed with
// the given storage mode, alignment and options, and enqueued before New
// returns. callerOwned true: align, mode and opts are unused and the ring
// starts empty.
//
// New never returns nil; check Valid before use. A pool is invalid when the
// alignment is not a power of two, the capacity is out of range, or an eager
// cell construction fails. Push and Pop on an invalid pool fail closed.
func New[T any](callerOwned bool, capacity int, align uintptr, mode cell.Mode, opts ...cell.Option[T]) *RingPool[T] {
	r := &RingPool[T]{callerOwned: callerOwned}

	if align == 0 || align&(align-1) != 0 {
		r.err = api.ErrInvalidAlignment
		control.Logger().Warn("ringpool: construction failed",
			zap.Uint64("alignment", uint64(align)), zap.Error(r.err))
		return r
	}
	n, err := slotCount(capacity)
	if err != nil {
		r.err = err
		control.Logger().Warn("ringpool: construction failed",
			zap.Int("capacity", capacity), zap.Error(err))
		return r
	}
	r.slots = make([]*cell.Cell[T], n)
	r.mask = uint64(n - 1)

	if !callerOwned {
		r.owned = make([]*cell.Cell[T], 0, n-1)
		for i := 0; i < n-1; i++ {
			c, cerr := cell.New[T](mode, align, opts...)
			if cerr != nil {
				for _, prev := range r.owned {
					prev.Free()
				}
				r.owned = nil
				r.err = cerr
				control.Logger().Warn("ringpool: eager cell construction failed",
					zap.Int("index", i), zap.Error(cerr))
				return r
			}
			r.owned = append(r.owned, c)
			r.slots[i] = c
		}
		r.tail.Store(uint64(n - 1))
		r.stats.constructed.Store(int64(n - 1))
	}

	r.valid = true
	return r
}

// slotCount rounds capacity up to the internal power-of-two slot count N
// such that N-1 >= capacity.
func slotCount(capacity int) (int, error) {
	if capacity < 1 {
		return 0, api.ErrInvalidArgument
	}
	const maxSlots = 1 << 31
	if capacity >= maxSlots {
		return 0, api.ErrCapacityOverflow
	}
	n := 2
	for n-1 < capacity {
		n <<= 1
	}
	return n, nil
}

// Push inserts c into the next free slot, returning false without side
// effects when QueueSize()-1 slots are already occupied, the pool is
// invalid or closed, or c is nil. Producer side only.
//
// In pool-owned mode c must be a pointer previously produced by this ring;
// in caller-owned mode any caller-constructed cell is accepted and the ring
// takes no ownership of it.
func (r *RingPool[T]) Push(c *cell.Cell[T]) bool {
	if !r.valid || r.closed || c == nil {
		return false
	}
	t := r.tail.Load()
	if t-r.cachedHead >= r.mask {
		r.cachedHead = r.head.Load()
		if t-r.cachedHead >= r.mask {
			r.stats.fullRejects.Add(1)
			return false
		}
	}
	r.slots[t&r.mask] = c
	r.tail.Store(t + 1) // publish to consumer
	r.stats.pushes.Add(1)
	return true
}

// Pop removes and returns the oldest enqueued cell, or nil when the ring is
// empty, invalid or closed. Consumer side only. Never blocks; retry or
// backoff on nil is the caller's responsibility.
func (r *RingPool[T]) Pop() *cell.Cell[T] {
	if !r.valid || r.closed {
		return nil
	}
	h := r.head.Load()
	if h == r.cachedTail {
		r.cachedTail = r.tail.Load()
		if h == r.cachedTail {
			r.stats.emptyMisses.Add(1)
			return nil
		}
	}
	idx := h & r.mask
	c := r.slots[idx]
	r.slots[idx] = nil  // checked-out cells are not pinned by the ring
	r.head.Store(h + 1) // release slot to producer
	r.stats.pops.Add(1)
	return c
}

// Enqueue adapts Push to the api.Ring contract.
func (r *RingPool[T]) Enqueue(c *cell.Cell[T]) bool { return r.Push(c) }

// Dequeue adapts Pop to the api.Ring contract.
func (r *RingPool[T]) Dequeue() (*cell.Cell[T], bool) {
	c := r.Pop()
	return c, c != nil
}

// Len returns the number of occupied slots.
func (r *RingPool[T]) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Cap returns the usable capacity, QueueSize()-1.
func (r *RingPool[T]) Cap() int { return int(r.mask) }

// QueueSize returns the internal slot count N, including the one slot
// reserved to disambiguate full from empty.
func (r *RingPool[T]) QueueSize() int { return len(r.slots) }

// Valid reports whether construction succeeded.
func (r *RingPool[T]) Valid() bool { return r.valid }

// Err returns the construction failure, if any.
func (r *RingPool[T]) Err() error { return r.err }

// CallerOwned reports the ownership protocol fixed at construction.
func (r *RingPool[T]) CallerOwned() bool { return r.callerOwned }

// Close tears the pool down. Pool-owned mode destroys every cell the ring
// ever constructed, exactly once, whether resident in a slot or checked out
// to the consumer. Caller-owned mode destroys nothing; cells still enqueued
// remain the caller's responsibility. Idempotent, but must not run
// concurrently with Push or Pop.
func (r *RingPool[T]) Close() {
	if r.closed {
		return
	}
	r.closed = true
	for i := range r.slots {
		r.slots[i] = nil
	}
	if !r.callerOwned {
		for _, c := range r.owned {
			c.Free()
			r.stats.destroyed.Add(1)
		}
		r.owned = nil
	}
	control.Logger().Debug("ringpool: closed",
		zap.Int("queue_size", len(r.slots)),
		zap.Bool("caller_owned", r.callerOwned))
}

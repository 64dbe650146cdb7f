// File: ringpool/stats.go
// Package ringpool accounting counters.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ringpool

import (
	"sync/atomic"

	"github.com/momentics/memsentry/api"
)

// stats holds the pool's atomic accounting counters. Counters are updated
// from the hot path with relaxed-style atomic adds only.
type stats struct {
	constructed atomic.Int64
	destroyed   atomic.Int64
	pushes      atomic.Int64
	pops        atomic.Int64
	fullRejects atomic.Int64
	emptyMisses atomic.Int64
}

// Stats returns a snapshot of the pool's accounting counters.
func (r *RingPool[T]) Stats() api.PoolStats {
	constructed := r.stats.constructed.Load()
	destroyed := r.stats.destroyed.Load()
	return api.PoolStats{
		Constructed: constructed,
		Destroyed:   destroyed,
		InUse:       constructed - destroyed,
		Pushes:      r.stats.pushes.Load(),
		Pops:        r.stats.pops.Load(),
		FullRejects: r.stats.fullRejects.Load(),
		EmptyMisses: r.stats.emptyMisses.Load(),
		Len:         r.Len(),
		Cap:         r.Cap(),
	}
}

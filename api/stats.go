// Package api
// Author: momentics <momentics@gmail.com>
//
// Accounting metrics exposed by pools for observability.

package api

// PoolStats aggregates ring pool accounting counters.
type PoolStats struct {
	// Cells constructed and destroyed by the pool itself (pool-owned mode).
	Constructed int64
	Destroyed   int64
	// Constructed minus Destroyed; nonzero only while the pool is live.
	InUse int64

	// Hand-off traffic.
	Pushes int64
	Pops   int64

	// Capacity-limit sentinels returned to callers.
	FullRejects int64
	EmptyMisses int64

	// Occupancy snapshot.
	Len int
	Cap int
}

// StatsSource is implemented by anything exposing PoolStats.
type StatsSource interface {
	Stats() PoolStats
}

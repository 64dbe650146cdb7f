// File: ringpool/config.go
// Package ringpool configuration-driven construction.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ringpool

import (
	"github.com/momentics/memsentry/cell"
	"github.com/momentics/memsentry/control"
)

// FromConfig builds a ring pool from a validated control.PoolConfig.
// Cell options apply only in pool-owned mode, as in New.
func FromConfig[T any](cfg control.PoolConfig, opts ...cell.Option[T]) *RingPool[T] {
	mode := cell.ModeInline
	if cfg.Dynamic {
		mode = cell.ModeDynamic
	}
	return New[T](cfg.CallerOwned, cfg.Capacity, uintptr(cfg.Alignment), mode, opts...)
}

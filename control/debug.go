// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Library-side logging plumbing and runtime debug probes.
//
// The library never logs on the hand-off hot path; construction and
// teardown events go through the logger installed here. Default is a nop
// logger so embedding applications stay silent unless they opt in.

package control

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger installs the logger used for library lifecycle events.
// Passing nil restores the nop logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Logger returns the currently installed logger. Never nil.
func Logger() *zap.Logger {
	return logger.Load()
}

// DebugProbes holds registered probe functions for internal inspection.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any)
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

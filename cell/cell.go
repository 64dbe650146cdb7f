// File: cell/cell.go
// Package cell implements aligned single-object storage units.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Cell[T] owns storage for exactly one T at a caller-chosen power-of-two
// byte alignment. Inline cells keep their backing block on the Go heap for
// the cell's lifetime; dynamic cells draw it from the internal/mem mapping
// facility and release it on Free. Either way the payload lives at an
// address congruent to 0 modulo the alignment, for payloads both smaller
// and larger than the alignment itself.
//
// The payload type must not contain Go pointers: the backing block is not
// scanned by the garbage collector. Cells exist for flat, layout-sensitive
// records (SIMD lanes, cache-line entries, page-sized blocks).
//
// Cells are never copied or moved. The embedded noCopy field makes go vet
// reject value copies; ownership travels only as *Cell[T].

package cell

import (
	"unsafe"

	"github.com/momentics/memsentry/api"
	"github.com/momentics/memsentry/internal/mem"
)

// Mode selects where a cell's backing storage lives.
type Mode uint8

const (
	// ModeInline embeds storage in GC-managed memory owned by the cell.
	ModeInline Mode = iota
	// ModeDynamic draws storage from the raw aligned mapping facility.
	ModeDynamic
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeInline:
		return "inline"
	case ModeDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// noCopy triggers go vet's copylocks check on value copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Cell is an aligned storage unit for exactly one T.
type Cell[T any] struct {
	noCopy noCopy

	ptr    *T
	region mem.Region
	final  func(*T)
	align  uintptr
	mode   Mode
	freed  bool
}

// Compile-time contract compliance.
var _ api.Cell[int] = (*Cell[int])(nil)

// New reserves aligned storage for one T and constructs the payload there.
// Construction arguments are forwarded through options: WithValue seeds the
// payload, WithInit runs an initializer at the reserved address, and
// WithFinalizer registers the destructor run by Free.
//
// align must be a power of two. The reservation covers max(sizeof(T), align)
// bytes, so a payload larger than the alignment still fits whole.
func New[T any](mode Mode, align uintptr, opts ...Option[T]) (*Cell[T], error) {
	if align == 0 || align&(align-1) != 0 {
		return nil, api.ErrInvalidAlignment
	}
	size := unsafe.Sizeof(*new(T))
	if size == 0 {
		size = 1
	}
	if size < align {
		size = align
	}

	var (
		region mem.Region
		err    error
	)
	switch mode {
	case ModeInline:
		region, err = mem.AllocHeap(size, align)
	case ModeDynamic:
		region, err = mem.Alloc(size, align)
	default:
		return nil, api.ErrInvalidArgument
	}
	if err != nil {
		return nil, err
	}

	c := &Cell[T]{
		ptr:    (*T)(region.Base()),
		region: region,
		align:  align,
		mode:   mode,
	}

	var cfg config[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.seed != nil {
		*c.ptr = *cfg.seed
	}
	if cfg.init != nil {
		if err := cfg.init(c.ptr); err != nil {
			c.region.Release()
			return nil, err
		}
	}
	c.final = cfg.final
	return c, nil
}

// Ptr returns the live payload location. Nil once the cell is freed.
func (c *Cell[T]) Ptr() *T { return c.ptr }

// Addr returns the payload address; always a multiple of Align.
func (c *Cell[T]) Addr() uintptr { return uintptr(unsafe.Pointer(c.ptr)) }

// Align returns the alignment storage was reserved at.
func (c *Cell[T]) Align() uintptr { return c.align }

// Mode returns the cell's storage mode.
func (c *Cell[T]) Mode() Mode { return c.mode }

// Free destroys the payload exactly once: runs the registered finalizer,
// then releases dynamic backing storage. Inline backing is left to the GC.
// A second Free is a programming error and panics.
func (c *Cell[T]) Free() {
	if c.freed {
		panic("cell: Free called twice")
	}
	c.freed = true
	if c.final != nil {
		c.final(c.ptr)
	}
	c.ptr = nil
	c.region.Release()
}

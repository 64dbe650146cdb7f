// File: cell/cell_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cell_test

import (
	"sync/atomic"
	"testing"

	"github.com/momentics/memsentry/api"
	"github.com/momentics/memsentry/cell"
)

// deepData mirrors a SIMD-width record: 32 lanes on a 128-byte boundary.
type deepData struct {
	values [32]int32
}

func TestDynamicAlignmentAndConstruction(t *testing.T) {
	c, err := cell.New[deepData](cell.ModeDynamic, 128, cell.WithInit(func(d *deepData) error {
		for i := range d.values {
			d.values[i] = int32(i)
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Free()

	if c.Addr()%128 != 0 {
		t.Errorf("addr %#x not aligned to 128", c.Addr())
	}
	if c.Ptr().values[0] != 0 || c.Ptr().values[31] != 31 {
		t.Errorf("payload not constructed in place: %v", c.Ptr().values)
	}
}

func TestInlineConstruction(t *testing.T) {
	c, err := cell.New[int](cell.ModeInline, 64, cell.WithValue(42))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Free()

	if *c.Ptr() != 42 {
		t.Errorf("value = %d, want 42", *c.Ptr())
	}
	if c.Addr()%64 != 0 {
		t.Errorf("addr %#x not aligned to 64", c.Addr())
	}
	if c.Mode() != cell.ModeInline {
		t.Errorf("mode = %v, want inline", c.Mode())
	}
}

func TestAlignmentSweep(t *testing.T) {
	for _, mode := range []cell.Mode{cell.ModeInline, cell.ModeDynamic} {
		for align := uintptr(1); align <= api.PageSize; align <<= 1 {
			c, err := cell.New[uint64](mode, align, cell.WithValue[uint64](7))
			if err != nil {
				t.Fatalf("New(%v, %d): %v", mode, align, err)
			}
			if c.Addr()%align != 0 {
				t.Errorf("mode %v align %d: addr %#x misaligned", mode, align, c.Addr())
			}
			if *c.Ptr() != 7 {
				t.Errorf("mode %v align %d: payload lost", mode, align)
			}
			c.Free()
		}
	}
}

func TestExtremePageAlignment(t *testing.T) {
	c, err := cell.New[int](cell.ModeDynamic, api.PageSize, cell.WithValue(777))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Free()
	if c.Addr()%api.PageSize != 0 {
		t.Errorf("addr %#x not page aligned", c.Addr())
	}
	if *c.Ptr() != 777 {
		t.Errorf("value = %d, want 777", *c.Ptr())
	}
}

func TestLargePayloadSmallAlignment(t *testing.T) {
	// 1024-byte payload with a 64-byte alignment floor: the full object must
	// fit and still start on the boundary.
	type large struct {
		bytes [1024]byte
	}
	for _, mode := range []cell.Mode{cell.ModeInline, cell.ModeDynamic} {
		c, err := cell.New[large](mode, 64)
		if err != nil {
			t.Fatalf("New(%v): %v", mode, err)
		}
		if c.Addr()%64 != 0 {
			t.Errorf("mode %v: addr %#x not aligned to 64", mode, c.Addr())
		}
		p := c.Ptr()
		for i := range p.bytes {
			p.bytes[i] = byte(i)
		}
		if last := 1023; p.bytes[last] != byte(last) {
			t.Errorf("mode %v: payload storage too small", mode)
		}
		c.Free()
	}
}

func TestMultiFieldConstruction(t *testing.T) {
	type record struct {
		a int32
		b float32
		c [8]byte
	}
	c, err := cell.New[record](cell.ModeDynamic, 64,
		cell.WithValue(record{a: 10, b: 20.5, c: [8]byte{'h', 'e', 'l', 'l', 'o'}}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Free()
	r := c.Ptr()
	if r.a != 10 || r.b <= 20.0 || r.c[0] != 'h' {
		t.Errorf("fields not forwarded: %+v", r)
	}
}

func TestLifetimeExactlyOnce(t *testing.T) {
	var ctors, dtors atomic.Int64

	const n = 16
	cells := make([]*cell.Cell[int], 0, n)
	for i := 0; i < n; i++ {
		c, err := cell.New[int](cell.ModeDynamic, 64,
			cell.WithInit(func(p *int) error {
				*p = 123
				ctors.Add(1)
				return nil
			}),
			cell.WithFinalizer(func(*int) {
				dtors.Add(1)
			}))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		cells = append(cells, c)
	}
	if got := ctors.Load(); got != n {
		t.Fatalf("constructor calls = %d, want %d", got, n)
	}
	if got := dtors.Load(); got != 0 {
		t.Fatalf("destructor calls before Free = %d, want 0", got)
	}
	for _, c := range cells {
		c.Free()
	}
	if got := dtors.Load(); got != n {
		t.Fatalf("destructor calls = %d, want %d", got, n)
	}
}

func TestDoubleFreePanics(t *testing.T) {
	c, err := cell.New[int](cell.ModeInline, 8, cell.WithValue(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Free()
	defer func() {
		if recover() == nil {
			t.Error("second Free did not panic")
		}
	}()
	c.Free()
}

func TestInvalidAlignmentRejected(t *testing.T) {
	for _, align := range []uintptr{0, 3, 12, 100} {
		if _, err := cell.New[int](cell.ModeDynamic, align); err == nil {
			t.Errorf("alignment %d accepted", align)
		}
	}
}

func TestInitFailureReleasesStorage(t *testing.T) {
	finalized := false
	_, err := cell.New[int](cell.ModeDynamic, 64,
		cell.WithInit(func(*int) error { return api.ErrResourceExhausted }),
		cell.WithFinalizer(func(*int) { finalized = true }))
	if err == nil {
		t.Fatal("construction succeeded despite failing init")
	}
	if finalized {
		t.Error("finalizer ran for a payload that was never constructed")
	}
}

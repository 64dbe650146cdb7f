// File: ringpool/property_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Randomized operation sequences checked against a queue model.

package ringpool_test

import (
	"math/rand"
	"testing"

	"github.com/momentics/memsentry/cell"
	"github.com/momentics/memsentry/ringpool"
)

func TestRingPropertyBased(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		p := ringpool.New[int](true, 63, 8, cell.ModeInline)
		if !p.Valid() {
			t.Fatalf("pool invalid: %v", p.Err())
		}

		var model []int
		next := 0
		for i := 0; i < 5000; i++ {
			switch rng.Intn(2) {
			case 0:
				c := newCallerCellNoFail(next)
				if p.Push(c) {
					model = append(model, next)
					next++
				} else {
					// Push must fail exactly when the model is at capacity.
					if len(model) != p.Cap() {
						t.Fatalf("seed %d op %d: push failed with %d/%d occupied",
							seed, i, len(model), p.Cap())
					}
					c.Free()
				}
			case 1:
				c := p.Pop()
				if c == nil {
					if len(model) != 0 {
						t.Fatalf("seed %d op %d: pop empty with %d occupied", seed, i, len(model))
					}
					continue
				}
				if len(model) == 0 {
					t.Fatalf("seed %d op %d: pop returned cell from empty model", seed, i)
				}
				want := model[0]
				model = model[1:]
				if *c.Ptr() != want {
					t.Fatalf("seed %d op %d: pop = %d, want %d (FIFO)", seed, i, *c.Ptr(), want)
				}
				c.Free()
			}
			if p.Len() != len(model) {
				t.Fatalf("seed %d op %d: Len = %d, model = %d", seed, i, p.Len(), len(model))
			}
			if p.Len() < 0 || p.Len() > p.Cap() {
				t.Fatalf("seed %d op %d: Len %d out of [0, %d]", seed, i, p.Len(), p.Cap())
			}
		}
		for p.Len() > 0 {
			if c := p.Pop(); c != nil {
				c.Free()
			}
		}
		p.Close()
	}
}

// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.8
//

// Implements the VLBL (virtual long baseline) position estimator.
// A single moving anchor, or several fixed ones, report ranges to the target
// one at a time. Each new range circle is intersected with the circles kept in
// the observation ring and the resulting ambiguous pairs are clustered by the
// heap pair.

package govlbl

import (
	"fmt"
	"iter"
)

// VlblOpt contains the sizes of the estimator buffers
type VlblOpt struct {
	RingSize int // Number of range circles kept for intersection
	HeapSize int // Number of candidate points kept in each heap
}

func NewVlblOpt() *VlblOpt {
	return &VlblOpt{
		RingSize: RING_SIZE,
		HeapSize: HEAP_SIZE,
	}
}

// Fix is a position estimate on the local plane with its dispersion
type Fix struct {
	X    float64
	Y    float64
	Disp float64
}

func (f Fix) Pos() Point2D {
	return Point2D{X: f.X, Y: f.Y}
}

func (f Fix) String() string {
	return fmt.Sprintf("%s disp=%.4f", f.Pos(), f.Disp)
}

// Estimator keeps the observation ring, the heap pair and the current and best fixes.
// It has no internal locking. Callers feeding it from more than one goroutine
// must serialize Ingest, Reset and the accessors themselves.
type Estimator struct {
	ring  *Ring[RangeCircle]
	heaps *HeapPair

	cur    Fix
	curOK  bool
	best   Fix
	bestOK bool
}

func NewEstimator(opt *VlblOpt) (*Estimator, error) {
	if opt == nil {
		opt = NewVlblOpt()
	}
	if opt.RingSize < 2 {
		return nil, fmt.Errorf("ring size %d: %w", opt.RingSize, ErrRingSize)
	}
	if opt.HeapSize < 1 {
		return nil, fmt.Errorf("heap size %d: %w", opt.HeapSize, ErrHeapSize)
	}
	e := &Estimator{
		ring:  NewRing[RangeCircle](opt.RingSize),
		heaps: NewHeapPair(opt.HeapSize),
	}
	e.Reset()
	return e, nil
}

// Reset forgets all circles, heaps and fixes
func (e *Estimator) Reset() {
	e.ring.Reset()
	e.heaps.Reset()
	e.cur = Fix{Disp: DispNoFix}
	e.curOK = false
	e.best = Fix{Disp: DispNoFix}
	e.bestOK = false
}

// Ingest intersects c with every stored circle, clusters the resulting pairs and then stores c.
// It returns the current fix, ok is false until the heaps hold enough points to
// compare their dispersions.
//
// The range must be finite and non-negative and the anchor must differ from the
// stored ones. These are not checked and invalid input propagates through the result.
func (e *Estimator) Ingest(c RangeCircle) (Fix, bool) {

	for _, s := range e.ring.Values() {
		p1, p2, ok := Intersect(s, c)
		if !ok {
			if DBG_ >= 2 {
				PrintA("\tno intersection: %s / %s\n", s, c)
			}
			continue
		}
		if DBG_ >= 2 {
			PrintA("\tintersection: %s %s\n", p1, p2)
		}

		e.heaps.Process(p1, p2)

		if f, ok := e.heaps.Select(); ok {
			e.cur = f
			e.curOK = true
			if f.Disp < e.best.Disp {
				e.best = f
				e.bestOK = true
			}
		}
		if DBG_ >= 3 {
			PrintA("\t\tL: %s\n", e.heaps.L)
			PrintA("\t\tR: %s\n", e.heaps.R)
		}
	}

	e.ring.Push(c)

	return e.cur, e.curOK
}

// Current returns the latest fix
func (e *Estimator) Current() (Fix, bool) {
	return e.cur, e.curOK
}

// Best returns the fix with the lowest dispersion seen since the last Reset
func (e *Estimator) Best() (Fix, bool) {
	return e.best, e.bestOK
}

// Heaps returns the two heaps for inspection
func (e *Estimator) Heaps() (l, r *Heap) {
	return e.heaps.L, e.heaps.R
}

// Circles yields the range circles currently kept in the observation ring
func (e *Estimator) Circles() iter.Seq[RangeCircle] {
	return e.ring.All()
}

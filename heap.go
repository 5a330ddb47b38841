// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.6
//

// Separates the true position track from its mirror image.
// Every intersection pair puts one point into each heap so that each heap keeps
// the point nearest to its own centroid. The heap following the true position
// stays compact while the mirror heap scatters as the anchor geometry changes.

package govlbl

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Heap is a bounded cluster of candidate points with its centroid and dispersion.
type Heap struct {
	xs   *Ring[float64]
	ys   *Ring[float64]
	cen  Point2D
	disp float64
}

func NewHeap(capacity int) *Heap {
	return &Heap{
		xs:   NewRing[float64](capacity),
		ys:   NewRing[float64](capacity),
		disp: DispUnknown,
	}
}

func (h *Heap) Reset() {
	h.xs.Reset()
	h.ys.Reset()
	h.cen = Point2D{}
	h.disp = DispUnknown
}

func (h *Heap) Len() int {
	return h.xs.Len()
}

func (h *Heap) Centroid() Point2D {
	return h.cen
}

// Dispersion of the stored points, DispUnknown until recomputed over two or more points
func (h *Heap) Disp() float64 {
	return h.disp
}

// Points returns a copy of the stored points in storage order
func (h *Heap) Points() []Point2D {
	ps := make([]Point2D, h.Len())
	for i := range ps {
		ps[i] = Point2D{X: h.xs.Values()[i], Y: h.ys.Values()[i]}
	}
	return ps
}

func (h *Heap) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "n=%d c=%s disp=%.4f:", h.Len(), h.cen, h.disp)
	for _, p := range h.Points() {
		fmt.Fprintf(&sb, " %s", p)
	}
	return sb.String()
}

// Place the first point of an empty heap
func (h *Heap) seed(p Point2D) {
	h.Reset()
	h.add(p)
	h.cen = p
}

func (h *Heap) add(p Point2D) {
	h.xs.Push(p.X)
	h.ys.Push(p.Y)
}

// Recalculate centroid and dispersion over all stored points.
// sx and sy are the per-axis mean squared deviations (population variances) and
// the dispersion is sqrt(sx^2 + sy^2).
func (h *Heap) update() {
	if h.Len() == 0 {
		return
	}
	mx, sx := stat.PopMeanVariance(h.xs.Values(), nil)
	my, sy := stat.PopMeanVariance(h.ys.Values(), nil)
	h.cen = Point2D{X: mx, Y: my}
	h.disp = math.Sqrt(sx*sx + sy*sy)
}

// HeapPair holds the two heaps fed by every ambiguous intersection pair.
// The labels L and R carry no geometric meaning.
type HeapPair struct {
	L *Heap
	R *Heap
}

func NewHeapPair(capacity int) *HeapPair {
	return &HeapPair{
		L: NewHeap(capacity),
		R: NewHeap(capacity),
	}
}

func (hp *HeapPair) Reset() {
	hp.L.Reset()
	hp.R.Reset()
}

func (hp *HeapPair) Empty() bool {
	return hp.L.Len() == 0 && hp.R.Len() == 0
}

// Process assigns the ambiguous pair (p1, p2) one point per heap.
func (hp *HeapPair) Process(p1, p2 Point2D) {

	// The first pair seeds the heaps directly
	if hp.Empty() {
		hp.L.seed(p1)
		hp.R.seed(p2)
		return
	}

	// Find which point fits which heap best.
	// Candidates are evaluated in the order p1-L, p1-R, p2-L, p2-R and the first minimum wins.
	ds := [4]float64{
		Dist2D(p1, hp.L.cen),
		Dist2D(p1, hp.R.cen),
		Dist2D(p2, hp.L.cen),
		Dist2D(p2, hp.R.cen),
	}
	k := 0
	for i := 1; i < len(ds); i++ {
		if ds[i] < ds[k] {
			k = i
		}
	}
	if DBG_ >= 3 {
		PrintA("\t\tdist: %10.3f %10.3f %10.3f %10.3f -> %d\n", ds[0], ds[1], ds[2], ds[3], k)
	}

	if k == 0 || k == 3 {
		hp.L.add(p1)
		hp.R.add(p2)
	} else {
		hp.L.add(p2)
		hp.R.add(p1)
	}

	hp.L.update()
	hp.R.update()
}

// Select returns the centroid and dispersion of the heap with the lower dispersion.
// ok is false while neither heap has a known dispersion.
func (hp *HeapPair) Select() (fix Fix, ok bool) {
	if hp.L.disp == DispUnknown && hp.R.disp == DispUnknown {
		return fix, false
	}
	h := hp.R
	if hp.R.disp == DispUnknown || (hp.L.disp != DispUnknown && hp.L.disp < hp.R.disp) {
		h = hp.L
	}
	return Fix{X: h.cen.X, Y: h.cen.Y, Disp: h.disp}, true
}

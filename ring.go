// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.4
//

package govlbl

import "iter"

// Ring is a fixed capacity buffer that overwrites its oldest value once full.
// The storage is allocated once by NewRing.
type Ring[T any] struct {
	buf []T
	cnt int // Number of stored values (never exceeds len(buf))
	idx int // Slot written by the next Push
}

func NewRing[T any](capacity int) *Ring[T] {
	return &Ring[T]{buf: make([]T, max(capacity, 1))}
}

func (r *Ring[T]) Reset() {
	r.cnt = 0
	r.idx = 0
}

func (r *Ring[T]) Push(v T) {
	r.buf[r.idx] = v
	r.idx = (r.idx + 1) % len(r.buf)
	if r.cnt < len(r.buf) {
		r.cnt++
	}
}

func (r *Ring[T]) Len() int {
	return r.cnt
}

func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Values returns the stored values in storage order.
// The slice aliases the ring and is only valid until the next Push.
func (r *Ring[T]) Values() []T {
	return r.buf[:r.cnt]
}

// All yields the stored values in storage order.
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < r.cnt; i++ {
			if !yield(r.buf[i]) {
				return
			}
		}
	}
}

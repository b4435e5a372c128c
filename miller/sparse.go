/*
 * sparse.go, part of gowave.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package miller

import (
	"github.com/rmera/gowave/lattice"
)

//Both representations satisfy the shared access contract.
var _ Store[float64] = &Grid[float64]{}
var _ Store[complex128] = &Map[complex128]{}

//Map is sparse scalar or complex data over an unbounded Miller-index domain.
//Unset keys read as the zero of the element type. A Map may grow by
//insertion before being frozen or densified.
type Map[T Value] struct {
	basis *lattice.Reciprocal
	m     map[[3]int]T
}

//NewMap returns an empty Map over the given reciprocal basis.
func NewMap[T Value](basis *lattice.Reciprocal) *Map[T] {
	return &Map[T]{basis: basis, m: make(map[[3]int]T)}
}

//Basis returns the reciprocal basis the map indices refer to.
func (m *Map[T]) Basis() *lattice.Reciprocal {
	return m.basis
}

//At returns the element stored at the given Miller index, or zero if the
//index was never set.
func (m *Map[T]) At(h, k, l int) T {
	return m.m[[3]int{h, k, l}]
}

//Set inserts or overwrites the element at the given Miller index.
func (m *Map[T]) Set(h, k, l int, v T) {
	m.m[[3]int{h, k, l}] = v
}

//Unset removes the given Miller index, so it reads as zero again.
func (m *Map[T]) Unset(h, k, l int) {
	delete(m.m, [3]int{h, k, l})
}

//Len returns the number of explicitly stored entries.
func (m *Map[T]) Len() int {
	return len(m.m)
}

//Keys returns all explicitly stored indices, in no particular order.
func (m *Map[T]) Keys() [][3]int {
	keys := make([][3]int, 0, len(m.m))
	for k := range m.m {
		keys = append(keys, k)
	}
	return keys
}

//ForEach calls f once per explicitly stored entry, in no particular order.
func (m *Map[T]) ForEach(f func(idx [3]int, v T)) {
	for k, v := range m.m {
		f(k, v)
	}
}

//Equal returns whether the two maps store exactly the same entries.
func (m *Map[T]) Equal(o *Map[T]) bool {
	if len(m.m) != len(o.m) {
		return false
	}
	for k, v := range m.m {
		ov, ok := o.m[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

//Densify converts a sparse map into a dense grid. It first enumerates all
//stored keys to find the per-axis span, then picks the smallest storage size
//whose centered logical range covers that span, allocates a zero-filled
//array of that shape, and scatters the stored values in. An empty map
//densifies to a single-element grid.
func Densify[T Value](m *Map[T]) *Grid[T] {
	var size [3]int
	for i := 0; i < 3; i++ {
		size[i] = 1
	}
	first := true
	var min, max [3]int
	for k := range m.m {
		for i := 0; i < 3; i++ {
			if first || k[i] < min[i] {
				min[i] = k[i]
			}
			if first || k[i] > max[i] {
				max[i] = k[i]
			}
		}
		first = false
	}
	if !first {
		for i := 0; i < 3; i++ {
			size[i] = coveringSize(min[i], max[i])
		}
	}
	g := &Grid[T]{basis: m.basis, data: make([]T, size[0]*size[1]*size[2]), size: size}
	for k, v := range m.m {
		g.Set(k[0], k[1], k[2], v)
	}
	return g
}

//coveringSize returns the smallest n whose centered range [-(n/2), n-(n/2)-1]
//contains the inclusive span min..max.
func coveringSize(min, max int) int {
	n := 1
	if min < 0 && -2*min > n {
		n = -2 * min
	}
	if max > 0 && 2*max+1 > n {
		n = 2*max + 1
	}
	return n
}

//Sparsify converts a dense grid into a sparse map, retaining only the
//entries whose value differs from zero. Keys are the grid's centered logical
//Miller indices.
func Sparsify[T Value](g *Grid[T]) *Map[T] {
	m := NewMap[T](g.basis)
	var zero T
	g.ForEach(func(idx [3]int, v T) {
		if v != zero {
			m.m[idx] = v
		}
	})
	return m
}

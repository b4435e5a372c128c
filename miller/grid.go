/*
 * grid.go, part of gowave.
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
	"fmt"
	"math"
	"math/cmplx"

	"github.com/rmera/gowave/lattice"
)

//Value is the constraint for the element types a grid or map can hold.
type Value interface {
	float64 | complex128
}

//Store is the access contract shared by the dense Grid and the sparse Map.
//Both address elements by signed Miller index triples.
type Store[T Value] interface {
	At(h, k, l int) T
	Set(h, k, l int, v T)
	ForEach(f func(idx [3]int, v T))
}

//Box is an inclusive Miller-index range per axis, the bounding box of a set
//of reciprocal lattice vectors.
type Box struct {
	Min, Max [3]int
}

//Sizes returns the number of indices enclosed along each axis.
func (b Box) Sizes() [3]int {
	var s [3]int
	for i := 0; i < 3; i++ {
		s[i] = b.Max[i] - b.Min[i] + 1
	}
	return s
}

//Contains returns whether the index triple lies inside the box.
func (b Box) Contains(h, k, l int) bool {
	idx := [3]int{h, k, l}
	for i := 0; i < 3; i++ {
		if idx[i] < b.Min[i] || idx[i] > b.Max[i] {
			return false
		}
	}
	return true
}

//Widen returns a box that keeps, per axis, whichever of the two ranges is
//larger. This is the folding rule used to pre-size export buffers over a set
//of grids.
func (b Box) Widen(o Box) Box {
	ret := b
	for i := 0; i < 3; i++ {
		if o.Max[i]-o.Min[i] > ret.Max[i]-ret.Min[i] {
			ret.Min[i] = o.Min[i]
			ret.Max[i] = o.Max[i]
		}
	}
	return ret
}

//centeredBox returns the canonical centered logical range for the given
//storage sizes: [-(n/2), n-(n/2)-1] along each axis.
func centeredBox(size [3]int) Box {
	var b Box
	for i := 0; i < 3; i++ {
		b.Min[i] = -(size[i] / 2)
		b.Max[i] = b.Min[i] + size[i] - 1
	}
	return b
}

//Grid is dense scalar or complex data over a bounded Miller-index box,
//backed by a flat array in discrete-transform storage order (x fastest,
//zero-frequency component at offset 0). The size per axis is fixed at
//construction. The grid owns its backing storage exclusively.
type Grid[T Value] struct {
	basis *lattice.Reciprocal
	data  []T
	size  [3]int
}

//NewGrid returns a Grid over the given reciprocal basis, wrapping the given
//pre-populated flat array, which must hold exactly size[0]*size[1]*size[2]
//elements in storage order. The array is not copied; the grid takes
//ownership.
func NewGrid[T Value](basis *lattice.Reciprocal, data []T, size [3]int) (*Grid[T], error) {
	n := 1
	for i := 0; i < 3; i++ {
		if size[i] < 1 {
			return nil, Error{fmt.Sprintf("non-positive grid size %v", size), []string{"NewGrid"}, true}
		}
		n *= size[i]
	}
	if len(data) != n {
		return nil, Error{fmt.Sprintf("data length %d does not match grid size %v (%d elements)", len(data), size, n), []string{"NewGrid"}, true}
	}
	return &Grid[T]{basis: basis, data: data, size: size}, nil
}

//ZeroGrid returns a zero-filled Grid of the given size.
func ZeroGrid[T Value](basis *lattice.Reciprocal, size [3]int) (*Grid[T], error) {
	n := 1
	for i := 0; i < 3; i++ {
		if size[i] < 1 {
			return nil, Error{fmt.Sprintf("non-positive grid size %v", size), []string{"ZeroGrid"}, true}
		}
		n *= size[i]
	}
	return &Grid[T]{basis: basis, data: make([]T, n), size: size}, nil
}

//Basis returns the reciprocal basis the grid indices refer to.
func (g *Grid[T]) Basis() *lattice.Reciprocal {
	return g.basis
}

//Sizes returns the storage size along each axis.
func (g *Grid[T]) Sizes() [3]int {
	return g.size
}

//Len returns the total number of elements.
func (g *Grid[T]) Len() int {
	return len(g.data)
}

//Data returns the backing array in storage order, without copying. Offset 0
//is the zero-frequency component. Mutating the slice mutates the grid.
func (g *Grid[T]) Data() []T {
	return g.data
}

//Bounds returns the centered logical Miller-index range of the grid, e.g.
//-4..3 along an axis of size 8.
func (g *Grid[T]) Bounds() Box {
	return centeredBox(g.size)
}

//wrap folds any signed index onto 0..n-1.
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

//offset translates a signed Miller index triple to a storage offset. Indices
//outside the logical range wrap around silently; i and i+n address the same
//slot along an axis of size n.
func (g *Grid[T]) offset(h, k, l int) int {
	return wrap(h, g.size[0]) + g.size[0]*(wrap(k, g.size[1])+g.size[1]*wrap(l, g.size[2]))
}

//At returns the element at the given signed Miller index.
func (g *Grid[T]) At(h, k, l int) T {
	return g.data[g.offset(h, k, l)]
}

//Set stores v at the given signed Miller index.
func (g *Grid[T]) Set(h, k, l int, v T) {
	g.data[g.offset(h, k, l)] = v
}

//ForEach calls f once per element, passing the centered logical index and
//the value. Iteration is in storage order, but callers must not rely on any
//particular order.
func (g *Grid[T]) ForEach(f func(idx [3]int, v T)) {
	o := 0
	for z := 0; z < g.size[2]; z++ {
		for y := 0; y < g.size[1]; y++ {
			for x := 0; x < g.size[0]; x++ {
				f([3]int{logical(x, g.size[0]), logical(y, g.size[1]), logical(z, g.size[2])}, g.data[o])
				o++
			}
		}
	}
}

//logical is the inverse of wrap restricted to the centered range: it maps a
//storage offset along an axis of size n back to the signed index in
//[-(n/2), n-(n/2)-1].
func logical(o, n int) int {
	if o < n-n/2 {
		return o
	}
	return o - n
}

//Copy returns a grid with freshly allocated storage holding the same data
//and referring to the same basis.
func (g *Grid[T]) Copy() *Grid[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)
	return &Grid[T]{basis: g.basis, data: data, size: g.size}
}

//ApproxEqual returns whether the two grids agree element-wise within tol.
//The grids must share the same shape and the same basis; a mismatch there is
//an error, not inequality.
func (g *Grid[T]) ApproxEqual(o *Grid[T], tol float64) (bool, error) {
	if err := g.consistentWith(o, "ApproxEqual"); err != nil {
		return false, err
	}
	for i, v := range g.data {
		if vabs(v-o.data[i]) > tol {
			return false, nil
		}
	}
	return true, nil
}

//consistentWith checks that two grids can be compared or combined: same
//shape, and bases that are both nil, identical, or element-wise equal.
func (g *Grid[T]) consistentWith(o *Grid[T], caller string) error {
	if g.size != o.size {
		return Error{fmt.Sprintf("mismatched grid sizes %v and %v", g.size, o.size), []string{caller}, true}
	}
	if g.basis == o.basis {
		return nil
	}
	if g.basis == nil || o.basis == nil || !g.basis.ApproxEqual(o.basis, 1e-12) {
		return Error{"grids refer to different bases", []string{caller}, true}
	}
	return nil
}

//vabs returns the magnitude of a grid element.
func vabs[T Value](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return math.Abs(x)
	case complex128:
		return cmplx.Abs(x)
	}
	return 0 //unreachable, the constraint is closed
}

//Abs returns a new float64 grid holding the element-wise magnitudes of g.
func Abs[T Value](g *Grid[T]) *Grid[float64] {
	data := make([]float64, len(g.data))
	for i, v := range g.data {
		data[i] = vabs(v)
	}
	return &Grid[float64]{basis: g.basis, data: data, size: g.size}
}

//Abs2 returns a new float64 grid holding the element-wise squared
//magnitudes of g.
func Abs2[T Value](g *Grid[T]) *Grid[float64] {
	data := make([]float64, len(g.data))
	for i, v := range g.data {
		a := vabs(v)
		data[i] = a * a
	}
	return &Grid[float64]{basis: g.basis, data: data, size: g.size}
}

//VoxelSize returns the real-space volume element recovered by an inverse
//transform of the grid data: the volume of the dual (real-space) cell
//divided by the number of grid elements. It panics if the grid has no basis,
//as that is a programmer error.
func VoxelSize[T Value](g *Grid[T]) float64 {
	if g.basis == nil {
		panic(ErrNoBasis)
	}
	return lattice.ToReal(g.basis).Volume() / float64(g.Len())
}

//Wrapped returns a periodic export view of the grid: a fresh array with n+1
//samples per axis, where the first sample along each axis is duplicated at
//the high end, as periodic grid file formats expect for the repeated
//boundary point. The returned sizes are the per-axis sample counts of the
//view. The view starts at the zero-frequency component and follows storage
//order.
func (g *Grid[T]) Wrapped() ([]T, [3]int) {
	ws := [3]int{g.size[0] + 1, g.size[1] + 1, g.size[2] + 1}
	out := make([]T, ws[0]*ws[1]*ws[2])
	o := 0
	for z := 0; z < ws[2]; z++ {
		for y := 0; y < ws[1]; y++ {
			for x := 0; x < ws[0]; x++ {
				out[o] = g.data[g.offset(x, y, z)]
				o++
			}
		}
	}
	return out, ws
}

//Errors

//Error is the miller package error type. It satisfies wave.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return fmt.Sprintf("goWave/miller: %s", err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics. It satisfies the error interface,
//but for recoverable conditions use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNoBasis = PanicMsg("goWave/miller: grid has no basis")
)

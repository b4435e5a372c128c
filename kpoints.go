/*
 * kpoints.go, part of gowave.
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

package wave

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

//KPointList is an ordered list of fractional-coordinate Brillouin-zone
//sample points with parallel weights. Weights are always divided by their
//sum at construction, whether or not the input was already normalized.
type KPointList struct {
	points  [][3]float64
	weights []float64
}

//NewKPointList returns a KPointList from parallel slices of fractional
//coordinates and weights. It returns an error if the slice lengths differ or
//if the weights sum to zero, which makes normalization impossible. Both
//slices are copied.
func NewKPointList(points [][3]float64, weights []float64) (*KPointList, error) {
	if len(points) != len(weights) {
		return nil, CError{fmt.Sprintf("%d points but %d weights", len(points), len(weights)), []string{"NewKPointList"}, true}
	}
	sum := floats.Sum(weights)
	if sum == 0 {
		return nil, CError{"weights sum to zero, can't normalize", []string{"NewKPointList"}, true}
	}
	K := new(KPointList)
	K.points = make([][3]float64, len(points))
	copy(K.points, points)
	K.weights = make([]float64, len(weights))
	floats.ScaleTo(K.weights, 1/sum, weights)
	return K, nil
}

//Len returns the number of k-points.
func (K *KPointList) Len() int {
	return len(K.points)
}

//At returns the i-th fractional coordinate and its normalized weight. It
//panics if i is out of range, as that is a programmer error.
func (K *KPointList) At(i int) ([3]float64, float64) {
	if i < 0 || i >= len(K.points) {
		panic(ErrKPointRange)
	}
	return K.points[i], K.weights[i]
}

//Points returns a copy of the fractional coordinates.
func (K *KPointList) Points() [][3]float64 {
	ret := make([][3]float64, len(K.points))
	copy(ret, K.points)
	return ret
}

//Weights returns a copy of the normalized weights.
func (K *KPointList) Weights() []float64 {
	ret := make([]float64, len(K.weights))
	copy(ret, K.weights)
	return ret
}

//Slice returns a new KPointList holding the points lo..hi-1. As the result
//goes through construction, its weights are renormalized over the sub-list.
func (K *KPointList) Slice(lo, hi int) (*KPointList, error) {
	if lo < 0 || hi > len(K.points) || lo >= hi {
		return nil, CError{fmt.Sprintf("invalid slice range %d:%d for %d k-points", lo, hi, len(K.points)), []string{"Slice"}, true}
	}
	ret, err := NewKPointList(K.points[lo:hi], K.weights[lo:hi])
	if err != nil {
		return nil, errDecorate(err, "Slice")
	}
	return ret, nil
}

//Equal returns whether the two lists hold exactly the same points with
//exactly the same weights, in the same order.
func (K *KPointList) Equal(o *KPointList) bool {
	if len(K.points) != len(o.points) {
		return false
	}
	for i, p := range K.points {
		if p != o.points[i] || K.weights[i] != o.weights[i] {
			return false
		}
	}
	return true
}

//KPointList implements BZMesh: an explicit list is its own expansion.
func (K *KPointList) KPointList() (*KPointList, error) {
	return K, nil
}

//KPointGrid describes a regular Brillouin-zone sampling mesh by a 3x3
//integer generating matrix and a fractional origin shift. The shift is
//folded into the canonical [-0.5, 0.5) range at construction by subtracting
//its nearest-integer rounding.
type KPointGrid struct {
	gen   [3][3]int
	shift [3]float64
}

//NewKPointGrid returns a KPointGrid with the given generating matrix and
//origin shift. All matrix entries must be non-negative.
func NewKPointGrid(gen [3][3]int, shift [3]float64) (*KPointGrid, error) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if gen[i][j] < 0 {
				return nil, CError{fmt.Sprintf("negative entry %d at %d,%d in mesh generating matrix", gen[i][j], i, j), []string{"NewKPointGrid"}, true}
			}
		}
	}
	M := new(KPointGrid)
	M.gen = gen
	for i, s := range shift {
		M.shift[i] = s - math.Floor(s+0.5)
	}
	return M, nil
}

//Matrix returns the integer generating matrix.
func (M *KPointGrid) Matrix() [3][3]int {
	return M.gen
}

//Shift returns the origin shift, folded into [-0.5, 0.5).
func (M *KPointGrid) Shift() [3]float64 {
	return M.shift
}

//KPointList expands the mesh into an explicit list of k-points.
//TODO: implement the expansion by enumerating the det(gen) lattice
//translations of inverse(gen) and folding them plus the shift into the
//first Brillouin zone; until then this returns a non-critical error.
func (M *KPointGrid) KPointList() (*KPointList, error) {
	return nil, CError{"expansion of a mesh into an explicit k-point list is not implemented yet", []string{"KPointGrid.KPointList"}, false}
}

/*
 * lattice_test.go, part of gowave.
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

package lattice

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

//A real basis equal to 2*Identity must convert to pi*Identity in reciprocal
//space, with volumes 8 and pi^3.
func TestScaling(Te *testing.T) {
	fmt.Println("Lattice scaling test!")
	direct, err := New[RealSpace]([]float64{2, 0, 0, 0, 2, 0, 0, 0, 2})
	if err != nil {
		Te.Error(err)
	}
	recip := ToReciprocal(direct)
	for i := 0; i < 3; i++ {
		v := recip.Vector(i)
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = math.Pi
			}
			if math.Abs(v[j]-want) > tol {
				Te.Errorf("reciprocal of 2I is not pi*I: vector %d = %v", i, v)
			}
		}
	}
	if math.Abs(direct.Volume()-8) > tol {
		Te.Errorf("real volume %f, want 8", direct.Volume())
	}
	if math.Abs(recip.Volume()-math.Pow(math.Pi, 3)) > tol {
		Te.Errorf("reciprocal volume %f, want pi^3", recip.Volume())
	}
	fmt.Println("volumes:", direct.Volume(), recip.Volume())
}

//Round-trip duality: to_real(to_reciprocal(b)) ~ b, dual(dual(b)) ~ b and
//matrix(dual(b))^T matrix(b) ~ 2pi I, on a skewed (triclinic-ish) cell.
func TestDualityRoundTrip(Te *testing.T) {
	data := []float64{3.2, 0.1, 0.0, 0.4, 2.9, 0.2, 0.0, 0.3, 5.1}
	b, err := New[RealSpace](data)
	if err != nil {
		Te.Error(err)
	}
	back := ToReal(ToReciprocal(b))
	if !b.ApproxEqual(back, tol) {
		Te.Errorf("duality round trip failed:\nb: %v\nback: %v", mat.Formatted(b.Matrix()), mat.Formatted(back.Matrix()))
	}
	var prod mat.Dense
	prod.Mul(ToReciprocal(b).Matrix().T(), b.Matrix())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 2 * math.Pi
			}
			if math.Abs(prod.At(i, j)-want) > tol {
				Te.Errorf("dual(b)^T b != 2pi I at %d,%d: %f", i, j, prod.At(i, j))
			}
		}
	}
}

func TestConstructionErrors(Te *testing.T) {
	_, err := New[RealSpace]([]float64{1, 2, 3, 4})
	if err == nil {
		Te.Error("expected error for non-square input")
	}
	fmt.Println("non-square:", err)
	//singular but not all-zero
	_, err = New[RealSpace]([]float64{1, 0, 0, 2, 0, 0, 0, 0, 1})
	if err == nil {
		Te.Error("expected error for singular basis")
	}
	fmt.Println("singular:", err)
	//the zero matrix is the accepted "unspecified" sentinel
	z, err := New[RealSpace](make([]float64, 9))
	if err != nil {
		Te.Error(err)
	}
	if !z.IsZero() {
		Te.Error("zero basis not detected as zero")
	}
}

func TestGeometry(Te *testing.T) {
	//hexagonal-ish cell: a = b = 2, c = 3, gamma = 120 deg
	b, err := FromVectors[RealSpace](
		[3]float64{2, 0, 0},
		[3]float64{-1, math.Sqrt(3), 0},
		[3]float64{0, 0, 3},
	)
	if err != nil {
		Te.Error(err)
	}
	l := b.Lengths()
	fmt.Println("lengths:", l)
	if math.Abs(l[0]-2) > tol || math.Abs(l[1]-2) > tol || math.Abs(l[2]-3) > tol {
		Te.Errorf("wrong lengths %v", l)
	}
	cell := b.CellCosAngles()
	//alpha = beta = 90, gamma = 120
	if math.Abs(cell[0]) > tol || math.Abs(cell[1]) > tol || math.Abs(cell[2]+0.5) > tol {
		Te.Errorf("wrong cell angle cosines %v", cell)
	}
	g := b.Gram()
	if math.Abs(g.At(0, 0)-4) > tol || math.Abs(g.At(0, 1)+2) > tol {
		Te.Errorf("wrong Gram matrix %v", mat.Formatted(g))
	}
	//V = |a x b| * c = 2*sqrt(3) * 3
	if math.Abs(b.Volume()-6*math.Sqrt(3)) > tol {
		Te.Errorf("wrong volume %f", b.Volume())
	}
}

func TestTriangularize(Te *testing.T) {
	b, err := New[RealSpace]([]float64{0, 2, 0, 2, 0, 0, 0, 0, 3}) //left-handed on purpose
	if err != nil {
		Te.Error(err)
	}
	tri := b.Triangularize()
	m := tri.Matrix()
	for i := 0; i < 3; i++ {
		if m.At(i, i) <= 0 {
			Te.Errorf("non-positive diagonal at %d: %f", i, m.At(i, i))
		}
		for j := 0; j < i; j++ {
			if math.Abs(m.At(i, j)) > tol {
				Te.Errorf("not upper triangular at %d,%d: %f", i, j, m.At(i, j))
			}
		}
	}
	//volume is preserved by the orthogonal factor
	if math.Abs(tri.Volume()-b.Volume()) > tol {
		Te.Errorf("triangularization changed the volume: %f vs %f", tri.Volume(), b.Volume())
	}
	//supercell: doubling along the first axis doubles the volume
	super, err := b.TriangularizeSupercell([3][3]int{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	if err != nil {
		Te.Error(err)
	}
	if math.Abs(super.Volume()-2*b.Volume()) > tol {
		Te.Errorf("supercell volume %f, want %f", super.Volume(), 2*b.Volume())
	}
	_, err = b.TriangularizeSupercell([3][3]int{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}})
	if err == nil {
		Te.Error("expected error for singular supercell transform")
	}
}

func TestMaxMillerIndex(Te *testing.T) {
	//cubic cell of side a: reciprocal vectors have length 2pi/a, and the
	//number of representable indices inside the cutoff sphere along each
	//axis is floor(sqrt(c*ecut)*a/(2pi)) + 1.
	a := 5.0
	direct, err := New[RealSpace]([]float64{a, 0, 0, 0, a, 0, 0, 0, a})
	if err != nil {
		Te.Error(err)
	}
	recip := ToReciprocal(direct)
	const c = 0.262465831 //2m/hbar^2 in 1/(eV Angstrom^2), the caller's choice
	ecut := 30.0
	n := MaxMillerIndex(recip, ecut, c)
	want := int(math.Floor(math.Sqrt(c*ecut)*a/(2*math.Pi))) + 1
	fmt.Println("max Miller indices:", n, "want:", want)
	for i := 0; i < 3; i++ {
		if n[i] != want {
			Te.Errorf("axis %d: got %d want %d", i, n[i], want)
		}
	}
}

func TestMaxMillerIndexSkewed(Te *testing.T) {
	//a strongly anisotropic, skewed reciprocal cell: the second vector is
	//nearly parallel to the first, so small combinations like n*(b1-b0)
	//stay inside the cutoff sphere for n far beyond what any single
	//vector length suggests. Every lattice vector inside the sphere must
	//still fall within the per-axis bounds.
	b0 := [3]float64{1, 0, 0}
	b1 := [3]float64{1, 0.1, 0}
	b2 := [3]float64{0, 0, 5}
	recip, err := FromVectors[ReciprocalSpace](b0, b1, b2)
	if err != nil {
		Te.Error(err)
	}
	ecut := 4.0
	gmax := math.Sqrt(ecut) //c = 1
	n := MaxMillerIndex(recip, ecut, 1.0)
	fmt.Println("skewed max Miller indices:", n)
	//the third vector is long and orthogonal to the skewed plane, so its
	//bound must stay small: only n2 = 0 fits inside the sphere.
	if n[2] != 1 {
		Te.Errorf("third axis bound %d, want 1", n[2])
	}
	const sweep = 25
	for i := -sweep; i <= sweep; i++ {
		for j := -sweep; j <= sweep; j++ {
			for k := -sweep; k <= sweep; k++ {
				var g [3]float64
				for d := 0; d < 3; d++ {
					g[d] = float64(i)*b0[d] + float64(j)*b1[d] + float64(k)*b2[d]
				}
				if math.Sqrt(g[0]*g[0]+g[1]*g[1]+g[2]*g[2]) > gmax {
					continue
				}
				if abs(i) > n[0] || abs(j) > n[1] || abs(k) > n[2] {
					Te.Errorf("lattice vector (%d,%d,%d) inside the cutoff sphere exceeds the bounds %v", i, j, k, n)
				}
			}
		}
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

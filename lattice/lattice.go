/*
 * lattice.go, part of gowave.
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
	"log"
	"math"

	"gonum.org/v1/gonum/mat"
)

//appzero is the tolerance under which a determinant is considered zero.
const appzero float64 = 1e-12

//RealSpace and ReciprocalSpace are the compile-time tags for the two dual
//coordinate spaces a Basis can live in.
type RealSpace struct{}
type ReciprocalSpace struct{}

//Space is the constraint satisfied by the two space tags.
type Space interface {
	RealSpace | ReciprocalSpace
}

//Basis is a set of 3 lattice basis vectors in the space S. The vectors are
//the columns of the matrix form. A Basis is built once, validated, and then
//used as an immutable value.
type Basis[S Space] struct {
	vecs [3][3]float64 //vecs[i] is the i-th basis vector
}

//Real is a basis of the direct (real-space) lattice.
type Real = Basis[RealSpace]

//Reciprocal is a basis of the reciprocal lattice.
type Reciprocal = Basis[ReciprocalSpace]

//New returns a Basis built from a row-major 3x3 matrix given as a flat slice,
//so data[3*i+j] is the j-th component of... the i-th row, meaning the k-th
//basis vector is the k-th column (data[k], data[3+k], data[6+k]).
//It returns an error if the slice does not hold exactly 9 elements or if the
//matrix is singular. The all-zero matrix is accepted as the "unspecified
//basis" sentinel. A negative determinant (left-handed basis) is only warned
//about, not rejected.
func New[S Space](data []float64) (*Basis[S], error) {
	if len(data) != 9 {
		return nil, Error{fmt.Sprintf("basis needs a 3x3 matrix, got %d elements", len(data)), []string{"New"}, true}
	}
	b := new(Basis[S])
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			b.vecs[j][i] = data[3*i+j]
		}
	}
	if b.IsZero() {
		return b, nil
	}
	d := b.det()
	if math.Abs(d) < appzero {
		return nil, Error{"singular basis matrix", []string{"New"}, true}
	}
	if d < 0 {
		log.Printf("goWave/lattice.New: left-handed basis (det = %f)", d)
	}
	return b, nil
}

//FromDense returns a Basis built from a gonum Dense matrix, which must be
//3x3. Validation is as in New.
func FromDense[S Space](m *mat.Dense) (*Basis[S], error) {
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return nil, Error{fmt.Sprintf("basis matrix must be square 3x3, got %dx%d", r, c), []string{"FromDense"}, true}
	}
	data := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			data[3*i+j] = m.At(i, j)
		}
	}
	b, err := New[S](data)
	if err != nil {
		return nil, errDecorate(err, "FromDense")
	}
	return b, nil
}

//FromVectors returns a Basis whose basis vectors are the 3 given vectors.
//Validation is as in New.
func FromVectors[S Space](v1, v2, v3 [3]float64) (*Basis[S], error) {
	data := make([]float64, 9)
	for i := 0; i < 3; i++ {
		data[3*i] = v1[i]
		data[3*i+1] = v2[i]
		data[3*i+2] = v3[i]
	}
	b, err := New[S](data)
	if err != nil {
		return nil, errDecorate(err, "FromVectors")
	}
	return b, nil
}

//Zero returns the "unspecified basis" sentinel, an all-zero Basis.
func Zero[S Space]() *Basis[S] {
	return new(Basis[S])
}

//Dim returns the dimensionality of the basis, always 3.
func (b *Basis[S]) Dim() int {
	return 3
}

//IsZero returns whether b is the all-zero "unspecified basis" sentinel.
func (b *Basis[S]) IsZero() bool {
	for _, v := range b.vecs {
		for _, x := range v {
			if x != 0 {
				return false
			}
		}
	}
	return true
}

//Vector returns the i-th basis vector. It panics if i is out of range,
//as this is considered a programmer error.
func (b *Basis[S]) Vector(i int) [3]float64 {
	if i < 0 || i > 2 {
		panic(ErrVectorRange)
	}
	return b.vecs[i]
}

//Matrix returns the square matrix form of the basis, with the basis vectors
//as columns. The matrix is rebuilt on each call, so the caller owns it and
//can not corrupt the Basis through it.
func (b *Basis[S]) Matrix() *mat.Dense {
	data := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			data[3*i+j] = b.vecs[j][i]
		}
	}
	return mat.NewDense(3, 3, data)
}

//Copy returns a copy of the basis.
func (b *Basis[S]) Copy() *Basis[S] {
	ret := new(Basis[S])
	ret.vecs = b.vecs
	return ret
}

//Lengths returns the lengths of the 3 basis vectors (the column norms of the
//matrix form).
func (b *Basis[S]) Lengths() [3]float64 {
	var ret [3]float64
	for i, v := range b.vecs {
		ret[i] = math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	}
	return ret
}

//Volume returns the volume of the cell spanned by the basis vectors, i.e.
//the absolute value of the determinant. It is zero for the unspecified basis.
func (b *Basis[S]) Volume() float64 {
	return math.Abs(b.det())
}

//CosAngles returns the cosines of the angles between pairs of basis vectors,
//in canonical pair order (0,1), (0,2), (1,2). Reversing the returned triple
//yields the conventional cell angles [alpha, beta, gamma], i.e. the angles
//(1,2), (0,2), (0,1).
func (b *Basis[S]) CosAngles() [3]float64 {
	l := b.Lengths()
	pairs := [3][2]int{{0, 1}, {0, 2}, {1, 2}}
	var ret [3]float64
	for k, p := range pairs {
		ret[k] = dot(b.vecs[p[0]], b.vecs[p[1]]) / (l[p[0]] * l[p[1]])
	}
	return ret
}

//CellCosAngles returns the cosines of the conventional cell angles
//[alpha, beta, gamma], alpha being the angle between vectors 1 and 2, and so
//on. This is CosAngles reversed.
func (b *Basis[S]) CellCosAngles() [3]float64 {
	c := b.CosAngles()
	return [3]float64{c[2], c[1], c[0]}
}

//Gram returns the Gram matrix of the basis, i.e. M^T M where M is the matrix
//form. Its diagonal holds the squared vector lengths and its off-diagonal
//elements the pairwise dot products.
func (b *Basis[S]) Gram() *mat.Dense {
	m := b.Matrix()
	g := mat.NewDense(3, 3, nil)
	g.Mul(m.T(), m)
	return g
}

//ApproxEqual returns whether the two bases agree element-wise within tol.
func (b *Basis[S]) ApproxEqual(o *Basis[S], tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(b.vecs[i][j]-o.vecs[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

//Triangularize returns the canonical right-handed upper-triangular form of
//the basis: the R factor of a QR decomposition of the matrix form, with the
//signs of the rows holding a negative diagonal element flipped so that the
//diagonal is positive.
func (b *Basis[S]) Triangularize() *Basis[S] {
	var qr mat.QR
	qr.Factorize(b.Matrix())
	var r mat.Dense
	qr.RTo(&r)
	for i := 0; i < 3; i++ {
		if r.At(i, i) < 0 {
			for j := 0; j < 3; j++ {
				r.Set(i, j, -r.At(i, j))
			}
		}
	}
	ret := new(Basis[S])
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ret.vecs[j][i] = r.At(i, j)
		}
	}
	return ret
}

//TriangularizeSupercell right-multiplies the basis matrix by the given
//integer supercell transform and triangularizes the result as in
//Triangularize. It returns an error if the transform is singular. A
//negative-determinant transform is only warned about, since the result is
//forced right-handed regardless.
func (b *Basis[S]) TriangularizeSupercell(transform [3][3]int) (*Basis[S], error) {
	t := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.Set(i, j, float64(transform[i][j]))
		}
	}
	d := mat.Det(t)
	if math.Abs(d) < appzero {
		return nil, Error{"singular supercell transform matrix", []string{"TriangularizeSupercell"}, true}
	}
	if d < 0 {
		log.Printf("goWave/lattice.TriangularizeSupercell: transform has negative determinant (%f), result will be right-handed anyway", d)
	}
	var sc mat.Dense
	sc.Mul(b.Matrix(), t)
	super := new(Basis[S])
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			super.vecs[j][i] = sc.At(i, j)
		}
	}
	return super.Triangularize(), nil
}

//det returns the determinant of the matrix form.
func (b *Basis[S]) det() float64 {
	return mat.Det(b.Matrix())
}

//ToReciprocal returns the reciprocal-space dual of a real-space basis,
//2pi * inverse(transpose(M)). The dual vectors satisfy
//b_i . a_j = 2pi delta_ij, so matrix(dual)^T matrix(b) = 2pi I.
func ToReciprocal(b *Real) *Reciprocal {
	return convert[RealSpace, ReciprocalSpace](b, "ToReciprocal")
}

//ToReal returns the real-space dual of a reciprocal basis,
//transpose(2pi * inverse(M)). ToReal and ToReciprocal are mutual inverses
//up to floating-point error.
func ToReal(b *Reciprocal) *Real {
	return convert[ReciprocalSpace, RealSpace](b, "ToReal")
}

//Both conversion directions are the same matrix operation; only the type
//tags differ. The zero sentinel converts to the zero sentinel.
func convert[S, D Space](b *Basis[S], caller string) *Basis[D] {
	if b.IsZero() {
		return Zero[D]()
	}
	var inv mat.Dense
	if err := inv.Inverse(b.Matrix().T()); err != nil {
		panic(PanicMsg(fmt.Sprintf("goWave/lattice.%s: %v", caller, err)))
	}
	ret := new(Basis[D])
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ret.vecs[j][i] = 2 * math.Pi * inv.At(i, j)
		}
	}
	return ret
}

//MaxMillerIndex returns, per axis, the largest integer Miller index needed so
//that every reciprocal lattice vector inside the sphere of the given energy
//cutoff is representable. The conversion constant c between energy and
//squared wavevector is supplied by the caller (it depends on the unit system,
//e.g. 2m/hbar^2 in the caller's units) and is never defaulted here.
//For each axis, three estimates are formed from that axis's vector length
//against the sines of the two cell angles its vector takes part in and its
//normalized triple product, and the loosest one is kept, following the
//usual planewave-code recipe.
func MaxMillerIndex(b *Reciprocal, ecut, c float64) [3]int {
	gmax := math.Sqrt(c * ecut)
	l := b.Lengths()
	var cosines, triples [3]float64
	var crosses [3][3]float64
	for k := 0; k < 3; k++ {
		i, j := (k+1)%3, (k+2)%3
		cosines[k] = dot(b.vecs[i], b.vecs[j]) / (l[i] * l[j])
		crosses[k] = cross(b.vecs[i], b.vecs[j])
		cl := math.Sqrt(dot(crosses[k], crosses[k]))
		triples[k] = dot(b.vecs[k], crosses[k]) / (cl * l[k])
	}
	var ret [3]int
	for k := 0; k < 3; k++ {
		best := gmax / (l[k] * math.Abs(triples[k]))
		for m := 0; m < 3; m++ {
			if m == k {
				continue
			}
			//cosines[m] is the angle of the pair that leaves vector m
			//out, so it does involve vector k.
			sin := math.Sqrt(1 - cosines[m]*cosines[m])
			if e := gmax / (l[k] * sin); e > best {
				best = e
			}
		}
		ret[k] = int(math.Floor(best)) + 1
	}
	return ret
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

//Errors

//Error is the lattice package error type. It satisfies wave.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return fmt.Sprintf("goWave/lattice: %s", err.message)
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

type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

func errDecorate(err error, caller string) error {
	err2 := err.(errorInt)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics. It satisfies the error interface,
//but for recoverable conditions use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrVectorRange = PanicMsg("goWave/lattice: basis vector index out of range")
)

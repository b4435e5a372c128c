/*
 * wave_test.go, part of gowave.
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

package wave_test

import (
	"testing"

	wave "github.com/rmera/gowave"
	"github.com/rmera/gowave/lattice"
	"github.com/rmera/gowave/miller"
	"github.com/stretchr/testify/require"
)

func TestKPointNormalization(t *testing.T) {
	points := [][3]float64{{0, 0, 0}, {0.5, 0, 0}}
	K, err := wave.NewKPointList(points, []float64{1, 3})
	require.NoError(t, err)
	require.Equal(t, []float64{0.25, 0.75}, K.Weights())

	// normalization is invariant to a positive scale of the raw weights
	for _, s := range []float64{0.01, 1, 2, 1e6} {
		Ks, err := wave.NewKPointList(points, []float64{1 * s, 3 * s})
		require.NoError(t, err)
		require.InDeltaSlice(t, K.Weights(), Ks.Weights(), 1e-12)
	}

	p, w := K.At(1)
	require.Equal(t, [3]float64{0.5, 0, 0}, p)
	require.Equal(t, 0.75, w)

	// already-normalized input is renormalized to itself
	K2, err := wave.NewKPointList(points, []float64{0.25, 0.75})
	require.NoError(t, err)
	require.True(t, K.Equal(K2))
}

func TestKPointListErrors(t *testing.T) {
	_, err := wave.NewKPointList([][3]float64{{0, 0, 0}}, []float64{1, 2})
	require.Error(t, err)
	_, err = wave.NewKPointList([][3]float64{{0, 0, 0}}, []float64{0})
	require.Error(t, err)
}

func TestKPointSlice(t *testing.T) {
	K, err := wave.NewKPointList(
		[][3]float64{{0, 0, 0}, {0.25, 0, 0}, {0.5, 0, 0}, {0.75, 0, 0}},
		[]float64{1, 1, 1, 1})
	require.NoError(t, err)
	sub, err := K.Slice(1, 3)
	require.NoError(t, err)
	require.Equal(t, 2, sub.Len())
	// weights renormalize over the sub-list
	require.InDeltaSlice(t, []float64{0.5, 0.5}, sub.Weights(), 1e-12)
	_, err = K.Slice(2, 2)
	require.Error(t, err)
}

func TestKPointGrid(t *testing.T) {
	_, err := wave.NewKPointGrid([3][3]int{{4, 0, 0}, {0, -4, 0}, {0, 0, 4}}, [3]float64{})
	require.Error(t, err)

	// origin shifts fold into [-0.5, 0.5)
	M, err := wave.NewKPointGrid([3][3]int{{4, 0, 0}, {0, 4, 0}, {0, 0, 4}}, [3]float64{0.75, 0.5, -0.5})
	require.NoError(t, err)
	sh := M.Shift()
	require.InDeltaSlice(t, []float64{-0.25, -0.5, -0.5}, sh[:], 1e-12)
	require.Equal(t, [3][3]int{{4, 0, 0}, {0, 4, 0}, {0, 0, 4}}, M.Matrix())

	// expansion to an explicit list is declared but not available yet
	_, err = M.KPointList()
	require.Error(t, err)
}

//builds a 1-spin, 2-kpoint, nbands wavefunction with the given per-band
//energies/occupancies repeated at both k-points.
func buildWavefunction(t *testing.T, energies, occs []float64, sizes ...[3]int) *wave.ReciprocalWavefunction {
	t.Helper()
	direct, err := lattice.New[lattice.RealSpace]([]float64{2, 0, 0, 0, 2, 0, 0, 0, 2})
	require.NoError(t, err)
	recip := lattice.ToReciprocal(direct)
	kpts, err := wave.NewKPointList([][3]float64{{0, 0, 0}, {0.5, 0, 0}}, []float64{1, 1})
	require.NoError(t, err)
	nbands := len(energies)
	coeffs := make([][][]*miller.Grid[complex128], 1)
	e := make([][][]float64, 1)
	o := make([][][]float64, 1)
	coeffs[0] = make([][]*miller.Grid[complex128], 2)
	e[0] = make([][]float64, 2)
	o[0] = make([][]float64, 2)
	for k := 0; k < 2; k++ {
		coeffs[0][k] = make([]*miller.Grid[complex128], nbands)
		for b := 0; b < nbands; b++ {
			size := [3]int{2, 2, 2}
			if len(sizes) > b {
				size = sizes[b]
			}
			g, err := miller.ZeroGrid[complex128](recip, size)
			require.NoError(t, err)
			g.Set(0, 0, 0, complex(float64(b+1), 0))
			coeffs[0][k][b] = g
		}
		e[0][k] = append([]float64{}, energies...)
		o[0][k] = append([]float64{}, occs...)
	}
	W, err := wave.NewReciprocalWavefunction(direct, kpts, coeffs, e, o)
	require.NoError(t, err)
	return W
}

func TestWavefunctionAccessors(t *testing.T) {
	W := buildWavefunction(t, []float64{1, 2, 3}, []float64{1, 1, 0})
	require.Equal(t, 1, W.NSpins())
	require.Equal(t, 2, W.NKPoints())
	require.Equal(t, 3, W.NBands())
	require.Equal(t, 2, W.KPoints().Len())

	st := W.State(0, 1, 2)
	require.Equal(t, 3.0, st.Energy)
	require.Equal(t, 0.0, st.Occupancy)
	require.Equal(t, complex(3, 0), st.Coeffs.At(0, 0, 0))

	require.Panics(t, func() { W.State(0, 2, 0) })
}

func TestWavefunctionConsistency(t *testing.T) {
	direct, err := lattice.New[lattice.RealSpace]([]float64{2, 0, 0, 0, 2, 0, 0, 0, 2})
	require.NoError(t, err)
	recip := lattice.ToReciprocal(direct)
	g, err := miller.ZeroGrid[complex128](recip, [3]int{2, 2, 2})
	require.NoError(t, err)
	// one k-point in the list, two along the coefficient axis
	kpts, err := wave.NewKPointList([][3]float64{{0, 0, 0}}, []float64{1})
	require.NoError(t, err)
	coeffs := [][][]*miller.Grid[complex128]{{{g}, {g.Copy()}}}
	_, err = wave.NewReciprocalWavefunction(direct, kpts, coeffs, nil, nil)
	require.Error(t, err)
}

func TestWavefunctionDefaultsAndBounds(t *testing.T) {
	// energies/occupancies default to zero when nil; per-axis the larger
	// grid range wins in Bounds
	W := buildWavefunction(t, []float64{0, 0}, []float64{0, 0},
		[3]int{8, 2, 2}, [3]int{2, 5, 3})
	require.Equal(t, 0.0, W.State(0, 0, 1).Energy)
	require.Equal(t, miller.Box{Min: [3]int{-4, -2, -1}, Max: [3]int{3, 2, 1}}, W.Bounds())
}

func TestFermiInterpolated(t *testing.T) {
	// two states at each k-point: the half-occupancy crossing lies halfway
	// between them, with equal inverse-distance weights
	W := buildWavefunction(t, []float64{1.0, 2.0}, []float64{1.0, 0.0})
	ef, err := W.Fermi()
	require.NoError(t, err)
	require.InDelta(t, 1.5, ef, 1e-12)
}

func TestFermiExactHalf(t *testing.T) {
	// a state at exactly half-maximum occupancy pins the estimate
	W := buildWavefunction(t, []float64{1.0, 1.8, 3.0}, []float64{2.0, 1.0, 0.0})
	ef, err := W.Fermi()
	require.NoError(t, err)
	require.Equal(t, 1.8, ef)
}

func TestFermiOccupancyConvention(t *testing.T) {
	W := buildWavefunction(t, []float64{1.0, 2.0}, []float64{4.0, 0.0})
	_, err := W.Fermi()
	require.Error(t, err)

	// fully-occupied data has no crossing to find
	W = buildWavefunction(t, []float64{1.0, 2.0}, []float64{1.0, 1.0})
	_, err = W.Fermi()
	require.Error(t, err)
}

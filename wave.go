/*
 * wave.go, part of gowave.
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

	"github.com/rmera/gowave/lattice"
	"github.com/rmera/gowave/miller"
)

//State is the record returned for one (spin, k-point, band) selection of a
//wavefunction: the planewave coefficients and the energy and occupancy of
//that state.
type State struct {
	Coeffs    *miller.Grid[complex128]
	Energy    float64
	Occupancy float64
}

//ReciprocalWavefunction is the full planewave dataset of a calculation: a
//real-space lattice, the sampled k-points, and one coefficient grid per
//(spin, k-point, band) with its energy and occupancy. The three axes are
//stored flattened, spin-major. Built once at construction and read-only
//afterwards; the band count is uniform across all (spin, k-point) pairs.
type ReciprocalWavefunction struct {
	latt                  *lattice.Real
	kpts                  *KPointList
	nspins, nkpts, nbands int
	grids                 []*miller.Grid[complex128]
	energies, occupancies []float64
}

//NewReciprocalWavefunction assembles a wavefunction from a lattice, a
//k-point list, a 3-axis nested slice of coefficient grids indexed
//[spin][kpoint][band], and matching-shape energies and occupancies. The
//k-point axis must match the k-point list length, the shape must be uniform
//and all grids non-nil. Either or both of energies and occupancies may be
//nil, in which case they default to all-zero arrays of the right shape.
func NewReciprocalWavefunction(latt *lattice.Real, kpts *KPointList, coeffs [][][]*miller.Grid[complex128], energies, occupancies [][][]float64) (*ReciprocalWavefunction, error) {
	if latt == nil || kpts == nil {
		return nil, CError{"nil lattice or k-point list", []string{"NewReciprocalWavefunction"}, true}
	}
	if len(coeffs) == 0 || len(coeffs[0]) == 0 || len(coeffs[0][0]) == 0 {
		return nil, CError{"empty coefficient array", []string{"NewReciprocalWavefunction"}, true}
	}
	W := new(ReciprocalWavefunction)
	W.latt = latt
	W.kpts = kpts
	W.nspins = len(coeffs)
	W.nkpts = len(coeffs[0])
	W.nbands = len(coeffs[0][0])
	if kpts.Len() != W.nkpts {
		return nil, CError{fmt.Sprintf("%d k-points in the list but %d along the coefficient axis", kpts.Len(), W.nkpts), []string{"NewReciprocalWavefunction"}, true}
	}
	n := W.nspins * W.nkpts * W.nbands
	W.grids = make([]*miller.Grid[complex128], n)
	for s, perspin := range coeffs {
		if len(perspin) != W.nkpts {
			return nil, CError{fmt.Sprintf("ragged k-point axis at spin %d", s), []string{"NewReciprocalWavefunction"}, true}
		}
		for k, perkpt := range perspin {
			if len(perkpt) != W.nbands {
				return nil, CError{fmt.Sprintf("ragged band axis at spin %d, k-point %d", s, k), []string{"NewReciprocalWavefunction"}, true}
			}
			for b, g := range perkpt {
				if g == nil {
					return nil, CError{fmt.Sprintf("nil grid at spin %d, k-point %d, band %d", s, k, b), []string{"NewReciprocalWavefunction"}, true}
				}
				W.grids[W.skb2i(s, k, b)] = g
			}
		}
	}
	var err error
	W.energies, err = W.flatten(energies, "energies")
	if err != nil {
		return nil, errDecorate(err, "NewReciprocalWavefunction")
	}
	W.occupancies, err = W.flatten(occupancies, "occupancies")
	if err != nil {
		return nil, errDecorate(err, "NewReciprocalWavefunction")
	}
	return W, nil
}

//flatten turns a nested [spin][kpoint][band] array into the internal flat
//layout, or returns a zero-filled one if given nil.
func (W *ReciprocalWavefunction) flatten(a [][][]float64, what string) ([]float64, error) {
	flat := make([]float64, W.nspins*W.nkpts*W.nbands)
	if a == nil {
		return flat, nil
	}
	if len(a) != W.nspins {
		return nil, CError{fmt.Sprintf("%s shape does not match the coefficient array", what), []string{"flatten"}, true}
	}
	for s, perspin := range a {
		if len(perspin) != W.nkpts {
			return nil, CError{fmt.Sprintf("%s shape does not match the coefficient array", what), []string{"flatten"}, true}
		}
		for k, perkpt := range perspin {
			if len(perkpt) != W.nbands {
				return nil, CError{fmt.Sprintf("%s shape does not match the coefficient array", what), []string{"flatten"}, true}
			}
			copy(flat[W.skb2i(s, k, 0):], perkpt)
		}
	}
	return flat, nil
}

//skb2i returns the index in the flat slices given the spin, k-point and band
//indexes. Just to avoid fixing it in many places if I screw up.
func (W *ReciprocalWavefunction) skb2i(s, k, b int) int {
	return (s*W.nkpts+k)*W.nbands + b
}

//NSpins returns the number of spin channels.
func (W *ReciprocalWavefunction) NSpins() int {
	return W.nspins
}

//NKPoints returns the number of k-points.
func (W *ReciprocalWavefunction) NKPoints() int {
	return W.nkpts
}

//NBands returns the number of bands per (spin, k-point) pair.
func (W *ReciprocalWavefunction) NBands() int {
	return W.nbands
}

//Lattice returns the real-space lattice of the dataset.
func (W *ReciprocalWavefunction) Lattice() *lattice.Real {
	return W.latt
}

//KPoints returns the k-point list of the dataset.
func (W *ReciprocalWavefunction) KPoints() *KPointList {
	return W.kpts
}

//State returns the coefficients, energy and occupancy for the given
//(spin, k-point, band) selection. It panics on out-of-range indexes, as
//these are programmer errors on an already-validated structure.
func (W *ReciprocalWavefunction) State(s, k, b int) State {
	if W == nil {
		panic(ErrNilWavefunc)
	}
	if s < 0 || s >= W.nspins || k < 0 || k >= W.nkpts || b < 0 || b >= W.nbands {
		panic(ErrStateRange)
	}
	i := W.skb2i(s, k, b)
	return State{Coeffs: W.grids[i], Energy: W.energies[i], Occupancy: W.occupancies[i]}
}

//Bounds returns the smallest Miller-index box enclosing the index ranges of
//every stored grid, keeping per axis whichever range is larger. Writers use
//it to pre-size their export buffers before asking for densified data.
func (W *ReciprocalWavefunction) Bounds() miller.Box {
	box := W.grids[0].Bounds()
	for _, g := range W.grids[1:] {
		box = box.Widen(g.Bounds())
	}
	return box
}

/*
 * fermi.go, part of gowave.
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

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
)

//one (energy, occupancy) pair, for sorting
type level struct {
	energy, occ float64
}

//Fermi estimates the Fermi energy of the dataset from its energies and
//occupancies, as the energy at which the occupancy crosses half its maximum.
//The maximum occupancy, rounded, must be 1 (non-spin-polarized) or 2
//(spin-polarized); anything else means the occupancy data does not follow
//either convention and is an error. All (energy, occupancy) pairs across
//spin, k-point and band are sorted by energy; the estimate is the energy of
//the first pair at exactly half-maximum occupancy after the last pair above
//it, or, failing that, the inverse-distance-weighted average of that pair's
//energy and its successor's. This is a threshold-crossing heuristic, not a
//density-of-states integral: it assumes a single crossing exists.
func (W *ReciprocalWavefunction) Fermi() (float64, error) {
	maxocc := math.Round(floats.Max(W.occupancies))
	if maxocc != 1 && maxocc != 2 {
		return 0, CError{fmt.Sprintf("maximum occupancy rounds to %.0f, want 1 or 2", maxocc), []string{"Fermi"}, true}
	}
	levels := make([]level, len(W.energies))
	for i, e := range W.energies {
		levels[i] = level{energy: e, occ: W.occupancies[i]}
	}
	slices.SortStableFunc(levels, func(a, b level) int {
		switch {
		case a.energy < b.energy:
			return -1
		case a.energy > b.energy:
			return 1
		}
		return 0
	})
	half := maxocc / 2
	last := -1
	for i, l := range levels {
		if l.occ > half {
			last = i
		}
	}
	if last == -1 {
		return 0, CError{"no state with occupancy above half-maximum", []string{"Fermi"}, true}
	}
	if last == len(levels)-1 {
		return 0, CError{"occupancy never crosses half-maximum", []string{"Fermi"}, true}
	}
	succ := levels[last+1]
	if succ.occ == half {
		return succ.energy, nil
	}
	//inverse-distance weights, normalized to sum to 1
	w1 := 1 / math.Abs(levels[last].occ-half)
	w2 := 1 / math.Abs(succ.occ-half)
	return (w1*levels[last].energy + w2*succ.energy) / (w1 + w2), nil
}

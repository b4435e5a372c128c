/*
 * doc.go, part of gowave.
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

/*Package wave is the main package of the goWave library, an in-memory data
model for the reciprocal-space quantities handled by planewave
electronic-structure codes.


	**goWave Capabilities**

    Represents crystal lattice bases in real and reciprocal space as distinct
	compile-time types, with the 2pi duality convention, cell geometry
	queries and canonical triangularization (subpackage lattice).

    Stores scalar and complex data addressed by signed Miller indices, both
	densely (array-backed, discrete-transform storage order) and sparsely
	(map-backed, zero-default), with exact conversions between the two
	(subpackage miller).

    Represents ordered k-point samples of the Brillouin zone with normalized
	weights, and regular mesh descriptions thereof.

    Composes lattice, k-points and per-(spin, k-point, band) coefficient
	grids with their energies and occupancies into a ReciprocalWavefunction,
	with bounding-box queries for export buffers and a threshold-crossing
	Fermi level estimator.

    Writes and reads compressed binary snapshots of whole wavefunctions
	(subpackage bwf).

goWave performs no text parsing and no visualization; file-format readers and
writers are expected to feed it plain numeric matrices, arrays and
(index, value) lists, and to request densified grids and matrix forms back.
All structures are built eagerly from such data, validated at construction,
and then used as immutable values.*/
package wave

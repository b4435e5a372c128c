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

/*Package lattice implements a Basis type representing the 3 basis vectors of a
crystal lattice, either in real (direct) space or in reciprocal space. The space
is a compile-time tag, so a real-space basis and its reciprocal counterpart are
distinct types that can not be mixed by accident; the two explicit conversion
functions ToReciprocal and ToReal move between them with the 2pi convention
(dual vectors satisfy b_i . a_j = 2pi delta_ij).

Basis vectors are stored as the columns of the 3x3 matrix returned by Matrix().
A Basis is an immutable value: all geometry queries (lengths, volume, angles,
Gram matrix, triangularization) recompute from the stored vectors on demand.
*/
package lattice

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

/*Package miller implements scalar and complex data addressed by Miller
indices, the integer triples labeling reciprocal lattice vectors. Two
representations share one access contract (the Store interface): the dense,
array-backed Grid, and the sparse, map-backed Map whose unset keys read as
zero. Densify and Sparsify convert between them.

The storage convention is the standard discrete-transform one, applied
uniformly: storage offset 0 holds the zero-frequency component, ascending
positive indices come first and negative indices wrap to the high end of each
axis. The logical (centered) range along an axis of size n is
[-(n/2), n-(n/2)-1], so size 8 spans -4..3 and size 5 spans -2..2. Signed
indices outside that range wrap silently via modular arithmetic; callers that
need the human-readable range ask Bounds().
*/
package miller

/*
 * interfaces.go, part of gowave.
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

//BZMesh is a description of a Brillouin-zone sampling that can produce the
//explicit list of k-points it stands for. KPointList trivially implements
//it; mesh-generator descriptions like KPointGrid declare it as the way they
//will eventually be expanded.
type BZMesh interface {
	KPointList() (*KPointList, error)
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Adds information when passing the error up. Each call returns the current "decoration" slice of strings. If passed an empty string, it just returns the current value without adding to it.
	Critical() bool
}

/*
 * errors.go, part of gowave.
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

import "fmt"

//CError is the concrete error type of the root package. It satisfies the
//Error interface.
type CError struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err CError) Error() string {
	return fmt.Sprintf("goWave: %s", err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err CError) Critical() bool { return err.critical }

//errDecorate asserts that the error implements the Error interface and
//decorates it with the caller's name before returning it. Calling it on any
//other error type panics.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics, in "fundamental" accessors on
//already-validated structures. For recoverable conditions use CError.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrKPointRange = PanicMsg("goWave: k-point index out of range")
	ErrStateRange  = PanicMsg("goWave: spin, k-point or band index out of range")
	ErrNilWavefunc = PanicMsg("goWave: operation on a nil ReciprocalWavefunction")
)

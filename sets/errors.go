/*
 * errors.go, part of goaims.
 *
 * Copyright 2024 Raul Mera <rmera{at}usach(dot)cl>
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package sets

//Error is the error type for the sets package
type Error struct {
	message  string
	deco     []string
	critical bool
	cause    error
}

//Error returns a string with an error message.
func (err Error) Error() string {
	if err.cause != nil {
		return err.message + ": " + err.cause.Error()
	}
	return err.message
}

//Message returns the error message, without the underlying cause.
func (err Error) Message() string { return err.message }

//Decorate returns the decoration slice of the error with dec added at the end. The
//error itself is not modified. If dec is empty, the current slice is returned.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	return append(err.deco[:len(err.deco):len(err.deco)], dec)
}

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

func (err Error) Unwrap() error { return err.cause }

//errDecorate returns a copy of err with the caller's name added to its decoration,
//if err is an Error. Other errors are returned untouched.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.deco = err2.Decorate(caller)
	return err2
}

const (
	ErrNoStructure   = "No structure can be determined"
	ErrPrevParams    = "Unable to read the parameters of the previous calculation"
	ErrDensity       = "The k-point density must have 1 or 3 non-negative elements"
	ErrKGrid         = "The k_grid must have 3 elements"
	ErrReciprocal    = "The reciprocal cell must have 3 vectors"
	ErrKeyNotPresent = "The key is not in the parameters"
	ErrJSON          = "Unable to encode the parameters"
	ErrDirectory     = "The output directory does not exist"
	ErrFileExists    = "File exists and overwrite was not requested"
	ErrWriting       = "Error writing input files"
	ErrBandPath      = "Unable to obtain the band path"
)

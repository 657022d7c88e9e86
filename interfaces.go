/*
 * interfaces.go, part of goaims.
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

package aims

import "fmt"

//Errors

//ErrorInt is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type ErrorInt interface {
	Error() string
	Decorate(string) []string //Returns the decoration slice with the caller added, without modifying the error. If passed an empty string, it just returns the current value.
	Critical() bool
}

//Error is the error type for the aims package.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
	cause    error
}

//Error returns a string with an error message.
func (err Error) Error() string {
	msg := err.message
	if err.filename != "" {
		msg = fmt.Sprintf("%s (file %s)", msg, err.filename)
	}
	if err.cause != nil {
		msg = msg + ": " + err.cause.Error()
	}
	return msg
}

//Message returns the error message, without the file name or the underlying cause.
func (err Error) Message() string { return err.message }

//Decorate returns the decoration slice of the error with dec added at the end. The
//error itself is not modified. If dec is empty, the current slice is returned.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	return append(err.deco[:len(err.deco):len(err.deco)], dec)
}

//FileName returns the file to which the error is associated, if any.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//Unwrap returns the underlying error, if any.
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
	ErrUnknownElement = "Unknown element"
	ErrNilData        = "Given nil atoms or coordinates"
	ErrMismatch       = "Mismatched number of atoms and coordinates"
	ErrLattice        = "Lattice must contain 3 linearly independent vectors"
	ErrNotPeriodic    = "The structure is not periodic"
	ErrUnableToOpen   = "Unable to open file"
	ErrFormat         = "Ill formatted file"
	ErrUnknownFormat  = "Unknown structure file format"
	ErrNoSpeciesDir   = "No species directory given. Set species_dir or AIMS_SPECIES_DIR"
	ErrSpeciesFile    = "Unable to read species file"
	ErrXCName         = "Add `name` key to `xc`"
	ErrXCHybrid       = "Add `omega` and `unit` to `xc`"
	ErrSmearing       = "Ill formed smearing parameter"
	ErrSmearingAndOcc = "smearing and occupation_type can't be given at the same time"
	ErrPlusU          = "plus_u must map element symbols to the arguments of the plus_u keyword"
	ErrWriting        = "Error writing"
)

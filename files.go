/*
 * files.go, part of goaims.
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

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/goaims/v3"
)

const (
	ControlFileName    = "control.in"
	GeometryFileName   = "geometry.in"
	ParamsJSONFileName = "parameters.json"
	//Written by FHI-aims after each relaxation step.
	NextStepFileName = "geometry.in.next_step"
)

//ReadXYZ reads a structure in the XYZ format from r. The structure is a molecule.
//Only the first frame is read.
func ReadXYZ(r io.Reader) (*Structure, error) {
	xyz := bufio.NewScanner(r)
	if !xyz.Scan() {
		return nil, Error{message: ErrFormat + ": empty XYZ file", deco: []string{"ReadXYZ"}, critical: true}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(xyz.Text()))
	if err != nil || natoms <= 0 {
		return nil, Error{message: ErrFormat + ": the first line of an XYZ file must be the number of atoms", deco: []string{"ReadXYZ"}, critical: true}
	}
	xyz.Scan() //We dont care about this line
	atoms := make([]*Atom, 0, natoms)
	coords := make([]float64, 0, natoms*3)
	for i := 0; i < natoms; i++ {
		if !xyz.Scan() {
			return nil, Error{message: fmt.Sprintf("%s: expected %d atoms, found %d", ErrFormat, natoms, i), deco: []string{"ReadXYZ"}, critical: true}
		}
		fields := strings.Fields(xyz.Text())
		if len(fields) < 4 {
			return nil, Error{message: fmt.Sprintf("%s: atom line %d ill formed", ErrFormat, i+1), deco: []string{"ReadXYZ"}, critical: true}
		}
		at, err := NewAtom(fields[0])
		if err != nil {
			return nil, errDecorate(err, "ReadXYZ")
		}
		c, err := parseFloats(fields[1:4])
		if err != nil {
			return nil, Error{message: fmt.Sprintf("%s: atom line %d", ErrFormat, i+1), deco: []string{"ReadXYZ"}, critical: true, cause: err}
		}
		atoms = append(atoms, at)
		coords = append(coords, c...)
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "ReadXYZ")
	}
	return NewMolecule(atoms, mcoords)
}

//ReadGeometry reads an FHI-aims geometry.in file from r. If the file contains 3
//lattice_vector lines, the structure is periodic. Fractional positions (atom_frac)
//are converted to cartesian ones. initial_moment, initial_charge and constrain_relaxation
//apply to the last atom read.
func ReadGeometry(r io.Reader) (*Structure, error) {
	const funcname = "ReadGeometry"
	atoms := make([]*Atom, 0, 10)
	coords := make([][3]float64, 0, 10)
	frac := make([]bool, 0, 10)
	lattice := make([]float64, 0, 9)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.Index(text, "#"); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		fail := func(msg string, cause error) error {
			return Error{message: fmt.Sprintf("%s: line %d: %s", ErrFormat, line, msg), deco: []string{funcname}, critical: true, cause: cause}
		}
		switch fields[0] {
		case "lattice_vector":
			if len(fields) < 4 {
				return nil, fail("lattice_vector needs 3 components", nil)
			}
			v, err := parseFloats(fields[1:4])
			if err != nil {
				return nil, fail("lattice_vector", err)
			}
			lattice = append(lattice, v...)
		case "atom", "atom_frac":
			if len(fields) < 5 {
				return nil, fail(fields[0]+" needs 3 coordinates and a species", nil)
			}
			v, err := parseFloats(fields[1:4])
			if err != nil {
				return nil, fail(fields[0], err)
			}
			at, err := NewAtom(fields[4])
			if err != nil {
				return nil, fail("", err)
			}
			atoms = append(atoms, at)
			coords = append(coords, [3]float64{v[0], v[1], v[2]})
			frac = append(frac, fields[0] == "atom_frac")
		case "initial_moment", "initial_charge", "constrain_relaxation":
			if len(atoms) == 0 {
				return nil, fail(fields[0]+" given before any atom", nil)
			}
			if len(fields) < 2 {
				return nil, fail(fields[0]+" needs a value", nil)
			}
			last := atoms[len(atoms)-1]
			if fields[0] == "constrain_relaxation" {
				last.Constrained = strings.EqualFold(fields[1], ".true.") || fields[1] == "x" || fields[1] == "y" || fields[1] == "z"
				continue
			}
			f, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fail(fields[0], err)
			}
			if fields[0] == "initial_moment" {
				last.InitialMoment = f
			} else {
				last.InitialCharge = f
			}
		default:
			//other keywords (velocity, hessian_block...) are not needed here.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{message: ErrFormat, deco: []string{funcname}, critical: true, cause: err}
	}
	if len(atoms) == 0 {
		return nil, Error{message: ErrFormat + ": no atoms in geometry file", deco: []string{funcname}, critical: true}
	}
	var cell *v3.Matrix
	if len(lattice) != 0 {
		var err error
		if len(lattice) != 9 {
			return nil, Error{message: ErrLattice, deco: []string{funcname}, critical: true}
		}
		cell, err = v3.NewMatrix(lattice)
		if err != nil {
			return nil, errDecorate(err, funcname)
		}
	}
	raw := make([]float64, 0, 3*len(coords))
	for i, c := range coords {
		if frac[i] {
			if cell == nil {
				return nil, Error{message: ErrFormat + ": atom_frac requires lattice vectors", deco: []string{funcname}, critical: true}
			}
			c = cell.Cartesian(c)
		}
		raw = append(raw, c[:]...)
	}
	mcoords, err := v3.NewMatrix(raw)
	if err != nil {
		return nil, errDecorate(err, funcname)
	}
	if cell == nil {
		return NewMolecule(atoms, mcoords)
	}
	return NewStructure(atoms, mcoords, cell)
}

//WriteGeometry writes the structure S to w in the FHI-aims geometry.in format.
func WriteGeometry(w io.Writer, S *Structure) error {
	if S == nil || S.Coords == nil {
		return Error{message: ErrNilData, deco: []string{"WriteGeometry"}, critical: true}
	}
	lim := "#" + strings.Repeat("=", 79)
	b := new(bytes.Buffer)
	fmt.Fprintln(b, lim)
	fmt.Fprintf(b, "# FHI-aims geometry file: %s\n", GeometryFileName)
	fmt.Fprintln(b, "# File generated by goaims")
	fmt.Fprintln(b, lim)
	if S.Periodic() {
		for i := 0; i < 3; i++ {
			v := S.Lattice.Vec(i)
			fmt.Fprintf(b, "lattice_vector %19.12e %19.12e %19.12e\n", v[0], v[1], v[2])
		}
	}
	for i, at := range S.Atoms {
		c := S.Coords.Vec(i)
		fmt.Fprintf(b, "atom %19.12e %19.12e %19.12e %s\n", c[0], c[1], c[2], at.Symbol)
		if at.InitialMoment != 0 {
			fmt.Fprintf(b, "     initial_moment %s\n", FormatFloat(at.InitialMoment))
		}
		if at.InitialCharge != 0 {
			fmt.Fprintf(b, "     initial_charge %s\n", FormatFloat(at.InitialCharge))
		}
		if at.Constrained {
			fmt.Fprintln(b, "     constrain_relaxation .true.")
		}
	}
	if _, err := w.Write(b.Bytes()); err != nil {
		return Error{message: ErrWriting, deco: []string{"WriteGeometry"}, critical: true, cause: err}
	}
	return nil
}

//GeometryIn returns the contents of the geometry.in file for S.
func GeometryIn(S *Structure) (string, error) {
	b := new(strings.Builder)
	if err := WriteGeometry(b, S); err != nil {
		return "", errDecorate(err, "GeometryIn")
	}
	return b.String(), nil
}

//ReadFile reads a structure file. The format is chosen from the name: files ending in
//.xyz are read as XYZ, everything else as geometry.in. Files ending in .gz or .zst
//are decompressed on the fly.
func ReadFile(name string) (*Structure, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{message: ErrUnableToOpen, filename: name, deco: []string{"ReadFile"}, critical: true, cause: err}
	}
	defer f.Close()
	var r io.Reader = f
	base := strings.ToLower(filepath.Base(name))
	switch filepath.Ext(base) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, Error{message: ErrUnableToOpen, filename: name, deco: []string{"gzip.NewReader", "ReadFile"}, critical: true, cause: err}
		}
		defer gz.Close()
		r = gz
		base = strings.TrimSuffix(base, ".gz")
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, Error{message: ErrUnableToOpen, filename: name, deco: []string{"zstd.NewReader", "ReadFile"}, critical: true, cause: err}
		}
		defer zr.Close()
		r = zr
		base = strings.TrimSuffix(base, ".zst")
	}
	var S *Structure
	if filepath.Ext(base) == ".xyz" {
		S, err = ReadXYZ(r)
	} else {
		S, err = ReadGeometry(r)
	}
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = name
			e.deco = append(e.deco, "ReadFile")
			return nil, e
		}
		return nil, err
	}
	return S, nil
}

func parseFloats(fields []string) ([]float64, error) {
	ret := make([]float64, len(fields))
	var err error
	for i, v := range fields {
		ret[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

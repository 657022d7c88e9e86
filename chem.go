/*
 * chem.go, part of goaims.
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
	"fmt"

	v3 "github.com/rmera/goaims/v3"
)

//Atom contains the per-site information of a structure, except for the coordinates,
//which are kept in a v3.Matrix.
type Atom struct {
	Symbol        string
	Z             int
	Mass          float64
	InitialMoment float64 //initial spin moment, written to geometry.in if not zero.
	InitialCharge float64
	Constrained   bool //Fixed during relaxations.
}

//NewAtom returns an atom for the element with the given symbol, with the atomic
//number and mass filled from the element table. Returns error if the symbol is unknown.
func NewAtom(symbol string) (*Atom, error) {
	z, ok := symbolZ[symbol]
	if !ok {
		return nil, Error{message: ErrUnknownElement + ": " + symbol, deco: []string{"NewAtom"}, critical: true}
	}
	return &Atom{Symbol: symbol, Z: z, Mass: symbolMass[symbol]}, nil
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	r := *A
	return &r
}

//Structure is a set of atoms, with cartesian coordinates in Angstrom, and, for periodic
//systems, the lattice vectors (rows of Lattice). A Structure without lattice is a molecule.
type Structure struct {
	Atoms   []*Atom
	Coords  *v3.Matrix
	Lattice *v3.Matrix
	PBC     [3]bool
	charge  float64
	multi   int
}

//NewMolecule returns a non-periodic structure with the given atoms and coordinates.
func NewMolecule(atoms []*Atom, coords *v3.Matrix) (*Structure, error) {
	if atoms == nil || coords == nil {
		return nil, Error{message: ErrNilData, deco: []string{"NewMolecule"}, critical: true}
	}
	if len(atoms) != coords.NVecs() {
		return nil, Error{message: fmt.Sprintf("%s: %d atoms and %d coordinates", ErrMismatch, len(atoms), coords.NVecs()), deco: []string{"NewMolecule"}, critical: true}
	}
	return &Structure{Atoms: atoms, Coords: coords, multi: 1}, nil
}

//NewStructure returns a structure periodic in the three directions, with the
//given atoms, cartesian coordinates and lattice vectors.
func NewStructure(atoms []*Atom, coords, lattice *v3.Matrix) (*Structure, error) {
	s, err := NewMolecule(atoms, coords)
	if err != nil {
		return nil, errDecorate(err, "NewStructure")
	}
	if lattice == nil || lattice.NVecs() != 3 {
		return nil, Error{message: ErrLattice, deco: []string{"NewStructure"}, critical: true}
	}
	if _, err := lattice.Inverse(); err != nil {
		return nil, Error{message: ErrLattice, deco: []string{"NewStructure"}, critical: true, cause: err}
	}
	s.Lattice = lattice
	s.PBC = [3]bool{true, true, true}
	return s, nil
}

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

//Atom returns the ith atom. Panics if out of range.
func (S *Structure) Atom(i int) *Atom {
	if i >= S.Len() {
		panic("Structure: Requested Atom out of bounds")
	}
	return S.Atoms[i]
}

//Charge returns the total charge of the system. It can be fractional.
func (S *Structure) Charge() float64 {
	return S.charge
}

//SetCharge sets the total charge of the system.
func (S *Structure) SetCharge(c float64) {
	S.charge = c
}

//Multi returns the multiplicity of the system.
func (S *Structure) Multi() int {
	if S.multi == 0 {
		return 1
	}
	return S.multi
}

//SetMulti sets the multiplicity of the system.
func (S *Structure) SetMulti(m int) {
	S.multi = m
}

//Periodic returns true if the structure has a lattice.
func (S *Structure) Periodic() bool {
	return S.Lattice != nil
}

//FullyPeriodic returns true if the structure has a lattice and is periodic in the three directions.
func (S *Structure) FullyPeriodic() bool {
	return S.Periodic() && S.PBC[0] && S.PBC[1] && S.PBC[2]
}

//Reciprocal returns the reciprocal lattice (without the 2*Pi factor) of a periodic structure.
func (S *Structure) Reciprocal() (*v3.Matrix, error) {
	if !S.Periodic() {
		return nil, Error{message: ErrNotPeriodic, deco: []string{"Reciprocal"}, critical: true}
	}
	r, err := S.Lattice.Reciprocal()
	if err != nil {
		return nil, Error{message: ErrLattice, deco: []string{"Reciprocal"}, critical: true, cause: err}
	}
	return r, nil
}

//Fractional returns the coordinates of the atoms in the basis of the lattice vectors.
func (S *Structure) Fractional() ([][3]float64, error) {
	if !S.Periodic() {
		return nil, Error{message: ErrNotPeriodic, deco: []string{"Fractional"}, critical: true}
	}
	inv, err := S.Lattice.Inverse()
	if err != nil {
		return nil, Error{message: ErrLattice, deco: []string{"Fractional"}, critical: true, cause: err}
	}
	ret := make([][3]float64, S.Len())
	for i := range ret {
		ret[i] = inv.Cartesian(S.Coords.Vec(i))
	}
	return ret, nil
}

//Species returns the distinct element symbols in the structure, in order of first appearance.
func (S *Structure) Species() []string {
	ret := make([]string, 0, 5)
	for _, v := range S.Atoms {
		if !isInString(ret, v.Symbol) {
			ret = append(ret, v.Symbol)
		}
	}
	return ret
}

//Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	r := new(Structure)
	r.Atoms = make([]*Atom, len(S.Atoms))
	for i, v := range S.Atoms {
		r.Atoms[i] = v.Copy()
	}
	r.Coords = S.Coords.Clone()
	r.Lattice = S.Lattice.Clone()
	r.PBC = S.PBC
	r.charge = S.charge
	r.multi = S.multi
	return r
}

/*
 * centering.go, part of goaims.
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

package kpath

import (
	"math"

	v3 "github.com/rmera/goaims/v3"
)

//Centering is the centering of a cell, i.e. the translations by fractions of the lattice
//vectors that leave the crystal unchanged.
type Centering string

const (
	Primitive Centering = "P"
	Face      Centering = "F" //(0,1/2,1/2), (1/2,0,1/2) and (1/2,1/2,0)
	Body      Centering = "I" //(1/2,1/2,1/2)
	BaseA     Centering = "A" //(0,1/2,1/2)
	BaseB     Centering = "B" //(1/2,0,1/2)
	BaseC     Centering = "C" //(1/2,1/2,0)
)

//fractional tolerance for two sites to be the same.
const siteTol = 1e-3

var (
	tA = [3]float64{0, 0.5, 0.5}
	tB = [3]float64{0.5, 0, 0.5}
	tC = [3]float64{0.5, 0.5, 0}
	tI = [3]float64{0.5, 0.5, 0.5}
)

//matrices that take fractional coordinates in the reciprocal lattice of the
//primitive cell to those in the reciprocal lattice of the conventional cubic cell.
var (
	fccToCubic = [3][3]float64{{-1, 1, 1}, {1, -1, 1}, {1, 1, -1}}
	bccToCubic = [3][3]float64{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}
)

//sameSite returns true if a and b are the same point, modulo lattice translations.
func sameSite(a, b [3]float64) bool {
	for i := 0; i < 3; i++ {
		d := a[i] - b[i]
		d -= math.Round(d)
		if math.Abs(d) > siteTol {
			return false
		}
	}
	return true
}

//invariant returns true if translating every site by t gives a site of the same type.
func invariant(frac [][3]float64, types []string, t [3]float64) bool {
	for i, f := range frac {
		moved := [3]float64{f[0] + t[0], f[1] + t[1], f[2] + t[2]}
		found := false
		for j, g := range frac {
			if types[j] == types[i] && sameSite(moved, g) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

//FindCentering returns the centering of a cell with sites at the fractional coordinates
//frac, occupied by the given types (element symbols, or anything that tells two
//different sites apart). frac and types must have the same length. An empty cell is primitive.
func FindCentering(frac [][3]float64, types []string) Centering {
	if len(frac) == 0 || len(frac) != len(types) {
		return Primitive
	}
	a, b, c := invariant(frac, types, tA), invariant(frac, types, tB), invariant(frac, types, tC)
	switch {
	case a && b && c:
		return Face
	case invariant(frac, types, tI):
		return Body
	case a:
		return BaseA
	case b:
		return BaseB
	case c:
		return BaseC
	}
	return Primitive
}

//CrystalPath returns the high-symmetry path for a cell with the given sites (see FindCentering).
//Unlike Path, it recognizes conventional cubic cells of face and body-centered crystals, and returns
//the FCC or BCC path, with the points expressed in the reciprocal lattice of the given cell.
//The Centering field of the returned path is set.
func CrystalPath(lattice *v3.Matrix, frac [][3]float64, types []string) (*KPath, error) {
	kp, err := Path(lattice)
	if err != nil {
		return nil, err
	}
	kp.Centering = FindCentering(frac, types)
	if kp.Kind != CUB {
		return kp, nil
	}
	switch kp.Centering {
	case Face:
		kp = fccPath()
		kp.transform(fccToCubic)
		kp.Centering = Face
	case Body:
		kp = bccPath()
		kp.transform(bccToCubic)
		kp.Centering = Body
	}
	return kp, nil
}

//Reduced returns false if the path was obtained for a centered cell, for which
//the path of the primitive lattice was not used.
func (K *KPath) Reduced() bool {
	if K.Centering == "" || K.Centering == Primitive {
		return true
	}
	return (K.Kind == FCC && K.Centering == Face) || (K.Kind == BCC && K.Centering == Body)
}

//transform applies m to the fractional coordinates of all the points.
func (K *KPath) transform(m [3][3]float64) {
	for label, p := range K.Points {
		var n [3]float64
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				n[i] += m[i][j] * p[j]
			}
		}
		K.Points[label] = n
	}
}

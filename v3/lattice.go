/*
 * lattice.go, part of goaims.
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

package v3

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//The functions in this file treat the receiver as a unit cell, i.e. a 3x3 Matrix
//where each vector (row) is a lattice vector.

func (F *Matrix) checkCell(caller string) error {
	if F == nil || F.NVecs() != 3 {
		return Error{ErrNotCell, []string{caller}, true}
	}
	return nil
}

//Volume returns the volume of the cell (the absolute value of the determinant).
func (F *Matrix) Volume() float64 {
	return math.Abs(mat.Det(F.Dense))
}

//Inverse returns the inverse of the cell matrix. Returns error if the
//receiver is not a 3x3 matrix or if it is singular.
func (F *Matrix) Inverse() (*Matrix, error) {
	if err := F.checkCell("Inverse"); err != nil {
		return nil, err
	}
	if F.Volume() <= appzero {
		return nil, Error{ErrSingular, []string{"Inverse"}, true}
	}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(F.Dense); err != nil {
		return nil, Error{ErrSingular + ": " + err.Error(), []string{"mat.Inverse", "Inverse"}, true}
	}
	return &Matrix{inv}, nil
}

//Reciprocal returns the reciprocal lattice of the cell, without the 2*Pi factor,
//as a Matrix where each row is a reciprocal vector (i.e. the transpose of the inverse).
func (F *Matrix) Reciprocal() (*Matrix, error) {
	inv, err := F.Inverse()
	if err != nil {
		return nil, errDecorate(err, "Reciprocal")
	}
	r := mat.DenseCopyOf(inv.T())
	return &Matrix{r}, nil
}

//Norms returns the lengths of the 3 vectors of the cell.
func (F *Matrix) Norms() [3]float64 {
	var ret [3]float64
	for i := 0; i < 3; i++ {
		v := F.Vec(i)
		ret[i] = floats.Norm(v[:], 2)
	}
	return ret
}

//Angles returns the alpha (b,c), beta (a,c) and gamma (a,b) angles of the cell, in degrees.
func (F *Matrix) Angles() [3]float64 {
	a, b, c := F.Vec(0), F.Vec(1), F.Vec(2)
	return [3]float64{vecAngle(b, c), vecAngle(a, c), vecAngle(a, b)}
}

func vecAngle(u, v [3]float64) float64 {
	cos := floats.Dot(u[:], v[:]) / (floats.Norm(u[:], 2) * floats.Norm(v[:], 2))
	//floating point can put us slightly outside [-1,1]
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

//Cartesian transforms the fractional coordinates frac, given in the basis of the cell
//F, into cartesian coordinates.
func (F *Matrix) Cartesian(frac [3]float64) [3]float64 {
	var ret [3]float64
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			ret[j] += frac[i] * F.At(i, j)
		}
	}
	return ret
}

//Distance returns the euclidean distance between two points.
func Distance(a, b [3]float64) float64 {
	return floats.Distance(a[:], b[:], 2)
}

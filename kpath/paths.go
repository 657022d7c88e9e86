/*
 * paths.go, part of goaims.
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

import "math"

//The points and paths below are those of Setyawan and Curtarolo, in the standard
//primitive setting of each lattice.

func cubPath() *KPath {
	return &KPath{
		Kind: CUB,
		Points: map[string][3]float64{
			Gamma: {0, 0, 0},
			"M":   {0.5, 0.5, 0},
			"R":   {0.5, 0.5, 0.5},
			"X":   {0, 0.5, 0},
		},
		Branches: [][]string{{Gamma, "X", "M", Gamma, "R", "X"}, {"M", "R"}},
	}
}

func fccPath() *KPath {
	return &KPath{
		Kind: FCC,
		Points: map[string][3]float64{
			Gamma: {0, 0, 0},
			"K":   {3.0 / 8.0, 3.0 / 8.0, 3.0 / 4.0},
			"L":   {0.5, 0.5, 0.5},
			"U":   {5.0 / 8.0, 1.0 / 4.0, 5.0 / 8.0},
			"W":   {0.5, 1.0 / 4.0, 3.0 / 4.0},
			"X":   {0.5, 0, 0.5},
		},
		Branches: [][]string{{Gamma, "X", "W", "K", Gamma, "L", "U", "W", "L", "K"}, {"U", "X"}},
	}
}

func bccPath() *KPath {
	return &KPath{
		Kind: BCC,
		Points: map[string][3]float64{
			Gamma: {0, 0, 0},
			"H":   {0.5, -0.5, 0.5},
			"P":   {0.25, 0.25, 0.25},
			"N":   {0, 0, 0.5},
		},
		Branches: [][]string{{Gamma, "H", "N", Gamma, "P", "H"}, {"P", "N"}},
	}
}

func tetPath() *KPath {
	return &KPath{
		Kind: TET,
		Points: map[string][3]float64{
			Gamma: {0, 0, 0},
			"A":   {0.5, 0.5, 0.5},
			"M":   {0.5, 0.5, 0},
			"R":   {0, 0.5, 0.5},
			"X":   {0, 0.5, 0},
			"Z":   {0, 0, 0.5},
		},
		Branches: [][]string{{Gamma, "X", "M", Gamma, "Z", "R", "A", "Z"}, {"X", "R"}, {"M", "A"}},
	}
}

func orcPath() *KPath {
	return &KPath{
		Kind: ORC,
		Points: map[string][3]float64{
			Gamma: {0, 0, 0},
			"R":   {0.5, 0.5, 0.5},
			"S":   {0.5, 0.5, 0},
			"T":   {0, 0.5, 0.5},
			"U":   {0.5, 0, 0.5},
			"X":   {0.5, 0, 0},
			"Y":   {0, 0.5, 0},
			"Z":   {0, 0, 0.5},
		},
		Branches: [][]string{{Gamma, "X", "S", "Y", Gamma, "Z", "U", "R", "T", "Z"}, {"Y", "T"}, {"U", "X"}, {"S", "R"}},
	}
}

func hexPath() *KPath {
	return &KPath{
		Kind: HEX,
		Points: map[string][3]float64{
			Gamma: {0, 0, 0},
			"A":   {0, 0, 0.5},
			"H":   {1.0 / 3.0, 1.0 / 3.0, 0.5},
			"K":   {1.0 / 3.0, 1.0 / 3.0, 0},
			"L":   {0.5, 0, 0.5},
			"M":   {0.5, 0, 0},
		},
		Branches: [][]string{{Gamma, "M", "K", Gamma, "A", "L", "H", "A"}, {"L", "M"}, {"K", "H"}},
	}
}

//alpha in degrees
func rhl1Path(alpha float64) *KPath {
	c := math.Cos(alpha * math.Pi / 180)
	eta := (1 + 4*c) / (2 + 4*c)
	nu := 3.0/4.0 - eta/2
	return &KPath{
		Kind: RHL1,
		Points: map[string][3]float64{
			Gamma: {0, 0, 0},
			"B":   {eta, 0.5, 1 - eta},
			"B_1": {0.5, 1 - eta, eta - 1},
			"F":   {0.5, 0.5, 0},
			"L":   {0.5, 0, 0},
			"L_1": {0, 0, -0.5},
			"P":   {eta, nu, nu},
			"P_1": {1 - nu, 1 - nu, 1 - eta},
			"P_2": {nu, nu, eta - 1},
			"Q":   {1 - nu, nu, 0},
			"X":   {nu, 0, -nu},
			"Z":   {0.5, 0.5, 0.5},
		},
		Branches: [][]string{{Gamma, "L", "B_1"}, {"B", "Z", Gamma, "X"}, {"Q", "F", "P_1", "Z"}, {"L", "P"}},
	}
}

func rhl2Path(alpha float64) *KPath {
	t := math.Tan(alpha * math.Pi / 360)
	eta := 1 / (2 * t * t)
	nu := 3.0/4.0 - eta/2
	return &KPath{
		Kind: RHL2,
		Points: map[string][3]float64{
			Gamma: {0, 0, 0},
			"F":   {0.5, -0.5, 0},
			"L":   {0.5, 0, 0},
			"P":   {1 - nu, -nu, 1 - nu},
			"P_1": {nu, nu - 1, nu - 1},
			"Q":   {eta, eta, eta},
			"Q_1": {1 - eta, -eta, -eta},
			"Z":   {0.5, -0.5, 0.5},
		},
		Branches: [][]string{{Gamma, "P", "Z", "Q", Gamma, "F", "P_1", "Q_1", "L", "Z"}},
	}
}

//b and c are the lengths of the second and third lattice vectors, alpha the angle between them, in degrees.
func mclPath(b, c, alpha float64) *KPath {
	a := alpha * math.Pi / 180
	s := math.Sin(a)
	eta := (1 - b*math.Cos(a)/c) / (2 * s * s)
	nu := 0.5 - eta*c*math.Cos(a)/b
	return &KPath{
		Kind: MCL,
		Points: map[string][3]float64{
			Gamma: {0, 0, 0},
			"A":   {0.5, 0.5, 0},
			"C":   {0, 0.5, 0.5},
			"D":   {0.5, 0, 0.5},
			"D_1": {0.5, 0, -0.5},
			"E":   {0.5, 0.5, 0.5},
			"H":   {0, eta, 1 - nu},
			"H_1": {0, 1 - eta, nu},
			"H_2": {0, eta, -nu},
			"M":   {0.5, eta, 1 - nu},
			"M_1": {0.5, 1 - eta, nu},
			"M_2": {0.5, eta, -nu},
			"X":   {0, 0.5, 0},
			"Y":   {0, 0, 0.5},
			"Y_1": {0, 0, -0.5},
			"Z":   {0.5, 0, 0},
		},
		Branches: [][]string{{Gamma, "Y", "H", "C", "E", "M_1", "A", "X", "H_1"}, {"M", "D", "Z"}, {"Y", "D"}},
	}
}

//Used for triclinic cells and for every cell not recognized.
func triPath() *KPath {
	return &KPath{
		Kind: TRI,
		Points: map[string][3]float64{
			Gamma: {0, 0, 0},
			"L":   {0.5, 0.5, 0},
			"M":   {0, 0.5, 0.5},
			"N":   {0.5, 0, 0.5},
			"R":   {0.5, 0.5, 0.5},
			"X":   {0.5, 0, 0},
			"Y":   {0, 0.5, 0},
			"Z":   {0, 0, 0.5},
		},
		Branches: [][]string{{"X", Gamma, "Y"}, {"L", Gamma, "Z"}, {"N", Gamma, "M"}, {"R", Gamma}},
	}
}

/*
 * kpath.go, part of goaims.
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

/*Package kpath finds the Bravais lattice of a cell and the corresponding path
through the high-symmetry points of the Brillouin zone, following the conventions
of W. Setyawan and S. Curtarolo, Comp. Mat. Sci. 49, 299 (2010). The path can be
sampled with a given number of points per inverse Angstrom, which is what band
structure calculations need.

The cell is taken as given, i.e. it is not standardized. Path only looks at the shape
of the cell, while CrystalPath also uses the sites in it to recognize the conventional
cells of face and body-centered cubic crystals. Cells that are not in one of the
settings recognized by Classify get the triclinic path.*/
package kpath

import (
	"fmt"
	"math"
	"sort"

	v3 "github.com/rmera/goaims/v3"
)

//Kind is the Bravais lattice type.
type Kind string

const (
	CUB  Kind = "CUB"  //simple cubic
	FCC  Kind = "FCC"  //face-centered cubic, primitive cell
	BCC  Kind = "BCC"  //body-centered cubic, primitive cell
	TET  Kind = "TET"  //tetragonal
	ORC  Kind = "ORC"  //orthorhombic
	HEX  Kind = "HEX"  //hexagonal
	RHL1 Kind = "RHL1" //rhombohedral, alpha < 90
	RHL2 Kind = "RHL2" //rhombohedral, alpha > 90
	MCL  Kind = "MCL"  //monoclinic, unique axis a, alpha < 90
	TRI  Kind = "TRI"  //triclinic, or anything not recognized
)

//Gamma is the label used for the center of the Brillouin zone.
const Gamma = "\\Gamma"

const (
	lengthTol = 1e-3 //relative
	angleTol  = 0.1  //degrees
)

//KPath is a set of high-symmetry points, in fractional coordinates of the reciprocal lattice
//of the cell it was obtained for, and the branches of the path through them. Each branch is a
//continuous line, jumps happen between branches.
type KPath struct {
	Kind      Kind
	Centering Centering //only set by CrystalPath
	Points    map[string][3]float64
	Branches  [][]string
}

//Point is a sampled point of a path. Only the high symmetry points have a label.
type Point struct {
	Frac         [3]float64
	Label        string
	SegmentStart bool //first point of a line between two high-symmetry points
}

//Error is the error type for the kpath package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

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

const (
	ErrCell    = "kpath: the lattice must be a non-singular 3x3 matrix"
	ErrDensity = "kpath: the line density must be positive"
	ErrLabel   = "kpath: path refers to an undefined point"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

//cellParams returns the lengths and angles of the cell, and an error if it is not a proper cell.
func cellParams(lattice *v3.Matrix) ([3]float64, [3]float64, error) {
	if lattice == nil || lattice.NVecs() != 3 {
		return [3]float64{}, [3]float64{}, Error{ErrCell, []string{"cellParams"}, true}
	}
	if _, err := lattice.Inverse(); err != nil {
		return [3]float64{}, [3]float64{}, Error{ErrCell + ": " + err.Error(), []string{"cellParams"}, true}
	}
	return lattice.Norms(), lattice.Angles(), nil
}

//Classify returns the Bravais lattice of the cell, and, for the lattices where the
//orientation matters, the permutation that maps the axes of the standard setting to those
//of the cell (standard axis i is axis perm[i] of the cell).
func Classify(lattice *v3.Matrix) (Kind, [3]int, error) {
	id := [3]int{0, 1, 2}
	l, ang, err := cellParams(lattice)
	if err != nil {
		return TRI, id, err
	}
	ltol := lengthTol * math.Max(l[0], math.Max(l[1], l[2]))
	eq := func(i, j int) bool { return near(l[i], l[j], ltol) }
	right := func(i int) bool { return near(ang[i], 90, angleTol) }
	allEq := eq(0, 1) && eq(1, 2)
	sameAngles := near(ang[0], ang[1], angleTol) && near(ang[1], ang[2], angleTol)
	switch {
	case right(0) && right(1) && right(2):
		if allEq {
			return CUB, id, nil
		}
		if eq(0, 1) {
			return TET, [3]int{0, 1, 2}, nil
		}
		if eq(0, 2) {
			return TET, [3]int{0, 2, 1}, nil
		}
		if eq(1, 2) {
			return TET, [3]int{1, 2, 0}, nil
		}
		//standard setting is a < b < c
		perm := []int{0, 1, 2}
		sort.Slice(perm, func(i, j int) bool { return l[perm[i]] < l[perm[j]] })
		return ORC, [3]int{perm[0], perm[1], perm[2]}, nil
	case allEq && sameAngles && near(ang[0], 60, angleTol):
		return FCC, id, nil
	case allEq && sameAngles && near(ang[0], math.Acos(-1.0/3.0)*180/math.Pi, angleTol):
		return BCC, id, nil
	case eq(0, 1) && right(0) && right(1) && near(ang[2], 120, angleTol):
		return HEX, id, nil
	case allEq && sameAngles:
		if ang[0] < 90 {
			return RHL1, id, nil
		}
		return RHL2, id, nil
	case right(1) && right(2) && ang[0] < 90 && l[1] <= l[2]+ltol:
		return MCL, id, nil
	}
	return TRI, id, nil
}

//Path returns the high-symmetry path for the given cell.
func Path(lattice *v3.Matrix) (*KPath, error) {
	kind, perm, err := Classify(lattice)
	if err != nil {
		return nil, err
	}
	l := lattice.Norms()
	ang := lattice.Angles()
	var kp *KPath
	switch kind {
	case CUB:
		kp = cubPath()
	case FCC:
		kp = fccPath()
	case BCC:
		kp = bccPath()
	case TET:
		kp = tetPath()
	case ORC:
		kp = orcPath()
	case HEX:
		kp = hexPath()
	case RHL1:
		kp = rhl1Path(ang[0])
	case RHL2:
		kp = rhl2Path(ang[0])
	case MCL:
		kp = mclPath(l[1], l[2], ang[0])
	default:
		kp = triPath()
	}
	kp.permute(perm)
	return kp, nil
}

//permute moves the fractional coordinates of the points from the standard
//setting to the axes of the cell.
func (K *KPath) permute(perm [3]int) {
	if perm == [3]int{0, 1, 2} {
		return
	}
	for label, p := range K.Points {
		var n [3]float64
		for i := 0; i < 3; i++ {
			n[perm[i]] = p[i]
		}
		K.Points[label] = n
	}
}

//Sample returns the points along the path for the cell lattice, with density
//points per inverse Angstrom (the reciprocal lattice includes the 2*Pi factor).
//For each pair of consecutive points in a branch, nb=ceil(distance*density) intervals
//are used, and nb+1 points are returned, only the first and the last with labels.
//Pairs that give no intervals are skipped.
func (K *KPath) Sample(lattice *v3.Matrix, density float64) ([]Point, error) {
	if density <= 0 {
		return nil, Error{ErrDensity, []string{"Sample"}, true}
	}
	rec, err := lattice.Reciprocal()
	if err != nil {
		return nil, Error{ErrCell + ": " + err.Error(), []string{"Sample"}, true}
	}
	rec.Dense.Scale(2*math.Pi, rec.Dense)
	ret := make([]Point, 0, 100)
	for _, branch := range K.Branches {
		for i := 1; i < len(branch); i++ {
			start, ok1 := K.Points[branch[i-1]]
			end, ok2 := K.Points[branch[i]]
			if !ok1 || !ok2 {
				return nil, Error{fmt.Sprintf("%s: %s-%s", ErrLabel, branch[i-1], branch[i]), []string{"Sample"}, true}
			}
			distance := v3.Distance(rec.Cartesian(start), rec.Cartesian(end))
			nb := int(math.Ceil(distance * density))
			if nb == 0 {
				continue
			}
			for j := 0; j <= nb; j++ {
				t := float64(j) / float64(nb)
				var p Point
				for k := 0; k < 3; k++ {
					p.Frac[k] = start[k] + t*(end[k]-start[k])
				}
				switch j {
				case 0:
					p.Label = branch[i-1]
					p.SegmentStart = true
				case nb:
					p.Label = branch[i]
				}
				ret = append(ret, p)
			}
		}
	}
	return ret, nil
}

//Distances returns, for each point in points, the accumulated distance along the path, in inverse Angstrom.
//The first point of a segment adds no distance, so jumps between branches don't count.
func Distances(lattice *v3.Matrix, points []Point) ([]float64, error) {
	rec, err := lattice.Reciprocal()
	if err != nil {
		return nil, Error{ErrCell + ": " + err.Error(), []string{"Distances"}, true}
	}
	rec.Dense.Scale(2*math.Pi, rec.Dense)
	ret := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		ret[i] = ret[i-1]
		if points[i].SegmentStart {
			continue
		}
		ret[i] += v3.Distance(rec.Cartesian(points[i-1].Frac), rec.Cartesian(points[i].Frac))
	}
	return ret, nil
}

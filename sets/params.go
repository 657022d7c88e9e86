/*
 * params.go, part of goaims.
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

import (
	"math"

	aims "github.com/rmera/goaims"
	v3 "github.com/rmera/goaims/v3"
)

//Parameters is the set of FHI-aims keywords of a calculation, plus the
//meta-keywords understood by aims.ControlIn.
type Parameters map[string]interface{}

//asMap returns the value as a map, if it is one.
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Parameters:
		return map[string]interface{}(m), true
	}
	return nil, false
}

//asStrings returns the value as a slice of strings, if it is one,
//or if it is a slice of interfaces containing only strings.
func asStrings(v interface{}) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []interface{}:
		ret := make([]string, 0, len(s))
		for _, w := range s {
			str, ok := w.(string)
			if !ok {
				return nil, false
			}
			ret = append(ret, str)
		}
		return ret, true
	}
	return nil, false
}

//RecursiveUpdate applies the updates in up to dst, and returns dst. Maps are merged
//recursively. A list under the "output" key is appended to the existing one, every
//other value replaces the existing value. The values in up are copied, so later
//changes to up don't affect dst.
func RecursiveUpdate(dst, up map[string]interface{}) map[string]interface{} {
	if dst == nil {
		dst = make(map[string]interface{}, len(up))
	}
	for key, val := range up {
		if m, ok := asMap(val); ok {
			old, isMap := asMap(dst[key])
			if !isMap {
				old = make(map[string]interface{}, len(m))
			}
			dst[key] = RecursiveUpdate(old, m)
			continue
		}
		if key == "output" {
			if outs, ok := asStrings(val); ok {
				dst[key] = appendOutput(dst[key], outs)
				continue
			}
		}
		dst[key] = deepCopyValue(val)
	}
	return dst
}

func appendOutput(old interface{}, outs []string) []string {
	var ret []string
	if prev, ok := asStrings(old); ok {
		ret = append(ret, prev...)
	} else if str, ok := old.(string); ok {
		ret = append(ret, str)
	}
	return append(ret, outs...)
}

//DeepCopy returns a copy of the parameters that shares no maps or slices with the original.
func (P Parameters) DeepCopy() Parameters {
	if P == nil {
		return nil
	}
	return Parameters(deepCopyMap(P))
}

func deepCopyMap(m map[string]interface{}) map[string]interface{} {
	ret := make(map[string]interface{}, len(m))
	for k, v := range m {
		ret[k] = deepCopyValue(v)
	}
	return ret
}

func deepCopyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return deepCopyMap(t)
	case Parameters:
		return deepCopyMap(t)
	case []interface{}:
		ret := make([]interface{}, len(t))
		for i, w := range t {
			ret[i] = deepCopyValue(w)
		}
		return ret
	case []string:
		return append([]string(nil), t...)
	case []float64:
		return append([]float64(nil), t...)
	case []int:
		return append([]int(nil), t...)
	}
	return v
}

const kTol = 1e-9

//KpointsSettings controls how a k-grid is obtained from a k-point density.
//A nil Density means that no density was requested. Density can have one element,
//used for the 3 directions, or 3. A nil Even means true.
type KpointsSettings struct {
	Density []float64
	Even    *bool
}

func (K KpointsSettings) copy() KpointsSettings {
	r := KpointsSettings{Density: append([]float64(nil), K.Density...)}
	if K.Even != nil {
		e := *K.Even
		r.Even = &e
	}
	return r
}

func (K KpointsSettings) even() bool {
	return K.Even == nil || *K.Even
}

//D2KRecipCell returns the Monkhorst-Pack grid that gives at least the requested
//k-point density (points per inverse Angstrom) in each periodic direction. recip are
//the reciprocal lattice vectors, without the 2*Pi factor. Directions that are not
//periodic get one k-point. If even is true, the grid is rounded up to even numbers.
func D2KRecipCell(recip *v3.Matrix, pbc [3]bool, density []float64, even bool) ([]int, error) {
	dens, err := broadcastDensity(density)
	if err != nil {
		return nil, errDecorate(err, "D2KRecipCell")
	}
	if recip == nil || recip.NVecs() != 3 {
		return nil, Error{message: ErrReciprocal, deco: []string{"D2KRecipCell"}, critical: true}
	}
	norms := recip.Norms()
	ret := make([]int, 3)
	for i := 0; i < 3; i++ {
		if !pbc[i] {
			ret[i] = 1
			continue
		}
		//kTol keeps grids converted to densities and back from growing by round-off.
		k := 2*math.Pi*norms[i]*dens[i] - kTol
		if even {
			ret[i] = 2 * int(math.Ceil(k/2))
		} else {
			ret[i] = int(math.Ceil(k))
		}
		if ret[i] < 1 {
			ret[i] = 1
		}
	}
	return ret, nil
}

func broadcastDensity(density []float64) ([3]float64, error) {
	var ret [3]float64
	switch len(density) {
	case 1:
		ret = [3]float64{density[0], density[0], density[0]}
	case 3:
		copy(ret[:], density)
	default:
		return ret, Error{message: ErrDensity, deco: []string{"broadcastDensity"}, critical: true}
	}
	for _, d := range ret {
		if d < 0 || math.IsNaN(d) {
			return ret, Error{message: ErrDensity, deco: []string{"broadcastDensity"}, critical: true}
		}
	}
	return ret, nil
}

//D2K returns the Monkhorst-Pack grid for the periodic structure S with the given
//k-point density. See D2KRecipCell.
func D2K(S *aims.Structure, density []float64, even bool) ([]int, error) {
	recip, err := S.Reciprocal()
	if err != nil {
		return nil, errDecorate(err, "D2K")
	}
	grid, err := D2KRecipCell(recip, S.PBC, density, even)
	if err != nil {
		return nil, errDecorate(err, "D2K")
	}
	return grid, nil
}

//K2D returns the k-point density in each direction that corresponds to the grid kgrid,
//for the periodic structure S.
func K2D(S *aims.Structure, kgrid []float64) ([]float64, error) {
	if len(kgrid) != 3 {
		return nil, Error{message: ErrKGrid, deco: []string{"K2D"}, critical: true}
	}
	recip, err := S.Reciprocal()
	if err != nil {
		return nil, errDecorate(err, "K2D")
	}
	norms := recip.Norms()
	ret := make([]float64, 3)
	for i, k := range kgrid {
		ret[i] = k / (2 * math.Pi * norms[i])
	}
	return ret, nil
}

/*
 * bs.go, part of goaims.
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
	"fmt"

	aims "github.com/rmera/goaims"
	"github.com/rmera/goaims/kpath"
	"go.uber.org/zap"
)

//DefaultBandDensity is the default number of k-points per inverse Angstrom along band paths.
const DefaultBandDensity = 20.0

//BandStructureGenerator produces input sets for band structure calculations. The
//band path is added to the output of the previous calculation.
type BandStructureGenerator struct {
	Generator
	KPointDensity float64 //points per inverse Angstrom along the path, DefaultBandDensity if 0.
}

//NewBandStructureGenerator returns a band structure generator with the default density.
func NewBandStructureGenerator(g Generator) *BandStructureGenerator {
	return &BandStructureGenerator{Generator: g, KPointDensity: DefaultBandDensity}
}

//ParameterUpdates returns the output keywords for the band path of S, appended to the
//output of the previous calculation. Nothing else from prev is kept.
func (B *BandStructureGenerator) ParameterUpdates(S *aims.Structure, prev Parameters) (Parameters, error) {
	bands, err := BandInput(S, bandDensity(B.KPointDensity), B.log())
	if err != nil {
		return nil, errDecorate(err, "ParameterUpdates")
	}
	outs, _ := asStrings(prev["output"])
	return Parameters{"output": append(append([]string(nil), outs...), bands...)}, nil
}

//InputSet returns the input set for a band structure calculation. See Generator.InputSet.
func (B *BandStructureGenerator) InputSet(S *aims.Structure, prevDir string, properties []string) (*InputSet, error) {
	g := B.Generator
	g.Updater = B
	return g.InputSet(S, prevDir, properties)
}

//GWGenerator produces input sets for GW calculations. For structures periodic in
//the 3 directions, the band path is also requested.
type GWGenerator struct {
	Generator
	KPointDensity float64 //points per inverse Angstrom along the path, DefaultBandDensity if 0.
}

//NewGWGenerator returns a GW generator with the default band path density.
func NewGWGenerator(g Generator) *GWGenerator {
	return &GWGenerator{Generator: g, KPointDensity: DefaultBandDensity}
}

//ParameterUpdates returns the GW keywords for S.
func (W *GWGenerator) ParameterUpdates(S *aims.Structure, prev Parameters) (Parameters, error) {
	updates := Parameters{"anacon_type": "two-pole"}
	if !S.FullyPeriodic() {
		updates["qpe_calc"] = "gw"
		return updates, nil
	}
	bands, err := BandInput(S, bandDensity(W.KPointDensity), W.log())
	if err != nil {
		return nil, errDecorate(err, "ParameterUpdates")
	}
	outs, _ := asStrings(prev["output"])
	updates["qpe_calc"] = "gw_expt"
	updates["output"] = append(append([]string(nil), outs...), bands...)
	return updates, nil
}

//InputSet returns the input set for a GW calculation. See Generator.InputSet.
func (W *GWGenerator) InputSet(S *aims.Structure, prevDir string, properties []string) (*InputSet, error) {
	g := W.Generator
	g.Updater = W
	return g.InputSet(S, prevDir, properties)
}

func bandDensity(d float64) float64 {
	if d <= 0 {
		return DefaultBandDensity
	}
	return d
}

type segment struct {
	coords [][3]float64
	labels []string
	length int
}

//BandInput returns one "band" output line for each segment of the high-symmetry path of S,
//sampled with density points per inverse Angstrom.
func BandInput(S *aims.Structure, density float64, log *zap.Logger) ([]string, error) {
	if !S.Periodic() {
		return nil, Error{message: ErrBandPath, deco: []string{"BandInput"}, critical: true, cause: fmt.Errorf("the structure is not periodic")}
	}
	path, err := BandPath(S)
	if err != nil {
		return nil, errDecorate(err, "BandInput")
	}
	if log != nil {
		log.Debug("band path", zap.String("lattice", string(path.Kind)), zap.String("centering", string(path.Centering)))
		if !path.Reduced() {
			log.Warn("the cell is centered and not the standard primitive one, the band path may miss high-symmetry points",
				zap.String("lattice", string(path.Kind)), zap.String("centering", string(path.Centering)))
		}
	}
	points, err := path.Sample(S.Lattice, density)
	if err != nil {
		return nil, Error{message: ErrBandPath, deco: []string{"Sample", "BandInput"}, critical: true, cause: err}
	}
	return bandLines(points), nil
}

//BandPath returns the high-symmetry path for the lattice of S, taking into account
//the centering of the cell given by its atoms.
func BandPath(S *aims.Structure) (*kpath.KPath, error) {
	frac, err := S.Fractional()
	if err != nil {
		return nil, Error{message: ErrBandPath, deco: []string{"Fractional", "BandPath"}, critical: true, cause: err}
	}
	types := make([]string, S.Len())
	for i, a := range S.Atoms {
		types[i] = a.Symbol
	}
	path, err := kpath.CrystalPath(S.Lattice, frac, types)
	if err != nil {
		return nil, Error{message: ErrBandPath, deco: []string{"kpath.CrystalPath", "BandPath"}, critical: true, cause: err}
	}
	return path, nil
}

//bandLines groups the sampled points into segments between labelled points.
func bandLines(points []kpath.Point) []string {
	segments := make([]segment, 0, 10)
	var current segment
	for _, p := range points {
		label := p.Label
		if label == kpath.Gamma || label == "GAMMA" || label == "Γ" {
			label = "G"
		}
		current.length++
		if label == "" {
			continue
		}
		current.coords = append(current.coords, p.Frac)
		current.labels = append(current.labels, label)
		if current.length > 1 {
			segments = append(segments, current)
			current = segment{}
		}
	}
	ret := make([]string, 0, len(segments))
	for _, s := range segments {
		if len(s.coords) != 2 {
			continue
		}
		start, end := s.coords[0], s.coords[1]
		ret = append(ret, fmt.Sprintf("band %9.5f%9.5f%9.5f %9.5f%9.5f%9.5f %4d %-3s%-3s",
			start[0], start[1], start[2], end[0], end[1], end[2], s.length, s.labels[0], s.labels[1]))
	}
	return ret
}

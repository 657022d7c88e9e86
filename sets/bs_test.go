/*
 * bs_test.go, part of goaims.
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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	aims "github.com/rmera/goaims"
	"github.com/rmera/goaims/kpath"
	v3 "github.com/rmera/goaims/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBandLines(Te *testing.T) {
	points := []kpath.Point{
		{Frac: [3]float64{0, 0, 0}, Label: kpath.Gamma, SegmentStart: true},
		{Frac: [3]float64{0, 0.25, 0}},
		{Frac: [3]float64{0, 0.5, 0}, Label: "X"},
		{Frac: [3]float64{0, 0.5, 0}, Label: "X", SegmentStart: true},
		{Frac: [3]float64{0.5, 0.5, 0}, Label: "M"},
		{Frac: [3]float64{0.5, 0.5, 0}, Label: "Γ", SegmentStart: true},
		{Frac: [3]float64{0.125, 0.125, 0.125}},
		{Frac: [3]float64{0.25, 0.25, 0.25}, Label: "B_1"},
	}
	want := []string{
		"band   0.00000  0.00000  0.00000   0.00000  0.50000  0.00000    3 G  X  ",
		"band   0.00000  0.50000  0.00000   0.50000  0.50000  0.00000    2 X  M  ",
		"band   0.50000  0.50000  0.00000   0.25000  0.25000  0.25000    3 G  B_1",
	}
	if diff := cmp.Diff(want, bandLines(points)); diff != "" {
		Te.Errorf("Wrong band lines (-want +got):\n%s", diff)
	}
}

func TestBandLinesRepeatedPoint(Te *testing.T) {
	lattice, err := v3.NewMatrix([]float64{4, 0, 0, 0, 4, 0, 0, 0, 4})
	if err != nil {
		Te.Fatal(err)
	}
	kp := &kpath.KPath{Kind: kpath.CUB, Points: map[string][3]float64{kpath.Gamma: {}, "X": {0, 0.5, 0}}, Branches: [][]string{{kpath.Gamma, kpath.Gamma, "X"}}}
	points, err := kp.Sample(lattice, 20)
	if err != nil {
		Te.Fatal(err)
	}
	want := []string{"band   0.00000  0.00000  0.00000   0.00000  0.50000  0.00000   17 G  X  "}
	if diff := cmp.Diff(want, bandLines(points)); diff != "" {
		Te.Errorf("A segment with no intervals should give no band line (-want +got):\n%s", diff)
	}
}

func TestBandInputCentered(Te *testing.T) {
	lattice, _ := v3.NewMatrix([]float64{3, 0, 0, 0, 4, 0, 0, 0, 5})
	coords, _ := v3.NewMatrix([]float64{0, 0, 0, 1.5, 2, 0})
	c1, _ := aims.NewAtom("C")
	c2, _ := aims.NewAtom("C")
	S, err := aims.NewStructure([]*aims.Atom{c1, c2}, coords, lattice)
	if err != nil {
		Te.Fatal(err)
	}
	core, logs := observer.New(zap.WarnLevel)
	if _, err := BandInput(S, 10, zap.New(core)); err != nil {
		Te.Fatal(err)
	}
	if logs.Len() != 1 {
		Te.Errorf("Expected a warning for a base-centered cell, got %d log entries", logs.Len())
	}
	path, err := BandPath(S)
	if err != nil {
		Te.Fatal(err)
	}
	if path.Kind != kpath.ORC || path.Centering != kpath.BaseC {
		Te.Errorf("Wrong path %s %s", path.Kind, path.Centering)
	}
}

func TestBandStructureGenerator(Te *testing.T) {
	si := read(Te, "si.in")
	b := NewBandStructureGenerator(Generator{Settings: light})
	set, err := b.InputSet(si, "../test/prev", nil)
	if err != nil {
		Te.Fatal(err)
	}
	p := set.Parameters()
	outs, ok := p["output"].([]string)
	if !ok || len(outs) != 11 {
		Te.Fatalf("Expected the previous output and 10 band lines, got %v", p["output"])
	}
	if outs[0] != "dos -18 0 200 0.05" {
		Te.Errorf("The previous output should come first, got %q", outs[0])
	}
	//The cubic cell of si.in is face-centered, so the FCC path is used, in the reciprocal
	//lattice of the cubic cell. G-X is 2*Pi/5.431 inverse Angstrom long, sampled with
	//20 points per inverse Angstrom.
	if outs[1] != "band   0.00000  0.00000  0.00000   0.00000  1.00000  0.00000   25 G  X  " {
		Te.Errorf("Wrong first band line %q", outs[1])
	}
	if outs[3] != "band   0.50000  1.00000  0.00000   0.75000  0.75000  0.00000   10 W  K  " {
		Te.Errorf("Wrong W-K band line %q", outs[3])
	}
	if !strings.HasSuffix(outs[10], "U  X  ") {
		Te.Errorf("Wrong last band line %q", outs[10])
	}
	if _, ok := p["sc_accuracy_rho"]; ok {
		Te.Error("Only the output of the previous calculation should be kept")
	}
	if !strings.Contains(set.ControlIn(), strings.TrimSpace(outs[1])) {
		Te.Errorf("Band lines not in control.in:\n%s", set.ControlIn())
	}
	if _, ok := p["k_grid"]; !ok {
		Te.Error("A periodic structure needs a k_grid")
	}

	b.KPointDensity = 40
	set2, err := b.InputSet(si, "", nil)
	if err != nil {
		Te.Fatal(err)
	}
	outs2 := set2.Parameters()["output"].([]string)
	if len(outs2) != 10 || !strings.Contains(outs2[0], "   48 G  X") {
		Te.Errorf("Wrong band lines for a denser path %v", outs2)
	}
	if _, err := b.InputSet(read(Te, "water.xyz"), "", nil); err == nil {
		Te.Error("A molecule has no band structure")
	}
}

func TestGWGenerator(Te *testing.T) {
	gw := NewGWGenerator(Generator{Settings: light})
	set, err := gw.InputSet(read(Te, "water.xyz"), "", nil)
	if err != nil {
		Te.Fatal(err)
	}
	p := set.Parameters()
	if p["qpe_calc"] != "gw" || p["anacon_type"] != "two-pole" {
		Te.Errorf("Wrong GW parameters for a molecule %v", p)
	}
	if _, ok := p["output"]; ok {
		Te.Error("A molecule should get no band output")
	}
	if !hasLine(set.ControlIn(), "qpe_calc", "gw") {
		Te.Errorf("qpe_calc missing in control.in:\n%s", set.ControlIn())
	}

	set, err = gw.InputSet(read(Te, "si.in"), "", []string{"energy"})
	if err != nil {
		Te.Fatal(err)
	}
	p = set.Parameters()
	if p["qpe_calc"] != "gw_expt" || p["anacon_type"] != "two-pole" {
		Te.Errorf("Wrong GW parameters for a crystal %v", p)
	}
	if outs, ok := p["output"].([]string); !ok || len(outs) != 10 {
		Te.Errorf("Expected 10 band lines, got %v", p["output"])
	}

	slab := read(Te, "si.in")
	slab.PBC[2] = false
	params, err := gw.ParameterUpdates(slab, Parameters{"output": []string{"mulliken"}})
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff(Parameters{"anacon_type": "two-pole", "qpe_calc": "gw"}, params); diff != "" {
		Te.Errorf("Wrong updates for a slab (-want +got):\n%s", diff)
	}
}

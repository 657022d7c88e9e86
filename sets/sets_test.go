/*
 * sets_test.go, part of goaims.
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
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zip"
	aims "github.com/rmera/goaims"
	v3 "github.com/rmera/goaims/v3"
	"go.uber.org/zap/zaptest"
)

var light = aims.Settings{SpeciesDir: "../test/species/light", KDensity: aims.DefaultKDensity}

func read(Te *testing.T, name string) *aims.Structure {
	S, err := aims.ReadFile(filepath.Join("../test", name))
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

//hasLine returns true if text has a line with the key followed by the given value.
func hasLine(text, key, value string) bool {
	for _, line := range strings.Split(text, "\n") {
		f := strings.Fields(line)
		if len(f) == 0 || f[0] != key {
			continue
		}
		if strings.Join(f[1:], " ") == value {
			return true
		}
	}
	return false
}

func TestRecursiveUpdate(Te *testing.T) {
	dst := map[string]interface{}{
		"activate_hybrid": map[string]interface{}{"hybrid_functional": "HSE06"},
		"output":          []interface{}{"mulliken"},
		"k_grid":          []int{2, 2, 2},
		"xc":              "pbe",
	}
	up := map[string]interface{}{
		"activate_hybrid": Parameters{"cutoff_radius": 8},
		"output":          []string{"hirshfeld"},
		"k_grid":          []int{4, 4, 4},
		"spin":            "collinear",
	}
	want := map[string]interface{}{
		"activate_hybrid": map[string]interface{}{"hybrid_functional": "HSE06", "cutoff_radius": 8},
		"output":          []string{"mulliken", "hirshfeld"},
		"k_grid":          []int{4, 4, 4},
		"xc":              "pbe",
		"spin":            "collinear",
	}
	got := RecursiveUpdate(dst, up)
	if diff := cmp.Diff(want, got); diff != "" {
		Te.Errorf("Wrong update (-want +got):\n%s", diff)
	}
	up["k_grid"].([]int)[0] = 100
	if got["k_grid"].([]int)[0] != 4 {
		Te.Error("The update shares memory with the updated map")
	}
	fresh := RecursiveUpdate(nil, map[string]interface{}{"output": []string{"dos"}})
	if diff := cmp.Diff(map[string]interface{}{"output": []string{"dos"}}, fresh); diff != "" {
		Te.Errorf("Wrong update of nil map (-want +got):\n%s", diff)
	}
}

func TestDeepCopy(Te *testing.T) {
	p := Parameters{"xc": map[string]interface{}{"name": "hse06"}, "output": []string{"mulliken"}}
	c := p.DeepCopy()
	c["xc"].(map[string]interface{})["name"] = "pbe0"
	c["output"].([]string)[0] = "dos"
	if diff := cmp.Diff(Parameters{"xc": map[string]interface{}{"name": "hse06"}, "output": []string{"mulliken"}}, p); diff != "" {
		Te.Errorf("The copy shares memory with the original (-want +got):\n%s", diff)
	}
}

//hexagonal returns a structure with one carbon atom in a hexagonal cell.
func hexagonal(Te *testing.T, a, c float64) *aims.Structure {
	s3 := math.Sqrt(3)
	lattice, err := v3.NewMatrix([]float64{a / 2, -a * s3 / 2, 0, a / 2, a * s3 / 2, 0, 0, 0, c})
	if err != nil {
		Te.Fatal(err)
	}
	at, err := aims.NewAtom("C")
	if err != nil {
		Te.Fatal(err)
	}
	S, err := aims.NewStructure([]*aims.Atom{at}, v3.Zeros(1), lattice)
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

func TestD2K(Te *testing.T) {
	si := read(Te, "si.in")
	prim := read(Te, "si_prim.in")
	cases := []struct {
		S       *aims.Structure
		density []float64
		even    bool
		want    []int
	}{
		{si, []float64{5}, true, []int{6, 6, 6}},
		{si, []float64{5}, false, []int{6, 6, 6}},
		{prim, []float64{5}, true, []int{12, 12, 12}},
		{prim, []float64{5}, false, []int{11, 11, 11}},
		{si, []float64{5, 10, 2}, false, []int{6, 12, 3}},
	}
	for i, c := range cases {
		got, err := D2K(c.S, c.density, c.even)
		if err != nil {
			Te.Fatal(err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			Te.Errorf("case %d: wrong k-grid (-want +got):\n%s", i, diff)
		}
	}
	//the lengths of the reciprocal vectors, not those of the rows of the inverse
	//cell matrix, set the grid. The latter would give 18x11 points in the plane.
	hex := hexagonal(Te, 2.5, 4)
	for even, want := range map[bool][]int{true: {16, 16, 8}, false: {15, 15, 8}} {
		got, err := D2K(hex, []float64{5}, even)
		if err != nil {
			Te.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			Te.Errorf("Wrong hexagonal k-grid, even=%t (-want +got):\n%s", even, diff)
		}
	}

	slab := si.Copy()
	slab.PBC[2] = false
	got, _ := D2K(slab, []float64{5}, true)
	if diff := cmp.Diff([]int{6, 6, 1}, got); diff != "" {
		Te.Errorf("Non periodic directions should get one k-point (-want +got):\n%s", diff)
	}
	var serr Error
	if _, err := D2K(si, []float64{5, 5}, true); !errors.As(err, &serr) || serr.Message() != ErrDensity {
		Te.Errorf("Expected %q, got %v", ErrDensity, err)
	}
	if diff := cmp.Diff([]string{"broadcastDensity", "D2KRecipCell", "D2K"}, serr.Decorate("")); diff != "" {
		Te.Errorf("Wrong error decoration (-want +got):\n%s", diff)
	}
	if _, err := D2K(read(Te, "water.xyz"), []float64{5}, true); err == nil {
		Te.Error("A molecule has no k-grid")
	}
	dens, err := K2D(si, []float64{6, 6, 6})
	if err != nil {
		Te.Fatal(err)
	}
	for _, d := range dens {
		if math.Abs(d-6*5.431/(2*math.Pi)) > 1e-9 {
			Te.Errorf("Wrong density %v", dens)
		}
	}
}

func TestProperties(Te *testing.T) {
	cases := []struct {
		requested []string
		params    Parameters
		want      []string
	}{
		{nil, Parameters{}, []string{"energy", "free_energy"}},
		{nil, Parameters{"compute_forces": true}, []string{"energy", "free_energy", "forces"}},
		{[]string{"energy"}, Parameters{"compute_heat_flux": true}, []string{"energy", "stress", "stresses"}},
		{[]string{"energy", "stress"}, Parameters{"compute_numerical_stress": true}, []string{"energy", "stress"}},
		{[]string{"forces"}, Parameters{"compute_forces": true, "compute_analytical_stress": true}, []string{"forces", "stress"}},
	}
	for i, c := range cases {
		if diff := cmp.Diff(c.want, Properties(c.requested, c.params)); diff != "" {
			Te.Errorf("case %d: wrong properties (-want +got):\n%s", i, diff)
		}
	}
}

func TestGenerator(Te *testing.T) {
	si := read(Te, "si.in")
	g := &Generator{Settings: light, Log: zaptest.NewLogger(Te)}
	var serr Error
	if _, err := g.InputSet(nil, "", nil); !errors.As(err, &serr) || serr.Message() != ErrNoStructure {
		Te.Errorf("Expected %q, got %v", ErrNoStructure, err)
	}
	set, err := g.InputSet(si, "", nil)
	if err != nil {
		Te.Fatal(err)
	}
	control := set.ControlIn()
	for _, kv := range [][2]string{{"xc", "pbe"}, {"relativistic", "atomic_zora scalar"}, {"k_grid", "6 6 6"}} {
		if !hasLine(control, kv[0], kv[1]) {
			Te.Errorf("control.in lacks %s %s:\n%s", kv[0], kv[1], control)
		}
	}
	if !strings.Contains(control, "light") {
		Te.Errorf("The default species were not used")
	}

	g.UserParameters = Parameters{"k_grid": []int{8, 8, 8}, "species_dir": "../test/species/tight"}
	g.UserKpointsSettings = KpointsSettings{Density: []float64{10}}
	set, err = g.InputSet(si, "", nil)
	if err != nil {
		Te.Fatal(err)
	}
	if !hasLine(set.ControlIn(), "k_grid", "8 8 8") || !strings.Contains(set.ControlIn(), "tight") {
		Te.Errorf("User parameters should win:\n%s", set.ControlIn())
	}

	odd := false
	g.UserParameters = nil
	g.UserKpointsSettings = KpointsSettings{Density: []float64{5}, Even: &odd}
	params, err := g.InputParameters(read(Te, "si_prim.in"), nil)
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff([]int{11, 11, 11}, params["k_grid"]); diff != "" {
		Te.Errorf("Wrong k_grid (-want +got):\n%s", diff)
	}

	g.UserParameters = Parameters{"k_grid": []int{4, 4, 4}, "use_structure_charge": true}
	water := read(Te, "water.xyz")
	params, err = g.InputParameters(water, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if _, ok := params["k_grid"]; ok {
		Te.Error("A molecule should not have a k_grid")
	}
	if _, ok := g.UserParameters["k_grid"]; !ok {
		Te.Error("InputParameters modified the user parameters")
	}
	//a density, as given with -kdensity, must not keep the grid of a molecule.
	g.UserKpointsSettings = KpointsSettings{Density: []float64{5}}
	set, err = g.InputSet(water, "", nil)
	if err != nil {
		Te.Fatal(err)
	}
	if _, ok := set.Parameters()["k_grid"]; ok {
		Te.Error("A molecule with a k-point density should not have a k_grid")
	}
	if strings.Contains(set.ControlIn(), "k_grid") {
		Te.Errorf("k_grid written for a molecule:\n%s", set.ControlIn())
	}
}

func TestReadPrevious(Te *testing.T) {
	g := &Generator{Settings: light}
	S, params, err := g.ReadPrevious("somehost:../test/prev")
	if err != nil {
		Te.Fatal(err)
	}
	if S == nil || S.Len() != 2 || math.Abs(S.Lattice.At(0, 0)-5.45) > 1e-9 {
		Te.Fatalf("The structure was not read from geometry.in.next_step")
	}
	if params["relax_geometry"] != "bfgs 1e-2" {
		Te.Errorf("Wrong previous parameters %v", params)
	}
	if _, _, err := g.ReadPrevious("../test/species"); err == nil {
		Te.Error("A directory without parameters.json should give an error")
	}
	S, params, err = g.ReadPrevious("")
	if S != nil || len(params) != 0 || err != nil {
		Te.Error("An empty directory name should give nothing")
	}

	si := read(Te, "si.in")
	set, err := g.InputSet(si, "somehost:../test/prev", nil)
	if err != nil {
		Te.Fatal(err)
	}
	p := set.Parameters()
	for _, key := range []string{"relax_geometry", "relax_unit_cell"} {
		if _, ok := p[key]; ok {
			Te.Errorf("%s should not be carried over", key)
		}
	}
	//the previous grid is converted to a density and back.
	if diff := cmp.Diff([]int{8, 8, 8}, p["k_grid"]); diff != "" {
		Te.Errorf("Wrong k_grid (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dos -18 0 200 0.05"}, p["output"]); diff != "" {
		Te.Errorf("Wrong output (-want +got):\n%s", diff)
	}
	if p["sc_accuracy_rho"] != 1e-05 {
		Te.Errorf("sc_accuracy_rho should be carried over, got %v", p["sc_accuracy_rho"])
	}

	set, err = g.InputSet(nil, "../test/prev", nil)
	if err != nil {
		Te.Fatal(err)
	}
	if set.Structure().Len() != 2 || strings.Count(set.GeometryIn(), "\natom ") != 2 {
		Te.Errorf("The previous structure should be used:\n%s", set.GeometryIn())
	}
}

func TestInputSet(Te *testing.T) {
	si := read(Te, "si.in")
	params := Parameters{"xc": "pbe", "k_grid": []int{4, 4, 4}}
	set, err := NewInputSet(params, si, []string{"energy", "forces", "stress"}, light)
	if err != nil {
		Te.Fatal(err)
	}
	if !hasLine(set.ControlIn(), "compute_forces", ".true.") || !hasLine(set.ControlIn(), "compute_analytical_stress", ".true.") {
		Te.Errorf("Property keywords missing in control.in:\n%s", set.ControlIn())
	}
	if strings.Contains(set.ParametersJSON(), "compute_forces") {
		Te.Errorf("parameters.json should not contain property keywords:\n%s", set.ParametersJSON())
	}
	if diff := cmp.Diff([]string{aims.ControlFileName, aims.GeometryFileName, aims.ParamsJSONFileName}, sortedKeys(set.Inputs())); diff != "" {
		Te.Errorf("Wrong files (-want +got):\n%s", diff)
	}

	hybrid := Parameters{"xc": Parameters{"name": "hse06", "omega": 0.11, "unit": "bohr"}}
	hset, err := NewInputSet(hybrid, si, nil, light)
	if err != nil {
		Te.Fatal(err)
	}
	if !hasLine(hset.ControlIn(), "hse_unit", "bohr") {
		Te.Errorf("xc given as Parameters should be checked and written as a hybrid:\n%s", hset.ControlIn())
	}
	hybrid["xc"].(Parameters)["unit"] = "angstrom"
	if _, ok := hset.Parameters()["xc"].(map[string]interface{}); !ok || hset.Parameters()["xc"].(map[string]interface{})["unit"] != "bohr" {
		Te.Errorf("The input set shares memory with the given parameters: %v", hset.Parameters())
	}
	if _, err := NewInputSet(Parameters{"xc": Parameters{"Name": "pbe0"}}, si, nil, light); err == nil {
		Te.Error("An xc map without name should give an error")
	}

	cp := set.Copy()
	if _, err := set.SetParameters(Parameters{"xc": "pw-lda"}, map[string]interface{}{"spin": "none"}); err != nil {
		Te.Fatal(err)
	}
	if hasLine(set.ControlIn(), "k_grid", "4 4 4") || !hasLine(set.ControlIn(), "spin", "none") || !strings.Contains(set.ParametersJSON(), "pw-lda") {
		Te.Errorf("SetParameters should replace the parameters:\n%s", set.ControlIn())
	}
	if !hasLine(cp.ControlIn(), "k_grid", "4 4 4") || strings.Contains(cp.ParametersJSON(), "spin") {
		Te.Errorf("The copy should not change")
	}

	var serr Error
	if _, err := set.RemoveParameters([]string{"spin", "nonexistent"}, true); !errors.As(err, &serr) || !strings.HasPrefix(serr.Message(), ErrKeyNotPresent) {
		Te.Errorf("Expected %q, got %v", ErrKeyNotPresent, err)
	}
	if !hasLine(set.ControlIn(), "spin", "none") {
		Te.Errorf("A failed strict removal should not remove anything")
	}
	p, err := set.RemoveParameters([]string{"spin", "nonexistent"}, false)
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff(Parameters{"xc": "pw-lda"}, p); diff != "" {
		Te.Errorf("Wrong parameters after removal (-want +got):\n%s", diff)
	}
	if strings.Contains(set.ControlIn(), "spin") || strings.Contains(set.ParametersJSON(), "spin") {
		Te.Errorf("spin was not removed")
	}

	geo := set.GeometryIn()
	if err := set.SetStructure(read(Te, "si_prim.in")); err != nil {
		Te.Fatal(err)
	}
	if set.GeometryIn() == geo || strings.Count(set.GeometryIn(), "\natom ") != 2 {
		Te.Errorf("geometry.in was not regenerated:\n%s", set.GeometryIn())
	}
	if err := set.SetStructure(nil); err == nil {
		Te.Error("A nil structure should give an error")
	}
}

func sortedKeys(m map[string]string) []string {
	ret := make([]string, 0, len(m))
	for _, k := range []string{aims.ControlFileName, aims.GeometryFileName, aims.ParamsJSONFileName} {
		if _, ok := m[k]; ok {
			ret = append(ret, k)
		}
	}
	if len(ret) != len(m) {
		return nil
	}
	return ret
}

func TestWrite(Te *testing.T) {
	set, err := NewInputSet(Parameters{"xc": "pbe", "k_grid": []int{4, 4, 4}}, read(Te, "si.in"), nil, light)
	if err != nil {
		Te.Fatal(err)
	}
	dir := filepath.Join(Te.TempDir(), "calc", "scf")
	if err := set.Write(dir, WriteOptions{}); err == nil {
		Te.Error("Writing to a missing directory without MakeDir should fail")
	}
	if err := set.Write(dir, WriteOptions{MakeDir: true}); err != nil {
		Te.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dir, aims.ControlFileName))
	if err != nil || string(b) != set.ControlIn() {
		Te.Errorf("control.in was not written properly: %v", err)
	}
	var serr Error
	if err := set.Write(dir, WriteOptions{}); !errors.As(err, &serr) || !strings.HasPrefix(serr.Message(), ErrFileExists) {
		Te.Errorf("Expected %q, got %v", ErrFileExists, err)
	}
	if err := set.Write(dir, WriteOptions{Overwrite: true}); err != nil {
		Te.Error(err)
	}

	zdir := Te.TempDir()
	if err := set.Write(zdir, WriteOptions{Zip: true}); err != nil {
		Te.Fatal(err)
	}
	zr, err := zip.OpenReader(filepath.Join(zdir, ZipFileName))
	if err != nil {
		Te.Fatal(err)
	}
	defer zr.Close()
	names := make([]string, 0, 3)
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{aims.ControlFileName, aims.GeometryFileName, aims.ParamsJSONFileName}, names); diff != "" {
		Te.Errorf("Wrong zip contents (-want +got):\n%s", diff)
	}
	if exists(filepath.Join(zdir, aims.ControlFileName)) {
		Te.Errorf("Only the archive should be written")
	}
}

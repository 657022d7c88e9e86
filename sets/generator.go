/*
 * generator.go, part of goaims.
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
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	aims "github.com/rmera/goaims"
	"go.uber.org/zap"
)

//Updater gives the changes to the parameters that a given type of calculation needs,
//given the structure and the parameters of the previous calculation (which can be empty).
type Updater interface {
	ParameterUpdates(S *aims.Structure, prev Parameters) (Parameters, error)
}

//previousUpdater is used when a generator has no Updater. It carries over the
//parameters of the previous calculation.
type previousUpdater struct{}

func (previousUpdater) ParameterUpdates(S *aims.Structure, prev Parameters) (Parameters, error) {
	return prev, nil
}

//Generator builds input sets from a structure and/or a previous calculation.
//The zero value is usable, and produces a PBE calculation with scalar ZORA.
type Generator struct {
	UserParameters      Parameters      //applied last, so they override everything else
	UserKpointsSettings KpointsSettings //used to obtain the k_grid, if UserParameters doesn't have one
	Settings            aims.Settings
	Log                 *zap.Logger
	Updater             Updater //if nil, the parameters of the previous calculation are carried over
}

func (G *Generator) log() *zap.Logger {
	if G.Log == nil {
		return zap.NewNop()
	}
	return G.Log
}

func (G *Generator) updater() Updater {
	if G.Updater == nil {
		return previousUpdater{}
	}
	return G.Updater
}

//InputSet returns the input set for the structure S, using the results of the calculation in
//prevDir, if prevDir is not empty. If S is nil, the structure is taken from prevDir.
//If properties is nil, the energy and free energy are computed.
func (G *Generator) InputSet(S *aims.Structure, prevDir string, properties []string) (*InputSet, error) {
	prevS, prevParams, err := G.ReadPrevious(prevDir)
	if err != nil {
		return nil, errDecorate(err, "InputSet")
	}
	if S == nil {
		S = prevS
	}
	if S == nil {
		return nil, Error{message: ErrNoStructure, deco: []string{"InputSet"}, critical: true}
	}
	params, err := G.InputParameters(S, prevParams)
	if err != nil {
		return nil, errDecorate(err, "InputSet")
	}
	props := Properties(properties, params)
	G.log().Debug("input set", zap.Int("atoms", S.Len()), zap.Bool("periodic", S.Periodic()), zap.Strings("properties", props))
	set, err := NewInputSet(params, S, props, G.Settings)
	if err != nil {
		return nil, errDecorate(err, "InputSet")
	}
	return set, nil
}

//ReadPrevious reads the parameters and the last structure of the calculation in prevDir.
//A "host:" prefix in prevDir is ignored. The parameters.json file must exist. The structure
//is read from geometry.in.next_step or, if that is not present, from geometry.in. The
//returned structure is nil if neither can be read. An empty prevDir returns nil and an
//empty set of parameters.
func (G *Generator) ReadPrevious(prevDir string) (*aims.Structure, Parameters, error) {
	params := make(Parameters)
	if prevDir == "" {
		return nil, params, nil
	}
	split := strings.Split(prevDir, ":")
	dir := split[len(split)-1]
	b, err := os.ReadFile(filepath.Join(dir, aims.ParamsJSONFileName))
	if err != nil {
		return nil, nil, Error{message: ErrPrevParams, deco: []string{"os.ReadFile", "ReadPrevious"}, critical: true, cause: err}
	}
	if err := json.Unmarshal(b, &params); err != nil {
		return nil, nil, Error{message: ErrPrevParams, deco: []string{"json.Unmarshal", "ReadPrevious"}, critical: true, cause: err}
	}
	for _, name := range []string{aims.NextStepFileName, aims.GeometryFileName} {
		fname := filepath.Join(dir, name)
		if !exists(fname) {
			continue
		}
		S, err := aims.ReadFile(fname)
		if err != nil {
			G.log().Warn("unable to read previous structure", zap.String("file", fname), zap.Error(err))
			continue
		}
		return S, params, nil
	}
	return nil, params, nil
}

//InputParameters returns the parameters for a calculation on S, given the parameters
//of the previous calculation. The defaults are overridden by the updates for the
//calculation type, which are overridden by the user parameters. For periodic systems
//a k_grid is obtained from the k-point settings if not given. Molecules never get a k_grid.
func (G *Generator) InputParameters(S *aims.Structure, prev Parameters) (Parameters, error) {
	params := Parameters{
		"xc":           "pbe",
		"relativistic": "atomic_zora scalar",
	}
	prev = prev.DeepCopy()
	if prev == nil {
		prev = make(Parameters)
	}
	delete(prev, "relax_geometry")
	delete(prev, "relax_unit_cell")

	kpts := G.UserKpointsSettings.copy()
	if kg, ok := prev["k_grid"]; ok && S.Periodic() {
		delete(prev, "k_grid")
		grid, ok := aims.ToFloats(kg)
		if !ok {
			G.log().Warn("ignoring ill-formed previous k_grid", zap.Any("k_grid", kg))
		} else if kpts.Density == nil {
			dens, err := K2D(S, grid)
			if err != nil {
				return nil, errDecorate(err, "InputParameters")
			}
			kpts.Density = dens
		}
	}
	updates, err := G.updater().ParameterUpdates(S, prev)
	if err != nil {
		return nil, errDecorate(err, "InputParameters")
	}
	RecursiveUpdate(params, updates)
	RecursiveUpdate(params, G.UserParameters)

	_, hasGrid := params["k_grid"]
	switch {
	case !S.Periodic():
		//even if a density is given
		if hasGrid {
			G.log().Warn("removing unnecessary k_grid information")
			delete(params, "k_grid")
		}
	case hasGrid && kpts.Density != nil:
		G.log().Warn("the k_grid is set in the parameters and a k-point density is also given, using the k_grid in the parameters")
	case !hasGrid:
		density := kpts.Density
		if density == nil {
			d := G.Settings.KDensity
			if d <= 0 {
				d = aims.DefaultKDensity
			}
			density = []float64{d}
		}
		grid, err := D2K(S, density, kpts.even())
		if err != nil {
			return nil, errDecorate(err, "InputParameters")
		}
		params["k_grid"] = grid
	}
	return params, nil
}

//Properties returns the properties to compute, given those requested and the parameters
//of the calculation. If requested is nil, energy and free energy are computed. Forces are
//added if compute_forces is among the parameters, stress and stresses if compute_heat_flux
//is, and stress if any of the stress keywords is. No property is repeated. requested is not modified.
func Properties(requested []string, params Parameters) []string {
	if requested == nil {
		requested = []string{"energy", "free_energy"}
	}
	ret := make([]string, 0, len(requested)+3)
	add := func(p string) {
		for _, v := range ret {
			if v == p {
				return
			}
		}
		ret = append(ret, p)
	}
	for _, v := range requested {
		add(v)
	}
	has := func(key string) bool {
		_, ok := params[key]
		return ok
	}
	if has("compute_forces") {
		add("forces")
	}
	if has("compute_heat_flux") {
		add("stress")
		add("stresses")
	}
	if has("compute_analytical_stress") || has("compute_numerical_stress") || has("compute_heat_flux") {
		add("stress")
	}
	return ret
}

/*
 * inputset.go, part of goaims.
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
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zip"
	aims "github.com/rmera/goaims"
)

//ZipFileName is the name of the archive written by InputSet.Write when zipping is requested.
const ZipFileName = "inputs.zip"

//propertyFlags maps the properties that need a keyword to be computed to that keyword.
var propertyFlags = map[string]string{
	"forces":   "compute_forces",
	"stress":   "compute_analytical_stress",
	"stresses": "compute_heat_flux",
}

//InputSet contains the files needed to run one FHI-aims calculation.
//The parameters used for control.in also include the keywords needed to
//compute the requested properties, but those are not stored in parameters.json.
type InputSet struct {
	parameters Parameters
	structure  *aims.Structure
	properties []string
	settings   aims.Settings
	inputs     map[string]string
}

//NewInputSet returns the input set for the given parameters, structure and
//properties. A nil properties slice means energy and free energy only.
func NewInputSet(parameters Parameters, S *aims.Structure, properties []string, settings aims.Settings) (*InputSet, error) {
	if S == nil {
		return nil, Error{message: ErrNoStructure, deco: []string{"NewInputSet"}, critical: true}
	}
	if parameters == nil {
		parameters = make(Parameters)
	} else {
		parameters = parameters.DeepCopy()
	}
	if properties == nil {
		properties = []string{"energy", "free_energy"}
	}
	I := &InputSet{
		parameters: parameters,
		structure:  S,
		properties: append([]string(nil), properties...),
		settings:   settings,
		inputs:     make(map[string]string, 3),
	}
	control, geometry, err := I.inputFiles()
	if err != nil {
		return nil, errDecorate(err, "NewInputSet")
	}
	js, err := I.paramsJSON()
	if err != nil {
		return nil, errDecorate(err, "NewInputSet")
	}
	I.inputs[aims.ControlFileName] = control
	I.inputs[aims.GeometryFileName] = geometry
	I.inputs[aims.ParamsJSONFileName] = js
	return I, nil
}

//inputFiles returns the contents of the control.in and geometry.in files.
func (I *InputSet) inputFiles() (string, string, error) {
	updated := make(map[string]interface{}, len(I.parameters)+len(I.properties))
	for k, v := range I.parameters {
		updated[k] = v
	}
	for _, prop := range I.properties {
		if flag, ok := propertyFlags[prop]; ok {
			updated[flag] = true
		}
	}
	geometry, err := aims.GeometryIn(I.structure)
	if err != nil {
		return "", "", errDecorate(err, "inputFiles")
	}
	control, err := aims.ControlIn(updated, I.structure, I.settings)
	if err != nil {
		return "", "", errDecorate(err, "inputFiles")
	}
	return control, geometry, nil
}

func (I *InputSet) paramsJSON() (string, error) {
	b, err := json.MarshalIndent(I.parameters, "", "  ")
	if err != nil {
		return "", Error{message: ErrJSON, deco: []string{"paramsJSON"}, critical: true, cause: err}
	}
	return string(b), nil
}

//ControlIn returns the contents of the control.in file
func (I *InputSet) ControlIn() string { return I.inputs[aims.ControlFileName] }

//GeometryIn returns the contents of the geometry.in file
func (I *InputSet) GeometryIn() string { return I.inputs[aims.GeometryFileName] }

//ParametersJSON returns the JSON representation of the parameters.
func (I *InputSet) ParametersJSON() string { return I.inputs[aims.ParamsJSONFileName] }

//Inputs returns a map from file names to file contents. The map is a copy.
func (I *InputSet) Inputs() map[string]string {
	ret := make(map[string]string, len(I.inputs))
	for k, v := range I.inputs {
		ret[k] = v
	}
	return ret
}

//Parameters returns a copy of the parameters of the set.
func (I *InputSet) Parameters() Parameters { return I.parameters.DeepCopy() }

//Properties returns the properties to be computed.
func (I *InputSet) Properties() []string { return append([]string(nil), I.properties...) }

//Structure returns the structure of the set. It should not be modified, use SetStructure instead.
func (I *InputSet) Structure() *aims.Structure { return I.structure }

//SetParameters replaces the parameters of the set with the union of the given maps
//(later maps win), and regenerates control.in and parameters.json. It returns the
//new parameters.
func (I *InputSet) SetParameters(maps ...map[string]interface{}) (Parameters, error) {
	np := make(Parameters)
	for _, m := range maps {
		for k, v := range m {
			np[k] = deepCopyValue(v)
		}
	}
	old := I.parameters
	I.parameters = np
	control, _, err := I.inputFiles()
	if err != nil {
		I.parameters = old
		return nil, errDecorate(err, "SetParameters")
	}
	js, err := I.paramsJSON()
	if err != nil {
		I.parameters = old
		return nil, errDecorate(err, "SetParameters")
	}
	I.inputs[aims.ControlFileName] = control
	I.inputs[aims.ParamsJSONFileName] = js
	return I.parameters, nil
}

//RemoveParameters removes the given keys from the parameters and regenerates the files.
//If strict is true, a key that is not in the parameters is an error, and nothing is removed.
func (I *InputSet) RemoveParameters(keys []string, strict bool) (Parameters, error) {
	np := I.parameters.DeepCopy()
	for _, key := range keys {
		if _, ok := np[key]; !ok {
			if strict {
				return nil, Error{message: fmt.Sprintf("%s: %s", ErrKeyNotPresent, key), deco: []string{"RemoveParameters"}, critical: true}
			}
			continue
		}
		delete(np, key)
	}
	return I.SetParameters(np)
}

//SetStructure changes the structure of the set, and regenerates geometry.in and control.in.
func (I *InputSet) SetStructure(S *aims.Structure) error {
	if S == nil {
		return Error{message: ErrNoStructure, deco: []string{"SetStructure"}, critical: true}
	}
	old := I.structure
	I.structure = S
	control, geometry, err := I.inputFiles()
	if err != nil {
		I.structure = old
		return errDecorate(err, "SetStructure")
	}
	I.inputs[aims.ControlFileName] = control
	I.inputs[aims.GeometryFileName] = geometry
	return nil
}

//Copy returns a deep copy of the input set.
func (I *InputSet) Copy() *InputSet {
	return &InputSet{
		parameters: I.parameters.DeepCopy(),
		structure:  I.structure.Copy(),
		properties: append([]string(nil), I.properties...),
		settings:   I.settings,
		inputs:     I.Inputs(),
	}
}

//WriteOptions controls how an input set is written to disk.
type WriteOptions struct {
	MakeDir   bool //create the directory (and parents) if needed
	Overwrite bool //replace existing files
	Zip       bool //write a single ZipFileName archive with all the inputs instead of the files
}

//Write writes the input files to the directory dir.
func (I *InputSet) Write(dir string, opts WriteOptions) error {
	if opts.MakeDir {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Error{message: ErrWriting, deco: []string{"os.MkdirAll", "Write"}, critical: true, cause: err}
		}
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return Error{message: ErrDirectory + ": " + dir, deco: []string{"Write"}, critical: true, cause: err}
	}
	names := make([]string, 0, len(I.inputs))
	for k := range I.inputs {
		names = append(names, k)
	}
	sort.Strings(names)
	if opts.Zip {
		return errDecorate(I.writeZip(filepath.Join(dir, ZipFileName), names, opts.Overwrite), "Write")
	}
	for _, name := range names {
		fname := filepath.Join(dir, name)
		if !opts.Overwrite && exists(fname) {
			return Error{message: ErrFileExists + ": " + fname, deco: []string{"Write"}, critical: true}
		}
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(I.inputs[name]), 0644); err != nil {
			return Error{message: ErrWriting, deco: []string{"os.WriteFile", "Write"}, critical: true, cause: err}
		}
	}
	return nil
}

func (I *InputSet) writeZip(fname string, names []string, overwrite bool) error {
	if !overwrite && exists(fname) {
		return Error{message: ErrFileExists + ": " + fname, deco: []string{"writeZip"}, critical: true}
	}
	fout, err := os.Create(fname)
	if err != nil {
		return Error{message: ErrWriting, deco: []string{"os.Create", "writeZip"}, critical: true, cause: err}
	}
	defer fout.Close()
	zw := zip.NewWriter(fout)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return Error{message: ErrWriting, deco: []string{"zip.Create", "writeZip"}, critical: true, cause: err}
		}
		if _, err := w.Write([]byte(I.inputs[name])); err != nil {
			return Error{message: ErrWriting, deco: []string{"zip.Write", "writeZip"}, critical: true, cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return Error{message: ErrWriting, deco: []string{"zip.Close", "writeZip"}, critical: true, cause: err}
	}
	return nil
}

func exists(fname string) bool {
	_, err := os.Stat(fname)
	return err == nil
}

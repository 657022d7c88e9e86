/*
 * control.go, part of goaims.
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

package aims

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//Keys that tell ControlIn what to do, but are not FHI-aims directives themselves.
var controlMetaKeys = []string{"species_dir", "plus_u", "use_structure_charge", "use_symmetry", "auto_mix_param"}

//Written first, in this order, when present.
var controlLeadingKeys = []string{"xc", "relativistic"}

//Charge mixing parameter set by auto_mix_param.
const autoChargeMixParam = 0.3

//ControlIn builds the contents of the control.in file for the structure S from the parameters
//given. The directives are followed by the species defaults for each element in S, read from the
//species_dir parameter or, if that is not given, from settings.SpeciesDir.
//The parameters map is not modified.
func ControlIn(parameters map[string]interface{}, S *Structure, settings Settings) (string, error) {
	const funcname = "ControlIn"
	if S == nil {
		return "", Error{message: ErrNilData, deco: []string{funcname}, critical: true}
	}
	p := make(map[string]interface{}, len(parameters)+3)
	for k, v := range parameters {
		p[k] = v
	}
	if _, ok := p["smearing"]; ok {
		if _, ok2 := p["occupation_type"]; ok2 {
			return "", Error{message: ErrSmearingAndOcc, deco: []string{funcname}, critical: true}
		}
	}
	//the "auto" flags become regular directives
	if isTrue(p["use_structure_charge"]) {
		if _, ok := p["charge"]; !ok {
			p["charge"] = S.Charge()
		}
	}
	if isTrue(p["use_symmetry"]) {
		if _, ok := p["rlsy_symmetry"]; !ok {
			p["rlsy_symmetry"] = "all"
		}
	}
	if isTrue(p["auto_mix_param"]) {
		if _, ok := p["charge_mix_param"]; !ok {
			p["charge_mix_param"] = autoChargeMixParam
		}
	}
	lim := "#" + strings.Repeat("=", 79)
	b := new(strings.Builder)
	fmt.Fprintln(b, lim)
	fmt.Fprintf(b, "# FHI-aims control file: %s\n", ControlFileName)
	fmt.Fprintln(b, "# File generated by goaims")
	fmt.Fprintln(b, lim)
	for _, key := range controlKeyOrder(p) {
		value := p[key]
		switch key {
		case "xc":
			lines, err := xcLines(value)
			if err != nil {
				return "", errDecorate(err, funcname)
			}
			b.WriteString(lines)
		case "smearing":
			line, err := smearingLine(value)
			if err != nil {
				return "", errDecorate(err, funcname)
			}
			b.WriteString(line)
		case "output":
			outs, ok := value.([]interface{})
			if !ok {
				outs = interfaceSlice(value)
			}
			for _, o := range outs {
				b.WriteString(controlLine(key, FormatValue(o)))
			}
		case "vdw_correction_hirshfeld":
			if isTrue(value) {
				b.WriteString(controlLine(key, ""))
			}
		default:
			b.WriteString(controlLine(key, FormatValue(value)))
		}
	}
	fmt.Fprintf(b, "%s\n\n", lim)
	species, err := speciesBlock(p, S, settings)
	if err != nil {
		return "", errDecorate(err, funcname)
	}
	b.WriteString(species)
	return b.String(), nil
}

//controlLine formats one directive, with the key left-justified in 35 columns.
func controlLine(key, value string) string {
	return strings.TrimRight(fmt.Sprintf("%-35s%s", key, value), " ") + "\n"
}

//controlKeyOrder returns the keys to be written, with the leading keys first and the rest sorted.
func controlKeyOrder(p map[string]interface{}) []string {
	keys := make([]string, 0, len(p))
	for _, k := range controlLeadingKeys {
		if _, ok := p[k]; ok {
			keys = append(keys, k)
		}
	}
	rest := make([]string, 0, len(p))
	for k := range p {
		if isInString(controlLeadingKeys, k) || isInString(controlMetaKeys, k) {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

//xcLines renders the exchange-correlation directive. xc can be a plain functional
//name or a map with "name" and, for range-separated hybrids, "omega" and "unit".
func xcLines(value interface{}) (string, error) {
	name := FormatValue(value)
	xcmap, isMap := ToMap(value)
	if isMap {
		n, ok := xcmap["name"]
		if !ok {
			return "", Error{message: ErrXCName, deco: []string{"xcLines"}, critical: true}
		}
		name = FormatValue(n)
	}
	if strings.EqualFold(name, "LDA") {
		name = "pw-lda"
	}
	if strings.ToLower(name) != "hse06" {
		return controlLine("xc", name), nil
	}
	omega, ok1 := xcmap["omega"]
	unit, ok2 := xcmap["unit"]
	if !ok1 || !ok2 {
		return "", Error{message: ErrXCHybrid, deco: []string{"xcLines"}, critical: true}
	}
	return controlLine("xc", fmt.Sprintf("%s    %s", name, FormatValue(omega))) + controlLine("hse_unit", FormatValue(unit)), nil
}

//smearingLine translates a smearing [name, width(, order)] into occupation_type.
func smearingLine(value interface{}) (string, error) {
	s := interfaceSlice(value)
	if len(s) < 2 {
		return "", Error{message: ErrSmearing, deco: []string{"smearingLine"}, critical: true}
	}
	name := strings.ToLower(FormatValue(s[0]))
	if name == "fermi-dirac" {
		name = "fermi"
	}
	width := FormatValue(s[1])
	if name == "methfessel-paxton" {
		if len(s) < 3 {
			return "", Error{message: ErrSmearing + ": methfessel-paxton requires an order", deco: []string{"smearingLine"}, critical: true}
		}
		return controlLine("occupation_type", fmt.Sprintf("%s %s %s", name, width, FormatValue(s[2]))), nil
	}
	return controlLine("occupation_type", fmt.Sprintf("%s %s", name, width)), nil
}

//speciesBlock concatenates the species_default files for all the elements in S. The plus_u
//parameter maps element symbols to the arguments of the plus_u keyword, which is added to the
//species of that element. Elements not in S are ignored.
func speciesBlock(p map[string]interface{}, S *Structure, settings Settings) (string, error) {
	dir := settings.SpeciesDir
	if d, ok := p["species_dir"]; ok {
		dir = FormatValue(d)
	}
	if dir == "" {
		return "", Error{message: ErrNoSpeciesDir, deco: []string{"speciesBlock"}, critical: true}
	}
	var plusU map[string]interface{}
	if u, ok := p["plus_u"]; ok {
		plusU, ok = ToMap(u)
		if !ok {
			return "", Error{message: ErrPlusU, deco: []string{"speciesBlock"}, critical: true}
		}
	}
	b := new(strings.Builder)
	for _, sym := range S.Species() {
		z, ok := AtomicNumber(sym)
		if !ok {
			return "", Error{message: ErrUnknownElement + ": " + sym, deco: []string{"speciesBlock"}, critical: true}
		}
		name := filepath.Join(dir, fmt.Sprintf("%02d_%s_default", z, sym))
		data, err := os.ReadFile(name)
		if err != nil {
			return "", Error{message: ErrSpeciesFile, filename: name, deco: []string{"speciesBlock"}, critical: true, cause: err}
		}
		b.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			b.WriteString("\n")
		}
		if u, ok := plusU[sym]; ok {
			b.WriteString(controlLine("    plus_u", FormatValue(u)))
		}
	}
	return b.String(), nil
}

func isTrue(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}

//interfaceSlice returns the elements of a slice of any type as a []interface{}.
//A non-slice value is returned as a slice with one element.
func interfaceSlice(value interface{}) []interface{} {
	switch v := value.(type) {
	case []interface{}:
		return v
	case []string:
		ret := make([]interface{}, len(v))
		for i, s := range v {
			ret[i] = s
		}
		return ret
	case nil:
		return nil
	}
	if f, ok := ToFloats(value); ok {
		ret := make([]interface{}, len(f))
		for i, s := range f {
			ret[i] = s
		}
		return ret
	}
	return []interface{}{value}
}

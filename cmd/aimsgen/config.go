/*
 * config.go, part of goaims.
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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	aims "github.com/rmera/goaims"
	"github.com/rmera/goaims/sets"
	"gopkg.in/yaml.v3"
)

//config is what can be given in the configuration file, in TOML:
//
//	[parameters]
//	xc = "pbe0"
//	output = ["mulliken"]
//	[kpoints]
//	density = 6.0     # or [6.0, 6.0, 3.0]
//	even = false
//	[generator]
//	type = "bands"    # base, bands or gw
//	k_point_density = 30.0
//
//The same tables can be given as YAML mappings, in files with the .yaml or .yml extension.
type config struct {
	Parameters  sets.Parameters
	Kpoints     sets.KpointsSettings
	Type        string
	PathDensity float64
}

func defaultConfig() *config {
	return &config{Parameters: make(sets.Parameters), Type: "base", PathDensity: sets.DefaultBandDensity}
}

//loadConfig reads a TOML or YAML configuration file. An empty name gives the default configuration.
func loadConfig(name string) (*config, error) {
	c := defaultConfig()
	if name == "" {
		return c, nil
	}
	var tree *toml.Tree
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		tree, err = yamlTree(name)
	default:
		tree, err = toml.LoadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return c, c.fromTree(tree)
}

//yamlTree reads a YAML file into the same tree a TOML file would give.
func yamlTree(name string) (*toml.Tree, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return toml.TreeFromMap(raw)
}

func (c *config) fromTree(tree *toml.Tree) error {
	if sub, ok := tree.Get("parameters").(*toml.Tree); ok {
		c.Parameters = sub.ToMap()
	}
	if d := tree.Get("kpoints.density"); d != nil {
		if f, ok := aims.ToFloat(d); ok {
			c.Kpoints.Density = []float64{f}
		} else if fs, ok := aims.ToFloats(d); ok {
			c.Kpoints.Density = fs
		} else {
			return fmt.Errorf("kpoints.density must be a number or a list of numbers, not %v", d)
		}
	}
	if e := tree.Get("kpoints.even"); e != nil {
		even, ok := e.(bool)
		if !ok {
			return fmt.Errorf("kpoints.even must be a boolean, not %v", e)
		}
		c.Kpoints.Even = &even
	}
	if t, ok := tree.Get("generator.type").(string); ok {
		c.Type = strings.ToLower(t)
	}
	if d := tree.Get("generator.k_point_density"); d != nil {
		f, ok := aims.ToFloat(d)
		if !ok || f <= 0 {
			return fmt.Errorf("generator.k_point_density must be a positive number, not %v", d)
		}
		c.PathDensity = f
	}
	return c.checkType()
}

//fromFlags sets the generator type given in the command line.
func (c *config) fromFlags(gentype string) error {
	c.Type = strings.ToLower(gentype)
	return c.checkType()
}

func (c *config) checkType() error {
	switch c.Type {
	case "base", "bands", "gw":
		return nil
	}
	return fmt.Errorf("unknown generator type %q, use base, bands or gw", c.Type)
}

//inputSetter is satisfied by the three generators.
type inputSetter interface {
	InputSet(S *aims.Structure, prevDir string, properties []string) (*sets.InputSet, error)
}

func (c *config) generator(base sets.Generator) inputSetter {
	switch c.Type {
	case "bands":
		b := sets.NewBandStructureGenerator(base)
		b.KPointDensity = c.PathDensity
		return b
	case "gw":
		w := sets.NewGWGenerator(base)
		w.KPointDensity = c.PathDensity
		return w
	}
	return &base
}

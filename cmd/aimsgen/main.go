/*
 * main.go, part of goaims.
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

//aimsgen writes the FHI-aims input files for a structure.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	aims "github.com/rmera/goaims"
	"github.com/rmera/goaims/kplot"
	"github.com/rmera/goaims/sets"
	"go.uber.org/zap"
)

var log *zap.Logger

//CErr logs err, with the information in info, and exits, if err is not nil.
func CErr(err error, info string) {
	if err != nil {
		log.Fatal(info, zap.Error(err))
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	out := flag.String("o", ".", "directory where the input files are written")
	zipped := flag.Bool("zip", false, "write a single zip archive with the input files")
	overwrite := flag.Bool("overwrite", false, "replace existing input files")
	prev := flag.String("prev", "", "directory of a previous calculation, to restart from")
	props := flag.String("props", "", "comma-separated properties to compute, e.g. energy,forces,stress")
	gentype := flag.String("type", "", "type of calculation: base, bands or gw. Overrides the configuration file")
	confname := flag.String("config", "", "TOML or YAML configuration file")
	species := flag.String("species", "", "species directory. Overrides AIMS_SPECIES_DIR")
	density := flag.Float64("kdensity", -1, "k-point density, in points per inverse Angstrom. Overrides the configuration file")
	pathplot := flag.String("pathplot", "", "file where a plot of the band path is saved (bands and gw only)")
	charge := flag.Float64("charge", 0, "total charge of the system, used if use_structure_charge is set")
	verbose := flag.Bool("v", false, "print debugging information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Use:\n  aimsgen [FLAGS] structure.{xyz,in}[.gz,.zst]\n  aimsgen [FLAGS] -prev previous_directory\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	var err error
	log, err = newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to start the logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	args := flag.Args()
	if len(args) == 0 && *prev == "" {
		flag.Usage()
		os.Exit(1)
	}
	conf, err := loadConfig(*confname)
	CErr(err, "reading configuration")
	if *gentype != "" {
		err = conf.fromFlags(*gentype)
		CErr(err, "generator type")
	}
	if *density > 0 {
		conf.Kpoints.Density = []float64{*density}
	}
	settings, err := aims.SettingsFromEnv()
	CErr(err, "reading environment")
	if *species != "" {
		settings.SpeciesDir = *species
	}

	var S *aims.Structure
	if len(args) > 0 {
		S, err = aims.ReadFile(args[0])
		CErr(err, "reading structure")
		S.SetCharge(*charge)
		log.Debug("structure read", zap.String("file", args[0]), zap.Int("atoms", S.Len()), zap.Bool("periodic", S.Periodic()))
	}
	var properties []string
	if *props != "" {
		properties = strings.Split(*props, ",")
	}
	base := sets.Generator{
		UserParameters:      conf.Parameters,
		UserKpointsSettings: conf.Kpoints,
		Settings:            settings,
		Log:                 log,
	}
	set, err := conf.generator(base).InputSet(S, *prev, properties)
	CErr(err, "generating the input set")
	err = set.Write(*out, sets.WriteOptions{MakeDir: true, Overwrite: *overwrite, Zip: *zipped})
	CErr(err, "writing the input set")
	log.Info("input set written", zap.String("directory", *out), zap.Strings("properties", set.Properties()))

	if *pathplot == "" {
		return
	}
	S = set.Structure()
	if conf.Type == "base" || !S.FullyPeriodic() {
		log.Warn("no band path to plot", zap.String("type", conf.Type))
		return
	}
	path, err := sets.BandPath(S)
	CErr(err, "obtaining the band path")
	err = kplot.PathPlot(path, S.Lattice, conf.PathDensity, *pathplot)
	CErr(err, "plotting the band path")
	log.Info("band path plotted", zap.String("kind", string(path.Kind)), zap.String("file", *pathplot))
}

/*
 * doc.go, part of goaims.
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

/*Package aims is the main package of the goaims library. It provides the structure
type used across the library, facilities for reading and writing the files used by
the FHI-aims electronic structure program, and the translation of a set of calculation
parameters into the directives of a control.in file.


	**goaims Capabilities**


    Reads XYZ and geometry.in files, optionally gzip or zstd compressed.

    Writes geometry.in files, including initial moments, initial charges
	and relaxation constraints.

    Builds control.in files from a map of parameters. Booleans, lists
	and nested maps are translated to the FHI-aims syntax, the species
	defaults for each element are appended from a species directory.

    Derives Monkhorst-Pack k-grids from a k-point density, and the other
	way around (package sets).

    Generates complete input sets (control.in, geometry.in and parameters.json)
	for regular, band structure and GW calculations, starting from scratch or
	from a previous calculation (package sets).

    Finds the high-symmetry k-path for a cell (package kpath) and plots it
	(package kplot).


goaims uses the v3.Matrix type (package v3), based in gonum (gonum.org/v1/gonum), for
coordinates and lattice vectors. Each row of a v3.Matrix is one point, or one lattice
vector. Coordinates are cartesian, in Angstrom.*/
package aims

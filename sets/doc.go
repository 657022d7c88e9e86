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

/*Package sets generates complete FHI-aims input sets (control.in, geometry.in and
parameters.json).

A Generator starts from FHI-aims' own defaults (PBE with scalar ZORA), applies the
parameters of a previous calculation, if any, then the changes needed by the type of
calculation (its Updater) and finally the user parameters. Periodic systems get
a Monkhorst-Pack grid from a k-point density unless a k_grid is given.

BandStructureGenerator and GWGenerator add the band path of the cell to the output.

	g := sets.Generator{Settings: settings, Log: logger}
	set, err := g.InputSet(structure, "", []string{"energy", "forces"})
	if err != nil {
		return err
	}
	err = set.Write("calc", sets.WriteOptions{MakeDir: true})
*/
package sets

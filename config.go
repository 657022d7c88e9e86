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

package aims

import (
	"github.com/caarlos0/env/v11"
)

//DefaultKDensity is the k-point density, in points per inverse Angstrom, used when nothing else is given.
const DefaultKDensity = 5.0

//Settings are the site-wide defaults, usually taken from the environment.
type Settings struct {
	SpeciesDir string  `env:"AIMS_SPECIES_DIR"`                      //default directory with the species_default files
	KDensity   float64 `env:"AIMS_KPOINT_DENSITY" envDefault:"5.0"` //default k-point density
}

//SettingsFromEnv reads the settings from the environment.
func SettingsFromEnv() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, Error{message: "parse env", deco: []string{"env.Parse", "SettingsFromEnv"}, critical: true, cause: err}
	}
	if s.KDensity <= 0 {
		s.KDensity = DefaultKDensity
	}
	return s, nil
}

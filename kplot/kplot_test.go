/*
 * kplot_test.go, part of goaims.
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

package kplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rmera/goaims/kpath"
	v3 "github.com/rmera/goaims/v3"
)

func TestTicks(Te *testing.T) {
	points := []kpath.Point{
		{Label: kpath.Gamma, SegmentStart: true},
		{},
		{Label: "X"},
		{Label: "X", SegmentStart: true},
		{Label: "M"},
		{Label: "R", SegmentStart: true},
		{Label: kpath.Gamma},
	}
	dist := []float64{0, 0.5, 1, 1, 2, 2, 3}
	var labels []string
	var values []float64
	for _, t := range Ticks(points, dist) {
		labels = append(labels, t.Label)
		values = append(values, t.Value)
	}
	if diff := cmp.Diff([]string{"Γ", "X", "M|R", "Γ"}, labels); diff != "" {
		Te.Errorf("Wrong tick labels (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 1, 2, 3}, values); diff != "" {
		Te.Errorf("Wrong tick positions (-want +got):\n%s", diff)
	}
}

func TestPathPlot(Te *testing.T) {
	lattice, err := v3.NewMatrix([]float64{0, 2.7155, 2.7155, 2.7155, 0, 2.7155, 2.7155, 2.7155, 0})
	if err != nil {
		Te.Fatal(err)
	}
	path, err := kpath.Path(lattice)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "fcc.png")
	if err := PathPlot(path, lattice, 20, name); err != nil {
		Te.Fatal(err)
	}
	info, err := os.Stat(name)
	if err != nil || info.Size() == 0 {
		Te.Errorf("The plot was not written: %v", err)
	}
	if err := PathPlot(path, lattice, 0, name); err == nil {
		Te.Error("A zero density should give an error")
	}
}

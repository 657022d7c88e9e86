/*
 * kplot.go, part of goaims.
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

//Package kplot draws the k-point paths used in band structure calculations.
package kplot

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/rmera/goaims/kpath"
	v3 "github.com/rmera/goaims/v3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Error is the error type for the kplot package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate returns the decoration slice of the error with dec added at the end. The
//error itself is not modified. If dec is empty, the current slice is returned.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	return append(err.deco[:len(err.deco):len(err.deco)], dec)
}

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	ErrNoPoints = "kplot: the path has no points"
	ErrPlot     = "kplot: unable to build the plot"
)

var axisColors = []color.RGBA{
	{R: 200, G: 30, B: 30, A: 255},
	{R: 30, G: 150, B: 30, A: 255},
	{R: 30, G: 30, B: 200, A: 255},
}

//Ticks returns the position along the path and the label of each high-symmetry point.
//When one branch ends and the next starts at the same position, both labels are
//joined with a "|".
func Ticks(points []kpath.Point, dist []float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, 10)
	for i, p := range points {
		if p.Label == "" {
			continue
		}
		label := p.Label
		if label == kpath.Gamma {
			label = "Γ"
		}
		if n := len(ticks); n > 0 && ticks[n-1].Value == dist[i] {
			if !strings.HasSuffix(ticks[n-1].Label, label) {
				ticks[n-1].Label += "|" + label
			}
			continue
		}
		ticks = append(ticks, plot.Tick{Value: dist[i], Label: label})
	}
	return ticks
}

//PathPlot samples path for the cell lattice with density points per inverse Angstrom,
//and plots the fractional coordinates of the points against the distance along the path,
//marking the high-symmetry points. The format is taken from the extension of filename.
func PathPlot(path *kpath.KPath, lattice *v3.Matrix, density float64, filename string) error {
	points, err := path.Sample(lattice, density)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return Error{ErrNoPoints, []string{"PathPlot"}, true}
	}
	dist, err := kpath.Distances(lattice, points)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s path", path.Kind)
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "k-path (1/Å)"
	p.Y.Label.Text = "Fractional coordinate"
	ticks := Ticks(points, dist)
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = 0
	p.X.Max = dist[len(dist)-1]
	p.Add(plotter.NewGrid())
	for _, t := range ticks {
		vline, err := plotter.NewLine(plotter.XYs{{X: t.Value, Y: -0.5}, {X: t.Value, Y: 1}})
		if err != nil {
			return Error{ErrPlot + ": " + err.Error(), []string{"PathPlot"}, true}
		}
		vline.Color = color.Gray{Y: 120}
		p.Add(vline)
	}
	for k, name := range []string{"b1", "b2", "b3"} {
		lines, err := axisLines(points, dist, k)
		if err != nil {
			return Error{ErrPlot + ": " + err.Error(), []string{"PathPlot"}, true}
		}
		for i, l := range lines {
			l.Color = axisColors[k]
			l.Width = vg.Points(1.5)
			p.Add(l)
			if i == 0 {
				p.Legend.Add(name, l)
			}
		}
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return Error{ErrPlot + ": " + err.Error(), []string{"Save", "PathPlot"}, true}
	}
	return nil
}

//axisLines returns one line per segment of the path, with component k of the points.
func axisLines(points []kpath.Point, dist []float64, k int) ([]*plotter.Line, error) {
	var lines []*plotter.Line
	var xys plotter.XYs
	flush := func() error {
		if len(xys) < 2 {
			xys = nil
			return nil
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		lines = append(lines, l)
		xys = nil
		return nil
	}
	for i, p := range points {
		if p.SegmentStart {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		xys = append(xys, plotter.XY{X: dist[i], Y: p.Frac[k]})
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return lines, nil
}

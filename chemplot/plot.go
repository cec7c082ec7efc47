/*
 * plot.go, part of mdbin.
 *
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
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
 *
 */

// Package chemplot produces PNG plots of the 1-dimensional distributions computed by mdbin.
package chemplot

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/histo"
)

// Size of the saved plots.
var (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// Series is one curve of a plot: Vals holds one value per bin of Edges.
type Series struct {
	Name  string
	Edges []float64
	Vals  []float64
}

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// points returns the values of s at the bin centres, skipping NaNs.
func points(s Series) (plotter.XYs, error) {
	if len(s.Edges) != len(s.Vals)+1 {
		return nil, chem.NewConfigError("chemplot.points", "series %q has %d edges for %d values", s.Name, len(s.Edges), len(s.Vals))
	}
	centres := histo.Centres(s.Edges)
	pts := make(plotter.XYs, 0, len(s.Vals))
	for i, v := range s.Vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: centres[i], Y: v})
	}
	return pts, nil
}

// Plot draws each series as a line with a marker on every bin centre, with a
// different colour each, and saves the plot in file.
func Plot(series []Series, title, xlabel, ylabel, file string) error {
	if len(series) == 0 {
		return chem.NewConfigError("chemplot.Plot", "nothing to plot in %s", file)
	}
	p := basicPlot(title, xlabel, ylabel)
	for k, s := range series {
		pts, err := points(s)
		if err != nil {
			return chem.ErrDecorate(err, "chemplot.Plot")
		}
		l, sc, err := plotter.NewLinePoints(pts)
		if err != nil {
			return chem.NewConfigError("chemplot.Plot", "series %q: %v", s.Name, err)
		}
		r, g, b := colors(k, len(series))
		c := color.RGBA{R: r, G: g, B: b, A: 255}
		l.Color = c
		l.Width = vg.Points(1)
		sc.GlyphStyle.Color = c
		sc.GlyphStyle.Shape = shape(k)
		p.Add(l, sc)
		if s.Name != "" {
			p.Legend.Add(s.Name, l, sc)
		}
	}
	if err := p.Save(Width, Height, file); err != nil {
		return chem.NewConfigError("chemplot.Plot", "saving %s: %v", file, err)
	}
	return nil
}

// Standard1D plots one value per bin, for the given bin edges.
func Standard1D(edges, vals []float64, title, xlabel, ylabel, file string) error {
	return Plot([]Series{{Edges: edges, Vals: vals}}, title, xlabel, ylabel, file)
}

// NDim1D plots the property key of 1-dimensional bins, for instance histo.RDFKey.
// ylabel defaults to key.
func NDim1D(N *histo.NDim, key, title, xlabel, ylabel, file string) error {
	s, err := SeriesOf(N, key, "")
	if err != nil {
		return chem.ErrDecorate(err, "chemplot.NDim1D")
	}
	if ylabel == "" {
		ylabel = key
	}
	return Plot([]Series{s}, title, xlabel, ylabel, file)
}

// SeriesOf returns the property key of the 1-dimensional bins N as a series.
func SeriesOf(N *histo.NDim, key, name string) (Series, error) {
	if N.NDims() != 1 {
		return Series{}, chem.NewConfigError("chemplot.SeriesOf", "can only plot 1-dimensional bins, got %d dimensions", N.NDims())
	}
	v := N.Vals(key)
	if v == nil {
		return Series{}, chem.NewConfigError("chemplot.SeriesOf", "bins have no %q values, they have %v", key, N.Keys())
	}
	return Series{Name: name, Edges: N.Edges(0), Vals: v}, nil
}

// shape returns a different glyph for each of the first series.
func shape(k int) draw.GlyphDrawer {
	switch k % 5 {
	case 0:
		return draw.CircleGlyph{}
	case 1:
		return draw.SquareGlyph{}
	case 2:
		return draw.PyramidGlyph{}
	case 3:
		return draw.CrossGlyph{}
	default:
		return draw.RingGlyph{}
	}
}

// colors returns a colour for the key-th of steps series, spread over the hues
// while avoiding yellow, with full value and saturation.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	h := float64(key)*norm + 20.0
	if h < 55 {
		h -= 20.0
	} else {
		h += 20.0
	}
	return hsv2RGB(h, 1, 1)
}

// hsv2RGB takes hue (0-360), value and saturation (0-1), and returns r, g, b (0-255).
func hsv2RGB(h, v, s float64) (uint8, uint8, uint8) {
	full := 255.0 * v
	if s == 0 {
		return uint8(full), uint8(full), uint8(full)
	}
	h /= 60
	i := math.Floor(h)
	f := h - i
	p := 1 - s
	q := 1 - s*f
	t := 1 - s*(1-f)
	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = 1, t, p
	case 1:
		r, g, b = q, 1, p
	case 2:
		r, g, b = p, 1, t
	case 3:
		r, g, b = p, q, 1
	case 4:
		r, g, b = t, p, 1
	default:
		r, g, b = 1, p, q
	}
	return uint8(r * full), uint8(g * full), uint8(b * full)
}

/*
 * histo.go, part of mdbin.
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

// Package histo contains the bin containers used for distributions, 1-dimensional (Standard)
// and N-dimensional (NDim), and the post-processing that turns binned counts into RDFs,
// angular distributions and probability densities.
package histo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	chem "github.com/rmera/mdbin"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Standard is a 1-dimensional set of bins. Each property is stored under a key,
// either as a scalar or as a list of values per bin.
type Standard struct {
	centres  []float64
	edges    []float64
	vals     map[string][]float64
	listVals map[string][][]float64
}

func ascending(s []float64) bool {
	for i := 1; i < len(s); i++ {
		if !(s[i] > s[i-1]) {
			return false
		}
	}
	return true
}

// NewStandardFromEdges returns bins with the given edges, which must be at least 2
// and strictly ascending. The edges are copied.
func NewStandardFromEdges(edges []float64) (*Standard, error) {
	if len(edges) < 2 || !ascending(edges) {
		return nil, chem.NewConfigError("histo.NewStandardFromEdges", "edges %v must be at least 2 and ascending", edges)
	}
	S := &Standard{edges: make([]float64, len(edges)), vals: map[string][]float64{}, listVals: map[string][][]float64{}}
	copy(S.edges, edges)
	S.centres = make([]float64, len(edges)-1)
	for i := range S.centres {
		S.centres[i] = 0.5 * (edges[i] + edges[i+1])
	}
	return S, nil
}

// NewStandardFromCentres returns bins with the given centres, which must be at least 2
// and ascending. Inner edges lie midway between centres, outer edges are placed
// symmetrically around the first and last centres.
func NewStandardFromCentres(centres []float64) (*Standard, error) {
	if len(centres) < 2 || !ascending(centres) {
		return nil, chem.NewConfigError("histo.NewStandardFromCentres", "bin centres %v must be at least 2 and in ascending order", centres)
	}
	n := len(centres)
	edges := make([]float64, n+1)
	edges[0] = centres[0] - 0.5*(centres[1]-centres[0])
	for i := 1; i < n; i++ {
		edges[i] = 0.5 * (centres[i-1] + centres[i])
	}
	edges[n] = centres[n-1] + 0.5*(centres[n-1]-centres[n-2])
	S, err := NewStandardFromEdges(edges)
	if err != nil {
		return nil, chem.ErrDecorate(err, "histo.NewStandardFromCentres")
	}
	copy(S.centres, centres)
	return S, nil
}

// ConstantWidthEdges returns the edges of bins of the given width from min to max. If
// (max-min) is not a multiple of width, the last bin goes beyond max.
func ConstantWidthEdges(min, max, width float64) ([]float64, error) {
	if !(width > 0) || !(max > min) {
		return nil, chem.NewConfigError("histo.ConstantWidthEdges", "invalid range [%g,%g) or width %g", min, max, width)
	}
	n := int(math.Ceil((max-min)/width - 1e-8))
	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	return edges, nil
}

// NewStandardConstantWidth returns bins of the given width between min and max.
func NewStandardConstantWidth(min, max, width float64) (*Standard, error) {
	edges, err := ConstantWidthEdges(min, max, width)
	if err != nil {
		return nil, chem.ErrDecorate(err, "histo.NewStandardConstantWidth")
	}
	return NewStandardFromEdges(edges)
}

// NBins returns the number of bins.
func (S *Standard) NBins() int { return len(S.centres) }

// Edges returns a copy of the bin edges.
func (S *Standard) Edges() []float64 { return append([]float64(nil), S.edges...) }

// Centres returns a copy of the bin centres.
func (S *Standard) Centres() []float64 { return append([]float64(nil), S.centres...) }

// Widths returns the width of each bin.
func (S *Standard) Widths() []float64 { return Widths(S.edges) }

// Widths returns the width of each bin for the given edges.
func Widths(edges []float64) []float64 {
	w := make([]float64, len(edges)-1)
	for i := range w {
		w[i] = edges[i+1] - edges[i]
	}
	return w
}

// Centres returns the centre of each bin for the given edges.
func Centres(edges []float64) []float64 {
	c := make([]float64, len(edges)-1)
	for i := range c {
		c[i] = 0.5 * (edges[i] + edges[i+1])
	}
	return c
}

// Set stores one scalar per bin under key.
func (S *Standard) Set(key string, vals []float64) error {
	if len(vals) != S.NBins() {
		return chem.NewConfigError("histo.Standard.Set", "%d values for %d bins (key %q)", len(vals), S.NBins(), key)
	}
	S.vals[key] = append([]float64(nil), vals...)
	return nil
}

// Get returns the per-bin scalars stored under key, or nil.
func (S *Standard) Get(key string) []float64 { return S.vals[key] }

// SetList stores a list of values per bin under key.
func (S *Standard) SetList(key string, vals [][]float64) error {
	if len(vals) != S.NBins() {
		return chem.NewConfigError("histo.Standard.SetList", "%d lists for %d bins (key %q)", len(vals), S.NBins(), key)
	}
	S.listVals[key] = vals
	return nil
}

// GetList returns the per-bin lists stored under key, or nil.
func (S *Standard) GetList(key string) [][]float64 { return S.listVals[key] }

// Keys returns the sorted keys of both scalar and list properties.
func (S *Standard) Keys() []string {
	var k []string
	for key := range S.vals {
		k = append(k, key)
	}
	for key := range S.listVals {
		k = append(k, key)
	}
	sort.Strings(k)
	return k
}

// AddValues bins rawdata and adds the counts to the scalar property key. Values equal to
// the last edge go to the last bin. NaN and other values outside the bins are discarded, and
// their number returned. rawdata is not modified.
func (S *Standard) AddValues(key string, rawdata []float64) int {
	last := S.edges[len(S.edges)-1]
	data := make([]float64, 0, len(rawdata))
	var atLast int
	for _, v := range rawdata {
		switch {
		case v == last:
			atLast++
		case v >= S.edges[0] && v < last:
			data = append(data, v)
		}
	}
	//stat.Histogram panics instead of omitting the values that are off limits,
	//so they were removed above.
	sort.Float64s(data)
	h := stat.Histogram(nil, S.edges, data, nil)
	h[len(h)-1] += float64(atLast)
	if prev, ok := S.vals[key]; ok {
		floats.Add(h, prev)
	}
	S.vals[key] = h
	return len(rawdata) - len(data) - atLast
}

//String prints a -hopefully- pretty string representation of the bins.
func (S *Standard) String() string {
	d := make([]string, 0, S.NBins())
	for i := range S.centres {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", S.edges[i], S.edges[i+1]))
	}
	ret := strings.Join(d, " ")
	for _, k := range S.Keys() {
		v, ok := S.vals[k]
		if !ok {
			continue
		}
		h := make([]string, 0, len(v))
		for _, x := range v {
			h = append(h, fmt.Sprintf("%9.3f", x))
		}
		ret += fmt.Sprintf("\n%s: %s", k, strings.Join(h, " "))
	}
	return ret
}

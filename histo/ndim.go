/*
 * ndim.go, part of mdbin.
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

package histo

import (
	"math"
	"sort"

	chem "github.com/rmera/mdbin"
	"gonum.org/v1/gonum/floats"
)

// Keys under which the standard properties are stored.
const (
	CountsKey     = "counts"
	NormCountsKey = "normalised_counts"
	RDFKey        = "rdf"
	PDFKey        = "pdf"
	ADFKey        = "adf"
)

// NDim is an N-dimensional set of bins. Each property is stored, under a key, as a flat
// row-major array with one value per bin. A value x is placed in the bin of
// edges [min, max) with min <= x < max; a value equal to the last edge of a dimension goes
// to the last bin.
type NDim struct {
	edges   [][]float64
	shape   []int
	vals    map[string][]float64
	nFrames int
}

// NewNDim returns empty bins with the given edges for each dimension, and a zeroed
// counts property.
func NewNDim(edges ...[]float64) (*NDim, error) {
	if len(edges) == 0 {
		return nil, chem.NewConfigError("histo.NewNDim", "no dimensions given")
	}
	N := &NDim{vals: map[string][]float64{}}
	for i, e := range edges {
		if len(e) < 2 || !ascending(e) {
			return nil, chem.NewConfigError("histo.NewNDim", "edges %v of dimension %d must be at least 2 and ascending", e, i)
		}
		N.edges = append(N.edges, append([]float64(nil), e...))
		N.shape = append(N.shape, len(e)-1)
	}
	N.vals[CountsKey] = make([]float64, N.Size())
	return N, nil
}

// NDims returns the number of dimensions.
func (N *NDim) NDims() int { return len(N.edges) }

// Shape returns the number of bins along each dimension.
func (N *NDim) Shape() []int { return append([]int(nil), N.shape...) }

// Size returns the total number of bins.
func (N *NDim) Size() int {
	s := 1
	for _, v := range N.shape {
		s *= v
	}
	return s
}

// Edges returns a copy of the edges of dimension dim.
func (N *NDim) Edges(dim int) []float64 { return append([]float64(nil), N.edges[dim]...) }

// NFrames returns the number of frames accumulated in the counts.
func (N *NDim) NFrames() int { return N.nFrames }

// AddFrames adds n to the number of frames accumulated.
func (N *NDim) AddFrames(n int) { N.nFrames += n }

// Vals returns the values stored under key, or nil. It is not a copy.
func (N *NDim) Vals(key string) []float64 { return N.vals[key] }

// Counts returns the counts. It is not a copy.
func (N *NDim) Counts() []float64 { return N.vals[CountsKey] }

// SetVals stores vals, which must have one value per bin, under key. vals is copied.
func (N *NDim) SetVals(key string, vals []float64) error {
	if len(vals) != N.Size() {
		return chem.NewConfigError("histo.NDim.SetVals", "%d values for %d bins (key %q)", len(vals), N.Size(), key)
	}
	N.vals[key] = append([]float64(nil), vals...)
	return nil
}

// Keys returns the sorted property keys.
func (N *NDim) Keys() []string {
	k := make([]string, 0, len(N.vals))
	for key := range N.vals {
		k = append(k, key)
	}
	sort.Strings(k)
	return k
}

// FlatIndex returns the flat index of the bin with the given per-dimension indices.
func (N *NDim) FlatIndex(idx ...int) int {
	f := 0
	for d, i := range idx {
		f = f*N.shape[d] + i
	}
	return f
}

// Unravel returns the per-dimension indices of the bin with flat index f.
func (N *NDim) Unravel(f int) []int {
	idx := make([]int, len(N.shape))
	for d := len(N.shape) - 1; d >= 0; d-- {
		idx[d] = f % N.shape[d]
		f /= N.shape[d]
	}
	return idx
}

// BinIndex returns the bin of dimension dim in which x falls, and false if
// x is NaN or outside all bins.
func (N *NDim) BinIndex(dim int, x float64) (int, bool) {
	e := N.edges[dim]
	n := len(e) - 1
	if math.IsNaN(x) || x < e[0] || x > e[n] {
		return -1, false
	}
	if x == e[n] {
		return n - 1, true
	}
	//first edge strictly greater than x
	return sort.Search(len(e), func(i int) bool { return e[i] > x }) - 1, true
}

// AddBinValuesToCounts adds one count for each tuple in vals, which must have one value per
// dimension. Tuples with any value outside the bins are discarded and their number returned;
// if raiseIfOutside is true, an ErrOutsideBins error is also returned, after all the
// valid tuples have been counted.
func (N *NDim) AddBinValuesToCounts(vals [][]float64, raiseIfOutside bool) (int, error) {
	counts := N.vals[CountsKey]
	idx := make([]int, N.NDims())
	var discarded int
	var first []float64
	for _, tup := range vals {
		if len(tup) != N.NDims() {
			return discarded, chem.NewFrameError("histo.NDim.AddBinValuesToCounts", "tuple %v has %d values for %d dimensions", tup, len(tup), N.NDims())
		}
		ok := true
		for d, x := range tup {
			if idx[d], ok = N.BinIndex(d, x); !ok {
				break
			}
		}
		if !ok {
			if first == nil {
				first = tup
			}
			discarded++
			continue
		}
		counts[N.FlatIndex(idx...)]++
	}
	if raiseIfOutside && discarded > 0 {
		return discarded, chem.NewOutsideBinsError("histo.NDim.AddBinValuesToCounts", "%d tuples outside the bins, first one %v", discarded, first)
	}
	return discarded, nil
}

// BinEdgesArray returns, for each bin in flat order, the [min, max] edges along each
// dimension, that is, an array of shape (n_1*...*n_k, k, 2).
func (N *NDim) BinEdgesArray() [][][2]float64 {
	ret := make([][][2]float64, N.Size())
	for f := range ret {
		idx := N.Unravel(f)
		ret[f] = make([][2]float64, N.NDims())
		for d, i := range idx {
			ret[f][d] = [2]float64{N.edges[d][i], N.edges[d][i+1]}
		}
	}
	return ret
}

// BinCentresArray returns, for each bin in flat order, its centre along each dimension.
func (N *NDim) BinCentresArray() [][]float64 {
	ret := make([][]float64, N.Size())
	for f, e := range N.BinEdgesArray() {
		ret[f] = make([]float64, len(e))
		for d, mm := range e {
			ret[f][d] = 0.5 * (mm[0] + mm[1])
		}
	}
	return ret
}

// BinVolumes returns, for each bin in flat order, the product of its widths.
func (N *NDim) BinVolumes() []float64 {
	ret := make([]float64, N.Size())
	for f, e := range N.BinEdgesArray() {
		v := 1.0
		for _, mm := range e {
			v *= mm[1] - mm[0]
		}
		ret[f] = v
	}
	return ret
}

// SameEdges returns true if both bins have the same edges, within tol.
func (N *NDim) SameEdges(o *NDim, tol float64) bool {
	if N.NDims() != o.NDims() {
		return false
	}
	for d, e := range N.edges {
		if len(e) != len(o.edges[d]) || !floats.EqualApprox(e, o.edges[d], tol) {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of the bins.
func (N *NDim) Copy() *NDim {
	ret := &NDim{vals: map[string][]float64{}, nFrames: N.nFrames, shape: N.Shape()}
	for _, e := range N.edges {
		ret.edges = append(ret.edges, append([]float64(nil), e...))
	}
	for k, v := range N.vals {
		ret.vals[k] = append([]float64(nil), v...)
	}
	return ret
}

/*
 * sum.go, part of mdbin.
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
	chem "github.com/rmera/mdbin"
	"gonum.org/v1/gonum/floats"
)

// edgesTol is the tolerance for bin edges to be considered the same when summing.
const edgesTol = 1e-8

// SumNDim returns new bins holding the sum of the counts of all the given bins, which must
// have the same edges. The frame counts are added, and the normalised counts, where all
// the bins carry them, are averaged weighted by the frames of each. Other properties are
// not carried over.
func SumNDim(bins ...*NDim) (*NDim, error) {
	if len(bins) == 0 {
		return nil, chem.NewConfigError("histo.SumNDim", "no bins to sum")
	}
	ret, err := NewNDim(bins[0].edges...)
	if err != nil {
		return nil, chem.ErrDecorate(err, "histo.SumNDim")
	}
	norm := make([]float64, ret.Size())
	allNorm := true
	for i, b := range bins {
		if !b.SameEdges(ret, edgesTol) {
			return nil, chem.NewConfigError("histo.SumNDim", "bins %d have edges that differ from those of bins 0", i)
		}
		floats.Add(ret.vals[CountsKey], b.Counts())
		ret.nFrames += b.nFrames
		if nc, ok := b.vals[NormCountsKey]; ok && allNorm {
			floats.AddScaled(norm, float64(b.nFrames), nc)
		} else {
			allNorm = false
		}
	}
	if allNorm && ret.nFrames > 0 {
		floats.Scale(1/float64(ret.nFrames), norm)
		ret.vals[NormCountsKey] = norm
	}
	return ret, nil
}

/*
 * getter.go, part of mdbin.
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

// Package binval reads the matrices filled by a sparse.Calculator and produces the values
// to be binned for each frame.
//
// A Getter returns a list of tuples. Most getters emit one tuple per primary atom or
// molecule, some (radial distances, hydrogen-bond values) emit a variable number of them.
// Each tuple has Dims() elements, one per binned dimension.
package binval

import (
	"math"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/sparse"
)

// Getter produces the values to bin from a populated calculator.
type Getter interface {
	GetValsToBin(calc *sparse.Calculator) ([][]float64, error)
	Dims() int
}

// MultiDim zips the outputs of several getters, so the i-th tuple it returns is the
// concatenation of the i-th tuples of each getter.
type MultiDim struct {
	Getters []Getter
}

// NewMultiDim returns a MultiDim zipping getters, in order.
func NewMultiDim(getters ...Getter) *MultiDim {
	return &MultiDim{Getters: getters}
}

func (G *MultiDim) Dims() int {
	d := 0
	for _, g := range G.Getters {
		d += g.Dims()
	}
	return d
}

func (G *MultiDim) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	if len(G.Getters) == 1 {
		return G.Getters[0].GetValsToBin(calc)
	}
	var ret [][]float64
	for k, g := range G.Getters {
		vals, err := g.GetValsToBin(calc)
		if err != nil {
			return nil, chem.ErrDecorate(err, "binval.MultiDim")
		}
		if k == 0 {
			ret = make([][]float64, len(vals))
			for i := range ret {
				ret[i] = make([]float64, 0, G.Dims())
			}
		} else if len(vals) != len(ret) {
			return nil, chem.NewFrameError("binval.MultiDim", "getter %d returned %d values, getter 0 returned %d", k, len(vals), len(ret))
		}
		for i, v := range vals {
			ret[i] = append(ret[i], v...)
		}
	}
	return ret, nil
}

// singles turns a list of scalars into a list of 1-tuples.
func singles(vals []float64) [][]float64 {
	ret := make([][]float64, len(vals))
	for i, v := range vals {
		ret[i] = []float64{v}
	}
	return ret
}

// Matrix selects one of the pairwise matrices of a Dict.
type Matrix int

const (
	Cartesian  Matrix = iota // min-image distances
	Horizontal               // in-plane distances
)

func (m Matrix) String() string {
	if m == Horizontal {
		return "horizontal distance"
	}
	return "distance"
}

func (m Matrix) from(calc *sparse.Calculator, caller string) (*sparse.Mat2, error) {
	d := calc.Dict()
	if d == nil {
		return nil, chem.NewFrameError(caller, "no geometry has been processed")
	}
	M := d.Dist
	if m == Horizontal {
		M = d.HozDist
	}
	if M == nil {
		return nil, chem.NewFrameError(caller, "%s matrix not populated", m)
	}
	return M, nil
}

// MinDist returns the smallest filled M[i][j], j in to, not below minVal, or NaN if
// there is none.
func MinDist(M *sparse.Mat2, i int, to []int, minVal float64) float64 {
	ret := math.NaN()
	for _, j := range to {
		d := M.At(i, j)
		if math.IsNaN(d) || d < minVal {
			continue
		}
		if math.IsNaN(ret) || d < ret {
			ret = d
		}
	}
	return ret
}

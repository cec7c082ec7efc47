/*
 * hbonds.go, part of mdbin.
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

package binval

import (
	"math"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/sparse"
)

// HBond is a hydrogen bond in which H, bonded to the heavy atom Donor, is donated
// to the heavy atom Acceptor.
type HBond struct {
	Acceptor, Donor, H int
	// OO is the acceptor-donor distance, AH the acceptor-hydrogen one and Angle is
	// the acceptor-donor-hydrogen angle, in degrees.
	OO, AH, Angle float64
}

// HBondCriteria are the geometric cutoffs for a hydrogen bond, and whether the
// bonds accepted and/or donated by the primary molecules are wanted.
type HBondCriteria struct {
	MaxOO, MaxAngle float64
	Acceptor, Donor bool
}

func (c HBondCriteria) bonded(D *sparse.Mat2, A *sparse.Mat3, acc, don, h int) (HBond, bool) {
	oo := D.At(acc, don)
	//NaN never passes
	if !(oo < c.MaxOO) {
		return HBond{}, false
	}
	ang := A.At(acc, don, h)
	if !(ang < c.MaxAngle) {
		return HBond{}, false
	}
	return HBond{Acceptor: acc, Donor: don, H: h, OO: oo, AH: D.At(acc, h), Angle: ang}, true
}

// FindHBonds returns, for each of the primary molecules, the hydrogen bonds it forms with
// the molecules of targets, as acceptor, donor or both depending on c. A bond between
// two heavy atoms closer than MaxOO, with an acceptor-donor-H angle under MaxAngle is
// a hydrogen bond. The result is only meaningful if the matrices were filled by the
// matching hydrogen-bond populator.
func FindHBonds(dict *sparse.Dict, primaries, targets sparse.Molecules, c HBondCriteria) ([][]HBond, error) {
	if err := primaries.Check("binval.FindHBonds"); err != nil {
		return nil, err
	}
	if err := targets.Check("binval.FindHBonds"); err != nil {
		return nil, err
	}
	ret := make([][]HBond, primaries.Len())
	D, A := dict.Dist, dict.Angles
	if D == nil {
		return nil, chem.NewFrameError("binval.FindHBonds", "distance matrix not populated")
	}
	if A == nil {
		//no pair was close enough for its angles to be computed
		return ret, nil
	}
	for k, p := range primaries.NonHy {
		for t, o := range targets.NonHy {
			if o == p {
				continue
			}
			if c.Acceptor {
				for _, h := range targets.Hy[t] {
					if hb, ok := c.bonded(D, A, p, o, h); ok {
						ret[k] = append(ret[k], hb)
					}
				}
			}
			if c.Donor {
				for _, h := range primaries.Hy[k] {
					if hb, ok := c.bonded(D, A, o, p, h); ok {
						ret[k] = append(ret[k], hb)
					}
				}
			}
		}
	}
	return ret, nil
}

// HBondCounts emits, for each primary molecule, the number of hydrogen bonds it forms
// with Targets.
type HBondCounts struct {
	Primaries, Targets sparse.Molecules
	HBondCriteria
}

func (G *HBondCounts) Dims() int { return 1 }

func (G *HBondCounts) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	hbs, err := FindHBonds(calc.Dict(), G.Primaries, G.Targets, G.HBondCriteria)
	if err != nil {
		return nil, chem.ErrDecorate(err, "binval.HBondCounts")
	}
	ret := make([]float64, len(hbs))
	for k, h := range hbs {
		ret[k] = float64(len(h))
	}
	return singles(ret), nil
}

// HBondValueKind selects the property of each hydrogen bond that HBondValues emits.
type HBondValueKind int

const (
	OODist HBondValueKind = iota // acceptor-donor distance
	OHDist                       // acceptor-hydrogen distance
	Angle                        // acceptor-donor-hydrogen angle
)

// HBondValues emits one value, selected by Kind, for each hydrogen bond formed by any
// of the primary molecules with Targets.
type HBondValues struct {
	Primaries, Targets sparse.Molecules
	HBondCriteria
	Kind HBondValueKind
}

func (G *HBondValues) Dims() int { return 1 }

func (G *HBondValues) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	hbs, err := FindHBonds(calc.Dict(), G.Primaries, G.Targets, G.HBondCriteria)
	if err != nil {
		return nil, chem.ErrDecorate(err, "binval.HBondValues")
	}
	var ret []float64
	for _, hs := range hbs {
		for _, h := range hs {
			switch G.Kind {
			case OODist:
				ret = append(ret, h.OO)
			case OHDist:
				ret = append(ret, h.AH)
			case Angle:
				ret = append(ret, h.Angle)
			default:
				return nil, chem.NewConfigError("binval.HBondValues", "unknown hydrogen bond value kind %d", G.Kind)
			}
		}
	}
	return singles(ret), nil
}

// HBondCountsWithDistFilter emits, for each water, the number of hydrogen bonds it forms
// with the other waters, split by the distance of the partner oxygen to the closest of
// FilterIndices: one dimension per range [min, max) in FilterRanges. Partners outside
// all ranges are not counted. With no FilterIndices every partner counts, in a single
// dimension.
type HBondCountsWithDistFilter struct {
	Waters        sparse.Molecules
	FilterIndices []int
	FilterRanges  [][2]float64
	HBondCriteria
}

func (G *HBondCountsWithDistFilter) Dims() int {
	if len(G.FilterIndices) == 0 {
		return 1
	}
	return len(G.FilterRanges)
}

func (G *HBondCountsWithDistFilter) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	hbs, err := FindHBonds(calc.Dict(), G.Waters, G.Waters, G.HBondCriteria)
	if err != nil {
		return nil, chem.ErrDecorate(err, "binval.HBondCountsWithDistFilter")
	}
	D := calc.Dict().Dist
	ret := make([][]float64, len(hbs))
	for k, hs := range hbs {
		ret[k] = make([]float64, G.Dims())
		for _, h := range hs {
			if len(G.FilterIndices) == 0 {
				ret[k][0]++
				continue
			}
			partner := h.Acceptor
			if partner == G.Waters.NonHy[k] {
				partner = h.Donor
			}
			d := MinDist(D, partner, G.FilterIndices, math.Inf(-1))
			for r, lim := range G.FilterRanges {
				if d >= lim[0] && d < lim[1] {
					ret[k][r]++
				}
			}
		}
	}
	return ret, nil
}

/*
 * water.go, part of mdbin.
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

// WaterAngleKind selects one of the Tait-Bryan angles of a water.
type WaterAngleKind int

const (
	Roll WaterAngleKind = iota
	Pitch
	Azimuth
)

func (k WaterAngleKind) String() string {
	switch k {
	case Roll:
		return "roll"
	case Pitch:
		return "pitch"
	case Azimuth:
		return "azimuth"
	}
	return "unknown"
}

// WaterAngles emits the angle selected by Kind, in degrees, for each water oxygen in Oxy.
type WaterAngles struct {
	Oxy  []int
	Kind WaterAngleKind
}

func (G *WaterAngles) Dims() int { return 1 }

func (G *WaterAngles) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	D := calc.Dict()
	var V *sparse.Vec
	switch G.Kind {
	case Roll:
		V = D.WaterRoll
	case Pitch:
		V = D.WaterPitch
	case Azimuth:
		V = D.WaterAzimuth
	default:
		return nil, chem.NewConfigError("binval.WaterAngles", "unknown water angle %d", G.Kind)
	}
	if V == nil {
		return nil, chem.NewFrameError("binval.WaterAngles", "water %s angles not populated", G.Kind)
	}
	ret := make([]float64, len(G.Oxy))
	for k, o := range G.Oxy {
		ret[k] = V.At(o)
	}
	return singles(ret), nil
}

// AssignHydrogens bonds each of hy to its closest of oxy, if that one is closer than
// maxOH. It returns the hydrogens bonded to each oxygen. D must hold the hy-oxy distances.
func AssignHydrogens(D *sparse.Mat2, oxy, hy []int, maxOH float64) ([][]int, error) {
	if D == nil {
		return nil, chem.NewFrameError("binval.AssignHydrogens", "distance matrix not populated")
	}
	ret := make([][]int, len(oxy))
	for _, h := range hy {
		best, bestD := -1, math.Inf(1)
		for k, o := range oxy {
			if d := D.At(h, o); d < maxOH && d < bestD {
				best, bestD = k, d
			}
		}
		if best >= 0 {
			ret[best] = append(ret[best], h)
		}
	}
	return ret, nil
}

// WaterDerivativeCount emits, once per frame, the number of oxygens of Oxy that have
// exactly NNebs of Hy bonded: 0 for free oxygens, 1 for hydroxyls, 2 for waters and 3 for
// hydronium ions.
type WaterDerivativeCount struct {
	Oxy, Hy   []int
	MaxOHDist float64
	NNebs     int
}

func (G *WaterDerivativeCount) Dims() int { return 1 }

func (G *WaterDerivativeCount) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	bonded, err := AssignHydrogens(calc.Dict().Dist, G.Oxy, G.Hy, G.MaxOHDist)
	if err != nil {
		return nil, chem.ErrDecorate(err, "binval.WaterDerivativeCount")
	}
	n := 0
	for _, b := range bonded {
		if len(b) == G.NNebs {
			n++
		}
	}
	return [][]float64{{float64(n)}}, nil
}

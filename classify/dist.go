/*
 * dist.go, part of mdbin.
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

package classify

import (
	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/binval"
	"github.com/rmera/mdbin/sparse"
)

// AtomsWithinMinDistRange selects the Candidates whose smallest distance to the
// Anchors falls in Range. Distances below MinDistVal are ignored, which keeps an atom
// that is both candidate and anchor from finding itself.
type AtomsWithinMinDistRange struct {
	record
	Candidates, Anchors []int
	Range               Window
	MinDistVal          float64
}

func (C *AtomsWithinMinDistRange) Classify(calc *sparse.Calculator) (Payload, error) {
	D := calc.Dict().Dist
	if D == nil {
		return Payload{}, chem.NewFrameError("classify.AtomsWithinMinDistRange", "distance matrix not populated")
	}
	ret := Payload{Indices: []int{}}
	for _, i := range C.Candidates {
		if C.Range.Contains(binval.MinDist(D, i, C.Anchors, C.MinDistVal)) {
			ret.Indices = append(ret.Indices, i)
		}
	}
	return C.store(ret), nil
}

func (C *AtomsWithinMinDistRange) Populator() sparse.Populator {
	return &sparse.DistMatrix{From: C.Candidates, To: C.Anchors}
}

// AtomsByNeighbourCount selects the Candidates with a number of Neighbours at a distance
// in NebRange that falls in CountRange, for instance hydrogens with no other hydrogen
// within 1 A, against those forming H2.
type AtomsByNeighbourCount struct {
	record
	Candidates, Neighbours []int
	NebRange               Window
	CountRange             Window
}

func (C *AtomsByNeighbourCount) Classify(calc *sparse.Calculator) (Payload, error) {
	D := calc.Dict().Dist
	if D == nil {
		return Payload{}, chem.NewFrameError("classify.AtomsByNeighbourCount", "distance matrix not populated")
	}
	ret := Payload{Indices: []int{}}
	for _, i := range C.Candidates {
		n := 0
		for _, j := range C.Neighbours {
			if i != j && C.NebRange.Contains(D.At(i, j)) {
				n++
			}
		}
		if C.CountRange.Contains(float64(n)) {
			ret.Indices = append(ret.Indices, i)
		}
	}
	return C.store(ret), nil
}

func (C *AtomsByNeighbourCount) Populator() sparse.Populator {
	return &sparse.DistMatrix{From: C.Candidates, To: C.Neighbours}
}

// WaterDerivativeByDistance bonds each of Hy to its closest of Oxy within MaxOHDist,
// and selects the oxygens with exactly NNebs hydrogens: 0 for free oxygens, 1 for
// hydroxyls, 2 for waters, 3 for hydronium ions. The payload carries the bonded hydrogens.
type WaterDerivativeByDistance struct {
	record
	Oxy, Hy   []int
	MaxOHDist float64
	NNebs     int
}

func (C *WaterDerivativeByDistance) Classify(calc *sparse.Calculator) (Payload, error) {
	if C.NNebs < 0 {
		return Payload{}, chem.NewConfigError("classify.WaterDerivativeByDistance", "negative number of hydrogens %d", C.NNebs)
	}
	bonded, err := binval.AssignHydrogens(calc.Dict().Dist, C.Oxy, C.Hy, C.MaxOHDist)
	if err != nil {
		return Payload{}, chem.ErrDecorate(err, "classify.WaterDerivativeByDistance")
	}
	ret := Payload{Indices: []int{}, Hy: [][]int{}}
	for k, o := range C.Oxy {
		if len(bonded[k]) == C.NNebs {
			ret.Indices = append(ret.Indices, o)
			ret.Hy = append(ret.Hy, bonded[k])
		}
	}
	return C.store(ret), nil
}

func (C *WaterDerivativeByDistance) Populator() sparse.Populator {
	return &sparse.DistMatrix{From: C.Hy, To: C.Oxy}
}

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

package classify

import (
	"math"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/binval"
	"github.com/rmera/mdbin/sparse"
)

// Ways of measuring the distance of a water to the anchors.
const (
	MinDistPrimary = "primary" // from the oxygen only
	MinDistAll     = "all"     // from the closest of the oxygen and its hydrogens
)

// WaterByMinDistAndHBonds selects the waters whose distance to the closest anchor, and
// whose numbers of donated, accepted and total hydrogen bonds with the other waters
// all fall in their windows.
type WaterByMinDistAndHBonds struct {
	record
	Waters                             sparse.Molecules
	Anchors                            []int
	MinDist, NDonor, NAcceptor, NTotal Window
	MaxOO, MaxAngle                    float64
	MinDistType                        string
}

// selected returns whether each water passes all the criteria.
func (C *WaterByMinDistAndHBonds) selected(calc *sparse.Calculator, caller string) ([]bool, error) {
	if C.MinDistType != MinDistPrimary && C.MinDistType != MinDistAll {
		return nil, chem.NewFrameError(caller, "unknown min dist type %q", C.MinDistType)
	}
	D := calc.Dict().Dist
	hbs, err := binval.FindHBonds(calc.Dict(), C.Waters, C.Waters, binval.HBondCriteria{MaxOO: C.MaxOO, MaxAngle: C.MaxAngle, Acceptor: true, Donor: true})
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	ret := make([]bool, C.Waters.Len())
	for k, o := range C.Waters.NonHy {
		atoms := []int{o}
		if C.MinDistType == MinDistAll {
			atoms = append(atoms, C.Waters.Hy[k]...)
		}
		d := math.NaN()
		for _, i := range atoms {
			if x := binval.MinDist(D, i, C.Anchors, 0); math.IsNaN(d) || x < d {
				d = x
			}
		}
		var nDon, nAcc float64
		for _, hb := range hbs[k] {
			if hb.Donor == o {
				nDon++
			} else {
				nAcc++
			}
		}
		ret[k] = C.MinDist.Contains(d) && C.NDonor.Contains(nDon) &&
			C.NAcceptor.Contains(nAcc) && C.NTotal.Contains(nDon+nAcc)
	}
	return ret, nil
}

func (C *WaterByMinDistAndHBonds) payload(sel []bool) Payload {
	ret := Payload{Indices: []int{}, Hy: [][]int{}}
	for k, ok := range sel {
		if ok {
			ret.Indices = append(ret.Indices, C.Waters.NonHy[k])
			ret.Hy = append(ret.Hy, C.Waters.Hy[k])
		}
	}
	return ret
}

func (C *WaterByMinDistAndHBonds) Classify(calc *sparse.Calculator) (Payload, error) {
	sel, err := C.selected(calc, "classify.WaterByMinDistAndHBonds")
	if err != nil {
		return Payload{}, err
	}
	return C.store(C.payload(sel)), nil
}

func (C *WaterByMinDistAndHBonds) Populator() sparse.Populator {
	from := C.Waters.NonHy
	if C.MinDistType == MinDistAll {
		from = append(append([]int(nil), from...), C.Waters.AllHy()...)
	}
	return sparse.NewComposite(
		&sparse.HBondsBetweenGroups{A: C.Waters, B: C.Waters, MaxOO: C.MaxOO},
		&sparse.DistMatrix{From: from, To: C.Anchors},
	)
}

// WaterByMinDistHBondsAndAdsSiteHozDist adds to WaterByMinDistAndHBonds a window on the
// in-plane distance between the adsorption site of the water, the closest of AdsSites
// to its oxygen, and the closest other adsorption site.
type WaterByMinDistHBondsAndAdsSiteHozDist struct {
	WaterByMinDistAndHBonds
	AdsSites       []int
	AdsSiteHozDist Window
}

func (C *WaterByMinDistHBondsAndAdsSiteHozDist) Classify(calc *sparse.Calculator) (Payload, error) {
	caller := "classify.WaterByMinDistHBondsAndAdsSiteHozDist"
	sel, err := C.selected(calc, caller)
	if err != nil {
		return Payload{}, err
	}
	D, H := calc.Dict().Dist, calc.Dict().HozDist
	if H == nil {
		return Payload{}, chem.NewFrameError(caller, "horizontal distance matrix not populated")
	}
	for k, o := range C.Waters.NonHy {
		if !sel[k] {
			continue
		}
		site, best := -1, math.Inf(1)
		for _, s := range C.AdsSites {
			if d := D.At(o, s); d < best {
				site, best = s, d
			}
		}
		sel[k] = site >= 0 && C.AdsSiteHozDist.Contains(binval.MinDist(H, site, C.AdsSites, 0))
	}
	return C.store(C.payload(sel)), nil
}

func (C *WaterByMinDistHBondsAndAdsSiteHozDist) Populator() sparse.Populator {
	comp := C.WaterByMinDistAndHBonds.Populator().(*sparse.Composite)
	comp.Add(
		&sparse.DistMatrix{From: C.Waters.NonHy, To: C.AdsSites},
		&sparse.HozDistMatrix{From: C.AdsSites, To: C.AdsSites},
	)
	return comp
}

// hbondsTo returns the candidates whose number of hydrogen bonds with group is in n.
func hbondsTo(calc *sparse.Calculator, candidates, group sparse.Molecules, c binval.HBondCriteria, n Window) (Payload, error) {
	hbs, err := binval.FindHBonds(calc.Dict(), candidates, group, c)
	if err != nil {
		return Payload{}, err
	}
	ret := Payload{Indices: []int{}, Hy: [][]int{}}
	for k, h := range hbs {
		if n.Contains(float64(len(h))) {
			ret.Indices = append(ret.Indices, candidates.NonHy[k])
			ret.Hy = append(ret.Hy, candidates.Hy[k])
		}
	}
	return ret, nil
}

// ByHBondsToGroup selects the Candidates whose number of hydrogen bonds with the fixed
// Group falls in NHBonds.
type ByHBondsToGroup struct {
	record
	Candidates, Group sparse.Molecules
	binval.HBondCriteria
	NHBonds Window
}

func (C *ByHBondsToGroup) Classify(calc *sparse.Calculator) (Payload, error) {
	p, err := hbondsTo(calc, C.Candidates, C.Group, C.HBondCriteria, C.NHBonds)
	if err != nil {
		return Payload{}, chem.ErrDecorate(err, "classify.ByHBondsToGroup")
	}
	return C.store(p), nil
}

func (C *ByHBondsToGroup) Populator() sparse.Populator {
	return &sparse.HBondsBetweenGroups{A: C.Candidates, B: C.Group, MaxOO: C.MaxOO}
}

// ByHBondsToDynamicGroup selects the Candidates by their number of hydrogen bonds with
// the molecules that GroupA selects in the same frame. GroupA must select from Pool,
// which is used to know which hydrogen bonds may be needed. With MutuallyExclusive,
// the members of group A are never selected.
type ByHBondsToDynamicGroup struct {
	record
	GroupA           Classifier
	Pool, Candidates sparse.Molecules
	binval.HBondCriteria
	NHBonds           Window
	MutuallyExclusive bool
}

func (C *ByHBondsToDynamicGroup) Classify(calc *sparse.Calculator) (Payload, error) {
	a, err := C.GroupA.Classify(calc)
	if err != nil {
		return Payload{}, chem.ErrDecorate(err, "classify.ByHBondsToDynamicGroup")
	}
	p, err := hbondsTo(calc, C.Candidates, a.Molecules(), C.HBondCriteria, C.NHBonds)
	if err != nil {
		return Payload{}, chem.ErrDecorate(err, "classify.ByHBondsToDynamicGroup")
	}
	if C.MutuallyExclusive {
		p = filter(p, func(i int) bool { return !chem.IsIn(a.Indices, i) })
	}
	return C.store(p), nil
}

func (C *ByHBondsToDynamicGroup) Populator() sparse.Populator {
	return sparse.NewComposite(
		C.GroupA.Populator(),
		&sparse.HBondsBetweenGroups{A: C.Candidates, B: C.Pool, MaxOO: C.MaxOO},
	)
}

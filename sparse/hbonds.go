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

package sparse

import (
	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/geom"
)

// Molecules are groups of atoms represented by a heavy atom each. Hy[k] holds the
// hydrogens bonded to NonHy[k].
type Molecules struct {
	NonHy []int
	Hy    [][]int
}

// Len returns the number of molecules.
func (M Molecules) Len() int { return len(M.NonHy) }

// AllHy returns the hydrogens of all the molecules, in order.
func (M Molecules) AllHy() []int {
	var ret []int
	for _, h := range M.Hy {
		ret = append(ret, h...)
	}
	return ret
}

// Check returns an error if the heavy atoms and hydrogen lists do not match.
func (M Molecules) Check(caller string) error {
	if len(M.NonHy) != len(M.Hy) {
		return chem.NewConfigError(caller, "%d heavy atoms but %d hydrogen lists", len(M.NonHy), len(M.Hy))
	}
	return nil
}

func (M Molecules) checkIndices(caller string, natoms int) error {
	if err := M.Check(caller); err != nil {
		return err
	}
	return checkIndices(caller, natoms, M.NonHy, M.AllHy())
}

// fillHBondCandidates fills, for every heavy-atom pair (oa, od) of a and b closer than
// maxOO, the angles oa-od-hd for the hydrogens hd of od, and the oa-hd distances, in
// both directions. The oa-od distances must be already filled.
func fillHBondCandidates(cell *chem.UnitCell, prims geom.Primitives, dict *Dict, a, b Molecules, maxOO float64) {
	A := dict.angles()
	D := dict.dist()
	donate := func(acc, don int, hys []int) {
		for _, h := range hys {
			fillAngle(A, cell, prims, acc, don, h)
			if acc != h && !D.Has(acc, h) {
				d := prims.Distance(cell, acc, h)
				D.Set(acc, h, d)
				D.Set(h, acc, d)
			}
		}
	}
	for i, oa := range a.NonHy {
		for j, ob := range b.NonHy {
			if oa == ob {
				continue
			}
			//NaN compares false, so unfilled pairs are skipped
			if !(D.At(oa, ob) < maxOO) {
				continue
			}
			donate(oa, ob, b.Hy[j])
			donate(ob, oa, a.Hy[i])
		}
	}
}

// HBondsBetweenGroups fills what is needed to find hydrogen bonds between the molecules
// of A and B: the distances between their heavy atoms at level 0 and, at level 1,
// the donor angles and acceptor-hydrogen distances only for pairs closer than MaxOO.
type HBondsBetweenGroups struct {
	A, B  Molecules
	MaxOO float64
}

func (P *HBondsBetweenGroups) MaxLevel() int { return 1 }

func (P *HBondsBetweenGroups) Populate(cell *chem.UnitCell, prims geom.Primitives, dict *Dict, level int) error {
	switch level {
	case 0:
		for _, m := range []Molecules{P.A, P.B} {
			if err := m.checkIndices("sparse.HBondsBetweenGroups", dict.NAtoms); err != nil {
				return err
			}
		}
		fillPairs(dict.dist(), P.A.NonHy, P.B.NonHy, func(i, j int) float64 { return prims.Distance(cell, i, j) })
	case 1:
		fillHBondCandidates(cell, prims, dict, P.A, P.B, P.MaxOO)
	}
	return nil
}

// HBondsWithDistFilter fills what is needed to count the hydrogen bonds among all the
// waters (Oxy, Hy) while classifying them by distance to FilterIndices: the
// oxygen-oxygen and filter-oxygen distances at level 0, and the angles of the candidate
// pairs at level 1.
type HBondsWithDistFilter struct {
	Waters        Molecules
	FilterIndices []int
	MaxOO         float64
}

func (P *HBondsWithDistFilter) MaxLevel() int { return 1 }

func (P *HBondsWithDistFilter) Populate(cell *chem.UnitCell, prims geom.Primitives, dict *Dict, level int) error {
	switch level {
	case 0:
		if err := P.Waters.checkIndices("sparse.HBondsWithDistFilter", dict.NAtoms); err != nil {
			return err
		}
		if err := checkIndices("sparse.HBondsWithDistFilter", dict.NAtoms, P.FilterIndices); err != nil {
			return err
		}
		dist := func(i, j int) float64 { return prims.Distance(cell, i, j) }
		D := dict.dist()
		fillPairs(D, P.Waters.NonHy, P.Waters.NonHy, dist)
		fillPairs(D, P.FilterIndices, P.Waters.NonHy, dist)
	case 1:
		fillHBondCandidates(cell, prims, dict, P.Waters, P.Waters, P.MaxOO)
	}
	return nil
}

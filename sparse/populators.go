/*
 * populators.go, part of mdbin.
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
	v3 "github.com/rmera/mdbin/v3"
)

// Populator fills the entries of a Dict that an analysis needs. Populate is called once
// for each level from 0 to the largest MaxLevel of all the populators of a Calculator,
// and does nothing for the levels it does not use. Populators allocate the matrices
// they need when absent, and only fill entries not filled yet, so calling Populate
// twice has the same effect as calling it once.
type Populator interface {
	MaxLevel() int
	Populate(cell *chem.UnitCell, prims geom.Primitives, dict *Dict, level int) error
}

func checkIndices(caller string, natoms int, sets ...[]int) error {
	for _, s := range sets {
		for _, i := range s {
			if i < 0 || i >= natoms {
				return chem.NewFrameError(caller, "index %d out of range for a frame with %d atoms", i, natoms)
			}
		}
	}
	return nil
}

// fillPairs fills the symmetric entries i,j and j,i of M for all i in from and
// j in to, i != j, with f(i,j).
func fillPairs(M *Mat2, from, to []int, f func(i, j int) float64) {
	for _, i := range from {
		for _, j := range to {
			if i == j || M.Has(i, j) {
				continue
			}
			d := f(i, j)
			M.Set(i, j, d)
			M.Set(j, i, d)
		}
	}
}

// DistMatrix fills the min-image distances between From and To.
type DistMatrix struct {
	From, To []int
}

func (P *DistMatrix) MaxLevel() int { return 0 }

func (P *DistMatrix) Populate(cell *chem.UnitCell, prims geom.Primitives, dict *Dict, level int) error {
	if level != 0 {
		return nil
	}
	if err := checkIndices("sparse.DistMatrix", dict.NAtoms, P.From, P.To); err != nil {
		return err
	}
	fillPairs(dict.dist(), P.From, P.To, func(i, j int) float64 { return prims.Distance(cell, i, j) })
	return nil
}

// HozDistMatrix fills the min-image distances within the ab-plane between From and To.
type HozDistMatrix struct {
	From, To []int
}

func (P *HozDistMatrix) MaxLevel() int { return 0 }

func (P *HozDistMatrix) Populate(cell *chem.UnitCell, prims geom.Primitives, dict *Dict, level int) error {
	if level != 0 {
		return nil
	}
	if err := checkIndices("sparse.HozDistMatrix", dict.NAtoms, P.From, P.To); err != nil {
		return err
	}
	fillPairs(dict.hozDist(), P.From, P.To, func(i, j int) float64 { return prims.HozDistance(cell, i, j) })
	return nil
}

// PlanarDistMatrix fills the signed distances of Indices from Plane. A nil Plane
// means the ab-plane of the cell through the origin.
type PlanarDistMatrix struct {
	Indices []int
	Plane   *geom.Plane
}

func (P *PlanarDistMatrix) MaxLevel() int { return 0 }

func (P *PlanarDistMatrix) Populate(cell *chem.UnitCell, prims geom.Primitives, dict *Dict, level int) error {
	if level != 0 {
		return nil
	}
	if err := checkIndices("sparse.PlanarDistMatrix", dict.NAtoms, P.Indices); err != nil {
		return err
	}
	plane := P.Plane
	if plane == nil {
		plane = geom.DefaultSurfacePlane(cell)
	}
	v := dict.planarDists(plane)
	for _, i := range P.Indices {
		if !v.Has(i) {
			v.Set(i, prims.SignedPlaneDistance(cell, plane, i))
		}
	}
	return nil
}

// AngleMatrix fills the a-b-c angles (vertex b) of the given triples, and of the reversed triples.
type AngleMatrix struct {
	Triples [][3]int
}

func (P *AngleMatrix) MaxLevel() int { return 0 }

func (P *AngleMatrix) Populate(cell *chem.UnitCell, prims geom.Primitives, dict *Dict, level int) error {
	if level != 0 {
		return nil
	}
	for _, t := range P.Triples {
		if err := checkIndices("sparse.AngleMatrix", dict.NAtoms, t[:]); err != nil {
			return err
		}
	}
	A := dict.angles()
	for _, t := range P.Triples {
		fillAngle(A, cell, prims, t[0], t[1], t[2])
	}
	return nil
}

func fillAngle(A *Mat3, cell *chem.UnitCell, prims geom.Primitives, a, b, c int) {
	if A.Has(a, b, c) {
		return
	}
	ang := prims.Angle(cell, a, b, c)
	A.Set(a, b, c, ang)
	A.Set(c, b, a, ang)
}

// DiatomAngleWithVector fills the angles between the directed diatoms i->j of
// Pairs and Vector. With BothDirs the angles of j->i are filled too.
type DiatomAngleWithVector struct {
	Pairs    [][2]int
	Vector   [3]float64
	BothDirs bool
}

func (P *DiatomAngleWithVector) MaxLevel() int { return 0 }

func (P *DiatomAngleWithVector) Populate(cell *chem.UnitCell, prims geom.Primitives, dict *Dict, level int) error {
	if level != 0 {
		return nil
	}
	if v3.Norm(P.Vector) == 0 {
		return chem.NewConfigError("sparse.DiatomAngleWithVector", "zero reference vector")
	}
	for _, p := range P.Pairs {
		if err := checkIndices("sparse.DiatomAngleWithVector", dict.NAtoms, p[:]); err != nil {
			return err
		}
	}
	M := dict.diatomAngles(P.Vector)
	for _, p := range P.Pairs {
		i, j := p[0], p[1]
		if !M.Has(i, j) {
			ang := chem.Rad2Deg(v3.Angle(prims.NearestImageVector(cell, i, j), P.Vector))
			M.Set(i, j, ang)
		}
		if P.BothDirs && !M.Has(j, i) {
			M.Set(j, i, 180-M.At(i, j))
		}
	}
	return nil
}

// Composite runs several populators in registration order.
type Composite struct {
	Pops []Populator
}

// NewComposite returns a Composite running pops.
func NewComposite(pops ...Populator) *Composite {
	return &Composite{Pops: pops}
}

// Add registers more populators, after those already present.
func (P *Composite) Add(pops ...Populator) {
	P.Pops = append(P.Pops, pops...)
}

// MaxLevel is the largest MaxLevel of the populators, 0 if there are none.
func (P *Composite) MaxLevel() int {
	m := 0
	for _, p := range P.Pops {
		if l := p.MaxLevel(); l > m {
			m = l
		}
	}
	return m
}

func (P *Composite) Populate(cell *chem.UnitCell, prims geom.Primitives, dict *Dict, level int) error {
	for _, p := range P.Pops {
		if err := p.Populate(cell, prims, dict, level); err != nil {
			return err
		}
	}
	return nil
}

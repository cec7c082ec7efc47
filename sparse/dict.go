/*
 * dict.go, part of mdbin.
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

// Package sparse builds, frame by frame, the sparse set of geometric matrices that the
// configured analyses need. Populators declare which entries they need and fill them,
// level by level, into a Dict owned by a Calculator.
package sparse

import (
	"github.com/rmera/mdbin/geom"
	v3 "github.com/rmera/mdbin/v3"
)

// PlaneTol is the tolerance used when matching planes and vectors against those already in a Dict.
const PlaneTol = 1e-6

// DiatomAngles holds the angles, in degrees, between directed diatoms i->j and a fixed vector.
type DiatomAngles struct {
	Vector [3]float64
	Angles *Mat2
}

// Dict holds the sparse matrices of one frame. Matrices are nil until a populator needs them.
type Dict struct {
	NAtoms int
	// Dist is the min-image distance between atoms. The diagonal is never filled.
	Dist *Mat2
	// HozDist is the min-image distance within the ab-plane of the cell.
	HozDist *Mat2
	// Planes are the planes used so far, in order of first use; PlanarDists[k] holds the
	// signed distances of atoms from Planes[k].
	Planes      []*geom.Plane
	PlanarDists []*Vec
	// Angles[a][b][c] is the a-b-c angle, in degrees, with vertex b.
	Angles *Mat3
	// PosVectors[i][j] is the min-image displacement from i to j.
	PosVectors *VecMat2
	// Water Tait-Bryan angles, in degrees, indexed by oxygen.
	WaterRoll, WaterPitch, WaterAzimuth *Vec
	DiatomAngles                        []*DiatomAngles
}

// NewDict returns an empty Dict for a frame with natoms atoms.
func NewDict(natoms int) *Dict {
	return &Dict{NAtoms: natoms}
}

func (D *Dict) dist() *Mat2 {
	if D.Dist == nil {
		D.Dist = NewMat2(D.NAtoms)
	}
	return D.Dist
}

func (D *Dict) hozDist() *Mat2 {
	if D.HozDist == nil {
		D.HozDist = NewMat2(D.NAtoms)
	}
	return D.HozDist
}

func (D *Dict) angles() *Mat3 {
	if D.Angles == nil {
		D.Angles = NewMat3(D.NAtoms)
	}
	return D.Angles
}

func (D *Dict) posVectors() *VecMat2 {
	if D.PosVectors == nil {
		D.PosVectors = NewVecMat2(D.NAtoms)
	}
	return D.PosVectors
}

func (D *Dict) waterAngles() (roll, pitch, azimuth *Vec) {
	if D.WaterRoll == nil {
		D.WaterRoll, D.WaterPitch, D.WaterAzimuth = NewVec(D.NAtoms), NewVec(D.NAtoms), NewVec(D.NAtoms)
	}
	return D.WaterRoll, D.WaterPitch, D.WaterAzimuth
}

// PlaneIndices returns the indices of all the planes in the Dict equal to p.
func (D *Dict) PlaneIndices(p *geom.Plane) []int {
	var ret []int
	for i, q := range D.Planes {
		if q.Equal(p, PlaneTol) {
			ret = append(ret, i)
		}
	}
	return ret
}

// planarDists returns the distances for plane p, adding p to the Dict if it is new.
func (D *Dict) planarDists(p *geom.Plane) *Vec {
	if idx := D.PlaneIndices(p); len(idx) > 0 {
		return D.PlanarDists[idx[0]]
	}
	q := *p
	D.Planes = append(D.Planes, &q)
	v := NewVec(D.NAtoms)
	D.PlanarDists = append(D.PlanarDists, v)
	return v
}

// DiatomAngleMatrix returns the diatom angles with vector v, or nil if none are stored.
func (D *Dict) DiatomAngleMatrix(v [3]float64) *Mat2 {
	for _, d := range D.DiatomAngles {
		if v3.Norm(v3.Sub(d.Vector, v)) <= PlaneTol {
			return d.Angles
		}
	}
	return nil
}

func (D *Dict) diatomAngles(v [3]float64) *Mat2 {
	if m := D.DiatomAngleMatrix(v); m != nil {
		return m
	}
	m := NewMat2(D.NAtoms)
	D.DiatomAngles = append(D.DiatomAngles, &DiatomAngles{Vector: v, Angles: m})
	return m
}

/*
 * pbc.go, part of mdbin.
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

package geom

import (
	"math"

	chem "github.com/rmera/mdbin"
	v3 "github.com/rmera/mdbin/v3"
)

// Primitives are the periodic geometry kernels on which the sparse matrices are built.
// All of them use the minimum-image convention.
type Primitives interface {
	chem.Distancer
	// HozDistance is the distance between i and j within the plane with normal a×b.
	HozDistance(cell *chem.UnitCell, i, j int) float64
	// Angle is the a-b-c angle in degrees, with vertex b.
	Angle(cell *chem.UnitCell, a, b, c int) float64
	// NearestImageVector is the displacement from i to the nearest image of j.
	NearestImageVector(cell *chem.UnitCell, i, j int) [3]float64
	// SignedPlaneDistance is the signed distance of the image of i closest to the plane.
	SignedPlaneDistance(cell *chem.UnitCell, plane *Plane, i int) float64
}

// MinImage is the default implementation of Primitives. Displacements are
// wrapped in fractional coordinates and the 27 neighbouring images are searched, so
// skewed cells are handled correctly as long as the cutoffs of interest are
// shorter than half the shortest cell height.
type MinImage struct{}

// images calls f with the 27 displacements d + ia + jb + kc, i,j,k in {-1,0,1}.
func images(cell *chem.UnitCell, d [3]float64, f func([3]float64)) {
	a, b, c := cell.LatticeVec(0), cell.LatticeVec(1), cell.LatticeVec(2)
	for i := -1.0; i <= 1; i++ {
		for j := -1.0; j <= 1; j++ {
			for k := -1.0; k <= 1; k++ {
				t := v3.Add(v3.Add(v3.Scale(i, a), v3.Scale(j, b)), v3.Scale(k, c))
				f(v3.Add(d, t))
			}
		}
	}
}

// wrap returns d with its fractional coordinates brought to [-0.5, 0.5].
func wrap(cell *chem.UnitCell, d [3]float64) [3]float64 {
	f := cell.Fractional(d)
	for k := range f {
		f[k] -= math.Round(f[k])
	}
	return cell.Cartesian(f)
}

// MinImageVector returns the shortest periodic image of the displacement d.
func MinImageVector(cell *chem.UnitCell, d [3]float64) [3]float64 {
	best := [3]float64{}
	bestN := math.Inf(1)
	images(cell, wrap(cell, d), func(v [3]float64) {
		if n := v3.Dot(v, v); n < bestN {
			best, bestN = v, n
		}
	})
	return best
}

func (MinImage) NearestImageVector(cell *chem.UnitCell, i, j int) [3]float64 {
	return MinImageVector(cell, v3.Sub(cell.Coord(j), cell.Coord(i)))
}

func (m MinImage) Distance(cell *chem.UnitCell, i, j int) float64 {
	return v3.Norm(m.NearestImageVector(cell, i, j))
}

func (MinImage) HozDistance(cell *chem.UnitCell, i, j int) float64 {
	n := v3.Unit(v3.Cross(cell.LatticeVec(0), cell.LatticeVec(1)))
	d := wrap(cell, v3.Sub(cell.Coord(j), cell.Coord(i)))
	best := math.Inf(1)
	images(cell, d, func(v [3]float64) {
		h := v3.Sub(v, v3.Scale(v3.Dot(v, n), n))
		best = math.Min(best, v3.Norm(h))
	})
	return best
}

func (m MinImage) Angle(cell *chem.UnitCell, a, b, c int) float64 {
	va := m.NearestImageVector(cell, b, a)
	vc := m.NearestImageVector(cell, b, c)
	return chem.Rad2Deg(v3.Angle(va, vc))
}

// SignedPlaneDistance considers the images of the atom, wrapped into the cell,
// shifted by up to one lattice vector along each axis. On ties the positive distance is used.
func (MinImage) SignedPlaneDistance(cell *chem.UnitCell, plane *Plane, i int) float64 {
	f := cell.Fractional(cell.Coord(i))
	for k := range f {
		f[k] -= math.Floor(f[k])
	}
	best := math.Inf(1)
	images(cell, cell.Cartesian(f), func(v [3]float64) {
		d := plane.SignedDistance(v)
		ad, ab := math.Abs(d), math.Abs(best)
		if ad < ab-appzero || (math.Abs(ad-ab) <= appzero && d > best) {
			best = d
		}
	})
	return best
}

/*
 * plane.go, part of mdbin.
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
	"fmt"
	"math"

	chem "github.com/rmera/mdbin"
	v3 "github.com/rmera/mdbin/v3"
)

// appzero is the tolerance used to check that computed points lie on their plane.
const appzero = 1e-6

// Plane is the 3D plane ax+by+cz=d. The sign of distances is positive
// for points lying along +normal from the plane.
type Plane struct {
	A, B, C, D float64
}

// NewPlane returns the plane ax+by+cz=d.
func NewPlane(a, b, c, d float64) *Plane {
	return &Plane{A: a, B: b, C: c, D: d}
}

// PlaneFromVectors returns the plane through the origin with normal v1×v2, normalised
// to unit length if normalise is true. It fails if v1 and v2 are parallel.
func PlaneFromVectors(v1, v2 [3]float64, normalise bool) (*Plane, error) {
	n := v3.Cross(v1, v2)
	if v3.Norm(n) == 0 {
		return nil, chem.NewConfigError("geom.PlaneFromVectors", "vectors %v and %v do not define a plane", v1, v2)
	}
	if normalise {
		n = v3.Unit(n)
	}
	return &Plane{A: n[0], B: n[1], C: n[2]}, nil
}

// DefaultSurfacePlane returns the ab-plane of the cell through the origin, with unit normal along a×b.
func DefaultSurfacePlane(cell *chem.UnitCell) *Plane {
	n := v3.Unit(v3.Cross(cell.LatticeVec(0), cell.LatticeVec(1)))
	return &Plane{A: n[0], B: n[1], C: n[2]}
}

// Normal returns the (a,b,c) vector of the plane.
func (P *Plane) Normal() [3]float64 {
	return [3]float64{P.A, P.B, P.C}
}

// UnitNormal returns the normal of the plane scaled to unit length.
func (P *Plane) UnitNormal() [3]float64 {
	return v3.Unit(P.Normal())
}

// CalcD returns the d value of the plane parallel to P that passes through xyz.
func (P *Plane) CalcD(xyz [3]float64) float64 {
	return v3.Dot(P.Normal(), xyz)
}

// SignedDistance returns the distance of xyz from the plane, positive along +normal.
func (P *Plane) SignedDistance(xyz [3]float64) float64 {
	return (P.CalcD(xyz) - P.D) / v3.Norm(P.Normal())
}

// Distance returns the absolute distance of xyz from the plane.
func (P *Plane) Distance(xyz [3]float64) float64 {
	return math.Abs(P.SignedDistance(xyz))
}

// PointClosestToOrigin returns the point of the plane closest to the origin.
// An error here means the computed point is not on the plane, which is a bug.
func (P *Plane) PointClosestToOrigin() ([3]float64, error) {
	n := P.Normal()
	n2 := v3.Dot(n, n)
	if n2 == 0 {
		return [3]float64{}, chem.NewConfigError("geom.PointClosestToOrigin", "plane %v has a zero normal", P)
	}
	p := v3.Scale(P.D/n2, n)
	if math.Abs(P.CalcD(p)-P.D) > appzero*math.Max(1, math.Abs(P.D)) {
		return p, chem.NewFrameError("geom.PointClosestToOrigin", "point %v is not on plane %v", p, P)
	}
	return p, nil
}

// Equal returns true if all four coefficients of the planes agree within tol.
func (P *Plane) Equal(o *Plane, tol float64) bool {
	return math.Abs(P.A-o.A) <= tol && math.Abs(P.B-o.B) <= tol &&
		math.Abs(P.C-o.C) <= tol && math.Abs(P.D-o.D) <= tol
}

func (P *Plane) String() string {
	return fmt.Sprintf("%gx + %gy + %gz = %g", P.A, P.B, P.C, P.D)
}

// ParallelSimple returns true if the absolute dot product of the unit normals of
// p1 and p2 is within tol of 1.
func ParallelSimple(p1, p2 *Plane, tol float64) bool {
	d := math.Abs(v3.Dot(p1.UnitNormal(), p2.UnitNormal()))
	return math.Abs(d-1) <= tol
}

// VectorBetweenParallelPlanes returns the vector that moves any point of plane a
// onto plane b. It fails if the planes are not parallel.
func VectorBetweenParallelPlanes(a, b *Plane, tol float64) ([3]float64, error) {
	if !ParallelSimple(a, b, tol) {
		return [3]float64{}, chem.NewConfigError("geom.VectorBetweenParallelPlanes", "planes %v and %v are not parallel", a, b)
	}
	p, err := a.PointClosestToOrigin()
	if err != nil {
		return p, chem.ErrDecorate(err, "geom.VectorBetweenParallelPlanes")
	}
	return v3.Scale(-b.SignedDistance(p), b.UnitNormal()), nil
}

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

package sparse

import (
	"math"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/geom"
	v3 "github.com/rmera/mdbin/v3"
	"gonum.org/v1/gonum/mat"
)

// gimbalTol is how close to +-1 sin(pitch) must be for the roll to be undefined.
const gimbalTol = 1e-8

// WaterOrientation fills the roll, pitch and azimuth of the waters with oxygens Oxy and
// hydrogens Hy (two per oxygen). At level 0 it fills the O->H displacements, at
// level 1 it obtains the angles from them.
type WaterOrientation struct {
	Oxy []int
	Hy  [][2]int
}

func (P *WaterOrientation) MaxLevel() int { return 1 }

func (P *WaterOrientation) Populate(cell *chem.UnitCell, prims geom.Primitives, dict *Dict, level int) error {
	switch level {
	case 0:
		if len(P.Oxy) != len(P.Hy) {
			return chem.NewConfigError("sparse.WaterOrientation", "%d oxygens but %d hydrogen pairs", len(P.Oxy), len(P.Hy))
		}
		if err := checkIndices("sparse.WaterOrientation", dict.NAtoms, P.Oxy); err != nil {
			return err
		}
		V := dict.posVectors()
		for k, o := range P.Oxy {
			if err := checkIndices("sparse.WaterOrientation", dict.NAtoms, P.Hy[k][:]); err != nil {
				return err
			}
			for _, h := range P.Hy[k] {
				if !V.Has(o, h) {
					V.Set(o, h, prims.NearestImageVector(cell, o, h))
				}
			}
		}
	case 1:
		roll, pitch, azimuth := dict.waterAngles()
		for k, o := range P.Oxy {
			if roll.Has(o) {
				continue
			}
			u1 := dict.PosVectors.At(o, P.Hy[k][0])
			u2 := dict.PosVectors.At(o, P.Hy[k][1])
			r, p, a, err := WaterAngles(u1, u2)
			if err != nil {
				return chem.ErrDecorate(err, "sparse.WaterOrientation")
			}
			roll.Set(o, r)
			pitch.Set(o, p)
			azimuth.Set(o, a)
		}
	}
	return nil
}

// WaterRotation returns the rotation matrix from the lab frame to the body frame of a water
// with O->H vectors u1 and u2. The columns are the body axes: x along the H-O-H bisector,
// z along u1×u2, normal to the molecular plane; and y = z×x.
func WaterRotation(u1, u2 [3]float64) (*mat.Dense, error) {
	u1, u2 = v3.Unit(u1), v3.Unit(u2)
	x := v3.Add(u1, u2)
	z := v3.Cross(u1, u2)
	if v3.Norm(x) == 0 || v3.Norm(z) == 0 {
		return nil, chem.NewFrameError("sparse.WaterRotation", "degenerate O-H vectors %v and %v", u1, u2)
	}
	x, z = v3.Unit(x), v3.Unit(z)
	y := v3.Cross(z, x)
	R := mat.NewDense(3, 3, nil)
	R.SetCol(0, x[:])
	R.SetCol(1, y[:])
	R.SetCol(2, z[:])
	return R, nil
}

// WaterAngles returns the roll, pitch and azimuth, in degrees, of a water with O->H
// vectors u1 and u2, such that its rotation matrix is Rz(azimuth)·Ry(-pitch)·Rx(roll).
// The pitch is the elevation of the bisector over the xy plane and the azimuth its
// direction within that plane. Since both hydrogens are equivalent, the roll is folded into
// [-90, 90]. When the bisector is along z the roll is undefined and set to 0.
func WaterAngles(u1, u2 [3]float64) (roll, pitch, azimuth float64, err error) {
	R, err := WaterRotation(u1, u2)
	if err != nil {
		return 0, 0, 0, err
	}
	s := math.Max(-1, math.Min(1, R.At(2, 0)))
	pitch = math.Asin(s)
	if math.Abs(s) > 1-gimbalTol {
		azimuth = math.Atan2(-R.At(0, 1), R.At(1, 1))
	} else {
		azimuth = math.Atan2(R.At(1, 0), R.At(0, 0))
		roll = math.Atan2(R.At(2, 1), R.At(2, 2))
	}
	roll = chem.Rad2Deg(roll)
	if roll > 90 {
		roll -= 180
	} else if roll < -90 {
		roll += 180
	}
	return roll, chem.Rad2Deg(pitch), chem.Rad2Deg(azimuth), nil
}

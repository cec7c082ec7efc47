/*
 * vec.go, part of mdbin.
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

package v3

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Helpers for single 3D vectors. The geometric kernels work on [3]float64 values
// to avoid allocating a Dense per pair; the arithmetic is that of gonum's r3.

// R3 returns a as an r3.Vec.
func R3(a [3]float64) r3.Vec { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }

// FromR3 returns v as an array.
func FromR3(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func Add(a, b [3]float64) [3]float64 { return FromR3(r3.Add(R3(a), R3(b))) }

func Sub(a, b [3]float64) [3]float64 { return FromR3(r3.Sub(R3(a), R3(b))) }

func Scale(f float64, a [3]float64) [3]float64 { return FromR3(r3.Scale(f, R3(a))) }

func Dot(a, b [3]float64) float64 { return r3.Dot(R3(a), R3(b)) }

func Cross(a, b [3]float64) [3]float64 { return FromR3(r3.Cross(R3(a), R3(b))) }

// Norm returns the euclidean norm of a.
func Norm(a [3]float64) float64 { return r3.Norm(R3(a)) }

// Unit returns a/|a|. The zero vector is returned unchanged.
func Unit(a [3]float64) [3]float64 {
	if Norm(a) == 0 {
		return a
	}
	return FromR3(r3.Unit(R3(a)))
}

// Angle returns the angle between a and b, in radians. It is NaN if either vector is zero.
func Angle(a, b [3]float64) float64 {
	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return math.NaN()
	}
	c := Dot(a, b) / (na * nb)
	//rounding can put c slightly outside [-1,1]
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}

// MulVec returns the product of the 3x3 matrix M with the column vector v.
func MulVec(M mat.Matrix, v [3]float64) [3]float64 {
	r, c := M.Dims()
	if r != 3 || c != 3 {
		panic(ErrShape)
	}
	var ret [3]float64
	for i := 0; i < 3; i++ {
		ret[i] = M.At(i, 0)*v[0] + M.At(i, 1)*v[1] + M.At(i, 2)*v[2]
	}
	return ret
}

// Ax returns the x, y or z unit vector for i = 0, 1, 2.
func Ax(i int) [3]float64 {
	var r [3]float64
	r[i] = 1
	return r
}

/*
 * v3_test.go, part of mdbin.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, 2, A.NVecs())
	assert.Equal(Te, [3]float64{4, 5, 6}, A.Vec(1))
	_, err = NewMatrix([]float64{1, 2})
	assert.Error(Te, err)
	assert.Equal(Te, 0, Zeros(0).NVecs())
}

func TestSomeVecsAndViews(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	B, err := A.SomeVecs([]int{2, 0})
	require.NoError(Te, err)
	assert.Equal(Te, [3]float64{7, 8, 9}, B.Vec(0))
	assert.Equal(Te, [3]float64{1, 2, 3}, B.Vec(1))
	_, err = A.SomeVecs([]int{3})
	assert.Error(Te, err)

	view := A.VecView(1)
	view.Set(0, 0, 55)
	assert.Equal(Te, 55.0, A.At(1, 0), "a view should share storage with its matrix")
	C := A.Copy()
	C.Set(0, 0, -1)
	assert.Equal(Te, 1.0, A.At(0, 0), "a copy should not share storage")
	assert.False(Te, A.Equal(C, 1e-9))
	assert.Equal(Te, []float64{1, 2, 3, 55, 5, 6, 7, 8, 9}, A.RawData())
}

func TestVectorHelpers(Te *testing.T) {
	x, y := Ax(0), Ax(1)
	assert.Equal(Te, Ax(2), Cross(x, y))
	assert.InDelta(Te, math.Pi/2, Angle(x, y), 1e-12)
	assert.InDelta(Te, math.Pi, Angle(x, Scale(-3, x)), 1e-12)
	assert.True(Te, math.IsNaN(Angle(x, [3]float64{})))
	assert.InDelta(Te, 1, Norm(Unit([3]float64{2, 2, 3})), 1e-12)
	assert.Equal(Te, [3]float64{1, 1, 0}, Add(x, y))
	assert.Equal(Te, [3]float64{1, -1, 0}, Sub(x, y))
	assert.Equal(Te, [3]float64{}, Unit([3]float64{}))
	v := [3]float64{1, -2, 3}
	assert.Equal(Te, v, FromR3(R3(v)))
	assert.Equal(Te, 14.0, Dot(v, v))
}

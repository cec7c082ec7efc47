/*
 * cell_test.go, part of mdbin.
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

package chem

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/rmera/mdbin/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubicCell(Te *testing.T) {
	coords, _ := v3.NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	c, err := NewCubicCell(10, coords, []string{"O", "H"})
	require.NoError(Te, err)
	assert.InDelta(Te, 1000, c.Volume(), 1e-9)
	assert.InDelta(Te, 100, c.SurfaceArea(), 1e-9)
	assert.Equal(Te, []int{1}, c.IndicesOf("H"))
	f := c.Fractional([3]float64{5, 2.5, -10})
	assert.InDeltaSlice(Te, []float64{0.5, 0.25, -1}, f[:], 1e-12)
	l, a := c.LatticeParams()
	assert.Equal(Te, [3]float64{10, 10, 10}, l)
	assert.InDeltaSlice(Te, []float64{90, 90, 90}, a[:], 1e-9)

	_, err = NewCubicCell(10, coords, []string{"O"})
	assert.True(Te, errors.Is(err, ErrConfig))
}

func TestCellFromParams(Te *testing.T) {
	c, err := NewUnitCellFromParams([3]float64{5, 6, 7}, [3]float64{80, 95, 110}, nil, nil)
	require.NoError(Te, err)
	l, a := c.LatticeParams()
	assert.InDeltaSlice(Te, []float64{5, 6, 7}, l[:], 1e-9)
	assert.InDeltaSlice(Te, []float64{80, 95, 110}, a[:], 1e-9)
	p := [3]float64{1.5, -2, 3.25}
	back := c.Cartesian(c.Fractional(p))
	assert.InDeltaSlice(Te, p[:], back[:], 1e-9)
	cp := c.Copy()
	assert.True(Te, cp.Equal(c, 1e-12))
}

type flatDist struct{}

func (flatDist) Distance(cell *UnitCell, i, j int) float64 {
	return v3.Norm(v3.Sub(cell.Coord(i), cell.Coord(j)))
}

func TestCoulombEnergy(Te *testing.T) {
	coords, _ := v3.NewMatrix([]float64{0, 0, 0, 2, 0, 0})
	c, err := NewCubicCell(20, coords, []string{"Na", "Cl"})
	require.NoError(Te, err)
	e, err := CoulombEnergy(c, flatDist{}, []int{0, 1}, nil)
	require.NoError(Te, err)
	assert.InDelta(Te, -CoulombConst/2, e, 1e-9)
	_, err = CoulombEnergy(c, flatDist{}, []int{0, 1}, []float64{1})
	assert.True(Te, errors.Is(err, ErrConfig))
}

func TestErrors(Te *testing.T) {
	err := NewFrameError("sparse.Dist", "index %d out of range", 7)
	err = ErrDecorate(err, "distrib.Run")
	assert.True(Te, errors.Is(err, ErrFrame))
	assert.False(Te, errors.Is(err, ErrConfig))
	assert.Equal(Te, "distrib.Run: sparse.Dist: index 7 out of range", err.Error())
	lf := ErrDecorate(NewLastFrameError("a.xyz", "extxyz.Next"), "distrib.Run")
	assert.True(Te, IsLastFrame(lf))
	assert.False(Te, IsLastFrame(err))
	assert.InDelta(Te, math.Pi, Deg2Rad(180), 1e-15)
	assert.Equal(Te, []int{0, 1, 3}, UniqueInts([]int{3, 1}, []int{1, 0}))
}

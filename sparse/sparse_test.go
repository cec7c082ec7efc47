/*
 * sparse_test.go, part of mdbin.
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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/geom"
	v3 "github.com/rmera/mdbin/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubic(Te *testing.T, l float64, symbols []string, xyz ...float64) *chem.UnitCell {
	coords, err := v3.NewMatrix(xyz)
	require.NoError(Te, err)
	c, err := chem.NewCubicCell(l, coords, symbols)
	require.NoError(Te, err)
	return c
}

// two waters with their oxygens 2.8 A apart along x, the first one donating to the second,
// and a third water far away.
func waters(Te *testing.T) (*chem.UnitCell, Molecules) {
	c := cubic(Te, 20, []string{"O", "H", "H", "O", "H", "H", "O", "H", "H"},
		1, 1, 1, 1.96, 1, 1, 0.76, 1.93, 1,
		3.8, 1, 1, 4.04, 1.93, 1, 4.04, 0.07, 1,
		11, 11, 11, 11.96, 11, 11, 10.76, 11.93, 11,
	)
	return c, Molecules{NonHy: []int{0, 3, 6}, Hy: [][]int{{1, 2}, {4, 5}, {7, 8}}}
}

var dictOpts = []cmp.Option{
	cmp.AllowUnexported(Mat2{}, Vec{}, Mat3{}, VecMat2{}),
	cmpopts.EquateNaNs(),
}

func allPops(w Molecules) []Populator {
	return []Populator{
		&DistMatrix{From: []int{0, 3}, To: []int{0, 3, 6}},
		&HozDistMatrix{From: []int{0}, To: []int{3, 6}},
		&PlanarDistMatrix{Indices: []int{0, 3, 6}},
		&PlanarDistMatrix{Indices: []int{1}, Plane: geom.NewPlane(1, 0, 0, 2)},
		&AngleMatrix{Triples: [][3]int{{1, 0, 2}}},
		&DiatomAngleWithVector{Pairs: [][2]int{{0, 1}}, Vector: [3]float64{0, 0, 1}, BothDirs: true},
		&WaterOrientation{Oxy: []int{0, 3}, Hy: [][2]int{{1, 2}, {4, 5}}},
		&HBondsBetweenGroups{A: Molecules{NonHy: w.NonHy[:1], Hy: w.Hy[:1]}, B: w, MaxOO: 3.5},
		&HBondsWithDistFilter{Waters: w, FilterIndices: []int{1}, MaxOO: 3.5},
	}
}

func TestPopulatorsIdempotent(Te *testing.T) {
	cell, w := waters(Te)
	prims := geom.MinImage{}
	for _, p := range allPops(w) {
		once, twice := NewDict(cell.NAtoms()), NewDict(cell.NAtoms())
		for level := 0; level <= p.MaxLevel(); level++ {
			require.NoError(Te, p.Populate(cell, prims, once, level))
			require.NoError(Te, p.Populate(cell, prims, twice, level))
			require.NoError(Te, p.Populate(cell, prims, twice, level))
		}
		if d := cmp.Diff(once, twice, dictOpts...); d != "" {
			Te.Errorf("%T is not idempotent (-once +twice):\n%s", p, d)
		}
	}
}

func TestLevelZeroOrderIndependence(Te *testing.T) {
	cell, w := waters(Te)
	pops := allPops(w)[:6]
	fwd := NewCalculator(pops...)
	rev := NewCalculator()
	for i := len(pops) - 1; i >= 0; i-- {
		rev.AddPopulators(pops[i])
	}
	require.NoError(Te, fwd.CalcMatricesForGeom(cell))
	require.NoError(Te, rev.CalcMatricesForGeom(cell))
	//the planes are stored in order of first use, so they are compared apart
	opts := append(dictOpts, cmpopts.IgnoreFields(Dict{}, "Planes", "PlanarDists"))
	if d := cmp.Diff(fwd.Dict(), rev.Dict(), opts...); d != "" {
		Te.Errorf("level 0 depends on the order of the populators:\n%s", d)
	}
	for k, p := range fwd.Dict().Planes {
		idx := rev.Dict().PlaneIndices(p)
		require.Len(Te, idx, 1)
		if d := cmp.Diff(fwd.Dict().PlanarDists[k], rev.Dict().PlanarDists[idx[0]], dictOpts...); d != "" {
			Te.Errorf("planar distances differ for plane %v:\n%s", p, d)
		}
	}
}

func TestCalculatorValues(Te *testing.T) {
	cell, w := waters(Te)
	calc := NewCalculator(allPops(w)...)
	require.NoError(Te, calc.CalcMatricesForGeom(cell))
	D := calc.Dict()
	assert.InDelta(Te, 2.8, D.Dist.At(0, 3), 1e-9)
	assert.InDelta(Te, 2.8, D.Dist.At(3, 0), 1e-9)
	assert.True(Te, math.IsNaN(D.Dist.At(0, 0)), "the diagonal is never filled")
	assert.False(Te, D.Dist.Has(1, 4))
	assert.InDelta(Te, 2.8, D.HozDist.At(0, 3), 1e-9)
	require.Len(Te, D.Planes, 2)
	assert.InDelta(Te, 1, D.PlanarDists[0].At(0), 1e-9)
	assert.InDelta(Te, -0.04, D.PlanarDists[1].At(1), 1e-9)
	assert.InDelta(Te, 104.5, D.Angles.At(1, 0, 2), 0.2)
	assert.Equal(Te, D.Angles.At(1, 0, 2), D.Angles.At(2, 0, 1))

	//H 1 of the first water points straight at the second oxygen
	assert.InDelta(Te, 0, D.Angles.At(3, 0, 1), 1e-9)
	assert.InDelta(Te, 2.8-0.96, D.Dist.At(3, 1), 1e-9)
	assert.True(Te, D.Angles.Has(0, 3, 4))
	//the third water is too far for any angle to be computed
	assert.False(Te, D.Angles.Has(0, 6, 7))
	assert.False(Te, D.Angles.Has(6, 0, 1))

	m := D.DiatomAngleMatrix([3]float64{0, 0, 1})
	require.NotNil(Te, m)
	assert.InDelta(Te, 90, m.At(0, 1), 1e-9)
	assert.InDelta(Te, 90, m.At(1, 0), 1e-9)

	assert.InDelta(Te, 0, D.WaterPitch.At(0), 1e-6)
	assert.InDelta(Te, 0, D.WaterRoll.At(0), 1e-6)
	assert.True(Te, D.WaterRoll.Has(3))
	assert.False(Te, D.WaterRoll.Has(6))
}

func TestPopulatorErrors(Te *testing.T) {
	cell, _ := waters(Te)
	calc := NewCalculator(&DistMatrix{From: []int{0}, To: []int{42}})
	err := calc.CalcMatricesForGeom(cell)
	assert.True(Te, errors.Is(err, chem.ErrFrame))
	calc = NewCalculator(&WaterOrientation{Oxy: []int{0}, Hy: nil})
	assert.True(Te, errors.Is(calc.CalcMatricesForGeom(cell), chem.ErrConfig))
	calc = NewCalculator(&DiatomAngleWithVector{Pairs: [][2]int{{0, 1}}})
	assert.True(Te, errors.Is(calc.CalcMatricesForGeom(cell), chem.ErrConfig))
}

func water(az, tilt float64) (u1, u2 [3]float64) {
	//a water in the xy plane with its bisector along x, then tilted up by tilt and turned by az
	half := chem.Deg2Rad(104.5 / 2)
	u1 = [3]float64{math.Cos(half), math.Sin(half), 0}
	u2 = [3]float64{math.Cos(half), -math.Sin(half), 0}
	rot := func(u [3]float64) [3]float64 {
		t, a := chem.Deg2Rad(tilt), chem.Deg2Rad(az)
		//rotation about y, raising x towards z
		u = [3]float64{u[0]*math.Cos(t) - u[2]*math.Sin(t), u[1], u[0]*math.Sin(t) + u[2]*math.Cos(t)}
		return [3]float64{u[0]*math.Cos(a) - u[1]*math.Sin(a), u[0]*math.Sin(a) + u[1]*math.Cos(a), u[2]}
	}
	return rot(u1), rot(u2)
}

func TestWaterAngles(Te *testing.T) {
	for _, c := range []struct{ az, tilt float64 }{{0, 0}, {90, 0}, {-135, 0}, {30, 40}, {150, -60}} {
		u1, u2 := water(c.az, c.tilt)
		r, p, a, err := WaterAngles(u1, u2)
		require.NoError(Te, err)
		assert.InDelta(Te, 0, r, 1e-9, "%v", c)
		assert.InDelta(Te, c.tilt, p, 1e-9, "%v", c)
		assert.InDelta(Te, c.az, a, 1e-9, "%v", c)
		//swapping the hydrogens gives the same angles
		r2, p2, a2, _ := WaterAngles(u2, u1)
		assert.InDelta(Te, r, r2, 1e-9)
		assert.InDelta(Te, p, p2, 1e-9)
		assert.InDelta(Te, a, a2, 1e-9)
	}
	//molecular plane vertical, containing the x axis
	half := chem.Deg2Rad(104.5 / 2)
	r, p, _, err := WaterAngles([3]float64{math.Cos(half), 0, math.Sin(half)}, [3]float64{math.Cos(half), 0, -math.Sin(half)})
	require.NoError(Te, err)
	assert.InDelta(Te, 90, math.Abs(r), 1e-9)
	assert.InDelta(Te, 0, p, 1e-9)
	//bisector along z: the roll is undefined
	r, p, _, err = WaterAngles([3]float64{math.Sin(half), 0, math.Cos(half)}, [3]float64{-math.Sin(half), 0, math.Cos(half)})
	require.NoError(Te, err)
	assert.Equal(Te, 0.0, r)
	assert.InDelta(Te, 90, p, 1e-6)
	_, _, _, err = WaterAngles([3]float64{1, 0, 0}, [3]float64{2, 0, 0})
	assert.True(Te, errors.Is(err, chem.ErrFrame))
}

func TestContainers(Te *testing.T) {
	M := NewMat2(3)
	assert.True(Te, math.IsNaN(M.At(1, 2)))
	M.Set(1, 2, 0)
	assert.True(Te, M.Has(1, 2), "a zero is a filled entry")
	assert.Equal(Te, 0.0, M.At(1, 2))
	assert.Equal(Te, 1, M.NFilled())
	big := NewMat2(denseLimit + 1)
	big.Set(denseLimit, 3, 2.5)
	assert.Equal(Te, 2.5, big.At(denseLimit, 3))
	assert.False(Te, big.Has(3, denseLimit))
	V := NewVec(70)
	V.Set(69, -1)
	assert.True(Te, V.Has(69))
	assert.False(Te, V.Has(68))
	assert.Equal(Te, 1, V.NFilled())
	A := NewMat3(5)
	A.Set(1, 2, 3, 45)
	assert.Equal(Te, 45.0, A.At(1, 2, 3))
	assert.True(Te, math.IsNaN(A.At(3, 2, 1)))
}

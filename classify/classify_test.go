/*
 * classify_test.go, part of mdbin.
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

package classify

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/binval"
	"github.com/rmera/mdbin/sparse"
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

// Water A (oxygen 0) donates to B (3) and accepts from C (6). D (9) is isolated and
// atom 12 is a surface atom under C.
func fourWaters(Te *testing.T) (*chem.UnitCell, sparse.Molecules) {
	c := cubic(Te, 10, []string{"O", "H", "H", "O", "H", "H", "O", "H", "H", "O", "H", "H", "Pt"},
		5, 5, 5, 5.96, 5, 5, 4.76, 5.93, 5,
		7.8, 5, 5, 8.04, 5.93, 5, 8.04, 4.07, 5,
		5, 5, 2.2, 5, 5, 3.16, 5.93, 5, 1.96,
		1, 1, 1, 1.96, 1, 1, 0.76, 1.93, 1,
		5, 5, 0.5,
	)
	return c, sparse.Molecules{NonHy: []int{0, 3, 6, 9}, Hy: [][]int{{1, 2}, {4, 5}, {7, 8}, {10, 11}}}
}

// classify runs c alone on cell.
func classify(Te *testing.T, cell *chem.UnitCell, c Classifier) (Payload, error) {
	calc := sparse.NewCalculator(c.Populator())
	require.NoError(Te, calc.CalcMatricesForGeom(cell))
	return c.Classify(calc)
}

func diff(Te *testing.T, want, got Payload) {
	Te.Helper()
	if d := cmp.Diff(want, got, cmpopts.EquateEmpty()); d != "" {
		Te.Errorf("unexpected payload (-want +got):\n%s", d)
	}
}

var crit = binval.HBondCriteria{MaxOO: 3, MaxAngle: 35, Acceptor: true, Donor: true}

func TestWaterByMinDistAndHBonds(Te *testing.T) {
	cell, w := fourWaters(Te)
	c := &WaterByMinDistAndHBonds{Waters: w, Anchors: []int{12}, MinDist: Any, NDonor: Window{1, 2},
		NAcceptor: Any, NTotal: Any, MaxOO: 3, MaxAngle: 35, MinDistType: MinDistPrimary}
	p, err := classify(Te, cell, c)
	require.NoError(Te, err)
	diff(Te, Payload{Indices: []int{0, 6}, Hy: [][]int{{1, 2}, {7, 8}}}, p)
	assert.Equal(Te, 1, c.ExecCount())

	c.MinDist = Window{0, 3}
	p, err = classify(Te, cell, c)
	require.NoError(Te, err)
	diff(Te, Payload{Indices: []int{6}, Hy: [][]int{{7, 8}}}, p)

	c.MinDistType = MinDistAll
	c.MinDist, c.NDonor, c.NAcceptor = Window{0, 4.6}, Any, Window{1, 2}
	p, err = classify(Te, cell, c)
	require.NoError(Te, err)
	diff(Te, Payload{Indices: []int{0}, Hy: [][]int{{1, 2}}}, p)

	c.MinDistType = "closest"
	_, err = classify(Te, cell, c)
	assert.True(Te, errors.Is(err, chem.ErrFrame))
	assert.Equal(Te, 3, c.ExecCount())
}

func TestAdsSiteHozDist(Te *testing.T) {
	//two adsorption sites 3 A apart in the plane, one water over each of them
	cell := cubic(Te, 12, []string{"Pt", "Pt", "O", "H", "H", "O", "H", "H"},
		2, 2, 1, 5, 2, 1,
		2, 2, 3.2, 2.96, 2, 3.2, 1.76, 2.93, 3.2,
		5, 2, 3.2, 5.96, 2, 3.2, 4.76, 2.93, 3.2,
	)
	w := sparse.Molecules{NonHy: []int{2, 5}, Hy: [][]int{{3, 4}, {6, 7}}}
	c := &WaterByMinDistHBondsAndAdsSiteHozDist{
		WaterByMinDistAndHBonds: WaterByMinDistAndHBonds{Waters: w, Anchors: []int{0, 1}, MinDist: Window{0, 2.5},
			NDonor: Any, NAcceptor: Any, NTotal: Any, MaxOO: 3.5, MaxAngle: 35, MinDistType: MinDistPrimary},
		AdsSites:       []int{0, 1},
		AdsSiteHozDist: Window{2.5, 3.5},
	}
	p, err := classify(Te, cell, c)
	require.NoError(Te, err)
	assert.Equal(Te, []int{2, 5}, p.Indices)
	c.AdsSiteHozDist = Window{3.5, 10}
	p, err = classify(Te, cell, c)
	require.NoError(Te, err)
	assert.Empty(Te, p.Indices)
}

func TestByHBondsToGroups(Te *testing.T) {
	cell, w := fourWaters(Te)
	waterA := sparse.Molecules{NonHy: []int{0}, Hy: [][]int{{1, 2}}}
	p, err := classify(Te, cell, &ByHBondsToGroup{Candidates: w, Group: waterA, HBondCriteria: crit, NHBonds: Window{1, math.Inf(1)}})
	require.NoError(Te, err)
	diff(Te, Payload{Indices: []int{3, 6}, Hy: [][]int{{4, 5}, {7, 8}}}, p)

	groupA := &WaterByMinDistAndHBonds{Waters: w, Anchors: []int{12}, MinDist: Window{0, 4.6}, NDonor: Any,
		NAcceptor: Any, NTotal: Any, MaxOO: 3, MaxAngle: 35, MinDistType: MinDistPrimary}
	dyn := &ByHBondsToDynamicGroup{GroupA: groupA, Pool: w, Candidates: w, HBondCriteria: crit, NHBonds: Window{1, math.Inf(1)}}
	p, err = classify(Te, cell, dyn)
	require.NoError(Te, err)
	assert.Equal(Te, []int{0, 3, 6}, p.Indices)
	assert.Equal(Te, []int{0, 6}, groupA.StoredResult().Indices)
	dyn.MutuallyExclusive = true
	p, err = classify(Te, cell, dyn)
	require.NoError(Te, err)
	diff(Te, Payload{Indices: []int{3}, Hy: [][]int{{4, 5}}}, p)
	assert.Equal(Te, 2, groupA.ExecCount())
}

func TestDistClassifiers(Te *testing.T) {
	cell, w := fourWaters(Te)
	near := &AtomsWithinMinDistRange{Candidates: w.NonHy, Anchors: []int{12}, Range: Window{0, 5}}
	p, err := classify(Te, cell, near)
	require.NoError(Te, err)
	diff(Te, Payload{Indices: []int{0, 6}}, p)

	for _, c := range []struct {
		count Window
		want  []int
	}{
		{Window{1, math.Inf(1)}, []int{0, 3, 6}},
		{Window{2, 3}, []int{0}},
		{Window{0, 1}, []int{9}},
	} {
		p, err := classify(Te, cell, &AtomsByNeighbourCount{Candidates: w.NonHy, Neighbours: w.NonHy, NebRange: Window{0, 3}, CountRange: c.count})
		require.NoError(Te, err)
		assert.Equal(Te, c.want, p.Indices, "%v", c.count)
	}

	all := NewAll(near, &AtomsByNeighbourCount{Candidates: w.NonHy, Neighbours: w.NonHy, NebRange: Window{0, 3}, CountRange: Window{2, 3}})
	p, err = classify(Te, cell, all)
	require.NoError(Te, err)
	assert.Equal(Te, []int{0}, p.Indices)
	_, err = classify(Te, cell, NewAll())
	assert.True(Te, errors.Is(err, chem.ErrConfig))
}

// a water, a free oxygen, a hydroxyl and a hydronium.
func derivatives(Te *testing.T) (*chem.UnitCell, []int, []int) {
	cell := cubic(Te, 20, []string{"O", "H", "H", "O", "O", "H", "O", "H", "H", "H"},
		2, 2, 2, 2.96, 2, 2, 1.76, 2.93, 2,
		8, 8, 8,
		14, 2, 2, 14.97, 2, 2,
		2, 14, 14, 2.98, 14, 14, 1.51, 14.85, 14, 1.51, 13.15, 14,
	)
	return cell, []int{0, 3, 4, 6}, []int{1, 2, 5, 7, 8, 9}
}

func TestWaterDerivativeByDistance(Te *testing.T) {
	cell, oxy, hy := derivatives(Te)
	want := map[int]Payload{
		0: {Indices: []int{3}, Hy: [][]int{nil}},
		1: {Indices: []int{4}, Hy: [][]int{{5}}},
		2: {Indices: []int{0}, Hy: [][]int{{1, 2}}},
		3: {Indices: []int{6}, Hy: [][]int{{7, 8, 9}}},
	}
	for n, w := range want {
		p, err := classify(Te, cell, &WaterDerivativeByDistance{Oxy: oxy, Hy: hy, MaxOHDist: 1.5, NNebs: n})
		require.NoError(Te, err)
		diff(Te, w, p)
	}
	_, err := classify(Te, cell, &WaterDerivativeByDistance{Oxy: oxy, Hy: hy, MaxOHDist: 1.5, NNebs: -1})
	assert.True(Te, errors.Is(err, chem.ErrConfig))
}

func TestByReferenceInSync(Te *testing.T) {
	cell, oxy, hy := derivatives(Te)
	ref := &WaterDerivativeByDistance{Oxy: oxy, Hy: hy, MaxOHDist: 1.5, NNebs: 2}
	byRef := NewByReference(ref)
	calc := sparse.NewCalculator(ref.Populator(), byRef.Populator())
	require.NoError(Te, calc.CalcMatricesForGeom(cell))
	for i := 0; i < 4; i++ {
		p, err := ref.Classify(calc)
		require.NoError(Te, err)
		q, err := byRef.Classify(calc)
		require.NoError(Te, err)
		diff(Te, p, q)
	}
	assert.Equal(Te, 4, ref.ExecCount())
	assert.Equal(Te, 4, byRef.ExecCount())
	_, err := byRef.Classify(calc)
	assert.True(Te, errors.Is(err, chem.ErrConfig))
	assert.Equal(Te, 4, byRef.ExecCount())
}

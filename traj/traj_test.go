/*
 * traj_test.go, part of mdbin.
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

package traj

import (
	"encoding/json"
	"path/filepath"
	"testing"

	chem "github.com/rmera/mdbin"
	v3 "github.com/rmera/mdbin/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSteps(Te *testing.T, n int) []*Step {
	var ret []*Step
	for i := 0; i < n; i++ {
		coords, _ := v3.NewMatrix([]float64{1, 2, 3, 4, 5, float64(i)})
		c, err := chem.NewCubicCell(10, coords, []string{"O", "H"})
		require.NoError(Te, err)
		ret = append(ret, NewStep(c, i*10, float64(i)*0.5))
	}
	return ret
}

func TestStepEqual(Te *testing.T) {
	s := testSteps(Te, 2)
	a, b := s[0], *s[0]
	assert.True(Te, a.Equal(&b))
	b.Time += 1e-7
	assert.True(Te, a.Equal(&b))
	b.Time += 1e-3
	assert.False(Te, a.Equal(&b))
	b.Tol = 1e-2
	assert.True(Te, b.Equal(a), "the receiver's tolerance is used")
	a.SetScalar("energy", -3.5)
	assert.False(Te, a.Equal(s[1]))
	assert.False(Te, s[0].Equal(s[1]))
}

func TestInMemoryJSON(Te *testing.T) {
	steps := testSteps(Te, 3)
	steps[1].SetScalar("energy", -12.25)
	steps[1].SetArray("forces", []float64{0.1, 0.2})
	T := &InMemory{Steps: steps}
	for _, name := range []string{"traj.json", "traj.json.gz"} {
		path := filepath.Join(Te.TempDir(), name)
		require.NoError(Te, T.WriteJSON(path))
		back, err := ReadJSON(path)
		require.NoError(Te, err)
		assert.True(Te, T.Equal(back), name)
		assert.Equal(Te, NumericalArray, back.Steps[1].Extra["forces"].CmpType)
	}
	b, err := json.Marshal(steps[1])
	require.NoError(Te, err)
	var m map[string]json.RawMessage
	require.NoError(Te, json.Unmarshal(b, &m))
	assert.JSONEq(Te, `{"value":-12.25,"cmpType":"numerical"}`, string(m["energy"]))
}

func TestSampling(Te *testing.T) {
	steps := testSteps(Te, 7)
	e := EveryNth(steps, 3)
	require.Len(Te, e, 3)
	assert.Equal(Te, 60, e[2].Step)
	parts, err := Split(steps, 3)
	require.NoError(Te, err)
	assert.Len(Te, parts[0], 3)
	assert.Len(Te, parts[1], 2)
	assert.Len(Te, parts[2], 2)
	assert.Equal(Te, 30, parts[1][0].Step)
	_, err = Split(steps, 0)
	assert.Error(Te, err)

	r := NewEveryNthReader((&InMemory{Steps: steps}).Iter(), 3)
	all, err := ReadAll(r)
	require.NoError(Te, err)
	require.Equal(Te, 3, all.Len())
	assert.Equal(Te, 30, all.Steps[1].Step)
	_, err = r.Next()
	assert.True(Te, chem.IsLastFrame(err))
}

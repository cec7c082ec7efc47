/*
 * histo_test.go, part of mdbin.
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

package histo

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	chem "github.com/rmera/mdbin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandard(Te *testing.T) {
	S, err := NewStandardConstantWidth(0, 4, 1)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{0, 1, 2, 3, 4}, S.Edges())
	assert.Equal(Te, []float64{0.5, 1.5, 2.5, 3.5}, S.Centres())
	discarded := S.AddValues("counts", []float64{0, 1, 1.5, 3.99, 4, 5, -1, math.NaN()})
	assert.Equal(Te, 3, discarded)
	assert.Equal(Te, []float64{1, 2, 0, 2}, S.Get("counts"))
	S.AddValues("counts", []float64{2})
	assert.Equal(Te, []float64{1, 2, 1, 2}, S.Get("counts"))

	C, err := NewStandardFromCentres([]float64{1, 2, 4})
	require.NoError(Te, err)
	assert.Equal(Te, []float64{0.5, 1.5, 3, 5}, C.Edges())
	_, err = NewStandardFromCentres([]float64{1, 3, 2})
	assert.True(Te, errors.Is(err, chem.ErrConfig))
	assert.Error(Te, C.Set("x", []float64{1}))
}

func TestRightOpenBins(Te *testing.T) {
	N, err := NewNDim([]float64{0, 1, 2, 3})
	require.NoError(Te, err)
	_, err = N.AddBinValuesToCounts([][]float64{{1}, {2}, {3}, {0}}, false)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1, 1, 2}, N.Counts(), "an edge value goes to the upper bin unless it is the last edge")
	n, err := N.AddBinValuesToCounts([][]float64{{3.0001}, {math.NaN()}, {0.5}}, true)
	assert.Equal(Te, 2, n)
	assert.True(Te, errors.Is(err, chem.ErrOutsideBins))
	assert.Equal(Te, []float64{2, 1, 2}, N.Counts(), "valid values are counted even when raising")
}

func TestNDimArrays(Te *testing.T) {
	N, err := NewNDim([]float64{0, 1, 3}, []float64{10, 20, 30, 40})
	require.NoError(Te, err)
	assert.Equal(Te, []int{2, 3}, N.Shape())
	assert.Equal(Te, 5, N.FlatIndex(1, 2))
	assert.Equal(Te, []int{1, 2}, N.Unravel(5))
	e := N.BinEdgesArray()
	assert.Equal(Te, [2]float64{1, 3}, e[5][0])
	assert.Equal(Te, [2]float64{30, 40}, e[5][1])
	assert.Equal(Te, []float64{2, 35}, N.BinCentresArray()[5])
	assert.Equal(Te, []float64{10, 10, 10, 20, 20, 20}, N.BinVolumes())
	_, err = N.AddBinValuesToCounts([][]float64{{0.5, 15}, {2, 40}, {2}}, false)
	assert.True(Te, errors.Is(err, chem.ErrFrame))
	assert.Equal(Te, []float64{1, 0, 0, 0, 0, 1}, N.Counts())

	require.NoError(Te, AddPDF(N))
	assert.InDelta(Te, 1, integrateFlat(N.Vals(PDFKey), N.BinVolumes()), 1e-12)
}

func integrateFlat(pdf, vols []float64) float64 {
	var s float64
	for i, p := range pdf {
		s += p * vols[i]
	}
	return s
}

func TestDimerRDF(Te *testing.T) {
	N, err := NewNDim([]float64{0, 3, 6})
	require.NoError(Te, err)
	//two frames, O-O distances of 2 and 4, counted in both directions
	N.AddBinValuesToCounts([][]float64{{2}, {2}}, false)
	N.AddBinValuesToCounts([][]float64{{4}, {4}}, false)
	N.AddFrames(2)
	assert.Equal(Te, []float64{2, 2}, N.Counts())
	vols := SphereShellVolumes(N.Edges(0))
	assert.InDeltaSlice(Te, []float64{36 * math.Pi, 252 * math.Pi}, vols, 1e-9)
	require.NoError(Te, AddRDF(N, 2, 27000, 2, 2))
	g := N.Vals(RDFKey)
	assert.InDelta(Te, 1.0*27000/(4*36*math.Pi), g[0], 1e-9)
	assert.InDelta(Te, 1.0*27000/(4*252*math.Pi), g[1], 1e-9)
	require.NoError(Te, NormaliseByFrames(N, 2))
	assert.Equal(Te, []float64{1, 1}, N.Vals(NormCountsKey))
}

func TestPlanarAndCircularRDF(Te *testing.T) {
	N, _ := NewNDim([]float64{0, 2, 4})
	N.AddBinValuesToCounts([][]float64{{1}, {1}, {3}}, false)
	require.NoError(Te, AddPlanarRDF(N, 1, 1000, 100, 3))
	assert.InDeltaSlice(Te, []float64{2 * 1000 / (3 * 200.0), 1000 / (3 * 200.0)}, N.Vals(RDFKey), 1e-12)

	require.NoError(Te, AddCircularRDF(N, 1, 100, 1, 3))
	assert.InDeltaSlice(Te, []float64{2 * 100 / (3 * 4 * math.Pi), 100 / (3 * 12 * math.Pi)}, N.Vals(RDFKey), 1e-12)

	M, _ := NewNDim([]float64{0, 1}, []float64{0, 1})
	assert.True(Te, errors.Is(AddRDF(M, 1, 1, 1, 1), chem.ErrConfig))
}

func TestADF(Te *testing.T) {
	N, _ := NewNDim([]float64{0, 60, 120, 180})
	N.AddBinValuesToCounts([][]float64{{90}, {90}, {135}}, false)
	require.NoError(Te, AddADF(N, 180))
	assert.InDeltaSlice(Te, []float64{0, 2.0 / 3, 1.0 / 3}, N.Vals(PDFKey), 1e-12)
	assert.InDeltaSlice(Te, []float64{0, 2, 1}, N.Vals(ADFKey), 1e-12)
}

func TestIntegrals(Te *testing.T) {
	edges := []float64{0, 1, 2, 3, 4}
	//uniform density on [0,4)
	pdf := []float64{0.25, 0.25, 0.25, 0.25}
	assert.InDelta(Te, 1, Integral(edges, pdf), 1e-12)
	assert.InDelta(Te, 2, Mean(edges, pdf), 1e-12)
	assert.InDelta(Te, 1.25, Variance(edges, pdf), 1e-12)
	assert.InDelta(Te, 0, Skew(edges, pdf), 1e-12)
	g := []float64{1, 1, 1, 1}
	assert.InDelta(Te, 2*math.Pi*(0.5+1.5+2.5+3.5), CircularRDFIntegral(edges, g, 1), 1e-9)
	assert.InDelta(Te, 4*math.Pi*(0.25+2.25+6.25+12.25), SphericalRDFIntegral(edges, g, 1), 1e-9)
}

func TestSumNDim(Te *testing.T) {
	a, _ := NewNDim([]float64{0, 1, 2})
	b, _ := NewNDim([]float64{0, 1, 2})
	a.AddBinValuesToCounts([][]float64{{0.5}, {0.5}}, false)
	a.AddFrames(1)
	b.AddBinValuesToCounts([][]float64{{1.5}, {0.5}, {1.5}, {1.5}}, false)
	b.AddFrames(3)
	require.NoError(Te, NormaliseByFrames(a, 1))
	require.NoError(Te, NormaliseByFrames(b, 3))
	s, err := SumNDim(a, b)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{3, 3}, s.Counts())
	assert.Equal(Te, 4, s.NFrames())
	assert.InDeltaSlice(Te, []float64{0.75, 0.75}, s.Vals(NormCountsKey), 1e-12)

	c, _ := NewNDim([]float64{0, 1, 3})
	_, err = SumNDim(a, c)
	assert.True(Te, errors.Is(err, chem.ErrConfig))
}

func TestJSONRoundTrip(Te *testing.T) {
	a, _ := NewNDim([]float64{0, 1, 2}, []float64{-1, 1})
	a.AddBinValuesToCounts([][]float64{{0.5, 0}, {1.5, 0.5}}, false)
	a.AddFrames(2)
	a.SetVals("weird", []float64{math.NaN(), 1})
	for _, name := range []string{"bins.json", "bins.json.zst"} {
		path := filepath.Join(Te.TempDir(), name)
		require.NoError(Te, DumpJSON(path, []*NDim{a}))
		back, err := LoadJSON(path)
		require.NoError(Te, err)
		require.Len(Te, back, 1)
		opts := []cmp.Option{cmp.AllowUnexported(NDim{}), cmpopts.EquateNaNs()}
		if d := cmp.Diff(a, back[0], opts...); d != "" {
			Te.Errorf("%s: round trip mismatch (-want +got):\n%s", name, d)
		}
	}
}

/*
 * plot_test.go, part of mdbin.
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

package chemplot

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/histo"
)

var pngMagic = []byte("\x89PNG")

func isPNG(Te *testing.T, name string) {
	Te.Helper()
	b, err := os.ReadFile(name)
	require.NoError(Te, err)
	assert.True(Te, bytes.HasPrefix(b, pngMagic), "%s is not a PNG file", name)
}

func TestNDim1D(Te *testing.T) {
	N, err := histo.NewNDim([]float64{0, 1, 2, 3, 4})
	require.NoError(Te, err)
	_, err = N.AddBinValuesToCounts([][]float64{{0.5}, {1.5}, {1.7}, {3.2}}, false)
	require.NoError(Te, err)
	N.AddFrames(2)
	require.NoError(Te, histo.NormaliseByFrames(N, 2))
	name := filepath.Join(Te.TempDir(), "counts.png")
	require.NoError(Te, NDim1D(N, histo.NormCountsKey, "Counts", "r / A", "", name))
	isPNG(Te, name)

	err = NDim1D(N, histo.RDFKey, "RDF", "r / A", "g(r)", name)
	assert.True(Te, errors.Is(err, chem.ErrConfig))
	N2, err := histo.NewNDim([]float64{0, 1}, []float64{0, 1})
	require.NoError(Te, err)
	err = NDim1D(N2, histo.CountsKey, "2D", "x", "y", name)
	assert.True(Te, errors.Is(err, chem.ErrConfig))
}

func TestPlot(Te *testing.T) {
	dir := Te.TempDir()
	edges := []float64{0, 0.5, 1, 1.5, 2}
	series := []Series{
		{Name: "O-O", Edges: edges, Vals: []float64{0, 0.5, 2.1, 1.2}},
		{Name: "O-H", Edges: edges, Vals: []float64{0, math.NaN(), 1.4, 1}},
	}
	name := filepath.Join(dir, "rdf.png")
	require.NoError(Te, Plot(series, "RDF", "r / A", "g(r)", name))
	isPNG(Te, name)
	require.NoError(Te, Standard1D(edges, series[0].Vals, "RDF", "r / A", "g(r)", filepath.Join(dir, "std.png")))

	series[1].Edges = edges[:3]
	assert.True(Te, errors.Is(Plot(series, "RDF", "r", "g", name), chem.ErrConfig))
	assert.True(Te, errors.Is(Plot(nil, "RDF", "r", "g", name), chem.ErrConfig))
}

func TestColors(Te *testing.T) {
	for _, c := range []struct {
		h       float64
		r, g, b uint8
	}{
		{0, 255, 0, 0},
		{120, 0, 255, 0},
		{240, 0, 0, 255},
	} {
		r, g, b := hsv2RGB(c.h, 1, 1)
		assert.Equal(Te, [3]uint8{c.r, c.g, c.b}, [3]uint8{r, g, b}, "hue %g", c.h)
	}
	r, g, b := hsv2RGB(200, 0.5, 0)
	assert.Equal(Te, [3]uint8{127, 127, 127}, [3]uint8{r, g, b})
	seen := make(map[[3]uint8]bool)
	for k := 0; k < 5; k++ {
		r, g, b := colors(k, 5)
		seen[[3]uint8{r, g, b}] = true
	}
	assert.Len(Te, seen, 5)
}

/*
 * distrib_test.go, part of mdbin.
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

package distrib

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/binval"
	"github.com/rmera/mdbin/classify"
	"github.com/rmera/mdbin/histo"
	"github.com/rmera/mdbin/sparse"
	"github.com/rmera/mdbin/traj"
	v3 "github.com/rmera/mdbin/v3"
)

func cubic(Te *testing.T, l float64, symbols []string, xyz ...float64) *chem.UnitCell {
	coords, err := v3.NewMatrix(xyz)
	require.NoError(Te, err)
	c, err := chem.NewCubicCell(l, coords, symbols)
	require.NoError(Te, err)
	return c
}

func reader(cells ...*chem.UnitCell) traj.Reader {
	t := &traj.InMemory{}
	for i, c := range cells {
		t.Steps = append(t.Steps, traj.NewStep(c, i, float64(i)))
	}
	return t.Iter()
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

func dimer(Te *testing.T, d float64) *chem.UnitCell {
	return cubic(Te, 30, []string{"O", "O", "H", "H", "H", "H", "H", "H"},
		15, 15, 15, 15, 15, 15+d,
		15.96, 15, 15, 14.76, 15.93, 15,
		15.96, 15, 15+d, 14.76, 15.93, 15+d,
		2, 2, 2, 27, 27, 27,
	)
}

func TestDimerRDF(Te *testing.T) {
	opts := CalcRdfOptions{BinEdges: []float64{0, 3, 6}, IndicesA: []int{0, 1}, IndicesB: []int{0, 1}}
	res, err := Run(reader(dimer(Te, 2), dimer(Te, 4)), []Group{NewGroup("O-O", opts)})
	require.NoError(Te, err)
	require.Len(Te, res.Bins, 1)
	N := res.Bins[0]
	assert.Equal(Te, 2, res.NFrames)
	assert.Equal(Te, []float64{2, 2}, N.Counts())
	assert.InDeltaSlice(Te, []float64{36 * math.Pi, 252 * math.Pi}, histo.SphereShellVolumes(N.Edges(0)), 1e-9)
	assert.InDelta(Te, 27000.0, res.MeanVolume, 1e-6)
	assert.InDeltaSlice(Te, []float64{1, 1}, N.Vals(histo.NormCountsKey), 1e-12)
	want := []float64{27000 / (4 * 36 * math.Pi), 27000 / (4 * 252 * math.Pi)}
	assert.InDeltaSlice(Te, want, N.Vals(histo.RDFKey), 1e-9)

	//a fixed volume replaces the mean one
	opts.Volume = 1000
	res, err = Run(reader(dimer(Te, 2), dimer(Te, 4)), []Group{NewGroup("O-O", opts)})
	require.NoError(Te, err)
	assert.InDelta(Te, 1000/(4*36*math.Pi), res.Bins[0].Vals(histo.RDFKey)[0], 1e-9)
}

func TestMinDistAndOutside(Te *testing.T) {
	opts := CalcRdfOptions{BinEdges: []float64{0, 3}, IndicesA: []int{0}, IndicesB: []int{1}, MinDistAToB: true}
	res, err := Run(reader(dimer(Te, 2), dimer(Te, 4)), []Group{NewGroup("min", opts)})
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1}, res.Bins[0].Counts())
	assert.Equal(Te, 1, res.Discarded)
	assert.Nil(Te, res.Bins[0].Vals(histo.RDFKey))

	_, err = Run(reader(dimer(Te, 2), dimer(Te, 4)), []Group{NewGroup("min", opts)}, WithRaiseOutside())
	assert.True(Te, errors.Is(err, chem.ErrOutsideBins))

	//values beyond the bins are skipped before binning, so nothing is discarded
	opts = CalcRdfOptions{BinEdges: []float64{0, 3}, IndicesA: []int{0, 1}, IndicesB: []int{0, 1}, FilterBasedOnBins: true}
	res, err = Run(reader(dimer(Te, 2), dimer(Te, 4)), []Group{NewGroup("filtered", opts)}, WithRaiseOutside())
	require.NoError(Te, err)
	assert.Equal(Te, []float64{2}, res.Bins[0].Counts())
	assert.Zero(Te, res.Discarded)
}

func TestPlanarRDF(Te *testing.T) {
	cell := cubic(Te, 10, []string{"O", "O", "O"}, 1, 1, 9, 2, 2, 1, 3, 3, 3)
	opts := CalcPlanarRdfOptions{BinEdges: []float64{0, 2, 4}, Indices: []int{0, 1, 2}}
	res, err := Run(reader(cell), []Group{NewGroup("planar", opts)})
	require.NoError(Te, err)
	N := res.Bins[0]
	assert.Equal(Te, []float64{2, 1}, N.Counts())
	assert.InDelta(Te, 100.0, res.MeanSurfaceArea, 1e-9)
	//slabs of area 100 and thickness 2
	assert.InDeltaSlice(Te, []float64{2 * 1000 / (3 * 200.0), 1 * 1000 / (3 * 200.0)}, N.Vals(histo.RDFKey), 1e-9)
}

func TestAngularDist(Te *testing.T) {
	cell := cubic(Te, 10, []string{"O", "O", "O", "O", "O"},
		1, 1, 7, 1, 1, 9, 1, 3, 1, 1, 5, 9, 1, 3, 9)
	opts := AngleDistOptions{BinEdges: []float64{0, 60, 120, 180}, Triples: [][3]int{{0, 1, 3}, {0, 1, 4}, {0, 1, 2}}}
	res, err := Run(reader(cell), []Group{NewGroup("angles", opts)}, WithPDF())
	require.NoError(Te, err)
	N := res.Bins[0]
	assert.Equal(Te, []float64{0, 2, 1}, N.Counts())
	pdf := []float64{0, 2.0 / 3, 1.0 / 3}
	adf := []float64{0, 2, 1}
	assert.InDeltaSlice(Te, adf, N.Vals(histo.ADFKey), 1e-9)
	//WithPDF leaves the per-bin probabilities of angular groups alone
	assert.InDeltaSlice(Te, pdf, N.Vals(histo.PDFKey), 1e-9)

	//a combined angular group is not angular, and gets the density
	G := NewGroup("angles2", opts, opts)
	res, err = Run(reader(cell), []Group{G}, WithPDF())
	require.NoError(Te, err)
	N = res.Bins[0]
	assert.Nil(Te, N.Vals(histo.ADFKey))
	assert.InDelta(Te, 1.0, sum(N.Vals(histo.PDFKey))*60*60, 1e-9)
}

func TestDiscHBondCounter(Te *testing.T) {
	cell, w := fourWaters(Te)
	edges := []float64{0, 1, 2, 3}
	opts := NewDiscHBondCounterWithOxyDistFilterOptions(edges, w.NonHy, w.Hy)
	opts.MaxOO = 3
	opts.DistFilterIndices = []int{12}
	opts.DistFilterVals = [][2]float64{{0, 3}, {3, 5}}
	assert.Len(Te, opts.Edges(), 2)
	res, err := Run(reader(cell), []Group{NewGroup("hbonds", opts)})
	require.NoError(Te, err)
	N := res.Bins[0]
	assert.Equal(Te, []int{3, 3}, N.Shape())
	assert.Equal(Te, 1.0, N.Counts()[N.FlatIndex(1, 0)])
	assert.Equal(Te, 2.0, N.Counts()[N.FlatIndex(0, 1)])
	assert.Equal(Te, 1.0, N.Counts()[N.FlatIndex(0, 0)])
	assert.Equal(Te, 4.0, sum(N.Counts()))

	//without filter indices, the partners are split by their distance to the closest
	//other oxygen: all of them are 2.8 A from water A.
	opts.DistFilterIndices = nil
	res, err = Run(reader(cell), []Group{NewGroup("hbonds", opts)})
	require.NoError(Te, err)
	N = res.Bins[0]
	assert.Equal(Te, 1.0, N.Counts()[N.FlatIndex(2, 0)])
	assert.Equal(Te, 2.0, N.Counts()[N.FlatIndex(1, 0)])
	assert.Equal(Te, 1.0, N.Counts()[N.FlatIndex(0, 0)])

	//without ranges, a single dimension with all the bonds
	opts.DistFilterVals = nil
	res, err = Run(reader(cell), []Group{NewGroup("hbonds", opts)})
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1, 2, 1}, res.Bins[0].Counts())
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

func TestMultiDimGroup(Te *testing.T) {
	cell, w := fourWaters(Te)
	g := NewGroup("height-hbonds",
		PlanarDistOptions{BinEdges: []float64{0, 2.5, 5.5}, Indices: w.NonHy},
		HBondCounterOptions{BinEdges: []float64{0, 1, 2, 3}, Primaries: w, Targets: w, MaxOO: 3, Acceptor: true, Donor: true},
	)
	require.NoError(Te, g.Check())
	res, err := Run(reader(cell), []Group{g})
	require.NoError(Te, err)
	N := res.Bins[0]
	assert.Equal(Te, []int{2, 3}, N.Shape())
	for _, idx := range [][2]int{{1, 2}, {1, 1}, {0, 1}, {0, 0}} {
		assert.Equal(Te, 1.0, N.Counts()[N.FlatIndex(idx[0], idx[1])], "%v", idx)
	}
}

func TestClassifierCache(Te *testing.T) {
	cell, oxy, hy := derivatives(Te)
	opts := ClassifiedCountOptions{BinEdges: []float64{0, 1, 2, 3},
		Classifier: WaterDerivativeClassifierOptions{Oxy: oxy, Hy: hy, MaxOHDist: 1.5, NNebs: 2}}
	cache := NewCache()
	g1, err := GetterFor(opts, cache)
	require.NoError(Te, err)
	g2, err := GetterFor(opts, cache)
	require.NoError(Te, err)
	assert.Equal(Te, 1, cache.Len())
	_, ok := g2.(*classifiedCount).classifiers[0].(*classify.ByReference)
	assert.True(Te, ok)

	pop, err := PopulatorFor(opts)
	require.NoError(Te, err)
	calc := sparse.NewCalculator(pop)
	require.NoError(Te, calc.CalcMatricesForGeom(cell))
	_, err = g2.GetValsToBin(calc)
	assert.True(Te, errors.Is(err, chem.ErrConfig))
	v1, err := g1.GetValsToBin(calc)
	require.NoError(Te, err)
	v2, err := g2.GetValsToBin(calc)
	require.NoError(Te, err)
	assert.Equal(Te, [][]float64{{1}}, v1)
	assert.Equal(Te, v1, v2)

	//the same options in two groups
	res, err := Run(reader(cell, cell, cell), []Group{NewGroup("a", opts), NewGroup("b", opts)})
	require.NoError(Te, err)
	for _, N := range res.Bins {
		assert.Equal(Te, []float64{0, 3, 0}, N.Counts())
	}
}

func TestWaterTypeCounts(Te *testing.T) {
	cell, w := fourWaters(Te)
	opts := WaterTypeCountsOptions{BinEdges: []float64{0, 1, 2, 3}, Waters: w, Anchors: []int{12},
		MinDists:   []classify.Window{classify.Any, {0, 3}},
		NDonors:    []classify.Window{{1, 2}, classify.Any},
		NAcceptors: []classify.Window{classify.Any, classify.Any},
		NTotals:    []classify.Window{classify.Any, classify.Any},
		MaxOO:      3, MaxAngle: 35, MinDistType: classify.MinDistPrimary}
	res, err := Run(reader(cell), []Group{NewGroup("types", opts)})
	require.NoError(Te, err)
	N := res.Bins[0]
	assert.Equal(Te, 1.0, N.Counts()[N.FlatIndex(2, 1)])
	assert.Equal(Te, 1.0, sum(N.Counts()))

	opts.NTotals = opts.NTotals[:1]
	_, err = Run(reader(cell), []Group{NewGroup("types", opts)})
	assert.True(Te, errors.Is(err, chem.ErrConfig))
}

func TestFilteredOptions(Te *testing.T) {
	cell, w := fourWaters(Te)
	opts := FilteredOptions{
		Inner:          PlanarDistOptions{BinEdges: []float64{0, 2.5, 5.5}, Indices: w.NonHy},
		Classifier:     MinDistClassifierOptions{Candidates: w.NonHy, Anchors: []int{12}, Range: classify.Window{0, 5}},
		UseIndicesFrom: UseNonHy,
	}
	res, err := Run(reader(cell, cell), []Group{NewGroup("near", opts)})
	require.NoError(Te, err)
	assert.Equal(Te, []float64{2, 2}, res.Bins[0].Counts())

	counter := FilteredOptions{
		Inner:          HBondCounterOptions{BinEdges: []float64{0, 1, 2, 3}, Primaries: w, Targets: w, MaxOO: 3, Acceptor: true, Donor: true},
		Classifier:     opts.Classifier,
		UseIndicesFrom: UseNonHy,
	}
	res, err = Run(reader(cell), []Group{NewGroup("near", counter)})
	require.NoError(Te, err)
	assert.Equal(Te, []float64{0, 1, 1}, res.Bins[0].Counts())

	opts.UseIndicesFrom = "some"
	_, err = Run(reader(cell), []Group{NewGroup("near", opts)})
	assert.True(Te, errors.Is(err, chem.ErrFrame))

	opts.Inner = AngleDistOptions{BinEdges: []float64{0, 180}, Triples: [][3]int{{0, 1, 2}}}
	_, err = GetterFor(opts, nil)
	assert.True(Te, errors.Is(err, chem.ErrConfig))
}

// Waters 0 and 6 are near the surface atom. Water 0 lies in the xy plane, water 6
// points its bisector about 38 degrees above it.
func TestFilteredCombo(Te *testing.T) {
	cell, w := fourWaters(Te)
	pairs := make([][2]int, len(w.Hy))
	for k, h := range w.Hy {
		pairs[k] = [2]int{h[0], h[1]}
	}
	near := MinDistClassifierOptions{Candidates: w.NonHy, Anchors: []int{12}, Range: classify.Window{0, 5}}
	planar := FilteredOptions{
		Inner:          PlanarDistOptions{BinEdges: []float64{0, 2.5, 5.5}, Indices: w.NonHy},
		Classifier:     near,
		UseIndicesFrom: UseNonHy,
	}
	pitch := FilteredOptions{
		Inner:          WaterOrientationOptions{BinEdges: []float64{-90, 15, 90}, Oxy: w.NonHy, Hy: pairs, Angle: binval.Pitch},
		Classifier:     near,
		UseIndicesFrom: UseNonHy,
	}
	G := NewGroup("combo", planar, pitch)
	require.NoError(Te, G.Check())

	cache := NewCache()
	g1, err := GetterFor(planar, cache)
	require.NoError(Te, err)
	g2, err := GetterFor(pitch, cache)
	require.NoError(Te, err)
	assert.Equal(Te, 1, cache.Len())
	_, ok := g2.(*filtered).classifier.(*classify.ByReference)
	assert.True(Te, ok)
	p1, err := PopulatorFor(planar)
	require.NoError(Te, err)
	p2, err := PopulatorFor(pitch)
	require.NoError(Te, err)
	calc := sparse.NewCalculator(p1, p2)
	md := binval.NewMultiDim(g1, g2)
	inner := g1.(*filtered).classifier
	for i := 1; i <= 3; i++ {
		require.NoError(Te, calc.CalcMatricesForGeom(cell))
		vals, err := md.GetValsToBin(calc)
		require.NoError(Te, err)
		require.Len(Te, vals, 2)
		assert.InDeltaSlice(Te, []float64{5, 0}, vals[0], 1e-6)
		assert.InDelta(Te, 2.2, vals[1][0], 1e-6)
		assert.InDelta(Te, 37.76, vals[1][1], 0.1)
		assert.Equal(Te, i, inner.ExecCount())
	}

	res, err := Run(reader(cell, cell), []Group{G})
	require.NoError(Te, err)
	N := res.Bins[0]
	assert.Equal(Te, []int{2, 2}, N.Shape())
	assert.Equal(Te, 2.0, N.Counts()[N.FlatIndex(1, 0)])
	assert.Equal(Te, 2.0, N.Counts()[N.FlatIndex(0, 1)])
	assert.Equal(Te, 4.0, sum(N.Counts()))

	other := pitch
	other.Classifier = MinDistClassifierOptions{Candidates: w.NonHy, Anchors: []int{12}, Range: classify.Window{0, 3}}
	hy := pitch
	hy.UseIndicesFrom = UseHy
	for name, g := range map[string]Group{
		"other classifier": NewGroup("combo", planar, other),
		"other indices":    NewGroup("combo", planar, hy),
		"unfiltered":       NewGroup("combo", planar, pitch.Inner),
	} {
		assert.True(Te, errors.Is(g.Check(), chem.ErrConfig), name)
	}
}

type unknownOptions struct{}

func (unknownOptions) Edges() [][]float64 { return [][]float64{{0, 1}} }

func TestConfigErrors(Te *testing.T) {
	_, w := fourWaters(Te)
	edges := []float64{0, 1, 2}
	for name, groups := range map[string][]Group{
		"no groups":    nil,
		"empty group":  {NewGroup("empty")},
		"unknown type": {NewGroup("unknown", unknownOptions{})},
		"one edge":     {NewGroup("edge", PlanarDistOptions{BinEdges: []float64{1}, Indices: w.NonHy})},
		"primaries": {NewGroup("mixed",
			PlanarDistOptions{BinEdges: edges, Indices: w.NonHy},
			PlanarDistOptions{BinEdges: edges, Indices: w.NonHy[:2]})},
		"variable": {NewGroup("variable",
			CalcRdfOptions{BinEdges: edges, IndicesA: w.NonHy, IndicesB: w.NonHy},
			PlanarDistOptions{BinEdges: edges, Indices: w.NonHy})},
		"frame and primaries": {NewGroup("shapes",
			WaterDerivativeCountOptions{BinEdges: edges, Oxy: w.NonHy, Hy: w.AllHy(), MaxOHDist: 1.2, NNebs: 2},
			PlanarDistOptions{BinEdges: edges, Indices: w.NonHy})},
		"no ranges": {NewGroup("count", CountNWithinOptions{BinEdges: edges, Primaries: w.NonHy, Targets: w.NonHy})},
	} {
		cell, _ := fourWaters(Te)
		_, err := Run(reader(cell), groups)
		assert.True(Te, errors.Is(err, chem.ErrConfig), "%s: %v", name, err)
	}
	_, err := Run(reader(), []Group{NewGroup("planar", PlanarDistOptions{BinEdges: edges, Indices: w.NonHy})})
	assert.True(Te, errors.Is(err, chem.ErrConfig))
}

// uniform returns nFrames cells of side l with n atoms placed uniformly at random.
func uniform(Te *testing.T, l float64, n, nFrames int) []*traj.Step {
	r := rand.New(rand.NewSource(1))
	symbols := make([]string, n)
	for i := range symbols {
		symbols[i] = "Ar"
	}
	var steps []*traj.Step
	for f := 0; f < nFrames; f++ {
		xyz := make([]float64, 3*n)
		for i := range xyz {
			xyz[i] = r.Float64() * l
		}
		steps = append(steps, traj.NewStep(cubic(Te, l, symbols, xyz...), f, float64(f)))
	}
	return steps
}

func TestUniformRDF(Te *testing.T) {
	steps := uniform(Te, 20, 300, 10)
	all := chem.Range(300)
	edges, err := histo.ConstantWidthEdges(2, 8, 1)
	require.NoError(Te, err)
	g := NewGroup("Ar-Ar", CalcRdfOptions{BinEdges: edges, IndicesA: all, IndicesB: all})
	res, err := Run((&traj.InMemory{Steps: steps}).Iter(), []Group{g})
	require.NoError(Te, err)
	for i, v := range res.Bins[0].Vals(histo.RDFKey) {
		assert.InDelta(Te, 1.0, v, 0.1, "bin %d", i)
	}

	conc, err := RunConc(steps, []Group{g}, 3)
	require.NoError(Te, err)
	assert.Equal(Te, res.NFrames, conc.NFrames)
	assert.Equal(Te, res.Bins[0].Counts(), conc.Bins[0].Counts())
	assert.InDeltaSlice(Te, res.Bins[0].Vals(histo.RDFKey), conc.Bins[0].Vals(histo.RDFKey), 1e-9)
	assert.InDelta(Te, res.MeanVolume, conc.MeanVolume, 1e-9)

	//more workers than frames
	conc, err = RunConc(steps[:2], []Group{g}, 4)
	require.NoError(Te, err)
	assert.Equal(Te, 2, conc.NFrames)
}

func TestGroupEdgesAndResolve(Te *testing.T) {
	_, w := fourWaters(Te)
	a := NewDiscHBondCounterWithOxyDistFilterOptions([]float64{0, 1, 2}, w.NonHy[:2], w.Hy[:2])
	b := NewDiscHBondCounterWithOxyDistFilterOptions([]float64{0, 1, 2}, w.NonHy[2:], w.Hy[2:])
	b.DistFilterIndices = []int{12}
	groups := []Group{NewGroup("a", a), NewGroup("b", b)}
	resolved := resolveFilterIndices(groups)
	assert.Equal(Te, []int{0, 3, 6, 9}, resolved[0].Options[0].(DiscHBondCounterWithOxyDistFilterOptions).DistFilterIndices)
	assert.Equal(Te, []int{12}, resolved[1].Options[0].(DiscHBondCounterWithOxyDistFilterOptions).DistFilterIndices)
	assert.Nil(Te, groups[0].Options[0].(DiscHBondCounterWithOxyDistFilterOptions).DistFilterIndices)

	c := CountNWithinOptions{BinEdges: []float64{0, 1, 2}, Primaries: w.NonHy, Targets: w.NonHy, Ranges: [][2]float64{{0, 3}, {3, 6}}}
	assert.Len(Te, NewGroup("c", c, PlanarDistOptions{BinEdges: []float64{0, 5}, Indices: w.NonHy}).Edges(), 3)
}

/*
 * options.go, part of mdbin.
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

// Package distrib computes binned distributions of geometric properties over a trajectory.
//
// Each distribution is described by an Options value. Options are collected in Groups;
// the options of a group are binned together, one dimension each, into a histo.NDim.
// For every frame a single sparse.Calculator fills the matrices needed by all groups,
// the getters built from the options read them, and the values are added to the bins.
package distrib

import (
	"github.com/rmera/mdbin/binval"
	"github.com/rmera/mdbin/classify"
	"github.com/rmera/mdbin/geom"
	"github.com/rmera/mdbin/sparse"
)

// Defaults for the hydrogen-bond criteria.
const (
	DefaultMaxOO    = 3.5
	DefaultMaxAngle = 35.0
)

// Options describe one binned property. The set of options is closed: only the types
// in this package are understood by PopulatorFor and GetterFor.
type Options interface {
	// Edges returns the bin edges of each dimension the options produce.
	Edges() [][]float64
}

// CalcRdfOptions give the radial distribution function of IndicesB around IndicesA.
// With MinDistAToB, each of IndicesA contributes only its distance to the closest
// of IndicesB, and the result is a plain distribution. FilterBasedOnBins skips the
// pairs outside the bins before binning. Volume, if not zero, replaces the mean cell volume.
type CalcRdfOptions struct {
	BinEdges           []float64
	IndicesA, IndicesB []int
	Volume             float64
	MinDistAToB        bool
	FilterBasedOnBins  bool
}

func (o CalcRdfOptions) Edges() [][]float64 { return [][]float64{o.BinEdges} }

// CalcPlanarRdfOptions give the density profile of Indices as a function of their distance
// from Plane, nil meaning the ab-plane of the cell through the origin, in units of the mean
// density of the cell.
type CalcPlanarRdfOptions struct {
	BinEdges []float64
	Indices  []int
	Plane    *geom.Plane
	Volume   float64
}

func (o CalcPlanarRdfOptions) Edges() [][]float64 { return [][]float64{o.BinEdges} }

// PlanarDistOptions give the distribution of the distances of Indices from Plane.
type PlanarDistOptions struct {
	BinEdges []float64
	Indices  []int
	Plane    *geom.Plane
	Signed   bool
}

func (o PlanarDistOptions) Edges() [][]float64 { return [][]float64{o.BinEdges} }

// HozRdfOptions give the 2-D radial distribution function of IndicesB around IndicesA,
// using in-plane distances. With MinDistAToB it gives the distribution of the smallest
// in-plane distance from each of IndicesA instead. SurfaceArea, if not zero, replaces
// the mean area of the ab face of the cell.
type HozRdfOptions struct {
	BinEdges           []float64
	IndicesA, IndicesB []int
	MinDistAToB        bool
	SurfaceArea        float64
}

func (o HozRdfOptions) Edges() [][]float64 { return [][]float64{o.BinEdges} }

// AngleDistOptions give the angular distribution of the a-b-c angles of Triples.
type AngleDistOptions struct {
	BinEdges []float64
	Triples  [][3]int
}

func (o AngleDistOptions) Edges() [][]float64 { return [][]float64{o.BinEdges} }

// CountNWithinOptions give, for each of Primaries, the number of Targets at a distance in
// each of Ranges, one dimension per range, all with BinEdges.
type CountNWithinOptions struct {
	BinEdges           []float64
	Primaries, Targets []int
	Ranges             [][2]float64
	Horizontal         bool
}

func (o CountNWithinOptions) Edges() [][]float64 { return repeat(o.BinEdges, len(o.Ranges)) }

// DiscHBondCounterWithOxyDistFilterOptions give, for each water, the number of hydrogen
// bonds it forms with the other waters, one dimension per range in DistFilterVals: the
// partners are split by the distance of their oxygen to the closest of
// DistFilterIndices. Nil DistFilterIndices means the oxygens of all the waters of these
// options in all the groups of a run. Without DistFilterVals every partner counts, in a
// single dimension. Use NewDiscHBondCounterWithOxyDistFilterOptions for the defaults.
type DiscHBondCounterWithOxyDistFilterOptions struct {
	BinEdges          []float64
	OxyIndices        []int
	HyIndices         [][]int
	DistFilterIndices []int
	DistFilterVals    [][2]float64
	Acceptor, Donor   bool
	MaxOO, MaxAngle   float64
}

// NewDiscHBondCounterWithOxyDistFilterOptions returns options counting both accepted and
// donated bonds, with the default cutoffs.
func NewDiscHBondCounterWithOxyDistFilterOptions(edges []float64, oxy []int, hy [][]int) DiscHBondCounterWithOxyDistFilterOptions {
	return DiscHBondCounterWithOxyDistFilterOptions{BinEdges: edges, OxyIndices: oxy, HyIndices: hy,
		Acceptor: true, Donor: true, MaxOO: DefaultMaxOO, MaxAngle: DefaultMaxAngle}
}

func (o DiscHBondCounterWithOxyDistFilterOptions) Edges() [][]float64 {
	return repeat(o.BinEdges, o.dims())
}

func (o DiscHBondCounterWithOxyDistFilterOptions) dims() int {
	if len(o.DistFilterVals) == 0 {
		return 1
	}
	return len(o.DistFilterVals)
}

func (o DiscHBondCounterWithOxyDistFilterOptions) waters() sparse.Molecules {
	return sparse.Molecules{NonHy: o.OxyIndices, Hy: o.HyIndices}
}

// HBondCounterOptions give, for each of Primaries, the number of hydrogen bonds with Targets.
type HBondCounterOptions struct {
	BinEdges           []float64
	Primaries, Targets sparse.Molecules
	MaxOO, MaxAngle    float64
	Acceptor, Donor    bool
}

func (o HBondCounterOptions) Edges() [][]float64 { return [][]float64{o.BinEdges} }

func (o HBondCounterOptions) criteria() binval.HBondCriteria {
	return criteria(o.MaxOO, o.MaxAngle, o.Acceptor, o.Donor)
}

// HBondValuesOptions give the distribution of the property Kind of the hydrogen bonds
// between Primaries and Targets.
type HBondValuesOptions struct {
	HBondCounterOptions
	Kind binval.HBondValueKind
}

// WaterOrientationOptions give the distribution of one Tait-Bryan angle of the waters
// with oxygens Oxy and hydrogens Hy.
type WaterOrientationOptions struct {
	BinEdges []float64
	Oxy      []int
	Hy       [][2]int
	Angle    binval.WaterAngleKind
}

func (o WaterOrientationOptions) Edges() [][]float64 { return [][]float64{o.BinEdges} }

// WaterDerivativeCountOptions give the distribution, over frames, of the number of
// oxygens with exactly NNebs hydrogens within MaxOHDist.
type WaterDerivativeCountOptions struct {
	BinEdges  []float64
	Oxy, Hy   []int
	MaxOHDist float64
	NNebs     int
}

func (o WaterDerivativeCountOptions) Edges() [][]float64 { return [][]float64{o.BinEdges} }

// DiatomDistOptions give the distribution of the distances within each pair.
type DiatomDistOptions struct {
	BinEdges []float64
	Pairs    [][2]int
}

func (o DiatomDistOptions) Edges() [][]float64 { return [][]float64{o.BinEdges} }

// DiatomHozDistOptions give the distribution of the in-plane distances within each pair.
type DiatomHozDistOptions struct {
	BinEdges []float64
	Pairs    [][2]int
}

func (o DiatomHozDistOptions) Edges() [][]float64 { return [][]float64{o.BinEdges} }

// DiatomAngleOptions give the distribution of the angles between the i->j direction of
// each pair and Vector.
type DiatomAngleOptions struct {
	BinEdges []float64
	Pairs    [][2]int
	Vector   [3]float64
}

func (o DiatomAngleOptions) Edges() [][]float64 { return [][]float64{o.BinEdges} }

// ClassifiedCountOptions give the distribution, over frames, of the number of indices
// selected by Classifier.
type ClassifiedCountOptions struct {
	BinEdges   []float64
	Classifier ClassifierOptions
}

func (o ClassifiedCountOptions) Edges() [][]float64 { return [][]float64{o.BinEdges} }

// WaterTypeCountsOptions count, each frame, the waters of each type. Type k is given by
// the k-th window of each of the range sequences, which must all have the same length.
// Each type is one dimension of the bins.
type WaterTypeCountsOptions struct {
	BinEdges                               []float64
	Waters                                 sparse.Molecules
	Anchors                                []int
	MinDists, NDonors, NAcceptors, NTotals []classify.Window
	MaxOO, MaxAngle                        float64
	MinDistType                            string
}

func (o WaterTypeCountsOptions) Edges() [][]float64 { return repeat(o.BinEdges, len(o.MinDists)) }

// Ways of taking the indices of a classification for the filtered options.
const (
	UseNonHy = "nonHy"
	UseHy    = "hy"
	UseAll   = "all"
)

// FilteredOptions restrict, each frame, the primary indices of Inner to those selected by
// Classifier: the heavy atoms, the hydrogens or both, according to UseIndicesFrom. The
// indices of Inner must contain every index the classifier can select.
type FilteredOptions struct {
	Inner          Options
	Classifier     ClassifierOptions
	UseIndicesFrom string
}

func (o FilteredOptions) Edges() [][]float64 { return o.Inner.Edges() }

// ClassifierOptions describe a classifier. The set is closed, as for Options. Classifier
// options are compared by value: within a run, options equal to others seen before give
// a classifier that re-uses the earlier result.
type ClassifierOptions interface {
	classifier()
}

// MinDistClassifierOptions select the Candidates by their distance to the closest of Anchors.
type MinDistClassifierOptions struct {
	Candidates, Anchors []int
	Range               classify.Window
	MinDistVal          float64
}

// WaterHBondClassifierOptions select waters by distance to Anchors and numbers of hydrogen bonds.
type WaterHBondClassifierOptions struct {
	Waters                             sparse.Molecules
	Anchors                            []int
	MinDist, NDonor, NAcceptor, NTotal classify.Window
	MaxOO, MaxAngle                    float64
	MinDistType                        string
}

// WaterAdsSiteClassifierOptions add to the water criteria a window on the in-plane
// distance between the adsorption site of each water and the closest other site.
type WaterAdsSiteClassifierOptions struct {
	WaterHBondClassifierOptions
	AdsSites       []int
	AdsSiteHozDist classify.Window
}

// HBondsToGroupClassifierOptions select the Candidates by their hydrogen bonds with Group.
type HBondsToGroupClassifierOptions struct {
	Candidates, Group sparse.Molecules
	MaxOO, MaxAngle   float64
	Acceptor, Donor   bool
	NHBonds           classify.Window
}

// DynamicGroupClassifierOptions select the Candidates by their hydrogen bonds with the
// molecules, out of Pool, selected each frame by GroupA.
type DynamicGroupClassifierOptions struct {
	GroupA            ClassifierOptions
	Pool, Candidates  sparse.Molecules
	MaxOO, MaxAngle   float64
	Acceptor, Donor   bool
	NHBonds           classify.Window
	MutuallyExclusive bool
}

// WaterDerivativeClassifierOptions select the oxygens with NNebs hydrogens within MaxOHDist.
type WaterDerivativeClassifierOptions struct {
	Oxy, Hy   []int
	MaxOHDist float64
	NNebs     int
}

// NeighbourCountClassifierOptions select the Candidates by their number of Neighbours within NebRange.
type NeighbourCountClassifierOptions struct {
	Candidates, Neighbours []int
	NebRange, CountRange   classify.Window
}

func (MinDistClassifierOptions) classifier()         {}
func (WaterHBondClassifierOptions) classifier()      {}
func (WaterAdsSiteClassifierOptions) classifier()    {}
func (HBondsToGroupClassifierOptions) classifier()   {}
func (DynamicGroupClassifierOptions) classifier()    {}
func (WaterDerivativeClassifierOptions) classifier() {}
func (NeighbourCountClassifierOptions) classifier()  {}

func repeat(edges []float64, n int) [][]float64 {
	ret := make([][]float64, n)
	for i := range ret {
		ret[i] = edges
	}
	return ret
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

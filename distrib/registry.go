/*
 * registry.go, part of mdbin.
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
	"fmt"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/binval"
	"github.com/rmera/mdbin/classify"
	"github.com/rmera/mdbin/sparse"
)

// PopulatorFor returns the populator that fills the matrices the getter of opts reads.
func PopulatorFor(opts Options) (sparse.Populator, error) {
	switch o := opts.(type) {
	case CalcRdfOptions:
		return &sparse.DistMatrix{From: o.IndicesA, To: o.IndicesB}, nil
	case CalcPlanarRdfOptions:
		return &sparse.PlanarDistMatrix{Indices: o.Indices, Plane: o.Plane}, nil
	case PlanarDistOptions:
		return &sparse.PlanarDistMatrix{Indices: o.Indices, Plane: o.Plane}, nil
	case HozRdfOptions:
		return &sparse.HozDistMatrix{From: o.IndicesA, To: o.IndicesB}, nil
	case AngleDistOptions:
		return &sparse.AngleMatrix{Triples: o.Triples}, nil
	case CountNWithinOptions:
		if o.Horizontal {
			return &sparse.HozDistMatrix{From: o.Primaries, To: o.Targets}, nil
		}
		return &sparse.DistMatrix{From: o.Primaries, To: o.Targets}, nil
	case DiscHBondCounterWithOxyDistFilterOptions:
		return &sparse.HBondsWithDistFilter{Waters: o.waters(), FilterIndices: o.DistFilterIndices,
			MaxOO: orDefault(o.MaxOO, DefaultMaxOO)}, nil
	case HBondCounterOptions:
		return &sparse.HBondsBetweenGroups{A: o.Primaries, B: o.Targets, MaxOO: o.criteria().MaxOO}, nil
	case HBondValuesOptions:
		return PopulatorFor(o.HBondCounterOptions)
	case WaterOrientationOptions:
		return &sparse.WaterOrientation{Oxy: o.Oxy, Hy: o.Hy}, nil
	case WaterDerivativeCountOptions:
		return &sparse.DistMatrix{From: o.Hy, To: o.Oxy}, nil
	case DiatomDistOptions:
		return diatomPopulator(o.Pairs, false), nil
	case DiatomHozDistOptions:
		return diatomPopulator(o.Pairs, true), nil
	case DiatomAngleOptions:
		return &sparse.DiatomAngleWithVector{Pairs: o.Pairs, Vector: o.Vector}, nil
	case ClassifiedCountOptions:
		c, err := ClassifierFor(o.Classifier, nil)
		if err != nil {
			return nil, err
		}
		return c.Populator(), nil
	case WaterTypeCountsOptions:
		cs, err := o.classifiers()
		if err != nil {
			return nil, err
		}
		return PopulatorFor(ClassifiedCountOptions{Classifier: cs[0]})
	case FilteredOptions:
		if o.Inner == nil {
			return nil, chem.NewConfigError("distrib.PopulatorFor", "filtered options without inner options")
		}
		c, err := ClassifierFor(o.Classifier, nil)
		if err != nil {
			return nil, err
		}
		inner, err := PopulatorFor(o.Inner)
		if err != nil {
			return nil, chem.ErrDecorate(err, "distrib.PopulatorFor")
		}
		return sparse.NewComposite(c.Populator(), inner), nil
	default:
		return nil, chem.NewConfigError("distrib.PopulatorFor", "unknown options type %T", opts)
	}
}

// diatomPopulator fills the distances within each pair alone, not between all of them.
func diatomPopulator(pairs [][2]int, hoz bool) sparse.Populator {
	comp := sparse.NewComposite()
	for _, p := range pairs {
		from, to := []int{p[0]}, []int{p[1]}
		if hoz {
			comp.Add(&sparse.HozDistMatrix{From: from, To: to})
		} else {
			comp.Add(&sparse.DistMatrix{From: from, To: to})
		}
	}
	return comp
}

// GetterFor returns the getter of the values to bin for opts. Classifiers needed by the
// options are obtained through cache, which may be nil.
func GetterFor(opts Options, cache *Cache) (binval.Getter, error) {
	switch o := opts.(type) {
	case CalcRdfOptions:
		if o.MinDistAToB {
			return &binval.MinDists{From: o.IndicesA, To: o.IndicesB}, nil
		}
		g := &binval.RadialDists{A: o.IndicesA, B: o.IndicesB}
		if o.FilterBasedOnBins && len(o.BinEdges) > 1 {
			g.MinVal, g.MaxVal = o.BinEdges[0], o.BinEdges[len(o.BinEdges)-1]
		}
		return g, nil
	case CalcPlanarRdfOptions:
		return &binval.PlanarDists{Indices: o.Indices, Plane: o.Plane}, nil
	case PlanarDistOptions:
		return &binval.PlanarDists{Indices: o.Indices, Plane: o.Plane, Signed: o.Signed}, nil
	case HozRdfOptions:
		if o.MinDistAToB {
			return binval.NewMinHozDists(o.IndicesA, o.IndicesB, 0), nil
		}
		return binval.NewHozDists(o.IndicesA, o.IndicesB), nil
	case AngleDistOptions:
		return &binval.Angles{Triples: o.Triples}, nil
	case CountNWithinOptions:
		if len(o.Ranges) == 0 {
			return nil, chem.NewConfigError("distrib.GetterFor", "no distance ranges to count within")
		}
		dists := &binval.DistsFromTo{From: o.Primaries, To: o.Targets}
		if o.Horizontal {
			dists = binval.NewHozDistsFromTo(o.Primaries, o.Targets)
		}
		return &binval.CountNWithinDistances{Dists: dists, Ranges: o.Ranges}, nil
	case DiscHBondCounterWithOxyDistFilterOptions:
		if len(o.OxyIndices) != len(o.HyIndices) {
			return nil, chem.NewConfigError("distrib.GetterFor", "%d oxygens but %d hydrogen lists", len(o.OxyIndices), len(o.HyIndices))
		}
		g := &binval.HBondCountsWithDistFilter{Waters: o.waters(), HBondCriteria: criteria(o.MaxOO, o.MaxAngle, o.Acceptor, o.Donor)}
		if len(o.DistFilterVals) > 0 {
			if len(o.DistFilterIndices) == 0 {
				return nil, chem.NewConfigError("distrib.GetterFor", "distance filter ranges %v without filter indices", o.DistFilterVals)
			}
			g.FilterIndices, g.FilterRanges = o.DistFilterIndices, o.DistFilterVals
		}
		return g, nil
	case HBondCounterOptions:
		return &binval.HBondCounts{Primaries: o.Primaries, Targets: o.Targets, HBondCriteria: o.criteria()}, nil
	case HBondValuesOptions:
		return &binval.HBondValues{Primaries: o.Primaries, Targets: o.Targets, HBondCriteria: o.criteria(), Kind: o.Kind}, nil
	case WaterOrientationOptions:
		return &binval.WaterAngles{Oxy: o.Oxy, Kind: o.Angle}, nil
	case WaterDerivativeCountOptions:
		if o.NNebs < 0 {
			return nil, chem.NewConfigError("distrib.GetterFor", "negative number of hydrogens %d", o.NNebs)
		}
		return &binval.WaterDerivativeCount{Oxy: o.Oxy, Hy: o.Hy, MaxOHDist: o.MaxOHDist, NNebs: o.NNebs}, nil
	case DiatomDistOptions:
		return &binval.DiatomDists{Pairs: o.Pairs}, nil
	case DiatomHozDistOptions:
		return binval.NewDiatomHozDists(o.Pairs), nil
	case DiatomAngleOptions:
		return &binval.DiatomAngleWithVector{Pairs: o.Pairs, Vector: o.Vector}, nil
	case ClassifiedCountOptions:
		c, err := ClassifierFor(o.Classifier, cache)
		if err != nil {
			return nil, err
		}
		return &classifiedCount{classifiers: []classify.Classifier{c}}, nil
	case WaterTypeCountsOptions:
		copts, err := o.classifiers()
		if err != nil {
			return nil, err
		}
		g := &classifiedCount{}
		for _, co := range copts {
			c, err := ClassifierFor(co, cache)
			if err != nil {
				return nil, err
			}
			g.classifiers = append(g.classifiers, c)
		}
		return g, nil
	case FilteredOptions:
		if o.Inner == nil {
			return nil, chem.NewConfigError("distrib.GetterFor", "filtered options without inner options")
		}
		if _, err := withPrimaries(o.Inner, nil); err != nil {
			return nil, err
		}
		c, err := ClassifierFor(o.Classifier, cache)
		if err != nil {
			return nil, err
		}
		return &filtered{inner: o.Inner, classifier: c, use: o.UseIndicesFrom}, nil
	default:
		return nil, chem.NewConfigError("distrib.GetterFor", "unknown options type %T", opts)
	}
}

// classifiers returns the options of the classifier for each type of water.
func (o WaterTypeCountsOptions) classifiers() ([]ClassifierOptions, error) {
	n := len(o.MinDists)
	if n == 0 || len(o.NDonors) != n || len(o.NAcceptors) != n || len(o.NTotals) != n {
		return nil, chem.NewConfigError("distrib.WaterTypeCountsOptions", "range sequences of lengths %d, %d, %d and %d, they must be equal and not empty",
			len(o.MinDists), len(o.NDonors), len(o.NAcceptors), len(o.NTotals))
	}
	ret := make([]ClassifierOptions, n)
	for k := range ret {
		ret[k] = WaterHBondClassifierOptions{Waters: o.Waters, Anchors: o.Anchors, MinDist: o.MinDists[k],
			NDonor: o.NDonors[k], NAcceptor: o.NAcceptors[k], NTotal: o.NTotals[k],
			MaxOO: o.MaxOO, MaxAngle: o.MaxAngle, MinDistType: o.MinDistType}
	}
	return ret, nil
}

// Cache remembers the classifiers built during the setup of a run, so options equal to
// earlier ones give a classify.ByReference instead of a second, identical classifier.
// Getters must then be run in the order they were built.
type Cache struct {
	seen map[string]classify.Classifier
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{seen: make(map[string]classify.Classifier)}
}

// Len returns the number of distinct classifiers in the cache.
func (C *Cache) Len() int { return len(C.seen) }

func cacheKey(opts ClassifierOptions) string { return fmt.Sprintf("%#v", opts) }

// ClassifierFor builds the classifier described by opts. If cache is not nil and it
// holds a classifier built from equal options, a ByReference on it is returned instead.
func ClassifierFor(opts ClassifierOptions, cache *Cache) (classify.Classifier, error) {
	key := cacheKey(opts)
	if cache != nil {
		if c, ok := cache.seen[key]; ok {
			return classify.NewByReference(c), nil
		}
	}
	c, err := newClassifier(opts, cache)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.seen[key] = c
	}
	return c, nil
}

func newClassifier(opts ClassifierOptions, cache *Cache) (classify.Classifier, error) {
	switch o := opts.(type) {
	case MinDistClassifierOptions:
		return &classify.AtomsWithinMinDistRange{Candidates: o.Candidates, Anchors: o.Anchors, Range: o.Range, MinDistVal: o.MinDistVal}, nil
	case WaterHBondClassifierOptions:
		return o.build(), nil
	case WaterAdsSiteClassifierOptions:
		return &classify.WaterByMinDistHBondsAndAdsSiteHozDist{WaterByMinDistAndHBonds: *o.WaterHBondClassifierOptions.build(),
			AdsSites: o.AdsSites, AdsSiteHozDist: o.AdsSiteHozDist}, nil
	case HBondsToGroupClassifierOptions:
		return &classify.ByHBondsToGroup{Candidates: o.Candidates, Group: o.Group, NHBonds: o.NHBonds,
			HBondCriteria: criteria(o.MaxOO, o.MaxAngle, o.Acceptor, o.Donor)}, nil
	case DynamicGroupClassifierOptions:
		if o.GroupA == nil {
			return nil, chem.NewConfigError("distrib.ClassifierFor", "dynamic group classifier without group A")
		}
		a, err := ClassifierFor(o.GroupA, cache)
		if err != nil {
			return nil, chem.ErrDecorate(err, "distrib.ClassifierFor")
		}
		return &classify.ByHBondsToDynamicGroup{GroupA: a, Pool: o.Pool, Candidates: o.Candidates, NHBonds: o.NHBonds,
			HBondCriteria: criteria(o.MaxOO, o.MaxAngle, o.Acceptor, o.Donor), MutuallyExclusive: o.MutuallyExclusive}, nil
	case WaterDerivativeClassifierOptions:
		if o.NNebs < 0 {
			return nil, chem.NewConfigError("distrib.ClassifierFor", "negative number of hydrogens %d", o.NNebs)
		}
		return &classify.WaterDerivativeByDistance{Oxy: o.Oxy, Hy: o.Hy, MaxOHDist: o.MaxOHDist, NNebs: o.NNebs}, nil
	case NeighbourCountClassifierOptions:
		return &classify.AtomsByNeighbourCount{Candidates: o.Candidates, Neighbours: o.Neighbours, NebRange: o.NebRange, CountRange: o.CountRange}, nil
	default:
		return nil, chem.NewConfigError("distrib.ClassifierFor", "unknown classifier options type %T", opts)
	}
}

func (o WaterHBondClassifierOptions) build() *classify.WaterByMinDistAndHBonds {
	t := o.MinDistType
	if t == "" {
		t = classify.MinDistPrimary
	}
	return &classify.WaterByMinDistAndHBonds{Waters: o.Waters, Anchors: o.Anchors, MinDist: o.MinDist, NDonor: o.NDonor,
		NAcceptor: o.NAcceptor, NTotal: o.NTotal, MaxOO: orDefault(o.MaxOO, DefaultMaxOO),
		MaxAngle: orDefault(o.MaxAngle, DefaultMaxAngle), MinDistType: t}
}

func criteria(maxOO, maxAngle float64, acceptor, donor bool) binval.HBondCriteria {
	return binval.HBondCriteria{MaxOO: orDefault(maxOO, DefaultMaxOO), MaxAngle: orDefault(maxAngle, DefaultMaxAngle),
		Acceptor: acceptor, Donor: donor}
}

// classifiedCount emits, once per frame, the number of indices selected by each of
// its classifiers, one dimension each.
type classifiedCount struct {
	classifiers []classify.Classifier
}

func (G *classifiedCount) Dims() int { return len(G.classifiers) }

func (G *classifiedCount) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	ret := make([]float64, len(G.classifiers))
	for k, c := range G.classifiers {
		p, err := c.Classify(calc)
		if err != nil {
			return nil, chem.ErrDecorate(err, "distrib.classifiedCount")
		}
		ret[k] = float64(len(p.Indices))
	}
	return [][]float64{ret}, nil
}

// filtered runs the getter of inner on the indices its classifier selects each frame.
// When inner has primaries, only those selected are used, in the order of inner, so
// filtered getters with the same inner primaries and classifier can be zipped.
type filtered struct {
	inner      Options
	classifier classify.Classifier
	use        string
}

func (G *filtered) Dims() int { return len(G.inner.Edges()) }

func (G *filtered) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	caller := "distrib.filtered"
	p, err := G.classifier.Classify(calc)
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	var idx []int
	switch G.use {
	case UseNonHy:
		idx = p.Indices
	case UseHy:
		idx = p.AllHy()
	case UseAll:
		idx = append(append([]int{}, p.Indices...), p.AllHy()...)
	default:
		return nil, chem.NewFrameError(caller, "unknown use-indices-from keyword %q", G.use)
	}
	if _, prims := primaries(G.inner); len(prims) > 0 {
		idx = restrict(prims, idx)
	}
	o, err := withPrimaries(G.inner, idx)
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	g, err := GetterFor(o, nil)
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	vals, err := g.GetValsToBin(calc)
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	return vals, nil
}

// restrict returns the elements of prims that are in idx, in the order of prims.
func restrict(prims, idx []int) []int {
	ret := []int{}
	for _, i := range prims {
		if chem.IsIn(idx, i) {
			ret = append(ret, i)
		}
	}
	return ret
}

// withPrimaries returns a copy of opts with its primary indices replaced by idx. Options
// with molecules or waters as primaries keep those whose heavy atom is in idx.
func withPrimaries(opts Options, idx []int) (Options, error) {
	switch o := opts.(type) {
	case CalcRdfOptions:
		o.IndicesA = idx
		return o, nil
	case CalcPlanarRdfOptions:
		o.Indices = idx
		return o, nil
	case PlanarDistOptions:
		o.Indices = idx
		return o, nil
	case HozRdfOptions:
		o.IndicesA = idx
		return o, nil
	case CountNWithinOptions:
		o.Primaries = idx
		return o, nil
	case HBondCounterOptions:
		o.Primaries = keepMolecules(o.Primaries, idx)
		return o, nil
	case HBondValuesOptions:
		o.Primaries = keepMolecules(o.Primaries, idx)
		return o, nil
	case WaterOrientationOptions:
		var oxy []int
		var pairs [][2]int
		for k, i := range o.Oxy {
			if chem.IsIn(idx, i) {
				oxy = append(oxy, i)
				pairs = append(pairs, o.Hy[k])
			}
		}
		o.Oxy, o.Hy = oxy, pairs
		return o, nil
	default:
		return nil, chem.NewConfigError("distrib.FilteredOptions", "options of type %T cannot be filtered", opts)
	}
}

func keepMolecules(m sparse.Molecules, idx []int) sparse.Molecules {
	ret := sparse.Molecules{NonHy: []int{}, Hy: [][]int{}}
	for k, i := range m.NonHy {
		if chem.IsIn(idx, i) {
			ret.NonHy = append(ret.NonHy, i)
			ret.Hy = append(ret.Hy, m.Hy[k])
		}
	}
	return ret
}

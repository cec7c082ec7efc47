/*
 * build.go, part of mdbin.
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

package config

import (
	"go.uber.org/zap"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/binval"
	"github.com/rmera/mdbin/classify"
	"github.com/rmera/mdbin/distrib"
	"github.com/rmera/mdbin/geom"
	"github.com/rmera/mdbin/histo"
	"github.com/rmera/mdbin/internal/logging"
	"github.com/rmera/mdbin/sparse"
)

// RunOptions returns the driver options that cfg asks for.
func (c *Config) RunOptions() []distrib.RunOption {
	var ret []distrib.RunOption
	if c.PDF {
		ret = append(ret, distrib.WithPDF())
	}
	if c.RaiseOutside {
		ret = append(ret, distrib.WithRaiseOutside())
	}
	return ret
}

// system is what the builder knows about the first frame.
type system struct {
	cell   *chem.UnitCell
	waters sparse.Molecules
	oxy    []int
	hy     []int
	maxOH  float64
}

// Build turns the groups of cfg into distrib groups. Species selectors and the water
// molecules are resolved against first, which is assumed to have the same atoms, in
// the same order, as all the other frames.
func Build(cfg *Config, first *chem.UnitCell) ([]distrib.Group, error) {
	caller := "config.Build"
	if first == nil {
		return nil, chem.NewConfigError(caller, "no frame to resolve the selections against")
	}
	s := &system{cell: first, maxOH: cfg.Waters.MaxOH}
	s.oxy = first.IndicesOf(cfg.Waters.Oxygen)
	s.hy = first.IndicesOf(cfg.Waters.Hydrogen)
	s.waters = FindWaters(first, s.oxy, s.hy, cfg.Waters.MaxOH, geom.MinImage{})
	logging.L().Debug("config: found waters", zap.Int("oxygens", len(s.oxy)), zap.Int("hydrogens", len(s.hy)))

	groups := make([]distrib.Group, 0, len(cfg.Groups))
	for i, gc := range cfg.Groups {
		opts := make([]distrib.Options, 0, len(gc.Analyses))
		for j, a := range gc.Analyses {
			o, err := s.options(a)
			if err != nil {
				return nil, chem.NewConfigError(caller, "group %d (%s), analysis %d (%s): %v", i, gc.Name, j, a.Kind, err)
			}
			opts = append(opts, o)
		}
		g := distrib.NewGroup(gc.Name, opts...)
		if err := g.Check(); err != nil {
			return nil, chem.ErrDecorate(err, caller)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// FindWaters groups each of hy with the closest of oxy within maxOH. Every oxygen gives
// a molecule, with or without hydrogens; hydrogens with no oxygen close enough are left out.
func FindWaters(cell *chem.UnitCell, oxy, hy []int, maxOH float64, prims geom.Primitives) sparse.Molecules {
	ret := sparse.Molecules{NonHy: append([]int(nil), oxy...), Hy: make([][]int, len(oxy))}
	for _, h := range hy {
		best, bestD := -1, maxOH
		for k, o := range oxy {
			if d := prims.Distance(cell, o, h); d <= bestD {
				best, bestD = k, d
			}
		}
		if best >= 0 {
			ret.Hy[best] = append(ret.Hy[best], h)
		}
	}
	return ret
}

func (s *system) indices(sel Selection, what string) ([]int, error) {
	caller := "config.system.indices"
	ret := sel.Indices
	if len(ret) == 0 {
		ret = s.cell.IndicesOf(sel.Species...)
	}
	if len(ret) == 0 {
		return nil, chem.NewConfigError(caller, "selection %s (%v) matches no atoms", what, sel.Species)
	}
	for _, i := range ret {
		if i < 0 || i >= s.cell.NAtoms() {
			return nil, chem.NewConfigError(caller, "selection %s: index %d out of range for %d atoms", what, i, s.cell.NAtoms())
		}
	}
	return ret, nil
}

// molecules returns the waters whose oxygens are selected by sel, all of them for an empty sel.
func (s *system) molecules(sel Selection, what string) (sparse.Molecules, error) {
	if sel.empty() {
		if s.waters.Len() == 0 {
			return sparse.Molecules{}, chem.NewConfigError("config.system.molecules", "selection %s: no waters in the system", what)
		}
		return s.waters, nil
	}
	idx, err := s.indices(sel, what)
	if err != nil {
		return sparse.Molecules{}, err
	}
	var ret sparse.Molecules
	for k, o := range s.waters.NonHy {
		if chem.IsIn(idx, o) {
			ret.NonHy = append(ret.NonHy, o)
			ret.Hy = append(ret.Hy, s.waters.Hy[k])
		}
	}
	if ret.Len() == 0 {
		return ret, chem.NewConfigError("config.system.molecules", "selection %s selects no water oxygens", what)
	}
	return ret, nil
}

// orAll returns the atoms selected by sel, def for an empty sel.
func (s *system) orAll(sel Selection, def []int, what string) ([]int, error) {
	if sel.empty() {
		if len(def) == 0 {
			return nil, chem.NewConfigError("config.system.orAll", "selection %s: no atoms", what)
		}
		return def, nil
	}
	return s.indices(sel, what)
}

func (b Bins) edges() ([]float64, error) {
	if len(b.Edges) == 0 {
		return histo.ConstantWidthEdges(b.Min, b.Max, b.Width)
	}
	if len(b.Edges) < 2 {
		return nil, chem.NewConfigError("config.Bins.edges", "need at least 2 edges, got %v", b.Edges)
	}
	for i := 1; i < len(b.Edges); i++ {
		if !(b.Edges[i] > b.Edges[i-1]) {
			return nil, chem.NewConfigError("config.Bins.edges", "edges must be strictly ascending, got %v", b.Edges)
		}
	}
	return b.Edges, nil
}

func window(w []float64, what string) (classify.Window, error) {
	switch len(w) {
	case 0:
		return classify.Any, nil
	case 2:
		return classify.Window{w[0], w[1]}, nil
	}
	return classify.Window{}, chem.NewConfigError("config.window", "%s must be a [min, max) pair, got %v", what, w)
}

func plane(p []float64) *geom.Plane {
	if len(p) == 0 {
		return nil
	}
	return geom.NewPlane(p[0], p[1], p[2], p[3])
}

func orTrue(b *bool) bool { return b == nil || *b }

func (s *system) pairs(in [][]int) ([][2]int, error) {
	ret := make([][2]int, 0, len(in))
	for _, p := range in {
		if len(p) != 2 {
			return nil, chem.NewConfigError("config.system.pairs", "pairs must have 2 indices, got %v", p)
		}
		if err := s.inRange(p); err != nil {
			return nil, err
		}
		ret = append(ret, [2]int{p[0], p[1]})
	}
	if len(ret) == 0 {
		return nil, chem.NewConfigError("config.system.pairs", "no pairs given")
	}
	return ret, nil
}

func (s *system) triples(in [][]int) ([][3]int, error) {
	ret := make([][3]int, 0, len(in))
	for _, t := range in {
		if len(t) != 3 {
			return nil, chem.NewConfigError("config.system.triples", "triples must have 3 indices, got %v", t)
		}
		if err := s.inRange(t); err != nil {
			return nil, err
		}
		ret = append(ret, [3]int{t[0], t[1], t[2]})
	}
	if len(ret) == 0 {
		return nil, chem.NewConfigError("config.system.triples", "no triples given")
	}
	return ret, nil
}

func (s *system) inRange(idx []int) error {
	for _, i := range idx {
		if i < 0 || i >= s.cell.NAtoms() {
			return chem.NewConfigError("config.system.inRange", "index %d out of range for %d atoms", i, s.cell.NAtoms())
		}
	}
	return nil
}

func ranges(in [][]float64) [][2]float64 {
	ret := make([][2]float64, len(in))
	for i, r := range in {
		ret[i] = [2]float64{r[0], r[1]}
	}
	return ret
}

func hbondValueKind(v string) (binval.HBondValueKind, error) {
	switch v {
	case "", "oo":
		return binval.OODist, nil
	case "oh":
		return binval.OHDist, nil
	case "angle":
		return binval.Angle, nil
	}
	return 0, chem.NewConfigError("config.hbondValueKind", "unknown hydrogen bond value %q; expected oo|oh|angle", v)
}

func waterAngleKind(v string) (binval.WaterAngleKind, error) {
	for _, k := range []binval.WaterAngleKind{binval.Roll, binval.Pitch, binval.Azimuth} {
		if k.String() == v {
			return k, nil
		}
	}
	return 0, chem.NewConfigError("config.waterAngleKind", "unknown water angle %q; expected roll|pitch|azimuth", v)
}

// options builds the distrib options for a, wrapped in a filter if a has one.
func (s *system) options(a AnalysisConfig) (distrib.Options, error) {
	o, err := s.inner(a)
	if err != nil || a.Filter == nil {
		return o, err
	}
	c, err := s.classifier(*a.Filter)
	if err != nil {
		return nil, err
	}
	use := a.Use
	if use == "" {
		use = distrib.UseNonHy
	}
	return distrib.FilteredOptions{Inner: o, Classifier: c, UseIndicesFrom: use}, nil
}

func (s *system) inner(a AnalysisConfig) (distrib.Options, error) {
	edges, err := a.edges()
	if err != nil {
		return nil, err
	}
	switch a.Kind {
	case KindRdf, KindHozRdf, KindCountNWithin:
		A, err := s.indices(a.A, "a")
		if err != nil {
			return nil, err
		}
		B, err := s.indices(a.B, "b")
		if err != nil {
			return nil, err
		}
		switch a.Kind {
		case KindRdf:
			return distrib.CalcRdfOptions{BinEdges: edges, IndicesA: A, IndicesB: B, Volume: a.Volume,
				MinDistAToB: a.MinDist, FilterBasedOnBins: a.FilterOnBins}, nil
		case KindHozRdf:
			return distrib.HozRdfOptions{BinEdges: edges, IndicesA: A, IndicesB: B, MinDistAToB: a.MinDist,
				SurfaceArea: a.SurfaceArea}, nil
		}
		return distrib.CountNWithinOptions{BinEdges: edges, Primaries: A, Targets: B, Ranges: ranges(a.Ranges),
			Horizontal: a.Horizontal}, nil
	case KindPlanarRdf, KindPlanarDist:
		A, err := s.indices(a.A, "a")
		if err != nil {
			return nil, err
		}
		if a.Kind == KindPlanarRdf {
			return distrib.CalcPlanarRdfOptions{BinEdges: edges, Indices: A, Plane: plane(a.Plane), Volume: a.Volume}, nil
		}
		return distrib.PlanarDistOptions{BinEdges: edges, Indices: A, Plane: plane(a.Plane), Signed: a.Signed}, nil
	case KindAngleDist:
		t, err := s.triples(a.Triples)
		if err != nil {
			return nil, err
		}
		return distrib.AngleDistOptions{BinEdges: edges, Triples: t}, nil
	case KindDiscHBondCounter:
		w, err := s.molecules(a.A, "a")
		if err != nil {
			return nil, err
		}
		o := distrib.NewDiscHBondCounterWithOxyDistFilterOptions(edges, w.NonHy, w.Hy)
		o.Acceptor, o.Donor = orTrue(a.Acceptor), orTrue(a.Donor)
		o.MaxOO = orDefault(a.MaxOO, o.MaxOO)
		o.MaxAngle = orDefault(a.MaxAngle, o.MaxAngle)
		o.DistFilterVals = ranges(a.Ranges)
		if a.DistFilter != nil {
			if o.DistFilterIndices, err = s.indices(*a.DistFilter, "dist_filter"); err != nil {
				return nil, err
			}
		}
		return o, nil
	case KindHBondCounter, KindHBondValues:
		P, err := s.molecules(a.A, "a")
		if err != nil {
			return nil, err
		}
		T, err := s.molecules(a.B, "b")
		if err != nil {
			return nil, err
		}
		o := distrib.HBondCounterOptions{BinEdges: edges, Primaries: P, Targets: T, MaxOO: a.MaxOO,
			MaxAngle: a.MaxAngle, Acceptor: orTrue(a.Acceptor), Donor: orTrue(a.Donor)}
		if a.Kind == KindHBondCounter {
			return o, nil
		}
		k, err := hbondValueKind(a.Value)
		if err != nil {
			return nil, err
		}
		return distrib.HBondValuesOptions{HBondCounterOptions: o, Kind: k}, nil
	case KindWaterOrientation:
		w, err := s.molecules(a.A, "a")
		if err != nil {
			return nil, err
		}
		k, err := waterAngleKind(a.Angle)
		if err != nil {
			return nil, err
		}
		o := distrib.WaterOrientationOptions{BinEdges: edges, Angle: k}
		for i, ox := range w.NonHy {
			if len(w.Hy[i]) == 2 {
				o.Oxy = append(o.Oxy, ox)
				o.Hy = append(o.Hy, [2]int{w.Hy[i][0], w.Hy[i][1]})
			}
		}
		if len(o.Oxy) == 0 {
			return nil, chem.NewConfigError("config.system.inner", "no oxygens with exactly 2 hydrogens to orient")
		}
		return o, nil
	case KindWaterDerivativeCount:
		oxy, err := s.orAll(a.A, s.oxy, "a")
		if err != nil {
			return nil, err
		}
		hy, err := s.orAll(a.B, s.hy, "b")
		if err != nil {
			return nil, err
		}
		return distrib.WaterDerivativeCountOptions{BinEdges: edges, Oxy: oxy, Hy: hy,
			MaxOHDist: orDefault(a.MaxOHDist, s.maxOH), NNebs: a.NNebs}, nil
	case KindDiatomDist, KindDiatomHozDist, KindDiatomAngle:
		p, err := s.pairs(a.Pairs)
		if err != nil {
			return nil, err
		}
		switch a.Kind {
		case KindDiatomDist:
			return distrib.DiatomDistOptions{BinEdges: edges, Pairs: p}, nil
		case KindDiatomHozDist:
			return distrib.DiatomHozDistOptions{BinEdges: edges, Pairs: p}, nil
		}
		return distrib.DiatomAngleOptions{BinEdges: edges, Pairs: p, Vector: [3]float64{a.Vector[0], a.Vector[1], a.Vector[2]}}, nil
	case KindClassifiedCount:
		c, err := s.classifier(*a.Classifier)
		if err != nil {
			return nil, err
		}
		return distrib.ClassifiedCountOptions{BinEdges: edges, Classifier: c}, nil
	}
	return nil, chem.NewConfigError("config.system.inner", "unknown kind %q", a.Kind)
}

func (s *system) classifier(c ClassifierConfig) (distrib.ClassifierOptions, error) {
	switch c.Kind {
	case ClassMinDist:
		cand, err := s.indices(c.Candidates, "candidates")
		if err != nil {
			return nil, err
		}
		anchors, err := s.indices(c.Anchors, "anchors")
		if err != nil {
			return nil, err
		}
		r, err := window(c.Range, "range")
		if err != nil {
			return nil, err
		}
		return distrib.MinDistClassifierOptions{Candidates: cand, Anchors: anchors, Range: r, MinDistVal: c.Ignore}, nil
	case ClassWaterHBonds:
		w, err := s.molecules(c.Candidates, "candidates")
		if err != nil {
			return nil, err
		}
		anchors, err := s.indices(c.Anchors, "anchors")
		if err != nil {
			return nil, err
		}
		o := distrib.WaterHBondClassifierOptions{Waters: w, Anchors: anchors, MaxOO: c.MaxOO, MaxAngle: c.MaxAngle,
			MinDistType: c.MinDistType}
		for _, x := range []struct {
			dst  *classify.Window
			src  []float64
			what string
		}{
			{&o.MinDist, c.Range, "range"},
			{&o.NDonor, c.NDonor, "n_donor"},
			{&o.NAcceptor, c.NAcceptor, "n_acceptor"},
			{&o.NTotal, c.NTotal, "n_total"},
		} {
			if *x.dst, err = window(x.src, x.what); err != nil {
				return nil, err
			}
		}
		return o, nil
	case ClassWaterDerivative:
		oxy, err := s.orAll(c.Candidates, s.oxy, "candidates")
		if err != nil {
			return nil, err
		}
		hy, err := s.orAll(c.Anchors, s.hy, "anchors")
		if err != nil {
			return nil, err
		}
		return distrib.WaterDerivativeClassifierOptions{Oxy: oxy, Hy: hy, MaxOHDist: orDefault(c.MaxOHDist, s.maxOH), NNebs: c.NNebs}, nil
	}
	return nil, chem.NewConfigError("config.system.classifier", "unknown classifier kind %q", c.Kind)
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

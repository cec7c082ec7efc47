/*
 * group.go, part of mdbin.
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
	chem "github.com/rmera/mdbin"
)

// Group is a set of options binned together, each one giving one or more dimensions
// of the same bins.
type Group struct {
	Name    string
	Options []Options
}

// NewGroup returns a Group with the given options.
func NewGroup(name string, opts ...Options) Group {
	return Group{Name: name, Options: opts}
}

// Edges returns the edges of all the dimensions of the group, in order.
func (G Group) Edges() [][]float64 {
	var ret [][]float64
	for _, o := range G.Options {
		ret = append(ret, o.Edges()...)
	}
	return ret
}

// shape classifies how many tuples the getter of some options emits per frame.
type shape int

const (
	perPrimary shape = iota // one per primary atom, molecule, pair or triple
	perFrame                // exactly one
	variable                // any number
)

// primaries returns the shape of the output of opts and, for per-primary options, the
// primary indices.
func primaries(opts Options) (shape, []int) {
	switch o := opts.(type) {
	case CalcRdfOptions:
		if o.MinDistAToB {
			return perPrimary, o.IndicesA
		}
	case CalcPlanarRdfOptions:
		return perPrimary, o.Indices
	case PlanarDistOptions:
		return perPrimary, o.Indices
	case HozRdfOptions:
		if o.MinDistAToB {
			return perPrimary, o.IndicesA
		}
	case AngleDistOptions:
		ret := make([]int, len(o.Triples))
		for k, t := range o.Triples {
			ret[k] = t[0]
		}
		return perPrimary, ret
	case CountNWithinOptions:
		return perPrimary, o.Primaries
	case DiscHBondCounterWithOxyDistFilterOptions:
		return perPrimary, o.OxyIndices
	case HBondCounterOptions:
		return perPrimary, o.Primaries.NonHy
	case WaterOrientationOptions:
		return perPrimary, o.Oxy
	case DiatomDistOptions:
		return perPrimary, first(o.Pairs)
	case DiatomHozDistOptions:
		return perPrimary, first(o.Pairs)
	case DiatomAngleOptions:
		return perPrimary, first(o.Pairs)
	case WaterDerivativeCountOptions, ClassifiedCountOptions, WaterTypeCountsOptions:
		return perFrame, nil
	case FilteredOptions:
		if o.Inner != nil {
			return primaries(o.Inner)
		}
	}
	return variable, nil
}

func first(pairs [][2]int) []int {
	ret := make([]int, len(pairs))
	for k, p := range pairs {
		ret[k] = p[0]
	}
	return ret
}

// Check verifies that the options of the group can be binned together: options
// emitting a variable number of values must be alone in their group, and the others
// must all emit one value per frame, or one per primary with the same primaries.
// Filtered options can only be combined with filtered options sharing their classifier
// and their UseIndicesFrom.
func (G Group) Check() error {
	caller := "distrib.Group.Check"
	if len(G.Options) == 0 {
		return chem.NewConfigError(caller, "group %q has no options", G.Name)
	}
	for k, o := range G.Options {
		if o == nil {
			return chem.NewConfigError(caller, "group %q: options %d are nil", G.Name, k)
		}
		for d, e := range o.Edges() {
			if len(e) < 2 {
				return chem.NewConfigError(caller, "group %q: options %d (%T), dimension %d has %d edges", G.Name, k, o, d, len(e))
			}
		}
	}
	if len(G.Options) == 1 {
		return nil
	}
	if err := G.checkFiltered(); err != nil {
		return err
	}
	s0, p0 := primaries(G.Options[0])
	for k, o := range G.Options {
		s, p := primaries(o)
		switch {
		case s == variable:
			return chem.NewConfigError(caller, "group %q: options %d (%T) give a variable number of values and cannot be combined", G.Name, k, o)
		case s != s0:
			return chem.NewConfigError(caller, "group %q: options %d (%T) do not give one value per frame as options 0 do, or the other way around", G.Name, k, o)
		case s == perPrimary && !chem.SameInts(p, p0):
			return chem.NewConfigError(caller, "group %q: primary indices %v of options %d differ from %v of options 0", G.Name, p, k, p0)
		}
	}
	return nil
}

func (G Group) checkFiltered() error {
	caller := "distrib.Group.Check"
	var f0 *FilteredOptions
	n := 0
	for k, o := range G.Options {
		f, ok := o.(FilteredOptions)
		if !ok {
			continue
		}
		n++
		if f0 == nil {
			f0 = &f
			continue
		}
		if cacheKey(f.Classifier) != cacheKey(f0.Classifier) {
			return chem.NewConfigError(caller, "group %q: filtered options %d use a classifier different from the first filtered options", G.Name, k)
		}
		if f.UseIndicesFrom != f0.UseIndicesFrom {
			return chem.NewConfigError(caller, "group %q: filtered options %d use indices from %q, the first filtered options from %q", G.Name, k, f.UseIndicesFrom, f0.UseIndicesFrom)
		}
	}
	if n > 0 && n != len(G.Options) {
		return chem.NewConfigError(caller, "group %q: %d of %d options are filtered, filtered and unfiltered options cannot be combined", G.Name, n, len(G.Options))
	}
	return nil
}

// kind is the post-processing a group gets besides the normalisation by frames.
type kind int

const (
	plain kind = iota
	sphericalRDF
	planarRDF
	circularRDF
	angular
)

func (G Group) kind() kind {
	if len(G.Options) != 1 {
		return plain
	}
	switch o := G.Options[0].(type) {
	case CalcRdfOptions:
		if !o.MinDistAToB {
			return sphericalRDF
		}
	case CalcPlanarRdfOptions:
		return planarRDF
	case HozRdfOptions:
		if !o.MinDistAToB {
			return circularRDF
		}
	case AngleDistOptions:
		return angular
	}
	return plain
}

// resolveFilterIndices returns a copy of groups where the hydrogen-bond counters
// without DistFilterIndices get the oxygens of all such counters in all groups.
func resolveFilterIndices(groups []Group) []Group {
	var all [][]int
	for _, g := range groups {
		for _, o := range g.Options {
			if d, ok := o.(DiscHBondCounterWithOxyDistFilterOptions); ok {
				all = append(all, d.OxyIndices)
			}
		}
	}
	if len(all) == 0 {
		return groups
	}
	oxy := chem.UniqueInts(all...)
	ret := make([]Group, len(groups))
	for i, g := range groups {
		ret[i] = Group{Name: g.Name, Options: append([]Options(nil), g.Options...)}
		for k, o := range ret[i].Options {
			if d, ok := o.(DiscHBondCounterWithOxyDistFilterOptions); ok && d.DistFilterIndices == nil {
				d.DistFilterIndices = oxy
				ret[i].Options[k] = d
			}
		}
	}
	return ret
}

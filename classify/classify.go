/*
 * classify.go, part of mdbin.
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

// Package classify partitions, frame by frame, atoms and molecules into groups according
// to their surroundings: distances to anchors, hydrogen bonds, adsorption sites or the
// number of bonded hydrogens.
//
// Classifiers remember their last result and how many times they have run, so that
// several consumers can share one classification through ByReference.
package classify

import (
	"math"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/sparse"
)

// Payload is the result of a classification. For atoms only Indices is set. For
// molecules Indices are the heavy atoms and Hy[k] the hydrogens of Indices[k].
type Payload struct {
	Indices []int
	Hy      [][]int
}

// Molecules returns the payload as a set of molecules. A payload of atoms gives
// molecules without hydrogens.
func (P Payload) Molecules() sparse.Molecules {
	hy := P.Hy
	if hy == nil {
		hy = make([][]int, len(P.Indices))
	}
	return sparse.Molecules{NonHy: P.Indices, Hy: hy}
}

// AllHy returns all the hydrogens in the payload.
func (P Payload) AllHy() []int {
	return P.Molecules().AllHy()
}

// Classifier selects indices from the state of a frame.
type Classifier interface {
	// Classify runs the classification on the current frame of calc.
	Classify(calc *sparse.Calculator) (Payload, error)
	// ExecCount is the number of times Classify has run successfully.
	ExecCount() int
	// StoredResult is the payload returned by the last Classify.
	StoredResult() Payload
	// Populator fills the matrices Classify needs.
	Populator() sparse.Populator
}

// Window is the half-open range [min, max).
type Window [2]float64

// Any is the window containing every number.
var Any = Window{math.Inf(-1), math.Inf(1)}

// Contains returns true if min <= x < max. NaN is never contained.
func (w Window) Contains(x float64) bool { return x >= w[0] && x < w[1] }

// record keeps the execution count and the last result of a classifier.
type record struct {
	execCount int
	stored    Payload
}

func (r *record) ExecCount() int        { return r.execCount }
func (r *record) StoredResult() Payload { return r.stored }

func (r *record) store(p Payload) Payload {
	r.execCount++
	r.stored = p
	return p
}

// ByReference re-uses the result of another classifier, which must run exactly once
// before each call to Classify. It never classifies by itself.
type ByReference struct {
	record
	Ref Classifier
}

// NewByReference returns a ByReference wrapping ref. ref must not have run yet,
// or the wrapper starts out of sync.
func NewByReference(ref Classifier) *ByReference {
	return &ByReference{Ref: ref}
}

func (C *ByReference) Classify(calc *sparse.Calculator) (Payload, error) {
	if C.Ref.ExecCount() != C.execCount+1 {
		return Payload{}, chem.NewConfigError("classify.ByReference", "referenced classifier ran %d times, expected %d", C.Ref.ExecCount(), C.execCount+1)
	}
	return C.store(C.Ref.StoredResult()), nil
}

// Populator needs nothing; the referenced classifier populates.
func (C *ByReference) Populator() sparse.Populator { return sparse.NewComposite() }

// All keeps the indices selected by every one of Classifiers, in the order and with the
// hydrogens given by the first one.
type All struct {
	record
	Classifiers []Classifier
}

// NewAll returns the intersection of classifiers.
func NewAll(classifiers ...Classifier) *All {
	return &All{Classifiers: classifiers}
}

func (C *All) Classify(calc *sparse.Calculator) (Payload, error) {
	if len(C.Classifiers) == 0 {
		return Payload{}, chem.NewConfigError("classify.All", "no classifiers to combine")
	}
	var ret Payload
	for k, c := range C.Classifiers {
		p, err := c.Classify(calc)
		if err != nil {
			return Payload{}, chem.ErrDecorate(err, "classify.All")
		}
		if k == 0 {
			ret = p
			continue
		}
		ret = filter(ret, func(i int) bool { return chem.IsIn(p.Indices, i) })
	}
	return C.store(ret), nil
}

func (C *All) Populator() sparse.Populator {
	comp := sparse.NewComposite()
	for _, c := range C.Classifiers {
		comp.Add(c.Populator())
	}
	return comp
}

// filter returns the part of p whose indices satisfy keep.
func filter(p Payload, keep func(i int) bool) Payload {
	ret := Payload{Indices: []int{}}
	if p.Hy != nil {
		ret.Hy = [][]int{}
	}
	for k, i := range p.Indices {
		if !keep(i) {
			continue
		}
		ret.Indices = append(ret.Indices, i)
		if p.Hy != nil {
			ret.Hy = append(ret.Hy, p.Hy[k])
		}
	}
	return ret
}

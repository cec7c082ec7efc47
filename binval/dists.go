/*
 * dists.go, part of mdbin.
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

package binval

import (
	"math"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/geom"
	"github.com/rmera/mdbin/sparse"
)

// PlanarDists returns the distance of each of Indices from Plane (the default surface
// plane of the cell if nil). Unless Signed, the absolute value is used.
type PlanarDists struct {
	Indices []int
	Plane   *geom.Plane
	Signed  bool
}

func (G *PlanarDists) Dims() int { return 1 }

func (G *PlanarDists) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	plane := G.Plane
	if plane == nil {
		plane = geom.DefaultSurfacePlane(calc.Cell())
	}
	D := calc.Dict()
	idx := D.PlaneIndices(plane)
	if len(idx) != 1 {
		return nil, chem.NewFrameError("binval.PlanarDists", "plane %v matches %d stored planes, expected exactly one", plane, len(idx))
	}
	V := D.PlanarDists[idx[0]]
	ret := make([]float64, len(G.Indices))
	for k, i := range G.Indices {
		ret[k] = V.At(i)
		if !G.Signed {
			ret[k] = math.Abs(ret[k])
		}
	}
	return singles(ret), nil
}

// MinDists returns, for each of From, the smallest distance to any of To, ignoring
// those below MinVal. Set MinVal to a small positive number when From and To overlap
// and the atoms could otherwise be their own closest neighbour.
type MinDists struct {
	From, To []int
	MinVal   float64
	Matrix   Matrix
}

func (G *MinDists) Dims() int { return 1 }

func (G *MinDists) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	M, err := G.Matrix.from(calc, "binval.MinDists")
	if err != nil {
		return nil, err
	}
	ret := make([]float64, len(G.From))
	for k, i := range G.From {
		ret[k] = MinDist(M, i, G.To, G.MinVal)
	}
	return singles(ret), nil
}

// RadialDists returns the distance of every pair (a, b), a in A, b in B, a != b. Values
// below MinVal and, if MaxVal > 0, not below MaxVal, are skipped. When A and B overlap
// every unordered pair in the overlap appears twice, which is what the usual nA*nB
// normalisation of the RDF expects.
type RadialDists struct {
	A, B           []int
	MinVal, MaxVal float64
	Matrix         Matrix
}

func (G *RadialDists) Dims() int { return 1 }

func (G *RadialDists) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	M, err := G.Matrix.from(calc, "binval.RadialDists")
	if err != nil {
		return nil, err
	}
	ret := make([]float64, 0, len(G.A)*len(G.B))
	for _, a := range G.A {
		for _, b := range G.B {
			if a == b {
				continue
			}
			d := M.At(a, b)
			if math.IsNaN(d) || d < G.MinVal || (G.MaxVal > 0 && d >= G.MaxVal) {
				continue
			}
			ret = append(ret, d)
		}
	}
	return singles(ret), nil
}

// NewHozDists returns a RadialDists on the in-plane distances.
func NewHozDists(a, b []int) *RadialDists {
	return &RadialDists{A: a, B: b, Matrix: Horizontal}
}

// NewMinHozDists returns a MinDists on the in-plane distances.
func NewMinHozDists(from, to []int, minVal float64) *MinDists {
	return &MinDists{From: from, To: to, MinVal: minVal, Matrix: Horizontal}
}

// DistsPerPrimary provides, for each primary atom, a list of distances.
type DistsPerPrimary interface {
	DistsPerPrimary(calc *sparse.Calculator) ([][]float64, error)
}

// DistsFromTo gives, for each of From, its distances to all of To except itself.
type DistsFromTo struct {
	From, To []int
	Matrix   Matrix
}

func (P *DistsFromTo) DistsPerPrimary(calc *sparse.Calculator) ([][]float64, error) {
	M, err := P.Matrix.from(calc, "binval.DistsFromTo")
	if err != nil {
		return nil, err
	}
	ret := make([][]float64, len(P.From))
	for k, i := range P.From {
		ret[k] = make([]float64, 0, len(P.To))
		for _, j := range P.To {
			if i != j {
				ret[k] = append(ret[k], M.At(i, j))
			}
		}
	}
	return ret, nil
}

// NewHozDistsFromTo returns a DistsFromTo on the in-plane distances.
func NewHozDistsFromTo(from, to []int) *DistsFromTo {
	return &DistsFromTo{From: from, To: to, Matrix: Horizontal}
}

// CountNWithinDistances emits, for each primary, the number of its distances in each of
// Ranges ([min, max)), one dimension per range.
type CountNWithinDistances struct {
	Dists  DistsPerPrimary
	Ranges [][2]float64
}

func (G *CountNWithinDistances) Dims() int { return len(G.Ranges) }

func (G *CountNWithinDistances) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	dists, err := G.Dists.DistsPerPrimary(calc)
	if err != nil {
		return nil, chem.ErrDecorate(err, "binval.CountNWithinDistances")
	}
	ret := make([][]float64, len(dists))
	for k, ds := range dists {
		ret[k] = make([]float64, len(G.Ranges))
		for r, lim := range G.Ranges {
			for _, d := range ds {
				if d >= lim[0] && d < lim[1] {
					ret[k][r]++
				}
			}
		}
	}
	return ret, nil
}

// Angles returns the a-b-c angle of each triple, in degrees.
type Angles struct {
	Triples [][3]int
}

func (G *Angles) Dims() int { return 1 }

func (G *Angles) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	A := calc.Dict().Angles
	if A == nil {
		return nil, chem.NewFrameError("binval.Angles", "angle matrix not populated")
	}
	ret := make([]float64, len(G.Triples))
	for k, t := range G.Triples {
		ret[k] = A.At(t[0], t[1], t[2])
	}
	return singles(ret), nil
}

// DiatomDists returns the distance between the two atoms of each pair.
type DiatomDists struct {
	Pairs  [][2]int
	Matrix Matrix
}

func (G *DiatomDists) Dims() int { return 1 }

func (G *DiatomDists) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	M, err := G.Matrix.from(calc, "binval.DiatomDists")
	if err != nil {
		return nil, err
	}
	ret := make([]float64, len(G.Pairs))
	for k, p := range G.Pairs {
		ret[k] = M.At(p[0], p[1])
	}
	return singles(ret), nil
}

// NewDiatomHozDists returns a DiatomDists on the in-plane distances.
func NewDiatomHozDists(pairs [][2]int) *DiatomDists {
	return &DiatomDists{Pairs: pairs, Matrix: Horizontal}
}

// DiatomAngleWithVector returns the angle, in degrees, between the i->j direction of
// each pair and Vector.
type DiatomAngleWithVector struct {
	Pairs  [][2]int
	Vector [3]float64
}

func (G *DiatomAngleWithVector) Dims() int { return 1 }

func (G *DiatomAngleWithVector) GetValsToBin(calc *sparse.Calculator) ([][]float64, error) {
	M := calc.Dict().DiatomAngleMatrix(G.Vector)
	if M == nil {
		return nil, chem.NewFrameError("binval.DiatomAngleWithVector", "no angles with vector %v were populated", G.Vector)
	}
	ret := make([]float64, len(G.Pairs))
	for k, p := range G.Pairs {
		ret[k] = M.At(p[0], p[1])
	}
	return singles(ret), nil
}

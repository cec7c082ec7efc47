/*
 * post.go, part of mdbin.
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
	"math"

	chem "github.com/rmera/mdbin"
	"gonum.org/v1/gonum/floats"
)

// Post-processing of accumulated counts.

// NormaliseByFrames stores the counts divided by the number of frames under NormCountsKey.
func NormaliseByFrames(N *NDim, nFrames int) error {
	if nFrames <= 0 {
		return chem.NewConfigError("histo.NormaliseByFrames", "cannot normalise by %d frames", nFrames)
	}
	nc := make([]float64, N.Size())
	floats.ScaleTo(nc, 1/float64(nFrames), N.Counts())
	N.vals[NormCountsKey] = nc
	return nil
}

func check1D(N *NDim, caller string) error {
	if N.NDims() != 1 {
		return chem.NewConfigError(caller, "needs 1-dimensional bins, got %d dimensions", N.NDims())
	}
	return nil
}

// SphereShellVolumes returns the volume 4/3 pi (r2^3 - r1^3) of the shell of each bin.
func SphereShellVolumes(edges []float64) []float64 {
	v := make([]float64, len(edges)-1)
	for i := range v {
		r1, r2 := edges[i], edges[i+1]
		v[i] = 4.0 / 3.0 * math.Pi * (r2*r2*r2 - r1*r1*r1)
	}
	return v
}

// RingAreas returns the area pi (r2^2 - r1^2) of the ring of each bin, that is, 2 pi r dr
// at the bin centre.
func RingAreas(edges []float64) []float64 {
	v := make([]float64, len(edges)-1)
	for i := range v {
		r1, r2 := edges[i], edges[i+1]
		v[i] = math.Pi * (r2*r2 - r1*r1)
	}
	return v
}

// rdf stores under RDFKey g = (counts/nFrames) * total / (nPairs * binSize).
func rdf(N *NDim, nFrames int, total, nPairs float64, binSizes []float64, caller string) error {
	if nFrames <= 0 || !(nPairs > 0) || !(total > 0) {
		return chem.NewConfigError(caller, "invalid normalisation: %d frames, %g pairs, total %g", nFrames, nPairs, total)
	}
	g := make([]float64, N.Size())
	pref := total / (float64(nFrames) * nPairs)
	for i, c := range N.Counts() {
		g[i] = pref * c / binSizes[i]
	}
	N.vals[RDFKey] = g
	return nil
}

// AddRDF adds the radial distribution function of 1-D distance counts between nA and nB
// atoms in the given volume, using spherical shells as bin volumes.
func AddRDF(N *NDim, nFrames int, volume float64, nA, nB int) error {
	if err := check1D(N, "histo.AddRDF"); err != nil {
		return err
	}
	return rdf(N, nFrames, volume, float64(nA)*float64(nB), SphereShellVolumes(N.edges[0]), "histo.AddRDF")
}

// AddPlanarRDF adds the density profile of nA atoms relative to a plane, in units of the
// mean density, using slabs of area surfaceArea and thickness equal to the bin width.
func AddPlanarRDF(N *NDim, nFrames int, volume, surfaceArea float64, nA int) error {
	if err := check1D(N, "histo.AddPlanarRDF"); err != nil {
		return err
	}
	w := Widths(N.edges[0])
	floats.Scale(surfaceArea, w)
	return rdf(N, nFrames, volume, float64(nA), w, "histo.AddPlanarRDF")
}

// AddCircularRDF adds the 2-D radial distribution function of in-plane distance counts
// between nA and nB atoms on a surface of the given area, using rings as bin areas.
func AddCircularRDF(N *NDim, nFrames int, surfaceArea float64, nA, nB int) error {
	if err := check1D(N, "histo.AddCircularRDF"); err != nil {
		return err
	}
	return rdf(N, nFrames, surfaceArea, float64(nA)*float64(nB), RingAreas(N.edges[0]), "histo.AddCircularRDF")
}

// AddADF adds, for 1-D angle counts, pdf = counts/total and adf = pdf * domain/width.
// domain is the width of the angular domain, usually 180 degrees.
func AddADF(N *NDim, domain float64) error {
	if err := check1D(N, "histo.AddADF"); err != nil {
		return err
	}
	tot := floats.Sum(N.Counts())
	if tot == 0 {
		return chem.NewFrameError("histo.AddADF", "no counts to normalise")
	}
	pdf := make([]float64, N.Size())
	floats.ScaleTo(pdf, 1/tot, N.Counts())
	adf := make([]float64, N.Size())
	for i, w := range Widths(N.edges[0]) {
		adf[i] = pdf[i] * domain / w
	}
	N.vals[PDFKey] = pdf
	N.vals[ADFKey] = adf
	return nil
}

// AddPDF adds the probability density (counts/total)/binVolume, which integrates to one
// over the bins.
func AddPDF(N *NDim) error {
	tot := floats.Sum(N.Counts())
	if tot == 0 {
		return chem.NewFrameError("histo.AddPDF", "no counts to normalise")
	}
	pdf := make([]float64, N.Size())
	floats.ScaleTo(pdf, 1/tot, N.Counts())
	floats.Div(pdf, N.BinVolumes())
	N.vals[PDFKey] = pdf
	return nil
}

// Weighted integrals over 1-D distributions.

// Integral returns sum(width * vals).
func Integral(edges, vals []float64) float64 {
	return floats.Dot(Widths(edges), vals)
}

// Mean returns sum(centre * width * vals).
func Mean(edges, vals []float64) float64 {
	w := Widths(edges)
	floats.Mul(w, Centres(edges))
	return floats.Dot(w, vals)
}

func centralMoment(edges, vals []float64, order float64) float64 {
	mean := Mean(edges, vals)
	var m float64
	centres := Centres(edges)
	for i, w := range Widths(edges) {
		m += math.Pow(centres[i]-mean, order) * w * vals[i]
	}
	return m
}

// Variance returns sum((centre-mean)^2 * width * vals).
func Variance(edges, vals []float64) float64 {
	return centralMoment(edges, vals, 2)
}

// Skew returns sum((centre-mean)^3 * width * vals) / variance^1.5.
func Skew(edges, vals []float64) float64 {
	return centralMoment(edges, vals, 3) / math.Pow(Variance(edges, vals), 1.5)
}

// SphericalRDFIntegral returns sum(4 pi r^2 dr g(r)) * prefactor. With the number density
// of the B atoms as prefactor, this is the running coordination number up to the last edge.
func SphericalRDFIntegral(edges, g []float64, prefactor float64) float64 {
	c := Centres(edges)
	var s float64
	for i, w := range Widths(edges) {
		s += 4 * math.Pi * c[i] * c[i] * w * g[i]
	}
	return s * prefactor
}

// CircularRDFIntegral returns sum(2 pi r dr g(r)) * prefactor.
func CircularRDFIntegral(edges, g []float64, prefactor float64) float64 {
	c := Centres(edges)
	var s float64
	for i, w := range Widths(edges) {
		s += 2 * math.Pi * c[i] * w * g[i]
	}
	return s * prefactor
}

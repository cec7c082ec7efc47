/*
 * cell.go, part of mdbin.
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

package chem

import (
	"fmt"
	"math"

	v3 "github.com/rmera/mdbin/v3"
	"gonum.org/v1/gonum/mat"
)

// UnitCell is a periodic simulation cell, with its atoms. The lattice vectors a, b
// and c are the rows of the lattice matrix. It is not altered by any of the analysis
// packages.
type UnitCell struct {
	lattice *mat.Dense
	toFrac  *mat.Dense //inverse of the transposed lattice matrix
	coords  *v3.Matrix
	symbols []string
}

// NewUnitCell returns a cell with the lattice vectors vecs (a, b, c) containing
// atoms with the given cartesian coordinates and element symbols.
func NewUnitCell(vecs [3][3]float64, coords *v3.Matrix, symbols []string) (*UnitCell, error) {
	if coords == nil {
		coords = v3.Zeros(0)
	}
	if coords.NVecs() != len(symbols) {
		return nil, NewConfigError("chem.NewUnitCell", "%d coordinates but %d element symbols", coords.NVecs(), len(symbols))
	}
	lat := mat.NewDense(3, 3, nil)
	for i, v := range vecs {
		lat.SetRow(i, v[:])
	}
	toFrac := mat.NewDense(3, 3, nil)
	if err := toFrac.Inverse(lat.T()); err != nil {
		return nil, NewConfigError("chem.NewUnitCell", "singular lattice %v: %v", vecs, err)
	}
	syms := make([]string, len(symbols))
	copy(syms, symbols)
	return &UnitCell{lattice: lat, toFrac: toFrac, coords: coords, symbols: syms}, nil
}

// NewUnitCellFromParams returns a cell from the lattice parameters (lengths a, b, c and
// angles alpha, beta, gamma in degrees). a lies along x and b in the xy plane.
func NewUnitCellFromParams(lengths, angles [3]float64, coords *v3.Matrix, symbols []string) (*UnitCell, error) {
	alpha, beta, gamma := Deg2Rad(angles[0]), Deg2Rad(angles[1]), Deg2Rad(angles[2])
	sg := math.Sin(gamma)
	if sg == 0 {
		return nil, NewConfigError("chem.NewUnitCellFromParams", "gamma angle %v gives a degenerate cell", angles[2])
	}
	a := [3]float64{lengths[0], 0, 0}
	b := [3]float64{lengths[1] * math.Cos(gamma), lengths[1] * sg, 0}
	cx := math.Cos(beta)
	cy := (math.Cos(alpha) - math.Cos(beta)*math.Cos(gamma)) / sg
	cz2 := 1 - cx*cx - cy*cy
	if cz2 <= 0 {
		return nil, NewConfigError("chem.NewUnitCellFromParams", "angles %v do not define a cell", angles)
	}
	c := v3.Scale(lengths[2], [3]float64{cx, cy, math.Sqrt(cz2)})
	return NewUnitCell([3][3]float64{a, b, c}, coords, symbols)
}

// NewCubicCell returns a cubic cell of side l.
func NewCubicCell(l float64, coords *v3.Matrix, symbols []string) (*UnitCell, error) {
	return NewUnitCell([3][3]float64{{l, 0, 0}, {0, l, 0}, {0, 0, l}}, coords, symbols)
}

// LatticeVec returns the i-th lattice vector (0=a, 1=b, 2=c).
func (C *UnitCell) LatticeVec(i int) [3]float64 {
	return [3]float64{C.lattice.At(i, 0), C.lattice.At(i, 1), C.lattice.At(i, 2)}
}

// LatticeVectors returns the three lattice vectors.
func (C *UnitCell) LatticeVectors() [3][3]float64 {
	return [3][3]float64{C.LatticeVec(0), C.LatticeVec(1), C.LatticeVec(2)}
}

// LatticeParams returns the lengths of the lattice vectors and the alpha, beta
// and gamma angles, in degrees.
func (C *UnitCell) LatticeParams() (lengths, angles [3]float64) {
	a, b, c := C.LatticeVec(0), C.LatticeVec(1), C.LatticeVec(2)
	lengths = [3]float64{v3.Norm(a), v3.Norm(b), v3.Norm(c)}
	angles = [3]float64{Rad2Deg(v3.Angle(b, c)), Rad2Deg(v3.Angle(a, c)), Rad2Deg(v3.Angle(a, b))}
	return lengths, angles
}

// Volume returns |a·(b×c)|.
func (C *UnitCell) Volume() float64 {
	return math.Abs(mat.Det(C.lattice))
}

// SurfaceArea returns the area of the ab face, |a×b|.
func (C *UnitCell) SurfaceArea() float64 {
	return v3.Norm(v3.Cross(C.LatticeVec(0), C.LatticeVec(1)))
}

// NAtoms returns the number of atoms in the cell.
func (C *UnitCell) NAtoms() int { return len(C.symbols) }

// Coord returns the cartesian coordinates of the i-th atom.
func (C *UnitCell) Coord(i int) [3]float64 { return C.coords.Vec(i) }

// Coords returns the coordinate matrix of the cell. It is not a copy.
func (C *UnitCell) Coords() *v3.Matrix { return C.coords }

// Symbol returns the element symbol of the i-th atom.
func (C *UnitCell) Symbol(i int) string { return C.symbols[i] }

// Symbols returns a copy of the element symbols.
func (C *UnitCell) Symbols() []string {
	ret := make([]string, len(C.symbols))
	copy(ret, C.symbols)
	return ret
}

// IndicesOf returns, in ascending order, the indices of the atoms with any of the given symbols.
func (C *UnitCell) IndicesOf(symbols ...string) []int {
	var ret []int
	for i, s := range C.symbols {
		for _, t := range symbols {
			if s == t {
				ret = append(ret, i)
				break
			}
		}
	}
	return ret
}

// Fractional returns the fractional coordinates of the cartesian point xyz.
func (C *UnitCell) Fractional(xyz [3]float64) [3]float64 {
	return v3.MulVec(C.toFrac, xyz)
}

// Cartesian returns the cartesian coordinates of the fractional point f.
func (C *UnitCell) Cartesian(f [3]float64) [3]float64 {
	return v3.MulVec(C.lattice.T(), f)
}

// Copy returns a deep copy of the cell.
func (C *UnitCell) Copy() *UnitCell {
	return &UnitCell{
		lattice: mat.DenseCopyOf(C.lattice),
		toFrac:  mat.DenseCopyOf(C.toFrac),
		coords:  C.coords.Copy(),
		symbols: C.Symbols(),
	}
}

// Equal returns true if both cells have the same lattice and coordinates within
// tol, and the same element symbols.
func (C *UnitCell) Equal(o *UnitCell, tol float64) bool {
	if C == nil || o == nil {
		return C == o
	}
	if !mat.EqualApprox(C.lattice, o.lattice, tol) || len(C.symbols) != len(o.symbols) {
		return false
	}
	for i, s := range C.symbols {
		if o.symbols[i] != s {
			return false
		}
	}
	return C.coords.Equal(o.coords, tol)
}

func (C *UnitCell) String() string {
	l, a := C.LatticeParams()
	return fmt.Sprintf("UnitCell{lengths: %v, angles: %v, atoms: %d}", l, a, C.NAtoms())
}

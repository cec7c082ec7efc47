/*
 * calculator.go, part of mdbin.
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

package sparse

import (
	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/geom"
)

// Calculator owns the Dict of the current frame and the populators that fill it.
// It is not safe for concurrent use; use one Calculator per goroutine.
type Calculator struct {
	pops  *Composite
	prims geom.Primitives
	dict  *Dict
	cell  *chem.UnitCell
}

// NewCalculator returns a Calculator running pops, in order, with the min-image primitives.
func NewCalculator(pops ...Populator) *Calculator {
	return &Calculator{pops: NewComposite(pops...), prims: geom.MinImage{}}
}

// SetPrimitives replaces the geometry primitives used by the populators.
func (C *Calculator) SetPrimitives(p geom.Primitives) { C.prims = p }

// Primitives returns the geometry primitives in use.
func (C *Calculator) Primitives() geom.Primitives { return C.prims }

// AddPopulators registers more populators.
func (C *Calculator) AddPopulators(pops ...Populator) { C.pops.Add(pops...) }

// CalcMatricesForGeom discards the matrices of the previous frame and fills
// those of cell, running levels 0 to the largest MaxLevel of the populators.
func (C *Calculator) CalcMatricesForGeom(cell *chem.UnitCell) error {
	C.cell = cell
	C.dict = NewDict(cell.NAtoms())
	for level := 0; level <= C.pops.MaxLevel(); level++ {
		if err := C.pops.Populate(cell, C.prims, C.dict, level); err != nil {
			return chem.ErrDecorate(err, "sparse.Calculator.CalcMatricesForGeom")
		}
	}
	return nil
}

// Dict returns the matrices of the current frame.
func (C *Calculator) Dict() *Dict { return C.dict }

// Cell returns the current frame.
func (C *Calculator) Cell() *chem.UnitCell { return C.cell }

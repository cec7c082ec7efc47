/*
 * charges.go, part of mdbin.
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

// CoulombConst is the Coulomb constant in eV·Å/e².
const CoulombConst = 14.3996

// CoulombEnergy returns the pairwise point-charge energy, in eV, of the atoms of cell with
// the given indices, using the distances from d. If charges is nil, the
// formal charges of the elements are used; otherwise it must have one charge per index.
func CoulombEnergy(cell *UnitCell, d Distancer, indices []int, charges []float64) (float64, error) {
	if charges == nil {
		charges = make([]float64, len(indices))
		for k, i := range indices {
			q, err := ChargeOf(cell.Symbol(i))
			if err != nil {
				return 0, ErrDecorate(err, "chem.CoulombEnergy")
			}
			charges[k] = q
		}
	}
	if len(charges) != len(indices) {
		return 0, NewConfigError("chem.CoulombEnergy", "%d charges for %d indices", len(charges), len(indices))
	}
	var e float64
	for k, i := range indices {
		for l := k + 1; l < len(indices); l++ {
			r := d.Distance(cell, i, indices[l])
			if r == 0 {
				return 0, NewFrameError("chem.CoulombEnergy", "atoms %d and %d overlap", i, indices[l])
			}
			e += charges[k] * charges[l] / r
		}
	}
	return CoulombConst * e, nil
}

/*
 * atomicdata.go, part of mdbin.
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

//A map for assigning mass to elements.
//Note that just common elements are present
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Cr": 51.996,
	"Si": 28.08,
	"Al": 26.98,
	"Ti": 47.87,
	"Zr": 91.22,
	"Ce": 140.12,
	"Pt": 195.08,
	"Au": 196.97,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}

//Formal ionic charges, in units of e, for point-charge estimates.
var symbolCharge = map[string]float64{
	"H":  1,
	"O":  -2,
	"N":  -3,
	"F":  -1,
	"Cl": -1,
	"Br": -1,
	"I":  -1,
	"S":  -2,
	"Li": 1,
	"Na": 1,
	"K":  1,
	"Mg": 2,
	"Ca": 2,
	"Zn": 2,
	"Cu": 2,
	"Mn": 2,
	"Co": 2,
	"Fe": 3,
	"Al": 3,
	"Si": 4,
	"Ti": 4,
	"Zr": 4,
	"Ce": 4,
}

// MassOf returns the atomic mass of the element with the given symbol, in amu.
func MassOf(symbol string) (float64, error) {
	m, ok := symbolMass[symbol]
	if !ok {
		return 0, NewConfigError("chem.MassOf", "no mass for element %q", symbol)
	}
	return m, nil
}

// ChargeOf returns the formal ionic charge of the element with the given symbol.
func ChargeOf(symbol string) (float64, error) {
	q, ok := symbolCharge[symbol]
	if !ok {
		return 0, NewConfigError("chem.ChargeOf", "no charge for element %q", symbol)
	}
	return q, nil
}

/*
 * interfaces.go, part of mdbin.
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

//Errors

// Decorator is the interface for errors that all packages in this module implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
// If passed an empty string, Decorate just returns the current decoration.
type Decorator interface {
	error
	Decorate(string) []string
}

// TrajError is the interface for errors in trajectories.
type TrajError interface {
	Decorator
	FileName() string
}

// LastFrameError has a useless function to distinguish the harmless errors (i.e. last frame) so they can be
// filtered with errors.As.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}

// Distancer returns the distance between atoms i and j of a cell.
// geom.Primitives satisfies it.
type Distancer interface {
	Distance(cell *UnitCell, i, j int) float64
}

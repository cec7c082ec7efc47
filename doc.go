/*
 * doc.go, part of mdbin.
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

/*
Package chem is the root package of mdbin. It provides the periodic unit cell that
represents each frame of a trajectory, the error types shared by all the packages of the
module, atomic data lookups and a point-charge energy utility.

	**mdbin capabilities**

	Reads and writes simple extended-XYZ trajectories (optionally zstd or gzip compressed)
	and JSON trajectories.

	Builds, per frame, a sparse set of geometric matrices (min-image distances, in-plane
	distances, atom-to-plane distances, angles, water Euler angles), computing only the
	entries that the configured analyses need.

	Bins the values extracted from those matrices into N-dimensional histograms, and obtains
	RDFs (spherical, planar and circular), angular distributions and probability densities
	from them.

	Classifies atoms and molecules dynamically, frame by frame (by distance, by number of
	hydrogen bonds, by adsorption-site spacing, by number of bonded hydrogens), so that
	distributions can be restricted to a given population.

The sub-packages are:

	v3:        Nx3 coordinate matrices on gonum.
	geom:      planes and min-image geometry primitives.
	histo:     bin containers and post-processing.
	traj:      trajectory steps, in-memory trajectories and sampling.
	sparse:    the per-frame sparse matrices, their populators and the calculator.
	binval:    getters that extract the values to bin from the sparse matrices.
	classify:  per-frame classifiers.
	distrib:   analysis options and the driver loop.
	chemplot:  plots of distributions.
	store:     sqlite storage of finished runs.
*/
package chem

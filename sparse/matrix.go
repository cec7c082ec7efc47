/*
 * matrix.go, part of mdbin.
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
	"math"
	"math/bits"
)

// Containers for the per-frame matrices. All of them track which entries have been
// filled, so a legitimate zero is never mistaken for an entry still to compute.
// Entries not filled read as NaN.

type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) has(i int) bool { return b[i>>6]&(1<<(uint(i)&63)) != 0 }

func (b bitset) set(i int) { b[i>>6] |= 1 << (uint(i) & 63) }

func (b bitset) count() int {
	c := 0
	for _, w := range b {
		c += bits.OnesCount64(w)
	}
	return c
}

// denseLimit is the largest number of atoms for which a Mat2 is stored densely.
const denseLimit = 4096

// Mat2 is an NxN matrix of scalars. It is dense for up to denseLimit atoms,
// and map-backed above that.
type Mat2 struct {
	n       int
	vals    []float64
	present bitset
	m       map[int64]float64
}

// NewMat2 returns an empty NxN matrix.
func NewMat2(n int) *Mat2 {
	if n > denseLimit {
		return &Mat2{n: n, m: map[int64]float64{}}
	}
	return &Mat2{n: n, vals: make([]float64, n*n), present: newBitset(n * n)}
}

// N returns the number of rows (and columns) of the matrix.
func (M *Mat2) N() int { return M.n }

func (M *Mat2) key(i, j int) int64 { return int64(i)*int64(M.n) + int64(j) }

// Has returns true if the i,j entry has been filled.
func (M *Mat2) Has(i, j int) bool {
	if M.m != nil {
		_, ok := M.m[M.key(i, j)]
		return ok
	}
	return M.present.has(i*M.n + j)
}

// At returns the i,j entry, NaN if it has not been filled.
func (M *Mat2) At(i, j int) float64 {
	if M.m != nil {
		if v, ok := M.m[M.key(i, j)]; ok {
			return v
		}
		return math.NaN()
	}
	k := i*M.n + j
	if !M.present.has(k) {
		return math.NaN()
	}
	return M.vals[k]
}

// Set fills the i,j entry with v.
func (M *Mat2) Set(i, j int, v float64) {
	if M.m != nil {
		M.m[M.key(i, j)] = v
		return
	}
	k := i*M.n + j
	M.vals[k] = v
	M.present.set(k)
}

// NFilled returns the number of filled entries.
func (M *Mat2) NFilled() int {
	if M.m != nil {
		return len(M.m)
	}
	return M.present.count()
}

// Vec is a per-atom vector of scalars.
type Vec struct {
	vals    []float64
	present bitset
}

// NewVec returns an empty vector for n atoms.
func NewVec(n int) *Vec {
	return &Vec{vals: make([]float64, n), present: newBitset(n)}
}

// Len returns the number of atoms of the vector.
func (V *Vec) Len() int { return len(V.vals) }

// Has returns true if the i-th entry has been filled.
func (V *Vec) Has(i int) bool { return V.present.has(i) }

// At returns the i-th entry, NaN if it has not been filled.
func (V *Vec) At(i int) float64 {
	if !V.present.has(i) {
		return math.NaN()
	}
	return V.vals[i]
}

// Set fills the i-th entry with v.
func (V *Vec) Set(i int, v float64) {
	V.vals[i] = v
	V.present.set(i)
}

// NFilled returns the number of filled entries.
func (V *Vec) NFilled() int { return V.present.count() }

// Mat3 is a map-backed NxNxN matrix of scalars, used for angles.
type Mat3 struct {
	n int64
	m map[int64]float64
}

// NewMat3 returns an empty NxNxN matrix.
func NewMat3(n int) *Mat3 {
	return &Mat3{n: int64(n), m: map[int64]float64{}}
}

func (M *Mat3) key(i, j, k int) int64 {
	return (int64(i)*M.n+int64(j))*M.n + int64(k)
}

// Has returns true if the i,j,k entry has been filled.
func (M *Mat3) Has(i, j, k int) bool {
	_, ok := M.m[M.key(i, j, k)]
	return ok
}

// At returns the i,j,k entry, NaN if it has not been filled.
func (M *Mat3) At(i, j, k int) float64 {
	if v, ok := M.m[M.key(i, j, k)]; ok {
		return v
	}
	return math.NaN()
}

// Set fills the i,j,k entry with v.
func (M *Mat3) Set(i, j, k int, v float64) { M.m[M.key(i, j, k)] = v }

// NFilled returns the number of filled entries.
func (M *Mat3) NFilled() int { return len(M.m) }

// VecMat2 is a map-backed NxN matrix of 3D vectors.
type VecMat2 struct {
	n int64
	m map[int64][3]float64
}

// NewVecMat2 returns an empty NxN matrix of vectors.
func NewVecMat2(n int) *VecMat2 {
	return &VecMat2{n: int64(n), m: map[int64][3]float64{}}
}

func (M *VecMat2) key(i, j int) int64 { return int64(i)*M.n + int64(j) }

// Has returns true if the i,j entry has been filled.
func (M *VecMat2) Has(i, j int) bool {
	_, ok := M.m[M.key(i, j)]
	return ok
}

// At returns the i,j vector, all NaN if it has not been filled.
func (M *VecMat2) At(i, j int) [3]float64 {
	if v, ok := M.m[M.key(i, j)]; ok {
		return v
	}
	nan := math.NaN()
	return [3]float64{nan, nan, nan}
}

// Set fills the i,j entry with v.
func (M *VecMat2) Set(i, j int, v [3]float64) { M.m[M.key(i, j)] = v }

// NFilled returns the number of filled entries.
func (M *VecMat2) NFilled() int { return len(M.m) }

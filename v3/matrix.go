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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space. The underlying Dense always has 3 columns.
type Matrix struct {
	*mat.Dense
}

// NewMatrix returns a Matrix with the data in data, which must have a length
// that is a multiple of 3. The slice is used as backing storage, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	l := len(data)
	if l%3 != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by 3", l), []string{"v3.NewMatrix"}}
	}
	if l == 0 {
		return &Matrix{}, nil
	}
	return &Matrix{mat.NewDense(l/3, 3, data)}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors and 3 columns.
func Zeros(vecs int) *Matrix {
	if vecs == 0 {
		return &Matrix{}
	}
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

// Dense2Matrix returns a Matrix wrapping the given Dense, which must have 3 columns.
// It does not copy.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

// NVecs returns the number of (row) vectors in F.
func (F *Matrix) NVecs() int {
	if F == nil || F.Dense == nil {
		return 0
	}
	r, _ := F.Dims()
	return r
}

// Vec returns a copy of the i-th vector of F.
func (F *Matrix) Vec(i int) [3]float64 {
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

// SetVec sets the i-th vector of F to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	F.Set(i, 0, v[0])
	F.Set(i, 1, v[1])
	F.Set(i, 2, v[2])
}

// VecView returns a 1x3 Matrix that shares storage with the i-th vector of F.
func (F *Matrix) VecView(i int) *Matrix {
	return &Matrix{F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

// SomeVecs returns a new Matrix containing copies of the vectors of F with indexes
// in clist, in that order. It returns an error if an index is out of range.
func (F *Matrix) SomeVecs(clist []int) (*Matrix, error) {
	n := F.NVecs()
	ret := Zeros(len(clist))
	for k, i := range clist {
		if i < 0 || i >= n {
			return nil, Error{fmt.Sprintf("Index %d out of range for matrix with %d vectors", i, n), []string{"v3.SomeVecs"}}
		}
		ret.SetVec(k, F.Vec(i))
	}
	return ret, nil
}

// Copy returns a deep copy of F.
func (F *Matrix) Copy() *Matrix {
	if F.NVecs() == 0 {
		return &Matrix{}
	}
	return &Matrix{mat.DenseCopyOf(F.Dense)}
}

// Equal returns true if F and A have the same number of vectors and all
// their elements agree within tol.
func (F *Matrix) Equal(A *Matrix, tol float64) bool {
	if F.NVecs() != A.NVecs() {
		return false
	}
	if F.NVecs() == 0 {
		return true
	}
	return mat.EqualApprox(F.Dense, A.Dense, tol)
}

// RawData returns a flat, row-major copy of the elements of F.
func (F *Matrix) RawData() []float64 {
	n := F.NVecs()
	ret := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		v := F.Vec(i)
		ret = append(ret, v[:]...)
	}
	return ret
}

func (F *Matrix) String() string {
	n := F.NVecs()
	if n == 0 {
		return "[]"
	}
	v := make([]string, n)
	for i := 0; i < n; i++ {
		r := F.Vec(i)
		v[i] = fmt.Sprintf("%8.3f %8.3f %8.3f", r[0], r[1], r[2])
	}
	return "\n[" + strings.Join(v, "\n ") + " ]"
}

// Errors

// Error is the error type for the v3 package. It is the same as chem.Error but
// avoids a circular import.
type Error struct {
	message string
	deco    []string
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

// Decorate adds dec to the decoration slice of the error and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// PanicMsg is a message used for panics, even though it satisfies the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix = PanicMsg("mdbin/v3: A Matrix should have 3 columns")
	ErrShape        = PanicMsg("mdbin/v3: Dimension mismatch")
)

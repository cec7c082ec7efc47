/*
 * step.go, part of mdbin.
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

// Package traj contains the trajectory value objects: the Step (one frame), the
// in-memory trajectory with its JSON format, the Reader interface implemented by
// trajectory readers, and helpers for sampling frames.
package traj

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	chem "github.com/rmera/mdbin"
	v3 "github.com/rmera/mdbin/v3"
)

// DefaultTol is the tolerance used by Equal when a Step does not set its own.
const DefaultTol = 1e-6

// CmpType declares how an extra field of a Step is compared.
type CmpType string

const (
	Numerical      CmpType = "numerical"
	NumericalArray CmpType = "numericalArray"
)

// Extra is an additional named property of a Step. Scalars (Numerical) are kept in
// Value[0]; arrays (NumericalArray) use the whole of Value.
type Extra struct {
	Value   []float64
	CmpType CmpType
}

func (e Extra) equal(o Extra, tol float64) bool {
	if e.CmpType != o.CmpType || len(e.Value) != len(o.Value) {
		return false
	}
	for i, v := range e.Value {
		if math.Abs(v-o.Value[i]) > tol {
			return false
		}
	}
	return true
}

func (e Extra) MarshalJSON() ([]byte, error) {
	var val interface{} = e.Value
	if e.CmpType == Numerical {
		if len(e.Value) != 1 {
			return nil, fmt.Errorf("numerical extra field with %d values", len(e.Value))
		}
		val = e.Value[0]
	}
	return json.Marshal(struct {
		Value   interface{} `json:"value"`
		CmpType CmpType     `json:"cmpType"`
	}{val, e.CmpType})
}

func (e *Extra) UnmarshalJSON(b []byte) error {
	var a struct {
		Value   json.RawMessage `json:"value"`
		CmpType CmpType         `json:"cmpType"`
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	switch a.CmpType {
	case Numerical:
		var f float64
		if err := json.Unmarshal(a.Value, &f); err != nil {
			return err
		}
		e.Value = []float64{f}
	case NumericalArray:
		var f []float64
		if err := json.Unmarshal(a.Value, &f); err != nil {
			return err
		}
		e.Value = f
	default:
		return fmt.Errorf("unknown cmpType %q", a.CmpType)
	}
	e.CmpType = a.CmpType
	return nil
}

// Step is one frame of a trajectory.
type Step struct {
	Cell  *chem.UnitCell
	Step  int
	Time  float64
	Extra map[string]Extra
	// Tol is the tolerance used by Equal for all numeric fields. DefaultTol if zero.
	Tol float64
}

// NewStep returns a Step with the given cell, step index and time.
func NewStep(cell *chem.UnitCell, step int, time float64) *Step {
	return &Step{Cell: cell, Step: step, Time: time}
}

// SetScalar sets a Numerical extra field.
func (S *Step) SetScalar(name string, v float64) {
	if S.Extra == nil {
		S.Extra = map[string]Extra{}
	}
	S.Extra[name] = Extra{Value: []float64{v}, CmpType: Numerical}
}

// SetArray sets a NumericalArray extra field. v is copied.
func (S *Step) SetArray(name string, v []float64) {
	if S.Extra == nil {
		S.Extra = map[string]Extra{}
	}
	S.Extra[name] = Extra{Value: append([]float64(nil), v...), CmpType: NumericalArray}
}

func (S *Step) tol() float64 {
	if S.Tol > 0 {
		return S.Tol
	}
	return DefaultTol
}

// Equal compares the steps using the tolerance of the receiver for cells,
// times and extra fields. Step indices must be identical.
func (S *Step) Equal(o *Step) bool {
	tol := S.tol()
	if S.Step != o.Step || math.Abs(S.Time-o.Time) > tol || !S.Cell.Equal(o.Cell, tol) {
		return false
	}
	if len(S.Extra) != len(o.Extra) {
		return false
	}
	for k, v := range S.Extra {
		w, ok := o.Extra[k]
		if !ok || !v.equal(w, tol) {
			return false
		}
	}
	return true
}

// reserved keys of the JSON representation of a Step
var stepKeys = map[string]bool{"unitCell": true, "step": true, "time": true}

type cellJSON struct {
	LatticeVectors [3][3]float64 `json:"lattVects"`
	Symbols        []string      `json:"symbols"`
	Coords         [][3]float64  `json:"cartCoords"`
}

func cellToJSON(c *chem.UnitCell) cellJSON {
	ret := cellJSON{LatticeVectors: c.LatticeVectors(), Symbols: c.Symbols(), Coords: make([][3]float64, c.NAtoms())}
	for i := range ret.Coords {
		ret.Coords[i] = c.Coord(i)
	}
	return ret
}

func (c cellJSON) cell() (*chem.UnitCell, error) {
	coords := v3.Zeros(len(c.Coords))
	for i, v := range c.Coords {
		coords.SetVec(i, v)
	}
	return chem.NewUnitCell(c.LatticeVectors, coords, c.Symbols)
}

// MarshalJSON writes the step as an object with the unitCell, step and time keys, plus
// one key per extra field.
func (S *Step) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{
		"unitCell": cellToJSON(S.Cell),
		"step":     S.Step,
		"time":     S.Time,
	}
	for k, v := range S.Extra {
		if stepKeys[k] {
			return nil, fmt.Errorf("extra field uses the reserved name %q", k)
		}
		m[k] = v
	}
	return json.Marshal(m)
}

func (S *Step) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	var c cellJSON
	if err := json.Unmarshal(m["unitCell"], &c); err != nil {
		return fmt.Errorf("unitCell: %w", err)
	}
	cell, err := c.cell()
	if err != nil {
		return err
	}
	S.Cell = cell
	if raw, ok := m["step"]; ok {
		if err := json.Unmarshal(raw, &S.Step); err != nil {
			return fmt.Errorf("step: %w", err)
		}
	}
	if raw, ok := m["time"]; ok {
		if err := json.Unmarshal(raw, &S.Time); err != nil {
			return fmt.Errorf("time: %w", err)
		}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		if !stepKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		var e Extra
		if err := json.Unmarshal(m[k], &e); err != nil {
			return fmt.Errorf("extra field %s: %w", k, err)
		}
		if S.Extra == nil {
			S.Extra = map[string]Extra{}
		}
		S.Extra[k] = e
	}
	return nil
}

/*
 * json.go, part of mdbin.
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
	"encoding/json"
	"math"
	"strconv"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/internal/fileio"
)

// jsonFloats is a []float64 whose non-finite elements are written as null, and read back as NaN.
type jsonFloats []float64

func (j jsonFloats) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, 8*len(j)+2)
	b = append(b, '[')
	for i, v := range j {
		if i > 0 {
			b = append(b, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b = append(b, "null"...)
			continue
		}
		b = strconv.AppendFloat(b, v, 'g', -1, 64)
	}
	return append(b, ']'), nil
}

func (j *jsonFloats) UnmarshalJSON(b []byte) error {
	var raw []*float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*j = make(jsonFloats, len(raw))
	for i, v := range raw {
		if v == nil {
			(*j)[i] = math.NaN()
			continue
		}
		(*j)[i] = *v
	}
	return nil
}

type ndimJSON struct {
	Edges   [][]float64           `json:"edges"`
	BinVals map[string]jsonFloats `json:"binVals"`
	NFrames int                   `json:"nFrames"`
}

func (N *NDim) MarshalJSON() ([]byte, error) {
	a := ndimJSON{Edges: N.edges, BinVals: map[string]jsonFloats{}, NFrames: N.nFrames}
	for k, v := range N.vals {
		a.BinVals[k] = v
	}
	return json.Marshal(a)
}

func (N *NDim) UnmarshalJSON(b []byte) error {
	var a ndimJSON
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	n, err := NewNDim(a.Edges...)
	if err != nil {
		return chem.ErrDecorate(err, "histo.NDim.UnmarshalJSON")
	}
	for k, v := range a.BinVals {
		if err := n.SetVals(k, v); err != nil {
			return chem.NewFormatError("histo.NDim.UnmarshalJSON", "property %q: %d values for %d bins", k, len(v), n.Size())
		}
	}
	n.nFrames = a.NFrames
	*N = *n
	return nil
}

type standardJSON struct {
	Centres  []float64               `json:"binCentres"`
	Edges    []float64               `json:"binEdges"`
	BinVals  map[string]jsonFloats   `json:"binVals"`
	ListVals map[string][]jsonFloats `json:"binListVals,omitempty"`
}

func (S *Standard) MarshalJSON() ([]byte, error) {
	a := standardJSON{Centres: S.centres, Edges: S.edges, BinVals: map[string]jsonFloats{}}
	for k, v := range S.vals {
		a.BinVals[k] = v
	}
	if len(S.listVals) > 0 {
		a.ListVals = map[string][]jsonFloats{}
		for k, v := range S.listVals {
			l := make([]jsonFloats, len(v))
			for i, w := range v {
				l[i] = w
			}
			a.ListVals[k] = l
		}
	}
	return json.Marshal(a)
}

func (S *Standard) UnmarshalJSON(b []byte) error {
	var a standardJSON
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	s, err := NewStandardFromEdges(a.Edges)
	if err != nil {
		return chem.ErrDecorate(err, "histo.Standard.UnmarshalJSON")
	}
	if len(a.Centres) == len(s.centres) {
		copy(s.centres, a.Centres)
	}
	for k, v := range a.BinVals {
		if err := s.Set(k, v); err != nil {
			return chem.ErrDecorate(err, "histo.Standard.UnmarshalJSON")
		}
	}
	for k, v := range a.ListVals {
		l := make([][]float64, len(v))
		for i, w := range v {
			l[i] = w
		}
		if err := s.SetList(k, l); err != nil {
			return chem.ErrDecorate(err, "histo.Standard.UnmarshalJSON")
		}
	}
	*S = *s
	return nil
}

// DumpJSON writes the bins as a JSON array to the file name, compressed
// if the extension of name asks for it.
func DumpJSON(name string, bins []*NDim) error {
	w, err := fileio.Create(name)
	if err != nil {
		return chem.NewFormatError("histo.DumpJSON", "creating %s: %v", name, err)
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(bins); err != nil {
		w.Close()
		return chem.NewFormatError("histo.DumpJSON", "writing %s: %v", name, err)
	}
	return w.Close()
}

// LoadJSON reads the bins written by DumpJSON.
func LoadJSON(name string) ([]*NDim, error) {
	r, err := fileio.Open(name)
	if err != nil {
		return nil, chem.NewFormatError("histo.LoadJSON", "opening %s: %v", name, err)
	}
	defer r.Close()
	var bins []*NDim
	if err := json.NewDecoder(r).Decode(&bins); err != nil {
		return nil, chem.NewFormatError("histo.LoadJSON", "reading %s: %v", name, err)
	}
	return bins, nil
}

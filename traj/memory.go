/*
 * memory.go, part of mdbin.
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

package traj

import (
	"encoding/json"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/internal/fileio"
)

// Reader is implemented by anything that delivers the frames of a trajectory in order.
// After the last frame, Next returns a chem.LastFrameError.
type Reader interface {
	Next() (*Step, error)
}

// InMemory is a trajectory held in memory.
type InMemory struct {
	Steps []*Step `json:"trajSteps"`
}

// Len returns the number of frames.
func (T *InMemory) Len() int { return len(T.Steps) }

// Equal returns true if both trajectories have the same number of steps and all
// of them are equal.
func (T *InMemory) Equal(o *InMemory) bool {
	if T.Len() != o.Len() {
		return false
	}
	for i, s := range T.Steps {
		if !s.Equal(o.Steps[i]) {
			return false
		}
	}
	return true
}

// Iter returns a Reader over the steps of the trajectory.
func (T *InMemory) Iter() Reader {
	return &memReader{steps: T.Steps}
}

type memReader struct {
	steps []*Step
	next  int
}

func (m *memReader) Next() (*Step, error) {
	if m.next >= len(m.steps) {
		return nil, chem.NewLastFrameError("", "traj.InMemory.Next")
	}
	m.next++
	return m.steps[m.next-1], nil
}

// ReadAll reads all the remaining frames of r into memory.
func ReadAll(r Reader) (*InMemory, error) {
	ret := &InMemory{}
	for {
		s, err := r.Next()
		if err != nil {
			if chem.IsLastFrame(err) {
				return ret, nil
			}
			return ret, chem.ErrDecorate(err, "traj.ReadAll")
		}
		ret.Steps = append(ret.Steps, s)
	}
}

// WriteJSON writes the trajectory to the file name, as {"trajSteps": [...]}.
// The file is compressed if the extension of name asks for it.
func (T *InMemory) WriteJSON(name string) error {
	w, err := fileio.Create(name)
	if err != nil {
		return chem.NewFormatError("traj.InMemory.WriteJSON", "creating %s: %v", name, err)
	}
	if err := json.NewEncoder(w).Encode(T); err != nil {
		w.Close()
		return chem.NewFormatError("traj.InMemory.WriteJSON", "writing %s: %v", name, err)
	}
	return w.Close()
}

// ReadJSON reads a trajectory written by WriteJSON.
func ReadJSON(name string) (*InMemory, error) {
	r, err := fileio.Open(name)
	if err != nil {
		return nil, chem.NewFormatError("traj.ReadJSON", "opening %s: %v", name, err)
	}
	defer r.Close()
	ret := &InMemory{}
	if err := json.NewDecoder(r).Decode(ret); err != nil {
		return nil, chem.NewFormatError("traj.ReadJSON", "reading %s: %v", name, err)
	}
	return ret, nil
}

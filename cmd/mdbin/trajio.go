/*
 * trajio.go, part of mdbin.
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

package main

import (
	"strings"

	"github.com/rmera/mdbin/internal/fileio"
	"github.com/rmera/mdbin/traj"
	"github.com/rmera/mdbin/traj/extxyz"
)

// isJSON reports whether name is an in-memory trajectory dump rather than extended XYZ.
func isJSON(name string) bool {
	return strings.HasSuffix(strings.ToLower(fileio.Strip(name)), ".json")
}

// openTrajectory returns a reader for the frames in name and a function to release it.
func openTrajectory(name string) (traj.Reader, func() error, error) {
	if isJSON(name) {
		t, err := traj.ReadJSON(name)
		if err != nil {
			return nil, nil, err
		}
		return t.Iter(), func() error { return nil }, nil
	}
	r, err := extxyz.New(name)
	if err != nil {
		return nil, nil, err
	}
	return r, r.Close, nil
}

func readTrajectory(name string) (*traj.InMemory, error) {
	if isJSON(name) {
		return traj.ReadJSON(name)
	}
	return extxyz.ReadFile(name)
}

func writeTrajectory(name string, t *traj.InMemory) error {
	if isJSON(name) {
		return t.WriteJSON(name)
	}
	return extxyz.WriteFile(name, t)
}

// prepended delivers first and then the frames of r.
type prepended struct {
	first *traj.Step
	r     traj.Reader
}

func (p *prepended) Next() (*traj.Step, error) {
	if s := p.first; s != nil {
		p.first = nil
		return s, nil
	}
	return p.r.Next()
}

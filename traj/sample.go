/*
 * sample.go, part of mdbin.
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
	chem "github.com/rmera/mdbin"
)

// EveryNth returns the steps with indices 0, n, 2n...
func EveryNth(steps []*Step, n int) []*Step {
	if n <= 1 {
		return steps
	}
	ret := make([]*Step, 0, len(steps)/n+1)
	for i := 0; i < len(steps); i += n {
		ret = append(ret, steps[i])
	}
	return ret
}

// Split divides steps into n contiguous sections whose lengths differ at most by one.
// The first sections are the longer ones. Sections may be empty if n > len(steps).
func Split(steps []*Step, n int) ([][]*Step, error) {
	if n < 1 {
		return nil, chem.NewConfigError("traj.Split", "cannot split into %d sections", n)
	}
	ret := make([][]*Step, n)
	size, rem := len(steps)/n, len(steps)%n
	start := 0
	for i := range ret {
		l := size
		if i < rem {
			l++
		}
		ret[i] = steps[start : start+l]
		start += l
	}
	return ret, nil
}

// skipper delivers every n-th frame of the wrapped reader.
type skipper struct {
	r     Reader
	n     int
	count int
}

// NewEveryNthReader returns a Reader that delivers the frames 0, n, 2n... of r.
func NewEveryNthReader(r Reader, n int) Reader {
	if n <= 1 {
		return r
	}
	return &skipper{r: r, n: n}
}

func (s *skipper) Next() (*Step, error) {
	for {
		st, err := s.r.Next()
		if err != nil {
			return nil, err
		}
		s.count++
		if (s.count-1)%s.n == 0 {
			return st, nil
		}
	}
}

/*
 * handy.go, part of mdbin.
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

import (
	"math"
	"sort"
)

func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180
}

func Rad2Deg(f float64) float64 {
	return f * 180 / math.Pi
}

// IsIn returns true if test is in container, false otherwise.
func IsIn(container []int, test int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

// SameInts returns true if a and b contain the same elements in the same order.
func SameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if b[i] != v {
			return false
		}
	}
	return true
}

// UniqueInts returns the sorted union of the given slices, without repetitions.
func UniqueInts(sets ...[]int) []int {
	seen := make(map[int]bool)
	var ret []int
	for _, s := range sets {
		for _, v := range s {
			if !seen[v] {
				seen[v] = true
				ret = append(ret, v)
			}
		}
	}
	sort.Ints(ret)
	return ret
}

// Range returns the slice [0, 1, ... n-1].
func Range(n int) []int {
	ret := make([]int, n)
	for i := range ret {
		ret[i] = i
	}
	return ret
}

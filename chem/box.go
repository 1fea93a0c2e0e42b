/*
 * box.go, part of carbslab.
 *
 * Copyright 2026 The carbslab authors
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
 */

package chem

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is the periodic cell of a structure: three edge lengths in Å and three
// angles in degrees. The slabs this pipeline handles are orthorhombic; the
// angles are carried through to the output header but all minimum-image
// arithmetic treats the axes as orthogonal.
type Box struct {
	Lengths r3.Vec
	Angles  [3]float64
}

// NewBox builds a box from the six CRYST1 quantities.
func NewBox(a, b, c, alpha, beta, gamma float64) Box {
	return Box{Lengths: r3.Vec{X: a, Y: b, Z: c}, Angles: [3]float64{alpha, beta, gamma}}
}

// Zero reports whether the box has no extent at all.
func (b Box) Zero() bool {
	return b.Lengths == (r3.Vec{})
}

// reduce maps a displacement component to its minimum-image representative.
// A non-positive length marks a non-periodic axis and leaves d untouched.
func reduce(d, l float64) float64 {
	if l <= 0 {
		return d
	}
	return d - math.Round(d/l)*l
}

// MinImage reduces every component of d to the representative of smallest
// magnitude under the box periodicity.
func (b Box) MinImage(d r3.Vec) r3.Vec {
	return r3.Vec{
		X: reduce(d.X, b.Lengths.X),
		Y: reduce(d.Y, b.Lengths.Y),
		Z: reduce(d.Z, b.Lengths.Z),
	}
}

// Displacement returns the minimum-image vector pointing from "from" to "to".
func (b Box) Displacement(from, to r3.Vec) r3.Vec {
	return b.MinImage(r3.Sub(to, from))
}

// Distance returns the minimum-image distance between two positions.
func (b Box) Distance(p, q r3.Vec) float64 {
	return r3.Norm(b.Displacement(p, q))
}

/*
 * rebuild.go, part of carbslab.
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

package rebuild

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/molsurf/carbslab/chem"
)

const (
	// IdealBondLength is the C-O distance, in Å, at which reconstructed
	// oxygens are placed.
	IdealBondLength = 1.285

	// DefaultBondCutoff is the minimum-image distance, in Å, within which
	// an existing C-O pair is taken to be bonded.
	DefaultBondCutoff = 1.3

	// rotationDeg is the in-plane angle separating two bonds of the ion.
	// The value is kept exactly as the upstream tooling uses it.
	rotationDeg = 119.486687
)

// Structure-local failure conditions. All of them abort the structure being
// processed but never the batch.
var (
	// ErrBondAmbiguity: a free oxygen sees more than one carbon within the
	// bonding cutoff, so the surviving connectivity cannot be trusted.
	ErrBondAmbiguity = errors.New("ambiguous bond")

	// ErrMissingReferencePlane: no fully bonded carbonate exists anywhere,
	// leaving the rotation-based completion rule without a directional
	// reference.
	ErrMissingReferencePlane = errors.New("no fully bonded carbonate to derive a reference plane from")

	// ErrCarbonUnbonded: a carbon has no bonds at all; there is no local
	// geometric information to reconstruct from.
	ErrCarbonUnbonded = errors.New("carbon with zero bonds")

	// ErrStalledReconstruction: a full completion pass bonded nothing, or
	// the pass bound was exceeded.
	ErrStalledReconstruction = errors.New("bond reconstruction stalled")
)

// Reconstruct brings every carbon in s to exactly 3 bonds and every oxygen
// to exactly 1, mutating the bond relation and the positions of the oxygens
// it places. Atoms that already hold a position and a bond are never moved.
// A cutoff <= 0 selects DefaultBondCutoff.
//
// The rotation-based completion rule uses a single reference normal taken
// from the first fully bonded carbonate in the arena. On surfaces whose
// carbonate groups are related by a screw or glide symmetry that one normal
// may not be valid for every group; this mirrors the upstream tooling and is
// a known limitation.
func Reconstruct(s *chem.Structure, cutoff float64) error {
	if cutoff <= 0 {
		cutoff = DefaultBondCutoff
	}
	if err := detectBonds(s, cutoff); err != nil {
		return err
	}
	// the reference plane must exist whether or not the completion phase
	// ends up running
	normal, err := referenceNormal(s)
	if err != nil {
		return err
	}
	free := freeOxygens(s)
	if len(free) == 0 {
		return nil
	}
	return complete(s, free, normal)
}

// detectBonds bonds every free oxygen to the single carbon within cutoff,
// if there is one. Two or more candidates are fatal; zero leaves the oxygen
// for geometric completion.
func detectBonds(s *chem.Structure, cutoff float64) error {
	isCarbon := func(a *chem.Atom) bool { return a.Is(chem.Carbon) }
	for _, at := range s.Atoms {
		if !at.Is(chem.Oxygen) || len(at.Bonds) > 0 {
			continue
		}
		cands := s.Neighbors(at.ID, cutoff, isCarbon)
		switch len(cands) {
		case 0:
			// stays free
		case 1:
			s.AddBond(at.ID, cands[0])
		default:
			return fmt.Errorf("%w: oxygen %d has %d carbons within %.3g Å",
				ErrBondAmbiguity, at.ID, len(cands), cutoff)
		}
	}
	return nil
}

// freeOxygens lists the ids of oxygens that still have no bond, in arena
// order.
func freeOxygens(s *chem.Structure) []int {
	var out []int
	for _, at := range s.Atoms {
		if at.Is(chem.Oxygen) && len(at.Bonds) == 0 {
			out = append(out, at.ID)
		}
	}
	return out
}

// referenceNormal derives the unit normal of the carbonate plane from the
// first carbon holding all three bonds. Any two of the three bond vectors
// suffice; they are coplanar in the ion's geometry.
func referenceNormal(s *chem.Structure) (r3.Vec, error) {
	for _, at := range s.Atoms {
		if !at.Is(chem.Carbon) || len(at.Bonds) != 3 {
			continue
		}
		v1 := s.Box.Displacement(at.Pos, s.Atom(at.Bonds[0]).Pos)
		v2 := s.Box.Displacement(at.Pos, s.Atom(at.Bonds[1]).Pos)
		n := r3.Cross(v1, v2)
		if r3.Norm(n) == 0 {
			// collinear bond vectors cannot define a plane; try the
			// next complete group
			continue
		}
		return r3.Unit(n), nil
	}
	return r3.Vec{}, ErrMissingReferencePlane
}

// complete runs the bounded fixed-point loop: each pass walks the free
// oxygens, attaches each to its nearest deficient carbon and completes
// exactly one bond on that carbon. The reference normal is computed once by
// the caller and threaded through every rotation here, never rediscovered.
func complete(s *chem.Structure, free []int, normal r3.Vec) error {
	rot := r3.NewRotation(rotationDeg*math.Pi/180, normal)
	maxPasses := len(free) + 1
	for pass := 0; len(free) > 0; pass++ {
		if pass >= maxPasses {
			return fmt.Errorf("%w: %d oxygens left after %d passes",
				ErrStalledReconstruction, len(free), pass)
		}
		var left []int
		progress := false
		for _, oid := range free {
			o := s.Atom(oid)
			cid, ok := nearestDeficientCarbon(s, o)
			if !ok {
				left = append(left, oid)
				continue
			}
			c := s.Atom(cid)
			var dir r3.Vec
			switch len(c.Bonds) {
			case 2:
				// the third bond opposes the sum of the other two
				v1 := s.Box.Displacement(c.Pos, s.Atom(c.Bonds[0]).Pos)
				v2 := s.Box.Displacement(c.Pos, s.Atom(c.Bonds[1]).Pos)
				dir = r3.Unit(r3.Scale(-1, r3.Add(v1, v2)))
			case 1:
				// rotate the known bond in the carbonate plane
				v1 := s.Box.Displacement(c.Pos, s.Atom(c.Bonds[0]).Pos)
				dir = rot.Rotate(r3.Unit(v1))
			case 0:
				return fmt.Errorf("%w: carbon %d", ErrCarbonUnbonded, cid)
			}
			o.Pos = r3.Add(c.Pos, r3.Scale(IdealBondLength, dir))
			s.AddBond(oid, cid)
			progress = true
		}
		if !progress {
			return fmt.Errorf("%w: no bond completed for %d free oxygens",
				ErrStalledReconstruction, len(free))
		}
		free = left
	}
	return nil
}

// nearestDeficientCarbon returns the id of the carbon with fewer than 3
// bonds closest to o under the minimum image, if any exists.
func nearestDeficientCarbon(s *chem.Structure, o *chem.Atom) (int, bool) {
	best, bestDist := -1, math.MaxFloat64
	for _, at := range s.Atoms {
		if !at.Is(chem.Carbon) || len(at.Bonds) >= 3 {
			continue
		}
		if d := s.Box.Distance(o.Pos, at.Pos); d < bestDist {
			best, bestDist = at.ID, d
		}
	}
	return best, best >= 0
}

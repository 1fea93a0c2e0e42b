/*
 * structure.go, part of carbslab.
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
	"errors"
	"fmt"
)

// ErrDuplicateCoordinates reports two atoms occupying numerically identical
// positions; such a structure is invalid.
var ErrDuplicateCoordinates = errors.New("duplicate coordinates")

// Structure is a flat arena of atoms plus the periodic box they live in.
// Atoms are addressed by their arena index (Atom.ID); the pipeline mutates
// bonds, names and residue ids in place.
type Structure struct {
	Name  string
	Atoms []*Atom
	Box   Box
}

// Len returns the number of atoms.
func (s *Structure) Len() int {
	return len(s.Atoms)
}

// Atom returns the atom with arena index id. Out-of-range ids are a
// programming error and panic.
func (s *Structure) Atom(id int) *Atom {
	if id < 0 || id >= len(s.Atoms) {
		panic(fmt.Sprintf("chem: atom id %d out of range (%d atoms)", id, len(s.Atoms)))
	}
	return s.Atoms[id]
}

// AddAtom appends an atom to the arena, assigns its ID and returns it.
func (s *Structure) AddAtom(a *Atom) int {
	a.ID = len(s.Atoms)
	s.Atoms = append(s.Atoms, a)
	return a.ID
}

// Bonded reports whether atoms i and j share a bond.
func (s *Structure) Bonded(i, j int) bool {
	for _, b := range s.Atom(i).Bonds {
		if b == j {
			return true
		}
	}
	return false
}

// AddBond registers a symmetric bond between atoms i and j. Adding an
// existing bond is a no-op.
func (s *Structure) AddBond(i, j int) {
	if i == j {
		panic(fmt.Sprintf("chem: atom %d cannot bond to itself", i))
	}
	if s.Bonded(i, j) {
		return
	}
	s.Atom(i).Bonds = append(s.Atom(i).Bonds, j)
	s.Atom(j).Bonds = append(s.Atom(j).Bonds, i)
}

// RemoveBond deletes the bond between i and j if present.
func (s *Structure) RemoveBond(i, j int) {
	s.Atom(i).Bonds = without(s.Atom(i).Bonds, j)
	s.Atom(j).Bonds = without(s.Atom(j).Bonds, i)
}

func without(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Neighbors returns the ids of all atoms within cutoff of atom id under the
// minimum-image convention, excluding the atom itself. A nil pred matches
// every atom. The scan is linear over the arena; slab sizes here make a
// spatial index unnecessary.
func (s *Structure) Neighbors(id int, cutoff float64, pred func(*Atom) bool) []int {
	var out []int
	at := s.Atom(id)
	for _, other := range s.Atoms {
		if other.ID == id {
			continue
		}
		if pred != nil && !pred(other) {
			continue
		}
		if s.Box.Distance(at.Pos, other.Pos) <= cutoff {
			out = append(out, other.ID)
		}
	}
	return out
}

// Canonicalize rewrites atom and residue names to the canonical slab
// vocabulary (CX1/CRB, OX1/CRB, CA/CA). It is the first point where an
// unrecognized atom name surfaces as ErrUnknownAtomName.
func (s *Structure) Canonicalize() error {
	for _, at := range s.Atoms {
		sp, err := ClassifyName(at.Name)
		if err != nil {
			return fmt.Errorf("atom %d (serial %d): %w", at.ID, at.Serial, err)
		}
		switch sp {
		case Carbon:
			at.Name = CarbonName
			at.ResName = CarbonateRes
		case Oxygen:
			at.Name = OxygenName
			at.ResName = CarbonateRes
		case Calcium:
			at.Name = CalciumName
			at.ResName = CalciumRes
		}
	}
	return nil
}

// DuplicatePositions scans for two atoms at numerically identical
// coordinates and returns the first offending pair.
func (s *Structure) DuplicatePositions() (int, int, bool) {
	seen := make(map[[3]float64]int, len(s.Atoms))
	for _, at := range s.Atoms {
		key := [3]float64{at.Pos.X, at.Pos.Y, at.Pos.Z}
		if prev, ok := seen[key]; ok {
			return prev, at.ID, true
		}
		seen[key] = at.ID
	}
	return 0, 0, false
}

// CheckDuplicates returns ErrDuplicateCoordinates naming the first pair of
// coincident atoms, or nil.
func (s *Structure) CheckDuplicates() error {
	if i, j, dup := s.DuplicatePositions(); dup {
		return fmt.Errorf("%w: atoms %d and %d", ErrDuplicateCoordinates, i, j)
	}
	return nil
}

// Clone returns a deep copy of the structure.
func (s *Structure) Clone() *Structure {
	ns := &Structure{Name: s.Name, Box: s.Box, Atoms: make([]*Atom, len(s.Atoms))}
	for i, at := range s.Atoms {
		ns.Atoms[i] = at.Copy()
	}
	return ns
}

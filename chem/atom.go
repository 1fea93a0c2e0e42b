/*
 * atom.go, part of carbslab.
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
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrUnknownAtomName reports an atom whose name maps to no species handled
// by this pipeline. It is fatal for the structure being processed.
var ErrUnknownAtomName = errors.New("unknown atom name")

// Species is the chemical role an atom plays in a carbonate slab.
type Species int

const (
	// Carbon is the central atom of a carbonate ion, bonded to exactly
	// three oxygens.
	Carbon Species = iota
	// Oxygen is a carbonate terminal atom, bonded to exactly one carbon.
	Oxygen
	// Calcium is the lone cation species; it carries no bonds.
	Calcium
)

// Canonical atom and residue names written to output structures.
const (
	CarbonName   = "CX1"
	OxygenName   = "OX1" // oxygens are renumbered OX1..OX3 per residue
	CalciumName  = "CA"
	CarbonateRes = "CRB"
	CalciumRes   = "CA"
)

func (s Species) String() string {
	switch s {
	case Carbon:
		return "carbon"
	case Oxygen:
		return "oxygen"
	case Calcium:
		return "calcium"
	}
	return fmt.Sprintf("species(%d)", int(s))
}

// WantBonds returns the bond count the species must have once the
// structure is complete.
func (s Species) WantBonds() int {
	switch s {
	case Carbon:
		return 3
	case Oxygen:
		return 1
	}
	return 0
}

// ClassifyName maps a PDB atom name to its species. It accepts both the raw
// names produced by upstream crystallographic tooling (C, O, Ca1, CA...) and
// the canonical names this pipeline writes (CX1, OX2, CA). Calcium is checked
// before carbon since both share the leading C.
func ClassifyName(name string) (Species, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	switch {
	case n == "":
		return 0, fmt.Errorf("%w: empty name", ErrUnknownAtomName)
	case strings.HasPrefix(n, "CA"):
		return Calcium, nil
	case n[0] == 'C':
		return Carbon, nil
	case n[0] == 'O':
		return Oxygen, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAtomName, name)
}

// Atom is a single atom record. ID is the stable arena index assigned by the
// owning Structure; Serial is whatever serial number the source file carried.
// ResID stays 0 until residue assignment. Bonds holds the ids of bonded
// atoms, 0-3 entries for this chemistry.
type Atom struct {
	ID      int
	Serial  int
	Name    string
	ResName string
	ResID   int
	Pos     r3.Vec
	Bonds   []int
}

// Species classifies the atom by its current name.
func (a *Atom) Species() (Species, error) {
	return ClassifyName(a.Name)
}

// Is reports whether the atom belongs to species sp. Atoms with
// unclassifiable names match nothing.
func (a *Atom) Is(sp Species) bool {
	got, err := ClassifyName(a.Name)
	return err == nil && got == sp
}

// Copy returns an independent copy of the atom.
func (a *Atom) Copy() *Atom {
	na := *a
	na.Bonds = append([]int(nil), a.Bonds...)
	return &na
}

/*
 * residue.go, part of carbslab.
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

	"github.com/molsurf/carbslab/chem"
)

// ErrBondCountMismatch: at residue-assignment time an atom's bond count does
// not match what its species requires (3 for carbon, 1 for oxygen, 0 for
// calcium).
var ErrBondCountMismatch = errors.New("bond count mismatch")

// AssignResidues partitions the atoms of s into residues with 1-based,
// contiguous, monotonically increasing ids: carbons in ascending arena order
// anchor one carbonate residue each (the carbon plus its three oxygens,
// renamed OX1..OX3 in bond order), then every calcium gets its own singleton
// residue continuing the same sequence. Bond counts are validated as a
// post-condition of reconstruction.
func AssignResidues(s *chem.Structure) error {
	next := 1
	for _, at := range s.Atoms {
		if !at.Is(chem.Carbon) {
			continue
		}
		if len(at.Bonds) != 3 {
			return fmt.Errorf("%w: carbon %d has %d bonds, want 3",
				ErrBondCountMismatch, at.ID, len(at.Bonds))
		}
		at.ResID = next
		at.ResName = chem.CarbonateRes
		for k, oid := range at.Bonds {
			o := s.Atom(oid)
			if len(o.Bonds) != 1 {
				return fmt.Errorf("%w: oxygen %d has %d bonds, want 1",
					ErrBondCountMismatch, oid, len(o.Bonds))
			}
			o.ResID = next
			o.ResName = chem.CarbonateRes
			o.Name = fmt.Sprintf("OX%d", k+1)
		}
		next++
	}
	for _, at := range s.Atoms {
		if !at.Is(chem.Calcium) {
			continue
		}
		if len(at.Bonds) != 0 {
			return fmt.Errorf("%w: calcium %d has %d bonds, want 0",
				ErrBondCountMismatch, at.ID, len(at.Bonds))
		}
		at.ResID = next
		at.ResName = chem.CalciumRes
		next++
	}
	// an oxygen bonded to nothing, or to a non-carbon, would be left
	// without a residue
	for _, at := range s.Atoms {
		if at.ResID == 0 {
			return fmt.Errorf("%w: atom %d (%s) belongs to no residue",
				ErrBondCountMismatch, at.ID, at.Name)
		}
	}
	return nil
}

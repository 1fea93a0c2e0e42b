/*
 * verify.go, part of carbslab.
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
	"fmt"
	"sort"

	"github.com/molsurf/carbslab/chem"
)

// Verify checks the completion invariants on an already-built structure:
// per-species bond counts, contiguous 1-based residue ids, 4-member
// carbonate and single-member calcium residues, and distinct coordinates.
// It reports the first violation found.
func Verify(s *chem.Structure) error {
	members := make(map[int]int)
	for _, at := range s.Atoms {
		sp, err := at.Species()
		if err != nil {
			return fmt.Errorf("atom %d: %w", at.ID, err)
		}
		if want := sp.WantBonds(); len(at.Bonds) != want {
			return fmt.Errorf("%w: %s %d has %d bonds, want %d",
				ErrBondCountMismatch, sp, at.ID, len(at.Bonds), want)
		}
		if at.ResID <= 0 {
			return fmt.Errorf("atom %d has no residue id", at.ID)
		}
		members[at.ResID]++
	}
	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for i, id := range ids {
		if id != i+1 {
			return fmt.Errorf("residue ids not contiguous: expected %d, found %d", i+1, id)
		}
		if n := members[id]; n != 1 && n != 4 {
			return fmt.Errorf("residue %d has %d members, want 1 or 4", id, n)
		}
	}
	return s.CheckDuplicates()
}

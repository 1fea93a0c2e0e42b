/*
 * canonical.go, part of carbslab.
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

package pdb

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/molsurf/carbslab/chem"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReorderFile stably sorts the contiguous block of ATOM records in the file
// at path by the residue id column (23-26), preserving the original order
// within each residue, and rewrites the file in place. Header and CONECT
// records are left where they are; atom serials are not renumbered, so the
// connectivity records stay valid.
func ReorderFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lines := strings.SplitAfter(string(data), "\n")
	// a non-terminated last record would concatenate with whatever sorts
	// after it
	if n := len(lines); n > 0 && lines[n-1] != "" {
		lines[n-1] += "\n"
	}
	first, last := -1, -1
	for i, line := range lines {
		if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return fmt.Errorf("pdb: %s has no ATOM records", path)
	}
	block := lines[first : last+1]
	resids := make([]int, len(block))
	for i, line := range block {
		if len(line) < 26 {
			return fmt.Errorf("pdb: %s: short ATOM record in reorder", path)
		}
		id, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
		if err != nil {
			return fmt.Errorf("pdb: %s: residue id column: %w", path, err)
		}
		resids[i] = id
	}
	order := make([]int, len(block))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return resids[order[a]] < resids[order[b]] })
	sorted := make([]string, len(block))
	for i, idx := range order {
		sorted[i] = block[idx]
	}
	copy(block, sorted)
	return os.WriteFile(path, []byte(strings.Join(lines, "")), 0o644)
}

// Unwrap shifts atoms by whole box lengths so that no residue is split
// across a periodic image. Each residue is walked breadth-first over its
// bond graph from its first atom; every newly reached member is moved to the
// minimum-image position relative to the atom it was reached from. Singleton
// residues and unassigned atoms are untouched.
func Unwrap(s *chem.Structure) {
	members := make(map[int][]int)
	var order []int
	for _, at := range s.Atoms {
		if at.ResID == 0 {
			continue
		}
		if _, ok := members[at.ResID]; !ok {
			order = append(order, at.ResID)
		}
		members[at.ResID] = append(members[at.ResID], at.ID)
	}
	for _, res := range order {
		ids := members[res]
		if len(ids) < 2 {
			continue
		}
		visited := map[int]bool{ids[0]: true}
		queue := []int{ids[0]}
		for len(queue) > 0 {
			pid := queue[0]
			queue = queue[1:]
			p := s.Atom(pid)
			for _, bid := range p.Bonds {
				if visited[bid] {
					continue
				}
				b := s.Atom(bid)
				b.Pos = r3.Add(p.Pos, s.Box.Displacement(p.Pos, b.Pos))
				visited[bid] = true
				queue = append(queue, bid)
			}
		}
	}
}

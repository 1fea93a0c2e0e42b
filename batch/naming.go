/*
 * naming.go, part of carbslab.
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

package batch

import (
	"fmt"
	"strings"
)

// Job identifies one structure in the batch cross product.
type Job struct {
	Polymorph   string
	Orientation [3]int
	SizeNM      int
}

// HKL returns the concatenated Miller indices, e.g. "104".
func (j Job) HKL() string {
	var b strings.Builder
	for _, idx := range j.Orientation {
		fmt.Fprintf(&b, "%d", idx)
	}
	return b.String()
}

// Name is the bare structure name used in logs and artifact names.
func (j Job) Name() string {
	return fmt.Sprintf("%s-%s_surface-%dnm", j.Polymorph, j.HKL(), j.SizeNM)
}

// InputName is the file the upstream tooling delivers the raw slab under,
// without any compression suffix.
func (j Job) InputName() string {
	return fmt.Sprintf("%s-%s_slab-%dnm.pdb", j.Polymorph, j.HKL(), j.SizeNM)
}

// OutputName is the final structure file name.
func (j Job) OutputName(compress bool) string {
	name := j.Name() + ".pdb"
	if compress {
		name += ".gz"
	}
	return name
}

// DiagnosticName is the error artifact written when the structure fails;
// always uncompressed so it can be inspected directly.
func (j Job) DiagnosticName() string {
	return "error_" + j.Name() + ".pdb"
}

// intermediateName is the per-structure temp file used between the
// reconstruction and the reorder/unwrap stages.
func (j Job) intermediateName() string {
	return j.Name() + ".tmp.pdb"
}

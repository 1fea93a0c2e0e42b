/*
 * result.go, part of carbslab.
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

import "github.com/molsurf/carbslab/chem"

// Result is the tagged outcome of processing one structure: either success
// (Err nil, OutputPath set) or failure (Err holds the condition, Partial the
// structure state at failure time, already persisted as the diagnostic
// artifact). Failures never abort the batch.
type Result struct {
	Job        Job
	OutputPath string
	Err        error
	Partial    *chem.Structure
}

// Failed reports whether the structure hit a fatal condition.
func (r Result) Failed() bool {
	return r.Err != nil
}

/*
 * doc.go, part of carbslab.
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

// Package pdb reads and writes slab structures in the fixed-column PDB
// format exchanged with the upstream crystallographic tooling: a CRYST1
// record for the periodic box, ATOM records with the atom name in columns
// 14-16, residue name in 18-20 and residue id in 23-26, and CONECT records
// listing bonded serial pairs. Files ending in .gz are compressed
// transparently. It also hosts the canonicalization steps that operate on
// the written file: the stable residue reorder and the periodic unwrap.
package pdb

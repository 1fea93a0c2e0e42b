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

// Package chem holds the in-memory model for calcium-carbonate slab
// structures: atoms in a flat, id-addressed arena, a periodic box with
// minimum-image geometry, and a symmetric bond relation kept as adjacency
// lists of atom ids. Residue membership and connectivity never hold object
// references, only ids, so the atom/residue graph stays acyclic in memory.
package chem

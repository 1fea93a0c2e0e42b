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

// Package rebuild reconstructs the covalent connectivity of carbonate ions
// in a surface slab. Cutting a crystal at an arbitrary plane leaves carbons
// with 0-2 of their 3 oxygens within bonding distance, either because the
// partner sits across the periodic boundary or because it was clipped away;
// this package detects the surviving bonds, then completes the missing ones
// geometrically from the planar 120 degree symmetry of the ion, and finally
// partitions the atoms into sequentially numbered residues.
package rebuild

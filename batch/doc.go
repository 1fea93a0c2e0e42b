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

// Package batch supervises the reconstruction pipeline over a cross product
// of polymorphs, crystallographic orientations and target lateral sizes,
// one structure at a time. Every structure-local failure is caught, turned
// into a diagnostic artifact next to the would-be output, and logged; the
// batch then moves on. Only a missing or unreadable input file aborts the
// run, since there is nothing to reconstruct from.
package batch

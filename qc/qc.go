/*
 * qc.go, part of carbslab.
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

// Package qc computes reconstruction diagnostics for a finished slab: the
// distribution of C-O bond lengths and O-C-O angles across all carbonate
// groups, with optional histogram plots. It is reporting only; nothing here
// mutates the structure.
package qc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/molsurf/carbslab/chem"
)

// Survey aggregates per-bond and per-angle observations over every complete
// carbonate group of a structure.
type Survey struct {
	BondLengths []float64 // Å, one per C-O bond
	Angles      []float64 // degrees, one per O-C-O pair
	Carbonates  int
	Calciums    int
}

// Collect surveys s. Carbons without their full three bonds are skipped;
// the invariant checks belong to the rebuild stage, not here.
func Collect(s *chem.Structure) *Survey {
	sv := new(Survey)
	for _, at := range s.Atoms {
		if at.Is(chem.Calcium) {
			sv.Calciums++
			continue
		}
		if !at.Is(chem.Carbon) || len(at.Bonds) != 3 {
			continue
		}
		sv.Carbonates++
		var vecs [3]r3.Vec
		for i, oid := range at.Bonds {
			vecs[i] = s.Box.Displacement(at.Pos, s.Atom(oid).Pos)
			sv.BondLengths = append(sv.BondLengths, r3.Norm(vecs[i]))
		}
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				sv.Angles = append(sv.Angles, chem.Angle(vecs[i], vecs[j])*180/math.Pi)
			}
		}
	}
	return sv
}

// LengthStats returns min, max and mean of the surveyed bond lengths.
func (sv *Survey) LengthStats() (min, max, mean float64) {
	return stats(sv.BondLengths)
}

// AngleStats returns min, max and mean of the surveyed angles in degrees.
func (sv *Survey) AngleStats() (min, max, mean float64) {
	return stats(sv.Angles)
}

func stats(xs []float64) (min, max, mean float64) {
	if len(xs) == 0 {
		return 0, 0, 0
	}
	min, max = xs[0], xs[0]
	var sum float64
	for _, x := range xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
		sum += x
	}
	return min, max, sum / float64(len(xs))
}

// WritePlots saves bond-length and angle histograms as <base>_bondlen.png
// and <base>_angle.png.
func WritePlots(sv *Survey, base string) error {
	if err := histogram(sv.BondLengths, "C-O bond length / Å", base+"_bondlen.png"); err != nil {
		return err
	}
	return histogram(sv.Angles, "O-C-O angle / deg", base+"_angle.png")
}

func histogram(xs []float64, label, path string) error {
	if len(xs) == 0 {
		return fmt.Errorf("qc: nothing to plot for %s", label)
	}
	p := plot.New()
	p.X.Label.Text = label
	p.Y.Label.Text = "count"
	h, err := plotter.NewHist(plotter.Values(xs), 20)
	if err != nil {
		return fmt.Errorf("qc: %w", err)
	}
	p.Add(h)
	return p.Save(5*vg.Inch, 3.5*vg.Inch, path)
}

/*
 * qc_test.go, part of carbslab.
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

package qc

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/molsurf/carbslab/chem"
)

func idealSlab() *chem.Structure {
	s := &chem.Structure{Box: chem.NewBox(20, 20, 20, 90, 90, 90)}
	addCarbonate(s, r3.Vec{X: 5, Y: 5, Z: 5})
	addCarbonate(s, r3.Vec{X: 15, Y: 15, Z: 15})
	s.AddAtom(&chem.Atom{Name: chem.CalciumName, ResName: chem.CalciumRes, ResID: 3, Pos: r3.Vec{X: 10, Y: 10, Z: 10}})
	return s
}

func addCarbonate(s *chem.Structure, center r3.Vec) {
	c := s.AddAtom(&chem.Atom{Name: chem.CarbonName, ResName: chem.CarbonateRes, Pos: center})
	for k := 0; k < 3; k++ {
		theta := float64(k) * 2 * math.Pi / 3
		off := r3.Scale(1.285, r3.Vec{X: math.Cos(theta), Y: math.Sin(theta)})
		o := s.AddAtom(&chem.Atom{Name: "OX1", ResName: chem.CarbonateRes, Pos: r3.Add(center, off)})
		s.AddBond(c, o)
	}
}

func TestCollect_IdealGeometry(t *testing.T) {
	sv := Collect(idealSlab())

	assert.Equal(t, 2, sv.Carbonates)
	assert.Equal(t, 1, sv.Calciums)
	require.Len(t, sv.BondLengths, 6)
	require.Len(t, sv.Angles, 6)
	for _, l := range sv.BondLengths {
		assert.InDelta(t, 1.285, l, 1e-9)
	}
	for _, a := range sv.Angles {
		assert.InDelta(t, 120, a, 1e-9)
	}
}

func TestCollect_SkipsIncompleteCarbons(t *testing.T) {
	s := &chem.Structure{Box: chem.NewBox(20, 20, 20, 90, 90, 90)}
	c := s.AddAtom(&chem.Atom{Name: chem.CarbonName, ResName: chem.CarbonateRes, Pos: r3.Vec{X: 5, Y: 5, Z: 5}})
	o := s.AddAtom(&chem.Atom{Name: "OX1", ResName: chem.CarbonateRes, Pos: r3.Vec{X: 6.285, Y: 5, Z: 5}})
	s.AddBond(c, o)

	sv := Collect(s)
	assert.Zero(t, sv.Carbonates)
	assert.Empty(t, sv.BondLengths)
	assert.Empty(t, sv.Angles)
}

func TestCollect_MinImageBonds(t *testing.T) {
	// carbonate straddling the boundary still measures ideal lengths
	s := &chem.Structure{Box: chem.NewBox(20, 20, 20, 90, 90, 90)}
	addCarbonate(s, r3.Vec{X: 19.8, Y: 5, Z: 5})
	for _, at := range s.Atoms {
		at.Pos.X = math.Mod(at.Pos.X+20, 20)
	}

	sv := Collect(s)
	require.Len(t, sv.BondLengths, 3)
	for _, l := range sv.BondLengths {
		assert.InDelta(t, 1.285, l, 1e-9)
	}
}

func TestStats(t *testing.T) {
	sv := &Survey{BondLengths: []float64{1.2, 1.3, 1.3}, Angles: []float64{118, 122}}

	min, max, mean := sv.LengthStats()
	assert.InDelta(t, 1.2, min, 1e-12)
	assert.InDelta(t, 1.3, max, 1e-12)
	assert.InDelta(t, (1.2+1.3+1.3)/3, mean, 1e-12)

	min, max, mean = sv.AngleStats()
	assert.InDelta(t, 118, min, 1e-12)
	assert.InDelta(t, 122, max, 1e-12)
	assert.InDelta(t, 120, mean, 1e-12)
}

func TestStats_Empty(t *testing.T) {
	min, max, mean := new(Survey).LengthStats()
	assert.Zero(t, min)
	assert.Zero(t, max)
	assert.Zero(t, mean)
}

func TestWritePlots(t *testing.T) {
	base := filepath.Join(t.TempDir(), "calcite-104_surface-4nm")
	sv := &Survey{
		BondLengths: []float64{1.27, 1.28, 1.285, 1.29, 1.30, 1.285},
		Angles:      []float64{118.5, 119.2, 120.0, 120.4, 121.1, 120.8},
	}
	require.NoError(t, WritePlots(sv, base))

	for _, suffix := range []string{"_bondlen.png", "_angle.png"} {
		fi, err := os.Stat(base + suffix)
		require.NoError(t, err)
		assert.Positive(t, fi.Size())
	}
}

func TestWritePlots_EmptySurvey(t *testing.T) {
	base := filepath.Join(t.TempDir(), "empty")
	err := WritePlots(new(Survey), base)
	assert.Error(t, err)
}

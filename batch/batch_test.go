/*
 * batch_test.go, part of carbslab.
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
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/molsurf/carbslab/chem"
	"github.com/molsurf/carbslab/pdb"
	"github.com/molsurf/carbslab/rebuild"
)

// rawSlab builds a pre-reconstruction slab with upstream atom names and no
// connectivity: one complete carbonate (the plane donor), one carbonate with
// a detached third oxygen, and two calciums.
func rawSlab() *chem.Structure {
	s := &chem.Structure{Box: chem.NewBox(20, 20, 20, 90, 90, 90)}
	addRawCarbonate(s, r3.Vec{X: 15, Y: 15, Z: 15}, 3)
	addRawCarbonate(s, r3.Vec{X: 5, Y: 5, Z: 5}, 2)
	s.AddAtom(&chem.Atom{Name: "O", ResName: "UNK", Pos: r3.Vec{X: 6.5, Y: 4, Z: 5}})
	s.AddAtom(&chem.Atom{Name: "Ca", ResName: "UNK", Pos: r3.Vec{X: 10, Y: 10, Z: 10}})
	s.AddAtom(&chem.Atom{Name: "Ca", ResName: "UNK", Pos: r3.Vec{X: 12, Y: 12, Z: 12}})
	return s
}

// addRawCarbonate places a carbon and n in-plane oxygens at the ideal bond
// length, close enough for detection but with no bonds recorded.
func addRawCarbonate(s *chem.Structure, center r3.Vec, n int) {
	s.AddAtom(&chem.Atom{Name: "C", ResName: "UNK", Pos: center})
	for k := 0; k < n; k++ {
		theta := float64(k) * 2 * math.Pi / 3
		off := r3.Scale(rebuild.IdealBondLength, r3.Vec{X: math.Cos(theta), Y: math.Sin(theta)})
		s.AddAtom(&chem.Atom{Name: "O", ResName: "UNK", Pos: r3.Add(center, off)})
	}
}

func testConfig(t *testing.T, sizes ...int) *Config {
	t.Helper()
	cfg := &Config{
		InputDir:     t.TempDir(),
		OutputDir:    t.TempDir(),
		Polymorphs:   []string{"calcite"},
		Orientations: [][]int{{0, 0, 1}},
		SizesNM:      sizes,
	}
	require.NoError(t, cfg.Normalize())
	return cfg
}

func writeInput(t *testing.T, cfg *Config, job Job, s *chem.Structure) {
	t.Helper()
	require.NoError(t, pdb.Write(filepath.Join(cfg.InputDir, job.InputName()), s, pdb.Options{}))
}

func TestRun_ReconstructsSlab(t *testing.T) {
	cfg := testConfig(t, 4)
	job := Job{Polymorph: "calcite", Orientation: [3]int{0, 0, 1}, SizeNM: 4}
	writeInput(t, cfg, job, rawSlab())

	results, err := NewRunner(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.False(t, results[0].Failed(), "pipeline error: %v", results[0].Err)

	out, err := pdb.Read(results[0].OutputPath)
	require.NoError(t, err)
	require.NoError(t, rebuild.Verify(out))
	assert.Equal(t, 10, out.Len())

	// fresh serials, residues contiguous on disk
	prevRes := 0
	for i, at := range out.Atoms {
		assert.Equal(t, i+1, at.Serial)
		assert.GreaterOrEqual(t, at.ResID, prevRes)
		prevRes = at.ResID
	}

	// the detached oxygen was pulled onto the deficient carbon
	var rebuilt *chem.Atom
	for _, at := range out.Atoms {
		if at.ResID == 2 && at.Name == "OX3" {
			rebuilt = at
		}
	}
	require.NotNil(t, rebuilt)
	want := r3.Vec{X: 5 - 0.5*rebuild.IdealBondLength, Y: 5 - math.Sqrt(3)/2*rebuild.IdealBondLength, Z: 5}
	assert.InDelta(t, want.X, rebuilt.Pos.X, 5e-3)
	assert.InDelta(t, want.Y, rebuilt.Pos.Y, 5e-3)
	assert.InDelta(t, want.Z, rebuilt.Pos.Z, 5e-3)

	// intermediate file cleaned up
	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp.pdb"), "leftover intermediate %s", e.Name())
	}
}

func TestRun_InputWithRepeatedSerials(t *testing.T) {
	// upstream slabs can carry non-unique serials; the intermediate must be
	// reindexed or its CONECT records collapse onto one atom on reload
	cfg := testConfig(t, 4)
	s := rawSlab()
	for _, at := range s.Atoms {
		at.Serial = 7
	}
	job := Job{Polymorph: "calcite", Orientation: [3]int{0, 0, 1}, SizeNM: 4}
	writeInput(t, cfg, job, s)

	results, err := NewRunner(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.False(t, results[0].Failed(), "pipeline error: %v", results[0].Err)

	out, err := pdb.Read(results[0].OutputPath)
	require.NoError(t, err)
	require.NoError(t, rebuild.Verify(out))
	for i, at := range out.Atoms {
		assert.Equal(t, i+1, at.Serial)
	}
}

func TestRun_GzipInputAndOutput(t *testing.T) {
	cfg := testConfig(t, 4)
	cfg.CompressOutput = true
	job := Job{Polymorph: "calcite", Orientation: [3]int{0, 0, 1}, SizeNM: 4}
	path := filepath.Join(cfg.InputDir, job.InputName()+".gz")
	require.NoError(t, pdb.Write(path, rawSlab(), pdb.Options{}))

	results, err := NewRunner(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.False(t, results[0].Failed(), "pipeline error: %v", results[0].Err)
	assert.True(t, strings.HasSuffix(results[0].OutputPath, ".pdb.gz"))

	out, err := pdb.Read(results[0].OutputPath)
	require.NoError(t, err)
	assert.NoError(t, rebuild.Verify(out))
}

func TestRun_FailureWritesDiagnosticAndContinues(t *testing.T) {
	cfg := testConfig(t, 4, 5)

	// two carbons close enough that the midway oxygen sees both
	bad := &chem.Structure{Box: chem.NewBox(20, 20, 20, 90, 90, 90)}
	bad.AddAtom(&chem.Atom{Name: "C", ResName: "UNK", Pos: r3.Vec{X: 5, Y: 5, Z: 5}})
	bad.AddAtom(&chem.Atom{Name: "C", ResName: "UNK", Pos: r3.Vec{X: 6.8, Y: 5, Z: 5}})
	bad.AddAtom(&chem.Atom{Name: "O", ResName: "UNK", Pos: r3.Vec{X: 5.9, Y: 5, Z: 5}})

	badJob := Job{Polymorph: "calcite", Orientation: [3]int{0, 0, 1}, SizeNM: 4}
	goodJob := Job{Polymorph: "calcite", Orientation: [3]int{0, 0, 1}, SizeNM: 5}
	writeInput(t, cfg, badJob, bad)
	writeInput(t, cfg, goodJob, rawSlab())

	results, err := NewRunner(cfg, nil).Run(context.Background())
	require.NoError(t, err, "a structure failure must not abort the run")
	require.Len(t, results, 2)

	require.True(t, results[0].Failed())
	assert.ErrorIs(t, results[0].Err, rebuild.ErrBondAmbiguity)
	assert.NotNil(t, results[0].Partial)
	assert.Empty(t, results[0].OutputPath)

	diag := filepath.Join(cfg.OutputDir, badJob.DiagnosticName())
	saved, derr := pdb.Read(diag)
	require.NoError(t, derr, "diagnostic artifact missing")
	assert.Equal(t, 3, saved.Len())

	_, serr := os.Stat(filepath.Join(cfg.OutputDir, badJob.OutputName(false)))
	assert.True(t, os.IsNotExist(serr), "failed structure must not leave an output file")

	require.False(t, results[1].Failed(), "pipeline error: %v", results[1].Err)
}

func TestRun_DuplicateCoordinatesFailStructure(t *testing.T) {
	cfg := testConfig(t, 4)
	s := rawSlab()
	// second calcium stacked exactly on the first
	s.Atom(s.Len() - 1).Pos = r3.Vec{X: 10, Y: 10, Z: 10}
	job := Job{Polymorph: "calcite", Orientation: [3]int{0, 0, 1}, SizeNM: 4}
	writeInput(t, cfg, job, s)

	results, err := NewRunner(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].Failed())
	assert.ErrorIs(t, results[0].Err, chem.ErrDuplicateCoordinates)

	_, derr := os.Stat(filepath.Join(cfg.OutputDir, job.DiagnosticName()))
	assert.NoError(t, derr)
}

func TestRun_MissingInputIsFatal(t *testing.T) {
	cfg := testConfig(t, 4)

	_, err := NewRunner(cfg, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input slab")
}

func TestRun_HonorsCancellation(t *testing.T) {
	cfg := testConfig(t, 4)
	job := Job{Polymorph: "calcite", Orientation: [3]int{0, 0, 1}, SizeNM: 4}
	writeInput(t, cfg, job, rawSlab())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := NewRunner(cfg, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestJobs_CrossProductOrder(t *testing.T) {
	cfg := &Config{
		Polymorphs:   []string{"calcite", "aragonite"},
		Orientations: [][]int{{1, 0, 4}, {0, 0, 1}},
		SizesNM:      []int{4, 8},
	}
	jobs := NewRunner(cfg, nil).Jobs()
	require.Len(t, jobs, 8)
	assert.Equal(t, "calcite-104_surface-4nm", jobs[0].Name())
	assert.Equal(t, "calcite-104_surface-8nm", jobs[1].Name())
	assert.Equal(t, "calcite-001_surface-4nm", jobs[2].Name())
	assert.Equal(t, "aragonite-104_surface-4nm", jobs[4].Name())
}

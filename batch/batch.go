/*
 * batch.go, part of carbslab.
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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/molsurf/carbslab/chem"
	"github.com/molsurf/carbslab/pdb"
	"github.com/molsurf/carbslab/qc"
	"github.com/molsurf/carbslab/rebuild"
)

// Runner drives the batch. Processing is strictly sequential: one structure
// runs end-to-end before the next starts, and there is no shared state
// between structures.
type Runner struct {
	cfg *Config
	log *zap.Logger
}

// NewRunner wires a runner. A nil logger is replaced with a no-op one.
func NewRunner(cfg *Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log}
}

// Jobs expands the configured cross product in deterministic order:
// polymorphs, then orientations, then sizes.
func (r *Runner) Jobs() []Job {
	var jobs []Job
	for _, poly := range r.cfg.Polymorphs {
		for _, o := range r.cfg.Orientations {
			for _, size := range r.cfg.SizesNM {
				jobs = append(jobs, Job{
					Polymorph:   poly,
					Orientation: [3]int{o[0], o[1], o[2]},
					SizeNM:      size,
				})
			}
		}
	}
	return jobs
}

// Run processes every job. The returned error is non-nil only for run-fatal
// conditions (missing input, unusable output directory, cancellation);
// structure-local failures are reported inside the results and do not stop
// the batch. Cancellation is honored between structures, never mid-way
// through one.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("batch: output dir: %w", err)
	}
	results := make([]Result, 0, len(r.Jobs()))
	for _, job := range r.Jobs() {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}
		res, err := r.process(job)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// process runs the whole pipeline for one structure and absorbs every
// structure-local failure into the result.
func (r *Runner) process(job Job) (Result, error) {
	res := Result{Job: job}
	inPath, err := r.findInput(job)
	if err != nil {
		return res, err
	}
	s, err := pdb.Read(inPath)
	if err != nil {
		// no data to reconstruct from; fatal to the run
		return res, fmt.Errorf("batch: %s: %w", job.Name(), err)
	}
	s.Name = job.Name()

	outPath := filepath.Join(r.cfg.OutputDir, job.OutputName(r.cfg.CompressOutput))
	tmpPath := filepath.Join(r.cfg.OutputDir, job.intermediateName())
	final, perr := r.pipeline(s, tmpPath, outPath)
	if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
		r.log.Warn("could not remove intermediate file",
			zap.String("path", tmpPath), zap.Error(rmErr))
	}
	if perr != nil {
		os.Remove(outPath) // discard any partially written output
		res.Err = perr
		res.Partial = final
		diag := filepath.Join(r.cfg.OutputDir, job.DiagnosticName())
		if werr := pdb.Write(diag, final, pdb.Options{Remark: "state at failure: " + perr.Error()}); werr != nil {
			r.log.Error("could not write diagnostic artifact",
				zap.String("structure", job.Name()), zap.Error(werr))
		}
		r.log.Warn("structure failed, continuing batch",
			zap.String("structure", job.Name()),
			zap.String("artifact", diag),
			zap.Error(perr))
		return res, nil
	}
	res.OutputPath = outPath
	r.log.Info("structure complete",
		zap.String("structure", job.Name()),
		zap.Int("atoms", final.Len()),
		zap.String("output", outPath))
	if r.cfg.QCPlots {
		base := strings.TrimSuffix(strings.TrimSuffix(outPath, ".gz"), ".pdb")
		if err := qc.WritePlots(qc.Collect(final), base); err != nil {
			r.log.Warn("qc plots skipped", zap.String("structure", job.Name()), zap.Error(err))
		}
	}
	return res, nil
}

// pipeline is the per-structure sequence: canonicalize, reconstruct bonds,
// assign residues, write the intermediate, reorder it on disk, reload,
// unwrap, duplicate-check, final save with fresh serials. It returns the
// structure state at exit so failures can be persisted for diagnosis.
func (r *Runner) pipeline(s *chem.Structure, tmpPath, outPath string) (*chem.Structure, error) {
	if err := s.Canonicalize(); err != nil {
		return s, err
	}
	if err := rebuild.Reconstruct(s, r.cfg.BondCutoff); err != nil {
		return s, err
	}
	if err := rebuild.AssignResidues(s); err != nil {
		return s, err
	}
	// fresh serials before the on-disk reorder: the raw input may carry
	// duplicate serials, which would corrupt CONECT resolution on reload
	if err := pdb.Write(tmpPath, s, pdb.Options{Reindex: true}); err != nil {
		return s, err
	}
	if err := pdb.ReorderFile(tmpPath); err != nil {
		return s, err
	}
	reordered, err := pdb.Read(tmpPath)
	if err != nil {
		return s, err
	}
	reordered.Name = s.Name
	pdb.Unwrap(reordered)
	if err := reordered.CheckDuplicates(); err != nil {
		return reordered, err
	}
	opts := pdb.Options{Reindex: true, Remark: "CaCO3 surface slab, bonds reconstructed with carbslab"}
	if err := pdb.Write(outPath, reordered, opts); err != nil {
		return reordered, err
	}
	return reordered, nil
}

// findInput locates the raw slab, preferring the uncompressed file.
func (r *Runner) findInput(job Job) (string, error) {
	plain := filepath.Join(r.cfg.InputDir, job.InputName())
	for _, p := range []string{plain, plain + ".gz"} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("batch: no input slab for %s (tried %s[.gz])", job.Name(), plain)
}

/*
 * config_test.go, part of carbslab.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molsurf/carbslab/rebuild"
)

func validConfig() *Config {
	return &Config{
		InputDir:     "in",
		Polymorphs:   []string{"calcite"},
		Orientations: [][]int{{1, 0, 4}},
		SizesNM:      []int{4},
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carbslab.yaml")
	yaml := `input_dir: /data/slabs
output_dir: /data/surfaces
polymorphs: [calcite, aragonite]
orientations:
  - [1, 0, 4]
  - [0, 0, 1]
sizes_nm: [4, 8]
bond_cutoff: 1.25
compress_output: true
qc_plots: true
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/slabs", cfg.InputDir)
	assert.Equal(t, "/data/surfaces", cfg.OutputDir)
	assert.Equal(t, []string{"calcite", "aragonite"}, cfg.Polymorphs)
	assert.Equal(t, [][]int{{1, 0, 4}, {0, 0, 1}}, cfg.Orientations)
	assert.Equal(t, []int{4, 8}, cfg.SizesNM)
	assert.Equal(t, 1.25, cfg.BondCutoff)
	assert.True(t, cfg.CompressOutput)
	assert.True(t, cfg.QCPlots)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Normalize())

	assert.Equal(t, cfg.InputDir, cfg.OutputDir, "output dir falls back to input dir")
	assert.Equal(t, rebuild.DefaultBondCutoff, cfg.BondCutoff)
}

func TestNormalize_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no input dir", func(c *Config) { c.InputDir = "" }, "input_dir"},
		{"no polymorphs", func(c *Config) { c.Polymorphs = nil }, "polymorph"},
		{"no orientations", func(c *Config) { c.Orientations = nil }, "orientation"},
		{"short orientation", func(c *Config) { c.Orientations = [][]int{{1, 0}} }, "indices"},
		{"no sizes", func(c *Config) { c.SizesNM = nil }, "size"},
		{"negative size", func(c *Config) { c.SizesNM = []int{-4} }, "positive"},
		{"negative cutoff", func(c *Config) { c.BondCutoff = -1 }, "bond_cutoff"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Normalize()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

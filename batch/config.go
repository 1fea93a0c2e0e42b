/*
 * config.go, part of carbslab.
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
	"fmt"

	"github.com/spf13/viper"

	"github.com/molsurf/carbslab/rebuild"
)

// LogConfig selects logger verbosity and encoding for the CLI.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// Config carries the static batch parameters. It is normally populated from
// a YAML file via Load.
type Config struct {
	InputDir       string    `mapstructure:"input_dir"`
	OutputDir      string    `mapstructure:"output_dir"`
	Polymorphs     []string  `mapstructure:"polymorphs"`
	Orientations   [][]int   `mapstructure:"orientations"` // Miller index triples
	SizesNM        []int     `mapstructure:"sizes_nm"`
	BondCutoff     float64   `mapstructure:"bond_cutoff"`
	CompressOutput bool      `mapstructure:"compress_output"`
	QCPlots        bool      `mapstructure:"qc_plots"`
	Log            LogConfig `mapstructure:"log"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("batch: read config: %w", err)
	}
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("batch: parse config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize applies defaults and validates the cross-product parameters.
func (c *Config) Normalize() error {
	if c.InputDir == "" {
		return fmt.Errorf("batch: input_dir is required")
	}
	if c.OutputDir == "" {
		c.OutputDir = c.InputDir
	}
	if len(c.Polymorphs) == 0 {
		return fmt.Errorf("batch: at least one polymorph is required")
	}
	if len(c.Orientations) == 0 {
		return fmt.Errorf("batch: at least one orientation is required")
	}
	for i, o := range c.Orientations {
		if len(o) != 3 {
			return fmt.Errorf("batch: orientation %d has %d indices, want 3", i, len(o))
		}
	}
	if len(c.SizesNM) == 0 {
		return fmt.Errorf("batch: at least one size is required")
	}
	for _, sz := range c.SizesNM {
		if sz <= 0 {
			return fmt.Errorf("batch: sizes_nm entries must be positive, got %d", sz)
		}
	}
	if c.BondCutoff == 0 {
		c.BondCutoff = rebuild.DefaultBondCutoff
	}
	if c.BondCutoff < 0 {
		return fmt.Errorf("batch: bond_cutoff must be positive, got %g", c.BondCutoff)
	}
	return nil
}

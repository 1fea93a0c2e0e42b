/*
 * root.go, part of carbslab.
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

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/molsurf/carbslab/batch"
)

const version = "0.3.1"

var rootCmd = &cobra.Command{
	Use:           "carbslab",
	Short:         "bond reconstruction for calcium-carbonate surface slabs",
	SilenceUsage:  true,
	SilenceErrors: false,
	Version:       version,
}

func init() {
	rootCmd.AddCommand(runCmd, checkCmd)
}

// newLogger builds the process logger from the batch config. The console
// format is meant for interactive runs, json for pipelines.
func newLogger(cfg batch.LogConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.Level != "" {
		lvl, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = lvl
	}
	return zcfg.Build()
}

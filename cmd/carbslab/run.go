/*
 * run.go, part of carbslab.
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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molsurf/carbslab/batch"
)

var runConfigPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "process the configured batch of slab structures",
	Long: `Run iterates over the configured polymorphs, orientations and lateral
sizes, reconstructs the carbonate connectivity of each raw slab and writes
the residue-ordered, unwrapped structure. Structures that hit a fatal
condition are saved as error_ artifacts and the batch continues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := batch.Load(runConfigPath)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.Log)
		if err != nil {
			return err
		}
		defer log.Sync()
		results, err := batch.NewRunner(cfg, log).Run(cmd.Context())
		if err != nil {
			return err
		}
		failed := 0
		for _, res := range results {
			if res.Failed() {
				failed++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d structures processed, %d failed\n",
			len(results), failed)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "carbslab.yaml",
		"batch configuration file")
}

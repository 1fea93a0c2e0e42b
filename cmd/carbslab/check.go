/*
 * check.go, part of carbslab.
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

	"github.com/molsurf/carbslab/pdb"
	"github.com/molsurf/carbslab/qc"
	"github.com/molsurf/carbslab/rebuild"
)

var checkCmd = &cobra.Command{
	Use:   "check <structure.pdb>",
	Short: "validate a built structure and print its geometry summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := pdb.Read(args[0])
		if err != nil {
			return err
		}
		if err := rebuild.Verify(s); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		sv := qc.Collect(s)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d atoms, %d carbonates, %d calciums\n",
			s.Name, s.Len(), sv.Carbonates, sv.Calciums)
		lmin, lmax, lmean := sv.LengthStats()
		fmt.Fprintf(out, "C-O bond length / Å:  min %.4f  max %.4f  mean %.4f\n", lmin, lmax, lmean)
		amin, amax, amean := sv.AngleStats()
		fmt.Fprintf(out, "O-C-O angle / deg:    min %.2f  max %.2f  mean %.2f\n", amin, amax, amean)
		return nil
	},
}

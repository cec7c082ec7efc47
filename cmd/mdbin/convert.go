/*
 * convert.go, part of mdbin.
 *
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
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
 *
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/traj"
)

func newConvertCommand() *cobra.Command {
	var skip int
	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a trajectory between extended XYZ and JSON",
		Long: "Convert a trajectory between extended XYZ and the JSON in-memory format. Files ending\n" +
			"in .json (before any .zst, .gz or .flate) are JSON, everything else is extended XYZ.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if skip < 1 {
				return chem.NewConfigError("mdbin.convert", "skip must be >= 1, got %d", skip)
			}
			t, err := readTrajectory(args[0])
			if err != nil {
				return err
			}
			t.Steps = traj.EveryNth(t.Steps, skip)
			if err := writeTrajectory(args[1], t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d frames written to %s\n", t.Len(), args[1])
			return nil
		},
	}
	cmd.Flags().IntVar(&skip, "skip", 1, "keep every skip-th frame")
	return cmd
}

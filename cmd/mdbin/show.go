/*
 * show.go, part of mdbin.
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
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rmera/mdbin/store"
)

func newShowCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show DB [RUN-ID]",
		Short: "List the runs in a store, or show one of them",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(args[0])
			if err != nil {
				return err
			}
			defer s.Close()
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				runs, err := s.ListRuns(cmd.Context())
				if err != nil {
					return err
				}
				return listRuns(out, runs)
			}
			run, err := s.LoadRun(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(run.Result)
			}
			return showRun(out, run)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the bins of the run as JSON")
	return cmd
}

func listRuns(out io.Writer, runs []store.Info) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tCREATED\tFRAMES")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.ID, r.Label, r.Created.Format(time.RFC3339), r.NFrames)
	}
	return w.Flush()
}

func showRun(out io.Writer, run *store.Run) error {
	res := run.Result
	fmt.Fprintf(out, "run %s (%s), %s\n", run.ID, run.Label, run.Created.Format(time.RFC3339))
	fmt.Fprintf(out, "frames %d, mean volume %.4g, mean surface area %.4g, discarded %d\n",
		res.NFrames, res.MeanVolume, res.MeanSurfaceArea, res.Discarded)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tSHAPE\tPROPERTIES")
	for k, N := range res.Bins {
		fmt.Fprintf(w, "%s\t%v\t%v\n", res.Names[k], N.Shape(), N.Keys())
	}
	return w.Flush()
}

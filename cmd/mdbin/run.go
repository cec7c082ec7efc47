/*
 * run.go, part of mdbin.
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
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/chemplot"
	"github.com/rmera/mdbin/distrib"
	"github.com/rmera/mdbin/histo"
	"github.com/rmera/mdbin/internal/config"
	"github.com/rmera/mdbin/internal/logging"
	"github.com/rmera/mdbin/store"
	"github.com/rmera/mdbin/traj"
)

func newRunCommand(a *app) *cobra.Command {
	var workers, skip int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Bin the analyses of the configuration over its trajectory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config("mdbin.run")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if cmd.Flags().Changed("skip") {
				cfg.Skip = skip
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			_, err = runAnalysis(cmd.Context(), cmd.OutOrStdout(), cfg)
			return err
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "number of frame workers, overrides the configuration")
	cmd.Flags().IntVar(&skip, "skip", 1, "use every skip-th frame, overrides the configuration")
	return cmd
}

// runAnalysis reads the trajectory of cfg, bins its groups and writes the results where
// cfg asks for them.
func runAnalysis(ctx context.Context, out io.Writer, cfg *config.Config) (*distrib.Result, error) {
	caller := "mdbin.runAnalysis"
	start := time.Now()
	src, closeSrc, err := openTrajectory(cfg.Trajectory)
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	defer closeSrc()
	r := traj.NewEveryNthReader(src, cfg.Skip)
	first, err := r.Next()
	if chem.IsLastFrame(err) {
		return nil, chem.NewConfigError(caller, "trajectory %s has no frames", cfg.Trajectory)
	}
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	groups, err := config.Build(cfg, first.Cell)
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}

	var res *distrib.Result
	if cfg.Workers > 1 {
		rest, err := traj.ReadAll(r)
		if err != nil {
			return nil, chem.ErrDecorate(err, caller)
		}
		steps := append([]*traj.Step{first}, rest.Steps...)
		workers := cfg.Workers
		if workers > len(steps) {
			workers = len(steps)
		}
		res, err = distrib.RunConc(steps, groups, workers, cfg.RunOptions()...)
		if err != nil {
			return nil, chem.ErrDecorate(err, caller)
		}
	} else {
		res, err = distrib.Run(&prepended{first: first, r: r}, groups, cfg.RunOptions()...)
		if err != nil {
			return nil, chem.ErrDecorate(err, caller)
		}
	}

	if err := histo.DumpJSON(cfg.Output, res.Bins); err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	fmt.Fprintf(out, "%d frames, %d groups written to %s\n", res.NFrames, len(res.Bins), cfg.Output)
	if cfg.Plot != "" {
		files, err := plotGroups(cfg.Plot, res)
		if err != nil {
			return nil, chem.ErrDecorate(err, caller)
		}
		for _, f := range files {
			fmt.Fprintf(out, "plot %s\n", f)
		}
	}
	if cfg.Store != "" {
		id, err := saveRun(ctx, cfg, res)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "stored run %s in %s\n", id, cfg.Store)
	}
	logging.L().Info("mdbin: run done", zap.String("trajectory", cfg.Trajectory), zap.Int("frames", res.NFrames),
		zap.Int("workers", cfg.Workers), zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

func saveRun(ctx context.Context, cfg *config.Config, res *distrib.Result) (string, error) {
	s, err := store.Open(cfg.Store)
	if err != nil {
		return "", err
	}
	defer s.Close()
	label := cfg.Label
	if label == "" {
		label = filepath.Base(cfg.Trajectory)
	}
	return s.SaveRun(ctx, label, res)
}

// plotKey returns the most processed property of N.
func plotKey(N *histo.NDim) string {
	for _, k := range []string{histo.RDFKey, histo.ADFKey} {
		if N.Vals(k) != nil {
			return k
		}
	}
	return histo.NormCountsKey
}

// plotGroups plots the 1-dimensional groups of res in files starting with prefix.
func plotGroups(prefix string, res *distrib.Result) ([]string, error) {
	var files []string
	for k, N := range res.Bins {
		if N.NDims() != 1 {
			logging.L().Debug("mdbin: not plotting multi-dimensional group", zap.String("group", res.Names[k]))
			continue
		}
		name := prefix + fileSafe(res.Names[k]) + ".png"
		key := plotKey(N)
		if err := chemplot.NDim1D(N, key, res.Names[k], "", "", name); err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}

func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '+':
			return r
		}
		return '_'
	}, s)
}

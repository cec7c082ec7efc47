/*
 * root.go, part of mdbin.
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
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/internal/config"
	"github.com/rmera/mdbin/internal/logging"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// app is the state shared by the subcommands once the root has set it up.
type app struct {
	opts rootOptions
	cfg  *config.Config // nil without --config
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "mdbin",
		Short: "Binned distributions of geometric properties over MD trajectories",
		Long: "mdbin computes radial distribution functions, planar density profiles, hydrogen-bond\n" +
			"counts, water orientations and classification-filtered distributions over a trajectory.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.opts.configPath, "config", "c", "", "analysis configuration file (yaml, toml or json)")
	pf.StringVar(&a.opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&a.opts.logFormat, "log-format", "console", "log format (console, json)")

	cmd.AddCommand(newRunCommand(a), newConvertCommand(), newShowCommand())
	return cmd
}

// init loads the configuration, if one was given, and sets up the logger. Flags given
// explicitly win over the configuration.
func (a *app) init(cmd *cobra.Command) error {
	level, format := a.opts.logLevel, a.opts.logFormat
	if a.opts.configPath != "" {
		cfg, err := config.Load(a.opts.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
		if !cmd.Flags().Changed("log-level") {
			level = cfg.Log.Level
		}
		if !cmd.Flags().Changed("log-format") {
			format = cfg.Log.Format
		}
	}
	if err := logging.Configure(level, format); err != nil {
		return err
	}
	logging.L().Debug("mdbin: starting", zap.String("command", cmd.Name()), zap.String("version", Version))
	return nil
}

func (a *app) config(caller string) (*config.Config, error) {
	if a.cfg == nil {
		return nil, chem.NewConfigError(caller, "this command needs a configuration file, give one with --config")
	}
	return a.cfg, nil
}

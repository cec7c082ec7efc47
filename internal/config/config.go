/*
 * config.go, part of mdbin.
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

// Package config holds the description of an mdbin analysis run: which trajectory to
// read, which distributions to bin and where to put the results. Load reads it with
// viper; Build turns its analyses into distrib groups.
package config

import (
	"fmt"
	"strings"

	chem "github.com/rmera/mdbin"
)

// Config is the top-level description of a run.
type Config struct {
	Trajectory   string        `mapstructure:"trajectory"`
	Skip         int           `mapstructure:"skip"`    // use every Skip-th frame
	Workers      int           `mapstructure:"workers"` // 1 means serial
	Output       string        `mapstructure:"output"`
	Plot         string        `mapstructure:"plot"`  // PNG prefix, empty for no plots
	Store        string        `mapstructure:"store"` // SQLite path, empty for no store
	Label        string        `mapstructure:"label"`
	PDF          bool          `mapstructure:"pdf"`
	RaiseOutside bool          `mapstructure:"raise_outside"`
	Log          LogConfig     `mapstructure:"log"`
	Waters       WaterConfig   `mapstructure:"waters"`
	Groups       []GroupConfig `mapstructure:"groups"`
}

// LogConfig selects the level and format ("console" or "json") of the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WaterConfig tells how to find the water molecules in the first frame: each hydrogen
// belongs to the closest oxygen within MaxOH.
type WaterConfig struct {
	Oxygen   string  `mapstructure:"oxygen"`
	Hydrogen string  `mapstructure:"hydrogen"`
	MaxOH    float64 `mapstructure:"max_oh"`
}

// GroupConfig is a set of analyses binned together, one dimension each.
type GroupConfig struct {
	Name     string           `mapstructure:"name"`
	Analyses []AnalysisConfig `mapstructure:"analyses"`
}

// Bins are given either as explicit edges or as a range and a width.
type Bins struct {
	Edges []float64 `mapstructure:"edges"`
	Min   float64   `mapstructure:"min"`
	Max   float64   `mapstructure:"max"`
	Width float64   `mapstructure:"width"`
}

// Selection picks atoms by index or by element symbol. Indices win if both are given.
type Selection struct {
	Indices []int    `mapstructure:"indices"`
	Species []string `mapstructure:"species"`
}

func (s Selection) empty() bool { return len(s.Indices) == 0 && len(s.Species) == 0 }

// AnalysisConfig describes one distribution. Which fields are read depends on Kind.
type AnalysisConfig struct {
	Kind string `mapstructure:"kind"`

	Bins `mapstructure:",squash"`

	A Selection `mapstructure:"a"`
	B Selection `mapstructure:"b"`

	Volume       float64 `mapstructure:"volume"`
	SurfaceArea  float64 `mapstructure:"surface_area"`
	MinDist      bool    `mapstructure:"min_dist"`
	FilterOnBins bool    `mapstructure:"filter_on_bins"`

	Plane  []float64 `mapstructure:"plane"` // a, b, c, d of ax+by+cz=d
	Signed bool      `mapstructure:"signed"`

	MaxOO    float64 `mapstructure:"max_oo"`
	MaxAngle float64 `mapstructure:"max_angle"`
	Acceptor *bool   `mapstructure:"acceptor"`
	Donor    *bool   `mapstructure:"donor"`
	Value    string  `mapstructure:"value"` // oo, oh or angle

	Ranges     [][]float64 `mapstructure:"ranges"`
	Horizontal bool        `mapstructure:"horizontal"`
	DistFilter *Selection  `mapstructure:"dist_filter"`

	Angle     string  `mapstructure:"angle"` // roll, pitch or azimuth
	NNebs     int     `mapstructure:"n_nebs"`
	MaxOHDist float64 `mapstructure:"max_oh_dist"`

	Pairs   [][]int   `mapstructure:"pairs"`
	Triples [][]int   `mapstructure:"triples"`
	Vector  []float64 `mapstructure:"vector"`

	Classifier *ClassifierConfig `mapstructure:"classifier"`
	Filter     *ClassifierConfig `mapstructure:"filter"`
	Use        string            `mapstructure:"use"` // nonHy, hy or all
}

// ClassifierConfig describes a classifier, for the classified_count kind or to filter
// another analysis.
type ClassifierConfig struct {
	Kind       string    `mapstructure:"kind"`
	Candidates Selection `mapstructure:"candidates"`
	Anchors    Selection `mapstructure:"anchors"`
	Range      []float64 `mapstructure:"range"`
	Ignore     float64   `mapstructure:"ignore_below"`

	MinDistType string    `mapstructure:"min_dist_type"`
	NDonor      []float64 `mapstructure:"n_donor"`
	NAcceptor   []float64 `mapstructure:"n_acceptor"`
	NTotal      []float64 `mapstructure:"n_total"`
	MaxOO       float64   `mapstructure:"max_oo"`
	MaxAngle    float64   `mapstructure:"max_angle"`

	NNebs     int     `mapstructure:"n_nebs"`
	MaxOHDist float64 `mapstructure:"max_oh_dist"`
}

// Analysis kinds.
const (
	KindRdf                  = "rdf"
	KindPlanarRdf            = "planar_rdf"
	KindPlanarDist           = "planar_dist"
	KindHozRdf               = "hoz_rdf"
	KindAngleDist            = "angle_dist"
	KindCountNWithin         = "count_n_within"
	KindDiscHBondCounter     = "disc_hbond_counter"
	KindHBondCounter         = "hbond_counter"
	KindHBondValues          = "hbond_values"
	KindWaterOrientation     = "water_orientation"
	KindWaterDerivativeCount = "water_derivative_count"
	KindDiatomDist           = "diatom_dist"
	KindDiatomHozDist        = "diatom_hoz_dist"
	KindDiatomAngle          = "diatom_angle"
	KindClassifiedCount      = "classified_count"
)

// Classifier kinds.
const (
	ClassMinDist         = "min_dist"
	ClassWaterHBonds     = "water_hbonds"
	ClassWaterDerivative = "water_derivative"
)

var kinds = map[string]bool{
	KindRdf: true, KindPlanarRdf: true, KindPlanarDist: true, KindHozRdf: true, KindAngleDist: true,
	KindCountNWithin: true, KindDiscHBondCounter: true, KindHBondCounter: true, KindHBondValues: true,
	KindWaterOrientation: true, KindWaterDerivativeCount: true, KindDiatomDist: true,
	KindDiatomHozDist: true, KindDiatomAngle: true, KindClassifiedCount: true,
}

// ApplyDefaults fills the unset fields of cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Skip < 1 {
		cfg.Skip = 1
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Output == "" {
		cfg.Output = "mdbin.json"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Waters.Oxygen == "" {
		cfg.Waters.Oxygen = "O"
	}
	if cfg.Waters.Hydrogen == "" {
		cfg.Waters.Hydrogen = "H"
	}
	if cfg.Waters.MaxOH == 0 {
		cfg.Waters.MaxOH = 1.25
	}
	for i := range cfg.Groups {
		if cfg.Groups[i].Name == "" {
			cfg.Groups[i].Name = defaultName(cfg.Groups[i], i)
		}
	}
}

func defaultName(g GroupConfig, i int) string {
	names := make([]string, 0, len(g.Analyses))
	for _, a := range g.Analyses {
		names = append(names, a.Kind)
	}
	if len(names) == 0 {
		return fmt.Sprintf("group%d", i)
	}
	return strings.Join(names, "+")
}

// Validate checks the parts of cfg that do not depend on the trajectory.
func (c *Config) Validate() error {
	caller := "config.Validate"
	if c.Trajectory == "" {
		return chem.NewConfigError(caller, "trajectory is required")
	}
	if c.Skip < 1 {
		return chem.NewConfigError(caller, "skip must be >= 1, got %d", c.Skip)
	}
	if c.Workers < 1 {
		return chem.NewConfigError(caller, "workers must be >= 1, got %d", c.Workers)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return chem.NewConfigError(caller, "log.format %q is invalid; expected console|json", c.Log.Format)
	}
	if !(c.Waters.MaxOH > 0) {
		return chem.NewConfigError(caller, "waters.max_oh must be positive, got %g", c.Waters.MaxOH)
	}
	if len(c.Groups) == 0 {
		return chem.NewConfigError(caller, "no groups to bin")
	}
	for i, g := range c.Groups {
		if len(g.Analyses) == 0 {
			return chem.NewConfigError(caller, "group %d (%s) has no analyses", i, g.Name)
		}
		for j, a := range g.Analyses {
			if err := a.validate(); err != nil {
				return chem.NewConfigError(caller, "group %d (%s), analysis %d: %v", i, g.Name, j, err)
			}
		}
	}
	return nil
}

func (a AnalysisConfig) validate() error {
	caller := "config.AnalysisConfig.validate"
	if !kinds[a.Kind] {
		return chem.NewConfigError(caller, "unknown kind %q", a.Kind)
	}
	if _, err := a.Bins.edges(); err != nil {
		return err
	}
	if len(a.Plane) != 0 && len(a.Plane) != 4 {
		return chem.NewConfigError(caller, "plane needs 4 coefficients, got %d", len(a.Plane))
	}
	for _, r := range a.Ranges {
		if len(r) != 2 {
			return chem.NewConfigError(caller, "ranges must be pairs, got %v", r)
		}
	}
	switch a.Kind {
	case KindDiatomAngle:
		if len(a.Vector) != 3 {
			return chem.NewConfigError(caller, "vector needs 3 components, got %d", len(a.Vector))
		}
	case KindCountNWithin:
		if len(a.Ranges) == 0 {
			return chem.NewConfigError(caller, "%s needs ranges", a.Kind)
		}
	case KindClassifiedCount:
		if a.Classifier == nil {
			return chem.NewConfigError(caller, "%s needs a classifier", a.Kind)
		}
	}
	for _, c := range []*ClassifierConfig{a.Classifier, a.Filter} {
		if c == nil {
			continue
		}
		switch c.Kind {
		case ClassMinDist, ClassWaterHBonds, ClassWaterDerivative:
		default:
			return chem.NewConfigError(caller, "unknown classifier kind %q", c.Kind)
		}
	}
	return nil
}

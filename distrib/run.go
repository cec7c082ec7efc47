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

package distrib

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/binval"
	"github.com/rmera/mdbin/geom"
	"github.com/rmera/mdbin/histo"
	"github.com/rmera/mdbin/internal/logging"
	"github.com/rmera/mdbin/sparse"
	"github.com/rmera/mdbin/traj"
)

// angleDomain is the width, in degrees, of the domain of the angular distributions.
const angleDomain = 180.0

type runConfig struct {
	pdf          bool
	raiseOutside bool
	prims        geom.Primitives
}

// RunOption modifies the behaviour of Run and RunConc.
type RunOption func(*runConfig)

// WithPDF adds the probability density to the bins of every group.
func WithPDF() RunOption { return func(c *runConfig) { c.pdf = true } }

// WithRaiseOutside makes values outside the bins an error instead of discarding them.
func WithRaiseOutside() RunOption { return func(c *runConfig) { c.raiseOutside = true } }

// WithPrimitives replaces the min-image geometry primitives.
func WithPrimitives(p geom.Primitives) RunOption { return func(c *runConfig) { c.prims = p } }

// Result holds the bins of each group, in the order of the groups, and the averages
// used to normalise them.
type Result struct {
	Names           []string
	Bins            []*histo.NDim
	NFrames         int
	MeanVolume      float64
	MeanSurfaceArea float64
	// Discarded is the number of tuples that fell outside the bins.
	Discarded int
}

// worker owns a calculator, the getters and the bins for a series of frames.
type worker struct {
	calc      *sparse.Calculator
	getters   []binval.Getter
	bins      []*histo.NDim
	raise     bool
	nFrames   int
	volume    float64
	area      float64
	discarded int
}

func newWorker(groups []Group, cfg *runConfig) (*worker, error) {
	caller := "distrib.newWorker"
	w := &worker{calc: sparse.NewCalculator(), raise: cfg.raiseOutside}
	if cfg.prims != nil {
		w.calc.SetPrimitives(cfg.prims)
	}
	cache := NewCache()
	for _, g := range groups {
		getters := make([]binval.Getter, 0, len(g.Options))
		for _, o := range g.Options {
			p, err := PopulatorFor(o)
			if err != nil {
				return nil, chem.ErrDecorate(err, caller)
			}
			w.calc.AddPopulators(p)
			gt, err := GetterFor(o, cache)
			if err != nil {
				return nil, chem.ErrDecorate(err, caller)
			}
			if gt.Dims() != len(o.Edges()) {
				return nil, chem.NewConfigError(caller, "group %q: options %T give %d values per tuple but %d bin dimensions", g.Name, o, gt.Dims(), len(o.Edges()))
			}
			getters = append(getters, gt)
		}
		var gt binval.Getter = binval.NewMultiDim(getters...)
		if len(getters) == 1 {
			gt = getters[0]
		}
		b, err := histo.NewNDim(g.Edges()...)
		if err != nil {
			return nil, chem.ErrDecorate(err, caller)
		}
		w.getters = append(w.getters, gt)
		w.bins = append(w.bins, b)
	}
	logging.L().Debug("distrib: worker set up", zap.Int("groups", len(groups)), zap.Int("classifiers", cache.Len()))
	return w, nil
}

// frame adds the values of one frame to the bins.
func (w *worker) frame(s *traj.Step) error {
	if s == nil || s.Cell == nil {
		return chem.NewFrameError("distrib.worker.frame", "frame %d has no cell", w.nFrames)
	}
	if err := w.calc.CalcMatricesForGeom(s.Cell); err != nil {
		return chem.ErrDecorate(err, "distrib.worker.frame")
	}
	for k, g := range w.getters {
		vals, err := g.GetValsToBin(w.calc)
		if err != nil {
			return chem.ErrDecorate(err, "distrib.worker.frame")
		}
		n, err := w.bins[k].AddBinValuesToCounts(vals, w.raise)
		w.discarded += n
		if err != nil {
			return chem.ErrDecorate(err, "distrib.worker.frame")
		}
		w.bins[k].AddFrames(1)
	}
	w.nFrames++
	w.volume += s.Cell.Volume()
	w.area += s.Cell.SurfaceArea()
	return nil
}

func prepare(groups []Group, opts []RunOption) ([]Group, *runConfig, error) {
	cfg := &runConfig{}
	for _, o := range opts {
		o(cfg)
	}
	if len(groups) == 0 {
		return nil, nil, chem.NewConfigError("distrib.prepare", "no groups to bin")
	}
	for _, g := range groups {
		if err := g.Check(); err != nil {
			return nil, nil, err
		}
	}
	return resolveFilterIndices(groups), cfg, nil
}

// Run bins the groups over all the frames delivered by r, in order, and post-processes
// the bins. Any error stops the run.
func Run(r traj.Reader, groups []Group, opts ...RunOption) (*Result, error) {
	start := time.Now()
	groups, cfg, err := prepare(groups, opts)
	if err != nil {
		return nil, chem.ErrDecorate(err, "distrib.Run")
	}
	w, err := newWorker(groups, cfg)
	if err != nil {
		return nil, chem.ErrDecorate(err, "distrib.Run")
	}
	for {
		s, err := r.Next()
		if err != nil {
			if chem.IsLastFrame(err) {
				break
			}
			return nil, chem.ErrDecorate(err, "distrib.Run")
		}
		if err := w.frame(s); err != nil {
			return nil, chem.ErrDecorate(err, "distrib.Run")
		}
	}
	res, err := finish(groups, cfg, w.bins, w.nFrames, w.volume, w.area, w.discarded)
	if err != nil {
		return nil, chem.ErrDecorate(err, "distrib.Run")
	}
	logging.L().Info("distrib: run finished", zap.Int("frames", res.NFrames), zap.Int("groups", len(groups)),
		zap.Int("discarded", res.Discarded), zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// RunConc is Run for frames already in memory, split in equal contiguous sections among
// workers goroutines, each with its own calculator and getters. The bins of all the
// workers are summed before post-processing.
func RunConc(steps []*traj.Step, groups []Group, workers int, opts ...RunOption) (*Result, error) {
	start := time.Now()
	groups, cfg, err := prepare(groups, opts)
	if err != nil {
		return nil, chem.ErrDecorate(err, "distrib.RunConc")
	}
	sections, err := traj.Split(steps, workers)
	if err != nil {
		return nil, chem.ErrDecorate(err, "distrib.RunConc")
	}
	ws := make([]*worker, workers)
	for i := range ws {
		if ws[i], err = newWorker(groups, cfg); err != nil {
			return nil, chem.ErrDecorate(err, "distrib.RunConc")
		}
	}
	var eg errgroup.Group
	for i := range ws {
		w, section := ws[i], sections[i]
		eg.Go(func() error {
			for _, s := range section {
				if err := w.frame(s); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, chem.ErrDecorate(err, "distrib.RunConc")
	}
	var nFrames, discarded int
	var volume, area float64
	bins := make([]*histo.NDim, len(groups))
	for k := range groups {
		perWorker := make([]*histo.NDim, len(ws))
		for i, w := range ws {
			perWorker[i] = w.bins[k]
		}
		if bins[k], err = histo.SumNDim(perWorker...); err != nil {
			return nil, chem.ErrDecorate(err, "distrib.RunConc")
		}
	}
	for _, w := range ws {
		nFrames += w.nFrames
		volume += w.volume
		area += w.area
		discarded += w.discarded
	}
	res, err := finish(groups, cfg, bins, nFrames, volume, area, discarded)
	if err != nil {
		return nil, chem.ErrDecorate(err, "distrib.RunConc")
	}
	logging.L().Info("distrib: concurrent run finished", zap.Int("frames", res.NFrames), zap.Int("groups", len(groups)),
		zap.Int("workers", workers), zap.Int("discarded", res.Discarded), zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// finish normalises the bins and adds the properties that the kind of each group calls for.
func finish(groups []Group, cfg *runConfig, bins []*histo.NDim, nFrames int, volume, area float64, discarded int) (*Result, error) {
	if nFrames == 0 {
		return nil, chem.NewConfigError("distrib.finish", "no frames were processed")
	}
	res := &Result{Bins: bins, NFrames: nFrames, Discarded: discarded,
		MeanVolume: volume / float64(nFrames), MeanSurfaceArea: area / float64(nFrames)}
	if discarded > 0 {
		logging.L().Debug("distrib: values outside the bins were discarded", zap.Int("n", discarded))
	}
	for k, g := range groups {
		res.Names = append(res.Names, g.Name)
		N := bins[k]
		if err := histo.NormaliseByFrames(N, nFrames); err != nil {
			return nil, err
		}
		var err error
		switch g.kind() {
		case sphericalRDF:
			o := g.Options[0].(CalcRdfOptions)
			err = histo.AddRDF(N, nFrames, orDefault(o.Volume, res.MeanVolume), len(o.IndicesA), len(o.IndicesB))
		case planarRDF:
			o := g.Options[0].(CalcPlanarRdfOptions)
			err = histo.AddPlanarRDF(N, nFrames, orDefault(o.Volume, res.MeanVolume), res.MeanSurfaceArea, len(o.Indices))
		case circularRDF:
			o := g.Options[0].(HozRdfOptions)
			err = histo.AddCircularRDF(N, nFrames, orDefault(o.SurfaceArea, res.MeanSurfaceArea), len(o.IndicesA), len(o.IndicesB))
		case angular:
			err = histo.AddADF(N, angleDomain)
		}
		if err != nil {
			return nil, chem.ErrDecorate(err, "distrib.finish")
		}
		//angular groups keep the probabilities of AddADF under the pdf key
		if cfg.pdf && g.kind() != angular {
			if err := histo.AddPDF(N); err != nil {
				logging.L().Warn("distrib: no probability density", zap.String("group", g.Name), zap.Error(err))
			}
		}
	}
	return res, nil
}

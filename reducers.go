/*
Copyright © 2026 the ResampleTool authors.
This file is part of ResampleTool.

ResampleTool is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ResampleTool is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ResampleTool.  If not, see <http://www.gnu.org/licenses/>.
*/

package resample

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DefaultMinValidCount is the default minimum-valid-pixel policy: a
// block must contain more than this many valid samples to produce a
// value, i.e. at least 5 of the 9 samples in a 3×3 block.
const DefaultMinValidCount = 4

// ReducerConfig holds the shared policy applied by every reducer.
type ReducerConfig struct {
	// MinValidCount is the valid-sample count a block must strictly
	// exceed; blocks at or below it reduce to NoData.
	MinValidCount int
}

// A Reducer maps one block of fine-grid samples (possibly containing
// NoData) to a single coarse-grid sample, or NoData if the block has
// too few valid samples.
type Reducer func(block []float64, cfg ReducerConfig) float64

// Stable identifiers for the built-in reducers, used for external
// configuration.
const (
	MeanWithCond  = "mean_w_cond"
	ClosestToMean = "closest_to_mean"
	UncertPropag  = "uncert_propag"
)

var reducers = map[string]Reducer{
	MeanWithCond:  reduceMeanWithCond,
	ClosestToMean: reduceClosestToMean,
	UncertPropag:  reduceUncertPropag,
}

// RegisterReducer makes a reducer addressable by name, for example from
// a configuration file. The built-in names may not be replaced.
func RegisterReducer(name string, r Reducer) error {
	if _, ok := reducers[name]; ok {
		return fmt.Errorf("resample: reducer %q is already registered", name)
	}
	if r == nil {
		return fmt.Errorf("resample: reducer %q is nil", name)
	}
	reducers[name] = r
	return nil
}

// ReducerByName returns the reducer registered under name.
func ReducerByName(name string) (Reducer, error) {
	r, ok := reducers[name]
	if !ok {
		return nil, fmt.Errorf("resample: no reducer named %q; available reducers are %v",
			name, ReducerNames())
	}
	return r, nil
}

// ReducerNames returns the names of all registered reducers in sorted
// order.
func ReducerNames() []string {
	names := make([]string, 0, len(reducers))
	for n := range reducers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// validSamples appends the non-NoData samples in block to dst.
func validSamples(dst, block []float64) []float64 {
	for _, v := range block {
		if !IsNoData(v) {
			dst = append(dst, v)
		}
	}
	return dst
}

// reduceMeanWithCond is the conditional mean: the arithmetic mean of
// the valid samples, subject to the minimum-valid-count policy.
func reduceMeanWithCond(block []float64, cfg ReducerConfig) float64 {
	valid := validSamples(make([]float64, 0, len(block)), block)
	if len(valid) <= cfg.MinValidCount {
		return NoData
	}
	return floats.Sum(valid) / float64(len(valid))
}

// reduceClosestToMean returns the valid sample closest to the
// conditional mean. Ties go to the first occurrence in block scan
// order.
func reduceClosestToMean(block []float64, cfg ReducerConfig) float64 {
	valid := validSamples(make([]float64, 0, len(block)), block)
	if len(valid) <= cfg.MinValidCount {
		return NoData
	}
	mean := floats.Sum(valid) / float64(len(valid))
	best := valid[0]
	bestDist := math.Abs(valid[0] - mean)
	for _, v := range valid[1:] {
		if d := math.Abs(v - mean); d < bestDist {
			best, bestDist = v, d
		}
	}
	return best
}

// reduceUncertPropag propagates per-pixel uncertainties into the
// aggregated cell: sqrt of the sum of squared valid samples, divided
// by the valid count.
func reduceUncertPropag(block []float64, cfg ReducerConfig) float64 {
	nValid := 0
	sumsq := 0.0
	for _, v := range block {
		if IsNoData(v) {
			continue
		}
		nValid++
		sumsq += v * v
	}
	if nValid <= cfg.MinValidCount {
		return NoData
	}
	return math.Sqrt(sumsq) / float64(nValid)
}

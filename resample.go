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

// Package resample aggregates fine-resolution geographic rasters onto a
// coarser grid using area-based block statistics.
//
// It targets the 333m products of the Copernicus Global Land Service,
// which are downsampled by a factor of 3 onto the canonical 1km grid,
// but the grid arithmetic is generic. A raster flows through three
// stages: flagged-pixel masking (Mask), alignment onto the coarse
// lattice (CropGlobal for full-globe rasters, AlignExtent and Crop for
// subsets), and block aggregation (Aggregate) with a pluggable
// per-block reducer. Resample ties the stages together for a single
// raster.
package resample

import "github.com/ctessum/geom"

// Version gives the version number of this library.
const Version = "1.1.0"

// Config specifies an end-to-end resampling operation for one raster.
type Config struct {
	// Factor is the integer ratio between coarse and fine cell size.
	Factor int

	// CutoffHigh and CutoffLow are the physical-value validity
	// thresholds for flagged-pixel masking; see Mask. Set CutoffLow to
	// math.Inf(-1) when the product documents no low flag range.
	CutoffHigh, CutoffLow float64

	// Reducer is the stable identifier of the block statistic to
	// apply, e.g. "mean_w_cond".
	Reducer string

	// ReducerConfig carries the minimum-valid-count policy.
	ReducerConfig ReducerConfig

	// CoarseLattice is the canonical lattice of the output resolution.
	CoarseLattice *Lattice

	// GlobalBounds and EdgeTrim configure full-globe detection and
	// trimming for the input product family.
	GlobalBounds GlobalBounds
	EdgeTrim     EdgeTrim

	// TargetExtent optionally restricts the output to a sub-region. It
	// is snapped onto the coarse lattice before cropping. When nil,
	// the full (globally trimmed) input extent is aggregated.
	TargetExtent *geom.Bounds
}

// Resample masks, aligns, and aggregates a single fine-resolution
// raster according to c. The input grid is not modified.
func Resample(g *Grid, c Config) (*Grid, error) {
	reducer, err := ReducerByName(c.Reducer)
	if err != nil {
		return nil, err
	}
	masked, err := Mask(g, c.CutoffHigh, c.CutoffLow)
	if err != nil {
		return nil, err
	}

	// A full global raster's edges do not sit on the coarse lattice by
	// construction, so it is trimmed by the registration offsets; any
	// other raster goes through lattice snapping instead.
	aligned := masked
	if c.GlobalBounds.Matches(masked.Extent) {
		if aligned, err = CropGlobal(masked, c.GlobalBounds, c.EdgeTrim); err != nil {
			return nil, err
		}
		if c.TargetExtent != nil {
			target, _, err := AlignExtent(c.TargetExtent, c.CoarseLattice)
			if err != nil {
				return nil, err
			}
			if aligned, err = Crop(aligned, target); err != nil {
				return nil, err
			}
		}
	} else {
		target := c.TargetExtent
		if target == nil {
			target = masked.Extent
		}
		snapped, _, err := AlignExtent(target, c.CoarseLattice)
		if err != nil {
			return nil, err
		}
		if aligned, err = Crop(masked, snapped); err != nil {
			return nil, err
		}
	}

	return Aggregate(aligned, c.Factor, reducer, c.ReducerConfig)
}

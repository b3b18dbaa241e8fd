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

import "errors"

// The errors below classify the ways a single raster can fail to be
// processed. All of them indicate a data or configuration mismatch
// rather than a transient fault: callers processing a batch of rasters
// should skip the failed raster and continue, not retry it.
var (
	// ErrInvalidGeometry indicates an inconsistent or degenerate grid,
	// extent, lattice, or coordinate.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidCutoff indicates a flag-masking cutoff pair where the
	// high cutoff does not exceed the low cutoff.
	ErrInvalidCutoff = errors.New("invalid cutoff")

	// ErrExtentOutOfBounds indicates a requested crop extent that does
	// not overlap the source grid at all.
	ErrExtentOutOfBounds = errors.New("extent out of bounds")

	// ErrResolutionMismatch indicates a reference grid whose cell size
	// does not match the expected coarse resolution.
	ErrResolutionMismatch = errors.New("resolution mismatch")

	// ErrNonIntegerFactor indicates a grid whose shape is not an exact
	// multiple of the aggregation factor. Callers are expected to
	// pre-crop (CropGlobal or AlignExtent followed by Crop) so that the
	// factor divides both dimensions.
	ErrNonIntegerFactor = errors.New("aggregation factor does not evenly divide grid")
)

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

	"github.com/ctessum/geom"
)

// refResolutionTolerance is the maximum allowed difference [degrees]
// between a reference grid's cell size and the expected coarse
// resolution.
const refResolutionTolerance = 1.0e-10

// AlignExtent reconciles a requested extent with the coarse-resolution
// lattice. If all four extent components already lie on lattice nodes
// (within LatticeTolerance), the extent is returned unchanged and
// adjusted is false. Otherwise each X component is snapped to the
// nearest X-lattice node and each Y component to the nearest Y-lattice
// node, and adjusted is true. The aligned extent is what callers should
// crop the fine-resolution grid to before aggregating.
func AlignExtent(requested *geom.Bounds, lattice *Lattice) (aligned *geom.Bounds, adjusted bool, err error) {
	if requested == nil || requested.Max.X <= requested.Min.X || requested.Max.Y <= requested.Min.Y {
		return nil, false, fmt.Errorf("resample: requested extent is empty or inverted: %w", ErrInvalidGeometry)
	}
	xNodes, err := lattice.Nodes(requested.Min.X, requested.Max.X)
	if err != nil {
		return nil, false, err
	}
	yNodes, err := lattice.Nodes(requested.Min.Y, requested.Max.Y)
	if err != nil {
		return nil, false, err
	}
	if IsOnLattice(requested.Min.X, xNodes, LatticeTolerance) &&
		IsOnLattice(requested.Max.X, xNodes, LatticeTolerance) &&
		IsOnLattice(requested.Min.Y, yNodes, LatticeTolerance) &&
		IsOnLattice(requested.Max.Y, yNodes, LatticeTolerance) {
		return requested.Copy(), false, nil
	}
	aligned = &geom.Bounds{}
	if aligned.Min.X, err = SnapToLattice(requested.Min.X, xNodes); err != nil {
		return nil, false, err
	}
	if aligned.Max.X, err = SnapToLattice(requested.Max.X, xNodes); err != nil {
		return nil, false, err
	}
	if aligned.Min.Y, err = SnapToLattice(requested.Min.Y, yNodes); err != nil {
		return nil, false, err
	}
	if aligned.Max.Y, err = SnapToLattice(requested.Max.Y, yNodes); err != nil {
		return nil, false, err
	}
	return aligned, true, nil
}

// AlignToGrid derives the aligned crop extent from a reference
// coarse-resolution grid instead of raw coordinates. It fails with
// ErrResolutionMismatch when the reference grid's cell size differs
// from the lattice step by more than 1e-10°.
func AlignToGrid(ref *Grid, lattice *Lattice) (aligned *geom.Bounds, adjusted bool, err error) {
	if math.Abs(ref.Dx-lattice.Step) > refResolutionTolerance {
		return nil, false, fmt.Errorf("resample: reference grid cell size %g does not match expected coarse resolution %g: %w",
			ref.Dx, lattice.Step, ErrResolutionMismatch)
	}
	return AlignExtent(ref.Extent, lattice)
}

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
)

// Mask returns a copy of g in which every sample strictly greater than
// cutoffHigh, or strictly less than cutoffLow, is replaced with
// NoData. Pass math.Inf(-1) as cutoffLow when there is no low cutoff.
//
// Cutoffs are physical-value thresholds. The digital-number flag values
// documented for each product must be converted by the caller with the
// product's scale and offset (cutoff = flag*scale + offset) before
// masking; Mask itself is scale-agnostic.
func Mask(g *Grid, cutoffHigh, cutoffLow float64) (*Grid, error) {
	if math.IsNaN(cutoffHigh) || math.IsNaN(cutoffLow) {
		return nil, fmt.Errorf("resample: cutoffs (%g, %g) may not be NaN: %w",
			cutoffHigh, cutoffLow, ErrInvalidCutoff)
	}
	if cutoffHigh <= cutoffLow {
		return nil, fmt.Errorf("resample: high cutoff %g must exceed low cutoff %g: %w",
			cutoffHigh, cutoffLow, ErrInvalidCutoff)
	}
	out := g.Data.Copy()
	for i, v := range out.Elements {
		if v > cutoffHigh || v < cutoffLow {
			out.Elements[i] = NoData
		}
	}
	return &Grid{Data: out, Extent: g.Extent.Copy(), Dx: g.Dx}, nil
}

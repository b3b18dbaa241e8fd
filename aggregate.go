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
	"runtime"
	"sync"

	"github.com/ctessum/sparse"
)

// Aggregate reduces g by the given integer factor, mapping each
// factor×factor block of fine cells onto one coarse cell with the
// given reducer. The output grid covers the same extent as the input
// with a cell size factor times larger.
//
// The factor must evenly divide both grid dimensions; callers are
// expected to have pre-cropped the grid (CropGlobal for full-globe
// rasters, AlignExtent and Crop for subsets) so that it does.
//
// Blocks are independent, so the reduction runs concurrently across
// bands of output rows.
func Aggregate(g *Grid, factor int, reducer Reducer, cfg ReducerConfig) (*Grid, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("resample: aggregation factor %d must be positive: %w",
			factor, ErrNonIntegerFactor)
	}
	rows, cols := g.Rows(), g.Cols()
	if rows%factor != 0 || cols%factor != 0 {
		return nil, fmt.Errorf("resample: factor %d does not evenly divide %d×%d grid: %w",
			factor, rows, cols, ErrNonIntegerFactor)
	}
	outRows, outCols := rows/factor, cols/factor
	out := sparse.ZerosDense(outRows, outCols)

	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			block := make([]float64, factor*factor)
			for ro := pp; ro < outRows; ro += nprocs {
				for co := 0; co < outCols; co++ {
					for br := 0; br < factor; br++ {
						src := (ro*factor+br)*cols + co*factor
						copy(block[br*factor:(br+1)*factor], g.Data.Elements[src:src+factor])
					}
					out.Elements[ro*outCols+co] = reducer(block, cfg)
				}
			}
		}(pp)
	}
	wg.Wait()

	return &Grid{Data: out, Extent: g.Extent.Copy(), Dx: g.Dx * float64(factor)}, nil
}

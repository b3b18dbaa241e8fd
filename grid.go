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
	"github.com/ctessum/sparse"
)

// geomTolerance is the maximum allowed disagreement [degrees] between the
// stated cell size of a grid and the cell size implied by its extent and
// shape.
const geomTolerance = 1.0e-7

// NoData marks an invalid or masked sample. It is excluded from all
// block statistics.
var NoData = math.NaN()

// IsNoData reports whether v is the "no data" sentinel.
func IsNoData(v float64) bool { return math.IsNaN(v) }

// Grid is a rectangular raster of floating-point samples in geographic
// (WGS84 degree) coordinates. Samples are stored row-major,
// north-to-south and west-to-east, so element (0, 0) is the
// northwestern corner.
//
// Grids are value-like: the operations in this package never modify
// their input grid; each returns a new Grid reflecting its
// transformation.
type Grid struct {
	// Data holds the samples. Its shape is [rows, cols]. Elements may
	// be NoData.
	Data *sparse.DenseArray

	// Extent is the outer bounding box of the raster in decimal
	// degrees.
	Extent *geom.Bounds

	// Dx is the edge length of each cell in degrees. Cells are assumed
	// square and axis-aligned.
	Dx float64
}

// NewGrid creates a grid from sample data, its geographic extent, and
// its cell size, checking that the three are mutually consistent.
func NewGrid(data *sparse.DenseArray, extent *geom.Bounds, dx float64) (*Grid, error) {
	if data == nil || len(data.Shape) != 2 {
		return nil, fmt.Errorf("resample: grid data must have 2 dimensions: %w", ErrInvalidGeometry)
	}
	if extent == nil || extent.Max.X <= extent.Min.X || extent.Max.Y <= extent.Min.Y {
		return nil, fmt.Errorf("resample: grid extent is empty or inverted: %w", ErrInvalidGeometry)
	}
	if dx <= 0 || math.IsNaN(dx) {
		return nil, fmt.Errorf("resample: cell size %g is invalid: %w", dx, ErrInvalidGeometry)
	}
	rows, cols := data.Shape[0], data.Shape[1]
	if dxX := (extent.Max.X - extent.Min.X) / float64(cols); math.Abs(dxX-dx) > geomTolerance {
		return nil, fmt.Errorf("resample: extent width implies cell size %g but grid says %g: %w",
			dxX, dx, ErrInvalidGeometry)
	}
	if dxY := (extent.Max.Y - extent.Min.Y) / float64(rows); math.Abs(dxY-dx) > geomTolerance {
		return nil, fmt.Errorf("resample: extent height implies cell size %g but grid says %g: %w",
			dxY, dx, ErrInvalidGeometry)
	}
	return &Grid{Data: data, Extent: extent.Copy(), Dx: dx}, nil
}

// Rows returns the number of rows in g.
func (g *Grid) Rows() int { return g.Data.Shape[0] }

// Cols returns the number of columns in g.
func (g *Grid) Cols() int { return g.Data.Shape[1] }

func round(v float64) int { return int(math.Floor(v + 0.5)) }

// extentForWindow returns the extent covered by the cell index window
// [r0, r1) × [c0, c1), where row indices count from the northern edge.
func (g *Grid) extentForWindow(r0, r1, c0, c1 int) *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{
			X: g.Extent.Min.X + float64(c0)*g.Dx,
			Y: g.Extent.Max.Y - float64(r1)*g.Dx,
		},
		Max: geom.Point{
			X: g.Extent.Min.X + float64(c1)*g.Dx,
			Y: g.Extent.Max.Y - float64(r0)*g.Dx,
		},
	}
}

// window copies the cell index window [r0, r1) × [c0, c1) of g into a
// new grid with a matching extent.
func (g *Grid) window(r0, r1, c0, c1 int) *Grid {
	rows, cols := r1-r0, c1-c0
	out := sparse.ZerosDense(rows, cols)
	srcCols := g.Cols()
	for r := 0; r < rows; r++ {
		src := g.Data.Elements[(r0+r)*srcCols+c0 : (r0+r)*srcCols+c1]
		copy(out.Elements[r*cols:(r+1)*cols], src)
	}
	return &Grid{Data: out, Extent: g.extentForWindow(r0, r1, c0, c1), Dx: g.Dx}
}

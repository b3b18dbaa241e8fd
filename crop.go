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

	"github.com/ctessum/geom"
)

// Crop returns the part of g covered by extent. The requested extent is
// converted to a whole-cell index window on g's grid and clipped to g's
// bounds, so the result may be smaller than requested; it fails with
// ErrExtentOutOfBounds when the two extents do not overlap at all.
func Crop(g *Grid, extent *geom.Bounds) (*Grid, error) {
	if !g.Extent.Overlaps(extent) {
		return nil, fmt.Errorf("resample: crop extent (%g, %g)-(%g, %g) does not overlap grid extent (%g, %g)-(%g, %g): %w",
			extent.Min.X, extent.Min.Y, extent.Max.X, extent.Max.Y,
			g.Extent.Min.X, g.Extent.Min.Y, g.Extent.Max.X, g.Extent.Max.Y,
			ErrExtentOutOfBounds)
	}
	c0 := round((extent.Min.X - g.Extent.Min.X) / g.Dx)
	c1 := round((extent.Max.X - g.Extent.Min.X) / g.Dx)
	r0 := round((g.Extent.Max.Y - extent.Max.Y) / g.Dx)
	r1 := round((g.Extent.Max.Y - extent.Min.Y) / g.Dx)
	if c0 < 0 {
		c0 = 0
	}
	if r0 < 0 {
		r0 = 0
	}
	if c1 > g.Cols() {
		c1 = g.Cols()
	}
	if r1 > g.Rows() {
		r1 = g.Rows()
	}
	if c1 <= c0 || r1 <= r0 {
		return nil, fmt.Errorf("resample: crop extent covers no whole cells of the grid: %w",
			ErrExtentOutOfBounds)
	}
	return g.window(r0, r1, c0, c1), nil
}

// GlobalBounds holds the documented full-globe detection thresholds for
// a product family. A raster is considered global when its extent lies
// at or outside every threshold. The thresholds sit slightly inside the
// nominal ±180°/+80°/−60° box because exact global rasters are offset
// from integer degree boundaries by a fraction of a cell.
type GlobalBounds struct {
	XMin float64 // extent xmin must be <= this
	XMax float64 // extent xmax must be >= this
	YMin float64 // extent ymin must be <= this
	YMax float64 // extent ymax must be >= this
}

// DefaultGlobalBounds333m detects full-globe rasters of the 333m
// product family, whose true extent is
// (-180.00149, -59.99851)-(179.99851, 80.00149).
var DefaultGlobalBounds333m = GlobalBounds{
	XMin: -179.999,
	XMax: 179.995,
	YMin: -59.998,
	YMax: 79.999,
}

// Matches reports whether extent spans the full globe per b.
func (b GlobalBounds) Matches(extent *geom.Bounds) bool {
	return extent.Min.X <= b.XMin && extent.Max.X >= b.XMax &&
		extent.Min.Y <= b.YMin && extent.Max.Y >= b.YMax
}

// EdgeTrim specifies how many fine cells to remove from each edge of a
// full-globe raster, in fractional-cell units. Amounts are rounded to
// whole pixels when applied.
type EdgeTrim struct {
	West, East, South, North float64
}

// DefaultEdgeTrim333m trims a full-globe 333m raster so that its shape
// becomes an exact multiple of the 3× aggregation factor relative to
// the 1km lattice. The amounts are asymmetric, reflecting the
// product's pixel-registration convention.
var DefaultEdgeTrim333m = EdgeTrim{West: 2, East: 1, South: 1, North: 2}

// CropGlobal trims edge slivers from a full-globe raster so that the
// result aligns with the aggregation factor relative to the coarse
// lattice. A grid whose extent does not match the full-globe test is
// returned unchanged: subsets do not sit on the global registration
// offset and must instead be aligned through AlignExtent and Crop.
func CropGlobal(g *Grid, full GlobalBounds, trim EdgeTrim) (*Grid, error) {
	if !full.Matches(g.Extent) {
		return g, nil
	}
	w := round(trim.West)
	e := round(trim.East)
	s := round(trim.South)
	n := round(trim.North)
	if w < 0 || e < 0 || s < 0 || n < 0 {
		return nil, fmt.Errorf("resample: negative edge trim (%g, %g, %g, %g): %w",
			trim.West, trim.East, trim.South, trim.North, ErrInvalidGeometry)
	}
	if w+e >= g.Cols() || s+n >= g.Rows() {
		return nil, fmt.Errorf("resample: edge trim leaves no cells in %d×%d grid: %w",
			g.Rows(), g.Cols(), ErrInvalidGeometry)
	}
	return g.window(n, g.Rows()-s, w, g.Cols()-e), nil
}

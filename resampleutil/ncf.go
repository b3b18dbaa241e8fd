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

package resampleutil

import (
	"fmt"
	"math"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
	"github.com/jacobs-tim/resampletool"
	"gonum.org/v1/gonum/floats"
)

// ReadGrid reads the named variable from a COARDS-style netCDF file
// (netCDF classic format) into a Grid. The variable must have latitude
// and longitude as its two trailing dimensions, each described by a
// coordinate variable of the same name holding cell-center
// coordinates; a leading record dimension of length one is allowed.
// The product's scale_factor and add_offset attributes, if present,
// are applied so that the returned grid holds physical values, and
// _FillValue cells become NoData.
func ReadGrid(filename, varname string) (*resample.Grid, error) {
	ff, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("resampleutil: opening netCDF file: %v", err)
	}
	defer ff.Close()
	f, err := cdf.Open(ff)
	if err != nil {
		return nil, fmt.Errorf("resampleutil: reading netCDF file %s: %v", filename, err)
	}

	dims := f.Header.Lengths(varname)
	dimNames := f.Header.Dimensions(varname)
	if len(dims) == 0 {
		return nil, fmt.Errorf("resampleutil: %s has no variable %s", filename, varname)
	}
	if len(dims) != 2 && !(len(dims) == 3 && dims[0] <= 1) {
		return nil, fmt.Errorf("resampleutil: variable %s has shape %v; want [lat, lon] with an optional single leading record", varname, dims)
	}
	ny, nx := dims[len(dims)-2], dims[len(dims)-1]
	latName, lonName := dimNames[len(dimNames)-2], dimNames[len(dimNames)-1]

	lat, err := readFloats(f, latName, ny)
	if err != nil {
		return nil, err
	}
	lon, err := readFloats(f, lonName, nx)
	if err != nil {
		return nil, err
	}
	if ny < 2 || nx < 2 {
		return nil, fmt.Errorf("resampleutil: variable %s is %d×%d; need at least 2 cells per axis", varname, ny, nx)
	}
	dx := math.Abs(lon[1] - lon[0])

	vals, err := readFloats(f, varname, ny*nx)
	if err != nil {
		return nil, err
	}

	if fill, ok := attrFloat(f, varname, "_FillValue"); ok {
		for i, v := range vals {
			if v == fill {
				vals[i] = resample.NoData
			}
		}
	}
	scale, hasScale := attrFloat(f, varname, "scale_factor")
	offset, hasOffset := attrFloat(f, varname, "add_offset")
	if hasScale || hasOffset {
		if !hasScale {
			scale = 1
		}
		if !hasOffset {
			offset = 0
		}
		for i, v := range vals {
			if !resample.IsNoData(v) {
				vals[i] = v*scale + offset
			}
		}
	}

	// Row 0 must be the northern edge.
	if lat[0] < lat[ny-1] {
		for r := 0; r < ny/2; r++ {
			top := vals[r*nx : (r+1)*nx]
			bot := vals[(ny-1-r)*nx : (ny-r)*nx]
			for c := range top {
				top[c], bot[c] = bot[c], top[c]
			}
		}
		lat[0], lat[ny-1] = lat[ny-1], lat[0]
	}

	data := sparse.ZerosDense(ny, nx)
	data.Elements = vals
	extent := &geom.Bounds{
		Min: geom.Point{X: lon[0] - dx/2, Y: lat[ny-1] - dx/2},
		Max: geom.Point{X: lon[nx-1] + dx/2, Y: lat[0] + dx/2},
	}
	return resample.NewGrid(data, extent, dx)
}

// WriteGrid writes g to a netCDF classic file with cell-center lat and
// lon coordinate variables, in the layout ReadGrid reads.
func WriteGrid(filename, varname string, g *resample.Grid) error {
	ny, nx := g.Rows(), g.Cols()
	h := cdf.NewHeader([]string{"lat", "lon"}, []int{ny, nx})
	h.AddVariable("lat", []string{"lat"}, []float64{0})
	h.AddAttribute("lat", "units", "degrees_north")
	h.AddVariable("lon", []string{"lon"}, []float64{0})
	h.AddAttribute("lon", "units", "degrees_east")
	h.AddVariable(varname, []string{"lat", "lon"}, []float64{0})
	h.AddAttribute("", "cell_size", []float64{g.Dx})
	h.AddAttribute("", "extent", []float64{
		g.Extent.Min.X, g.Extent.Max.X, g.Extent.Min.Y, g.Extent.Max.Y})
	h.Define()

	ff, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("resampleutil: creating netCDF file: %v", err)
	}
	defer ff.Close()
	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("resampleutil: writing netCDF header: %v", err)
	}

	// Latitude centers run north to south to match row order.
	lat := centers(ny, g.Extent.Max.Y-g.Dx/2, g.Extent.Min.Y+g.Dx/2)
	lon := centers(nx, g.Extent.Min.X+g.Dx/2, g.Extent.Max.X-g.Dx/2)

	for _, v := range []struct {
		name string
		data []float64
	}{{"lat", lat}, {"lon", lon}, {varname, g.Data.Elements}} {
		end := f.Header.Lengths(v.name)
		w := f.Writer(v.name, make([]int, len(end)), end)
		if _, err := w.Write(v.data); err != nil {
			return fmt.Errorf("resampleutil: writing variable %s: %v", v.name, err)
		}
	}
	return cdf.UpdateNumRecs(ff)
}

// centers returns n evenly spaced cell-center coordinates from first
// to last inclusive.
func centers(n int, first, last float64) []float64 {
	c := make([]float64, n)
	if n == 1 {
		c[0] = first
		return c
	}
	floats.Span(c, first, last)
	return c
}

// readFloats reads an entire variable as float64, converting from the
// stored type, and checks that it has n elements.
func readFloats(f *cdf.File, varname string, n int) ([]float64, error) {
	r := f.Reader(varname, nil, nil)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("resampleutil: reading variable %s: %v", varname, err)
	}
	var out []float64
	switch b := buf.(type) {
	case []float64:
		out = b
	case []float32:
		out = make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
	case []int32:
		out = make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
	case []int16:
		out = make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
	case []uint8:
		out = make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("resampleutil: variable %s has unsupported type %T", varname, buf)
	}
	if len(out) != n {
		return nil, fmt.Errorf("resampleutil: variable %s has %d elements; want %d", varname, len(out), n)
	}
	return out, nil
}

// attrFloat returns a scalar numeric attribute of a variable.
func attrFloat(f *cdf.File, varname, attr string) (float64, bool) {
	a := f.Header.GetAttribute(varname, attr)
	if a == nil {
		return 0, false
	}
	switch v := a.(type) {
	case []float64:
		if len(v) > 0 {
			return v[0], true
		}
	case []float32:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	case []int32:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	case []int16:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	case []uint8:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	}
	return 0, false
}

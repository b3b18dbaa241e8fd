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
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
	"github.com/jacobs-tim/resampletool"
)

func TestWriteReadGridRoundTrip(t *testing.T) {
	const tolerance = 1.0e-9
	path := filepath.Join(t.TempDir(), "grid.nc")

	data := sparse.ZerosDense(4, 4)
	for i := range data.Elements {
		data.Elements[i] = 0.1 * float64(i)
	}
	data.Elements[5] = resample.NoData
	extent := &geom.Bounds{
		Min: geom.Point{X: 0, Y: 40},
		Max: geom.Point{X: 0.4, Y: 40.4},
	}
	g, err := resample.NewGrid(data, extent, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	if err := WriteGrid(path, "NDVI", g); err != nil {
		t.Fatal(err)
	}
	back, err := ReadGrid(path, "NDVI")
	if err != nil {
		t.Fatal(err)
	}

	if back.Rows() != 4 || back.Cols() != 4 {
		t.Fatalf("shape: want 4×4 but have %d×%d", back.Rows(), back.Cols())
	}
	if math.Abs(back.Dx-0.1) > tolerance {
		t.Errorf("cell size: want 0.1 but have %g", back.Dx)
	}
	for _, c := range []struct {
		label      string
		have, want float64
	}{
		{"xmin", back.Extent.Min.X, 0},
		{"xmax", back.Extent.Max.X, 0.4},
		{"ymin", back.Extent.Min.Y, 40},
		{"ymax", back.Extent.Max.Y, 40.4},
	} {
		if math.Abs(c.have-c.want) > tolerance {
			t.Errorf("extent %s: want %g but have %g", c.label, c.want, c.have)
		}
	}
	for i, want := range g.Data.Elements {
		have := back.Data.Elements[i]
		if resample.IsNoData(want) != resample.IsNoData(have) {
			t.Errorf("element %d: want %g but have %g", i, want, have)
			continue
		}
		if !resample.IsNoData(want) && math.Abs(have-want) > tolerance {
			t.Errorf("element %d: want %g but have %g", i, want, have)
		}
	}
}

// writeDNFile writes a netCDF file storing digital numbers the way the
// source products do: int16 samples with scale_factor, add_offset, and
// _FillValue attributes, and south-to-north latitudes.
func writeDNFile(t *testing.T, path string) {
	t.Helper()
	h := cdf.NewHeader([]string{"lat", "lon"}, []int{2, 2})
	h.AddVariable("lat", []string{"lat"}, []float64{0})
	h.AddVariable("lon", []string{"lon"}, []float64{0})
	h.AddVariable("NDVI", []string{"lat", "lon"}, []int16{0})
	h.AddAttribute("NDVI", "scale_factor", []float64{0.004})
	h.AddAttribute("NDVI", "add_offset", []float64{-0.08})
	h.AddAttribute("NDVI", "_FillValue", []int16{255})
	h.Define()

	ff, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	f, err := cdf.Create(ff, h)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []struct {
		name string
		data interface{}
	}{
		{"lat", []float64{40.05, 40.15}}, // ascending: ReadGrid must flip
		{"lon", []float64{0.05, 0.15}},
		{"NDVI", []int16{0, 100, 250, 255}},
	} {
		end := f.Header.Lengths(v.name)
		w := f.Writer(v.name, make([]int, len(end)), end)
		if _, err := w.Write(v.data); err != nil {
			t.Fatal(err)
		}
	}
}

func TestReadGridDigitalNumbers(t *testing.T) {
	const tolerance = 1.0e-9
	path := filepath.Join(t.TempDir(), "dn.nc")
	writeDNFile(t, path)

	g, err := ReadGrid(path, "NDVI")
	if err != nil {
		t.Fatal(err)
	}

	// Row 0 must be the northern row after flipping, and the stored
	// digital numbers must come back as physical values with the fill
	// value masked.
	want := []float64{250*0.004 - 0.08, resample.NoData, 0*0.004 - 0.08, 100*0.004 - 0.08}
	for i, w := range want {
		have := g.Data.Elements[i]
		if resample.IsNoData(w) != resample.IsNoData(have) {
			t.Errorf("element %d: want %g but have %g", i, w, have)
			continue
		}
		if !resample.IsNoData(w) && math.Abs(have-w) > tolerance {
			t.Errorf("element %d: want %g but have %g", i, w, have)
		}
	}
	if math.Abs(g.Extent.Max.Y-40.2) > tolerance || math.Abs(g.Extent.Min.Y-40.0) > tolerance {
		t.Errorf("extent: want y in (40, 40.2) but have (%g, %g)", g.Extent.Min.Y, g.Extent.Max.Y)
	}
}

func TestReadGridMissingVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.nc")
	data := sparse.ZerosDense(2, 2)
	extent := &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 0.2, Y: 0.2}}
	g, err := resample.NewGrid(data, extent, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteGrid(path, "NDVI", g); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadGrid(path, "LAI"); err == nil {
		t.Error("missing variable: want an error")
	}
}

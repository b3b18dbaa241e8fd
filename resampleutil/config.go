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
	"os"

	"github.com/BurntSushi/toml"
	"github.com/jacobs-tim/resampletool"
)

// MethodSpec holds the per-layer resampling parameters documented for a
// product: the physical-value validity cutoffs, the recommended block
// statistic, and the storage size of one cell.
type MethodSpec struct {
	// CutoffHigh and CutoffLow bound the physically valid range;
	// samples outside it are flagged. They are physical values, i.e.
	// the documented digital-number flag thresholds with the product's
	// scale and offset already applied.
	CutoffHigh float64
	CutoffLow  float64

	// Reducer is the identifier of the recommended block statistic for
	// this layer.
	Reducer string

	// BytesPerCell is the storage size of one cell in the source
	// product, for memory-use estimates.
	BytesPerCell int
}

// A MethodTable maps "product/version/layer" keys to the resampling
// parameters for that layer.
type MethodTable map[string]MethodSpec

// DefaultMethodTable covers the 333m NDVI product family. The NDVI
// layer stores digital numbers 0–250 with scale 0.004 and offset -0.08,
// so flag values (251–255) sit strictly above the physical cutoff
// 250*0.004 - 0.08 = 0.92.
var DefaultMethodTable = MethodTable{
	"ndvi300/v1/NDVI": {
		CutoffHigh:   0.92,
		CutoffLow:    -0.08,
		Reducer:      resample.MeanWithCond,
		BytesPerCell: 1,
	},
	"ndvi300/v1/NDVI_unc": {
		CutoffHigh:   1,
		CutoffLow:    0,
		Reducer:      resample.UncertPropag,
		BytesPerCell: 2,
	},
	"ndvi300/v2/NDVI": {
		CutoffHigh:   0.92,
		CutoffLow:    -0.08,
		Reducer:      resample.MeanWithCond,
		BytesPerCell: 1,
	},
	"ndvi300/v2/NDVI_unc": {
		CutoffHigh:   1,
		CutoffLow:    0,
		Reducer:      resample.UncertPropag,
		BytesPerCell: 2,
	},
}

// LoadMethodTable reads a method table from the TOML file at path. An
// empty path returns the compiled-in default table. Both cutoffs must
// be stated for every entry; a table entry with equal cutoffs is
// rejected later by the masking stage.
func LoadMethodTable(path string) (MethodTable, error) {
	if path == "" {
		return DefaultMethodTable, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("resampleutil: opening method table: %v", err)
	}
	defer f.Close()
	t := make(MethodTable)
	if _, err := toml.DecodeReader(f, &t); err != nil {
		return nil, fmt.Errorf("resampleutil: parsing method table %s: %v", path, err)
	}
	return t, nil
}

// Lookup returns the method specification for the given product,
// version, and layer.
func (t MethodTable) Lookup(product, version, layer string) (MethodSpec, error) {
	key := product + "/" + version + "/" + layer
	spec, ok := t[key]
	if !ok {
		return MethodSpec{}, fmt.Errorf("resampleutil: no method table entry for %q", key)
	}
	return spec, nil
}

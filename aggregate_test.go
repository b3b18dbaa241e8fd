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
	"errors"
	"math"
	"testing"

	"github.com/ctessum/sparse"
)

func TestAggregateShape(t *testing.T) {
	const tolerance = 1.0e-9
	g := sequentialGrid(t, 6, 9, 0, 0.6, 0.1)
	out, err := Aggregate(g, 3, reduceMeanWithCond, ReducerConfig{MinValidCount: DefaultMinValidCount})
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 2 || out.Cols() != 3 {
		t.Fatalf("output shape: want 2×3 but have %d×%d", out.Rows(), out.Cols())
	}
	if math.Abs(out.Dx-0.3) > tolerance {
		t.Errorf("output cell size: want 0.3 but have %g", out.Dx)
	}
	boundsCompare(out.Extent, g.Extent, 0, "output extent", t)
}

func TestAggregateNonIntegerFactor(t *testing.T) {
	g := sequentialGrid(t, 10, 9, 0, 1.0, 0.1)
	if _, err := Aggregate(g, 3, reduceMeanWithCond, ReducerConfig{}); !errors.Is(err, ErrNonIntegerFactor) {
		t.Errorf("10 rows by factor 3: want ErrNonIntegerFactor, got %v", err)
	}
	if _, err := Aggregate(g, 0, reduceMeanWithCond, ReducerConfig{}); !errors.Is(err, ErrNonIntegerFactor) {
		t.Errorf("factor 0: want ErrNonIntegerFactor, got %v", err)
	}
}

func TestAggregateBlockValues(t *testing.T) {
	const tolerance = 1.0e-9
	// Each 3×3 block holds one constant so block membership is
	// visible in the output.
	vals := make([]float64, 36)
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			vals[r*6+c] = float64(r/3*2 + c/3)
		}
	}
	g := testGrid(t, 6, 6, 0, 0.6, 0.1, vals)
	out, err := Aggregate(g, 3, reduceMeanWithCond, ReducerConfig{MinValidCount: DefaultMinValidCount})
	if err != nil {
		t.Fatal(err)
	}
	want := sparse.ZerosDense(2, 2)
	want.Elements = []float64{0, 1, 2, 3}
	arrayCompare(out.Data, want, tolerance, "block values", t)
}

// Aggregating a constant fully-valid grid returns the same constant
// for the statistics that preserve constants.
func TestAggregateConstant(t *testing.T) {
	const tolerance = 1.0e-12
	vals := make([]float64, 81)
	for i := range vals {
		vals[i] = 0.42
	}
	g := testGrid(t, 9, 9, 0, 0.9, 0.1, vals)

	for _, name := range []string{MeanWithCond, ClosestToMean} {
		reducer, err := ReducerByName(name)
		if err != nil {
			t.Fatal(err)
		}
		out, err := Aggregate(g, 3, reducer, ReducerConfig{MinValidCount: DefaultMinValidCount})
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range out.Data.Elements {
			if math.Abs(v-0.42) > tolerance {
				t.Errorf("%s: element %d: want 0.42 but have %g", name, i, v)
			}
		}
	}
}

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
	"math"
	"reflect"
	"testing"
)

var defaultReducerConfig = ReducerConfig{MinValidCount: DefaultMinValidCount}

func TestMeanWithCond(t *testing.T) {
	const tolerance = 1.0e-12

	// 6 of 9 valid: the mean of the valid samples.
	block := []float64{1, 2, 3, NoData, NoData, NoData, 7, 9, 2}
	if have, want := reduceMeanWithCond(block, defaultReducerConfig), 4.0; math.Abs(have-want) > tolerance {
		t.Errorf("6 valid: want %g but have %g", want, have)
	}

	// 4 of 9 valid does not exceed the threshold.
	block = []float64{1, 2, 3, 4, NoData, NoData, NoData, NoData, NoData}
	if have := reduceMeanWithCond(block, defaultReducerConfig); !IsNoData(have) {
		t.Errorf("4 valid: want NoData but have %g", have)
	}

	// 5 of 9 valid does.
	block = []float64{1, 2, 3, 4, 5, NoData, NoData, NoData, NoData}
	if have, want := reduceMeanWithCond(block, defaultReducerConfig), 3.0; math.Abs(have-want) > tolerance {
		t.Errorf("5 valid: want %g but have %g", want, have)
	}
}

func TestClosestToMean(t *testing.T) {
	// 7 valid samples with mean 4: the exact match wins.
	block := []float64{1, 2, 3, 4, 5, 6, 7, NoData, NoData}
	if have, want := reduceClosestToMean(block, defaultReducerConfig), 4.0; have != want {
		t.Errorf("exact match: want %g but have %g", want, have)
	}

	// Mean 1 is equidistant from 0 and 2: the tie goes to the first
	// sample in block scan order.
	block = []float64{0, 2, 0, 2, 0, 2, NoData, NoData, NoData}
	if have, want := reduceClosestToMean(block, defaultReducerConfig), 0.0; have != want {
		t.Errorf("tie: want %g but have %g", want, have)
	}

	block = []float64{1, 2, 3, 4, NoData, NoData, NoData, NoData, NoData}
	if have := reduceClosestToMean(block, defaultReducerConfig); !IsNoData(have) {
		t.Errorf("4 valid: want NoData but have %g", have)
	}
}

func TestUncertPropag(t *testing.T) {
	const tolerance = 1.0e-12

	// 5 valid samples (3, 4, 0, 0, 0): sqrt(9+16)/5 = 1.
	block := []float64{3, 4, NoData, NoData, 0, 0, 0, 0, 0}
	if have, want := reduceUncertPropag(block, defaultReducerConfig), 1.0; math.Abs(have-want) > tolerance {
		t.Errorf("5 valid: want %g but have %g", want, have)
	}

	block = []float64{3, 4, NoData, NoData, NoData, NoData, NoData, 0, 0}
	if have := reduceUncertPropag(block, defaultReducerConfig); !IsNoData(have) {
		t.Errorf("4 valid: want NoData but have %g", have)
	}
}

func TestReducerByName(t *testing.T) {
	for _, name := range []string{MeanWithCond, ClosestToMean, UncertPropag} {
		if _, err := ReducerByName(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := ReducerByName("median"); err == nil {
		t.Error("unknown reducer: want an error")
	}
}

func TestRegisterReducer(t *testing.T) {
	count := func(block []float64, cfg ReducerConfig) float64 {
		n := 0
		for _, v := range block {
			if !IsNoData(v) {
				n++
			}
		}
		return float64(n)
	}
	if err := RegisterReducer("n_valid", count); err != nil {
		t.Fatal(err)
	}
	defer delete(reducers, "n_valid")

	r, err := ReducerByName("n_valid")
	if err != nil {
		t.Fatal(err)
	}
	if have := r([]float64{1, NoData, 2}, defaultReducerConfig); have != 2 {
		t.Errorf("registered reducer: want 2 but have %g", have)
	}
	if err := RegisterReducer(MeanWithCond, count); err == nil {
		t.Error("replacing a built-in reducer: want an error")
	}
	if err := RegisterReducer("nil_reducer", nil); err == nil {
		t.Error("nil reducer: want an error")
	}

	want := []string{ClosestToMean, MeanWithCond, "n_valid", UncertPropag}
	if have := ReducerNames(); !reflect.DeepEqual(have, want) {
		t.Errorf("reducer names: want %v but have %v", want, have)
	}
}

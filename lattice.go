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

	"gonum.org/v1/gonum/floats"
)

// LatticeTolerance is the maximum distance [degrees] at which a
// coordinate is considered to lie on a lattice node.
const LatticeTolerance = 1.0e-7

// A Lattice is the canonical, conceptually infinite set of grid-line
// coordinates for a product resolution, defined by an origin and a
// fixed step. Lattices are read-only; they are only ever used for
// snapping lookups.
type Lattice struct {
	Origin float64 // coordinate of node 0 [degrees]
	Step   float64 // node spacing [degrees]
}

// Canonical lattices for the two product families. The 1km grid has
// 112 cells per degree and the 333m grid 336 cells per degree, both
// anchored at -180°.
var (
	Lattice1km  = &Lattice{Origin: -180, Step: 1.0 / 112}
	Lattice333m = &Lattice{Origin: -180, Step: 1.0 / 336}
)

// Nodes materializes the ascending lattice node coordinates covering
// [lo, hi]. The returned slice always includes at least one node at or
// beyond each end of the span.
func (l *Lattice) Nodes(lo, hi float64) ([]float64, error) {
	if l.Step <= 0 || math.IsNaN(l.Step) {
		return nil, fmt.Errorf("resample: lattice step %g: %w", l.Step, ErrInvalidGeometry)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || hi < lo {
		return nil, fmt.Errorf("resample: lattice span [%g, %g]: %w", lo, hi, ErrInvalidGeometry)
	}
	i0 := int(math.Floor((lo - l.Origin) / l.Step))
	i1 := int(math.Ceil((hi - l.Origin) / l.Step))
	if i1 == i0 {
		i1++
	}
	nodes := make([]float64, i1-i0+1)
	floats.Span(nodes, l.Origin+float64(i0)*l.Step, l.Origin+float64(i1)*l.Step)
	return nodes, nil
}

// SnapToLattice returns the node in the ascending node set closest to
// coord. Ties are broken by returning the first match in ascending
// order, so the result is deterministic. Snapping an on-lattice
// coordinate returns it unchanged.
func SnapToLattice(coord float64, nodes []float64) (float64, error) {
	if math.IsNaN(coord) {
		return 0, fmt.Errorf("resample: cannot snap NaN coordinate: %w", ErrInvalidGeometry)
	}
	if len(nodes) == 0 {
		return 0, fmt.Errorf("resample: cannot snap to an empty lattice: %w", ErrInvalidGeometry)
	}
	best := nodes[0]
	bestDist := math.Abs(coord - nodes[0])
	for _, n := range nodes[1:] {
		if d := math.Abs(coord - n); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, nil
}

// IsOnLattice reports whether coord lies within tol of any node in the
// node set.
func IsOnLattice(coord float64, nodes []float64, tol float64) bool {
	for _, n := range nodes {
		if math.Abs(coord-n) <= tol {
			return true
		}
	}
	return false
}

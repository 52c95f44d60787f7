/*
Copyright © 2021 the plotsample authors.
This file is part of plotsample.

plotsample is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

plotsample is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with plotsample.  If not, see <http://www.gnu.org/licenses/>.
*/

package plotsample

import "github.com/ctessum/geom"

// A Boundary is the set of area-of-interest polygons that constrain where
// sample plots may be placed. It is immutable after loading.
type Boundary []geom.Polygon

// containTolerance is the fraction of a candidate's area that may fall
// outside a boundary polygon before the candidate is considered not
// contained. It absorbs clipping round-off only.
const containTolerance = 1e-9

// Contains reports whether p lies entirely within at least one of the
// boundary polygons. Containment is tested polygon by polygon: a geometry
// straddling two disjoint parts of the boundary without being fully inside
// either one is not contained.
func (b Boundary) Contains(p geom.Polygon) bool {
	pb := p.Bounds()
	pArea := p.Area()
	for _, poly := range b {
		if !pb.Overlaps(poly.Bounds()) {
			continue
		}
		if !verticesWithin(p, poly) {
			continue
		}
		// The vertex test misses candidates whose edges dip outside a
		// concave boundary, so confirm with the clipped area.
		if p.Intersection(poly).Area() >= pArea*(1-containTolerance) {
			return true
		}
	}
	return false
}

// verticesWithin reports whether every vertex of p is inside or on the
// edge of poly.
func verticesWithin(p geom.Polygon, poly geom.Polygon) bool {
	for _, ring := range p {
		for _, pt := range ring {
			if pt.Within(poly) == geom.Outside {
				return false
			}
		}
	}
	return true
}

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

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// A PointRecord is a single location in the survey dataset together with
// its numeric attribute value (for example a yield estimate).
// Records are loaded once and never modified afterwards.
type PointRecord struct {
	geom.Point
	Value float64
}

// A PointIndex is a spatial index over a set of point records. It is built
// once before sampling starts and is safe for shared read-only use
// afterwards.
type PointIndex struct {
	tree   *rtree.Rtree
	bounds *geom.Bounds
	n      int
}

// NewPointIndex builds a bounding-box index over recs. It returns an error
// if recs is empty, as there is nothing meaningful to sample from.
func NewPointIndex(recs []*PointRecord) (*PointIndex, error) {
	if len(recs) == 0 {
		return nil, fmt.Errorf("plotsample: cannot build an index over an empty point dataset")
	}
	i := &PointIndex{
		tree:   rtree.NewTree(25, 50),
		bounds: geom.NewBounds(),
		n:      len(recs),
	}
	for _, r := range recs {
		i.tree.Insert(r)
		i.bounds.Extend(r.Bounds())
	}
	return i, nil
}

// SearchIntersect returns all records whose bounding box intersects b.
// The result is a superset of the records that actually lie within any
// polygon with bounding box b; callers needing exact containment must
// narrow the result themselves.
func (i *PointIndex) SearchIntersect(b *geom.Bounds) []*PointRecord {
	hits := i.tree.SearchIntersect(b)
	recs := make([]*PointRecord, len(hits))
	for j, h := range hits {
		recs[j] = h.(*PointRecord)
	}
	return recs
}

// Within returns the records that lie within polygon p, narrowing an index
// query on p's bounding box with an exact point-in-polygon test.
func (i *PointIndex) Within(p geom.Polygon) []*PointRecord {
	var recs []*PointRecord
	for _, r := range i.SearchIntersect(p.Bounds()) {
		if r.Point.Within(p) == geom.Outside {
			continue
		}
		recs = append(recs, r)
	}
	return recs
}

// Bounds returns the extent of the indexed dataset.
func (i *PointIndex) Bounds() *geom.Bounds {
	return i.bounds.Copy()
}

// Len returns the number of indexed records.
func (i *PointIndex) Len() int {
	return i.n
}

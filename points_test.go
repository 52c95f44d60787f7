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
	"math"
	"testing"

	"github.com/ctessum/geom"
)

// gridPoints creates a regular grid of records covering [0, extent] in both
// directions with the given spacing, all carrying value v.
func gridPoints(extent, spacing float64, v float64) []*PointRecord {
	var recs []*PointRecord
	for x := 0.; x <= extent; x += spacing {
		for y := 0.; y <= extent; y += spacing {
			recs = append(recs, &PointRecord{
				Point: geom.Point{X: x, Y: y},
				Value: v,
			})
		}
	}
	return recs
}

// square returns a closed axis-aligned square ring.
func square(x, y, side float64) geom.Polygon {
	return geom.Polygon{{
		{X: x, Y: y},
		{X: x, Y: y + side},
		{X: x + side, Y: y + side},
		{X: x + side, Y: y},
		{X: x, Y: y},
	}}
}

func TestNewPointIndexEmpty(t *testing.T) {
	if _, err := NewPointIndex(nil); err == nil {
		t.Error("building an index over no points should fail")
	}
}

func TestPointIndexBounds(t *testing.T) {
	idx, err := NewPointIndex(gridPoints(90, 10, 1))
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 100 {
		t.Errorf("have %d records, want 100", idx.Len())
	}
	b := idx.Bounds()
	want := &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 90, Y: 90}}
	if *b != *want {
		t.Errorf("bounds: have %+v, want %+v", b, want)
	}
}

func TestPointIndexWithin(t *testing.T) {
	idx, err := NewPointIndex(gridPoints(90, 10, 1))
	if err != nil {
		t.Fatal(err)
	}
	plot := square(15, 15, 30) // covers grid points at 20, 30, 40

	within := idx.Within(plot)
	if len(within) != 9 {
		t.Errorf("have %d points within plot, want 9", len(within))
	}

	// Every point within the plot must also appear in the bounding-box
	// superset returned by the index.
	superset := make(map[*PointRecord]bool)
	for _, r := range idx.SearchIntersect(plot.Bounds()) {
		superset[r] = true
	}
	for _, r := range within {
		if !superset[r] {
			t.Errorf("point (%g, %g) within plot but missing from index query",
				r.X, r.Y)
		}
	}
	for _, r := range within {
		if r.X < 15 || r.X > 45 || r.Y < 15 || r.Y > 45 {
			t.Errorf("point (%g, %g) reported within plot but outside it", r.X, r.Y)
		}
	}
}

func TestPointIndexWithinRotated(t *testing.T) {
	idx, err := NewPointIndex(gridPoints(90, 10, 1))
	if err != nil {
		t.Fatal(err)
	}
	// A diamond centered on the grid point (50, 50). Its bounding box
	// covers the full 3×3 neighborhood, but the diamond itself excludes
	// the four diagonal neighbors, so the index superset must be narrowed.
	plot := geom.Polygon{{
		{X: 50, Y: 39},
		{X: 61, Y: 50},
		{X: 50, Y: 61},
		{X: 39, Y: 50},
		{X: 50, Y: 39},
	}}
	if n := len(idx.SearchIntersect(plot.Bounds())); n != 9 {
		t.Errorf("bounding-box query returned %d points, want 9", n)
	}
	within := idx.Within(plot)
	if len(within) != 5 {
		t.Fatalf("have %d points within diamond, want 5", len(within))
	}
	for _, r := range within {
		if d := math.Abs(r.X-50) + math.Abs(r.Y-50); d > 11 {
			t.Errorf("point (%g, %g) outside diamond reported within", r.X, r.Y)
		}
	}
}

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
	"math"
	"math/rand"
	"strconv"

	"github.com/ctessum/geom"
)

// m2PerHectare converts between hectares and the square meters used by the
// projected coordinate system.
const m2PerHectare = 10000.

// A SizeClass is a target plot-area range in hectares. One sampling pass is
// run per size class.
type SizeClass struct {
	Min, Max float64 // hectares
}

// NewSizeClass returns a size class for the range [min, max] hectares,
// checking that the range is usable.
func NewSizeClass(min, max float64) (SizeClass, error) {
	c := SizeClass{Min: min, Max: max}
	if min <= 0 || max <= 0 || min >= max {
		return c, fmt.Errorf("plotsample: invalid size class [%g, %g]: require 0 < min < max", min, max)
	}
	return c, nil
}

// Label returns the name used to identify this size class in output files
// and log messages, for example "0.5-2".
func (c SizeClass) Label() string {
	return strconv.FormatFloat(c.Min, 'g', -1, 64) + "-" +
		strconv.FormatFloat(c.Max, 'g', -1, 64)
}

// MaxSide returns the side length in meters of the largest square plot this
// class can produce.
func (c SizeClass) MaxSide() float64 {
	return math.Sqrt(c.Max * m2PerHectare)
}

// A CandidateSource produces candidate plot geometries for a size class
// within a bounding region. It is an interface so that the sampling loop
// can be driven by a deterministic source in tests.
type CandidateSource interface {
	Generate(class SizeClass, bounds *geom.Bounds) geom.Polygon
}

// A Generator creates randomly placed, randomly sized square candidate
// plots, rotated to align with the dataset's reference grid.
type Generator struct {
	// Rand is the source of randomness for plot sizes and origins.
	// Seeding it makes generation reproducible.
	Rand *rand.Rand

	// RotationDeg is the angle in degrees that each plot is rotated about
	// its centroid after construction. The default used by Default is 45,
	// matching the orientation of the survey grid the tool was built for.
	RotationDeg float64

	// SnapOrigin controls whether plot origin coordinates are truncated to
	// whole coordinate units before the plot is built.
	SnapOrigin bool
}

// NewGenerator returns a Generator with the default rotation (45°) and
// origin snapping enabled, drawing randomness from r.
func NewGenerator(r *rand.Rand) *Generator {
	return &Generator{Rand: r, RotationDeg: 45, SnapOrigin: true}
}

// Generate creates one candidate plot for the given size class, anchored
// uniformly at random within bounds. The plot is an axis-aligned square
// with area drawn uniformly from the class range, then rotated by
// RotationDeg about its centroid. bounds must be large enough to hold the
// largest plot of the class; validating that is the caller's
// responsibility and is done once per run, not per candidate.
func (g *Generator) Generate(class SizeClass, bounds *geom.Bounds) geom.Polygon {
	area := g.uniform(class.Min, class.Max) * m2PerHectare
	side := math.Sqrt(area)

	x := g.uniform(bounds.Min.X, bounds.Max.X-side)
	y := g.uniform(bounds.Min.Y, bounds.Max.Y-side)
	if g.SnapOrigin {
		x = math.Floor(x)
		y = math.Floor(y)
	}

	p := geom.Polygon{{
		{X: x, Y: y},
		{X: x, Y: y + side},
		{X: x + side, Y: y + side},
		{X: x + side, Y: y},
		{X: x, Y: y},
	}}
	if g.RotationDeg == 0 {
		return p
	}
	return rotate(p, g.RotationDeg*math.Pi/180)
}

func (g *Generator) uniform(min, max float64) float64 {
	return min + g.Rand.Float64()*(max-min)
}

// rotate returns p rotated by the angle theta (radians, counterclockwise)
// about its centroid.
func rotate(p geom.Polygon, theta float64) geom.Polygon {
	c := p.Centroid()
	sin, cos := math.Sin(theta), math.Cos(theta)
	o := make(geom.Polygon, len(p))
	for i, ring := range p {
		or := make([]geom.Point, len(ring))
		for j, pt := range ring {
			dx, dy := pt.X-c.X, pt.Y-c.Y
			or[j] = geom.Point{
				X: c.X + dx*cos - dy*sin,
				Y: c.Y + dx*sin + dy*cos,
			}
		}
		o[i] = or
	}
	return o
}

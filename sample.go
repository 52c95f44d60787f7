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

// Package plotsample draws randomly placed, randomly sized, rotated square
// sample plots within an area-of-interest boundary and aggregates the
// values of an underlying point dataset that fall inside each accepted
// plot. For each configured plot-size class it runs a rejection-sampling
// loop: candidates that are not fully contained by the boundary are
// discarded, accepted candidates are joined against a spatial index of the
// point dataset, and the mean and population standard deviation of the
// contained values are recorded alongside the plot geometry. A per-class
// attempt budget bounds the effort spent on size classes that the boundary
// cannot accommodate.
package plotsample

import (
	"errors"
	"fmt"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

// Version gives the tool version number.
const Version = "1.0.0"

// ErrEmptyAggregation is returned when summary statistics are requested
// for a plot that contains no points.
var ErrEmptyAggregation = errors.New("plotsample: no points within plot; cannot aggregate")

// A Sample is one accepted plot: its geometry and the summary statistics
// of the point values it contains. Samples are immutable once created.
type Sample struct {
	Geom  geom.Polygon
	Mean  float64
	Stdev float64 // population standard deviation
}

// Area returns the plot area in hectares.
func (s *Sample) Area() float64 {
	return s.Geom.Area() / m2PerHectare
}

// A ResultSet holds the accepted samples for one size class, in acceptance
// order. It is grown only by append during sampling and never reordered.
type ResultSet struct {
	Class   SizeClass
	Samples []*Sample

	// Attempts is the number of candidates that were generated (or, on
	// budget exhaustion, the attempt count at which the class gave up).
	Attempts int

	// Exhausted reports whether the class stopped because the attempt
	// budget ran out rather than because the target count was reached.
	Exhausted bool
}

// A Sampler runs the rejection-sampling loop for one or more size classes
// over a fixed point dataset and boundary.
type Sampler struct {
	Index    *PointIndex
	Boundary Boundary
	Source   CandidateSource

	// TargetCount is the number of samples wanted per size class.
	TargetCount int

	// TerminationFactor bounds the effort spent on a size class: a class
	// gives up after TargetCount*TerminationFactor candidates.
	TerminationFactor int

	// Log receives progress and give-up diagnostics. If nil, the standard
	// logger is used.
	Log logrus.FieldLogger
}

// Validate checks the sampler configuration before any sampling starts.
// It returns an error if the dataset or boundary is empty, if the counts
// are not positive, or if any size class can produce a plot larger than
// the dataset extent.
func (s *Sampler) Validate(classes []SizeClass) error {
	if s.Index == nil || s.Index.Len() == 0 {
		return fmt.Errorf("plotsample: point dataset is empty")
	}
	if len(s.Boundary) == 0 {
		return fmt.Errorf("plotsample: boundary is empty")
	}
	if s.Source == nil {
		return fmt.Errorf("plotsample: no candidate source")
	}
	if s.TargetCount <= 0 || s.TerminationFactor <= 0 {
		return fmt.Errorf("plotsample: target count (%d) and termination factor (%d) must be positive",
			s.TargetCount, s.TerminationFactor)
	}
	b := s.Index.Bounds()
	dx, dy := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y
	for _, c := range classes {
		if _, err := NewSizeClass(c.Min, c.Max); err != nil {
			return err
		}
		if side := c.MaxSide(); side > dx || side > dy {
			return fmt.Errorf("plotsample: size class %s: maximum plot side %.0f m exceeds dataset extent (%.0f × %.0f m)",
				c.Label(), side, dx, dy)
		}
	}
	return nil
}

// Run validates the configuration and then samples each size class in
// order, returning one result set per class. Result sets for classes that
// ran out of budget contain whatever samples were accepted before the
// budget expired; result sets may be empty.
func (s *Sampler) Run(classes []SizeClass) ([]*ResultSet, error) {
	if err := s.Validate(classes); err != nil {
		return nil, err
	}
	results := make([]*ResultSet, len(classes))
	for i, c := range classes {
		results[i] = s.runClass(c)
	}
	return results, nil
}

// RunClass samples a single size class. Unlike Run it validates only that
// class, so it can be used to re-run one class in isolation.
func (s *Sampler) RunClass(class SizeClass) (*ResultSet, error) {
	if err := s.Validate([]SizeClass{class}); err != nil {
		return nil, err
	}
	return s.runClass(class), nil
}

func (s *Sampler) runClass(class SizeClass) *ResultSet {
	log := s.logger().WithFields(logrus.Fields{"class": class.Label()})
	log.Info("calculating samples")

	bounds := s.Index.Bounds()
	budget := s.TargetCount * s.TerminationFactor
	rs := &ResultSet{Class: class}

	for len(rs.Samples) < s.TargetCount {
		rs.Attempts++
		if rs.Attempts == budget {
			rs.Exhausted = true
			log.WithFields(logrus.Fields{
				"accepted": len(rs.Samples),
				"attempts": rs.Attempts,
			}).Warn("attempt budget exhausted; keeping partial results")
			break
		}

		plot := s.Source.Generate(class, bounds)
		if !s.Boundary.Contains(plot) {
			continue
		}

		vals := values(s.Index.Within(plot))
		mean, stdev, err := aggregate(vals)
		if err != nil {
			// An empty plot carries no information; reject it and try
			// again without consuming one of the target acceptances.
			log.WithFields(logrus.Fields{"attempt": rs.Attempts}).
				Debug("plot contains no points; rejecting")
			continue
		}
		rs.Samples = append(rs.Samples, &Sample{Geom: plot, Mean: mean, Stdev: stdev})
	}
	return rs
}

func (s *Sampler) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	return logrus.StandardLogger()
}

func values(recs []*PointRecord) []float64 {
	vals := make([]float64, len(recs))
	for i, r := range recs {
		vals[i] = r.Value
	}
	return vals
}

// aggregate returns the arithmetic mean and population standard deviation
// (denominator N, not N-1) of vals. It returns ErrEmptyAggregation if vals
// is empty rather than producing undefined statistics.
func aggregate(vals []float64) (mean, stdev float64, err error) {
	if len(vals) == 0 {
		return 0, 0, ErrEmptyAggregation
	}
	var d stats.Stats
	d.UpdateArray(vals)
	return d.Mean(), d.PopulationStandardDeviation(), nil
}

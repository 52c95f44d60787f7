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

package plotsampleutil

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/plotsample"
	"gonum.org/v1/gonum/stat"
)

// Run executes one full sampling run: it loads the point dataset and the
// boundary, samples every configured size class, and writes one shapefile
// per size class that produced samples.
func Run(cfg *Config) error {
	log := logrus.StandardLogger()
	log.Info("preparing data")

	points, err := plotsample.LoadPoints(cfg.PointFile, cfg.PointColumn)
	if err != nil {
		return err
	}
	index, err := plotsample.NewPointIndex(points.Records)
	if err != nil {
		return err
	}
	boundary, boundaryPrj, err := plotsample.LoadBoundary(cfg.BoundaryFile)
	if err != nil {
		return err
	}
	if err := checkProjections(points.Projection, boundaryPrj); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("plotsample: creating output directory: %v", err)
	}

	gen := plotsample.NewGenerator(rand.New(rand.NewSource(cfg.Seed)))
	gen.RotationDeg = cfg.RotationDegrees
	gen.SnapOrigin = cfg.SnapOrigin

	s := &plotsample.Sampler{
		Index:             index,
		Boundary:          boundary,
		Source:            gen,
		TargetCount:       cfg.SampleN,
		TerminationFactor: cfg.TerminationFactor,
		Log:               log,
	}
	results, err := s.Run(cfg.SizeClasses)
	if err != nil {
		return err
	}

	for _, rs := range results {
		fname, err := plotsample.WriteResults(cfg.OutputDir, rs, points.Projection)
		if err != nil {
			return err
		}
		if fname == "" {
			continue
		}
		mean, spread := classSummary(means(rs))
		log.WithFields(logrus.Fields{
			"class":      rs.Class.Label(),
			"samples":    len(rs.Samples),
			"mean":       mean,
			"meanSpread": spread,
			"file":       fname,
		}).Info("wrote samples")
	}
	log.Info("done")
	return nil
}

// checkProjections fails if the point and boundary layers carry different
// spatial references. Both layers lacking a .prj sidecar is allowed; the
// data are then assumed to share an unspecified projected system.
func checkProjections(pointPrj, boundaryPrj string) error {
	p, b := strings.TrimSpace(pointPrj), strings.TrimSpace(boundaryPrj)
	if p != "" && b != "" && p != b {
		return fmt.Errorf("plotsample: point dataset and boundary have different spatial references")
	}
	return nil
}

// classSummary returns the mean of the per-plot means in ms and their
// sample standard deviation. With fewer than two values the standard
// deviation is undefined, so the spread is reported as zero.
func classSummary(ms []float64) (mean, spread float64) {
	mean = stat.Mean(ms, nil)
	if len(ms) > 1 {
		spread = stat.StdDev(ms, nil)
	}
	return mean, spread
}

func means(rs *plotsample.ResultSet) []float64 {
	m := make([]float64, len(rs.Samples))
	for i, s := range rs.Samples {
		m[i] = s.Mean
	}
	return m
}

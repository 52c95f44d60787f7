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
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/plotsample"
	"github.com/spf13/cast"
)

// Config holds the checked configuration for one sampling run.
type Config struct {
	PointFile    string
	PointColumn  string
	BoundaryFile string
	OutputDir    string

	SampleN           int
	TerminationFactor int
	SizeClasses       []plotsample.SizeClass

	RotationDegrees float64
	SnapOrigin      bool
	Seed            int64
}

// SamplerConfig extracts and checks the sampling configuration from cfg.
// File paths may contain environment variables.
func SamplerConfig(cfg *viper.Viper) (*Config, error) {
	c := &Config{
		PointFile:         os.ExpandEnv(cfg.GetString("PointFile")),
		PointColumn:       cfg.GetString("PointColumn"),
		BoundaryFile:      os.ExpandEnv(cfg.GetString("BoundaryFile")),
		OutputDir:         os.ExpandEnv(cfg.GetString("OutputDir")),
		SampleN:           cfg.GetInt("SampleN"),
		TerminationFactor: cfg.GetInt("TerminationFactor"),
		RotationDegrees:   cfg.GetFloat64("RotationDegrees"),
		SnapOrigin:        cfg.GetBool("SnapOrigin"),
		Seed:              int64(cfg.GetInt("Seed")),
	}
	if c.PointFile == "" {
		return nil, fmt.Errorf("plotsample: PointFile is not specified")
	}
	if c.BoundaryFile == "" {
		return nil, fmt.Errorf("plotsample: BoundaryFile is not specified")
	}
	if c.PointColumn == "" {
		c.PointColumn = plotsample.DefaultPointColumn
	}
	if c.SampleN <= 0 {
		return nil, fmt.Errorf("plotsample: SampleN must be positive, got %d", c.SampleN)
	}
	if c.TerminationFactor <= 0 {
		return nil, fmt.Errorf("plotsample: TerminationFactor must be positive, got %d", c.TerminationFactor)
	}
	classes, err := parseSizeClasses(cfg.GetStringSlice("SampleSizes"))
	if err != nil {
		return nil, err
	}
	c.SizeClasses = classes
	return c, nil
}

// parseSizeClasses converts "min,max" hectare pairs into size classes.
func parseSizeClasses(pairs []string) ([]plotsample.SizeClass, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("plotsample: no SampleSizes are specified")
	}
	classes := make([]plotsample.SizeClass, len(pairs))
	for i, pair := range pairs {
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("plotsample: SampleSizes entry %q: expected \"min,max\"", pair)
		}
		min, err := cast.ToFloat64E(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("plotsample: SampleSizes entry %q: %v", pair, err)
		}
		max, err := cast.ToFloat64E(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("plotsample: SampleSizes entry %q: %v", pair, err)
		}
		if classes[i], err = plotsample.NewSizeClass(min, max); err != nil {
			return nil, err
		}
	}
	return classes, nil
}

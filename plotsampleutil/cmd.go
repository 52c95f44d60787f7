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

// Package plotsampleutil holds the configuration and command-line wiring
// for the plotsample tool.
package plotsampleutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/plotsample"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to plotsample.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "PointFile",
			usage: `
              PointFile is the path to the shapefile holding the point dataset
              to be aggregated, for example a per-pixel yield estimate layer.`,
			defaultVal: "in/points.shp",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "PointColumn",
			usage: `
              PointColumn is the name of the attribute field in PointFile that
              holds the value to aggregate within each sample plot.`,
			defaultVal: plotsample.DefaultPointColumn,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "BoundaryFile",
			usage: `
              BoundaryFile is the path to the shapefile holding the
              area-of-interest polygons that sample plots must fall within.
              It must share a spatial reference with PointFile.`,
			defaultVal: "in/boundary.shp",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputDir",
			usage: `
              OutputDir is the directory where the per-size-class sample
              shapefiles are written.`,
			defaultVal: "out",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SampleN",
			usage: `
              SampleN is the number of sample plots wanted per size class.`,
			defaultVal: 100,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "TerminationFactor",
			usage: `
              TerminationFactor bounds the effort spent on each size class:
              a class gives up after SampleN*TerminationFactor candidate
              plots, keeping whatever samples were accepted by then.`,
			defaultVal: 500,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SampleSizes",
			usage: `
              SampleSizes is the list of plot-size classes to sample, each
              given as a "min,max" pair of areas in hectares.`,
			defaultVal: []string{"0.5,2", "2,10", "0.01,1", "1,2", "2,5", "5,10"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "RotationDegrees",
			usage: `
              RotationDegrees is the angle each plot is rotated about its
              centroid to align with the dataset's reference grid.`,
			defaultVal: 45.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SnapOrigin",
			usage: `
              SnapOrigin controls whether plot origin coordinates are
              truncated to whole coordinate units before plot construction.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Seed",
			usage: `
              Seed initializes the random number generator so runs are
              reproducible.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("PLOTSAMPLE")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("plotsample: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "plotsample",
	Short: "A rotated-plot area sampler for point datasets.",
	Long: `plotsample draws randomly placed, rotated square sample plots within an
area-of-interest boundary and records the mean and standard deviation of an
underlying point dataset's values inside each plot, one output shapefile per
plot-size class.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'PLOTSAMPLE_var' where
'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

// runCmd samples every configured size class and writes the results.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Draw sample plots and write the per-class results.",
	Long: `run loads the point dataset and boundary, draws sample plots for every
configured size class, and writes one shapefile of accepted plots per size
class that produced at least one sample.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := SamplerConfig(Cfg)
		if err != nil {
			return err
		}
		return Run(cfg)
	},
	DisableAutoGenTag: true,
}

// versionCmd prints the version number.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of plotsample.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("plotsample v%s\n", plotsample.Version)
	},
	DisableAutoGenTag: true,
}

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
	"reflect"
	"testing"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/plotsample"
)

func testViper() *viper.Viper {
	v := viper.New()
	v.Set("PointFile", "in/points.shp")
	v.Set("BoundaryFile", "in/boundary.shp")
	v.Set("OutputDir", "out")
	v.Set("SampleN", 100)
	v.Set("TerminationFactor", 500)
	v.Set("SampleSizes", []string{"0.5,2", "2,10"})
	v.Set("RotationDegrees", 45.0)
	v.Set("SnapOrigin", true)
	v.Set("Seed", 1)
	return v
}

func TestSamplerConfig(t *testing.T) {
	cfg, err := SamplerConfig(testViper())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PointColumn != plotsample.DefaultPointColumn {
		t.Errorf("default point column: have %s, want %s",
			cfg.PointColumn, plotsample.DefaultPointColumn)
	}
	want := []plotsample.SizeClass{
		{Min: 0.5, Max: 2},
		{Min: 2, Max: 10},
	}
	if !reflect.DeepEqual(cfg.SizeClasses, want) {
		t.Errorf("size classes: have %+v, want %+v", cfg.SizeClasses, want)
	}
	if cfg.SampleN != 100 || cfg.TerminationFactor != 500 {
		t.Errorf("have SampleN=%d TerminationFactor=%d, want 100 and 500",
			cfg.SampleN, cfg.TerminationFactor)
	}
}

func TestSamplerConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
	}{
		{"missing point file", "PointFile", ""},
		{"missing boundary file", "BoundaryFile", ""},
		{"zero samples", "SampleN", 0},
		{"zero termination factor", "TerminationFactor", 0},
		{"no size classes", "SampleSizes", []string{}},
		{"malformed pair", "SampleSizes", []string{"1"}},
		{"non-numeric pair", "SampleSizes", []string{"a,b"}},
		{"inverted pair", "SampleSizes", []string{"5,2"}},
		{"non-positive pair", "SampleSizes", []string{"0,2"}},
	}
	for _, test := range tests {
		v := testViper()
		v.Set(test.key, test.val)
		if _, err := SamplerConfig(v); err == nil {
			t.Errorf("%s: expected an error", test.name)
		}
	}
}

func TestFlagDefaults(t *testing.T) {
	if got := Cfg.GetInt("SampleN"); got != 100 {
		t.Errorf("SampleN default: have %d, want 100", got)
	}
	if got := Cfg.GetInt("TerminationFactor"); got != 500 {
		t.Errorf("TerminationFactor default: have %d, want 500", got)
	}
	if got := Cfg.GetString("PointColumn"); got != plotsample.DefaultPointColumn {
		t.Errorf("PointColumn default: have %s, want %s", got, plotsample.DefaultPointColumn)
	}
	sizes := Cfg.GetStringSlice("SampleSizes")
	if len(sizes) != 6 {
		t.Errorf("SampleSizes default: have %d classes, want 6", len(sizes))
	}
}

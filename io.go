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
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
)

// DefaultPointColumn is the attribute field holding the point values when
// no other field is configured.
const DefaultPointColumn = "GRID_CODE"

// A PointLayer is the decoded contents of a point-dataset shapefile.
type PointLayer struct {
	Records []*PointRecord

	// Projection is the raw contents of the .prj sidecar; it is propagated
	// to output files so results share the input's spatial reference.
	Projection string
}

// LoadPoints reads a point shapefile, taking each feature's location and
// the value of the named attribute column. It returns an error if the file
// holds no point features or if any value is missing or not a number.
func LoadPoints(filename, column string) (*PointLayer, error) {
	d, err := shp.NewDecoder(filename)
	if err != nil {
		return nil, fmt.Errorf("plotsample: opening point dataset: %v", err)
	}
	defer d.Close()

	layer := new(PointLayer)
	for {
		g, fields, more := d.DecodeRowFields(column)
		if !more {
			break
		}
		pt, ok := g.(geom.Point)
		if !ok {
			return nil, fmt.Errorf("plotsample: %s: point dataset features must be points, got %T", filename, g)
		}
		v, err := s2f(fields[column])
		if err != nil {
			return nil, fmt.Errorf("plotsample: %s: parsing attribute %s: %v", filename, column, err)
		}
		if math.IsNaN(v) {
			return nil, fmt.Errorf("plotsample: %s: NaN value in attribute %s", filename, column)
		}
		layer.Records = append(layer.Records, &PointRecord{Point: pt, Value: v})
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("plotsample: reading point dataset: %v", err)
	}
	if len(layer.Records) == 0 {
		return nil, fmt.Errorf("plotsample: %s: point dataset is empty", filename)
	}
	if layer.Projection, err = readPrj(filename); err != nil {
		return nil, err
	}
	if layer.Projection != "" {
		// Parse the spatial reference so a malformed .prj is caught here
		// rather than propagated to the output files.
		if _, err := d.SR(); err != nil {
			return nil, fmt.Errorf("plotsample: parsing point dataset spatial reference: %v", err)
		}
	}
	return layer, nil
}

// LoadBoundary reads the area-of-interest polygons from a shapefile.
// Multipolygon features are flattened into their member polygons, matching
// the polygon-wise containment semantics of Boundary.Contains. The second
// return value is the raw contents of the layer's .prj sidecar, if any.
func LoadBoundary(filename string) (Boundary, string, error) {
	d, err := shp.NewDecoder(filename)
	if err != nil {
		return nil, "", fmt.Errorf("plotsample: opening boundary: %v", err)
	}
	defer d.Close()

	var b Boundary
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		if b, err = appendBoundary(b, g); err != nil {
			return nil, "", fmt.Errorf("plotsample: %s: %v", filename, err)
		}
	}
	if err := d.Error(); err != nil {
		return nil, "", fmt.Errorf("plotsample: reading boundary: %v", err)
	}
	if len(b) == 0 {
		return nil, "", fmt.Errorf("plotsample: %s: boundary is empty", filename)
	}
	prj, err := readPrj(filename)
	if err != nil {
		return nil, "", err
	}
	return b, prj, nil
}

// appendBoundary adds the polygons of g to b. Multipolygons are flattened
// into their member polygons so each member participates in containment
// tests on its own.
func appendBoundary(b Boundary, g geom.Geom) (Boundary, error) {
	switch t := g.(type) {
	case geom.Polygon:
		return append(b, t), nil
	case geom.MultiPolygon:
		return append(b, t.Polygons()...), nil
	default:
		return nil, fmt.Errorf("boundary features must be polygons, got %T", g)
	}
}

// WriteResults writes the samples in rs to a polygon shapefile in dir named
// after the size class (for example "0.5-2-samples.shp") with attribute
// fields mean, stdev, and area (hectares). If prj is non-empty it is
// written alongside as the .prj sidecar. Result sets with no samples
// produce no file; the returned filename is empty in that case.
func WriteResults(dir string, rs *ResultSet, prj string) (string, error) {
	if len(rs.Samples) == 0 {
		return "", nil
	}
	fname := filepath.Join(dir, rs.Class.Label()+"-samples.shp")
	fields := []goshp.Field{
		goshp.FloatField("mean", 16, 8),
		goshp.FloatField("stdev", 16, 8),
		goshp.FloatField("area", 16, 8),
	}
	e, err := shp.NewEncoderFromFields(fname, goshp.POLYGON, fields...)
	if err != nil {
		return "", fmt.Errorf("plotsample: creating output shapefile: %v", err)
	}
	for _, s := range rs.Samples {
		if err := e.EncodeFields(s.Geom, s.Mean, s.Stdev, s.Area()); err != nil {
			return "", fmt.Errorf("plotsample: writing output shapefile: %v", err)
		}
	}
	e.Close()

	if prj != "" {
		base := strings.TrimSuffix(fname, filepath.Ext(fname))
		if err := ioutil.WriteFile(base+".prj", []byte(prj), 0644); err != nil {
			return "", fmt.Errorf("plotsample: writing output prj file: %v", err)
		}
	}
	return fname, nil
}

// readPrj returns the contents of the .prj sidecar for a shapefile, or ""
// if there is none.
func readPrj(filename string) (string, error) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	b, err := ioutil.ReadFile(base + ".prj")
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("plotsample: reading prj file: %v", err)
	}
	return string(b), nil
}

func s2f(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, "*") { // Null value
		return 0, fmt.Errorf("null attribute value")
	}
	return strconv.ParseFloat(s, 64)
}

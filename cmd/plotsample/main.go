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

// Command plotsample is a command-line interface for drawing rotated
// sample plots within a boundary and aggregating a point dataset's values
// inside each plot.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/plotsample/plotsampleutil"
)

func main() {
	if err := plotsampleutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

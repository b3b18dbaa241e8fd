/*
Copyright © 2026 the ResampleTool authors.
This file is part of ResampleTool.

ResampleTool is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ResampleTool is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ResampleTool.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command resample is a command-line interface for downsampling
// fine-resolution geographic rasters onto the 1km grid.
package main

import (
	"fmt"
	"os"

	"github.com/jacobs-tim/resampletool/resampleutil"
)

func main() {
	if err := resampleutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

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

package resampleutil

import (
	"fmt"
	"time"

	"github.com/jacobs-tim/resampletool"
	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// Run resamples the named variable of one netCDF raster and writes the
// coarse result: read, mask using the cutoffs in spec, trim or align
// per cfg, aggregate, write.
func Run(inputFile, outputFile, variable string, spec MethodSpec, cfg resample.Config) error {
	if inputFile == "" {
		return fmt.Errorf("resample: no input file specified; set the InputFile option")
	}
	cfg.CutoffHigh = spec.CutoffHigh
	cfg.CutoffLow = spec.CutoffLow

	g, err := ReadGrid(inputFile, variable)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"file":     inputFile,
		"variable": variable,
		"rows":     g.Rows(),
		"cols":     g.Cols(),
		"cellsize": g.Dx,
		"bytes":    g.Rows() * g.Cols() * spec.BytesPerCell,
	}).Info("read input raster")

	out, err := resample.Resample(g, cfg)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"rows":     out.Rows(),
		"cols":     out.Cols(),
		"cellsize": out.Dx,
		"reducer":  cfg.Reducer,
	}).Info("aggregated raster")

	if err := WriteGrid(outputFile, variable, out); err != nil {
		return err
	}
	logger.WithField("file", outputFile).Info("wrote output raster")
	return nil
}

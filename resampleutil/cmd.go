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

// Package resampleutil wires the resample library into a configurable
// command-line tool.
package resampleutil

import (
	"fmt"
	"os"

	"github.com/ctessum/geom"
	"github.com/jacobs-tim/resampletool"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
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
			name: "InputFile",
			usage: `
              InputFile is the path to the fine-resolution netCDF raster
              to be resampled.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the resampled netCDF raster
              will be written.`,
			shorthand:  "o",
			defaultVal: "resampled.nc",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Variable",
			usage: `
              Variable is the netCDF variable to resample. If empty, the
              Product.Layer name is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Product.Name",
			usage: `
              Product.Name identifies the source product family in the
              method table.`,
			defaultVal: "ndvi300",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Product.Version",
			usage: `
              Product.Version identifies the source product version in the
              method table.`,
			defaultVal: "v1",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Product.Layer",
			usage: `
              Product.Layer identifies the product layer in the method
              table. The table supplies the layer's validity cutoffs and
              its recommended block statistic.`,
			defaultVal: "NDVI",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "MethodTable",
			usage: `
              MethodTable is the path to a TOML file mapping
              product/version/layer keys to cutoff values and block
              statistics. If empty, a compiled-in table for the 333m NDVI
              family is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Factor",
			usage: `
              Factor is the integer ratio between output and input cell
              size.`,
			defaultVal: 3,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "MinValidCount",
			usage: `
              MinValidCount is the number of valid fine pixels an
              aggregation block must exceed to produce an output value.`,
			defaultVal: resample.DefaultMinValidCount,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Reducer",
			usage: `
              Reducer overrides the block statistic recommended by the
              method table ("mean_w_cond", "closest_to_mean", or
              "uncert_propag").`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "TargetExtent",
			usage: `
              TargetExtent optionally restricts the output to a
              sub-region, given as xmin,xmax,ymin,ymax in decimal
              degrees. The extent is snapped onto the 1km lattice before
              cropping. If empty, the full input extent is resampled.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "GlobalBounds.XMin",
			usage: `
              GlobalBounds.XMin is the full-globe detection threshold
              for the western edge: rasters whose xmin lies at or west of
              it are treated as global.`,
			defaultVal: resample.DefaultGlobalBounds333m.XMin,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "GlobalBounds.XMax",
			usage: `
              GlobalBounds.XMax is the full-globe detection threshold for
              the eastern edge.`,
			defaultVal: resample.DefaultGlobalBounds333m.XMax,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "GlobalBounds.YMin",
			usage: `
              GlobalBounds.YMin is the full-globe detection threshold for
              the southern edge.`,
			defaultVal: resample.DefaultGlobalBounds333m.YMin,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "GlobalBounds.YMax",
			usage: `
              GlobalBounds.YMax is the full-globe detection threshold for
              the northern edge.`,
			defaultVal: resample.DefaultGlobalBounds333m.YMax,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "EdgeTrim.West",
			usage: `
              EdgeTrim.West is the number of fine cells to trim from the
              western edge of a full-globe raster.`,
			defaultVal: resample.DefaultEdgeTrim333m.West,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "EdgeTrim.East",
			usage: `
              EdgeTrim.East is the number of fine cells to trim from the
              eastern edge of a full-globe raster.`,
			defaultVal: resample.DefaultEdgeTrim333m.East,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "EdgeTrim.South",
			usage: `
              EdgeTrim.South is the number of fine cells to trim from the
              southern edge of a full-globe raster.`,
			defaultVal: resample.DefaultEdgeTrim333m.South,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "EdgeTrim.North",
			usage: `
              EdgeTrim.North is the number of fine cells to trim from the
              northern edge of a full-globe raster.`,
			defaultVal: resample.DefaultEdgeTrim333m.North,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("RESAMPLE")

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
	Root.AddCommand(reducersCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("resample: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "resample",
	Short: "Downsample fine-resolution rasters onto the 1km grid.",
	Long: `resample aggregates 333m Copernicus Global Land rasters onto the
canonical 1km grid using area-based block statistics, handling flagged
pixels and grid-registration offsets between the two product families.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format
'RESAMPLE_var' where 'var' is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration
information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of the resample tool.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("resample v%s\n", resample.Version)
	},
	DisableAutoGenTag: true,
}

var reducersCmd = &cobra.Command{
	Use:   "reducers",
	Short: "List the available block statistics",
	Long: `reducers prints the identifiers of the block statistics that can be
used for aggregation.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range resample.ReducerNames() {
			cmd.Println(name)
		}
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resample one raster.",
	Long: `run masks, aligns, and aggregates a single fine-resolution raster
and writes the coarse result. The raster flows through flagged-pixel
masking, full-globe trimming or lattice alignment, and block
aggregation with the configured statistic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := targetExtent(Cfg.GetStringSlice("TargetExtent"))
		if err != nil {
			return err
		}
		table, err := LoadMethodTable(os.ExpandEnv(Cfg.GetString("MethodTable")))
		if err != nil {
			return err
		}
		spec, err := table.Lookup(Cfg.GetString("Product.Name"),
			Cfg.GetString("Product.Version"), Cfg.GetString("Product.Layer"))
		if err != nil {
			return err
		}
		if r := Cfg.GetString("Reducer"); r != "" {
			spec.Reducer = r
		}
		variable := Cfg.GetString("Variable")
		if variable == "" {
			variable = Cfg.GetString("Product.Layer")
		}
		return Run(
			os.ExpandEnv(Cfg.GetString("InputFile")),
			os.ExpandEnv(Cfg.GetString("OutputFile")),
			variable,
			spec,
			resample.Config{
				Factor:        Cfg.GetInt("Factor"),
				Reducer:       spec.Reducer,
				ReducerConfig: resample.ReducerConfig{MinValidCount: Cfg.GetInt("MinValidCount")},
				CoarseLattice: resample.Lattice1km,
				GlobalBounds: resample.GlobalBounds{
					XMin: Cfg.GetFloat64("GlobalBounds.XMin"),
					XMax: Cfg.GetFloat64("GlobalBounds.XMax"),
					YMin: Cfg.GetFloat64("GlobalBounds.YMin"),
					YMax: Cfg.GetFloat64("GlobalBounds.YMax"),
				},
				EdgeTrim: resample.EdgeTrim{
					West:  Cfg.GetFloat64("EdgeTrim.West"),
					East:  Cfg.GetFloat64("EdgeTrim.East"),
					South: Cfg.GetFloat64("EdgeTrim.South"),
					North: Cfg.GetFloat64("EdgeTrim.North"),
				},
				TargetExtent: target,
			},
		)
	},
	DisableAutoGenTag: true,
}

// targetExtent parses an xmin,xmax,ymin,ymax option value. An empty
// value means no target extent.
func targetExtent(s []string) (*geom.Bounds, error) {
	if len(s) == 0 {
		return nil, nil
	}
	if len(s) != 4 {
		return nil, fmt.Errorf("resample: TargetExtent must have 4 components (xmin,xmax,ymin,ymax); got %d", len(s))
	}
	v := make([]float64, 4)
	for i, c := range s {
		var err error
		if v[i], err = cast.ToFloat64E(c); err != nil {
			return nil, fmt.Errorf("resample: parsing TargetExtent component %q: %v", c, err)
		}
	}
	return &geom.Bounds{
		Min: geom.Point{X: v[0], Y: v[2]},
		Max: geom.Point{X: v[1], Y: v[3]},
	}, nil
}

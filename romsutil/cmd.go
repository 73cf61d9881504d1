/*
Copyright © 2024 the ROMS Tools authors.
This file is part of ROMS Tools.

ROMS Tools is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ROMS Tools is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ROMS Tools.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package romsutil wires the roms diagnostics into a command-line
// interface. Every flag can also be set through a configuration file
// or a ROMS_-prefixed environment variable.
package romsutil

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coastalsim/roms"
	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// Cfg holds the merged flag, environment, and file configuration.
var Cfg *viper.Viper

// Root is the main command.
var Root = &cobra.Command{
	Use:   "roms",
	Short: "roms computes diagnostics from ocean model output",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile := Cfg.GetString("config"); cfgFile != "" {
			Cfg.SetConfigFile(cfgFile)
			if err := Cfg.ReadInConfig(); err != nil {
				return fmt.Errorf("romsutil: reading configuration: %w", err)
			}
		}
		return nil
	},
	SilenceUsage: true,
}

var depthsCmd = &cobra.Command{
	Use:   "depths",
	Short: "depths computes the depth of every model grid cell",
	Long: `depths reconstructs the terrain-following vertical coordinate of
every grid cell from the model grid parameters and, optionally, the free
surface at one output record.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openInput()
		if err != nil {
			return err
		}
		defer ds.Close()
		record := Cfg.GetInt("time")
		points := Cfg.GetString("points")
		var z *sparse.DenseArray
		switch points {
		case "rho":
			z, err = roms.ZAtR(ds, record)
		case "w":
			z, err = roms.ZAtW(ds, record)
		default:
			return fmt.Errorf("romsutil: unknown grid point type %q (want rho or w)", points)
		}
		if err != nil {
			return err
		}
		log.WithField("points", points).Info(roms.DepthSummary(z))
		return nil
	},
}

var isosliceCmd = &cobra.Command{
	Use:   "isoslice",
	Short: "isoslice projects a field onto an isosurface of another",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openInput()
		if err != nil {
			return err
		}
		defer ds.Close()
		record := Cfg.GetInt("time")
		v, err := ds.VariableAt(Cfg.GetString("var"), record)
		if err != nil {
			return err
		}
		prop, err := ds.VariableAt(Cfg.GetString("prop"), record)
		if err != nil {
			return err
		}
		v, prop, err = roms.ShrinkTogether(v, prop)
		if err != nil {
			return err
		}
		result, err := roms.IsoSlice(v, prop, Cfg.GetFloat64("isoval"), Cfg.GetInt("axis"), true)
		var warn roms.OutOfRangeWarning
		switch {
		case errors.As(err, &warn):
			log.Warn(warn.Error())
		case err != nil:
			return err
		}
		log.WithFields(log.Fields{
			"shape": result.Shape,
			"valid": len(result.Elements) - countNaN(result),
		}).Info("isosurface slice computed")
		return nil
	},
}

var nearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "nearest finds the grid cell closest to a longitude and latitude",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openInput()
		if err != nil {
			return err
		}
		defer ds.Close()
		lon, err := roms.FirstVariable(ds, "lon_rho", "lon")
		if err != nil {
			return err
		}
		lat, err := roms.FirstVariable(ds, "lat_rho", "lat")
		if err != nil {
			return err
		}
		p := geom.Point{X: Cfg.GetFloat64("lon"), Y: Cfg.GetFloat64("lat")}
		var idx []int
		if scaleStr := Cfg.GetString("scale"); scaleStr != "" {
			scale, err := parseScale(scaleStr)
			if err != nil {
				return err
			}
			ties, err := roms.ArgNearest([]*sparse.DenseArray{lon, lat}, []float64{p.X, p.Y}, scale)
			if err != nil {
				return err
			}
			idx = ties[0]
		} else {
			idx, err = roms.NearestPoint(lon, lat, p)
			if err != nil {
				return err
			}
		}
		cell := geom.Point{X: lon.Get(idx...), Y: lat.Get(idx...)}
		log.WithFields(log.Fields{
			"index":    idx,
			"lon":      cell.X,
			"lat":      cell.Y,
			"distance": roms.DistanceUnit(p, cell),
		}).Info("nearest grid cell")
		return nil
	},
}

func openInput() (roms.Dataset, error) {
	ds, err := roms.OpenDataset(Cfg.GetString("input"))
	if err != nil {
		return nil, err
	}
	return roms.NewCachedDataset(ds, Cfg.GetInt("cachesize")), nil
}

func parseScale(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	scale := make([]float64, len(parts))
	for i, p := range parts {
		v, err := cast.ToFloat64E(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("romsutil: parsing scale %q: %w", s, err)
		}
		scale[i] = v
	}
	return scale, nil
}

func countNaN(a *sparse.DenseArray) int {
	n := 0
	for _, v := range roms.MaskNaN(a).Elements {
		n += v
	}
	return n
}

func init() {
	Cfg = viper.New()
	Cfg.SetEnvPrefix("ROMS")
	Cfg.AutomaticEnv()

	pf := Root.PersistentFlags()
	pf.String("config", "", "configuration file location")
	pf.String("input", "", "model output file, wildcard pattern, or grid file")
	pf.Int("cachesize", 100, "number of variable reads to hold in memory")

	depthsCmd.Flags().Int("time", roms.RestState, "output record for the free surface; -1 uses the rest state")
	depthsCmd.Flags().String("points", "rho", "vertical grid point type: rho or w")

	isosliceCmd.Flags().Int("time", 0, "output record to slice")
	isosliceCmd.Flags().String("var", "", "variable to project onto the isosurface")
	isosliceCmd.Flags().String("prop", "", "property defining the isosurface")
	isosliceCmd.Flags().Float64("isoval", 0, "isosurface value of the property")
	isosliceCmd.Flags().Int("axis", 0, "axis to project away")

	nearestCmd.Flags().Float64("lon", 0, "target longitude [degrees east]")
	nearestCmd.Flags().Float64("lat", 0, "target latitude [degrees north]")
	nearestCmd.Flags().String("scale", "", "comma-separated per-dimension scale factors")

	for _, cmd := range []*cobra.Command{depthsCmd, isosliceCmd, nearestCmd} {
		Root.AddCommand(cmd)
	}
	Cfg.BindPFlags(Root.PersistentFlags())
	Cfg.BindPFlags(depthsCmd.Flags())
	Cfg.BindPFlags(isosliceCmd.Flags())
	Cfg.BindPFlags(nearestCmd.Flags())
}

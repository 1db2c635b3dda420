package main

import (
	"fmt"

	"github.com/midbel/chartgeo"
	"github.com/midbel/chartgeo/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type tickSummary struct {
	Value      string  `yaml:"value"`
	Coordinate float64 `yaml:"coordinate"`
}

type axisSummary struct {
	Kind   string        `yaml:"kind"`
	ID     string        `yaml:"id"`
	Type   string        `yaml:"type"`
	Scale  string        `yaml:"scale"`
	Domain []string      `yaml:"domain"`
	Ticks  []tickSummary `yaml:"ticks,omitempty"`
}

type elementSummary struct {
	Kind   string      `yaml:"kind"`
	ID     string      `yaml:"id"`
	Points [][]float64 `yaml:"points,omitempty"`
	Paths  []string    `yaml:"paths,omitempty"`
}

type geometrySummary struct {
	Kind     string           `yaml:"kind"`
	Layout   string           `yaml:"layout"`
	Width    float64          `yaml:"width"`
	Height   float64          `yaml:"height"`
	Offset   chartgeo.Offset  `yaml:"offset"`
	Axes     []axisSummary    `yaml:"axes,omitempty"`
	Elements []elementSummary `yaml:"elements,omitempty"`
}

type inspectOptions struct {
	withHidden bool
}

func (a *App) newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the computed geometry of a chart as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspectFile(args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.withHidden, "hidden", false, "include hidden axes")

	return cmd
}

func (a *App) inspectFile(file string, opts *inspectOptions) error {
	f, err := config.Load(file)
	if err != nil {
		return err
	}
	chart, err := config.Build(f)
	if err != nil {
		return err
	}
	geo, err := chart.Compose()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(a.stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(summarize(geo, opts.withHidden))
}

func summarize(geo *chartgeo.Geometry, withHidden bool) geometrySummary {
	sum := geometrySummary{
		Kind:   string(geo.Kind),
		Layout: string(geo.Layout),
		Width:  geo.Width,
		Height: geo.Height,
		Offset: geo.Offset,
	}
	for _, a := range geo.Axes {
		if a.Hide && !withHidden {
			continue
		}
		as := axisSummary{
			Kind:  string(a.Kind),
			ID:    a.ID,
			Type:  string(a.Domain.Type),
			Scale: string(a.RealScale),
		}
		for _, v := range a.Domain.Labels() {
			as.Domain = append(as.Domain, chartgeo.Stringify(v))
		}
		for _, t := range a.Ticks {
			as.Ticks = append(as.Ticks, tickSummary{
				Value:      chartgeo.Stringify(t.Value),
				Coordinate: t.Coordinate,
			})
		}
		sum.Axes = append(sum.Axes, as)
	}
	for _, e := range geo.Elements {
		sum.Elements = append(sum.Elements, summarizeElement(e))
	}
	return sum
}

func summarizeElement(e chartgeo.Element) elementSummary {
	var es elementSummary
	switch e := e.(type) {
	case chartgeo.LineGeometry:
		es.Kind, es.ID = "line", e.ID
		for _, p := range e.Points {
			es.Points = append(es.Points, []float64{p.X, p.Y})
		}
		es.Paths = appendPath(es.Paths, e.Path)
	case chartgeo.AreaGeometry:
		es.Kind, es.ID = "area", e.ID
		for _, p := range e.Points {
			es.Points = append(es.Points, []float64{p.X, p.Y})
		}
		es.Paths = appendPath(es.Paths, e.Path)
	case chartgeo.BarGeometry:
		es.Kind, es.ID = "bar", e.ID
		for _, r := range e.Rects {
			es.Points = append(es.Points, []float64{r.X, r.Y, r.Width, r.Height})
		}
	case chartgeo.ScatterGeometry:
		es.Kind, es.ID = "scatter", e.ID
		for _, p := range e.Points {
			es.Points = append(es.Points, []float64{p.Center.X, p.Center.Y, p.Size})
		}
		es.Paths = appendPath(es.Paths, e.Line)
	case chartgeo.FunnelGeometry:
		es.Kind, es.ID = "funnel", e.ID
		for _, t := range e.Trapezoids {
			es.Points = append(es.Points, []float64{t.X, t.Y, t.UpperWidth, t.Height})
		}
	case chartgeo.PieGeometry:
		es.Kind, es.ID = "pie", e.ID
		for _, s := range e.Sectors {
			path, _ := chartgeo.SectorPath(s.Sector)
			es.Paths = appendPath(es.Paths, path)
		}
	case chartgeo.RadarGeometry:
		es.Kind, es.ID = "radar", e.ID
		for _, p := range e.Points {
			es.Points = append(es.Points, []float64{p.X, p.Y})
		}
		es.Paths = appendPath(es.Paths, e.Path)
	case chartgeo.RadialBarGeometry:
		es.Kind, es.ID = "radialBar", e.ID
		for _, s := range e.Sectors {
			es.Paths = appendPath(es.Paths, s.Path)
		}
	default:
		es.Kind = fmt.Sprintf("%T", e)
	}
	return es
}

func appendPath(list []string, path string) []string {
	if path == "" {
		return list
	}
	return append(list, path)
}

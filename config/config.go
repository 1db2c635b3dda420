// Package config reads chart descriptions and turns them into chart contexts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/midbel/chartgeo"
	"github.com/midbel/chartgeo/chartsync"
	"github.com/midbel/chartgeo/internal/logging"
)

var ErrConfig = errors.New("invalid chart description")

type ConfigError struct {
	File    string
	Section string
	Option  string
	Message string
}

func (e ConfigError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Section != "" {
		b.WriteString(e.Section)
		if e.Option != "" {
			b.WriteString(".")
			b.WriteString(e.Option)
		}
		b.WriteString(": ")
	} else if e.Option != "" {
		b.WriteString(e.Option)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

func (e ConfigError) Unwrap() error {
	return ErrConfig
}

// Margin is the space around the plot area.
type Margin struct {
	Top    *float64 `yaml:"top"`
	Right  *float64 `yaml:"right"`
	Bottom *float64 `yaml:"bottom"`
	Left   *float64 `yaml:"left"`
}

type Data struct {
	File   string           `yaml:"file" env:"CHARTGEO_DATA"`
	Format string           `yaml:"format"`
	Rows   []map[string]any `yaml:"rows"`
}

type AxisPadding struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Mode  string  `yaml:"mode"`
}

type Axis struct {
	Kind        string      `yaml:"kind"`
	ID          string      `yaml:"id"`
	Type        string      `yaml:"type"`
	Name        string      `yaml:"name"`
	Unit        string      `yaml:"unit"`
	DataKey     string      `yaml:"dataKey"`
	Domain      []string    `yaml:"domain"`
	Categories  []any       `yaml:"categories"`
	Scale       string      `yaml:"scale"`
	Orientation string      `yaml:"orientation"`
	Reversed    bool        `yaml:"reversed"`
	Mirror      bool        `yaml:"mirror"`
	Hide        bool        `yaml:"hide"`
	TickCount   *int        `yaml:"tickCount"`
	Ticks       []any       `yaml:"ticks"`
	Interval    string      `yaml:"interval"`
	MinTickGap  *float64    `yaml:"minTickGap"`
	Angle       float64     `yaml:"angle"`
	Width       *float64    `yaml:"width"`
	Height      *float64    `yaml:"height"`
	Padding     AxisPadding `yaml:"padding"`
	Range       []float64   `yaml:"range"`

	AllowDecimals           *bool `yaml:"allowDecimals"`
	AllowDuplicatedCategory *bool `yaml:"allowDuplicatedCategory"`
	AllowDataOverflow       bool  `yaml:"allowDataOverflow"`
	IncludeHidden           bool  `yaml:"includeHidden"`
}

type ErrorBar struct {
	DataKey   string  `yaml:"dataKey"`
	Direction string  `yaml:"direction"`
	Width     float64 `yaml:"width"`
}

type Item struct {
	Kind    string `yaml:"kind"`
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	DataKey string `yaml:"dataKey"`
	NameKey string `yaml:"nameKey"`
	Color   string `yaml:"color"`
	Hide    bool   `yaml:"hide"`
	StackID string `yaml:"stackId"`

	XAxisID      string `yaml:"xAxisId"`
	YAxisID      string `yaml:"yAxisId"`
	ZAxisID      string `yaml:"zAxisId"`
	AngleAxisID  string `yaml:"angleAxisId"`
	RadiusAxisID string `yaml:"radiusAxisId"`

	Curve        string `yaml:"curve"`
	ConnectNulls bool   `yaml:"connectNulls"`
	BaseValue    string `yaml:"baseValue"`

	BarSize      string  `yaml:"barSize"`
	MaxBarSize   float64 `yaml:"maxBarSize"`
	MinPointSize float64 `yaml:"minPointSize"`
	Background   bool    `yaml:"background"`

	Shape     string `yaml:"shape"`
	Line      bool   `yaml:"line"`
	LineType  string `yaml:"lineType"`
	LineCurve string `yaml:"lineCurve"`

	LastShapeType string `yaml:"lastShapeType"`
	Reversed      bool   `yaml:"reversed"`
	Width         string `yaml:"width"`

	Cx           string   `yaml:"cx"`
	Cy           string   `yaml:"cy"`
	InnerRadius  string   `yaml:"innerRadius"`
	OuterRadius  string   `yaml:"outerRadius"`
	StartAngle   *float64 `yaml:"startAngle"`
	EndAngle     *float64 `yaml:"endAngle"`
	PaddingAngle float64  `yaml:"paddingAngle"`
	MinAngle     float64  `yaml:"minAngle"`
	CornerRadius string   `yaml:"cornerRadius"`

	Data      []map[string]any `yaml:"data"`
	ErrorBars []ErrorBar       `yaml:"errorBars"`
}

type Reference struct {
	Kind       string  `yaml:"kind"`
	ID         string  `yaml:"id"`
	XAxisID    string  `yaml:"xAxisId"`
	YAxisID    string  `yaml:"yAxisId"`
	X          any     `yaml:"x"`
	Y          any     `yaml:"y"`
	X1         any     `yaml:"x1"`
	X2         any     `yaml:"x2"`
	Y1         any     `yaml:"y1"`
	Y2         any     `yaml:"y2"`
	Segment    [][]any `yaml:"segment"`
	R          float64 `yaml:"r"`
	IfOverflow string  `yaml:"ifOverflow"`
}

type Brush struct {
	Height         float64 `yaml:"height"`
	TravellerWidth float64 `yaml:"travellerWidth"`
	Gap            int     `yaml:"gap"`
	StartIndex     int     `yaml:"startIndex"`
	EndIndex       *int    `yaml:"endIndex"`
}

// File is a chart description. Size, sync id and palette can be overridden
// from the environment.
type File struct {
	Kind       string  `yaml:"kind" env:"CHARTGEO_KIND"`
	Title      string  `yaml:"title"`
	Width      float64 `yaml:"width" env:"CHARTGEO_WIDTH" env-default:"600"`
	Height     float64 `yaml:"height" env:"CHARTGEO_HEIGHT" env-default:"400"`
	Layout     string  `yaml:"layout"`
	SyncID     string  `yaml:"syncId" env:"CHARTGEO_SYNC_ID"`
	SyncMethod string  `yaml:"syncMethod" env:"CHARTGEO_SYNC_METHOD"`
	Palette    string  `yaml:"palette" env:"CHARTGEO_PALETTE"`
	Margin     Margin  `yaml:"margin"`

	StackOffset       string  `yaml:"stackOffset"`
	ReverseStackOrder bool    `yaml:"reverseStackOrder"`
	BarGap            string  `yaml:"barGap"`
	BarCategoryGap    string  `yaml:"barCategoryGap"`
	BarSize           string  `yaml:"barSize"`
	MaxBarSize        float64 `yaml:"maxBarSize"`

	Cx          string   `yaml:"cx"`
	Cy          string   `yaml:"cy"`
	InnerRadius string   `yaml:"innerRadius"`
	OuterRadius string   `yaml:"outerRadius"`
	StartAngle  *float64 `yaml:"startAngle"`
	EndAngle    *float64 `yaml:"endAngle"`

	Data       Data        `yaml:"data"`
	Axes       []Axis      `yaml:"axes"`
	Items      []Item      `yaml:"items"`
	References []Reference `yaml:"references"`
	Brush      *Brush      `yaml:"brush"`

	path string
}

// Path is the file the description was read from.
func (f *File) Path() string {
	return f.path
}

// Dir is the directory relative data files are looked up in.
func (f *File) Dir() string {
	if f.path == "" {
		return "."
	}
	return filepath.Dir(f.path)
}

// Load reads the description in file. Values set in the environment win over
// the ones of the file.
func Load(file string) (*File, error) {
	if _, err := os.Stat(file); err != nil {
		return nil, err
	}
	var f File
	if err := cleanenv.ReadConfig(file, &f); err != nil {
		return nil, ConfigError{
			File:    file,
			Message: err.Error(),
		}
	}
	f.path = file
	if err := f.Validate(); err != nil {
		return nil, err
	}
	logging.Debug().
		Add(logging.Component("config")).
		Add(logging.File(file)).
		Add(logging.Count(len(f.Items))).
		Msg("description loaded")
	return &f, nil
}

// Validate checks the values that can be checked without the data.
func (f *File) Validate() error {
	fail := func(section, option, msg string) error {
		return ConfigError{
			File:    f.path,
			Section: section,
			Option:  option,
			Message: msg,
		}
	}
	if _, err := chartgeo.ParseChartKind(f.Kind); err != nil {
		return fail("", "kind", err.Error())
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fail("", "size", fmt.Sprintf("%gx%g: width and height should be positive", f.Width, f.Height))
	}
	if f.Layout != "" {
		if _, err := chartgeo.ParseLayout(f.Layout); err != nil {
			return fail("", "layout", err.Error())
		}
	}
	if _, err := chartsync.ParseMethod(f.SyncMethod); err != nil {
		return fail("", "syncMethod", err.Error())
	}
	axes := make(map[string]struct{})
	for i, a := range f.Axes {
		section := fmt.Sprintf("axes[%d]", i)
		kind, err := parseAxisKind(a.Kind)
		if err != nil {
			return fail(section, "kind", err.Error())
		}
		if len(a.Domain) != 0 && len(a.Domain) != 2 {
			return fail(section, "domain", "domain should have two bounds")
		}
		if len(a.Range) != 0 && len(a.Range) != 2 {
			return fail(section, "range", "range should have two values")
		}
		key := string(kind) + "/" + axisID(a.ID)
		if _, ok := axes[key]; ok {
			return fail(section, "id", fmt.Sprintf("%s: %s", axisID(a.ID), chartgeo.ErrDuplicateID))
		}
		axes[key] = struct{}{}
	}
	items := make(map[string]struct{})
	for i, it := range f.Items {
		section := fmt.Sprintf("items[%d]", i)
		if _, err := parseItemKind(it.Kind); err != nil {
			return fail(section, "kind", err.Error())
		}
		if it.DataKey == "" && it.Kind != string(chartgeo.ItemScatter) {
			return fail(section, "dataKey", "data key is missing")
		}
		if it.ID == "" {
			continue
		}
		if _, ok := items[it.ID]; ok {
			return fail(section, "id", fmt.Sprintf("%s: %s", it.ID, chartgeo.ErrDuplicateID))
		}
		items[it.ID] = struct{}{}
	}
	for i, r := range f.References {
		switch chartgeo.ReferenceKind(r.Kind) {
		case chartgeo.ReferenceLine, chartgeo.ReferenceArea, chartgeo.ReferenceDot:
		default:
			return fail(fmt.Sprintf("references[%d]", i), "kind", fmt.Sprintf("%s: unknown reference", r.Kind))
		}
	}
	return nil
}

func axisID(id string) string {
	if id == "" {
		return chartgeo.DefaultAxisID
	}
	return id
}

// parseAxisKind accepts the short names x, y, z, angle and radius as well.
func parseAxisKind(str string) (chartgeo.AxisKind, error) {
	switch k := chartgeo.AxisKind(strings.TrimSpace(str)); k {
	case chartgeo.XAxis, chartgeo.YAxis, chartgeo.ZAxis, chartgeo.AngleAxis, chartgeo.RadiusAxis:
		return k, nil
	case "x", "y", "z", "angle", "radius":
		return k + "Axis", nil
	default:
		return "", fmt.Errorf("%s: unknown axis", str)
	}
}

func parseItemKind(str string) (chartgeo.ItemKind, error) {
	switch k := chartgeo.ItemKind(strings.TrimSpace(str)); k {
	case chartgeo.ItemLine, chartgeo.ItemArea, chartgeo.ItemBar, chartgeo.ItemScatter,
		chartgeo.ItemFunnel, chartgeo.ItemPie, chartgeo.ItemRadar, chartgeo.ItemRadialBar:
		return k, nil
	default:
		return "", fmt.Errorf("%s: unknown item", str)
	}
}

package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/midbel/chartgeo"
)

func renderString(t *testing.T, r *Renderer, geo *chartgeo.Geometry) string {
	t.Helper()
	var buf bytes.Buffer
	if err := r.Render(&buf, geo); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return buf.String()
}

func testGeometry(elems ...chartgeo.Element) *chartgeo.Geometry {
	return &chartgeo.Geometry{
		Kind:     chartgeo.ComposedChart,
		Layout:   chartgeo.LayoutHorizontal,
		Width:    200,
		Height:   100,
		Offset:   chartgeo.Offset{Left: 10, Top: 10, Width: 180, Height: 80},
		Elements: elems,
	}
}

func TestRenderElements(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		Name  string
		Elem  chartgeo.Element
		Want  []string
		Count map[string]int
	}{
		{
			Name: "bar",
			Elem: chartgeo.BarGeometry{
				ID:    "bar",
				Color: "red",
				Rects: []chartgeo.BarRect{
					{Rect: chartgeo.Rect{X: 10, Y: 20, Width: 30, Height: -10}, Value: 5},
				},
			},
			Want: []string{
				`width="30" height="10" x="10" y="10" fill="red"`,
				`<title>5</title>`,
				`id="bar"`,
			},
		},
		{
			Name: "line",
			Elem: chartgeo.LineGeometry{
				Color: "blue",
				Path:  "M0,0L1,1",
				Points: []chartgeo.LinePoint{
					{Point: chartgeo.NewPoint(0, 0)},
					{Point: chartgeo.NewPoint(nan, nan)},
					{Point: chartgeo.NewPoint(1, 1)},
				},
			},
			Want:  []string{`d="M0,0L1,1"`, `stroke="blue"`},
			Count: map[string]int{"<circle": 2},
		},
		{
			Name: "area",
			Elem: chartgeo.AreaGeometry{
				Path: "M0,0L1,1L1,10L0,10Z",
				Line: "M0,0L1,1",
			},
			Want:  []string{`fill="` + Category10[0] + `" fill-opacity="0.60"`},
			Count: map[string]int{"<path": 2},
		},
		{
			Name: "scatter",
			Elem: chartgeo.ScatterGeometry{
				Shape: chartgeo.SymbolCircle,
				Points: []chartgeo.ScatterPoint{
					{Center: chartgeo.NewPoint(50, 40), Size: 64},
					{Center: chartgeo.NewPoint(nan, 40), Size: 64},
				},
			},
			Want:  []string{`transform="translate(50,40)"`},
			Count: map[string]int{"<path": 1},
		},
		{
			Name: "pie",
			Elem: chartgeo.PieGeometry{
				Sectors: []chartgeo.PieSector{
					{Index: 0, Path: "M0,0Z"},
					{Index: 1},
					{Index: 2, Path: "M1,1Z"},
				},
			},
			Want:  []string{`fill="` + Category10[2] + `"`},
			Count: map[string]int{"<path": 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			out := renderString(t, New(DefaultStyle()), testGeometry(tt.Elem))
			for _, w := range tt.Want {
				if !strings.Contains(out, w) {
					t.Errorf("%s not found in %s", w, out)
				}
			}
			for str, n := range tt.Count {
				if got := strings.Count(out, str); got != n {
					t.Errorf("want %d %s, got %d", n, str, got)
				}
			}
		})
	}
}

func TestRenderClip(t *testing.T) {
	geo := testGeometry()
	geo.References = []chartgeo.ReferenceGeometry{
		{Kind: chartgeo.ReferenceDot, Clip: true, Center: chartgeo.NewPoint(5, 5), R: 3},
	}
	out := renderString(t, New(DefaultStyle()), geo)
	if !strings.HasPrefix(out, "<?xml") {
		t.Errorf("document should start with the xml prolog")
	}
	if !strings.Contains(out, `<clipPath id="clip-`) {
		t.Errorf("clip path not defined in %s", out)
	}
	if got := strings.Count(out, `clip-path="url(#clip-`); got != 2 {
		t.Errorf("series and reference should be clipped, got %d clipped groups", got)
	}

	r := New(DefaultStyle())
	r.Clip = false
	out = renderString(t, r, geo)
	if got := strings.Count(out, `clip-path="url(#clip-`); got != 1 {
		t.Errorf("only the reference should be clipped, got %d clipped groups", got)
	}
}

func TestRenderAxes(t *testing.T) {
	var (
		shown  = chartgeo.DefaultXAxis("0")
		hidden = chartgeo.DefaultYAxis("0")
	)
	hidden.Hide = true
	shown.Unit = "<kg>"
	geo := testGeometry()
	geo.Axes = []chartgeo.AxisGeometry{
		{
			Axis: &chartgeo.Axis{AxisSettings: shown, X: 10, Y: 90, Width: 180, Height: 10},
			Ticks: []chartgeo.Tick{
				{Value: "a", Coordinate: 40},
				{Value: "b", Coordinate: 100},
			},
		},
		{
			Axis:  &chartgeo.Axis{AxisSettings: hidden},
			Ticks: []chartgeo.Tick{{Value: 1, Coordinate: 10}},
		},
	}
	out := renderString(t, New(DefaultStyle()), geo)
	if got := strings.Count(out, "<text"); got != 2 {
		t.Errorf("want 2 labels, got %d", got)
	}
	if !strings.Contains(out, "a&lt;kg&gt;") {
		t.Errorf("label should be escaped with its unit in %s", out)
	}
	if !strings.Contains(out, `x1="40" y1="90" x2="40" y2="96"`) {
		t.Errorf("tick line of a bottom axis should go down in %s", out)
	}
}

func TestRenderComposedBar(t *testing.T) {
	ctx := chartgeo.NewContext(chartgeo.DefaultChartSettings(chartgeo.BarChart, 400, 300))
	x := chartgeo.DefaultXAxis("0")
	x.DataKey = chartgeo.Key("name")
	ctx.AddAxis(x)
	ctx.AddAxis(chartgeo.DefaultYAxis("0"))
	ctx.AddItem(&chartgeo.BarSeries{Series: chartgeo.Series{ID: "bar", DataKey: chartgeo.Key("v")}})
	ctx.SetData([]chartgeo.Row{
		{"name": "a", "v": 10},
		{"name": "b", "v": 20},
		{"name": "c", "v": 30},
	})
	geo, err := ctx.Compose()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	out := renderString(t, New(DefaultStyle()), geo)
	if got := strings.Count(out, `fill="`+Category10[0]+`"`); got != 3 {
		t.Errorf("want 3 bars filled with the first color, got %d", got)
	}
}

func TestRenderNoGeometry(t *testing.T) {
	var buf bytes.Buffer
	if err := New(DefaultStyle()).Render(&buf, nil); err != ErrNoGeometry {
		t.Errorf("want ErrNoGeometry, got %v", err)
	}
}

func TestParsePalette(t *testing.T) {
	tests := []struct {
		Input string
		Want  Palette
	}{
		{Input: "", Want: Category10},
		{Input: "Tableau10", Want: Tableau10},
		{Input: "red, green,,blue", Want: Palette{"red", "green", "blue"}},
	}
	for _, tt := range tests {
		got := ParsePalette(tt.Input)
		if len(got) != len(tt.Want) {
			t.Errorf("%q: want %d colors, got %d", tt.Input, len(tt.Want), len(got))
			continue
		}
		for i := range got {
			if got[i] != tt.Want[i] {
				t.Errorf("%q: color %d: want %s, got %s", tt.Input, i, tt.Want[i], got[i])
			}
		}
	}
	if len(Category10) != 10 || Category10[0] != "#1f77b4" {
		t.Errorf("unexpected category10 palette %v", Category10)
	}
	if got := Category10.At(12); got != Category10[2] {
		t.Errorf("palette should cycle, got %s", got)
	}
}

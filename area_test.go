package chartgeo

import (
	"math"
	"strings"
	"testing"
)

func samePoint(p1, p2 Point) bool {
	same := func(a, b float64) bool {
		if math.IsNaN(a) || math.IsNaN(b) {
			return math.IsNaN(a) && math.IsNaN(b)
		}
		return closeTo(a, b)
	}
	return same(p1.X, p2.X) && same(p1.Y, p2.Y)
}

func categoryTicks(values []any, width float64) []Tick {
	var (
		list = make([]Tick, len(values))
		step = width / float64(len(values)-1)
	)
	for i, v := range values {
		list[i] = Tick{Value: v, Coordinate: float64(i) * step, Index: i}
	}
	return list
}

func horizontalAreaAxes(lo, hi float64) ItemAxes {
	var (
		cats = []any{"a", "b", "c", "d", "e"}
		x    = Axis{
			AxisSettings: AxisSettings{Kind: XAxis, Type: AxisCategory},
			Scale:        PointScale(cats, NewRange(0, 100)),
		}
		y = Axis{
			AxisSettings: AxisSettings{Kind: YAxis, Type: AxisNumber},
			Scale:        LinearScale(lo, hi, NewRange(100, 0)),
			Height:       100,
		}
	)
	return ItemAxes{
		Layout: LayoutHorizontal,
		X:      &x,
		Y:      &y,
		XTicks: categoryTicks(cats, 100),
	}
}

func TestComputeArea(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		Name     string
		Rows     []Row
		Stacked  [][2]float64
		Connect  bool
		Points   []Point
		Base     []Point
		IsRange  bool
		Segments int
	}{
		{
			Name:     "plain",
			Rows:     []Row{{"v": 10}, {"v": 20}, {"v": 30}, {"v": 40}, {"v": 50}},
			Points:   []Point{{0, 90}, {25, 80}, {50, 70}, {75, 60}, {100, 50}},
			Segments: 1,
		},
		{
			Name:     "missing",
			Rows:     []Row{{"v": 10}, {"v": 20}, {"v": nil}, {"v": 40}, {"v": 50}},
			Points:   []Point{{0, 90}, {25, 80}, {50, nan}, {75, 60}, {100, 50}},
			Segments: 2,
		},
		{
			Name:     "stacked-break",
			Rows:     []Row{{"v": 10}, {"v": 20}, {"v": nil}, {"v": 30}, {"v": 40}},
			Stacked:  [][2]float64{{5, 15}, {5, 25}, {5, 5}, {5, 35}, {5, 45}},
			Points:   []Point{{0, 85}, {25, 75}, {50, nan}, {75, 65}, {100, 55}},
			Base:     []Point{{0, 95}, {25, 95}, {50, nan}, {75, 95}, {100, 95}},
			Segments: 2,
		},
		{
			Name:     "stacked-connected",
			Rows:     []Row{{"v": 10}, {"v": 20}, {"v": nil}, {"v": 30}, {"v": 40}},
			Stacked:  [][2]float64{{5, 15}, {5, 25}, {5, 5}, {5, 35}, {5, 45}},
			Connect:  true,
			Points:   []Point{{0, 85}, {25, 75}, {50, 95}, {75, 65}, {100, 55}},
			Base:     []Point{{0, 95}, {25, 95}, {50, 95}, {75, 95}, {100, 95}},
			Segments: 1,
		},
		{
			Name: "range",
			Rows: []Row{
				{"v": []any{10, 20}},
				{"v": []any{5, 15}},
				{"v": []any{0, 30}},
				{"v": []any{20, 25}},
				{"v": []any{10, 40}},
			},
			Points:   []Point{{0, 80}, {25, 85}, {50, 70}, {75, 75}, {100, 60}},
			Base:     []Point{{0, 90}, {25, 95}, {50, 100}, {75, 80}, {100, 90}},
			IsRange:  true,
			Segments: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			var (
				in = SeriesInput{
					Axes:    horizontalAreaAxes(0, 100),
					Rows:    tt.Rows,
					Stacked: tt.Stacked,
				}
				serie = AreaSeries{
					Series:       Series{ID: "area", DataKey: Key("v")},
					ConnectNulls: tt.Connect,
				}
			)
			geo := ComputeArea(in, &serie)
			if len(geo.Points) != len(tt.Points) {
				t.Fatalf("want %d points, got %d", len(tt.Points), len(geo.Points))
			}
			for i, want := range tt.Points {
				if got := geo.Points[i].Point; !samePoint(got, want) {
					t.Errorf("point %d: want %v, got %v", i, want, got)
				}
			}
			if geo.IsRange != tt.IsRange {
				t.Errorf("range: want %t, got %t", tt.IsRange, geo.IsRange)
			}
			if tt.Base == nil {
				if v, ok := geo.BaseLine.Value(); !ok || !closeTo(v, 100) {
					t.Errorf("want constant base line at 100, got %v (%t)", v, ok)
				}
			} else {
				base, ok := geo.BaseLine.Points()
				if !ok || len(base) != len(tt.Base) {
					t.Fatalf("want %d base points, got %d (%t)", len(tt.Base), len(base), ok)
				}
				for i, want := range tt.Base {
					if !samePoint(base[i], want) {
						t.Errorf("base %d: want %v, got %v", i, want, base[i])
					}
				}
			}
			if got := strings.Count(geo.Line, "M"); got != tt.Segments {
				t.Errorf("line: want %d segments, got %d (%s)", tt.Segments, got, geo.Line)
			}
			if got := strings.Count(geo.Path, "Z"); got != tt.Segments {
				t.Errorf("area: want %d closed segments, got %d (%s)", tt.Segments, got, geo.Path)
			}
		})
	}
}

func TestComputeAreaBaseValue(t *testing.T) {
	tests := []struct {
		Name string
		Base BaseValue
		Want float64
	}{
		{Name: "auto", Base: BaseAuto(), Want: 80},
		{Name: "data-min", Base: BaseDataMin(), Want: 100},
		{Name: "data-max", Base: BaseDataMax(), Want: 0},
		{Name: "number", Base: BaseNumber(30), Want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			var (
				in = SeriesInput{
					Axes: horizontalAreaAxes(-20, 80),
					Rows: []Row{{"v": 10}, {"v": 20}, {"v": 30}, {"v": 40}, {"v": 50}},
				}
				serie = AreaSeries{
					Series:    Series{ID: "area", DataKey: Key("v")},
					BaseValue: tt.Base,
				}
			)
			geo := ComputeArea(in, &serie)
			if v, ok := geo.BaseLine.Value(); !ok || !closeTo(v, tt.Want) {
				t.Errorf("want base line at %v, got %v (%t)", tt.Want, v, ok)
			}
		})
	}
}

func TestResolveBaseValue(t *testing.T) {
	var (
		negative = Axis{
			AxisSettings: AxisSettings{Kind: YAxis, Type: AxisNumber},
			Scale:        LinearScale(-50, -10, NewRange(100, 0)),
		}
		positive = Axis{
			AxisSettings: AxisSettings{Kind: YAxis, Type: AxisNumber},
			Scale:        LinearScale(10, 50, NewRange(100, 0)),
		}
		category = Axis{
			AxisSettings: AxisSettings{Kind: YAxis, Type: AxisCategory},
			Scale:        PointScale([]any{"a", "b", "c"}, NewRange(100, 0)),
		}
	)
	tests := []struct {
		Name string
		Base BaseValue
		Axis *Axis
		Want any
	}{
		{Name: "no-axis", Base: BaseAuto(), Want: 0.0},
		{Name: "negative", Base: BaseAuto(), Axis: &negative, Want: -10.0},
		{Name: "positive", Base: BaseAuto(), Axis: &positive, Want: 10.0},
		{Name: "negative-min", Base: BaseDataMin(), Axis: &negative, Want: -50.0},
		{Name: "number", Base: BaseNumber(-3), Axis: &positive, Want: -3.0},
		{Name: "category", Base: BaseAuto(), Axis: &category, Want: "a"},
		{Name: "category-max", Base: BaseDataMax(), Axis: &category, Want: "c"},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			if got := ResolveBaseValue(tt.Base, tt.Axis); got != tt.Want {
				t.Errorf("want %v, got %v", tt.Want, got)
			}
		})
	}
}

func TestComputeAreaVertical(t *testing.T) {
	var (
		cats = []any{"a", "b"}
		y    = Axis{
			AxisSettings: AxisSettings{Kind: YAxis, Type: AxisCategory},
			Scale:        PointScale(cats, NewRange(0, 100)),
		}
		x = Axis{
			AxisSettings: AxisSettings{Kind: XAxis, Type: AxisNumber},
			Scale:        LinearScale(0, 100, NewRange(0, 200)),
			Width:        200,
		}
		in = SeriesInput{
			Axes: ItemAxes{
				Layout: LayoutVertical,
				X:      &x,
				Y:      &y,
				YTicks: categoryTicks(cats, 100),
			},
			Rows: []Row{{"v": 10}, {"v": 40}},
		}
		serie = AreaSeries{
			Series: Series{ID: "area", DataKey: Key("v")},
		}
	)
	geo := ComputeArea(in, &serie)
	want := []Point{{20, 0}, {80, 100}}
	for i := range want {
		if got := geo.Points[i].Point; !samePoint(got, want[i]) {
			t.Errorf("point %d: want %v, got %v", i, want[i], got)
		}
	}
	if v, ok := geo.BaseLine.Value(); !ok || v != 0 {
		t.Errorf("want constant base line at 0, got %v (%t)", v, ok)
	}
	if geo.Layout != LayoutVertical {
		t.Errorf("want vertical layout, got %s", geo.Layout)
	}
}

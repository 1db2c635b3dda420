package chartgeo

import (
	"errors"
	"testing"
)

func barContext(t *testing.T) *Context {
	t.Helper()
	ctx := NewContext(DefaultChartSettings(BarChart, 400, 300))
	x := DefaultXAxis("0")
	x.DataKey = Key("name")
	if _, err := ctx.AddAxis(x); err != nil {
		t.Fatalf("adding x axis: %s", err)
	}
	if _, err := ctx.AddAxis(DefaultYAxis("0")); err != nil {
		t.Fatalf("adding y axis: %s", err)
	}
	ctx.SetData([]Row{
		{"name": "a", "v": 10},
		{"name": "b", "v": 20},
		{"name": "c", "v": 30},
	})
	return ctx
}

func barsOf(t *testing.T, geo *Geometry) BarGeometry {
	t.Helper()
	for _, e := range geo.Elements {
		if bar, ok := e.(BarGeometry); ok {
			return bar
		}
	}
	t.Fatalf("no bar in geometry")
	return BarGeometry{}
}

func TestContextComposeBar(t *testing.T) {
	ctx := barContext(t)
	if _, err := ctx.AddItem(&BarSeries{Series: Series{ID: "bar", DataKey: Key("v")}}); err != nil {
		t.Fatalf("adding bar: %s", err)
	}
	geo, err := ctx.Compose()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	bar := barsOf(t, geo)
	if len(bar.Rects) != 3 {
		t.Fatalf("want 3 bars, got %d", len(bar.Rects))
	}
	for i := 1; i < len(bar.Rects); i++ {
		prev, curr := bar.Rects[i-1], bar.Rects[i]
		if curr.X <= prev.X {
			t.Errorf("bar %d should be right of bar %d", i, i-1)
		}
		if curr.Height <= prev.Height {
			t.Errorf("bar %d should be taller than bar %d", i, i-1)
		}
		if !closeTo(curr.Y+curr.Height, prev.Y+prev.Height) {
			t.Errorf("bars should share their base line")
		}
	}
	if len(geo.TooltipTicks) != 3 {
		t.Errorf("want 3 tooltip ticks, got %d", len(geo.TooltipTicks))
	}
	vb := geo.Offset.ViewBox()
	for i, r := range bar.Rects {
		if !vb.Contains(NewPoint(r.X, r.Y)) {
			t.Errorf("bar %d out of the plot area: %+v", i, r.Rect)
		}
	}
}

func TestContextCache(t *testing.T) {
	ctx := barContext(t)
	ctx.AddItem(&BarSeries{Series: Series{ID: "bar", DataKey: Key("v")}})

	first, err := ctx.Compose()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	again, _ := ctx.Compose()
	if first != again {
		t.Errorf("unchanged context should reuse its geometry")
	}
	rev := ctx.Revision()
	ctx.Update(func(cs *ChartSettings) {
		cs.BarGap = Px(2)
	})
	if ctx.Revision() <= rev {
		t.Errorf("update should bump the revision")
	}
	changed, _ := ctx.Compose()
	if changed == first {
		t.Errorf("changed context should compose a new geometry")
	}
}

func TestContextWindow(t *testing.T) {
	ctx := barContext(t)
	ctx.AddItem(&BarSeries{Series: Series{ID: "bar", DataKey: Key("v")}})
	ctx.SetWindow(1, 2)
	if start, end := ctx.Window(); start != 1 || end != 2 {
		t.Fatalf("want window [1, 2], got [%d, %d]", start, end)
	}
	geo, err := ctx.Compose()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if geo.StartIndex != 1 || geo.EndIndex != 2 {
		t.Errorf("geometry should carry the window, got [%d, %d]", geo.StartIndex, geo.EndIndex)
	}
	if bar := barsOf(t, geo); len(bar.Rects) != 2 {
		t.Errorf("want 2 bars, got %d", len(bar.Rects))
	}
	ctx.SetWindow(0, 100)
	if _, end := ctx.Window(); end != 2 {
		t.Errorf("window should be clamped to the data, got end %d", end)
	}
}

func TestContextRegistration(t *testing.T) {
	ctx := barContext(t)
	release, err := ctx.AddItem(&BarSeries{Series: Series{ID: "bar", DataKey: Key("v")}})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	_, err = ctx.AddItem(&LineSeries{Series: Series{ID: "bar", DataKey: Key("v")}})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate id should be rejected, got %v", err)
	}
	release()
	release()
	if n := len(ctx.Items()); n != 0 {
		t.Fatalf("released item should be removed, %d left", n)
	}
	if _, err := ctx.AddItem(&LineSeries{Series: Series{ID: "bar", DataKey: Key("v")}}); err != nil {
		t.Errorf("id should be free once released: %s", err)
	}
	if _, err := ctx.AddAxis(DefaultYAxis("0")); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate axis should be rejected, got %v", err)
	}
	var missing MissingAxisError
	if err := ctx.UpdateAxis(DefaultYAxis("right")); !errors.As(err, &missing) {
		t.Errorf("updating an unknown axis should fail, got %v", err)
	}
}

func TestContextMissingAxis(t *testing.T) {
	ctx := barContext(t)
	ctx.AddItem(&BarSeries{Series: Series{ID: "bar", DataKey: Key("v"), YAxisID: "right"}})
	_, err := ctx.Compose()
	var missing MissingAxisError
	if !errors.As(err, &missing) {
		t.Fatalf("want missing axis error, got %v", err)
	}
	if missing.ID != "right" || missing.Kind != YAxis || missing.Item != "bar" {
		t.Errorf("unexpected error %+v", missing)
	}
	if !errors.Is(err, ErrMissingAxis) {
		t.Errorf("error should wrap ErrMissingAxis")
	}
}

func TestContextDefaultAxes(t *testing.T) {
	ctx := NewContext(DefaultChartSettings(LineChart, 400, 300))
	ctx.SetData([]Row{{"v": 1}, {"v": 4}, {"v": 2}})
	ctx.AddItem(&LineSeries{Series: Series{ID: "line", DataKey: Key("v")}})
	geo, err := ctx.Compose()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	x, ok := geo.Axis(XAxis, DefaultAxisID)
	if !ok || !x.Hide || x.Type != AxisCategory {
		t.Errorf("want hidden category x axis, got %+v", x)
	}
	y, ok := geo.Axis(YAxis, DefaultAxisID)
	if !ok || !y.Hide || y.Type != AxisNumber {
		t.Errorf("want hidden number y axis, got %+v", y)
	}
	var line LineGeometry
	for _, e := range geo.Elements {
		if l, ok := e.(LineGeometry); ok {
			line = l
		}
	}
	if len(line.Points) != 3 || line.Path == "" {
		t.Errorf("line should be drawn, got %d points", len(line.Points))
	}
}

func TestContextEmptyChart(t *testing.T) {
	ctx := NewContext(DefaultChartSettings(BarChart, 0, 300))
	if _, err := ctx.Compose(); !errors.Is(err, ErrEmptyChart) {
		t.Errorf("want empty chart error, got %v", err)
	}
}

func TestContextComposePie(t *testing.T) {
	ctx := NewContext(DefaultChartSettings(PieChart, 300, 300))
	ctx.SetData(pieRows(1, 2, 3))
	ctx.AddItem(DefaultPie("pie"))
	geo, err := ctx.Compose()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(geo.Elements) != 1 {
		t.Fatalf("want 1 element, got %d", len(geo.Elements))
	}
	pie, ok := geo.Elements[0].(PieGeometry)
	if !ok || len(pie.Sectors) != 3 {
		t.Fatalf("want a pie of 3 sectors")
	}
	if geo.Polar.OuterRadius == 0 {
		t.Errorf("pie chart should expose its frame")
	}
}

func TestContextComposeRadar(t *testing.T) {
	ctx := NewContext(DefaultChartSettings(RadarChart, 300, 300))
	angle := DefaultAngleAxis("0")
	angle.DataKey = Key("name")
	ctx.AddAxis(angle)
	ctx.SetData(pieRows(3, 5, 2, 4))
	ctx.AddItem(&RadarSeries{Series: Series{ID: "radar", DataKey: Key("value")}})
	geo, err := ctx.Compose()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	var radar RadarGeometry
	for _, e := range geo.Elements {
		if r, ok := e.(RadarGeometry); ok {
			radar = r
		}
	}
	if len(radar.Points) != 4 {
		t.Fatalf("want 4 points, got %d", len(radar.Points))
	}
	for i, p := range radar.Points {
		if !p.Defined() {
			t.Errorf("point %d should be defined", i)
		}
	}
	if geo.PolarGrid == nil || len(geo.PolarGrid.Spokes) != 4 {
		t.Errorf("want one spoke per category")
	}
	if len(geo.TooltipTicks) != 4 {
		t.Errorf("want 4 tooltip ticks, got %d", len(geo.TooltipTicks))
	}
}

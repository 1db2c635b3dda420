package config

import (
	"fmt"

	"github.com/midbel/chartgeo"
	"github.com/midbel/chartgeo/chartsync"
	"github.com/midbel/chartgeo/internal/logging"
)

// Chart is a chart built from a description, ready to be composed.
type Chart struct {
	*chartgeo.Context

	File   *File
	Method chartsync.Method
}

// Build registers the settings, axes, items and references of f in a new
// context and gives it the rows of the description.
func Build(f *File) (*Chart, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	settings, err := f.settings()
	if err != nil {
		return nil, err
	}
	rows, err := f.Rows()
	if err != nil {
		return nil, err
	}
	method, _ := chartsync.ParseMethod(f.SyncMethod)
	chart := Chart{
		Context: chartgeo.NewContext(settings),
		File:    f,
		Method:  method,
	}
	for i, a := range f.Axes {
		as, err := a.settings()
		if err != nil {
			return nil, f.wrap(fmt.Sprintf("axes[%d]", i), err)
		}
		if _, err := chart.AddAxis(as); err != nil {
			return nil, f.wrap(fmt.Sprintf("axes[%d]", i), err)
		}
	}
	for i, it := range f.Items {
		item, err := it.item()
		if err != nil {
			return nil, f.wrap(fmt.Sprintf("items[%d]", i), err)
		}
		if _, err := chart.AddItem(item); err != nil {
			return nil, f.wrap(fmt.Sprintf("items[%d]", i), err)
		}
	}
	for i, r := range f.References {
		ref, err := r.reference()
		if err != nil {
			return nil, f.wrap(fmt.Sprintf("references[%d]", i), err)
		}
		if _, err := chart.AddReference(ref); err != nil {
			return nil, f.wrap(fmt.Sprintf("references[%d]", i), err)
		}
	}
	chart.SetData(rows)

	logging.Debug().
		Add(logging.Component("config")).
		Add(logging.File(f.path)).
		Add(logging.Count(len(rows))).
		Msg("chart built")
	return &chart, nil
}

func (f *File) wrap(section string, err error) error {
	return ConfigError{
		File:    f.path,
		Section: section,
		Message: err.Error(),
	}
}

func (f *File) settings() (chartgeo.ChartSettings, error) {
	kind, err := chartgeo.ParseChartKind(f.Kind)
	if err != nil {
		return chartgeo.ChartSettings{}, f.wrap("kind", err)
	}
	cs := chartgeo.DefaultChartSettings(kind, f.Width, f.Height)
	if f.Layout != "" {
		if cs.Layout, err = chartgeo.ParseLayout(f.Layout); err != nil {
			return cs, f.wrap("layout", err)
		}
	}
	setFloat(&cs.Margin.Top, f.Margin.Top)
	setFloat(&cs.Margin.Right, f.Margin.Right)
	setFloat(&cs.Margin.Bottom, f.Margin.Bottom)
	setFloat(&cs.Margin.Left, f.Margin.Left)
	setFloat(&cs.StartAngle, f.StartAngle)
	setFloat(&cs.EndAngle, f.EndAngle)

	if f.StackOffset != "" {
		if cs.StackOffset, err = chartgeo.ParseStackOffset(f.StackOffset); err != nil {
			return cs, f.wrap("stackOffset", err)
		}
	}
	cs.ReverseStackOrder = f.ReverseStackOrder
	cs.MaxBarSize = f.MaxBarSize

	lengths := []struct {
		Name  string
		Value string
		Ptr   *chartgeo.Length
	}{
		{Name: "barGap", Value: f.BarGap, Ptr: &cs.BarGap},
		{Name: "barCategoryGap", Value: f.BarCategoryGap, Ptr: &cs.BarCategoryGap},
		{Name: "barSize", Value: f.BarSize, Ptr: &cs.BarSize},
		{Name: "cx", Value: f.Cx, Ptr: &cs.Cx},
		{Name: "cy", Value: f.Cy, Ptr: &cs.Cy},
		{Name: "innerRadius", Value: f.InnerRadius, Ptr: &cs.InnerRadius},
		{Name: "outerRadius", Value: f.OuterRadius, Ptr: &cs.OuterRadius},
	}
	for _, l := range lengths {
		if err := setLength(l.Ptr, l.Value); err != nil {
			return cs, f.wrap(l.Name, err)
		}
	}
	if b := f.Brush; b != nil {
		brush := chartgeo.DefaultBrush()
		if b.Height > 0 {
			brush.Height = b.Height
		}
		if b.TravellerWidth > 0 {
			brush.TravellerWidth = b.TravellerWidth
		}
		if b.Gap > 0 {
			brush.Gap = b.Gap
		}
		brush.StartIndex = b.StartIndex
		if b.EndIndex != nil {
			brush.EndIndex = *b.EndIndex
		}
		cs.Brush = &brush
	}
	return cs, nil
}

func (a Axis) settings() (chartgeo.AxisSettings, error) {
	kind, err := parseAxisKind(a.Kind)
	if err != nil {
		return chartgeo.AxisSettings{}, err
	}
	var (
		id = axisID(a.ID)
		as chartgeo.AxisSettings
	)
	switch kind {
	case chartgeo.XAxis:
		as = chartgeo.DefaultXAxis(id)
	case chartgeo.YAxis:
		as = chartgeo.DefaultYAxis(id)
	case chartgeo.ZAxis:
		as = chartgeo.DefaultZAxis(id)
	case chartgeo.AngleAxis:
		as = chartgeo.DefaultAngleAxis(id)
	case chartgeo.RadiusAxis:
		as = chartgeo.DefaultRadiusAxis(id)
	}
	switch t := chartgeo.AxisType(a.Type); t {
	case "":
	case chartgeo.AxisNumber, chartgeo.AxisCategory:
		as.Type = t
	default:
		return as, fmt.Errorf("%s: unknown axis type", a.Type)
	}
	as.Name = a.Name
	as.Unit = a.Unit
	if a.DataKey != "" {
		as.DataKey = chartgeo.Key(a.DataKey)
	}
	switch {
	case len(a.Domain) == 2:
		if as.Domain, err = chartgeo.ParseDomainSpec(a.Domain[0], a.Domain[1]); err != nil {
			return as, err
		}
	case len(a.Categories) > 0:
		as.Domain = chartgeo.SpecCategories(a.Categories...)
	}
	if a.Scale != "" {
		if as.Scale, err = chartgeo.ParseScaleKind(a.Scale); err != nil {
			return as, err
		}
	}
	if a.Orientation != "" {
		if as.Orientation, err = chartgeo.ParseOrientation(a.Orientation); err != nil {
			return as, err
		}
	}
	if a.Interval != "" {
		if as.Interval, err = chartgeo.ParseInterval(a.Interval); err != nil {
			return as, err
		}
	}
	as.Reversed = a.Reversed
	as.Mirror = a.Mirror
	as.Hide = a.Hide
	as.Ticks = a.Ticks
	as.Angle = a.Angle
	as.AllowDataOverflow = a.AllowDataOverflow
	as.IncludeHidden = a.IncludeHidden
	if a.TickCount != nil {
		as.TickCount = *a.TickCount
	}
	if a.AllowDecimals != nil {
		as.AllowDecimals = *a.AllowDecimals
	}
	if a.AllowDuplicatedCategory != nil {
		as.AllowDuplicatedCategory = *a.AllowDuplicatedCategory
	}
	setFloat(&as.MinTickGap, a.MinTickGap)
	setFloat(&as.Width, a.Width)
	setFloat(&as.Height, a.Height)

	as.Padding.Start = a.Padding.Start
	as.Padding.End = a.Padding.End
	switch a.Padding.Mode {
	case "":
		as.Padding.Mode = chartgeo.PaddingFixed
	case "gap":
		as.Padding.Mode = chartgeo.PaddingGap
	case "no-gap":
		as.Padding.Mode = chartgeo.PaddingNoGap
	default:
		return as, fmt.Errorf("%s: unknown padding mode", a.Padding.Mode)
	}
	if len(a.Range) == 2 {
		rg := chartgeo.NewRange(a.Range[0], a.Range[1])
		as.Range = &rg
	}
	return as, nil
}

func (it Item) series() chartgeo.Series {
	s := chartgeo.Series{
		ID:           it.ID,
		Name:         it.Name,
		Hide:         it.Hide,
		Color:        it.Color,
		StackID:      it.StackID,
		XAxisID:      it.XAxisID,
		YAxisID:      it.YAxisID,
		ZAxisID:      it.ZAxisID,
		AngleAxisID:  it.AngleAxisID,
		RadiusAxisID: it.RadiusAxisID,
	}
	if s.ID == "" {
		s.ID = chartgeo.UniqueID(it.Kind + "-")
	}
	if it.DataKey != "" {
		s.DataKey = chartgeo.Key(it.DataKey)
	}
	if len(it.Data) > 0 {
		s.Data = toRows(it.Data)
	}
	for _, e := range it.ErrorBars {
		s.ErrorBars = append(s.ErrorBars, chartgeo.ErrorBarSettings{
			DataKey:   chartgeo.Key(e.DataKey),
			Direction: chartgeo.ErrorDirection(e.Direction),
			Width:     e.Width,
		})
	}
	return s
}

func (it Item) item() (chartgeo.Item, error) {
	kind, err := parseItemKind(it.Kind)
	if err != nil {
		return nil, err
	}
	for _, e := range it.ErrorBars {
		switch chartgeo.ErrorDirection(e.Direction) {
		case "", chartgeo.ErrorX, chartgeo.ErrorY:
		default:
			return nil, fmt.Errorf("%s: unknown error bar direction", e.Direction)
		}
	}
	s := it.series()
	switch kind {
	case chartgeo.ItemLine:
		curve, err := chartgeo.ParseCurveType(it.Curve)
		if err != nil {
			return nil, err
		}
		return &chartgeo.LineSeries{Series: s, Curve: curve, ConnectNulls: it.ConnectNulls}, nil
	case chartgeo.ItemArea:
		curve, err := chartgeo.ParseCurveType(it.Curve)
		if err != nil {
			return nil, err
		}
		base, err := chartgeo.ParseBaseValue(it.BaseValue)
		if err != nil {
			return nil, err
		}
		return &chartgeo.AreaSeries{Series: s, Curve: curve, ConnectNulls: it.ConnectNulls, BaseValue: base}, nil
	case chartgeo.ItemBar:
		bar := chartgeo.BarSeries{
			Series:       s,
			MaxBarSize:   it.MaxBarSize,
			MinPointSize: it.MinPointSize,
			Background:   it.Background,
		}
		if err := setLength(&bar.BarSize, it.BarSize); err != nil {
			return nil, err
		}
		return &bar, nil
	case chartgeo.ItemScatter:
		scatter := chartgeo.ScatterSeries{Series: s, Line: it.Line}
		if scatter.Shape, err = chartgeo.ParseSymbolKind(it.Shape); err != nil {
			return nil, err
		}
		if scatter.LineType, err = chartgeo.ParseScatterLine(it.LineType); err != nil {
			return nil, err
		}
		if scatter.LineCurve, err = chartgeo.ParseCurveType(it.LineCurve); err != nil {
			return nil, err
		}
		return &scatter, nil
	case chartgeo.ItemFunnel:
		funnel := chartgeo.FunnelSeries{
			Series:   s,
			NameKey:  nameKey(it.NameKey),
			Reversed: it.Reversed,
		}
		switch shape := chartgeo.FunnelShape(it.LastShapeType); shape {
		case "":
			funnel.LastShapeType = chartgeo.FunnelTriangle
		case chartgeo.FunnelTriangle, chartgeo.FunnelRectangle:
			funnel.LastShapeType = shape
		default:
			return nil, fmt.Errorf("%s: unknown funnel shape", it.LastShapeType)
		}
		if err := setLength(&funnel.Width, it.Width); err != nil {
			return nil, err
		}
		return &funnel, nil
	case chartgeo.ItemPie:
		pie := chartgeo.DefaultPie(s.ID)
		pie.Series = s
		pie.NameKey = nameKey(it.NameKey)
		pie.PaddingAngle = it.PaddingAngle
		pie.MinAngle = it.MinAngle
		setFloat(&pie.StartAngle, it.StartAngle)
		setFloat(&pie.EndAngle, it.EndAngle)
		for _, l := range []struct {
			Value string
			Ptr   *chartgeo.Length
		}{
			{Value: it.Cx, Ptr: &pie.Cx},
			{Value: it.Cy, Ptr: &pie.Cy},
			{Value: it.InnerRadius, Ptr: &pie.InnerRadius},
			{Value: it.OuterRadius, Ptr: &pie.OuterRadius},
			{Value: it.CornerRadius, Ptr: &pie.CornerRadius},
		} {
			if err := setLength(l.Ptr, l.Value); err != nil {
				return nil, err
			}
		}
		return pie, nil
	case chartgeo.ItemRadar:
		return &chartgeo.RadarSeries{Series: s, ConnectNulls: it.ConnectNulls}, nil
	default:
		bar := chartgeo.RadialBarSeries{
			Series:       s,
			MaxBarSize:   it.MaxBarSize,
			MinPointSize: it.MinPointSize,
			Background:   it.Background,
		}
		if err := setLength(&bar.BarSize, it.BarSize); err != nil {
			return nil, err
		}
		if err := setLength(&bar.CornerRadius, it.CornerRadius); err != nil {
			return nil, err
		}
		return &bar, nil
	}
}

func (r Reference) reference() (chartgeo.Reference, error) {
	ref := chartgeo.Reference{
		ID:      r.ID,
		Kind:    chartgeo.ReferenceKind(r.Kind),
		XAxisID: r.XAxisID,
		YAxisID: r.YAxisID,
		X:       r.X,
		Y:       r.Y,
		X1:      r.X1,
		X2:      r.X2,
		Y1:      r.Y1,
		Y2:      r.Y2,
		R:       r.R,
	}
	if ref.ID == "" {
		ref.ID = chartgeo.UniqueID("reference-")
	}
	overflow, err := chartgeo.ParseIfOverflow(r.IfOverflow)
	if err != nil {
		return ref, err
	}
	ref.IfOverflow = overflow
	if len(r.Segment) > 0 {
		if len(r.Segment) != 2 || len(r.Segment[0]) != 2 || len(r.Segment[1]) != 2 {
			return ref, fmt.Errorf("segment should have two points")
		}
		ref.Segment = [2][2]any{
			{r.Segment[0][0], r.Segment[0][1]},
			{r.Segment[1][0], r.Segment[1][1]},
		}
	}
	return ref, nil
}

func nameKey(str string) chartgeo.DataKey {
	if str == "" {
		str = "name"
	}
	return chartgeo.Key(str)
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setLength(dst *chartgeo.Length, str string) error {
	if str == "" {
		return nil
	}
	n, err := chartgeo.ParseLength(str)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

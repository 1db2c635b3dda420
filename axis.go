package chartgeo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/midbel/slices"
)

const FontSize = 12.0

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
	OrientInner
	OrientOuter
)

func ParseOrientation(str string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "top":
		return OrientTop, nil
	case "right":
		return OrientRight, nil
	case "bottom":
		return OrientBottom, nil
	case "left":
		return OrientLeft, nil
	case "inner":
		return OrientInner, nil
	case "outer":
		return OrientOuter, nil
	default:
		return 0, fmt.Errorf("%s: unknown orientation", str)
	}
}

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

func (o Orientation) Reverse() bool {
	return o == OrientRight || o == OrientTop
}

func (o Orientation) String() string {
	switch o {
	case OrientTop:
		return "top"
	case OrientRight:
		return "right"
	case OrientBottom:
		return "bottom"
	case OrientLeft:
		return "left"
	case OrientInner:
		return "inner"
	case OrientOuter:
		return "outer"
	default:
		return ""
	}
}

type AxisType string

const (
	AxisNumber   AxisType = "number"
	AxisCategory AxisType = "category"
)

type AxisKind string

const (
	XAxis      AxisKind = "xAxis"
	YAxis      AxisKind = "yAxis"
	ZAxis      AxisKind = "zAxis"
	AngleAxis  AxisKind = "angleAxis"
	RadiusAxis AxisKind = "radiusAxis"
)

// IsCategoricalAxis reports whether the axis of kind carries the categories
// of a chart laid out with layout.
func IsCategoricalAxis(layout Layout, kind AxisKind) bool {
	switch {
	case layout == LayoutHorizontal && kind == XAxis:
	case layout == LayoutVertical && kind == YAxis:
	case layout == LayoutCentric && kind == AngleAxis:
	case layout == LayoutRadial && kind == RadiusAxis:
	default:
		return false
	}
	return true
}

type PaddingMode int

const (
	PaddingFixed PaddingMode = iota
	PaddingGap
	PaddingNoGap
)

// AxisPadding is the space kept at both ends of an axis: left and right for
// x axes, top and bottom for y axes.
type AxisPadding struct {
	Start float64
	End   float64
	Mode  PaddingMode
}

type AxisSettings struct {
	ID   string
	Kind AxisKind
	Type AxisType
	Name string
	Unit string

	DataKey                 DataKey
	Domain                  DomainSpec
	AllowDecimals           bool
	AllowDuplicatedCategory bool
	AllowDataOverflow       bool
	IncludeHidden           bool

	Scale       ScaleKind
	Reversed    bool
	Orientation Orientation
	Mirror      bool
	Hide        bool

	TickCount  int
	Ticks      []any
	Interval   Interval
	MinTickGap float64
	TickSize   float64
	TickFormat func(any) string
	FontSize   float64
	Angle      float64

	Padding AxisPadding
	Width   float64
	Height  float64
	Range   *Range
}

func DefaultXAxis(id string) AxisSettings {
	return AxisSettings{
		ID:                      id,
		Kind:                    XAxis,
		Type:                    AxisCategory,
		Domain:                  SpecBounds(Fixed(0), Auto()),
		AllowDecimals:           true,
		AllowDuplicatedCategory: true,
		Scale:                   ScaleAuto,
		Orientation:             OrientBottom,
		TickCount:               5,
		Interval:                PreserveEnd(),
		MinTickGap:              5,
		TickSize:                6,
		FontSize:                FontSize,
		Height:                  30,
	}
}

func DefaultYAxis(id string) AxisSettings {
	return AxisSettings{
		ID:                      id,
		Kind:                    YAxis,
		Type:                    AxisNumber,
		Domain:                  SpecBounds(Fixed(0), Auto()),
		AllowDecimals:           true,
		AllowDuplicatedCategory: true,
		Scale:                   ScaleAuto,
		Orientation:             OrientLeft,
		TickCount:               5,
		Interval:                PreserveEnd(),
		MinTickGap:              5,
		TickSize:                6,
		FontSize:                FontSize,
		Width:                   60,
	}
}

func DefaultZAxis(id string) AxisSettings {
	rg := NewRange(64, 64)
	return AxisSettings{
		ID:                      id,
		Kind:                    ZAxis,
		Type:                    AxisNumber,
		AllowDuplicatedCategory: true,
		Scale:                   ScaleAuto,
		Range:                   &rg,
	}
}

func DefaultAngleAxis(id string) AxisSettings {
	return AxisSettings{
		ID:                      id,
		Kind:                    AngleAxis,
		Type:                    AxisCategory,
		AllowDecimals:           true,
		AllowDuplicatedCategory: true,
		Scale:                   ScaleAuto,
		Orientation:             OrientOuter,
		TickSize:                8,
		FontSize:                FontSize,
	}
}

func DefaultRadiusAxis(id string) AxisSettings {
	return AxisSettings{
		ID:                      id,
		Kind:                    RadiusAxis,
		Type:                    AxisNumber,
		Domain:                  SpecBounds(Fixed(0), Auto()),
		AllowDecimals:           true,
		AllowDuplicatedCategory: true,
		Scale:                   ScaleAuto,
		Orientation:             OrientRight,
		TickCount:               5,
		FontSize:                FontSize,
	}
}

// Tick is a labelled position on an axis. TickCoord is where the label is
// drawn once it has been pushed back inside the axis boundaries.
type Tick struct {
	Value      any
	Coordinate float64
	TickCoord  float64
	Index      int
	Offset     float64
}

// Axis is an axis with its domain and scale resolved against the plot area.
type Axis struct {
	AxisSettings

	Layout      Layout
	Categorical bool
	Domain      Domain
	RealScale   ScaleKind
	Scale       Scale
	NiceTicks   []float64
	BandSize    float64

	X      float64
	Y      float64
	Width  float64
	Height float64

	Cx          float64
	Cy          float64
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
}

func (a *Axis) Labeled() LabeledScale {
	return NewLabeledScale(a.Scale)
}

// ParseScale resolves the auto scale of an axis.
func ParseScale(axis AxisSettings, layout Layout, chart ChartKind, hasBar bool) ScaleKind {
	if axis.Scale != ScaleAuto && axis.Scale != "" {
		return axis.Scale
	}
	switch {
	case layout == LayoutRadial && axis.Kind == RadiusAxis:
		return ScaleBand
	case layout == LayoutRadial && axis.Kind == AngleAxis:
		return ScaleLinear
	case axis.Type == AxisCategory && (chart == LineChart || chart == AreaChart || (chart == ComposedChart && !hasBar)):
		return ScalePoint
	case axis.Type == AxisCategory:
		return ScaleBand
	default:
		return ScaleLinear
	}
}

// buildScale creates the scale of an axis and, for number axes on a linear
// scale, the nice ticks. A domain left partly to the data is extended to the
// extent of its nice ticks.
func buildScale(axis AxisSettings, kind ScaleKind, dom Domain, rg Range) (Scale, []float64) {
	var s Scale
	switch {
	case kind == ScaleBand || kind == ScalePoint:
		values := dom.Values
		if axis.Type == AxisNumber && len(dom.Categorical) > 0 {
			values = dom.Categorical
		}
		s = NewScale(kind, values, rg)
	default:
		s = NewScale(kind, dom.Values, rg)
	}
	s = CheckDomainOfScale(s)
	if (kind != ScaleLinear && kind != ScaleAuto) || axis.Type != AxisNumber || axis.TickCount <= 0 {
		return s, nil
	}
	bounds := dom.Bounds()
	if axis.Domain.HasAuto() {
		ticks := NiceTickValues(bounds, axis.TickCount, axis.AllowDecimals)
		if len(ticks) > 0 {
			lo, hi := minMax(ticks)
			if bounds[0] > bounds[1] {
				lo, hi = hi, lo
			}
			s = s.WithDomain([]any{lo, hi})
		}
		return s, ticks
	}
	return s, TickValuesFixedDomain(bounds, axis.TickCount, axis.AllowDecimals)
}

func minMax(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// TicksOfAxis lists the ticks of an axis. Grid ticks of category axes are
// shifted to the middle of their band. With isAll, continuous scales give one
// tick per domain value instead of their own ticks.
func TicksOfAxis(axis *Axis, isGrid, isAll bool) []Tick {
	if axis == nil || axis.Scale == nil {
		return nil
	}
	var (
		s      = axis.Scale
		offset float64
	)
	if (isGrid || isAll) && axis.Type == AxisCategory && s.Bandwidth() > 0 {
		offset = s.Bandwidth() / 2
	}
	if axis.Kind == AngleAxis {
		rg := s.Range()
		offset = MathSign(rg.F-rg.T) * 2 * offset
	}
	if given := axisTickValues(axis); isGrid && len(given) > 0 {
		var ticks []Tick
		for _, v := range given {
			content := v
			if len(axis.Domain.Duplicates) > 0 {
				content = indexOfCategory(axis.Domain.Duplicates, v)
			}
			px, ok := s.Apply(content)
			if !ok {
				continue
			}
			ticks = append(ticks, Tick{
				Value:      v,
				Coordinate: px + offset,
				TickCoord:  px + offset,
				Offset:     offset,
			})
		}
		return ticks
	}
	if axis.Categorical && len(axis.Domain.Categorical) > 0 {
		return ticksOf(s, axis.Domain.Categorical, nil, offset)
	}
	if s.Kind().Continuous() && !isAll {
		return ticksOf(s, s.Ticks(axis.TickCount), nil, offset)
	}
	return ticksOf(s, s.Domain(), axis.Domain.Duplicates, offset)
}

func axisTickValues(axis *Axis) []any {
	if len(axis.Ticks) > 0 {
		return axis.Ticks
	}
	list := make([]any, len(axis.NiceTicks))
	for i := range axis.NiceTicks {
		list[i] = axis.NiceTicks[i]
	}
	return list
}

func ticksOf(s Scale, values, labels []any, offset float64) []Tick {
	ticks := make([]Tick, 0, len(values))
	for i, v := range values {
		px, ok := s.Apply(v)
		if !ok {
			px = math.NaN()
		}
		t := Tick{
			Value:      v,
			Coordinate: px + offset,
			TickCoord:  px + offset,
			Index:      i,
			Offset:     offset,
		}
		if len(labels) > 0 {
			if ix, ok := v.(int); ok && ix >= 0 && ix < len(labels) {
				t.Value = labels[ix]
			}
		}
		ticks = append(ticks, t)
	}
	return ticks
}

func indexOfCategory(values []any, v any) int {
	key := categoryKey(v)
	for i := range values {
		if categoryKey(values[i]) == key {
			return i
		}
	}
	return -1
}

// findTick gives the first tick whose value matches v.
func findTick(ticks []Tick, v any) (Tick, bool) {
	key := categoryKey(v)
	for _, t := range ticks {
		if categoryKey(t.Value) == key {
			return t, true
		}
	}
	return Tick{}, false
}

// AxisInputs holds what ResolveCartesianAxes needs besides the axes.
type AxisInputs struct {
	Width          float64
	Height         float64
	Layout         Layout
	Chart          ChartKind
	HasBar         bool
	BarCategoryGap Length
	Offset         Offset
}

// ResolveCartesianAxes computes the range, scale, nice ticks, position and
// band size of every axis of one kind. Axes are placed in the order they are
// given so that axes sharing an orientation are stacked.
func ResolveCartesianAxes(kind AxisKind, axes []*Axis, in AxisInputs) {
	steps := map[string]float64{
		"left":         in.Offset.Left,
		"leftMirror":   in.Offset.Left,
		"right":        in.Width - in.Offset.Right,
		"rightMirror":  in.Width - in.Offset.Right,
		"top":          in.Offset.Top,
		"topMirror":    in.Offset.Top,
		"bottom":       in.Height - in.Offset.Bottom,
		"bottomMirror": in.Height - in.Offset.Bottom,
	}
	for _, a := range axes {
		var (
			key     = a.Orientation.String()
			padding = axisGapPadding(a, in)
			rg      Range
		)
		if a.Mirror {
			key += "Mirror"
		}
		switch kind {
		case XAxis:
			rg = NewRange(in.Offset.Left+a.Padding.Start+padding, in.Offset.Left+in.Offset.Width-a.Padding.End-padding)
		case YAxis:
			if in.Layout == LayoutHorizontal {
				rg = NewRange(in.Offset.Top+in.Offset.Height-a.Padding.End, in.Offset.Top+a.Padding.Start)
			} else {
				rg = NewRange(in.Offset.Top+a.Padding.Start+padding, in.Offset.Top+in.Offset.Height-a.Padding.End-padding)
			}
		default:
			if a.Range != nil {
				rg = *a.Range
			}
		}
		if a.Reversed {
			rg = rg.Reverse()
		}
		a.RealScale = ParseScale(a.AxisSettings, in.Layout, in.Chart, in.HasBar)
		a.Scale, a.NiceTicks = buildScale(a.AxisSettings, a.RealScale, a.Domain, rg)

		var needSpace bool
		switch kind {
		case XAxis:
			needSpace = (a.Orientation == OrientTop && !a.Mirror) || (a.Orientation == OrientBottom && a.Mirror)
			a.Height = a.AxisSettings.Height
			a.X = in.Offset.Left
			a.Y = steps[key]
			if needSpace {
				a.Y -= a.Height
			}
			a.Width = in.Offset.Width
		case YAxis:
			needSpace = (a.Orientation == OrientLeft && !a.Mirror) || (a.Orientation == OrientRight && a.Mirror)
			a.Width = a.AxisSettings.Width
			a.X = steps[key]
			if needSpace {
				a.X -= a.Width
			}
			a.Y = in.Offset.Top
			a.Height = in.Offset.Height
		}
		a.BandSize = BandSizeOfAxis(a.Scale, niceTicksOf(a), false)
		if a.Hide || (kind != XAxis && kind != YAxis) {
			continue
		}
		size := a.Width
		if kind == XAxis {
			size = a.Height
		}
		if needSpace {
			size = -size
		}
		steps[key] += size
	}
}

func niceTicksOf(a *Axis) []Tick {
	if len(a.NiceTicks) == 0 {
		return nil
	}
	ticks := make([]Tick, 0, len(a.NiceTicks))
	for _, v := range a.NiceTicks {
		if px, ok := a.Scale.Apply(v); ok {
			ticks = append(ticks, Tick{Value: v, Coordinate: px})
		}
	}
	return ticks
}

// axisGapPadding computes the padding added on number axes whose padding is
// gap or no-gap: half of the smallest distance between two values.
func axisGapPadding(a *Axis, in AxisInputs) float64 {
	if a.Type != AxisNumber || a.Padding.Mode == PaddingFixed {
		return 0
	}
	var (
		bounds = a.Domain.Bounds()
		diff   = bounds[1] - bounds[0]
		values []float64
	)
	for _, v := range a.Domain.Categorical {
		if f, ok := ToNumber(v); ok {
			values = append(values, f)
		}
	}
	sort.Float64s(values)
	smallest := math.Inf(1)
	for i := 1; i < len(values); i++ {
		smallest = math.Min(values[i]-values[i-1], smallest)
	}
	if !IsWellBehavedNumber(smallest) || diff == 0 {
		return 0
	}
	var (
		percent = smallest / diff
		width   = in.Offset.Width
	)
	if in.Layout == LayoutVertical {
		width = in.Offset.Height
	}
	half := percent * width / 2
	if a.Padding.Mode == PaddingGap {
		return half
	}
	gap := in.BarCategoryGap.Resolve(percent*width, 0, false)
	return half - gap - ((half-gap)/width)*gap
}

// sortTicks returns a copy of ticks ordered by coordinate.
func sortTicks(ticks []Tick) []Tick {
	list := slices.Map(ticks, func(t Tick) Tick { return t })
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Coordinate < list[j].Coordinate
	})
	return list
}

package chartgeo

import (
	"fmt"
	"strings"
)

type Layout string

const (
	LayoutHorizontal Layout = "horizontal"
	LayoutVertical   Layout = "vertical"
	LayoutCentric    Layout = "centric"
	LayoutRadial     Layout = "radial"
)

func ParseLayout(str string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(str))); l {
	case LayoutHorizontal, LayoutVertical, LayoutCentric, LayoutRadial:
		return l, nil
	case "":
		return LayoutHorizontal, nil
	default:
		return "", fmt.Errorf("%s: %w", str, ErrLayout)
	}
}

func (l Layout) Polar() bool {
	return l == LayoutCentric || l == LayoutRadial
}

type ChartKind string

const (
	LineChart      ChartKind = "line"
	AreaChart      ChartKind = "area"
	BarChart       ChartKind = "bar"
	ComposedChart  ChartKind = "composed"
	ScatterChart   ChartKind = "scatter"
	FunnelChart    ChartKind = "funnel"
	PieChart       ChartKind = "pie"
	RadarChart     ChartKind = "radar"
	RadialBarChart ChartKind = "radialBar"
)

func ParseChartKind(str string) (ChartKind, error) {
	switch k := ChartKind(strings.TrimSpace(str)); k {
	case LineChart, AreaChart, BarChart, ComposedChart, ScatterChart, FunnelChart, PieChart, RadarChart, RadialBarChart:
		return k, nil
	default:
		return "", fmt.Errorf("%s: unknown chart kind", str)
	}
}

// Polar reports whether the chart is drawn around a center.
func (k ChartKind) Polar() bool {
	return k == PieChart || k == RadarChart || k == RadialBarChart
}

// DefaultLayout is the layout a chart of kind uses when none is given.
func (k ChartKind) DefaultLayout() Layout {
	switch k {
	case RadarChart:
		return LayoutCentric
	case RadialBarChart:
		return LayoutRadial
	case PieChart:
		return LayoutCentric
	default:
		return LayoutHorizontal
	}
}

// Padding is the margin around the plot area.
type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func DefaultMargin() Padding {
	return Padding{
		Top:    5,
		Right:  5,
		Bottom: 5,
		Left:   5,
	}
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// Offset is the plot area of a chart once margins, axes, legend and brush have
// been taken out of its size.
type Offset struct {
	Top         float64
	Right       float64
	Bottom      float64
	Left        float64
	Width       float64
	Height      float64
	BrushBottom float64
}

func (o Offset) ViewBox() Rect {
	return Rect{
		X:      o.Left,
		Y:      o.Top,
		Width:  o.Width,
		Height: o.Height,
	}
}

type LegendAlign string

const (
	AlignLeft   LegendAlign = "left"
	AlignCenter LegendAlign = "center"
	AlignRight  LegendAlign = "right"
	AlignTop    LegendAlign = "top"
	AlignMiddle LegendAlign = "middle"
	AlignBottom LegendAlign = "bottom"
)

// LegendBox is the measured box of a legend and where it is anchored.
type LegendBox struct {
	Width         float64
	Height        float64
	Align         LegendAlign
	VerticalAlign LegendAlign
	Layout        Layout
}

func DefaultLegend() LegendBox {
	return LegendBox{
		Align:         AlignCenter,
		VerticalAlign: AlignBottom,
		Layout:        LayoutHorizontal,
	}
}

// OffsetInputs lists what the plot area of a cartesian chart depends on.
type OffsetInputs struct {
	Width       float64
	Height      float64
	Margin      Padding
	XAxes       []AxisSettings
	YAxes       []AxisSettings
	BrushHeight float64
	Legend      *LegendBox
}

// CalculateOffset computes the plot area. Visible axes take their size on the
// side of their orientation, the brush is placed under the plot and the
// legend takes its box on the side it is aligned to.
func CalculateOffset(in OffsetInputs) Offset {
	off := Offset{
		Top:    in.Margin.Top,
		Right:  in.Margin.Right,
		Bottom: in.Margin.Bottom,
		Left:   in.Margin.Left,
	}
	for _, a := range in.YAxes {
		if a.Mirror || a.Hide {
			continue
		}
		switch a.Orientation {
		case OrientLeft:
			off.Left += a.Width
		case OrientRight:
			off.Right += a.Width
		}
	}
	for _, a := range in.XAxes {
		if a.Mirror || a.Hide {
			continue
		}
		switch a.Orientation {
		case OrientTop:
			off.Top += a.Height
		case OrientBottom:
			off.Bottom += a.Height
		}
	}
	off.BrushBottom = off.Bottom
	off.Bottom += in.BrushHeight
	if in.Legend != nil {
		off = appendLegend(off, *in.Legend)
	}
	off.Width = max(in.Width-off.Left-off.Right, 0)
	off.Height = max(in.Height-off.Top-off.Bottom, 0)
	return off
}

func appendLegend(off Offset, box LegendBox) Offset {
	var (
		vertical   = box.Layout == LayoutVertical
		horizontal = box.Layout == LayoutHorizontal || box.Layout == ""
	)
	if (vertical || (horizontal && box.VerticalAlign == AlignMiddle)) && box.Align != AlignCenter {
		switch box.Align {
		case AlignLeft:
			off.Left += box.Width
			return off
		case AlignRight:
			off.Right += box.Width
			return off
		}
	}
	if (horizontal || (vertical && box.Align == AlignCenter)) && box.VerticalAlign != AlignMiddle {
		switch box.VerticalAlign {
		case AlignTop:
			off.Top += box.Height
		case AlignBottom, "":
			off.Bottom += box.Height
		}
	}
	return off
}

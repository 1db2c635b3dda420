package chartgeo

import (
	"fmt"
	"strings"
)

type ItemKind string

const (
	ItemLine      ItemKind = "line"
	ItemArea      ItemKind = "area"
	ItemBar       ItemKind = "bar"
	ItemScatter   ItemKind = "scatter"
	ItemFunnel    ItemKind = "funnel"
	ItemPie       ItemKind = "pie"
	ItemRadar     ItemKind = "radar"
	ItemRadialBar ItemKind = "radialBar"
)

// Item is a graphical item registered in a Context. The concrete types are
// LineSeries, AreaSeries, BarSeries, ScatterSeries, FunnelSeries, PieSeries,
// RadarSeries and RadialBarSeries.
type Item interface {
	Kind() ItemKind
	Common() *Series
}

// Series holds the settings shared by every graphical item.
type Series struct {
	ID      string
	Name    string
	DataKey DataKey
	Hide    bool
	Color   string

	XAxisID      string
	YAxisID      string
	ZAxisID      string
	AngleAxisID  string
	RadiusAxisID string

	StackID string
	// Data replaces the rows of the chart for this item.
	Data      []Row
	ErrorBars []ErrorBarSettings
}

func (s *Series) Common() *Series {
	return s
}

func (s Series) axisID(kind AxisKind) string {
	var id string
	switch kind {
	case XAxis:
		id = s.XAxisID
	case YAxis:
		id = s.YAxisID
	case ZAxis:
		id = s.ZAxisID
	case AngleAxis:
		id = s.AngleAxisID
	case RadiusAxis:
		id = s.RadiusAxisID
	}
	if id == "" {
		id = DefaultAxisID
	}
	return id
}

// DefaultAxisID is the id of the axes items refer to when they name none.
const DefaultAxisID = "0"

type LineSeries struct {
	Series
	Curve        CurveType
	ConnectNulls bool
}

func (*LineSeries) Kind() ItemKind { return ItemLine }

type AreaSeries struct {
	Series
	Curve        CurveType
	ConnectNulls bool
	BaseValue    BaseValue
}

func (*AreaSeries) Kind() ItemKind { return ItemArea }

type BarSeries struct {
	Series
	BarSize      Length
	MaxBarSize   float64
	MinPointSize float64
	Background   bool
}

func (*BarSeries) Kind() ItemKind { return ItemBar }

type ScatterLine string

const (
	ScatterJoint   ScatterLine = "joint"
	ScatterFitting ScatterLine = "fitting"
)

func ParseScatterLine(str string) (ScatterLine, error) {
	switch l := ScatterLine(strings.TrimSpace(str)); l {
	case "":
		return ScatterJoint, nil
	case ScatterJoint, ScatterFitting:
		return l, nil
	default:
		return "", fmt.Errorf("%s: unknown scatter line type", str)
	}
}

type ScatterSeries struct {
	Series
	Shape     SymbolKind
	Line      bool
	LineType  ScatterLine
	LineCurve CurveType
}

func (*ScatterSeries) Kind() ItemKind { return ItemScatter }

type FunnelShape string

const (
	FunnelTriangle  FunnelShape = "triangle"
	FunnelRectangle FunnelShape = "rectangle"
)

type FunnelSeries struct {
	Series
	NameKey       DataKey
	LastShapeType FunnelShape
	Reversed      bool
	Width         Length
}

func (*FunnelSeries) Kind() ItemKind { return ItemFunnel }

type PieSeries struct {
	Series
	NameKey      DataKey
	Cx           Length
	Cy           Length
	InnerRadius  Length
	OuterRadius  Length
	StartAngle   float64
	EndAngle     float64
	PaddingAngle float64
	MinAngle     float64
	CornerRadius Length
}

func (*PieSeries) Kind() ItemKind { return ItemPie }

// DefaultPie gives a full pie centered in the plot area.
func DefaultPie(id string) *PieSeries {
	return &PieSeries{
		Series: Series{
			ID:      id,
			DataKey: Key("value"),
		},
		NameKey:     Key("name"),
		Cx:          Percent(50),
		Cy:          Percent(50),
		InnerRadius: Px(0),
		OuterRadius: Percent(80),
		StartAngle:  0,
		EndAngle:    360,
	}
}

type RadarSeries struct {
	Series
	ConnectNulls bool
}

func (*RadarSeries) Kind() ItemKind { return ItemRadar }

type RadialBarSeries struct {
	Series
	BarSize      Length
	MaxBarSize   float64
	MinPointSize float64
	CornerRadius Length
	Background   bool
}

func (*RadialBarSeries) Kind() ItemKind { return ItemRadialBar }

type ErrorDirection string

const (
	ErrorX ErrorDirection = "x"
	ErrorY ErrorDirection = "y"
)

// ErrorBarSettings describes the error bars drawn on the points of an item.
// DataKey gives either a symmetric error or a [low, high] pair.
type ErrorBarSettings struct {
	DataKey   DataKey
	Direction ErrorDirection
	Width     float64
}

func (e ErrorBarSettings) direction(layout Layout) ErrorDirection {
	if e.Direction != "" {
		return e.Direction
	}
	if layout == LayoutVertical {
		return ErrorX
	}
	return ErrorY
}

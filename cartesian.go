package chartgeo

import (
	"math"
)

// ItemAxes are the resolved axes an item is drawn against, with the ticks of
// their full domain.
type ItemAxes struct {
	Layout Layout
	X      *Axis
	Y      *Axis
	Z      *Axis
	XTicks []Tick
	YTicks []Tick
}

// Category returns the axis carrying the categories in the layout.
func (a ItemAxes) Category() (*Axis, []Tick) {
	if a.Layout == LayoutVertical {
		return a.Y, a.YTicks
	}
	return a.X, a.XTicks
}

// Numeric returns the axis carrying the values in the layout.
func (a ItemAxes) Numeric() *Axis {
	if a.Layout == LayoutVertical {
		return a.X
	}
	return a.Y
}

// SeriesInput is what the cartesian builders need besides the settings of
// their item.
type SeriesInput struct {
	Axes ItemAxes
	// Rows are the displayed rows, StartIndex the index of the first one in
	// the data of the chart.
	Rows       []Row
	StartIndex int
	BandSize   float64
	// Stacked holds the stacked values of the item over all rows of the
	// chart. It is nil when the item is not stacked.
	Stacked [][2]float64
	Offset  Offset
}

func (in SeriesInput) stacked(index int) ([2]float64, bool) {
	ix := in.StartIndex + index
	if in.Stacked == nil || ix < 0 || ix >= len(in.Stacked) {
		return [2]float64{}, false
	}
	return in.Stacked[ix], true
}

func scaleValue(axis *Axis, v any) (float64, bool) {
	if axis == nil || axis.Scale == nil || v == nil {
		return math.NaN(), false
	}
	px, ok := axis.Scale.Apply(v)
	if !ok || !IsWellBehavedNumber(px) {
		return math.NaN(), false
	}
	return px, true
}

// CateCoordinateOfLine positions the point of a row on a category axis, in
// the middle of its band. Number axes place the value of key, or of the data
// key of the axis when key is not set.
func CateCoordinateOfLine(axis *Axis, ticks []Tick, bandSize float64, row Row, index int, key DataKey) (float64, bool) {
	if axis == nil {
		return math.NaN(), false
	}
	if axis.Type == AxisCategory {
		if !axis.AllowDuplicatedCategory && !axis.DataKey.IsZero() {
			if v := axis.DataKey.Value(row); v != nil {
				if t, ok := findTick(ticks, v); ok {
					return t.Coordinate + bandSize/2, true
				}
			}
		}
		if index < 0 || index >= len(ticks) {
			return math.NaN(), false
		}
		return ticks[index].Coordinate + bandSize/2, true
	}
	if key.IsZero() {
		key = axis.DataKey
	}
	return scaleValue(axis, key.Value(row))
}

// CateCoordinateOfBar positions the start of the bar of a row. Number axes
// center the band on the value.
func CateCoordinateOfBar(axis *Axis, ticks []Tick, bandSize, offset float64, row Row, index int) (float64, bool) {
	if axis == nil {
		return math.NaN(), false
	}
	if axis.Type == AxisCategory {
		if index < 0 || index >= len(ticks) {
			return math.NaN(), false
		}
		return ticks[index].Coordinate + offset, true
	}
	var v any
	if !axis.DataKey.IsZero() {
		v = axis.DataKey.Value(row)
	} else if index < len(axis.Domain.Values) {
		v = axis.Domain.Values[index]
	}
	px, ok := scaleValue(axis, v)
	if !ok {
		return px, false
	}
	return px - bandSize/2 + offset, true
}

// LinePoint is a point of a line, an area or a radar with the value it
// represents.
type LinePoint struct {
	Point
	Index int
	Value any
}

// LineGeometry is a line ready to be drawn.
type LineGeometry struct {
	ID     string
	Name   string
	Color  string
	Layout Layout
	Curve  CurveType
	Points []LinePoint
	Path   string
	Errors []ErrorBar
}

func (LineGeometry) element() {}

// ComputeLine places the points of a line. Missing values give undefined
// points.
func ComputeLine(in SeriesInput, s *LineSeries) LineGeometry {
	var (
		cate, ticks = in.Axes.Category()
		num         = in.Axes.Numeric()
		points      = make([]LinePoint, 0, len(in.Rows))
	)
	for i, r := range in.Rows {
		var (
			value  = s.DataKey.Value(r)
			pt     = LinePoint{Index: i, Value: value}
			c, okc = CateCoordinateOfLine(cate, ticks, in.BandSize, r, i, DataKey{})
			v, okv = scaleScalar(num, value)
		)
		if !okc {
			c = math.NaN()
		}
		if !okv {
			v = math.NaN()
		}
		pt.Point = NewPoint(c, v)
		if in.Axes.Layout == LayoutVertical {
			pt.Point = pt.Point.Reverse()
		}
		points = append(points, pt)
	}
	geo := LineGeometry{
		ID:     s.ID,
		Name:   s.Name,
		Color:  s.Color,
		Layout: in.Axes.Layout,
		Curve:  s.Curve,
		Points: points,
	}
	geo.Path, _ = Path(PathOptions{
		Type:         s.Curve,
		Points:       pointsOf(points),
		Layout:       in.Axes.Layout,
		ConnectNulls: s.ConnectNulls,
	})
	return geo
}

// scaleScalar scales a value that is not a range.
func scaleScalar(axis *Axis, v any) (float64, bool) {
	if _, ok := RangeValue(v); ok {
		return math.NaN(), false
	}
	return scaleValue(axis, v)
}

func pointsOf(list []LinePoint) []Point {
	points := make([]Point, len(list))
	for i := range list {
		points[i] = list[i].Point
	}
	return points
}

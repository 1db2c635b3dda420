package chartgeo

import (
	"math"
)

// ScatterPoint is a symbol of a scatter. Size is the area of the symbol.
type ScatterPoint struct {
	Center Point
	Size   float64
	Radius float64
	Index  int
	Node   [3]any
}

type ScatterGeometry struct {
	ID     string
	Name   string
	Color  string
	Shape  SymbolKind
	Points []ScatterPoint
	Line   string
	Errors []ErrorBar
}

func (ScatterGeometry) element() {}

// ComputeScatter places one symbol per row. The x and y values come from the
// data keys of the axes, or from the data key of the item. The size comes from
// the z axis, or from the first end of its range when the row has no z value.
func ComputeScatter(in SeriesInput, s *ScatterSeries) ScatterGeometry {
	var (
		ax     = in.Axes
		xKey   = keyOrDefault(ax.X, s.DataKey)
		yKey   = keyOrDefault(ax.Y, s.DataKey)
		defZ   = float64(DefaultSymbolSize)
		points = make([]ScatterPoint, 0, len(in.Rows))
	)
	if ax.Z != nil && ax.Z.Range != nil {
		defZ = ax.Z.Range.F
	} else if ax.Z != nil && ax.Z.Scale != nil {
		defZ = ax.Z.Scale.Range().F
	}
	for i, r := range in.Rows {
		var (
			x    = xKey.Value(r)
			y    = yKey.Value(r)
			z    any
			size = defZ
		)
		if ax.Z != nil && !ax.Z.DataKey.IsZero() {
			z = ax.Z.DataKey.Value(r)
			if px, ok := scaleValue(ax.Z, z); ok {
				size = px
			}
		}
		cx, okx := CateCoordinateOfLine(ax.X, ax.XTicks, bandwidthOf(ax.X), r, i, xKey)
		cy, oky := CateCoordinateOfLine(ax.Y, ax.YTicks, bandwidthOf(ax.Y), r, i, yKey)
		if !okx || !oky {
			continue
		}
		points = append(points, ScatterPoint{
			Center: NewPoint(cx, cy),
			Size:   size,
			Radius: math.Sqrt(math.Max(size, 0) / math.Pi),
			Index:  i,
			Node:   [3]any{x, y, z},
		})
	}
	geo := ScatterGeometry{
		ID:     s.ID,
		Name:   s.Name,
		Color:  s.Color,
		Shape:  s.Shape,
		Points: points,
	}
	if s.Line {
		geo.Line, _ = Path(PathOptions{
			Type:   s.LineCurve,
			Points: ScatterLinePoints(points, s.LineType),
		})
	}
	return geo
}

// ScatterLinePoints gives the points of the line drawn over a scatter: the
// symbols themselves or the ends of their least squares fit.
func ScatterLinePoints(points []ScatterPoint, kind ScatterLine) []Point {
	list := make([]Point, len(points))
	for i := range points {
		list[i] = points[i].Center
	}
	if kind != ScatterFitting || len(list) == 0 {
		return list
	}
	reg := LinearRegression(list)
	return []Point{
		NewPoint(reg.XMin, reg.At(reg.XMin)),
		NewPoint(reg.XMax, reg.At(reg.XMax)),
	}
}

func keyOrDefault(axis *Axis, def DataKey) DataKey {
	if axis == nil || axis.DataKey.IsZero() {
		return def
	}
	return axis.DataKey
}

func bandwidthOf(axis *Axis) float64 {
	if axis == nil || axis.Scale == nil {
		return 0
	}
	return axis.Scale.Bandwidth()
}

package chartgeo

import (
	"math"
	"strings"
)

// PolarSeriesInput is what the polar builders need besides the settings of
// their item.
type PolarSeriesInput struct {
	Layout      Layout
	Angle       *Axis
	Radius      *Axis
	AngleTicks  []Tick
	RadiusTicks []Tick

	Rows       []Row
	StartIndex int
	BandSize   float64
	Stacked    [][2]float64
}

func (in PolarSeriesInput) stacked(index int) ([2]float64, bool) {
	ix := in.StartIndex + index
	if in.Stacked == nil || ix < 0 || ix >= len(in.Stacked) {
		return [2]float64{}, false
	}
	return in.Stacked[ix], true
}

// RadarPoint is a vertex of a radar polygon.
type RadarPoint struct {
	Point
	Index  int
	Name   any
	Value  any
	Angle  float64
	Radius float64
}

type RadarGeometry struct {
	ID       string
	Name     string
	Color    string
	Points   []RadarPoint
	BaseLine []RadarPoint
	IsRange  bool
	Path     string
}

func (RadarGeometry) element() {}

// ComputeRadar places one vertex per row on the spoke of its category. Range
// values are drawn from their last end and give a second polygon, the base
// line, from their first end.
func ComputeRadar(in PolarSeriesInput, s *RadarSeries) RadarGeometry {
	geo := RadarGeometry{
		ID:    s.ID,
		Name:  s.Name,
		Color: s.Color,
	}
	angles, radii := in.Angle, in.Radius
	if angles == nil || radii == nil || angles.Scale == nil || radii.Scale == nil {
		return geo
	}
	var bandSize float64
	if angles.Type != AxisNumber {
		bandSize = in.BandSize
	}
	for i, r := range in.Rows {
		var (
			name  any = i
			value     = s.DataKey.Value(r)
		)
		if !angles.DataKey.IsZero() {
			if v := angles.DataKey.Value(r); v != nil {
				name = v
			}
		}
		pt := RadarPoint{
			Index:  i,
			Name:   name,
			Value:  value,
			Angle:  math.NaN(),
			Radius: math.NaN(),
			Point:  UndefinedPoint(),
		}
		if px, ok := angles.Scale.Apply(name); ok {
			pt.Angle = px + bandSize
		}
		v := value
		if rg, ok := RangeValue(value); ok {
			v = rg[1]
			geo.IsRange = true
		}
		if px, ok := scaleValue(radii, v); ok {
			pt.Radius = px
		}
		if !math.IsNaN(pt.Angle) && !math.IsNaN(pt.Radius) {
			pt.Point = PolarToCartesian(angles.Cx, angles.Cy, pt.Radius, pt.Angle)
		}
		geo.Points = append(geo.Points, pt)
	}
	if geo.IsRange {
		for _, p := range geo.Points {
			rg, ok := RangeValue(p.Value)
			if !ok {
				geo.BaseLine = append(geo.BaseLine, p)
				continue
			}
			base := p
			base.Radius, base.Point = math.NaN(), UndefinedPoint()
			if px, ok := scaleValue(radii, rg[0]); ok && !math.IsNaN(p.Angle) {
				base.Radius = px
				base.Point = PolarToCartesian(angles.Cx, angles.Cy, px, p.Angle)
			}
			geo.BaseLine = append(geo.BaseLine, base)
		}
		geo.Path = RangePolygonPath(radarPoints(geo.Points), radarPoints(geo.BaseLine), s.ConnectNulls)
	} else {
		geo.Path = PolygonPath(radarPoints(geo.Points), s.ConnectNulls)
	}
	return geo
}

func radarPoints(list []RadarPoint) []Point {
	points := make([]Point, len(list))
	for i := range list {
		points[i] = list[i].Point
	}
	return points
}

// polygonSegments splits points at undefined points. The first point is
// appended again to the last segment to close the shape.
func polygonSegments(points []Point) [][]Point {
	segments := [][]Point{nil}
	for _, p := range points {
		last := len(segments) - 1
		if p.Defined() {
			segments[last] = append(segments[last], p)
		} else if len(segments[last]) > 0 {
			segments = append(segments, nil)
		}
	}
	if len(points) > 0 && points[0].Defined() {
		last := len(segments) - 1
		segments[last] = append(segments[last], points[0])
	}
	if len(segments[len(segments)-1]) == 0 {
		segments = segments[:len(segments)-1]
	}
	return segments
}

// PolygonPath draws a closed polygon through points. The polygon is broken at
// undefined points unless connectNulls is set. Only an unbroken polygon is
// closed.
func PolygonPath(points []Point, connectNulls bool) string {
	segments := polygonSegments(points)
	if connectNulls && len(segments) > 1 {
		var all []Point
		for _, s := range segments {
			all = append(all, s...)
		}
		segments = [][]Point{all}
	}
	var ctx pathContext
	for _, s := range segments {
		for i, p := range s {
			if i == 0 {
				ctx.moveTo(p.X, p.Y)
			} else {
				ctx.lineTo(p.X, p.Y)
			}
		}
	}
	str := ctx.String()
	if len(segments) == 1 {
		str += "Z"
	}
	return str
}

// RangePolygonPath draws the band between an outer polygon and its base line,
// the latter being walked backward.
func RangePolygonPath(points, baseLine []Point, connectNulls bool) string {
	var (
		outer = strings.TrimSuffix(PolygonPath(points, connectNulls), "Z")
		rev   = make([]Point, len(baseLine))
	)
	for i := range baseLine {
		rev[len(baseLine)-1-i] = baseLine[i]
	}
	inner := PolygonPath(rev, connectNulls)
	if len(inner) > 0 {
		inner = inner[1:]
	}
	return outer + "L" + inner
}

// RadialBarSector is the sector of one row of a radial bar.
type RadialBarSector struct {
	Sector
	Index      int
	Value      any
	Path       string
	Background Sector
	Tooltip    Point
}

type RadialBarGeometry struct {
	ID         string
	Name       string
	Color      string
	Layout     Layout
	Sectors    []RadialBarSector
	Background bool
}

func (RadialBarGeometry) element() {}

// ComputeRadialBar places one sector per row. In radial layout the categories
// are on the radius axis and the values sweep angles. In centric layout the
// categories are on the angle axis and the values give radii.
func ComputeRadialBar(in PolarSeriesInput, s *RadialBarSeries, pos BarPlacement) RadialBarGeometry {
	geo := RadialBarGeometry{
		ID:         s.ID,
		Name:       s.Name,
		Color:      s.Color,
		Layout:     in.Layout,
		Background: s.Background,
	}
	angles, radii := in.Angle, in.Radius
	if angles == nil || radii == nil {
		return geo
	}
	num := angles
	if in.Layout == LayoutCentric {
		num = radii
	}
	var (
		base   = BaseValueOfBar(num)
		domain []any
	)
	if in.Stacked != nil && num.Scale != nil {
		domain = num.Scale.Domain()
	}
	for i, r := range in.Rows {
		var (
			value [2]any
			shown any
		)
		if st, ok := in.stacked(i); ok {
			st = TruncateByDomain(st, domain)
			value = [2]any{st[0], st[1]}
			shown = st
		} else {
			raw := s.DataKey.Value(r)
			if rg, ok := RangeValue(raw); ok {
				value = [2]any{rg[0], rg[1]}
			} else {
				value = [2]any{base, raw}
			}
			shown = value[1]
		}
		sector := Sector{
			Cx: angles.Cx,
			Cy: angles.Cy,
		}
		item := RadialBarSector{
			Index: i,
			Value: shown,
		}
		if in.Layout == LayoutRadial {
			inner, ok := CateCoordinateOfBar(radii, in.RadiusTicks, in.BandSize, pos.Offset, r, i)
			if !ok {
				continue
			}
			v0, ok0 := scaleValue(angles, value[0])
			v1, ok1 := scaleValue(angles, value[1])
			if !ok0 || !ok1 {
				continue
			}
			sector.InnerRadius = inner
			sector.OuterRadius = inner + pos.Size
			sector.StartAngle = v0
			sector.EndAngle = v1 + minPointDelta(v1-v0, s.MinPointSize)
			item.Background = Sector{
				Cx:          sector.Cx,
				Cy:          sector.Cy,
				InnerRadius: sector.InnerRadius,
				OuterRadius: sector.OuterRadius,
				StartAngle:  angles.StartAngle,
				EndAngle:    angles.EndAngle,
			}
		} else {
			start, ok := CateCoordinateOfBar(angles, in.AngleTicks, in.BandSize, pos.Offset, r, i)
			if !ok {
				continue
			}
			v0, ok0 := scaleValue(radii, value[0])
			v1, ok1 := scaleValue(radii, value[1])
			if !ok0 || !ok1 {
				continue
			}
			sector.InnerRadius = v0
			sector.OuterRadius = v1 + minPointDelta(v1-v0, s.MinPointSize)
			sector.StartAngle = start
			sector.EndAngle = start + pos.Size
			item.Background = Sector{
				Cx:          sector.Cx,
				Cy:          sector.Cy,
				InnerRadius: radii.InnerRadius,
				OuterRadius: radii.OuterRadius,
				StartAngle:  sector.StartAngle,
				EndAngle:    sector.EndAngle,
			}
		}
		item.Sector = sector
		item.Tooltip = sector.Anchor()
		item.Path, _ = SectorPathWithCorner(sector, Corner{Radius: s.CornerRadius})
		geo.Sectors = append(geo.Sectors, item)
	}
	return geo
}

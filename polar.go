package chartgeo

import (
	"math"
)

const (
	deg2rad    = math.Pi / 180
	rad2deg    = 180 / math.Pi
	fullcircle = 360.0
	halfcircle = 180.0
)

// PolarToCartesian places the point at radius from the center along angle,
// expressed in degrees counter clockwise from three o'clock.
func PolarToCartesian(cx, cy, radius, angle float64) Point {
	return Point{
		X: cx + math.Cos(-deg2rad*angle)*radius,
		Y: cy + math.Sin(-deg2rad*angle)*radius,
	}
}

// MaxRadius is the largest radius fitting in the plot area.
func MaxRadius(width, height float64, margin Padding) float64 {
	var (
		w = math.Abs(width - margin.Left - margin.Right)
		h = math.Abs(height - margin.Top - margin.Bottom)
	)
	return math.Min(w, h) / 2
}

// Polar is the frame shared by the axes and items of a polar chart.
type Polar struct {
	Cx          float64
	Cy          float64
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
}

// PolarInputs lists what the polar axes are resolved with.
type PolarInputs struct {
	Width       float64
	Height      float64
	Margin      Padding
	Layout      Layout
	Chart       ChartKind
	Cx          Length
	Cy          Length
	InnerRadius Length
	OuterRadius Length
	StartAngle  float64
	EndAngle    float64
}

// Frame resolves the center and the radii of the chart.
func (in PolarInputs) Frame() Polar {
	maxRadius := MaxRadius(in.Width, in.Height, in.Margin)
	return Polar{
		Cx:          in.Cx.Resolve(in.Width, in.Width/2, false),
		Cy:          in.Cy.Resolve(in.Height, in.Height/2, false),
		InnerRadius: in.InnerRadius.Resolve(maxRadius, 0, false),
		OuterRadius: in.OuterRadius.Resolve(maxRadius, maxRadius*0.8, false),
		StartAngle:  in.StartAngle,
		EndAngle:    in.EndAngle,
	}
}

// ResolvePolarAxes computes the range and the scale of every angle or radius
// axis. Angle axes go from the start to the end angle and radius axes from the
// inner to the outer radius. An axis with an explicit range keeps it.
func ResolvePolarAxes(kind AxisKind, axes []*Axis, in PolarInputs) {
	frame := in.Frame()
	for _, a := range axes {
		var rg Range
		switch {
		case a.Range != nil:
			rg = *a.Range
			frame.StartAngle, frame.EndAngle = rg.F, rg.T
		case kind == AngleAxis:
			rg = NewRange(frame.StartAngle, frame.EndAngle)
		default:
			rg = NewRange(frame.InnerRadius, frame.OuterRadius)
		}
		if a.Range == nil && a.Reversed {
			rg = rg.Reverse()
		}
		a.Layout = in.Layout
		a.RealScale = ParseScale(a.AxisSettings, in.Layout, in.Chart, false)
		a.Scale, a.NiceTicks = buildScale(a.AxisSettings, a.RealScale, a.Domain, rg)
		a.Cx, a.Cy = frame.Cx, frame.Cy
		a.InnerRadius, a.OuterRadius = frame.InnerRadius, frame.OuterRadius
		a.StartAngle, a.EndAngle = frame.StartAngle, frame.EndAngle
		a.BandSize = BandSizeOfAxis(a.Scale, niceTicksOf(a), false)
	}
}

// Segment is a straight line between two points.
type Segment struct {
	From Point
	To   Point
}

type TextAnchor string

const (
	AnchorStart  TextAnchor = "start"
	AnchorMiddle TextAnchor = "middle"
	AnchorEnd    TextAnchor = "end"
)

// AngleTickLine is the tick line of an angle axis, drawn outward from the
// outer radius, or inward when the axis orientation is inner.
func AngleTickLine(axis *Axis, tick Tick) Segment {
	size := axis.TickSize
	if size == 0 {
		size = 8
	}
	if axis.Orientation == OrientInner {
		size = -size
	}
	return Segment{
		From: PolarToCartesian(axis.Cx, axis.Cy, axis.OuterRadius, tick.Coordinate),
		To:   PolarToCartesian(axis.Cx, axis.Cy, axis.OuterRadius+size, tick.Coordinate),
	}
}

// AngleTickAnchor aligns the label of a tick of an angle axis away from the
// center.
func AngleTickAnchor(axis *Axis, tick Tick) TextAnchor {
	const eps = 1e-5
	var (
		cos   = math.Cos(-tick.Coordinate * deg2rad)
		outer = axis.Orientation != OrientInner
	)
	switch {
	case cos > eps && outer, cos < -eps && !outer:
		return AnchorStart
	case cos > eps, cos < -eps:
		return AnchorEnd
	default:
		return AnchorMiddle
	}
}

// AngleAxisLine gives the polygon joining the ticks at the outer radius.
func AngleAxisLine(axis *Axis, ticks []Tick) []Point {
	list := make([]Point, 0, len(ticks))
	for _, t := range ticks {
		list = append(list, PolarToCartesian(axis.Cx, axis.Cy, axis.OuterRadius, t.Coordinate))
	}
	return list
}

// RadiusTickPoint places a tick of a radius axis drawn along angle.
func RadiusTickPoint(axis *Axis, angle float64, tick Tick) Point {
	return PolarToCartesian(axis.Cx, axis.Cy, tick.Coordinate, angle)
}

func RadiusTickAnchor(axis *Axis) TextAnchor {
	switch axis.Orientation {
	case OrientLeft:
		return AnchorEnd
	case OrientRight:
		return AnchorStart
	default:
		return AnchorMiddle
	}
}

// RadiusAxisLine spans the ticks of a radius axis drawn along angle.
func RadiusAxisLine(axis *Axis, angle float64, ticks []Tick) (Segment, bool) {
	if len(ticks) == 0 {
		return Segment{}, false
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range ticks {
		lo = math.Min(lo, t.Coordinate)
		hi = math.Max(hi, t.Coordinate)
	}
	return Segment{
		From: PolarToCartesian(axis.Cx, axis.Cy, lo, angle),
		To:   PolarToCartesian(axis.Cx, axis.Cy, hi, angle),
	}, true
}

// PolarGrid is the grid of a polar chart: one spoke per angle and one
// concentric polygon per radius.
type PolarGrid struct {
	Spokes   []Segment
	Polygons []string
	Radii    []float64
}

func ComputePolarGrid(frame Polar, angles, radii []float64) PolarGrid {
	var grid PolarGrid
	for _, a := range angles {
		grid.Spokes = append(grid.Spokes, Segment{
			From: PolarToCartesian(frame.Cx, frame.Cy, frame.InnerRadius, a),
			To:   PolarToCartesian(frame.Cx, frame.Cy, frame.OuterRadius, a),
		})
	}
	for _, r := range radii {
		grid.Radii = append(grid.Radii, r)
		if len(angles) == 0 {
			continue
		}
		grid.Polygons = append(grid.Polygons, polarPolygonPath(frame.Cx, frame.Cy, r, angles))
	}
	return grid
}

func polarPolygonPath(cx, cy, radius float64, angles []float64) string {
	var ctx pathContext
	for i, a := range angles {
		p := PolarToCartesian(cx, cy, radius, a)
		if i == 0 {
			ctx.moveTo(p.X, p.Y)
		} else {
			ctx.lineTo(p.X, p.Y)
		}
	}
	ctx.closePath()
	return ctx.String()
}

// AngleOfPoint gives the distance of p to the center and its angle in
// degrees. The angle is not set when p is the center.
func AngleOfPoint(p Point, cx, cy float64) (radius, angle float64, ok bool) {
	radius = math.Hypot(p.X-cx, p.Y-cy)
	if radius <= 0 {
		return radius, 0, false
	}
	rad := math.Acos((p.X - cx) / radius)
	if p.Y > cy {
		rad = 2*math.Pi - rad
	}
	return radius, rad * rad2deg, true
}

// FormatAngleOfSector shifts both angles by the same number of turns so that
// the smallest one is in [0, 360).
func FormatAngleOfSector(start, end float64) (float64, float64) {
	turns := math.Min(math.Floor(start/fullcircle), math.Floor(end/fullcircle))
	return start - turns*fullcircle, end - turns*fullcircle
}

// InRangeOfSector reports whether p lies inside the sector. The returned angle
// is the one of p expressed in the turn of the sector.
func InRangeOfSector(p Point, s Sector) (float64, bool) {
	radius, angle, _ := AngleOfPoint(p, s.Cx, s.Cy)
	if radius < s.InnerRadius || radius > s.OuterRadius {
		return 0, false
	}
	if radius == 0 {
		return 0, true
	}
	var (
		start, end = FormatAngleOfSector(s.StartAngle, s.EndAngle)
		in         bool
	)
	if start <= end {
		for angle > end {
			angle -= fullcircle
		}
		for angle < start {
			angle += fullcircle
		}
		in = angle >= start && angle <= end
	} else {
		for angle > start {
			angle -= fullcircle
		}
		for angle < end {
			angle += fullcircle
		}
		in = angle >= end && angle <= start
	}
	if !in {
		return 0, false
	}
	turns := math.Min(math.Floor(s.StartAngle/fullcircle), math.Floor(s.EndAngle/fullcircle))
	return angle + turns*fullcircle, true
}

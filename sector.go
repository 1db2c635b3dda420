package chartgeo

import (
	"math"
)

// maxDeltaAngle keeps a full circle from collapsing into an empty arc.
const maxDeltaAngle = 359.999

// Sector is a ring slice. Angles are in degrees.
type Sector struct {
	Cx          float64
	Cy          float64
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
}

// MidAngle is the angle in the middle of the sector.
func (s Sector) MidAngle() float64 {
	return (s.StartAngle + s.EndAngle) / 2
}

// Anchor is the point in the middle of the sector.
func (s Sector) Anchor() Point {
	return PolarToCartesian(s.Cx, s.Cy, (s.InnerRadius+s.OuterRadius)/2, s.MidAngle())
}

func (s Sector) valid() bool {
	for _, v := range []float64{s.Cx, s.Cy, s.InnerRadius, s.OuterRadius, s.StartAngle, s.EndAngle} {
		if !IsWellBehavedNumber(v) {
			return false
		}
	}
	return s.OuterRadius > 0 && s.OuterRadius >= s.InnerRadius && s.StartAngle != s.EndAngle
}

// DeltaAngle is the signed span between start and end, never a full turn.
func DeltaAngle(start, end float64) float64 {
	return MathSign(end-start) * math.Min(math.Abs(end-start), maxDeltaAngle)
}

// SectorPath draws a sector: the outer arc, then the inner arc in the other
// direction when the inner radius is set, or a line to the center. ok is false
// for sectors without area.
func SectorPath(s Sector) (string, bool) {
	if !s.valid() {
		return "", false
	}
	return sectorPath(s), true
}

func sectorPath(s Sector) string {
	var (
		ctx   pathContext
		delta = DeltaAngle(s.StartAngle, s.EndAngle)
		end   = s.StartAngle + delta
		large = math.Abs(delta) > halfcircle
		p0    = PolarToCartesian(s.Cx, s.Cy, s.OuterRadius, s.StartAngle)
		p1    = PolarToCartesian(s.Cx, s.Cy, s.OuterRadius, end)
	)
	ctx.moveTo(p0.X, p0.Y)
	ctx.arcTo(s.OuterRadius, large, s.StartAngle > end, p1.X, p1.Y)
	if s.InnerRadius > 0 {
		var (
			p2 = PolarToCartesian(s.Cx, s.Cy, s.InnerRadius, end)
			p3 = PolarToCartesian(s.Cx, s.Cy, s.InnerRadius, s.StartAngle)
		)
		ctx.lineTo(p2.X, p2.Y)
		ctx.arcTo(s.InnerRadius, large, s.StartAngle <= end, p3.X, p3.Y)
	} else {
		ctx.lineTo(s.Cx, s.Cy)
	}
	ctx.closePath()
	return ctx.String()
}

// Corner describes the rounding of the corners of a sector. Radius is
// relative to the thickness of the sector when given as percent.
type Corner struct {
	Radius   Length
	Force    bool
	External bool
}

type tangent struct {
	circle Point
	line   Point
	theta  float64
}

// tangentCircle finds the circle of radius corner tangent to both the arc of
// the given radius and the edge of the sector at angle.
func tangentCircle(cx, cy, radius, angle, sign, corner float64, external, cornerExternal bool) tangent {
	center := radius - corner
	if external {
		center = radius + corner
	}
	var (
		theta     = math.Asin(corner/center) * rad2deg
		centerAng = angle + sign*theta
		lineAng   = angle
	)
	if cornerExternal {
		centerAng = angle
		lineAng = angle - sign*theta
	}
	return tangent{
		circle: PolarToCartesian(cx, cy, radius, centerAng),
		line:   PolarToCartesian(cx, cy, center*math.Cos(theta*deg2rad), lineAng),
		theta:  theta,
	}
}

// SectorPathWithCorner draws a sector with rounded corners. The corner radius
// is at most half the thickness of the sector and full rings are never
// rounded.
func SectorPathWithCorner(s Sector, c Corner) (string, bool) {
	if !s.valid() {
		return "", false
	}
	var (
		thickness = s.OuterRadius - s.InnerRadius
		radius    = c.Radius.Resolve(thickness, 0, true)
	)
	if radius <= 0 || math.Abs(s.StartAngle-s.EndAngle) >= fullcircle {
		return sectorPath(s), true
	}
	radius = math.Min(radius, thickness/2)
	var (
		ctx   pathContext
		sign  = MathSign(s.EndAngle - s.StartAngle)
		span  = math.Abs(s.StartAngle - s.EndAngle)
		rev   = sign < 0
		start = tangentCircle(s.Cx, s.Cy, s.OuterRadius, s.StartAngle, sign, radius, false, c.External)
		end   = tangentCircle(s.Cx, s.Cy, s.OuterRadius, s.EndAngle, -sign, radius, false, c.External)
		outer = span
	)
	if !c.External {
		outer -= start.theta + end.theta
	}
	if outer < 0 {
		if !c.Force {
			return sectorPath(s), true
		}
		ctx.moveTo(start.line.X, start.line.Y)
		ctx.cmd('a', radius, radius, 0, 0, 1, radius*2, 0)
		ctx.cmd('a', radius, radius, 0, 0, 1, -radius*2, 0)
		return ctx.String(), true
	}
	ctx.moveTo(start.line.X, start.line.Y)
	ctx.arcTo(radius, false, rev, start.circle.X, start.circle.Y)
	ctx.arcTo(s.OuterRadius, outer > halfcircle, rev, end.circle.X, end.circle.Y)
	ctx.arcTo(radius, false, rev, end.line.X, end.line.Y)
	if s.InnerRadius > 0 {
		var (
			istart = tangentCircle(s.Cx, s.Cy, s.InnerRadius, s.StartAngle, sign, radius, true, c.External)
			iend   = tangentCircle(s.Cx, s.Cy, s.InnerRadius, s.EndAngle, -sign, radius, true, c.External)
			inner  = span
		)
		if !c.External {
			inner -= istart.theta + iend.theta
		}
		ctx.lineTo(iend.line.X, iend.line.Y)
		ctx.arcTo(radius, false, rev, iend.circle.X, iend.circle.Y)
		ctx.arcTo(s.InnerRadius, inner > halfcircle, sign > 0, istart.circle.X, istart.circle.Y)
		ctx.arcTo(radius, false, rev, istart.line.X, istart.line.Y)
	} else {
		ctx.lineTo(s.Cx, s.Cy)
	}
	ctx.closePath()
	return ctx.String(), true
}

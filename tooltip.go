package chartgeo

import (
	"math"
)

// ActiveTickIndex gives the index of the tooltip tick closest to coordinate,
// measured along the category axis. ticks are sorted by coordinate, unsorted
// keep the order of the axis. Angle axes spanning a full circle wrap around:
// the first and last ticks are neighbours.
func ActiveTickIndex(coordinate float64, ticks, unsorted []Tick, axis *Axis) int {
	n := len(ticks)
	if n <= 1 {
		return 0
	}
	if axis != nil && axis.Kind == AngleAxis && axis.Scale != nil {
		rg := axis.Scale.Range()
		if math.Abs(math.Abs(rg.T-rg.F)-fullcircle) <= 1e-6 {
			return activeAngleIndex(coordinate, unsorted, rg)
		}
	}
	for i := 0; i < n; i++ {
		var (
			curr = ticks[i].Coordinate
			hit  bool
		)
		switch {
		case i == 0:
			hit = coordinate <= (curr+ticks[i+1].Coordinate)/2
		case i == n-1:
			hit = coordinate > (curr+ticks[i-1].Coordinate)/2
		default:
			hit = coordinate > (curr+ticks[i-1].Coordinate)/2 && coordinate <= (curr+ticks[i+1].Coordinate)/2
		}
		if hit {
			return ticks[i].Index
		}
	}
	return -1
}

func activeAngleIndex(coordinate float64, ticks []Tick, rg Range) int {
	n := len(ticks)
	if n <= 1 {
		return 0
	}
	span := rg.T - rg.F
	for i := 0; i < n; i++ {
		var (
			before = ticks[(i+n-1)%n].Coordinate
			curr   = ticks[i].Coordinate
			after  = ticks[(i+1)%n].Coordinate
		)
		if MathSign(curr-before) == MathSign(after-curr) {
			lo, hi := math.Min(before, after), math.Max(before, after)
			if coordinate > (lo+curr)/2 && coordinate <= (hi+curr)/2 {
				return ticks[i].Index
			}
			continue
		}
		var (
			same float64
			diff [2]float64
		)
		if MathSign(after-curr) == MathSign(span) {
			same = after
			shifted := curr + span
			diff = [2]float64{math.Min(shifted, (shifted+before)/2), math.Max(shifted, (shifted+before)/2)}
		} else {
			same = before
			shifted := after + span
			diff = [2]float64{math.Min(curr, (shifted+curr)/2), math.Max(curr, (shifted+curr)/2)}
		}
		lo, hi := math.Min(curr, (same+curr)/2), math.Max(curr, (same+curr)/2)
		if (coordinate > lo && coordinate <= hi) || (coordinate >= diff[0] && coordinate <= diff[1]) {
			return ticks[i].Index
		}
	}
	return -1
}

// Pointer is where the pointer is relative to the chart, with its polar
// coordinates for polar charts.
type Pointer struct {
	Point
	Cx     float64
	Cy     float64
	Angle  float64
	Radius float64
}

// ActiveCoordinate gives where the tooltip of the tick at index is anchored.
// Cartesian charts keep the pointer position across the category axis, polar
// charts keep the radius or the angle of the pointer.
func ActiveCoordinate(layout Layout, ticks []Tick, index int, ptr Pointer) (Pointer, bool) {
	var (
		tick  Tick
		found bool
	)
	for _, t := range ticks {
		if t.Index == index {
			tick, found = t, true
			break
		}
	}
	if !found {
		return Pointer{}, false
	}
	res := ptr
	switch layout {
	case LayoutHorizontal:
		res.Point = NewPoint(tick.Coordinate, ptr.Y)
	case LayoutVertical:
		res.Point = NewPoint(ptr.X, tick.Coordinate)
	case LayoutCentric:
		res.Angle = tick.Coordinate
		res.Point = PolarToCartesian(ptr.Cx, ptr.Cy, res.Radius, res.Angle)
	default:
		res.Radius = tick.Coordinate
		res.Point = PolarToCartesian(ptr.Cx, ptr.Cy, res.Radius, res.Angle)
	}
	return res, true
}

// TooltipState is what the tooltip shows for a pointer position.
type TooltipState struct {
	Active     bool
	Index      int
	Label      any
	Coordinate Pointer
}

// TooltipAt resolves the tooltip for the pointer at p. It is inactive when p
// is out of the plot area, or out of the ring of a polar chart.
func (g *Geometry) TooltipAt(p Point) TooltipState {
	var state TooltipState
	if g == nil || len(g.TooltipTicks) == 0 {
		return state
	}
	var (
		ptr = Pointer{Point: p}
		pos float64
	)
	switch g.Layout {
	case LayoutHorizontal, LayoutVertical:
		if !g.Offset.ViewBox().Contains(p) {
			return state
		}
		pos = p.X
		if g.Layout == LayoutVertical {
			pos = p.Y
		}
	default:
		frame := g.Polar
		angle, ok := InRangeOfSector(p, Sector{
			Cx:          frame.Cx,
			Cy:          frame.Cy,
			InnerRadius: frame.InnerRadius,
			OuterRadius: frame.OuterRadius,
			StartAngle:  frame.StartAngle,
			EndAngle:    frame.EndAngle,
		})
		if !ok {
			return state
		}
		ptr.Cx, ptr.Cy = frame.Cx, frame.Cy
		ptr.Radius, ptr.Angle = math.Hypot(p.X-frame.Cx, p.Y-frame.Cy), angle
		pos = angle
		if g.Layout == LayoutRadial {
			pos = ptr.Radius
		}
	}
	var (
		sorted = sortTicks(g.TooltipTicks)
		index  = ActiveTickIndex(pos, sorted, g.TooltipTicks, g.TooltipAxis)
	)
	if index < 0 || index >= len(g.TooltipTicks) {
		return state
	}
	state.Active = true
	state.Index = index
	state.Label = g.TooltipTicks[index].Value
	state.Coordinate, _ = ActiveCoordinate(g.Layout, g.TooltipTicks, index, ptr)
	return state
}

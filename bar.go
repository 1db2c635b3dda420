package chartgeo

import (
	"math"
)

// BaseValueOfBar is the value bars start from: 0 when the domain spans it,
// otherwise the end of the domain closest to 0. Category axes start from their
// first category.
func BaseValueOfBar(axis *Axis) any {
	if axis == nil || axis.Scale == nil {
		return 0.0
	}
	domain := axis.Scale.Domain()
	if len(domain) == 0 {
		return 0.0
	}
	if axis.Type != AxisNumber {
		return domain[0]
	}
	lo, hi := numberEnds(domain)
	lo, hi = math.Min(lo, hi), math.Max(lo, hi)
	switch {
	case lo <= 0 && hi >= 0:
		return 0.0
	case hi < 0:
		return hi
	default:
		return lo
	}
}

// TruncateByDomain keeps a stacked value inside domain. A missing end is set
// to the matching end of the domain.
func TruncateByDomain(value [2]float64, domain []any) [2]float64 {
	if len(domain) != 2 {
		return value
	}
	d0, ok0 := ToNumber(domain[0])
	d1, ok1 := ToNumber(domain[1])
	if !ok0 || !ok1 {
		return value
	}
	var (
		lo  = math.Min(d0, d1)
		hi  = math.Max(d0, d1)
		res = value
	)
	if math.IsNaN(value[0]) || value[0] < lo {
		res[0] = lo
	}
	if math.IsNaN(value[1]) || value[1] > hi {
		res[1] = hi
	}
	if res[0] > hi {
		res[0] = hi
	}
	if res[1] < lo {
		res[1] = lo
	}
	return res
}

// minPointDelta is how much a bar of size h has to grow to reach the minimum
// size of its points.
func minPointDelta(h, mps float64) float64 {
	if math.Abs(mps) == 0 || math.Abs(h) >= math.Abs(mps) {
		return 0
	}
	sign := MathSign(h)
	if h == 0 {
		sign = MathSign(mps)
	}
	return sign * (math.Abs(mps) - math.Abs(h))
}

// BarRect is the rectangle of a bar for one row.
type BarRect struct {
	Rect
	Index      int
	Value      any
	Background Rect
	Tooltip    Point
}

type BarGeometry struct {
	ID         string
	Name       string
	Color      string
	Layout     Layout
	Rects      []BarRect
	Background bool
	Errors     []ErrorBar
}

func (BarGeometry) element() {}

// ComputeBar places the bars of an item in the slot given by pos. Rows whose
// value can not be placed are skipped.
func ComputeBar(in SeriesInput, s *BarSeries, pos BarPlacement) BarGeometry {
	var (
		cate, ticks = in.Axes.Category()
		num         = in.Axes.Numeric()
		base        = BaseValueOfBar(num)
		rects       = make([]BarRect, 0, len(in.Rows))
		domain      []any
	)
	if in.Stacked != nil && num != nil && num.Scale != nil {
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
			shown = raw
		}
		c, ok := CateCoordinateOfBar(cate, ticks, in.BandSize, pos.Offset, r, i)
		if !ok {
			continue
		}
		v0, ok0 := scaleValue(num, value[0])
		v1, ok1 := scaleValue(num, value[1])
		if !ok1 {
			continue
		}
		if !ok0 {
			v0 = v1
		}
		bar := BarRect{
			Index: i,
			Value: shown,
		}
		if in.Axes.Layout == LayoutVertical {
			bar.Rect = Rect{
				X:      v0,
				Y:      c,
				Width:  v1 - v0,
				Height: pos.Size,
			}
			bar.Background = Rect{
				X:      num.X,
				Y:      c,
				Width:  num.Width,
				Height: pos.Size,
			}
			bar.Width += minPointDelta(bar.Width, s.MinPointSize)
		} else {
			bar.Rect = Rect{
				X:      c,
				Y:      v1,
				Width:  pos.Size,
				Height: v0 - v1,
			}
			bar.Background = Rect{
				X:      c,
				Y:      num.Y,
				Width:  pos.Size,
				Height: num.Height,
			}
			delta := minPointDelta(bar.Height, s.MinPointSize)
			bar.Y -= delta
			bar.Height += delta
		}
		bar.Tooltip = bar.Rect.Center()
		rects = append(rects, bar)
	}
	return BarGeometry{
		ID:         s.ID,
		Name:       s.Name,
		Color:      s.Color,
		Layout:     in.Axes.Layout,
		Rects:      rects,
		Background: s.Background,
	}
}

// BarBandSize is the band size used to place bars. When the axis gives none,
// the maximum size of the bars is used.
func BarBandSize(axis *Axis, ticks []Tick, maxBarSize float64) float64 {
	if axis == nil {
		return maxBarSize
	}
	size := BandSizeOfAxis(axis.Scale, ticks, true)
	if size == 0 && len(ticks) < 2 {
		return maxBarSize
	}
	return size
}

package chartgeo

import (
	"math"
)

// Trapezoid is one row of a funnel. X is the left end of its upper side.
type Trapezoid struct {
	X          float64
	Y          float64
	Width      float64
	Height     float64
	UpperWidth float64
	LowerWidth float64
	Index      int
	Name       any
	Value      float64
	Tooltip    Point
	LabelBox   Rect
}

// Path draws the outline of the trapezoid.
func (t Trapezoid) Path() string {
	var (
		ctx  pathContext
		diff = (t.UpperWidth - t.LowerWidth) / 2
	)
	ctx.moveTo(t.X, t.Y)
	ctx.lineTo(t.X+t.UpperWidth, t.Y)
	ctx.lineTo(t.X+t.UpperWidth-diff, t.Y+t.Height)
	ctx.lineTo(t.X+diff, t.Y+t.Height)
	ctx.lineTo(t.X, t.Y)
	ctx.closePath()
	return ctx.String()
}

type FunnelGeometry struct {
	ID         string
	Name       string
	Trapezoids []Trapezoid
}

func (FunnelGeometry) element() {}

// ComputeFunnel stacks one trapezoid per row from the top of the plot area.
// The upper side of a row is proportional to its value and its lower side to
// the value of the next row. The last row narrows to nothing, keeps its width
// when its shape is a rectangle, or goes from the first to the second value of
// a range. Reversed funnels flip the order of the rows and the sides of each
// trapezoid.
func ComputeFunnel(rows []Row, s *FunnelSeries, off Offset) FunnelGeometry {
	geo := FunnelGeometry{
		ID:   s.ID,
		Name: s.Name,
	}
	if len(rows) == 0 {
		return geo
	}
	var (
		count    = len(rows)
		maxValue = math.Inf(-1)
		width    = s.Width.Resolve(off.Width, off.Width, false)
		real     = width - 50
		offsetX  = (off.Width - width) / 2
		rowSize  = off.Height / float64(count)
		nameKey  = s.NameKey
	)
	for _, r := range rows {
		maxValue = math.Max(maxValue, funnelValue(s.DataKey.Value(r)))
	}
	if maxValue <= 0 || !IsWellBehavedNumber(maxValue) {
		return geo
	}
	if nameKey.IsZero() {
		nameKey = Key("name")
	}
	for i, r := range rows {
		var (
			raw  = s.DataKey.Value(r)
			val  = funnelValue(raw)
			next float64
		)
		switch rg, isRange := RangeValue(raw); {
		case i != count-1:
			next = funnelValue(s.DataKey.Value(rows[i+1]))
		case isRange:
			val, next = rg[0], rg[1]
		case s.LastShapeType == FunnelRectangle:
			next = val
		}
		var (
			x     = (maxValue-val)*real/(2*maxValue) + off.Left + 25 + offsetX
			y     = rowSize*float64(i) + off.Top
			upper = val / maxValue * real
			lower = next / maxValue * real
			name  = nameKey.Value(r)
		)
		if name == nil {
			name = i
		}
		geo.Trapezoids = append(geo.Trapezoids, Trapezoid{
			X:          x,
			Y:          y,
			Width:      math.Max(upper, lower),
			Height:     rowSize,
			UpperWidth: upper,
			LowerWidth: lower,
			Index:      i,
			Name:       name,
			Value:      val,
			Tooltip:    NewPoint(x+upper/2, y+rowSize/2),
			LabelBox: Rect{
				X:      x + (upper-lower)/4,
				Y:      y,
				Width:  math.Abs(upper-lower)/2 + math.Min(upper, lower),
				Height: rowSize,
			},
		})
	}
	if s.Reversed {
		for i, t := range geo.Trapezoids {
			y := t.Y - float64(i)*rowSize + float64(count-1-i)*rowSize
			t.X -= (t.LowerWidth - t.UpperWidth) / 2
			t.UpperWidth, t.LowerWidth = t.LowerWidth, t.UpperWidth
			t.Y = y
			t.Tooltip.Y = y + rowSize/2
			t.LabelBox.Y = y
			geo.Trapezoids[i] = t
		}
	}
	return geo
}

// funnelValue is the value of a row: the first element of a range, 0 when
// missing.
func funnelValue(v any) float64 {
	if rg, ok := RangeValue(v); ok {
		return rg[0]
	}
	f, ok := ToNumber(v)
	if !ok {
		return 0
	}
	return f
}

package chartgeo

import (
	"math"
)

const (
	DefaultBrushHeight    = 40
	DefaultTravellerWidth = 5
)

// BrushSettings describes the brush of a cartesian chart. X and Width default
// to the plot area and EndIndex to the last row.
type BrushSettings struct {
	X              *float64
	Width          *float64
	Height         float64
	TravellerWidth float64
	Gap            int
	StartIndex     int
	EndIndex       int
}

func DefaultBrush() BrushSettings {
	return BrushSettings{
		Height:         DefaultBrushHeight,
		TravellerWidth: DefaultTravellerWidth,
		Gap:            1,
		EndIndex:       -1,
	}
}

func (b BrushSettings) height() float64 {
	if b.Height <= 0 {
		return DefaultBrushHeight
	}
	return b.Height
}

func (b BrushSettings) travellerWidth() float64 {
	if b.TravellerWidth <= 0 {
		return DefaultTravellerWidth
	}
	return b.TravellerWidth
}

func (b BrushSettings) gap() int {
	if b.Gap <= 0 {
		return 1
	}
	return b.Gap
}

// Brush is a placed brush. Values are the positions of every row along the
// brush and StartX, EndX the positions of its travellers.
type Brush struct {
	Rect
	TravellerWidth float64
	Gap            int
	Values         []float64
	StartIndex     int
	EndIndex       int
	StartX         float64
	EndX           float64
}

func (Brush) element() {}

// ComputeBrush places the brush under the plot area, above the bottom margin.
// Rows are spread evenly from the left of the brush to its right minus the
// width of a traveller.
func ComputeBrush(b BrushSettings, count int, off Offset, margin Padding) Brush {
	var (
		x = off.Left
		w = off.Width
	)
	if b.X != nil {
		x = *b.X
	}
	if b.Width != nil {
		w = *b.Width
	}
	brush := Brush{
		Rect: Rect{
			X:      x,
			Y:      off.Top + off.Height + off.BrushBottom - margin.Bottom,
			Width:  w,
			Height: b.height(),
		},
		TravellerWidth: b.travellerWidth(),
		Gap:            b.gap(),
	}
	if count <= 0 {
		return brush
	}
	domain := indexDomain(count)
	s := PointScale(domain, NewRange(x, x+w-brush.TravellerWidth))
	for _, v := range domain {
		px, _ := s.Apply(v)
		brush.Values = append(brush.Values, px)
	}
	brush.StartIndex, brush.EndIndex = clampWindow(b.StartIndex, b.EndIndex, count)
	brush.StartX = brush.Values[brush.StartIndex]
	brush.EndX = brush.Values[brush.EndIndex]
	return brush
}

func clampWindow(start, end, count int) (int, int) {
	last := count - 1
	if end < 0 || end > last {
		end = last
	}
	start = max(0, min(start, end))
	return start, end
}

// IndexInRange gives the index of the last value not after x in the sorted
// values.
func IndexInRange(values []float64, x float64) int {
	if len(values) == 0 {
		return 0
	}
	start, end := 0, len(values)-1
	for end-start > 1 {
		mid := (start + end) / 2
		if values[mid] > x {
			end = mid
		} else {
			start = mid
		}
	}
	if x >= values[end] {
		return end
	}
	return start
}

// Window gives the rows selected by travellers placed at startX and endX.
// Both ends are snapped on multiples of the gap, except the last row.
func (b Brush) Window(startX, endX float64) (int, int) {
	if len(b.Values) == 0 {
		return 0, 0
	}
	var (
		last = len(b.Values) - 1
		gap  = max(b.Gap, 1)
		lo   = IndexInRange(b.Values, math.Min(startX, endX))
		hi   = IndexInRange(b.Values, math.Max(startX, endX))
	)
	lo -= lo % gap
	if hi != last {
		hi -= hi % gap
	}
	return lo, hi
}

func (b Brush) maxX() float64 {
	return b.X + b.Width - b.TravellerWidth
}

// Slide moves both travellers by delta without leaving the brush.
func (b Brush) Slide(delta float64) Brush {
	if delta > 0 {
		delta = math.Min(delta, math.Min(b.maxX()-b.EndX, b.maxX()-b.StartX))
	} else if delta < 0 {
		delta = math.Max(delta, math.Max(b.X-b.StartX, b.X-b.EndX))
	}
	b.StartX += delta
	b.EndX += delta
	b.StartIndex, b.EndIndex = b.Window(b.StartX, b.EndX)
	return b
}

// MoveTraveller moves the start or the end traveller by delta without leaving
// the brush.
func (b Brush) MoveTraveller(start bool, delta float64) Brush {
	prev := b.EndX
	if start {
		prev = b.StartX
	}
	if delta > 0 {
		delta = math.Min(delta, b.maxX()-prev)
	} else if delta < 0 {
		delta = math.Max(delta, b.X-prev)
	}
	if start {
		b.StartX = prev + delta
	} else {
		b.EndX = prev + delta
	}
	b.StartIndex, b.EndIndex = b.Window(b.StartX, b.EndX)
	return b
}

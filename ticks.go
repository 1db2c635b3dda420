package chartgeo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/midbel/slices"
)

type intervalKind int

const (
	intervalPreserveEnd intervalKind = iota
	intervalPreserveStart
	intervalPreserveStartEnd
	intervalEquidistant
	intervalEvery
)

// Interval selects how ticks colliding with each other are dropped.
type Interval struct {
	kind intervalKind
	n    int
}

func PreserveEnd() Interval {
	return Interval{kind: intervalPreserveEnd}
}

func PreserveStart() Interval {
	return Interval{kind: intervalPreserveStart}
}

func PreserveStartEnd() Interval {
	return Interval{kind: intervalPreserveStartEnd}
}

func EquidistantPreserveStart() Interval {
	return Interval{kind: intervalEquidistant}
}

// EveryN keeps one tick out of n+1, without measuring labels.
func EveryN(n int) Interval {
	return Interval{kind: intervalEvery, n: max(n, 0)}
}

func ParseInterval(str string) (Interval, error) {
	switch strings.TrimSpace(str) {
	case "", "preserveEnd":
		return PreserveEnd(), nil
	case "preserveStart":
		return PreserveStart(), nil
	case "preserveStartEnd":
		return PreserveStartEnd(), nil
	case "equidistantPreserveStart":
		return EquidistantPreserveStart(), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil || n < 0 {
		return Interval{}, fmt.Errorf("%s: invalid tick interval", str)
	}
	return EveryN(n), nil
}

func (i Interval) String() string {
	switch i.kind {
	case intervalPreserveStart:
		return "preserveStart"
	case intervalPreserveStartEnd:
		return "preserveStartEnd"
	case intervalEquidistant:
		return "equidistantPreserveStart"
	case intervalEvery:
		return strconv.Itoa(i.n)
	default:
		return "preserveEnd"
	}
}

// Boundaries is the span available to tick labels, oriented by the
// direction of the ticks.
type Boundaries struct {
	Start float64
	End   float64
}

// TickBoundaries gives the boundaries of viewBox along the width for
// horizontal axes and along the height otherwise.
func TickBoundaries(viewBox Rect, sign float64, horizontal bool) Boundaries {
	start, size := viewBox.Y, viewBox.Height
	if horizontal {
		start, size = viewBox.X, viewBox.Width
	}
	if sign == 1 {
		return Boundaries{Start: start, End: start + size}
	}
	return Boundaries{Start: start + size, End: start}
}

// TickSizeFunc measures the label of a tick along the axis.
type TickSizeFunc func(Tick, int) float64

// IsVisible reports whether a label of the given size centered on position
// fits between start and end. Labels touching a boundary are kept.
func IsVisible(sign, position float64, size func() float64, start, end float64) bool {
	if sign*position < sign*start || sign*position > sign*end {
		return false
	}
	sz := size()
	return sign*(position-sign*sz/2-start) >= 0 && sign*(position+sign*sz/2-end) <= 0
}

// EquidistantTicks keeps every n-th tick, with n the smallest step for which
// no label overlaps the previous one. The first tick is always kept. Each
// time a tick is rejected, the walk restarts from the first tick with a
// larger step.
func EquidistantTicks(sign float64, bounds Boundaries, size TickSizeFunc, ticks []Tick, minTickGap float64) []Tick {
	var (
		index    int
		stepsize = 1
		start    = bounds.Start
	)
	for stepsize <= len(ticks) {
		if index >= len(ticks) {
			return everyNth(ticks, stepsize)
		}
		var (
			entry = ticks[index]
			ix    = index
			sz    = math.NaN()
		)
		getSize := func() float64 {
			if math.IsNaN(sz) {
				sz = size(entry, ix)
			}
			return sz
		}
		show := index == 0 || IsVisible(sign, entry.Coordinate, getSize, start, bounds.End)
		if !show {
			index = 0
			start = bounds.Start
			stepsize++
			continue
		}
		start = entry.Coordinate + sign*(getSize()/2+minTickGap)
		index += stepsize
	}
	return []Tick{}
}

func everyNth(ticks []Tick, n int) []Tick {
	if n < 1 {
		return []Tick{}
	}
	list := make([]Tick, 0, len(ticks)/n+1)
	for i := 0; i < len(ticks); i += n {
		list = append(list, ticks[i])
	}
	return list
}

func ticksStart(sign float64, bounds Boundaries, size TickSizeFunc, ticks []Tick, minTickGap float64, preserveEnd bool) []Tick {
	var (
		list       = slices.Map(ticks, func(t Tick) Tick { return t })
		show       = make([]bool, len(list))
		start, end = bounds.Start, bounds.End
		count      = len(list)
	)
	if preserveEnd && count > 0 {
		var (
			last = count - 1
			tail = list[last]
			sz   = size(tail, last)
			gap  = sign * (tail.Coordinate + sign*sz/2 - end)
		)
		tail.TickCoord = tail.Coordinate
		if gap > 0 {
			tail.TickCoord = tail.Coordinate - gap*sign
		}
		list[last] = tail
		if IsVisible(sign, tail.TickCoord, func() float64 { return sz }, start, end) {
			end = tail.TickCoord - sign*(sz/2+minTickGap)
			show[last] = true
		}
		count--
	}
	for i := 0; i < count; i++ {
		var (
			entry = list[i]
			ix    = i
			sz    = math.NaN()
		)
		getSize := func() float64 {
			if math.IsNaN(sz) {
				sz = size(entry, ix)
			}
			return sz
		}
		entry.TickCoord = entry.Coordinate
		if i == 0 {
			gap := sign * (entry.Coordinate - sign*getSize()/2 - start)
			if gap < 0 {
				entry.TickCoord = entry.Coordinate - gap*sign
			}
		}
		list[i] = entry
		if IsVisible(sign, entry.TickCoord, getSize, start, end) {
			start = entry.TickCoord + sign*(getSize()/2+minTickGap)
			show[i] = true
		}
	}
	return keepShown(list, show)
}

func ticksEnd(sign float64, bounds Boundaries, size TickSizeFunc, ticks []Tick, minTickGap float64) []Tick {
	var (
		list       = slices.Map(ticks, func(t Tick) Tick { return t })
		show       = make([]bool, len(list))
		start, end = bounds.Start, bounds.End
	)
	for i := len(list) - 1; i >= 0; i-- {
		var (
			entry = list[i]
			ix    = i
			sz    = math.NaN()
		)
		getSize := func() float64 {
			if math.IsNaN(sz) {
				sz = size(entry, ix)
			}
			return sz
		}
		entry.TickCoord = entry.Coordinate
		if i == len(list)-1 {
			gap := sign * (entry.Coordinate + sign*getSize()/2 - end)
			if gap > 0 {
				entry.TickCoord = entry.Coordinate - gap*sign
			}
		}
		list[i] = entry
		if IsVisible(sign, entry.TickCoord, getSize, start, end) {
			end = entry.TickCoord - sign*(getSize()/2+minTickGap)
			show[i] = true
		}
	}
	return keepShown(list, show)
}

func keepShown(ticks []Tick, show []bool) []Tick {
	list := make([]Tick, 0, len(ticks))
	for i := range ticks {
		if show[i] {
			list = append(list, ticks[i])
		}
	}
	return list
}

// AngledRectangleWidth is the width taken along the axis by a box rotated by
// angle degrees.
func AngledRectangleWidth(width, height, angle float64) float64 {
	if width == 0 {
		return math.Abs(height)
	}
	var (
		normalized = math.Mod(math.Mod(angle, 180)+180, 180)
		radians    = normalized * math.Pi / 180
		threshold  = math.Atan(height / width)
		res        float64
	)
	if radians > threshold && radians < math.Pi-threshold {
		res = height / math.Sin(radians)
	} else {
		res = width / math.Cos(radians)
	}
	return math.Abs(res)
}

// TickLayout describes the axis the labels of FilterTicks are drawn on.
type TickLayout struct {
	ViewBox     Rect
	Orientation Orientation
	Interval    Interval
	MinTickGap  float64
	Angle       float64
	Unit        string
	FontSize    float64
	Format      func(any) string
	Measurer    TextMeasurer
}

// FilterTicks drops the ticks whose labels would overlap according to the
// interval of the axis.
func FilterTicks(ticks []Tick, opts TickLayout) []Tick {
	if len(ticks) == 0 {
		return []Tick{}
	}
	if opts.Interval.kind == intervalEvery {
		return everyNth(ticks, opts.Interval.n+1)
	}
	if opts.Measurer == nil {
		opts.Measurer = DefaultMeasurer()
	}
	var (
		horizontal = opts.Orientation == OrientTop || opts.Orientation == OrientBottom
		unitWidth  float64
		unitHeight float64
	)
	if opts.Unit != "" && horizontal {
		unitWidth, unitHeight = opts.Measurer.Measure(opts.Unit, opts.FontSize)
	}
	size := func(t Tick, ix int) float64 {
		label := Stringify(t.Value)
		if opts.Format != nil {
			label = opts.Format(t.Value)
		}
		w, h := opts.Measurer.Measure(label, opts.FontSize)
		if !horizontal {
			return h
		}
		return AngledRectangleWidth(w+unitWidth, max(h, unitHeight), opts.Angle)
	}
	sign := 1.0
	if len(ticks) >= 2 {
		sign = MathSign(ticks[1].Coordinate - ticks[0].Coordinate)
	}
	if sign == 0 {
		sign = 1
	}
	bounds := TickBoundaries(opts.ViewBox, sign, horizontal)
	switch opts.Interval.kind {
	case intervalEquidistant:
		return EquidistantTicks(sign, bounds, size, ticks, opts.MinTickGap)
	case intervalPreserveStart, intervalPreserveStartEnd:
		return ticksStart(sign, bounds, size, ticks, opts.MinTickGap, opts.Interval.kind == intervalPreserveStartEnd)
	default:
		return ticksEnd(sign, bounds, size, ticks, opts.MinTickGap)
	}
}

package chartgeo

import (
	"fmt"
	"strings"
)

// IfOverflow tells what to do with a reference element placed outside of the
// plot area.
type IfOverflow string

const (
	OverflowDiscard      IfOverflow = "discard"
	OverflowHidden       IfOverflow = "hidden"
	OverflowVisible      IfOverflow = "visible"
	OverflowExtendDomain IfOverflow = "extendDomain"
)

func ParseIfOverflow(str string) (IfOverflow, error) {
	switch o := IfOverflow(strings.TrimSpace(str)); o {
	case "":
		return OverflowDiscard, nil
	case OverflowDiscard, OverflowHidden, OverflowVisible, OverflowExtendDomain:
		return o, nil
	default:
		return "", fmt.Errorf("%s: unknown overflow policy", str)
	}
}

type ReferenceKind string

const (
	ReferenceLine ReferenceKind = "line"
	ReferenceArea ReferenceKind = "area"
	ReferenceDot  ReferenceKind = "dot"
)

// Reference is a line, an area or a dot placed with data values. Values left
// to nil are not set: a line with only X spans the height of the plot area and
// an area without X1 starts at the beginning of the x axis.
type Reference struct {
	ID      string
	Kind    ReferenceKind
	XAxisID string
	YAxisID string

	X       any
	Y       any
	X1      any
	X2      any
	Y1      any
	Y2      any
	Segment [2][2]any
	R       float64

	IfOverflow IfOverflow
	Position   BandPosition
}

func (r Reference) overflow() IfOverflow {
	if r.IfOverflow == "" {
		return OverflowDiscard
	}
	return r.IfOverflow
}

func (r Reference) hasSegment() bool {
	return r.Segment[0][0] != nil || r.Segment[0][1] != nil || r.Segment[1][0] != nil || r.Segment[1][1] != nil
}

func (r Reference) axisID(kind AxisKind) string {
	id := r.YAxisID
	if kind == XAxis {
		id = r.XAxisID
	}
	if id == "" {
		id = DefaultAxisID
	}
	return id
}

// ReferenceExtent lists the values of the references bound to the axis that
// extend its domain.
func ReferenceExtent(refs []Reference, kind AxisKind, axisID string) []float64 {
	var list []float64
	for _, r := range refs {
		if r.overflow() != OverflowExtendDomain || r.axisID(kind) != axisID {
			continue
		}
		switch r.Kind {
		case ReferenceArea:
			v1, v2 := r.Y1, r.Y2
			if kind == XAxis {
				v1, v2 = r.X1, r.X2
			}
			f1, ok1 := ToNumber(v1)
			f2, ok2 := ToNumber(v2)
			if IsNumber(v1) && IsNumber(v2) && ok1 && ok2 {
				list = append(list, f1, f2)
			}
		default:
			v := r.Y
			if kind == XAxis {
				v = r.X
			}
			if f, ok := ToNumber(v); ok && IsNumber(v) {
				list = append(list, f)
			}
		}
	}
	return list
}

type ReferenceGeometry struct {
	ID   string
	Kind ReferenceKind
	// Clip is set when the element has to be clipped to the plot area.
	Clip   bool
	Line   [2]Point
	Rect   Rect
	Center Point
	R      float64
}

func (ReferenceGeometry) element() {}

// ReferenceLineEnds gives the ends of a reference line. A line fixed on y
// spans the width of the view box, one fixed on x its height. ok is false when
// nothing is set or when the line is discarded for being out of range.
func ReferenceLineEnds(ref Reference, xAxis, yAxis *Axis, viewBox Rect) ([2]Point, bool) {
	var (
		res      [2]Point
		position = ref.Position
		discard  = ref.overflow() == OverflowDiscard
	)
	if position == PositionNone {
		position = PositionMiddle
	}
	if xAxis == nil || yAxis == nil {
		return res, false
	}
	var (
		xs = xAxis.Labeled()
		ys = yAxis.Labeled()
	)
	switch {
	case IsNumOrStr(ref.Y):
		c, ok := ys.ApplyAt(ref.Y, position, false)
		if !ok || (discard && !ys.InRange(c)) {
			return res, false
		}
		res = [2]Point{NewPoint(viewBox.X+viewBox.Width, c), NewPoint(viewBox.X, c)}
		if yAxis.Orientation == OrientLeft {
			res[0], res[1] = res[1], res[0]
		}
		return res, true
	case IsNumOrStr(ref.X):
		c, ok := xs.ApplyAt(ref.X, position, false)
		if !ok || (discard && !xs.InRange(c)) {
			return res, false
		}
		res = [2]Point{NewPoint(c, viewBox.Y+viewBox.Height), NewPoint(c, viewBox.Y)}
		if xAxis.Orientation == OrientTop {
			res[0], res[1] = res[1], res[0]
		}
		return res, true
	case ref.hasSegment():
		for i, p := range ref.Segment {
			x, okx := xs.ApplyAt(p[0], position, false)
			y, oky := ys.ApplyAt(p[1], position, false)
			if !okx || !oky {
				return res, false
			}
			if discard && (!xs.InRange(x) || !ys.InRange(y)) {
				return res, false
			}
			res[i] = NewPoint(x, y)
		}
		return res, true
	default:
		return res, false
	}
}

// ReferenceAreaRect gives the rectangle of a reference area. Unset ends are
// replaced by the ends of the range of their axis.
func ReferenceAreaRect(ref Reference, xAxis, yAxis *Axis) (Rect, bool) {
	if xAxis == nil || yAxis == nil {
		return Rect{}, false
	}
	var (
		xs     = xAxis.Labeled()
		ys     = yAxis.Labeled()
		p1, p2 Point
	)
	resolve := func(s LabeledScale, v any, pos BandPosition, def float64) (float64, bool) {
		if !IsNumOrStr(v) {
			return def, true
		}
		return s.ApplyAt(v, pos, false)
	}
	var ok1, ok2, ok3, ok4 bool
	p1.X, ok1 = resolve(xs, ref.X1, PositionStart, xs.RangeMin())
	p1.Y, ok2 = resolve(ys, ref.Y1, PositionStart, ys.RangeMin())
	p2.X, ok3 = resolve(xs, ref.X2, PositionEnd, xs.RangeMax())
	p2.Y, ok4 = resolve(ys, ref.Y2, PositionEnd, ys.RangeMax())
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Rect{}, false
	}
	if ref.overflow() == OverflowDiscard {
		if !xs.InRange(p1.X) || !ys.InRange(p1.Y) || !xs.InRange(p2.X) || !ys.InRange(p2.Y) {
			return Rect{}, false
		}
	}
	return RectFromPoints(p1, p2), true
}

// ReferenceDotCenter gives the center of a reference dot, in the middle of its
// band on category axes.
func ReferenceDotCenter(ref Reference, xAxis, yAxis *Axis) (Point, bool) {
	if xAxis == nil || yAxis == nil || !IsNumOrStr(ref.X) || !IsNumOrStr(ref.Y) {
		return Point{}, false
	}
	var (
		xs = xAxis.Labeled()
		ys = yAxis.Labeled()
	)
	x, okx := xs.ApplyAt(ref.X, PositionNone, true)
	y, oky := ys.ApplyAt(ref.Y, PositionNone, true)
	if !okx || !oky {
		return Point{}, false
	}
	if ref.overflow() == OverflowDiscard && (!xs.InRange(x) || !ys.InRange(y)) {
		return Point{}, false
	}
	return NewPoint(x, y), true
}

// ComputeReference places a reference element. ok is false when the element
// is not drawn.
func ComputeReference(ref Reference, xAxis, yAxis *Axis, viewBox Rect) (ReferenceGeometry, bool) {
	geo := ReferenceGeometry{
		ID:   ref.ID,
		Kind: ref.Kind,
		Clip: ref.overflow() == OverflowHidden,
	}
	var ok bool
	switch ref.Kind {
	case ReferenceArea:
		geo.Rect, ok = ReferenceAreaRect(ref, xAxis, yAxis)
	case ReferenceDot:
		geo.Center, ok = ReferenceDotCenter(ref, xAxis, yAxis)
		geo.R = ref.R
		if geo.R == 0 {
			geo.R = 10
		}
	default:
		geo.Line, ok = ReferenceLineEnds(ref, xAxis, yAxis, viewBox)
	}
	return geo, ok
}

// RectFromPoints gives the rectangle having p1 and p2 as opposite corners.
func RectFromPoints(p1, p2 Point) Rect {
	return Rect{
		X:      min(p1.X, p2.X),
		Y:      min(p1.Y, p2.Y),
		Width:  max(p1.X, p2.X) - min(p1.X, p2.X),
		Height: max(p1.Y, p2.Y) - min(p1.Y, p2.Y),
	}
}

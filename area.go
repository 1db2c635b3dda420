package chartgeo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type baseValueKind int

const (
	baseAuto baseValueKind = iota
	baseNumber
	baseDataMin
	baseDataMax
)

// BaseValue is the value an area is filled down to.
type BaseValue struct {
	kind  baseValueKind
	value float64
}

func BaseAuto() BaseValue {
	return BaseValue{}
}

func BaseNumber(v float64) BaseValue {
	return BaseValue{kind: baseNumber, value: v}
}

func BaseDataMin() BaseValue {
	return BaseValue{kind: baseDataMin}
}

func BaseDataMax() BaseValue {
	return BaseValue{kind: baseDataMax}
}

func ParseBaseValue(str string) (BaseValue, error) {
	switch str = strings.TrimSpace(str); str {
	case "", "auto":
		return BaseAuto(), nil
	case "dataMin":
		return BaseDataMin(), nil
	case "dataMax":
		return BaseDataMax(), nil
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return BaseValue{}, fmt.Errorf("%s: invalid base value", str)
	}
	return BaseNumber(v), nil
}

func (b BaseValue) IsAuto() bool {
	return b.kind == baseAuto
}

// ResolveBaseValue gives the value an area is filled down to on its numeric
// axis. By default, it is the top of a negative domain and the value of the
// domain closest to 0 otherwise. On category axes, it is a category.
func ResolveBaseValue(base BaseValue, axis *Axis) any {
	if base.kind == baseNumber {
		return base.value
	}
	if axis == nil || axis.Scale == nil {
		return 0.0
	}
	domain := axis.Scale.Domain()
	if len(domain) == 0 {
		return 0.0
	}
	if axis.Type == AxisNumber {
		lo, hi := numberEnds(domain)
		return numericBaseValue(base, [2]float64{lo, hi})
	}
	switch base.kind {
	case baseDataMax:
		return domain[len(domain)-1]
	default:
		return domain[0]
	}
}

func numericBaseValue(base BaseValue, domain [2]float64) float64 {
	var (
		lo = math.Min(domain[0], domain[1])
		hi = math.Max(domain[0], domain[1])
	)
	switch base.kind {
	case baseNumber:
		return base.value
	case baseDataMin:
		return lo
	case baseDataMax:
		return hi
	}
	if hi < 0 {
		return hi
	}
	return math.Max(lo, 0)
}

// AreaGeometry is an area ready to be drawn. BaseLine is per point when the
// area is stacked or made of ranges.
type AreaGeometry struct {
	ID       string
	Name     string
	Color    string
	Layout   Layout
	Curve    CurveType
	Points   []LinePoint
	BaseLine BaseLine
	IsRange  bool
	// Path is the filled area, Line its upper edge.
	Path   string
	Line   string
	Errors []ErrorBar
}

func (AreaGeometry) element() {}

// ComputeArea places the points of an area and its base line. Rows without
// value are break points. When the area is stacked and nulls are not
// connected, a row whose own value is missing is a break point too.
func ComputeArea(in SeriesInput, s *AreaSeries) AreaGeometry {
	var (
		cate, ticks = in.Axes.Category()
		num         = in.Axes.Numeric()
		base        = ResolveBaseValue(s.BaseValue, num)
		points      = make([]LinePoint, 0, len(in.Rows))
		values      = make([][2]any, 0, len(in.Rows))
		isRange     bool
	)
	for i, r := range in.Rows {
		var (
			raw   = s.DataKey.Value(r)
			value [2]any
		)
		if st, ok := in.stacked(i); ok {
			value = [2]any{st[0], st[1]}
		} else if rg, ok := RangeValue(raw); ok {
			value = [2]any{rg[0], rg[1]}
			isRange = true
		} else {
			value = [2]any{base, raw}
		}
		values = append(values, value)
		var (
			brk    = value[1] == nil || (in.Stacked != nil && !s.ConnectNulls && raw == nil)
			c, okc = CateCoordinateOfLine(cate, ticks, in.BandSize, r, i, DataKey{})
			v      = math.NaN()
		)
		if !okc {
			c = math.NaN()
		}
		if !brk {
			if px, ok := scaleValue(num, value[1]); ok {
				v = px
			}
		}
		pt := LinePoint{Index: i, Value: raw, Point: NewPoint(c, v)}
		if in.Axes.Layout == LayoutVertical {
			pt.Point = pt.Point.Reverse()
		}
		points = append(points, pt)
	}
	geo := AreaGeometry{
		ID:      s.ID,
		Name:    s.Name,
		Color:   s.Color,
		Layout:  in.Axes.Layout,
		Curve:   s.Curve,
		Points:  points,
		IsRange: isRange,
	}
	if in.Stacked != nil || isRange {
		baseline := make([]Point, len(points))
		for i, pt := range points {
			b := math.NaN()
			if in.Axes.Layout == LayoutVertical {
				if px, ok := scaleValue(num, values[i][0]); ok {
					b = px
				}
				baseline[i] = NewPoint(b, pt.Y)
				continue
			}
			if !math.IsNaN(pt.Y) {
				if px, ok := scaleValue(num, values[i][0]); ok {
					b = px
				}
			}
			baseline[i] = NewPoint(pt.X, b)
		}
		geo.BaseLine = PointsBaseLine(baseline)
	} else {
		px, _ := scaleValue(num, base)
		geo.BaseLine = ConstBaseLine(px)
	}
	opts := PathOptions{
		Type:         s.Curve,
		Points:       pointsOf(points),
		Layout:       in.Axes.Layout,
		ConnectNulls: s.ConnectNulls,
	}
	geo.Line, _ = Path(opts)
	opts.BaseLine = geo.BaseLine
	geo.Path, _ = Path(opts)
	return geo
}

package chartgeo

import (
	"math"
)

// ErrorBar is the three segments drawn around a point: the two whiskers and
// the line joining them.
type ErrorBar struct {
	Index     int
	Direction ErrorDirection
	Segments  [3][2]Point
}

// ErrorPoint is a point an error bar is drawn around.
type ErrorPoint struct {
	Point
	Index int
	Value float64
	Row   Row
}

// ErrorBounds reads the error of a row: one value for a symmetric error or a
// pair for the low and high errors.
func ErrorBounds(v any) (float64, float64, bool) {
	if rg, ok := RangeValue(v); ok {
		return rg[0], rg[1], true
	}
	f, ok := ToNumber(v)
	if !ok || f == 0 {
		return 0, 0, false
	}
	return f, f, true
}

// ComputeErrorBars draws the error bars of points. offset moves the bars
// along the category axis, typically to the middle of a bar.
func ComputeErrorBars(points []ErrorPoint, e ErrorBarSettings, layout Layout, axis *Axis, offset float64) []ErrorBar {
	var (
		dir   = e.direction(layout)
		width = e.Width
		list  []ErrorBar
	)
	if width == 0 {
		width = 5
	}
	for _, p := range points {
		lo, hi, ok := ErrorBounds(e.DataKey.Value(p.Row))
		if !ok || !p.Defined() || math.IsNaN(p.Value) {
			continue
		}
		v0, ok0 := scaleValue(axis, p.Value-lo)
		v1, ok1 := scaleValue(axis, p.Value+hi)
		if !ok0 || !ok1 {
			continue
		}
		bar := ErrorBar{
			Index:     p.Index,
			Direction: dir,
		}
		if dir == ErrorX {
			var (
				mid  = p.Y + offset
				ymin = mid + width
				ymax = mid - width
			)
			bar.Segments = [3][2]Point{
				{NewPoint(v1, ymin), NewPoint(v1, ymax)},
				{NewPoint(v0, mid), NewPoint(v1, mid)},
				{NewPoint(v0, ymax), NewPoint(v0, ymin)},
			}
		} else {
			var (
				mid  = p.X + offset
				xmin = mid - width
				xmax = mid + width
			)
			bar.Segments = [3][2]Point{
				{NewPoint(xmin, v1), NewPoint(xmax, v1)},
				{NewPoint(mid, v0), NewPoint(mid, v1)},
				{NewPoint(xmin, v0), NewPoint(xmax, v0)},
			}
		}
		list = append(list, bar)
	}
	return list
}

// ErrorDomain extends the extent of the values under key with the errors
// read from each error key.
func ErrorDomain(rows []Row, key DataKey, errors []DataKey) ([2]float64, bool) {
	res := [2]float64{math.Inf(1), math.Inf(-1)}
	if len(errors) == 0 {
		return res, false
	}
	for _, r := range rows {
		raw := key.Value(r)
		if raw == nil {
			continue
		}
		var main [2]float64
		if rg, ok := RangeValue(raw); ok {
			main = [2]float64{math.Min(rg[0], rg[1]), math.Max(rg[0], rg[1])}
		} else if f, ok := ToNumber(raw); ok {
			main = [2]float64{f, f}
		} else {
			continue
		}
		for _, k := range errors {
			var lo, hi float64
			if rg, ok := RangeValue(k.Value(r)); ok {
				lo, hi = rg[0], rg[1]
			} else {
				lo = k.Number(r, 0)
				hi = lo
			}
			res[0] = math.Min(res[0], main[0]-math.Abs(lo))
			res[1] = math.Max(res[1], main[1]+math.Abs(hi))
		}
	}
	return res, res[0] <= res[1]
}

// errorPointsOfLine gives the points of a line as error points, with x or y
// as value depending on the layout.
func errorPointsOfLine(points []LinePoint, rows []Row) []ErrorPoint {
	list := make([]ErrorPoint, 0, len(points))
	for _, p := range points {
		v, ok := ToNumber(p.Value)
		if !ok || p.Index >= len(rows) {
			continue
		}
		list = append(list, ErrorPoint{
			Point: p.Point,
			Index: p.Index,
			Value: v,
			Row:   rows[p.Index],
		})
	}
	return list
}

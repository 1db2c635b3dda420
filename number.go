package chartgeo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const epsilon = 1e-4

// MathSign returns 0, 1 or -1. NaN is treated as negative.
func MathSign(v float64) float64 {
	if v == 0 {
		return 0
	}
	if v > 0 {
		return 1
	}
	return -1
}

func IsWellBehavedNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsNumber reports whether v holds a numeric kind that is not NaN.
func IsNumber(v any) bool {
	switch x := v.(type) {
	case float64:
		return !math.IsNaN(x)
	case float32:
		return !math.IsNaN(float64(x))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

func IsPercent(v any) bool {
	str, ok := v.(string)
	if !ok || !strings.HasSuffix(str, "%") {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(str[:len(str)-1]), 64)
	return err == nil
}

func IsNumOrStr(v any) bool {
	if _, ok := v.(string); ok {
		return true
	}
	return IsNumber(v)
}

// ToNumber coerces a datum into a float64. Strings are parsed, time values
// are expressed in Unix milliseconds.
func ToNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return float64(x), !math.IsNaN(float64(x))
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	case time.Time:
		if x.IsZero() {
			return 0, false
		}
		return float64(x.UnixMilli()), true
	default:
		return 0, false
	}
}

// GetPercentValue resolves v against total. Percent strings are a fraction of
// total, numbers are used as is and everything else gives def. With validate,
// a value larger than total is clamped to total.
func GetPercentValue(v any, total, def float64, validate bool) float64 {
	if !IsNumber(v) {
		if _, ok := v.(string); !ok {
			return def
		}
	}
	var value float64
	if IsPercent(v) {
		str := v.(string)
		pct, _ := strconv.ParseFloat(strings.TrimSpace(str[:len(str)-1]), 64)
		value = total * pct / 100
	} else {
		f, ok := ToNumber(v)
		if !ok {
			return def
		}
		value = f
	}
	if math.IsNaN(value) {
		return def
	}
	if validate && value > total {
		value = total
	}
	return value
}

// Length is either an absolute pixel value or a percentage of some total.
type Length struct {
	value   float64
	percent bool
	set     bool
}

func Px(v float64) Length {
	return Length{value: v, set: true}
}

func Percent(v float64) Length {
	return Length{value: v, percent: true, set: true}
}

// ParseLength accepts "12", "12.5" and "40%". The empty string gives an unset
// length.
func ParseLength(str string) (Length, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return Length{}, nil
	}
	if strings.HasSuffix(str, "%") {
		v, err := strconv.ParseFloat(strings.TrimSpace(str[:len(str)-1]), 64)
		if err != nil {
			return Length{}, fmt.Errorf("%s: invalid percent length", str)
		}
		return Percent(v), nil
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return Length{}, fmt.Errorf("%s: invalid length", str)
	}
	return Px(v), nil
}

func (l Length) IsSet() bool {
	return l.set
}

func (l Length) Resolve(total, def float64, validate bool) float64 {
	if !l.set {
		return def
	}
	v := l.value
	if l.percent {
		v = total * l.value / 100
	}
	if validate && v > total {
		v = total
	}
	return v
}

func (l Length) String() string {
	if !l.set {
		return ""
	}
	str := strconv.FormatFloat(l.value, 'f', -1, 64)
	if l.percent {
		str += "%"
	}
	return str
}

func InterpolateNumber(a, b float64) func(float64) float64 {
	return func(t float64) float64 {
		return a + t*(b-a)
	}
}

// Stringify gives the text a value is compared with when charts synchronize
// on values.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	if f, ok := ToNumber(v); ok {
		return formatNumber(f)
	}
	return fmt.Sprint(v)
}

// formatNumber writes f in exponent form from 1e21 and below 1e-6, with an
// exponent never padded with zeros.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); !IsWellBehavedNumber(f) || (abs < 1e21 && abs >= 1e-6) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	str := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(str, "e")
	return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// categoryKey identifies a category independently of the numeric kind used
// to store it.
func categoryKey(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return "s:" + x
	case time.Time:
		return "t:" + strconv.FormatInt(x.UnixMilli(), 10)
	}
	if f, ok := ToNumber(v); ok {
		return "n:" + formatNumber(f)
	}
	return fmt.Sprintf("%T:%v", v, v)
}

var idCounter atomic.Int64

func UniqueID(prefix string) string {
	return prefix + strconv.FormatInt(idCounter.Add(1), 10)
}

// Regression holds the least squares fit y = A*x + B of a set of points.
type Regression struct {
	XMin float64
	XMax float64
	A    float64
	B    float64
}

func LinearRegression(points []Point) Regression {
	var (
		n                       = float64(len(points))
		xsum, ysum, xysum, xxsu float64
		reg                     = Regression{
			XMin: math.Inf(1),
			XMax: math.Inf(-1),
		}
	)
	if len(points) == 0 {
		return Regression{}
	}
	for _, p := range points {
		x, y := p.X, p.Y
		if !IsWellBehavedNumber(x) {
			x = 0
		}
		if !IsWellBehavedNumber(y) {
			y = 0
		}
		xsum += x
		ysum += y
		xysum += x * y
		xxsu += x * x
		reg.XMin = math.Min(reg.XMin, x)
		reg.XMax = math.Max(reg.XMax, x)
	}
	if n*xxsu != xsum*xsum {
		reg.A = (n*xysum - xsum*ysum) / (n*xxsu - xsum*xsum)
	}
	reg.B = (ysum - reg.A*xsum) / n
	return reg
}

func (r Regression) At(x float64) float64 {
	return r.A*x + r.B
}

func sortFloats(list []float64) []float64 {
	sort.Float64s(list)
	return list
}

func clampValue(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(v, hi))
}

package chartgeo

import (
	"math"

	"github.com/midbel/slices"
	"github.com/shopspring/decimal"
)

const maxCorrection = 64

// NiceTickValues computes count ticks covering [min, max] with a step made of
// round decimal numbers. The domain may be reversed, the ticks follow its
// direction.
func NiceTickValues(domain [2]float64, count int, allowDecimals bool) []float64 {
	var (
		size     = max(count, 2)
		lo, hi   = validInterval(domain)
		reversed = domain[0] > domain[1]
	)
	if math.IsInf(lo, -1) || math.IsInf(hi, 1) {
		values := make([]float64, 0, count)
		if math.IsInf(hi, 1) {
			values = append(values, lo)
			for i := 0; i < count-1; i++ {
				values = append(values, math.Inf(1))
			}
		} else {
			for i := 0; i < count-1; i++ {
				values = append(values, math.Inf(-1))
			}
			values = append(values, hi)
		}
		if reversed {
			return slices.Reverse(values)
		}
		return values
	}
	if lo == hi {
		return tickOfSingleValue(lo, count, allowDecimals)
	}
	step, tickMin, tickMax := calculateStep(lo, hi, size, allowDecimals, 0)
	values := rangeStep(tickMin, tickMax.Add(decimal.NewFromFloat(0.1).Mul(step)), step)
	if reversed {
		return slices.Reverse(values)
	}
	return values
}

// TickValuesFixedDomain computes ticks with a nice step while keeping both
// ends of the domain.
func TickValuesFixedDomain(domain [2]float64, count int, allowDecimals bool) []float64 {
	lo, hi := validInterval(domain)
	if math.IsInf(lo, -1) || math.IsInf(hi, 1) {
		return []float64{domain[0], domain[1]}
	}
	if lo == hi {
		return []float64{lo}
	}
	var (
		size  = max(count, 2)
		dlo   = decimal.NewFromFloat(lo)
		dhi   = decimal.NewFromFloat(hi)
		rough = dhi.Sub(dlo).Div(decimal.NewFromInt(int64(size - 1)))
		step  = formatStep(rough, allowDecimals, 0)
	)
	if step.Sign() <= 0 {
		return []float64{domain[0], domain[1]}
	}
	values := rangeStep(dlo, dhi.Sub(decimal.NewFromFloat(0.99).Mul(step)), step)
	values = append(values, hi)
	if domain[0] > domain[1] {
		return slices.Reverse(values)
	}
	return values
}

func validInterval(domain [2]float64) (float64, float64) {
	lo, hi := domain[0], domain[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// digitCount is the number of digits in the integer part of v, or minus the
// number of zeros right after the decimal point when |v| < 1.
func digitCount(v decimal.Decimal) int {
	if v.IsZero() {
		return 1
	}
	return v.NumDigits() + int(v.Exponent())
}

func formatStep(rough decimal.Decimal, allowDecimals bool, correction int) decimal.Decimal {
	if rough.Sign() <= 0 {
		return decimal.Zero
	}
	var (
		digits = digitCount(rough)
		unit   = decimal.New(1, int32(digits))
		ratio  = rough.Div(unit)
		scale  = decimal.NewFromFloat(0.05)
	)
	if digits == 1 {
		scale = decimal.NewFromFloat(0.1)
	}
	amend := ratio.Div(scale).Ceil().Add(decimal.NewFromInt(int64(correction))).Mul(scale)
	step := amend.Mul(unit)
	if allowDecimals {
		return step
	}
	return step.Ceil()
}

func calculateStep(lo, hi float64, count int, allowDecimals bool, correction int) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	if !IsWellBehavedNumber((hi - lo) / float64(count-1)) {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}
	var (
		dlo    = decimal.NewFromFloat(lo)
		dhi    = decimal.NewFromFloat(hi)
		rough  = dhi.Sub(dlo).Div(decimal.NewFromInt(int64(count - 1)))
		step   = formatStep(rough, allowDecimals, correction)
		middle decimal.Decimal
	)
	if step.IsZero() {
		return decimal.Zero, dlo, dhi
	}
	if lo > 0 || hi < 0 {
		middle = dlo.Add(dhi).Div(decimal.NewFromInt(2))
		middle = middle.Sub(middle.Mod(step))
	}
	var (
		below = int(middle.Sub(dlo).Div(step).Ceil().IntPart())
		above = int(dhi.Sub(middle).Div(step).Ceil().IntPart())
		total = below + above + 1
	)
	if total > count && correction < maxCorrection {
		return calculateStep(lo, hi, count, allowDecimals, correction+1)
	}
	if total < count {
		if hi > 0 {
			above += count - total
		} else {
			below += count - total
		}
	}
	tickMin := middle.Sub(decimal.NewFromInt(int64(below)).Mul(step))
	tickMax := middle.Add(decimal.NewFromInt(int64(above)).Mul(step))
	return step, tickMin, tickMax
}

func tickOfSingleValue(value float64, count int, allowDecimals bool) []float64 {
	var (
		step   = decimal.NewFromInt(1)
		middle = decimal.NewFromFloat(value)
	)
	switch {
	case !middle.IsInteger() && allowDecimals:
		abs := math.Abs(value)
		if abs < 1 {
			step = decimal.New(1, int32(digitCount(middle)-1))
			middle = middle.Div(step).Floor().Mul(step)
		} else if abs > 1 {
			middle = middle.Floor()
		}
	case value == 0:
		middle = decimal.NewFromInt(int64((count - 1) / 2))
	case !allowDecimals:
		middle = middle.Floor()
	}
	var (
		index  = (count - 1) / 2
		values = make([]float64, 0, max(count, 0))
	)
	for i := 0; i < count; i++ {
		v := middle.Add(decimal.NewFromInt(int64(i - index)).Mul(step))
		values = append(values, v.InexactFloat64())
	}
	return values
}

func rangeStep(start, end, step decimal.Decimal) []float64 {
	var values []float64
	if step.Sign() <= 0 {
		return values
	}
	for i, n := 0, start; n.LessThan(end) && i < 100000; i++ {
		values = append(values, n.InexactFloat64())
		n = n.Add(step)
	}
	return values
}

package chartgeo

import (
	"fmt"
	"math"
	"strings"
)

// DefaultSymbolSize is the area of the symbols of a scatter without z axis.
const DefaultSymbolSize = 64

type SymbolKind string

const (
	SymbolCircle   SymbolKind = "circle"
	SymbolCross    SymbolKind = "cross"
	SymbolDiamond  SymbolKind = "diamond"
	SymbolSquare   SymbolKind = "square"
	SymbolStar     SymbolKind = "star"
	SymbolTriangle SymbolKind = "triangle"
	SymbolWye      SymbolKind = "wye"
)

func ParseSymbolKind(str string) (SymbolKind, error) {
	switch k := SymbolKind(strings.ToLower(strings.TrimSpace(str))); k {
	case "":
		return SymbolCircle, nil
	case SymbolCircle, SymbolCross, SymbolDiamond, SymbolSquare, SymbolStar, SymbolTriangle, SymbolWye:
		return k, nil
	default:
		return "", fmt.Errorf("%s: unknown symbol", str)
	}
}

// SymbolAreaSize converts the diameter of a symbol into the area SymbolPath
// expects.
func SymbolAreaSize(kind SymbolKind, diameter float64) float64 {
	sq := diameter * diameter
	switch kind {
	case SymbolCross:
		return 5 * sq / 9
	case SymbolDiamond:
		return 0.5 * sq / math.Sqrt(3)
	case SymbolSquare:
		return sq
	case SymbolStar:
		angle := 18 * math.Pi / 180
		return 1.25 * sq * (math.Tan(angle) - math.Tan(angle*2)*math.Pow(math.Tan(angle), 2))
	case SymbolTriangle:
		return math.Sqrt(3) * sq / 4
	case SymbolWye:
		return (21 - 10*math.Sqrt(3)) * sq / 8
	default:
		return math.Pi * sq / 4
	}
}

// SymbolPath draws a symbol of the given area centered on the origin.
func SymbolPath(kind SymbolKind, size float64) string {
	var ctx pathContext
	size = max(size, 0)
	switch kind {
	case SymbolCross:
		r := math.Sqrt(size/5) / 2
		ctx.moveTo(-3*r, -r)
		for _, p := range [][2]float64{
			{-r, -r}, {-r, -3 * r}, {r, -3 * r}, {r, -r}, {3 * r, -r},
			{3 * r, r}, {r, r}, {r, 3 * r}, {-r, 3 * r}, {-r, r}, {-3 * r, r},
		} {
			ctx.lineTo(p[0], p[1])
		}
	case SymbolDiamond:
		var (
			tan30 = math.Sqrt(1.0 / 3)
			y     = math.Sqrt(size / (tan30 * 2))
			x     = y * tan30
		)
		ctx.moveTo(0, -y)
		ctx.lineTo(x, 0)
		ctx.lineTo(0, y)
		ctx.lineTo(-x, 0)
	case SymbolSquare:
		var (
			w = math.Sqrt(size)
			x = -w / 2
		)
		ctx.moveTo(x, x)
		ctx.lineTo(x+w, x)
		ctx.lineTo(x+w, x+w)
		ctx.lineTo(x, x+w)
	case SymbolStar:
		var (
			ka = 0.89081309152928522810
			kr = math.Sin(math.Pi/10) / math.Sin(7*math.Pi/10)
			kx = math.Sin(2*math.Pi/10) * kr
			ky = -math.Cos(2*math.Pi/10) * kr
			r  = math.Sqrt(size * ka)
			x  = kx * r
			y  = ky * r
		)
		ctx.moveTo(0, -r)
		ctx.lineTo(x, y)
		for i := 1; i < 5; i++ {
			var (
				a = 2 * math.Pi * float64(i) / 5
				c = math.Cos(a)
				s = math.Sin(a)
			)
			ctx.lineTo(s*r, -c*r)
			ctx.lineTo(c*x-s*y, s*x+c*y)
		}
	case SymbolTriangle:
		var (
			sqrt3 = math.Sqrt(3)
			y     = -math.Sqrt(size / (sqrt3 * 3))
		)
		ctx.moveTo(0, y*2)
		ctx.lineTo(-sqrt3*y, -y)
		ctx.lineTo(sqrt3*y, -y)
	case SymbolWye:
		var (
			c      = -0.5
			s      = math.Sqrt(3) / 2
			k      = 1 / math.Sqrt(12)
			a      = (k/2 + 1) * 3
			r      = math.Sqrt(size / a)
			x0, y0 = r / 2, r * k
			x1, y1 = x0, r*k + r
			x2, y2 = -x1, y1
		)
		ctx.moveTo(x0, y0)
		ctx.lineTo(x1, y1)
		ctx.lineTo(x2, y2)
		ctx.lineTo(c*x0-s*y0, s*x0+c*y0)
		ctx.lineTo(c*x1-s*y1, s*x1+c*y1)
		ctx.lineTo(c*x2-s*y2, s*x2+c*y2)
		ctx.lineTo(c*x0+s*y0, c*y0-s*x0)
		ctx.lineTo(c*x1+s*y1, c*y1-s*x1)
		ctx.lineTo(c*x2+s*y2, c*y2-s*x2)
	default:
		r := math.Sqrt(size / math.Pi)
		ctx.moveTo(r, 0)
		ctx.arcTo(r, true, true, -r, 0)
		ctx.arcTo(r, true, true, r, 0)
	}
	ctx.closePath()
	return ctx.String()
}

package chartgeo

import (
	"math"
)

// Point is a resolved pixel coordinate. A NaN component marks a point that
// can not be placed.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func UndefinedPoint() Point {
	return Point{
		X: math.NaN(),
		Y: math.NaN(),
	}
}

func (p Point) Defined() bool {
	return IsWellBehavedNumber(p.X) && IsWellBehavedNumber(p.Y)
}

func (p Point) Reverse() Point {
	return Point{
		X: p.Y,
		Y: p.X,
	}
}

func (p Point) Add(x, y float64) Point {
	return Point{
		X: p.X + x,
		Y: p.Y + y,
	}
}

// Rect is the box of a bar, a background or a reference area.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Contains(p Point) bool {
	x0, x1 := r.X, r.X+r.Width
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := r.Y, r.Y+r.Height
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return p.X >= x0 && p.X <= x1 && p.Y >= y0 && p.Y <= y1
}

func (r Rect) Center() Point {
	return NewPoint(r.X+r.Width/2, r.Y+r.Height/2)
}

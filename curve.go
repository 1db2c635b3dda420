package chartgeo

import (
	"fmt"
	"math"
	"strings"
)

type CurveType string

const (
	CurveLinear       CurveType = "linear"
	CurveLinearClosed CurveType = "linearClosed"
	CurveBasis        CurveType = "basis"
	CurveBasisClosed  CurveType = "basisClosed"
	CurveBasisOpen    CurveType = "basisOpen"
	CurveBump         CurveType = "bump"
	CurveBumpX        CurveType = "bumpX"
	CurveBumpY        CurveType = "bumpY"
	CurveNatural      CurveType = "natural"
	CurveMonotone     CurveType = "monotone"
	CurveMonotoneX    CurveType = "monotoneX"
	CurveMonotoneY    CurveType = "monotoneY"
	CurveStep         CurveType = "step"
	CurveStepBefore   CurveType = "stepBefore"
	CurveStepAfter    CurveType = "stepAfter"
)

func ParseCurveType(str string) (CurveType, error) {
	switch c := CurveType(strings.TrimSpace(str)); c {
	case "":
		return CurveLinear, nil
	case CurveLinear, CurveLinearClosed, CurveBasis, CurveBasisClosed, CurveBasisOpen,
		CurveBump, CurveBumpX, CurveBumpY, CurveNatural, CurveMonotone, CurveMonotoneX,
		CurveMonotoneY, CurveStep, CurveStepBefore, CurveStepAfter:
		return c, nil
	default:
		return "", fmt.Errorf("%s: %w", str, ErrUnknownCurve)
	}
}

// curve receives the points of the segments of a line or an area.
type curve interface {
	areaStart()
	areaEnd()
	lineStart()
	lineEnd()
	point(x, y float64)
}

type curveContext interface {
	moveTo(x, y float64)
	lineTo(x, y float64)
	bezierCurveTo(x1, y1, x2, y2, x, y float64)
	closePath()
}

// newCurve gives the interpolator of a curve type. Monotone and bump curves
// follow the y axis in vertical layouts and the x axis otherwise.
func newCurve(kind CurveType, layout Layout, ctx curveContext) curve {
	switch kind {
	case CurveMonotone:
		kind = CurveMonotoneX
		if layout == LayoutVertical {
			kind = CurveMonotoneY
		}
	case CurveBump:
		kind = CurveBumpX
		if layout == LayoutVertical {
			kind = CurveBumpY
		}
	}
	switch kind {
	case CurveLinearClosed:
		return &linearClosedCurve{ctx: ctx}
	case CurveBasis:
		return &basisCurve{ctx: ctx, line: math.NaN()}
	case CurveBasisClosed:
		return &basisClosedCurve{ctx: ctx}
	case CurveBasisOpen:
		return &basisOpenCurve{ctx: ctx, line: math.NaN()}
	case CurveBumpX:
		return &bumpCurve{ctx: ctx, line: math.NaN(), horizontal: true}
	case CurveBumpY:
		return &bumpCurve{ctx: ctx, line: math.NaN()}
	case CurveNatural:
		return &naturalCurve{ctx: ctx, line: math.NaN()}
	case CurveMonotoneX:
		return &monotoneCurve{ctx: ctx, line: math.NaN()}
	case CurveMonotoneY:
		return &monotoneCurve{ctx: reflectContext{ctx}, line: math.NaN(), reflect: true}
	case CurveStep:
		return &stepCurve{ctx: ctx, line: math.NaN(), t: 0.5}
	case CurveStepBefore:
		return &stepCurve{ctx: ctx, line: math.NaN(), t: 0}
	case CurveStepAfter:
		return &stepCurve{ctx: ctx, line: math.NaN(), t: 1}
	default:
		return &linearCurve{ctx: ctx, line: math.NaN()}
	}
}

// truthy mimics how the line state of the interpolators is tested: NaN when
// drawing a line, 0 or 1 when drawing the top or the bottom of an area.
func truthy(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

func shouldClose(line float64, last bool) bool {
	return truthy(line) || (line != 0 && last)
}

func startOrLine(ctx curveContext, line, x, y float64) {
	if truthy(line) {
		ctx.lineTo(x, y)
	} else {
		ctx.moveTo(x, y)
	}
}

type linearCurve struct {
	ctx   curveContext
	line  float64
	index int
}

func (c *linearCurve) areaStart() { c.line = 0 }
func (c *linearCurve) areaEnd()   { c.line = math.NaN() }
func (c *linearCurve) lineStart() { c.index = 0 }

func (c *linearCurve) lineEnd() {
	if shouldClose(c.line, c.index == 1) {
		c.ctx.closePath()
	}
	c.line = 1 - c.line
}

func (c *linearCurve) point(x, y float64) {
	switch c.index {
	case 0:
		c.index = 1
		startOrLine(c.ctx, c.line, x, y)
	default:
		c.index = 2
		c.ctx.lineTo(x, y)
	}
}

type linearClosedCurve struct {
	ctx   curveContext
	index int
}

func (c *linearClosedCurve) areaStart() {}
func (c *linearClosedCurve) areaEnd()   {}
func (c *linearClosedCurve) lineStart() { c.index = 0 }

func (c *linearClosedCurve) lineEnd() {
	if c.index != 0 {
		c.ctx.closePath()
	}
}

func (c *linearClosedCurve) point(x, y float64) {
	if c.index != 0 {
		c.ctx.lineTo(x, y)
		return
	}
	c.index = 1
	c.ctx.moveTo(x, y)
}

type stepCurve struct {
	ctx   curveContext
	line  float64
	t     float64
	index int
	x, y  float64
}

func (c *stepCurve) areaStart() { c.line = 0 }
func (c *stepCurve) areaEnd()   { c.line = math.NaN() }

func (c *stepCurve) lineStart() {
	c.x, c.y = math.NaN(), math.NaN()
	c.index = 0
}

func (c *stepCurve) lineEnd() {
	if 0 < c.t && c.t < 1 && c.index == 2 {
		c.ctx.lineTo(c.x, c.y)
	}
	if shouldClose(c.line, c.index == 1) {
		c.ctx.closePath()
	}
	if c.line >= 0 {
		c.t = 1 - c.t
		c.line = 1 - c.line
	}
}

func (c *stepCurve) point(x, y float64) {
	switch c.index {
	case 0:
		c.index = 1
		startOrLine(c.ctx, c.line, x, y)
	default:
		c.index = 2
		if c.t <= 0 {
			c.ctx.lineTo(c.x, y)
			c.ctx.lineTo(x, y)
		} else {
			x1 := c.x*(1-c.t) + x*c.t
			c.ctx.lineTo(x1, c.y)
			c.ctx.lineTo(x1, y)
		}
	}
	c.x, c.y = x, y
}

type basisCurve struct {
	ctx            curveContext
	line           float64
	index          int
	x0, x1, y0, y1 float64
}

func (c *basisCurve) areaStart() { c.line = 0 }
func (c *basisCurve) areaEnd()   { c.line = math.NaN() }

func (c *basisCurve) lineStart() {
	c.x0, c.x1, c.y0, c.y1 = math.NaN(), math.NaN(), math.NaN(), math.NaN()
	c.index = 0
}

func (c *basisCurve) lineEnd() {
	switch c.index {
	case 3:
		basisPoint(c.ctx, c.x0, c.y0, c.x1, c.y1, c.x1, c.y1)
		c.ctx.lineTo(c.x1, c.y1)
	case 2:
		c.ctx.lineTo(c.x1, c.y1)
	}
	if shouldClose(c.line, c.index == 1) {
		c.ctx.closePath()
	}
	c.line = 1 - c.line
}

func (c *basisCurve) point(x, y float64) {
	switch c.index {
	case 0:
		c.index = 1
		startOrLine(c.ctx, c.line, x, y)
	case 1:
		c.index = 2
	case 2:
		c.index = 3
		c.ctx.lineTo((5*c.x0+c.x1)/6, (5*c.y0+c.y1)/6)
		basisPoint(c.ctx, c.x0, c.y0, c.x1, c.y1, x, y)
	default:
		basisPoint(c.ctx, c.x0, c.y0, c.x1, c.y1, x, y)
	}
	c.x0, c.x1 = c.x1, x
	c.y0, c.y1 = c.y1, y
}

func basisPoint(ctx curveContext, x0, y0, x1, y1, x, y float64) {
	ctx.bezierCurveTo(
		(2*x0+x1)/3,
		(2*y0+y1)/3,
		(x0+2*x1)/3,
		(y0+2*y1)/3,
		(x0+4*x1+x)/6,
		(y0+4*y1+y)/6,
	)
}

type basisClosedCurve struct {
	ctx    curveContext
	index  int
	x0, y0 float64
	x1, y1 float64
	x2, y2 float64
	x3, y3 float64
	x4, y4 float64
}

func (c *basisClosedCurve) areaStart() {}
func (c *basisClosedCurve) areaEnd()   {}

func (c *basisClosedCurve) lineStart() {
	nan := math.NaN()
	c.x0, c.x1, c.x2, c.x3, c.x4 = nan, nan, nan, nan, nan
	c.y0, c.y1, c.y2, c.y3, c.y4 = nan, nan, nan, nan, nan
	c.index = 0
}

func (c *basisClosedCurve) lineEnd() {
	switch c.index {
	case 1:
		c.ctx.moveTo(c.x2, c.y2)
		c.ctx.closePath()
	case 2:
		c.ctx.moveTo((c.x2+2*c.x3)/3, (c.y2+2*c.y3)/3)
		c.ctx.lineTo((c.x3+2*c.x2)/3, (c.y3+2*c.y2)/3)
		c.ctx.closePath()
	case 3:
		x2, y2, x3, y3, x4, y4 := c.x2, c.y2, c.x3, c.y3, c.x4, c.y4
		c.point(x2, y2)
		c.point(x3, y3)
		c.point(x4, y4)
	}
}

func (c *basisClosedCurve) point(x, y float64) {
	switch c.index {
	case 0:
		c.index = 1
		c.x2, c.y2 = x, y
	case 1:
		c.index = 2
		c.x3, c.y3 = x, y
	case 2:
		c.index = 3
		c.x4, c.y4 = x, y
		c.ctx.moveTo((c.x0+4*c.x1+x)/6, (c.y0+4*c.y1+y)/6)
	default:
		basisPoint(c.ctx, c.x0, c.y0, c.x1, c.y1, x, y)
	}
	c.x0, c.x1 = c.x1, x
	c.y0, c.y1 = c.y1, y
}

type basisOpenCurve struct {
	ctx            curveContext
	line           float64
	index          int
	x0, x1, y0, y1 float64
}

func (c *basisOpenCurve) areaStart() { c.line = 0 }
func (c *basisOpenCurve) areaEnd()   { c.line = math.NaN() }

func (c *basisOpenCurve) lineStart() {
	c.x0, c.x1, c.y0, c.y1 = math.NaN(), math.NaN(), math.NaN(), math.NaN()
	c.index = 0
}

func (c *basisOpenCurve) lineEnd() {
	if shouldClose(c.line, c.index == 3) {
		c.ctx.closePath()
	}
	c.line = 1 - c.line
}

func (c *basisOpenCurve) point(x, y float64) {
	switch c.index {
	case 0:
		c.index = 1
	case 1:
		c.index = 2
	case 2:
		c.index = 3
		startOrLine(c.ctx, c.line, (c.x0+4*c.x1+x)/6, (c.y0+4*c.y1+y)/6)
	default:
		c.index = 4
		basisPoint(c.ctx, c.x0, c.y0, c.x1, c.y1, x, y)
	}
	c.x0, c.x1 = c.x1, x
	c.y0, c.y1 = c.y1, y
}

type bumpCurve struct {
	ctx        curveContext
	line       float64
	index      int
	horizontal bool
	x0, y0     float64
}

func (c *bumpCurve) areaStart() { c.line = 0 }
func (c *bumpCurve) areaEnd()   { c.line = math.NaN() }
func (c *bumpCurve) lineStart() { c.index = 0 }

func (c *bumpCurve) lineEnd() {
	if shouldClose(c.line, c.index == 1) {
		c.ctx.closePath()
	}
	c.line = 1 - c.line
}

func (c *bumpCurve) point(x, y float64) {
	switch c.index {
	case 0:
		c.index = 1
		startOrLine(c.ctx, c.line, x, y)
	default:
		c.index = 2
		if c.horizontal {
			mid := (c.x0 + x) / 2
			c.ctx.bezierCurveTo(mid, c.y0, mid, y, x, y)
		} else {
			mid := (c.y0 + y) / 2
			c.ctx.bezierCurveTo(c.x0, mid, x, mid, x, y)
		}
	}
	c.x0, c.y0 = x, y
}

type naturalCurve struct {
	ctx  curveContext
	line float64
	xs   []float64
	ys   []float64
}

func (c *naturalCurve) areaStart() { c.line = 0 }
func (c *naturalCurve) areaEnd()   { c.line = math.NaN() }

func (c *naturalCurve) lineStart() {
	c.xs = c.xs[:0]
	c.ys = c.ys[:0]
}

func (c *naturalCurve) lineEnd() {
	n := len(c.xs)
	if n > 0 {
		startOrLine(c.ctx, c.line, c.xs[0], c.ys[0])
		if n == 2 {
			c.ctx.lineTo(c.xs[1], c.ys[1])
		} else {
			px0, px1 := naturalControlPoints(c.xs)
			py0, py1 := naturalControlPoints(c.ys)
			for i := 1; i < n; i++ {
				c.ctx.bezierCurveTo(px0[i-1], py0[i-1], px1[i-1], py1[i-1], c.xs[i], c.ys[i])
			}
		}
	}
	if shouldClose(c.line, n == 1) {
		c.ctx.closePath()
	}
	c.line = 1 - c.line
}

func (c *naturalCurve) point(x, y float64) {
	c.xs = append(c.xs, x)
	c.ys = append(c.ys, y)
}

// naturalControlPoints solves the tridiagonal system of a natural cubic
// spline through x.
func naturalControlPoints(x []float64) ([]float64, []float64) {
	n := len(x) - 1
	if n < 1 {
		return nil, nil
	}
	var (
		a = make([]float64, n)
		b = make([]float64, n)
		r = make([]float64, n)
	)
	a[0], b[0], r[0] = 0, 2, x[0]+2*x[1]
	for i := 1; i < n-1; i++ {
		a[i], b[i], r[i] = 1, 4, 4*x[i]+2*x[i+1]
	}
	a[n-1], b[n-1], r[n-1] = 2, 7, 8*x[n-1]+x[n]
	for i := 1; i < n; i++ {
		m := a[i] / b[i-1]
		b[i] -= m
		r[i] -= m * r[i-1]
	}
	a[n-1] = r[n-1] / b[n-1]
	for i := n - 2; i >= 0; i-- {
		a[i] = (r[i] - a[i+1]) / b[i]
	}
	b[n-1] = (x[n] + a[n-1]) / 2
	for i := 0; i < n-1; i++ {
		b[i] = 2*x[i+1] - a[i+1]
	}
	return a, b
}

type monotoneCurve struct {
	ctx            curveContext
	line           float64
	index          int
	reflect        bool
	x0, x1, y0, y1 float64
	t0             float64
}

func (c *monotoneCurve) areaStart() { c.line = 0 }
func (c *monotoneCurve) areaEnd()   { c.line = math.NaN() }

func (c *monotoneCurve) lineStart() {
	nan := math.NaN()
	c.x0, c.x1, c.y0, c.y1, c.t0 = nan, nan, nan, nan, nan
	c.index = 0
}

func (c *monotoneCurve) lineEnd() {
	switch c.index {
	case 2:
		c.ctx.lineTo(c.x1, c.y1)
	case 3:
		c.hermite(c.t0, c.slope2(c.t0))
	}
	if shouldClose(c.line, c.index == 1) {
		c.ctx.closePath()
	}
	c.line = 1 - c.line
}

func (c *monotoneCurve) point(x, y float64) {
	if c.reflect {
		x, y = y, x
	}
	if x == c.x1 && y == c.y1 {
		return
	}
	t1 := math.NaN()
	switch c.index {
	case 0:
		c.index = 1
		startOrLine(c.ctx, c.line, x, y)
	case 1:
		c.index = 2
	case 2:
		c.index = 3
		t1 = c.slope3(x, y)
		c.hermite(c.slope2(t1), t1)
	default:
		t1 = c.slope3(x, y)
		c.hermite(c.t0, t1)
	}
	c.x0, c.x1 = c.x1, x
	c.y0, c.y1 = c.y1, y
	c.t0 = t1
}

func monotoneSign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func orSignedZero(h, other float64) float64 {
	if h != 0 && !math.IsNaN(h) {
		return h
	}
	if other < 0 {
		return math.Copysign(0, -1)
	}
	return 0
}

// slope3 is the tangent at the current point given the next one.
func (c *monotoneCurve) slope3(x2, y2 float64) float64 {
	var (
		h0 = c.x1 - c.x0
		h1 = x2 - c.x1
		s0 = (c.y1 - c.y0) / orSignedZero(h0, h1)
		s1 = (y2 - c.y1) / orSignedZero(h1, h0)
		p  = (s0*h1 + s1*h0) / (h0 + h1)
		t  = (monotoneSign(s0) + monotoneSign(s1)) * math.Min(math.Min(math.Abs(s0), math.Abs(s1)), 0.5*math.Abs(p))
	)
	if math.IsNaN(t) {
		return 0
	}
	return t
}

// slope2 is the tangent at an end point given the tangent t of its neighbour.
func (c *monotoneCurve) slope2(t float64) float64 {
	h := c.x1 - c.x0
	if h == 0 || math.IsNaN(h) {
		return t
	}
	return (3*(c.y1-c.y0)/h - t) / 2
}

func (c *monotoneCurve) hermite(t0, t1 float64) {
	dx := (c.x1 - c.x0) / 3
	c.ctx.bezierCurveTo(c.x0+dx, c.y0+dx*t0, c.x1-dx, c.y1-dx*t1, c.x1, c.y1)
}

// reflectContext swaps the coordinates given to the underlying context.
type reflectContext struct {
	ctx curveContext
}

func (r reflectContext) moveTo(x, y float64) { r.ctx.moveTo(y, x) }
func (r reflectContext) lineTo(x, y float64) { r.ctx.lineTo(y, x) }
func (r reflectContext) closePath()          { r.ctx.closePath() }

func (r reflectContext) bezierCurveTo(x1, y1, x2, y2, x, y float64) {
	r.ctx.bezierCurveTo(y1, x1, y2, x2, y, x)
}

type baseLineKind int

const (
	baseLineNone baseLineKind = iota
	baseLineConst
	baseLinePoints
)

// BaseLine is the lower edge of an area: nothing for a line, a constant
// coordinate, or one point per point of the area.
type BaseLine struct {
	kind   baseLineKind
	value  float64
	points []Point
}

func NoBaseLine() BaseLine {
	return BaseLine{}
}

func ConstBaseLine(v float64) BaseLine {
	return BaseLine{
		kind:  baseLineConst,
		value: v,
	}
}

func PointsBaseLine(points []Point) BaseLine {
	return BaseLine{
		kind:   baseLinePoints,
		points: points,
	}
}

func (b BaseLine) IsNone() bool {
	return b.kind == baseLineNone
}

// Value returns the constant of the base line.
func (b BaseLine) Value() (float64, bool) {
	return b.value, b.kind == baseLineConst
}

// Points returns the points of the base line.
func (b BaseLine) Points() ([]Point, bool) {
	return b.points, b.kind == baseLinePoints
}

type PathOptions struct {
	Type         CurveType
	Points       []Point
	BaseLine     BaseLine
	Layout       Layout
	ConnectNulls bool
	// Override is used when there are not enough points to draw.
	Override string
}

// Path draws the points with the interpolation of the curve type. With a
// base line, the path is the closed area between the points and the base
// line. Undefined points split the path unless ConnectNulls is set, in which
// case they are skipped.
func Path(opts PathOptions) (string, bool) {
	points := opts.Points
	if opts.ConnectNulls {
		points = definedPoints(points)
	}
	if len(points) < 2 {
		return opts.Override, opts.Override != ""
	}
	var (
		ctx pathContext
		out = newCurve(opts.Type, opts.Layout, &ctx)
	)
	switch opts.BaseLine.kind {
	case baseLinePoints:
		base := opts.BaseLine.points
		if opts.ConnectNulls {
			base = definedPoints(base)
		}
		drawArea(out, points, func(i int, p Point) Point {
			var b Point
			if i < len(base) {
				b = base[i]
			} else {
				b = UndefinedPoint()
			}
			if opts.Layout == LayoutVertical {
				return NewPoint(b.X, p.Y)
			}
			return NewPoint(p.X, b.Y)
		})
	case baseLineConst:
		drawArea(out, points, func(_ int, p Point) Point {
			if opts.Layout == LayoutVertical {
				return NewPoint(opts.BaseLine.value, p.Y)
			}
			return NewPoint(p.X, opts.BaseLine.value)
		})
	default:
		drawLine(out, points)
	}
	str := ctx.String()
	return str, str != ""
}

func definedPoints(points []Point) []Point {
	list := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Defined() {
			list = append(list, p)
		}
	}
	return list
}

func drawLine(out curve, points []Point) {
	var defined bool
	for i := 0; i <= len(points); i++ {
		ok := i < len(points) && points[i].Defined()
		if ok != defined {
			if defined = ok; defined {
				out.lineStart()
			} else {
				out.lineEnd()
			}
		}
		if defined {
			out.point(points[i].X, points[i].Y)
		}
	}
}

func drawArea(out curve, points []Point, base func(int, Point) Point) {
	var (
		defined bool
		start   int
		lower   = make([]Point, len(points))
	)
	for i := 0; i <= len(points); i++ {
		ok := i < len(points) && points[i].Defined()
		if ok != defined {
			if defined = ok; defined {
				start = i
				out.areaStart()
				out.lineStart()
			} else {
				out.lineEnd()
				out.lineStart()
				for k := i - 1; k >= start; k-- {
					out.point(lower[k].X, lower[k].Y)
				}
				out.lineEnd()
				out.areaEnd()
			}
		}
		if defined {
			lower[i] = base(i, points[i])
			out.point(points[i].X, points[i].Y)
		}
	}
}

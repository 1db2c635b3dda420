package chartgeo

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/vec"
	"github.com/midbel/slices"
)

const defaultTickCount = 10

type ScaleKind string

const (
	ScaleAuto   ScaleKind = "auto"
	ScaleLinear ScaleKind = "linear"
	ScaleLog    ScaleKind = "log"
	ScaleTime   ScaleKind = "time"
	ScaleBand   ScaleKind = "band"
	ScalePoint  ScaleKind = "point"
)

func ParseScaleKind(str string) (ScaleKind, error) {
	switch k := ScaleKind(strings.ToLower(strings.TrimSpace(str))); k {
	case "":
		return ScaleAuto, nil
	case ScaleAuto, ScaleLinear, ScaleLog, ScaleTime, ScaleBand, ScalePoint:
		return k, nil
	case "utc":
		return ScaleTime, nil
	default:
		return "", fmt.Errorf("%s: %w", str, ErrUnknownScale)
	}
}

func (k ScaleKind) Continuous() bool {
	return k == ScaleLinear || k == ScaleLog || k == ScaleTime
}

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return math.Max(r.F, r.T)
}

func (r Range) Min() float64 {
	return math.Min(r.F, r.T)
}

func (r Range) Reversed() bool {
	return r.T < r.F
}

func (r Range) Reverse() Range {
	return NewRange(r.T, r.F)
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min() && v <= r.Max()
}

// Scale maps domain values onto pixels. Implementations are immutable: the
// With methods return a new scale.
type Scale interface {
	Apply(any) (float64, bool)
	Invert(float64) (any, bool)
	Domain() []any
	Range() Range
	Bandwidth() float64
	Ticks(int) []any
	Kind() ScaleKind
	WithRange(Range) Scale
	WithDomain([]any) Scale
}

// NewScale builds a scale of the given kind. Continuous kinds use the first
// and last values of domain.
func NewScale(kind ScaleKind, domain []any, rg Range) Scale {
	switch kind {
	case ScaleBand:
		return BandScale(domain, rg)
	case ScalePoint:
		return PointScale(domain, rg)
	case ScaleLog:
		lo, hi := numberEnds(domain)
		return LogScale(lo, hi, rg)
	case ScaleTime:
		lo, hi := numberEnds(domain)
		return timeScale{linearScale: linearScale{lin: scale.Linear{Min: lo, Max: hi}, rg: rg}}
	default:
		lo, hi := numberEnds(domain)
		return LinearScale(lo, hi, rg)
	}
}

func numberEnds(domain []any) (float64, float64) {
	if len(domain) == 0 {
		return 0, 1
	}
	lo, ok1 := ToNumber(slices.Fst(domain))
	hi, ok2 := ToNumber(slices.Lst(domain))
	if !ok1 || !ok2 {
		return 0, 1
	}
	return lo, hi
}

type linearScale struct {
	lin scale.Linear
	rg  Range
}

func LinearScale(d0, d1 float64, rg Range) Scale {
	return linearScale{
		lin: scale.Linear{Min: d0, Max: d1},
		rg:  rg,
	}
}

func (s linearScale) Apply(v any) (float64, bool) {
	f, ok := ToNumber(v)
	if !ok {
		return 0, false
	}
	px := s.rg.F + s.lin.Map(f)*s.rg.Len()
	return px, IsWellBehavedNumber(px)
}

func (s linearScale) Invert(px float64) (any, bool) {
	return s.invert(px)
}

func (s linearScale) invert(px float64) (float64, bool) {
	if s.rg.Len() == 0 {
		return s.lin.Min, true
	}
	v := s.lin.Unmap((px - s.rg.F) / s.rg.Len())
	return v, IsWellBehavedNumber(v)
}

func (s linearScale) Domain() []any {
	return []any{s.lin.Min, s.lin.Max}
}

func (s linearScale) Range() Range {
	return s.rg
}

func (s linearScale) Bandwidth() float64 {
	return 0
}

func (s linearScale) Ticks(count int) []any {
	ticks := s.ticks(count)
	list := make([]any, len(ticks))
	for i := range ticks {
		list[i] = ticks[i]
	}
	return list
}

func (s linearScale) ticks(count int) []float64 {
	if count <= 0 {
		count = defaultTickCount
	}
	if !IsWellBehavedNumber(s.lin.Min) || !IsWellBehavedNumber(s.lin.Max) {
		return nil
	}
	major, _ := s.lin.Ticks(scale.TickOptions{Max: count})
	if s.lin.Min > s.lin.Max {
		major = slices.Reverse(major)
	}
	return major
}

func (s linearScale) Kind() ScaleKind {
	return ScaleLinear
}

func (s linearScale) WithRange(rg Range) Scale {
	x := s
	x.rg = rg
	return x
}

func (s linearScale) WithDomain(domain []any) Scale {
	if len(domain) == 0 {
		return s
	}
	x := s
	x.lin.Min, x.lin.Max = numberEnds(domain)
	return x
}

// timeScale is a linear scale over Unix milliseconds that gives back
// time.Time values.
type timeScale struct {
	linearScale
}

func TimeScale(d0, d1 time.Time, rg Range) Scale {
	return timeScale{
		linearScale: linearScale{
			lin: scale.Linear{Min: float64(d0.UnixMilli()), Max: float64(d1.UnixMilli())},
			rg:  rg,
		},
	}
}

func (s timeScale) Invert(px float64) (any, bool) {
	v, ok := s.invert(px)
	if !ok {
		return nil, false
	}
	return time.UnixMilli(int64(math.Round(v))).UTC(), true
}

func (s timeScale) Domain() []any {
	return []any{
		time.UnixMilli(int64(s.lin.Min)).UTC(),
		time.UnixMilli(int64(s.lin.Max)).UTC(),
	}
}

func (s timeScale) Ticks(count int) []any {
	ticks := s.ticks(count)
	list := make([]any, len(ticks))
	for i := range ticks {
		list[i] = time.UnixMilli(int64(ticks[i])).UTC()
	}
	return list
}

func (s timeScale) Kind() ScaleKind {
	return ScaleTime
}

func (s timeScale) WithRange(rg Range) Scale {
	x := s
	x.rg = rg
	return x
}

func (s timeScale) WithDomain(domain []any) Scale {
	if len(domain) == 0 {
		return s
	}
	x := s
	x.lin.Min, x.lin.Max = numberEnds(domain)
	return x
}

type logScale struct {
	d0    float64
	d1    float64
	log   scale.Log
	valid bool
	rg    Range
}

// LogScale maps values in base 10. A domain spanning zero gives a scale that
// places nothing.
func LogScale(d0, d1 float64, rg Range) Scale {
	s := logScale{
		d0: d0,
		d1: d1,
		rg: rg,
	}
	if lg, err := scale.NewLog(d0, d1, 10); err == nil {
		s.log = lg
		s.valid = true
	}
	return s
}

func (s logScale) Apply(v any) (float64, bool) {
	f, ok := ToNumber(v)
	if !ok || !s.valid {
		return 0, false
	}
	t := s.log.Map(f)
	if s.d0 > s.d1 {
		t = 1 - t
	}
	px := s.rg.F + t*s.rg.Len()
	return px, IsWellBehavedNumber(px)
}

func (s logScale) Invert(px float64) (any, bool) {
	if !s.valid || s.rg.Len() == 0 {
		return nil, false
	}
	t := (px - s.rg.F) / s.rg.Len()
	if s.d0 > s.d1 {
		t = 1 - t
	}
	v := s.log.Unmap(t)
	return v, IsWellBehavedNumber(v)
}

func (s logScale) Domain() []any {
	return []any{s.d0, s.d1}
}

func (s logScale) Range() Range {
	return s.rg
}

func (s logScale) Bandwidth() float64 {
	return 0
}

func (s logScale) Ticks(count int) []any {
	if !s.valid {
		return nil
	}
	if count <= 0 {
		count = defaultTickCount
	}
	major, _ := s.log.Ticks(scale.TickOptions{Max: count})
	if s.d0 > s.d1 {
		major = slices.Reverse(major)
	}
	list := make([]any, len(major))
	for i := range major {
		list[i] = major[i]
	}
	return list
}

func (s logScale) Kind() ScaleKind {
	return ScaleLog
}

func (s logScale) WithRange(rg Range) Scale {
	x := s
	x.rg = rg
	return x
}

func (s logScale) WithDomain(domain []any) Scale {
	if len(domain) == 0 {
		return s
	}
	lo, hi := numberEnds(domain)
	return LogScale(lo, hi, s.rg)
}

type bandScale struct {
	kind   ScaleKind
	domain []any
	index  map[string]int
	rg     Range

	paddingInner float64
	paddingOuter float64
	align        float64

	step      float64
	bandwidth float64
	values    []float64
}

func BandScale(domain []any, rg Range) Scale {
	return BandScaleWithPadding(domain, rg, 0, 0)
}

func BandScaleWithPadding(domain []any, rg Range, inner, outer float64) Scale {
	s := bandScale{
		kind:         ScaleBand,
		rg:           rg,
		paddingInner: clampValue(inner, 0, 1),
		paddingOuter: math.Max(outer, 0),
		align:        0.5,
	}
	return s.reset(domain)
}

// PointScale is a band scale without inner padding: every category sits on a
// single pixel.
func PointScale(domain []any, rg Range) Scale {
	return PointScaleWithPadding(domain, rg, 0)
}

func PointScaleWithPadding(domain []any, rg Range, padding float64) Scale {
	s := bandScale{
		kind:         ScalePoint,
		rg:           rg,
		paddingInner: 1,
		paddingOuter: math.Max(padding, 0),
		align:        0.5,
	}
	return s.reset(domain)
}

func (s bandScale) reset(domain []any) bandScale {
	s.domain = make([]any, 0, len(domain))
	s.index = make(map[string]int)
	for _, d := range domain {
		k := categoryKey(d)
		if _, ok := s.index[k]; ok {
			continue
		}
		s.index[k] = len(s.domain)
		s.domain = append(s.domain, d)
	}
	return s.rescale()
}

func (s bandScale) rescale() bandScale {
	var (
		n       = float64(len(s.domain))
		reverse = s.rg.T < s.rg.F
		start   = s.rg.F
		stop    = s.rg.T
	)
	if reverse {
		start, stop = stop, start
	}
	s.step = (stop - start) / math.Max(1, n-s.paddingInner+s.paddingOuter*2)
	start += (stop - start - s.step*(n-s.paddingInner)) * s.align
	s.bandwidth = s.step * (1 - s.paddingInner)
	s.values = nil
	if len(s.domain) > 0 {
		last := start + s.step*(n-1)
		s.values = vec.Linspace(start, last, len(s.domain))
	}
	if reverse {
		s.values = slices.Reverse(s.values)
	}
	return s
}

func (s bandScale) Apply(v any) (float64, bool) {
	ix, ok := s.index[categoryKey(v)]
	if !ok {
		return 0, false
	}
	return s.values[ix], true
}

// Invert gives the category whose slot is the closest to px.
func (s bandScale) Invert(px float64) (any, bool) {
	if len(s.values) == 0 {
		return nil, false
	}
	var (
		best = -1
		dist = math.Inf(1)
	)
	for i, v := range s.values {
		if d := math.Abs(v + s.bandwidth/2 - px); d < dist {
			best, dist = i, d
		}
	}
	return s.domain[best], true
}

func (s bandScale) Domain() []any {
	list := make([]any, len(s.domain))
	copy(list, s.domain)
	return list
}

func (s bandScale) Range() Range {
	return s.rg
}

func (s bandScale) Bandwidth() float64 {
	return s.bandwidth
}

func (s bandScale) Step() float64 {
	return s.step
}

func (s bandScale) Ticks(_ int) []any {
	return s.Domain()
}

func (s bandScale) Kind() ScaleKind {
	return s.kind
}

func (s bandScale) WithRange(rg Range) Scale {
	x := s
	x.rg = rg
	return x.rescale()
}

func (s bandScale) WithDomain(domain []any) Scale {
	return s.reset(domain)
}

// LabeledScale positions values for labels and reference elements.
type LabeledScale struct {
	Scale
}

type BandPosition int

const (
	PositionNone BandPosition = iota
	PositionStart
	PositionMiddle
	PositionEnd
)

func ParseBandPosition(str string) BandPosition {
	switch strings.ToLower(str) {
	case "start":
		return PositionStart
	case "middle":
		return PositionMiddle
	case "end":
		return PositionEnd
	default:
		return PositionNone
	}
}

func NewLabeledScale(s Scale) LabeledScale {
	return LabeledScale{Scale: s}
}

func (s LabeledScale) ApplyAt(v any, position BandPosition, bandAware bool) (float64, bool) {
	if v == nil || s.Scale == nil {
		return 0, false
	}
	px, ok := s.Scale.Apply(v)
	if !ok {
		return 0, false
	}
	switch position {
	case PositionStart:
		return px, true
	case PositionMiddle:
		return px + s.Bandwidth()/2, true
	case PositionEnd:
		return px + s.Bandwidth(), true
	}
	if bandAware {
		px += s.Bandwidth() / 2
	}
	return px, true
}

func (s LabeledScale) InRange(px float64) bool {
	return s.Range().Contains(px)
}

// RangeMin is the first end of the range, not necessarily the smallest.
func (s LabeledScale) RangeMin() float64 {
	return s.Range().F
}

func (s LabeledScale) RangeMax() float64 {
	return s.Range().T
}

// CheckDomainOfScale keeps only the ends of a domain with more than two
// values when those ends are placed outside of the range.
func CheckDomainOfScale(s Scale) Scale {
	domain := s.Domain()
	if len(domain) <= 2 || !s.Kind().Continuous() {
		return s
	}
	var (
		rg       = s.Range()
		lo       = rg.Min() - epsilon
		hi       = rg.Max() + epsilon
		fst, ok1 = s.Apply(slices.Fst(domain))
		lst, ok2 = s.Apply(slices.Lst(domain))
	)
	if !ok1 || !ok2 || fst < lo || fst > hi || lst < lo || lst > hi {
		return s.WithDomain([]any{slices.Fst(domain), slices.Lst(domain)})
	}
	return s
}

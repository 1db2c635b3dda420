package chartgeo

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/midbel/slices"
)

type boundKind int

const (
	boundAuto boundKind = iota
	boundFixed
	boundDataMin
	boundDataMax
	boundFunc
)

// Bound is one end of a specified domain.
type Bound struct {
	kind   boundKind
	value  float64
	offset float64
	fn     func(float64) float64
}

func Auto() Bound {
	return Bound{kind: boundAuto}
}

func Fixed(v float64) Bound {
	return Bound{kind: boundFixed, value: v}
}

func DataMin() Bound {
	return Bound{kind: boundDataMin}
}

func DataMax() Bound {
	return Bound{kind: boundDataMax}
}

func DataMinMinus(d float64) Bound {
	return Bound{kind: boundDataMin, offset: -d}
}

func DataMaxPlus(d float64) Bound {
	return Bound{kind: boundDataMax, offset: d}
}

// BoundFunc computes the bound from the matching bound of the data.
func BoundFunc(fn func(float64) float64) Bound {
	return Bound{kind: boundFunc, fn: fn}
}

func (b Bound) IsAuto() bool {
	return b.kind == boundAuto
}

func (b Bound) IsFixed() bool {
	return b.kind == boundFixed
}

func (b Bound) String() string {
	switch b.kind {
	case boundFixed:
		return formatNumber(b.value)
	case boundDataMin, boundDataMax:
		str := "dataMin"
		if b.kind == boundDataMax {
			str = "dataMax"
		}
		switch {
		case b.offset > 0:
			str += " + " + formatNumber(b.offset)
		case b.offset < 0:
			str += " - " + formatNumber(-b.offset)
		}
		return str
	case boundFunc:
		return "func"
	default:
		return "auto"
	}
}

var boundPattern = regexp.MustCompile(`^(dataMin|dataMax)\s*(?:([+-])\s*([0-9]+(?:\.[0-9]+)?))?$`)

// ParseBound understands numbers, "auto", "dataMin", "dataMax" and the
// shifted forms "dataMin - 5" or "dataMax + 5".
func ParseBound(str string) (Bound, error) {
	str = strings.TrimSpace(str)
	if str == "" || str == "auto" {
		return Auto(), nil
	}
	if v, err := strconv.ParseFloat(str, 64); err == nil {
		if !IsWellBehavedNumber(v) {
			return Bound{}, DomainError{Input: str, Reason: "bound should be finite"}
		}
		return Fixed(v), nil
	}
	parts := boundPattern.FindStringSubmatch(str)
	if parts == nil {
		return Bound{}, DomainError{Input: str, Reason: "unrecognized bound"}
	}
	b := DataMin()
	if parts[1] == "dataMax" {
		b = DataMax()
	}
	if parts[2] != "" {
		d, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return Bound{}, DomainError{Input: str, Reason: "invalid offset"}
		}
		if parts[2] == "-" {
			d = -d
		}
		b.offset = d
	}
	return b, nil
}

func (b Bound) resolve(data [2]float64, lower, allowDataOverflow bool) float64 {
	own := data[1]
	if lower {
		own = data[0]
	}
	switch b.kind {
	case boundFixed:
		if allowDataOverflow {
			return b.value
		}
		if lower {
			return math.Min(b.value, data[0])
		}
		return math.Max(b.value, data[1])
	case boundDataMin:
		return data[0] + b.offset
	case boundDataMax:
		return data[1] + b.offset
	case boundFunc:
		if b.fn == nil {
			return own
		}
		return b.fn(own)
	default:
		return own
	}
}

// DomainSpec is the domain requested on an axis: two bounds, a function of
// the whole data domain, or an explicit list of categories.
type DomainSpec struct {
	Bounds     [2]Bound
	Func       func([2]float64, bool) [2]float64
	Categories []any
	set        bool
}

func SpecBounds(lower, upper Bound) DomainSpec {
	return DomainSpec{
		Bounds: [2]Bound{lower, upper},
		set:    true,
	}
}

func SpecFunc(fn func([2]float64, bool) [2]float64) DomainSpec {
	return DomainSpec{
		Func: fn,
		set:  true,
	}
}

func SpecCategories(values ...any) DomainSpec {
	return DomainSpec{
		Categories: values,
		set:        true,
	}
}

func ParseDomainSpec(lower, upper string) (DomainSpec, error) {
	lo, err := ParseBound(lower)
	if err != nil {
		return DomainSpec{}, err
	}
	hi, err := ParseBound(upper)
	if err != nil {
		return DomainSpec{}, err
	}
	return SpecBounds(lo, hi), nil
}

func (d DomainSpec) IsSet() bool {
	return d.set
}

// HasAuto reports whether one of the bounds is left to the data. Such
// domains are extended to nice tick values.
func (d DomainSpec) HasAuto() bool {
	if !d.set || d.Func != nil || len(d.Categories) > 0 {
		return false
	}
	return d.Bounds[0].IsAuto() || d.Bounds[1].IsAuto()
}

// ParseSpecifiedDomain combines a requested domain with the domain of the
// data. Unless allowDataOverflow is set, fixed bounds are widened so that no
// data falls outside of the final domain.
func ParseSpecifiedDomain(spec DomainSpec, data [2]float64, allowDataOverflow bool) [2]float64 {
	if !spec.set {
		return data
	}
	if spec.Func != nil {
		return spec.Func(data, allowDataOverflow)
	}
	if len(spec.Categories) > 0 {
		return data
	}
	return [2]float64{
		spec.Bounds[0].resolve(data, true, allowDataOverflow),
		spec.Bounds[1].resolve(data, false, allowDataOverflow),
	}
}

// Domain is the resolved domain of an axis. Number axes carry two values,
// category axes the list of categories. When categories are duplicated and
// allowed, Values holds the indices and Duplicates the labels.
type Domain struct {
	Type        AxisType
	Values      []any
	Duplicates  []any
	Categorical []any
}

func NumberDomain(lo, hi float64) Domain {
	return Domain{
		Type:   AxisNumber,
		Values: []any{lo, hi},
	}
}

func CategoryDomain(values ...any) Domain {
	return Domain{
		Type:   AxisCategory,
		Values: values,
	}
}

func (d Domain) Bounds() [2]float64 {
	lo, hi := numberEnds(d.Values)
	return [2]float64{lo, hi}
}

func (d Domain) Len() int {
	return len(d.Values)
}

// Labels returns the values displayed on the axis: the duplicated labels when
// present, the values otherwise.
func (d Domain) Labels() []any {
	if len(d.Duplicates) > 0 {
		return d.Duplicates
	}
	return d.Values
}

// NumberDomainOfData gives the extent of the numbers found under key. Range
// values contribute both ends. ok is false when no number was found.
func NumberDomainOfData(rows []Row, key DataKey) ([2]float64, bool) {
	res := [2]float64{math.Inf(1), math.Inf(-1)}
	for _, r := range rows {
		for _, v := range numbersOf(key.Value(r)) {
			if !IsWellBehavedNumber(v) {
				continue
			}
			res[0] = math.Min(res[0], v)
			res[1] = math.Max(res[1], v)
		}
	}
	return res, res[0] <= res[1]
}

// CategoryDomainOfData lists the categories under key in order of appearance.
// Without allowDuplicated the list is deduplicated. With allowDuplicated and
// at least one duplicate, the returned values are the row indices and dups
// holds the labels.
func CategoryDomainOfData(rows []Row, key DataKey, allowDuplicated bool) (values, dups []any) {
	list := make([]any, 0, len(rows))
	for _, r := range rows {
		list = append(list, categoryOf(key.Value(r)))
	}
	if allowDuplicated {
		if hasDuplicate(list) {
			return indexDomain(len(list)), list
		}
		return slices.Filter(list, func(v any) bool {
			s, ok := v.(string)
			return !ok || s != ""
		}), nil
	}
	return uniqueValues(list), nil
}

func categoryOf(v any) any {
	if IsNumOrStr(v) {
		return v
	}
	if _, ok := ToNumber(v); ok {
		return v
	}
	return ""
}

func hasDuplicate(values []any) bool {
	seen := make(map[string]struct{})
	for _, v := range values {
		k := categoryKey(v)
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
	}
	return false
}

func uniqueValues(values []any) []any {
	var (
		list = make([]any, 0, len(values))
		seen = make(map[string]struct{})
	)
	for _, v := range values {
		k := categoryKey(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		list = append(list, v)
	}
	return list
}

func indexDomain(n int) []any {
	list := make([]any, n)
	for i := range list {
		list[i] = i
	}
	return list
}

// ExtendDomain widens domain so that it contains every finite value.
func ExtendDomain(domain [2]float64, values ...float64) [2]float64 {
	for _, v := range values {
		if !IsWellBehavedNumber(v) {
			continue
		}
		domain[0] = math.Min(domain[0], v)
		domain[1] = math.Max(domain[1], v)
	}
	return domain
}

// DomainSource holds what contributes to a domain besides the data key of the
// axis itself.
type DomainSource struct {
	// Categorical is set when the axis carries the categories of the layout.
	Categorical bool
	// Items is the extent of the graphical items (stacks, error bars) bound
	// to the axis, used when the axis has no data key.
	Items [2]float64
	// HasItems tells whether Items is meaningful.
	HasItems bool
	// Extend lists the reference values that extend the domain.
	Extend []float64
}

// ResolveAxisDomain computes the domain of an axis. ok is false when there is
// nothing to place on the axis.
func ResolveAxisDomain(rows []Row, axis AxisSettings, src DomainSource) (Domain, bool) {
	if len(rows) == 0 {
		return Domain{Type: axis.Type}, false
	}
	if axis.Type == AxisCategory {
		return resolveCategoryDomain(rows, axis, src)
	}
	var (
		data [2]float64
		ok   bool
	)
	switch {
	case !axis.DataKey.IsZero():
		data, ok = NumberDomainOfData(rows, axis.DataKey)
		if ok && src.HasItems {
			data = ExtendDomain(data, src.Items[0], src.Items[1])
		}
	case src.Categorical:
		data, ok = [2]float64{0, float64(len(rows) - 1)}, true
	default:
		data, ok = src.Items, src.HasItems && src.Items[0] <= src.Items[1]
	}
	if !ok {
		return Domain{Type: AxisNumber}, false
	}
	data = ExtendDomain(data, src.Extend...)
	data = ParseSpecifiedDomain(axis.Domain, data, axis.AllowDataOverflow)
	if !IsWellBehavedNumber(data[0]) || !IsWellBehavedNumber(data[1]) {
		return Domain{Type: AxisNumber}, false
	}
	dom := NumberDomain(data[0], data[1])
	if src.Categorical && !axis.DataKey.IsZero() {
		dom.Categorical = sortedNumbers(rows, axis.DataKey)
	}
	return dom, true
}

func resolveCategoryDomain(rows []Row, axis AxisSettings, src DomainSource) (Domain, bool) {
	dom := Domain{Type: AxisCategory}
	if axis.DataKey.IsZero() {
		if !src.Categorical {
			return dom, false
		}
		dom.Values = indexDomain(len(rows))
		return dom, true
	}
	if slices.Every(rows, func(r Row) bool { return axis.DataKey.Value(r) == nil }) {
		return dom, false
	}
	dom.Values, dom.Duplicates = CategoryDomainOfData(rows, axis.DataKey, axis.AllowDuplicatedCategory)
	if len(dom.Duplicates) == 0 && len(axis.Domain.Categories) > 0 {
		known := make(map[string]struct{})
		for _, c := range axis.Domain.Categories {
			known[categoryKey(c)] = struct{}{}
		}
		valid := slices.Every(dom.Values, func(v any) bool {
			_, ok := known[categoryKey(v)]
			return ok
		})
		if valid {
			dom.Values = append([]any(nil), axis.Domain.Categories...)
		}
	}
	return dom, len(dom.Values) > 0
}

func sortedNumbers(rows []Row, key DataKey) []any {
	var list []float64
	for _, r := range rows {
		if f, ok := ToNumber(key.Value(r)); ok {
			list = append(list, f)
		}
	}
	list = sortFloats(list)
	var (
		res  []any
		prev = math.NaN()
	)
	for _, f := range list {
		if f == prev {
			continue
		}
		res = append(res, f)
		prev = f
	}
	return res
}

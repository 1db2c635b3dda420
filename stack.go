package chartgeo

import (
	"fmt"
	"math"
	"strings"

	"github.com/midbel/slices"
)

type StackOffset string

const (
	StackNone       StackOffset = "none"
	StackExpand     StackOffset = "expand"
	StackWiggle     StackOffset = "wiggle"
	StackSilhouette StackOffset = "silhouette"
	StackSign       StackOffset = "sign"
	StackPositive   StackOffset = "positive"
)

func ParseStackOffset(str string) (StackOffset, error) {
	switch o := StackOffset(strings.TrimSpace(str)); o {
	case "":
		return StackNone, nil
	case StackNone, StackExpand, StackWiggle, StackSilhouette, StackSign, StackPositive:
		return o, nil
	default:
		return "", fmt.Errorf("%s: %w", str, ErrUnknownOffset)
	}
}

// StackedData stacks the values of keys, in order, for every row. The result
// is indexed by key, then by row, and holds the base and the top of each
// value. A missing value counts for 0, a value that is not a number is NaN.
func StackedData(rows []Row, keys []DataKey, offset StackOffset) [][][2]float64 {
	series := make([][][2]float64, len(keys))
	for i, k := range keys {
		series[i] = make([][2]float64, len(rows))
		for j, r := range rows {
			series[i][j] = [2]float64{0, stackValue(k.Value(r))}
		}
	}
	switch offset {
	case StackExpand:
		offsetExpand(series)
	case StackWiggle:
		offsetWiggle(series)
	case StackSilhouette:
		offsetSilhouette(series)
	case StackSign:
		offsetSign(series)
	case StackPositive:
		offsetPositive(series)
	default:
		offsetNone(series)
	}
	return series
}

func stackValue(v any) float64 {
	if v == nil {
		return 0
	}
	f, ok := ToNumber(v)
	if !ok {
		return math.NaN()
	}
	return f
}

func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func offsetNone(series [][][2]float64) {
	if len(series) <= 1 {
		return
	}
	for i := 1; i < len(series); i++ {
		s0, s1 := series[i-1], series[i]
		for j := range s1 {
			base := s0[j][1]
			if math.IsNaN(base) {
				base = s0[j][0]
			}
			s1[j][0] = base
			s1[j][1] += base
		}
	}
}

func offsetExpand(series [][][2]float64) {
	if len(series) == 0 {
		return
	}
	for j := range series[0] {
		var sum float64
		for i := range series {
			sum += orZero(series[i][j][1])
		}
		if sum == 0 {
			continue
		}
		for i := range series {
			series[i][j][1] /= sum
		}
	}
	offsetNone(series)
}

func offsetSilhouette(series [][][2]float64) {
	if len(series) == 0 {
		return
	}
	s0 := series[0]
	for j := range s0 {
		var sum float64
		for i := range series {
			sum += orZero(series[i][j][1])
		}
		s0[j][0] = -sum / 2
		s0[j][1] += s0[j][0]
	}
	offsetNone(series)
}

func offsetWiggle(series [][][2]float64) {
	if len(series) == 0 || len(series[0]) == 0 {
		return
	}
	var (
		s0 = series[0]
		y  float64
		j  = 1
	)
	for ; j < len(s0); j++ {
		var s1, s2 float64
		for i := range series {
			var (
				sij0 = orZero(series[i][j][1])
				sij1 = orZero(series[i][j-1][1])
				s3   = (sij0 - sij1) / 2
			)
			for k := 0; k < i; k++ {
				s3 += orZero(series[k][j][1]) - orZero(series[k][j-1][1])
			}
			s1 += sij0
			s2 += s3 * sij0
		}
		s0[j-1][0] = y
		s0[j-1][1] += y
		if s1 != 0 {
			y -= s2 / s1
		}
	}
	s0[j-1][0] = y
	s0[j-1][1] += y
	offsetNone(series)
}

func offsetSign(series [][][2]float64) {
	if len(series) == 0 {
		return
	}
	for j := range series[0] {
		var pos, neg float64
		for i := range series {
			v := series[i][j][1]
			if math.IsNaN(v) {
				v = series[i][j][0]
			}
			if v >= 0 {
				series[i][j] = [2]float64{pos, pos + v}
				pos += v
			} else {
				series[i][j] = [2]float64{neg, neg + v}
				neg += v
			}
		}
	}
}

func offsetPositive(series [][][2]float64) {
	if len(series) == 0 {
		return
	}
	for j := range series[0] {
		var pos float64
		for i := range series {
			v := series[i][j][1]
			if math.IsNaN(v) {
				v = series[i][j][0]
			}
			if v >= 0 {
				series[i][j] = [2]float64{pos, pos + v}
				pos += v
			} else {
				series[i][j] = [2]float64{0, 0}
			}
		}
	}
}

// StackItem is what stacking needs to know about a graphical item.
type StackItem struct {
	ID      string
	AxisID  string
	StackID string
	DataKey DataKey
	Hide    bool
}

// StackGroup is a set of items stacked on each other. StackedData follows the
// order of Items and is only computed when the axis carries a stack.
type StackGroup struct {
	ID          string
	Items       []string
	StackedData [][][2]float64
}

// AxisStack holds the stack groups of the items bound to one numeric axis.
type AxisStack struct {
	AxisID   string
	HasStack bool
	Groups   []StackGroup
}

// Stacked returns the stacked values of an item.
func (a AxisStack) Stacked(item string) ([][2]float64, bool) {
	for _, g := range a.Groups {
		for i, id := range g.Items {
			if id == item && i < len(g.StackedData) {
				return g.StackedData[i], true
			}
		}
	}
	return nil, false
}

// Group returns the group an item belongs to.
func (a AxisStack) Group(item string) (StackGroup, bool) {
	for _, g := range a.Groups {
		if slices.Some(g.Items, func(id string) bool { return id == item }) {
			return g, true
		}
	}
	return StackGroup{}, false
}

// StackGroups groups the visible items by numeric axis then by stack id, in
// the order they are given. An item without stack id is alone in its group.
func StackGroups(rows []Row, items []StackItem, offset StackOffset, reverse bool) []AxisStack {
	if reverse {
		items = slices.Reverse(items)
	}
	var (
		list  []AxisStack
		axes  = make(map[string]int)
		keys  = make(map[string][]DataKey)
		index = make(map[[2]string]int)
	)
	for _, it := range items {
		if it.Hide {
			continue
		}
		ax, ok := axes[it.AxisID]
		if !ok {
			ax = len(list)
			axes[it.AxisID] = ax
			list = append(list, AxisStack{AxisID: it.AxisID})
		}
		stack := &list[ax]
		if it.StackID == "" {
			id := UniqueID("_stackId_")
			stack.Groups = append(stack.Groups, StackGroup{ID: id, Items: []string{it.ID}})
			keys[it.AxisID+"/"+id] = []DataKey{it.DataKey}
			continue
		}
		stack.HasStack = true
		gx, ok := index[[2]string{it.AxisID, it.StackID}]
		if !ok {
			gx = len(stack.Groups)
			index[[2]string{it.AxisID, it.StackID}] = gx
			stack.Groups = append(stack.Groups, StackGroup{ID: it.StackID})
		}
		stack.Groups[gx].Items = append(stack.Groups[gx].Items, it.ID)
		keys[it.AxisID+"/"+it.StackID] = append(keys[it.AxisID+"/"+it.StackID], it.DataKey)
	}
	for i := range list {
		if !list[i].HasStack {
			continue
		}
		for j, g := range list[i].Groups {
			list[i].Groups[j].StackedData = StackedData(rows, keys[list[i].AxisID+"/"+g.ID], offset)
		}
	}
	return list
}

// DomainOfStackGroups gives the extent of the stacked values between the
// rows start and end, both included. Infinite ends are replaced by 0.
func DomainOfStackGroups(groups []StackGroup, start, end int) [2]float64 {
	res := [2]float64{math.Inf(1), math.Inf(-1)}
	for _, g := range groups {
		for _, serie := range g.StackedData {
			lo, hi := max(start, 0), min(end+1, len(serie))
			for j := lo; j < hi; j++ {
				for _, v := range serie[j] {
					if math.IsNaN(v) {
						continue
					}
					res[0] = math.Min(res[0], v)
					res[1] = math.Max(res[1], v)
				}
			}
		}
	}
	for i := range res {
		if math.IsInf(res[i], 0) {
			res[i] = 0
		}
	}
	return res
}

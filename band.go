package chartgeo

import (
	"math"
)

// BandSizeOfAxis gives the size of one category slot. Band and point scales
// give their bandwidth, 0 for point scales, except for bars when that
// bandwidth is 0. Otherwise the size is
// the smallest distance between two consecutive ticks, and 0 when there are
// less than two ticks.
func BandSizeOfAxis(s Scale, ticks []Tick, isBar bool) float64 {
	if s != nil && (s.Kind() == ScaleBand || s.Kind() == ScalePoint) {
		if bw := s.Bandwidth(); !isBar || bw > 0 {
			return bw
		}
	}
	if s == nil || len(ticks) < 2 {
		return 0
	}
	var (
		list = sortTicks(ticks)
		size = math.Inf(1)
	)
	for i := 1; i < len(list); i++ {
		size = math.Min(math.Abs(list[i].Coordinate-list[i-1].Coordinate), size)
	}
	if math.IsInf(size, 0) || math.IsNaN(size) {
		return 0
	}
	return size
}

// BarSlot is one position inside a category. Bars of a same stack share their
// slot. Size is the explicit size of the bars, 0 letting it be computed.
type BarSlot struct {
	Items []string
	Size  float64
}

// BarPlacement is the offset of a slot from the start of its category and
// the size of its bars.
type BarPlacement struct {
	Offset float64
	Size   float64
}

// BarLayout holds the settings used to share a category between its slots.
type BarLayout struct {
	BarGap         Length
	BarCategoryGap Length
	BandSize       float64
	MaxBarSize     float64
}

func DefaultBarLayout(bandSize float64) BarLayout {
	return BarLayout{
		BarGap:         Px(4),
		BarCategoryGap: Percent(10),
		BandSize:       bandSize,
	}
}

// BarSizeList resolves the explicit size of each slot. Sizes given as percent
// are relative to total. A slot without size uses the size of the chart.
func BarSizeList(slots [][]string, sizes []Length, global Length, total float64) []BarSlot {
	list := make([]BarSlot, 0, len(slots))
	for i, items := range slots {
		size := global
		if i < len(sizes) && sizes[i].IsSet() {
			size = sizes[i]
		}
		list = append(list, BarSlot{
			Items: items,
			Size:  size.Resolve(total, 0, false),
		})
	}
	return list
}

// BarPosition places every slot of a category. The result is keyed by the id
// of the items of each slot.
func BarPosition(slots []BarSlot, layout BarLayout) map[string]BarPlacement {
	if len(slots) == 0 {
		return nil
	}
	var (
		count    = float64(len(slots))
		band     = layout.BandSize
		gap      = layout.BarGap.Resolve(band, 0, true)
		res      = make(map[string]BarPlacement)
		register = func(slot BarSlot, p BarPlacement) {
			for _, id := range slot.Items {
				res[id] = p
			}
		}
	)
	if slots[0].Size > 0 {
		var (
			useFull  bool
			fullSize = band / count
			sum      float64
		)
		for _, s := range slots {
			sum += s.Size
		}
		sum += (count - 1) * gap
		if sum >= band {
			sum -= (count - 1) * gap
			gap = 0
		}
		if sum >= band && fullSize > 0 {
			useFull = true
			fullSize *= 0.9
			sum = count * fullSize
		}
		prev := BarPlacement{
			Offset: math.Trunc((band-sum)/2) - gap,
		}
		for _, s := range slots {
			curr := BarPlacement{
				Offset: prev.Offset + prev.Size + gap,
				Size:   s.Size,
			}
			if useFull {
				curr.Size = fullSize
			}
			register(s, curr)
			prev = curr
		}
		return res
	}
	offset := layout.BarCategoryGap.Resolve(band, 0, true)
	if band-2*offset-(count-1)*gap <= 0 {
		gap = 0
	}
	orig := (band - 2*offset - (count-1)*gap) / count
	if orig > 1 {
		orig = math.Trunc(orig)
	}
	size := orig
	if layout.MaxBarSize > 0 {
		size = math.Min(orig, layout.MaxBarSize)
	}
	for i, s := range slots {
		register(s, BarPlacement{
			Offset: offset + (orig+gap)*float64(i) + (orig-size)/2,
			Size:   size,
		})
	}
	return res
}

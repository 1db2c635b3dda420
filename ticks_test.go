package chartgeo

import (
	"testing"
)

type fixedMeasurer struct {
	width  float64
	height float64
}

func (m fixedMeasurer) Measure(_ string, _ float64) (float64, float64) {
	return m.width, m.height
}

func evenTicks(n int, step float64) []Tick {
	list := make([]Tick, n)
	for i := range list {
		list[i] = Tick{
			Value:      i,
			Coordinate: float64(i) * step,
			Index:      i,
		}
	}
	return list
}

func indexesOf(ticks []Tick) []int {
	list := make([]int, len(ticks))
	for i := range ticks {
		list[i] = ticks[i].Index
	}
	return list
}

func sameIndexes(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestEquidistantTicks(t *testing.T) {
	size := func(sz float64) TickSizeFunc {
		return func(Tick, int) float64 { return sz }
	}
	t.Run("every-other", func(t *testing.T) {
		var (
			bounds = Boundaries{Start: 0, End: 100}
			got    = EquidistantTicks(1, bounds, size(15), evenTicks(10, 10), 0)
			want   = []int{0, 2, 4, 6, 8}
		)
		if ix := indexesOf(got); !sameIndexes(ix, want) {
			t.Errorf("want %v, got %v", want, ix)
		}
	})
	t.Run("first-kept", func(t *testing.T) {
		var (
			bounds = Boundaries{Start: 0, End: 100}
			got    = EquidistantTicks(1, bounds, size(30), evenTicks(3, 50), 0)
			want   = []int{0}
		)
		if ix := indexesOf(got); !sameIndexes(ix, want) {
			t.Errorf("want %v, got %v", want, ix)
		}
	})
}

func TestFilterTicks(t *testing.T) {
	layout := TickLayout{
		ViewBox:     Rect{X: 0, Y: 0, Width: 100, Height: 20},
		Orientation: OrientBottom,
		Measurer:    fixedMeasurer{width: 15, height: 10},
	}
	t.Run("preserve-end", func(t *testing.T) {
		opts := layout
		opts.Interval = PreserveEnd()
		var (
			got  = FilterTicks(evenTicks(11, 10), opts)
			want = []int{1, 3, 5, 7, 10}
		)
		if ix := indexesOf(got); !sameIndexes(ix, want) {
			t.Fatalf("want %v, got %v", want, ix)
		}
		if last := got[len(got)-1]; last.TickCoord != 92.5 {
			t.Errorf("last label should be pushed inside the axis, got %v", last.TickCoord)
		}
	})
	t.Run("every-n", func(t *testing.T) {
		opts := layout
		opts.Interval = EveryN(1)
		var (
			got  = FilterTicks(evenTicks(5, 10), opts)
			want = []int{0, 2, 4}
		)
		if ix := indexesOf(got); !sameIndexes(ix, want) {
			t.Errorf("want %v, got %v", want, ix)
		}
	})
	t.Run("empty", func(t *testing.T) {
		if got := FilterTicks(nil, layout); len(got) != 0 {
			t.Errorf("want no ticks, got %d", len(got))
		}
	})
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		Input string
		Want  string
		Err   bool
	}{
		{Input: "", Want: "preserveEnd"},
		{Input: "preserveStartEnd", Want: "preserveStartEnd"},
		{Input: "equidistantPreserveStart", Want: "equidistantPreserveStart"},
		{Input: "3", Want: "3"},
		{Input: "-1", Err: true},
		{Input: "sometimes", Err: true},
	}
	for _, tt := range tests {
		got, err := ParseInterval(tt.Input)
		if tt.Err {
			if err == nil {
				t.Errorf("%q: expected error", tt.Input)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %s", tt.Input, err)
			continue
		}
		if got.String() != tt.Want {
			t.Errorf("%q: want %s, got %s", tt.Input, tt.Want, got)
		}
	}
}

func TestAngledRectangleWidth(t *testing.T) {
	if got := AngledRectangleWidth(20, 10, 0); got != 20 {
		t.Errorf("unrotated box: want 20, got %v", got)
	}
	if got := AngledRectangleWidth(20, 10, 90); got != 10 {
		t.Errorf("vertical box: want 10, got %v", got)
	}
}

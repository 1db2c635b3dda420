package chartgeo

import (
	"testing"
)

func TestBandSizeOfAxis(t *testing.T) {
	t.Run("band", func(t *testing.T) {
		s := BandScale([]any{"a", "b"}, NewRange(0, 100))
		if got := BandSizeOfAxis(s, nil, false); got != 50 {
			t.Errorf("want bandwidth 50, got %v", got)
		}
	})
	t.Run("few-ticks", func(t *testing.T) {
		s := LinearScale(0, 1, NewRange(0, 100))
		if got := BandSizeOfAxis(s, []Tick{{Coordinate: 10}}, false); got != 0 {
			t.Errorf("want 0 with less than 2 ticks, got %v", got)
		}
	})
	t.Run("min-delta", func(t *testing.T) {
		var (
			s     = LinearScale(0, 1, NewRange(0, 100))
			ticks = []Tick{{Coordinate: 0}, {Coordinate: 30}, {Coordinate: 10}}
		)
		if got := BandSizeOfAxis(s, ticks, false); got != 10 {
			t.Errorf("want smallest delta 10, got %v", got)
		}
	})
	t.Run("point", func(t *testing.T) {
		var (
			s     = PointScale([]any{"a", "b", "c"}, NewRange(0, 100))
			ticks = []Tick{{Coordinate: 0}, {Coordinate: 50}, {Coordinate: 100}}
		)
		if got := BandSizeOfAxis(s, ticks, false); got != 0 {
			t.Errorf("want 0 for points, got %v", got)
		}
	})
	t.Run("point-bar", func(t *testing.T) {
		var (
			s     = PointScale([]any{"a", "b", "c"}, NewRange(0, 100))
			ticks = []Tick{{Coordinate: 0}, {Coordinate: 50}, {Coordinate: 100}}
		)
		if got := BandSizeOfAxis(s, ticks, true); got != 50 {
			t.Errorf("want 50, got %v", got)
		}
	})
}

func TestBarSizeList(t *testing.T) {
	var (
		slots = [][]string{{"a", "b"}, {"c"}}
		sizes = []Length{Percent(10)}
		list  = BarSizeList(slots, sizes, Px(8), 200)
	)
	if len(list) != 2 {
		t.Fatalf("want 2 slots, got %d", len(list))
	}
	if list[0].Size != 20 {
		t.Errorf("first slot: want 20, got %v", list[0].Size)
	}
	if list[1].Size != 8 {
		t.Errorf("second slot: want global size 8, got %v", list[1].Size)
	}
}

func TestBarPosition(t *testing.T) {
	t.Run("auto", func(t *testing.T) {
		slots := []BarSlot{{Items: []string{"a"}}, {Items: []string{"b", "c"}}}
		pos := BarPosition(slots, DefaultBarLayout(100))
		want := map[string]BarPlacement{
			"a": {Offset: 10, Size: 38},
			"b": {Offset: 52, Size: 38},
			"c": {Offset: 52, Size: 38},
		}
		for id, w := range want {
			if got := pos[id]; got != w {
				t.Errorf("%s: want %+v, got %+v", id, w, got)
			}
		}
	})
	t.Run("max-bar-size", func(t *testing.T) {
		var (
			slots  = []BarSlot{{Items: []string{"a"}}, {Items: []string{"b"}}}
			layout = DefaultBarLayout(100)
		)
		layout.MaxBarSize = 30
		pos := BarPosition(slots, layout)
		if got := pos["a"]; got != (BarPlacement{Offset: 14, Size: 30}) {
			t.Errorf("a: unexpected placement %+v", got)
		}
		if got := pos["b"]; got != (BarPlacement{Offset: 56, Size: 30}) {
			t.Errorf("b: unexpected placement %+v", got)
		}
	})
	t.Run("explicit", func(t *testing.T) {
		slots := []BarSlot{
			{Items: []string{"a"}, Size: 20},
			{Items: []string{"b"}, Size: 20},
		}
		pos := BarPosition(slots, DefaultBarLayout(100))
		if got := pos["a"]; got != (BarPlacement{Offset: 28, Size: 20}) {
			t.Errorf("a: unexpected placement %+v", got)
		}
		if got := pos["b"]; got != (BarPlacement{Offset: 52, Size: 20}) {
			t.Errorf("b: unexpected placement %+v", got)
		}
	})
	t.Run("empty", func(t *testing.T) {
		if pos := BarPosition(nil, DefaultBarLayout(100)); pos != nil {
			t.Errorf("no slot should give no placement")
		}
	})
}

package chartgeo

import (
	"testing"
)

func testBrush(start, end, gap int) Brush {
	settings := DefaultBrush()
	settings.StartIndex = start
	settings.EndIndex = end
	settings.Gap = gap
	var (
		off    = Offset{Left: 10, Top: 5, Width: 105, Height: 100, BrushBottom: 45}
		margin = Padding{Bottom: 5}
	)
	return ComputeBrush(settings, 5, off, margin)
}

func TestComputeBrush(t *testing.T) {
	b := testBrush(0, -1, 1)
	if b.Y != 145 || b.Height != DefaultBrushHeight {
		t.Errorf("unexpected brush area %+v", b.Rect)
	}
	want := []float64{10, 35, 60, 85, 110}
	if len(b.Values) != len(want) {
		t.Fatalf("want %d values, got %d", len(want), len(b.Values))
	}
	for i := range want {
		if b.Values[i] != want[i] {
			t.Errorf("value %d: want %v, got %v", i, want[i], b.Values[i])
		}
	}
	if b.StartIndex != 0 || b.EndIndex != 4 {
		t.Errorf("want full window, got [%d, %d]", b.StartIndex, b.EndIndex)
	}
	if b.StartX != 10 || b.EndX != 110 {
		t.Errorf("travellers misplaced: %v, %v", b.StartX, b.EndX)
	}
}

func TestBrushWindow(t *testing.T) {
	tests := []struct {
		Name  string
		Gap   int
		Start float64
		End   float64
		Want  [2]int
	}{
		{Name: "inside", Gap: 1, Start: 30, End: 90, Want: [2]int{0, 3}},
		{Name: "swapped", Gap: 1, Start: 90, End: 30, Want: [2]int{0, 3}},
		{Name: "gap", Gap: 2, Start: 40, End: 90, Want: [2]int{0, 2}},
		{Name: "gap-last", Gap: 2, Start: 40, End: 110, Want: [2]int{0, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			b := testBrush(0, -1, tt.Gap)
			lo, hi := b.Window(tt.Start, tt.End)
			if got := [2]int{lo, hi}; got != tt.Want {
				t.Errorf("want %v, got %v", tt.Want, got)
			}
		})
	}
}

func TestBrushSlide(t *testing.T) {
	b := testBrush(1, 2, 1)
	if b.StartX != 35 || b.EndX != 60 {
		t.Fatalf("travellers misplaced: %v, %v", b.StartX, b.EndX)
	}
	right := b.Slide(30)
	if right.StartIndex != 2 || right.EndIndex != 3 {
		t.Errorf("slide right: want [2, 3], got [%d, %d]", right.StartIndex, right.EndIndex)
	}
	left := b.Slide(-100)
	if left.StartX != 10 || left.EndX != 35 {
		t.Errorf("slide left should stop at the start: %v, %v", left.StartX, left.EndX)
	}
	if left.StartIndex != 0 || left.EndIndex != 1 {
		t.Errorf("slide left: want [0, 1], got [%d, %d]", left.StartIndex, left.EndIndex)
	}
}

func TestBrushMoveTraveller(t *testing.T) {
	b := testBrush(1, 2, 1).MoveTraveller(false, 100)
	if b.EndX != 110 {
		t.Errorf("end traveller should stop at the end, got %v", b.EndX)
	}
	if b.StartIndex != 1 || b.EndIndex != 4 {
		t.Errorf("want [1, 4], got [%d, %d]", b.StartIndex, b.EndIndex)
	}
	b = b.MoveTraveller(true, -100)
	if b.StartX != 10 || b.StartIndex != 0 {
		t.Errorf("start traveller should stop at the start, got %v", b.StartX)
	}
}

func TestIndexInRange(t *testing.T) {
	values := []float64{10, 35, 60, 85, 110}
	tests := []struct {
		X    float64
		Want int
	}{
		{X: 0, Want: 0},
		{X: 10, Want: 0},
		{X: 59, Want: 1},
		{X: 60, Want: 2},
		{X: 200, Want: 4},
	}
	for _, tt := range tests {
		if got := IndexInRange(values, tt.X); got != tt.Want {
			t.Errorf("IndexInRange(%v): want %d, got %d", tt.X, tt.Want, got)
		}
	}
}

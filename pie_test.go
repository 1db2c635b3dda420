package chartgeo

import (
	"math"
	"testing"
)

func pieRows(values ...float64) []Row {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{"name": string(rune('a' + i)), "value": v}
	}
	return rows
}

func TestComputePie(t *testing.T) {
	var (
		off = Offset{Width: 200, Height: 200}
		geo = ComputePie(pieRows(1, 1, 1, 1), DefaultPie("pie"), off)
	)
	if len(geo.Sectors) != 4 {
		t.Fatalf("want 4 sectors, got %d", len(geo.Sectors))
	}
	want := [][2]float64{{0, 90}, {90, 180}, {180, 270}, {270, 360}}
	for i, w := range want {
		s := geo.Sectors[i]
		if s.StartAngle != w[0] || s.EndAngle != w[1] {
			t.Errorf("sector %d: want %v, got [%v, %v]", i, w, s.StartAngle, s.EndAngle)
		}
		if s.Cx != 100 || s.Cy != 100 || s.OuterRadius != 80 {
			t.Errorf("sector %d: unexpected frame %+v", i, s.Sector)
		}
		if s.Percent != 0.25 {
			t.Errorf("sector %d: want 25%%, got %v", i, s.Percent)
		}
		if s.Path == "" {
			t.Errorf("sector %d: path missing", i)
		}
	}
	if name := geo.Sectors[2].Name; name != "c" {
		t.Errorf("want name c, got %v", name)
	}
}

func TestComputePiePadding(t *testing.T) {
	var (
		off   = Offset{Width: 200, Height: 200}
		serie = DefaultPie("pie")
	)
	serie.PaddingAngle = 10
	serie.MinAngle = 5
	geo := ComputePie(pieRows(1, 0, 3), serie, off)
	if len(geo.Sectors) != 3 {
		t.Fatalf("want 3 sectors, got %d", len(geo.Sectors))
	}
	var total float64
	for _, s := range geo.Sectors {
		total += s.EndAngle - s.StartAngle
	}
	// two non zero rows on a full circle give two paddings
	if math.Abs(total+20-360) > 1e-9 {
		t.Errorf("sectors and paddings should cover the circle, got %v", total+20)
	}
	if zero := geo.Sectors[1]; zero.EndAngle != zero.StartAngle {
		t.Errorf("row without value should have an empty sector")
	}
}

func TestComputePieEmpty(t *testing.T) {
	geo := ComputePie(pieRows(0, 0), DefaultPie("pie"), Offset{Width: 200, Height: 200})
	if len(geo.Sectors) != 0 {
		t.Errorf("want no sector when values sum to 0, got %d", len(geo.Sectors))
	}
}

func TestPieSectorAt(t *testing.T) {
	geo := ComputePie(pieRows(1, 1, 1, 1), DefaultPie("pie"), Offset{Width: 200, Height: 200})
	tests := []struct {
		Point Point
		Want  int
		Ok    bool
	}{
		{Point: PolarToCartesian(100, 100, 40, 45), Want: 0, Ok: true},
		{Point: PolarToCartesian(100, 100, 40, 135), Want: 1, Ok: true},
		{Point: PolarToCartesian(100, 100, 40, 300), Want: 3, Ok: true},
		{Point: PolarToCartesian(100, 100, 90, 45), Want: -1},
	}
	for _, tt := range tests {
		got, ok := geo.SectorAt(tt.Point)
		if ok != tt.Ok || got != tt.Want {
			t.Errorf("%+v: want %d (%t), got %d (%t)", tt.Point, tt.Want, tt.Ok, got, ok)
		}
	}
}

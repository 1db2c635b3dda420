package chartgeo

import (
	"math"
	"testing"
)

func TestMathSign(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: -3, want: -1},
		{in: 0, want: 0},
		{in: 0.5, want: 1},
	}
	for _, tt := range tests {
		if got := MathSign(tt.in); got != tt.want {
			t.Errorf("MathSign(%v): want %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestIsWellBehavedNumber(t *testing.T) {
	if !IsWellBehavedNumber(1.5) {
		t.Errorf("1.5 should be a well behaved number")
	}
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsWellBehavedNumber(f) {
			t.Errorf("%v should not be a well behaved number", f)
		}
	}
}

func TestStringifyNumber(t *testing.T) {
	tests := []struct {
		In   any
		Want string
	}{
		{In: 0, Want: "0"},
		{In: 12, Want: "12"},
		{In: -0.25, Want: "-0.25"},
		{In: 1e20, Want: "100000000000000000000"},
		{In: 1e21, Want: "1e+21"},
		{In: 1.5e22, Want: "1.5e+22"},
		{In: -2e300, Want: "-2e+300"},
		{In: 0.000001, Want: "0.000001"},
		{In: 1.5e-7, Want: "1.5e-7"},
		{In: 3e-10, Want: "3e-10"},
	}
	for _, tt := range tests {
		if got := Stringify(tt.In); got != tt.Want {
			t.Errorf("Stringify(%v): want %s, got %s", tt.In, tt.Want, got)
		}
	}
}

func TestGetPercentValue(t *testing.T) {
	tests := []struct {
		Name     string
		Value    any
		Total    float64
		Def      float64
		Validate bool
		Want     float64
	}{
		{Name: "percent", Value: "50%", Total: 200, Want: 100},
		{Name: "number", Value: 30, Total: 200, Want: 30},
		{Name: "validated", Value: 300, Total: 200, Validate: true, Want: 200},
		{Name: "invalid", Value: "abc", Total: 100, Def: 7, Want: 7},
		{Name: "nil", Value: nil, Total: 100, Def: 3, Want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			got := GetPercentValue(tt.Value, tt.Total, tt.Def, tt.Validate)
			if got != tt.Want {
				t.Errorf("want %v, got %v", tt.Want, got)
			}
		})
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		Input string
		Total float64
		Want  float64
		Err   bool
	}{
		{Input: "40%", Total: 200, Want: 80},
		{Input: "12.5", Total: 200, Want: 12.5},
		{Input: "", Total: 200, Want: -1},
		{Input: "abc", Err: true},
	}
	for _, tt := range tests {
		t.Run(tt.Input, func(t *testing.T) {
			n, err := ParseLength(tt.Input)
			if tt.Err {
				if err == nil {
					t.Errorf("expected error parsing %q", tt.Input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got := n.Resolve(tt.Total, -1, false); got != tt.Want {
				t.Errorf("want %v, got %v", tt.Want, got)
			}
		})
	}
}

func TestLinearRegression(t *testing.T) {
	points := []Point{NewPoint(0, 1), NewPoint(1, 3), NewPoint(2, 5)}
	reg := LinearRegression(points)
	if reg.XMin != 0 || reg.XMax != 2 {
		t.Fatalf("unexpected extent [%v, %v]", reg.XMin, reg.XMax)
	}
	if got := reg.At(1.5); math.Abs(got-4) > 1e-9 {
		t.Errorf("want 4 at 1.5, got %v", got)
	}
}

package chartgeo

import (
	"errors"
	"testing"
)

func TestParseBound(t *testing.T) {
	tests := []struct {
		Input string
		Want  string
		Err   bool
	}{
		{Input: "", Want: "auto"},
		{Input: "auto", Want: "auto"},
		{Input: "10", Want: "10"},
		{Input: "dataMin", Want: "dataMin"},
		{Input: "dataMax + 5", Want: "dataMax + 5"},
		{Input: "dataMin - 2.5", Want: "dataMin - 2.5"},
		{Input: "dataMiddle", Err: true},
		{Input: "Inf", Err: true},
	}
	for _, tt := range tests {
		t.Run(tt.Input, func(t *testing.T) {
			got, err := ParseBound(tt.Input)
			if tt.Err {
				if !errors.Is(err, ErrInvalidBound) {
					t.Errorf("expected invalid bound error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got.String() != tt.Want {
				t.Errorf("want %s, got %s", tt.Want, got)
			}
		})
	}
}

func TestParseSpecifiedDomain(t *testing.T) {
	data := [2]float64{5, 50}
	tests := []struct {
		Name     string
		Spec     DomainSpec
		Overflow bool
		Want     [2]float64
	}{
		{Name: "unset", Spec: DomainSpec{}, Want: data},
		{Name: "auto", Spec: SpecBounds(Auto(), Auto()), Want: data},
		{Name: "fixed", Spec: SpecBounds(Fixed(0), Fixed(100)), Want: [2]float64{0, 100}},
		{Name: "widened", Spec: SpecBounds(Fixed(10), Fixed(20)), Want: [2]float64{5, 50}},
		{Name: "overflow", Spec: SpecBounds(Fixed(10), Fixed(20)), Overflow: true, Want: [2]float64{10, 20}},
		{Name: "shifted", Spec: SpecBounds(DataMinMinus(5), DataMaxPlus(10)), Want: [2]float64{0, 60}},
		{
			Name: "func",
			Spec: SpecFunc(func(d [2]float64, _ bool) [2]float64 {
				return [2]float64{d[0] * 2, d[1] * 2}
			}),
			Want: [2]float64{10, 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			got := ParseSpecifiedDomain(tt.Spec, data, tt.Overflow)
			if got != tt.Want {
				t.Errorf("want %v, got %v", tt.Want, got)
			}
		})
	}
}

func TestCategoryDomainOfData(t *testing.T) {
	rows := []Row{{"k": "a"}, {"k": "b"}, {"k": "a"}}
	t.Run("unique", func(t *testing.T) {
		values, dups := CategoryDomainOfData(rows, Key("k"), false)
		if len(values) != 2 || values[0] != "a" || values[1] != "b" {
			t.Errorf("unexpected categories %v", values)
		}
		if dups != nil {
			t.Errorf("no duplicates expected")
		}
	})
	t.Run("duplicated", func(t *testing.T) {
		values, dups := CategoryDomainOfData(rows, Key("k"), true)
		if len(values) != 3 || values[2] != 2 {
			t.Errorf("want indices, got %v", values)
		}
		if len(dups) != 3 || dups[2] != "a" {
			t.Errorf("want labels, got %v", dups)
		}
	})
}

func TestResolveAxisDomain(t *testing.T) {
	rows := []Row{{"x": "a", "v": 3}, {"x": "b", "v": -2}, {"x": "c", "v": 8}}
	t.Run("number", func(t *testing.T) {
		axis := DefaultYAxis("0")
		axis.DataKey = Key("v")
		dom, ok := ResolveAxisDomain(rows, axis, DomainSource{})
		if !ok {
			t.Fatalf("domain should be resolved")
		}
		if got := dom.Bounds(); got != [2]float64{-2, 8} {
			t.Errorf("want [-2, 8], got %v", got)
		}
	})
	t.Run("items", func(t *testing.T) {
		axis := DefaultYAxis("0")
		src := DomainSource{Items: [2]float64{1, 12}, HasItems: true, Extend: []float64{20}}
		dom, ok := ResolveAxisDomain(rows, axis, src)
		if !ok {
			t.Fatalf("domain should be resolved")
		}
		if got := dom.Bounds(); got != [2]float64{0, 20} {
			t.Errorf("want [0, 20], got %v", got)
		}
	})
	t.Run("category", func(t *testing.T) {
		axis := DefaultXAxis("0")
		axis.DataKey = Key("x")
		dom, ok := ResolveAxisDomain(rows, axis, DomainSource{Categorical: true})
		if !ok {
			t.Fatalf("domain should be resolved")
		}
		if dom.Len() != 3 || dom.Values[1] != "b" {
			t.Errorf("unexpected categories %v", dom.Values)
		}
	})
	t.Run("index", func(t *testing.T) {
		axis := DefaultXAxis("0")
		dom, ok := ResolveAxisDomain(rows, axis, DomainSource{Categorical: true})
		if !ok || dom.Len() != 3 || dom.Values[2] != 2 {
			t.Errorf("want row indices, got %v", dom.Values)
		}
	})
	t.Run("empty", func(t *testing.T) {
		if _, ok := ResolveAxisDomain(nil, DefaultYAxis("0"), DomainSource{}); ok {
			t.Errorf("no rows should give no domain")
		}
		axis := DefaultYAxis("0")
		axis.DataKey = Key("missing")
		if _, ok := ResolveAxisDomain(rows, axis, DomainSource{}); ok {
			t.Errorf("no number should give no domain")
		}
	})
}

func TestNiceTickValues(t *testing.T) {
	tests := []struct {
		Domain [2]float64
		Count  int
		Want   []float64
	}{
		{Domain: [2]float64{0, 100}, Count: 5, Want: []float64{0, 25, 50, 75, 100}},
		{Domain: [2]float64{0, 10}, Count: 5, Want: []float64{0, 3, 6, 9, 12}},
		{Domain: [2]float64{-4, 10}, Count: 5, Want: []float64{-4, 0, 4, 8, 12}},
		{Domain: [2]float64{100, 0}, Count: 5, Want: []float64{100, 75, 50, 25, 0}},
	}
	for _, tt := range tests {
		got := NiceTickValues(tt.Domain, tt.Count, true)
		if len(got) != len(tt.Want) {
			t.Errorf("%v: want %v, got %v", tt.Domain, tt.Want, got)
			continue
		}
		for i := range got {
			if got[i] != tt.Want[i] {
				t.Errorf("%v: want %v, got %v", tt.Domain, tt.Want, got)
				break
			}
		}
	}
}

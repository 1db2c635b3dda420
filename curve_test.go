package chartgeo

import (
	"testing"
)

func TestPath(t *testing.T) {
	tests := []struct {
		Name   string
		Type   CurveType
		Points []Point
		Base   BaseLine
		Want   string
	}{
		{
			Name:   "linear",
			Type:   CurveLinear,
			Points: []Point{NewPoint(0, 0), NewPoint(1, 1)},
			Want:   "M0,0L1,1",
		},
		{
			Name:   "step",
			Type:   CurveStep,
			Points: []Point{NewPoint(0, 0), NewPoint(2, 2)},
			Want:   "M0,0L1,0L1,2L2,2",
		},
		{
			Name:   "step-before",
			Type:   CurveStepBefore,
			Points: []Point{NewPoint(0, 0), NewPoint(2, 2)},
			Want:   "M0,0L0,2L2,2",
		},
		{
			Name:   "step-after",
			Type:   CurveStepAfter,
			Points: []Point{NewPoint(0, 0), NewPoint(2, 2)},
			Want:   "M0,0L2,0L2,2",
		},
		{
			Name:   "area",
			Type:   CurveLinear,
			Points: []Point{NewPoint(0, 0), NewPoint(1, 1)},
			Base:   ConstBaseLine(10),
			Want:   "M0,0L1,1L1,10L0,10Z",
		},
		{
			Name:   "split",
			Type:   CurveLinear,
			Points: []Point{NewPoint(0, 0), NewPoint(1, 1), UndefinedPoint(), NewPoint(3, 3), NewPoint(4, 4)},
			Want:   "M0,0L1,1M3,3L4,4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			got, ok := Path(PathOptions{
				Type:     tt.Type,
				Points:   tt.Points,
				BaseLine: tt.Base,
				Layout:   LayoutHorizontal,
			})
			if !ok {
				t.Fatalf("path should be drawn")
			}
			if got != tt.Want {
				t.Errorf("want %s, got %s", tt.Want, got)
			}
		})
	}
}

func TestPathConnectNulls(t *testing.T) {
	var (
		withNulls = []Point{NewPoint(0, 0), UndefinedPoint(), NewPoint(2, 2), NewPoint(3, 1)}
		defined   = []Point{NewPoint(0, 0), NewPoint(2, 2), NewPoint(3, 1)}
	)
	for _, c := range []CurveType{CurveLinear, CurveMonotone, CurveNatural, CurveBasis, CurveStep} {
		t.Run(string(c), func(t *testing.T) {
			got, _ := Path(PathOptions{Type: c, Points: withNulls, ConnectNulls: true})
			want, _ := Path(PathOptions{Type: c, Points: defined})
			if got != want {
				t.Errorf("connected path differs: want %s, got %s", want, got)
			}
		})
	}
}

func TestPathNotEnoughPoints(t *testing.T) {
	tests := []struct {
		Name    string
		Options PathOptions
	}{
		{Name: "empty", Options: PathOptions{Type: CurveLinear}},
		{Name: "single", Options: PathOptions{Type: CurveLinear, Points: []Point{NewPoint(1, 1)}}},
		{
			Name: "single-defined",
			Options: PathOptions{
				Type:         CurveMonotone,
				Points:       []Point{NewPoint(1, 1), UndefinedPoint()},
				ConnectNulls: true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			got, ok := Path(tt.Options)
			if ok || got != "" {
				t.Errorf("no path expected, got %q", got)
			}
		})
	}
}

func TestParseCurveType(t *testing.T) {
	if c, err := ParseCurveType(""); err != nil || c != CurveLinear {
		t.Errorf("empty curve type should default to linear")
	}
	if _, err := ParseCurveType("wobbly"); err == nil {
		t.Errorf("unknown curve type should be rejected")
	}
}

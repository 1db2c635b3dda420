package chartgeo

import (
	"testing"
)

func TestStackedData(t *testing.T) {
	tests := []struct {
		Name   string
		Rows   []Row
		Keys   []DataKey
		Offset StackOffset
		Want   [][][2]float64
	}{
		{
			Name:   "none",
			Rows:   []Row{{"a": 1, "b": 2}, {"a": 3, "b": -1}},
			Keys:   []DataKey{Key("a"), Key("b")},
			Offset: StackNone,
			Want: [][][2]float64{
				{{0, 1}, {0, 3}},
				{{1, 3}, {3, 2}},
			},
		},
		{
			Name:   "expand",
			Rows:   []Row{{"a": 1, "b": 3}},
			Keys:   []DataKey{Key("a"), Key("b")},
			Offset: StackExpand,
			Want: [][][2]float64{
				{{0, 0.25}},
				{{0.25, 1}},
			},
		},
		{
			Name:   "sign",
			Rows:   []Row{{"a": 2, "b": -1, "c": 3}},
			Keys:   []DataKey{Key("a"), Key("b"), Key("c")},
			Offset: StackSign,
			Want: [][][2]float64{
				{{0, 2}},
				{{0, -1}},
				{{2, 5}},
			},
		},
		{
			Name:   "silhouette",
			Rows:   []Row{{"a": 2, "b": 2}},
			Keys:   []DataKey{Key("a"), Key("b")},
			Offset: StackSilhouette,
			Want: [][][2]float64{
				{{-2, 0}},
				{{0, 2}},
			},
		},
		{
			Name:   "missing",
			Rows:   []Row{{"a": 1}},
			Keys:   []DataKey{Key("a"), Key("b")},
			Offset: StackNone,
			Want: [][][2]float64{
				{{0, 1}},
				{{1, 1}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			got := StackedData(tt.Rows, tt.Keys, tt.Offset)
			if len(got) != len(tt.Want) {
				t.Fatalf("want %d series, got %d", len(tt.Want), len(got))
			}
			for i := range tt.Want {
				if len(got[i]) != len(tt.Want[i]) {
					t.Fatalf("serie %d: want %d values, got %d", i, len(tt.Want[i]), len(got[i]))
				}
				for j := range tt.Want[i] {
					if got[i][j] != tt.Want[i][j] {
						t.Errorf("serie %d, row %d: want %v, got %v", i, j, tt.Want[i][j], got[i][j])
					}
				}
			}
		})
	}
}

func TestStackGroups(t *testing.T) {
	var (
		rows  = []Row{{"a": 1, "b": 2, "c": 4}, {"a": 2, "b": 2, "c": 1}}
		items = []StackItem{
			{ID: "a", AxisID: "0", StackID: "s", DataKey: Key("a")},
			{ID: "b", AxisID: "0", StackID: "s", DataKey: Key("b")},
			{ID: "c", AxisID: "0", DataKey: Key("c")},
			{ID: "d", AxisID: "0", StackID: "s", DataKey: Key("c"), Hide: true},
		}
		list = StackGroups(rows, items, StackNone, false)
	)
	if len(list) != 1 {
		t.Fatalf("want 1 axis, got %d", len(list))
	}
	stack := list[0]
	if !stack.HasStack {
		t.Fatalf("axis should carry a stack")
	}
	if len(stack.Groups) != 2 {
		t.Fatalf("want 2 groups, got %d", len(stack.Groups))
	}
	if g := stack.Groups[0]; g.ID != "s" || len(g.Items) != 2 {
		t.Errorf("unexpected first group %+v", g)
	}
	values, ok := stack.Stacked("b")
	if !ok {
		t.Fatalf("b should be stacked")
	}
	if values[0] != [2]float64{1, 3} || values[1] != [2]float64{2, 4} {
		t.Errorf("unexpected stacked values for b: %v", values)
	}
	if _, ok := stack.Stacked("d"); ok {
		t.Errorf("hidden items should not be stacked")
	}
	if _, ok := stack.Group("c"); !ok {
		t.Errorf("c should be in its own group")
	}
	dom := DomainOfStackGroups(stack.Groups, 0, 1)
	if dom != [2]float64{0, 4} {
		t.Errorf("want domain [0, 4], got %v", dom)
	}
	dom = DomainOfStackGroups(stack.Groups, 1, 1)
	if dom != [2]float64{0, 4} {
		t.Errorf("want domain [0, 4] for second row, got %v", dom)
	}
}

func TestStackGroupsReverse(t *testing.T) {
	var (
		rows  = []Row{{"a": 1, "b": 2}}
		items = []StackItem{
			{ID: "a", AxisID: "0", StackID: "s", DataKey: Key("a")},
			{ID: "b", AxisID: "0", StackID: "s", DataKey: Key("b")},
		}
		list = StackGroups(rows, items, StackNone, true)
	)
	values, ok := list[0].Stacked("a")
	if !ok {
		t.Fatalf("a should be stacked")
	}
	if values[0] != [2]float64{2, 3} {
		t.Errorf("a should be stacked over b, got %v", values[0])
	}
}

func TestParseStackOffset(t *testing.T) {
	if o, err := ParseStackOffset(""); err != nil || o != StackNone {
		t.Errorf("empty offset should default to none")
	}
	if _, err := ParseStackOffset("diagonal"); err == nil {
		t.Errorf("unknown offset should be rejected")
	}
}

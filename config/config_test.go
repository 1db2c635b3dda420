package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/midbel/chartgeo"
)

const barChart = `
kind: bar
title: sales
width: 400
height: 300
margin:
  left: 20
axes:
  - kind: xAxis
    dataKey: name
  - kind: y
    type: number
    domain: [0, dataMax + 10]
items:
  - kind: bar
    id: sales
    dataKey: v
    barSize: 20
data:
  rows:
    - {name: a, v: 10}
    - {name: b, v: 20}
    - {name: c, v: 30}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %s", name, err)
	}
	return file
}

func TestLoad(t *testing.T) {
	file := writeFile(t, "bar.yml", barChart)
	f, err := Load(file)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if f.Path() != file {
		t.Errorf("path: want %s, got %s", file, f.Path())
	}
	if f.Width != 400 || f.Height != 300 {
		t.Errorf("size: want 400x300, got %gx%g", f.Width, f.Height)
	}
	if f.Margin.Left == nil || *f.Margin.Left != 20 {
		t.Errorf("left margin not decoded")
	}
	if f.Margin.Top != nil {
		t.Errorf("top margin should be unset")
	}
	if len(f.Axes) != 2 || len(f.Items) != 1 {
		t.Fatalf("want 2 axes and 1 item, got %d and %d", len(f.Axes), len(f.Items))
	}
	if got := f.Axes[0].Kind; got != "xAxis" {
		t.Errorf("axis kind: want xAxis, got %s", got)
	}
	if got := f.Axes[1].Domain; len(got) != 2 || got[0] != "0" || got[1] != "dataMax + 10" {
		t.Errorf("domain: unexpected bounds %q", got)
	}
	if got := f.Items[0].BarSize; got != "20" {
		t.Errorf("bar size: want 20, got %s", got)
	}
}

func TestLoadEnv(t *testing.T) {
	file := writeFile(t, "line.yml", "kind: line\nitems:\n  - kind: line\n    dataKey: v\n")

	f, err := Load(file)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if f.Width != 600 || f.Height != 400 {
		t.Errorf("default size: want 600x400, got %gx%g", f.Width, f.Height)
	}

	t.Setenv("CHARTGEO_WIDTH", "800")
	t.Setenv("CHARTGEO_SYNC_ID", "dashboard")
	f, err = Load(file)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if f.Width != 800 {
		t.Errorf("width: want 800, got %g", f.Width)
	}
	if f.SyncID != "dashboard" {
		t.Errorf("sync id: want dashboard, got %s", f.SyncID)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		Name    string
		File    File
		Section string
		Option  string
	}{
		{
			Name:   "kind",
			File:   File{Kind: "gauge", Width: 10, Height: 10},
			Option: "kind",
		},
		{
			Name:   "size",
			File:   File{Kind: "line", Width: 0, Height: 10},
			Option: "size",
		},
		{
			Name:   "layout",
			File:   File{Kind: "line", Width: 10, Height: 10, Layout: "diagonal"},
			Option: "layout",
		},
		{
			Name:   "sync",
			File:   File{Kind: "line", Width: 10, Height: 10, SyncMethod: "nearest"},
			Option: "syncMethod",
		},
		{
			Name: "axis-kind",
			File: File{
				Kind:   "line",
				Width:  10,
				Height: 10,
				Axes:   []Axis{{Kind: "w"}},
			},
			Section: "axes[0]",
			Option:  "kind",
		},
		{
			Name: "axis-domain",
			File: File{
				Kind:   "line",
				Width:  10,
				Height: 10,
				Axes:   []Axis{{Kind: "y", Domain: []string{"0"}}},
			},
			Section: "axes[0]",
			Option:  "domain",
		},
		{
			Name: "axis-duplicate",
			File: File{
				Kind:   "line",
				Width:  10,
				Height: 10,
				Axes:   []Axis{{Kind: "y"}, {Kind: "y", ID: "0"}},
			},
			Section: "axes[1]",
			Option:  "id",
		},
		{
			Name: "item-key",
			File: File{
				Kind:   "line",
				Width:  10,
				Height: 10,
				Items:  []Item{{Kind: "line"}},
			},
			Section: "items[0]",
			Option:  "dataKey",
		},
		{
			Name: "item-duplicate",
			File: File{
				Kind:   "line",
				Width:  10,
				Height: 10,
				Items: []Item{
					{Kind: "line", ID: "a", DataKey: "v"},
					{Kind: "area", ID: "a", DataKey: "v"},
				},
			},
			Section: "items[1]",
			Option:  "id",
		},
		{
			Name: "reference",
			File: File{
				Kind:       "line",
				Width:      10,
				Height:     10,
				References: []Reference{{Kind: "band"}},
			},
			Section: "references[0]",
			Option:  "kind",
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			err := tt.File.Validate()
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("want ErrConfig, got %v", err)
			}
			var ce ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("want ConfigError, got %T", err)
			}
			if ce.Section != tt.Section || ce.Option != tt.Option {
				t.Errorf("want %s.%s, got %s.%s", tt.Section, tt.Option, ce.Section, ce.Option)
			}
		})
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := ConfigError{File: "chart.yml", Section: "axes[0]", Option: "kind", Message: "w: unknown axis"}
	if got, want := err.Error(), "chart.yml: axes[0].kind: w: unknown axis"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	err = ConfigError{Option: "size", Message: "bad"}
	if got, want := err.Error(), "size: bad"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestReadRows(t *testing.T) {
	tests := []struct {
		Name    string
		File    string
		Content string
	}{
		{
			Name:    "csv",
			File:    "data.csv",
			Content: "name,v\na,10\nb,\n",
		},
		{
			Name:    "json",
			File:    "data.json",
			Content: `[{"name": "a", "v": 10}, {"name": "b", "v": null}]`,
		},
		{
			Name:    "yaml",
			File:    "data.yml",
			Content: "- {name: a, v: 10}\n- {name: b, v: null}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			rows, err := ReadRows(writeFile(t, tt.File, tt.Content), "")
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if len(rows) != 2 {
				t.Fatalf("want 2 rows, got %d", len(rows))
			}
			if rows[0]["name"] != "a" || rows[1]["name"] != "b" {
				t.Errorf("unexpected names: %v, %v", rows[0]["name"], rows[1]["name"])
			}
			if v, ok := chartgeo.ToNumber(rows[0]["v"]); !ok || v != 10 {
				t.Errorf("first value: want 10, got %v", rows[0]["v"])
			}
			if rows[1]["v"] != nil {
				t.Errorf("second value should be missing, got %v", rows[1]["v"])
			}
		})
	}
}

func TestReadRowsError(t *testing.T) {
	file := writeFile(t, "broken.csv", "name,v\na,\"10\nb,20\n")
	_, err := ReadRows(file, "")
	if !errors.Is(err, ErrData) {
		t.Fatalf("want ErrData, got %v", err)
	}
	var de DataError
	if !errors.As(err, &de) {
		t.Fatalf("want DataError, got %T", err)
	}
	if de.File != file {
		t.Errorf("file: want %s, got %s", file, de.File)
	}
	if de.Line == 0 {
		t.Errorf("line should be set")
	}

	_, err = ReadRows(file, "xml")
	if !errors.Is(err, ErrData) {
		t.Errorf("unsupported format: want ErrData, got %v", err)
	}
}

func TestRowsFromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "values.csv"), []byte("name,v\na,1\nb,2\nc,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	desc := filepath.Join(dir, "chart.yml")
	if err := os.WriteFile(desc, []byte("kind: line\ndata:\n  file: values.csv\nitems:\n  - kind: line\n    dataKey: v\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(desc)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	rows, err := f.Rows()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(rows) != 3 {
		t.Errorf("want 3 rows, got %d", len(rows))
	}
}

func TestBuild(t *testing.T) {
	f, err := Load(writeFile(t, "bar.yml", barChart))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	chart, err := Build(f)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if chart.Method.String() != "index" {
		t.Errorf("default sync method should be index, got %s", chart.Method)
	}
	geo, err := chart.Compose()
	if err != nil {
		t.Fatalf("composing chart: %s", err)
	}
	if geo.Offset.Left <= 20 {
		t.Errorf("plot area should start after the margin, got %g", geo.Offset.Left)
	}
	y, ok := geo.Axis(chartgeo.YAxis, "0")
	if !ok {
		t.Fatalf("y axis not found")
	}
	if b := y.Domain.Bounds(); b[1] < 40 {
		t.Errorf("upper bound should include the offset, got %v", b)
	}
	var bar *chartgeo.BarGeometry
	for _, e := range geo.Elements {
		if g, ok := e.(chartgeo.BarGeometry); ok {
			bar = &g
		}
	}
	if bar == nil {
		t.Fatalf("no bar in geometry")
	}
	if bar.ID != "sales" || len(bar.Rects) != 3 {
		t.Fatalf("unexpected bar %s with %d rects", bar.ID, len(bar.Rects))
	}
	for i, r := range bar.Rects {
		if r.Width != 20 {
			t.Errorf("bar %d: want width 20, got %g", i, r.Width)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		Name    string
		File    File
		Section string
	}{
		{
			Name: "scale",
			File: File{
				Kind:   "line",
				Width:  100,
				Height: 100,
				Axes:   []Axis{{Kind: "x", Scale: "cubic"}},
			},
			Section: "axes[0]",
		},
		{
			Name: "padding",
			File: File{
				Kind:   "line",
				Width:  100,
				Height: 100,
				Axes:   []Axis{{Kind: "x", Padding: AxisPadding{Mode: "wide"}}},
			},
			Section: "axes[0]",
		},
		{
			Name: "curve",
			File: File{
				Kind:   "line",
				Width:  100,
				Height: 100,
				Items:  []Item{{Kind: "line", DataKey: "v", Curve: "wavy"}},
			},
			Section: "items[0]",
		},
		{
			Name: "segment",
			File: File{
				Kind:       "line",
				Width:      100,
				Height:     100,
				References: []Reference{{Kind: "line", Segment: [][]any{{1, 2}}}},
			},
			Section: "references[0]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := Build(&tt.File)
			var ce ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("want ConfigError, got %v", err)
			}
			if ce.Section != tt.Section {
				t.Errorf("section: want %s, got %s", tt.Section, ce.Section)
			}
		})
	}
}

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const lineChart = `
kind: line
width: 300
height: 200
syncId: demo
axes:
  - kind: x
    dataKey: name
  - kind: y
items:
  - kind: line
    id: visits
    dataKey: v
data:
  rows:
    - {name: a, v: 4}
    - {name: b, v: 8}
    - {name: c, v: 2}
`

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := New()
	app.stdout = &out
	app.stderr = io.Discard
	app.root.SetArgs(args)
	if err := app.Execute(context.Background()); err != nil {
		t.Fatalf("draw %s: %s", strings.Join(args, " "), err)
	}
	return out.String()
}

func descFile(t *testing.T, dir, name string) string {
	t.Helper()
	file := filepath.Join(dir, name)
	if err := os.WriteFile(file, []byte(lineChart), 0o644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestRenderCommand(t *testing.T) {
	var (
		dir = t.TempDir()
		out = filepath.Join(dir, "out")
		one = descFile(t, dir, "one.yml")
		two = descFile(t, dir, "two.yml")
	)
	run(t, "render", "-o", out, one, two)
	for _, name := range []string{"one.svg", "two.svg"} {
		buf, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("%s not written: %s", name, err)
		}
		if !bytes.Contains(buf, []byte("<svg")) || !bytes.Contains(buf, []byte("<path")) {
			t.Errorf("%s: svg without path", name)
		}
	}
}

func TestInspectCommand(t *testing.T) {
	file := descFile(t, t.TempDir(), "line.yml")
	var sum geometrySummary
	if err := yaml.Unmarshal([]byte(run(t, "inspect", file)), &sum); err != nil {
		t.Fatalf("decoding summary: %s", err)
	}
	if sum.Kind != "line" || sum.Width != 300 {
		t.Errorf("unexpected chart %s with width %g", sum.Kind, sum.Width)
	}
	if len(sum.Elements) != 1 {
		t.Fatalf("want 1 element, got %d", len(sum.Elements))
	}
	el := sum.Elements[0]
	if el.Kind != "line" || el.ID != "visits" || len(el.Points) != 3 || len(el.Paths) != 1 {
		t.Errorf("unexpected element: %+v", el)
	}
}

func TestSyncCommand(t *testing.T) {
	var (
		dir  = t.TempDir()
		src  = descFile(t, dir, "src.yml")
		peer = descFile(t, dir, "peer.yml")
	)
	var report syncReport
	if err := yaml.Unmarshal([]byte(run(t, "sync", "--index", "2", "--start", "0", "--end", "1", src, peer)), &report); err != nil {
		t.Fatalf("decoding report: %s", err)
	}
	if !report.Sent || !report.Active {
		t.Fatalf("tooltip should be sent and applied: %+v", report)
	}
	if report.Index != 2 || report.Label != "c" {
		t.Errorf("want index 2 (c), got %d (%s)", report.Index, report.Label)
	}
	if len(report.Window) != 2 || report.Window[0] != 0 || report.Window[1] != 1 {
		t.Errorf("unexpected window %v", report.Window)
	}
	if report.Applied != 2 {
		t.Errorf("want 2 applied messages, got %d", report.Applied)
	}
}

func TestOutputFile(t *testing.T) {
	tests := []struct {
		File string
		Dir  string
		Want string
	}{
		{File: "charts/sales.yml", Want: "charts/sales.svg"},
		{File: "charts/sales.yml", Dir: "out", Want: "out/sales.svg"},
		{File: "sales", Want: "sales.svg"},
	}
	for _, tt := range tests {
		if got := outputFile(tt.File, tt.Dir); got != filepath.FromSlash(tt.Want) {
			t.Errorf("%s: want %s, got %s", tt.File, tt.Want, got)
		}
	}
}

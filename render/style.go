package render

import (
	"strings"
)

type Palette []string

var (
	Category10 Palette
	Tableau10  Palette
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i+6 <= len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

// ParsePalette gives one of the named palettes, or the list of colors given
// as a comma separated list.
func ParsePalette(str string) Palette {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "", "category10":
		return Category10
	case "tableau10":
		return Tableau10
	}
	var list Palette
	for _, c := range strings.Split(str, ",") {
		if c = strings.TrimSpace(c); c != "" {
			list = append(list, c)
		}
	}
	return list
}

// At gives the color of the i-th element, cycling through the palette.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return "black"
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

type Style struct {
	Line struct {
		Width   float64
		Opacity float64
	}
	Fill struct {
		Opacity float64
		List    Palette
	}
	Text struct {
		Size     float64
		Color    string
		Families []string
	}
	Grid struct {
		Color string
		Dash  []int
	}
	Dot float64
}

func DefaultStyle() Style {
	var s Style
	s.Line.Width = 1
	s.Line.Opacity = 1
	s.Fill.Opacity = 0.6
	s.Fill.List = Category10
	s.Text.Size = 12
	s.Text.Color = "#666"
	s.Text.Families = []string{"sans-serif"}
	s.Grid.Color = "#ccc"
	s.Grid.Dash = []int{3, 3}
	s.Dot = 3
	return s
}

// colorOf gives the color set on an element or the one of the palette at
// index i.
func (s Style) colorOf(color string, i int) string {
	if color != "" {
		return color
	}
	return s.Fill.List.At(i)
}

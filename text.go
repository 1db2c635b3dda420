package chartgeo

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// TextMeasurer gives the rendered box of a text at a given font size.
type TextMeasurer interface {
	Measure(string, float64) (float64, float64)
}

type faceMeasurer struct {
	face   font.Face
	height float64
}

// DefaultMeasurer measures text with a fixed 7x13 face scaled to the
// requested size.
func DefaultMeasurer() TextMeasurer {
	face := basicfont.Face7x13
	return faceMeasurer{
		face:   face,
		height: float64(face.Metrics().Height) / 64,
	}
}

func (m faceMeasurer) Measure(str string, size float64) (float64, float64) {
	if size <= 0 {
		size = FontSize
	}
	var (
		ratio = size / m.height
		width float64
		lines = strings.Split(str, "\n")
	)
	for _, line := range lines {
		w := float64(font.MeasureString(m.face, line)) / 64
		width = max(width, w)
	}
	return width * ratio, m.height * ratio * float64(len(lines))
}

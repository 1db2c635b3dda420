package chartgeo

import (
	"strings"
)

// pathContext accumulates the commands of a SVG path.
type pathContext struct {
	buf     strings.Builder
	started bool
}

func (p *pathContext) moveTo(x, y float64) {
	p.started = true
	p.cmd('M', x, y)
}

func (p *pathContext) lineTo(x, y float64) {
	p.cmd('L', x, y)
}

func (p *pathContext) bezierCurveTo(x1, y1, x2, y2, x, y float64) {
	p.cmd('C', x1, y1, x2, y2, x, y)
}

func (p *pathContext) quadraticCurveTo(x1, y1, x, y float64) {
	p.cmd('Q', x1, y1, x, y)
}

func (p *pathContext) arcTo(r float64, large, sweep bool, x, y float64) {
	p.cmd('A', r, r, 0, flag(large), flag(sweep), x, y)
}

func (p *pathContext) closePath() {
	if !p.started {
		return
	}
	p.buf.WriteByte('Z')
}

func (p *pathContext) cmd(c byte, values ...float64) {
	p.buf.WriteByte(c)
	for i, v := range values {
		if i > 0 {
			p.buf.WriteByte(',')
		}
		p.buf.WriteString(formatNumber(v))
	}
}

func (p *pathContext) String() string {
	return p.buf.String()
}

func (p *pathContext) Len() int {
	return p.buf.Len()
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

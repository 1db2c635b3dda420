// Package render draws composed chart geometry as SVG.
package render

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/midbel/chartgeo"
	"github.com/midbel/chartgeo/internal/logging"
	"github.com/midbel/slices"
	"github.com/midbel/svg"
)

const defaultTickSize = 6

var ErrNoGeometry = errors.New("no geometry to render")

type Renderer struct {
	Style Style
	// Clip keeps series inside the plot area.
	Clip bool
}

func New(style Style) *Renderer {
	return &Renderer{
		Style: style,
		Clip:  true,
	}
}

// Render writes the SVG document of geo to w.
func (r *Renderer) Render(w io.Writer, geo *chartgeo.Geometry) error {
	if geo == nil {
		return ErrNoGeometry
	}
	el := r.Element(geo)

	bw := bufio.NewWriter(w)
	el.Render(bw)
	return bw.Flush()
}

// Element gives the root svg element of geo.
func (r *Renderer) Element(geo *chartgeo.Geometry) svg.Element {
	root := svg.NewSVG(svg.WithDimension(geo.Width, geo.Height))
	root.Box = svg.Box{Dim: svg.NewDim(geo.Width, geo.Height)}

	var (
		clip = "clip-" + uuid.NewString()
		defs svg.Defs
	)
	defs.Append(r.clipPath(clip, geo.Offset.ViewBox()))
	root.Append(defs.AsElement())

	if geo.Kind.Polar() {
		if geo.PolarGrid != nil {
			root.Append(r.drawPolarGrid(*geo.PolarGrid))
		}
	} else {
		root.Append(r.drawGrid(geo.Grid, geo.Offset))
	}

	series := &clipGroup{Group: svg.NewGroup(svg.WithClass("series"))}
	if r.Clip && !geo.Kind.Polar() {
		series.clip = clip
	}
	for i, e := range geo.Elements {
		if el := r.drawElement(e, i); el != nil {
			series.Append(el)
		}
	}
	root.Append(series)

	if len(geo.References) > 0 {
		refs := svg.NewGroup(svg.WithClass("references"))
		for _, ref := range geo.References {
			el := r.drawReference(ref)
			if ref.Clip {
				g := &clipGroup{Group: svg.NewGroup(), clip: clip}
				g.Append(el)
				el = g
			}
			refs.Append(el)
		}
		root.Append(refs.AsElement())
	}
	root.Append(r.drawAxes(geo.Axes))
	if geo.Brush != nil {
		root.Append(r.drawBrush(*geo.Brush))
	}
	logging.Debug().
		Add(logging.Component("render")).
		Add(logging.Count(len(geo.Elements))).
		Msg("geometry rendered")
	return root.AsElement()
}

func (r *Renderer) clipPath(id string, box chartgeo.Rect) svg.Element {
	var cp svg.ClipPath
	cp.Id = id
	rect := svg.NewRect(svg.WithPosition(box.X, box.Y), svg.WithDimension(box.Width, box.Height))
	cp.Append(rect.AsElement())
	return cp.AsElement()
}

// clipGroup is a group clipped by the clip path with the given id.
type clipGroup struct {
	svg.Group
	clip string
}

func (g *clipGroup) Render(w svg.Writer) {
	if g.clip == "" {
		g.Group.Render(w)
		return
	}
	w.WriteString(`<g clip-path="url(#` + g.clip + `)">`)
	g.Group.Render(w)
	w.WriteString("</g>")
}

func (r *Renderer) drawGrid(grid chartgeo.Grid, off chartgeo.Offset) svg.Element {
	var (
		grp    = svg.NewGroup(svg.WithClass("grid"))
		stroke = r.gridStroke()
	)
	for _, y := range grid.Horizontal {
		li := svg.NewLine(svg.NewPos(off.Left, y), svg.NewPos(off.Left+off.Width, y))
		li.Stroke = stroke
		grp.Append(li.AsElement())
	}
	for _, x := range grid.Vertical {
		li := svg.NewLine(svg.NewPos(x, off.Top), svg.NewPos(x, off.Top+off.Height))
		li.Stroke = stroke
		grp.Append(li.AsElement())
	}
	return grp.AsElement()
}

func (r *Renderer) drawPolarGrid(grid chartgeo.PolarGrid) svg.Element {
	var (
		grp    = svg.NewGroup(svg.WithClass("polar-grid"))
		stroke = r.gridStroke()
	)
	for _, s := range grid.Spokes {
		li := svg.NewLine(svg.NewPos(s.From.X, s.From.Y), svg.NewPos(s.To.X, s.To.Y))
		li.Stroke = stroke
		grp.Append(li.AsElement())
	}
	for _, d := range grid.Polygons {
		grp.Append(rawPath(d, solid("none"), stroke))
	}
	return grp.AsElement()
}

func (r *Renderer) gridStroke() svg.Stroke {
	stroke := svg.NewStroke(r.Style.Grid.Color, 1)
	stroke.Dash.Array = r.Style.Grid.Dash
	return stroke
}

func (r *Renderer) drawElement(e chartgeo.Element, index int) svg.Element {
	switch e := e.(type) {
	case chartgeo.BarGeometry:
		return r.drawBars(e, index)
	case chartgeo.LineGeometry:
		return r.drawLine(e, index)
	case chartgeo.AreaGeometry:
		return r.drawArea(e, index)
	case chartgeo.ScatterGeometry:
		return r.drawScatter(e, index)
	case chartgeo.FunnelGeometry:
		return r.drawFunnel(e)
	case chartgeo.PieGeometry:
		return r.drawPie(e)
	case chartgeo.RadarGeometry:
		return r.drawRadar(e, index)
	case chartgeo.RadialBarGeometry:
		return r.drawRadialBars(e, index)
	default:
		return nil
	}
}

func (r *Renderer) fill(color string) svg.Fill {
	f := solid(color)
	f.Opacity = r.Style.Fill.Opacity
	return f
}

func (r *Renderer) stroke(color string) svg.Stroke {
	s := svg.NewStroke(color, 1)
	s.Width = r.Style.Line.Width
	s.Opacity = r.Style.Line.Opacity
	return s
}

func (r *Renderer) drawBars(e chartgeo.BarGeometry, index int) svg.Element {
	var (
		grp   = seriesGroup(e.ID, "bar")
		color = r.Style.colorOf(e.Color, index)
	)
	for _, b := range e.Rects {
		if e.Background {
			bg := rectOf(b.Background)
			bg.Fill = solid("#eee")
			grp.Append(bg.AsElement())
		}
		rect := rectOf(b.Rect)
		rect.Fill = solid(color)
		rect.Title = escape(chartgeo.Stringify(b.Value))
		grp.Append(rect.AsElement())
	}
	r.drawErrors(&grp, e.Errors)
	return grp.AsElement()
}

func (r *Renderer) drawLine(e chartgeo.LineGeometry, index int) svg.Element {
	var (
		grp   = seriesGroup(e.ID, "line")
		color = r.Style.colorOf(e.Color, index)
	)
	if e.Path != "" {
		grp.Append(rawPath(e.Path, solid("none"), r.stroke(color)))
	}
	for _, p := range e.Points {
		if !defined(p.Point) || r.Style.Dot <= 0 {
			continue
		}
		dot := svg.NewCircle(svg.WithPosition(p.X, p.Y), svg.WithRadius(r.Style.Dot))
		dot.Fill = solid("white")
		dot.Stroke = r.stroke(color)
		grp.Append(dot.AsElement())
	}
	r.drawErrors(&grp, e.Errors)
	return grp.AsElement()
}

func (r *Renderer) drawArea(e chartgeo.AreaGeometry, index int) svg.Element {
	var (
		grp   = seriesGroup(e.ID, "area")
		color = r.Style.colorOf(e.Color, index)
	)
	if e.Path != "" {
		grp.Append(rawPath(e.Path, r.fill(color)))
	}
	if e.Line != "" {
		grp.Append(rawPath(e.Line, solid("none"), r.stroke(color)))
	}
	r.drawErrors(&grp, e.Errors)
	return grp.AsElement()
}

func (r *Renderer) drawScatter(e chartgeo.ScatterGeometry, index int) svg.Element {
	var (
		grp   = seriesGroup(e.ID, "scatter")
		color = r.Style.colorOf(e.Color, index)
	)
	if e.Line != "" {
		grp.Append(rawPath(e.Line, solid("none"), r.stroke(color)))
	}
	for _, p := range e.Points {
		if !defined(p.Center) {
			continue
		}
		var tf svg.Transform
		tf.Translate(p.Center.X, p.Center.Y)
		d := chartgeo.SymbolPath(e.Shape, p.Size)
		grp.Append(rawPath(d, solid(color), tf))
	}
	r.drawErrors(&grp, e.Errors)
	return grp.AsElement()
}

func (r *Renderer) drawFunnel(e chartgeo.FunnelGeometry) svg.Element {
	grp := seriesGroup(e.ID, "funnel")
	for _, t := range e.Trapezoids {
		grp.Append(rawPath(t.Path(), solid(r.Style.Fill.List.At(t.Index))))
	}
	return grp.AsElement()
}

func (r *Renderer) drawPie(e chartgeo.PieGeometry) svg.Element {
	grp := seriesGroup(e.ID, "pie")
	for _, s := range e.Sectors {
		if s.Path == "" {
			continue
		}
		color := r.Style.colorOf(e.Color, s.Index)
		grp.Append(rawPath(s.Path, solid(color), svg.NewStroke("white", 1)))
	}
	return grp.AsElement()
}

func (r *Renderer) drawRadar(e chartgeo.RadarGeometry, index int) svg.Element {
	var (
		grp   = seriesGroup(e.ID, "radar")
		color = r.Style.colorOf(e.Color, index)
	)
	if e.Path != "" {
		grp.Append(rawPath(e.Path, r.fill(color), r.stroke(color)))
	}
	return grp.AsElement()
}

func (r *Renderer) drawRadialBars(e chartgeo.RadialBarGeometry, index int) svg.Element {
	var (
		grp   = seriesGroup(e.ID, "radial-bar")
		color = r.Style.colorOf(e.Color, index)
	)
	for _, s := range e.Sectors {
		if e.Background {
			if d, ok := chartgeo.SectorPath(s.Background); ok {
				grp.Append(rawPath(d, solid("#eee")))
			}
		}
		if s.Path != "" {
			grp.Append(rawPath(s.Path, solid(color)))
		}
	}
	return grp.AsElement()
}

func (r *Renderer) drawErrors(grp *svg.Group, list []chartgeo.ErrorBar) {
	for _, e := range list {
		for _, s := range e.Segments {
			li := svg.NewLine(svg.NewPos(s[0].X, s[0].Y), svg.NewPos(s[1].X, s[1].Y))
			li.Stroke = svg.NewStroke("black", 1)
			grp.Append(li.AsElement())
		}
	}
}

func (r *Renderer) drawReference(ref chartgeo.ReferenceGeometry) svg.Element {
	switch ref.Kind {
	case chartgeo.ReferenceLine:
		var (
			fst = slices.Fst(ref.Line[:])
			lst = slices.Lst(ref.Line[:])
			li  = svg.NewLine(svg.NewPos(fst.X, fst.Y), svg.NewPos(lst.X, lst.Y))
		)
		li.Stroke = svg.NewStroke("#888", 1)
		return li.AsElement()
	case chartgeo.ReferenceArea:
		rect := rectOf(ref.Rect)
		rect.Fill = svg.Fill{Color: "#ccc", Opacity: 0.5}
		return rect.AsElement()
	default:
		dot := svg.NewCircle(svg.WithPosition(ref.Center.X, ref.Center.Y), svg.WithRadius(ref.R))
		dot.Fill = solid("#888")
		dot.Stroke = svg.NewStroke("white", 1)
		return dot.AsElement()
	}
}

func (r *Renderer) drawBrush(b chartgeo.Brush) svg.Element {
	grp := svg.NewGroup(svg.WithClass("brush"))
	frame := rectOf(b.Rect)
	frame.Fill = solid("white")
	frame.Stroke = svg.NewStroke("#666", 1)
	grp.Append(frame.AsElement())

	if len(b.Values) > 0 {
		sel := rectOf(chartgeo.Rect{
			X:      math.Min(b.StartX, b.EndX) + b.TravellerWidth,
			Y:      b.Y,
			Width:  math.Abs(b.EndX-b.StartX) - b.TravellerWidth,
			Height: b.Height,
		})
		sel.Fill = svg.Fill{Color: "#666", Opacity: 0.2}
		grp.Append(sel.AsElement())
	}
	for _, x := range []float64{b.StartX, b.EndX} {
		tr := rectOf(chartgeo.Rect{X: x, Y: b.Y, Width: b.TravellerWidth, Height: b.Height})
		tr.Fill = solid("#666")
		grp.Append(tr.AsElement())
	}
	return grp.AsElement()
}

func (r *Renderer) drawAxes(axes []chartgeo.AxisGeometry) svg.Element {
	grp := svg.NewGroup(svg.WithClass("axes"))
	for _, a := range axes {
		if a.Axis == nil || a.Hide {
			continue
		}
		var el svg.Element
		switch a.Kind {
		case chartgeo.XAxis, chartgeo.YAxis:
			el = r.drawCartesianAxis(a)
		case chartgeo.AngleAxis:
			el = r.drawAngleAxis(a)
		case chartgeo.RadiusAxis:
			el = r.drawRadiusAxis(a)
		}
		if el != nil {
			grp.Append(el)
		}
	}
	return grp.AsElement()
}

func (r *Renderer) drawCartesianAxis(a chartgeo.AxisGeometry) svg.Element {
	var (
		grp  = svg.NewGroup(svg.WithClass("axis", string(a.Kind)), svg.WithID(a.ID))
		size = a.TickSize
		line svg.Line
		dir  = 1.0
		vert = a.Kind == chartgeo.YAxis
	)
	if size <= 0 {
		size = defaultTickSize
	}
	switch a.Orientation {
	case chartgeo.OrientTop:
		dir = -1
		line = svg.NewLine(svg.NewPos(a.X, a.Y+a.Height), svg.NewPos(a.X+a.Width, a.Y+a.Height))
	case chartgeo.OrientLeft:
		dir = -1
		line = svg.NewLine(svg.NewPos(a.X+a.Width, a.Y), svg.NewPos(a.X+a.Width, a.Y+a.Height))
	case chartgeo.OrientRight:
		line = svg.NewLine(svg.NewPos(a.X, a.Y), svg.NewPos(a.X, a.Y+a.Height))
	default:
		line = svg.NewLine(svg.NewPos(a.X, a.Y), svg.NewPos(a.X+a.Width, a.Y))
	}
	if a.Mirror {
		dir = -dir
	}
	line.Stroke = svg.NewStroke(r.Style.Text.Color, 1)
	grp.Append(line.AsElement())

	for _, t := range a.Ticks {
		var (
			from = line.Starts
			to   svg.Pos
			text svg.Text
		)
		if vert {
			from.Y = t.Coordinate
			to = svg.NewPos(from.X+dir*size, from.Y)
			text = r.label(r.tickLabel(a.Axis, t.Value), to.X+dir*2, to.Y)
			text.Shift.Y = r.Style.Text.Size * 0.355
			text.Anchor = "start"
			if dir < 0 {
				text.Anchor = "end"
			}
		} else {
			from.X = t.Coordinate
			to = svg.NewPos(from.X, from.Y+dir*size)
			text = r.label(r.tickLabel(a.Axis, t.Value), to.X, to.Y+dir*2)
			text.Anchor = "middle"
			if dir > 0 {
				text.Shift.Y = r.Style.Text.Size * 0.71
			}
		}
		tick := svg.NewLine(from, to)
		tick.Stroke = svg.NewStroke(r.Style.Text.Color, 1)
		grp.Append(tick.AsElement())
		grp.Append(text.AsElement())
	}
	return grp.AsElement()
}

func (r *Renderer) drawAngleAxis(a chartgeo.AxisGeometry) svg.Element {
	grp := svg.NewGroup(svg.WithClass("axis", string(a.Kind)), svg.WithID(a.ID))
	for _, t := range a.Ticks {
		var (
			pos  = chartgeo.PolarToCartesian(a.Cx, a.Cy, a.OuterRadius+defaultTickSize+2, t.Coordinate)
			cos  = math.Cos(-t.Coordinate * math.Pi / 180)
			text = r.label(r.tickLabel(a.Axis, t.Value), pos.X, pos.Y)
		)
		switch {
		case cos > 1e-5:
			text.Anchor = "start"
		case cos < -1e-5:
			text.Anchor = "end"
		default:
			text.Anchor = "middle"
		}
		text.Shift.Y = r.Style.Text.Size * 0.355
		grp.Append(text.AsElement())
	}
	return grp.AsElement()
}

func (r *Renderer) drawRadiusAxis(a chartgeo.AxisGeometry) svg.Element {
	grp := svg.NewGroup(svg.WithClass("axis", string(a.Kind)), svg.WithID(a.ID))
	for _, t := range a.Ticks {
		pos := chartgeo.PolarToCartesian(a.Cx, a.Cy, t.Coordinate, a.Angle)
		text := r.label(r.tickLabel(a.Axis, t.Value), pos.X, pos.Y)
		text.Anchor = "middle"
		grp.Append(text.AsElement())
	}
	return grp.AsElement()
}

func (r *Renderer) label(str string, x, y float64) svg.Text {
	text := svg.NewText(str)
	text.Pos = svg.NewPos(x, y)
	text.Font = svg.NewFont(r.Style.Text.Size, r.Style.Text.Families...)
	text.Fill = solid(r.Style.Text.Color)
	return text
}

func (r *Renderer) tickLabel(a *chartgeo.Axis, v any) string {
	var str string
	if a.TickFormat != nil {
		str = a.TickFormat(v)
	} else {
		str = chartgeo.Stringify(v)
	}
	return escape(str + a.Unit)
}

func seriesGroup(id, class string) svg.Group {
	grp := svg.NewGroup(svg.WithClass(class))
	if id != "" {
		grp.Id = id
	}
	return grp
}

// rectOf gives the svg rect of r with positive dimensions.
func rectOf(r chartgeo.Rect) svg.Rect {
	if r.Width < 0 {
		r.X, r.Width = r.X+r.Width, -r.Width
	}
	if r.Height < 0 {
		r.Y, r.Height = r.Y+r.Height, -r.Height
	}
	rect := svg.NewRect(svg.WithPosition(r.X, r.Y), svg.WithDimension(r.Width, r.Height))
	rect.Stroke = svg.Stroke{}
	return rect
}

// rawPath gives a path element drawing d as is.
func rawPath(d string, attrs ...svg.Attribute) svg.Element {
	list := []string{"d=" + strconv.Quote(d)}
	for _, a := range attrs {
		list = append(list, a.Attributes()...)
	}
	return svg.NewLiteral("<path " + strings.Join(list, " ") + "/>")
}

func solid(color string) svg.Fill {
	return svg.Fill{Color: color, Opacity: 1}
}

func defined(p chartgeo.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y)
}

var replacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(str string) string {
	return replacer.Replace(str)
}

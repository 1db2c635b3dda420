package chartgeo

import (
	"fmt"
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/midbel/chartgeo/internal/logging"
)

// Element is a piece of geometry ready to be drawn: LineGeometry,
// AreaGeometry, BarGeometry, ScatterGeometry, FunnelGeometry, PieGeometry,
// RadarGeometry, RadialBarGeometry, ReferenceGeometry or Brush.
type Element interface {
	element()
}

// ChartSettings are the settings of a chart as a whole.
type ChartSettings struct {
	Kind   ChartKind
	Width  float64
	Height float64
	Margin Padding
	Layout Layout

	BarGap            Length
	BarCategoryGap    Length
	BarSize           Length
	MaxBarSize        float64
	StackOffset       StackOffset
	ReverseStackOrder bool

	Cx          Length
	Cy          Length
	InnerRadius Length
	OuterRadius Length
	StartAngle  float64
	EndAngle    float64

	Legend *LegendBox
	Brush  *BrushSettings
}

// DefaultChartSettings gives the settings a chart of kind starts with.
func DefaultChartSettings(kind ChartKind, width, height float64) ChartSettings {
	cs := ChartSettings{
		Kind:           kind,
		Width:          width,
		Height:         height,
		Margin:         DefaultMargin(),
		Layout:         kind.DefaultLayout(),
		BarGap:         Px(4),
		BarCategoryGap: Percent(10),
		StackOffset:    StackNone,
		Cx:             Percent(50),
		Cy:             Percent(50),
		InnerRadius:    Px(0),
		OuterRadius:    Percent(80),
		EndAngle:       360,
	}
	if kind == RadarChart {
		cs.StartAngle, cs.EndAngle = 90, -270
	}
	return cs
}

// AxisGeometry is a resolved axis with the ticks kept once overlapping labels
// have been dropped.
type AxisGeometry struct {
	*Axis
	Ticks []Tick
}

// Grid holds the positions of the lines of a cartesian grid.
type Grid struct {
	Horizontal []float64
	Vertical   []float64
}

// Geometry is everything needed to draw a chart.
type Geometry struct {
	Kind   ChartKind
	Layout Layout
	Width  float64
	Height float64
	Offset Offset
	Polar  Polar

	Axes       []AxisGeometry
	Elements   []Element
	References []ReferenceGeometry
	Grid       Grid
	PolarGrid  *PolarGrid
	Brush      *Brush

	TooltipAxis  *Axis
	TooltipTicks []Tick

	StartIndex int
	EndIndex   int
}

// Axis returns the resolved axis of kind with id.
func (g *Geometry) Axis(kind AxisKind, id string) (*Axis, bool) {
	for _, a := range g.Axes {
		if a.Kind == kind && a.ID == id {
			return a.Axis, true
		}
	}
	return nil, false
}

type cacheKey struct {
	revision uint64
	start    int
	end      int
}

const cacheSize = 16

// Context is the layout context of one chart. Axes, items and references are
// registered into it and the geometry is composed on demand. Every change
// bumps its revision so that cached geometries are never reused once stale.
type Context struct {
	mu sync.Mutex

	settings ChartSettings
	data     []Row
	axes     map[AxisKind][]AxisSettings
	items    []Item
	refs     []Reference
	revision uint64

	start int
	end   int

	cache *lru.Cache[cacheKey, *Geometry]
}

func NewContext(settings ChartSettings) *Context {
	cache, _ := lru.New[cacheKey, *Geometry](cacheSize)
	if settings.Layout == "" {
		settings.Layout = settings.Kind.DefaultLayout()
	}
	return &Context{
		settings: settings,
		axes:     make(map[AxisKind][]AxisSettings),
		end:      -1,
		cache:    cache,
	}
}

func (c *Context) Revision() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revision
}

func (c *Context) Settings() ChartSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

func (c *Context) bump() {
	c.revision++
}

// Update changes the settings of the chart.
func (c *Context) Update(fn func(*ChartSettings)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.settings)
	c.bump()
}

// SetData replaces the rows of the chart. The window is reset to all rows.
func (c *Context) SetData(rows []Row) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = rows
	c.start, c.end = 0, -1
	if c.settings.Brush != nil {
		c.start, c.end = c.settings.Brush.StartIndex, c.settings.Brush.EndIndex
	}
	c.bump()
}

func (c *Context) Data() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// SetWindow restricts the displayed rows to start..end, both included. A
// negative end selects up to the last row.
func (c *Context) SetWindow(start, end int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.start == start && c.end == end {
		return
	}
	c.start, c.end = start, end
	logging.Debug().
		Add(logging.Component("context")).
		Add(logging.Index(start)).
		Add(logging.Str("end", fmt.Sprint(end))).
		Msg("window changed")
}

// Window gives the displayed rows, clamped to the data.
func (c *Context) Window() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window()
}

func (c *Context) window() (int, int) {
	if len(c.data) == 0 {
		return 0, -1
	}
	return clampWindow(c.start, c.end, len(c.data))
}

// AddAxis registers an axis. The returned func removes it.
func (c *Context) AddAxis(a AxisSettings) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a.ID == "" {
		a.ID = DefaultAxisID
	}
	for _, other := range c.axes[a.Kind] {
		if other.ID == a.ID {
			return nil, fmt.Errorf("%s(%s): %w", a.Kind, a.ID, ErrDuplicateID)
		}
	}
	c.axes[a.Kind] = append(c.axes[a.Kind], a)
	c.bump()
	logging.Debug().
		Add(logging.Component("context")).
		Add(logging.Axis(string(a.Kind), a.ID)).
		Msg("axis registered")

	var once sync.Once
	release := func() {
		once.Do(func() {
			c.removeAxis(a.Kind, a.ID)
		})
	}
	return release, nil
}

func (c *Context) removeAxis(kind AxisKind, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.axes[kind]
	for i := range list {
		if list[i].ID == id {
			c.axes[kind] = append(list[:i:i], list[i+1:]...)
			c.bump()
			return
		}
	}
}

// UpdateAxis replaces the settings of a registered axis.
func (c *Context) UpdateAxis(a AxisSettings) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, other := range c.axes[a.Kind] {
		if other.ID == a.ID {
			c.axes[a.Kind][i] = a
			c.bump()
			return nil
		}
	}
	return MissingAxisError{Kind: a.Kind, ID: a.ID}
}

// AddItem registers a graphical item. Items without id get a generated one.
func (c *Context) AddItem(it Item) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	common := it.Common()
	if common.ID == "" {
		common.ID = UniqueID(string(it.Kind()) + "-")
	}
	for _, other := range c.items {
		if other.Common().ID == common.ID {
			return nil, fmt.Errorf("%s(%s): %w", it.Kind(), common.ID, ErrDuplicateID)
		}
	}
	c.items = append(c.items, it)
	c.bump()
	logging.Debug().
		Add(logging.Component("context")).
		Add(logging.Item(string(it.Kind()), common.ID)).
		Msg("item registered")

	var once sync.Once
	release := func() {
		once.Do(func() {
			c.removeItem(common.ID)
		})
	}
	return release, nil
}

func (c *Context) removeItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Common().ID == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			c.bump()
			return
		}
	}
}

// Items lists the registered items in registration order.
func (c *Context) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...)
}

// AddReference registers a reference line, area or dot.
func (c *Context) AddReference(ref Reference) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ref.ID == "" {
		ref.ID = UniqueID("reference-")
	}
	for _, other := range c.refs {
		if other.ID == ref.ID {
			return nil, fmt.Errorf("reference(%s): %w", ref.ID, ErrDuplicateID)
		}
	}
	c.refs = append(c.refs, ref)
	c.bump()

	var once sync.Once
	release := func() {
		once.Do(func() {
			c.removeReference(ref.ID)
		})
	}
	return release, nil
}

func (c *Context) removeReference(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.refs {
		if c.refs[i].ID == id {
			c.refs = append(c.refs[:i:i], c.refs[i+1:]...)
			c.bump()
			return
		}
	}
}

// Compose computes the geometry of the chart. Results are cached until the
// context changes.
func (c *Context) Compose() (*Geometry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	start, end := c.window()
	key := cacheKey{
		revision: c.revision,
		start:    start,
		end:      end,
	}
	if g, ok := c.cache.Get(key); ok {
		return g, nil
	}
	if c.settings.Width <= 0 || c.settings.Height <= 0 {
		return nil, ErrEmptyChart
	}
	cp := composer{
		settings: c.settings,
		data:     c.data,
		items:    c.items,
		refs:     c.refs,
		start:    start,
		end:      end,
		axes:     make(map[AxisKind][]AxisSettings),
	}
	for k, list := range c.axes {
		cp.axes[k] = append([]AxisSettings(nil), list...)
	}
	var (
		g   *Geometry
		err error
	)
	switch {
	case c.settings.Kind == PieChart:
		g, err = cp.composePie()
	case c.settings.Kind == FunnelChart:
		g, err = cp.composeFunnel()
	case c.settings.Layout.Polar() || c.settings.Kind.Polar():
		g, err = cp.composePolar()
	default:
		g, err = cp.composeCartesian()
	}
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, g)
	return g, nil
}

// composer holds a snapshot of a context while its geometry is computed.
type composer struct {
	settings ChartSettings
	data     []Row
	axes     map[AxisKind][]AxisSettings
	items    []Item
	refs     []Reference
	start    int
	end      int
}

func (cp *composer) displayed() []Row {
	if cp.end < cp.start || len(cp.data) == 0 {
		return nil
	}
	return cp.data[cp.start : cp.end+1]
}

func (cp *composer) rowsOf(it Item) []Row {
	if d := it.Common().Data; len(d) > 0 {
		return d
	}
	return cp.displayed()
}

func (cp *composer) visible() []Item {
	var list []Item
	for _, it := range cp.items {
		if !it.Common().Hide {
			list = append(list, it)
		}
	}
	return list
}

func (cp *composer) geometry() *Geometry {
	return &Geometry{
		Kind:       cp.settings.Kind,
		Layout:     cp.settings.Layout,
		Width:      cp.settings.Width,
		Height:     cp.settings.Height,
		StartIndex: cp.start,
		EndIndex:   cp.end,
	}
}

// ensureAxes checks that every axis of kind referenced by items exists. When
// no axis of kind is registered, a hidden default one is created for each
// referenced id.
func (cp *composer) ensureAxes(kind AxisKind, items []Item, def func(string) AxisSettings) error {
	registered := cp.axes[kind]
	known := make(map[string]struct{})
	for _, a := range registered {
		known[a.ID] = struct{}{}
	}
	for _, it := range items {
		id := it.Common().axisID(kind)
		if _, ok := known[id]; ok {
			continue
		}
		if len(registered) > 0 {
			return MissingAxisError{Kind: kind, ID: id, Item: it.Common().ID}
		}
		a := def(id)
		a.Hide = true
		if IsCategoricalAxis(cp.settings.Layout, kind) {
			a.Type = AxisCategory
		} else {
			a.Type = AxisNumber
		}
		cp.axes[kind] = append(cp.axes[kind], a)
		known[id] = struct{}{}
		logging.Debug().
			Add(logging.Component("context")).
			Add(logging.Axis(string(kind), id)).
			Add(logging.Reason("default axis")).
			Msg("axis created")
	}
	return nil
}

func (cp *composer) checkReferences() error {
	for _, r := range cp.refs {
		for _, kind := range []AxisKind{XAxis, YAxis} {
			id := r.axisID(kind)
			if !slicesHasAxis(cp.axes[kind], id) {
				return MissingAxisError{Kind: kind, ID: id, Item: r.ID}
			}
		}
	}
	return nil
}

func slicesHasAxis(list []AxisSettings, id string) bool {
	for _, a := range list {
		if a.ID == id {
			return true
		}
	}
	return false
}

// stackable reports whether the item takes part in stacks.
func stackable(it Item) bool {
	switch it.Kind() {
	case ItemBar, ItemArea, ItemRadialBar:
		return true
	default:
		return false
	}
}

func (cp *composer) numericKind() AxisKind {
	switch cp.settings.Layout {
	case LayoutVertical:
		return XAxis
	case LayoutCentric:
		return RadiusAxis
	case LayoutRadial:
		return AngleAxis
	default:
		return YAxis
	}
}

func (cp *composer) categoryKind() AxisKind {
	switch cp.settings.Layout {
	case LayoutVertical:
		return YAxis
	case LayoutCentric:
		return AngleAxis
	case LayoutRadial:
		return RadiusAxis
	default:
		return XAxis
	}
}

func (cp *composer) stacks(items []Item) []AxisStack {
	var (
		list []StackItem
		kind = cp.numericKind()
	)
	for _, it := range items {
		if !stackable(it) {
			continue
		}
		s := it.Common()
		list = append(list, StackItem{
			ID:      s.ID,
			AxisID:  s.axisID(kind),
			StackID: s.StackID,
			DataKey: s.DataKey,
			Hide:    s.Hide,
		})
	}
	return StackGroups(cp.data, list, cp.settings.StackOffset, cp.settings.ReverseStackOrder)
}

func stackOf(stacks []AxisStack, axisID string) (AxisStack, bool) {
	for _, s := range stacks {
		if s.AxisID == axisID {
			return s, true
		}
	}
	return AxisStack{}, false
}

// domainSource collects what the items bound to an axis contribute to its
// domain.
func (cp *composer) domainSource(kind AxisKind, a AxisSettings, items []Item, stacks []AxisStack) DomainSource {
	src := DomainSource{
		Categorical: IsCategoricalAxis(cp.settings.Layout, kind),
		Extend:      ReferenceExtent(cp.refs, kind, a.ID),
	}
	extent := [2]float64{math.Inf(1), math.Inf(-1)}
	merge := func(d [2]float64) {
		extent[0] = math.Min(extent[0], d[0])
		extent[1] = math.Max(extent[1], d[1])
	}
	if st, ok := stackOf(stacks, a.ID); ok && st.HasStack && kind == cp.numericKind() {
		if cp.settings.StackOffset == StackExpand {
			merge([2]float64{0, 1})
		} else {
			merge(DomainOfStackGroups(st.Groups, cp.start, cp.end))
		}
		src.Items, src.HasItems = extent, true
		return src
	}
	for _, it := range items {
		s := it.Common()
		if s.axisID(kind) != a.ID || (s.Hide && !a.IncludeHidden) {
			continue
		}
		rows := cp.rowsOf(it)
		if !src.Categorical && kind != ZAxis && it.Kind() != ItemScatter {
			if d, ok := NumberDomainOfData(rows, s.DataKey); ok {
				merge(d)
			}
		}
		var keys []DataKey
		for _, e := range s.ErrorBars {
			if errorAxisKind(e.direction(cp.settings.Layout)) == kind {
				keys = append(keys, e.DataKey)
			}
		}
		if len(keys) == 0 {
			continue
		}
		key := s.DataKey
		if it.Kind() == ItemScatter && !a.DataKey.IsZero() {
			key = a.DataKey
		}
		if d, ok := ErrorDomain(rows, key, keys); ok {
			merge(d)
		}
	}
	src.Items, src.HasItems = extent, extent[0] <= extent[1]
	return src
}

func errorAxisKind(dir ErrorDirection) AxisKind {
	if dir == ErrorX {
		return XAxis
	}
	return YAxis
}

func (cp *composer) resolveDomains(kind AxisKind, items []Item, stacks []AxisStack) []*Axis {
	var (
		rows = cp.displayed()
		list []*Axis
	)
	for _, settings := range cp.axes[kind] {
		a := &Axis{
			AxisSettings: settings,
			Layout:       cp.settings.Layout,
			Categorical:  IsCategoricalAxis(cp.settings.Layout, kind),
		}
		src := cp.domainSource(kind, settings, items, stacks)
		dom, ok := ResolveAxisDomain(rows, settings, src)
		if !ok {
			logging.Debug().
				Add(logging.Component("context")).
				Add(logging.Axis(string(kind), settings.ID)).
				Add(logging.Reason("empty domain")).
				Msg("axis without domain")
		}
		a.Domain = dom
		list = append(list, a)
	}
	return list
}

func findAxis(list []*Axis, id string) *Axis {
	for _, a := range list {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func hasItemKind(items []Item, kind ItemKind) bool {
	for _, it := range items {
		if it.Kind() == kind {
			return true
		}
	}
	return false
}

// barSlots lists the slots of the bars sharing a category axis. Bars of a
// same stack share their slot.
func (cp *composer) barSlots(items []Item, stacks []AxisStack, cateKind AxisKind, cateID string, total float64) []BarSlot {
	var (
		groups [][]string
		sizes  []Length
		byID   = make(map[string]Item)
	)
	for _, it := range items {
		byID[it.Common().ID] = it
	}
	for _, st := range stacks {
		for _, g := range st.Groups {
			var (
				ids  []string
				size Length
			)
			for _, id := range g.Items {
				it, ok := byID[id]
				if !ok || (it.Kind() != ItemBar && it.Kind() != ItemRadialBar) {
					continue
				}
				if it.Common().axisID(cateKind) != cateID {
					continue
				}
				if len(ids) == 0 {
					size = barSizeOf(it)
				}
				ids = append(ids, id)
			}
			if len(ids) > 0 {
				groups = append(groups, ids)
				sizes = append(sizes, size)
			}
		}
	}
	return BarSizeList(groups, sizes, cp.settings.BarSize, total)
}

func barSizeOf(it Item) Length {
	switch s := it.(type) {
	case *BarSeries:
		return s.BarSize
	case *RadialBarSeries:
		return s.BarSize
	default:
		return Length{}
	}
}

func maxBarSizeOf(it Item, def float64) float64 {
	var size float64
	switch s := it.(type) {
	case *BarSeries:
		size = s.MaxBarSize
	case *RadialBarSeries:
		size = s.MaxBarSize
	}
	if size <= 0 {
		return def
	}
	return size
}

// barPlacement computes the slot of a bar item in its category.
func (cp *composer) barPlacement(it Item, slots []BarSlot, cate *Axis, ticks []Tick, bandSize float64) BarPlacement {
	var (
		maxSize = maxBarSizeOf(it, cp.settings.MaxBarSize)
		barBand = BarBandSize(cate, ticks, maxSize)
		size    = bandSize
	)
	if barBand != bandSize {
		size = barBand
	}
	positions := BarPosition(slots, BarLayout{
		BarGap:         cp.settings.BarGap,
		BarCategoryGap: cp.settings.BarCategoryGap,
		BandSize:       size,
		MaxBarSize:     maxSize,
	})
	pos := positions[it.Common().ID]
	if barBand != bandSize {
		pos.Offset -= barBand / 2
	}
	return pos
}

func (cp *composer) composeCartesian() (*Geometry, error) {
	items := cp.visible()
	if err := cp.ensureAxes(XAxis, cp.items, DefaultXAxis); err != nil {
		return nil, err
	}
	if err := cp.ensureAxes(YAxis, cp.items, DefaultYAxis); err != nil {
		return nil, err
	}
	var scatters []Item
	for _, it := range cp.items {
		if it.Kind() == ItemScatter {
			scatters = append(scatters, it)
		}
	}
	if err := cp.ensureAxes(ZAxis, scatters, DefaultZAxis); err != nil {
		return nil, err
	}
	if err := cp.checkReferences(); err != nil {
		return nil, err
	}
	var (
		layout = cp.settings.Layout
		stacks = cp.stacks(items)
		xs     = cp.resolveDomains(XAxis, cp.items, stacks)
		ys     = cp.resolveDomains(YAxis, cp.items, stacks)
		zs     = cp.resolveDomains(ZAxis, cp.items, stacks)
		geo    = cp.geometry()
	)
	in := OffsetInputs{
		Width:  cp.settings.Width,
		Height: cp.settings.Height,
		Margin: cp.settings.Margin,
		Legend: cp.settings.Legend,
	}
	for _, a := range xs {
		in.XAxes = append(in.XAxes, a.AxisSettings)
	}
	for _, a := range ys {
		in.YAxes = append(in.YAxes, a.AxisSettings)
	}
	if cp.settings.Brush != nil {
		in.BrushHeight = cp.settings.Brush.height()
	}
	geo.Offset = CalculateOffset(in)

	ax := AxisInputs{
		Width:          cp.settings.Width,
		Height:         cp.settings.Height,
		Layout:         layout,
		Chart:          cp.settings.Kind,
		HasBar:         hasItemKind(items, ItemBar),
		BarCategoryGap: cp.settings.BarCategoryGap,
		Offset:         geo.Offset,
	}
	ResolveCartesianAxes(XAxis, xs, ax)
	ResolveCartesianAxes(YAxis, ys, ax)
	ResolveCartesianAxes(ZAxis, zs, ax)

	cateKind := cp.categoryKind()
	for _, it := range items {
		var (
			s     = it.Common()
			x     = findAxis(xs, s.axisID(XAxis))
			y     = findAxis(ys, s.axisID(YAxis))
			iaxes = ItemAxes{
				Layout: layout,
				X:      x,
				Y:      y,
				XTicks: TicksOfAxis(x, false, false),
				YTicks: TicksOfAxis(y, false, false),
			}
			cate, ticks = iaxes.Category()
			input       = SeriesInput{
				Axes:       iaxes,
				Rows:       cp.rowsOf(it),
				StartIndex: cp.start,
				BandSize:   BandSizeOfAxis(cate.Scale, ticks, false),
				Offset:     geo.Offset,
			}
		)
		if len(s.Data) > 0 {
			input.StartIndex = 0
		}
		if st, ok := stackOf(stacks, s.axisID(cp.numericKind())); ok && st.HasStack {
			input.Stacked, _ = st.Stacked(s.ID)
		}
		switch series := it.(type) {
		case *LineSeries:
			line := ComputeLine(input, series)
			line.Errors = cp.errorBars(s, errorPointsOfLine(line.Points, input.Rows), iaxes, 0)
			geo.Elements = append(geo.Elements, line)
		case *AreaSeries:
			area := ComputeArea(input, series)
			area.Errors = cp.errorBars(s, errorPointsOfLine(area.Points, input.Rows), iaxes, 0)
			geo.Elements = append(geo.Elements, area)
		case *BarSeries:
			total := cate.Width
			if layout == LayoutVertical {
				total = cate.Height
			}
			slots := cp.barSlots(items, stacks, cateKind, s.axisID(cateKind), total)
			pos := cp.barPlacement(it, slots, cate, ticks, input.BandSize)
			bar := ComputeBar(input, series, pos)
			bar.Errors = cp.errorBars(s, errorPointsOfBar(bar.Rects, input.Rows, s.DataKey), iaxes, pos.Size/2)
			geo.Elements = append(geo.Elements, bar)
		case *ScatterSeries:
			iaxes.Z = findAxis(zs, s.axisID(ZAxis))
			input.Axes = iaxes
			scatter := ComputeScatter(input, series)
			for _, e := range s.ErrorBars {
				points := errorPointsOfScatter(scatter.Points, input.Rows, e.direction(layout))
				scatter.Errors = append(scatter.Errors, cp.errorBarsOf(e, points, iaxes, 0)...)
			}
			geo.Elements = append(geo.Elements, scatter)
		default:
			logging.Debug().
				Add(logging.Component("context")).
				Add(logging.Item(string(it.Kind()), s.ID)).
				Add(logging.Reason("not a cartesian item")).
				Msg("item dropped")
		}
	}
	for _, ref := range cp.refs {
		rg, ok := ComputeReference(ref, findAxis(xs, ref.axisID(XAxis)), findAxis(ys, ref.axisID(YAxis)), geo.Offset.ViewBox())
		if !ok {
			logging.Debug().
				Add(logging.Component("context")).
				Add(logging.Item(string(ref.Kind), ref.ID)).
				Add(logging.Reason("out of range")).
				Msg("reference dropped")
			continue
		}
		geo.References = append(geo.References, rg)
	}
	for _, a := range append(append([]*Axis{}, xs...), ys...) {
		ag := AxisGeometry{Axis: a}
		if !a.Hide {
			ag.Ticks = FilterTicks(TicksOfAxis(a, true, false), TickLayout{
				ViewBox:     Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height},
				Orientation: a.Orientation,
				Interval:    a.Interval,
				MinTickGap:  a.MinTickGap,
				Angle:       a.Angle,
				Unit:        a.Unit,
				FontSize:    a.FontSize,
				Format:      a.TickFormat,
			})
		}
		geo.Axes = append(geo.Axes, ag)
	}
	for _, a := range zs {
		geo.Axes = append(geo.Axes, AxisGeometry{Axis: a})
	}
	if len(xs) > 0 {
		for _, t := range TicksOfAxis(xs[0], true, false) {
			geo.Grid.Vertical = append(geo.Grid.Vertical, t.Coordinate)
		}
	}
	if len(ys) > 0 {
		for _, t := range TicksOfAxis(ys[0], true, false) {
			geo.Grid.Horizontal = append(geo.Grid.Horizontal, t.Coordinate)
		}
	}
	cates := xs
	if layout == LayoutVertical {
		cates = ys
	}
	if len(cates) > 0 {
		geo.TooltipAxis = cates[0]
		geo.TooltipTicks = TicksOfAxis(cates[0], false, true)
	}
	if cp.settings.Brush != nil && len(cp.data) > 0 {
		b := *cp.settings.Brush
		b.StartIndex, b.EndIndex = cp.start, cp.end
		brush := ComputeBrush(b, len(cp.data), geo.Offset, cp.settings.Margin)
		geo.Brush = &brush
		geo.Elements = append(geo.Elements, brush)
	}
	return geo, nil
}

// errorBars draws the error bars of an item along its numeric axis.
func (cp *composer) errorBars(s *Series, points []ErrorPoint, axes ItemAxes, offset float64) []ErrorBar {
	var (
		list    []ErrorBar
		numeric = XAxis
	)
	if axes.Layout != LayoutVertical {
		numeric = YAxis
	}
	for _, e := range s.ErrorBars {
		if errorAxisKind(e.direction(axes.Layout)) != numeric {
			logging.Debug().
				Add(logging.Component("context")).
				Add(logging.Item("errorBar", s.ID)).
				Add(logging.Reason("direction along categories")).
				Msg("error bar dropped")
			continue
		}
		list = append(list, cp.errorBarsOf(e, points, axes, offset)...)
	}
	return list
}

func (cp *composer) errorBarsOf(e ErrorBarSettings, points []ErrorPoint, axes ItemAxes, offset float64) []ErrorBar {
	axis := axes.Y
	if e.direction(axes.Layout) == ErrorX {
		axis = axes.X
	}
	return ComputeErrorBars(points, e, axes.Layout, axis, offset)
}

func errorPointsOfBar(rects []BarRect, rows []Row, key DataKey) []ErrorPoint {
	list := make([]ErrorPoint, 0, len(rects))
	for _, r := range rects {
		if r.Index >= len(rows) {
			continue
		}
		v, ok := ToNumber(key.Value(rows[r.Index]))
		if !ok {
			continue
		}
		list = append(list, ErrorPoint{
			Point: NewPoint(r.X, r.Y),
			Index: r.Index,
			Value: v,
			Row:   rows[r.Index],
		})
	}
	return list
}

func errorPointsOfScatter(points []ScatterPoint, rows []Row, dir ErrorDirection) []ErrorPoint {
	list := make([]ErrorPoint, 0, len(points))
	for _, p := range points {
		node := p.Node[1]
		if dir == ErrorX {
			node = p.Node[0]
		}
		v, ok := ToNumber(node)
		if !ok || p.Index >= len(rows) {
			continue
		}
		list = append(list, ErrorPoint{
			Point: p.Center,
			Index: p.Index,
			Value: v,
			Row:   rows[p.Index],
		})
	}
	return list
}

func (cp *composer) plainOffset() Offset {
	return CalculateOffset(OffsetInputs{
		Width:  cp.settings.Width,
		Height: cp.settings.Height,
		Margin: cp.settings.Margin,
		Legend: cp.settings.Legend,
	})
}

func (cp *composer) composeFunnel() (*Geometry, error) {
	geo := cp.geometry()
	geo.Offset = cp.plainOffset()
	for _, it := range cp.visible() {
		s, ok := it.(*FunnelSeries)
		if !ok {
			continue
		}
		geo.Elements = append(geo.Elements, ComputeFunnel(cp.rowsOf(it), s, geo.Offset))
	}
	return geo, nil
}

func (cp *composer) composePie() (*Geometry, error) {
	geo := cp.geometry()
	geo.Layout = LayoutCentric
	geo.Offset = cp.plainOffset()
	for _, it := range cp.visible() {
		s, ok := it.(*PieSeries)
		if !ok {
			continue
		}
		pie := ComputePie(cp.rowsOf(it), s, geo.Offset)
		geo.Elements = append(geo.Elements, pie)
		if geo.Polar == (Polar{}) {
			frame := pieFrame(s, geo.Offset)
			geo.Polar = Polar{
				Cx:          frame.Cx,
				Cy:          frame.Cy,
				InnerRadius: frame.InnerRadius,
				OuterRadius: frame.OuterRadius,
				StartAngle:  frame.StartAngle,
				EndAngle:    frame.EndAngle,
			}
		}
	}
	return geo, nil
}

func (cp *composer) composePolar() (*Geometry, error) {
	if !cp.settings.Layout.Polar() {
		cp.settings.Layout = cp.settings.Kind.DefaultLayout()
	}
	var (
		items  = cp.visible()
		layout = cp.settings.Layout
		geo    = cp.geometry()
	)
	geo.Layout = layout
	if err := cp.ensureAxes(AngleAxis, cp.items, DefaultAngleAxis); err != nil {
		return nil, err
	}
	if err := cp.ensureAxes(RadiusAxis, cp.items, DefaultRadiusAxis); err != nil {
		return nil, err
	}
	geo.Offset = cp.plainOffset()
	var (
		stacks  = cp.stacks(items)
		angles  = cp.resolveDomains(AngleAxis, cp.items, stacks)
		radii   = cp.resolveDomains(RadiusAxis, cp.items, stacks)
		polarIn = PolarInputs{
			Width:       cp.settings.Width,
			Height:      cp.settings.Height,
			Margin:      Padding{Top: geo.Offset.Top, Right: geo.Offset.Right, Bottom: geo.Offset.Bottom, Left: geo.Offset.Left},
			Layout:      layout,
			Chart:       cp.settings.Kind,
			Cx:          cp.settings.Cx,
			Cy:          cp.settings.Cy,
			InnerRadius: cp.settings.InnerRadius,
			OuterRadius: cp.settings.OuterRadius,
			StartAngle:  cp.settings.StartAngle,
			EndAngle:    cp.settings.EndAngle,
		}
	)
	geo.Polar = polarIn.Frame()
	ResolvePolarAxes(AngleAxis, angles, polarIn)
	ResolvePolarAxes(RadiusAxis, radii, polarIn)

	cateKind := cp.categoryKind()
	for _, it := range items {
		var (
			s     = it.Common()
			angle = findAxis(angles, s.axisID(AngleAxis))
			rad   = findAxis(radii, s.axisID(RadiusAxis))
			input = PolarSeriesInput{
				Layout:      layout,
				Angle:       angle,
				Radius:      rad,
				AngleTicks:  TicksOfAxis(angle, false, false),
				RadiusTicks: TicksOfAxis(rad, false, false),
				Rows:        cp.rowsOf(it),
				StartIndex:  cp.start,
			}
			cate, ticks = angle, input.AngleTicks
		)
		if layout == LayoutRadial {
			cate, ticks = rad, input.RadiusTicks
		}
		if len(s.Data) > 0 {
			input.StartIndex = 0
		}
		input.BandSize = BandSizeOfAxis(cate.Scale, ticks, false)
		if st, ok := stackOf(stacks, s.axisID(cp.numericKind())); ok && st.HasStack {
			input.Stacked, _ = st.Stacked(s.ID)
		}
		switch series := it.(type) {
		case *RadarSeries:
			geo.Elements = append(geo.Elements, ComputeRadar(input, series))
		case *RadialBarSeries:
			total := math.Abs(cate.OuterRadius - cate.InnerRadius)
			if layout == LayoutCentric {
				total = math.Abs(cate.EndAngle - cate.StartAngle)
			}
			slots := cp.barSlots(items, stacks, cateKind, s.axisID(cateKind), total)
			pos := cp.barPlacement(it, slots, cate, ticks, input.BandSize)
			geo.Elements = append(geo.Elements, ComputeRadialBar(input, series, pos))
		default:
			logging.Debug().
				Add(logging.Component("context")).
				Add(logging.Item(string(it.Kind()), s.ID)).
				Add(logging.Reason("not a polar item")).
				Msg("item dropped")
		}
	}
	var spokes, rings []float64
	for _, a := range angles {
		ticks := TicksOfAxis(a, true, false)
		geo.Axes = append(geo.Axes, AxisGeometry{Axis: a, Ticks: ticks})
		if spokes == nil {
			for _, t := range ticks {
				spokes = append(spokes, t.Coordinate)
			}
		}
	}
	for _, a := range radii {
		ticks := TicksOfAxis(a, true, false)
		geo.Axes = append(geo.Axes, AxisGeometry{Axis: a, Ticks: ticks})
		if rings == nil {
			for _, t := range ticks {
				rings = append(rings, t.Coordinate)
			}
		}
	}
	grid := ComputePolarGrid(geo.Polar, spokes, rings)
	geo.PolarGrid = &grid

	cates := angles
	if layout == LayoutRadial {
		cates = radii
	}
	if len(cates) > 0 {
		geo.TooltipAxis = cates[0]
		geo.TooltipTicks = TicksOfAxis(cates[0], false, true)
	}
	return geo, nil
}

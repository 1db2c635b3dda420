package chartsync

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/felixgeelhaar/statekit"
	"github.com/midbel/chartgeo"
	"github.com/midbel/chartgeo/internal/logging"
)

const (
	StateIdle         statekit.StateID = "idle"
	StateListening    statekit.StateID = "listening"
	StateBroadcasting statekit.StateID = "broadcasting"
	StateReceiving    statekit.StateID = "receiving"
)

const (
	EventConnect    statekit.EventType = "CONNECT"
	EventDisconnect statekit.EventType = "DISCONNECT"
	EventLocal      statekit.EventType = "LOCAL"
	EventEmitted    statekit.EventType = "EMITTED"
	EventRemote     statekit.EventType = "REMOTE"
	EventApplied    statekit.EventType = "APPLIED"
)

// Interaction is the state of the tooltip of a chart.
type Interaction struct {
	Active     bool
	Index      int
	Label      any
	DataKey    string
	Coordinate chartgeo.Point
}

// BrushWindow is the range of rows selected by a brush.
type BrushWindow struct {
	StartIndex int
	EndIndex   int
}

// SyncData is what a custom resolver gets to find the tooltip index of a
// received interaction.
type SyncData struct {
	IsTooltipActive    bool
	ActiveTooltipIndex int
	ActiveLabel        any
	ActiveDataKey      string
	ChartX             float64
	ChartY             float64
}

// Resolver gives the index of the tooltip tick matching data, or -1.
type Resolver func(ticks []chartgeo.Tick, data SyncData) int

type methodKind int

const (
	methodIndex methodKind = iota
	methodValue
	methodFunc
)

// Method tells how a received tooltip is matched with the local ticks.
type Method struct {
	kind methodKind
	fn   Resolver
}

// SyncIndex uses the received index as is.
func SyncIndex() Method {
	return Method{kind: methodIndex}
}

// SyncValue looks for the tick whose label equals the received label.
func SyncValue() Method {
	return Method{kind: methodValue}
}

func SyncFunc(fn Resolver) Method {
	return Method{kind: methodFunc, fn: fn}
}

// ParseMethod gives the method named by str. Custom resolvers can not be
// named and are set with SyncFunc.
func ParseMethod(str string) (Method, error) {
	switch strings.TrimSpace(str) {
	case "", "index":
		return SyncIndex(), nil
	case "value":
		return SyncValue(), nil
	default:
		return Method{}, fmt.Errorf("%s: unknown sync method", str)
	}
}

func (m Method) String() string {
	switch m.kind {
	case methodValue:
		return "value"
	case methodFunc:
		return "func"
	default:
		return "index"
	}
}

// Chart is the chart a Synchronizer works for.
type Chart interface {
	Compose() (*chartgeo.Geometry, error)
	SetWindow(start, end int)
}

// Stats counts what a Synchronizer did.
type Stats struct {
	Emitted int
	Applied int
	Dropped int
}

type Option func(*Synchronizer)

func WithMethod(m Method) Option {
	return func(s *Synchronizer) {
		s.method = m
	}
}

// OnTooltip sets the function called with every interaction applied from
// another chart.
func OnTooltip(fn func(Interaction)) Option {
	return func(s *Synchronizer) {
		s.onTooltip = fn
	}
}

// OnBrush sets the function called with every window applied from another
// chart.
func OnBrush(fn func(BrushWindow)) Option {
	return func(s *Synchronizer) {
		s.onBrush = fn
	}
}

// Synchronizer connects one chart to a bus. Local changes are broadcast to
// the charts with the same sync id and their changes are applied locally.
// Messages emitted by the chart itself are never applied.
type Synchronizer struct {
	syncID string
	token  Token
	bus    Bus
	chart  Chart
	method Method

	onTooltip func(Interaction)
	onBrush   func(BrushWindow)

	interp *statekit.Interpreter[Stats]

	mu     sync.Mutex
	unsubs []func()
	active Interaction
}

func newMachine() (*statekit.MachineConfig[Stats], error) {
	return statekit.NewMachine[Stats]("chartsync").
		WithInitial(StateIdle).
		WithContext(Stats{}).
		WithAction("emitted", countEmitted).
		WithAction("applied", countApplied).
		State(StateIdle).
		On(EventConnect).Target(StateListening).
		Done().
		State(StateListening).
		On(EventLocal).Target(StateBroadcasting).
		On(EventRemote).Target(StateReceiving).
		On(EventDisconnect).Target(StateIdle).
		Done().
		State(StateBroadcasting).
		On(EventEmitted).Target(StateListening).Do("emitted").
		On(EventDisconnect).Target(StateIdle).
		Done().
		State(StateReceiving).
		On(EventApplied).Target(StateListening).Do("applied").
		On(EventDisconnect).Target(StateIdle).
		Done().
		Build()
}

func countEmitted(ctx *Stats, _ statekit.Event) {
	ctx.Emitted++
}

func countApplied(ctx *Stats, _ statekit.Event) {
	ctx.Applied++
}

// New creates a Synchronizer for chart. It does nothing until connected.
func New(bus Bus, syncID string, chart Chart, options ...Option) (*Synchronizer, error) {
	machine, err := newMachine()
	if err != nil {
		return nil, err
	}
	s := &Synchronizer{
		syncID: syncID,
		token:  NewToken(),
		bus:    bus,
		chart:  chart,
		method: SyncIndex(),
		interp: statekit.NewInterpreter(machine),
	}
	for _, o := range options {
		o(s)
	}
	s.interp.Start()
	return s, nil
}

func (s *Synchronizer) Token() Token {
	return s.token
}

func (s *Synchronizer) SyncID() string {
	return s.syncID
}

func (s *Synchronizer) State() statekit.StateID {
	return s.interp.State().Value
}

func (s *Synchronizer) Stats() Stats {
	var st Stats
	s.interp.UpdateContext(func(c *Stats) {
		st = *c
	})
	return st
}

// Active gives the last interaction applied from another chart.
func (s *Synchronizer) Active() Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Connect subscribes to the bus. Charts without sync id stay idle.
func (s *Synchronizer) Connect() {
	if s.syncID == "" || !s.interp.Matches(StateIdle) {
		return
	}
	s.mu.Lock()
	s.unsubs = append(s.unsubs,
		s.bus.Subscribe(TopicTooltip, s.receive),
		s.bus.Subscribe(TopicBrush, s.receive),
	)
	s.mu.Unlock()
	s.interp.Send(statekit.Event{Type: EventConnect})
	logging.Debug().
		Add(logging.Component("chartsync")).
		Add(logging.SyncID(s.syncID)).
		Add(logging.State(string(s.State()))).
		Msg("connected")
}

// Close unsubscribes from the bus.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()
	for _, fn := range unsubs {
		fn()
	}
	s.interp.Send(statekit.Event{Type: EventDisconnect})
}

// Tooltip broadcasts a change of the local tooltip. Nothing is sent while a
// change received from another chart is being applied. It reports whether the
// change was broadcast.
func (s *Synchronizer) Tooltip(it Interaction) bool {
	return s.broadcast(TopicTooltip, it)
}

// Brush broadcasts a change of the local brush window.
func (s *Synchronizer) Brush(w BrushWindow) bool {
	return s.broadcast(TopicBrush, w)
}

func (s *Synchronizer) broadcast(topic Topic, payload any) bool {
	if !s.interp.Matches(StateListening) {
		logging.Debug().
			Add(logging.Component("chartsync")).
			Add(logging.SyncID(s.syncID)).
			Add(logging.Topic(string(topic))).
			Add(logging.State(string(s.State()))).
			Msg("local change not broadcast")
		return false
	}
	s.interp.Send(statekit.Event{Type: EventLocal, Payload: payload})
	s.bus.Publish(Message{
		Topic:   topic,
		SyncID:  s.syncID,
		Payload: payload,
		Emitter: s.token,
	})
	s.interp.Send(statekit.Event{Type: EventEmitted})
	return true
}

func (s *Synchronizer) drop(msg Message, reason string) {
	s.interp.UpdateContext(func(c *Stats) {
		c.Dropped++
	})
	logging.Debug().
		Add(logging.Component("chartsync")).
		Add(logging.SyncID(s.syncID)).
		Add(logging.Topic(string(msg.Topic))).
		Add(logging.Reason(reason)).
		Msg("message dropped")
}

func (s *Synchronizer) receive(msg Message) {
	switch {
	case msg.Emitter == s.token:
		s.drop(msg, "own message")
		return
	case msg.SyncID != s.syncID:
		s.drop(msg, "other sync id")
		return
	case !s.interp.Matches(StateListening):
		s.drop(msg, "busy")
		return
	}
	s.interp.Send(statekit.Event{Type: EventRemote, Payload: msg.Payload})
	defer s.interp.Send(statekit.Event{Type: EventApplied})

	switch payload := msg.Payload.(type) {
	case BrushWindow:
		s.chart.SetWindow(payload.StartIndex, payload.EndIndex)
		if s.onBrush != nil {
			s.onBrush(payload)
		}
	case Interaction:
		it, ok := s.resolve(payload)
		if !ok {
			return
		}
		s.mu.Lock()
		s.active = it
		s.mu.Unlock()
		if s.onTooltip != nil {
			s.onTooltip(it)
		}
	}
}

// resolve matches a received interaction with the local tooltip ticks. An
// inactive interaction, or one matching no tick, clears the tooltip.
func (s *Synchronizer) resolve(in Interaction) (Interaction, bool) {
	geo, err := s.chart.Compose()
	if err != nil {
		logging.Debug().
			Add(logging.Component("chartsync")).
			Add(logging.ErrorField(err)).
			Msg("chart can not be composed")
		return Interaction{}, false
	}
	if !in.Active {
		return Interaction{}, true
	}
	var (
		ticks = geo.TooltipTicks
		index = in.Index
	)
	switch s.method.kind {
	case methodValue:
		index = -1
		label := chartgeo.Stringify(in.Label)
		for i, t := range ticks {
			if chartgeo.Stringify(t.Value) == label {
				index = i
				break
			}
		}
	case methodFunc:
		index = s.method.fn(ticks, SyncData{
			IsTooltipActive:    in.Active,
			ActiveTooltipIndex: in.Index,
			ActiveLabel:        in.Label,
			ActiveDataKey:      in.DataKey,
			ChartX:             in.Coordinate.X,
			ChartY:             in.Coordinate.Y,
		})
	}
	// an index without local tick clears the tooltip: it has nowhere to be
	// placed.
	if index < 0 || index >= len(ticks) {
		return Interaction{}, true
	}
	var (
		tick = ticks[index]
		vb   = geo.Offset.ViewBox()
		x    = clamp(in.Coordinate.X, vb.X, vb.X+vb.Width)
		y    = clamp(in.Coordinate.Y, vb.Y, vb.Y+vb.Height)
		res  = Interaction{
			Active:  true,
			Index:   index,
			Label:   tick.Value,
			DataKey: in.DataKey,
		}
	)
	switch geo.Layout {
	case chartgeo.LayoutHorizontal:
		res.Coordinate = chartgeo.NewPoint(tick.Coordinate, y)
	case chartgeo.LayoutVertical:
		res.Coordinate = chartgeo.NewPoint(x, tick.Coordinate)
	default:
		ptr := chartgeo.Pointer{
			Cx:     geo.Polar.Cx,
			Cy:     geo.Polar.Cy,
			Radius: geo.Polar.OuterRadius,
			Angle:  geo.Polar.StartAngle,
		}
		if p, ok := chartgeo.ActiveCoordinate(geo.Layout, ticks, tick.Index, ptr); ok {
			res.Coordinate = p.Point
		}
	}
	return res, true
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(v, hi))
}

// Package chartsync keeps the tooltip and the brush of charts sharing a sync
// id in step.
package chartsync

import (
	"sync"

	"github.com/google/uuid"
)

type Topic string

const (
	TopicTooltip Topic = "tooltip"
	TopicBrush   Topic = "brush"
)

// Token identifies the chart a message comes from.
type Token string

func NewToken() Token {
	return Token(uuid.NewString())
}

// Message is what travels on a bus. Payload is an Interaction on the tooltip
// topic and a BrushWindow on the brush topic.
type Message struct {
	Topic   Topic
	SyncID  string
	Payload any
	Emitter Token
}

type Listener func(Message)

// Bus dispatches messages to the listeners of their topic.
type Bus interface {
	Publish(Message)
	Subscribe(Topic, Listener) func()
}

type subscriber struct {
	id int
	fn Listener
}

type bus struct {
	mu     sync.Mutex
	next   int
	topics map[Topic][]subscriber
}

// NewBus gives a bus calling its listeners synchronously, in the order they
// subscribed.
func NewBus() Bus {
	return &bus{
		topics: make(map[Topic][]subscriber),
	}
}

func (b *bus) Publish(msg Message) {
	b.mu.Lock()
	list := append([]subscriber(nil), b.topics[msg.Topic]...)
	b.mu.Unlock()

	for _, s := range list {
		s.fn(msg)
	}
}

func (b *bus) Subscribe(topic Topic, fn Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	b.topics[topic] = append(b.topics[topic], subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.unsubscribe(topic, id)
		})
	}
}

func (b *bus) unsubscribe(topic Topic, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.topics[topic]
	for i := range list {
		if list[i].id == id {
			b.topics[topic] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

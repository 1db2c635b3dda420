package logging

import (
	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

func Axis(kind, id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("axis_type", kind).Str("axis_id", id)
	}
}

func Item(kind, id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("item_type", kind).Str("item_id", id)
	}
}

func SyncID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("sync_id", id)
	}
}

func Topic(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("topic", name)
	}
}

func State(s string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("state", s)
	}
}

func Index(ix int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("index", ix)
	}
}

func File(path string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("file", path)
	}
}

func Count(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("count", n)
	}
}

func Reason(reason string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("reason", reason)
	}
}

func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

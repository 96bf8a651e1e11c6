package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventMessageIn  EventType = "message_in"
	EventMessageOut EventType = "message_out"
	EventDrain      EventType = "drain"
	EventSuppress   EventType = "suppress"
)

// MessageEvent represents an inbound or outbound bridge message.
type MessageEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Action    string    `json:"action"`
	Bytes     int       `json:"bytes,omitempty"`
}

// DrainEvent represents one mailbox slot consumed on the document loop.
type DrainEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Category  string        `json:"category"`
	Duration  time.Duration `json:"duration"`
	IsError   bool          `json:"is_error,omitempty"`
}

// SuppressEvent represents one suppression state change attempt.
type SuppressEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	Item       string    `json:"item"`
	Kind       ItemKind  `json:"kind"`
	Suppressed bool      `json:"suppressed"`
	IsError    bool      `json:"is_error,omitempty"`
}

// LifecycleHooks defines callbacks for bridge observability. All fields are
// optional; nil hooks are skipped.
type LifecycleHooks struct {
	OnMessageIn  func(context.Context, *MessageEvent)
	OnMessageOut func(context.Context, *MessageEvent)
	OnDrain      func(context.Context, *DrainEvent)
	OnSuppress   func(context.Context, *SuppressEvent)
}

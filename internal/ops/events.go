package ops

import (
	"errors"
	"sync"
	"time"

	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/probe"
)

// EventType classifies activity entries.
type EventType string

const (
	EventTypeStatus EventType = "status"
	EventTypeResult EventType = "result"
	EventTypeError  EventType = "error"
)

const defaultMaxEvents = 200

// Event is one sequenced activity entry shown in the GUI.
type Event struct {
	Seq         int64                  `json:"seq"`
	Timestamp   time.Time              `json:"timestamp"`
	OperationID string                 `json:"operationId"`
	Operation   string                 `json:"operation"`
	Type        EventType              `json:"type"`
	Status      domain.OperationStatus `json:"status,omitempty"`
	Message     string                 `json:"message,omitempty"`
	Command     string                 `json:"command,omitempty"`
	Args        []string               `json:"args,omitempty"`
	ExitCode    int                    `json:"exitCode,omitempty"`
}

// ErrorEvent describes a failed operation, including the failing command
// when err carries one.
func ErrorEvent(op domain.Operation, err error) Event {
	event := Event{
		OperationID: op.ID,
		Operation:   op.Name,
		Type:        EventTypeError,
		Status:      domain.OperationStatusFailed,
	}
	if err != nil {
		event.Message = err.Error()
	}
	var cmdErr *probe.CommandError
	if errors.As(err, &cmdErr) {
		event.Command = cmdErr.Command
		event.Args = append([]string(nil), cmdErr.Args...)
		event.ExitCode = cmdErr.ExitCode
	}
	return event
}

// EventBus keeps the most recent events in memory.
type EventBus struct {
	mu        sync.RWMutex
	nextSeq   int64
	maxEvents int
	events    []Event
}

// NewEventBus creates a bus holding at most maxEvents entries.
func NewEventBus(maxEvents int) *EventBus {
	if maxEvents <= 0 {
		maxEvents = defaultMaxEvents
	}
	return &EventBus{maxEvents: maxEvents, events: make([]Event, 0, maxEvents)}
}

// Publish stamps event with the next sequence number and stores it,
// dropping the oldest entries past capacity.
func (b *EventBus) Publish(event Event) Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSeq++
	event.Seq = b.nextSeq
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	b.events = append(b.events, event)
	if over := len(b.events) - b.maxEvents; over > 0 {
		b.events = append([]Event(nil), b.events[over:]...)
	}
	return event
}

// Since returns retained events newer than seq, oldest first.
func (b *EventBus) Since(seq int64) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Event
	for _, event := range b.events {
		if event.Seq > seq {
			out = append(out, event)
		}
	}
	return out
}

package pipeline

import (
	"log"
	"time"
)

// Observer receives progress reporting from the pipeline.
type Observer interface {
	// Printf logs a free-form progress message.
	Printf(format string, args ...interface{})

	// Event emits a structured pipeline event.
	Event(event Event)
}

// Event is a structured pipeline event.
type Event struct {
	Type      EventType
	Resource  string
	Message   string
	Timestamp time.Time
}

// EventType classifies pipeline events.
type EventType string

const (
	// EventPhaseStarted indicates a pipeline phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a pipeline phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a pipeline phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreated indicates a remote resource was created.
	EventResourceCreated EventType = "resource.created"
	// EventResourceReused indicates a recorded resource was confirmed and reused.
	EventResourceReused EventType = "resource.reused"

	// EventJobSubmitted indicates the customization job was accepted.
	EventJobSubmitted EventType = "job.submitted"
	// EventJobStatus indicates a status observation of the running job.
	EventJobStatus EventType = "job.status"
)

// ConsoleObserver writes events to the standard logger.
type ConsoleObserver struct{}

// NewConsoleObserver creates an Observer backed by the standard logger.
func NewConsoleObserver() *ConsoleObserver { return &ConsoleObserver{} }

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Resource != "" {
		log.Printf("[%s] %s: %s", event.Type, event.Resource, event.Message)
		return
	}
	log.Printf("[%s] %s", event.Type, event.Message)
}

// NopObserver discards everything. Used by tests and one-shot status reads.
type NopObserver struct{}

// Printf implements Observer.
func (NopObserver) Printf(string, ...interface{}) {}

// Event implements Observer.
func (NopObserver) Event(Event) {}

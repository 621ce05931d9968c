package pubsub

import "context"

const (
	// StartedEvent marks the beginning of a unit of work
	StartedEvent EventType = "started"
	// ProgressEvent marks an intermediate step
	ProgressEvent EventType = "progress"
	// FinishedEvent marks successful completion
	FinishedEvent EventType = "finished"
	// FailedEvent marks termination with an error
	FailedEvent EventType = "failed"
)

// Subscriber hands out event channels that close when the context ends.
type Subscriber[T any] interface {
	Subscribe(context.Context) <-chan Event[T]
}

type (
	// EventType identifies what happened
	EventType string

	// Event pairs an EventType with its payload
	Event[T any] struct {
		Type    EventType
		Payload T
	}

	// Publisher fans an event out to all subscribers
	Publisher[T any] interface {
		Publish(EventType, T)
	}
)

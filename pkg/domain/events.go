package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart    EventType = "run_start"
	EventRunComplete EventType = "run_complete"
	EventStep        EventType = "step"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RunEvent describes the start or completion of an algorithm run.
type RunEvent struct {
	EventBase
	Scenario  string    `json:"scenario,omitempty"`
	Algorithm Algorithm `json:"algorithm"`
	Snapshots int       `json:"snapshots,omitempty"`
	Outcome   Tag       `json:"outcome,omitempty"` // Tag of the terminal snapshot
	Err       error     `json:"-"`
}

// StepEvent describes a stepper movement inside a playback session.
type StepEvent struct {
	EventBase
	SessionID string `json:"session_id"`
	Position  int    `json:"position"`
	Tag       Tag    `json:"tag,omitempty"`
	Finished  bool   `json:"finished"`
}

// LifecycleHooks defines callbacks for observability.
type LifecycleHooks struct {
	OnRunStart    func(context.Context, *RunEvent)
	OnRunComplete func(context.Context, *RunEvent)
	OnStep        func(context.Context, *StepEvent)
}

package domain

import "time"

// Session is a playback cursor over the trace of a Scenario.
// Runs are deterministic, so only the scenario and the position are kept;
// the trace is rebuilt whenever the session is used.
type Session struct {
	// ID identifies the session in a SessionStore.
	ID string `json:"id"`

	// Scenario is the algorithm run being replayed.
	Scenario Scenario `json:"scenario"`

	// Position is the stepper cursor (-1 before the first snapshot).
	Position int `json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a session positioned before the first snapshot.
func NewSession(id string, scenario Scenario) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Scenario:  scenario.Clone(),
		Position:  -1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy so stores never share memory with callers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Scenario = s.Scenario.Clone()
	return &out
}

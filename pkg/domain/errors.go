package domain

import "errors"

// ErrInvalidInput is returned when algorithm input is rejected before a trace is built.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnknownAlgorithm is returned when a scenario names an algorithm that is not supported.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// ErrInvalidPosition is returned when a stepper is resumed outside the bounds of its trace.
var ErrInvalidPosition = errors.New("position out of range")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

package contract

import "errors"

// Domain sentinels. All of them are recovered at the dispatcher boundary and
// converted into a StructuredResult; none may reach the caller as a raw error.
var (
	ErrUnresolvedIntent    = errors.New("intent could not be resolved")
	ErrMissingPrerequisite = errors.New("missing prerequisite step")
	ErrEmptyInput          = errors.New("empty input")
	ErrNoCandidates        = errors.New("no career candidates to score")
	ErrNoCoursesFound      = errors.New("no courses found for skill")
	ErrInsufficientData    = errors.New("insufficient data")
	ErrUnknownMilestone    = errors.New("unknown milestone")

	// ErrValidation marks a violated invariant. Unlike the sentinels above it
	// indicates a programming defect and propagates out of the dispatcher.
	ErrValidation = errors.New("validation failed")
)

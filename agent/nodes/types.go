// Package nodes holds the handle_turn graph steps. Each node is a plain
// function over GraphState so it stays testable outside the compiled graph.
package nodes

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

var (
	ErrInvalidSession   = errors.New("session id is empty")
	ErrInvalidUtterance = errors.New("utterance is empty")
)

type GraphInput struct {
	SessionID string
	Utterance string
}

type GraphOutput struct {
	Result contractx.StructuredResult
}

type GraphState struct {
	SessionID string
	Utterance string
	Now       time.Time

	Session *statex.Session
	Created bool // session did not exist before this turn
	Intent  contractx.Intent

	Result contractx.StructuredResult
}

// ValidateTurn checks the raw turn input and seeds the graph state.
func ValidateTurn(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	utterance := strings.TrimSpace(in.Utterance)
	if utterance == "" {
		return nil, ErrInvalidUtterance
	}

	return &GraphState{
		SessionID: sessionID,
		Utterance: utterance,
		Now:       nowFn().UTC(),
	}, nil
}

package nodes

import (
	"context"
	"fmt"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

// AppendHistory records the handled turn on the session. Turns that resolved
// to needs_info are still successful calls and are recorded too.
func AppendHistory(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Session.AppendTurn(in.Utterance, string(in.Intent), in.Result.Status, in.Now)
	in.Session.Touch(in.Now)
	return in, nil
}

// SaveSession validates the invariants and persists the session.
func SaveSession(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	if err := in.Session.Validate(); err != nil {
		return nil, err
	}
	if err := store.Save(ctx, in.Session); err != nil {
		return nil, err
	}
	return in, nil
}

// FinalizeTurn attaches the follow-up suggestions and produces the output.
func FinalizeTurn(in *GraphState, suggester contractx.Suggester) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	result := in.Result
	if suggester != nil {
		result.Suggestions = suggester.Suggest(in.Intent, in.Session)
	}
	return GraphOutput{Result: result}, nil
}

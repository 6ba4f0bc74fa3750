package nodes

import (
	"fmt"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
)

// ClassifyIntent runs the keyword classifier over the utterance. An
// unmatched utterance keeps IntentNone; the dispatch node converts that into
// a graceful needs_info result rather than failing the turn.
func ClassifyIntent(in *GraphState, classifier contractx.Classifier) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	intent, ok := classifier.Classify(in.Utterance)
	if !ok {
		in.Intent = contractx.IntentNone
		return in, nil
	}
	in.Intent = intent
	return in, nil
}

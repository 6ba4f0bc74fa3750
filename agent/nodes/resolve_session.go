package nodes

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

// ResolveSession loads the session or creates it on first contact.
func ResolveSession(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	sess, err := store.Load(ctx, in.SessionID)
	if err != nil {
		if !errors.Is(err, statex.ErrSessionNotFound) {
			return nil, err
		}
		sess = statex.NewSession(in.SessionID, in.Now)
		in.Created = true
	}

	in.Session = sess
	if in.Created {
		log.Debug().Str("session_id", in.SessionID).Msg("session created")
	}
	return in, nil
}

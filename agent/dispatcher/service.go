package dispatcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	nodex "github.com/skillsphere/skillsphere/agent/nodes"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

var (
	ErrInvalidSession   = nodex.ErrInvalidSession
	ErrInvalidUtterance = nodex.ErrInvalidUtterance
)

// Dispatcher is the orchestration core: one turn in, one structured result
// out, with the session mutated along the way.
type Dispatcher struct {
	store      statex.Store
	tools      contractx.Registry
	classifier contractx.Classifier
	suggester  contractx.Suggester

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	// locks serializes turns per session; independent sessions run
	// concurrently.
	locks sync.Map // session id -> *sync.Mutex

	now func() time.Time
}

func New(
	store statex.Store,
	tools contractx.Registry,
	classifier contractx.Classifier,
	suggester contractx.Suggester,
) (*Dispatcher, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if tools == nil {
		return nil, errors.New("tool registry is required")
	}
	if classifier == nil {
		classifier = NewKeywordClassifier()
	}
	if suggester == nil {
		suggester = NewStaticSuggester()
	}

	d := &Dispatcher{
		store:      store,
		tools:      tools,
		classifier: classifier,
		suggester:  suggester,
		now:        time.Now,
	}

	graphRunner, err := d.compileHandleTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	d.graphRunner = graphRunner

	return d, nil
}

// HandleTurn processes one utterance for one session. The session is held
// exclusively for the whole turn and released on completion or failure. Any
// error returned here is either bad turn input or a violated invariant;
// recoverable domain conditions come back inside the result instead.
func (d *Dispatcher) HandleTurn(ctx context.Context, sessionID, utterance string) (contractx.StructuredResult, error) {
	mu := d.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	out, err := d.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Utterance: utterance,
	})
	if err != nil {
		return contractx.StructuredResult{}, err
	}

	log.Debug().
		Str("session_id", sessionID).
		Str("intent", string(out.Result.Intent)).
		Str("status", out.Result.Status).
		Msg("turn handled")

	return out.Result, nil
}

// Reset evicts the session. Holders of the old state must re-fetch via a new
// turn.
func (d *Dispatcher) Reset(ctx context.Context, sessionID string) error {
	mu := d.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	if err := d.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	// The mutex stays registered: dropping it would let a turn that resolved
	// the old mutex overlap with one that resolves a fresh one.

	log.Info().Str("session_id", sessionID).Msg("session reset")
	return nil
}

func (d *Dispatcher) lockFor(sessionID string) *sync.Mutex {
	mu, _ := d.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

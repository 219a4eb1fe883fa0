package auth

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type State int

const (
	Checking State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Decision is where a guard check ended up.
type Decision struct {
	State     State
	SessionID string
	Session   *Session
	// Err is set when the session could not be checked, as opposed to being absent.
	Err error
}

// Guard gates admin pages on a live session. Unauthenticated is terminal:
// guarded content must not be produced for that request.
type Guard struct {
	store  *Store
	logger zerolog.Logger
}

func NewGuard(store *Store) *Guard {
	return &Guard{
		store:  store,
		logger: log.With().Str("component", "sessionGuard").Logger(),
	}
}

// Check queries the store once. There is no timeout beyond ctx; a store
// error counts as having no session.
func (g *Guard) Check(ctx context.Context, sid string) Decision {
	d := Decision{State: Checking, SessionID: sid}

	session, err := g.store.Current(ctx, sid)
	switch {
	case err != nil:
		g.logger.Warn().Err(err).Str("sessionId", sid).Msg("Session check failed")
		d.State = Unauthenticated
		d.Err = err
	case session == nil:
		d.State = Unauthenticated
	default:
		d.State = Authenticated
		d.Session = session
	}
	return d
}

// Watch calls onSignedOut once when the session sid ends, moving an
// authenticated page to unauthenticated. The caller must Unsubscribe when the
// page goes away.
func (g *Guard) Watch(sid string, onSignedOut func()) *Subscription {
	var once sync.Once
	return g.store.Subscribe(func(ev Event) {
		if ev.Kind == SignedOut && ev.SessionID == sid {
			once.Do(onSignedOut)
		}
	})
}

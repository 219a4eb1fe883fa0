package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paleotommytechy/portfolio/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

type EventKind string

const (
	SignedIn       EventKind = "SIGNED_IN"
	SignedOut      EventKind = "SIGNED_OUT"
	TokenRefreshed EventKind = "TOKEN_REFRESHED"
)

// Event is a session change. Session is nil for SignedOut.
type Event struct {
	Kind      EventKind
	SessionID string
	Session   *Session
}

// StoreOptions tunes session housekeeping. Zero values use the defaults.
type StoreOptions struct {
	// IdleTimeout drops sessions not read for this long.
	IdleTimeout time.Duration
	// SweepInterval is how often idle sessions are looked for.
	SweepInterval time.Duration
}

const (
	defaultIdleTimeout   = 24 * time.Hour
	defaultSweepInterval = 5 * time.Minute
	// refreshLeeway renews tokens slightly before they expire.
	refreshLeeway = 30 * time.Second
	// refreshTimeout bounds a refresh that no longer follows the request context.
	refreshTimeout = 15 * time.Second
)

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Store is the single owner of admin sessions, keyed by browser session id.
// The login view and the admin guard both read it; neither talks to the
// provider about sessions directly.
type Store struct {
	provider Provider
	opts     StoreOptions
	now      func() time.Time
	logger   zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*entry

	subMu   sync.Mutex
	subs    map[uint64]func(Event)
	nextSub uint64

	refreshes singleflight.Group

	lifecycle sync.Mutex
	stop      chan struct{}
	done      chan struct{}
}

func NewStore(provider Provider, opts StoreOptions) *Store {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = defaultIdleTimeout
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = defaultSweepInterval
	}
	return &Store{
		provider: provider,
		opts:     opts,
		now:      time.Now,
		logger:   log.With().Str("component", "sessionStore").Logger(),
		sessions: make(map[string]*entry),
		subs:     make(map[uint64]func(Event)),
	}
}

// Init starts housekeeping. It runs until Close or until ctx is done.
func (s *Store) Init(ctx context.Context) {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.sweepLoop(ctx, s.stop, s.done)
}

// Close stops housekeeping and drops every subscription.
func (s *Store) Close() {
	s.lifecycle.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.lifecycle.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}

	s.subMu.Lock()
	s.subs = make(map[uint64]func(Event))
	s.subMu.Unlock()
}

func (s *Store) sweepLoop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	cutoff := s.now().Add(-s.opts.IdleTimeout)

	s.mu.Lock()
	var dropped []string
	for sid, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, sid)
			dropped = append(dropped, sid)
		}
	}
	s.mu.Unlock()

	for _, sid := range dropped {
		s.logger.Debug().Str("sessionId", sid).Msg("Dropped idle session")
		s.publish(Event{Kind: SignedOut, SessionID: sid})
	}
}

// Current returns the session for sid, or nil when there is none. An expired
// access token is refreshed first. If the provider rejects the refresh token
// the session is signed out; any other refresh failure is returned and the
// session is kept for the next call.
func (s *Store) Current(ctx context.Context, sid string) (*Session, error) {
	if sid == "" {
		return nil, nil
	}

	s.mu.Lock()
	e, ok := s.sessions[sid]
	if ok {
		e.lastSeen = s.now()
	}
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}

	if !e.session.Expired(s.now().Add(refreshLeeway)) {
		return e.session, nil
	}

	// The refresh is shared by every caller waiting on sid, so it must not
	// end when the first caller's request does.
	v, err, _ := s.refreshes.Do(sid, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return s.refresh(rctx, sid, e.session)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

func (s *Store) refresh(ctx context.Context, sid string, old *Session) (*Session, error) {
	fresh, err := s.provider.Refresh(ctx, old.RefreshToken)
	if err != nil {
		if !errs.IsInvalidCredentialsError(err) {
			s.logger.Warn().Err(err).Str("sessionId", sid).Msg("Session refresh failed, keeping session")
			return nil, err
		}
		s.logger.Info().Err(err).Str("sessionId", sid).Msg("Refresh token rejected")
		s.remove(sid)
		s.publish(Event{Kind: SignedOut, SessionID: sid})
		return nil, err
	}

	s.mu.Lock()
	e, ok := s.sessions[sid]
	if ok {
		e.session = fresh
	}
	s.mu.Unlock()
	if !ok {
		return nil, errs.ErrNoSession
	}

	s.publish(Event{Kind: TokenRefreshed, SessionID: sid, Session: fresh})
	return fresh, nil
}

// SignIn authenticates with the provider and stores the resulting session
// under a new browser session id. Subscribers see SignedIn before SignIn
// returns.
func (s *Store) SignIn(ctx context.Context, email, password string) (string, error) {
	session, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", errs.ErrNoSession
	}

	sid := uuid.NewString()
	s.mu.Lock()
	s.sessions[sid] = &entry{session: session, lastSeen: s.now()}
	s.mu.Unlock()

	s.logger.Info().Str("sessionId", sid).Str("email", session.Email).Msg("Signed in")
	s.publish(Event{Kind: SignedIn, SessionID: sid, Session: session})
	return sid, nil
}

// SignOut forgets the session and revokes it at the provider. Revocation is
// best effort; the session is gone locally either way.
func (s *Store) SignOut(ctx context.Context, sid string) error {
	e := s.remove(sid)
	if e == nil {
		return nil
	}

	var revokeErr error
	if err := s.provider.SignOut(ctx, e.session.AccessToken); err != nil {
		s.logger.Warn().Err(err).Str("sessionId", sid).Msg("Provider sign out failed")
		revokeErr = err
	}

	s.logger.Info().Str("sessionId", sid).Msg("Signed out")
	s.publish(Event{Kind: SignedOut, SessionID: sid})
	return revokeErr
}

func (s *Store) remove(sid string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sid]
	if !ok {
		return nil
	}
	delete(s.sessions, sid)
	return e
}

// Subscription is a registered change listener.
type Subscription struct {
	store *Store
	id    uint64
	once  sync.Once
}

// Subscribe registers fn for every session change. fn runs on the goroutine
// that caused the change and must not block.
func (s *Store) Subscribe(fn func(Event)) *Subscription {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextSub++
	s.subs[s.nextSub] = fn
	return &Subscription{store: s, id: s.nextSub}
}

func (sub *Subscription) Unsubscribe() {
	sub.once.Do(func() {
		sub.store.subMu.Lock()
		delete(sub.store.subs, sub.id)
		sub.store.subMu.Unlock()
	})
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	listeners := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

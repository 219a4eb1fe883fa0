package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/paleotommytechy/portfolio/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	mu         sync.Mutex
	signInErr  error
	refreshErr error
	refreshes  int
	revoked    []string
	expiresAt  time.Time
}

func (p *stubProvider) SignInWithPassword(_ context.Context, email, password string) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.signInErr != nil {
		return nil, p.signInErr
	}
	return &Session{AccessToken: "access-" + password, RefreshToken: "refresh", Email: email, ExpiresAt: p.expiresAt}, nil
}

func (p *stubProvider) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshes++
	if p.refreshErr != nil {
		return nil, p.refreshErr
	}
	return &Session{AccessToken: "access-refreshed", RefreshToken: refreshToken, Email: "admin@example.com", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (p *stubProvider) SignOut(_ context.Context, accessToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revoked = append(p.revoked, accessToken)
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kinds []EventKind
	for _, ev := range r.events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func TestStoreSignInPublishesConfirmedSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore(&stubProvider{expiresAt: time.Now().Add(time.Hour)}, StoreOptions{})
	defer store.Close()

	var got Event
	sub := store.Subscribe(func(ev Event) { got = ev })
	defer sub.Unsubscribe()

	sid, err := store.SignIn(ctx, "admin@example.com", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	assert.Equal(t, SignedIn, got.Kind)
	assert.Equal(t, sid, got.SessionID)
	require.NotNil(t, got.Session)
	assert.Equal(t, "admin@example.com", got.Session.Email)

	current, err := store.Current(ctx, sid)
	require.NoError(t, err)
	assert.Same(t, got.Session, current)
}

func TestStoreSignInErrorIsReturned(t *testing.T) {
	providerErr := errs.NewInvalidCredentialsError("Invalid login credentials")
	store := NewStore(&stubProvider{signInErr: providerErr}, StoreOptions{})
	defer store.Close()

	rec := &recorder{}
	store.Subscribe(rec.record)

	_, err := store.SignIn(context.Background(), "admin@example.com", "bad")
	require.Error(t, err)
	assert.Equal(t, "Invalid login credentials", errs.ProviderMessage(err))
	assert.Empty(t, rec.kinds())
}

func TestStoreCurrentUnknownSession(t *testing.T) {
	store := NewStore(&stubProvider{}, StoreOptions{})
	defer store.Close()

	s, err := store.Current(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = store.Current(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestStoreRefreshesExpiredToken(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{expiresAt: time.Now().Add(-time.Minute)}
	store := NewStore(provider, StoreOptions{})
	defer store.Close()

	rec := &recorder{}
	store.Subscribe(rec.record)

	sid, err := store.SignIn(ctx, "admin@example.com", "pw")
	require.NoError(t, err)

	s, err := store.Current(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "access-refreshed", s.AccessToken)
	assert.Equal(t, []EventKind{SignedIn, TokenRefreshed}, rec.kinds())

	s, err = store.Current(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "access-refreshed", s.AccessToken)
	assert.Equal(t, 1, provider.refreshes)
}

func TestStoreFailedRefreshSignsOut(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{expiresAt: time.Now().Add(-time.Minute), refreshErr: errs.NewInvalidCredentialsError("Invalid Refresh Token: Already Used")}
	store := NewStore(provider, StoreOptions{})
	defer store.Close()

	rec := &recorder{}
	store.Subscribe(rec.record)

	sid, err := store.SignIn(ctx, "admin@example.com", "pw")
	require.NoError(t, err)

	_, err = store.Current(ctx, sid)
	require.Error(t, err)
	assert.Equal(t, []EventKind{SignedIn, SignedOut}, rec.kinds())

	s, err := store.Current(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestStoreRefreshOutlivesCanceledRequest(t *testing.T) {
	provider := &stubProvider{expiresAt: time.Now().Add(-time.Minute)}
	store := NewStore(provider, StoreOptions{})
	defer store.Close()

	sid, err := store.SignIn(context.Background(), "admin@example.com", "pw")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := store.Current(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "access-refreshed", s.AccessToken)
	assert.Equal(t, 1, provider.refreshes)
}

func TestStoreTransientRefreshFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{expiresAt: time.Now().Add(-time.Minute), refreshErr: errs.NewServiceUnreachableError("auth", context.DeadlineExceeded)}
	store := NewStore(provider, StoreOptions{})
	defer store.Close()

	rec := &recorder{}
	store.Subscribe(rec.record)

	sid, err := store.SignIn(ctx, "admin@example.com", "pw")
	require.NoError(t, err)

	_, err = store.Current(ctx, sid)
	require.Error(t, err)
	assert.True(t, errs.IsServiceUnreachableError(err))
	assert.Equal(t, []EventKind{SignedIn}, rec.kinds())

	provider.mu.Lock()
	provider.refreshErr = nil
	provider.mu.Unlock()

	s, err := store.Current(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "access-refreshed", s.AccessToken)
	assert.Equal(t, []EventKind{SignedIn, TokenRefreshed}, rec.kinds())
}

func TestStoreSignOut(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{expiresAt: time.Now().Add(time.Hour)}
	store := NewStore(provider, StoreOptions{})
	defer store.Close()

	rec := &recorder{}
	sub := store.Subscribe(rec.record)

	sid, err := store.SignIn(ctx, "admin@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, store.SignOut(ctx, sid))
	require.NoError(t, store.SignOut(ctx, sid))

	assert.Equal(t, []string{"access-pw"}, provider.revoked)
	assert.Equal(t, []EventKind{SignedIn, SignedOut}, rec.kinds())

	sub.Unsubscribe()
	sub.Unsubscribe()
	_, err = store.SignIn(ctx, "admin@example.com", "pw")
	require.NoError(t, err)
	assert.Len(t, rec.kinds(), 2)
}

func TestStoreSweepDropsIdleSessions(t *testing.T) {
	ctx := context.Background()
	store := NewStore(&stubProvider{expiresAt: time.Now().Add(time.Hour)}, StoreOptions{IdleTimeout: time.Hour})
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }

	rec := &recorder{}
	store.Subscribe(rec.record)

	idle, err := store.SignIn(ctx, "admin@example.com", "pw")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	active, err := store.SignIn(ctx, "admin@example.com", "pw")
	require.NoError(t, err)

	store.sweep()

	s, err := store.Current(ctx, idle)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = store.Current(ctx, active)
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.Equal(t, []EventKind{SignedIn, SignedIn, SignedOut}, rec.kinds())
}

func TestStoreInitAndClose(t *testing.T) {
	store := NewStore(&stubProvider{}, StoreOptions{SweepInterval: time.Millisecond})
	store.Init(context.Background())
	store.Init(context.Background())
	time.Sleep(5 * time.Millisecond)
	store.Close()
	store.Close()
}

func TestStoreInitStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := NewStore(&stubProvider{}, StoreOptions{})
	store.Init(ctx)
	cancel()
	store.Close()
}

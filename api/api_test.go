package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/paleotommytechy/portfolio/admin"
	"github.com/paleotommytechy/portfolio/auth"
	"github.com/paleotommytechy/portfolio/database"
	"github.com/paleotommytechy/portfolio/errs"
	"github.com/paleotommytechy/portfolio/gateway"
	"github.com/paleotommytechy/portfolio/models"
	"github.com/paleotommytechy/portfolio/views"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSecret   = "super-secret-jwt-token-with-at-least-32-characters"
	testEmail    = "admin@example.com"
	testPassword = "correct-horse"
)

type stubProvider struct {
	mu       sync.Mutex
	signOuts int
}

func (p *stubProvider) SignInWithPassword(_ context.Context, email, password string) (*auth.Session, error) {
	if password != testPassword {
		return nil, errs.NewInvalidCredentialsError("Invalid login credentials")
	}
	return &auth.Session{
		AccessToken: "access-" + email,
		Email:       email,
		UserID:      "user-1",
		ExpiresAt:   time.Now().Add(time.Hour),
	}, nil
}

func (p *stubProvider) Refresh(context.Context, string) (*auth.Session, error) {
	return nil, errs.ErrNoSession
}

func (p *stubProvider) SignOut(context.Context, string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signOuts++
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []models.ContactMessage
	err  error
}

func (m *fakeMailer) SendContactMessage(_ context.Context, msg models.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) messages() []models.ContactMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ContactMessage(nil), m.sent...)
}

type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryObjects) Put(_ context.Context, key, _ string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = body
	return nil
}

func (m *memoryObjects) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fixture struct {
	handler  http.Handler
	gdb      *gorm.DB
	db       database.Database
	store    *auth.Store
	provider *stubProvider
	mailer   *fakeMailer
	objects  *memoryObjects
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, models.Migrate(gdb))
	db := database.New(gdb)

	provider := &stubProvider{}
	store := auth.NewStore(provider, auth.StoreOptions{})
	t.Cleanup(store.Close)

	services := gateway.NewContent[models.Service](db.Services())
	projects := gateway.NewContent[models.GalleryProject](db.Projects())
	caseStudies := gateway.NewContent[models.CaseStudy](db.CaseStudies())
	testimonials := gateway.NewContent[models.Testimonial](db.Testimonials())
	objects := &memoryObjects{objects: make(map[string][]byte)}

	registry := admin.NewRegistry(admin.Gateways{
		Services:     services,
		Projects:     projects,
		CaseStudies:  caseStudies,
		Testimonials: testimonials,
		Uploader:     gateway.NewUploader(objects),
	}, store)
	t.Cleanup(registry.Close)

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	mailer := &fakeMailer{}
	deps := Dependencies{
		Renderer:     renderer,
		Services:     services,
		Projects:     projects,
		CaseStudies:  caseStudies,
		Testimonials: testimonials,
		Store:        store,
		Registry:     registry,
		Verifier:     auth.NewVerifier(testSecret),
		Mailer:       mailer,
	}
	require.NoError(t, deps.validate())

	handler := newRouter(deps,
		withConfig(map[string]string{"REQUEST_LOGGING": "false"}),
		withStartupTime(time.Now()),
	)

	return &fixture{
		handler:  handler,
		gdb:      gdb,
		db:       db,
		store:    store,
		provider: provider,
		mailer:   mailer,
		objects:  objects,
	}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) get(path, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	withSession(req, sid)
	return f.do(req)
}

func (f *fixture) postForm(path, sid string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	withSession(req, sid)
	return f.do(req)
}

// login signs in through the login form and returns the browser session id.
func (f *fixture) login(t *testing.T) string {
	t.Helper()
	rec := f.postForm("/login", "", url.Values{"email": {testEmail}, "password": {testPassword}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))

	sid := sessionCookie(rec)
	require.NotEmpty(t, sid)
	return sid
}

func withSession(req *http.Request, sid string) {
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sid})
	}
}

func sessionCookie(rec *httptest.ResponseRecorder) string {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.MaxAge >= 0 {
			return c.Value
		}
	}
	return ""
}

func bearer(t *testing.T) string {
	t.Helper()
	claims := auth.Claims{
		Email: testEmail,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

var errMailDown = errors.New("mail provider down")

package api

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/paleotommytechy/portfolio/auth"
	"github.com/paleotommytechy/portfolio/errs"
	"github.com/paleotommytechy/portfolio/views"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type loginForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type loginHandler struct {
	responder Responder
	logger    zerolog.Logger
	renderer  *views.Renderer
	store     *auth.Store
	secure    bool
}

func newLoginHandler(renderer *views.Renderer, store *auth.Store, secure bool) loginHandler {
	logger := log.With().Str("handlerName", "loginHandler").Logger()

	return loginHandler{
		responder: NewResponder(logger, renderer),
		logger:    logger,
		renderer:  renderer,
		store:     store,
		secure:    secure,
	}
}

func (h loginHandler) render(w http.ResponseWriter, status int, data views.LoginData) {
	h.responder.WritePage(w, status, "login", h.renderer.NewPage(views.SectionLogin, "Admin Login", data))
}

// showLogin renders the signed-in summary when the cookie names a live
// session, otherwise the sign-in form.
func (h loginHandler) showLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data views.LoginData
		if r.URL.Query().Get("signed_out") == "1" {
			data.Message = "Signed out"
		}

		if sid := auth.SessionID(r); sid != "" {
			session, err := h.store.Current(r.Context(), sid)
			if err != nil {
				h.logger.Debug().Err(err).Msg("Session lookup failed")
			}
			if session != nil {
				data.Email = session.Email
				data.Message = "Signed in"
			} else {
				auth.ClearCookie(w, h.secure)
			}
		}
		h.render(w, http.StatusOK, data)
	}
}

// signIn does not redirect as soon as the provider answers. It waits for the
// store's SignedIn notification for the new session, and only then sets the
// cookie and moves on to the dashboard.
func (h loginHandler) signIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.render(w, http.StatusBadRequest, views.LoginData{Error: "Could not read the login form."})
			return
		}

		form := loginForm{
			Email:    strings.TrimSpace(r.PostForm.Get("email")),
			Password: r.PostForm.Get("password"),
		}
		if err := formValidator.Struct(form); err != nil {
			h.render(w, http.StatusUnprocessableEntity, views.LoginData{
				FormEmail: form.Email,
				Error:     "Email and password are required.",
			})
			return
		}

		waiter := newSignInWaiter(h.store)
		defer waiter.close()

		sid, err := h.store.SignIn(r.Context(), form.Email, form.Password)
		if err != nil {
			h.logger.Info().Err(err).Str("email", form.Email).Msg("Sign in rejected")
			h.render(w, signInStatus(err), views.LoginData{
				FormEmail: form.Email,
				Error:     errs.ProviderMessage(err),
			})
			return
		}

		if _, err := waiter.wait(r.Context(), sid); err != nil {
			h.logger.Warn().Err(err).Str("sessionId", sid).Msg("Sign in was not confirmed")
			h.render(w, http.StatusGatewayTimeout, views.LoginData{
				FormEmail: form.Email,
				Error:     "Sign in did not complete. Please try again.",
			})
			return
		}

		auth.SetCookie(w, sid, h.secure)
		redirect(w, r, "/admin")
	}
}

func (h loginHandler) signOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sid := auth.SessionID(r); sid != "" {
			if err := h.store.SignOut(r.Context(), sid); err != nil {
				h.logger.Warn().Err(err).Msg("Sign out was not confirmed by the provider")
			}
		}
		auth.ClearCookie(w, h.secure)
		redirect(w, r, "/")
	}
}

func signInStatus(err error) int {
	switch {
	case errs.IsInvalidCredentialsError(err):
		return http.StatusUnauthorized
	case errs.IsServiceUnreachableError(err), errs.IsUpstreamError(err):
		return http.StatusBadGateway
	}
	return http.StatusOK
}

// signInWaiter collects SignedIn notifications published while a sign-in is
// in flight. It is registered before the sign-in starts so the notification
// cannot be missed.
type signInWaiter struct {
	sub    *auth.Subscription
	notify chan struct{}

	mu       sync.Mutex
	sessions map[string]*auth.Session
}

func newSignInWaiter(store *auth.Store) *signInWaiter {
	wt := &signInWaiter{
		notify:   make(chan struct{}, 1),
		sessions: make(map[string]*auth.Session),
	}
	wt.sub = store.Subscribe(func(ev auth.Event) {
		if ev.Kind != auth.SignedIn {
			return
		}
		wt.mu.Lock()
		wt.sessions[ev.SessionID] = ev.Session
		wt.mu.Unlock()

		select {
		case wt.notify <- struct{}{}:
		default:
		}
	})
	return wt
}

func (wt *signInWaiter) wait(ctx context.Context, sid string) (*auth.Session, error) {
	for {
		wt.mu.Lock()
		session, ok := wt.sessions[sid]
		wt.mu.Unlock()
		if ok {
			return session, nil
		}

		select {
		case <-wt.notify:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (wt *signInWaiter) close() {
	wt.sub.Unsubscribe()
}

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paleotommytechy/portfolio/errs"
	gotrue "github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"
)

const gotrueTimeout = 15 * time.Second

// GoTrue is the hosted backend's password auth service.
type GoTrue struct {
	client   gotrue.Client
	verifier *Verifier
	now      func() time.Time
}

// NewGoTrue talks to <projectURL>/auth/v1. When verifier is non-nil every
// issued access token is checked before a session is accepted.
//
// The client takes no context; a call that has started is bounded by its
// timeout rather than by ctx.
func NewGoTrue(projectURL, apiKey string, verifier *Verifier) *GoTrue {
	client := gotrue.New("", apiKey).
		WithCustomAuthURL(strings.TrimRight(projectURL, "/") + "/auth/v1").
		WithClient(http.Client{Timeout: gotrueTimeout})

	return &GoTrue{
		client:   client,
		verifier: verifier,
		now:      time.Now,
	}
}

func (g *GoTrue) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	return g.token(ctx, types.TokenRequest{GrantType: "password", Email: email, Password: password})
}

func (g *GoTrue) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	return g.token(ctx, types.TokenRequest{GrantType: "refresh_token", RefreshToken: refreshToken})
}

func (g *GoTrue) SignOut(ctx context.Context, accessToken string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.client.WithToken(accessToken).Logout(); err != nil {
		return providerError(err)
	}
	return nil
}

func (g *GoTrue) token(ctx context.Context, req types.TokenRequest) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := g.client.Token(req)
	if err != nil {
		return nil, providerError(err)
	}
	return g.session(resp.Session)
}

func (g *GoTrue) session(tok types.Session) (*Session, error) {
	s := &Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Email:        tok.User.Email,
	}
	if tok.User.ID != uuid.Nil {
		s.UserID = tok.User.ID.String()
	}
	switch {
	case tok.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(tok.ExpiresAt, 0)
	case tok.ExpiresIn > 0:
		s.ExpiresAt = g.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}

	if g.verifier != nil {
		claims, err := g.verifier.Verify(tok.AccessToken)
		if err != nil {
			return nil, err
		}
		claims.apply(s)
	}
	return s, nil
}

// The client reports a non-2xx answer as "response status code <n>: <body>".
var statusErrorPattern = regexp.MustCompile(`(?s)response status code (\d+): (.*)$`)

// providerError maps a client error onto the service errors the store and
// login form understand. 400 and 401 are rejected credentials or refresh
// tokens, and the provider's message is kept verbatim. Anything without a
// status never got a usable answer.
func providerError(err error) error {
	if m := statusErrorPattern.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		text := errorText(m[2], code)
		if code == http.StatusBadRequest || code == http.StatusUnauthorized {
			return errs.NewInvalidCredentialsError(text)
		}
		return errs.NewUpstreamError("auth", code, text)
	}
	return errs.NewServiceUnreachableError("auth", err)
}

type errorResponse struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func (e errorResponse) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func errorText(raw string, code int) string {
	var body errorResponse
	if err := json.Unmarshal([]byte(raw), &body); err == nil {
		if text := body.text(); text != "" {
			return text
		}
	}
	if text := strings.TrimSpace(raw); text != "" {
		return text
	}
	return http.StatusText(code)
}

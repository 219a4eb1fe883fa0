package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/paleotommytechy/portfolio/admin"
	"github.com/paleotommytechy/portfolio/auth"
	"github.com/paleotommytechy/portfolio/errs"
	"github.com/paleotommytechy/portfolio/gateway"
	"github.com/paleotommytechy/portfolio/views"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	maxUploadSize = 10 << 20

	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// sessionEvent is pushed to an open dashboard over its websocket.
type sessionEvent struct {
	Event string `json:"event"`
}

// tabActions binds one tab's manager to untyped form input.
type tabActions struct {
	submit func(ctx context.Context, values url.Values, file *gateway.File) error
	edit   func(id int64) bool
	cancel func()
	delete func(ctx context.Context, id int64) bool
}

func bindManager[T admin.Record, F any](m *admin.Manager[T, F], parse func(url.Values) F) tabActions {
	return tabActions{
		submit: func(ctx context.Context, values url.Values, file *gateway.File) error {
			return m.Submit(ctx, parse(values), file)
		},
		edit:   m.StartEdit,
		cancel: m.Cancel,
		delete: m.Delete,
	}
}

func actionsFor(d *admin.Dashboard, tab admin.Tab) tabActions {
	switch tab {
	case admin.TabServices:
		return bindManager(d.Services, admin.ParseServiceForm)
	case admin.TabGallery:
		return bindManager(d.Projects, admin.ParseProjectForm)
	case admin.TabCaseStudies:
		return bindManager(d.CaseStudies, admin.ParseCaseStudyForm)
	default:
		return bindManager(d.Testimonials, admin.ParseTestimonialForm)
	}
}

// adminHandler serves the dashboard. Every route behind it has already
// passed the session guard.
type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	renderer  *views.Renderer
	registry  *admin.Registry
	guard     *auth.Guard
}

func newAdminHandler(renderer *views.Renderer, registry *admin.Registry, guard *auth.Guard) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger, renderer),
		logger:    logger,
		renderer:  renderer,
		registry:  registry,
		guard:     guard,
	}
}

// dashboard returns the mounted dashboard for the request's session.
func (h adminHandler) dashboard(r *http.Request, reload bool) (*admin.Dashboard, auth.Decision, error) {
	decision, ok := ctxGetDecision(r.Context())
	if !ok {
		return nil, decision, errs.NewUnauthorizedError("no session")
	}
	d, err := h.registry.Get(r.Context(), decision.SessionID, reload)
	return d, decision, err
}

func (h adminHandler) renderTab(w http.ResponseWriter, status int, d *admin.Dashboard, decision auth.Decision, tab admin.Tab, pageErr string) {
	var email string
	if decision.Session != nil {
		email = decision.Session.Email
	}
	data := views.NewAdminData(d, tab, email)
	data.Error = pageErr
	h.responder.WritePage(w, status, "admin", h.renderer.NewPage(views.SectionAdmin, "Admin", data))
}

// parseTab accepts only known tab names; the dashboard page itself falls
// back to the first tab.
func parseTab(r *http.Request) (admin.Tab, bool) {
	raw := chi.URLParam(r, "tab")
	tab := admin.ParseTab(raw)
	return tab, string(tab) == raw
}

func (h adminHandler) showDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := admin.ParseTab(chi.URLParam(r, "tab"))
		d, decision, err := h.dashboard(r, r.URL.Query().Get("reload") == "1")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.renderTab(w, http.StatusOK, d, decision, tab, "")
	}
}

func (h adminHandler) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab, ok := parseTab(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		d, decision, err := h.dashboard(r, false)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		file, err := readUpload(w, r)
		if err != nil {
			h.renderTab(w, http.StatusBadRequest, d, decision, tab, err.Error())
			return
		}

		err = actionsFor(d, tab).submit(r.Context(), r.Form, file)
		switch {
		case err == nil:
		case errs.IsMissingRequiredFieldError(err):
			h.renderTab(w, http.StatusUnprocessableEntity, d, decision, tab, missingFieldMessage(err))
			return
		default:
			// Upload failures raise their own alert; gateway failures leave the
			// form as submitted so it can be retried.
			h.logger.Warn().Err(err).Str("tab", string(tab)).Msg("Submit was not applied")
		}
		redirect(w, r, "/admin/"+string(tab))
	}
}

func (h adminHandler) startEdit() http.HandlerFunc {
	return h.rowAction(func(ctx context.Context, a tabActions, id int64) {
		a.edit(id)
	})
}

func (h adminHandler) deleteRow() http.HandlerFunc {
	return h.rowAction(func(ctx context.Context, a tabActions, id int64) {
		if !a.delete(ctx, id) {
			h.logger.Warn().Int64("id", id).Msg("Delete was not applied")
		}
	})
}

func (h adminHandler) rowAction(apply func(ctx context.Context, a tabActions, id int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab, ok := parseTab(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid id"))
			return
		}
		d, _, err := h.dashboard(r, false)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		apply(r.Context(), actionsFor(d, tab), id)
		redirect(w, r, "/admin/"+string(tab))
	}
}

func (h adminHandler) cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab, ok := parseTab(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		d, _, err := h.dashboard(r, false)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actionsFor(d, tab).cancel()
		redirect(w, r, "/admin/"+string(tab))
	}
}

// sessionEvents keeps a websocket open for a dashboard page and tells it to
// leave as soon as its session is signed out anywhere.
func (h adminHandler) sessionEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision, ok := ctxGetDecision(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("no session"))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn().Err(err).Msg("Websocket upgrade failed")
			return
		}
		defer conn.Close()

		signedOut := make(chan struct{})
		sub := h.guard.Watch(decision.SessionID, func() { close(signedOut) })
		defer sub.Unsubscribe()

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(sessionEvent{Event: "watching"}); err != nil {
			return
		}

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-signedOut:
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteJSON(sessionEvent{Event: "signed_out"}); err != nil {
					h.logger.Debug().Err(err).Msg("Failed to push sign out")
				}
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "signed out"))
				return
			case <-closed:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	}
}

// readUpload parses the form and returns the attached image, or nil when no
// file was chosen.
func readUpload(w http.ResponseWriter, r *http.Request) (*gateway.File, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return nil, errors.New("could not read the form")
		}
		return nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, errors.New("could not read the form")
	}

	f, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("could not read the uploaded file")
	}
	defer f.Close()

	if header.Filename == "" || header.Size == 0 {
		return nil, nil
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.New("could not read the uploaded file")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &gateway.File{Name: header.Filename, ContentType: contentType, Data: data}, nil
}

func missingFieldMessage(err error) string {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) && apiErr.Field != "" {
		return apiErr.Field + " is required"
	}
	return err.Error()
}

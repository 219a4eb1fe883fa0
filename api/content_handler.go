package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/paleotommytechy/portfolio/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxBodySize = 1 << 20

// contentGateway is the fail-soft content capability the JSON API is served from.
type contentGateway[T any] interface {
	ListAll(ctx context.Context) []T
	GetByID(ctx context.Context, id int64) (T, bool)
	Exists(ctx context.Context, id int64) (found, ok bool)
	Add(ctx context.Context, item T) *T
	Update(ctx context.Context, id int64, item T) *T
	Delete(ctx context.Context, id int64) bool
}

// contentHandler serves one content type as JSON under /api/{kind}.
type contentHandler[T any] struct {
	responder Responder
	logger    zerolog.Logger
	kind      string
	content   contentGateway[T]
}

func newContentHandler[T any](kind string, content contentGateway[T]) contentHandler[T] {
	logger := log.With().Str("handlerName", "contentHandler").Str("kind", kind).Logger()

	return contentHandler[T]{
		responder: NewResponder(logger, nil),
		logger:    logger,
		kind:      kind,
		content:   content,
	}
}

// mount registers the read routes on public and the write routes on
// protected.
func (h contentHandler[T]) mount(public, protected chi.Router) {
	prefix := "/api/" + h.kind
	public.Get(prefix, h.list())
	public.Get(prefix+"/{id}", h.get())
	protected.Post(prefix, h.create())
	protected.Put(prefix+"/{id}", h.update())
	protected.Delete(prefix+"/{id}", h.remove())
}

// list returns every row. A failed read is an empty list, not an error.
func (h contentHandler[T]) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := h.content.ListAll(r.Context())
		h.responder.WriteJSON(w, ListResponse[T]{Items: items, Total: len(items)})
	}
}

func (h contentHandler[T]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, ok := h.content.GetByID(r.Context(), id)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError(h.kind+" not found"))
			return
		}
		h.responder.WriteJSON(w, item)
	}
}

func (h contentHandler[T]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := h.decode(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created := h.content.Add(r.Context(), item)
		if created == nil {
			h.responder.WriteError(w, errs.NewGatewayError("add", h.kind))
			return
		}
		h.logAuthor(r, "add")
		h.responder.WriteJSONStatus(w, http.StatusCreated, created)
	}
}

func (h contentHandler[T]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		item, err := h.decode(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !h.exists(w, r, id) {
			return
		}

		updated := h.content.Update(r.Context(), id, item)
		if updated == nil {
			h.responder.WriteError(w, errs.NewGatewayError("update", h.kind))
			return
		}
		h.logAuthor(r, "update")
		h.responder.WriteJSON(w, updated)
	}
}

func (h contentHandler[T]) remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !h.exists(w, r, id) {
			return
		}

		if !h.content.Delete(r.Context(), id) {
			h.responder.WriteError(w, errs.NewGatewayError("delete", h.kind))
			return
		}
		h.logAuthor(r, "delete")
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": h.kind + " deleted successfully",
		})
	}
}

// decode reads and validates a JSON body. Any id in the body is ignored;
// ids come from the URL or from the backend.
func (h contentHandler[T]) decode(r *http.Request) (T, error) {
	var item T

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return item, errs.NewBadRequestError("failed to read request body")
	}
	if len(body) > maxBodySize {
		return item, errs.NewMaxBodySizeExceededError(maxBodySize)
	}
	if err := json.Unmarshal(body, &item); err != nil {
		h.logger.Debug().Err(err).Msg("Failed to decode request body")
		return item, errs.NewInvalidJSONError(err)
	}

	if err := formValidator.Struct(item); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return item, errs.NewMissingRequiredFieldError(fieldErrs[0].Field())
		}
		return item, errs.NewBadRequestError(err.Error())
	}
	return item, nil
}

func (h contentHandler[T]) logAuthor(r *http.Request, op string) {
	event := h.logger.Info().Str("op", op)
	if claims, ok := ctxGetClaims(r.Context()); ok {
		event = event.Str("email", claims.Email).Str("subject", claims.Subject)
	}
	event.Msg("Content changed")
}

// exists writes 404 for a missing row and 502 when the lookup itself failed.
func (h contentHandler[T]) exists(w http.ResponseWriter, r *http.Request, id int64) bool {
	found, ok := h.content.Exists(r.Context(), id)
	switch {
	case !ok:
		h.responder.WriteError(w, errs.NewGatewayError("find", h.kind))
		return false
	case !found:
		h.responder.WriteError(w, errs.NewNotFoundError(h.kind+" not found"))
		return false
	}
	return true
}

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, errs.NewMissingRequiredFieldError("id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewInvalidFieldError("id", "must be an integer")
	}
	return id, nil
}

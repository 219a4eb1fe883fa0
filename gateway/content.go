package gateway

import (
	"context"

	"github.com/paleotommytechy/portfolio/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Store is the remote table capability a Content gateway reads and writes.
// FindByID and Update report a missing row with an errs.NewNotFound error.
type Store[T any] interface {
	Name() string
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	Add(ctx context.Context, item T) (*T, error)
	Update(ctx context.Context, id int64, item T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Content is the fail-soft gateway for one content type. Every failure is
// logged and reported as "no data" or "not applied"; callers never see an
// error value.
type Content[T any] struct {
	store  Store[T]
	logger zerolog.Logger
}

func NewContent[T any](store Store[T]) *Content[T] {
	return &Content[T]{
		store:  store,
		logger: log.With().Str("component", "gateway").Str("table", store.Name()).Logger(),
	}
}

// ListAll never returns nil. Ordering is whatever the backend returns.
func (c *Content[T]) ListAll(ctx context.Context) []T {
	items, err := c.store.FindAll(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list rows")
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func (c *Content[T]) GetByID(ctx context.Context, id int64) (T, bool) {
	var zero T
	item, err := c.store.FindByID(ctx, id)
	if errs.IsNotFound(err) {
		c.logger.Debug().Int64("id", id).Msg("Row not found")
		return zero, false
	}
	if err != nil {
		c.logger.Error().Err(err).Int64("id", id).Msg("Failed to fetch row")
		return zero, false
	}
	return *item, true
}

// Exists separates a missing row (found=false, ok=true) from a backend
// failure (ok=false), which GetByID folds together.
func (c *Content[T]) Exists(ctx context.Context, id int64) (found, ok bool) {
	_, err := c.store.FindByID(ctx, id)
	switch {
	case errs.IsNotFound(err):
		return false, true
	case err != nil:
		c.logger.Error().Err(err).Int64("id", id).Msg("Failed to fetch row")
		return false, false
	}
	return true, true
}

// Add returns the created row, or nil when the insert failed.
func (c *Content[T]) Add(ctx context.Context, item T) *T {
	created, err := c.store.Add(ctx, item)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to add row")
		return nil
	}
	return created
}

// Update replaces every editable field of the row. It returns nil when the
// update failed or no row has the id.
func (c *Content[T]) Update(ctx context.Context, id int64, item T) *T {
	updated, err := c.store.Update(ctx, id, item)
	if errs.IsNotFound(err) {
		c.logger.Warn().Int64("id", id).Msg("Update matched no row")
		return nil
	}
	if err != nil {
		c.logger.Error().Err(err).Int64("id", id).Msg("Failed to update row")
		return nil
	}
	return updated
}

func (c *Content[T]) Delete(ctx context.Context, id int64) bool {
	if err := c.store.Delete(ctx, id); err != nil {
		c.logger.Error().Err(err).Int64("id", id).Msg("Failed to delete row")
		return false
	}
	return true
}

package admin

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/paleotommytechy/portfolio/errs"
	"github.com/paleotommytechy/portfolio/gateway"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Record is a persisted row with a server-assigned id.
type Record interface {
	RecordID() int64
}

// Gateway is the remote content a manager edits.
type Gateway[T any] interface {
	ListAll(ctx context.Context) []T
	Add(ctx context.Context, item T) *T
	Update(ctx context.Context, id int64, item T) *T
	Delete(ctx context.Context, id int64) bool
}

type ImageUploader interface {
	UploadImage(ctx context.Context, file gateway.File, folder string) (string, bool)
}

// Mode is either Creating or Editing.
type Mode[T any] interface {
	mode()
}

type Creating[T any] struct{}

type Editing[T any] struct {
	Target T
}

func (Creating[T]) mode() {}
func (Editing[T]) mode()  {}

// Kind describes how one content type is edited.
type Kind[T Record, F any] struct {
	Name string
	// Folder receives uploaded images. Empty for types without an image.
	Folder      string
	UploadAlert string
	ToForm      func(T) F
	// Build turns a submitted form into the full record to store. target is
	// nil when creating. imageURL is "" when no file was uploaded.
	Build func(form F, target *T, imageURL string) T
}

// View is a copy of a manager's state for rendering.
type View[T any, F any] struct {
	Items []T
	Form  F
	Mode  Mode[T]
	Alert string
}

func (v View[T, F]) IsEditing() bool {
	_, ok := v.Mode.(Editing[T])
	return ok
}

// Editing reports the current edit target, if any.
func (v View[T, F]) Editing() (T, bool) {
	e, ok := v.Mode.(Editing[T])
	return e.Target, ok
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Manager holds the create/edit form and loaded rows for one content type.
// Remote calls run without the lock held, so concurrent submissions apply in
// the order they resolve.
type Manager[T Record, F any] struct {
	kind     Kind[T, F]
	content  Gateway[T]
	uploader ImageUploader
	logger   zerolog.Logger

	mu    sync.Mutex
	items []T
	form  F
	mode  Mode[T]
	alert string
}

func NewManager[T Record, F any](kind Kind[T, F], content Gateway[T], uploader ImageUploader, items []T) *Manager[T, F] {
	return &Manager[T, F]{
		kind:     kind,
		content:  content,
		uploader: uploader,
		logger:   log.With().Str("component", "adminManager").Str("kind", kind.Name).Logger(),
		items:    slices.Clone(items),
		mode:     Creating[T]{},
	}
}

// View returns the current state and clears any pending alert.
func (m *Manager[T, F]) View() View[T, F] {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := View[T, F]{
		Items: slices.Clone(m.items),
		Form:  m.form,
		Mode:  m.mode,
		Alert: m.alert,
	}
	m.alert = ""
	return v
}

// StartEdit makes the row with id the edit target, replacing any previous
// target, and fills the form from it.
func (m *Manager[T, F]) StartEdit(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	target := m.items[i]
	m.mode = Editing[T]{Target: target}
	m.form = m.kind.ToForm(target)
	return true
}

// Cancel returns to create mode with an empty form.
func (m *Manager[T, F]) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

// Submit adds the form as a new row, or replaces the edit target. An
// attached file is uploaded first; if that fails nothing is written and an
// alert is raised. On any failure the list and mode are unchanged.
func (m *Manager[T, F]) Submit(ctx context.Context, form F, file *gateway.File) error {
	m.mu.Lock()
	m.form = form
	mode := m.mode
	m.mu.Unlock()

	if err := validateForm(form); err != nil {
		return err
	}

	var imageURL string
	if file != nil && m.kind.Folder != "" {
		url, ok := m.uploader.UploadImage(ctx, *file, m.kind.Folder)
		if !ok {
			m.mu.Lock()
			m.alert = m.kind.UploadAlert
			m.mu.Unlock()
			return errs.NewUploadError(file.Name, nil)
		}
		imageURL = url
	}

	switch mode := mode.(type) {
	case Editing[T]:
		target := mode.Target
		id := target.RecordID()
		updated := m.content.Update(ctx, id, m.kind.Build(form, &target, imageURL))
		if updated == nil {
			return errs.NewGatewayError("update", m.kind.Name)
		}

		m.mu.Lock()
		if i := m.indexOf(id); i >= 0 {
			m.items[i] = *updated
		}
		m.reset()
		m.mu.Unlock()
	default:
		created := m.content.Add(ctx, m.kind.Build(form, nil, imageURL))
		if created == nil {
			return errs.NewGatewayError("add", m.kind.Name)
		}

		m.mu.Lock()
		m.items = append(m.items, *created)
		m.reset()
		m.mu.Unlock()
	}
	return nil
}

// Delete removes the row remotely and, only if that succeeded, locally.
func (m *Manager[T, F]) Delete(ctx context.Context, id int64) bool {
	if !m.content.Delete(ctx, id) {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(id); i >= 0 {
		m.items = slices.Delete(m.items, i, i+1)
	}
	return true
}

func (m *Manager[T, F]) indexOf(id int64) int {
	return slices.IndexFunc(m.items, func(item T) bool { return item.RecordID() == id })
}

func (m *Manager[T, F]) reset() {
	var empty F
	m.form = empty
	m.mode = Creating[T]{}
}

func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return errs.NewMissingRequiredFieldError(fieldErrs[0].Field())
	}
	return errs.NewBadRequestError(err.Error())
}

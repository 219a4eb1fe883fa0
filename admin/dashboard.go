package admin

import (
	"context"
	"sync"
	"time"

	"github.com/paleotommytechy/portfolio/auth"
	"github.com/paleotommytechy/portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Tab string

const (
	TabTestimonials Tab = "testimonials"
	TabServices     Tab = "services"
	TabGallery      Tab = "gallery"
	TabCaseStudies  Tab = "case-studies"
)

// Tabs lists the dashboard tabs in display order.
var Tabs = []Tab{TabTestimonials, TabServices, TabGallery, TabCaseStudies}

// ParseTab maps a URL segment to a tab; unknown values select the first tab.
func ParseTab(s string) Tab {
	for _, t := range Tabs {
		if string(t) == s {
			return t
		}
	}
	return TabTestimonials
}

// Gateways are the remote collaborators a dashboard edits through.
type Gateways struct {
	Services     Gateway[models.Service]
	Projects     Gateway[models.GalleryProject]
	CaseStudies  Gateway[models.CaseStudy]
	Testimonials Gateway[models.Testimonial]
	Uploader     ImageUploader
}

// Dashboard is one admin's loaded content. It is loaded once and kept until
// the session ends or the admin asks for a reload; switching tabs reads
// from memory.
type Dashboard struct {
	Services     *Manager[models.Service, ServiceForm]
	Projects     *Manager[models.GalleryProject, ProjectForm]
	CaseStudies  *Manager[models.CaseStudy, CaseStudyForm]
	Testimonials *Manager[models.Testimonial, TestimonialForm]
	MountedAt    time.Time
}

// Mount loads all four lists concurrently.
func Mount(ctx context.Context, gw Gateways) (*Dashboard, error) {
	var (
		services     []models.Service
		projects     []models.GalleryProject
		caseStudies  []models.CaseStudy
		testimonials []models.Testimonial
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		services = gw.Services.ListAll(gctx)
		return nil
	})
	g.Go(func() error {
		projects = gw.Projects.ListAll(gctx)
		return nil
	})
	g.Go(func() error {
		caseStudies = gw.CaseStudies.ListAll(gctx)
		return nil
	})
	g.Go(func() error {
		testimonials = gw.Testimonials.ListAll(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Dashboard{
		Services:     NewManager(ServiceKind, gw.Services, gw.Uploader, services),
		Projects:     NewManager(ProjectKind, gw.Projects, gw.Uploader, projects),
		CaseStudies:  NewManager(CaseStudyKind, gw.CaseStudies, gw.Uploader, caseStudies),
		Testimonials: NewManager(TestimonialKind, gw.Testimonials, gw.Uploader, testimonials),
		MountedAt:    time.Now(),
	}, nil
}

// Registry keeps one dashboard per browser session.
type Registry struct {
	gateways Gateways
	sub      *auth.Subscription
	logger   zerolog.Logger

	mu         sync.Mutex
	dashboards map[string]*Dashboard
}

// NewRegistry drops a session's dashboard as soon as the store reports the
// session signed out.
func NewRegistry(gw Gateways, store *auth.Store) *Registry {
	r := &Registry{
		gateways:   gw,
		logger:     log.With().Str("component", "adminRegistry").Logger(),
		dashboards: make(map[string]*Dashboard),
	}
	r.sub = store.Subscribe(func(ev auth.Event) {
		if ev.Kind == auth.SignedOut {
			r.Drop(ev.SessionID)
		}
	})
	return r
}

// Get returns the session's dashboard, mounting it on first use or when
// reload is set.
func (r *Registry) Get(ctx context.Context, sid string, reload bool) (*Dashboard, error) {
	if !reload {
		r.mu.Lock()
		d, ok := r.dashboards[sid]
		r.mu.Unlock()
		if ok {
			return d, nil
		}
	}

	d, err := Mount(ctx, r.gateways)
	if err != nil {
		return nil, err
	}
	r.logger.Debug().Str("sessionId", sid).Bool("reload", reload).Msg("Mounted dashboard")

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.dashboards[sid]; ok && !reload {
		return existing, nil
	}
	r.dashboards[sid] = d
	return d, nil
}

// Lookup returns a mounted dashboard without loading one.
func (r *Registry) Lookup(sid string) (*Dashboard, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dashboards[sid]
	return d, ok
}

func (r *Registry) Drop(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.dashboards, sid)
}

func (r *Registry) Close() {
	r.sub.Unsubscribe()
}

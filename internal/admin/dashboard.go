package admin

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/avocado-ai/avocado-web/internal/backend"
	"github.com/avocado-ai/avocado-web/internal/domain"
)

// Tab is the type-independent face of a collection.
type Tab interface {
	Name() string
	Load(ctx context.Context) error
}

// Dashboard holds the five managed collections.
type Dashboard struct {
	Jobs       *Collection[domain.Job, *domain.Job]
	News       *Collection[domain.News, *domain.News]
	Cases      *Collection[domain.Case, *domain.Case]
	Techniques *Collection[domain.Technique, *domain.Technique]
	Products   *Collection[domain.Product, *domain.Product]

	client *backend.Client
}

// NewDashboard wires the collections to client. With sampleFallback a failed
// load shows the built-in sample records instead of an empty list.
func NewDashboard(client *backend.Client, bus Publisher, sampleFallback bool) *Dashboard {
	var s Samples
	if sampleFallback {
		s = DefaultSamples()
	}
	return &Dashboard{
		Jobs:       NewCollection[domain.Job, *domain.Job](backend.NewRemote(client, backend.Jobs), bus, s.Jobs),
		News:       NewCollection[domain.News, *domain.News](backend.NewRemote(client, backend.News), bus, s.News),
		Cases:      NewCollection[domain.Case, *domain.Case](backend.NewRemote(client, backend.Cases), bus, s.Cases),
		Techniques: NewCollection[domain.Technique, *domain.Technique](backend.NewRemote(client, backend.Techniques), bus, s.Techniques),
		Products:   NewCollection[domain.Product, *domain.Product](backend.NewRemote(client, backend.Products), bus, s.Products),
		client:     client,
	}
}

// Tabs lists the collections in display order.
func (d *Dashboard) Tabs() []Tab {
	return []Tab{d.Jobs, d.News, d.Cases, d.Techniques, d.Products}
}

// Tab returns the collection called name.
func (d *Dashboard) Tab(name string) (Tab, bool) {
	for _, t := range d.Tabs() {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// LoadAll loads every collection concurrently. Each failure is kept on its
// own collection; the joined error is returned.
func (d *Dashboard) LoadAll(ctx context.Context) error {
	tabs := d.Tabs()
	errs := make([]error, len(tabs))
	var g errgroup.Group
	for i, t := range tabs {
		i, t := i, t
		g.Go(func() error {
			errs[i] = t.Load(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// TagSuggestions returns the job tags already used upstream.
func (d *Dashboard) TagSuggestions(ctx context.Context) ([]string, error) {
	return d.client.TagSuggestions(ctx)
}

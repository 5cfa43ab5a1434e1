package adminapi

import (
	"sync"

	"github.com/avocado-ai/avocado-web/internal/admin"
	"github.com/avocado-ai/avocado-web/internal/domain"
	"github.com/avocado-ai/avocado-web/internal/webserver"
)

var initOnce sync.Once

// Init registers the admin console pages and the admin JSON API.
func Init() {
	initOnce.Do(func() {
		registerAuthRoutes()
		registerCollectionRoutes()
		registerOpLogRoutes()
		registerSystemRoutes()
	})
}

func registerCollectionRoutes() {
	// Static paths win over the resource :id routes.
	webserver.ApiGET("/jobs/tags", listTagSuggestions)

	registerResource(domain.ResourceJobs, func(d *admin.Dashboard) *admin.Collection[domain.Job, *domain.Job] {
		return d.Jobs
	})
	registerResource(domain.ResourceNews, func(d *admin.Dashboard) *admin.Collection[domain.News, *domain.News] {
		return d.News
	})
	registerResource(domain.ResourceCases, func(d *admin.Dashboard) *admin.Collection[domain.Case, *domain.Case] {
		return d.Cases
	})
	registerResource(domain.ResourceTechniques, func(d *admin.Dashboard) *admin.Collection[domain.Technique, *domain.Technique] {
		return d.Techniques
	})
	registerResource(domain.ResourceProducts, func(d *admin.Dashboard) *admin.Collection[domain.Product, *domain.Product] {
		return d.Products
	})
}

func registerSystemRoutes() {
	webserver.ApiPOST("/reload", reloadAll)
	webserver.ApiGET("/status", systemStatus)
}

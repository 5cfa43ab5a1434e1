package backend

import (
	"fmt"

	"github.com/avocado-ai/avocado-web/internal/domain"
)

// Resource describes one remote collection: where it lives and how its
// records convert between the wire and working shapes.
type Resource[T any] struct {
	Name string
	// Path is the collection root, e.g. /api/jobs.
	Path string
	// ListPath overrides the list endpoint; defaults to Path + "/".
	ListPath string

	decode func(data []byte) (T, error)
	encode func(item T) interface{}
	id     func(item T) int64
}

func (r Resource[T]) listPath() string {
	if r.ListPath != "" {
		return r.ListPath
	}
	return r.Path + "/"
}

func (r Resource[T]) createPath() string {
	return r.Path + "/"
}

func (r Resource[T]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.Path, id)
}

// Decode normalizes one backend record.
func (r Resource[T]) Decode(data []byte) (T, error) {
	return r.decode(data)
}

// ID returns the server-assigned identifier of item.
func (r Resource[T]) ID(item T) int64 {
	return r.id(item)
}

// Payload builds the backend body for item.
func (r Resource[T]) Payload(item T) interface{} {
	return r.encode(item)
}

var (
	Jobs = Resource[domain.Job]{
		Name:   domain.ResourceJobs,
		Path:   "/api/jobs",
		decode: NormalizeJob,
		encode: JobPayload,
		id:     func(v domain.Job) int64 { return v.ID },
	}
	// News lists through the admin endpoint so unpublished drafts are visible.
	News = Resource[domain.News]{
		Name:     domain.ResourceNews,
		Path:     "/api/news",
		ListPath: "/api/news/admin/all",
		decode:   NormalizeNews,
		encode:   NewsPayload,
		id:       func(v domain.News) int64 { return v.ID },
	}
	Cases = Resource[domain.Case]{
		Name:   domain.ResourceCases,
		Path:   "/api/cases",
		decode: NormalizeCase,
		encode: CasePayload,
		id:     func(v domain.Case) int64 { return v.ID },
	}
	Techniques = Resource[domain.Technique]{
		Name:   domain.ResourceTechniques,
		Path:   "/api/techniques",
		decode: NormalizeTechnique,
		encode: TechniquePayload,
		id:     func(v domain.Technique) int64 { return v.ID },
	}
	Products = Resource[domain.Product]{
		Name:   domain.ResourceProducts,
		Path:   "/api/products",
		decode: NormalizeProduct,
		encode: ProductPayload,
		id:     func(v domain.Product) int64 { return v.ID },
	}
)

// PublicNews is the published-only news feed used by the public site.
var PublicNews = Resource[domain.News]{
	Name:   domain.ResourceNews,
	Path:   "/api/news",
	decode: NormalizeNews,
	encode: NewsPayload,
	id:     func(v domain.News) int64 { return v.ID },
}

// TagsPath returns the previously used job tags.
const TagsPath = "/api/jobs/tags"

package site

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/avocado-ai/avocado-web/internal/app"
	"github.com/avocado-ai/avocado-web/internal/backend"
	"github.com/avocado-ai/avocado-web/internal/domain"
	"github.com/avocado-ai/avocado-web/internal/webserver"
)

var registerOnce sync.Once

// Init registers the public pages.
func Init() {
	registerOnce.Do(registerPageRoutes)
}

func registerPageRoutes() {
	webserver.GET("/", homePage)
	webserver.GET("/products", productsPage)
	webserver.GET("/techniques", techniquesPage)
	webserver.GET("/cases", casesPage)
	webserver.GET("/careers", careersPage)
	webserver.GET("/news", newsPage)
	webserver.GET("/news/:id", newsDetailPage)
	webserver.GET("/contact", contactPage)
}

type visibleRecord[T any] interface {
	*T
	Visible() bool
}

func visible[T any, P visibleRecord[T]](items []T) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if P(&items[i]).Visible() {
			out = append(out, items[i])
		}
	}
	return out
}

// fetch lists res from the backend, falling back to the embedded copy when
// the backend is unavailable.
func fetch[T any](c echo.Context, res backend.Resource[T], fallback []T) []T {
	p, ok := webserver.GetAppContext(c).(app.BackendProvider)
	if !ok || p.Backend() == nil {
		return fallback
	}
	items, err := backend.NewRemote(p.Backend(), res).List(c.Request().Context())
	if err != nil {
		zap.L().Warn("backend unavailable, rendering fallback content",
			zap.String("resource", res.Name),
			zap.Error(err))
		return fallback
	}
	return items
}

type homeData struct {
	webserver.Page
	Products []domain.Product
}

func homePage(c echo.Context) error {
	products := visible[domain.Product](fetch(c, backend.Products, fallback.Products))
	if len(products) > 3 {
		products = products[:3]
	}
	return c.Render(http.StatusOK, "home", homeData{Page: webserver.NewPage(c), Products: products})
}

type productsData struct {
	webserver.Page
	Products []domain.Product
}

func productsPage(c echo.Context) error {
	return c.Render(http.StatusOK, "products", productsData{
		Page:     webserver.NewPage(c),
		Products: visible[domain.Product](fetch(c, backend.Products, fallback.Products)),
	})
}

type techniquesData struct {
	webserver.Page
	Techniques []domain.Technique
}

func techniquesPage(c echo.Context) error {
	return c.Render(http.StatusOK, "techniques", techniquesData{
		Page:       webserver.NewPage(c),
		Techniques: visible[domain.Technique](fetch(c, backend.Techniques, fallback.Techniques)),
	})
}

type casesData struct {
	webserver.Page
	Cases []domain.Case
}

func casesPage(c echo.Context) error {
	return c.Render(http.StatusOK, "cases", casesData{
		Page:  webserver.NewPage(c),
		Cases: visible[domain.Case](fetch(c, backend.Cases, fallback.Cases)),
	})
}

type careersData struct {
	webserver.Page
	Jobs []domain.Job
	Tags []string
	Tag  string
}

func careersPage(c echo.Context) error {
	jobs := visible[domain.Job](fetch(c, backend.Jobs, fallback.Jobs))
	tag := strings.TrimSpace(c.QueryParam("tag"))
	return c.Render(http.StatusOK, "careers", careersData{
		Page: webserver.NewPage(c),
		Jobs: filterJobs(jobs, tag),
		Tags: jobTags(jobs),
		Tag:  tag,
	})
}

func filterJobs(jobs []domain.Job, tag string) []domain.Job {
	if tag == "" {
		return jobs
	}
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		for _, t := range j.Tags {
			if t == tag {
				out = append(out, j)
				break
			}
		}
	}
	return out
}

func jobTags(jobs []domain.Job) []string {
	seen := map[string]bool{}
	var tags []string
	for _, j := range jobs {
		for _, t := range j.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

type newsData struct {
	webserver.Page
	News       []domain.News
	Categories []string
	Category   string
}

func newsPage(c echo.Context) error {
	items := sortedNews(visible[domain.News](fetch(c, backend.PublicNews, fallback.News)))
	category := strings.TrimSpace(c.QueryParam("category"))
	if strings.EqualFold(category, "all") {
		category = ""
	}

	var categories []string
	seen := map[string]bool{}
	filtered := make([]domain.News, 0, len(items))
	for _, n := range items {
		if n.Category != "" && !seen[n.Category] {
			seen[n.Category] = true
			categories = append(categories, n.Category)
		}
		if category == "" || n.Category == category {
			filtered = append(filtered, n)
		}
	}
	return c.Render(http.StatusOK, "news", newsData{
		Page:       webserver.NewPage(c),
		News:       filtered,
		Categories: categories,
		Category:   category,
	})
}

// sortedNews orders items newest first. Display dates sort lexically.
func sortedNews(items []domain.News) []domain.News {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedDate > items[j].PublishedDate
	})
	return items
}

type newsDetailData struct {
	webserver.Page
	Item domain.News
}

func newsDetailPage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return notFound(c)
	}
	for _, n := range visible[domain.News](fetch(c, backend.PublicNews, fallback.News)) {
		if n.ID == id {
			return c.Render(http.StatusOK, "news_detail", newsDetailData{Page: webserver.NewPage(c), Item: n})
		}
	}
	return notFound(c)
}

type contactData struct {
	webserver.Page
}

func contactPage(c echo.Context) error {
	return c.Render(http.StatusOK, "contact", contactData{Page: webserver.NewPage(c)})
}

type errorData struct {
	webserver.Page
	Status  int
	Message string
}

func notFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, "error", errorData{
		Page:    webserver.NewPage(c),
		Status:  http.StatusNotFound,
		Message: http.StatusText(http.StatusNotFound),
	})
}

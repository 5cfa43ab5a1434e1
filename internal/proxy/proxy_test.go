package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avocado-ai/avocado-web/internal/backend"
	"github.com/avocado-ai/avocado-web/internal/webserver"
)

type fakeApp struct {
	client *backend.Client
}

func (f *fakeApp) Backend() *backend.Client { return f.client }

func serve(t *testing.T, upstream http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	srv := httptest.NewServer(upstream)
	defer srv.Close()

	e := echo.New()
	app := &fakeApp{client: backend.NewClient(srv.URL, time.Second)}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(webserver.AppContextKey, app)
			return next(c)
		}
	})
	e.GET(path, Relay(Routes[path]))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRelayReturnsUpstreamBody(t *testing.T) {
	const payload = `[{"id":1,"title":"Cybersecurity Analyst","requirements":"[\"SIEM\"]","posted_date":"2024-01-15T00:00:00"}]`
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs/", r.URL.Path)
		_, _ = io.WriteString(w, payload)
	}, "/api/jobs")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")
}

func TestRelayMapsUpstreamErrors(t *testing.T) {
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, "/api/cases")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch data from backend"}`, rec.Body.String())
}

func TestRelayRejectsNonJSON(t *testing.T) {
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}, "/api/news")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch data from backend"}`, rec.Body.String())
}

func TestRelayTagSuggestions(t *testing.T) {
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, backend.TagsPath, r.URL.Path)
		_, _ = io.WriteString(w, `["AI","Security"]`)
	}, "/api/jobs/tags")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `["AI","Security"]`, rec.Body.String())
}

func TestRelayWithoutBackend(t *testing.T) {
	e := echo.New()
	e.GET("/api/jobs", Relay("/api/jobs/"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// Package proxy relays read-only API requests to the content backend so the
// browser never talks to it directly.
package proxy

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/avocado-ai/avocado-web/internal/app"
	"github.com/avocado-ai/avocado-web/internal/backend"
	"github.com/avocado-ai/avocado-web/internal/webserver"
)

// ErrorBody is returned for every failed relay.
var ErrorBody = map[string]string{"error": "Failed to fetch data from backend"}

// Routes maps each public path to its upstream path.
var Routes = map[string]string{
	"/api/jobs":       "/api/jobs/",
	"/api/cases":      "/api/cases/",
	"/api/news":       "/api/news/",
	"/api/products":   "/api/products/",
	"/api/techniques": "/api/techniques/",
	"/api/jobs/tags":  backend.TagsPath,
}

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		for path, upstream := range Routes {
			webserver.GET(path, Relay(upstream))
		}
	})
}

// Relay forwards the request to upstream and returns the backend JSON as is.
// Transport failures, non-2xx answers and non-JSON bodies all become a 500.
func Relay(upstream string) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := webserver.GetAppContext(c).(app.BackendProvider)
		if !ok || p.Backend() == nil {
			return c.JSON(http.StatusInternalServerError, ErrorBody)
		}
		body, err := p.Backend().Fetch(c.Request().Context(), upstream)
		if err != nil {
			zap.L().Error("proxy fetch failed",
				zap.String("path", c.Request().URL.Path),
				zap.String("upstream", upstream),
				zap.Int("status", backend.StatusCode(err)),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, ErrorBody)
		}
		return c.JSONBlob(http.StatusOK, body)
	}
}

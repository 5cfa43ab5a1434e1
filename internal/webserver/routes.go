package webserver

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	mw      []echo.MiddlewareFunc
}

// Route tables filled by the handler packages at init time and mounted by
// New. Public routes are absolute; admin routes are relative to /admin and
// api routes relative to /admin/api.
var (
	routesMu     sync.Mutex
	publicRoutes []route
	adminRoutes  []route
	apiRoutes    []route
)

func add(table *[]route, method, path string, h echo.HandlerFunc, m []echo.MiddlewareFunc) {
	routesMu.Lock()
	defer routesMu.Unlock()
	*table = append(*table, route{method: method, path: path, handler: h, mw: m})
}

func GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	add(&publicRoutes, http.MethodGet, path, h, m)
}

func POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	add(&publicRoutes, http.MethodPost, path, h, m)
}

// AdminGET registers a session-protected console page.
func AdminGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	add(&adminRoutes, http.MethodGet, path, h, m)
}

func AdminPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	add(&adminRoutes, http.MethodPost, path, h, m)
}

// ApiGET registers a token-protected admin JSON endpoint.
func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	add(&apiRoutes, http.MethodGet, path, h, m)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	add(&apiRoutes, http.MethodPost, path, h, m)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	add(&apiRoutes, http.MethodPut, path, h, m)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	add(&apiRoutes, http.MethodDelete, path, h, m)
}

func snapshot(table []route) []route {
	routesMu.Lock()
	defer routesMu.Unlock()
	return append([]route(nil), table...)
}

package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/avocado-ai/avocado-web/config"
	"github.com/avocado-ai/avocado-web/internal/admin"
)

const (
	AdminPrefix = "/admin"
	ApiPrefix   = "/admin/api"
)

// Server is the HTTP front of the application.
type Server struct {
	root *echo.Echo
	addr string
}

// New builds the echo instance and mounts every registered route. appCtx is
// made available to handlers through GetAppContext.
func New(cfg *config.AppConfig, appCtx interface{}) (*Server, error) {
	if cfg.Web.Secret == "" {
		return nil, errors.New("web secret must be configured")
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.Debug = cfg.System.Debug
	e.Renderer = renderer
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(zapLogger())
	e.Use(appContextMiddleware(appCtx))
	e.Use(localeMiddleware)
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Web.Secret))))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, r := range snapshot(publicRoutes) {
		e.Add(r.method, r.path, r.handler, r.mw...)
	}

	adminGroup := e.Group(AdminPrefix, requireSession)
	for _, r := range snapshot(adminRoutes) {
		adminGroup.Add(r.method, r.path, r.handler, r.mw...)
	}

	apiGroup := e.Group(ApiPrefix, echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(cfg.Web.Secret),
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(admin.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"error":   "UNAUTHORIZED",
				"message": "A valid admin token is required",
			})
		},
	}), tokenOperator)
	for _, r := range snapshot(apiRoutes) {
		apiGroup.Add(r.method, r.path, r.handler, r.mw...)
	}

	return &Server{root: e, addr: fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)}, nil
}

// Echo exposes the router, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.root
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	zap.S().Infof("web server listening on %s", s.addr)
	if err := s.root.Start(s.addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

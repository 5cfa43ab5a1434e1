package webserver

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/avocado-ai/avocado-web/internal/admin"
	"github.com/avocado-ai/avocado-web/internal/i18n"
)

const (
	AppContextKey = "appctx"
	LocaleKey     = "locale"
	OperatorKey   = "operator"
	SessionName   = "avocado_admin"
	tokenKey      = "user"
)

// GetAppContext returns the application value injected by New.
func GetAppContext(c echo.Context) interface{} {
	return c.Get(AppContextKey)
}

// Locale returns the language chosen for the request.
func Locale(c echo.Context) string {
	if v, ok := c.Get(LocaleKey).(string); ok && v != "" {
		return v
	}
	return i18n.DefaultLocale
}

// Operator returns the signed-in admin user, if any.
func Operator(c echo.Context) string {
	v, _ := c.Get(OperatorKey).(string)
	return v
}

// OperatorContext returns the request context tagged with the acting admin.
func OperatorContext(c echo.Context) context.Context {
	return admin.WithOperator(c.Request().Context(), Operator(c), c.RealIP())
}

func appContextMiddleware(appCtx interface{}) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			return next(c)
		}
	}
}

// localeMiddleware resolves the request language and persists an explicit
// ?lang= choice in a session cookie.
func localeMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		locale, persist := i18n.ResolveLocale(c.Request())
		if persist {
			c.SetCookie(i18n.LanguageCookie(locale))
		}
		c.Set(LocaleKey, locale)
		return next(c)
	}
}

func zapLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				zap.L().Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			zap.L().Debug("request", fields...)
			return nil
		},
	})
}

// requireSession redirects to the login page unless the admin session holds
// an operator.
func requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(SessionName, c)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/login")
		}
		name, _ := sess.Values[OperatorKey].(string)
		if name == "" {
			return c.Redirect(http.StatusSeeOther, "/admin/login")
		}
		c.Set(OperatorKey, name)
		return next(c)
	}
}

// tokenOperator copies the username from the validated JWT into the context.
func tokenOperator(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token, ok := c.Get(tokenKey).(*jwt.Token); ok {
			if claims, ok := token.Claims.(*admin.Claims); ok {
				c.Set(OperatorKey, claims.Username)
			}
		}
		return next(c)
	}
}

// StartSession stores name in the admin session cookie.
func StartSession(c echo.Context, name string, maxAge time.Duration) error {
	// A stale cookie yields a fresh session alongside the decode error.
	sess, err := session.Get(SessionName, c)
	if sess == nil {
		return err
	}
	sess.Options.Path = "/admin"
	sess.Options.MaxAge = int(maxAge / time.Second)
	sess.Options.HttpOnly = true
	sess.Options.SameSite = http.SameSiteLaxMode
	sess.Values[OperatorKey] = name
	return sess.Save(c.Request(), c.Response())
}

// EndSession expires the admin session cookie.
func EndSession(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if sess == nil {
		return err
	}
	sess.Options.Path = "/admin"
	sess.Options.MaxAge = -1
	delete(sess.Values, OperatorKey)
	return sess.Save(c.Request(), c.Response())
}

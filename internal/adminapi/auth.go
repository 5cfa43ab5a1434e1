package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/avocado-ai/avocado-web/internal/admin"
	"github.com/avocado-ai/avocado-web/internal/domain"
	"github.com/avocado-ai/avocado-web/internal/webserver"
)

// sessionResource labels sign-in events in the operation log.
const sessionResource = "session"

type loginData struct {
	webserver.Page
	Error    bool
	Username string
}

// LoginRequest is the body of the token endpoint.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// TokenResponse carries a signed admin token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func registerAuthRoutes() {
	webserver.GET(webserver.AdminPrefix+"/login", loginPage)
	webserver.POST(webserver.AdminPrefix+"/login", submitLogin)
	webserver.POST(webserver.ApiPrefix+"/login", issueToken)
	webserver.AdminGET("/logout", logout)
	webserver.AdminGET("", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, webserver.AdminPrefix+"/"+domain.ResourceJobs)
	})
}

func loginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_login", loginData{Page: webserver.NewPage(c)})
}

// checkLogin verifies the credentials and records the attempt.
func checkLogin(c echo.Context, username, password string) bool {
	auth := getAuth(c)
	var err error
	if auth == nil {
		err = admin.ErrBadCredentials
	} else {
		err = auth.Check(username, password)
	}
	ev := &admin.OpEvent{
		Operator: username,
		IP:       c.RealIP(),
		Resource: sessionResource,
		Action:   domain.ActionLogin,
		Success:  err == nil,
		Time:     time.Now(),
	}
	if err != nil {
		ev.Detail = err.Error()
		zap.L().Warn("admin login rejected", zap.String("username", username), zap.String("ip", c.RealIP()))
	}
	publish(c, ev)
	return err == nil
}

func submitLogin(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if !checkLogin(c, username, password) {
		return c.Render(http.StatusUnauthorized, "admin_login", loginData{
			Page:     webserver.NewPage(c),
			Error:    true,
			Username: username,
		})
	}
	if err := webserver.StartSession(c, username, getConfig(c).SessionMaxAge()); err != nil {
		zap.L().Error("start admin session failed", zap.Error(err))
		return renderError(c, http.StatusInternalServerError, "Unable to start session")
	}
	return c.Redirect(http.StatusSeeOther, webserver.AdminPrefix+"/"+domain.ResourceJobs)
}

func logout(c echo.Context) error {
	if err := webserver.EndSession(c); err != nil {
		zap.L().Warn("end admin session failed", zap.Error(err))
	}
	return c.Redirect(http.StatusSeeOther, webserver.AdminPrefix+"/login")
}

func issueToken(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request", err.Error())
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", webserver.FieldErrors(err))
	}
	if !checkLogin(c, req.Username, req.Password) {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
	}
	token, expires, err := getAuth(c).IssueToken(req.Username)
	if err != nil {
		zap.L().Error("issue admin token failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Unable to issue token", nil)
	}
	return ok(c, TokenResponse{Token: token, ExpiresAt: expires})
}

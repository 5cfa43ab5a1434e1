package adminapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/avocado-ai/avocado-web/config"
	"github.com/avocado-ai/avocado-web/internal/admin"
	"github.com/avocado-ai/avocado-web/internal/app"
	"github.com/avocado-ai/avocado-web/internal/backend"
	"github.com/avocado-ai/avocado-web/internal/oplog"
	"github.com/avocado-ai/avocado-web/internal/webserver"
)

// ErrorResponse is the body of every failed admin API call.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// PagedResponse wraps one page of a listing.
type PagedResponse struct {
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": data})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, ErrorResponse{Error: code, Message: message, Details: details})
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, PagedResponse{Data: data, Total: total, Page: page, PageSize: pageSize})
}

func parseIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func parsePagination(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.QueryParam("perPage"))
	if size < 1 || size > 500 {
		size = 20
	}
	return page, size
}

// GetDB returns the application database handle.
func GetDB(c echo.Context) *gorm.DB {
	if p, ok := webserver.GetAppContext(c).(app.DBProvider); ok {
		return p.DB()
	}
	return nil
}

func getConfig(c echo.Context) *config.AppConfig {
	if p, ok := webserver.GetAppContext(c).(app.ConfigProvider); ok && p.Config() != nil {
		return p.Config()
	}
	return config.DefaultAppConfig
}

func getDashboard(c echo.Context) *admin.Dashboard {
	if p, ok := webserver.GetAppContext(c).(app.DashboardProvider); ok {
		return p.Dashboard()
	}
	return nil
}

func getAuth(c echo.Context) *admin.Authenticator {
	if p, ok := webserver.GetAppContext(c).(app.AuthProvider); ok {
		return p.Auth()
	}
	return nil
}

func getOpLog(c echo.Context) *oplog.Store {
	if p, ok := webserver.GetAppContext(c).(app.OpLogProvider); ok {
		return p.OpLog()
	}
	return nil
}

func publish(c echo.Context, ev *admin.OpEvent) {
	if p, ok := webserver.GetAppContext(c).(app.EventBusProvider); ok && p.Bus() != nil {
		p.Bus().Publish(admin.TopicOperation, ev)
	}
}

func opContext(c echo.Context) context.Context {
	return webserver.OperatorContext(c)
}

// failFromError maps controller and backend errors onto the API envelope.
func failFromError(c echo.Context, err error, what string) error {
	switch {
	case errors.Is(err, admin.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", what+" not found", nil)
	case errors.Is(err, admin.ErrDeclined):
		return fail(c, http.StatusConflict, "CONFIRMATION_REQUIRED", "Deletion must be confirmed", nil)
	case backend.IsNotFound(err):
		return fail(c, http.StatusNotFound, "NOT_FOUND", what+" not found on backend", err.Error())
	default:
		return fail(c, http.StatusBadGateway, "BACKEND_ERROR", "Backend request failed", err.Error())
	}
}

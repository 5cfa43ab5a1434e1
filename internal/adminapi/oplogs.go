package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/avocado-ai/avocado-web/internal/domain"
	"github.com/avocado-ai/avocado-web/internal/oplog"
	"github.com/avocado-ai/avocado-web/internal/webserver"
)

type operationsData struct {
	webserver.Page
	Logs []domain.SysOprLog
}

func registerOpLogRoutes() {
	webserver.ApiGET("/oplogs", listOpLogs)
	webserver.ApiGET("/oplogs.csv", exportOpLogs)
	webserver.AdminGET("/operations", operationsPage)
	webserver.AdminGET("/operations.csv", exportOpLogs)
}

func opLogQuery(c echo.Context) oplog.Query {
	page, size := parsePagination(c)
	return oplog.Query{
		Resource: c.QueryParam("resource"),
		Action:   c.QueryParam("action"),
		Operator: c.QueryParam("operator"),
		Page:     page,
		PageSize: size,
	}
}

func listOpLogs(c echo.Context) error {
	store := getOpLog(c)
	if store == nil {
		return fail(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Operation log is not initialized", nil)
	}
	q := opLogQuery(c)
	rows, total, err := store.List(c.Request().Context(), q)
	if err != nil {
		zap.L().Error("list operation logs failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query operation logs", err.Error())
	}
	return paged(c, rows, total, q.Page, q.PageSize)
}

func exportOpLogs(c echo.Context) error {
	store := getOpLog(c)
	if store == nil {
		return fail(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Operation log is not initialized", nil)
	}
	q := opLogQuery(c)
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="operations.csv"`)
	res.WriteHeader(http.StatusOK)
	if err := store.ExportCSV(c.Request().Context(), res, q); err != nil {
		zap.L().Error("export operation logs failed", zap.Error(err))
		return err
	}
	return nil
}

func operationsPage(c echo.Context) error {
	data := operationsData{Page: webserver.NewPage(c)}
	if store := getOpLog(c); store != nil {
		q := opLogQuery(c)
		q.PageSize = 200
		rows, _, err := store.List(c.Request().Context(), q)
		if err != nil {
			zap.L().Error("list operation logs failed", zap.Error(err))
			return renderError(c, http.StatusInternalServerError, "Failed to query operation logs")
		}
		data.Logs = rows
	}
	return c.Render(http.StatusOK, "admin_operations", data)
}

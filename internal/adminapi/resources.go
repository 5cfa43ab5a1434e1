package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/avocado-ai/avocado-web/internal/admin"
	"github.com/avocado-ai/avocado-web/internal/domain"
	"github.com/avocado-ai/avocado-web/internal/webserver"
)

// ConfirmHeader approves a delete request on the JSON API.
const ConfirmHeader = "X-Confirm-Delete"

// resource serves one dashboard collection over the JSON API and the HTML
// console.
type resource[T any, P admin.Record[T]] struct {
	name string
	pick func(*admin.Dashboard) *admin.Collection[T, P]
}

func registerResource[T any, P admin.Record[T]](name string, pick func(*admin.Dashboard) *admin.Collection[T, P]) {
	r := resource[T, P]{name: name, pick: pick}

	webserver.ApiGET("/"+name, r.list)
	webserver.ApiGET("/"+name+"/:id", r.get)
	webserver.ApiPOST("/"+name, r.create)
	webserver.ApiPUT("/"+name+"/:id", r.update)
	webserver.ApiDELETE("/"+name+"/:id", r.delete)

	webserver.AdminGET("/"+name, r.page)
	webserver.AdminPOST("/"+name+"/reload", r.reload)
	webserver.AdminGET("/"+name+"/new", r.newForm)
	webserver.AdminPOST("/"+name+"/new", r.submitNew)
	webserver.AdminGET("/"+name+"/:id/edit", r.editForm)
	webserver.AdminPOST("/"+name+"/:id/edit", r.submitEdit)
	webserver.AdminGET("/"+name+"/:id/delete", r.confirmDelete)
	webserver.AdminPOST("/"+name+"/:id/delete", r.submitDelete)
}

func (r resource[T, P]) collection(c echo.Context) *admin.Collection[T, P] {
	d := getDashboard(c)
	if d == nil {
		return nil
	}
	return r.pick(d)
}

// ensureLoaded fills an empty mirror before id-based operations.
func (r resource[T, P]) ensureLoaded(c echo.Context, col *admin.Collection[T, P]) error {
	if col.Loaded() {
		return nil
	}
	return col.Load(opContext(c))
}

type listResponse[T any] struct {
	Items    []T    `json:"items"`
	Fallback bool   `json:"fallback"`
	Error    string `json:"error,omitempty"`
}

func (r resource[T, P]) list(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return fail(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Dashboard is not initialized", nil)
	}
	var err error
	if cast.ToBool(c.QueryParam("reload")) || !col.Loaded() {
		err = col.Load(opContext(c))
	}
	v := col.View()
	if err != nil && !v.Fallback {
		return failFromError(c, err, r.name)
	}
	resp := listResponse[T]{Items: v.Items, Fallback: v.Fallback}
	if v.Err != nil {
		resp.Error = v.Err.Error()
	}
	return ok(c, resp)
}

func (r resource[T, P]) get(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return fail(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Dashboard is not initialized", nil)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+r.name+" ID", nil)
	}
	if err := r.ensureLoaded(c, col); err != nil {
		return failFromError(c, err, r.name)
	}
	item, found := col.Get(id)
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", r.name+" not found", nil)
	}
	return ok(c, item)
}

// bindJSON decodes the request body over a reset record, so omitted flags keep
// their defaults. When it reports false the 400 answer has already been written.
func (r resource[T, P]) bindJSON(c echo.Context) (T, bool) {
	var item T
	P(&item).Reset()
	if err := c.Bind(&item); err != nil {
		_ = fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse "+r.name, err.Error())
		return item, false
	}
	P(&item).Normalize()
	if err := c.Validate(&item); err != nil {
		_ = fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", webserver.FieldErrors(err))
		return item, false
	}
	return item, true
}

func (r resource[T, P]) create(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return fail(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Dashboard is not initialized", nil)
	}
	item, bound := r.bindJSON(c)
	if !bound {
		return nil
	}
	P(&item).SetRecordID(0)
	created, err := col.Create(opContext(c), item)
	if err != nil {
		return failFromError(c, err, r.name)
	}
	return ok(c, created)
}

func (r resource[T, P]) update(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return fail(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Dashboard is not initialized", nil)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+r.name+" ID", nil)
	}
	item, bound := r.bindJSON(c)
	if !bound {
		return nil
	}
	if err := r.ensureLoaded(c, col); err != nil {
		return failFromError(c, err, r.name)
	}
	P(&item).SetRecordID(id)
	updated, err := col.Update(opContext(c), item)
	if err != nil {
		return failFromError(c, err, r.name)
	}
	return ok(c, updated)
}

func (r resource[T, P]) delete(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return fail(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Dashboard is not initialized", nil)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+r.name+" ID", nil)
	}
	if err := r.ensureLoaded(c, col); err != nil {
		return failFromError(c, err, r.name)
	}
	confirmed := cast.ToBool(c.QueryParam("confirm")) || cast.ToBool(c.Request().Header.Get(ConfirmHeader))
	if err := col.Delete(opContext(c), id, func() bool { return confirmed }); err != nil {
		return failFromError(c, err, r.name)
	}
	return ok(c, map[string]interface{}{"id": id, "deleted": true})
}

func listTagSuggestions(c echo.Context) error {
	d := getDashboard(c)
	if d == nil {
		return fail(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Dashboard is not initialized", nil)
	}
	tags, err := d.TagSuggestions(c.Request().Context())
	if err != nil {
		return failFromError(c, err, "tags")
	}
	return ok(c, tags)
}

type tabStatus struct {
	Resource string `json:"resource"`
	Loaded   bool   `json:"loaded"`
	Fallback bool   `json:"fallback"`
	Count    int    `json:"count"`
	Error    string `json:"error,omitempty"`
}

func dashboardStatus(d *admin.Dashboard) []tabStatus {
	out := make([]tabStatus, 0, len(domain.Resources))
	add := func(name string, loaded, fallback bool, count int, err error) {
		s := tabStatus{Resource: name, Loaded: loaded, Fallback: fallback, Count: count}
		if err != nil {
			s.Error = err.Error()
		}
		out = append(out, s)
	}
	jobs := d.Jobs.View()
	add(jobs.Name, jobs.Loaded, jobs.Fallback, len(jobs.Items), jobs.Err)
	news := d.News.View()
	add(news.Name, news.Loaded, news.Fallback, len(news.Items), news.Err)
	cases := d.Cases.View()
	add(cases.Name, cases.Loaded, cases.Fallback, len(cases.Items), cases.Err)
	techniques := d.Techniques.View()
	add(techniques.Name, techniques.Loaded, techniques.Fallback, len(techniques.Items), techniques.Err)
	products := d.Products.View()
	add(products.Name, products.Loaded, products.Fallback, len(products.Items), products.Err)
	return out
}

// reloadAll loads every collection and reports the per-resource state.
func reloadAll(c echo.Context) error {
	d := getDashboard(c)
	if d == nil {
		return fail(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Dashboard is not initialized", nil)
	}
	err := d.LoadAll(opContext(c))
	status := dashboardStatus(d)
	if err != nil {
		return fail(c, http.StatusBadGateway, "BACKEND_ERROR", "Some collections failed to load", status)
	}
	return ok(c, status)
}

// systemStatus reports backend, database and collection state.
func systemStatus(c echo.Context) error {
	resp := map[string]interface{}{
		"backend": strings.TrimSpace(getConfig(c).Backend.BaseURL),
	}
	if db := GetDB(c); db != nil {
		dbOK := false
		if sqlDB, err := db.DB(); err == nil {
			dbOK = sqlDB.PingContext(c.Request().Context()) == nil
		}
		resp["database"] = dbOK
	}
	if d := getDashboard(c); d != nil {
		resp["collections"] = dashboardStatus(d)
	}
	return ok(c, resp)
}

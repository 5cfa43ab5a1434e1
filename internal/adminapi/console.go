package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/avocado-ai/avocado-web/internal/admin"
	"github.com/avocado-ai/avocado-web/internal/domain"
	"github.com/avocado-ai/avocado-web/internal/webserver"
)

type row struct {
	ID      int64
	Label   string
	Visible bool
}

type dashboardData struct {
	webserver.Page
	Tabs     []string
	Active   string
	Rows     []row
	LoadErr  string
	Fallback bool
	Error    string
	Form     *formView
}

type deleteData struct {
	webserver.Page
	Resource string
	ID       int64
	Label    string
	Error    string
}

type errorData struct {
	webserver.Page
	Status  int
	Message string
}

func renderError(c echo.Context, status int, message string) error {
	return c.Render(status, "error", errorData{Page: webserver.NewPage(c), Status: status, Message: message})
}

func (r resource[T, P]) home() string {
	return webserver.AdminPrefix + "/" + r.name
}

// render draws the tab. form selects the open form: "new", "edit" or "".
func (r resource[T, P]) render(c echo.Context, status int, form string, saveErr error, invalid map[string]string) error {
	col := r.collection(c)
	if col == nil {
		return renderError(c, http.StatusServiceUnavailable, "Dashboard is not initialized")
	}
	v := col.View()
	data := dashboardData{
		Page:     webserver.NewPage(c),
		Tabs:     domain.Resources,
		Active:   r.name,
		Rows:     make([]row, 0, len(v.Items)),
		Fallback: v.Fallback,
	}
	for i := range v.Items {
		p := P(&v.Items[i])
		data.Rows = append(data.Rows, row{ID: p.RecordID(), Label: p.Label(), Visible: p.Visible()})
	}
	if v.Err != nil {
		data.LoadErr = v.Err.Error()
	}
	if saveErr != nil {
		data.Error = saveErr.Error()
	}

	switch {
	case form == "new" || (form == "" && v.Creating):
		data.Form = &formView{
			Action: r.home() + "/new",
			Fields: buildFields[T, P](v.Draft, invalid),
		}
	case form == "edit" || (form == "" && v.Editing != nil):
		if v.Editing != nil {
			data.Form = &formView{
				Action: r.home() + "/" + strconv.FormatInt(P(v.Editing).RecordID(), 10) + "/edit",
				ID:     P(v.Editing).RecordID(),
				Fields: buildFields[T, P](*v.Editing, invalid),
			}
		}
	}
	if data.Form != nil && r.name == domain.ResourceJobs {
		r.suggestTags(c, data.Form)
	}
	return c.Render(status, "admin_dashboard", data)
}

// suggestTags offers the tags already used upstream in the tags editor.
func (r resource[T, P]) suggestTags(c echo.Context, form *formView) {
	d := getDashboard(c)
	if d == nil {
		return
	}
	tags, err := d.TagSuggestions(c.Request().Context())
	if err != nil {
		zap.L().Debug("tag suggestions unavailable", zap.Error(err))
		return
	}
	for i := range form.Fields {
		if form.Fields[i].Name == "tags" {
			form.Fields[i].Suggestions = tags
		}
	}
}

func (r resource[T, P]) page(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return renderError(c, http.StatusServiceUnavailable, "Dashboard is not initialized")
	}
	if !col.Loaded() {
		_ = col.Load(opContext(c))
	}
	return r.render(c, http.StatusOK, "", nil, nil)
}

func (r resource[T, P]) reload(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return renderError(c, http.StatusServiceUnavailable, "Dashboard is not initialized")
	}
	_ = col.Load(opContext(c))
	return c.Redirect(http.StatusSeeOther, r.home())
}

func (r resource[T, P]) newForm(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return renderError(c, http.StatusServiceUnavailable, "Dashboard is not initialized")
	}
	col.OpenCreate()
	return r.render(c, http.StatusOK, "new", nil, nil)
}

func (r resource[T, P]) submitNew(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return renderError(c, http.StatusServiceUnavailable, "Dashboard is not initialized")
	}
	op, field, value := formOp(c)
	if op == "cancel" {
		col.CancelCreate()
		return c.Redirect(http.StatusSeeOther, r.home())
	}
	item, err := bindForm[T, P](c)
	if err != nil {
		return renderError(c, http.StatusBadRequest, err.Error())
	}
	P(&item).SetRecordID(0)
	col.OpenCreate()
	col.SetDraft(item)

	switch op {
	case "add":
		col.AddDraftValue(field, c.FormValue("new_"+field))
		return r.render(c, http.StatusOK, "new", nil, nil)
	case "remove":
		col.RemoveDraftValue(field, value)
		return r.render(c, http.StatusOK, "new", nil, nil)
	}

	if err := c.Validate(&item); err != nil {
		return r.render(c, http.StatusBadRequest, "new", nil, webserver.FieldErrors(err))
	}
	if _, err := col.SaveDraft(opContext(c), item); err != nil {
		return r.render(c, http.StatusBadGateway, "new", err, nil)
	}
	return c.Redirect(http.StatusSeeOther, r.home())
}

func (r resource[T, P]) editForm(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return renderError(c, http.StatusServiceUnavailable, "Dashboard is not initialized")
	}
	id, err := parseIDParam(c)
	if err != nil {
		return renderError(c, http.StatusBadRequest, "Invalid "+r.name+" ID")
	}
	if err := r.ensureLoaded(c, col); err != nil && !col.Loaded() {
		return r.render(c, http.StatusBadGateway, "", nil, nil)
	}
	if _, found := col.Edit(id); !found {
		return renderError(c, http.StatusNotFound, r.name+" not found")
	}
	return r.render(c, http.StatusOK, "edit", nil, nil)
}

func (r resource[T, P]) submitEdit(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return renderError(c, http.StatusServiceUnavailable, "Dashboard is not initialized")
	}
	id, err := parseIDParam(c)
	if err != nil {
		return renderError(c, http.StatusBadRequest, "Invalid "+r.name+" ID")
	}
	op, field, value := formOp(c)
	if op == "cancel" {
		col.CancelEdit()
		return c.Redirect(http.StatusSeeOther, r.home())
	}
	if _, found := col.Get(id); !found {
		return renderError(c, http.StatusNotFound, r.name+" not found")
	}
	item, err := bindForm[T, P](c)
	if err != nil {
		return renderError(c, http.StatusBadRequest, err.Error())
	}
	P(&item).SetRecordID(id)
	if !col.SetEditing(item) {
		col.Edit(id)
		col.SetEditing(item)
	}

	switch op {
	case "add":
		col.AddEditValue(field, c.FormValue("new_"+field))
		return r.render(c, http.StatusOK, "edit", nil, nil)
	case "remove":
		col.RemoveEditValue(field, value)
		return r.render(c, http.StatusOK, "edit", nil, nil)
	}

	if err := c.Validate(&item); err != nil {
		return r.render(c, http.StatusBadRequest, "edit", nil, webserver.FieldErrors(err))
	}
	if _, err := col.SaveEdit(opContext(c), item); err != nil {
		if errors.Is(err, admin.ErrNotFound) {
			return renderError(c, http.StatusNotFound, r.name+" not found")
		}
		return r.render(c, http.StatusBadGateway, "edit", err, nil)
	}
	return c.Redirect(http.StatusSeeOther, r.home())
}

func (r resource[T, P]) confirmDelete(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return renderError(c, http.StatusServiceUnavailable, "Dashboard is not initialized")
	}
	id, err := parseIDParam(c)
	if err != nil {
		return renderError(c, http.StatusBadRequest, "Invalid "+r.name+" ID")
	}
	_ = r.ensureLoaded(c, col)
	item, found := col.Get(id)
	if !found {
		return renderError(c, http.StatusNotFound, r.name+" not found")
	}
	return c.Render(http.StatusOK, "admin_delete", deleteData{
		Page:     webserver.NewPage(c),
		Resource: r.name,
		ID:       id,
		Label:    P(&item).Label(),
	})
}

func (r resource[T, P]) submitDelete(c echo.Context) error {
	col := r.collection(c)
	if col == nil {
		return renderError(c, http.StatusServiceUnavailable, "Dashboard is not initialized")
	}
	id, err := parseIDParam(c)
	if err != nil {
		return renderError(c, http.StatusBadRequest, "Invalid "+r.name+" ID")
	}
	item, _ := col.Get(id)
	confirmed := c.FormValue("confirm") == "yes"
	err = col.Delete(opContext(c), id, func() bool { return confirmed })
	switch {
	case err == nil, errors.Is(err, admin.ErrDeclined):
		return c.Redirect(http.StatusSeeOther, r.home())
	case errors.Is(err, admin.ErrNotFound):
		return renderError(c, http.StatusNotFound, r.name+" not found")
	}
	return c.Render(http.StatusBadGateway, "admin_delete", deleteData{
		Page:     webserver.NewPage(c),
		Resource: r.name,
		ID:       id,
		Label:    P(&item).Label(),
		Error:    err.Error(),
	})
}

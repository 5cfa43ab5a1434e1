package adminapi

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avocado-ai/avocado-web/internal/admin"
)

// formField describes one input of a console form.
type formField struct {
	Name        string
	Kind        string
	Value       string
	Checked     bool
	List        []string
	Limit       int
	Suggestions []string
	Invalid     string
}

type formView struct {
	Action string
	ID     int64
	Fields []formField
}

var longText = map[string]bool{
	"description": true,
	"content":     true,
	"challenge":   true,
	"solution":    true,
}

// buildFields derives the inputs of item's form from its struct tags: form
// tags give scalar inputs and json tags name the array editors.
func buildFields[T any, P admin.Record[T]](item T, invalid map[string]string) []formField {
	p := P(&item)
	v := reflect.ValueOf(&item).Elem()
	t := v.Type()

	var fields []formField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := sf.Tag.Get("form")
		if name == "id" {
			continue
		}
		f := formField{Name: name}
		switch sf.Type.Kind() {
		case reflect.Bool:
			f.Kind = "checkbox"
			f.Checked = v.Field(i).Bool()
		case reflect.Slice:
			f.Name = strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
			list, limit, ok := p.ListField(f.Name)
			if !ok {
				continue
			}
			f.Kind = "list"
			f.List = append([]string{}, (*list)...)
			f.Limit = limit
		case reflect.String:
			f.Value = v.Field(i).String()
			switch {
			case strings.HasSuffix(name, "Date"):
				f.Kind = "date"
			case longText[name]:
				f.Kind = "textarea"
			default:
				f.Kind = "text"
			}
		default:
			continue
		}
		f.Invalid = invalid[f.Name]
		fields = append(fields, f)
	}
	return fields
}

// bindForm reads a console form into a fresh record. Array fields arrive as
// repeated inputs and go through the array editor rules.
func bindForm[T any, P admin.Record[T]](c echo.Context) (T, error) {
	var item T
	P(&item).Reset()
	if err := c.Bind(&item); err != nil {
		return item, err
	}
	form, err := c.FormParams()
	if err != nil {
		return item, err
	}
	p := P(&item)
	for _, name := range p.ListNames() {
		list, limit, _ := p.ListField(name)
		*list = []string{}
		for _, v := range form[name] {
			admin.AddValue(list, v, limit)
		}
	}
	// Unchecked boxes are absent from the form.
	v := reflect.ValueOf(&item).Elem()
	for i := 0; i < v.NumField(); i++ {
		sf := v.Type().Field(i)
		if sf.Type.Kind() != reflect.Bool {
			continue
		}
		vals := form[sf.Tag.Get("form")]
		checked := false
		if len(vals) > 0 {
			checked, _ = strconv.ParseBool(vals[len(vals)-1])
		}
		v.Field(i).SetBool(checked)
	}
	p.Normalize()
	return item, nil
}

// formOp splits the submit button value: save, cancel, add:<field> or
// remove:<field>:<value>.
func formOp(c echo.Context) (op, field, value string) {
	parts := strings.SplitN(c.FormValue("op"), ":", 3)
	op = parts[0]
	if op == "" {
		op = "save"
	}
	if len(parts) > 1 {
		field = parts[1]
	}
	if len(parts) > 2 {
		value = parts[2]
	}
	return op, field, value
}

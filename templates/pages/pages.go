// Package pages renders the admin screens. Every page is a templ.Component
// backed by an embedded html/template.
package pages

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"pehlione.com/admin/pkg/view"
	"pehlione.com/admin/templates/shared"
)

//go:embed html/*.html
var files embed.FS

var tmpl = template.Must(template.New("pages").Funcs(template.FuncMap{
	"statusLabel": shared.StatusLabel,
	"statusClass": shared.StatusClass,
}).ParseFS(files, "html/*.html"))

// layout is the data every page template receives.
type layout struct {
	Title string
	Flash *view.Flash
	Admin string
	Data  any
}

func page(name string, l layout) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return tmpl.ExecuteTemplate(w, name, l)
	})
}

func AdminOrdersList(flash *view.Flash, admin string, vm view.AdminOrdersListPage) templ.Component {
	return page("orders.html", layout{Title: "Orders", Flash: flash, Admin: admin, Data: vm})
}

// StatusDialog is the status dialog on its own, used when an update fails.
func StatusDialog(flash *view.Flash, admin string, vm view.StatusEditor) templ.Component {
	return page("status_dialog.html", layout{Title: "Change status", Flash: flash, Admin: admin, Data: vm})
}

func AdminDashboard(flash *view.Flash, vm view.DashboardPage) templ.Component {
	return page("dashboard.html", layout{Title: "Dashboard", Flash: flash, Admin: vm.Admin, Data: vm})
}

type loginData struct {
	Form   view.LoginForm
	Fields map[string]string
	Error  string
}

func Login(flash *view.Flash, form view.LoginForm, fields map[string]string, errMsg string) templ.Component {
	return page("login.html", layout{Title: "Sign in", Flash: flash, Data: loginData{Form: form, Fields: fields, Error: errMsg}})
}

type errorData struct {
	Status    int
	Message   string
	RequestID string
}

func Error(status int, msg, requestID string, flash *view.Flash) templ.Component {
	return page("error.html", layout{Title: "Error", Flash: flash, Data: errorData{Status: status, Message: msg, RequestID: requestID}})
}

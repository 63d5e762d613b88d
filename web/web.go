// Package web holds the embedded input form page, the draft preview, the
// default rollup template and the error components used by the HTTP layer.
package web

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/rollup/handler"
	"github.com/dmitrymomot/rollup/modules/rollup"
)

// DefaultTemplate is used when no template file is configured.
//
//go:embed template.html
var DefaultTemplate string

//go:embed form.html
var formHTML string

var formPage = template.Must(template.New("form").Parse(formHTML))

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>Error {{.StatusCode}}</title></head>
<body style="font-family: system-ui, sans-serif; margin: 2rem;">
<h1>{{.StatusCode}}</h1>
<p>{{.Error}}</p>
{{if .RequestID}}<p><small>Request ID: {{.RequestID}}</small></p>{{end}}
<p><a href="/">Back to the form</a></p>
</body></html>`))

var errorToast = template.Must(template.New("toast").Parse(
	`<div class="toast toast-{{.Type}}" role="alert">{{.Message}}</div>`))

var preview = template.Must(template.New("preview").Parse(`<table class="preview">
<caption>{{len .Drafts}} drafts for {{.ArchiveName}}</caption>
<thead><tr><th>Customer</th><th>File</th><th>Subject</th><th>To</th><th>CC</th></tr></thead>
<tbody>
{{- range .Drafts}}
<tr><td>{{.Customer}}</td><td>{{.FileName}}</td><td>{{.Subject}}</td><td>{{.To}}</td><td>{{.Cc}}</td></tr>
{{- else}}
<tr><td colspan="5">No customers to draft</td></tr>
{{- end}}
</tbody>
</table>`))

// Views wires the pages into the rollup service.
func Views() *rollup.Views {
	return &rollup.Views{FormPage: FormPage, Preview: Preview}
}

// FormPage renders the input form.
func FormPage(p rollup.FormPageParams) templ.Component {
	return render(formPage, p)
}

// Preview renders the drafts a submission would produce.
func Preview(p rollup.PreviewParams) templ.Component {
	return render(preview, p)
}

// ErrorPage renders a full error page.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return render(errorPage, p)
}

// ErrorToast renders an error toast for DataStar requests.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return render(errorToast, p)
}

func render(t *template.Template, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := t.Execute(w, data); err != nil {
			return fmt.Errorf("render %s: %w", t.Name(), err)
		}
		return nil
	})
}

package export

import (
	"html/template"
	"io"

	"github.com/jhoicas/warehouse/internal/domain/report"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead>
<tr>{{range .Labels}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{- range .Records}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

// HTMLExporter escribe el reporte como página HTML con una tabla.
type HTMLExporter struct {
	title string
}

// NewHTMLExporter construye el exportador.
func NewHTMLExporter(title string) *HTMLExporter {
	return &HTMLExporter{title: title}
}

// Export escribe la página. Los valores se escapan con html/template.
func (e *HTMLExporter) Export(w io.Writer, r *report.Report) error {
	return htmlTemplate.Execute(w, struct {
		Title   string
		Labels  []string
		Records [][]string
	}{e.title, r.Labels, r.StringRecords()})
}

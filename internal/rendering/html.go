package rendering

import (
	"bytes"
	"html/template"
)

var htmlTemplate = template.Must(template.New("profile").Funcs(template.FuncMap{
	"width": func(t *Table, i int) float64 {
		if i < len(t.Widths) {
			return t.Widths[i]
		}
		return 0
	},
}).Parse(htmlSource))

type htmlPage struct {
	Title  string
	Blocks []Block
}

// WriteHTML renders doc as a standalone HTML page.
func WriteHTML(doc *Document, title string) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, htmlPage{Title: title, Blocks: doc.Blocks}); err != nil {
		return nil, &RenderError{Format: FormatHTML, Message: "failed to execute html template", Cause: &TemplateError{Cause: err}}
	}
	return buf.Bytes(), nil
}

const htmlSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 1in; }
body { font-family: Calibri, Arial, sans-serif; font-size: 10pt; }
h1 { font-size: 18pt; }
h2 { font-size: 14pt; }
.center { text-align: center; }
table { border-collapse: collapse; table-layout: fixed; margin: 0; }
td { border: 1px solid #000; padding: 2pt 5pt; vertical-align: top; }
p { margin: 0; white-space: pre-wrap; min-height: 1em; }
li { white-space: pre-wrap; }
ul { margin: 0; padding-left: 18pt; }
.u { text-decoration: underline; }
</style>
</head>
<body>
{{- range .Blocks}}
{{- if eq .Kind "title"}}
<h1{{if .Centered}} class="center"{{end}}>{{.Text}}</h1>
{{- else if eq .Kind "heading"}}
<h2{{if .Centered}} class="center"{{end}}>{{.Text}}</h2>
{{- else if eq .Kind "spacer"}}
<p></p>
{{- else if eq .Kind "table"}}
{{- $t := .Table}}
<table>
{{- range $t.Rows}}
<tr>
{{- range $i, $c := .Cells}}
<td style="width: {{width $t $i}}in">
{{- range $c.Paragraphs}}
{{- if .Bullet}}<ul><li>{{template "runs" .Runs}}</li></ul>{{else}}<p>{{template "runs" .Runs}}</p>{{end}}
{{- end}}
</td>
{{- end}}
</tr>
{{- end}}
</table>
{{- end}}
{{- end}}
</body>
</html>
{{define "runs"}}{{range .}}{{if .Bold}}<strong>{{end}}{{if .Italic}}<em>{{end}}{{if .Underline}}<span class="u">{{end}}{{.Text}}{{if .Underline}}</span>{{end}}{{if .Italic}}</em>{{end}}{{if .Bold}}</strong>{{end}}{{end}}{{end}}`

package web

import "html/template"

type pageData struct {
	Lang    string
	Title   string
	Command string
	Enabled bool
	Message string
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
	<meta charset="UTF-8">
	<title>{{.Title}}</title>
	<style>body { font-family: system-ui, sans-serif; margin: 2rem; }</style>
</head>
<body>
	{{- if .Enabled}}
	<form method="post" action="/commands/show-dependencies">
		<button type="submit">{{.Command}}</button>
	</form>
	{{- end}}
</body>
</html>
`))

var noticeTmpl = template.Must(template.New("notice").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
	<meta charset="UTF-8">
	<title>{{.Title}}</title>
	<style>body { font-family: system-ui, sans-serif; margin: 2rem; } .error { color: #a33; }</style>
</head>
<body>
	<p class="error" role="alert">✗ {{.Message}}</p>
	<p><a href="/">←</a></p>
</body>
</html>
`))

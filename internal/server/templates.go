package server

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed index.html
var indexHTML string

type templates struct {
	index *template.Template
}

func newTemplates() *templates {
	return &templates{
		index: template.Must(template.New("index").Parse(indexHTML)),
	}
}

func (t *templates) Render(w io.Writer, _ string, data interface{}, _ echo.Context) error {
	return t.index.Execute(w, data)
}

package panel

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"io"
	"strconv"
	"strings"
	texttemplate "text/template"
	"unicode"
)

//go:embed templates/*
var templateFS embed.FS

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

// Renderer turns views and notices into panel markup. Both template sets
// define "panel", "loading", "error" and "idle".
type Renderer struct {
	tmpl executor
}

// NewHTMLRenderer renders with html/template, so every server-supplied
// field is escaped for its HTML context.
func NewHTMLRenderer() *Renderer {
	t := htmltemplate.Must(htmltemplate.New("panel.html").
		Funcs(htmltemplate.FuncMap{"cost": formatCost}).
		ParseFS(templateFS, "templates/panel.html"))
	return &Renderer{tmpl: t}
}

// NewTextRenderer renders plain text for a terminal, stripping control
// characters from server-supplied fields.
func NewTextRenderer() *Renderer {
	t := texttemplate.Must(texttemplate.New("panel.txt").
		Funcs(texttemplate.FuncMap{
			"cost":  formatCost,
			"clean": stripControl,
			"inc":   func(i int) int { return i + 1 },
		}).
		ParseFS(templateFS, "templates/panel.txt"))
	return &Renderer{tmpl: t}
}

func (r *Renderer) Panel(w io.Writer, v View) error {
	return r.tmpl.ExecuteTemplate(w, "panel", v)
}

func (r *Renderer) Loading(w io.Writer) error {
	return r.tmpl.ExecuteTemplate(w, "loading", nil)
}

func (r *Renderer) Error(w io.Writer, message string) error {
	return r.tmpl.ExecuteTemplate(w, "error", message)
}

func (r *Renderer) Idle(w io.Writer) error {
	return r.tmpl.ExecuteTemplate(w, "idle", nil)
}

func (r *Renderer) render(fn func(io.Writer) error) (string, error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatCost(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

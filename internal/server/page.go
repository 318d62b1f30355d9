package server

import (
	_ "embed"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	indexTemplate = "index.html"
	csrfFormField = "authenticity_token"
)

//go:embed web/index.html
var indexHTML string

// signOption is one entry of the sign selector; the value is what the form posts.
type signOption struct {
	Value string
	Label string
}

var signOptions = []signOption{
	{"aries", "Aries"},
	{"tauro", "Tauro"},
	{"géminis", "Géminis"},
	{"cáncer", "Cáncer"},
	{"leo", "Leo"},
	{"virgo", "Virgo"},
	{"libra", "Libra"},
	{"escorpio", "Escorpio"},
	{"sagitario", "Sagitario"},
	{"capricornio", "Capricornio"},
	{"acuario", "Acuario"},
	{"piscis", "Piscis"},
}

type indexPage struct {
	Signs     []signOption
	CSRFField string
	CSRFToken string
}

type pageRenderer struct {
	templates *template.Template
}

func newPageRenderer() *pageRenderer {
	return &pageRenderer{
		templates: template.Must(template.New(indexTemplate).Parse(indexHTML)),
	}
}

func (r *pageRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func (s *Server) handleIndex(c echo.Context) error {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return c.Render(http.StatusOK, indexTemplate, indexPage{
		Signs:     signOptions,
		CSRFField: csrfFormField,
		CSRFToken: token,
	})
}

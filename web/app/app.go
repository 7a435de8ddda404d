// Package app serves the HTML metal identification form.
package app

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/metalid/internal/config"
	"github.com/JaimeStill/metalid/internal/identify"
	"github.com/JaimeStill/metalid/internal/infrastructure"
	"github.com/JaimeStill/metalid/pkg/formatting"
	"github.com/JaimeStill/metalid/pkg/middleware"
	"github.com/JaimeStill/metalid/pkg/module"
	"github.com/JaimeStill/metalid/pkg/web"
)

//go:embed templates static
var assets embed.FS

const layout = "layout"

var (
	formView     = web.ViewDef{Route: "/{$}", Template: "identify.html", Title: "Identify"}
	notFoundView = web.ViewDef{Template: "not-found.html", Title: "Not Found"}
)

// NoImageNotice is shown when a submission carries no image.
const NoImageNotice = "No image uploaded. You can still input values for a demo classification."

type app struct {
	sys           identify.System
	templates     *web.TemplateSet
	logger        *slog.Logger
	title         string
	maxUploadSize int64
}

// NewModule creates the form module mounted at cfg.App.BasePath.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	logger := infra.Logger.With("module", "app")

	ts, err := web.NewTemplateSet(
		assets,
		"templates/layouts/*.html",
		"templates/pages",
		cfg.App.BasePath,
		funcs(),
		[]web.ViewDef{formView, notFoundView},
	)
	if err != nil {
		return nil, fmt.Errorf("app templates: %w", err)
	}

	a := &app{
		sys:           identify.New(logger),
		templates:     ts,
		logger:        logger,
		title:         cfg.App.Title,
		maxUploadSize: cfg.API.MaxUploadSizeBytes(),
	}

	router := web.NewRouter()
	router.HandleFunc("GET "+formView.Route, a.form)
	router.HandleFunc("POST /identify", a.submit)
	router.Handle("GET /static/", web.DistServer(assets, "static", "/static"))
	router.SetFallback(ts.ErrorHandler(layout, notFoundView, http.StatusNotFound))

	m := module.New(cfg.App.BasePath, router)
	m.Use(middleware.Recover(logger))
	m.Use(middleware.Logger(logger))

	return m, nil
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"density": identify.FormatDensity,
		"bytes": func(n int64) string {
			return formatting.FormatBytes(n, 1)
		},
		"imageURL": func(s string) template.URL {
			if !strings.HasPrefix(s, "data:image/jpeg;base64,") && !strings.HasPrefix(s, "data:image/png;base64,") {
				return ""
			}
			return template.URL(s)
		},
	}
}

func (a *app) form(w http.ResponseWriter, r *http.Request) {
	p := a.page(valuesFromInput(identify.Defaults()))
	p.ImageNotice = NoImageNotice
	a.render(w, http.StatusOK, p)
}

func (a *app) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadSize+identify.FormOverhead)

	if err := r.ParseMultipartForm(a.maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		status := http.StatusBadRequest
		if identify.MapHTTPStatus(err) == http.StatusRequestEntityTooLarge {
			status = http.StatusRequestEntityTooLarge
		}
		a.logger.Warn("form parse failed", "error", err, "status", status)

		p := a.page(valuesFromInput(identify.Defaults()))
		p.Notice = "The submission could not be read: " + err.Error()
		a.render(w, status, p)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	p := a.page(valuesFromForm(r))

	in, err := identify.FromForm(r.PostForm)
	if err != nil {
		var verr *identify.ValidationError
		if errors.As(err, &verr) {
			p.Errors = verr.Fields()
			a.render(w, http.StatusUnprocessableEntity, p)
			return
		}
		a.fail(w, err)
		return
	}

	preview, err := identify.PreviewFromRequest(r, a.maxUploadSize)
	switch {
	case err != nil:
		a.logger.Warn("image not displayed", "error", err)
		p.ImageNotice = "The uploaded image could not be displayed: " + err.Error()
	case preview == nil:
		p.ImageNotice = NoImageNotice
	default:
		p.Preview = preview
	}

	id, err := a.sys.Identify(r.Context(), in)
	if err != nil {
		a.fail(w, err)
		return
	}

	p.Result = id
	a.render(w, http.StatusOK, p)
}

func (a *app) fail(w http.ResponseWriter, err error) {
	status := identify.MapHTTPStatus(err)
	a.logger.Error("identification failed", "error", err)
	http.Error(w, http.StatusText(status), status)
}

func (a *app) render(w http.ResponseWriter, status int, p *page) {
	if err := a.templates.Render(w, status, layout, formView, p); err != nil {
		a.logger.Error("render failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

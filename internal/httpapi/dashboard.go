package httpapi

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed dashboard.html
var dashboardHTML string

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

type dashboardData struct {
	BasePath    string
	Version     string
	UpstreamURL string
}

// mountDashboard serves the index page and redirects the legacy page paths to it.
func mountDashboard(r chi.Router, opts Options) {
	data := dashboardData{BasePath: opts.BasePath, Version: opts.Version, UpstreamURL: opts.UpstreamURL}
	if data.Version == "" {
		data.Version = "dev"
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := dashboardTmpl.Execute(w, data); err != nil {
			requestLogger(r).Error().Err(err).Msg("render dashboard")
		}
	})
	home := opts.BasePath + "/"
	redirect := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, home, http.StatusTemporaryRedirect)
	}
	r.Get("/home", redirect)
	r.Get("/models", redirect)
}

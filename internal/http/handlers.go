package http

import (
	"bytes"
	"net/http"

	"bikeshare/internal/charts"
	"bikeshare/internal/core"
	"bikeshare/internal/export"
	"bikeshare/internal/log"
)

// pageData feeds both the full page and the dashboard partial.
type pageData struct {
	Title     string
	HasData   bool
	Bounds    core.DateRange
	Range     core.DateRange
	Dashboard charts.Dashboard
	Tables    []string
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady answers 200 once the dataset is loaded and the server is
// accepting traffic.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() || s.dashboard == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	bounds, ok := s.dashboard.Selector().Bounds()
	res := s.dashboard.Run(r.Context(), sel)
	data := pageData{
		Title:     "Bike Sharing",
		HasData:   ok,
		Bounds:    bounds,
		Range:     sel,
		Dashboard: res.Dashboard,
		Tables:    export.TableNames,
	}
	s.render(w, r, "dashboard_page", data, nil)
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).
		WarnContext(r.Context(), "Rate limit exceeded", log.FieldPath, r.URL.Path)
	TooManyRequestsError(s.retryAfter).Write(w)
}

// render executes name into a buffer so a failing template never leaves a
// half-written page behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any, resp *HTMXResponseBuilder) {
	if s.templates == nil {
		s.logError(r, "Templates not loaded", nil, log.ComponentTemplate, log.OpRender, log.NewFields())
		InternalServerError("templates not loaded").Write(w)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		fields := log.NewFields()
		fields["template"] = name
		s.logError(r, "Template execution failed", err, log.ComponentTemplate, log.OpRender, fields)
		InternalServerError("Error rendering dashboard").Write(w)
		return
	}

	if resp == nil {
		resp = NewHTMXResponse()
	}
	resp.Header("Content-Type", "text/html; charset=utf-8").Body(buf.Bytes()).Write(w)
}

func (s *Server) logError(r *http.Request, msg string, err error, component, operation string, fields log.LogFields) {
	fields = fields.WithErrorType(log.ErrorTypeInternal)
	log.NewStructuredLogger(log.FromContext(r.Context())).LogError(r.Context(), msg, err, component, operation, fields)
}

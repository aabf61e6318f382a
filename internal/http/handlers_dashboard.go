package http

import (
	"encoding/json"
	"net/http"

	"bikeshare/internal/export"
	"bikeshare/internal/log"
)

// handleDashboardPartial re-runs the pipeline for the requested range and
// returns the dashboard fragment HTMX swaps into the page, announcing the new
// range so the page redraws its charts.
func (s *Server) handleDashboardPartial(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	bounds, ok := s.dashboard.Selector().Bounds()
	res := s.dashboard.Run(r.Context(), sel)
	data := pageData{
		HasData:   ok,
		Bounds:    bounds,
		Range:     sel,
		Dashboard: res.Dashboard,
		Tables:    export.TableNames,
	}
	s.render(w, r, "dashboard", data, NewHTMXResponse().TriggerRangeChanged(sel))
}

// handleDashboardJSON serves the same dashboard as JSON.
func (s *Server) handleDashboardJSON(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	res := s.dashboard.Run(r.Context(), sel)
	body, err := json.Marshal(res.Dashboard)
	if err != nil {
		s.logError(r, "Dashboard encoding failed", err, log.ComponentHTTP, log.OpRender,
			log.NewFields().WithRange(sel.Start.String(), sel.End.String()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"bikeshare/internal/core"
	"bikeshare/internal/export"
	"bikeshare/internal/log"
)

func (s *Server) handleExportWorkbook(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	res := s.dashboard.Run(r.Context(), sel)
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, res.Tables, res.Dashboard); err != nil {
		s.logError(r, "Workbook export failed", err, log.ComponentExport, log.OpExport,
			log.NewFields().WithRange(sel.Start.String(), sel.End.String()))
		InternalServerError("Error building workbook").Write(w)
		return
	}
	if s.recorder != nil {
		s.recorder.ObserveExport("xlsx")
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Workbook exported",
		log.FieldOperation, log.OpExport,
		log.FieldStartDate, sel.Start.String(),
		log.FieldEndDate, sel.End.String(),
		"bytes", buf.Len())

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment("bikeshare", sel, "xlsx"))
	_, _ = w.Write(buf.Bytes())
}

// handleExportCSV serves /export/{table}.csv.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), ".csv")
	if !ok || !export.IsTable(name) {
		NotFoundError("Unknown table").Write(w)
		return
	}
	sel, err := s.selection(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	res := s.dashboard.Run(r.Context(), sel)
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, res.Tables, name); err != nil {
		fields := log.NewFields().WithRange(sel.Start.String(), sel.End.String())
		fields[log.FieldTable] = name
		s.logError(r, "CSV export failed", err, log.ComponentExport, log.OpExport, fields)
		InternalServerError("Error building CSV").Write(w)
		return
	}
	if s.recorder != nil {
		s.recorder.ObserveExport("csv")
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Table exported",
		log.FieldOperation, log.OpExport,
		log.FieldTable, name,
		log.FieldStartDate, sel.Start.String(),
		log.FieldEndDate, sel.End.String())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(name, sel, "csv"))
	_, _ = w.Write(buf.Bytes())
}

func attachment(base string, sel core.DateRange, ext string) string {
	return fmt.Sprintf(`attachment; filename="%s_%s_%s.%s"`, base, sel.Start, sel.End, ext)
}

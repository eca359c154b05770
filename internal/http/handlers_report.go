package http

import (
	"fmt"
	"net/http"

	"finsight/internal/auth"
	applog "finsight/internal/log"
	"finsight/internal/report"
)

// reportRequest is the export payload: column projection, row selection
// parameters and target format.
type reportRequest struct {
	Columns  []string `json:"columns"`
	Format   string   `json:"format"`
	Search   string   `json:"search"`
	Category string   `json:"category"`
	Status   string   `json:"status"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Sort     string   `json:"sort"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req reportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	format, err := report.ParseFormat(req.Format)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	values := map[string][]string{
		"search":   {req.Search},
		"category": {req.Category},
		"status":   {req.Status},
		"from":     {req.From},
		"to":       {req.To},
		"sort":     {req.Sort},
	}

	export, err := s.transactions.Export(r.Context(), identity, report.Request{
		Columns: req.Columns,
		Query:   parseQuery(values),
		Format:  format,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "Report exported",
		applog.FieldOperation, applog.OpExport,
		applog.FieldOwner, identity,
		applog.FieldFormat, string(format))

	w.Header().Set("Content-Type", export.MediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Data)
}

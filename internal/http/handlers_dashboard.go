package http

import (
	"fmt"
	"net/http"

	"finsight/internal/auth"
	"finsight/internal/core"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	key := core.ScopeOwner(identity) + ":summary"
	if cached, hit := s.summaryCache.Get(key); hit {
		respondJSON(w, http.StatusOK, toSummaryResponse(cached))
		return
	}

	summary, err := s.transactions.Summary(r.Context(), identity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.summaryCache.Set(key, summary)
	respondJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	year, month, daily, err := parseYearMonth(r.URL.Query())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	key := core.ScopeOwner(identity) + ":chart:monthly"
	if daily {
		key = fmt.Sprintf("%s:chart:%04d-%02d", core.ScopeOwner(identity), year, int(month))
	}
	if cached, hit := s.chartCache.Get(key); hit {
		respondJSON(w, http.StatusOK, toSeriesResponse(cached))
		return
	}

	var series core.Series
	if daily {
		series, err = s.transactions.DailyChart(r.Context(), identity, year, month)
	} else {
		series, err = s.transactions.MonthlyChart(r.Context(), identity)
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.chartCache.Set(key, series)
	respondJSON(w, http.StatusOK, toSeriesResponse(series))
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finsight/internal/auth"
	applog "finsight/internal/log"
	"finsight/internal/services"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	q := parseQuery(r.URL.Query())
	page, err := s.transactions.List(r.Context(), identity, q)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List failed",
			applog.FieldOperation, applog.OpList,
			applog.FieldOwner, identity,
			applog.FieldError, err.Error())
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toPageResponse(page))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req services.CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	created, err := s.transactions.Create(r.Context(), identity, req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards(identity)
	s.logger.InfoContext(r.Context(), "Transaction created",
		applog.FieldTransactionID, created.ID,
		applog.FieldOwner, identity,
		applog.FieldAmountCents, created.Amount.Cents)

	respondJSON(w, http.StatusCreated, toTransactionResponse(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req services.UpdateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	id := chi.URLParam(r, "id")
	updated, err := s.transactions.Update(r.Context(), identity, id, req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards(identity)
	respondJSON(w, http.StatusOK, toTransactionResponse(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.transactions.Delete(r.Context(), identity, id); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards(identity)
	w.WriteHeader(http.StatusNoContent)
}

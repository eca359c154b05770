package http

import (
	"net/http"

	"finsight/internal/auth"
	applog "finsight/internal/log"
)

type registerRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := s.auth.Register(r.Context(), req.UserID, req.Password); err != nil {
		s.logger.WarnContext(r.Context(), "Registration rejected",
			applog.FieldOperation, applog.OpCreate,
			applog.FieldError, err.Error())
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"user_id": req.UserID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	token, err := s.auth.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"user_id": identity})
}

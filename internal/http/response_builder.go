package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"finsight/internal/auth"
	"finsight/internal/core"
	"finsight/internal/report"
	"finsight/internal/store"
)

// transactionResponse is the JSON shape of one transaction.
type transactionResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Owner       string  `json:"owner"`
	UserProfile string  `json:"user_profile,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type pageResponse struct {
	Rows       []transactionResponse `json:"rows"`
	TotalCount int                   `json:"total_count"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
}

type summaryResponse struct {
	Balance        float64 `json:"balance"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalExpenses  float64 `json:"total_expenses"`
	Savings        float64 `json:"savings"`
	PaidRevenue    float64 `json:"paid_revenue"`
	PendingRevenue float64 `json:"pending_revenue"`
	PaidExpense    float64 `json:"paid_expense"`
	PendingExpense float64 `json:"pending_expense"`
}

type seriesResponse struct {
	Labels  []string  `json:"labels"`
	Revenue []float64 `json:"revenue"`
	Expense []float64 `json:"expense"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Date:        t.Date.Format("2006-01-02"),
		Amount:      t.Amount.Dollars(),
		Category:    string(t.Category),
		Status:      string(t.Status),
		Owner:       t.Owner,
		UserProfile: t.UserProfile,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func toPageResponse(p core.Page) pageResponse {
	rows := make([]transactionResponse, len(p.Rows))
	for i, t := range p.Rows {
		rows[i] = toTransactionResponse(t)
	}
	return pageResponse{
		Rows:       rows,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		TotalPages: p.TotalPages,
	}
}

func toSummaryResponse(s core.Summary) summaryResponse {
	return summaryResponse{
		Balance:        s.Balance.Dollars(),
		TotalRevenue:   s.TotalRevenue.Dollars(),
		TotalExpenses:  s.TotalExpenses.Dollars(),
		Savings:        s.Savings.Dollars(),
		PaidRevenue:    s.PaidRevenue.Dollars(),
		PendingRevenue: s.PendingRevenue.Dollars(),
		PaidExpense:    s.PaidExpense.Dollars(),
		PendingExpense: s.PendingExpense.Dollars(),
	}
}

func toSeriesResponse(s core.Series) seriesResponse {
	return seriesResponse{Labels: s.Labels, Revenue: s.Revenue, Expense: s.Expense}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondValidationError(w http.ResponseWriter, verr *core.ValidationError) {
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":  verr.Error(),
		"fields": verr.Fields,
	})
}

// respondDomainError maps the error taxonomy onto HTTP statuses. Internal
// detail never leaks into 5xx bodies.
func respondDomainError(w http.ResponseWriter, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		respondValidationError(w, verr)
	case errors.Is(err, report.ErrNoColumns):
		respondError(w, http.StatusBadRequest, report.ErrNoColumns.Error())
	case errors.Is(err, report.ErrNoData):
		respondError(w, http.StatusNotFound, "no transactions match the report parameters")
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, store.ErrUserExists):
		respondError(w, http.StatusConflict, "user already exists")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

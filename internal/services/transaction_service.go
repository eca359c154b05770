// Package services orchestrates domain operations over the store ports.
// Handlers and the queue worker both go through this layer so create and
// update semantics stay identical regardless of transport.
package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"finsight/internal/core"
	applog "finsight/internal/log"
	"finsight/internal/report"
	"finsight/internal/store"
)

// CreateTransactionRequest is the transport-level create payload. Structural
// checks live in the validate tags; value parsing happens in the domain.
type CreateTransactionRequest struct {
	Date        string `json:"date" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Status      string `json:"status" validate:"required"`
	UserProfile string `json:"user_profile" validate:"omitempty,url"`
}

// UpdateTransactionRequest carries a partial patch; nil fields are untouched.
type UpdateTransactionRequest struct {
	Date        *string `json:"date"`
	Amount      *string `json:"amount"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
	UserProfile *string `json:"user_profile"`
}

// TransactionService orchestrates transaction operations over the store
type TransactionService struct {
	store    store.Store
	validate *validator.Validate
}

func NewTransactionService(st store.Store) *TransactionService {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names, not Go field names, in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &TransactionService{
		store:    st,
		validate: v,
	}
}

// dateLayouts accepted on create and update payloads.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseWritableStatus accepts the statuses a client may write. Failed is a
// valid stored and filter value but no write path produces it.
func parseWritableStatus(value string) (core.Status, bool) {
	st, err := core.ParseStatus(value)
	if err != nil || st == core.Failed {
		return "", false
	}
	return st, true
}

// Create validates the payload wholly, stamps id, owner and timestamps, and
// persists the transaction. Validation failures name every offending field.
// Writes from the admin identity land on the sentinel owner, the same set
// the admin view reads.
func (s *TransactionService) Create(ctx context.Context, identity string, req CreateTransactionRequest) (core.Transaction, error) {
	if err := s.validate.Struct(req); err != nil {
		return core.Transaction{}, requestValidationError(err)
	}

	var fields []string

	date, ok := parseDate(req.Date)
	if !ok {
		fields = append(fields, "date")
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil || cents <= 0 {
		fields = append(fields, "amount")
	}
	category, catErr := core.ParseCategory(req.Category)
	if catErr != nil {
		fields = append(fields, "category")
	}
	status, ok := parseWritableStatus(req.Status)
	if !ok {
		fields = append(fields, "status")
	}
	if len(fields) > 0 {
		return core.Transaction{}, core.NewValidationError(fields...)
	}

	now := time.Now().UTC()
	t := core.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Status:      status,
		Owner:       core.ScopeOwner(identity),
		UserProfile: req.UserProfile,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	applog.NewStructuredLogger(applog.FromContext(ctx)).
		LogTransactionCreated(ctx, t.ID, t.Owner, t.Amount.Cents, string(t.Category), string(t.Status))
	return t, nil
}

// Update applies a partial patch to an owned transaction. A patch touching a
// foreign record reports not-found, same as a missing id.
func (s *TransactionService) Update(ctx context.Context, identity, id string, req UpdateTransactionRequest) (core.Transaction, error) {
	var (
		patch  core.Patch
		fields []string
	)

	if req.Date != nil {
		date, ok := parseDate(*req.Date)
		if !ok {
			fields = append(fields, "date")
		} else {
			patch.Date = &date
		}
	}
	if req.Amount != nil {
		cents, err := core.ParseDecimalToCents(*req.Amount)
		if err != nil || cents <= 0 {
			fields = append(fields, "amount")
		} else {
			m := core.Money{Cents: cents}
			patch.Amount = &m
		}
	}
	if req.Category != nil {
		category, err := core.ParseCategory(*req.Category)
		if err != nil {
			fields = append(fields, "category")
		} else {
			patch.Category = &category
		}
	}
	if req.Status != nil {
		status, ok := parseWritableStatus(*req.Status)
		if !ok {
			fields = append(fields, "status")
		} else {
			patch.Status = &status
		}
	}
	if req.UserProfile != nil {
		patch.UserProfile = req.UserProfile
	}

	if len(fields) > 0 {
		return core.Transaction{}, core.NewValidationError(fields...)
	}
	if patch.IsEmpty() {
		return core.Transaction{}, core.NewValidationError("patch")
	}

	updated, err := s.store.UpdateFields(ctx, id, core.ScopeOwner(identity), patch)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return updated, nil
}

// Delete removes an owned transaction.
func (s *TransactionService) Delete(ctx context.Context, identity, id string) error {
	if err := s.store.DeleteByID(ctx, id, core.ScopeOwner(identity)); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// List resolves the paginated display view for the identity.
func (s *TransactionService) List(ctx context.Context, identity string, q core.Query) (core.Page, error) {
	ts, err := s.store.FindByOwner(ctx, core.ScopeOwner(identity))
	if err != nil {
		return core.Page{}, fmt.Errorf("list transactions: %w", err)
	}
	return q.Run(ts), nil
}

// Summary computes the aggregate figures over the full owner set.
func (s *TransactionService) Summary(ctx context.Context, identity string) (core.Summary, error) {
	ts, err := s.store.FindByOwner(ctx, core.ScopeOwner(identity))
	if err != nil {
		return core.Summary{}, fmt.Errorf("summarize transactions: %w", err)
	}
	return core.Summarize(ts), nil
}

// MonthlyChart bins the full owner set into per-month category series.
func (s *TransactionService) MonthlyChart(ctx context.Context, identity string) (core.Series, error) {
	ts, err := s.store.FindByOwner(ctx, core.ScopeOwner(identity))
	if err != nil {
		return core.Series{}, fmt.Errorf("chart transactions: %w", err)
	}
	return core.MonthlySeries(ts), nil
}

// DailyChart bins one calendar month of the owner set into per-day series.
func (s *TransactionService) DailyChart(ctx context.Context, identity string, year int, month time.Month) (core.Series, error) {
	ts, err := s.store.FindByOwner(ctx, core.ScopeOwner(identity))
	if err != nil {
		return core.Series{}, fmt.Errorf("chart transactions: %w", err)
	}
	return core.DailySeries(ts, year, month), nil
}

// Export renders the owner's rows as a downloadable report.
func (s *TransactionService) Export(ctx context.Context, identity string, req report.Request) (report.Export, error) {
	ts, err := s.store.FindByOwner(ctx, core.ScopeOwner(identity))
	if err != nil {
		return report.Export{}, fmt.Errorf("export transactions: %w", err)
	}
	return report.Build(ts, req)
}

// requestValidationError converts validator tag failures into the domain
// error shape so handlers report fields uniformly.
func requestValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return core.NewValidationError("request")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return core.NewValidationError(fields...)
}

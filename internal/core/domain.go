package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Revenue Category = "Revenue"
	Expense Category = "Expense"
)

const (
	Paid    Status = "Paid"
	Pending Status = "Pending"
	// Failed is a reachable stored/filter value, but no create path produces it.
	Failed Status = "Failed"
)

type (
	Category string

	Status string

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          string
		Date        time.Time
		Amount      Money
		Category    Category
		Status      Status
		Owner       string
		UserProfile string
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// Patch is a partial transaction update. Nil fields are left untouched.
	Patch struct {
		Date        *time.Time
		Amount      *Money
		Category    *Category
		Status      *Status
		UserProfile *string
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidStatus   = errors.New("invalid status")
)

// ValidationError reports the specific fields that failed validation.
// The request that produced it must be rejected wholesale.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field(s): %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the named fields.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ParseCategory canonicalizes a category value, comparing case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "revenue":
		return Revenue, nil
	case "expense":
		return Expense, nil
	default:
		return "", ErrInvalidCategory
	}
}

// ParseStatus canonicalizes a status value, comparing case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid":
		return Paid, nil
	case "pending":
		return Pending, nil
	case "failed":
		return Failed, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (c Category) Valid() bool {
	return c == Revenue || c == Expense
}

func (s Status) Valid() bool {
	return s == Paid || s == Pending || s == Failed
}

// Sign returns +1 for Revenue and -1 otherwise. An unknown category carries
// the Expense sign.
func (c Category) Sign() int64 {
	if strings.EqualFold(string(c), string(Revenue)) {
		return 1
	}
	return -1
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	var fields []string
	if t.Date.IsZero() {
		fields = append(fields, "date")
	}
	if t.Amount.Cents <= 0 {
		fields = append(fields, "amount")
	}
	if !t.Category.Valid() {
		fields = append(fields, "category")
	}
	if !t.Status.Valid() {
		fields = append(fields, "status")
	}
	if strings.TrimSpace(t.Owner) == "" {
		fields = append(fields, "owner")
	}
	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

// Validate checks every field present in the patch; an empty patch is valid.
func (p Patch) Validate() error {
	var fields []string
	if p.Date != nil && p.Date.IsZero() {
		fields = append(fields, "date")
	}
	if p.Amount != nil && p.Amount.Cents <= 0 {
		fields = append(fields, "amount")
	}
	if p.Category != nil && !p.Category.Valid() {
		fields = append(fields, "category")
	}
	if p.Status != nil && !p.Status.Valid() {
		fields = append(fields, "status")
	}
	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

// IsEmpty reports whether the patch touches no fields.
func (p Patch) IsEmpty() bool {
	return p.Date == nil && p.Amount == nil && p.Category == nil &&
		p.Status == nil && p.UserProfile == nil
}

// Apply returns a copy of t with the patch fields applied.
func (p Patch) Apply(t Transaction) Transaction {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.UserProfile != nil {
		t.UserProfile = *p.UserProfile
	}
	return t
}

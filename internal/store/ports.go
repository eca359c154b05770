// Package store defines the persistence ports for the transaction and user
// collections. Adapters live in subpackages (mongo, sqlite, memory) and are
// selected by the backend factory.
package store

import (
	"context"
	"errors"
	"time"

	"finsight/internal/core"
)

// ErrNotFound covers both a missing record and a record owned by someone
// else, so mutations never reveal the existence of another user's records.
var ErrNotFound = errors.New("transaction not found")

// ErrUserExists is returned when registering an already-taken user id.
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound is returned for unknown user ids.
var ErrUserNotFound = errors.New("user not found")

// User is a credential record.
type User struct {
	ID           string
	PasswordHash string
	CreatedAt    time.Time
}

type (
	// TransactionStore is the ownership-scoped transaction collection. The
	// store guarantees no ordering; callers order results themselves.
	TransactionStore interface {
		// FindByOwner returns every transaction for the scoping owner.
		FindByOwner(ctx context.Context, owner string) ([]core.Transaction, error)

		// Create inserts a fully validated transaction.
		Create(ctx context.Context, t core.Transaction) error

		// UpdateFields applies a partial patch to the record matching both
		// id and owner, returning the updated record or ErrNotFound.
		UpdateFields(ctx context.Context, id, owner string, p core.Patch) (core.Transaction, error)

		// DeleteByID removes the record matching both id and owner, or
		// returns ErrNotFound.
		DeleteByID(ctx context.Context, id, owner string) error
	}

	// UserStore holds credential records.
	UserStore interface {
		CreateUser(ctx context.Context, u User) error
		GetUserByID(ctx context.Context, id string) (User, error)
	}

	// Store is the full persistence surface a backend must provide.
	Store interface {
		TransactionStore
		UserStore
		Close() error
	}
)

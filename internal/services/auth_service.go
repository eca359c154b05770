package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finsight/internal/auth"
	"finsight/internal/core"
	"finsight/internal/store"
)

// AuthService handles registration and login over the user store.
type AuthService struct {
	users  store.UserStore
	tokens *auth.TokenManager
}

func NewAuthService(users store.UserStore, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a credential record for a new user id. The privileged
// identity and the sentinel owner it reads are not registrable; a user
// holding either would see, or feed, the admin aggregate view.
func (s *AuthService) Register(ctx context.Context, userID, password string) error {
	id := strings.TrimSpace(userID)
	var fields []string
	if len(id) < auth.MinUserIDLength || isReservedIdentity(id) {
		fields = append(fields, "user_id")
	}
	if len(password) < auth.MinPasswordLength {
		fields = append(fields, "password")
	}
	if len(fields) > 0 {
		return core.NewValidationError(fields...)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := store.User{
		ID:           id,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			return store.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func isReservedIdentity(id string) bool {
	return id == core.AdminIdentity || id == core.SentinelOwner
}

// Login verifies the credentials and returns a signed bearer token. Unknown
// user and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, userID, password string) (string, error) {
	user, err := s.users.GetUserByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", auth.ErrInvalidCredentials
		}
		return "", fmt.Errorf("load user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", auth.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Package auth issues and verifies bearer credentials. The core pipelines
// never touch this package directly; they receive the verified identity as
// an explicit argument.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinUserIDLength   = 3
	MinPasswordLength = 6
)

// ErrInvalidCredentials covers both an unknown user and a wrong password so
// login failures stay indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword hashes a plaintext password with bcrypt at default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext candidate against a stored hash.
func CheckPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier абстрагирует схему хранения пароля.
// Hash приводит пароль к виду, в котором он хранится в БД,
// Verify сравнивает сохраненное значение с кандидатом.
type CredentialVerifier interface {
	// Hash prepares a password for storage
	Hash(password string) (string, error)

	// Verify reports whether candidate matches the stored credential
	Verify(stored, candidate string) bool
}

// PlainVerifier хранит пароль как есть и сравнивает на точное равенство.
// Это контракт исходного хранилища; сравнение константное по времени.
type PlainVerifier struct{}

// Hash returns the password unchanged
func (PlainVerifier) Hash(password string) (string, error) {
	return password, nil
}

// Verify compares stored and candidate in constant time
func (PlainVerifier) Verify(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// BcryptVerifier хранит bcrypt хеш пароля
type BcryptVerifier struct {
	Cost int // 0 означает bcrypt.DefaultCost
}

// Hash hashes the password with bcrypt
func (v BcryptVerifier) Hash(password string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify compares the stored bcrypt hash against the candidate
func (v BcryptVerifier) Verify(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}

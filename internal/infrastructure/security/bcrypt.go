package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

// BcryptVerifier hashes and verifies passwords with bcrypt.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier uses bcrypt.DefaultCost when cost is out of range.
func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{cost: cost}
}

func (v *BcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether candidate matches the user's stored hash.
func (v *BcryptVerifier) Verify(user *domain.User, candidate string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(candidate)) == nil
}
